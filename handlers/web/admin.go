package web

import (
	"pagecraft/config"
	"pagecraft/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

type AdminHandler struct {
	config *config.Config
}

func NewAdminHandler(cfg *config.Config) *AdminHandler {
	return &AdminHandler{config: cfg}
}

// ShowEditor renders the editor shell. Login and all editing go through the API.
func (h *AdminHandler) ShowEditor(c *fiber.Ctx) error {
	localizer, _ := c.Locals("localizer").(*i18n.Localizer)

	return c.Render("admin", fiber.Map{
		"Title":  "Pagecraft Admin",
		"Lang":   lang(c),
		"Header": h.config.Auth.Header,
		"Messages": map[string]string{
			"login_failed": utils.T(localizer, "login_failed"),
		},
	})
}
