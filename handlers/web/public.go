package web

import (
	"pagecraft/render"
	"pagecraft/site"

	"github.com/gofiber/fiber/v2"
)

// PublicHandler paints the published page
type PublicHandler struct {
	site *site.Service
}

func NewPublicHandler(svc *site.Service) *PublicHandler {
	return &PublicHandler{site: svc}
}

// ShowSite renders the stored document. An unreadable store paints an empty
// page rather than an error.
func (h *PublicHandler) ShowSite(c *fiber.Ctx) error {
	tree := render.Build(h.site.Get(), "")

	return c.Render("index", fiber.Map{
		"Title": "Pagecraft",
		"Lang":  lang(c),
		"Tree":  tree,
	})
}

func lang(c *fiber.Ctx) string {
	if l, ok := c.Locals("lang").(string); ok && l != "" {
		return l
	}
	return "de"
}
