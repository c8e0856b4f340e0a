package api

import (
	"pagecraft/utils"

	"github.com/gofiber/fiber/v2"
)

// clientMessages are the strings admin.js shows itself
var clientMessages = []string{
	"login_failed",
	"status_saving",
	"status_saved",
	"status_save_failed",
	"error_404",
}

// I18nHandler handles i18n-related requests
type I18nHandler struct{}

// GetTranslations returns translations for the client-side JavaScript
func (h *I18nHandler) GetTranslations(c *fiber.Ctx) error {
	lang := utils.NormalizeLanguage(c.Params("lang"))
	localizer := utils.GetLocalizer(lang)

	translations := make(map[string]string, len(clientMessages))
	for _, id := range clientMessages {
		translations[id] = utils.T(localizer, id)
	}

	return c.JSON(fiber.Map{
		"lang":     lang,
		"messages": translations,
	})
}
