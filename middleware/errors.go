package middleware

import (
	"strings"

	"pagecraft/utils"

	"github.com/gofiber/fiber/v2"
)

// IsAPIRequest reports whether the response should be JSON rather than a page
func IsAPIRequest(c *fiber.Ctx) bool {
	if c == nil {
		return false
	}
	return strings.HasPrefix(c.Path(), "/api")
}

// ErrorHandler turns handler errors into {"error": message} for API routes
// and into the error page otherwise.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, message := utils.StatusOf(err)

	if code >= fiber.StatusInternalServerError {
		utils.Log.WithField("path", c.Path()).Error("Application error: %v", err)
	} else {
		utils.Log.WithField("path", c.Path()).Debug("Request rejected (%d): %v", code, err)
	}

	if IsAPIRequest(c) {
		return c.Status(code).JSON(fiber.Map{"error": message})
	}

	lang, _ := c.Locals("lang").(string)
	return c.Status(code).Render("error", fiber.Map{
		"Title": message,
		"Lang":  utils.NormalizeLanguage(lang),
		"Error": message,
		"Code":  code,
	})
}
