package middleware

import (
	"pagecraft/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
)

var localeMatcher = language.NewMatcher([]language.Tag{language.German, language.English})

// LocaleMiddleware detects and sets the user's locale
func LocaleMiddleware(defaultLang string) fiber.Handler {
	defaultLang = utils.NormalizeLanguage(defaultLang)

	return func(c *fiber.Ctx) error {
		lang := DetectLanguage(c, defaultLang)

		c.Locals("localizer", utils.GetLocalizer(lang))
		c.Locals("lang", lang)

		utils.Log.Debug("Locale detected: %s for path: %s", lang, c.Path())

		return c.Next()
	}
}

// DetectLanguage picks de or en from the lang query parameter, the lang
// cookie or Accept-Language, in that order.
func DetectLanguage(c *fiber.Ctx, defaultLang string) string {
	if lang := c.Query("lang"); lang != "" {
		return utils.NormalizeLanguage(lang)
	}
	if lang := c.Cookies("lang"); lang != "" {
		return utils.NormalizeLanguage(lang)
	}

	accept := c.Get(fiber.HeaderAcceptLanguage)
	if accept == "" {
		return defaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return defaultLang
	}
	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return defaultLang
	}
	return utils.SupportedLanguages[index]
}
