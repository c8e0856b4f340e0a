package utils

import (
	"io/fs"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// SupportedLanguages lists the locales shipped in web/locales
var SupportedLanguages = []string{"de", "en"}

var (
	// Bundle is the global translation bundle
	Bundle *i18n.Bundle
	// Localizer is the default localizer
	Localizer *i18n.Localizer
)

// InitI18n loads active.<lang>.toml for every supported language from fsys
func InitI18n(fsys fs.FS, defaultLang string) error {
	Bundle = i18n.NewBundle(language.German)
	Bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, lang := range SupportedLanguages {
		file := path.Join("locales", "active."+lang+".toml")
		if _, err := Bundle.LoadMessageFileFS(fsys, file); err != nil {
			Log.Warn("Failed to load %s locale: %v", lang, err)
		}
	}

	Localizer = GetLocalizer(defaultLang)

	Log.Info("i18n initialized (default language %s)", NormalizeLanguage(defaultLang))
	return nil
}

// NormalizeLanguage maps anything unsupported to German
func NormalizeLanguage(lang string) string {
	for _, l := range SupportedLanguages {
		if l == lang {
			return lang
		}
	}
	return "de"
}

// GetLocalizer returns a localizer for the specified language
func GetLocalizer(lang string) *i18n.Localizer {
	if Bundle == nil {
		return nil
	}
	return i18n.NewLocalizer(Bundle, NormalizeLanguage(lang))
}

// T translates a message ID. A nil localizer or a missing message yields the ID itself.
func T(localizer *i18n.Localizer, messageID string) string {
	if localizer == nil {
		return messageID
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID: messageID,
	})
	if err != nil {
		Log.Debug("Translation error for '%s': %v", messageID, err)
		return messageID
	}
	return msg
}
