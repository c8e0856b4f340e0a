// Package render turns a site document into a toolkit-independent tree. The
// public page and the admin preview both paint this tree, so the defaults
// below are the only place an absent attribute gets its value.
package render

import "pagecraft/models"

// Element defaults
const (
	DefaultX        = 10
	DefaultY        = 10
	DefaultWidth    = 30 // percent of the container
	DefaultHeight   = 80 // pixels
	DefaultRadius   = 14
	DefaultFontSize = 16
	DefaultColor    = "#e5e7eb"
	DefaultBgColor  = "rgba(15, 23, 42, 0.85)"
	DefaultAlign    = models.AlignLeft
	DefaultText     = "Text"
	DefaultButton   = "Button"
	DefaultURL      = "#"
)

// Settings defaults
const (
	DefaultBackground   = "#020617"
	DefaultGradientFrom = "#1d4ed8"
	DefaultGradientTo   = "#22c55e"
	DefaultFontFamily   = "'Poppins', system-ui"
)

// Resolved is an element with every attribute filled in
type Resolved struct {
	ID       string
	Type     models.ElementType
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Radius   float64
	Color    string
	BgColor  string
	FontSize float64
	Align    string
	Shadow   string // "" means no shadow class
	Content  string
	URL      string
}

// ResolvedSettings is Settings with every attribute filled in
type ResolvedSettings struct {
	BackgroundColor string
	GradientFrom    string
	GradientTo      string
	FontFamily      string
}

// Resolve applies the element defaults. Unknown types are painted as text.
func Resolve(el models.Element) Resolved {
	r := Resolved{
		ID:       el.ID,
		Type:     el.Type,
		X:        orFloat(el.X, DefaultX),
		Y:        orFloat(el.Y, DefaultY),
		Width:    orFloat(el.Width, DefaultWidth),
		Height:   orFloat(el.Height, DefaultHeight),
		Radius:   orFloat(el.Radius, DefaultRadius),
		Color:    orString(el.Color, DefaultColor),
		BgColor:  orString(el.BgColor, DefaultBgColor),
		FontSize: orFloat(el.FontSize, DefaultFontSize),
		Align:    orString(el.Align, DefaultAlign),
		Shadow:   ShadowClass(el.Shadow),
	}

	if el.Type == models.ElementButton {
		r.Content = orString(el.Content, DefaultButton)
		r.URL = orString(el.URL, DefaultURL)
	} else {
		r.Type = models.ElementText
		r.Content = orString(el.Content, DefaultText)
	}
	return r
}

// ResolveSettings applies the settings defaults
func ResolveSettings(s models.Settings) ResolvedSettings {
	return ResolvedSettings{
		BackgroundColor: orString(s.BackgroundColor, DefaultBackground),
		GradientFrom:    orString(s.GradientFrom, DefaultGradientFrom),
		GradientTo:      orString(s.GradientTo, DefaultGradientTo),
		FontFamily:      orString(s.FontFamily, DefaultFontFamily),
	}
}

// ShadowClass returns the shadow value only when it names a known shadow class
func ShadowClass(shadow string) string {
	switch shadow {
	case models.ShadowNone, models.ShadowSoft, models.ShadowStrong:
		return shadow
	default:
		return ""
	}
}

func orFloat(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func orString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
