package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"pagecraft/models"
	"pagecraft/render"
)

var ErrUnknownField = errors.New("unknown field")

// Field names one property-panel control. Each control edits exactly one element attribute.
type Field string

const (
	FieldContent  Field = "content"
	FieldURL      Field = "url"
	FieldColor    Field = "color"
	FieldBgColor  Field = "bgColor"
	FieldFontSize Field = "fontSize"
	FieldAlign    Field = "align"
	FieldWidth    Field = "width"
	FieldHeight   Field = "height"
	FieldRadius   Field = "radius"
	FieldShadow   Field = "shadow"
)

// SettingField names one global settings control
type SettingField string

const (
	SettingBackgroundColor SettingField = "backgroundColor"
	SettingGradientFrom    SettingField = "gradientFrom"
	SettingGradientTo      SettingField = "gradientTo"
	SettingFontFamily      SettingField = "fontFamily"
)

// numericDefaults is what a numeric control falls back to when its input has no leading integer
var numericDefaults = map[Field]float64{
	FieldFontSize: render.DefaultFontSize,
	FieldWidth:    render.DefaultWidth,
	FieldHeight:   render.DefaultHeight,
	FieldRadius:   render.DefaultRadius,
}

// Numeric reports whether the field takes an integer
func (f Field) Numeric() bool {
	_, ok := numericDefaults[f]
	return ok
}

// Patch turns raw control input into a partial element update. Numeric fields
// are parsed as integers; no range checks are applied.
func (f Field) Patch(raw string) (models.ElementPatch, error) {
	var p models.ElementPatch

	if def, ok := numericDefaults[f]; ok {
		v := ParseInt(raw, def)
		switch f {
		case FieldFontSize:
			p.FontSize = &v
		case FieldWidth:
			p.Width = &v
		case FieldHeight:
			p.Height = &v
		case FieldRadius:
			p.Radius = &v
		}
		return p, nil
	}

	switch f {
	case FieldContent:
		p.Content = models.String(raw)
	case FieldURL:
		p.URL = models.String(raw)
	case FieldColor:
		p.Color = models.String(raw)
	case FieldBgColor:
		p.BgColor = models.String(raw)
	case FieldAlign:
		p.Align = models.String(raw)
	case FieldShadow:
		p.Shadow = models.String(raw)
	default:
		return p, fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
	return p, nil
}

// ParseInt reads the leading base-10 integer of s (after optional whitespace
// and sign) and returns def when there is none.
func ParseInt(s string, def float64) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return def
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return def
	}
	return v
}

// Panel is the state of the property panel
type Panel struct {
	// Visible is false in the no-selection state
	Visible   bool               `json:"visible"`
	ElementID string             `json:"elementId,omitempty"`
	Type      models.ElementType `json:"type,omitempty"`
	Content   string             `json:"content"`
	URL       string             `json:"url"`
	Color     string             `json:"color"`
	BgColor   string             `json:"bgColor"`
	FontSize  float64            `json:"fontSize"`
	Align     string             `json:"align"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Radius    float64            `json:"radius"`
	Shadow    string             `json:"shadow"`
	Settings  SettingsPanel      `json:"settings"`
}

// SettingsPanel mirrors the global settings controls
type SettingsPanel struct {
	BackgroundColor string `json:"backgroundColor"`
	GradientFrom    string `json:"gradientFrom"`
	GradientTo      string `json:"gradientTo"`
	FontFamily      string `json:"fontFamily"`
}

// syncPanel builds the panel for the selected element, or the no-selection panel.
// Text inputs show the raw value so that clearing them does not refill a default.
func syncPanel(doc models.SiteDocument, selectedID string) Panel {
	s := render.ResolveSettings(doc.Settings)
	panel := Panel{Settings: SettingsPanel{
		BackgroundColor: s.BackgroundColor,
		GradientFrom:    s.GradientFrom,
		GradientTo:      s.GradientTo,
		FontFamily:      s.FontFamily,
	}}

	i := doc.Index(selectedID)
	if selectedID == "" || i < 0 {
		return panel
	}

	el := doc.Elements[i]
	r := render.Resolve(el)
	panel.Visible = true
	panel.ElementID = el.ID
	panel.Type = r.Type
	panel.Content = el.Content
	panel.URL = el.URL
	panel.Color = r.Color
	panel.BgColor = r.BgColor
	panel.FontSize = r.FontSize
	panel.Align = r.Align
	panel.Width = r.Width
	panel.Height = r.Height
	panel.Radius = r.Radius
	panel.Shadow = r.Shadow
	return panel
}
