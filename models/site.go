package models

import "encoding/json"

// ElementType identifies how an element is painted
type ElementType string

const (
	ElementText   ElementType = "text"
	ElementButton ElementType = "button"
)

// Alignment values accepted for Element.Align
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Shadow values accepted for Element.Shadow
const (
	ShadowNone   = "none"
	ShadowSoft   = "soft"
	ShadowStrong = "strong"
)

// SiteDocument is the whole persisted site. It is always replaced as a unit.
type SiteDocument struct {
	Settings Settings  `json:"settings"`
	Elements []Element `json:"elements"`
}

// Settings holds the global look of the site. Empty fields fall back to
// render defaults.
type Settings struct {
	BackgroundColor string
	GradientFrom    string
	GradientTo      string
	FontFamily      string

	// Extra holds keys that did not decode into a typed field, so that a
	// saved document loads back unchanged.
	Extra map[string]json.RawMessage
}

// Set updates the setting stored under the JSON key and reports whether the key is known
func (s *Settings) Set(key, value string) bool {
	for _, f := range s.fields() {
		if f.key == key {
			*f.str = value
			setExtra(&s.Extra, key, value)
			return true
		}
	}
	return false
}

// Element is one positioned content block. Numeric attributes are pointers so
// that an absent attribute can be told apart from an explicit zero.
// The JSON form is written by MarshalJSON (see site_json.go).
type Element struct {
	ID       string
	Type     ElementType
	X        *float64
	Y        *float64
	Width    *float64
	Height   *float64
	Radius   *float64
	Color    string
	BgColor  string
	FontSize *float64
	Align    string
	Shadow   string
	Content  string
	URL      string

	Extra map[string]json.RawMessage
}

// ElementPatch is a partial update. Nil fields are left untouched.
type ElementPatch struct {
	X        *float64
	Y        *float64
	Width    *float64
	Height   *float64
	Radius   *float64
	FontSize *float64
	Color    *string
	BgColor  *string
	Align    *string
	Shadow   *string
	Content  *string
	URL      *string
}

// Apply copies every non-nil field of p onto e
func (p ElementPatch) Apply(e *Element) {
	nums := []struct {
		key string
		src *float64
		dst **float64
	}{
		{"x", p.X, &e.X},
		{"y", p.Y, &e.Y},
		{"width", p.Width, &e.Width},
		{"height", p.Height, &e.Height},
		{"radius", p.Radius, &e.Radius},
		{"fontSize", p.FontSize, &e.FontSize},
	}
	for _, n := range nums {
		if n.src != nil {
			*n.dst = Float(*n.src)
			dropExtra(&e.Extra, n.key)
		}
	}

	strs := []struct {
		key string
		src *string
		dst *string
	}{
		{"color", p.Color, &e.Color},
		{"bgColor", p.BgColor, &e.BgColor},
		{"align", p.Align, &e.Align},
		{"shadow", p.Shadow, &e.Shadow},
		{"content", p.Content, &e.Content},
		{"url", p.URL, &e.URL},
	}
	for _, f := range strs {
		if f.src != nil {
			*f.dst = *f.src
			setExtra(&e.Extra, f.key, *f.src)
		}
	}
}

// Float returns a pointer to v
func Float(v float64) *float64 {
	return &v
}

// String returns a pointer to s
func String(s string) *string {
	return &s
}

// EmptySite is the structural fallback served when nothing is persisted
func EmptySite() SiteDocument {
	return SiteDocument{Elements: []Element{}}
}

// DefaultSite is the document seeded on first run
func DefaultSite() SiteDocument {
	return SiteDocument{
		Settings: Settings{
			BackgroundColor: "#020617",
			GradientFrom:    "#1d4ed8",
			GradientTo:      "#22c55e",
			FontFamily:      "'Poppins', system-ui, -apple-system, BlinkMacSystemFont, sans-serif",
		},
		Elements: []Element{},
	}
}

// Normalize makes sure Elements encodes as an empty list rather than null
func (d SiteDocument) Normalize() SiteDocument {
	if d.Elements == nil {
		d.Elements = []Element{}
	}
	return d
}

// Clone returns a deep copy of the document
func (d SiteDocument) Clone() SiteDocument {
	out := SiteDocument{Settings: d.Settings, Elements: make([]Element, len(d.Elements))}
	out.Settings.Extra = cloneExtra(d.Settings.Extra)
	for i, el := range d.Elements {
		out.Elements[i] = el.Clone()
	}
	return out
}

// Clone returns a deep copy of the element
func (e Element) Clone() Element {
	c := e
	c.X = cloneFloat(e.X)
	c.Y = cloneFloat(e.Y)
	c.Width = cloneFloat(e.Width)
	c.Height = cloneFloat(e.Height)
	c.Radius = cloneFloat(e.Radius)
	c.FontSize = cloneFloat(e.FontSize)
	c.Extra = cloneExtra(e.Extra)
	return c
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	return Float(*f)
}

// Index returns the position of the element with the given id, or -1
func (d SiteDocument) Index(id string) int {
	for i, el := range d.Elements {
		if el.ID == id {
			return i
		}
	}
	return -1
}
