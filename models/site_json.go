package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// field binds one JSON key to a typed struct field. Exactly one of str and num is set.
type field struct {
	key string
	str *string
	num **float64
}

func (s *Settings) fields() []field {
	return []field{
		{key: "backgroundColor", str: &s.BackgroundColor},
		{key: "gradientFrom", str: &s.GradientFrom},
		{key: "gradientTo", str: &s.GradientTo},
		{key: "fontFamily", str: &s.FontFamily},
	}
}

func (e *Element) fields() []field {
	return []field{
		{key: "id", str: &e.ID},
		{key: "type", str: (*string)(&e.Type)},
		{key: "x", num: &e.X},
		{key: "y", num: &e.Y},
		{key: "width", num: &e.Width},
		{key: "height", num: &e.Height},
		{key: "radius", num: &e.Radius},
		{key: "color", str: &e.Color},
		{key: "bgColor", str: &e.BgColor},
		{key: "fontSize", num: &e.FontSize},
		{key: "align", str: &e.Align},
		{key: "shadow", str: &e.Shadow},
		{key: "content", str: &e.Content},
		{key: "url", str: &e.URL},
	}
}

// UnmarshalJSON fills the typed fields from values of the expected type. Empty
// strings, nulls, mistyped values and unknown keys are kept verbatim in Extra.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Settings{}
	s.Extra = decodeFields(raw, s.fields())
	return nil
}

// MarshalJSON writes the typed fields followed by Extra
func (s Settings) MarshalJSON() ([]byte, error) {
	return encodeFields(s.Extra, s.fields())
}

// UnmarshalJSON fills the typed fields from values of the expected type. Empty
// strings, nulls, mistyped values and unknown keys are kept verbatim in Extra.
func (e *Element) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Element{}
	e.Extra = decodeFields(raw, e.fields())
	return nil
}

// MarshalJSON writes the typed fields followed by Extra
func (e Element) MarshalJSON() ([]byte, error) {
	return encodeFields(e.Extra, e.fields())
}

func decodeFields(raw map[string]json.RawMessage, fields []field) map[string]json.RawMessage {
	for _, f := range fields {
		v, ok := raw[f.key]
		if !ok || isNull(v) {
			continue
		}
		if f.str != nil {
			var s string
			if json.Unmarshal(v, &s) == nil && s != "" {
				*f.str = s
				delete(raw, f.key)
			}
			continue
		}
		var n float64
		if json.Unmarshal(v, &n) == nil {
			*f.num = Float(n)
			delete(raw, f.key)
		}
	}
	if len(raw) == 0 {
		return nil
	}
	return raw
}

func encodeFields(extra map[string]json.RawMessage, fields []field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	written := make(map[string]bool, len(fields))
	write := func(key string, value []byte) {
		if len(written) > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(value)
		written[key] = true
	}

	for _, f := range fields {
		var (
			value []byte
			err   error
		)
		switch {
		case f.str != nil && *f.str != "":
			value, err = json.Marshal(*f.str)
		case f.num != nil && *f.num != nil:
			value, err = json.Marshal(**f.num)
		case extra[f.key] != nil:
			value = extra[f.key]
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		write(f.key, value)
	}

	rest := make([]string, 0, len(extra))
	for k := range extra {
		if !written[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		write(k, extra[k])
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// setExtra records the raw value of key after a typed write. An empty string
// is kept as an explicit "" so that it survives a save.
func setExtra(extra *map[string]json.RawMessage, key, value string) {
	delete(*extra, key)
	if value == "" {
		if *extra == nil {
			*extra = map[string]json.RawMessage{}
		}
		(*extra)[key] = json.RawMessage(`""`)
	}
	if len(*extra) == 0 {
		*extra = nil
	}
}

func dropExtra(extra *map[string]json.RawMessage, key string) {
	delete(*extra, key)
	if len(*extra) == 0 {
		*extra = nil
	}
}

func cloneExtra(extra map[string]json.RawMessage) map[string]json.RawMessage {
	if extra == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(extra))
	for k, v := range extra {
		out[k] = bytes.Clone(v)
	}
	return out
}
