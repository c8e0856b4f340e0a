package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"typed", `{"id":"a","type":"text","x":0,"y":12.5,"content":"Hallo"}`},
		{"explicit empty strings", `{"id":"a","type":"text","content":"","color":""}`},
		{"unknown keys", `{"id":"a","zIndex":3,"meta":{"tags":["x"]}}`},
		{"mistyped values", `{"id":"a","fontSize":"24","x":"far","align":7}`},
		{"nulls", `{"id":"a","url":null,"width":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var el Element
			require.NoError(t, json.Unmarshal([]byte(tt.in), &el))
			out, err := json.Marshal(el)
			require.NoError(t, err)
			assert.JSONEq(t, tt.in, string(out))
		})
	}
}

func TestElementDecodeTypes(t *testing.T) {
	var el Element
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","type":"button","fontSize":"24","width":0,"content":""}`), &el))

	assert.Equal(t, "a", el.ID)
	assert.Equal(t, ElementButton, el.Type)
	assert.Nil(t, el.FontSize)
	require.NotNil(t, el.Width)
	assert.Equal(t, 0.0, *el.Width)
	assert.Equal(t, "", el.Content)
	assert.Contains(t, el.Extra, "content")
	assert.Contains(t, el.Extra, "fontSize")
}

func TestElementDecodeRejectsNonObjects(t *testing.T) {
	var el Element
	assert.Error(t, json.Unmarshal([]byte(`5`), &el))
}

func TestApplyReplacesRawValues(t *testing.T) {
	var el Element
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","fontSize":"24","content":"Hallo","zIndex":3}`), &el))

	ElementPatch{FontSize: Float(30), Content: String("")}.Apply(&el)

	out, err := json.Marshal(el)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","fontSize":30,"content":"","zIndex":3}`, string(out))

	ElementPatch{Content: String("Neu")}.Apply(&el)
	out, err = json.Marshal(el)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","fontSize":30,"content":"Neu","zIndex":3}`, string(out))
}

func TestSettingsSet(t *testing.T) {
	var s Settings
	require.NoError(t, json.Unmarshal([]byte(`{"fontFamily":"serif","theme":"dark"}`), &s))

	assert.True(t, s.Set("backgroundColor", ""))
	assert.True(t, s.Set("fontFamily", "mono"))
	assert.False(t, s.Set("theme", "light"))

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"backgroundColor":"","fontFamily":"mono","theme":"dark"}`, string(out))
}

func TestCloneCopiesExtra(t *testing.T) {
	doc := SiteDocument{Elements: []Element{{ID: "a"}}}
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","zIndex":3}`), &doc.Elements[0]))

	c := doc.Clone()
	c.Elements[0].Extra["zIndex"] = json.RawMessage(`4`)

	assert.JSONEq(t, `3`, string(doc.Elements[0].Extra["zIndex"]))
}
