package api

import (
	"testing"

	"pagecraft/editor"
	"pagecraft/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSession(t *testing.T, s *testServer, token string) SessionResponse {
	t.Helper()
	resp := s.do(t, fiber.MethodPost, "/api/editor/sessions", token, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[SessionResponse](t, resp)
}

func TestEditorSessionRequiresToken(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, fiber.MethodPost, "/api/editor/sessions", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, s.store.Len())
}

func TestEditorSessionLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	opened := openSession(t, s, token)
	require.NotEmpty(t, opened.Session)
	assert.Empty(t, opened.View.Tree.Nodes)
	assert.False(t, opened.View.Panel.Visible)

	base := "/api/editor/sessions/" + opened.Session

	resp := s.do(t, fiber.MethodPost, base+"/elements", token, map[string]string{"type": "text"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	view := decode[SessionResponse](t, resp).View
	require.Len(t, view.Tree.Nodes, 1)
	id := view.Tree.Nodes[0].ID
	assert.Equal(t, "Neuer Text", view.Tree.Nodes[0].Text)
	assert.Empty(t, view.Selected)

	resp = s.do(t, fiber.MethodPost, base+"/select", token, map[string]string{"id": id})
	view = decode[SessionResponse](t, resp).View
	assert.Equal(t, id, view.Selected)
	assert.True(t, view.Panel.Visible)

	resp = s.do(t, fiber.MethodPatch, base+"/element", token, map[string]string{"field": "fontSize", "value": "24"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	view = decode[SessionResponse](t, resp).View
	assert.Equal(t, 24.0, view.Tree.Nodes[0].FontSize)
	assert.Equal(t, 24.0, view.Panel.FontSize)

	resp = s.do(t, fiber.MethodPatch, base+"/settings", token, map[string]string{"field": "gradientTo", "value": "#ff0000"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// nothing is persisted until save
	assert.Empty(t, s.repo.Load().Elements)

	resp = s.do(t, fiber.MethodPost, base+"/save", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	saved := decode[SessionResponse](t, resp)
	assert.Equal(t, editor.StatusSaved, saved.View.Status.Kind)
	assert.Equal(t, int64(1500), saved.ClearAfter)

	stored := s.repo.Load()
	require.Len(t, stored.Elements, 1)
	assert.Equal(t, id, stored.Elements[0].ID)
	assert.Equal(t, 24.0, *stored.Elements[0].FontSize)
	assert.Equal(t, "#ff0000", stored.Settings.GradientTo)

	resp = s.do(t, fiber.MethodDelete, base+"/elements/selected", token, nil)
	view = decode[SessionResponse](t, resp).View
	assert.Empty(t, view.Tree.Nodes)
	assert.Empty(t, view.Selected)

	resp = s.do(t, fiber.MethodDelete, base, token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = s.do(t, fiber.MethodGet, base, token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestEditorDragOverHTTP(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)
	require.NoError(t, s.repo.Save(models.SiteDocument{Elements: []models.Element{
		{ID: "a", Type: models.ElementText, X: models.Float(100), Y: models.Float(50)},
	}}))

	base := "/api/editor/sessions/" + openSession(t, s, token).Session

	resp := s.do(t, fiber.MethodPost, base+"/drag", token, map[string]any{
		"id":        "a",
		"pointer":   editor.Point{X: 130, Y: 85},
		"box":       editor.Point{X: 120, Y: 80},
		"container": editor.Point{X: 20, Y: 30},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	view := decode[SessionResponse](t, resp).View
	assert.True(t, view.Dragging)
	assert.Equal(t, "a", view.Selected)

	resp = s.do(t, fiber.MethodPatch, base+"/drag", token, map[string]any{"pointer": editor.Point{X: 0, Y: 200}})
	view = decode[SessionResponse](t, resp).View
	assert.Equal(t, 0.0, view.Tree.Nodes[0].Left)
	assert.Equal(t, 165.0, view.Tree.Nodes[0].Top)

	resp = s.do(t, fiber.MethodDelete, base+"/drag", token, nil)
	view = decode[SessionResponse](t, resp).View
	assert.False(t, view.Dragging)

	// a late move after the drag ended changes nothing
	resp = s.do(t, fiber.MethodPatch, base+"/drag", token, map[string]any{"pointer": editor.Point{X: 500, Y: 500}})
	view = decode[SessionResponse](t, resp).View
	assert.Equal(t, 165.0, view.Tree.Nodes[0].Top)
}

func TestEditorDragEndBeforeBegin(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)
	require.NoError(t, s.repo.Save(models.SiteDocument{Elements: []models.Element{
		{ID: "a", Type: models.ElementText, X: models.Float(100), Y: models.Float(50)},
	}}))

	base := "/api/editor/sessions/" + openSession(t, s, token).Session
	begin := map[string]any{
		"id":        "a",
		"pointer":   editor.Point{X: 130, Y: 85},
		"box":       editor.Point{X: 120, Y: 80},
		"container": editor.Point{X: 20, Y: 30},
	}

	// pointer-up overtakes its pointer-down on another connection
	resp := s.do(t, fiber.MethodDelete, base+"/drag", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = s.do(t, fiber.MethodPost, base+"/drag", token, begin)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// a click that ends the press on the element keeps it selected
	resp = s.do(t, fiber.MethodPost, base+"/canvas", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "a", decode[SessionResponse](t, resp).View.Selected)

	// the next pointer-down still starts a drag
	resp = s.do(t, fiber.MethodPost, base+"/drag", token, begin)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, decode[SessionResponse](t, resp).View.Dragging)

	resp = s.do(t, fiber.MethodDelete, base+"/drag", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.False(t, decode[SessionResponse](t, resp).View.Dragging)
}

func TestEditorErrors(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)
	base := "/api/editor/sessions/" + openSession(t, s, token).Session

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"unknown session", fiber.MethodGet, "/api/editor/sessions/nope", nil, fiber.StatusNotFound},
		{"property without selection", fiber.MethodPatch, base + "/element", map[string]string{"field": "content", "value": "x"}, fiber.StatusBadRequest},
		{"unknown setting", fiber.MethodPatch, base + "/settings", map[string]string{"field": "zIndex", "value": "1"}, fiber.StatusBadRequest},
		{"drag unknown element", fiber.MethodPost, base + "/drag", map[string]string{"id": "ghost"}, fiber.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.do(t, tt.method, tt.path, token, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, decode[map[string]string](t, resp)["error"])
		})
	}
}

func TestEditorSelectUnknownClearsSelection(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)
	base := "/api/editor/sessions/" + openSession(t, s, token).Session

	s.do(t, fiber.MethodPost, base+"/elements", token, map[string]string{"type": "button"})
	resp := s.do(t, fiber.MethodPost, base+"/select", token, map[string]string{"id": "ghost"})
	view := decode[SessionResponse](t, resp).View
	assert.Empty(t, view.Selected)
	assert.False(t, view.Panel.Visible)
	require.Len(t, view.Tree.Nodes, 1)
	assert.Equal(t, "https://example.com", view.Tree.Nodes[0].Href)
}
