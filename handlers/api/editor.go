package api

import (
	"errors"
	"time"

	"pagecraft/editor"
	"pagecraft/middleware"
	"pagecraft/models"
	"pagecraft/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// EditorHandler exposes editor sessions over HTTP. Every call answers with
// the session's current view, which the browser paints as-is.
type EditorHandler struct {
	store      *editor.Store
	backend    editor.SiteAPI
	clearDelay time.Duration
}

// NewEditorHandler creates a new editor handler
func NewEditorHandler(store *editor.Store, backend editor.SiteAPI, clearDelay time.Duration) *EditorHandler {
	return &EditorHandler{store: store, backend: backend, clearDelay: clearDelay}
}

// SessionResponse is the body of every editor endpoint
type SessionResponse struct {
	Session    string      `json:"session"`
	View       editor.View `json:"view"`
	ClearAfter int64       `json:"clearAfterMs,omitempty"`
}

type selectRequest struct {
	ID string `json:"id"`
}

type dragStartRequest struct {
	ID        string       `json:"id"`
	Pointer   editor.Point `json:"pointer"`
	Box       editor.Point `json:"box"`
	Container editor.Point `json:"container"`
}

type dragMoveRequest struct {
	Pointer editor.Point `json:"pointer"`
}

type fieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type addRequest struct {
	Type models.ElementType `json:"type"`
}

// CreateSession handles POST /api/editor/sessions
func (h *EditorHandler) CreateSession(c *fiber.Ctx) error {
	token, _ := c.Locals(middleware.AdminTokenKey).(string)

	doc, err := h.backend.FetchSite(c.UserContext())
	if err != nil {
		return utils.InternalServerError("Failed to load site", err)
	}

	localizer, _ := c.Locals("localizer").(*i18n.Localizer)
	ed := editor.New(h.backend, token, doc, editor.Options{
		Localizer:        localizer,
		StatusClearDelay: h.clearDelay,
	})
	sess := h.store.Add(ed)

	utils.Log.WithField("session", sess.ID).Info("Editor session opened")
	return c.Status(fiber.StatusCreated).JSON(SessionResponse{Session: sess.ID, View: ed.View()})
}

// GetSession handles GET /api/editor/sessions/:id
func (h *EditorHandler) GetSession(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}
	return h.respond(c, sess)
}

// CloseSession handles DELETE /api/editor/sessions/:id
func (h *EditorHandler) CloseSession(c *fiber.Ctx) error {
	id := c.Params("id")
	h.store.Remove(id)
	utils.Log.WithField("session", id).Info("Editor session closed")
	return c.SendStatus(fiber.StatusNoContent)
}

// Select handles POST /api/editor/sessions/:id/select
func (h *EditorHandler) Select(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}
	var req selectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid request body", err)
	}
	sess.Editor.ClickElement(req.ID)
	return h.respond(c, sess)
}

// ClickCanvas handles POST /api/editor/sessions/:id/canvas
func (h *EditorHandler) ClickCanvas(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}
	sess.Editor.ClickCanvas()
	return h.respond(c, sess)
}

// BeginDrag handles POST /api/editor/sessions/:id/drag
func (h *EditorHandler) BeginDrag(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}
	var req dragStartRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid request body", err)
	}

	if _, err := sess.Editor.BeginDrag(req.ID, req.Pointer, req.Box, req.Container); err != nil {
		return editorError(err)
	}
	return h.respond(c, sess)
}

// MoveDrag handles PATCH /api/editor/sessions/:id/drag
func (h *EditorHandler) MoveDrag(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}
	var req dragMoveRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid request body", err)
	}

	// moves after the drag ended are ignored
	if drag := sess.Editor.ActiveDrag(); drag != nil {
		drag.Move(req.Pointer)
	}
	return h.respond(c, sess)
}

// EndDrag handles DELETE /api/editor/sessions/:id/drag
func (h *EditorHandler) EndDrag(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}
	if drag := sess.Editor.ActiveDrag(); drag != nil {
		drag.End()
	}
	return h.respond(c, sess)
}

// SetProperty handles PATCH /api/editor/sessions/:id/element
func (h *EditorHandler) SetProperty(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}
	var req fieldRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid request body", err)
	}

	if err := sess.Editor.SetProperty(editor.Field(req.Field), req.Value); err != nil {
		return editorError(err)
	}
	return h.respond(c, sess)
}

// SetSetting handles PATCH /api/editor/sessions/:id/settings
func (h *EditorHandler) SetSetting(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}
	var req fieldRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid request body", err)
	}

	if err := sess.Editor.SetSetting(editor.SettingField(req.Field), req.Value); err != nil {
		return editorError(err)
	}
	return h.respond(c, sess)
}

// AddElement handles POST /api/editor/sessions/:id/elements
func (h *EditorHandler) AddElement(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}
	var req addRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("Invalid request body", err)
	}
	sess.Editor.AddElement(req.Type)
	return h.respond(c, sess)
}

// DeleteSelected handles DELETE /api/editor/sessions/:id/elements/selected
func (h *EditorHandler) DeleteSelected(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}
	sess.Editor.DeleteSelected()
	return h.respond(c, sess)
}

// Save handles POST /api/editor/sessions/:id/save. A failed save is reported
// through the view's status line, not the HTTP status.
func (h *EditorHandler) Save(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}

	resp := SessionResponse{Session: sess.ID}
	if err := sess.Editor.Save(c.UserContext()); err == nil {
		resp.ClearAfter = h.clearDelay.Milliseconds()
	}
	resp.View = sess.Editor.View()
	return c.JSON(resp)
}

func (h *EditorHandler) session(c *fiber.Ctx) (*editor.Session, error) {
	sess, err := h.store.Get(c.Params("id"))
	if err != nil {
		return nil, utils.NotFoundError("Editor session not found", err)
	}
	return sess, nil
}

func (h *EditorHandler) respond(c *fiber.Ctx, sess *editor.Session) error {
	return c.JSON(SessionResponse{Session: sess.ID, View: sess.Editor.View()})
}

func editorError(err error) error {
	switch {
	case errors.Is(err, editor.ErrNoSelection):
		return utils.BadRequestError("No element selected", err)
	case errors.Is(err, editor.ErrUnknownField):
		return utils.BadRequestError("Unknown field", err)
	case errors.Is(err, editor.ErrElementNotFound):
		return utils.NotFoundError("Element not found", err)
	default:
		return utils.InternalServerError("Editor error", err)
	}
}
