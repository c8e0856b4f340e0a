// Package editor is the admin editor: one Editor owns the working copy of the
// site document, the selection and the active drag, and repaints a full render
// tree after every change. UI toolkits plug in through Painter.
package editor

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"pagecraft/models"
	"pagecraft/render"
	"pagecraft/utils"

	"github.com/nicksnyder/go-i18n/v2/i18n"
)

var (
	ErrLoginFailed = errors.New("login failed")
	ErrNoSelection = errors.New("no element selected")
)

// SiteAPI is the editor's view of the Site API
type SiteAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
	FetchSite(ctx context.Context) (models.SiteDocument, error)
	SaveSite(ctx context.Context, token string, doc models.SiteDocument) error
}

// View is everything a painter shows
type View struct {
	Tree     render.Tree `json:"tree"`
	Panel    Panel       `json:"panel"`
	Status   Status      `json:"status"`
	Selected string      `json:"selected,omitempty"`
	Dragging bool        `json:"dragging"`
}

// Painter receives every new view. It is called with the editor lock held and
// must not call back into the editor.
type Painter interface {
	Paint(View)
}

// PainterFunc adapts a function to Painter
type PainterFunc func(View)

func (f PainterFunc) Paint(v View) { f(v) }

// Options tune an Editor. Zero values pick sensible defaults.
type Options struct {
	Painter          Painter
	Localizer        *i18n.Localizer
	StatusClearDelay time.Duration
	// AfterFunc schedules the status reset; defaults to time.AfterFunc
	AfterFunc func(d time.Duration, f func())
	// NewID generates element ids; defaults to "el_<unixMillis>_<random>"
	NewID func() string
}

// Editor is one admin's editing session
type Editor struct {
	mu         sync.Mutex
	api        SiteAPI
	token      string
	doc        models.SiteDocument
	selectedID string
	drag       *Drag
	status     Status
	view       View
	opts       Options
}

// Open logs in through api, fetches the document and returns a ready editor.
// Any failure on the way is reported as ErrLoginFailed.
func Open(ctx context.Context, api SiteAPI, username, password string, opts Options) (*Editor, error) {
	token, err := api.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	doc, err := api.FetchSite(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	return New(api, token, doc, opts), nil
}

// New creates an editor around an already fetched document
func New(api SiteAPI, token string, doc models.SiteDocument, opts Options) *Editor {
	if opts.StatusClearDelay <= 0 {
		opts.StatusClearDelay = 1500 * time.Millisecond
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	if opts.NewID == nil {
		opts.NewID = NewElementID
	}

	e := &Editor{
		api:   api,
		token: token,
		doc:   doc.Clone(),
		opts:  opts,
	}

	e.mu.Lock()
	e.refresh()
	e.mu.Unlock()
	return e
}

// NewElementID returns "el_<unixMillis>_<0..9998>". Collisions are not checked.
func NewElementID() string {
	return "el_" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + strconv.Itoa(rand.IntN(9999))
}

// LoginFailedMessage is the generic message shown for any failed login
func LoginFailedMessage(localizer *i18n.Localizer) string {
	return utils.T(localizer, "login_failed")
}

// View returns the current view
func (e *Editor) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view
}

// Document returns a copy of the working copy
func (e *Editor) Document() models.SiteDocument {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Clone()
}

// SelectedID returns the selected element id, or "" when nothing is selected
func (e *Editor) SelectedID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectedID
}

// Select makes id the single selected element. An id that is not in the
// document leaves nothing selected.
func (e *Editor) Select(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.doc.Index(id) < 0 {
		id = ""
	}
	e.selectedID = id
	e.refresh()
}

// ClickElement handles a click on an element. It selects the element and does
// not reach the canvas handler.
func (e *Editor) ClickElement(id string) {
	e.Select(id)
}

// ClickCanvas handles a click on the empty canvas and clears the selection.
// While a drag is active the pointer went down on an element, so the click is
// the tail of that press and keeps the selection.
func (e *Editor) ClickCanvas() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.drag == nil {
		e.selectedID = ""
	}
	e.refresh()
}

// SetProperty applies one property-panel edit to the selected element
func (e *Editor) SetProperty(field Field, raw string) error {
	patch, err := field.Patch(raw)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.doc.Index(e.selectedID)
	if e.selectedID == "" || i < 0 {
		return ErrNoSelection
	}
	patch.Apply(&e.doc.Elements[i])
	e.refresh()
	return nil
}

// SetSetting updates one global setting
func (e *Editor) SetSetting(field SettingField, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.doc.Settings.Set(string(field), value) {
		return fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}
	e.refresh()
	return nil
}

// AddElement appends a new element of type t with the add-time defaults. It is
// painted above every existing element and is not selected.
func (e *Editor) AddElement(t models.ElementType) models.Element {
	e.mu.Lock()
	defer e.mu.Unlock()

	el := models.Element{
		ID:       e.opts.NewID(),
		X:        models.Float(40),
		Y:        models.Float(40),
		Width:    models.Float(render.DefaultWidth),
		Height:   models.Float(render.DefaultHeight),
		Radius:   models.Float(render.DefaultRadius),
		Color:    render.DefaultColor,
		BgColor:  "rgba(15, 23, 42, 0.9)",
		FontSize: models.Float(render.DefaultFontSize),
		Align:    models.AlignLeft,
		Shadow:   models.ShadowSoft,
	}

	if t == models.ElementButton {
		el.Type = models.ElementButton
		el.Content = "Neuer Button"
		el.URL = "https://example.com"
	} else {
		el.Type = models.ElementText
		el.Content = "Neuer Text"
	}

	e.doc.Elements = append(e.doc.Elements, el)
	e.refresh()
	return el.Clone()
}

// DeleteSelected removes the selected element and clears the selection. It
// reports false when nothing was selected.
func (e *Editor) DeleteSelected() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.selectedID == "" {
		return false
	}

	kept := make([]models.Element, 0, len(e.doc.Elements))
	for _, el := range e.doc.Elements {
		if el.ID != e.selectedID {
			kept = append(kept, el)
		}
	}
	e.doc.Elements = kept
	e.selectedID = ""
	e.refresh()
	return true
}

// refresh rebuilds the tree and the panel from scratch and paints them
// (must be called with lock held)
func (e *Editor) refresh() {
	e.view = View{
		Tree:     render.Build(e.doc, e.selectedID),
		Panel:    syncPanel(e.doc, e.selectedID),
		Status:   e.status,
		Selected: e.selectedID,
		Dragging: e.drag != nil,
	}
	if e.opts.Painter != nil {
		e.opts.Painter.Paint(e.view)
	}
}
