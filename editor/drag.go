package editor

import (
	"errors"
	"math"

	"pagecraft/models"
)

var ErrElementNotFound = errors.New("element not found")

// Point is a position in client (viewport) coordinates
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Drag is one pointer-down .. pointer-up session. It only acts while it is the
// editor's active drag; End detaches it unconditionally.
type Drag struct {
	editor *Editor
	id     string
	offset Point // pointer position within the element box at pointer-down
	origin Point // container top-left at pointer-down
	ended  bool
}

// BeginDrag starts dragging element id. pointer is the pointer-down position,
// box the element's top-left and container the preview container's top-left,
// all in client coordinates. The element becomes selected. A drag still
// active from an earlier pointer-down is ended first; there is only one pointer.
func (e *Editor) BeginDrag(id string, pointer, box, container Point) (*Drag, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.doc.Index(id) < 0 {
		return nil, ErrElementNotFound
	}
	if e.drag != nil {
		e.drag.ended = true
		e.drag = nil
	}

	d := &Drag{
		editor: e,
		id:     id,
		offset: Point{X: pointer.X - box.X, Y: pointer.Y - box.Y},
		origin: container,
	}
	e.drag = d
	e.selectedID = id
	e.refresh()
	return d, nil
}

// ElementID is the id of the element being dragged
func (d *Drag) ElementID() string {
	return d.id
}

// Move repositions the element so that it follows the pointer. Both axes are
// clamped to >= 0; there is no upper bound. It reports the applied position and
// false once the drag has ended.
func (d *Drag) Move(pointer Point) (Point, bool) {
	e := d.editor
	e.mu.Lock()
	defer e.mu.Unlock()

	if d.ended || e.drag != d {
		return Point{}, false
	}

	pos := Point{
		X: math.Max(0, pointer.X-d.origin.X-d.offset.X),
		Y: math.Max(0, pointer.Y-d.origin.Y-d.offset.Y),
	}

	i := e.doc.Index(d.id)
	if i < 0 {
		return Point{}, false
	}
	models.ElementPatch{X: models.Float(pos.X), Y: models.Float(pos.Y)}.Apply(&e.doc.Elements[i])
	e.refresh()
	return pos, true
}

// End finishes the drag. Calling it more than once is harmless.
func (d *Drag) End() {
	e := d.editor
	e.mu.Lock()
	defer e.mu.Unlock()

	d.ended = true
	if e.drag == d {
		e.drag = nil
		e.refresh()
	}
}

// ActiveDrag returns the drag in progress, or nil
func (e *Editor) ActiveDrag() *Drag {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.drag
}
