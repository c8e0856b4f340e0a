package editor

import (
	"context"
	"errors"
	"fmt"

	"pagecraft/utils"
)

var ErrSaveFailed = errors.New("save failed")

// StatusKind is the phase of the last save
type StatusKind string

const (
	StatusIdle   StatusKind = ""
	StatusSaving StatusKind = "saving"
	StatusSaved  StatusKind = "saved"
	StatusFailed StatusKind = "failed"
)

var statusMessages = map[StatusKind]string{
	StatusSaving: "status_saving",
	StatusSaved:  "status_saved",
	StatusFailed: "status_save_failed",
}

// Status is the save status line
type Status struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message"`
}

// Save sends the whole working copy to the Site API. While the request is in
// flight the status reads "saving". Success shows "saved" and clears the line
// after StatusClearDelay; failure shows a distinct message and keeps it. The
// working copy is never rolled back and nothing is retried.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	e.setStatus(StatusSaving)
	snapshot := e.doc.Clone()
	api, token := e.api, e.token
	e.mu.Unlock()

	err := api.SaveSite(ctx, token, snapshot)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		utils.Log.Warn("Editor save failed: %v", err)
		e.setStatus(StatusFailed)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	e.setStatus(StatusSaved)
	// the reset is never cancelled; it clears whatever the line shows by then
	e.opts.AfterFunc(e.opts.StatusClearDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.setStatus(StatusIdle)
	})
	return nil
}

// Status returns the current save status
func (e *Editor) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// setStatus updates the status line and repaints (must be called with lock held)
func (e *Editor) setStatus(kind StatusKind) {
	e.status = Status{Kind: kind}
	if id, ok := statusMessages[kind]; ok {
		e.status.Message = utils.T(e.opts.Localizer, id)
	}
	e.refresh()
}
