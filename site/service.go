// Package site holds the operations behind the Site API. The HTTP handlers and
// the in-process editor backend both go through Service.
package site

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pagecraft/auth"
	"pagecraft/models"
	"pagecraft/storage"
	"pagecraft/utils"
)

// ErrInvalidDocument means settings was not an object or elements was not a list
var ErrInvalidDocument = errors.New("invalid site data")

// EventSiteSaved is published after every successful save
const EventSiteSaved = "site_saved"

// Event describes a change to the persisted document
type Event struct {
	Type     string    `json:"type"`
	Elements int       `json:"elements"`
	Time     time.Time `json:"time"`
}

// Publisher receives change events; delivery is best-effort
type Publisher interface {
	Publish(event Event)
}

// Service reads and replaces the site document
type Service struct {
	repo      storage.SiteRepository
	auth      *auth.Service
	publisher Publisher
}

// NewService creates a site service. publisher may be nil.
func NewService(repo storage.SiteRepository, authService *auth.Service, publisher Publisher) *Service {
	return &Service{repo: repo, auth: authService, publisher: publisher}
}

// Get returns the persisted document or the structural fallback
func (s *Service) Get() models.SiteDocument {
	return s.repo.Load()
}

// Save replaces the persisted document wholesale
func (s *Service) Save(doc models.SiteDocument) error {
	doc = doc.Normalize()
	if err := s.repo.Save(doc); err != nil {
		return fmt.Errorf("failed to save site: %w", err)
	}

	utils.Log.WithField("elements", len(doc.Elements)).Info("Site document saved")

	if s.publisher != nil {
		s.publisher.Publish(Event{Type: EventSiteSaved, Elements: len(doc.Elements), Time: time.Now()})
	}
	return nil
}

// SaveRaw validates a request body and saves it. The store is untouched when
// validation fails.
func (s *Service) SaveRaw(body []byte) error {
	doc, err := DecodeDocument(body)
	if err != nil {
		return err
	}
	return s.Save(doc)
}

// Login checks credentials and returns a token
func (s *Service) Login(username, password string) (string, error) {
	return s.auth.Login(username, password)
}

// Verify checks a token presented on a protected request
func (s *Service) Verify(token string) error {
	return s.auth.Verify(token)
}

// DecodeDocument parses {settings, elements}. settings must be a JSON object
// and elements a JSON array of objects. Attribute values are not type checked;
// whatever does not fit a typed field is kept as is and rendered with defaults.
func DecodeDocument(body []byte) (models.SiteDocument, error) {
	var raw struct {
		Settings json.RawMessage `json:"settings"`
		Elements json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.SiteDocument{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if !startsWith(raw.Settings, '{') {
		return models.SiteDocument{}, fmt.Errorf("%w: settings must be an object", ErrInvalidDocument)
	}
	if !startsWith(raw.Elements, '[') {
		return models.SiteDocument{}, fmt.Errorf("%w: elements must be a list", ErrInvalidDocument)
	}

	var doc models.SiteDocument
	if err := json.Unmarshal(raw.Settings, &doc.Settings); err != nil {
		return models.SiteDocument{}, fmt.Errorf("%w: settings: %v", ErrInvalidDocument, err)
	}
	if err := json.Unmarshal(raw.Elements, &doc.Elements); err != nil {
		return models.SiteDocument{}, fmt.Errorf("%w: elements: %v", ErrInvalidDocument, err)
	}
	return doc.Normalize(), nil
}

func startsWith(raw json.RawMessage, b byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == b
}

// Local adapts Service to the editor's backend interface without a network hop
type Local struct {
	Service *Service
}

func (l Local) Login(_ context.Context, username, password string) (string, error) {
	return l.Service.Login(username, password)
}

func (l Local) FetchSite(_ context.Context) (models.SiteDocument, error) {
	return l.Service.Get(), nil
}

func (l Local) SaveSite(_ context.Context, token string, doc models.SiteDocument) error {
	if err := l.Service.Verify(token); err != nil {
		return err
	}
	return l.Service.Save(doc)
}
