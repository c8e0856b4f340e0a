package storage

import (
	"fmt"
	"sync"

	"pagecraft/config"
	"pagecraft/models"
)

// SiteRepository persists the single site document. Load never fails: any read
// problem degrades to the structural fallback.
type SiteRepository interface {
	Load() models.SiteDocument
	Save(doc models.SiteDocument) error
	Close() error
}

// SiteFile keeps the site document in one pretty-printed JSON file.
// Writes from this process are serialized; other processes are not coordinated
// and the last save wins.
type SiteFile struct {
	path string
	mu   sync.Mutex
}

// NewSiteFile returns a repository reading and writing path. It does not touch the disk.
func NewSiteFile(path string) *SiteFile {
	return &SiteFile{path: path}
}

// Init creates the data directory and seeds the default document if absent
func (s *SiteFile) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return EnsureJSON(s.path, models.DefaultSite())
}

func (s *SiteFile) Load() models.SiteDocument {
	return ReadJSON(s.path, models.EmptySite()).Normalize()
}

func (s *SiteFile) Save(doc models.SiteDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return WriteJSON(s.path, doc.Normalize())
}

func (s *SiteFile) Close() error {
	return nil
}

// OpenSite opens the repository selected by cfg.Storage.Driver and seeds it
func OpenSite(cfg *config.Config) (SiteRepository, error) {
	switch cfg.Storage.Driver {
	case config.DriverBolt:
		return OpenSiteBolt(cfg.SiteDB())
	case config.DriverFile, "":
		repo := NewSiteFile(cfg.SiteFile())
		if err := repo.Init(); err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
