package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pagecraft/models"
	"pagecraft/utils"

	bolt "go.etcd.io/bbolt"
)

var (
	siteBucket  = []byte("site")
	documentKey = []byte("document")
)

// SiteBolt keeps the site document in a bbolt database so that every save is a
// single transaction.
type SiteBolt struct {
	db *bolt.DB
}

// OpenSiteBolt opens (or creates) the database at dbPath and seeds the default document
func OpenSiteBolt(dbPath string) (*SiteBolt, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(siteBucket)
		if err != nil {
			return fmt.Errorf("create bucket %s: %w", siteBucket, err)
		}
		if b.Get(documentKey) != nil {
			return nil
		}
		encoded, err := json.Marshal(models.DefaultSite())
		if err != nil {
			return err
		}
		return b.Put(documentKey, encoded)
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SiteBolt{db: db}, nil
}

func (s *SiteBolt) Load() models.SiteDocument {
	doc := models.EmptySite()

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(siteBucket)
		if b == nil {
			return nil
		}
		data := b.Get(documentKey)
		if data == nil {
			return nil
		}
		var decoded models.SiteDocument
		if err := json.Unmarshal(data, &decoded); err != nil {
			return err
		}
		doc = decoded
		return nil
	})
	if err != nil {
		utils.Log.Error("Error reading site document from bolt: %v", err)
		return models.EmptySite()
	}

	return doc.Normalize()
}

func (s *SiteBolt) Save(doc models.SiteDocument) error {
	encoded, err := json.Marshal(doc.Normalize())
	if err != nil {
		return fmt.Errorf("failed to encode site document: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(siteBucket)
		if err != nil {
			return err
		}
		return b.Put(documentKey, encoded)
	})
}

func (s *SiteBolt) Close() error {
	return s.db.Close()
}
