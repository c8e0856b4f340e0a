package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pagecraft/utils"
)

// ReadJSON decodes the file at path into a T. A missing, empty or malformed file
// yields fallback; malformed content is logged but never surfaced to the caller.
func ReadJSON[T any](path string, fallback T) T {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			utils.Log.Error("Error reading JSON %s: %v", path, err)
		}
		return fallback
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return fallback
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		utils.Log.Error("Error reading JSON %s: %v", path, err)
		return fallback
	}
	return out
}

// WriteJSON pretty-prints v to path, replacing the file wholesale
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// EnsureJSON writes def to path unless the file already exists
func EnsureJSON(path string, def any) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return WriteJSON(path, def)
}
