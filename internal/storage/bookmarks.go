package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"lotto645/internal/models"
)

// BookmarkStore persists the user's saved combinations. Load runs once at
// startup; SaveAll rewrites the full list after every mutation.
type BookmarkStore interface {
	Load() ([]models.GeneratedCombination, error)
	SaveAll(bookmarks []models.GeneratedCombination) error
}

// FileStore keeps bookmarks as a single JSON document on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at path. The file is created lazily on
// the first SaveAll.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the bookmark file. A missing file means no bookmarks yet, not
// an error.
func (s *FileStore) Load() ([]models.GeneratedCombination, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bookmark file: %w", err)
	}

	var bookmarks []models.GeneratedCombination
	if err := json.Unmarshal(data, &bookmarks); err != nil {
		return nil, fmt.Errorf("decode bookmark file: %w", err)
	}
	return bookmarks, nil
}

// SaveAll rewrites the full bookmark list. The document is written to a
// temp file and renamed into place so a crash mid-write cannot corrupt the
// existing file.
func (s *FileStore) SaveAll(bookmarks []models.GeneratedCombination) error {
	if bookmarks == nil {
		bookmarks = []models.GeneratedCombination{}
	}
	data, err := json.MarshalIndent(bookmarks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create bookmark directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write bookmark file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace bookmark file: %w", err)
	}
	return nil
}
