// Package jsonfile persists the full course set as a single JSON document on
// disk, mirroring the flashcards-file format the desktop app used.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phrazzld/studydeck/internal/domain"
	"github.com/phrazzld/studydeck/internal/store"
)

// Store reads and writes all courses to one JSON file. Saves are atomic:
// the snapshot is written to a temp file in the same directory and renamed
// over the target, so a crash mid-write never corrupts the previous state.
type Store struct {
	path string
}

// New creates a Store backed by the given file path. The file need not
// exist yet; LoadAll treats a missing file as an empty course set.
func New(path string) *Store {
	return &Store{path: path}
}

// Ensure Store implements store.CourseStore
var _ store.CourseStore = (*Store)(nil)

// LoadAll reads every persisted course in file order.
func (s *Store) LoadAll(ctx context.Context) ([]domain.Course, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Course{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var courses []domain.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}

	return courses, nil
}

// SaveAll replaces the file contents with the given snapshot.
func (s *Store) SaveAll(ctx context.Context, courses []domain.Course) error {
	data, err := json.MarshalIndent(courses, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding courses: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".courses-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}

	return nil
}
