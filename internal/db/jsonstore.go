// Package db persists portal state as whole JSON documents on disk.
// One process owns a document at a time; there is no locking and no
// partial-write protocol beyond atomic replacement of the file.
package db

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/campusgate/admissions/internal/app/models"
)

// Document is the single persisted record holding all portal entities
type Document struct {
	Admins       map[string]*models.Admin       `json:"admins"`
	Students     map[string]*models.Student     `json:"students"`
	Applications map[string]*models.Application `json:"admission_applications"`
}

// NewDocument returns an empty document with all maps allocated
func NewDocument() *Document {
	return &Document{
		Admins:       make(map[string]*models.Admin),
		Students:     make(map[string]*models.Student),
		Applications: make(map[string]*models.Application),
	}
}

// normalize allocates any maps a hand-edited or legacy file left null
func (d *Document) normalize() {
	if d.Admins == nil {
		d.Admins = make(map[string]*models.Admin)
	}
	if d.Students == nil {
		d.Students = make(map[string]*models.Student)
	}
	if d.Applications == nil {
		d.Applications = make(map[string]*models.Application)
	}
}

// Store reads and writes the portal's state document
type Store struct {
	path string
}

// NewStore creates a store bound to the given file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store reads and writes
func (s *Store) Path() string {
	return s.path
}

// Load reads the state document. A missing file yields an empty document,
// not an error; a corrupt file is an error so state is never silently lost.
func (s *Store) Load() (*Document, error) {
	doc := NewDocument()
	err := ReadJSON(s.path, doc)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return nil, fmt.Errorf("error loading state from %s: %w", s.path, err)
	}

	doc.normalize()
	return doc, nil
}

// Save replaces the state document on disk
func (s *Store) Save(doc *Document) error {
	if err := WriteJSON(s.path, doc); err != nil {
		return fmt.Errorf("error saving state to %s: %w", s.path, err)
	}
	return nil
}

// ReadJSON decodes the JSON file at path into v
func ReadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("malformed JSON in %s: %w", path, err)
	}

	return nil
}

// WriteJSON encodes v and atomically replaces the file at path:
// write to a temp file in the same directory, fsync, then rename.
// A failed write never leaves a truncated document behind.
func WriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// clean up the temp file on any failure path
	defer func() {
		if tmpName != "" {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	tmpName = ""

	return nil
}
