// Package jsonfile implements the store driver over a single JSON file.
//
// The whole document is rewritten on every save, with no write batching and
// no transactional rollback. A crash mid-write can corrupt the file; Load
// treats a corrupt or missing file as the empty default shape.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Juliand6/therapy-assistant/pkg/store"
	"github.com/Juliand6/therapy-assistant/pkg/therapy"
)

// Driver persists the document at a fixed path.
type Driver struct {
	path string
}

// NewDriver creates a JSON-file store driver writing to path.
func NewDriver(path string) *Driver {
	return &Driver{path: path}
}

// Path returns the file path the driver writes to.
func (d *Driver) Path() string {
	return d.path
}

// Load reads the document from disk. Missing and malformed files both yield
// a fresh empty document.
func (d *Driver) Load() (*therapy.Document, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return therapy.NewDocument(), nil
		}
		return nil, fmt.Errorf("reading document: %w", err)
	}

	doc := &therapy.Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return therapy.NewDocument(), nil
	}

	doc.Normalize()
	return doc, nil
}

// Save overwrites the file with the full serialized document.
func (d *Driver) Save(doc *therapy.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding document: %v", store.ErrPersist, err)
	}

	if dir := filepath.Dir(d.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: creating %s: %v", store.ErrPersist, dir, err)
		}
	}

	if err := os.WriteFile(d.path, data, 0o600); err != nil {
		return fmt.Errorf("%w: writing %s: %v", store.ErrPersist, d.path, err)
	}

	return nil
}

// Close is a no-op for the file driver.
func (d *Driver) Close() error {
	return nil
}

var _ store.Driver = (*Driver)(nil)
