// Package store provides the durable store boundary for the persisted
// therapy document.
//
// The system keeps one in-process copy of the document for its lifetime and
// funnels every mutation through read-modify-write against that copy; drivers
// only load the document at start and rewrite it whole after each mutation.
// There is no locking across processes — concurrent processes sharing a file
// are unsupported.
//
// Drivers are pluggable: jsonfile persists to a single JSON file, inmemory
// backs tests and ephemeral runs.
package store

import (
	"github.com/Juliand6/therapy-assistant/pkg/therapy"
)

// Driver loads and rewrites the persisted document.
type Driver interface {
	// Load reads the document. A missing or malformed source yields the
	// empty default shape rather than an error.
	Load() (*therapy.Document, error)

	// Save serializes the full document and overwrites whatever was
	// persisted before. A failed save does not roll back the caller's
	// in-memory mutation; memory and disk may diverge until the next
	// successful save.
	Save(doc *therapy.Document) error

	// Close releases driver resources.
	Close() error
}
