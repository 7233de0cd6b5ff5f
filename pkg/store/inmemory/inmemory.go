// Package inmemory implements the store driver with in-process state.
// Nothing outlives the process; tests and --store "" runs use it.
package inmemory

import (
	"sync"

	"github.com/Juliand6/therapy-assistant/pkg/store"
	"github.com/Juliand6/therapy-assistant/pkg/therapy"
)

// Driver holds the last saved document in memory.
type Driver struct {
	mu  sync.Mutex
	doc *therapy.Document
}

// NewDriver creates an empty in-memory store driver.
func NewDriver() *Driver {
	return &Driver{}
}

// Load returns a deep copy of the last saved document, or the empty default
// shape when nothing has been saved.
func (d *Driver) Load() (*therapy.Document, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.doc == nil {
		return therapy.NewDocument(), nil
	}
	return d.doc.Clone(), nil
}

// Save keeps a deep copy so later caller mutations don't leak into the
// stored state.
func (d *Driver) Save(doc *therapy.Document) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.doc = doc.Clone()
	return nil
}

// Close is a no-op for the in-memory driver.
func (d *Driver) Close() error {
	return nil
}

var _ store.Driver = (*Driver)(nil)
