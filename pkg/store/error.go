package store

import "errors"

// ErrPersist wraps any failure to rewrite the persisted document.
// It surfaces to the caller as an internal fault; the in-memory document has
// already advanced past what is on disk.
var ErrPersist = errors.New("document not persisted")
