// Package notes implements the clinician-facing core: the client registry,
// the per-client conversation-thread registry, structured note generation,
// on-demand snapshots, and recall questions answered from saved history.
//
// One Service owns the in-process document for the process lifetime. Every
// mutation goes through its methods and is flushed to the store driver before
// the call returns. Mutations touching the same client are serialized with a
// per-client lock; the accepted cross-process race remains out of scope.
package notes

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Juliand6/therapy-assistant/pkg/assistant"
	"github.com/Juliand6/therapy-assistant/pkg/store"
	"github.com/Juliand6/therapy-assistant/pkg/therapy"
)

// Service coordinates the store, the external assistant service, and the
// in-process document.
type Service struct {
	store  store.Driver
	ai     assistant.Driver
	logger *zap.Logger

	// injected for deterministic tests
	now   func() time.Time
	newID func() string

	// docMu guards doc and its saves; threadMu serializes first-use
	// assistant/thread creation.
	docMu    sync.Mutex
	threadMu sync.Mutex
	doc      *therapy.Document

	// clientMu serializes note generation per client id.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewService loads the persisted document and returns a ready service.
func NewService(storer store.Driver, ai assistant.Driver, logger *zap.Logger) (*Service, error) {
	doc, err := storer.Load()
	if err != nil {
		return nil, err
	}

	return &Service{
		store:  storer,
		ai:     ai,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
		doc:    doc,
		locks:  make(map[string]*sync.Mutex),
	}, nil
}

// lockClient acquires the mutation lock for one client id and returns the
// release function.
func (s *Service) lockClient(clientID string) func() {
	s.locksMu.Lock()
	mu, ok := s.locks[clientID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[clientID] = mu
	}
	s.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// save flushes the document under docMu. The in-memory mutation stays in
// place even when the flush fails.
func (s *Service) save() error {
	return s.store.Save(s.doc)
}
