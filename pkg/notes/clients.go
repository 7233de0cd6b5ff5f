package notes

import (
	"strings"

	"github.com/Juliand6/therapy-assistant/pkg/therapy"
)

// CreateClient registers a client by display name. Creation is idempotent:
// a name differing only in case returns the already-registered record.
func (s *Service) CreateClient(name string) (therapy.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return therapy.Client{}, errMissing("name")
	}

	s.docMu.Lock()
	defer s.docMu.Unlock()

	for _, existing := range s.doc.Clients {
		if strings.EqualFold(existing.Name, name) {
			return existing, nil
		}
	}

	client := therapy.Client{
		ID:        s.newID(),
		Name:      name,
		CreatedAt: s.now().UTC(),
	}
	s.doc.Clients = append(s.doc.Clients, client)

	if err := s.save(); err != nil {
		return therapy.Client{}, err
	}

	return client, nil
}

// ListClients returns all client records in storage order. Display ordering
// is a presentation concern.
func (s *Service) ListClients() []therapy.Client {
	s.docMu.Lock()
	defer s.docMu.Unlock()

	out := make([]therapy.Client, len(s.doc.Clients))
	copy(out, s.doc.Clients)
	return out
}

// Sessions returns the ordered session notes for one client.
func (s *Service) Sessions(clientID string) ([]therapy.SessionNote, error) {
	s.docMu.Lock()
	defer s.docMu.Unlock()

	if !s.clientExists(clientID) {
		return nil, errUnknownClient(clientID)
	}

	sessions := s.doc.SessionsByClient[clientID]
	out := make([]therapy.SessionNote, len(sessions))
	for i, session := range sessions {
		session.Note = session.Note.Clone()
		out[i] = session
	}
	return out, nil
}

// clientExists must be called with docMu held.
func (s *Service) clientExists(clientID string) bool {
	for _, c := range s.doc.Clients {
		if c.ID == clientID {
			return true
		}
	}
	return false
}

// requireClient validates a non-empty, registered client id.
func (s *Service) requireClient(clientID string) error {
	if strings.TrimSpace(clientID) == "" {
		return errMissing("clientId")
	}

	s.docMu.Lock()
	defer s.docMu.Unlock()

	if !s.clientExists(clientID) {
		return errUnknownClient(clientID)
	}
	return nil
}
