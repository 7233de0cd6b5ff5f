package notes

import "context"

const (
	assistantName        = "Therapy Notes Assistant"
	assistantDescription = "Therapist-facing documentation + memory assistant. " +
		"Summarizes transcripts into structured notes and answers therapist " +
		"questions based on past saved notes. Do not diagnose or provide " +
		"medical advice."
)

// threadFor returns the external thread id for the client, creating the
// shared assistant identity and then the client's thread on first use. Both
// acquisitions persist before the id is returned, so a crash between remote
// calls never loses an id the service already knows about. Idempotent after
// the first successful call.
func (s *Service) threadFor(ctx context.Context, clientID string) (string, error) {
	s.threadMu.Lock()
	defer s.threadMu.Unlock()

	s.docMu.Lock()
	threadID, ok := s.doc.ThreadsByClient[clientID]
	assistantID := s.doc.AssistantID
	s.docMu.Unlock()

	if ok {
		return threadID, nil
	}

	if assistantID == "" {
		id, err := s.ai.CreateAssistant(ctx, assistantName, assistantDescription)
		if err != nil {
			return "", err
		}

		s.docMu.Lock()
		s.doc.AssistantID = id
		err = s.save()
		s.docMu.Unlock()
		if err != nil {
			return "", err
		}
		assistantID = id
	}

	threadID, err := s.ai.CreateThread(ctx, assistantID)
	if err != nil {
		return "", err
	}

	s.docMu.Lock()
	s.doc.ThreadsByClient[clientID] = threadID
	err = s.save()
	s.docMu.Unlock()
	if err != nil {
		return "", err
	}

	return threadID, nil
}
