package notes

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/Juliand6/therapy-assistant/pkg/therapy"
)

// GenerateNote summarizes one session transcript into a structured note via
// the client's thread and appends the result to the client's session history.
//
// Exactly one SessionNote is appended whether or not the reply parses: a
// malformed reply is downgraded to a recorded {error, raw} value, never an
// error. sessionNumber <= 0 defaults to one past the stored session count.
func (s *Service) GenerateNote(ctx context.Context, clientID, transcript string, sessionNumber int) (therapy.Note, error) {
	if strings.TrimSpace(transcript) == "" {
		return therapy.Note{}, errMissing("transcript")
	}
	if err := s.requireClient(clientID); err != nil {
		return therapy.Note{}, err
	}

	unlock := s.lockClient(clientID)
	defer unlock()

	threadID, err := s.threadFor(ctx, clientID)
	if err != nil {
		return therapy.Note{}, err
	}

	if sessionNumber <= 0 {
		s.docMu.Lock()
		sessionNumber = len(s.doc.SessionsByClient[clientID]) + 1
		s.docMu.Unlock()
	}

	reply, err := s.ai.SendMessage(ctx, threadID, notePrompt(transcript, sessionNumber))
	if err != nil {
		return therapy.Note{}, err
	}

	note := therapy.ParseNote(reply)
	if !note.Parsed() {
		s.logger.Warn("note reply did not parse, recording raw",
			zap.String("client_id", clientID),
			zap.Int("session_number", sessionNumber),
		)
	}

	record := therapy.SessionNote{
		SessionNumber: sessionNumber,
		CreatedAt:     s.now().UTC(),
		Note:          note,
	}

	s.docMu.Lock()
	s.doc.SessionsByClient[clientID] = append(s.doc.SessionsByClient[clientID], record)
	err = s.save()
	s.docMu.Unlock()
	if err != nil {
		return therapy.Note{}, err
	}

	// Best-effort recall bias: restate the note as a labeled entry in the
	// same thread. The SessionNote above is already persisted; a failure
	// here is logged, not surfaced.
	if _, err := s.ai.SendMessage(ctx, threadID, recallEntry(sessionNumber, noteText(note))); err != nil {
		s.logger.Warn("recall entry not stored",
			zap.String("client_id", clientID),
			zap.Int("session_number", sessionNumber),
			zap.Error(err),
		)
	}

	return note, nil
}

// noteText renders the note for the recall entry: structured notes as JSON,
// unparsed ones as their raw reply.
func noteText(note therapy.Note) string {
	if !note.Parsed() {
		return note.Raw
	}
	data, err := json.Marshal(note)
	if err != nil {
		return note.Raw
	}
	return string(data)
}
