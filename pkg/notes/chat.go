package notes

import (
	"context"
	"strings"
)

// Ask forwards a clinician question into the client's thread. The prompt
// constrains the service to saved notes and asks it to cite the session
// numbers it used; the free-text reply is returned verbatim with no parsing
// and no persistence.
func (s *Service) Ask(ctx context.Context, clientID, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", errMissing("question")
	}
	if err := s.requireClient(clientID); err != nil {
		return "", err
	}

	threadID, err := s.threadFor(ctx, clientID)
	if err != nil {
		return "", err
	}

	return s.ai.SendMessage(ctx, threadID, questionPrompt(question))
}
