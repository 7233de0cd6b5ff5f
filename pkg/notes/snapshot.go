package notes

import (
	"context"

	"github.com/Juliand6/therapy-assistant/pkg/therapy"
)

// Snapshot asks the service to synthesize the aggregate client view from its
// thread history. The result is recomputed every call and never persisted;
// clients with zero saved sessions still hit the service and come back as a
// low-confidence, mostly-empty structure. The same parse-or-fallback contract
// as note generation applies.
func (s *Service) Snapshot(ctx context.Context, clientID string) (therapy.SnapshotResult, error) {
	if err := s.requireClient(clientID); err != nil {
		return therapy.SnapshotResult{}, err
	}

	threadID, err := s.threadFor(ctx, clientID)
	if err != nil {
		return therapy.SnapshotResult{}, err
	}

	reply, err := s.ai.SendMessage(ctx, threadID, snapshotPrompt())
	if err != nil {
		return therapy.SnapshotResult{}, err
	}

	return therapy.ParseSnapshot(reply), nil
}
