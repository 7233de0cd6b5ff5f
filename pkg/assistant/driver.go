// Package assistant defines the boundary to the external conversational-memory
// service.
//
// The service exposes three capabilities the system consumes: creating the
// shared assistant identity, creating an isolated conversation thread under
// it, and posting a message into a thread to receive a free-text reply. One
// thread maps to exactly one client; the assistant is shared across all of
// them.
//
// Drivers are pluggable via configuration:
//
//	assistant.provider = "backboard"   # or "offline"
package assistant

import "context"

// Driver is the client for the external service. Calls are not retried;
// failures surface to the caller immediately.
type Driver interface {
	// CreateAssistant registers the shared assistant identity and returns
	// its id. Called at most once per store lifetime.
	CreateAssistant(ctx context.Context, name, description string) (string, error)

	// CreateThread opens a new isolated conversation thread under the
	// assistant and returns its id.
	CreateThread(ctx context.Context, assistantID string) (string, error)

	// SendMessage posts content into the thread and returns the service's
	// free-text reply.
	SendMessage(ctx context.Context, threadID, content string) (string, error)

	// Close releases driver resources.
	Close() error
}
