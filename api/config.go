// Package api provides the HTTP relay consumed by the therapist-facing UI.
package api

// Config is the relay server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8080")
	ListenAddr string
}
