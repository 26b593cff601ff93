package server

import "context"

// Server defines the lifecycle of the transport server.
type Server interface {
	// RunServer serves until ctx is cancelled or SIGTERM, SIGINT or SIGQUIT
	// arrives, then shuts down gracefully. It returns nil after a clean
	// shutdown.
	RunServer(ctx context.Context) error

	// Shutdown stops accepting connections and waits for in-flight requests,
	// at most until ctx ends.
	Shutdown(ctx context.Context) error
}
