package server

import "context"

// Server defines the lifecycle contract of the edge node process.
//
// Implementations block in [RunServer] until shutdown is requested and
// release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}

// BackgroundJob is started with the server and stopped before the HTTP
// listener is closed. *workers.Workers implements it.
type BackgroundJob interface {
	Start(ctx context.Context)
	Stop()
}
