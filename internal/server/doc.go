// Package server runs the admin HTTP API of an edge node together with its
// background jobs, and shuts both down gracefully on SIGINT, SIGTERM or
// SIGQUIT.
package server
