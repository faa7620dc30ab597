// Package http implements the admin HTTP API of an edge node.
//
// It wires chi routes for replication status, sync cycles, the mutation
// journal, conflicts, bulk pull and the storage router records endpoints.
// Request tracing, access logging, compression, rate limiting and body
// integrity checks run as middleware before a request reaches the service
// layer.
package http
