// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// admin API handlers and middleware of an edge node.
//
// All Msg* constants are human-readable message strings written into HTTP
// response bodies when a request is rejected before it reaches a service.
// Service and store errors are answered with their own error text.
package app

const (
	// MsgNoAccountIDProvided is returned when an account-scoped route is
	// reached without an account id.
	MsgNoAccountIDProvided = "no account id provided"

	// MsgIntegrityCheckFailed is returned when the HashSHA256 header does
	// not match the request body.
	MsgIntegrityCheckFailed = "integrity check failed"

	// MsgFailedToReadBody is returned when the request body cannot be read.
	MsgFailedToReadBody = "failed to read request body"

	// MsgInvalidGzipBody is returned for a gzip Content-Encoding whose body
	// is not valid gzip.
	MsgInvalidGzipBody = "invalid gzip body"

	// MsgTooManyRequests is returned when a client exceeds its rate limit.
	MsgTooManyRequests = "too many requests"

	// MsgOnlineRequired is returned when a connectivity update has no online
	// field.
	MsgOnlineRequired = "field online is required"

	// MsgBeforeRequired is returned when a purge request has no before
	// cutoff.
	MsgBeforeRequired = "query parameter before is required"
)
