// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Request decoding errors. Both map to 400 Bad Request.
var (
	// ErrInvalidJSON is returned when a request body is not the expected
	// JSON document.
	ErrInvalidJSON = errors.New("invalid JSON body")

	// ErrInvalidQueryParam is returned for malformed query parameters such
	// as a non-numeric limit or a non-RFC3339 timestamp.
	ErrInvalidQueryParam = errors.New("invalid query parameter")
)
