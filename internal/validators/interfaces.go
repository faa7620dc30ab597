// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks requests entering the replication engine before
// any store is touched.
//
// A Validator accepts any supported request value and an optional list of
// field names that restricts which rules are applied. Services wrap the
// returned sentinel with their own validation error.
package validators

import "context"

// Validator validates the provided input and optionally restricts
// validation to specific named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
