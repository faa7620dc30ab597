package service

import "errors"

var (
	// ErrValidation wraps every input validation failure. The concrete
	// reason (a validators sentinel) stays in the chain. Rejected
	// preconditions (offline, cycle in progress, lease held, already
	// resolved) are wrapped too, so callers can match either level.
	ErrValidation = errors.New("validation failed")

	ErrOffline         = errors.New("shared store is offline")
	ErrCycleInProgress = errors.New("sync cycle already in progress for account")
	ErrLeaseHeld       = errors.New("account lease is held by another edge node")

	ErrConflictAlreadyResolved = errors.New("conflict already resolved")
	ErrConflictAccountMismatch = errors.New("conflict belongs to another account")

	ErrChecksumMismatch = errors.New("journal payload checksum mismatch")
	ErrUnknownOperation = errors.New("unknown journal operation")

	ErrTableNotRouted = errors.New("table is not routed")
	ErrNoTablesToPull = errors.New("no tables to pull")
	ErrMissingRowID   = errors.New("row has no id")
	ErrNoPurgeCutoff  = errors.New("purge cutoff is required")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
