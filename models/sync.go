// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ReplayOutcome is the structured result of pushing one journal entry to the
// shared store.
type ReplayOutcome int

const (
	OutcomeOK ReplayOutcome = iota
	OutcomeVersionConflict
	OutcomeNotFound
	OutcomeConstraintViolation
	OutcomeTransient
)

func (o ReplayOutcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeVersionConflict:
		return "version_conflict"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeConstraintViolation:
		return "constraint_violation"
	default:
		return "transient"
	}
}

// IsConflict reports whether the outcome should materialize a SyncConflict.
func (o ReplayOutcome) IsConflict() bool {
	switch o {
	case OutcomeVersionConflict, OutcomeNotFound, OutcomeConstraintViolation:
		return true
	}
	return false
}

// ConflictType maps a conflict-shaped outcome onto its conflict type.
// The result is empty for OK and transient outcomes.
func (o ReplayOutcome) ConflictType() ConflictType {
	switch o {
	case OutcomeVersionConflict:
		return ConflictVersion
	case OutcomeNotFound:
		return ConflictDelete
	case OutcomeConstraintViolation:
		return ConflictConstraint
	}
	return ""
}

// EntryError describes a single entry that did not end a cycle as synced.
type EntryError struct {
	EntryID   string    `json:"entry_id"`
	TableName string    `json:"table_name"`
	RecordID  string    `json:"record_id"`
	Operation Operation `json:"operation"`
	Outcome   string    `json:"outcome"`
	Error     string    `json:"error"`
}

// CycleSummary is the result of one sync cycle.
type CycleSummary struct {
	AccountID     string       `json:"account_id"`
	StartedAt     time.Time    `json:"started_at"`
	FinishedAt    time.Time    `json:"finished_at"`
	ResetCount    int          `json:"reset_count,omitempty"`
	Total         int          `json:"total"`
	SyncedCount   int          `json:"synced_count"`
	FailedCount   int          `json:"failed_count"`
	ConflictCount int          `json:"conflict_count"`
	Errors        []EntryError `json:"errors,omitempty"`
}

// SyncStatus is the operator-facing status of an account's replication.
type SyncStatus struct {
	AccountID       string     `json:"account_id"`
	Online          bool       `json:"online"`
	PendingCount    int        `json:"pending_count"`
	FailedCount     int        `json:"failed_count"`
	ConflictCount   int        `json:"conflict_count"`
	LastSyncAt      *time.Time `json:"last_sync_at,omitempty"`
	CycleInProgress bool       `json:"cycle_in_progress"`
}

// ConnectivityStatus is the payload of the connectivity endpoints.
type ConnectivityStatus struct {
	Online bool `json:"online"`
}
