// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ConflictType classifies why a replay was rejected.
type ConflictType string

const (
	// ConflictVersion means the record was concurrently updated remotely.
	ConflictVersion ConflictType = "version"
	// ConflictDelete means the record is absent in the shared store.
	ConflictDelete ConflictType = "delete"
	// ConflictConstraint means a uniqueness or referential rule rejected it.
	ConflictConstraint ConflictType = "constraint"
)

// Resolution is the operator's decision for a conflict.
type Resolution string

const (
	ResolutionLocalWins  Resolution = "local_wins"
	ResolutionRemoteWins Resolution = "remote_wins"
	ResolutionMerged     Resolution = "merged"
	ResolutionManual     Resolution = "manual"
)

// Valid reports whether r is a known resolution kind.
func (r Resolution) Valid() bool {
	switch r {
	case ResolutionLocalWins, ResolutionRemoteWins, ResolutionMerged, ResolutionManual:
		return true
	}
	return false
}

// RequiresData reports whether the caller must supply resolved data.
func (r Resolution) RequiresData() bool {
	return r == ResolutionMerged || r == ResolutionManual
}

// SyncConflict is created once per journal entry that enters the conflict
// state. Only the resolution fields change after creation.
type SyncConflict struct {
	ID             string `json:"id"`
	JournalEntryID string `json:"journal_entry_id"`
	AccountID      string `json:"account_id"`
	TableName      string `json:"table_name"`
	RecordID       string `json:"record_id"`

	ConflictType ConflictType `json:"conflict_type"`

	LocalData Record `json:"local_data"`
	// RemoteData is nil when the remote row could not be fetched.
	RemoteData Record `json:"remote_data"`

	Resolution   *Resolution `json:"resolution,omitempty"`
	ResolvedData Record      `json:"resolved_data,omitempty"`
	ResolvedBy   *string     `json:"resolved_by,omitempty"`
	ResolvedAt   *time.Time  `json:"resolved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// IsResolved reports whether a resolution has been stamped.
func (c SyncConflict) IsResolved() bool {
	return c.ResolvedAt != nil
}

// HasRemoteData reports whether the remote side was captured.
func (c SyncConflict) HasRemoteData() bool {
	return c.RemoteData != nil
}

// ResolveRequest carries an operator's resolution for one conflict.
type ResolveRequest struct {
	ConflictID   string     `json:"conflict_id"`
	AccountID    string     `json:"account_id"`
	Resolution   Resolution `json:"resolution"`
	ResolvedData Record     `json:"resolved_data,omitempty"`
	ResolvedBy   string     `json:"resolved_by"`
}
