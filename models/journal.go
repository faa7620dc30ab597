// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Operation is the kind of mutation a journal entry replays.
type Operation string

const (
	OperationInsert Operation = "insert"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Valid reports whether o is a known operation.
func (o Operation) Valid() bool {
	switch o {
	case OperationInsert, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// JournalStatus is the lifecycle state of a journal entry.
type JournalStatus string

const (
	StatusPending  JournalStatus = "pending"
	StatusSyncing  JournalStatus = "syncing"
	StatusSynced   JournalStatus = "synced"
	StatusConflict JournalStatus = "conflict"
	StatusFailed   JournalStatus = "failed"
)

// journalTransitions lists the states each status may move to.
// synced is terminal.
var journalTransitions = map[JournalStatus][]JournalStatus{
	StatusPending:  {StatusSyncing, StatusSynced, StatusConflict, StatusFailed},
	StatusSyncing:  {StatusSynced, StatusConflict, StatusFailed, StatusPending},
	StatusFailed:   {StatusPending},
	StatusConflict: {StatusSynced},
	StatusSynced:   {},
}

// Valid reports whether s is a known status.
func (s JournalStatus) Valid() bool {
	_, ok := journalTransitions[s]
	return ok
}

// CanTransitionTo reports whether an entry in state s may move to next.
func (s JournalStatus) CanTransitionTo(next JournalStatus) bool {
	for _, allowed := range journalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// JournalEntry is one durable record of a local mutation awaiting (or past)
// replication to the shared store.
type JournalEntry struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	TableName string `json:"table_name"`
	RecordID  string `json:"record_id"`

	Operation Operation `json:"operation"`
	// Payload is the full post-mutation snapshot. For deletes it holds the
	// last known local row.
	Payload Record `json:"payload"`

	Status   JournalStatus `json:"status"`
	Checksum string        `json:"checksum"`

	Attempts      int        `json:"attempts"`
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty"`
	Error         *string    `json:"error,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	SyncedAt  *time.Time `json:"synced_at,omitempty"`

	IdempotencyKey *string `json:"idempotency_key,omitempty"`
}

// JournalOrder selects the listing direction.
type JournalOrder string

const (
	// OrderOldestFirst is the replay order.
	OrderOldestFirst JournalOrder = "oldest_first"
	// OrderNewestFirst is used by audit and inspection views.
	OrderNewestFirst JournalOrder = "newest_first"
)

// JournalFilter narrows a journal listing. Zero values mean "no filter";
// a zero Limit means unlimited.
type JournalFilter struct {
	AccountID string          `json:"account_id"`
	Statuses  []JournalStatus `json:"statuses,omitempty"`
	TableName string          `json:"table_name,omitempty"`
	Order     JournalOrder    `json:"order,omitempty"`
	Limit     int             `json:"limit,omitempty"`
	Offset    int             `json:"offset,omitempty"`
}

// JournalStats aggregates entry counts for observability.
type JournalStats struct {
	AccountID   string                `json:"account_id"`
	Total       int                   `json:"total"`
	ByStatus    map[JournalStatus]int `json:"by_status"`
	ByTable     map[string]int        `json:"by_table"`
	ByOperation map[Operation]int     `json:"by_operation"`
}

// PurgeResult reports how many synced entries were removed.
type PurgeResult struct {
	AccountID string    `json:"account_id"`
	Before    time.Time `json:"before"`
	Deleted   int64     `json:"deleted"`
}

// TransitionSources returns every status that may move to next.
func TransitionSources(next JournalStatus) []JournalStatus {
	sources := make([]JournalStatus, 0, 2)
	for _, from := range []JournalStatus{StatusPending, StatusSyncing, StatusSynced, StatusConflict, StatusFailed} {
		if from.CanTransitionTo(next) {
			sources = append(sources, from)
		}
	}
	return sources
}
