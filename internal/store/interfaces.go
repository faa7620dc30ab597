package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-edge-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// RecordRepository performs keyed CRUD on business tables. Table and column
// names are validated as SQL identifiers before use.
type RecordRepository interface {
	Select(ctx context.Context, query models.Query) ([]models.Record, error)
	SelectOne(ctx context.Context, accountID, table, recordID string) (models.Record, error)
	Insert(ctx context.Context, table string, record models.Record) error
	// Update writes record over the row with recordID. A non-nil
	// expectedVersion guards the write with the version column.
	Update(ctx context.Context, table, recordID string, record models.Record, expectedVersion *int64) error
	Delete(ctx context.Context, table, recordID string) error
	// Upsert updates the row in place or inserts it when absent.
	Upsert(ctx context.Context, table, recordID string, record models.Record) error
}

// JournalRepository persists the mutation journal of the local store.
type JournalRepository interface {
	Append(ctx context.Context, entry models.JournalEntry) error
	GetByID(ctx context.Context, id string) (models.JournalEntry, error)
	FindByIdempotencyKey(ctx context.Context, accountID, key string) (models.JournalEntry, error)
	List(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error)
	CountByStatus(ctx context.Context, accountID string) (map[models.JournalStatus]int, error)
	Stats(ctx context.Context, accountID string) (models.JournalStats, error)

	MarkSyncing(ctx context.Context, id string, at time.Time) error
	MarkSynced(ctx context.Context, id string, at time.Time) error
	MarkConflict(ctx context.Context, id, reason string, at time.Time) error
	MarkFailed(ctx context.Context, id, reason string, at time.Time) error

	ResetFailed(ctx context.Context, accountID string) (int64, error)
	RecoverStale(ctx context.Context, accountID string) (int64, error)
	PurgeSynced(ctx context.Context, accountID string, before time.Time) (int64, error)
}

// ConflictRepository persists replay conflicts of the local store.
type ConflictRepository interface {
	// Create stores conflict unless one already exists for its journal
	// entry, and returns the stored conflict either way.
	Create(ctx context.Context, conflict models.SyncConflict) (models.SyncConflict, error)
	GetByID(ctx context.Context, id string) (models.SyncConflict, error)
	GetByJournalEntryID(ctx context.Context, entryID string) (models.SyncConflict, error)
	ListUnresolved(ctx context.Context, accountID string) ([]models.SyncConflict, error)
	CountUnresolved(ctx context.Context, accountID string) (int, error)
	MarkResolved(ctx context.Context, resolved models.SyncConflict) error
}

// LocalScope groups the repositories of the local store, bound either to
// the database or to one transaction.
type LocalScope interface {
	Records() RecordRepository
	Journal() JournalRepository
	Conflicts() ConflictRepository
}

// LocalStore is the embedded edge store.
type LocalStore interface {
	LocalScope
	// InTx runs fn in one local transaction. Repositories obtained from the
	// scope passed to fn must not be used after fn returns.
	InTx(ctx context.Context, fn func(scope LocalScope) error) error
}

// SharedStore is the authoritative store shared by all edge nodes.
type SharedStore interface {
	Records() RecordRepository
	Ping(ctx context.Context) error
	// Locker returns nil when the dialect offers no advisory locks.
	Locker() AccountLocker
}

// AccountLocker grants a cross-process lease on an account.
type AccountLocker interface {
	// TryLock never waits. ok is false when another holder owns the lease.
	// unlock is non-nil only when ok is true.
	TryLock(ctx context.Context, accountID string) (unlock func() error, ok bool, err error)
}
