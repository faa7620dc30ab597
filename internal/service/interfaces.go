package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-edge-sync/internal/store"
	"github.com/MKhiriev/go-edge-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// StorageRouter is the single storage entry point of business services. Per
// call it targets the shared store while online and the local store plus
// the mutation journal while offline.
type StorageRouter interface {
	Select(ctx context.Context, query models.Query) ([]models.Record, error)
	SelectOne(ctx context.Context, accountID, table, recordID string) (models.Record, error)
	// Insert, Update and Delete return the record snapshot that was written,
	// or the stored snapshot when the idempotency key was seen before.
	Insert(ctx context.Context, mutation models.Mutation) (models.Record, error)
	Update(ctx context.Context, mutation models.Mutation) (models.Record, error)
	Delete(ctx context.Context, mutation models.Mutation) (models.Record, error)

	SetOnlineStatus(online bool)
	IsOnline() bool
}

// JournalService builds, verifies and queries mutation journal entries.
type JournalService interface {
	// Record appends an entry for mutation to repo, which is usually bound to
	// the transaction that applied the local write.
	Record(ctx context.Context, repo store.JournalRepository, mutation models.Mutation,
		op models.Operation, payload models.Record, status models.JournalStatus) (models.JournalEntry, error)
	Verify(entry models.JournalEntry) error

	List(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error)
	Stats(ctx context.Context, accountID string) (models.JournalStats, error)
	Purge(ctx context.Context, accountID string, before time.Time) (models.PurgeResult, error)
}

// ReplicationService drains the journal against the shared store and
// exposes the administrative surface of replication.
type ReplicationService interface {
	TriggerSync(ctx context.Context, accountID string) (models.CycleSummary, error)
	RetryFailed(ctx context.Context, accountID string) (models.CycleSummary, error)

	GetSyncStatus(ctx context.Context, accountID string) (models.SyncStatus, error)
	GetStats(ctx context.Context, accountID string) (models.JournalStats, error)
	ListJournal(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error)
	ClearSyncedEntries(ctx context.Context, accountID string, before time.Time) (models.PurgeResult, error)
}

// ConflictService lists and resolves replay conflicts.
type ConflictService interface {
	GetConflicts(ctx context.Context, accountID string) ([]models.SyncConflict, error)
	GetConflict(ctx context.Context, accountID, conflictID string) (models.SyncConflict, error)
	ResolveConflict(ctx context.Context, req models.ResolveRequest) (models.SyncConflict, error)
}

// PullService refreshes local reference tables from the shared store.
type PullService interface {
	PullData(ctx context.Context, req models.PullRequest) (models.PullResult, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// StorageRouterWrapper, ReplicationServiceWrapper, ConflictServiceWrapper and
// PullServiceWrapper decorate a service with additional behaviour such as
// validation.
type StorageRouterWrapper interface {
	Wrap(StorageRouter) StorageRouter
}

type ReplicationServiceWrapper interface {
	Wrap(ReplicationService) ReplicationService
}

type ConflictServiceWrapper interface {
	Wrap(ConflictService) ConflictService
}

type PullServiceWrapper interface {
	Wrap(PullService) PullService
}
