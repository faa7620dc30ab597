// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the edgectl side of the admin HTTP API of an edge node.
//
// [AdminAdapter] decouples the CLI commands from the transport. The HTTP
// implementation ([NewHTTPAdminAdapter]) signs request bodies with the
// shared hash key, propagates a trace id and maps non-2xx statuses to the
// sentinel errors in errors.go so callers can use [errors.Is].
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-edge-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// AdminAdapter mirrors the administrative operations of an edge node.
type AdminAdapter interface {
	// Version returns the node's build information.
	Version(ctx context.Context) (models.AppBuildInfo, error)

	// Connectivity reports whether the node currently routes to the shared
	// store.
	Connectivity(ctx context.Context) (models.ConnectivityStatus, error)
	// SetOnlineStatus overrides the node's connectivity flag.
	SetOnlineStatus(ctx context.Context, online bool) (models.ConnectivityStatus, error)

	GetSyncStatus(ctx context.Context, accountID string) (models.SyncStatus, error)
	GetStats(ctx context.Context, accountID string) (models.JournalStats, error)
	TriggerSync(ctx context.Context, accountID string) (models.CycleSummary, error)
	RetryFailed(ctx context.Context, accountID string) (models.CycleSummary, error)

	ListJournal(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error)
	ClearSyncedEntries(ctx context.Context, accountID string, before time.Time) (models.PurgeResult, error)

	GetConflicts(ctx context.Context, accountID string) ([]models.SyncConflict, error)
	GetConflict(ctx context.Context, accountID, conflictID string) (models.SyncConflict, error)
	ResolveConflict(ctx context.Context, req models.ResolveRequest) (models.SyncConflict, error)

	PullData(ctx context.Context, req models.PullRequest) (models.PullResult, error)
}
