package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-edge-sync/internal/adapter"
	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/mock"
	"github.com/MKhiriev/go-edge-sync/models"
)

const (
	entry1    = "0192c5e0-0000-7000-8000-000000000001"
	entry2    = "0192c5e0-0000-7000-8000-000000000002"
	conflict1 = "0192c5e0-0000-7000-8000-0000000000c1"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 1, hour, minute, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// runCLI executes edgectl with args against a; the factory records the
// configuration the adapter would have been built with.
func runCLI(t *testing.T, a adapter.AdminAdapter, args ...string) (string, config.CLIConfig, error) {
	t.Helper()

	var used config.CLIConfig
	factory := func(cfg config.CLIConfig, _ *logger.Logger) (adapter.AdminAdapter, error) {
		used = cfg
		return a, nil
	}

	cmd := NewRootCommand(config.CLIConfig{HTTPAddress: "localhost:8080", RequestTimeout: 3 * time.Second}, factory, logger.Nop())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), used, err
}

// ─────────────────────────────────────────────
// Root
// ─────────────────────────────────────────────

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand(config.CLIConfig{}, nil, logger.Nop())

	for _, name := range []string{"version", "connectivity", "status", "stats", "sync", "retry", "journal", "purge", "conflicts", "resolve", "pull"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestRootCommand_FlagsOverrideConfig(t *testing.T) {
	m := mock.NewMockAdminAdapter(gomock.NewController(t))
	m.EXPECT().Connectivity(gomock.Any()).Return(models.ConnectivityStatus{Online: true}, nil)

	out, used, err := runCLI(t, m, "connectivity", "--address", "edge-7:9090", "--timeout", "2s", "--hash-key", "k")

	require.NoError(t, err)
	assert.Equal(t, "online\n", out)
	assert.Equal(t, config.CLIConfig{HTTPAddress: "edge-7:9090", RequestTimeout: 2 * time.Second, HashKey: "k"}, used)
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	m := mock.NewMockAdminAdapter(gomock.NewController(t))

	_, _, err := runCLI(t, m, "status", "store-7", "--format", "yaml")

	require.Error(t, err)
	assert.Equal(t, ExitUsage, GetExitCode(err))
}

func TestRootCommand_FactoryError(t *testing.T) {
	cmd := NewRootCommand(config.CLIConfig{}, func(config.CLIConfig, *logger.Logger) (adapter.AdminAdapter, error) {
		return nil, adapter.ErrEmptyAddress
	}, logger.Nop())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"version"})

	err := cmd.Execute()

	require.ErrorIs(t, err, adapter.ErrEmptyAddress)
	assert.Equal(t, ExitUsage, GetExitCode(err))
}

// ─────────────────────────────────────────────
// Golden output
// ─────────────────────────────────────────────

func TestStatus_Golden(t *testing.T) {
	status := models.SyncStatus{
		AccountID:     "store-7",
		PendingCount:  3,
		FailedCount:   1,
		ConflictCount: 2,
		LastSyncAt:    ptr(at(8, 30)),
	}

	tests := []struct {
		golden string
		status models.SyncStatus
		args   []string
	}{
		{golden: "status_text", status: status, args: []string{"status", "store-7"}},
		{golden: "status_json", status: status, args: []string{"status", "store-7", "--format", "json"}},
		{
			golden: "status_never_synced_text",
			status: models.SyncStatus{AccountID: "store-8", Online: true, CycleInProgress: true},
			args:   []string{"status", "store-8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			m := mock.NewMockAdminAdapter(gomock.NewController(t))
			m.EXPECT().GetSyncStatus(gomock.Any(), tt.args[1]).Return(tt.status, nil)

			out, _, err := runCLI(t, m, tt.args...)

			require.NoError(t, err)
			newGoldie(t).Assert(t, tt.golden, []byte(out))
		})
	}
}

func TestSync_Golden(t *testing.T) {
	m := mock.NewMockAdminAdapter(gomock.NewController(t))
	m.EXPECT().TriggerSync(gomock.Any(), "store-7").Return(models.CycleSummary{
		AccountID:     "store-7",
		StartedAt:     at(9, 0),
		FinishedAt:    at(9, 0).Add(1500 * time.Millisecond),
		Total:         3,
		SyncedCount:   1,
		FailedCount:   1,
		ConflictCount: 1,
		Errors: []models.EntryError{
			{EntryID: entry1, TableName: "orders", RecordID: "o1", Operation: models.OperationUpdate,
				Outcome: models.OutcomeVersionConflict.String(), Error: "version mismatch: local 1, shared 3"},
			{EntryID: entry2, TableName: "notes", RecordID: "n1", Operation: models.OperationInsert,
				Outcome: models.OutcomeTransient.String(), Error: "no such table: notes"},
		},
	}, nil)

	out, _, err := runCLI(t, m, "sync", "store-7")

	require.NoError(t, err)
	newGoldie(t).Assert(t, "sync_text", []byte(out))
}

func TestRetry_Golden(t *testing.T) {
	m := mock.NewMockAdminAdapter(gomock.NewController(t))
	m.EXPECT().RetryFailed(gomock.Any(), "store-7").Return(models.CycleSummary{
		AccountID:   "store-7",
		StartedAt:   at(9, 0),
		FinishedAt:  at(9, 0).Add(250 * time.Millisecond),
		ResetCount:  2,
		Total:       2,
		SyncedCount: 2,
	}, nil)

	out, _, err := runCLI(t, m, "retry", "store-7")

	require.NoError(t, err)
	newGoldie(t).Assert(t, "retry_text", []byte(out))
}

func TestJournal_Golden(t *testing.T) {
	m := mock.NewMockAdminAdapter(gomock.NewController(t))
	m.EXPECT().ListJournal(gomock.Any(), models.JournalFilter{
		AccountID: "store-7",
		Statuses:  []models.JournalStatus{models.StatusFailed, models.StatusConflict},
		Order:     models.OrderNewestFirst,
		Limit:     20,
	}).Return([]models.JournalEntry{
		{ID: entry2, Status: models.StatusFailed, TableName: "notes", RecordID: "n1",
			Operation: models.OperationInsert, Attempts: 3, CreatedAt: at(8, 31)},
		{ID: entry1, Status: models.StatusConflict, TableName: "orders", RecordID: "o1",
			Operation: models.OperationUpdate, Attempts: 1, CreatedAt: at(8, 30)},
	}, nil)

	out, _, err := runCLI(t, m, "journal", "store-7", "--status", "failed,conflict", "--newest", "--limit", "20")

	require.NoError(t, err)
	newGoldie(t).Assert(t, "journal_text", []byte(out))
}

func TestJournal_InvalidStatus(t *testing.T) {
	m := mock.NewMockAdminAdapter(gomock.NewController(t))

	_, _, err := runCLI(t, m, "journal", "store-7", "--status", "lost")

	assert.Equal(t, ExitUsage, GetExitCode(err))
}

func TestStats_Golden(t *testing.T) {
	m := mock.NewMockAdminAdapter(gomock.NewController(t))
	m.EXPECT().GetStats(gomock.Any(), "store-7").Return(models.JournalStats{
		AccountID:   "store-7",
		Total:       8,
		ByStatus:    map[models.JournalStatus]int{models.StatusPending: 2, models.StatusSynced: 5, models.StatusConflict: 1},
		ByTable:     map[string]int{"orders": 6, "customers": 2},
		ByOperation: map[models.Operation]int{models.OperationInsert: 4, models.OperationUpdate: 3, models.OperationDelete: 1},
	}, nil)

	out, _, err := runCLI(t, m, "stats", "store-7")

	require.NoError(t, err)
	newGoldie(t).Assert(t, "stats_text", []byte(out))
}

func TestConflicts_Golden(t *testing.T) {
	resolved := models.SyncConflict{
		ID:             conflict1,
		JournalEntryID: entry1,
		AccountID:      "store-7",
		TableName:      "orders",
		RecordID:       "o1",
		ConflictType:   models.ConflictVersion,
		LocalData:      models.Record{"id": "o1", "total": 11.5, "version": int64(1)},
		RemoteData:     models.Record{"id": "o1", "total": int64(99), "version": int64(3)},
		CreatedAt:      at(9, 0),
	}

	m := mock.NewMockAdminAdapter(gomock.NewController(t))
	m.EXPECT().GetConflicts(gomock.Any(), "store-7").Return([]models.SyncConflict{resolved}, nil)

	out, _, err := runCLI(t, m, "conflicts", "store-7")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "conflicts_text", []byte(out))

	resolved.Resolution = ptr(models.ResolutionLocalWins)
	resolved.ResolvedBy = ptr("manager@store-7")
	resolved.ResolvedAt = ptr(at(10, 0))
	m.EXPECT().ResolveConflict(gomock.Any(), models.ResolveRequest{
		AccountID:  "store-7",
		ConflictID: conflict1,
		Resolution: models.ResolutionLocalWins,
		ResolvedBy: "manager@store-7",
	}).Return(resolved, nil)

	out, _, err = runCLI(t, m, "resolve", "store-7", conflict1, "-r", "local_wins", "--by", "manager@store-7")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "conflict_resolved_text", []byte(out))
}

func TestPull_Golden(t *testing.T) {
	m := mock.NewMockAdminAdapter(gomock.NewController(t))
	m.EXPECT().PullData(gomock.Any(), models.PullRequest{
		AccountID: "store-7",
		StoreID:   "s-7",
		Tables:    []string{"staff", "catalog_items", "missing_table"},
		Since:     ptr(at(0, 0)),
	}).Return(models.PullResult{
		TablesSynced: []string{"staff", "catalog_items"},
		RecordsCount: map[string]int{"staff": 3, "catalog_items": 12},
		Errors:       map[string]string{"missing_table": "no such table: missing_table"},
	}, nil)

	out, _, err := runCLI(t, m, "pull", "store-7", "--store", "s-7",
		"--table", "staff,catalog_items", "--table", "missing_table", "--since", "2026-10-01T00:00:00Z")

	require.NoError(t, err)
	newGoldie(t).Assert(t, "pull_text", []byte(out))
}

// ─────────────────────────────────────────────
// Argument handling
// ─────────────────────────────────────────────

func TestResolve_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown resolution", args: []string{"resolve", "store-7", "c-1", "-r", "whatever", "--by", "ops"}},
		{name: "merged without data", args: []string{"resolve", "store-7", "c-1", "-r", "merged", "--by", "ops"}},
		{name: "data not an object", args: []string{"resolve", "store-7", "c-1", "-r", "manual", "--data", "[1]", "--by", "ops"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// no adapter call is expected
			m := mock.NewMockAdminAdapter(gomock.NewController(t))

			_, _, err := runCLI(t, m, tt.args...)

			require.Error(t, err)
			assert.Equal(t, ExitUsage, GetExitCode(err))
		})
	}
}

func TestResolve_MergedSendsData(t *testing.T) {
	m := mock.NewMockAdminAdapter(gomock.NewController(t))
	m.EXPECT().ResolveConflict(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.ResolveRequest) (models.SyncConflict, error) {
			assert.Equal(t, models.Record{"total": 12.5, "version": int64(4)}, req.ResolvedData)
			return models.SyncConflict{ID: req.ConflictID}, nil
		})

	_, _, err := runCLI(t, m, "resolve", "store-7", "c-1", "-r", "merged", "--data", `{"total":12.5,"version":4}`, "--by", "ops", "--format", "json")

	require.NoError(t, err)
}

func TestConnectivity_Set(t *testing.T) {
	m := mock.NewMockAdminAdapter(gomock.NewController(t))
	m.EXPECT().SetOnlineStatus(gomock.Any(), false).Return(models.ConnectivityStatus{Online: false}, nil)

	out, _, err := runCLI(t, m, "connectivity", "OFFLINE")
	require.NoError(t, err)
	assert.Equal(t, "offline\n", out)

	_, _, err = runCLI(t, m, "connectivity", "sideways")
	assert.Equal(t, ExitUsage, GetExitCode(err))
}

func TestPurge(t *testing.T) {
	m := mock.NewMockAdminAdapter(gomock.NewController(t))
	m.EXPECT().ClearSyncedEntries(gomock.Any(), "store-7", at(0, 0)).
		Return(models.PurgeResult{AccountID: "store-7", Before: at(0, 0), Deleted: 4}, nil)

	out, _, err := runCLI(t, m, "purge", "store-7", "--before", "2026-10-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "deleted 4 synced entries of store-7 older than 2026-10-01T00:00:00Z\n", out)

	_, _, err = runCLI(t, m, "purge", "store-7")
	assert.Error(t, err, "a cutoff flag is required")
}

func TestPurgeCutoff(t *testing.T) {
	now := at(12, 0)

	got, err := purgeCutoff("", 48*time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-48*time.Hour), got)

	_, err = purgeCutoff("", -time.Hour, now)
	assert.Equal(t, ExitUsage, GetExitCode(err))

	_, err = purgeCutoff("yesterday", 0, now)
	assert.Equal(t, ExitUsage, GetExitCode(err))
}

// ─────────────────────────────────────────────
// Exit codes
// ─────────────────────────────────────────────

func TestAdapterErrorExitCodes(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{adapter.ErrBadRequest, ExitUsage},
		{adapter.ErrOffline, ExitUnavailable},
		{adapter.ErrServiceUnavailable, ExitUnavailable},
		{adapter.ErrRequestFailed, ExitUnavailable},
		{adapter.ErrConflict, ExitConflict},
		{adapter.ErrNotFound, ExitNotFound},
		{adapter.ErrInternalServerError, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			m := mock.NewMockAdminAdapter(gomock.NewController(t))
			m.EXPECT().TriggerSync(gomock.Any(), "store-7").
				Return(models.CycleSummary{}, fmt.Errorf("%w: node says no", tt.err))

			_, _, err := runCLI(t, m, "sync", "store-7")

			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.want, GetExitCode(err))
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitNotFound, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitNotFound, "gone"))))
}
