// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/mock"
	"github.com/MKhiriev/go-edge-sync/internal/store"
	"github.com/MKhiriev/go-edge-sync/models"
)

// writeOffline performs fn with the router offline and switches back online.
func writeOffline(t *testing.T, env *testEnv, fn func(ctx context.Context) error) {
	t.Helper()
	env.router.SetOnlineStatus(false)
	require.NoError(t, fn(context.Background()))
	env.router.SetOnlineStatus(true)
}

// ── accepted replays ─────────────────────────────────────────────────────────

func TestReplication_AcceptedUpdate_SyncsEntry(t *testing.T) {
	env := newTestEnv(t, config.JournalModeOffline)
	seedRow(t, env.sharedDB, "o1", 1, 10)
	seedRow(t, env.localDB, "o1", 1, 10)

	writeOffline(t, env, func(ctx context.Context) error {
		_, err := env.router.Update(ctx, orderMutation("o1", models.Record{"status": "paid"}))
		return err
	})

	summary, err := env.replication.TriggerSync(context.Background(), testAccount)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.SyncedCount)
	assert.Zero(t, summary.ConflictCount)
	assert.Zero(t, summary.FailedCount)

	remote := readRow(t, env.shared.Records(), "o1")
	assert.Equal(t, "paid", remote["status"])
	assert.Equal(t, int64(2), remote["version"])

	entries := env.entries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, models.StatusSynced, entries[0].Status)
	assert.NotNil(t, entries[0].SyncedAt)
}

func TestReplication_ManyInserts_AllSyncedInOrder(t *testing.T) {
	env := newTestEnv(t, config.JournalModeOffline)

	writeOffline(t, env, func(ctx context.Context) error {
		for i := range 5 {
			id := fmt.Sprintf("o%d", i)
			if _, err := env.router.Insert(ctx, orderMutation(id, models.Record{"total": float64(i)})); err != nil {
				return err
			}
		}
		// same record changed twice: both entries replay
		_, err := env.router.Update(ctx, orderMutation("o0", models.Record{"status": "paid"}))
		return err
	})

	summary, err := env.replication.TriggerSync(context.Background(), testAccount)
	require.NoError(t, err)

	assert.Equal(t, 6, summary.Total)
	assert.Equal(t, 6, summary.SyncedCount)
	assert.Empty(t, summary.Errors)

	remote := readRow(t, env.shared.Records(), "o0")
	assert.Equal(t, "paid", remote["status"])
	assert.Equal(t, int64(2), remote["version"])
}

func TestReplication_DeleteReplayed(t *testing.T) {
	env := newTestEnv(t, config.JournalModeOffline)
	seedRow(t, env.sharedDB, "o1", 1, 10)
	seedRow(t, env.localDB, "o1", 1, 10)

	writeOffline(t, env, func(ctx context.Context) error {
		_, err := env.router.Delete(ctx, orderMutation("o1", nil))
		return err
	})

	summary, err := env.replication.TriggerSync(context.Background(), testAccount)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SyncedCount)

	_, err = env.shared.Records().SelectOne(context.Background(), testAccount, "orders", "o1")
	require.ErrorIs(t, err, store.ErrRecordNotFound)
}

// ── conflicts ────────────────────────────────────────────────────────────────

func TestReplication_VersionMismatch_CreatesVersionConflict(t *testing.T) {
	env := newTestEnv(t, config.JournalModeOffline)
	seedRow(t, env.localDB, "o1", 1, 10)
	// another node already moved the shared row forward
	seedRow(t, env.sharedDB, "o1", 3, 99)

	writeOffline(t, env, func(ctx context.Context) error {
		_, err := env.router.Update(ctx, orderMutation("o1", models.Record{"total": 11.5}))
		return err
	})

	summary, err := env.replication.TriggerSync(context.Background(), testAccount)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ConflictCount)
	assert.Zero(t, summary.SyncedCount)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, models.OutcomeVersionConflict.String(), summary.Errors[0].Outcome)

	conflicts, err := env.local.Conflicts().ListUnresolved(context.Background(), testAccount)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	c := conflicts[0]
	assert.Equal(t, models.ConflictVersion, c.ConflictType)
	assert.Equal(t, 11.5, c.LocalData["total"])
	require.True(t, c.HasRemoteData())
	assert.Equal(t, int64(3), c.RemoteData["version"])

	entries := env.entries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, models.StatusConflict, entries[0].Status)
	assert.Equal(t, c.JournalEntryID, entries[0].ID)

	// shared row untouched
	assert.Equal(t, 99.0, readRow(t, env.shared.Records(), "o1")["total"])
}

func TestReplication_OnlineUpdateAfterOfflineUpdate_CreatesVersionConflict(t *testing.T) {
	env := newTestEnv(t, config.JournalModeOffline)
	ctx := context.Background()
	seedRow(t, env.localDB, "o1", 1, 10)
	seedRow(t, env.sharedDB, "o1", 1, 10)

	writeOffline(t, env, func(ctx context.Context) error {
		_, err := env.router.Update(ctx, orderMutation("o1", models.Record{"status": "paid"}))
		return err
	})

	// a till that stayed online voids the order before this edge replays
	got, err := env.router.Update(ctx, orderMutation("o1", models.Record{"status": "void"}))
	require.NoError(t, err)
	assert.Equal(t, int64(2), got["version"])

	summary, err := env.replication.TriggerSync(ctx, testAccount)
	require.NoError(t, err)

	assert.Zero(t, summary.SyncedCount)
	assert.Equal(t, 1, summary.ConflictCount)

	conflicts, err := env.conflicts.GetConflicts(ctx, testAccount)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictVersion, conflicts[0].ConflictType)
	assert.Equal(t, "paid", conflicts[0].LocalData["status"])
	assert.Equal(t, "void", conflicts[0].RemoteData["status"])

	remote := readRow(t, env.shared.Records(), "o1")
	assert.Equal(t, "void", remote["status"], "the online change is kept")
	assert.Equal(t, int64(2), remote["version"])
}

func TestReplication_DuplicateInsert_OneConstraintConflictAcrossCycles(t *testing.T) {
	env := newTestEnv(t, config.JournalModeOffline)
	seedRow(t, env.sharedDB, "o1", 1, 10)

	writeOffline(t, env, func(ctx context.Context) error {
		_, err := env.router.Insert(ctx, orderMutation("o1", models.Record{"total": 1.0}))
		return err
	})
	ctx := context.Background()

	summary, err := env.replication.TriggerSync(ctx, testAccount)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ConflictCount)

	_, err = env.replication.TriggerSync(ctx, testAccount)
	require.NoError(t, err)
	_, err = env.replication.RetryFailed(ctx, testAccount)
	require.NoError(t, err)

	count, err := env.local.Conflicts().CountUnresolved(ctx, testAccount)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	conflicts, err := env.local.Conflicts().ListUnresolved(ctx, testAccount)
	require.NoError(t, err)
	assert.Equal(t, models.ConflictConstraint, conflicts[0].ConflictType)
}

func TestReplication_UpdateOfVanishedRow_CreatesDeleteConflict(t *testing.T) {
	env := newTestEnv(t, config.JournalModeOffline)
	seedRow(t, env.localDB, "o1", 1, 10)

	writeOffline(t, env, func(ctx context.Context) error {
		_, err := env.router.Update(ctx, orderMutation("o1", models.Record{"total": 2.0}))
		return err
	})

	summary, err := env.replication.TriggerSync(context.Background(), testAccount)
	require.NoError(t, err)
	require.Equal(t, 1, summary.ConflictCount)

	conflicts, err := env.local.Conflicts().ListUnresolved(context.Background(), testAccount)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictDelete, conflicts[0].ConflictType)
	assert.False(t, conflicts[0].HasRemoteData())
}

// ── failures ─────────────────────────────────────────────────────────────────

func TestReplication_RetryFailed_ResetsThenReplays(t *testing.T) {
	env := newTestEnv(t, config.JournalModeOffline)
	ctx := context.Background()

	notesDDL := `CREATE TABLE notes (id TEXT PRIMARY KEY, account_id TEXT NOT NULL, body TEXT)`
	_, err := env.localDB.Exec(notesDDL)
	require.NoError(t, err)

	writeOffline(t, env, func(ctx context.Context) error {
		_, err := env.router.Insert(ctx, models.Mutation{
			AccountID: testAccount, TableName: "notes", RecordID: "n1", Record: models.Record{"body": "hi"},
		})
		return err
	})

	summary, err := env.replication.TriggerSync(ctx, testAccount)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.FailedCount)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, models.OutcomeTransient.String(), summary.Errors[0].Outcome)

	failed := env.entries(t)[0]
	assert.Equal(t, models.StatusFailed, failed.Status)
	assert.Equal(t, 1, failed.Attempts)
	require.NotNil(t, failed.Error)

	// failed entries are only retried by operator action
	summary, err = env.replication.TriggerSync(ctx, testAccount)
	require.NoError(t, err)
	assert.Zero(t, summary.Total)

	_, err = env.sharedDB.Exec(notesDDL)
	require.NoError(t, err)

	summary, err = env.replication.RetryFailed(ctx, testAccount)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ResetCount)
	assert.Equal(t, 1, summary.SyncedCount)

	synced := env.entries(t)[0]
	assert.Equal(t, models.StatusSynced, synced.Status)
	assert.Nil(t, synced.Error)
}

func TestReplication_TamperedPayload_FailsChecksum(t *testing.T) {
	env := newTestEnv(t, config.JournalModeOffline)

	writeOffline(t, env, func(ctx context.Context) error {
		_, err := env.router.Insert(ctx, orderMutation("o1", models.Record{"total": 1.0}))
		return err
	})
	_, err := env.localDB.Exec(`UPDATE mutation_journal SET payload = '{"id":"o1","account_id":"acc-1","total":1000}'`)
	require.NoError(t, err)

	summary, err := env.replication.TriggerSync(context.Background(), testAccount)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.FailedCount)
	assert.Contains(t, summary.Errors[0].Error, ErrChecksumMismatch.Error())
	_, err = env.shared.Records().SelectOne(context.Background(), testAccount, "orders", "o1")
	require.ErrorIs(t, err, store.ErrRecordNotFound, "tampered entries are never replayed")
}

func TestReplication_Unavailable_FlipsOfflineAndAccountsEveryEntry(t *testing.T) {
	env := newTestEnv(t, config.JournalModeOffline)
	ctrl := gomock.NewController(t)

	writeOffline(t, env, func(ctx context.Context) error {
		for _, id := range []string{"o1", "o2"} {
			if _, err := env.router.Insert(ctx, orderMutation(id, models.Record{"total": 1.0})); err != nil {
				return err
			}
		}
		return nil
	})

	records := mock.NewMockRecordRepository(ctrl)
	shared := mock.NewMockSharedStore(ctrl)
	shared.EXPECT().Records().Return(records).AnyTimes()
	unavailable := fmt.Errorf("%w: %w", store.ErrStoreUnavailable, errors.New("connection reset by peer"))
	records.EXPECT().Insert(gomock.Any(), "orders", gomock.Any()).Return(unavailable).Times(2)

	env.wire(t, shared, testReplication(config.JournalModeOffline))

	summary, err := env.replication.TriggerSync(context.Background(), testAccount)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.FailedCount)
	assert.False(t, env.conn.IsOnline())
	for _, e := range env.entries(t) {
		assert.Equal(t, models.StatusFailed, e.Status)
	}
}

// ── guards ───────────────────────────────────────────────────────────────────

func TestReplication_Offline_Rejected(t *testing.T) {
	env := newTestEnv(t, config.JournalModeOffline)
	env.conn.SetOnline(false)

	_, err := env.replication.TriggerSync(context.Background(), testAccount)

	require.ErrorIs(t, err, ErrOffline)
	require.ErrorIs(t, err, ErrValidation)
}

func TestReplication_ConcurrentTrigger_FailsImmediately(t *testing.T) {
	env := newTestEnv(t, config.JournalModeOffline)
	require.True(t, env.coordinator.TryBegin(testAccount))

	_, err := env.replication.TriggerSync(context.Background(), testAccount)
	require.ErrorIs(t, err, ErrCycleInProgress)
	require.ErrorIs(t, err, ErrValidation)

	_, err = env.replication.TriggerSync(context.Background(), "acc-2")
	require.NoError(t, err, "accounts are independent")
}

func TestReplication_PanicInCycle_ReleasesAccount(t *testing.T) {
	env := newTestEnv(t, config.JournalModeOffline)
	writeOffline(t, env, func(ctx context.Context) error {
		_, err := env.router.Insert(ctx, orderMutation("o1", models.Record{"total": 1.5}))
		return err
	})

	ctrl := gomock.NewController(t)
	shared := mock.NewMockSharedStore(ctrl)
	shared.EXPECT().Records().DoAndReturn(func() store.RecordRepository {
		panic("driver bug")
	}).AnyTimes()
	env.wire(t, shared, testReplication(config.JournalModeOffline))

	assert.Panics(t, func() {
		_, _ = env.replication.TriggerSync(context.Background(), testAccount)
	})

	inProgress, lastSyncAt := env.coordinator.State(testAccount)
	assert.False(t, inProgress)
	assert.Nil(t, lastSyncAt)
	assert.True(t, env.coordinator.TryBegin(testAccount), "a later trigger is not locked out")
}

func TestReplication_LeaseHeld(t *testing.T) {
	env := newTestEnv(t, config.JournalModeOffline)
	ctrl := gomock.NewController(t)

	locker := mock.NewMockAccountLocker(ctrl)
	shared := mock.NewMockSharedStore(ctrl)
	shared.EXPECT().Locker().Return(locker).AnyTimes()
	locker.EXPECT().TryLock(gomock.Any(), testAccount).Return(nil, false, nil).Times(2)

	repl := testReplication(config.JournalModeOffline)
	repl.DistributedLease = true
	env.wire(t, shared, repl)

	_, err := env.replication.TriggerSync(context.Background(), testAccount)
	require.ErrorIs(t, err, ErrLeaseHeld)

	// the coordinator was released, so the second call hits the lease again
	_, err = env.replication.TriggerSync(context.Background(), testAccount)
	require.ErrorIs(t, err, ErrLeaseHeld)
}

func TestReplication_LeaseReleasedAfterCycle(t *testing.T) {
	env := newTestEnv(t, config.JournalModeOffline)
	ctrl := gomock.NewController(t)

	released := false
	locker := mock.NewMockAccountLocker(ctrl)
	shared := mock.NewMockSharedStore(ctrl)
	shared.EXPECT().Locker().Return(locker).AnyTimes()
	locker.EXPECT().TryLock(gomock.Any(), testAccount).
		Return(func() error { released = true; return nil }, true, nil)

	repl := testReplication(config.JournalModeOffline)
	repl.DistributedLease = true
	env.wire(t, shared, repl)

	_, err := env.replication.TriggerSync(context.Background(), testAccount)
	require.NoError(t, err)
	assert.True(t, released)
}

// ── status and administration ────────────────────────────────────────────────

func TestReplication_GetSyncStatus(t *testing.T) {
	env := newTestEnv(t, config.JournalModeOffline)
	seedRow(t, env.sharedDB, "dup", 1, 1)
	ctx := context.Background()

	writeOffline(t, env, func(ctx context.Context) error {
		if _, err := env.router.Insert(ctx, orderMutation("dup", models.Record{"total": 1.0})); err != nil {
			return err
		}
		_, err := env.router.Insert(ctx, orderMutation("ok", models.Record{"total": 1.0}))
		return err
	})

	status, err := env.replication.GetSyncStatus(ctx, testAccount)
	require.NoError(t, err)
	assert.Equal(t, 2, status.PendingCount)
	assert.Nil(t, status.LastSyncAt)
	assert.True(t, status.Online)

	_, err = env.replication.TriggerSync(ctx, testAccount)
	require.NoError(t, err)

	status, err = env.replication.GetSyncStatus(ctx, testAccount)
	require.NoError(t, err)
	assert.Zero(t, status.PendingCount)
	assert.Equal(t, 1, status.ConflictCount)
	assert.False(t, status.CycleInProgress)
	require.NotNil(t, status.LastSyncAt)
}

func TestReplication_ClearSyncedEntries(t *testing.T) {
	env := newTestEnv(t, config.JournalModeOffline)
	ctx := context.Background()

	writeOffline(t, env, func(ctx context.Context) error {
		_, err := env.router.Insert(ctx, orderMutation("o1", models.Record{"total": 1.0}))
		return err
	})
	_, err := env.replication.TriggerSync(ctx, testAccount)
	require.NoError(t, err)

	res, err := env.replication.ClearSyncedEntries(ctx, testAccount, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Deleted)
	assert.Empty(t, env.entries(t))
}
