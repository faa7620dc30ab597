package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/mock"
	"github.com/MKhiriev/go-edge-sync/internal/utils"
	"github.com/MKhiriev/go-edge-sync/models"
)

type fixedIDs struct{ id string }

func (f fixedIDs) Generate() string { return f.id }

func newTestJournal(repo *mock.MockJournalRepository) *journalService {
	j := NewJournalService(repo, utils.NewChecksummer("test-key"), fixedIDs{id: "entry-1"}, logger.Nop()).(*journalService)
	j.now = func() time.Time { return time.Date(2026, 5, 4, 10, 0, 0, 0, time.FixedZone("X", 3*3600)) }
	return j
}

// ── Record ───────────────────────────────────────────────────────────────────

func TestJournalRecord_Pending(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockJournalRepository(ctrl)
	j := newTestJournal(repo)

	payload := models.Record{"id": "o1", "total": 10.5}
	var appended models.JournalEntry
	repo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e models.JournalEntry) error {
			appended = e
			return nil
		})

	entry, err := j.Record(context.Background(), repo, orderMutation("o1", nil), models.OperationInsert, payload, models.StatusPending)
	require.NoError(t, err)

	assert.Equal(t, appended, entry)
	assert.Equal(t, "entry-1", entry.ID)
	assert.Equal(t, testAccount, entry.AccountID)
	assert.Equal(t, "orders", entry.TableName)
	assert.Equal(t, models.OperationInsert, entry.Operation)
	assert.Equal(t, models.StatusPending, entry.Status)
	assert.Equal(t, time.UTC, entry.CreatedAt.Location())
	assert.Nil(t, entry.SyncedAt)
	assert.Nil(t, entry.IdempotencyKey)
	assert.NotEmpty(t, entry.Checksum)

	require.NoError(t, j.Verify(entry))
}

func TestJournalRecord_SyncedWithIdempotencyKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockJournalRepository(ctrl)
	j := newTestJournal(repo)
	repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	m := orderMutation("o1", nil)
	m.IdempotencyKey = "req-42"
	entry, err := j.Record(context.Background(), repo, m, models.OperationUpdate, models.Record{"id": "o1"}, models.StatusSynced)
	require.NoError(t, err)

	require.NotNil(t, entry.SyncedAt)
	assert.Equal(t, entry.CreatedAt, *entry.SyncedAt)
	require.NotNil(t, entry.IdempotencyKey)
	assert.Equal(t, "req-42", *entry.IdempotencyKey)
}

func TestJournalRecord_AppendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockJournalRepository(ctrl)
	j := newTestJournal(repo)

	boom := errors.New("disk full")
	repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(boom)

	_, err := j.Record(context.Background(), repo, orderMutation("o1", nil), models.OperationDelete, models.Record{"id": "o1"}, models.StatusPending)
	require.ErrorIs(t, err, boom)
}

func TestJournalRecord_UnencodablePayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockJournalRepository(ctrl)
	j := newTestJournal(repo)

	_, err := j.Record(context.Background(), repo, orderMutation("o1", nil), models.OperationInsert,
		models.Record{"ch": make(chan int)}, models.StatusPending)
	require.Error(t, err)
}

// ── Verify ───────────────────────────────────────────────────────────────────

func TestJournalVerify_Tampered(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockJournalRepository(ctrl)
	j := newTestJournal(repo)
	repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	entry, err := j.Record(context.Background(), repo, orderMutation("o1", nil), models.OperationInsert,
		models.Record{"id": "o1", "total": 1.5}, models.StatusPending)
	require.NoError(t, err)

	entry.Payload = models.Record{"id": "o1", "total": 1000.5}
	require.ErrorIs(t, j.Verify(entry), ErrChecksumMismatch)

	entry.Checksum = "not-hex"
	require.ErrorIs(t, j.Verify(entry), ErrChecksumMismatch)
}

// ── queries ──────────────────────────────────────────────────────────────────

func TestJournalPurge(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockJournalRepository(ctrl)
	j := newTestJournal(repo)

	before := time.Date(2026, 5, 1, 0, 0, 0, 0, time.FixedZone("X", 3*3600))
	repo.EXPECT().PurgeSynced(gomock.Any(), testAccount, before).Return(int64(7), nil)

	res, err := j.Purge(context.Background(), testAccount, before)
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.Deleted)
	assert.Equal(t, testAccount, res.AccountID)
	assert.Equal(t, time.UTC, res.Before.Location())
}

func TestJournalPurge_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockJournalRepository(ctrl)
	j := newTestJournal(repo)

	boom := errors.New("locked")
	repo.EXPECT().PurgeSynced(gomock.Any(), testAccount, gomock.Any()).Return(int64(0), boom)

	_, err := j.Purge(context.Background(), testAccount, time.Now())
	require.ErrorIs(t, err, boom)
}

func TestJournalListAndStats_Delegate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockJournalRepository(ctrl)
	j := newTestJournal(repo)

	filter := models.JournalFilter{AccountID: testAccount, Statuses: []models.JournalStatus{models.StatusFailed}}
	repo.EXPECT().List(gomock.Any(), filter).Return([]models.JournalEntry{{ID: "e1"}}, nil)
	repo.EXPECT().Stats(gomock.Any(), testAccount).Return(models.JournalStats{AccountID: testAccount, Total: 3}, nil)

	entries, err := j.List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	stats, err := j.Stats(context.Background(), testAccount)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
}
