package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/models"
)

const ordersDDL = `CREATE TABLE orders (
	id         TEXT PRIMARY KEY,
	account_id TEXT    NOT NULL,
	store_id   TEXT    NULL,
	version    INTEGER NOT NULL DEFAULT 1,
	status     TEXT    NULL,
	total      REAL    NULL,
	updated_at TIMESTAMP NULL
)`

var testSchema = RecordSchema{
	IDColumn:        "id",
	VersionColumn:   "version",
	AccountColumn:   "account_id",
	StoreColumn:     "store_id",
	UpdatedAtColumn: "updated_at",
}

// newTestLocalDB opens a migrated SQLite file with an orders table.
func newTestLocalDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), config.LocalDB{
		DSN: filepath.Join(t.TempDir(), "edge.db"),
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate())
	_, err = db.Exec(ordersDDL)
	require.NoError(t, err)

	return db
}

func newMockDB(t *testing.T, dialect Dialect) (*DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewDB(conn, dialect, logger.Nop()), mock, conn
}

func testEntry(id, accountID string, createdAt time.Time) models.JournalEntry {
	return models.JournalEntry{
		ID:        id,
		AccountID: accountID,
		TableName: "orders",
		RecordID:  "o-" + id,
		Operation: models.OperationInsert,
		Payload:   models.Record{"id": "o-" + id, "version": int64(1)},
		Status:    models.StatusPending,
		Checksum:  "sum-" + id,
		CreatedAt: createdAt,
	}
}

func strPtr(s string) *string { return &s }
