package store

import (
	"context"
	"errors"
	"net"
	"regexp"
	"syscall"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-edge-sync/models"
)

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

// ── shared store (sqlmock) ──────────────────────────────────────────────────

func TestRecordRepository_Update_PostgresVersionConflict(t *testing.T) {
	db, mock, _ := newMockDB(t, DialectPostgres)
	repo := NewRecordRepository(db, testSchema)
	expected := int64(1)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET status = $1, version = $2 WHERE id = $3 AND version = $4`)).
		WithArgs("ready", int64(2), "o1", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM orders WHERE id = $1 LIMIT 1`)).
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	err := repo.Update(context.Background(), "orders", "o1", models.Record{"status": "ready", "version": int64(2)}, &expected)

	require.ErrorIs(t, err, ErrVersionConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Update_PostgresMissingRow(t *testing.T) {
	db, mock, _ := newMockDB(t, DialectPostgres)
	repo := NewRecordRepository(db, testSchema)

	mock.ExpectExec("UPDATE orders SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM orders").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	err := repo.Update(context.Background(), "orders", "o1", models.Record{"status": "ready"}, nil)

	require.ErrorIs(t, err, ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Insert_ClassifiesDriverErrors(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		dbErr   error
		wantErr error
	}{
		{name: "postgres unique", dialect: DialectPostgres, dbErr: pgError(pgerrcode.UniqueViolation), wantErr: ErrConstraintViolation},
		{name: "postgres foreign key", dialect: DialectPostgres, dbErr: pgError(pgerrcode.ForeignKeyViolation), wantErr: ErrConstraintViolation},
		{name: "postgres admin shutdown", dialect: DialectPostgres, dbErr: pgError(pgerrcode.AdminShutdown), wantErr: ErrStoreUnavailable},
		{name: "postgres deadlock", dialect: DialectPostgres, dbErr: pgError(pgerrcode.DeadlockDetected), wantErr: ErrExecutingStatement},
		{name: "mysql duplicate", dialect: DialectMySQL, dbErr: &mysql.MySQLError{Number: 1062}, wantErr: ErrConstraintViolation},
		{name: "mysql invalid conn", dialect: DialectMySQL, dbErr: mysql.ErrInvalidConn, wantErr: ErrStoreUnavailable},
		{name: "plain error", dialect: DialectPostgres, dbErr: errors.New("boom"), wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, _ := newMockDB(t, tt.dialect)
			repo := NewRecordRepository(db, testSchema)

			mock.ExpectExec("INSERT INTO orders").WillReturnError(tt.dbErr)

			err := repo.Insert(context.Background(), "orders", models.Record{"id": "o1", "account_id": "acc"})

			require.ErrorIs(t, err, tt.wantErr)
			// driver error stays in the chain
			assert.ErrorIs(t, err, tt.dbErr)
		})
	}
}

func TestRecordRepository_Insert_MySQLPlaceholders(t *testing.T) {
	db, mock, _ := newMockDB(t, DialectMySQL)
	repo := NewRecordRepository(db, testSchema)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders (account_id,id,meta) VALUES (?,?,?)`)).
		WithArgs("acc", "o1", `{"tags":["a"]}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), "orders", models.Record{
		"id":         "o1",
		"account_id": "acc",
		"meta":       map[string]any{"tags": []any{"a"}},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_RejectsInvalidIdentifiers(t *testing.T) {
	db, _, _ := newMockDB(t, DialectPostgres)
	repo := NewRecordRepository(db, testSchema)
	ctx := context.Background()

	_, err := repo.Select(ctx, models.Query{TableName: "orders; DROP TABLE orders"})
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	err = repo.Insert(ctx, "orders", models.Record{"id": "o1", "bad column": 1})
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	err = repo.Delete(ctx, "1orders", "o1")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestRecordRepository_EmptyWrites(t *testing.T) {
	db, _, _ := newMockDB(t, DialectPostgres)
	repo := NewRecordRepository(db, testSchema)

	assert.ErrorIs(t, repo.Insert(context.Background(), "orders", models.Record{}), ErrEmptyRecord)
	assert.ErrorIs(t, repo.Update(context.Background(), "orders", "o1", models.Record{"id": "o1"}, nil), ErrEmptyRecord)
}

func TestRecordRepository_Select_ConnectionRefused(t *testing.T) {
	db, mock, _ := newMockDB(t, DialectPostgres)
	repo := NewRecordRepository(db, testSchema)

	mock.ExpectQuery("SELECT \\* FROM orders").WillReturnError(&net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED})

	_, err := repo.Select(context.Background(), models.Query{AccountID: "acc", TableName: "orders"})

	require.ErrorIs(t, err, ErrStoreUnavailable)
}

// ── local store (sqlite) ────────────────────────────────────────────────────

func TestRecordRepository_SQLite_CRUD(t *testing.T) {
	db := newTestLocalDB(t)
	repo := NewRecordRepository(db, testSchema)
	ctx := context.Background()

	err := repo.Insert(ctx, "orders", models.Record{"id": "o1", "account_id": "acc", "version": int64(1), "status": "new", "total": 12.5})
	require.NoError(t, err)

	got, err := repo.SelectOne(ctx, "acc", "orders", "o1")
	require.NoError(t, err)
	assert.Equal(t, "o1", got["id"])
	assert.Equal(t, int64(1), got["version"])
	assert.Equal(t, "new", got["status"])
	assert.Equal(t, 12.5, got["total"])
	assert.Nil(t, got["store_id"])

	_, err = repo.SelectOne(ctx, "other", "orders", "o1")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	expected := int64(1)
	require.NoError(t, repo.Update(ctx, "orders", "o1", models.Record{"status": "ready", "version": int64(2)}, &expected))

	err = repo.Update(ctx, "orders", "o1", models.Record{"status": "late", "version": int64(2)}, &expected)
	assert.ErrorIs(t, err, ErrVersionConflict)

	err = repo.Update(ctx, "orders", "missing", models.Record{"status": "late"}, nil)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	got, err = repo.SelectOne(ctx, "", "orders", "o1")
	require.NoError(t, err)
	assert.Equal(t, "ready", got["status"])
	assert.Equal(t, int64(2), got["version"])

	require.NoError(t, repo.Delete(ctx, "orders", "o1"))
	assert.ErrorIs(t, repo.Delete(ctx, "orders", "o1"), ErrRecordNotFound)
}

func TestRecordRepository_SQLite_DuplicateInsertIsConstraintViolation(t *testing.T) {
	db := newTestLocalDB(t)
	repo := NewRecordRepository(db, testSchema)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, "orders", models.Record{"id": "o1", "account_id": "acc"}))

	err := repo.Insert(ctx, "orders", models.Record{"id": "o1", "account_id": "acc"})

	require.ErrorIs(t, err, ErrConstraintViolation)
}

func TestRecordRepository_SQLite_Upsert(t *testing.T) {
	db := newTestLocalDB(t)
	repo := NewRecordRepository(db, testSchema)
	ctx := context.Background()

	// id column is filled in from recordID
	require.NoError(t, repo.Upsert(ctx, "orders", "o1", models.Record{"account_id": "acc", "status": "new"}))
	require.NoError(t, repo.Upsert(ctx, "orders", "o1", models.Record{"account_id": "acc", "status": "ready"}))

	rows, err := repo.Select(ctx, models.Query{AccountID: "acc", TableName: "orders"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ready", rows[0]["status"])
}

func TestRecordRepository_SQLite_SelectFilters(t *testing.T) {
	db := newTestLocalDB(t)
	repo := NewRecordRepository(db, testSchema)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []models.Record{
		{"id": "a", "account_id": "acc", "store_id": "s1", "updated_at": base},
		{"id": "b", "account_id": "acc", "store_id": "s2", "updated_at": base.Add(time.Hour)},
		{"id": "c", "account_id": "acc", "store_id": "s1", "updated_at": base.Add(2 * time.Hour)},
		{"id": "d", "account_id": "other", "store_id": "s1", "updated_at": base.Add(3 * time.Hour)},
	}
	for _, r := range rows {
		require.NoError(t, repo.Insert(ctx, "orders", r))
	}

	all, err := repo.Select(ctx, models.Query{AccountID: "acc", TableName: "orders"})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", "c"}, ids(all))

	byStore, err := repo.Select(ctx, models.Query{AccountID: "acc", StoreID: "s1", TableName: "orders"})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "c"}, ids(byStore))

	since := base.Add(30 * time.Minute)
	recent, err := repo.Select(ctx, models.Query{AccountID: "acc", TableName: "orders", Since: &since})
	require.NoError(t, err)
	assert.Equal(t, []any{"b", "c"}, ids(recent))

	limited, err := repo.Select(ctx, models.Query{AccountID: "acc", TableName: "orders", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []any{"a"}, ids(limited))

	ts, ok := recent[0]["updated_at"].(time.Time)
	require.True(t, ok)
	assert.True(t, ts.Equal(base.Add(time.Hour)))
}

func ids(records []models.Record) []any {
	out := make([]any, 0, len(records))
	for _, r := range records {
		out = append(out, r["id"])
	}
	return out
}

func TestRecordSchema_Validate(t *testing.T) {
	assert.NoError(t, testSchema.Validate())
	assert.NoError(t, RecordSchema{IDColumn: "id"}.Validate())
	assert.ErrorIs(t, RecordSchema{}.Validate(), ErrInvalidIdentifier)
	assert.ErrorIs(t, RecordSchema{IDColumn: "id", VersionColumn: "ver sion"}.Validate(), ErrInvalidIdentifier)
}
