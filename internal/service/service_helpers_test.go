package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/store"
	"github.com/MKhiriev/go-edge-sync/internal/utils"
	"github.com/MKhiriev/go-edge-sync/models"
)

const testAccount = "acc-1"

var businessDDL = []string{
	`CREATE TABLE orders (
		id         TEXT PRIMARY KEY,
		account_id TEXT    NOT NULL,
		store_id   TEXT    NULL,
		version    INTEGER NOT NULL DEFAULT 1,
		status     TEXT    NULL,
		total      REAL    NULL,
		updated_at TIMESTAMP NULL
	)`,
	`CREATE TABLE catalog_items (
		id         TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		name       TEXT NOT NULL,
		updated_at TIMESTAMP NULL
	)`,
	`CREATE TABLE staff (
		id         TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		store_id   TEXT NOT NULL,
		name       TEXT NOT NULL
	)`,
}

func testReplication(mode string) config.Replication {
	return config.Replication{
		JournalMode:       mode,
		IDColumn:          "id",
		VersionColumn:     "version",
		AccountColumn:     "account_id",
		StoreColumn:       "store_id",
		UpdatedAtColumn:   "updated_at",
		ReferenceTables:   []string{"catalog_items"},
		StoreScopedTables: []string{"staff"},
	}
}

// testEnv wires the services on two SQLite files: one plays the edge store,
// the other the shared store.
type testEnv struct {
	localDB  *store.DB
	sharedDB *store.DB
	local    store.LocalStore
	shared   store.SharedStore

	conn        *Connectivity
	coordinator *Coordinator
	journal     JournalService

	router      StorageRouter
	replication ReplicationService
	conflicts   ConflictService
	pull        PullService
}

func openTestDB(t *testing.T, name string, migrate bool) *store.DB {
	t.Helper()

	db, err := store.NewConnectSQLite(context.Background(), config.LocalDB{
		DSN: filepath.Join(t.TempDir(), name),
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	if migrate {
		require.NoError(t, db.Migrate())
	}
	for _, ddl := range businessDDL {
		_, err = db.Exec(ddl)
		require.NoError(t, err)
	}
	return db
}

func newTestEnv(t *testing.T, mode string) *testEnv {
	t.Helper()

	repl := testReplication(mode)
	schema := store.SchemaFromConfig(repl)

	localDB := openTestDB(t, "edge.db", true)
	sharedDB := openTestDB(t, "shared.db", false)

	env := &testEnv{
		localDB:  localDB,
		sharedDB: sharedDB,
		local:    store.NewLocalStore(localDB, schema),
		shared:   store.NewSharedStore(sharedDB, schema),
	}
	env.wire(t, env.shared, repl)
	return env
}

// wire (re)builds the services on top of shared, keeping the local store.
func (e *testEnv) wire(t *testing.T, shared store.SharedStore, repl config.Replication) {
	t.Helper()

	log := logger.Nop()
	ids := utils.NewUUIDGenerator()

	if e.conn == nil {
		e.conn = NewConnectivity(true, log)
	}
	e.coordinator = NewCoordinator()
	e.journal = NewJournalService(e.local.Journal(), utils.NewChecksummer("test-key"), ids, log)
	e.router = NewStorageRouter(e.local, shared, e.conn, e.journal, repl, log)
	e.replication = NewReplicationService(e.local, shared, e.conn, e.journal, e.coordinator, ids, repl, log)
	e.conflicts = NewConflictService(e.local, shared, e.conn, repl, log)
	e.pull = NewPullService(e.local, shared, e.conn, repl, log)
}

func (e *testEnv) entries(t *testing.T) []models.JournalEntry {
	t.Helper()
	entries, err := e.local.Journal().List(context.Background(), models.JournalFilter{AccountID: testAccount})
	require.NoError(t, err)
	return entries
}

func seedRow(t *testing.T, db *store.DB, id string, version int64, total float64) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO orders (id, account_id, version, status, total) VALUES (?, ?, ?, 'open', ?)`,
		id, testAccount, version, total)
	require.NoError(t, err)
}

func readRow(t *testing.T, repo store.RecordRepository, id string) models.Record {
	t.Helper()
	row, err := repo.SelectOne(context.Background(), testAccount, "orders", id)
	require.NoError(t, err)
	return row
}

func orderMutation(id string, rec models.Record) models.Mutation {
	return models.Mutation{
		AccountID: testAccount,
		TableName: "orders",
		RecordID:  id,
		Record:    rec,
	}
}
