package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
)

// Storages bundles both stores the engine routes between.
type Storages struct {
	Local  LocalStore
	Shared SharedStore

	// SharedReachable is false when the shared store did not answer the
	// startup ping. The node then starts offline.
	SharedReachable bool

	localDB  *DB
	sharedDB *DB
}

// NewStorages opens and migrates the local store and opens the shared store.
// An unreachable shared store is not an error.
func NewStorages(ctx context.Context, cfg config.Storage, repl config.Replication, log *logger.Logger) (*Storages, error) {
	schema := SchemaFromConfig(repl)
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("invalid record schema: %w", err)
	}

	localDB, err := NewConnectSQLite(ctx, cfg.Local, log)
	if err != nil {
		return nil, err
	}
	if err = localDB.Migrate(); err != nil {
		_ = localDB.Close()
		log.Err(err).Str("func", "store.NewStorages").Msg("error migrating local store")
		return nil, err
	}

	var sharedDB *DB
	switch cfg.Shared.Driver {
	case config.DriverMySQL:
		sharedDB, err = NewConnectMySQL(ctx, cfg.Shared, log)
	default:
		sharedDB, err = NewConnectPostgres(ctx, cfg.Shared, log)
	}

	reachable := true
	if err != nil {
		if sharedDB == nil || !errors.Is(err, ErrStoreUnavailable) {
			_ = localDB.Close()
			return nil, err
		}
		log.Warn().Err(err).Str("func", "store.NewStorages").Msg("shared store unreachable, starting offline")
		reachable = false
	}

	return &Storages{
		Local:           NewLocalStore(localDB, schema),
		Shared:          NewSharedStore(sharedDB, schema),
		SharedReachable: reachable,
		localDB:         localDB,
		sharedDB:        sharedDB,
	}, nil
}

// Close closes both database handles.
func (s *Storages) Close() error {
	var errs []error
	if s.sharedDB != nil {
		errs = append(errs, s.sharedDB.Close())
	}
	if s.localDB != nil {
		errs = append(errs, s.localDB.Close())
	}
	return errors.Join(errs...)
}

// SchemaFromConfig extracts the shared column layout of routed tables.
func SchemaFromConfig(repl config.Replication) RecordSchema {
	return RecordSchema{
		IDColumn:        repl.IDColumn,
		VersionColumn:   repl.VersionColumn,
		AccountColumn:   repl.AccountColumn,
		StoreColumn:     repl.StoreColumn,
		UpdatedAtColumn: repl.UpdatedAtColumn,
	}
}

// localScope binds the local repositories to one Querier.
type localScope struct {
	records   RecordRepository
	journal   JournalRepository
	conflicts ConflictRepository
}

func newLocalScope(db *DB, q Querier, schema RecordSchema) *localScope {
	return &localScope{
		records:   newRecordRepository(db, q, schema),
		journal:   newJournalRepository(db, q),
		conflicts: newConflictRepository(db, q),
	}
}

func (s *localScope) Records() RecordRepository     { return s.records }
func (s *localScope) Journal() JournalRepository    { return s.journal }
func (s *localScope) Conflicts() ConflictRepository { return s.conflicts }

type localStore struct {
	*localScope
	db     *DB
	schema RecordSchema
}

// NewLocalStore constructs the [LocalStore] on an already migrated SQLite db.
func NewLocalStore(db *DB, schema RecordSchema) LocalStore {
	return &localStore{
		localScope: newLocalScope(db, db.DB, schema),
		db:         db,
		schema:     schema,
	}
}

// InTx hands fn repositories bound to a single transaction. The local pool
// has one connection, so fn must not touch the non-transactional scope.
func (s *localStore) InTx(ctx context.Context, fn func(scope LocalScope) error) error {
	return s.db.inTx(ctx, func(tx *sql.Tx) error {
		return fn(newLocalScope(s.db, tx, s.schema))
	})
}

type sharedStore struct {
	db      *DB
	records RecordRepository
	locker  AccountLocker
}

// NewSharedStore constructs the [SharedStore] on db.
func NewSharedStore(db *DB, schema RecordSchema) SharedStore {
	return &sharedStore{
		db:      db,
		records: NewRecordRepository(db, schema),
		locker:  NewAccountLocker(db),
	}
}

func (s *sharedStore) Records() RecordRepository { return s.records }

func (s *sharedStore) Locker() AccountLocker { return s.locker }

func (s *sharedStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}
