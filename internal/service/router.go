package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/store"
	"github.com/MKhiriev/go-edge-sync/models"
)

type storageRouter struct {
	local        store.LocalStore
	shared       store.SharedStore
	connectivity *Connectivity
	journal      JournalService

	schema      store.RecordSchema
	journalMode string
	// tables is nil when every table is routed.
	tables map[string]struct{}

	logger *logger.Logger
}

func NewStorageRouter(local store.LocalStore, shared store.SharedStore, connectivity *Connectivity,
	journal JournalService, repl config.Replication, log *logger.Logger) StorageRouter {
	var tables map[string]struct{}
	if len(repl.Tables) > 0 {
		tables = make(map[string]struct{}, len(repl.Tables))
		for _, t := range repl.Tables {
			tables[t] = struct{}{}
		}
	}

	return &storageRouter{
		local:        local,
		shared:       shared,
		connectivity: connectivity,
		journal:      journal,
		schema:       store.SchemaFromConfig(repl),
		journalMode:  repl.JournalMode,
		tables:       tables,
		logger:       log,
	}
}

func (r *storageRouter) SetOnlineStatus(online bool) {
	r.connectivity.SetOnline(online)
}

func (r *storageRouter) IsOnline() bool {
	return r.connectivity.IsOnline()
}

func (r *storageRouter) Select(ctx context.Context, query models.Query) ([]models.Record, error) {
	if err := r.checkTable(query.TableName); err != nil {
		return nil, err
	}

	if r.IsOnline() {
		rows, err := r.shared.Records().Select(ctx, query)
		r.connectivity.observe(err)
		return rows, err
	}

	return r.local.Records().Select(ctx, query)
}

func (r *storageRouter) SelectOne(ctx context.Context, accountID, table, recordID string) (models.Record, error) {
	if err := r.checkTable(table); err != nil {
		return nil, err
	}

	if r.IsOnline() {
		row, err := r.shared.Records().SelectOne(ctx, accountID, table, recordID)
		r.connectivity.observe(err)
		return row, err
	}

	return r.local.Records().SelectOne(ctx, accountID, table, recordID)
}

// Insert, Update and Delete return the written snapshot in canonical form
// (see [models.Record.Canonical]), so a retried write absorbed by its
// idempotency key returns a value equal to the one the first call returned.
func (r *storageRouter) Insert(ctx context.Context, m models.Mutation) (models.Record, error) {
	return canonical(r.insertRecord(ctx, m))
}

func (r *storageRouter) Update(ctx context.Context, m models.Mutation) (models.Record, error) {
	return canonical(r.updateRecord(ctx, m))
}

func (r *storageRouter) Delete(ctx context.Context, m models.Mutation) (models.Record, error) {
	return canonical(r.deleteRecord(ctx, m))
}

func canonical(rec models.Record, err error) (models.Record, error) {
	if err != nil {
		return nil, err
	}
	out, cerr := rec.Canonical()
	if cerr != nil {
		return rec, nil
	}
	return out, nil
}

func (r *storageRouter) insertRecord(ctx context.Context, m models.Mutation) (models.Record, error) {
	m, rec, err := r.prepare(m)
	if err != nil {
		return nil, err
	}

	if r.schema.AccountColumn != "" && rec[r.schema.AccountColumn] == nil {
		rec[r.schema.AccountColumn] = m.AccountID
	}
	if r.schema.StoreColumn != "" && m.StoreID != "" && rec[r.schema.StoreColumn] == nil {
		rec[r.schema.StoreColumn] = m.StoreID
	}

	if prev, ok, err := r.absorb(ctx, m); err != nil || ok {
		return prev, err
	}

	if r.IsOnline() {
		if err = r.shared.Records().Insert(ctx, m.TableName, rec); err != nil {
			r.connectivity.observe(err)
			return nil, err
		}
		r.recordOnline(ctx, m, models.OperationInsert, rec)
		return rec, nil
	}

	err = r.local.InTx(ctx, func(scope store.LocalScope) error {
		if err := scope.Records().Insert(ctx, m.TableName, rec); err != nil {
			return err
		}
		_, err := r.journal.Record(ctx, scope.Journal(), m, models.OperationInsert, rec, models.StatusPending)
		return err
	})
	if err != nil {
		return r.absorbRace(ctx, m, err)
	}

	return rec, nil
}

// updateRecord applies the columns of the mutation record. The version column is
// bumped on whichever store takes the write: offline so that the journaled
// snapshot states the version its replay produces, online so that pending
// replays of other edges see the row as changed.
func (r *storageRouter) updateRecord(ctx context.Context, m models.Mutation) (models.Record, error) {
	m, rec, err := r.prepare(m)
	if err != nil {
		return nil, err
	}
	delete(rec, r.schema.IDColumn)

	if prev, ok, err := r.absorb(ctx, m); err != nil || ok {
		return prev, err
	}

	if r.IsOnline() {
		expected, err := r.bumpSharedVersion(ctx, m, rec)
		if err != nil {
			return nil, err
		}
		if err = r.shared.Records().Update(ctx, m.TableName, m.RecordID, rec, expected); err != nil {
			r.connectivity.observe(err)
			return nil, err
		}

		snapshot := rec
		if fresh, err := r.shared.Records().SelectOne(ctx, m.AccountID, m.TableName, m.RecordID); err == nil {
			snapshot = fresh
		}
		r.recordOnline(ctx, m, models.OperationUpdate, snapshot)
		return snapshot, nil
	}

	var snapshot models.Record
	err = r.local.InTx(ctx, func(scope store.LocalScope) error {
		current, err := scope.Records().SelectOne(ctx, m.AccountID, m.TableName, m.RecordID)
		if err != nil {
			return err
		}

		if vc := r.schema.VersionColumn; vc != "" {
			if v, ok := current.Int64(vc); ok {
				rec[vc] = v + 1
			}
		}

		if err = scope.Records().Update(ctx, m.TableName, m.RecordID, rec, nil); err != nil {
			return err
		}

		snapshot = current.Clone()
		for col, v := range rec {
			snapshot[col] = v
		}

		_, err = r.journal.Record(ctx, scope.Journal(), m, models.OperationUpdate, snapshot, models.StatusPending)
		return err
	})
	if err != nil {
		return r.absorbRace(ctx, m, err)
	}

	return snapshot, nil
}

// deleteRecord removes the record. The returned snapshot is the last known row,
// or just its id when the row was already gone.
func (r *storageRouter) deleteRecord(ctx context.Context, m models.Mutation) (models.Record, error) {
	m, _, err := r.prepare(m)
	if err != nil {
		return nil, err
	}

	if prev, ok, err := r.absorb(ctx, m); err != nil || ok {
		return prev, err
	}

	if r.IsOnline() {
		snapshot := models.Record{r.schema.IDColumn: m.RecordID}
		if r.journalsOnline(m) {
			if row, err := r.shared.Records().SelectOne(ctx, m.AccountID, m.TableName, m.RecordID); err == nil {
				snapshot = row
			}
		}

		if err = r.shared.Records().Delete(ctx, m.TableName, m.RecordID); err != nil {
			r.connectivity.observe(err)
			return nil, err
		}
		r.recordOnline(ctx, m, models.OperationDelete, snapshot)
		return snapshot, nil
	}

	var snapshot models.Record
	err = r.local.InTx(ctx, func(scope store.LocalScope) error {
		current, err := scope.Records().SelectOne(ctx, m.AccountID, m.TableName, m.RecordID)
		switch {
		case errors.Is(err, store.ErrRecordNotFound):
			snapshot = models.Record{r.schema.IDColumn: m.RecordID}
		case err != nil:
			return err
		default:
			snapshot = current
		}

		if err = scope.Records().Delete(ctx, m.TableName, m.RecordID); err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}

		_, err = r.journal.Record(ctx, scope.Journal(), m, models.OperationDelete, snapshot, models.StatusPending)
		return err
	})
	if err != nil {
		return r.absorbRace(ctx, m, err)
	}

	return snapshot, nil
}

// bumpSharedVersion reads the shared row and sets rec's version column to
// the next version. The returned version guards the write, so an update
// racing another writer fails with [store.ErrVersionConflict] instead of
// overwriting it. Tables without a version column are written unguarded.
func (r *storageRouter) bumpSharedVersion(ctx context.Context, m models.Mutation, rec models.Record) (*int64, error) {
	vc := r.schema.VersionColumn
	if vc == "" {
		return nil, nil
	}

	current, err := r.shared.Records().SelectOne(ctx, m.AccountID, m.TableName, m.RecordID)
	if err != nil {
		r.connectivity.observe(err)
		return nil, err
	}

	v, ok := current.Int64(vc)
	if !ok {
		return nil, nil
	}
	rec[vc] = v + 1
	return &v, nil
}

// prepare checks routing and resolves the record id, falling back to the id
// column of the record.
func (r *storageRouter) prepare(m models.Mutation) (models.Mutation, models.Record, error) {
	if err := r.checkTable(m.TableName); err != nil {
		return m, nil, err
	}

	rec := m.Record.Clone()
	if rec == nil {
		rec = models.Record{}
	}

	if m.RecordID == "" {
		if id, ok := rec.String(r.schema.IDColumn); ok {
			m.RecordID = id
		}
	}
	if m.RecordID == "" {
		return m, nil, fmt.Errorf("%w: %w", ErrValidation, ErrMissingRowID)
	}
	if _, ok := rec[r.schema.IDColumn]; !ok {
		rec[r.schema.IDColumn] = m.RecordID
	}

	return m, rec, nil
}

func (r *storageRouter) checkTable(table string) error {
	if err := store.ValidateIdentifier(table); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if r.tables == nil {
		return nil
	}
	if _, ok := r.tables[table]; !ok {
		return fmt.Errorf("%w: %w: %s", ErrValidation, ErrTableNotRouted, table)
	}
	return nil
}

// absorb returns the stored snapshot when the idempotency key of m was
// already journaled for the account.
func (r *storageRouter) absorb(ctx context.Context, m models.Mutation) (models.Record, bool, error) {
	if m.IdempotencyKey == "" {
		return nil, false, nil
	}

	entry, err := r.local.Journal().FindByIdempotencyKey(ctx, m.AccountID, m.IdempotencyKey)
	if errors.Is(err, store.ErrJournalEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	logger.FromContext(ctx).Debug().
		Str("func", "storageRouter.absorb").
		Str("account_id", m.AccountID).
		Str("idempotency_key", m.IdempotencyKey).
		Str("entry_id", entry.ID).
		Msg("duplicate mutation absorbed")

	return entry.Payload, true, nil
}

// absorbRace turns a lost race on the idempotency key into an absorbed
// write. Any other error is returned as is.
func (r *storageRouter) absorbRace(ctx context.Context, m models.Mutation, err error) (models.Record, error) {
	if !errors.Is(err, store.ErrDuplicateIdempotencyKey) {
		return nil, err
	}
	prev, ok, lookupErr := r.absorb(ctx, m)
	if lookupErr != nil || !ok {
		return nil, err
	}
	return prev, nil
}

func (r *storageRouter) journalsOnline(m models.Mutation) bool {
	return r.journalMode == config.JournalModeAlways || m.IdempotencyKey != ""
}

// recordOnline journals a write the shared store already accepted, as
// synced. In "always" mode the write is also mirrored into the local store.
// Failures are logged only: the shared write is committed either way.
func (r *storageRouter) recordOnline(ctx context.Context, m models.Mutation, op models.Operation, snapshot models.Record) {
	if !r.journalsOnline(m) {
		return
	}
	mirror := r.journalMode == config.JournalModeAlways

	err := r.local.InTx(ctx, func(scope store.LocalScope) error {
		if mirror {
			var err error
			if op == models.OperationDelete {
				err = scope.Records().Delete(ctx, m.TableName, m.RecordID)
				if errors.Is(err, store.ErrRecordNotFound) {
					err = nil
				}
			} else {
				err = scope.Records().Upsert(ctx, m.TableName, m.RecordID, snapshot)
			}
			if err != nil {
				return err
			}
		}
		_, err := r.journal.Record(ctx, scope.Journal(), m, op, snapshot, models.StatusSynced)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "storageRouter.recordOnline").
			Str("account_id", m.AccountID).
			Str("table", m.TableName).
			Str("record_id", m.RecordID).
			Msg("shared write committed but local journaling failed")
	}
}
