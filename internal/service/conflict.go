package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/store"
	"github.com/MKhiriev/go-edge-sync/models"
)

type conflictService struct {
	local        store.LocalStore
	shared       store.SharedStore
	connectivity *Connectivity

	schema store.RecordSchema
	now    func() time.Time

	logger *logger.Logger
}

func NewConflictService(local store.LocalStore, shared store.SharedStore, connectivity *Connectivity,
	repl config.Replication, log *logger.Logger) ConflictService {
	return &conflictService{
		local:        local,
		shared:       shared,
		connectivity: connectivity,
		schema:       store.SchemaFromConfig(repl),
		now:          time.Now,
		logger:       log,
	}
}

func (c *conflictService) GetConflicts(ctx context.Context, accountID string) ([]models.SyncConflict, error) {
	return c.local.Conflicts().ListUnresolved(ctx, accountID)
}

// GetConflict hides conflicts of other accounts behind not found.
func (c *conflictService) GetConflict(ctx context.Context, accountID, conflictID string) (models.SyncConflict, error) {
	conflict, err := c.local.Conflicts().GetByID(ctx, conflictID)
	if err != nil {
		return models.SyncConflict{}, err
	}
	if conflict.AccountID != accountID {
		return models.SyncConflict{}, store.ErrConflictNotFound
	}
	return conflict, nil
}

// ResolveConflict applies the resolution to the shared store, then stamps
// the conflict and moves its journal entry to synced in one local
// transaction. Every precondition is checked before any store is written.
func (c *conflictService) ResolveConflict(ctx context.Context, req models.ResolveRequest) (models.SyncConflict, error) {
	log := logger.FromContext(ctx).With().
		Str("account_id", req.AccountID).
		Str("conflict_id", req.ConflictID).
		Str("resolution", string(req.Resolution)).
		Logger()

	conflict, err := c.local.Conflicts().GetByID(ctx, req.ConflictID)
	if err != nil {
		return models.SyncConflict{}, err
	}
	if conflict.AccountID != req.AccountID {
		return models.SyncConflict{}, fmt.Errorf("%w: %w", ErrValidation, ErrConflictAccountMismatch)
	}
	if conflict.IsResolved() {
		return models.SyncConflict{}, fmt.Errorf("%w: %w", ErrValidation, ErrConflictAlreadyResolved)
	}
	if !req.Resolution.Valid() {
		return models.SyncConflict{}, fmt.Errorf("%w: unknown resolution %q", ErrValidation, req.Resolution)
	}
	if req.Resolution.RequiresData() && len(req.ResolvedData) == 0 {
		return models.SyncConflict{}, fmt.Errorf("%w: resolution %q requires resolved data", ErrValidation, req.Resolution)
	}
	if req.Resolution != models.ResolutionRemoteWins && !c.connectivity.IsOnline() {
		return models.SyncConflict{}, fmt.Errorf("%w: %w", ErrValidation, ErrOffline)
	}

	entry, err := c.local.Journal().GetByID(ctx, conflict.JournalEntryID)
	if err != nil {
		log.Error().Err(err).Str("func", "conflictService.ResolveConflict").Msg("journal entry of conflict not found")
		return models.SyncConflict{}, err
	}

	applied, deleted, err := c.applyShared(ctx, conflict, entry, req)
	if err != nil {
		c.connectivity.observe(err)
		log.Error().Err(err).Str("func", "conflictService.ResolveConflict").Msg("failed to apply resolution to shared store")
		return models.SyncConflict{}, err
	}

	now := c.now().UTC()
	resolution := req.Resolution
	resolvedBy := req.ResolvedBy
	conflict.Resolution = &resolution
	conflict.ResolvedData = applied
	conflict.ResolvedBy = &resolvedBy
	conflict.ResolvedAt = &now

	err = c.local.InTx(ctx, func(scope store.LocalScope) error {
		if err := scope.Conflicts().MarkResolved(ctx, conflict); err != nil {
			return err
		}
		return scope.Journal().MarkSynced(ctx, entry.ID, now)
	})
	if errors.Is(err, store.ErrConflictAlreadyResolved) {
		return models.SyncConflict{}, fmt.Errorf("%w: %w", ErrValidation, ErrConflictAlreadyResolved)
	}
	if err != nil {
		log.Error().Err(err).Str("func", "conflictService.ResolveConflict").Msg("failed to stamp resolution")
		return models.SyncConflict{}, err
	}

	c.refreshLocal(ctx, conflict, applied, deleted)

	log.Info().Str("func", "conflictService.ResolveConflict").Msg("conflict resolved")
	return conflict, nil
}

// applyShared writes the outcome of the resolution to the shared store. It
// returns the row now considered authoritative, or deleted when the row was
// removed.
func (c *conflictService) applyShared(ctx context.Context, conflict models.SyncConflict, entry models.JournalEntry,
	req models.ResolveRequest) (models.Record, bool, error) {
	records := c.shared.Records()

	switch req.Resolution {
	case models.ResolutionRemoteWins:
		return conflict.RemoteData, false, nil

	case models.ResolutionLocalWins:
		if conflict.ConflictType == models.ConflictDelete && entry.Operation == models.OperationDelete {
			err := records.Delete(ctx, conflict.TableName, conflict.RecordID)
			if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
				return nil, false, err
			}
			return nil, true, nil
		}
		data := c.overRemote(conflict, conflict.LocalData)
		return data, false, records.Upsert(ctx, conflict.TableName, conflict.RecordID, data)

	default:
		data := c.overRemote(conflict, req.ResolvedData)
		return data, false, records.Upsert(ctx, conflict.TableName, conflict.RecordID, data)
	}
}

// overRemote prepares data to overwrite the remote row: the id column is
// filled in and the version is set past the remote one when both sides
// carry a version.
func (c *conflictService) overRemote(conflict models.SyncConflict, data models.Record) models.Record {
	out := data.Clone()
	if out == nil {
		out = models.Record{}
	}
	if _, ok := out[c.schema.IDColumn]; !ok {
		out[c.schema.IDColumn] = conflict.RecordID
	}

	vc := c.schema.VersionColumn
	if vc == "" {
		return out
	}
	remote, ok := conflict.RemoteData.Int64(vc)
	if !ok {
		return out
	}
	if _, ok = out.Int64(vc); ok {
		out[vc] = remote + 1
	}
	return out
}

// refreshLocal brings the local row in line with the resolution. Failures
// are logged; a bulk pull repairs the row as well.
func (c *conflictService) refreshLocal(ctx context.Context, conflict models.SyncConflict, applied models.Record, deleted bool) {
	var err error
	switch {
	case deleted:
		err = c.local.Records().Delete(ctx, conflict.TableName, conflict.RecordID)
		if errors.Is(err, store.ErrRecordNotFound) {
			err = nil
		}
	case applied != nil:
		err = c.local.Records().Upsert(ctx, conflict.TableName, conflict.RecordID, applied)
	default:
		return
	}

	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "conflictService.refreshLocal").
			Str("conflict_id", conflict.ID).
			Str("table", conflict.TableName).
			Str("record_id", conflict.RecordID).
			Msg("local row not refreshed after resolution")
	}
}
