package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-edge-sync/internal/validators"
	"github.com/MKhiriev/go-edge-sync/models"
)

func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

// ─────────────────────────────────────────────────────────────────────────────
// StorageRouter
// ─────────────────────────────────────────────────────────────────────────────

type RouterValidationService struct {
	inner     StorageRouter
	validator validators.Validator
}

func NewRouterValidationService() StorageRouterWrapper {
	return &RouterValidationService{validator: validators.NewReplicationValidator()}
}

func (v *RouterValidationService) Wrap(inner StorageRouter) StorageRouter {
	v.inner = inner
	return v
}

func (v *RouterValidationService) Select(ctx context.Context, query models.Query) ([]models.Record, error) {
	if err := v.validator.Validate(ctx, query); err != nil {
		return nil, validationError(err)
	}
	return v.inner.Select(ctx, query)
}

func (v *RouterValidationService) SelectOne(ctx context.Context, accountID, table, recordID string) (models.Record, error) {
	key := models.Mutation{AccountID: accountID, TableName: table, RecordID: recordID}
	if err := v.validator.Validate(ctx, key, validators.FieldAccountID, validators.FieldTableName, validators.FieldRecordID); err != nil {
		return nil, validationError(err)
	}
	return v.inner.SelectOne(ctx, accountID, table, recordID)
}

func (v *RouterValidationService) Insert(ctx context.Context, mutation models.Mutation) (models.Record, error) {
	if err := v.validator.Validate(ctx, mutation); err != nil {
		return nil, validationError(err)
	}
	return v.inner.Insert(ctx, mutation)
}

func (v *RouterValidationService) Update(ctx context.Context, mutation models.Mutation) (models.Record, error) {
	err := v.validator.Validate(ctx, mutation,
		validators.FieldAccountID, validators.FieldTableName, validators.FieldRecordID,
		validators.FieldRecord, validators.FieldIdempotencyKey)
	if err != nil {
		return nil, validationError(err)
	}
	return v.inner.Update(ctx, mutation)
}

func (v *RouterValidationService) Delete(ctx context.Context, mutation models.Mutation) (models.Record, error) {
	err := v.validator.Validate(ctx, mutation,
		validators.FieldAccountID, validators.FieldTableName, validators.FieldRecordID, validators.FieldIdempotencyKey)
	if err != nil {
		return nil, validationError(err)
	}
	return v.inner.Delete(ctx, mutation)
}

func (v *RouterValidationService) SetOnlineStatus(online bool) {
	v.inner.SetOnlineStatus(online)
}

func (v *RouterValidationService) IsOnline() bool {
	return v.inner.IsOnline()
}

// ─────────────────────────────────────────────────────────────────────────────
// ReplicationService
// ─────────────────────────────────────────────────────────────────────────────

type ReplicationValidationService struct {
	inner     ReplicationService
	validator validators.Validator
}

func NewReplicationValidationService() ReplicationServiceWrapper {
	return &ReplicationValidationService{validator: validators.NewReplicationValidator()}
}

func (v *ReplicationValidationService) Wrap(inner ReplicationService) ReplicationService {
	v.inner = inner
	return v
}

func (v *ReplicationValidationService) TriggerSync(ctx context.Context, accountID string) (models.CycleSummary, error) {
	if err := v.validator.Validate(ctx, accountID); err != nil {
		return models.CycleSummary{}, validationError(err)
	}
	return v.inner.TriggerSync(ctx, accountID)
}

func (v *ReplicationValidationService) RetryFailed(ctx context.Context, accountID string) (models.CycleSummary, error) {
	if err := v.validator.Validate(ctx, accountID); err != nil {
		return models.CycleSummary{}, validationError(err)
	}
	return v.inner.RetryFailed(ctx, accountID)
}

func (v *ReplicationValidationService) GetSyncStatus(ctx context.Context, accountID string) (models.SyncStatus, error) {
	if err := v.validator.Validate(ctx, accountID); err != nil {
		return models.SyncStatus{}, validationError(err)
	}
	return v.inner.GetSyncStatus(ctx, accountID)
}

func (v *ReplicationValidationService) GetStats(ctx context.Context, accountID string) (models.JournalStats, error) {
	if err := v.validator.Validate(ctx, accountID); err != nil {
		return models.JournalStats{}, validationError(err)
	}
	return v.inner.GetStats(ctx, accountID)
}

func (v *ReplicationValidationService) ListJournal(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error) {
	if err := v.validator.Validate(ctx, filter); err != nil {
		return nil, validationError(err)
	}
	return v.inner.ListJournal(ctx, filter)
}

func (v *ReplicationValidationService) ClearSyncedEntries(ctx context.Context, accountID string, before time.Time) (models.PurgeResult, error) {
	if err := v.validator.Validate(ctx, accountID); err != nil {
		return models.PurgeResult{}, validationError(err)
	}
	if before.IsZero() {
		return models.PurgeResult{}, validationError(ErrNoPurgeCutoff)
	}
	return v.inner.ClearSyncedEntries(ctx, accountID, before)
}

// ─────────────────────────────────────────────────────────────────────────────
// ConflictService
// ─────────────────────────────────────────────────────────────────────────────

type ConflictValidationService struct {
	inner     ConflictService
	validator validators.Validator
}

func NewConflictValidationService() ConflictServiceWrapper {
	return &ConflictValidationService{validator: validators.NewReplicationValidator()}
}

func (v *ConflictValidationService) Wrap(inner ConflictService) ConflictService {
	v.inner = inner
	return v
}

func (v *ConflictValidationService) GetConflicts(ctx context.Context, accountID string) ([]models.SyncConflict, error) {
	if err := v.validator.Validate(ctx, accountID); err != nil {
		return nil, validationError(err)
	}
	return v.inner.GetConflicts(ctx, accountID)
}

func (v *ConflictValidationService) GetConflict(ctx context.Context, accountID, conflictID string) (models.SyncConflict, error) {
	req := models.ResolveRequest{AccountID: accountID, ConflictID: conflictID}
	if err := v.validator.Validate(ctx, req, validators.FieldAccountID, validators.FieldConflictID); err != nil {
		return models.SyncConflict{}, validationError(err)
	}
	return v.inner.GetConflict(ctx, accountID, conflictID)
}

func (v *ConflictValidationService) ResolveConflict(ctx context.Context, req models.ResolveRequest) (models.SyncConflict, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.SyncConflict{}, validationError(err)
	}
	return v.inner.ResolveConflict(ctx, req)
}

// ─────────────────────────────────────────────────────────────────────────────
// PullService
// ─────────────────────────────────────────────────────────────────────────────

type PullValidationService struct {
	inner     PullService
	validator validators.Validator
}

func NewPullValidationService() PullServiceWrapper {
	return &PullValidationService{validator: validators.NewReplicationValidator()}
}

func (v *PullValidationService) Wrap(inner PullService) PullService {
	v.inner = inner
	return v
}

func (v *PullValidationService) PullData(ctx context.Context, req models.PullRequest) (models.PullResult, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.PullResult{}, validationError(err)
	}
	return v.inner.PullData(ctx, req)
}
