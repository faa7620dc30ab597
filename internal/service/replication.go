// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/store"
	"github.com/MKhiriev/go-edge-sync/internal/utils"
	"github.com/MKhiriev/go-edge-sync/models"
)

// replicationService drains the pending journal of an account against the
// shared store. Entries are replayed one at a time in creation order; a
// failing entry never stops the cycle.
type replicationService struct {
	local        store.LocalStore
	shared       store.SharedStore
	connectivity *Connectivity
	journal      JournalService
	coordinator  *Coordinator

	schema store.RecordSchema
	lease  bool
	ids    utils.IDGenerator
	now    func() time.Time

	logger *logger.Logger
}

func NewReplicationService(local store.LocalStore, shared store.SharedStore, connectivity *Connectivity,
	journal JournalService, coordinator *Coordinator, ids utils.IDGenerator, repl config.Replication,
	log *logger.Logger) ReplicationService {
	return &replicationService{
		local:        local,
		shared:       shared,
		connectivity: connectivity,
		journal:      journal,
		coordinator:  coordinator,
		schema:       store.SchemaFromConfig(repl),
		lease:        repl.DistributedLease,
		ids:          ids,
		now:          time.Now,
		logger:       log,
	}
}

func (s *replicationService) TriggerSync(ctx context.Context, accountID string) (models.CycleSummary, error) {
	return s.guarded(ctx, accountID, nil)
}

// RetryFailed moves every failed entry of the account back to pending and
// runs a normal cycle.
func (s *replicationService) RetryFailed(ctx context.Context, accountID string) (models.CycleSummary, error) {
	return s.guarded(ctx, accountID, func(ctx context.Context) (int, error) {
		n, err := s.local.Journal().ResetFailed(ctx, accountID)
		return int(n), err
	})
}

// guarded runs one cycle under the coordinator and, when enabled, the
// distributed lease. before runs inside the guard ahead of the cycle.
func (s *replicationService) guarded(ctx context.Context, accountID string,
	before func(ctx context.Context) (int, error)) (models.CycleSummary, error) {
	log := logger.FromContext(ctx)

	if !s.connectivity.IsOnline() {
		return models.CycleSummary{}, fmt.Errorf("%w: %w", ErrValidation, ErrOffline)
	}
	if !s.coordinator.TryBegin(accountID) {
		return models.CycleSummary{}, fmt.Errorf("%w: %w", ErrValidation, ErrCycleInProgress)
	}
	// released on every exit, panics included, unless the cycle finished
	finished := false
	defer func() {
		if !finished {
			s.coordinator.Abort(accountID)
		}
	}()

	// the cycle runs over the set fetched at its start even when the caller
	// goes away
	ctx = context.WithoutCancel(ctx)

	unlock, err := s.acquireLease(ctx, accountID)
	if err != nil {
		return models.CycleSummary{}, err
	}
	defer func() {
		if unlock == nil {
			return
		}
		if err := unlock(); err != nil {
			log.Warn().Err(err).Str("func", "replicationService.guarded").
				Str("account_id", accountID).Msg("failed to release account lease")
		}
	}()

	summary := models.CycleSummary{AccountID: accountID, StartedAt: s.now().UTC()}

	if before != nil {
		reset, err := before(ctx)
		if err != nil {
			log.Err(err).Str("func", "replicationService.guarded").
				Str("account_id", accountID).Msg("failed to prepare sync cycle")
			return models.CycleSummary{}, err
		}
		summary.ResetCount = reset
	}

	if err = s.runCycle(ctx, &summary); err != nil {
		return models.CycleSummary{}, err
	}

	summary.FinishedAt = s.now().UTC()
	s.coordinator.Finish(accountID, summary.FinishedAt)
	finished = true

	log.Info().Str("func", "replicationService.guarded").
		Str("account_id", accountID).
		Int("total", summary.Total).
		Int("synced", summary.SyncedCount).
		Int("failed", summary.FailedCount).
		Int("conflicts", summary.ConflictCount).
		Msg("sync cycle finished")

	return summary, nil
}

func (s *replicationService) acquireLease(ctx context.Context, accountID string) (func() error, error) {
	if !s.lease {
		return nil, nil
	}
	locker := s.shared.Locker()
	if locker == nil {
		logger.FromContext(ctx).Debug().Str("func", "replicationService.acquireLease").
			Msg("shared store has no advisory locks, running without lease")
		return nil, nil
	}

	unlock, ok, err := locker.TryLock(ctx, accountID)
	if err != nil {
		s.connectivity.observe(err)
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrValidation, ErrLeaseHeld)
	}
	return unlock, nil
}

func (s *replicationService) runCycle(ctx context.Context, summary *models.CycleSummary) error {
	log := logger.FromContext(ctx)
	journal := s.local.Journal()

	recovered, err := journal.RecoverStale(ctx, summary.AccountID)
	if err != nil {
		log.Err(err).Str("func", "replicationService.runCycle").
			Str("account_id", summary.AccountID).Msg("failed to recover stale entries")
		return err
	}
	if recovered > 0 {
		log.Warn().Str("func", "replicationService.runCycle").
			Str("account_id", summary.AccountID).Int64("recovered", recovered).
			Msg("stale syncing entries moved back to pending")
	}

	entries, err := journal.List(ctx, models.JournalFilter{
		AccountID: summary.AccountID,
		Statuses:  []models.JournalStatus{models.StatusPending},
		Order:     models.OrderOldestFirst,
	})
	if err != nil {
		log.Err(err).Str("func", "replicationService.runCycle").
			Str("account_id", summary.AccountID).Msg("failed to list pending entries")
		return err
	}

	summary.Total = len(entries)
	for _, entry := range entries {
		s.syncEntry(ctx, entry, summary)
	}
	return nil
}

// syncEntry drives one entry to synced, conflict or failed and accounts for
// it in summary.
func (s *replicationService) syncEntry(ctx context.Context, entry models.JournalEntry, summary *models.CycleSummary) {
	log := logger.FromContext(ctx).With().
		Str("account_id", entry.AccountID).
		Str("entry_id", entry.ID).
		Str("table", entry.TableName).
		Str("record_id", entry.RecordID).
		Logger()
	journal := s.local.Journal()

	if err := s.journal.Verify(entry); err != nil {
		log.Error().Err(err).Str("func", "replicationService.syncEntry").Msg("journal entry failed integrity check")
		s.fail(ctx, entry, models.OutcomeTransient, err, summary)
		return
	}

	if err := journal.MarkSyncing(ctx, entry.ID, s.now().UTC()); err != nil {
		log.Error().Err(err).Str("func", "replicationService.syncEntry").Msg("failed to mark entry syncing")
		s.fail(ctx, entry, models.OutcomeTransient, err, summary)
		return
	}

	replayErr := s.replay(ctx, entry)
	outcome := ClassifyReplay(replayErr)

	switch {
	case outcome == models.OutcomeOK:
		if err := journal.MarkSynced(ctx, entry.ID, s.now().UTC()); err != nil {
			log.Error().Err(err).Str("func", "replicationService.syncEntry").Msg("replayed entry could not be marked synced")
			s.addError(summary, entry, models.OutcomeTransient, err)
			summary.FailedCount++
			return
		}
		summary.SyncedCount++

	case outcome.IsConflict():
		if err := s.recordConflict(ctx, entry, outcome, replayErr); err != nil {
			log.Error().Err(err).Str("func", "replicationService.syncEntry").Msg("failed to record conflict")
			s.fail(ctx, entry, models.OutcomeTransient, err, summary)
			return
		}
		log.Info().Str("func", "replicationService.syncEntry").
			Str("outcome", outcome.String()).Msg("replay rejected, conflict recorded")
		s.addError(summary, entry, outcome, replayErr)
		summary.ConflictCount++

	default:
		s.connectivity.observe(replayErr)
		log.Warn().Err(replayErr).Str("func", "replicationService.syncEntry").Msg("replay failed")
		s.fail(ctx, entry, outcome, replayErr, summary)
	}
}

// replay pushes the stored payload of entry to the shared store. Updates are
// guarded by the version the payload was derived from.
func (s *replicationService) replay(ctx context.Context, entry models.JournalEntry) error {
	records := s.shared.Records()

	switch entry.Operation {
	case models.OperationInsert:
		return records.Insert(ctx, entry.TableName, entry.Payload)
	case models.OperationUpdate:
		changes := entry.Payload.Clone()
		delete(changes, s.schema.IDColumn)
		return records.Update(ctx, entry.TableName, entry.RecordID, changes, s.expectedVersion(entry.Payload))
	case models.OperationDelete:
		return records.Delete(ctx, entry.TableName, entry.RecordID)
	}
	return fmt.Errorf("%w: %q", ErrUnknownOperation, entry.Operation)
}

func (s *replicationService) expectedVersion(payload models.Record) *int64 {
	if s.schema.VersionColumn == "" {
		return nil
	}
	v, ok := payload.Int64(s.schema.VersionColumn)
	if !ok {
		return nil
	}
	expected := v - 1
	return &expected
}

// recordConflict stores the conflict of entry and moves the entry to the
// conflict state in one local transaction. The remote row is fetched on a
// best-effort basis.
func (s *replicationService) recordConflict(ctx context.Context, entry models.JournalEntry,
	outcome models.ReplayOutcome, replayErr error) error {
	var remote models.Record
	row, err := s.shared.Records().SelectOne(ctx, entry.AccountID, entry.TableName, entry.RecordID)
	switch {
	case err == nil:
		remote = row
	case errors.Is(err, store.ErrRecordNotFound):
	default:
		s.connectivity.observe(err)
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "replicationService.recordConflict").
			Str("entry_id", entry.ID).
			Msg("could not fetch remote row for conflict")
	}

	now := s.now().UTC()
	conflict := models.SyncConflict{
		ID:             s.ids.Generate(),
		JournalEntryID: entry.ID,
		AccountID:      entry.AccountID,
		TableName:      entry.TableName,
		RecordID:       entry.RecordID,
		ConflictType:   outcome.ConflictType(),
		LocalData:      entry.Payload,
		RemoteData:     remote,
		CreatedAt:      now,
	}

	return s.local.InTx(ctx, func(scope store.LocalScope) error {
		if _, err := scope.Conflicts().Create(ctx, conflict); err != nil {
			return err
		}
		return scope.Journal().MarkConflict(ctx, entry.ID, replayErr.Error(), now)
	})
}

func (s *replicationService) fail(ctx context.Context, entry models.JournalEntry, outcome models.ReplayOutcome,
	cause error, summary *models.CycleSummary) {
	if err := s.local.Journal().MarkFailed(ctx, entry.ID, cause.Error(), s.now().UTC()); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "replicationService.fail").
			Str("entry_id", entry.ID).
			Msg("failed to mark entry failed")
	}
	s.addError(summary, entry, outcome, cause)
	summary.FailedCount++
}

func (s *replicationService) addError(summary *models.CycleSummary, entry models.JournalEntry,
	outcome models.ReplayOutcome, cause error) {
	summary.Errors = append(summary.Errors, models.EntryError{
		EntryID:   entry.ID,
		TableName: entry.TableName,
		RecordID:  entry.RecordID,
		Operation: entry.Operation,
		Outcome:   outcome.String(),
		Error:     cause.Error(),
	})
}

func (s *replicationService) GetSyncStatus(ctx context.Context, accountID string) (models.SyncStatus, error) {
	counts, err := s.local.Journal().CountByStatus(ctx, accountID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "replicationService.GetSyncStatus").
			Str("account_id", accountID).Msg("failed to count journal entries")
		return models.SyncStatus{}, err
	}

	inProgress, lastSyncAt := s.coordinator.State(accountID)
	return models.SyncStatus{
		AccountID:       accountID,
		Online:          s.connectivity.IsOnline(),
		PendingCount:    counts[models.StatusPending],
		FailedCount:     counts[models.StatusFailed],
		ConflictCount:   counts[models.StatusConflict],
		LastSyncAt:      lastSyncAt,
		CycleInProgress: inProgress,
	}, nil
}

func (s *replicationService) GetStats(ctx context.Context, accountID string) (models.JournalStats, error) {
	return s.journal.Stats(ctx, accountID)
}

func (s *replicationService) ListJournal(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error) {
	return s.journal.List(ctx, filter)
}

func (s *replicationService) ClearSyncedEntries(ctx context.Context, accountID string, before time.Time) (models.PurgeResult, error) {
	return s.journal.Purge(ctx, accountID, before)
}
