// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/store"
	"github.com/MKhiriev/go-edge-sync/internal/utils"
	"github.com/MKhiriev/go-edge-sync/models"
)

// journalService owns the construction of journal entries. Entries are never
// compacted: repeated offline changes to one record yield one entry each, and
// the journal doubles as the audit trail of the edge node.
type journalService struct {
	repo        store.JournalRepository
	checksummer *utils.Checksummer
	ids         utils.IDGenerator
	now         func() time.Time

	logger *logger.Logger
}

func NewJournalService(repo store.JournalRepository, checksummer *utils.Checksummer, ids utils.IDGenerator, log *logger.Logger) JournalService {
	return &journalService{
		repo:        repo,
		checksummer: checksummer,
		ids:         ids,
		now:         time.Now,
		logger:      log,
	}
}

func (j *journalService) Record(ctx context.Context, repo store.JournalRepository, mutation models.Mutation,
	op models.Operation, payload models.Record, status models.JournalStatus) (models.JournalEntry, error) {
	sum, err := j.checksummer.Sum(payload)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("error computing journal checksum: %w", err)
	}

	now := j.now().UTC()
	entry := models.JournalEntry{
		ID:        j.ids.Generate(),
		AccountID: mutation.AccountID,
		TableName: mutation.TableName,
		RecordID:  mutation.RecordID,
		Operation: op,
		Payload:   payload,
		Status:    status,
		Checksum:  sum,
		CreatedAt: now,
	}
	if status == models.StatusSynced {
		entry.SyncedAt = &now
	}
	if mutation.IdempotencyKey != "" {
		key := mutation.IdempotencyKey
		entry.IdempotencyKey = &key
	}

	if err = repo.Append(ctx, entry); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "journalService.Record").
			Str("account_id", mutation.AccountID).
			Str("table", mutation.TableName).
			Str("record_id", mutation.RecordID).
			Msg("failed to append journal entry")
		return models.JournalEntry{}, err
	}

	return entry, nil
}

// Verify recomputes the checksum of the stored payload.
func (j *journalService) Verify(entry models.JournalEntry) error {
	ok, err := j.checksummer.Verify(entry.Payload, entry.Checksum)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrChecksumMismatch, err)
	}
	if !ok {
		return fmt.Errorf("%w: entry %s", ErrChecksumMismatch, entry.ID)
	}
	return nil
}

func (j *journalService) List(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error) {
	return j.repo.List(ctx, filter)
}

func (j *journalService) Stats(ctx context.Context, accountID string) (models.JournalStats, error) {
	return j.repo.Stats(ctx, accountID)
}

// Purge removes entries synced before the given time. Entries referenced by
// a conflict are kept.
func (j *journalService) Purge(ctx context.Context, accountID string, before time.Time) (models.PurgeResult, error) {
	deleted, err := j.repo.PurgeSynced(ctx, accountID, before)
	if err != nil {
		return models.PurgeResult{}, err
	}

	logger.FromContext(ctx).Info().
		Str("func", "journalService.Purge").
		Str("account_id", accountID).
		Time("before", before).
		Int64("deleted", deleted).
		Msg("purged synced journal entries")

	return models.PurgeResult{AccountID: accountID, Before: before.UTC(), Deleted: deleted}, nil
}
