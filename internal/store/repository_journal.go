// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/models"
)

const journalTable = "mutation_journal"

var journalColumns = []string{
	"id",
	"account_id",
	"table_name",
	"record_id",
	"operation",
	"payload",
	"status",
	"checksum",
	"attempts",
	"last_attempt_at",
	"error",
	"created_at",
	"synced_at",
	"idempotency_key",
}

// journalRepository is the SQLite-backed [JournalRepository]. Entries are
// never rewritten except for their status and attempt bookkeeping, so the
// table doubles as an audit trail of every local mutation.
type journalRepository struct {
	db *DB
	q  Querier
}

// NewJournalRepository constructs a [JournalRepository] on the local db.
func NewJournalRepository(db *DB) JournalRepository {
	return newJournalRepository(db, db.DB)
}

func newJournalRepository(db *DB, q Querier) *journalRepository {
	return &journalRepository{db: db, q: q}
}

// Append persists entry as given. The caller is responsible for id,
// checksum, status and created_at.
func (j *journalRepository) Append(ctx context.Context, entry models.JournalEntry) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}

	sqlStr, args, err := j.db.builder().
		Insert(journalTable).
		Columns(journalColumns...).
		Values(
			entry.ID,
			entry.AccountID,
			entry.TableName,
			entry.RecordID,
			string(entry.Operation),
			string(payload),
			string(entry.Status),
			entry.Checksum,
			entry.Attempts,
			utcPtr(entry.LastAttemptAt),
			entry.Error,
			entry.CreatedAt.UTC(),
			utcPtr(entry.SyncedAt),
			entry.IdempotencyKey,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = j.q.ExecContext(ctx, sqlStr, args...); err != nil {
		log.Err(err).
			Str("func", "journalRepository.Append").
			Str("account_id", entry.AccountID).
			Str("table", entry.TableName).
			Str("record_id", entry.RecordID).
			Msg("failed to append journal entry")

		err = j.db.classify(ErrExecutingStatement, err)
		if entry.IdempotencyKey != nil && errors.Is(err, ErrConstraintViolation) {
			return fmt.Errorf("%w: %w", ErrDuplicateIdempotencyKey, err)
		}
		return err
	}

	return nil
}

func (j *journalRepository) GetByID(ctx context.Context, id string) (models.JournalEntry, error) {
	return j.getOne(ctx, "journalRepository.GetByID", sq.Eq{"id": id})
}

func (j *journalRepository) FindByIdempotencyKey(ctx context.Context, accountID, key string) (models.JournalEntry, error) {
	return j.getOne(ctx, "journalRepository.FindByIdempotencyKey", sq.Eq{"account_id": accountID, "idempotency_key": key})
}

func (j *journalRepository) getOne(ctx context.Context, funcName string, where sq.Eq) (models.JournalEntry, error) {
	log := logger.FromContext(ctx)

	sqlStr, args, err := j.db.builder().Select(journalColumns...).From(journalTable).Where(where).Limit(1).ToSql()
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	entry, err := scanJournalEntry(j.q.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.JournalEntry{}, ErrJournalEntryNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to get journal entry")
		return models.JournalEntry{}, j.db.classify(ErrScanningRow, err)
	}

	return entry, nil
}

// List returns entries matching filter in (created_at, id) order, oldest
// first unless filter.Order asks otherwise.
func (j *journalRepository) List(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error) {
	log := logger.FromContext(ctx)

	b := j.db.builder().Select(journalColumns...).From(journalTable).Where(sq.Eq{"account_id": filter.AccountID})
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		b = b.Where(sq.Eq{"status": statuses})
	}
	if filter.TableName != "" {
		b = b.Where(sq.Eq{"table_name": filter.TableName})
	}

	if filter.Order == models.OrderNewestFirst {
		b = b.OrderBy("created_at DESC", "id DESC")
	} else {
		b = b.OrderBy("created_at ASC", "id ASC")
	}

	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			// SQLite only accepts OFFSET after LIMIT
			b = b.Limit(uint64(1<<62))
		}
		b = b.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := j.q.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Err(err).
			Str("func", "journalRepository.List").
			Str("account_id", filter.AccountID).
			Msg("failed to list journal entries")
		return nil, j.db.classify(ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.JournalEntry, 0, 32)
	for rows.Next() {
		entry, scanErr := scanJournalEntry(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "journalRepository.List").
				Str("account_id", filter.AccountID).
				Msg("failed to scan journal entry")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// CountByStatus returns the number of entries per status for accountID.
// Statuses without entries are absent from the map.
func (j *journalRepository) CountByStatus(ctx context.Context, accountID string) (map[models.JournalStatus]int, error) {
	stats, err := j.Stats(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return stats.ByStatus, nil
}

// Stats groups the entries of accountID by status, table and operation.
func (j *journalRepository) Stats(ctx context.Context, accountID string) (models.JournalStats, error) {
	log := logger.FromContext(ctx)

	stats := models.JournalStats{
		AccountID:   accountID,
		ByStatus:    make(map[models.JournalStatus]int),
		ByTable:     make(map[string]int),
		ByOperation: make(map[models.Operation]int),
	}

	sqlStr, args, err := j.db.builder().
		Select("status", "table_name", "operation", "COUNT(*)").
		From(journalTable).
		Where(sq.Eq{"account_id": accountID}).
		GroupBy("status", "table_name", "operation").
		ToSql()
	if err != nil {
		return stats, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := j.q.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Err(err).
			Str("func", "journalRepository.Stats").
			Str("account_id", accountID).
			Msg("failed to aggregate journal entries")
		return stats, j.db.classify(ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var status, table, op string
		var count int
		if err = rows.Scan(&status, &table, &op, &count); err != nil {
			return stats, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		stats.Total += count
		stats.ByStatus[models.JournalStatus(status)] += count
		stats.ByTable[table] += count
		stats.ByOperation[models.Operation(op)] += count
	}

	if err = rows.Err(); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return stats, nil
}

// MarkSyncing moves a pending entry to syncing and stamps the attempt time.
func (j *journalRepository) MarkSyncing(ctx context.Context, id string, at time.Time) error {
	return j.transition(ctx, id, models.StatusSyncing, map[string]any{
		"last_attempt_at": at.UTC(),
	})
}

// MarkSynced moves an entry to synced and clears any previous error.
func (j *journalRepository) MarkSynced(ctx context.Context, id string, at time.Time) error {
	return j.transition(ctx, id, models.StatusSynced, map[string]any{
		"synced_at": at.UTC(),
		"error":     nil,
	})
}

// MarkConflict moves an entry to conflict, recording why.
func (j *journalRepository) MarkConflict(ctx context.Context, id, reason string, at time.Time) error {
	return j.transition(ctx, id, models.StatusConflict, map[string]any{
		"error":           reason,
		"last_attempt_at": at.UTC(),
	})
}

// MarkFailed moves an entry to failed and increments its attempts.
func (j *journalRepository) MarkFailed(ctx context.Context, id, reason string, at time.Time) error {
	return j.transition(ctx, id, models.StatusFailed, map[string]any{
		"attempts":        sq.Expr("attempts + 1"),
		"error":           reason,
		"last_attempt_at": at.UTC(),
	})
}

// transition updates an entry only while its current status may move to
// next, so concurrent or repeated calls can never regress an entry.
func (j *journalRepository) transition(ctx context.Context, id string, next models.JournalStatus, set map[string]any) error {
	log := logger.FromContext(ctx)

	from := make([]string, 0, 4)
	for _, s := range models.TransitionSources(next) {
		from = append(from, string(s))
	}

	sqlStr, args, err := j.db.builder().
		Update(journalTable).
		Set("status", string(next)).
		SetMap(set).
		Where(sq.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := j.q.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		log.Err(err).
			Str("func", "journalRepository.transition").
			Str("entry_id", id).
			Str("to", string(next)).
			Msg("failed to update journal entry status")
		return j.db.classify(ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return j.db.classify(ErrExecutingStatement, err)
	}
	if affected > 0 {
		return nil
	}

	current, err := j.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
}

// ResetFailed moves every failed entry of accountID back to pending and
// clears their errors. Attempts are kept.
func (j *journalRepository) ResetFailed(ctx context.Context, accountID string) (int64, error) {
	return j.bulkSet(ctx, "journalRepository.ResetFailed", accountID, models.StatusFailed, map[string]any{
		"status": string(models.StatusPending),
		"error":  nil,
	})
}

// RecoverStale moves entries left in syncing by an interrupted cycle back to
// pending.
func (j *journalRepository) RecoverStale(ctx context.Context, accountID string) (int64, error) {
	return j.bulkSet(ctx, "journalRepository.RecoverStale", accountID, models.StatusSyncing, map[string]any{
		"status": string(models.StatusPending),
	})
}

func (j *journalRepository) bulkSet(ctx context.Context, funcName, accountID string, from models.JournalStatus, set map[string]any) (int64, error) {
	log := logger.FromContext(ctx)

	sqlStr, args, err := j.db.builder().
		Update(journalTable).
		SetMap(set).
		Where(sq.Eq{"account_id": accountID, "status": string(from)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := j.q.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Str("account_id", accountID).Msg("failed to update journal entries")
		return 0, j.db.classify(ErrExecutingStatement, err)
	}

	return res.RowsAffected()
}

// PurgeSynced deletes synced entries of accountID synced before the given
// time. Entries referenced by a conflict are kept as the conflict's history.
func (j *journalRepository) PurgeSynced(ctx context.Context, accountID string, before time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	sqlStr, args, err := j.db.builder().
		Delete(journalTable).
		Where(sq.Eq{"account_id": accountID, "status": string(models.StatusSynced)}).
		Where(sq.Lt{"synced_at": before.UTC()}).
		Where(sq.Expr("id NOT IN (SELECT journal_entry_id FROM " + conflictTable + ")")).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := j.q.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		log.Err(err).
			Str("func", "journalRepository.PurgeSynced").
			Str("account_id", accountID).
			Msg("failed to purge synced journal entries")
		return 0, j.db.classify(ErrExecutingStatement, err)
	}

	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJournalEntry(row rowScanner) (models.JournalEntry, error) {
	var (
		entry          models.JournalEntry
		operation      string
		status         string
		payload        string
		lastAttemptAt  sql.NullTime
		errText        sql.NullString
		syncedAt       sql.NullTime
		idempotencyKey sql.NullString
	)

	err := row.Scan(
		&entry.ID,
		&entry.AccountID,
		&entry.TableName,
		&entry.RecordID,
		&operation,
		&payload,
		&status,
		&entry.Checksum,
		&entry.Attempts,
		&lastAttemptAt,
		&errText,
		&entry.CreatedAt,
		&syncedAt,
		&idempotencyKey,
	)
	if err != nil {
		return models.JournalEntry{}, err
	}

	entry.Operation = models.Operation(operation)
	entry.Status = models.JournalStatus(status)
	entry.CreatedAt = entry.CreatedAt.UTC()
	entry.LastAttemptAt = nullTimePtr(lastAttemptAt)
	entry.SyncedAt = nullTimePtr(syncedAt)
	entry.Error = nullStringPtr(errText)
	entry.IdempotencyKey = nullStringPtr(idempotencyKey)

	entry.Payload, err = models.DecodeRecord([]byte(payload))
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}

	return entry, nil
}

func utcPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
