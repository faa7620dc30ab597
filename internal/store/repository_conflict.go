package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/models"
)

const conflictTable = "sync_conflicts"

var conflictColumns = []string{
	"id",
	"journal_entry_id",
	"account_id",
	"table_name",
	"record_id",
	"conflict_type",
	"local_data",
	"remote_data",
	"resolution",
	"resolved_data",
	"resolved_by",
	"resolved_at",
	"created_at",
}

type conflictRepository struct {
	db *DB
	q  Querier
}

// NewConflictRepository constructs a [ConflictRepository] on the local db.
func NewConflictRepository(db *DB) ConflictRepository {
	return newConflictRepository(db, db.DB)
}

func newConflictRepository(db *DB, q Querier) *conflictRepository {
	return &conflictRepository{db: db, q: q}
}

// Create inserts conflict unless its journal entry already has one. Retried
// cycles therefore never produce a second conflict for the same entry.
func (c *conflictRepository) Create(ctx context.Context, conflict models.SyncConflict) (models.SyncConflict, error) {
	log := logger.FromContext(ctx)

	localData, err := encodeNullableRecord(conflict.LocalData)
	if err != nil {
		return models.SyncConflict{}, err
	}
	if localData == nil {
		localData = "{}"
	}
	remoteData, err := encodeNullableRecord(conflict.RemoteData)
	if err != nil {
		return models.SyncConflict{}, err
	}

	sqlStr, args, err := c.db.builder().
		Insert(conflictTable).
		Columns("id", "journal_entry_id", "account_id", "table_name", "record_id",
			"conflict_type", "local_data", "remote_data", "created_at").
		Values(conflict.ID, conflict.JournalEntryID, conflict.AccountID, conflict.TableName, conflict.RecordID,
			string(conflict.ConflictType), localData, remoteData, conflict.CreatedAt.UTC()).
		Suffix("ON CONFLICT (journal_entry_id) DO NOTHING").
		ToSql()
	if err != nil {
		return models.SyncConflict{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.q.ExecContext(ctx, sqlStr, args...); err != nil {
		log.Err(err).
			Str("func", "conflictRepository.Create").
			Str("account_id", conflict.AccountID).
			Str("journal_entry_id", conflict.JournalEntryID).
			Msg("failed to create conflict")
		return models.SyncConflict{}, c.db.classify(ErrExecutingStatement, err)
	}

	return c.GetByJournalEntryID(ctx, conflict.JournalEntryID)
}

func (c *conflictRepository) GetByID(ctx context.Context, id string) (models.SyncConflict, error) {
	return c.getOne(ctx, "conflictRepository.GetByID", sq.Eq{"id": id})
}

func (c *conflictRepository) GetByJournalEntryID(ctx context.Context, entryID string) (models.SyncConflict, error) {
	return c.getOne(ctx, "conflictRepository.GetByJournalEntryID", sq.Eq{"journal_entry_id": entryID})
}

func (c *conflictRepository) getOne(ctx context.Context, funcName string, where sq.Eq) (models.SyncConflict, error) {
	sqlStr, args, err := c.db.builder().Select(conflictColumns...).From(conflictTable).Where(where).Limit(1).ToSql()
	if err != nil {
		return models.SyncConflict{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	conflict, err := scanConflict(c.q.QueryRowContext(ctx, sqlStr, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncConflict{}, ErrConflictNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("failed to get conflict")
		return models.SyncConflict{}, c.db.classify(ErrScanningRow, err)
	}

	return conflict, nil
}

// ListUnresolved returns the open conflicts of accountID, oldest first.
func (c *conflictRepository) ListUnresolved(ctx context.Context, accountID string) ([]models.SyncConflict, error) {
	log := logger.FromContext(ctx)

	sqlStr, args, err := c.db.builder().
		Select(conflictColumns...).
		From(conflictTable).
		Where(sq.Eq{"account_id": accountID, "resolved_at": nil}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.q.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.ListUnresolved").
			Str("account_id", accountID).
			Msg("failed to list conflicts")
		return nil, c.db.classify(ErrExecutingQuery, err)
	}
	defer rows.Close()

	conflicts := make([]models.SyncConflict, 0, 8)
	for rows.Next() {
		conflict, scanErr := scanConflict(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		conflicts = append(conflicts, conflict)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return conflicts, nil
}

func (c *conflictRepository) CountUnresolved(ctx context.Context, accountID string) (int, error) {
	sqlStr, args, err := c.db.builder().
		Select("COUNT(*)").
		From(conflictTable).
		Where(sq.Eq{"account_id": accountID, "resolved_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = c.q.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, c.db.classify(ErrScanningRow, err)
	}

	return count, nil
}

// MarkResolved stamps the resolution fields of resolved. It fails with
// [ErrConflictAlreadyResolved] when a resolution is already present, so a
// conflict is resolved at most once even under concurrent calls.
func (c *conflictRepository) MarkResolved(ctx context.Context, resolved models.SyncConflict) error {
	log := logger.FromContext(ctx)

	if resolved.Resolution == nil || resolved.ResolvedAt == nil {
		return fmt.Errorf("%w: resolution and resolved_at are required", ErrBuildingSQLQuery)
	}

	resolvedData, err := encodeNullableRecord(resolved.ResolvedData)
	if err != nil {
		return err
	}

	sqlStr, args, err := c.db.builder().
		Update(conflictTable).
		Set("resolution", string(*resolved.Resolution)).
		Set("resolved_data", resolvedData).
		Set("resolved_by", resolved.ResolvedBy).
		Set("resolved_at", resolved.ResolvedAt.UTC()).
		Where(sq.Eq{"id": resolved.ID, "resolved_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := c.q.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.MarkResolved").
			Str("conflict_id", resolved.ID).
			Msg("failed to resolve conflict")
		return c.db.classify(ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return c.db.classify(ErrExecutingStatement, err)
	}
	if affected > 0 {
		return nil
	}

	if _, err = c.GetByID(ctx, resolved.ID); err != nil {
		return err
	}
	return ErrConflictAlreadyResolved
}

func scanConflict(row rowScanner) (models.SyncConflict, error) {
	var (
		conflict     models.SyncConflict
		conflictType string
		localData    string
		remoteData   sql.NullString
		resolution   sql.NullString
		resolvedData sql.NullString
		resolvedBy   sql.NullString
		resolvedAt   sql.NullTime
	)

	err := row.Scan(
		&conflict.ID,
		&conflict.JournalEntryID,
		&conflict.AccountID,
		&conflict.TableName,
		&conflict.RecordID,
		&conflictType,
		&localData,
		&remoteData,
		&resolution,
		&resolvedData,
		&resolvedBy,
		&resolvedAt,
		&conflict.CreatedAt,
	)
	if err != nil {
		return models.SyncConflict{}, err
	}

	conflict.ConflictType = models.ConflictType(conflictType)
	conflict.CreatedAt = conflict.CreatedAt.UTC()
	conflict.ResolvedBy = nullStringPtr(resolvedBy)
	conflict.ResolvedAt = nullTimePtr(resolvedAt)
	if resolution.Valid {
		r := models.Resolution(resolution.String)
		conflict.Resolution = &r
	}

	if conflict.LocalData, err = models.DecodeRecord([]byte(localData)); err != nil {
		return models.SyncConflict{}, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}
	if conflict.RemoteData, err = decodeNullableRecord(remoteData); err != nil {
		return models.SyncConflict{}, err
	}
	if conflict.ResolvedData, err = decodeNullableRecord(resolvedData); err != nil {
		return models.SyncConflict{}, err
	}

	return conflict, nil
}

// encodeNullableRecord returns nil for a nil record so that it is stored as
// SQL NULL rather than "null" or "{}".
func encodeNullableRecord(rec models.Record) (any, error) {
	if rec == nil {
		return nil, nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}
	return string(data), nil
}

func decodeNullableRecord(s sql.NullString) (models.Record, error) {
	if !s.Valid {
		return nil, nil
	}
	rec, err := models.DecodeRecord([]byte(s.String))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}
	return rec, nil
}
