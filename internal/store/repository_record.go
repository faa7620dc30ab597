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

// RecordSchema names the columns every routed table shares.
type RecordSchema struct {
	IDColumn        string
	VersionColumn   string
	AccountColumn   string
	StoreColumn     string
	UpdatedAtColumn string
}

// Validate checks that every configured column is a plain identifier. Empty
// optional columns disable the matching feature; the id column is required.
func (s RecordSchema) Validate() error {
	if err := ValidateIdentifier(s.IDColumn); err != nil {
		return fmt.Errorf("id column: %w", err)
	}
	for _, col := range []string{s.VersionColumn, s.AccountColumn, s.StoreColumn, s.UpdatedAtColumn} {
		if col == "" {
			continue
		}
		if err := ValidateIdentifier(col); err != nil {
			return err
		}
	}
	return nil
}

// recordRepository implements [RecordRepository] for any dialect. Queries are
// built with squirrel using the placeholder format of the underlying DB.
type recordRepository struct {
	db     *DB
	q      Querier
	schema RecordSchema
}

// NewRecordRepository constructs a [RecordRepository] on db.
func NewRecordRepository(db *DB, schema RecordSchema) RecordRepository {
	return newRecordRepository(db, db.DB, schema)
}

func newRecordRepository(db *DB, q Querier, schema RecordSchema) *recordRepository {
	return &recordRepository{db: db, q: q, schema: schema}
}

// Select returns the rows of query.TableName scoped to the account, and to
// the store and updated-at watermark when given, ordered by id.
func (r *recordRepository) Select(ctx context.Context, query models.Query) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	if err := ValidateIdentifier(query.TableName); err != nil {
		return nil, err
	}

	b := r.db.builder().Select("*").From(query.TableName)
	if query.AccountID != "" && r.schema.AccountColumn != "" {
		b = b.Where(sq.Eq{r.schema.AccountColumn: query.AccountID})
	}
	if query.StoreID != "" && r.schema.StoreColumn != "" {
		b = b.Where(sq.Eq{r.schema.StoreColumn: query.StoreID})
	}
	if query.Since != nil && r.schema.UpdatedAtColumn != "" {
		b = b.Where(sq.Gt{r.schema.UpdatedAtColumn: query.Since.UTC()})
	}
	b = b.OrderBy(r.schema.IDColumn)
	if query.Limit > 0 {
		b = b.Limit(uint64(query.Limit))
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Select").
			Str("table", query.TableName).
			Str("account_id", query.AccountID).
			Msg("failed to select records")
		return nil, r.db.classify(ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// SelectOne returns one row by id. accountID narrows the lookup when the
// schema has an account column and accountID is non-empty.
func (r *recordRepository) SelectOne(ctx context.Context, accountID, table, recordID string) (models.Record, error) {
	log := logger.FromContext(ctx)

	if err := ValidateIdentifier(table); err != nil {
		return nil, err
	}

	where := sq.Eq{r.schema.IDColumn: recordID}
	if accountID != "" && r.schema.AccountColumn != "" {
		where[r.schema.AccountColumn] = accountID
	}

	sqlStr, args, err := r.db.builder().Select("*").From(table).Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.SelectOne").
			Str("table", table).
			Str("record_id", recordID).
			Msg("failed to select record")
		return nil, r.db.classify(ErrExecutingQuery, err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrRecordNotFound, table, recordID)
	}

	return records[0], nil
}

// Insert writes record as a new row of table.
func (r *recordRepository) Insert(ctx context.Context, table string, record models.Record) error {
	log := logger.FromContext(ctx)

	if len(record) == 0 {
		return ErrEmptyRecord
	}

	cols := record.Columns()
	if err := validateIdentifiers(append([]string{table}, cols...)...); err != nil {
		return err
	}

	vals, err := sqlValues(record, cols)
	if err != nil {
		return err
	}

	sqlStr, args, err := r.db.builder().Insert(table).Columns(cols...).Values(vals...).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.q.ExecContext(ctx, sqlStr, args...); err != nil {
		log.Err(err).
			Str("func", "recordRepository.Insert").
			Str("table", table).
			Msg("failed to insert record")
		return r.db.classify(ErrExecutingStatement, err)
	}

	return nil
}

// Update overwrites the columns present in record on the row with recordID.
// The id column itself is never rewritten.
//
// When no row matches, the row is looked up once more to tell a missing row
// ([ErrRecordNotFound]) from a failed version guard ([ErrVersionConflict]).
func (r *recordRepository) Update(ctx context.Context, table, recordID string, record models.Record, expectedVersion *int64) error {
	log := logger.FromContext(ctx)

	if err := ValidateIdentifier(table); err != nil {
		return err
	}

	b := r.db.builder().Update(table)
	set := 0
	for _, col := range record.Columns() {
		if col == r.schema.IDColumn {
			continue
		}
		if err := ValidateIdentifier(col); err != nil {
			return err
		}
		v, err := sqlValue(record[col])
		if err != nil {
			return err
		}
		b = b.Set(col, v)
		set++
	}
	if set == 0 {
		return ErrEmptyRecord
	}

	b = b.Where(sq.Eq{r.schema.IDColumn: recordID})
	guarded := expectedVersion != nil && r.schema.VersionColumn != ""
	if guarded {
		b = b.Where(sq.Eq{r.schema.VersionColumn: *expectedVersion})
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.q.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Update").
			Str("table", table).
			Str("record_id", recordID).
			Msg("failed to update record")
		return r.db.classify(ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return r.db.classify(ErrExecutingStatement, err)
	}
	if affected > 0 {
		return nil
	}

	exists, err := r.exists(ctx, table, recordID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, table, recordID)
	}
	if guarded {
		log.Debug().
			Str("func", "recordRepository.Update").
			Str("table", table).
			Str("record_id", recordID).
			Int64("expected_version", *expectedVersion).
			Msg("version guard rejected update")
		return fmt.Errorf("%w: %s/%s expected version %d", ErrVersionConflict, table, recordID, *expectedVersion)
	}

	return nil
}

// Delete removes the row with recordID.
func (r *recordRepository) Delete(ctx context.Context, table, recordID string) error {
	log := logger.FromContext(ctx)

	if err := ValidateIdentifier(table); err != nil {
		return err
	}

	sqlStr, args, err := r.db.builder().Delete(table).Where(sq.Eq{r.schema.IDColumn: recordID}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.q.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Delete").
			Str("table", table).
			Str("record_id", recordID).
			Msg("failed to delete record")
		return r.db.classify(ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return r.db.classify(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, table, recordID)
	}

	return nil
}

// Upsert updates the row without a version guard and inserts it when it
// does not exist.
func (r *recordRepository) Upsert(ctx context.Context, table, recordID string, record models.Record) error {
	err := r.Update(ctx, table, recordID, record, nil)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrEmptyRecord):
		exists, existsErr := r.exists(ctx, table, recordID)
		if existsErr != nil || exists {
			return existsErr
		}
	case !errors.Is(err, ErrRecordNotFound):
		return err
	}

	row := record.Clone()
	if row == nil {
		row = models.Record{}
	}
	if _, ok := row[r.schema.IDColumn]; !ok {
		row[r.schema.IDColumn] = recordID
	}

	return r.Insert(ctx, table, row)
}

func (r *recordRepository) exists(ctx context.Context, table, recordID string) (bool, error) {
	sqlStr, args, err := r.db.builder().
		Select("1").
		From(table).
		Where(sq.Eq{r.schema.IDColumn: recordID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = r.q.QueryRowContext(ctx, sqlStr, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, r.db.classify(ErrExecutingQuery, err)
	}

	return true, nil
}

func scanRecords(rows *sql.Rows) ([]models.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	records := make([]models.Record, 0, 16)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err = rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		rec := make(models.Record, len(cols))
		for i, col := range cols {
			rec[col] = fromSQLValue(values[i])
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func fromSQLValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val.UTC()
	case int32:
		return int64(val)
	case float32:
		return float64(val)
	}
	return v
}

func sqlValues(record models.Record, cols []string) ([]any, error) {
	vals := make([]any, 0, len(cols))
	for _, col := range cols {
		v, err := sqlValue(record[col])
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// sqlValue stores nested objects and arrays as JSON text.
func sqlValue(v any) (any, error) {
	switch val := v.(type) {
	case map[string]any, []any, models.Record:
		data, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
		}
		return string(data), nil
	case time.Time:
		return val.UTC(), nil
	}
	return v, nil
}
