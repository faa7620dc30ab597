package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-edge-sync/internal/store"
	"github.com/MKhiriev/go-edge-sync/models"
)

// Field name constants restrict validation to a subset of rules.
const (
	FieldAccountID      = "account_id"
	FieldTableName      = "table_name"
	FieldRecordID       = "record_id"
	FieldRecord         = "record"
	FieldIdempotencyKey = "idempotency_key"
	FieldLimit          = "limit"
	FieldTables         = "tables"

	FieldConflictID   = "conflict_id"
	FieldResolution   = "resolution"
	FieldResolvedData = "resolved_data"
	FieldResolvedBy   = "resolved_by"

	FieldStatuses   = "statuses"
	FieldOrder      = "order"
	FieldPagination = "pagination"
)

const maxIdempotencyKeyLength = 255

// ReplicationValidator implements Validator for the request models of the
// storage router and the administrative operations. A plain string is
// validated as an account id.
type ReplicationValidator struct {
}

func NewReplicationValidator() Validator {
	return &ReplicationValidator{}
}

func (v *ReplicationValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case string:
		return v.validateAccountID(value)

	case models.Mutation:
		return v.validateMutation(ctx, value, fields...)
	case *models.Mutation:
		return v.validateMutation(ctx, *value, fields...)

	case models.Query:
		return v.validateQuery(ctx, value, fields...)
	case *models.Query:
		return v.validateQuery(ctx, *value, fields...)

	case models.PullRequest:
		return v.validatePullRequest(ctx, value, fields...)
	case *models.PullRequest:
		return v.validatePullRequest(ctx, *value, fields...)

	case models.ResolveRequest:
		return v.validateResolveRequest(ctx, value, fields...)
	case *models.ResolveRequest:
		return v.validateResolveRequest(ctx, *value, fields...)

	case models.JournalFilter:
		return v.validateJournalFilter(ctx, value, fields...)
	case *models.JournalFilter:
		return v.validateJournalFilter(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ReplicationValidator) validateAccountID(accountID string) error {
	if accountID == "" {
		return ErrNoAccountID
	}
	return nil
}

func (v *ReplicationValidator) validateTable(table string) error {
	if table == "" {
		return ErrNoTable
	}
	if err := store.ValidateIdentifier(table); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}
	return nil
}

// validateMutation defaults to the rules of an insert, where the record id
// may come from the record itself.
func (v *ReplicationValidator) validateMutation(_ context.Context, m models.Mutation, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAccountID, FieldTableName, FieldRecord, FieldIdempotencyKey}
	}

	for _, f := range fields {
		switch f {
		case FieldAccountID:
			if err := v.validateAccountID(m.AccountID); err != nil {
				return err
			}
		case FieldTableName:
			if err := v.validateTable(m.TableName); err != nil {
				return err
			}
		case FieldRecordID:
			if m.RecordID == "" {
				return ErrNoRecordID
			}
		case FieldRecord:
			if len(m.Record) == 0 {
				return ErrEmptyRecord
			}
			for col := range m.Record {
				if err := store.ValidateIdentifier(col); err != nil {
					return fmt.Errorf("%w: %w", ErrInvalidColumn, err)
				}
			}
		case FieldIdempotencyKey:
			if len(m.IdempotencyKey) > maxIdempotencyKeyLength {
				return ErrIdempotencyKeyTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ReplicationValidator) validateQuery(_ context.Context, q models.Query, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAccountID, FieldTableName, FieldLimit}
	}

	for _, f := range fields {
		switch f {
		case FieldAccountID:
			if err := v.validateAccountID(q.AccountID); err != nil {
				return err
			}
		case FieldTableName:
			if err := v.validateTable(q.TableName); err != nil {
				return err
			}
		case FieldLimit:
			if q.Limit < 0 {
				return ErrNegativePagination
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ReplicationValidator) validatePullRequest(_ context.Context, req models.PullRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAccountID, FieldTables}
	}

	for _, f := range fields {
		switch f {
		case FieldAccountID:
			if err := v.validateAccountID(req.AccountID); err != nil {
				return err
			}
		case FieldTables:
			// an empty list falls back to the configured reference tables
			for i, table := range req.Tables {
				if err := v.validateTable(table); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ReplicationValidator) validateResolveRequest(_ context.Context, req models.ResolveRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldConflictID, FieldAccountID, FieldResolution, FieldResolvedData, FieldResolvedBy}
	}

	for _, f := range fields {
		switch f {
		case FieldConflictID:
			if req.ConflictID == "" {
				return ErrNoConflictID
			}
		case FieldAccountID:
			if err := v.validateAccountID(req.AccountID); err != nil {
				return err
			}
		case FieldResolution:
			if !req.Resolution.Valid() {
				return fmt.Errorf("%w: %q", ErrUnknownResolution, req.Resolution)
			}
		case FieldResolvedData:
			if req.Resolution.RequiresData() && len(req.ResolvedData) == 0 {
				return ErrResolvedDataRequired
			}
		case FieldResolvedBy:
			if req.ResolvedBy == "" {
				return ErrNoResolvedBy
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ReplicationValidator) validateJournalFilter(_ context.Context, filter models.JournalFilter, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAccountID, FieldStatuses, FieldTableName, FieldOrder, FieldPagination}
	}

	for _, f := range fields {
		switch f {
		case FieldAccountID:
			if err := v.validateAccountID(filter.AccountID); err != nil {
				return err
			}
		case FieldStatuses:
			for _, s := range filter.Statuses {
				if !s.Valid() {
					return fmt.Errorf("%w: %q", ErrInvalidStatus, s)
				}
			}
		case FieldTableName:
			if filter.TableName != "" {
				if err := v.validateTable(filter.TableName); err != nil {
					return err
				}
			}
		case FieldOrder:
			switch filter.Order {
			case "", models.OrderOldestFirst, models.OrderNewestFirst:
			default:
				return fmt.Errorf("%w: %q", ErrInvalidOrder, filter.Order)
			}
		case FieldPagination:
			if filter.Limit < 0 || filter.Offset < 0 {
				return ErrNegativePagination
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
