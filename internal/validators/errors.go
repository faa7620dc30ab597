package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrNoAccountID           = errors.New("account id is required")
	ErrNoTable               = errors.New("table name is required")
	ErrInvalidTable          = errors.New("invalid table name")
	ErrInvalidColumn         = errors.New("invalid column name")
	ErrNoRecordID            = errors.New("record id is required")
	ErrEmptyRecord           = errors.New("record must carry at least one column")
	ErrIdempotencyKeyTooLong = errors.New("idempotency key is too long")

	ErrNoConflictID         = errors.New("conflict id is required")
	ErrUnknownResolution    = errors.New("unknown resolution")
	ErrResolvedDataRequired = errors.New("resolved data is required for merged and manual resolutions")
	ErrNoResolvedBy         = errors.New("resolved by is required")

	ErrInvalidStatus      = errors.New("invalid journal status")
	ErrInvalidOrder       = errors.New("invalid journal order")
	ErrNegativePagination = errors.New("limit and offset must not be negative")
)
