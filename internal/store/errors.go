package store

import "errors"

// Domain errors returned by repository methods. Callers should use
// [errors.Is] to match against these values; the driver error stays in the
// chain for [errors.As].
var (
	// ErrRecordNotFound is returned when an update, delete or lookup targets
	// a record id that does not exist.
	ErrRecordNotFound = errors.New("record not found")

	// ErrVersionConflict is returned when an optimistic-locking check fails:
	// the row exists but carries a different version than the one expected.
	ErrVersionConflict = errors.New("record version conflict")

	// ErrConstraintViolation is returned when a unique or foreign-key rule
	// rejects a write.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrStoreUnavailable is returned when the database cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvalidIdentifier is returned for table or column names that are not
	// plain SQL identifiers.
	ErrInvalidIdentifier = errors.New("invalid sql identifier")

	// ErrEmptyRecord is returned when a write carries no columns.
	ErrEmptyRecord = errors.New("record has no columns")

	// ErrJournalEntryNotFound is returned for unknown journal entry ids or
	// idempotency keys.
	ErrJournalEntryNotFound = errors.New("journal entry not found")

	// ErrInvalidTransition is returned when a journal entry is asked to move
	// to a state its current state does not allow.
	ErrInvalidTransition = errors.New("invalid journal status transition")

	// ErrDuplicateIdempotencyKey is returned when a journal append reuses an
	// idempotency key already recorded for the account.
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")

	// ErrConflictNotFound is returned for unknown conflict ids.
	ErrConflictNotFound = errors.New("conflict not found")

	// ErrConflictAlreadyResolved is returned when a resolution is stamped on
	// a conflict that already carries one.
	ErrConflictAlreadyResolved = errors.New("conflict already resolved")

	// ErrLockNotSupported is returned by lockers on dialects without
	// session-level advisory locks.
	ErrLockNotSupported = errors.New("account lock is not supported by dialect")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingPayload is returned when a record cannot be encoded for
	// storage or decoded after reading.
	ErrEncodingPayload = errors.New("failed to encode payload")
)
