package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"syscall"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/migrations"
)

// Dialect names the SQL flavour behind a DB.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx, so repositories
// run unchanged inside and outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB is a database handle that knows its dialect and how to classify the
// errors its driver returns.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB wraps an open *sql.DB. It is used by the connect helpers and by
// tests that bring their own connection.
func NewDB(conn *sql.DB, dialect Dialect, log *logger.Logger) *DB {
	var classifier ErrorClassificator
	switch dialect {
	case DialectPostgres:
		classifier = NewPostgresErrorClassifier()
	case DialectMySQL:
		classifier = NewMySQLErrorClassifier()
	default:
		classifier = NewSQLiteErrorClassifier()
	}

	return &DB{
		DB:                 conn,
		dialect:            dialect,
		errorClassificator: classifier,
		logger:             log,
	}
}

// Dialect returns the SQL flavour of db.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the local store schema. Only the SQLite edge store is
// migrated; the shared store schema is owned elsewhere.
func (db *DB) Migrate() error {
	if db.dialect != DialectSQLite {
		return fmt.Errorf("migrations are only defined for %s, got %s", DialectSQLite, db.dialect)
	}
	return migrations.Migrate(db.DB)
}

// builder returns a squirrel statement builder with the placeholder format
// of the dialect.
func (db *DB) builder() sq.StatementBuilderType {
	if db.dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// classify maps a driver error onto a domain sentinel. Unclassified errors
// are wrapped with fallback.
func (db *DB) classify(fallback, err error) error {
	if err == nil {
		return nil
	}

	if isConnectionError(err) {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	switch db.errorClassificator.Classify(err) {
	case ConstraintViolation:
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	case Unavailable:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return fmt.Errorf("%w: %w", fallback, err)
}

// isConnectionError reports driver independent signs that the server could
// not be reached.
func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// inTx runs fn inside a transaction on db, committing on success and rolling
// back on error or panic.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return db.classify(ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return db.classify(ErrCommitingTransaction, err)
	}

	return nil
}
