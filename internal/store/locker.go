package store

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/MKhiriev/go-edge-sync/internal/logger"
)

const (
	lockNamePrefix = "edge-sync:"
	// MySQL rejects lock names longer than 64 characters.
	mysqlMaxLockName = 64
	unlockTimeout    = 5 * time.Second
)

// advisoryLocker leases accounts through session-level advisory locks of
// the shared store. The lock lives on a pinned connection, so the server
// drops it if the edge node dies mid-cycle.
type advisoryLocker struct {
	db *DB
}

// NewAccountLocker returns a locker for db, or nil when the dialect has no
// advisory locks.
func NewAccountLocker(db *DB) AccountLocker {
	switch db.dialect {
	case DialectPostgres, DialectMySQL:
		return &advisoryLocker{db: db}
	}
	return nil
}

func (l *advisoryLocker) TryLock(ctx context.Context, accountID string) (func() error, bool, error) {
	log := logger.FromContext(ctx)

	lockQuery, unlockQuery, err := l.queries()
	if err != nil {
		return nil, false, err
	}
	name := lockName(accountID)

	conn, err := l.db.Conn(ctx)
	if err != nil {
		return nil, false, l.db.classify(ErrExecutingQuery, err)
	}

	var acquired bool
	if err = conn.QueryRowContext(ctx, lockQuery, name).Scan(&acquired); err != nil {
		_ = conn.Close()
		log.Err(err).
			Str("func", "advisoryLocker.TryLock").
			Str("account_id", accountID).
			Msg("failed to acquire account lease")
		return nil, false, l.db.classify(ErrExecutingQuery, err)
	}

	if !acquired {
		_ = conn.Close()
		return nil, false, nil
	}

	unlock := func() error {
		defer conn.Close()

		unlockCtx, cancel := context.WithTimeout(context.Background(), unlockTimeout)
		defer cancel()

		if _, err := conn.ExecContext(unlockCtx, unlockQuery, name); err != nil {
			log.Err(err).
				Str("func", "advisoryLocker.unlock").
				Str("account_id", accountID).
				Msg("failed to release account lease")
			return l.db.classify(ErrExecutingStatement, err)
		}
		return nil
	}

	return unlock, true, nil
}

func (l *advisoryLocker) queries() (lock, unlock string, err error) {
	switch l.db.dialect {
	case DialectPostgres:
		return "SELECT pg_try_advisory_lock(hashtext($1))", "SELECT pg_advisory_unlock(hashtext($1))", nil
	case DialectMySQL:
		return "SELECT GET_LOCK(?, 0) = 1", "SELECT RELEASE_LOCK(?)", nil
	}
	return "", "", fmt.Errorf("%w: %s", ErrLockNotSupported, l.db.dialect)
}

func lockName(accountID string) string {
	name := lockNamePrefix + accountID
	if len(name) <= mysqlMaxLockName {
		return name
	}
	sum := blake2b.Sum256([]byte(accountID))
	return lockNamePrefix + hex.EncodeToString(sum[:16])
}
