package store

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers used by [MySQLErrorClassifier].
// See https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	mysqlErrDupEntry                = 1062
	mysqlErrNoReferencedRow         = 1216
	mysqlErrRowIsReferenced         = 1217
	mysqlErrRowIsReferenced2        = 1451
	mysqlErrNoReferencedRow2        = 1452
	mysqlErrLockWaitTimeout         = 1205
	mysqlErrLockDeadlock            = 1213
	mysqlErrTooManyConnections      = 1040
	mysqlErrServerShutdown          = 1053
	mysqlErrReadOnlyTransaction     = 1792
	mysqlErrOptionPreventsStatement = 1290
)

// MySQLErrorClassifier implements [ErrorClassificator] for MySQL and MariaDB.
type MySQLErrorClassifier struct{}

func NewMySQLErrorClassifier() *MySQLErrorClassifier {
	return &MySQLErrorClassifier{}
}

func (c *MySQLErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	if errors.Is(err, mysql.ErrInvalidConn) {
		return Unavailable
	}

	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return NonRetryable
	}

	switch myErr.Number {
	case mysqlErrDupEntry,
		mysqlErrNoReferencedRow, mysqlErrNoReferencedRow2,
		mysqlErrRowIsReferenced, mysqlErrRowIsReferenced2:
		return ConstraintViolation
	case mysqlErrLockWaitTimeout, mysqlErrLockDeadlock:
		return Retryable
	case mysqlErrTooManyConnections, mysqlErrServerShutdown,
		mysqlErrReadOnlyTransaction, mysqlErrOptionPreventsStatement:
		// read-only replicas after a failover behave like an unreachable primary
		return Unavailable
	}

	return NonRetryable
}
