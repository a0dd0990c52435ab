package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification describes whether a failed query is worth retrying.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

func (c ErrorClassification) String() string {
	switch c {
	case Retryable:
		return "retryable"
	default:
		return "non-retryable"
	}
}

type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	return NonRetryable
}

// ClassifyPgError treats connection-class and transaction-rollback errors as
// retryable. Data and constraint violations never succeed on retry.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch {
	case pgerrcode.IsConnectionException(pgErr.Code):
		return Retryable
	case pgerrcode.IsTransactionRollback(pgErr.Code):
		return Retryable
	case pgErr.Code == pgerrcode.CannotConnectNow:
		return Retryable
	case pgerrcode.IsDataException(pgErr.Code):
		return NonRetryable
	case pgerrcode.IsIntegrityConstraintViolation(pgErr.Code):
		return NonRetryable
	case pgerrcode.IsSyntaxErrororAccessRuleViolation(pgErr.Code):
		return NonRetryable
	default:
		return NonRetryable
	}
}
