package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/Masterminds/squirrel"
)

// DB wraps the SQL connection together with the placeholder dialect used by
// the query builder and an optional driver-specific error classifier.
type DB struct {
	*sql.DB
	builder            squirrel.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying. Drivers without a classifier treat every failure as final.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on any error.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// logIfRetryable notes transient driver failures so operators can separate
// flaky connectivity from real bugs in the logs.
func (db *DB) logIfRetryable(ctx context.Context, err error) {
	if err == nil || db.errorClassificator == nil {
		return
	}
	if db.errorClassificator.Classify(err) == Retryable {
		logger.FromContext(ctx).Warn().Err(err).Msg("retryable database error")
	}
}
