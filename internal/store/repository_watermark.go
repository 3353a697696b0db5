package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/models"
	"github.com/Masterminds/squirrel"
)

// watermarkRepository is the SQL-backed implementation of
// [WatermarkRepository] over the max_counters table.
type watermarkRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewWatermarkRepository constructs a [WatermarkRepository] backed by the
// provided database connection and logger.
func NewWatermarkRepository(db *DB, logger *logger.Logger) WatermarkRepository {
	logger.Debug().Msg("creating watermark repository")
	return &watermarkRepository{
		db:     db,
		logger: logger,
	}
}

// GetWatermark implements [WatermarkRepository]. A missing row is not an
// error: it reads as MaxCounter == 0, meaning nothing from that instance has
// been incorporated yet.
func (r *watermarkRepository) GetWatermark(ctx context.Context, instanceID, filter string) (models.DatabaseMaxCounter, error) {
	query, args, err := r.db.builder.
		Select("instance_id", "filter", "max_counter").
		From("max_counters").
		Where(squirrel.Eq{"instance_id": instanceID, "filter": filter}).
		ToSql()
	if err != nil {
		return models.DatabaseMaxCounter{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var mark models.DatabaseMaxCounter
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&mark.InstanceID, &mark.Filter, &mark.MaxCounter)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DatabaseMaxCounter{InstanceID: instanceID, Filter: filter}, nil
	}
	if err != nil {
		return models.DatabaseMaxCounter{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return mark, nil
}

// SaveWatermark implements [WatermarkRepository].
func (r *watermarkRepository) SaveWatermark(ctx context.Context, mark models.DatabaseMaxCounter) error {
	query, args, err := upsertWatermarkSQL(r.db.builder, mark)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.db.logIfRetryable(ctx, err)
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// upsertWatermarkSQL builds the shared watermark upsert, also used inside
// the batch-apply transaction.
func upsertWatermarkSQL(builder squirrel.StatementBuilderType, mark models.DatabaseMaxCounter) (string, []any, error) {
	return builder.
		Insert("max_counters").
		Columns("instance_id", "filter", "max_counter").
		Values(mark.InstanceID, mark.Filter, mark.MaxCounter).
		Suffix(`ON CONFLICT (instance_id, filter) DO UPDATE SET max_counter = excluded.max_counter`).
		ToSql()
}

func upsertWatermark(ctx context.Context, tx *sql.Tx, builder squirrel.StatementBuilderType, mark models.DatabaseMaxCounter) error {
	query, args, err := upsertWatermarkSQL(builder, mark)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
