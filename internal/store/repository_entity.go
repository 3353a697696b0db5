package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/Masterminds/squirrel"
)

var entityColumns = []string{"id", "model", "payload", "dirty", "deleted", "partitions"}

// entityRepository is the SQL-backed implementation of [EntityRepository].
// Entity rows of every registered model share the entities table; the
// entity_partitions index answers partition-prefix queries.
type entityRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewEntityRepository constructs an [EntityRepository] backed by the
// provided database connection and logger.
func NewEntityRepository(db *DB, logger *logger.Logger) EntityRepository {
	logger.Debug().Msg("creating entity repository")
	return &entityRepository{
		db:     db,
		logger: logger,
	}
}

// SaveEntity implements [EntityRepository].
func (r *entityRepository) SaveEntity(ctx context.Context, row EntityRow) error {
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		return r.upsertEntity(ctx, tx, row)
	})
}

func (r *entityRepository) upsertEntity(ctx context.Context, tx *sql.Tx, row EntityRow) error {
	partitions, err := json.Marshal(row.Partitions)
	if err != nil {
		return fmt.Errorf("encode partitions: %w", err)
	}

	query, args, err := r.db.builder.
		Insert("entities").
		Columns(entityColumns...).
		Values(row.ID, row.Model, string(row.Payload), row.Dirty, row.Deleted, string(partitions)).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			model = excluded.model,
			payload = excluded.payload,
			dirty = excluded.dirty,
			deleted = excluded.deleted,
			partitions = excluded.partitions`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		r.db.logIfRetryable(ctx, err)
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err = r.db.builder.
		Delete("entity_partitions").
		Where(squirrel.Eq{"entity_id": row.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	for _, partition := range row.Partitions {
		query, args, err = r.db.builder.
			Insert("entity_partitions").
			Columns("entity_id", "partition").
			Values(row.ID, partition).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return nil
}

// GetEntity implements [EntityRepository].
func (r *entityRepository) GetEntity(ctx context.Context, id string) (EntityRow, error) {
	query, args, err := r.db.builder.
		Select(entityColumns...).
		From("entities").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return EntityRow{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row, err := scanEntity(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return EntityRow{}, ErrEntityNotFound
	}

	return row, err
}

// ListDirty implements [EntityRepository].
func (r *entityRepository) ListDirty(ctx context.Context, filter string) ([]EntityRow, error) {
	builder := r.db.builder.
		Select(prefixed("e", entityColumns)...).
		Options("DISTINCT").
		From("entities e").
		Where(squirrel.Eq{"e.dirty": true})

	if filter != "" {
		builder = builder.
			Join("entity_partitions p ON p.entity_id = e.id").
			Where(squirrel.Like{"p.partition": filter + "%"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.db.logIfRetryable(ctx, err)
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var result []EntityRow
	for rows.Next() {
		row, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

// SetDirty implements [EntityRepository].
func (r *entityRepository) SetDirty(ctx context.Context, ids []string, dirty bool) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := r.db.builder.
		Update("entities").
		Set("dirty", dirty).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.db.logIfRetryable(ctx, err)
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// UpdateWhere implements [EntityRepository]. The patch is applied to the
// stored payload in Go — field keys are serialization names, not SQL
// columns — and every touched row is re-saved dirty inside one transaction.
func (r *entityRepository) UpdateWhere(ctx context.Context, model, filter string, patch map[string]any) (int64, error) {
	rows, err := r.listByModel(ctx, model, filter)
	if err != nil {
		return 0, err
	}

	var affected int64
	err = r.db.withTx(ctx, func(tx *sql.Tx) error {
		for _, row := range rows {
			var payload map[string]any
			if err := json.Unmarshal(row.Payload, &payload); err != nil {
				return fmt.Errorf("decode payload of %s: %w", row.ID, err)
			}
			for key, value := range patch {
				payload[key] = value
			}

			patched, err := json.Marshal(payload)
			if err != nil {
				return fmt.Errorf("encode payload of %s: %w", row.ID, err)
			}

			row.Payload = patched
			row.Dirty = true // bulk writes must never skip the dirty bit
			if err = r.upsertEntity(ctx, tx, row); err != nil {
				return err
			}
			affected++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}

// MarkDeleted implements [EntityRepository].
func (r *entityRepository) MarkDeleted(ctx context.Context, id string) error {
	query, args, err := r.db.builder.
		Update("entities").
		Set("deleted", true).
		Set("dirty", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.db.logIfRetryable(ctx, err)
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrEntityNotFound
	}

	return nil
}

func (r *entityRepository) listByModel(ctx context.Context, model, filter string) ([]EntityRow, error) {
	builder := r.db.builder.
		Select(prefixed("e", entityColumns)...).
		Options("DISTINCT").
		From("entities e").
		Where(squirrel.Eq{"e.model": model})

	if filter != "" {
		builder = builder.
			Join("entity_partitions p ON p.entity_id = e.id").
			Where(squirrel.Like{"p.partition": filter + "%"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var result []EntityRow
	for rows.Next() {
		row, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

func scanEntity(row rowScanner) (EntityRow, error) {
	var entity EntityRow
	var payload, partitions string

	err := row.Scan(&entity.ID, &entity.Model, &payload, &entity.Dirty, &entity.Deleted, &partitions)
	if errors.Is(err, sql.ErrNoRows) {
		return EntityRow{}, err
	}
	if err != nil {
		return EntityRow{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	entity.Payload = json.RawMessage(payload)
	if err = json.Unmarshal([]byte(partitions), &entity.Partitions); err != nil {
		return EntityRow{}, fmt.Errorf("decode partitions: %w", err)
	}

	return entity, nil
}
