package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/models"
	"github.com/Masterminds/squirrel"
)

// recordColumns is the column order shared by every store_records query.
var recordColumns = []string{
	"id", "serialized", "deleted", "version", "history",
	"last_saved_instance", "last_saved_counter", "counters", "partitions",
}

// recordRepository is the SQL-backed implementation of [RecordRepository].
// It maintains the store_records table plus the record_partitions index used
// for partition-prefix queries.
type recordRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRecordRepository constructs a [RecordRepository] backed by the provided
// database connection and logger.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	logger.Debug().Msg("creating record repository")
	return &recordRepository{
		db:     db,
		logger: logger,
	}
}

// SaveRecord implements [RecordRepository] as a single-record transaction.
func (r *recordRepository) SaveRecord(ctx context.Context, record models.StoreRecord) error {
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		return r.upsertRecord(ctx, tx, record)
	})
}

// ApplyBatch implements [RecordRepository]. The records and the watermark
// summarizing them are committed atomically: if anything fails, the
// watermark stays behind and the batch can be redelivered safely.
func (r *recordRepository) ApplyBatch(ctx context.Context, records []models.StoreRecord, mark models.DatabaseMaxCounter) error {
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		for _, record := range records {
			if err := r.upsertRecord(ctx, tx, record); err != nil {
				return err
			}
		}

		return upsertWatermark(ctx, tx, r.db.builder, mark)
	})
}

func (r *recordRepository) upsertRecord(ctx context.Context, tx *sql.Tx, record models.StoreRecord) error {
	history, err := json.Marshal(record.History)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	counters, err := json.Marshal(record.Counters)
	if err != nil {
		return fmt.Errorf("encode counters: %w", err)
	}
	partitions, err := json.Marshal(record.Partitions)
	if err != nil {
		return fmt.Errorf("encode partitions: %w", err)
	}

	query, args, err := r.db.builder.
		Insert("store_records").
		Columns(recordColumns...).
		Values(
			record.ID, string(record.Serialized), record.Deleted, record.Version, string(history),
			record.LastSavedInstance, record.LastSavedCounter, string(counters), string(partitions),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			serialized = excluded.serialized,
			deleted = excluded.deleted,
			version = excluded.version,
			history = excluded.history,
			last_saved_instance = excluded.last_saved_instance,
			last_saved_counter = excluded.last_saved_counter,
			counters = excluded.counters,
			partitions = excluded.partitions`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		r.db.logIfRetryable(ctx, err)
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	// Refresh the partition index for the record.
	query, args, err = r.db.builder.
		Delete("record_partitions").
		Where(squirrel.Eq{"record_id": record.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	for _, partition := range record.Partitions {
		query, args, err = r.db.builder.
			Insert("record_partitions").
			Columns("record_id", "partition").
			Values(record.ID, partition).
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

// GetRecord implements [RecordRepository].
func (r *recordRepository) GetRecord(ctx context.Context, id string) (models.StoreRecord, error) {
	query, args, err := r.db.builder.
		Select(recordColumns...).
		From("store_records").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.StoreRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.StoreRecord{}, ErrRecordNotFound
	}

	return record, err
}

// ListRecordsByPartition implements [RecordRepository]. Records are matched
// through the record_partitions index with a prefix LIKE; an empty filter
// returns every record.
func (r *recordRepository) ListRecordsByPartition(ctx context.Context, filter string) ([]models.StoreRecord, error) {
	builder := r.db.builder.
		Select(prefixed("r", recordColumns)...).
		Options("DISTINCT").
		From("store_records r")

	if filter != "" {
		builder = builder.
			Join("record_partitions p ON p.record_id = r.id").
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

	var records []models.StoreRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

// MaxLocalCounter implements [RecordRepository].
func (r *recordRepository) MaxLocalCounter(ctx context.Context, instanceID string) (int64, error) {
	query, args, err := r.db.builder.
		Select("COALESCE(MAX(last_saved_counter), 0)").
		From("store_records").
		Where(squirrel.Eq{"last_saved_instance": instanceID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var max int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&max); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return max, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.StoreRecord, error) {
	var record models.StoreRecord
	var serialized, history, counters, partitions string

	err := row.Scan(
		&record.ID, &serialized, &record.Deleted, &record.Version, &history,
		&record.LastSavedInstance, &record.LastSavedCounter, &counters, &partitions,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StoreRecord{}, err
	}
	if err != nil {
		return models.StoreRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	record.Serialized = json.RawMessage(serialized)
	if err = json.Unmarshal([]byte(history), &record.History); err != nil {
		return models.StoreRecord{}, fmt.Errorf("decode history: %w", err)
	}
	if err = json.Unmarshal([]byte(counters), &record.Counters); err != nil {
		return models.StoreRecord{}, fmt.Errorf("decode counters: %w", err)
	}
	if err = json.Unmarshal([]byte(partitions), &record.Partitions); err != nil {
		return models.StoreRecord{}, fmt.Errorf("decode partitions: %w", err)
	}

	return record, nil
}

// prefixed qualifies column names with a table alias.
func prefixed(alias string, columns []string) []string {
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return qualified
}
