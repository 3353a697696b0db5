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

// certificateRepository is the SQL-backed implementation of
// [CertificateRepository]. The issuer column is self-referential: chain
// walking happens in the service layer one hop at a time, never through
// recursive SQL.
type certificateRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCertificateRepository constructs a [CertificateRepository] backed by
// the provided database connection and logger.
func NewCertificateRepository(db *DB, logger *logger.Logger) CertificateRepository {
	logger.Debug().Msg("creating certificate repository")
	return &certificateRepository{
		db:     db,
		logger: logger,
	}
}

// SaveCertificate implements [CertificateRepository]. Certificates are
// immutable, so a re-save of a known signature is a no-op rather than an
// update.
func (r *certificateRepository) SaveCertificate(ctx context.Context, cert models.Certificate) error {
	payload, err := json.Marshal(cert.Payload)
	if err != nil {
		return fmt.Errorf("encode certificate payload: %w", err)
	}

	query, args, err := r.db.builder.
		Insert("certificates").
		Columns("signature", "issuer_signature", "payload", "serialized", "trusted").
		Values(cert.Signature, cert.IssuerSignature, string(payload), string(cert.Serialized), cert.Trusted).
		Suffix(`ON CONFLICT (signature) DO NOTHING`).
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

// GetCertificate implements [CertificateRepository].
func (r *certificateRepository) GetCertificate(ctx context.Context, signature string) (models.Certificate, error) {
	query, args, err := r.db.builder.
		Select("signature", "issuer_signature", "payload", "serialized", "trusted").
		From("certificates").
		Where(squirrel.Eq{"signature": signature}).
		ToSql()
	if err != nil {
		return models.Certificate{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var cert models.Certificate
	var payload, serialized string
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&cert.Signature, &cert.IssuerSignature, &payload, &serialized, &cert.Trusted)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Certificate{}, ErrCertificateNotFound
	}
	if err != nil {
		return models.Certificate{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	cert.Serialized = json.RawMessage(serialized)
	if err = json.Unmarshal([]byte(payload), &cert.Payload); err != nil {
		return models.Certificate{}, fmt.Errorf("decode certificate payload: %w", err)
	}

	return cert, nil
}

// MarkTrusted implements [CertificateRepository].
func (r *certificateRepository) MarkTrusted(ctx context.Context, signature string) error {
	query, args, err := r.db.builder.
		Update("certificates").
		Set("trusted", true).
		Where(squirrel.Eq{"signature": signature}).
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
		return ErrCertificateNotFound
	}

	return nil
}
