package store

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-peer-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_store.go -package=mock

// EntityRow is the storage representation of a syncable entity: the
// serialized payload plus the replication bookkeeping columns. Entity rows
// of every registered model share one table; the payload's type tag keeps
// them apart.
type EntityRow struct {
	ID         string
	Model      string
	Payload    json.RawMessage
	Dirty      bool
	Deleted    bool
	Partitions []string
}

// EntityRepository persists syncable entities and their dirty bits.
type EntityRepository interface {
	// SaveEntity inserts or replaces an entity row.
	SaveEntity(ctx context.Context, row EntityRow) error

	// GetEntity returns the entity row for id, or [ErrEntityNotFound].
	GetEntity(ctx context.Context, id string) (EntityRow, error)

	// ListDirty returns every dirty entity row whose partitions match the
	// given prefix filter. An empty filter matches all rows.
	ListDirty(ctx context.Context, filter string) ([]EntityRow, error)

	// SetDirty flips the dirty bit on the given rows. This is the
	// sync-internal write path: it must never re-dirty what it clears.
	SetDirty(ctx context.Context, ids []string, dirty bool) error

	// UpdateWhere applies patch to the payload of every row of the given
	// model matching the partition filter, atomically, and sets the dirty
	// bit on each affected row. Skipping the dirty bit here would silently
	// drop the changes from the next sync pass.
	UpdateWhere(ctx context.Context, model, filter string, patch map[string]any) (int64, error)

	// MarkDeleted soft-deletes an entity row: the row stays behind as a
	// dirty tombstone so the deletion propagates.
	MarkDeleted(ctx context.Context, id string) error
}

// RecordRepository persists transferable store records.
type RecordRepository interface {
	// SaveRecord inserts or replaces a store record and its partition index.
	SaveRecord(ctx context.Context, record models.StoreRecord) error

	// GetRecord returns the record for id, or [ErrRecordNotFound].
	GetRecord(ctx context.Context, id string) (models.StoreRecord, error)

	// ListRecordsByPartition returns every record with at least one
	// partition key under the given prefix filter. An empty filter matches
	// all records.
	ListRecordsByPartition(ctx context.Context, filter string) ([]models.StoreRecord, error)

	// MaxLocalCounter returns the highest last_saved_counter produced by
	// the given instance, or 0 when it has produced none. Used to seed the
	// counter allocator after a restart.
	MaxLocalCounter(ctx context.Context, instanceID string) (int64, error)

	// ApplyBatch upserts all records and the watermark summarizing them in
	// one transaction. A crash mid-batch leaves the watermark unadvanced so
	// redelivery remains safe.
	ApplyBatch(ctx context.Context, records []models.StoreRecord, mark models.DatabaseMaxCounter) error
}

// WatermarkRepository persists per-(instance, filter) high-water marks.
type WatermarkRepository interface {
	// GetWatermark returns the watermark for the key, with MaxCounter == 0
	// when no row exists.
	GetWatermark(ctx context.Context, instanceID, filter string) (models.DatabaseMaxCounter, error)

	// SaveWatermark inserts or replaces the watermark row. Monotonicity is
	// enforced by the service layer, which serializes advances per key.
	SaveWatermark(ctx context.Context, mark models.DatabaseMaxCounter) error
}

// CertificateRepository persists the certificate chain.
type CertificateRepository interface {
	// SaveCertificate stores a certificate. Certificates are immutable;
	// saving an existing signature is a no-op.
	SaveCertificate(ctx context.Context, cert models.Certificate) error

	// GetCertificate returns the certificate for signature, or
	// [ErrCertificateNotFound]. The Trusted flag reflects the local trust
	// store.
	GetCertificate(ctx context.Context, signature string) (models.Certificate, error)

	// MarkTrusted adds a stored self-signed certificate to the local trust
	// store.
	MarkTrusted(ctx context.Context, signature string) error
}
