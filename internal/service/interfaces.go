package service

import (
	"context"

	"github.com/MKhiriev/go-peer-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_service.go -package=mock

// RecordService is the application-facing write path: it persists entities,
// maintains their dirty bits, and converts accumulated dirty entities into
// transferable store records.
type RecordService interface {
	// Save serializes and persists the entity and sets its dirty bit so the
	// change is picked up by the next serialization pass.
	Save(ctx context.Context, entity models.Syncable) error

	// SaveWithoutDirty persists the entity without touching its dirty bit.
	// Reserved for writes that must stay invisible to sync, such as purely
	// local bookkeeping fields.
	SaveWithoutDirty(ctx context.Context, entity models.Syncable) error

	// Load reconstructs the entity stored under id.
	Load(ctx context.Context, id string) (models.Syncable, error)

	// Delete soft-deletes the entity: it remains as a dirty tombstone until
	// the deletion has propagated.
	Delete(ctx context.Context, id string) error

	// BulkUpdate patches the payload of every entity of the given model under
	// the partition filter and marks each affected row dirty. Returns the
	// number of rows touched.
	BulkUpdate(ctx context.Context, model, filter string, patch map[string]any) (int64, error)

	// SerializeDirty converts every dirty entity under the filter into a new
	// store record version and clears the dirty bits it consumed. Returns the
	// number of records produced.
	SerializeDirty(ctx context.Context, filter string) (int, error)
}

// SyncService implements the record exchange between two instances: producing
// deltas for a peer, folding a peer's delta into local state, and keeping the
// per-peer high-water marks.
type SyncService interface {
	// GetDelta returns every local record under req.Filter whose contribution
	// from req.InstanceID is newer than req.SinceCounter. When the context
	// carries a session scope, records outside it are omitted; a session
	// without the read operation is refused with [ErrScopeViolation].
	GetDelta(ctx context.Context, req models.DeltaRequest) (models.Delta, error)

	// ApplyDelta folds a peer's records into local state, resolving conflicts
	// through the registered merge hooks, and advances the watermark for the
	// delta's (instance, filter) key in the same transaction. A session
	// without the write operation is refused with [ErrScopeViolation].
	ApplyDelta(ctx context.Context, delta models.Delta) (models.MergeReport, error)

	// Watermark returns the local high-water mark for (instanceID, filter),
	// zero-valued when no data from that instance has been incorporated.
	Watermark(ctx context.Context, instanceID, filter string) (models.DatabaseMaxCounter, error)

	// AdvanceWatermark moves a high-water mark forward. A regression fails
	// with [ErrWatermarkRegression].
	AdvanceWatermark(ctx context.Context, mark models.DatabaseMaxCounter) error

	// LocalInstanceID returns the identity this instance writes into counter
	// maps.
	LocalInstanceID() string
}

// CertificateService maintains the delegation chain: minting roots, issuing
// subordinate certificates, validating presented chains, and managing the
// local trust store.
type CertificateService interface {
	// IssueRoot mints a self-signed root certificate for this instance and
	// adds it to the local trust store.
	IssueRoot(ctx context.Context, instanceID, scope string, operations []string) (models.Certificate, error)

	// Issue signs a subordinate certificate under the given issuer
	// certificate, which the local key must hold. The payload's scope and
	// operations must be a subset of the issuer's.
	Issue(ctx context.Context, issuerSignature string, payload models.CertificatePayload) (models.Certificate, error)

	// Validate walks a presented chain, leaf first, up to a locally trusted
	// root, verifying every signature and the subset rules at each hop.
	// Returns the validated leaf.
	Validate(ctx context.Context, chain []models.Certificate) (models.Certificate, error)

	// Authorize validates the chain and additionally checks that its leaf
	// covers the given partition key and delegates the given operation.
	Authorize(ctx context.Context, chain []models.Certificate, partitionKey, operation string) error

	// Trust adds a stored self-signed certificate to the local trust store.
	Trust(ctx context.Context, signature string) error

	// Get returns the stored certificate for signature.
	Get(ctx context.Context, signature string) (models.Certificate, error)
}

// SessionService exchanges a validated certificate chain for a session token
// and verifies tokens on subsequent requests.
type SessionService interface {
	// Open validates the presented chain and issues a session token bound to
	// the leaf's instance identity and scope.
	Open(ctx context.Context, req models.SessionRequest) (models.SessionResponse, error)

	// ParseToken validates a session token string and returns its claims.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}
