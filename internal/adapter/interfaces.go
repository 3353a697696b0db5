// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with a sync peer (in practice, the hub).
//
// The primary abstraction is [PeerAdapter], which decouples the sync workers
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPPeerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401, [ErrForbidden] for 403).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-peer-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_adapter.go -package=mock

// PeerAdapter defines transport-agnostic communication with a sync peer.
// Implementations handle serialization, session token management, and mapping
// transport-level errors to the sentinel values defined in this package.
type PeerAdapter interface {
	// SetToken stores the session token attached to all subsequent
	// authenticated requests. Called automatically by OpenSession.
	SetToken(token string)

	// Token returns the current session token, or an empty string before a
	// session has been opened.
	Token() string

	// OpenSession presents the certificate chain (leaf first) and stores the
	// returned session token and the peer's instance identity.
	OpenSession(ctx context.Context, chain []models.Certificate) error

	// PeerID returns the peer's instance identifier learned from OpenSession,
	// used to key local watermarks. Empty before a session has been opened.
	PeerID() string

	// PullDelta fetches the records the peer holds under req.Filter whose
	// contribution from req.InstanceID exceeds req.SinceCounter.
	PullDelta(ctx context.Context, req models.DeltaRequest) (models.DeltaResponse, error)

	// PushDelta sends a batch of local records to the peer and returns the
	// peer's merge report.
	PushDelta(ctx context.Context, delta models.Delta) (models.MergeReport, error)

	// GetWatermark asks the peer how much of instanceID's data it has already
	// incorporated under filter, so pushes can skip what the peer holds.
	GetWatermark(ctx context.Context, instanceID, filter string) (models.WatermarkResponse, error)
}
