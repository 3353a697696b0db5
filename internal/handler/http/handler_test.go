package http

import (
	"context"

	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/internal/service"
	"github.com/MKhiriev/go-peer-sync/models"
)

// Hand-written service fakes. Only the functions a test installs are called;
// the rest return zero values.

type mockSyncService struct {
	getDeltaFn         func(ctx context.Context, req models.DeltaRequest) (models.Delta, error)
	applyDeltaFn       func(ctx context.Context, delta models.Delta) (models.MergeReport, error)
	watermarkFn        func(ctx context.Context, instanceID, filter string) (models.DatabaseMaxCounter, error)
	advanceWatermarkFn func(ctx context.Context, mark models.DatabaseMaxCounter) error
}

func (m *mockSyncService) GetDelta(ctx context.Context, req models.DeltaRequest) (models.Delta, error) {
	return m.getDeltaFn(ctx, req)
}
func (m *mockSyncService) ApplyDelta(ctx context.Context, delta models.Delta) (models.MergeReport, error) {
	return m.applyDeltaFn(ctx, delta)
}
func (m *mockSyncService) Watermark(ctx context.Context, instanceID, filter string) (models.DatabaseMaxCounter, error) {
	return m.watermarkFn(ctx, instanceID, filter)
}
func (m *mockSyncService) AdvanceWatermark(ctx context.Context, mark models.DatabaseMaxCounter) error {
	return m.advanceWatermarkFn(ctx, mark)
}
func (m *mockSyncService) LocalInstanceID() string { return "hub-1" }

type mockSessionService struct {
	openFn       func(ctx context.Context, req models.SessionRequest) (models.SessionResponse, error)
	parseTokenFn func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockSessionService) Open(ctx context.Context, req models.SessionRequest) (models.SessionResponse, error) {
	return m.openFn(ctx, req)
}
func (m *mockSessionService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

type mockCertificateService struct {
	issueFn func(ctx context.Context, issuerSignature string, payload models.CertificatePayload) (models.Certificate, error)
}

func (m *mockCertificateService) IssueRoot(ctx context.Context, instanceID, scope string, operations []string) (models.Certificate, error) {
	return models.Certificate{}, nil
}
func (m *mockCertificateService) Issue(ctx context.Context, issuerSignature string, payload models.CertificatePayload) (models.Certificate, error) {
	return m.issueFn(ctx, issuerSignature, payload)
}
func (m *mockCertificateService) Validate(ctx context.Context, chain []models.Certificate) (models.Certificate, error) {
	return models.Certificate{}, nil
}
func (m *mockCertificateService) Authorize(ctx context.Context, chain []models.Certificate, partitionKey, operation string) error {
	return nil
}
func (m *mockCertificateService) Trust(ctx context.Context, signature string) error { return nil }
func (m *mockCertificateService) Get(ctx context.Context, signature string) (models.Certificate, error) {
	return models.Certificate{}, nil
}

func newHandlerWithServices(services *service.Services) *Handler {
	return &Handler{
		services: services,
		logger:   logger.Nop(),
	}
}
