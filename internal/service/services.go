package service

import (
	"context"

	"github.com/MKhiriev/go-peer-sync/internal/config"
	"github.com/MKhiriev/go-peer-sync/internal/crypto"
	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/internal/registry"
	"github.com/MKhiriev/go-peer-sync/internal/store"
)

type Services struct {
	RecordService      RecordService
	SyncService        SyncService
	CertificateService CertificateService
	SessionService     SessionService
}

func NewServices(ctx context.Context, storages *store.Storages, reg *registry.Registry, keys crypto.KeyRingService, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	records, err := NewRecordService(ctx, storages, reg, cfg.App.InstanceID, logger)
	if err != nil {
		return nil, err
	}

	certificates := NewCertificateService(storages, keys, logger)

	return &Services{
		RecordService:      records,
		SyncService:        NewSyncService(storages, reg, cfg.App.InstanceID, logger),
		CertificateService: certificates,
		SessionService:     NewSessionService(certificates, cfg.App.InstanceID, cfg.App, logger),
	}, nil
}
