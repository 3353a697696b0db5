package store

import "github.com/MKhiriev/go-peer-sync/internal/logger"

// Storages bundles every repository behind one constructor so the service
// layer receives a single dependency.
type Storages struct {
	Entities     EntityRepository
	Records      RecordRepository
	Watermarks   WatermarkRepository
	Certificates CertificateRepository
}

func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		Entities:     NewEntityRepository(db, logger),
		Records:      NewRecordRepository(db, logger),
		Watermarks:   NewWatermarkRepository(db, logger),
		Certificates: NewCertificateRepository(db, logger),
	}
}
