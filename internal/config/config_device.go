package config

import (
	"fmt"
	"time"
)

// DeviceApp holds device-side application settings derived from the shared
// structured config.
type DeviceApp struct {
	// InstanceID is the device's identity in counter maps and watermarks.
	InstanceID string
	// KeyPath is the file holding the device's signing key seed.
	KeyPath string
	// CertChainPath points at the JSON certificate chain presented to the hub.
	CertChainPath string
}

// DeviceAdapter holds network settings used by the device transport layer.
type DeviceAdapter struct {
	// HTTPAddress is the hub endpoint address the device talks to.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// DeviceDB contains local database connection settings for the device.
type DeviceDB struct {
	// DSN is the SQLite file path used by the device.
	DSN string
}

// DeviceStorage groups device storage backend settings.
type DeviceStorage struct {
	// DB holds local database settings.
	DB DeviceDB
}

// DeviceWorkers contains device background worker settings.
type DeviceWorkers struct {
	// SyncInterval defines how often the device sync worker runs.
	SyncInterval time.Duration
	// SyncFilters lists the partition prefixes the device replicates.
	SyncFilters []string
}

// DeviceConfig is the top-level device configuration assembled from
// [StructuredConfig].
type DeviceConfig struct {
	// App contains application-level device settings.
	App DeviceApp
	// Adapter contains device transport addresses and timeouts.
	Adapter DeviceAdapter
	// Storage contains device storage settings.
	Storage DeviceStorage
	// Workers contains background job settings.
	Workers DeviceWorkers
}

// GetDeviceConfig builds and validates a device-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the device runtime, and validates the resulting [DeviceConfig].
func GetDeviceConfig() (*DeviceConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	deviceCfg := &DeviceConfig{
		App: DeviceApp{
			InstanceID:    cfg.App.InstanceID,
			KeyPath:       cfg.App.KeyPath,
			CertChainPath: cfg.App.CertChainPath,
		},
		Adapter: DeviceAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: DeviceStorage{
			DB: DeviceDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: DeviceWorkers{
			SyncInterval: cfg.Workers.SyncInterval,
			SyncFilters:  cfg.Workers.SyncFilters,
		},
	}

	return deviceCfg, deviceCfg.validate()
}
