package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-peer-sync/internal/adapter"
	"github.com/MKhiriev/go-peer-sync/internal/config"
	"github.com/MKhiriev/go-peer-sync/internal/crypto"
	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/internal/registry"
	"github.com/MKhiriev/go-peer-sync/internal/service"
	"github.com/MKhiriev/go-peer-sync/internal/store"
	"github.com/MKhiriev/go-peer-sync/internal/utils"
	"github.com/MKhiriev/go-peer-sync/internal/workers"
	"github.com/MKhiriev/go-peer-sync/migrations"
	"github.com/MKhiriev/go-peer-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewDeviceLogger("peer-sync-device")
	cfg, err := config.GetDeviceConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.App.InstanceID == "" {
		cfg.App.InstanceID = utils.NewUUIDGenerator().Generate()
		log.Warn().Str("instance_id", cfg.App.InstanceID).
			Msg("no instance ID configured, minted an ephemeral one; pin it in config to keep counters stable")
	}

	ctx := context.Background()

	db, err := store.NewConnectSQLite(ctx, config.DB{DSN: cfg.Storage.DB.DSN}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening local database")
	}
	defer db.Close()

	if err = migrations.Migrate(db.DB, "sqlite3"); err != nil {
		log.Fatal().Err(err).Msg("error migrating local database")
	}

	keys, err := crypto.LoadOrCreateKeyRing(cfg.App.KeyPath)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading signing key")
	}

	reg := registry.New(log)
	storages := store.NewStorages(db, log)

	records, err := service.NewRecordService(ctx, storages, reg, cfg.App.InstanceID, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating record service")
	}
	syncService := service.NewSyncService(storages, reg, cfg.App.InstanceID, log)

	peer := adapter.NewHTTPPeerAdapter(adapter.HTTPClientConfig{
		BaseURL: cfg.Adapter.HTTPAddress,
		Timeout: cfg.Adapter.RequestTimeout,
	})

	chain, err := loadCertificateChain(cfg.App.CertChainPath)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading certificate chain")
	}
	if len(chain) == 0 || chain[0].Payload.PublicKey != keys.PublicKeyHex() {
		log.Fatal().Msg("certificate chain leaf does not match the local signing key")
	}

	if err = peer.OpenSession(ctx, chain); err != nil {
		log.Fatal().Err(err).Msg("error opening session with hub")
	}
	log.Info().Str("peer", peer.PeerID()).Msg("session opened")

	// The worker keeps the chain so it can reopen the session when the
	// token expires between rounds.
	worker := workers.NewSyncWorker(records, syncService, peer, chain, config.Workers{
		SyncInterval: cfg.Workers.SyncInterval,
		SyncFilters:  cfg.Workers.SyncFilters,
	}, log)

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	worker.Start(runCtx)

	<-runCtx.Done()
	worker.Stop()
	log.Info().Msg("device shut down gracefully")
}

// loadCertificateChain reads the certificate chain (leaf first) the device
// presents when opening a session.
func loadCertificateChain(path string) ([]models.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read certificate chain: %w", err)
	}

	var chain []models.Certificate
	if err = json.Unmarshal(data, &chain); err != nil {
		return nil, fmt.Errorf("decode certificate chain: %w", err)
	}

	return chain, nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
