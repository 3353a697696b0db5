package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-peer-sync/internal/config"
	"github.com/MKhiriev/go-peer-sync/internal/crypto"
	"github.com/MKhiriev/go-peer-sync/internal/handler"
	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/internal/registry"
	"github.com/MKhiriev/go-peer-sync/internal/server"
	"github.com/MKhiriev/go-peer-sync/internal/service"
	"github.com/MKhiriev/go-peer-sync/internal/store"
	"github.com/MKhiriev/go-peer-sync/internal/utils"
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

	log := logger.NewLogger("peer-sync-hub")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	if cfg.App.InstanceID == "" {
		cfg.App.InstanceID = utils.NewUUIDGenerator().Generate()
		log.Warn().Str("instance_id", cfg.App.InstanceID).
			Msg("no instance ID configured, minted an ephemeral one; pin it in config to keep counters stable")
	}

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = migrations.Migrate(db.DB, "pgx"); err != nil {
		log.Fatal().Err(err).Msg("error migrating database")
	}

	keys, err := crypto.LoadOrCreateKeyRing(cfg.App.KeyPath)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading signing key")
	}

	reg := registry.New(log)
	storages := store.NewStorages(db, log)

	services, err := service.NewServices(ctx, storages, reg, keys, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err = seedTrustRoot(ctx, services.CertificateService, cfg.App, log); err != nil {
		log.Fatal().Err(err).Msg("error seeding trust root")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// seedTrustRoot mints and trusts the hub's self-signed root certificate so a
// fresh hub can validate device chains. Ed25519 signatures are deterministic,
// so re-minting the same scope under the same key converges on one root and
// restarts are idempotent. Device certificates are issued under this root via
// POST /api/certificates/, using the logged signature as the issuer.
func seedTrustRoot(ctx context.Context, certs service.CertificateService, cfg config.App, log *logger.Logger) error {
	if cfg.RootScope == "" {
		log.Warn().Msg("no root scope configured, trust store not seeded; devices cannot open sessions until a root is trusted")
		return nil
	}

	root, err := certs.IssueRoot(ctx, cfg.InstanceID, cfg.RootScope, []string{models.OperationRead, models.OperationWrite})
	if err != nil {
		return err
	}

	log.Info().
		Str("root_signature", root.Signature).
		Str("scope", root.Payload.Scope).
		Msg("trust root ready")

	return nil
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
