package infrastructure

import (
	"context"
	"fmt"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"moodcanvas-server/internal/config"
	"moodcanvas-server/internal/domain/diary"
	"moodcanvas-server/internal/domain/generation"
	"moodcanvas-server/internal/domain/session"
	"moodcanvas-server/internal/domain/user"
	"moodcanvas-server/internal/infrastructure/auth"
	"moodcanvas-server/internal/infrastructure/crontab"
	"moodcanvas-server/internal/infrastructure/database"
	"moodcanvas-server/internal/infrastructure/database/repository"
	"moodcanvas-server/internal/infrastructure/imaging"
	"moodcanvas-server/internal/infrastructure/kvstore"
	"moodcanvas-server/internal/infrastructure/logger"
	"moodcanvas-server/internal/infrastructure/metrics"
	"moodcanvas-server/internal/infrastructure/providers"
	"moodcanvas-server/internal/infrastructure/storage"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideLogger builds the root logger from configuration
func ProvideLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(cfg)
}

// ProvideDatabase connects to Postgres and applies pending migrations
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, func(), error) {
	db, err := database.Connect(context.Background(), database.ConfigFrom(cfg), log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	log.Info().Msg("Running database migrations...")
	if err := database.Migrate(context.Background(), db, log); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}
	log.Info().Msg("Database migrations completed successfully")

	return db, cleanup, nil
}

// ProvideSessionStore selects the in-process or Redis backed key/value store
func ProvideSessionStore(cfg *config.Config, log zerolog.Logger) (session.Store, func(), error) {
	if cfg.Session.Store == "redis" {
		store, err := kvstore.NewRedisStore(context.Background(), cfg.RedisURL, log)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}

	store, err := kvstore.NewMemoryStore(cfg.Session.MemoryCapacity)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}

// ProvideImageStorage selects the local or S3 image backend
func ProvideImageStorage(cfg *config.Config, log zerolog.Logger) (storage.ImageStorage, error) {
	return storage.New(context.Background(), cfg, log)
}

// ProvideCompressor returns nil when compression is switched off.
func ProvideCompressor(cfg *config.Config) generation.Compressor {
	if !cfg.Imaging.CompressionEnabled {
		return nil
	}
	return imaging.NewCompressor(cfg.Imaging)
}

// ProvideProviderChains instantiates every configured AI vendor
func ProvideProviderChains(cfg *config.Config, log zerolog.Logger) providers.Chains {
	return providers.BuildChains(cfg, log)
}

// ProvideAvailability exposes which vendors were configured
func ProvideAvailability(chains providers.Chains) generation.Availability {
	return chains.Availability
}

// ProvideOrchestrator builds the fallback chains over the configured vendors
func ProvideOrchestrator(cfg *config.Config, chains providers.Chains, recorder generation.Recorder, log zerolog.Logger) *generation.Orchestrator {
	retry := generation.RetryPolicy{
		MaxAttempts: cfg.Generation.ImageRetryAttempts,
		Delay:       cfg.Generation.ImageRetryDelay,
	}
	return generation.NewOrchestrator(chains.Text, chains.Image, retry, recorder, log)
}

// ProvideImageWriter persists generated images through the configured backend
func ProvideImageWriter(images storage.ImageStorage, compressor generation.Compressor, recorder generation.Recorder, log zerolog.Logger) *generation.ImageWriter {
	return generation.NewImageWriter(images, compressor, recorder, log)
}

// ProvideOrphanSweeper removes stored images no diary references
func ProvideOrphanSweeper(cfg *config.Config, repo diary.Repository, images storage.ImageStorage, recorder diary.SweepRecorder, log zerolog.Logger) *diary.OrphanSweeper {
	return diary.NewOrphanSweeper(repo, images, cfg.OrphanSweep.MinAge, recorder, log)
}

// ProvideTokenIssuer signs session tokens with SESSION_SECRET
func ProvideTokenIssuer(cfg *config.Config) *auth.TokenIssuer {
	return auth.NewTokenIssuer(cfg.Session.Secret, cfg.ServiceName)
}

// ProvideJWKSValidator provides the external identity validator
func ProvideJWKSValidator(cfg *config.Config, log zerolog.Logger) (*auth.Validator, func(), error) {
	validator, err := auth.NewValidator(context.Background(), cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("load jwks: %w", err)
	}
	return validator, validator.Close, nil
}

// ProvideAuthenticator resolves session and external tokens into principals
func ProvideAuthenticator(
	issuer *auth.TokenIssuer,
	sessions *session.Manager,
	validator *auth.Validator,
	users *user.Service,
	log zerolog.Logger,
) *auth.Authenticator {
	return auth.NewAuthenticator(issuer, sessions, validator, users, log)
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,
	ProvideLogger,

	// Metrics
	metrics.NewRecorder,
	wire.Bind(new(generation.Recorder), new(*metrics.Recorder)),
	wire.Bind(new(diary.SweepRecorder), new(*metrics.Recorder)),

	// Database
	ProvideDatabase,
	repository.RepositoryProvider,

	// Session state
	ProvideSessionStore,

	// Images
	ProvideImageStorage,
	ProvideCompressor,
	ProvideImageWriter,
	ProvideOrphanSweeper,

	// AI vendors
	ProvideProviderChains,
	ProvideAvailability,
	ProvideOrchestrator,

	// Auth
	ProvideTokenIssuer,
	ProvideJWKSValidator,
	ProvideAuthenticator,

	// Crontab for orphan image sweeps
	crontab.NewCrontab,
)
