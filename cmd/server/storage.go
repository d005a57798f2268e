package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/config"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/db"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/kv"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/redis"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/storage"
)

// InitStorage selects where history exports are written.
func InitStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.UseSpaces {
		spacesStorage, err := storage.NewSpacesStorage(
			cfg.SpacesEndpoint,
			cfg.SpacesRegion,
			cfg.SpacesBucket,
			cfg.SpacesCDNURL,
			cfg.SpacesAccessKey,
			cfg.SpacesSecretKey,
		)
		if err != nil {
			return nil, fmt.Errorf("init spaces storage: %w", err)
		}
		log.Info().Str("cdn", cfg.SpacesCDNURL).Msg("using DigitalOcean Spaces for exports")
		return spacesStorage, nil
	}

	log.Info().Str("dir", cfg.ExportDir).Msg("using local file storage for exports")
	return storage.NewLocalStorage(cfg.ExportDir), nil
}

// InitRepository opens the configured per-client store. The returned
// closers release it and run in order on shutdown.
func InitRepository(ctx context.Context, cfg *config.Config) (kv.Repository, []func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		client, err := redis.InitRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		store, err := redis.NewStore(ctx, client)
		if err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis store: %w", err)
		}
		return store, []func() error{store.Close, client.Close}, nil

	case config.BackendPostgres:
		if err := db.Init(cfg.DatabaseURL); err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("db migrate: %w", err)
		}
		return db.NewStore(db.DB), []func() error{db.Close}, nil

	default:
		log.Info().Msg("using in-memory store; visitor data is lost on restart")
		return kv.NewMemory(), nil, nil
	}
}
