package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"seatly/internal/infra/db"
	"seatly/internal/infra/memstore"
	"seatly/internal/infra/repository"
	"seatly/internal/infra/seed"
	"seatly/internal/infra/uow"
	"seatly/internal/pkg/config"
	"seatly/internal/usecase/shared"

	"go.uber.org/fx"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	startupTimeout = 30 * time.Second
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork opens the document store selected by STORE_DRIVER and loads the seed catalogue, if any.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.UnitOfWork, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	switch cfg.Store.Driver {
	case DriverMemory:
		store := memstore.New()
		if err := applySeed(ctx, cfg.Store.SeedFile, store, logger); err != nil {
			return nil, err
		}
		logger.Warn("using in-memory store; reservations are lost on restart")
		return uow.NewMemoryUoW(store, cfg.Finalize), nil

	case DriverPostgres, "":
		pool, cleanup, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				if cleanup != nil {
					cleanup()
				}
				return nil
			},
		})

		if cfg.DB.AutoMigrate {
			if err := db.Migrate(ctx, pool); err != nil {
				cleanup()
				return nil, err
			}
			logger.Info("database schema applied")
		}
		if err := applySeed(ctx, cfg.Store.SeedFile, repository.NewCatalogRepository(pool), logger); err != nil {
			cleanup()
			return nil, err
		}
		return uow.NewPostgresUoW(pool, cfg.Finalize), nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
}

func applySeed(ctx context.Context, path string, w seed.CatalogWriter, logger *slog.Logger) error {
	if path == "" {
		return nil
	}
	catalog, err := seed.LoadFile(path)
	if err != nil {
		return err
	}
	if err := catalog.Apply(ctx, w); err != nil {
		return fmt.Errorf("failed to apply seed catalog: %w", err)
	}
	logger.Info("seed catalog loaded",
		"file", path,
		"bars", len(catalog.Bars),
		"matches", len(catalog.Matches),
		"promotions", len(catalog.Promotions))
	return nil
}
