// Package app assembles the store, repositories and services from config.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"talentcrm/internal/domain/access"
	"talentcrm/internal/domain/auth"
	"talentcrm/internal/domain/brand"
	"talentcrm/internal/domain/client"
	"talentcrm/internal/domain/contract"
	"talentcrm/internal/domain/deal"
	"talentcrm/internal/domain/employee"
	"talentcrm/internal/domain/people"
	"talentcrm/internal/domain/search"
	"talentcrm/internal/platform/config"
	"talentcrm/internal/platform/crypto"
	"talentcrm/internal/platform/docstore"
	"talentcrm/internal/platform/metrics"
	"talentcrm/internal/platform/seed"
	"talentcrm/internal/repository"
)

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.Collector
	Store   *docstore.Store
	Repos   *repository.Set

	Auth      *auth.Service
	People    *people.Service
	Employees *employee.Service
	Clients   *client.Service
	Brands    *brand.Service
	Deals     *deal.Service
	Contracts *contract.Service
	Search    *search.Service

	closer io.Closer
}

// New wires every component and, when enabled, applies the first-run seed.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	backend, closer, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}

	collector := metrics.New()
	store := docstore.New(backend, docstore.WithLogger(logger), docstore.WithMetrics(collector))
	repos := repository.NewSet(store)

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: collector,
		Store:   store,
		Repos:   repos,
		Auth: auth.NewService(repos, auth.Options{
			BcryptCost:    cfg.BcryptCost,
			SessionSecret: cfg.SessionSecret,
			SessionTTL:    cfg.SessionTTL,
			Logger:        logger,
			Metrics:       collector,
		}),
		People:    people.NewService(repos, logger),
		Employees: employee.NewService(repos, logger),
		Clients:   client.NewService(repos, logger),
		Brands:    brand.NewService(repos, logger),
		Deals:     deal.NewService(repos, logger),
		Contracts: contract.NewService(repos, logger),
		Search:    search.NewService(repos),
		closer:    closer,
	}

	if cfg.RunSeed {
		if _, err := seed.Run(ctx, repos, seed.Options{
			AdminUsername: cfg.SeedAdminUsername,
			AdminPassword: cfg.SeedAdminPassword,
			BcryptCost:    cfg.BcryptCost,
			Logger:        logger,
		}); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("seed failed: %w", err)
		}
	}
	return a, nil
}

func openBackend(cfg config.Config) (docstore.Backend, io.Closer, error) {
	var (
		backend docstore.Backend
		closer  io.Closer
	)
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		db, err := docstore.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		backend, closer = db, db
	default:
		backend = docstore.NewFileBackend(cfg.DataPath)
	}

	sealer, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, nil, err
	}
	if sealer.Configured() {
		backend = docstore.NewEncryptedBackend(backend, sealer)
	}
	return backend, closer, nil
}

// Policy snapshots the access policy from the current document.
func (a *App) Policy(ctx context.Context) (*access.Policy, error) {
	return access.Load(ctx, a.Repos)
}

// WriteMetrics dumps counters to the configured textfile, if any.
func (a *App) WriteMetrics() error {
	if a.Config.MetricsFile == "" {
		return nil
	}
	return a.Metrics.WriteTextfile(a.Config.MetricsFile)
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
