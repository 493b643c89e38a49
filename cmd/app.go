package cmd

import (
	"context"
	"fmt"
	"time"

	"gamedata-wiki/core/catalog"
	"gamedata-wiki/core/config"
	"gamedata-wiki/core/database"
	"gamedata-wiki/core/fetch"
	"gamedata-wiki/core/i18n"
	"gamedata-wiki/core/logger"
	"gamedata-wiki/core/session"
	"gamedata-wiki/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles the dependencies shared by every command.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   storage.Client
	db      *gorm.DB
	fetcher fetch.Fetcher
	source  catalog.Source
	holder  *session.Holder
}

// newApp loads the configuration and builds the shared dependencies. The
// database is optional and only connected when withDB is set.
func newApp(withDB bool) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	// The client connects lazily, so it is safe to build without a server.
	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	a := &app{
		cfg:     cfg,
		logger:  logg,
		store:   store,
		fetcher: fetch.NewGetter(""),
	}

	if withDB {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			a.db = conn
			logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
		}
	}

	src, err := catalog.NewSource(cfg.Data, store, cfg.Storage.Bucket, a.fetcher)
	if err != nil {
		return nil, err
	}
	a.source = src
	a.holder = session.NewHolder(a.loadSession(cfg.Data.Version))
	return a, nil
}

// loadSession returns the session loader for version. Missing translations
// are logged and the partially loaded catalog is kept.
func (a *app) loadSession(version string) session.LoadFunc {
	return func(ctx context.Context) (*session.Session, error) {
		start := time.Now()
		bundle, err := catalog.Load(ctx, a.source, version, nil)
		if err != nil {
			return nil, err
		}

		cat, err := i18n.Load(ctx, a.cfg.I18n, a.cfg.Server.DefaultLanguage, a.store, a.cfg.Storage.Bucket, a.fetcher)
		if err != nil {
			a.logger.Warn("Translations partially loaded", zap.Error(err))
		}
		if cat == nil {
			cat = i18n.NewCatalog(a.cfg.Server.DefaultLanguage)
		}

		a.logger.Info("Release loaded",
			zap.String("version", bundle.Version),
			zap.Int("languages", len(cat.Languages())),
			zap.Duration("took", time.Since(start)),
		)
		return &session.Session{Version: bundle.Version, Bundle: bundle, Catalog: cat}, nil
	}
}

// withVersion swaps the session loader for one pinned to version.
func (a *app) withVersion(version string) {
	if version != "" {
		a.holder = session.NewHolder(a.loadSession(version))
	}
}
