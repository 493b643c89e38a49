package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"gamedata-wiki/core/catalog"
	"gamedata-wiki/core/database"
	"gamedata-wiki/core/loader"
	"gamedata-wiki/core/logger"
	"gamedata-wiki/core/middleware/auth"
	"gamedata-wiki/core/middleware/rayid"

	"gamedata-wiki/feature/compare"
	"gamedata-wiki/feature/integrity"
	"gamedata-wiki/feature/market"
	"gamedata-wiki/feature/tables"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "gamedata-wiki/docs/swagger"
)

// @title Game Data Wiki API
// @version 1.0
// @description Localized wiki tables, release comparison and market prices for game data.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the wiki server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Configuration, logger, storage and optional database
		a, err := newApp(true)
		if err != nil {
			return err
		}
		logg := a.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		cfg := a.cfg

		// 2. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 3. Market cache falls back to memory when its backend is unavailable
		cache, err := market.NewCache(cfg.Market, a.store, cfg.Storage.Bucket, a.db)
		if err != nil {
			logg.Warn("Market cache unavailable, keeping prices in memory", zap.Error(err))
			cache = &market.MemoryCache{}
		}

		// 4. Initialize Feature Loader
		mgr := loader.NewManager(logg)

		tablesFeature, err := tables.NewFeature(a.holder, cfg.Tables, logg)
		if err != nil {
			return err
		}
		mgr.Register(tablesFeature)
		mgr.Register(compare.NewFeature(a.source, nil, cfg.Compare, a.holder, logg))
		mgr.Register(market.NewFeature(a.holder, a.fetcher, cache, cfg.Market, logg))
		mgr.Register(integrity.NewFeature(a.store, cfg.Storage.Bucket, releasePrefix(cfg.Data), nil, a.db,
			[]database.Tabler{market.MarketPriceCache{}}, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray id
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth guards the mutating routes and structure fixes; pages stay public
		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Protect: func(c *fiber.Ctx) bool {
				return auth.UnsafeMethods(c) || c.QueryBool("fix")
			},
		}))
		if !cfg.Server.IsValidPublicURL() {
			logg.Warn("Public URL is not an absolute http(s) URL", zap.String("public_url", cfg.Server.PublicURL))
		}
		if !cfg.Server.AuthEnabled() {
			logg.Warn("No API key configured, mutating routes are open")
		}

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		// 6. Warm the session so the first page does not pay for it
		if _, err := a.holder.Get(cmd.Context()); err != nil {
			logg.Warn("Initial release load failed, retrying on first request", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()), zap.String("public_url", cfg.Server.PublicURL))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

// releasePrefix is the bucket prefix checked by integrity. Only the storage
// source reads releases from the bucket, the others use the default layout.
func releasePrefix(cfg catalog.Config) string {
	if cfg.Source == catalog.SourceStorage && cfg.Prefix != "" {
		return cfg.Prefix
	}
	return catalog.DefaultPrefix
}

func init() {
	RootCmd.AddCommand(startCmd)
}
