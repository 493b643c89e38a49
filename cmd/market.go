package cmd

import (
	"fmt"
	"os"

	"gamedata-wiki/feature/market"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// marketCmd represents the market command
var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Manage the market price table",
	Long:  `Loads the market price table from a Google Sheet, and imports or exports it as CSV.`,
}

// marketLoadCmd represents the market load command
var marketLoadCmd = &cobra.Command{
	Use:   "load [sheet-url]",
	Short: "Load prices from the cache or a Google Sheet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		ref := ""
		if len(args) == 1 {
			ref = args[0]
			force = true
		}

		svc, a, err := newMarketService()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		rows, err := svc.Load(cmd.Context(), ref, force)
		if err != nil {
			return err
		}
		a.logger.Info("Market table ready", zap.Int("rows", len(rows)), zap.String("backend", a.cfg.Market.CacheBackend))
		return nil
	},
}

// marketExportCmd represents the market export command
var marketExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the cached prices as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		svc, a, err := newMarketService()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if _, err := svc.Load(cmd.Context(), "", false); err != nil {
			return err
		}
		data, err := svc.Export()
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		a.logger.Info("Market prices exported", zap.String("file", out))
		return nil
	},
}

// marketImportCmd represents the market import command
var marketImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the prices with a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		svc, a, err := newMarketService()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		rows, err := svc.Import(cmd.Context(), data)
		if err != nil {
			return err
		}
		a.logger.Info("Market prices imported", zap.String("file", args[0]), zap.Int("rows", len(rows)))
		return nil
	},
}

func newMarketService() (*market.Service, *app, error) {
	a, err := newApp(true)
	if err != nil {
		return nil, nil, err
	}
	cache, err := market.NewCache(a.cfg.Market, a.store, a.cfg.Storage.Bucket, a.db)
	if err != nil {
		return nil, nil, fmt.Errorf("market cache unavailable: %w", err)
	}
	return market.NewService(a.holder, a.fetcher, cache, a.cfg.Market, a.logger), a, nil
}

func init() {
	RootCmd.AddCommand(marketCmd)
	marketCmd.AddCommand(marketLoadCmd, marketExportCmd, marketImportCmd)

	marketLoadCmd.Flags().Bool("force", false, "Ignore the cache and read the configured sheet")
	marketExportCmd.Flags().String("out", "market_prices.csv", "Output file")
}
