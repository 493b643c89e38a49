package cmd

import (
	"context"
	"fmt"

	"gamedata-wiki/core/database"
	"gamedata-wiki/feature/integrity"
	"gamedata-wiki/feature/market"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the data storage",
	Long:  `Checks the bucket folder structure, the release bundles and the market cache schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// releasesCmd represents the integrity releases command
var releasesCmd = &cobra.Command{
	Use:   "releases",
	Short: "Check that every release bundle holds all datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the market cache table schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, releasesCmd, schemaCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Fix missing folders")
}

func runIntegrityChecks(ctx context.Context, runStructure, runReleases, runSchema bool) error {
	a, err := newApp(runSchema)
	if err != nil {
		return err
	}
	logg := a.logger
	defer logg.Sync()

	svc := integrity.NewService(a.store, a.cfg.Storage.Bucket, releasePrefix(a.cfg.Data), nil, a.db,
		[]database.Tabler{market.MarketPriceCache{}}, logg)

	failed := false

	if runStructure {
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			return fmt.Errorf("structure check failed: %w", err)
		}

		if len(missing) == 0 {
			logg.Info("Structure is intact.")
		} else {
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))

			if fixFlag {
				logg.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					return fmt.Errorf("failed to fix structure: %w", err)
				}
				logg.Info("Structure fixed successfully.")
			} else {
				failed = true
				logg.Info("Run 'integrity structure --fix' to create missing folders.")
			}
		}
	}

	if runReleases {
		logg.Info("Checking release bundles...")
		reports, err := svc.CheckReleases(ctx)
		if err != nil {
			return fmt.Errorf("release check failed: %w", err)
		}
		for _, r := range reports {
			if r.Status == "ok" {
				logg.Info("Release is complete", zap.String("version", r.Version))
				continue
			}
			failed = true
			logg.Warn("Release is incomplete",
				zap.String("version", r.Version),
				zap.Strings("missing", r.Missing),
				zap.String("error", r.Error),
			)
		}
	}

	if runSchema {
		logg.Info("Checking market cache schema...")
		report := svc.CheckSchema()
		if report.Matched {
			logg.Info("Schema matches expected definition.")
		} else {
			failed = true
			for table, tbl := range report.Tables {
				if tbl.Matched() {
					continue
				}
				if len(tbl.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
				}
				if len(tbl.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	if failed {
		return fmt.Errorf("integrity checks reported problems")
	}
	return nil
}
