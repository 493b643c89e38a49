package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gamedata-wiki/feature/compare"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <version-a> <version-b>",
	Short: "Compare the item catalog of two releases",
	Long: `Diffs the item catalog of two release versions and prints the added, removed
and modified item counts. With --json the full result is saved to a file, with
--html the localized comparison view is saved instead.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		start := time.Now()
		jsonOutput, _ := cmd.Flags().GetBool("json")
		htmlOut, _ := cmd.Flags().GetString("html")
		lang, _ := cmd.Flags().GetString("lang")

		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		svc := compare.NewService(a.source, nil, a.cfg.Compare, a.holder, a.logger)
		report, err := svc.Compare(ctx, args[0], args[1])
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}

		if jsonOutput {
			filename := fmt.Sprintf("compare_%s_%s_%d.json", args[0], args[1], time.Now().Unix())
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if err := os.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("failed to save JSON file: %w", err)
			}
			a.logger.Info("Detailed JSON report saved", zap.String("file", filename))
		}

		if htmlOut != "" {
			var buf bytes.Buffer
			if err := compare.View(report, svc.Localizer(ctx, lang)).Render(ctx, &buf); err != nil {
				return err
			}
			if err := os.WriteFile(htmlOut, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("failed to save HTML file: %w", err)
			}
			a.logger.Info("Comparison view saved", zap.String("file", htmlOut))
		}

		fmt.Printf("\n=== Item Comparison %s -> %s ===\n", args[0], args[1])
		fmt.Printf("Added: %d\n", report.Summary.Added)
		fmt.Printf("Removed: %d\n", report.Summary.Removed)
		fmt.Printf("Modified: %d\n", report.Summary.Modified)
		fmt.Printf("Execution Time: %s\n", time.Since(start).String())
		return nil
	},
}

// versionsCmd represents the versions command
var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List the available release versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		versions, err := a.source.Versions(cmd.Context())
		if err != nil {
			return err
		}
		for _, v := range versions {
			fmt.Println(v)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(compareCmd, versionsCmd)
	compareCmd.Flags().Bool("json", false, "Save the detailed result as JSON")
	compareCmd.Flags().String("html", "", "Save the comparison view to this file")
	compareCmd.Flags().String("lang", "", "Language of the comparison view")
}
