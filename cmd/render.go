package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gamedata-wiki/feature/tables"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render [dataset]",
	Short: "Render the wiki page or one table",
	Long: `Renders every table of a release into a standalone HTML page, or a single
table when a dataset name is given. Use --json to print the formatted rows instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		lang, _ := cmd.Flags().GetString("lang")
		version, _ := cmd.Flags().GetString("version")
		out, _ := cmd.Flags().GetString("out")
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.logger.Sync()
		a.withVersion(version)

		feature, err := tables.NewFeature(a.holder, a.cfg.Tables, a.logger)
		if err != nil {
			return err
		}
		svc := feature.Service()

		lang, err = svc.ResolveLang(ctx, lang)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if len(args) == 1 {
			rendered, err := svc.Render(ctx, args[0], lang)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(&buf)
				enc.SetIndent("", "  ")
				if err := enc.Encode(rendered); err != nil {
					return err
				}
			} else {
				buf.WriteString(rendered.HTML)
			}
		} else {
			rendered, err := svc.RenderAll(ctx, lang)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(&buf)
				enc.SetIndent("", "  ")
				if err := enc.Encode(rendered); err != nil {
					return err
				}
			} else {
				current, err := svc.Version(ctx)
				if err != nil {
					return err
				}
				langs, err := svc.Languages(ctx)
				if err != nil {
					return err
				}
				loc, err := svc.Localizer(ctx, lang)
				if err != nil {
					return err
				}
				page := tables.Page(tables.PageData{Lang: lang, Version: current, Languages: langs, Tables: rendered, Loc: loc})
				if err := page.Render(ctx, &buf); err != nil {
					return err
				}
			}
		}

		if out == "" {
			_, err = os.Stdout.Write(buf.Bytes())
			return err
		}
		if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		a.logger.Info("Rendered output saved", zap.String("file", out), zap.String("lang", lang))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(renderCmd)
	renderCmd.Flags().String("lang", "", "Language code (default language when empty)")
	renderCmd.Flags().String("version", "", "Release version (configured or newest when empty)")
	renderCmd.Flags().String("out", "", "Output file (stdout when empty)")
	renderCmd.Flags().Bool("json", false, "Print formatted rows as JSON")
}
