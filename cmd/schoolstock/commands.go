package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/schoolstock/internal/app"
	"github.com/cory-johannsen/schoolstock/internal/report"
	"github.com/cory-johannsen/schoolstock/internal/resources"
)

var (
	exportFormat string
	exportDir    string

	summaryModule  string
	summaryTitle   string
	summaryClasses string
	summaryItems   string
	summaryFormat  string
	summaryDir     string
)

var exportCmd = &cobra.Command{
	Use:   "export [module...]",
	Short: "Export inventory reports for the seeded modules",
	Long: `Export one report per module, rendered concurrently. With no arguments
every module that has rooms is exported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, dir, err := outputFlags(exportFormat, exportDir)
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			paths, err := a.ExportModules(ctx, args, f, dir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		})
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate a quick class summary report",
	Long: `Generate a summary table with one row per class and one column per item.
Without --classes and --items the defaults of --module are used.

Example:
  schoolstock summary --classes "6A, 6B" --items "Chairs=30, Desks=15"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, dir, err := outputFlags(summaryFormat, summaryDir)
		if err != nil {
			return err
		}
		classes := report.ParseClassNames(summaryClasses)
		var items []report.SummaryItem
		if strings.TrimSpace(summaryItems) != "" {
			if items, err = report.ParseSummaryItems(summaryItems); err != nil {
				return err
			}
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			path, err := a.ExportSummary(ctx, summaryModule, summaryTitle, classes, items, f, dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for school resources with the configured model",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			st, err := a.Search(ctx, query)
			if errors.Is(err, resources.ErrNoProvider) {
				return fmt.Errorf("resource search is not configured: set resources.api_key or %s", apiKeyHint(cfg.Resources.Provider))
			}
			if err != nil {
				a.Logger.Debug("search failed", zap.Error(err))
				return errors.New(st.Err)
			}
			return printResources(cmd, st)
		})
	},
}

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the loaded inventory modules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			for _, b := range a.Shelf.Books() {
				m := b.Module()
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %-16s %2d rooms  %s\n", m.ID, m.Title, len(b.Rooms().Rooms()), m.FileStem)
			}
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "output format: pdf, xlsx or text (default: report.default_format)")
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "", "output directory (default: report.output_dir)")

	summaryCmd.Flags().StringVarP(&summaryModule, "module", "m", "", "module whose summary defaults are used")
	summaryCmd.Flags().StringVar(&summaryTitle, "title", "", "report title")
	summaryCmd.Flags().StringVar(&summaryClasses, "classes", "", "comma-separated class names")
	summaryCmd.Flags().StringVar(&summaryItems, "items", "", "comma-separated name=quantity pairs")
	summaryCmd.Flags().StringVarP(&summaryFormat, "format", "f", "", "output format: pdf, xlsx or text (default: report.default_format)")
	summaryCmd.Flags().StringVarP(&summaryDir, "out", "o", "", "output directory (default: report.output_dir)")
}

// outputFlags resolves the format and directory flags against the config.
func outputFlags(format, dir string) (report.Format, string, error) {
	if format == "" {
		format = cfg.Report.DefaultFormat
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return "", "", err
	}
	if dir == "" {
		dir = cfg.Report.OutputDir
	}
	return f, dir, nil
}

func apiKeyHint(provider string) string {
	switch provider {
	case resources.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}

// printResources renders results as markdown.
func printResources(cmd *cobra.Command, st resources.State) error {
	if len(st.Results) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No resources found for %q.\n", st.Query)
		return nil
	}
	var md strings.Builder
	fmt.Fprintf(&md, "# Resources for %q\n\n", st.Query)
	for _, r := range st.Results {
		fmt.Fprintf(&md, "## %s\n*%s*\n\n%s\n\n", r.Title, r.Category, r.Summary)
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(cfg.Console.Width)}
	if cfg.Console.Color {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return err
	}
	out, err := r.Render(md.String())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
