// Package main provides the schoolstock binary: an interactive inventory
// console plus batch export, summary and resource search commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/schoolstock/internal/app"
	"github.com/cory-johannsen/schoolstock/internal/config"
)

var (
	configPath string
	modulesDir string
	envFile    string
	verbose    bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "schoolstock",
	Short: "School furniture and equipment inventory",
	Long: `schoolstock records usable and broken furniture per classroom and lab,
totals it per grade and exports inventory reports as PDF, Excel or text.

Run without arguments to start the interactive console.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if modulesDir != "" {
			loaded.Catalog.ModulesDir = modulesDir
		}
		if verbose {
			loaded.Logging.Level = "debug"
		}
		cfg = loaded
		return nil
	},
	RunE: runConsole,
}

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start the interactive inventory console",
	Args:  cobra.NoArgs,
	RunE:  runConsole,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default: configs/schoolstock.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&modulesDir, "modules", "", "directory of module YAML files (overrides catalog.modules_dir)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(modulesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withApp assembles the application for one command and tears it down after.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := app.Initialize(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(ctx, a)
}

func runConsole(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		a.Logger.Debug("starting console", zap.String("modules_dir", cfg.Catalog.ModulesDir))
		return a.RunConsole(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	})
}
