// Package main provides the CLI entrypoint for cheztheme.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cheztheme/internal/config"
	"github.com/jmylchreest/cheztheme/internal/host"
	"github.com/jmylchreest/cheztheme/internal/palette"
	"github.com/jmylchreest/cheztheme/internal/panel"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		chezmoi    string
		themesDir  string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cheztheme",
	Short: "Base16 theme manager for chezmoi",
	Long: `cheztheme manages the base16 color theme stored in chezmoi.toml.

It lists built-in and custom themes, writes the chosen palette into the
[data.cheztheme] table, runs chezmoi apply and reloads running terminals.

Running cheztheme without a subcommand launches the interactive panel.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if globalOpts.chezmoi != "" {
			cfg.Chezmoi.Config = globalOpts.chezmoi
		}
		if globalOpts.themesDir != "" {
			cfg.Themes.Dir = globalOpts.themesDir
		}
		return nil
	},
	// Default to the panel when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPanel(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/cheztheme/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.chezmoi, "chezmoi-config", "",
		"Path to chezmoi.toml (default: ~/.config/chezmoi/chezmoi.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.themesDir, "themes-dir", "",
		"Directory of custom themes (default: ~/.local/share/chezmoi/themes)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// newHost wires the local host from the loaded config.
func newHost() *host.Local {
	return host.FromConfig(cfg, logger)
}

// loadPanel fetches the catalog and config once and returns the resulting
// panel. A config failure leaves no theme current; a catalog failure is
// returned.
func loadPanel(ctx context.Context, h panel.Host) (*panel.Panel, error) {
	p := panel.New(palette.NewMemorySink(), logger)

	catalog, err := h.ThemeNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}
	p.SetCatalog(catalog, nil)

	themeCfg, err := h.ReadConfig(ctx)
	if err != nil {
		logger.Debug("no active theme", "error", err)
	}
	p.SetConfig(themeCfg, err)
	return p, nil
}
