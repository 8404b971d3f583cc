package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cheztheme/internal/export"
	"github.com/jmylchreest/cheztheme/internal/palette"
	"github.com/jmylchreest/cheztheme/internal/panel"
	"github.com/jmylchreest/cheztheme/internal/watch"
)

var watchOpts struct {
	output string
	once   bool
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Export the active palette as CSS and keep it current",
	Long: `Write the active palette to a CSS file as --color-base00 … --color-base0F
custom properties, and rewrite it whenever chezmoi.toml changes.

The file can be imported from waybar, GTK or web stylesheets:

  @import url("file:///home/me/.cache/cheztheme/colors.css");

With --once the file is written a single time and the command exits.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOpts.output, "output", "o", "",
		"CSS output path (default: [export] path, ~/.cache/cheztheme/colors.css)")
	watchCmd.Flags().BoolVar(&watchOpts.once, "once", false,
		"Export once and exit")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := cfg.ExportPath()
	if watchOpts.output != "" {
		path = watchOpts.output
	}
	sink := export.NewCSSFileSink(path)
	h := newHost()

	if watchOpts.once {
		themeCfg, err := h.ReadConfig(cmd.Context())
		if err != nil {
			return fmt.Errorf("no active theme: %w", err)
		}
		palette.Resolve(themeCfg.Theme, sink, logger)
		if err := sink.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", path, themeCfg.ThemeName)
		return nil
	}

	session := panel.NewSession(h, sink, logger)
	var written string
	session.OnUpdate(func(v panel.View) {
		css := string(sink.Render())
		if !v.HasConfig || css == written {
			return
		}
		if err := sink.Flush(); err != nil {
			logger.Error("failed to export palette", "path", path, "error", err)
			return
		}
		written = css
		logger.Info("exported palette", "theme", v.Current, "path", path)
	})

	watcher, err := watch.NewFileWatcher(h.ConfigPath(), session.ConfigChanged, logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to watch %s: %w", h.ConfigPath(), err)
	}
	defer func() { _ = watcher.Stop() }()

	session.Mount()
	err = session.Run(cmd.Context())
	if cmd.Context().Err() != nil {
		return nil
	}
	return err
}
