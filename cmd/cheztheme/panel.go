package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/cheztheme/internal/tui"
)

var panelCmd = &cobra.Command{
	Use:     "panel",
	Aliases: []string{"tui"},
	Short:   "Launch the interactive theme panel",
	Long: `Launch the terminal theme picker.

The panel is colored with the active palette and follows changes to
chezmoi.toml, so applying a theme from anywhere restyles it.

Key bindings:
  j/k, ↑/↓    Navigate list
  enter       Apply the selected theme
  /           Search themes
  c           Copy the theme as YAML
  C           Copy the theme as JSON
  r           Refresh
  ?           Show help
  q           Quit`,
	Args: cobra.NoArgs,
	RunE: runPanel,
}

func init() {
	rootCmd.AddCommand(panelCmd)
}

func runPanel(cmd *cobra.Command, args []string) error {
	h := newHost()
	return tui.Run(tui.RunOptions{
		Host:      h,
		Config:    cfg,
		WatchPath: h.ConfigPath(),
		Logger:    logger,
	})
}
