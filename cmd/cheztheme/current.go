package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/cheztheme/internal/palette"
)

var currentOpts struct {
	palette bool
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the active theme",
	Long: `Show the theme recorded in chezmoi.toml and when it last changed.

With --palette, every base16 slot is printed as "slot hex r g b".`,
	Args: cobra.NoArgs,
	RunE: runCurrent,
}

func init() {
	rootCmd.AddCommand(currentCmd)

	currentCmd.Flags().BoolVarP(&currentOpts.palette, "palette", "p", false,
		"Print the active palette")
}

func runCurrent(cmd *cobra.Command, args []string) error {
	h := newHost()

	themeCfg, err := h.ReadConfig(cmd.Context())
	if err != nil {
		return fmt.Errorf("no active theme: %w", err)
	}

	changed := ""
	if info, err := os.Stat(h.ConfigPath()); err == nil {
		changed = humanize.Time(info.ModTime())
	}

	out := cmd.OutOrStdout()
	if changed != "" {
		fmt.Fprintf(out, "%s (changed %s)\n", themeCfg.ThemeName, changed)
	} else {
		fmt.Fprintln(out, themeCfg.ThemeName)
	}

	if !currentOpts.palette {
		return nil
	}
	for i, hex := range themeCfg.Theme.Colors() {
		rgb, ok := palette.HexToRGB(hex)
		if !ok {
			rgb = "invalid"
		}
		fmt.Fprintf(out, "%s %s %s\n", palette.Slots[i], hex, rgb)
	}
	return nil
}
