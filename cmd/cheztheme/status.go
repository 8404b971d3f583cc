package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/cheztheme/internal/palette"
	"github.com/jmylchreest/cheztheme/internal/theme"
)

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text    string `json:"text"`
	Alt     string `json:"alt,omitempty"`
	Tooltip string `json:"tooltip,omitempty"`
	Class   string `json:"class,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Output Waybar-compatible JSON status",
	Long: `Output the active theme in Waybar's custom module JSON format.

This is designed to be used with Waybar's custom module:

  "custom/theme": {
    "exec": "cheztheme status",
    "interval": 30,
    "return-type": "json",
    "on-click": "cheztheme-widget"
  }

The output includes:
  - text: Active theme name
  - alt: Theme kind (preset, custom), or none/error
  - tooltip: Variant and when the theme last changed
  - class: Same as alt`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	h := newHost()

	themeCfg, err := h.ReadConfig(cmd.Context())
	if err != nil {
		logger.Debug("no active theme", "error", err)
		return outputStatus(os.Stdout, WaybarStatus{Text: "", Alt: "none", Class: "none"})
	}

	var changed time.Time
	if info, err := os.Stat(h.ConfigPath()); err == nil {
		changed = info.ModTime()
	}

	var scheme *theme.Theme
	kind := theme.Kind("")
	if t, k, err := h.Catalog().Load(themeCfg.ThemeName); err == nil {
		scheme, kind = t, k
	}

	return outputStatus(os.Stdout, generateStatus(themeCfg, scheme, kind, changed))
}

// generateStatus builds the Waybar status for the active theme. scheme is
// nil when the theme is no longer in the catalog.
func generateStatus(cfg *palette.Config, scheme *theme.Theme, kind theme.Kind, changed time.Time) WaybarStatus {
	status := WaybarStatus{Text: cfg.ThemeName}

	var lines []string
	if scheme != nil {
		status.Alt = string(kind)
		if scheme.Variant != "" {
			lines = append(lines, fmt.Sprintf("%s (%s, %s)", cfg.ThemeName, kind, scheme.Variant))
		} else {
			lines = append(lines, fmt.Sprintf("%s (%s)", cfg.ThemeName, kind))
		}
		if scheme.Author != "" {
			lines = append(lines, "by "+scheme.Author)
		}
	} else {
		status.Alt = "missing"
		lines = append(lines, cfg.ThemeName+" (not in catalog)")
	}

	if err := cfg.Theme.Validate(); err != nil {
		status.Alt = "error"
		lines = append(lines, err.Error())
	}

	if !changed.IsZero() {
		lines = append(lines, "Changed "+humanize.Time(changed))
	}

	status.Class = status.Alt
	status.Tooltip = strings.Join(lines, "\n")
	return status
}

// outputStatus writes the status as JSON.
func outputStatus(w io.Writer, status WaybarStatus) error {
	encoder := json.NewEncoder(w)
	return encoder.Encode(status)
}
