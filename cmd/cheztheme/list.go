package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cheztheme/internal/adapter/output"
)

var listOpts struct {
	format   string
	template string
	color    bool
	noKind   bool
}

var listCmd = &cobra.Command{
	Use:   "list [search]",
	Short: "List available themes",
	Long: `List built-in presets and custom themes.

The active theme is marked with "*". An optional search term filters the list
by case-insensitive substring match.

Examples:
  # List every theme with palette swatches
  cheztheme list --color

  # Pick a theme with fuzzel and apply it
  cheztheme list --format names | fuzzel -d | xargs cheztheme apply

  # Output as JSON
  cheztheme list --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", "plain",
		"Output format (plain, json, names, dmenu)")
	listCmd.Flags().StringVar(&listOpts.template, "template", "",
		"Custom Go template for dmenu output")
	listCmd.Flags().BoolVar(&listOpts.color, "color", false,
		"Show truecolor palette swatches")
	listCmd.Flags().BoolVar(&listOpts.noKind, "no-kind", false,
		"Hide the preset/custom column")
}

func runList(cmd *cobra.Command, args []string) error {
	format := output.FormatType(listOpts.format)
	if !slices.Contains(output.ValidFormats(), format) {
		return fmt.Errorf("invalid format %q, must be one of: %v", listOpts.format, output.ValidFormats())
	}

	p, err := loadPanel(cmd.Context(), newHost())
	if err != nil {
		return err
	}
	if len(args) > 0 {
		p.SetSearch(args[0])
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = listOpts.template
	opts.Color = listOpts.color
	opts.ShowKind = !listOpts.noKind

	return output.NewFormatter(format, opts).Format(os.Stdout, p.Visible())
}
