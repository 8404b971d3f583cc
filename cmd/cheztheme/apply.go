package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cheztheme/internal/config"
)

var applyCmd = &cobra.Command{
	Use:   "apply <theme>",
	Short: "Apply a theme",
	Long: `Write a theme into chezmoi.toml, run chezmoi apply and reload terminals.

The previous chezmoi.toml is saved to the backup directory first unless
[apply] backup is disabled.

Examples:
  cheztheme apply gruvbox-dark
  cheztheme list --format names | fuzzel -d | xargs cheztheme apply`,
	Args:              cobra.ExactArgs(1),
	RunE:              runApply,
	ValidArgsFunction: completeThemeNames,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := newHost().ApplyTheme(cmd.Context(), name); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Applied %s\n", name)
	return nil
}

// completeThemeNames offers theme names for shell completion.
func completeThemeNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if cfg == nil {
		setupLogger()
		loaded, err := config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		cfg = loaded
	}

	entries, err := newHost().Catalog().Names()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
