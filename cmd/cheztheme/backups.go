package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/cheztheme/internal/apply"
	"github.com/jmylchreest/cheztheme/internal/config"
	"github.com/jmylchreest/cheztheme/internal/host"
)

var backupsOpts struct {
	keep   int
	dryRun bool
}

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List chezmoi.toml backups",
	Long: `List the copies of chezmoi.toml saved before each theme change,
newest first.

Examples:
  # Show backups
  cheztheme backups

  # Put back an earlier chezmoi.toml (any unique ID prefix works)
  cheztheme backups restore 01JAB3

  # Keep only the 3 most recent backups
  cheztheme backups prune --keep 3`,
	Args: cobra.NoArgs,
	RunE: runBackupsList,
}

var backupsRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore chezmoi.toml from a backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupsRestore,
}

var backupsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old backups",
	Args:  cobra.NoArgs,
	RunE:  runBackupsPrune,
}

func init() {
	rootCmd.AddCommand(backupsCmd)
	backupsCmd.AddCommand(backupsRestoreCmd)
	backupsCmd.AddCommand(backupsPruneCmd)

	backupsPruneCmd.Flags().IntVar(&backupsOpts.keep, "keep", config.DefaultKeepBackups,
		"Number of backups to keep")
	backupsPruneCmd.Flags().BoolVar(&backupsOpts.dryRun, "dry-run", false,
		"Show what would be removed without actually removing")
}

func runBackupsList(cmd *cobra.Command, args []string) error {
	backups, err := apply.ListBackups(config.BackupPath())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(backups) == 0 {
		fmt.Fprintln(out, "No backups")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, b := range backups {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.ID, humanize.Time(b.Time()), humanize.Bytes(uint64(b.Size)))
	}
	return tw.Flush()
}

func runBackupsRestore(cmd *cobra.Command, args []string) error {
	b, err := apply.FindBackup(config.BackupPath(), args[0])
	if err != nil {
		return err
	}

	h := newHost()
	applier := host.NewApplier(cfg, h.Catalog(), logger)
	if err := applier.Restore(cmd.Context(), *b); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from %s\n", h.ConfigPath(), humanize.Time(b.Time()))
	return nil
}

func runBackupsPrune(cmd *cobra.Command, args []string) error {
	if backupsOpts.keep < 1 {
		return fmt.Errorf("--keep must be at least 1, got %d", backupsOpts.keep)
	}

	dir := config.BackupPath()
	out := cmd.OutOrStdout()

	if backupsOpts.dryRun {
		backups, err := apply.ListBackups(dir)
		if err != nil {
			return err
		}
		if len(backups) <= backupsOpts.keep {
			fmt.Fprintln(out, "Nothing to remove")
			return nil
		}
		for _, b := range backups[backupsOpts.keep:] {
			fmt.Fprintf(out, "Would remove %s (%s)\n", b.ID, humanize.Time(b.Time()))
		}
		return nil
	}

	removed, err := apply.PruneBackups(dir, backupsOpts.keep)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Removed %d backup(s)\n", removed)
	return nil
}
