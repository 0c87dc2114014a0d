package main

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spendwise/internal/cli"
)

func (a *app) resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all budgets and transactions",
		Long: `Reset erases your salary, budgets, transactions and exchange rates and
restores the starter dataset. Your API key and model preference are kept.

A backup of the database is written first unless --no-backup is given.`,
		Args: cobra.NoArgs,
		RunE: a.runReset,
	}
	cmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")
	cmd.Flags().Bool("no-backup", false, "do not back up the database first")
	return cmd
}

func (a *app) runReset(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	force, _ := cmd.Flags().GetBool("force")
	noBackup, _ := cmd.Flags().GetBool("no-backup")

	if !force {
		outf(cmd, "This will delete all budgets and transactions.\n\nAre you sure you want to continue? [y/N]: ")
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			outln(cmd, "Reset canceled.")
			return nil
		}
	}

	store, cleanup, err := a.openStorage(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if !noBackup && store.Path() != ":memory:" {
		backup, backupErr := store.Backup(ctx, filepath.Join(filepath.Dir(store.Path()), "backups"), "reset")
		if backupErr != nil {
			return fmt.Errorf("failed to back up database: %w", backupErr)
		}
		outln(cmd, cli.FormatInfo("Backup written to "+backup.Path))
	}

	if err := store.Data().Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset data: %w", err)
	}

	outln(cmd, cli.FormatSuccess("Data reset to defaults"))
	return nil
}
