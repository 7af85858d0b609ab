package main

import (
	"fmt"

	"github.com/jacksmith/shelf/internal/ops"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the stored book list to its backup",
	Long: `Copy the stored book list to a backup stored alongside it in the same
backend. An existing backup is overwritten. "shelf serve" can take backups
on a schedule; see backup_schedule in .shelfconfig.yaml.`,
	Args: cobra.NoArgs,
	RunE: runBackup,
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the book list with its backup",
	Long: `Replace the stored book list with the last backup.

Works even when the current list can no longer be read.`,
	Args: cobra.NoArgs,
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	sh, err := openBackend()
	if err != nil {
		return err
	}
	defer sh.Close()

	n, err := sh.books.Backup()
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Println("Nothing to back up.")
		return nil
	}
	fmt.Printf("Backed up %d book(s) to %s.\n", n, ops.BackupKey(sh.books.Key()))
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	sh, err := openBackend()
	if err != nil {
		return err
	}
	defer sh.Close()

	n, err := sh.books.Restore()
	if err != nil {
		return err
	}
	fmt.Printf("Restored %d book(s) from %s.\n", n, ops.BackupKey(sh.books.Key()))
	return nil
}
