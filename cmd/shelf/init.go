package main

import (
	"fmt"

	"github.com/jacksmith/shelf/internal/storage"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new shelf",
	Long: `Create a .shelf/ directory in the current directory.

Books are stored in .shelf/data/ by default. To use another backend, create
a .shelfconfig.yaml next to .shelf/, for example:

  backend: sqlite
  sqlite_path: .shelf/shelf.db

Fails if .shelf/ already exists in the current directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := storage.Init("."); err != nil {
		return err
	}
	fmt.Println("Initialized shelf in .shelf/")
	return nil
}
