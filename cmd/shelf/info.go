package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show where and how the shelf is stored",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	sh, err := openShelf()
	if err != nil {
		return err
	}
	defer sh.Close()

	version, err := sh.storage.Version()
	if err != nil {
		return err
	}
	keys, err := sh.backend.Keys()
	if err != nil {
		return err
	}

	result := sh.books.Query("")

	fmt.Printf("Shelf:    %s\n", sh.storage.ShelfPath())
	fmt.Printf("Format:   v%d\n", version)
	fmt.Printf("Backend:  %s\n", sh.config.Backend)
	if len(keys) == 0 {
		fmt.Println("Keys:     (none)")
	} else {
		fmt.Printf("Keys:     %s\n", strings.Join(keys, ", "))
	}
	fmt.Printf("Books:    %d (%d unfinished, %d finished)\n", result.Len(), len(result.Unfinished), len(result.Finished))
	return nil
}
