package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/shelf/internal/model"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the stored book list",
	Long: `Print the book list exactly as it is stored, as a JSON array.

With --yaml the list is printed as YAML instead. Nothing is printed if
the shelf has never been written.`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

var dumpYAML bool

func init() {
	dumpCmd.Flags().BoolVar(&dumpYAML, "yaml", false, "print as YAML")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	sh, err := openBackend()
	if err != nil {
		return err
	}
	defer sh.Close()

	data, ok, err := sh.backend.Get(sh.books.Key())
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if !dumpYAML {
		os.Stdout.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			fmt.Println()
		}
		return nil
	}

	books, err := model.DecodeBooks(data)
	if err != nil {
		return err
	}
	out, err := model.MarshalBooksYAML(books)
	if err != nil {
		return err
	}
	os.Stdout.Write(out)
	return nil
}
