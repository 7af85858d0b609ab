package main

import (
	"fmt"

	"github.com/jacksmith/shelf/internal/ops"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new book",
	Long: `Add a new book to the shelf.

Examples:
  shelf add "Dune" --author="Frank Herbert" --year=1965
  shelf add "Emma" --author="Jane Austen" --year=1815 --complete`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var (
	addAuthor   string
	addYear     string
	addComplete bool
)

func init() {
	addCmd.Flags().StringVarP(&addAuthor, "author", "a", "", "book author (required)")
	addCmd.Flags().StringVarP(&addYear, "year", "y", "", "publication year (required)")
	addCmd.Flags().BoolVarP(&addComplete, "complete", "c", false, "mark the book as finished")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := args[0]

	if err := ops.ValidateBook(title, addAuthor); err != nil {
		return err
	}
	year, err := ops.ParseYear(addYear)
	if err != nil {
		return err
	}

	sh, err := openShelf()
	if err != nil {
		return err
	}
	defer sh.Close()

	book, err := sh.books.Add(title, addAuthor, year, addComplete)
	if err != nil {
		return err
	}

	fmt.Printf("%d %s\n", book.ID, book.Title)
	return nil
}
