package main

import (
	"fmt"

	"github.com/jacksmith/shelf/internal/model"
	"github.com/jacksmith/shelf/internal/ops"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:               "show <id>",
	Short:             "Show a book",
	Args:              cobra.ExactArgs(1),
	RunE:              runShow,
	ValidArgsFunction: completeBookIDs,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := model.ParseID(args[0])
	if err != nil {
		return err
	}

	sh, err := openShelf()
	if err != nil {
		return err
	}
	defer sh.Close()

	book, ok := sh.books.Get(id)
	if !ok {
		return ops.LookupError(id)
	}

	fmt.Printf("ID:     %d\n", book.ID)
	fmt.Printf("Title:  %s\n", book.Title)
	fmt.Printf("Author: %s\n", book.Author)
	fmt.Printf("Year:   %d\n", book.Year)
	fmt.Printf("Status: %s\n", formatStatus(book))
	return nil
}
