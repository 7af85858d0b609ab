package main

import (
	"fmt"

	"github.com/jacksmith/shelf/internal/ops"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Remove books from the shelf",
	Long: `Remove one or more books from the shelf.

Unknown IDs are reported; the remaining books are still removed.

Examples:
  shelf delete 1700000000001
  shelf rm 1700000000001 1700000000002`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runDelete,
	ValidArgsFunction: completeBookIDs,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	sh, err := openShelf()
	if err != nil {
		return err
	}
	defer sh.Close()

	return forEachID(args, func(id int64) error {
		book, ok := sh.books.Get(id)
		if !ok {
			return ops.LookupError(id)
		}
		if _, err := sh.books.Delete(id); err != nil {
			return err
		}
		fmt.Printf("%d %s deleted.\n", book.ID, book.Title)
		return nil
	})
}
