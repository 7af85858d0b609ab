package main

import (
	"fmt"
	"strings"

	"github.com/jacksmith/shelf/internal/cli"
	"github.com/jacksmith/shelf/internal/model"
	"github.com/jacksmith/shelf/internal/ops"
	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>...",
	Short: "Flip books between unfinished and finished",
	Long: `Flip the read-status of one or more books.

Unknown IDs are reported; the remaining books are still toggled.

Examples:
  shelf toggle 1700000000001
  shelf toggle 1700000000001 1700000000002`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runToggle,
	ValidArgsFunction: completeBookIDs,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(cmd *cobra.Command, args []string) error {
	sh, err := openShelf()
	if err != nil {
		return err
	}
	defer sh.Close()

	return forEachID(args, func(id int64) error {
		ok, err := sh.books.ToggleComplete(id)
		if err != nil {
			return err
		}
		if !ok {
			return ops.LookupError(id)
		}
		book, _ := sh.books.Get(id)
		fmt.Printf("%d %s: %s\n", book.ID, book.Title, formatStatus(book))
		return nil
	})
}

// forEachID runs fn for every ID argument and reports the failures.
// It returns an error only when every ID failed.
func forEachID(args []string, fn func(id int64) error) error {
	var failures []error
	for _, arg := range args {
		id, err := model.ParseID(arg)
		if err == nil {
			err = fn(id)
		}
		if err != nil {
			failures = append(failures, err)
		}
	}

	switch {
	case len(failures) == 0:
		return nil
	case len(failures) == 1 && len(args) == 1:
		return failures[0]
	case len(failures) == len(args):
		return fmt.Errorf("no books changed:\n  %s", joinErrors(failures))
	}

	fmt.Println()
	for _, err := range failures {
		fmt.Println(cli.FormatError(err))
	}
	return nil
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n  ")
}
