package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/shelf/internal/cli"
	"github.com/jacksmith/shelf/internal/model"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list [filter]",
	Aliases: []string{"ls", "search"},
	Short:   "List books",
	Long: `List books, unfinished first, then finished.

The optional filter keeps books whose title contains it, ignoring case.
Books appear in the order they were added.

Examples:
  shelf list
  shelf search dune
  shelf list --show=fin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

const (
	showAll        = "all"
	showUnfinished = "unfinished"
	showFinished   = "finished"
)

var listShow string

func init() {
	listCmd.Flags().StringVar(&listShow, "show", showAll, "which books to show: all, unfinished or finished (prefix ok)")
	listCmd.RegisterFlagCompletionFunc("show", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{showAll, showUnfinished, showFinished}, cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	show, err := cli.MatchChoice(listShow, []string{showAll, showUnfinished, showFinished})
	if err != nil {
		return fmt.Errorf("--show: %w", err)
	}

	var filter string
	if len(args) > 0 {
		filter = args[0]
	}

	sh, err := openShelf()
	if err != nil {
		return err
	}
	defer sh.Close()

	result := sh.books.Query(filter)

	if show != showFinished {
		printSection("Unfinished", result.Unfinished, filter)
	}
	if show == showAll {
		fmt.Println()
	}
	if show != showUnfinished {
		printSection("Finished", result.Finished, filter)
	}
	return nil
}

func printSection(heading string, books []model.Book, filter string) {
	fmt.Printf("%s:\n", heading)
	if len(books) == 0 {
		if filter != "" {
			fmt.Println(cli.Gray(fmt.Sprintf("  No books matching %q.", filter)))
		} else {
			fmt.Println(cli.Gray("  No books."))
		}
		return
	}

	table := cli.NewTable()
	table.SetMaxWidth(2, cli.DefaultMaxTitleWidth)
	for _, b := range books {
		table.AddRow(
			"  "+cli.Gray(model.FormatID(b.ID)),
			fmt.Sprintf("%d", b.Year),
			b.Title,
			b.Author,
		)
	}
	table.Render(os.Stdout)
}

func formatStatus(b model.Book) string {
	if b.IsComplete {
		return cli.Green(b.Status())
	}
	return cli.Yellow(b.Status())
}
