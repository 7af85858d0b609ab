package main

import (
	"errors"
	"fmt"

	"github.com/jacksmith/shelf/internal/cli"
	"github.com/jacksmith/shelf/internal/model"
	"github.com/jacksmith/shelf/internal/ops"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a book",
	Long: `Edit a book's title, author or year.

Fields without a flag keep their current value. All fields are validated
before anything changes. Use -i to edit the book as YAML in $EDITOR.

Examples:
  shelf edit 1700000000001 --title="Dune Messiah"
  shelf edit 1700000000001 --author="Frank Herbert" --year=1965
  shelf edit 1700000000001 -i`,
	Args:              cobra.ExactArgs(1),
	RunE:              runEdit,
	ValidArgsFunction: completeBookIDs,
}

var (
	editTitle       string
	editAuthor      string
	editYear        string
	editInteractive bool
)

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "set book title")
	editCmd.Flags().StringVar(&editAuthor, "author", "", "set book author")
	editCmd.Flags().StringVar(&editYear, "year", "", "set publication year")
	editCmd.Flags().BoolVarP(&editInteractive, "interactive", "i", false, "edit in $EDITOR")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	var fields *model.EditableBook
	if editInteractive {
		fields, err = editInteractively(book)
		if err != nil {
			return err
		}
	} else {
		fields, err = editFromFlags(cmd, book)
		if err != nil {
			return err
		}
	}

	if err := ops.ValidateBook(fields.Title, fields.Author); err != nil {
		return err
	}
	year, err := ops.ParseYear(fields.Year)
	if err != nil {
		return err
	}

	if fields.Title == book.Title && fields.Author == book.Author && year == book.Year {
		fmt.Println("No changes.")
		return nil
	}

	if _, err := sh.books.Edit(id, fields.Title, fields.Author, year); err != nil {
		return err
	}

	fmt.Printf("%d updated.\n", id)
	return nil
}

// editFromFlags overlays the changed flags on the current field values.
func editFromFlags(cmd *cobra.Command, book model.Book) (*model.EditableBook, error) {
	fields := &model.EditableBook{
		Title:  book.Title,
		Author: book.Author,
		Year:   fmt.Sprintf("%d", book.Year),
	}

	changed := false
	if cmd.Flags().Changed("title") {
		fields.Title = editTitle
		changed = true
	}
	if cmd.Flags().Changed("author") {
		fields.Author = editAuthor
		changed = true
	}
	if cmd.Flags().Changed("year") {
		fields.Year = editYear
		changed = true
	}

	if !changed {
		return nil, errors.New("no changes specified (use --title, --author, --year or -i)")
	}
	return fields, nil
}

func editInteractively(book model.Book) (*model.EditableBook, error) {
	content, err := model.MarshalEditable(book)
	if err != nil {
		return nil, err
	}

	edited, err := cli.EditInEditor(content, ".yaml")
	if err != nil {
		return nil, err
	}

	return model.UnmarshalEditable(edited)
}
