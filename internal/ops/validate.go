package ops

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacksmith/shelf/internal/cli"
	"github.com/jacksmith/shelf/internal/model"
)

// ValidateTitle checks that a title is not blank.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &cli.ValidationError{Field: "title", Message: "must not be empty"}
	}
	return nil
}

// ValidateAuthor checks that an author is not blank.
func ValidateAuthor(author string) error {
	if strings.TrimSpace(author) == "" {
		return &cli.ValidationError{Field: "author", Message: "must not be empty"}
	}
	return nil
}

// ParseYear coerces user input to a year. Surrounding space is ignored.
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &cli.ValidationError{Field: "year", Message: "must not be empty"}
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, &cli.ValidationError{Field: "year", Message: fmt.Sprintf("%q is not a number", s)}
	}
	return year, nil
}

// ValidateBook checks the fields a user supplies when adding or editing a book.
// Callers run it before touching the store so an edit is all-or-nothing.
func ValidateBook(title, author string) error {
	if err := ValidateTitle(title); err != nil {
		return err
	}
	return ValidateAuthor(author)
}

// IssueType represents the type of integrity issue found in a stored list.
type IssueType string

const (
	IssueDuplicateID  IssueType = "duplicate_id"
	IssueInvalidID    IssueType = "invalid_id"
	IssueMissingTitle IssueType = "missing_title"
)

// Issue represents a data integrity problem in the stored list.
type Issue struct {
	Type    IssueType
	BookID  int64
	Message string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%d: %s - %s", i.BookID, i.Type, i.Message)
}

// Fix describes a repair applied by Repair.
type Fix struct {
	Type        IssueType
	BookID      int64
	Description string
}

// Check reports integrity problems in the loaded list: duplicate or
// non-positive IDs and blank titles. It never modifies the store.
func (bs *BookStore) Check() []Issue {
	var issues []Issue
	seen := make(map[int64]bool)

	for _, b := range bs.books {
		if b.ID <= 0 {
			issues = append(issues, Issue{
				Type:    IssueInvalidID,
				BookID:  b.ID,
				Message: fmt.Sprintf("book %q has a non-positive ID", b.Title),
			})
		} else if seen[b.ID] {
			issues = append(issues, Issue{
				Type:    IssueDuplicateID,
				BookID:  b.ID,
				Message: fmt.Sprintf("book %q shares its ID with an earlier book", b.Title),
			})
		}
		seen[b.ID] = true

		if strings.TrimSpace(b.Title) == "" {
			issues = append(issues, Issue{
				Type:    IssueMissingTitle,
				BookID:  b.ID,
				Message: "book has no title",
			})
		}
	}

	return issues
}

// Repair reassigns fresh IDs to books whose ID is invalid or duplicated,
// keeping the first occurrence of each ID, then saves if anything changed.
// Blank titles are reported by Check but left alone.
func (bs *BookStore) Repair() ([]Fix, error) {
	var fixes []Fix
	seen := make(map[int64]bool)

	for i := range bs.books {
		b := &bs.books[i]
		if b.ID > 0 && !seen[b.ID] {
			seen[b.ID] = true
			continue
		}
		oldID := b.ID
		issue := IssueDuplicateID
		if oldID <= 0 {
			issue = IssueInvalidID
		}
		b.ID = bs.ids.Next()
		seen[b.ID] = true
		fixes = append(fixes, Fix{
			Type:        issue,
			BookID:      b.ID,
			Description: fmt.Sprintf("reassigned %q from ID %d to %d", b.Title, oldID, b.ID),
		})
	}

	if len(fixes) == 0 {
		return nil, nil
	}
	if err := bs.Save(); err != nil {
		return nil, err
	}
	return fixes, nil
}

// LookupError returns a *cli.NotFoundError for a book ID.
func LookupError(id int64) error {
	return &cli.NotFoundError{Type: "book", ID: model.FormatID(id)}
}
