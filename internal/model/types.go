// Package model defines the core data structures for shelf.
package model

import "fmt"

// StorageKey is the key under which the whole book list is persisted.
const StorageKey = "bookshelf_apps"

// Book represents a single catalog record.
type Book struct {
	ID         int64  `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Author     string `json:"author" yaml:"author"`
	Year       int    `json:"year" yaml:"year"`
	IsComplete bool   `json:"isComplete" yaml:"is_complete"`
}

// Status returns the read-status label used in list views.
func (b Book) Status() string {
	if b.IsComplete {
		return "finished"
	}
	return "unfinished"
}

// String returns a one-line description of the book.
func (b Book) String() string {
	return fmt.Sprintf("%d %s (%s, %d)", b.ID, b.Title, b.Author, b.Year)
}
