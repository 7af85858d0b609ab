// Package server exposes a shelf over HTTP and runs its background jobs.
package server

import (
	"sync"

	"github.com/jacksmith/shelf/internal/ops"
)

// Shelf serializes access to a BookStore shared by request handlers and
// scheduled jobs.
type Shelf struct {
	mu    sync.Mutex
	books *ops.BookStore
}

// NewShelf wraps a loaded BookStore.
func NewShelf(books *ops.BookStore) *Shelf {
	return &Shelf{books: books}
}

// Do runs fn while holding the shelf lock.
func (s *Shelf) Do(fn func(bs *ops.BookStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.books)
}

// Len returns the number of books on the shelf.
func (s *Shelf) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books.Len()
}
