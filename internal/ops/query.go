package ops

import (
	"strings"

	"github.com/jacksmith/shelf/internal/model"
)

// QueryResult holds the two partitions shown to the user, each in insertion order.
type QueryResult struct {
	Unfinished []model.Book `json:"unfinished"`
	Finished   []model.Book `json:"finished"`
}

// Len returns the total number of books in both partitions.
func (r QueryResult) Len() int {
	return len(r.Unfinished) + len(r.Finished)
}

// Query returns the books whose title contains filter, case-insensitively,
// split by read-status. An empty filter matches every book.
// Query never modifies the store and the returned slices are copies.
func (bs *BookStore) Query(filter string) QueryResult {
	filterLower := strings.ToLower(filter)
	result := QueryResult{
		Unfinished: []model.Book{},
		Finished:   []model.Book{},
	}

	for _, b := range bs.books {
		if !strings.Contains(strings.ToLower(b.Title), filterLower) {
			continue
		}
		if b.IsComplete {
			result.Finished = append(result.Finished, b)
		} else {
			result.Unfinished = append(result.Unfinished, b)
		}
	}

	return result
}

// Get returns a copy of the book with the given ID.
func (bs *BookStore) Get(id int64) (model.Book, bool) {
	i := bs.indexOf(id)
	if i < 0 {
		return model.Book{}, false
	}
	return bs.books[i], true
}

// Books returns a copy of the full list in insertion order.
func (bs *BookStore) Books() []model.Book {
	out := make([]model.Book, len(bs.books))
	copy(out, bs.books)
	return out
}

// Len returns the number of books.
func (bs *BookStore) Len() int {
	return len(bs.books)
}
