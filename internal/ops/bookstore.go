// Package ops implements the bookshelf operations on top of a key-value Store.
package ops

import (
	"fmt"
	"time"

	"github.com/jacksmith/shelf/internal/model"
)

// BookStore is the in-memory, ordered book list mirrored to a Store.
// Every mutation rewrites the whole list under model.StorageKey.
//
// A BookStore is not safe for concurrent use; callers that serve
// concurrent requests must serialize access.
type BookStore struct {
	kv    Store
	key   string
	books []model.Book
	ids   *model.IDGenerator
}

// Option configures a BookStore.
type Option func(*BookStore)

// WithClock sets the clock used to generate book IDs.
func WithClock(now func() time.Time) Option {
	return func(bs *BookStore) {
		bs.ids = model.NewIDGenerator(now)
	}
}

// WithKey stores the list under a key other than model.StorageKey.
func WithKey(key string) Option {
	return func(bs *BookStore) {
		bs.key = key
	}
}

// NewBookStore returns an empty BookStore backed by kv. Call Load to restore persisted state.
func NewBookStore(kv Store, opts ...Option) *BookStore {
	bs := &BookStore{
		kv:    kv,
		key:   model.StorageKey,
		books: []model.Book{},
		ids:   model.NewIDGenerator(nil),
	}
	for _, opt := range opts {
		opt(bs)
	}
	return bs
}

// OpenBookStore returns a BookStore already loaded from kv.
func OpenBookStore(kv Store, opts ...Option) (*BookStore, error) {
	bs := NewBookStore(kv, opts...)
	if err := bs.Load(); err != nil {
		return nil, err
	}
	return bs, nil
}

// Key returns the storage key the list is persisted under.
func (bs *BookStore) Key() string {
	return bs.key
}

// Load replaces the in-memory list with the persisted one.
// Nothing stored means an empty list. Stored data that cannot be decoded
// returns *model.ParseError and leaves the in-memory list untouched.
func (bs *BookStore) Load() error {
	data, ok, err := bs.kv.Get(bs.key)
	if err != nil {
		return fmt.Errorf("failed to load books: %w", err)
	}
	if !ok {
		bs.books = []model.Book{}
		return nil
	}

	books, err := model.DecodeBooks(data)
	if err != nil {
		return err
	}

	bs.books = books
	for _, b := range books {
		bs.ids.Observe(b.ID)
	}
	return nil
}

// Save overwrites the persisted list with the in-memory one.
func (bs *BookStore) Save() error {
	data, err := model.EncodeBooks(bs.books)
	if err != nil {
		return err
	}
	if err := bs.kv.Set(bs.key, data); err != nil {
		return fmt.Errorf("failed to save books: %w", err)
	}
	return nil
}

// Add appends a new book with a fresh ID and saves.
// The caller is responsible for validating the fields.
func (bs *BookStore) Add(title, author string, year int, isComplete bool) (model.Book, error) {
	b := model.Book{
		ID:         bs.ids.Next(),
		Title:      title,
		Author:     author,
		Year:       year,
		IsComplete: isComplete,
	}
	bs.books = append(bs.books, b)
	if err := bs.Save(); err != nil {
		return model.Book{}, err
	}
	return b, nil
}

// ToggleComplete flips the read-status of the book with the given ID and saves.
// Returns false without saving if no such book exists.
func (bs *BookStore) ToggleComplete(id int64) (bool, error) {
	i := bs.indexOf(id)
	if i < 0 {
		return false, nil
	}
	bs.books[i].IsComplete = !bs.books[i].IsComplete
	return true, bs.Save()
}

// Delete removes the book with the given ID and saves.
// Returns false without saving if no such book exists.
func (bs *BookStore) Delete(id int64) (bool, error) {
	i := bs.indexOf(id)
	if i < 0 {
		return false, nil
	}
	bs.books = append(bs.books[:i], bs.books[i+1:]...)
	return true, bs.Save()
}

// Edit overwrites title, author and year of the book with the given ID and saves.
// All three fields change together; the store performs no validation.
// Returns false without saving if no such book exists.
func (bs *BookStore) Edit(id int64, title, author string, year int) (bool, error) {
	i := bs.indexOf(id)
	if i < 0 {
		return false, nil
	}
	bs.books[i].Title = title
	bs.books[i].Author = author
	bs.books[i].Year = year
	return true, bs.Save()
}

func (bs *BookStore) indexOf(id int64) int {
	for i := range bs.books {
		if bs.books[i].ID == id {
			return i
		}
	}
	return -1
}
