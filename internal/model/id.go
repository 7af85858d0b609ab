package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidID is returned when an ID cannot be parsed.
var ErrInvalidID = errors.New("invalid ID format")

// IDGenerator hands out book IDs based on the wall clock in milliseconds.
// IDs are strictly increasing: two books created within the same
// millisecond, or after the clock moves backwards, still get distinct IDs.
type IDGenerator struct {
	now  func() time.Time
	last int64
}

// NewIDGenerator returns a generator reading the given clock.
// A nil clock means time.Now.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Observe records an existing ID so future IDs are greater than it.
func (g *IDGenerator) Observe(id int64) {
	if id > g.last {
		g.last = id
	}
}

// Next returns a fresh ID.
func (g *IDGenerator) Next() int64 {
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// ParseID parses a book ID as typed by a user.
func ParseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a valid book ID", ErrInvalidID, s)
	}
	return id, nil
}

// FormatID formats a book ID for display.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
