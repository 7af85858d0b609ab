package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// Backend names accepted in the `backend` config key.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// ErrUnknownBackend is returned when the configured backend name is not recognized.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Backend is a key-value store holding the shelf's persisted state.
type Backend interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

var (
	_ Backend = (*Storage)(nil)
	_ Backend = (*MemoryKV)(nil)
	_ Backend = (*SQLiteKV)(nil)
	_ Backend = (*PostgresKV)(nil)
)

// OpenBackend returns the backend selected by cfg for the shelf rooted at s.
// The file backend is s itself.
func OpenBackend(s *Storage, cfg *Config) (Backend, error) {
	switch cfg.Backend {
	case "", BackendFile:
		return s, nil
	case BackendSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = DefaultSQLitePath
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.Root(), path)
		}
		return OpenSQLite(path)
	case BackendPostgres:
		return OpenPostgres(context.Background(), cfg.PostgresDSN)
	case BackendMemory:
		return NewMemoryKV()
	default:
		return nil, fmt.Errorf("%w %q (expected file, sqlite, postgres or memory)", ErrUnknownBackend, cfg.Backend)
	}
}
