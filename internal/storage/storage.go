// Package storage provides the key-value backends that persist the shelf.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// shelfDir is the name of the shelf directory.
	shelfDir = ".shelf"
	// dataDir is the subdirectory holding one file per stored key.
	dataDir = "data"
	// configFile is the name of the format file within .shelf/.
	configFile = "config.yaml"
	// dataExt is the extension of stored values.
	dataExt = ".json"
)

// ErrNotInitialized is returned by Open when no .shelf/ directory exists.
var ErrNotInitialized = errors.New(".shelf/ directory not found (run `shelf init`)")

// StorageConfig contains settings stored in .shelf/config.yaml.
type StorageConfig struct {
	Version int `yaml:"version"`
}

// Storage is a file-backed key-value store rooted at a .shelf/ directory.
// Each key is a file under .shelf/data/, rewritten in full on every Set.
type Storage struct {
	root string // path to directory containing .shelf/
}

// Open returns a Storage for the given directory.
// Returns ErrNotInitialized if .shelf/ does not exist.
func Open(dir string) (*Storage, error) {
	path := filepath.Join(dir, shelfDir)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w in %s", ErrNotInitialized, dir)
		}
		return nil, fmt.Errorf("failed to access .shelf/: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(".shelf is not a directory")
	}

	return &Storage{root: dir}, nil
}

// Init creates the .shelf/ directory structure.
// Returns error if .shelf/ already exists.
func Init(dir string) (*Storage, error) {
	path := filepath.Join(dir, shelfDir)

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf(".shelf/ directory already exists in %s", dir)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check for .shelf/: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(path, dataDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create .shelf/data/: %w", err)
	}

	cfg := StorageConfig{Version: 1}
	cfgData, err := yaml.Marshal(&cfg)
	if err != nil {
		os.RemoveAll(path)
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(path, configFile), cfgData, 0644); err != nil {
		os.RemoveAll(path)
		return nil, fmt.Errorf("failed to write config.yaml: %w", err)
	}

	return &Storage{root: dir}, nil
}

// Root returns the root directory containing .shelf/.
func (s *Storage) Root() string {
	return s.root
}

// ShelfPath returns the path to the .shelf/ directory.
func (s *Storage) ShelfPath() string {
	return filepath.Join(s.root, shelfDir)
}

// Version reads the storage format version from .shelf/config.yaml.
func (s *Storage) Version() (int, error) {
	data, err := os.ReadFile(filepath.Join(s.ShelfPath(), configFile))
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", configFile, err)
	}
	var cfg StorageConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", configFile, err)
	}
	return cfg.Version, nil
}

// keyPath returns the file holding a key's value.
func (s *Storage) keyPath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.root, shelfDir, dataDir, key+dataExt), nil
}

// Get returns the value stored under key.
// The second result is false if nothing is stored under key.
func (s *Storage) Get(key string) ([]byte, bool, error) {
	path, err := s.keyPath(key)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Set overwrites the value stored under key.
func (s *Storage) Set(key string, value []byte) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(path, value, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key. Deleting a missing key is not an error.
func (s *Storage) Delete(key string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys returns all stored keys in sorted order.
func (s *Storage) Keys() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, shelfDir, dataDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), dataExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(entry.Name(), dataExt))
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op; files are not held open between calls.
func (s *Storage) Close() error {
	return nil
}
