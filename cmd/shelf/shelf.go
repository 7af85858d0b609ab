package main

import (
	"os"

	"github.com/jacksmith/shelf/internal/cli"
	"github.com/jacksmith/shelf/internal/ops"
	"github.com/jacksmith/shelf/internal/storage"
)

// shelf bundles the opened storage, its config and the loaded book list.
type shelf struct {
	storage *storage.Storage
	config  *storage.Config
	backend storage.Backend
	books   *ops.BookStore
}

// openShelf opens the shelf in the current directory and loads its books.
func openShelf() (*shelf, error) {
	sh, err := openBackend()
	if err != nil {
		return nil, err
	}
	if err := sh.books.Load(); err != nil {
		sh.Close()
		return nil, err
	}
	return sh, nil
}

// openBackend opens the configured backend without loading, so commands
// like restore can run against a list that no longer decodes.
func openBackend() (*shelf, error) {
	s, err := storage.Open(".")
	if err != nil {
		return nil, err
	}

	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}
	cli.SetColorEnabled(cfg.Color && cli.IsTerminal(os.Stdout))

	backend, err := storage.OpenBackend(s, cfg)
	if err != nil {
		return nil, err
	}

	return &shelf{
		storage: s,
		config:  cfg,
		backend: backend,
		books:   ops.NewBookStore(backend),
	}, nil
}

func (sh *shelf) Close() error {
	return sh.backend.Close()
}
