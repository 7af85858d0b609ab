package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jacksmith/shelf/internal/cli"
	"github.com/jacksmith/shelf/internal/model"
	"github.com/jacksmith/shelf/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestShelf initializes an empty shelf in a temp dir and changes into it.
func setupTestShelf(t *testing.T) *storage.Storage {
	t.Helper()

	dir := t.TempDir()
	testChdir(t, dir)
	t.Setenv("SHELF_BACKEND", "")
	t.Setenv("VISUAL", "")

	s, err := storage.Init(dir)
	require.NoError(t, err)

	resetFlags()
	t.Cleanup(resetFlags)
	return s
}

// setupTestShelfWithData adds a fixed set of books and returns them in order.
func setupTestShelfWithData(t *testing.T) (*storage.Storage, []model.Book) {
	t.Helper()
	s := setupTestShelf(t)

	books := []model.Book{
		{ID: 1700000000001, Title: "Dune", Author: "Frank Herbert", Year: 1965},
		{ID: 1700000000002, Title: "Dune Messiah", Author: "Frank Herbert", Year: 1969, IsComplete: true},
		{ID: 1700000000003, Title: "Emma", Author: "Jane Austen", Year: 1815},
		{ID: 1700000000004, Title: "The Hobbit", Author: "J.R.R. Tolkien", Year: 1937, IsComplete: true},
	}
	writeBooks(t, s, books)
	return s, books
}

func writeBooks(t *testing.T, s *storage.Storage, books []model.Book) {
	t.Helper()
	data, err := model.EncodeBooks(books)
	require.NoError(t, err)
	require.NoError(t, s.Set(model.StorageKey, data))
}

func readBooks(t *testing.T, s *storage.Storage) []model.Book {
	t.Helper()
	data, ok, err := s.Get(model.StorageKey)
	require.NoError(t, err)
	if !ok {
		return nil
	}
	books, err := model.DecodeBooks(data)
	require.NoError(t, err)
	return books
}

func resetFlags() {
	addAuthor, addYear, addComplete = "", "", false
	editTitle, editAuthor, editYear, editInteractive = "", "", "", false
	for _, name := range []string{"title", "author", "year", "interactive"} {
		editCmd.Flags().Lookup(name).Changed = false
	}
	listShow = showAll
	dumpYAML = false
	validateFix = false
}

// captureOutput returns what fn wrote to stdout.
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	os.Stdout = old

	return buf.String(), runErr
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)

	output, err := captureOutput(t, func() error { return runInit(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "Initialized shelf in .shelf/")
	assert.DirExists(t, filepath.Join(dir, ".shelf", "data"))

	err = runInit(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCommandsRequireInit(t *testing.T) {
	testChdir(t, t.TempDir())
	resetFlags()

	_, err := captureOutput(t, func() error { return runList(nil, nil) })
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrNotInitialized)
}

func TestAddCommand(t *testing.T) {
	t.Run("adds and prints the new book", func(t *testing.T) {
		s := setupTestShelf(t)
		addAuthor, addYear, addComplete = "Frank Herbert", "1965", true

		output, err := captureOutput(t, func() error { return runAdd(nil, []string{"Dune"}) })
		require.NoError(t, err)

		books := readBooks(t, s)
		require.Len(t, books, 1)
		assert.Equal(t, "Dune", books[0].Title)
		assert.Equal(t, "Frank Herbert", books[0].Author)
		assert.Equal(t, 1965, books[0].Year)
		assert.True(t, books[0].IsComplete)
		assert.Equal(t, model.FormatID(books[0].ID)+" Dune\n", output)
	})

	tests := []struct {
		name    string
		title   string
		author  string
		year    string
		wantErr string
	}{
		{"blank title", "  ", "Herbert", "1965", "invalid title: must not be empty"},
		{"missing author", "Dune", "", "1965", "invalid author: must not be empty"},
		{"missing year", "Dune", "Herbert", "", "invalid year: must not be empty"},
		{"non-numeric year", "Dune", "Herbert", "soon", `invalid year: "soon" is not a number`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestShelf(t)
			addAuthor, addYear = tt.author, tt.year

			err := runAdd(nil, []string{tt.title})
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.Empty(t, readBooks(t, s))
		})
	}

	t.Run("IDs keep increasing", func(t *testing.T) {
		s := setupTestShelf(t)
		addAuthor, addYear = "A", "2000"
		for _, title := range []string{"One", "Two", "Three"} {
			_, err := captureOutput(t, func() error { return runAdd(nil, []string{title}) })
			require.NoError(t, err)
		}

		books := readBooks(t, s)
		require.Len(t, books, 3)
		assert.Less(t, books[0].ID, books[1].ID)
		assert.Less(t, books[1].ID, books[2].ID)
	})
}

func TestListCommand(t *testing.T) {
	setupTestShelfWithData(t)

	tests := []struct {
		name     string
		args     []string
		show     string
		contains []string
		excludes []string
	}{
		{
			name:     "everything",
			contains: []string{"Unfinished:", "Finished:", "Dune", "Emma", "The Hobbit", "1700000000004"},
		},
		{
			name:     "filter is case-insensitive",
			args:     []string{"DUNE"},
			contains: []string{"Dune", "Dune Messiah"},
			excludes: []string{"Emma", "The Hobbit"},
		},
		{
			name:     "no matches",
			args:     []string{"zzz"},
			contains: []string{`No books matching "zzz".`},
			excludes: []string{"Dune"},
		},
		{
			name:     "only finished by prefix",
			show:     "fin",
			contains: []string{"Finished:", "Dune Messiah", "The Hobbit"},
			excludes: []string{"Unfinished:", "Emma"},
		},
		{
			name:     "only unfinished",
			show:     "unf",
			contains: []string{"Unfinished:", "Dune", "Emma"},
			excludes: []string{"Finished:", "The Hobbit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			if tt.show != "" {
				listShow = tt.show
			}

			output, err := captureOutput(t, func() error { return runList(nil, tt.args) })
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, output, s, "expected output to contain %q", s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, output, s, "expected output to not contain %q", s)
			}
		})
	}

	t.Run("unfinished section comes first in insertion order", func(t *testing.T) {
		resetFlags()
		output, err := captureOutput(t, func() error { return runList(nil, nil) })
		require.NoError(t, err)

		order := []string{"Unfinished:", "Dune", "Emma", "Finished:", "Dune Messiah", "The Hobbit"}
		last := -1
		for _, s := range order {
			idx := strings.Index(output[last+1:], s)
			require.GreaterOrEqual(t, idx, 0, "missing %q after position %d", s, last)
			last += idx + 1
		}
	})

	t.Run("unknown --show value", func(t *testing.T) {
		resetFlags()
		listShow = "done"
		err := runList(nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--show")
	})
}

func TestToggleCommand(t *testing.T) {
	t.Run("flips status and persists", func(t *testing.T) {
		s, books := setupTestShelfWithData(t)

		output, err := captureOutput(t, func() error {
			return runToggle(nil, []string{model.FormatID(books[0].ID), model.FormatID(books[1].ID)})
		})
		require.NoError(t, err)
		assert.Contains(t, output, "Dune: finished")
		assert.Contains(t, output, "Dune Messiah: unfinished")

		stored := readBooks(t, s)
		assert.True(t, stored[0].IsComplete)
		assert.False(t, stored[1].IsComplete)
	})

	t.Run("partial batch reports unknown IDs", func(t *testing.T) {
		s, books := setupTestShelfWithData(t)

		output, err := captureOutput(t, func() error {
			return runToggle(nil, []string{"42", model.FormatID(books[2].ID)})
		})
		require.NoError(t, err)
		assert.Contains(t, output, "error: book 42 not found")
		assert.True(t, readBooks(t, s)[2].IsComplete)
	})

	t.Run("single unknown ID fails", func(t *testing.T) {
		s, books := setupTestShelfWithData(t)

		err := runToggle(nil, []string{"42"})
		require.Error(t, err)
		assert.Equal(t, "book 42 not found", err.Error())
		assert.Equal(t, books, readBooks(t, s))
	})

	t.Run("all invalid fails", func(t *testing.T) {
		setupTestShelfWithData(t)

		err := runToggle(nil, []string{"42", "abc"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no books changed")
		assert.Contains(t, err.Error(), "book 42 not found")
		assert.Contains(t, err.Error(), "invalid ID format")
	})
}

func TestDeleteCommand(t *testing.T) {
	s, books := setupTestShelfWithData(t)

	output, err := captureOutput(t, func() error {
		return runDelete(nil, []string{model.FormatID(books[1].ID)})
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Dune Messiah deleted.")
	assert.Equal(t, []model.Book{books[0], books[2], books[3]}, readBooks(t, s))

	err = runDelete(nil, []string{model.FormatID(books[1].ID)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Len(t, readBooks(t, s), 3)
}

func TestEditCommand(t *testing.T) {
	t.Run("changes only the given fields", func(t *testing.T) {
		s, books := setupTestShelfWithData(t)
		require.NoError(t, editCmd.Flags().Set("title", "Dune (1965)"))

		output, err := captureOutput(t, func() error {
			return runEdit(editCmd, []string{model.FormatID(books[0].ID)})
		})
		require.NoError(t, err)
		assert.Contains(t, output, "updated.")

		got := readBooks(t, s)[0]
		assert.Equal(t, "Dune (1965)", got.Title)
		assert.Equal(t, "Frank Herbert", got.Author)
		assert.Equal(t, 1965, got.Year)
	})

	t.Run("invalid year leaves the book untouched", func(t *testing.T) {
		s, books := setupTestShelfWithData(t)
		require.NoError(t, editCmd.Flags().Set("title", "New title"))
		require.NoError(t, editCmd.Flags().Set("year", "next year"))

		err := runEdit(editCmd, []string{model.FormatID(books[0].ID)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid year")
		assert.Equal(t, books, readBooks(t, s))
	})

	t.Run("blank author is rejected", func(t *testing.T) {
		s, books := setupTestShelfWithData(t)
		require.NoError(t, editCmd.Flags().Set("author", " "))

		err := runEdit(editCmd, []string{model.FormatID(books[0].ID)})
		require.Error(t, err)
		assert.Equal(t, "invalid author: must not be empty", err.Error())
		assert.Equal(t, books, readBooks(t, s))
	})

	t.Run("no flags", func(t *testing.T) {
		_, books := setupTestShelfWithData(t)

		err := runEdit(editCmd, []string{model.FormatID(books[0].ID)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no changes specified")
	})

	t.Run("unknown ID", func(t *testing.T) {
		setupTestShelfWithData(t)
		require.NoError(t, editCmd.Flags().Set("title", "X"))

		err := runEdit(editCmd, []string{"42"})
		require.Error(t, err)
		var nf *cli.NotFoundError
		assert.ErrorAs(t, err, &nf)
	})

	t.Run("interactive edit applies the saved YAML", func(t *testing.T) {
		s, books := setupTestShelfWithData(t)

		script := filepath.Join(t.TempDir(), "editor.sh")
		require.NoError(t, os.WriteFile(script, []byte(`#!/bin/sh
cat > "$1" <<'YAML'
title: Emma
author: Jane Austen
year: "1816"
YAML
`), 0o755))
		t.Setenv("EDITOR", script)
		editInteractive = true

		_, err := captureOutput(t, func() error {
			return runEdit(editCmd, []string{model.FormatID(books[2].ID)})
		})
		require.NoError(t, err)
		assert.Equal(t, 1816, readBooks(t, s)[2].Year)
	})

	t.Run("interactive edit without changes", func(t *testing.T) {
		s, books := setupTestShelfWithData(t)
		t.Setenv("EDITOR", "true")
		editInteractive = true

		output, err := captureOutput(t, func() error {
			return runEdit(editCmd, []string{model.FormatID(books[2].ID)})
		})
		require.NoError(t, err)
		assert.Contains(t, output, "No changes.")
		assert.Equal(t, books, readBooks(t, s))
	})
}

func TestShowCommand(t *testing.T) {
	_, books := setupTestShelfWithData(t)

	output, err := captureOutput(t, func() error {
		return runShow(nil, []string{model.FormatID(books[1].ID)})
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Title:  Dune Messiah")
	assert.Contains(t, output, "Author: Frank Herbert")
	assert.Contains(t, output, "Year:   1969")
	assert.Contains(t, output, "Status: finished")

	err = runShow(nil, []string{"42"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = runShow(nil, []string{"INVALID"})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidID)
}

func TestDumpCommand(t *testing.T) {
	s, _ := setupTestShelfWithData(t)
	stored, _, err := s.Get(model.StorageKey)
	require.NoError(t, err)

	output, err := captureOutput(t, func() error { return runDump(nil, nil) })
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(string(stored)), strings.TrimSpace(output))

	dumpYAML = true
	output, err = captureOutput(t, func() error { return runDump(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "- id: 1700000000001")
	assert.Contains(t, output, "title: Dune")
	assert.Contains(t, output, "is_complete: true")
}

func TestValidateCommand(t *testing.T) {
	t.Run("clean shelf", func(t *testing.T) {
		setupTestShelfWithData(t)

		output, err := captureOutput(t, func() error { return runValidate(nil, nil) })
		require.NoError(t, err)
		assert.Contains(t, output, "No issues found.")
	})

	t.Run("duplicate IDs are reported and fixed", func(t *testing.T) {
		s := setupTestShelf(t)
		writeBooks(t, s, []model.Book{
			{ID: 5, Title: "A", Author: "x", Year: 1},
			{ID: 5, Title: "B", Author: "x", Year: 1},
		})

		output, err := captureOutput(t, func() error { return runValidate(nil, nil) })
		require.Error(t, err)
		assert.Contains(t, output, "duplicate_id")

		validateFix = true
		output, err = captureOutput(t, func() error { return runValidate(nil, nil) })
		require.NoError(t, err)
		assert.Contains(t, output, "All fixable issues resolved.")

		books := readBooks(t, s)
		assert.NotEqual(t, books[0].ID, books[1].ID)
	})
}

func TestBackupRestoreCommands(t *testing.T) {
	s, books := setupTestShelfWithData(t)

	output, err := captureOutput(t, func() error { return runBackup(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "Backed up 4 book(s)")

	require.NoError(t, s.Set(model.StorageKey, []byte("not json")))
	_, err = captureOutput(t, func() error { return runList(nil, nil) })
	require.Error(t, err)
	var parseErr *model.ParseError
	assert.ErrorAs(t, err, &parseErr)

	output, err = captureOutput(t, func() error { return runRestore(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "Restored 4 book(s)")
	assert.Equal(t, books, readBooks(t, s))
}

func TestSQLiteBackend(t *testing.T) {
	s := setupTestShelf(t)
	require.NoError(t, os.WriteFile(s.ConfigPath(), []byte("backend: sqlite\n"), 0o644))

	addAuthor, addYear = "Frank Herbert", "1965"
	_, err := captureOutput(t, func() error { return runAdd(nil, []string{"Dune"}) })
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(s.Root(), ".shelf", "shelf.db"))
	assert.Empty(t, readBooks(t, s), "file backend should be untouched")

	output, err := captureOutput(t, func() error { return runList(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "Dune")
}

func TestInfoCommand(t *testing.T) {
	setupTestShelfWithData(t)
	_, err := captureOutput(t, func() error { return runBackup(nil, nil) })
	require.NoError(t, err)

	output, err := captureOutput(t, func() error { return runInfo(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "Format:   v1")
	assert.Contains(t, output, "Backend:  file")
	assert.Contains(t, output, "Keys:     bookshelf_apps, bookshelf_apps.backup")
	assert.Contains(t, output, "Books:    4 (2 unfinished, 2 finished)")
}
