package ops

import (
	"github.com/jacksmith/shelf/internal/cli"
	"github.com/jacksmith/shelf/internal/model"
)

// BackupSuffix is appended to the storage key to name the backup copy.
const BackupSuffix = ".backup"

// BackupKey returns the key holding the backup of the list stored under key.
func BackupKey(key string) string {
	return key + BackupSuffix
}

// Backup copies the persisted list to its backup key.
// Returns the number of books copied; nothing is written when no list is stored.
func (bs *BookStore) Backup() (int, error) {
	data, ok, err := bs.kv.Get(bs.key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	// Refuse to overwrite a good backup with data that cannot be read back.
	books, err := model.DecodeBooks(data)
	if err != nil {
		return 0, err
	}

	if err := bs.kv.Set(BackupKey(bs.key), data); err != nil {
		return 0, err
	}
	return len(books), nil
}

// Restore replaces the list with the backup copy, persists it and reloads.
// Returns *cli.NotFoundError if no backup exists.
func (bs *BookStore) Restore() (int, error) {
	key := BackupKey(bs.key)
	data, ok, err := bs.kv.Get(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &cli.NotFoundError{Type: "backup", ID: key}
	}

	books, err := model.DecodeBooks(data)
	if err != nil {
		return 0, err
	}

	bs.books = books
	for _, b := range books {
		bs.ids.Observe(b.ID)
	}
	if err := bs.Save(); err != nil {
		return 0, err
	}
	return len(books), nil
}
