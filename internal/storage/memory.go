package storage

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-memdb"
)

const kvTable = "kv"

// entry is a single row in the in-memory key-value table.
type entry struct {
	Key   string
	Value []byte
}

// MemoryKV is a process-local key-value store backed by go-memdb.
// Values do not survive process exit; it backs the memory backend and tests.
type MemoryKV struct {
	db *memdb.MemDB
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() (*MemoryKV, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			kvTable: {
				Name: kvTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Key"},
					},
				},
			},
		},
	}
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("invalid memory schema: %w", err)
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory store: %w", err)
	}
	return &MemoryKV{db: db}, nil
}

// Get returns the value stored under key.
func (m *MemoryKV) Get(key string) ([]byte, bool, error) {
	txn := m.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(kvTable, "id", key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if raw == nil {
		return nil, false, nil
	}

	e := raw.(*entry)
	out := make([]byte, len(e.Value))
	copy(out, e.Value)
	return out, true, nil
}

// Set overwrites the value stored under key.
func (m *MemoryKV) Set(key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	txn := m.db.Txn(true)
	if err := txn.Insert(kvTable, &entry{Key: key, Value: stored}); err != nil {
		txn.Abort()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	txn.Commit()
	return nil
}

// Delete removes the value stored under key. Deleting a missing key is not an error.
func (m *MemoryKV) Delete(key string) error {
	txn := m.db.Txn(true)
	if _, err := txn.DeleteAll(kvTable, "id", key); err != nil {
		txn.Abort()
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	txn.Commit()
	return nil
}

// Keys returns all stored keys in sorted order.
func (m *MemoryKV) Keys() ([]string, error) {
	txn := m.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(kvTable, "id")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	var keys []string
	for obj := it.Next(); obj != nil; obj = it.Next() {
		keys = append(keys, obj.(*entry).Key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op.
func (m *MemoryKV) Close() error {
	return nil
}
