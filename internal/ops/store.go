package ops

//go:generate mockgen -source=store.go -destination=opsmock/store_mock.go -package=opsmock

// Store defines the persistence interface required by the book store.
// The concrete implementations live in internal/storage (file, sqlite,
// postgres, memory), but any key-value backend will do.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}
