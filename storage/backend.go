package storage

import "context"

// Backend stores whole files by key. Keys are relative to the mount point and
// never start with a slash.
type Backend interface {
	// Name returns the identifier of this backend
	Name() string

	// Open is called when the backend gets mounted
	Open(ctx context.Context) error

	// Close is called when the backend gets unmounted
	Close(ctx context.Context) error

	// Read returns the content of key or ErrNotExist
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the content of key
	Write(ctx context.Context, key string, data []byte) error

	// Delete removes key or returns ErrNotExist
	Delete(ctx context.Context, key string) error

	// List returns the keys starting with prefix in lexical order
	List(ctx context.Context, prefix string) ([]string, error)
}
