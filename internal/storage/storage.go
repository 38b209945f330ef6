package storage

import (
	"context"
	"errors"
)

// Store is durable local key-value storage for small JSON blobs. The cart is
// the only writer today; it keeps its whole state under a single namespaced
// key and rewrites it after every mutation.
// Consumers define this interface, not the implementations.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("key not found")
