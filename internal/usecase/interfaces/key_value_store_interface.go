package interfaces

import "context"

// IKeyValueStore is the local key-value medium the stores persist their JSON blobs into.
//
// Implementations only guarantee atomic replacement of a single key; there is no
// multi-key transaction and no compare-and-swap.
type IKeyValueStore interface {
	// Get returns found=false (and no error) when the key does not exist.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// ILocker serializes read-modify-write cycles on a key across processes.
type ILocker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}
