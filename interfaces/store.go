package interfaces

import "context"

// Store is the key-value protocol the registry runs on. It offers only
// simple per-key primitives: no transactions, no compare-and-swap, no
// pub/sub. All coordination above it is done cooperatively through
// store-resident advisory locks.
//
//go:generate moq -stub -out mock/store.go -pkg mock . Store
type Store interface {
	// Get reads the value for key.
	// Returns:
	// 1) (value, true, nil) when the key exists;
	// 2) (nil, false, nil) when the key is absent;
	// 3) (nil, false, internal_server_error) when the storage read fails.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set writes value for key, overwriting any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is a no-op, not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// FlushAll removes every key. Used only at startup for clean runs.
	FlushAll(ctx context.Context) error
}
