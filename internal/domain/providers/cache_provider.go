package providers

import (
	"context"
)

// CacheProvider is the byte-level cache the catalog adapters read through.
// A miss is reported as an error so callers fall back to the database.
type CacheProvider interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with expiration
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error
}
