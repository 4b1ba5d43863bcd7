package repository

import (
	"context"
	"time"
)

// IKeyValue is the time-boxed key-value store injected into usecases instead
// of ambient global state. Implementations: Redis for deployments, an
// in-memory map for demo mode and tests.
type IKeyValue interface {
	// Get unmarshals the cached value into dest and reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
