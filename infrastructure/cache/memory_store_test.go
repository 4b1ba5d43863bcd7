package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pulse-metrics/infrastructure/cache"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	assert.NoError(t, store.Set(ctx, "key", payload{Name: "creator", Count: 3}, 0))

	var got payload
	found, err := store.Get(ctx, "key", &got)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "creator", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestMemoryStoreMiss(t *testing.T) {
	store := cache.NewMemoryStore()

	var got string
	found, err := store.Get(context.Background(), "missing", &got)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "key", "value", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var got string
	found, err := store.Get(ctx, "key", &got)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "key", "value", 0))
	assert.NoError(t, store.Delete(ctx, "key"))

	var got string
	found, _ := store.Get(ctx, "key", &got)
	assert.False(t, found)
}

func TestNewRedisStore(t *testing.T) {
	// Smoke test only; Redis behavior is covered by the shared contract with
	// the memory store.
	store := cache.NewRedisStore(nil)
	assert.NotNil(t, store)
}
