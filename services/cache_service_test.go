package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"wanderlink_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock lets tests advance the cache's view of time
type testClock struct {
	current time.Time
}

func (c *testClock) now() time.Time { return c.current }

func (c *testClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestCache() (*CacheService, *MemoryBlobStore, *testClock) {
	store := NewMemoryBlobStore()
	cache := NewCacheService(store)
	clock := &testClock{current: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	cache.now = clock.now
	return cache, store, clock
}

func sampleBatch(ids ...string) []models.Itinerary {
	batch := make([]models.Itinerary, 0, len(ids))
	for _, id := range ids {
		batch = append(batch, models.Itinerary{ID: id, Destination: "Lisbon"})
	}
	return batch
}

func TestGenerateCacheKey(t *testing.T) {
	params := models.SearchKeyParams{
		Destination: "Paris",
		UserProfile: models.SearchKeyUserProfile{
			Gender:            "Female",
			Status:            "single",
			SexualOrientation: "heterosexual",
		},
	}

	key := GenerateCacheKey(params)
	assert.Equal(t, "search_Paris_Female_single_heterosexual", key)

	// Same logical input always yields the same key
	assert.Equal(t, key, GenerateCacheKey(params))
	assert.Equal(t, key, GenerateCacheKey(&params))

	// Commas and whitespace in the destination become underscores
	params.Destination = "New York, NY"
	assert.Equal(t, "search_New_York__NY_Female_single_heterosexual", GenerateCacheKey(params))

	// A bare string passes through unchanged
	assert.Equal(t, "already-a-key", GenerateCacheKey("already-a-key"))

	// Anything else falls back to JSON serialization
	assert.Equal(t, `{"n":1}`, GenerateCacheKey(map[string]int{"n": 1}))
}

func TestCacheRoundTripAndTTL(t *testing.T) {
	ctx := context.Background()
	cache, _, clock := newTestCache()

	batch := sampleBatch("it-1", "it-2")
	cache.Set(ctx, "key", batch)

	got, ok := cache.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, batch, got)

	// Still fresh just inside the TTL
	clock.advance(models.CacheTTL - time.Second)
	_, ok = cache.Get(ctx, "key")
	assert.True(t, ok)

	// Stale once the TTL has elapsed
	clock.advance(2 * time.Second)
	got, ok = cache.Get(ctx, "key")
	assert.False(t, ok)
	assert.Nil(t, got)

	stats := cache.GetStats(ctx)
	assert.Equal(t, 2, stats.Hits)
	assert.Equal(t, 1, stats.Misses)
}

func TestCacheInsertionOrderEviction(t *testing.T) {
	ctx := context.Background()
	cache, _, _ := newTestCache()

	for i := 0; i < models.CacheMaxEntries; i++ {
		cache.Set(ctx, fmt.Sprintf("key-%d", i), sampleBatch(fmt.Sprintf("it-%d", i)))
	}

	// Re-setting an existing key must not evict anything
	cache.Set(ctx, "key-0", sampleBatch("updated"))
	assert.Equal(t, models.CacheMaxEntries, cache.GetStats(ctx).MemorySize)

	// One brand-new key evicts the oldest-inserted entry only
	cache.Set(ctx, "key-new", sampleBatch("it-new"))
	assert.Equal(t, models.CacheMaxEntries, cache.GetStats(ctx).MemorySize)

	_, ok := cache.Get(ctx, "key-0")
	assert.False(t, ok, "oldest-inserted key should be gone")
	_, ok = cache.Get(ctx, "key-1")
	assert.True(t, ok)
	_, ok = cache.Get(ctx, "key-new")
	assert.True(t, ok)
}

func TestCachePromotionFromPersistedTier(t *testing.T) {
	ctx := context.Background()
	cache, store, clock := newTestCache()

	cache.Set(ctx, "key", sampleBatch("it-1"))

	// A fresh process sees only the persisted tier
	revived := NewCacheService(store)
	revived.now = clock.now

	got, ok := revived.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, sampleBatch("it-1"), got)
	assert.Equal(t, 1, revived.GetStats(ctx).MemorySize, "entry should be promoted into memory")
}

func TestCachePersistKeepsUnpromotedEntries(t *testing.T) {
	ctx := context.Background()
	cache, store, clock := newTestCache()

	cache.Set(ctx, "key-a", sampleBatch("it-a"))

	// A fresh process writes before ever reading key-a; the persisted
	// entry must survive the write
	revived := NewCacheService(store)
	revived.now = clock.now
	revived.Set(ctx, "key-b", sampleBatch("it-b"))

	got, ok := revived.Get(ctx, "key-a")
	require.True(t, ok, "persisted entries written before the restart stay readable")
	assert.Equal(t, sampleBatch("it-a"), got)
	assert.Equal(t, 2, revived.GetStats(ctx).TotalKeys)
}

func TestCacheCorruptPersistedBlob(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryBlobStore()
	require.NoError(t, store.Save(ctx, models.SearchCacheSlot, []byte("{not json")))

	cache := NewCacheService(store)
	got, ok := cache.Get(ctx, "key")
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.Equal(t, 1, cache.GetStats(ctx).Misses)
}

func TestCacheCleanup(t *testing.T) {
	ctx := context.Background()
	cache, _, clock := newTestCache()

	cache.Set(ctx, "old", sampleBatch("it-1"))
	clock.advance(models.CacheTTL + time.Second)
	cache.Set(ctx, "fresh", sampleBatch("it-2"))

	cache.Cleanup(ctx)

	stats := cache.GetStats(ctx)
	assert.Equal(t, 1, stats.MemorySize)
	assert.Equal(t, 1, stats.TotalKeys)
	_, ok := cache.Get(ctx, "fresh")
	assert.True(t, ok)
}

func TestCacheClear(t *testing.T) {
	ctx := context.Background()
	cache, _, _ := newTestCache()

	cache.Set(ctx, "key", sampleBatch("it-1"))
	cache.Get(ctx, "key")
	cache.Get(ctx, "missing")

	cache.Clear(ctx)

	stats := cache.GetStats(ctx)
	assert.Equal(t, 0, stats.MemorySize)
	assert.Equal(t, 0, stats.PersistedSize)
	assert.Equal(t, 0, stats.TotalKeys)
	assert.Equal(t, 0, stats.Hits)
	assert.Equal(t, 0, stats.Misses)
}

func TestCacheJanitorLifecycle(t *testing.T) {
	cache, _, _ := newTestCache()

	cache.StartJanitor(time.Hour)
	cache.StartJanitor(time.Hour) // idempotent
	cache.StopJanitor()
	cache.StopJanitor() // safe when already stopped
	cache.StartJanitor(time.Hour)
	cache.StopJanitor()
}
