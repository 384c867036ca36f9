package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"wanderlink_server/models"
	"wanderlink_server/utils"
)

// cacheEntry is one cached search result set. The same shape is stored in
// memory and in the persisted slot.
type cacheEntry struct {
	Data      []models.Itinerary `json:"data"`
	Timestamp int64              `json:"timestamp"`
	ExpiresAt int64              `json:"expiresAt"`
}

// CacheStats is the snapshot returned by GetStats
type CacheStats struct {
	MemorySize    int `json:"memorySize"`
	PersistedSize int `json:"persistedSize"`
	TotalKeys     int `json:"totalKeys"`
	Hits          int `json:"hits"`
	Misses        int `json:"misses"`
}

// CacheService is a two-tier TTL cache for search result batches: an
// in-memory map plus one persisted JSON slot. Entries live for
// models.CacheTTL; when a brand-new key would push the cache past
// models.CacheMaxEntries the oldest-inserted entry is evicted (insertion
// order, not LRU). The in-memory tier is authoritative; persisted-tier
// failures are swallowed.
type CacheService struct {
	Store BlobStore

	mu      sync.Mutex
	entries map[string]cacheEntry
	order   []string
	hits    int
	misses  int

	now func() time.Time

	janitorStop chan struct{}
}

// NewCacheService creates an empty cache over the given persisted store
func NewCacheService(store BlobStore) *CacheService {
	return &CacheService{
		Store:   store,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// GenerateCacheKey canonicalizes search parameters into a cache key.
// The recognized parameter shape produces
// "search_<destination>_<gender>_<status>_<orientation>" with commas and
// whitespace in the destination replaced by underscores; a bare string is
// returned unchanged; anything else falls back to its JSON serialization.
func GenerateCacheKey(params interface{}) string {
	switch p := params.(type) {
	case models.SearchKeyParams:
		return fmt.Sprintf("search_%s_%s_%s_%s",
			utils.SanitizeKeyPart(p.Destination),
			p.UserProfile.Gender,
			p.UserProfile.Status,
			p.UserProfile.SexualOrientation,
		)
	case *models.SearchKeyParams:
		if p != nil {
			return GenerateCacheKey(*p)
		}
	case string:
		return p
	}

	blob, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%v", params)
	}
	return string(blob)
}

// Set stores a result set under key with a fresh TTL in both tiers
func (cs *CacheService) Set(ctx context.Context, key string, data []models.Itinerary) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	now := cs.now()
	var evicted []string
	if _, exists := cs.entries[key]; !exists {
		if len(cs.entries) >= models.CacheMaxEntries && len(cs.order) > 0 {
			oldest := cs.order[0]
			cs.order = cs.order[1:]
			delete(cs.entries, oldest)
			evicted = append(evicted, oldest)
		}
		cs.order = append(cs.order, key)
	}
	cs.entries[key] = cacheEntry{
		Data:      data,
		Timestamp: now.UnixMilli(),
		ExpiresAt: now.Add(models.CacheTTL).UnixMilli(),
	}

	cs.persistLocked(ctx, evicted...)
}

// Get returns the cached result set for key, or ok=false on a miss.
// Memory is checked first; an expired memory entry is evicted. On a memory
// miss the persisted tier is consulted and a fresh entry found there is
// promoted back into memory, space permitting.
func (cs *CacheService) Get(ctx context.Context, key string) ([]models.Itinerary, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	now := cs.now().UnixMilli()

	if entry, ok := cs.entries[key]; ok {
		if now < entry.ExpiresAt {
			cs.hits++
			return entry.Data, true
		}
		cs.evictLocked(key)
	}

	persisted := cs.loadPersisted(ctx)
	if entry, ok := persisted[key]; ok && now < entry.ExpiresAt {
		if _, exists := cs.entries[key]; !exists && len(cs.entries) < models.CacheMaxEntries {
			cs.entries[key] = entry
			cs.order = append(cs.order, key)
		}
		cs.hits++
		return entry.Data, true
	}

	cs.misses++
	return nil, false
}

// Cleanup removes every expired entry from both tiers; safe to call at any time
func (cs *CacheService) Cleanup(ctx context.Context) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	now := cs.now().UnixMilli()

	for key, entry := range cs.entries {
		if now >= entry.ExpiresAt {
			cs.evictLocked(key)
		}
	}

	persisted := cs.loadPersisted(ctx)
	changed := false
	for key, entry := range persisted {
		if now >= entry.ExpiresAt {
			delete(persisted, key)
			changed = true
		}
	}
	if changed {
		cs.savePersisted(ctx, persisted)
	}
}

// Clear empties both tiers and resets the hit/miss counters
func (cs *CacheService) Clear(ctx context.Context) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.entries = make(map[string]cacheEntry)
	cs.order = nil
	cs.hits = 0
	cs.misses = 0
	cs.savePersisted(ctx, map[string]cacheEntry{})
}

// GetStats reports tier sizes and hit/miss counters
func (cs *CacheService) GetStats(ctx context.Context) CacheStats {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	persisted := cs.loadPersisted(ctx)
	total := make(map[string]struct{}, len(cs.entries)+len(persisted))
	for key := range cs.entries {
		total[key] = struct{}{}
	}
	for key := range persisted {
		total[key] = struct{}{}
	}

	return CacheStats{
		MemorySize:    len(cs.entries),
		PersistedSize: len(persisted),
		TotalKeys:     len(total),
		Hits:          cs.hits,
		Misses:        cs.misses,
	}
}

// StartJanitor begins periodic Cleanup on the given interval. Callers own
// the lifecycle; tests that need determinism simply never start it.
func (cs *CacheService) StartJanitor(interval time.Duration) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.janitorStop != nil {
		return
	}
	stop := make(chan struct{})
	cs.janitorStop = stop

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cs.Cleanup(context.Background())
			case <-stop:
				return
			}
		}
	}()
}

// StopJanitor halts the periodic cleanup; it may be started again later
func (cs *CacheService) StopJanitor() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.janitorStop != nil {
		close(cs.janitorStop)
		cs.janitorStop = nil
	}
}

func (cs *CacheService) evictLocked(key string) {
	delete(cs.entries, key)
	for i, k := range cs.order {
		if k == key {
			cs.order = append(cs.order[:i], cs.order[i+1:]...)
			break
		}
	}
}

// persistLocked merges the in-memory tier over the persisted slot. Fresh
// persisted entries the memory tier never saw (written before a restart)
// survive; expired and explicitly evicted keys are dropped.
func (cs *CacheService) persistLocked(ctx context.Context, evicted ...string) {
	persisted := cs.loadPersisted(ctx)
	now := cs.now().UnixMilli()
	for key, entry := range persisted {
		if now >= entry.ExpiresAt {
			delete(persisted, key)
		}
	}
	for _, key := range evicted {
		delete(persisted, key)
	}
	for key, entry := range cs.entries {
		persisted[key] = entry
	}
	cs.savePersisted(ctx, persisted)
}

func (cs *CacheService) savePersisted(ctx context.Context, entries map[string]cacheEntry) {
	blob, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := cs.Store.Save(ctx, models.SearchCacheSlot, blob); err != nil {
		log.Printf("⚠️ Failed to persist search cache: %v", err)
	}
}

// loadPersisted reads the persisted tier; a missing or corrupt blob is empty
func (cs *CacheService) loadPersisted(ctx context.Context) map[string]cacheEntry {
	blob, err := cs.Store.Load(ctx, models.SearchCacheSlot)
	if err != nil {
		return map[string]cacheEntry{}
	}
	var entries map[string]cacheEntry
	if err := json.Unmarshal(blob, &entries); err != nil {
		log.Printf("⚠️ Corrupted search cache blob, treating as empty")
		return map[string]cacheEntry{}
	}
	if entries == nil {
		entries = map[string]cacheEntry{}
	}
	return entries
}
