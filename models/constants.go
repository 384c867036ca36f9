package models

import "time"

// ✅ Interaction Types (like, dislike)
const (
	InteractionTypeLike    = "like"
	InteractionTypeDislike = "dislike"
)

// ✅ Connection Statuses
const (
	ConnectionStatusActive = "active"
)

// ✅ Matching engine tunables
const (
	// MatchPageSize is the number of raw candidates fetched per remote page.
	// A raw batch of exactly this length signals that more pages may exist.
	MatchPageSize = 10

	// CacheTTL is how long one search result set stays fresh
	CacheTTL = 5 * time.Minute

	// CacheMaxEntries caps the result cache; the oldest-inserted entry is
	// evicted when a brand-new key would exceed it
	CacheMaxEntries = 50
)

// ✅ Persisted single-slot storage keys (Redis)
const (
	ViewedSetSlotPrefix = "wanderlink:viewedItineraries"
	SearchCacheSlot     = "wanderlink:searchCache"
)

// ViewedSetSlot returns the persisted slot holding one user's viewed set
func ViewedSetSlot(userID string) string {
	if userID == "" {
		return ViewedSetSlotPrefix
	}
	return ViewedSetSlotPrefix + ":" + userID
}
