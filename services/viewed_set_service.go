package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"wanderlink_server/models"
)

// ViewedSetService tracks which itinerary ids one user has already been
// shown. The set lives in memory and is mirrored into a persisted slot
// scoped to that user; it only ever grows during normal operation.
type ViewedSetService struct {
	Store BlobStore

	slot  string
	mu    sync.Mutex
	ids   map[string]struct{}
	order []string
}

// NewViewedSetService creates the service and loads the user's persisted
// set. A missing or corrupted blob starts the set empty rather than failing.
func NewViewedSetService(ctx context.Context, store BlobStore, userID string) *ViewedSetService {
	vs := &ViewedSetService{
		Store: store,
		slot:  models.ViewedSetSlot(userID),
		ids:   make(map[string]struct{}),
	}
	vs.load(ctx)
	return vs
}

func (vs *ViewedSetService) load(ctx context.Context) {
	blob, err := vs.Store.Load(ctx, vs.slot)
	if err != nil {
		if err != ErrBlobNotFound {
			log.Printf("⚠️ Failed to load viewed set, starting empty: %v", err)
		}
		return
	}

	for _, id := range decodeViewedSetBlob(blob) {
		if _, seen := vs.ids[id]; seen {
			continue
		}
		vs.ids[id] = struct{}{}
		vs.order = append(vs.order, id)
	}
}

// decodeViewedSetBlob accepts both the current shape (["id", ...]) and the
// legacy shape ([{"id": "..."}, ...]), discarding empty or non-string
// entries. A corrupt blob decodes to nothing.
func decodeViewedSetBlob(blob []byte) []string {
	var raw []json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		log.Printf("⚠️ Corrupted viewed set blob, treating as empty")
		return nil
	}

	var ids []string
	for _, entry := range raw {
		var id string
		if err := json.Unmarshal(entry, &id); err == nil {
			if id != "" {
				ids = append(ids, id)
			}
			continue
		}
		var legacy struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(entry, &legacy); err == nil && legacy.ID != "" {
			ids = append(ids, legacy.ID)
		}
	}
	return ids
}

// Contains reports whether an itinerary id has already been shown
func (vs *ViewedSetService) Contains(id string) bool {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	_, ok := vs.ids[id]
	return ok
}

// IDs returns a copy of the set in insertion order
func (vs *ViewedSetService) IDs() []string {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	out := make([]string, len(vs.order))
	copy(out, vs.order)
	return out
}

// Add records an id and persists the whole set. The read-modify-persist
// happens under one lock hold; a persistence failure is swallowed and the
// in-memory set stays authoritative.
func (vs *ViewedSetService) Add(ctx context.Context, id string) {
	if id == "" {
		return
	}

	vs.mu.Lock()
	defer vs.mu.Unlock()

	if _, ok := vs.ids[id]; ok {
		return
	}
	vs.ids[id] = struct{}{}
	vs.order = append(vs.order, id)

	blob, err := json.Marshal(vs.order)
	if err != nil {
		return
	}
	if err := vs.Store.Save(ctx, vs.slot, blob); err != nil {
		log.Printf("⚠️ Failed to persist viewed set: %v", err)
	}
}

// Size returns the number of viewed itineraries
func (vs *ViewedSetService) Size() int {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return len(vs.ids)
}
