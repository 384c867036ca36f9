package services

import (
	"context"
	"log"
	"strings"
	"sync"

	"wanderlink_server/models"
	"wanderlink_server/utils"
)

// SearchClient is the remote search RPC the orchestrator pages through
type SearchClient interface {
	Search(ctx context.Context, req models.SearchRequest) (models.SearchResponse, error)
}

// genericSearchError replaces failure text the user would not recognize
const genericSearchError = "Something went wrong while searching. Please try again."

// recognizableFailures are failure categories worth surfacing verbatim
var recognizableFailures = []string{
	"timeout",
	"timed out",
	"network",
	"connection refused",
	"proxy",
	"constraint",
}

// searchResult is the tagged form of the loosely-shaped wire response; the
// wire payload is converted exactly once, at the boundary, so nothing past
// this point re-checks shape.
type searchResult struct {
	ok      bool
	data    []models.Itinerary
	message string
}

func toSearchResult(resp models.SearchResponse, err error) searchResult {
	if err != nil {
		return searchResult{message: categorizeSearchError(err.Error())}
	}
	if !resp.Success || resp.Data == nil {
		message := resp.Error
		if message == "" {
			message = "malformed search response"
		}
		return searchResult{message: categorizeSearchError(message)}
	}
	return searchResult{ok: true, data: resp.Data}
}

// categorizeSearchError keeps recognizable technical failures verbatim and
// generalizes everything else
func categorizeSearchError(message string) string {
	lower := strings.ToLower(message)
	for _, category := range recognizableFailures {
		if strings.Contains(lower, category) {
			return message
		}
	}
	return genericSearchError
}

// SearchOrchestrator owns the paging cursor over one user's search session.
// It issues one remote page per Search/ForceRefreshSearch, runs the raw
// batch through the filter stage, deduplicates by destination and exposes
// the survivors one at a time via Next. A mutex serializes Search and Next;
// the reference behavior left that race to the caller, so this is a
// strengthening, not a semantic change.
type SearchOrchestrator struct {
	Client    SearchClient
	Filter    *FilterService
	Cache     *CacheService
	ViewedSet *ViewedSetService

	mu         sync.Mutex
	loading    bool
	errMsg     string
	hasMore    bool
	candidates []models.Itinerary
	index      int
}

// Search resets the cursor and fetches a fresh page, consulting the result
// cache first
func (o *SearchOrchestrator) Search(ctx context.Context, itinerary models.Itinerary, userID string) models.SearchState {
	return o.run(ctx, itinerary, userID, false)
}

// ForceRefreshSearch behaves like Search but bypasses the result cache and
// always hits the remote store
func (o *SearchOrchestrator) ForceRefreshSearch(ctx context.Context, itinerary models.Itinerary, userID string) models.SearchState {
	return o.run(ctx, itinerary, userID, true)
}

func (o *SearchOrchestrator) run(ctx context.Context, itinerary models.Itinerary, userID string, force bool) (state models.SearchState) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.candidates = nil
	o.index = 0
	o.loading = true
	o.errMsg = ""

	// loading always comes back down, success or failure
	defer func() {
		o.loading = false
		state = o.stateLocked()
	}()

	key := GenerateCacheKey(models.SearchKeyParams{
		Destination: itinerary.Destination,
		UserProfile: models.SearchKeyUserProfile{
			Gender:            itinerary.Gender,
			Status:            itinerary.Status,
			SexualOrientation: itinerary.SexualOrientation,
		},
	})
	// The remote page already excludes this user's viewed ids, so a cached
	// batch is only valid for the user it was fetched for
	if userID != "" {
		key = userID + ":" + key
	}

	var raw []models.Itinerary
	fromCache := false
	if !force && o.Cache != nil {
		if cached, ok := o.Cache.Get(ctx, key); ok {
			log.Printf("✅ Search cache hit for key %s", key)
			raw = cached
			fromCache = true
		}
	}

	if !fromCache {
		result := toSearchResult(o.Client.Search(ctx, o.buildRequest(itinerary, userID)))
		if !result.ok {
			log.Printf("❌ Search failed: %s", result.message)
			o.errMsg = result.message
			o.hasMore = false
			return
		}
		raw = result.data
		if o.Cache != nil {
			o.Cache.Set(ctx, key, raw)
		}
	}

	// hasMore tracks the RAW page length; server-side pagination exhaustion
	// is independent of how many candidates survive client-side filtering
	o.hasMore = len(raw) == models.MatchPageSize

	filtered := o.Filter.Filter(raw, itinerary, userID)
	o.candidates = DedupeByDestination(filtered)
	o.index = 0

	log.Printf("✅ Search ready: %d raw, %d matching, hasMore=%v", len(raw), len(o.candidates), o.hasMore)
	return
}

func (o *SearchOrchestrator) buildRequest(itinerary models.Itinerary, userID string) models.SearchRequest {
	startDay := itinerary.StartDay
	if startDay == 0 {
		startDay, _ = utils.DayFromDate(itinerary.StartDate)
	}
	endDay := itinerary.EndDay
	if endDay == 0 {
		endDay, _ = utils.DayFromDate(itinerary.EndDate)
	}

	blocked := []string{}
	if itinerary.UserInfo != nil && itinerary.UserInfo.Blocked != nil {
		blocked = itinerary.UserInfo.Blocked
	}

	var excluded []string
	if o.ViewedSet != nil {
		excluded = o.ViewedSet.IDs()
	}

	return models.SearchRequest{
		Destination:       itinerary.Destination,
		Gender:            itinerary.Gender,
		Status:            itinerary.Status,
		SexualOrientation: itinerary.SexualOrientation,
		MinStartDay:       startDay,
		MaxEndDay:         endDay,
		PageSize:          models.MatchPageSize,
		ExcludedIDs:       excluded,
		BlockedUserIDs:    blocked,
		CurrentUserID:     userID,
		LowerRange:        itinerary.LowerRange,
		UpperRange:        itinerary.UpperRange,
	}
}

// Next records the current candidate as viewed and advances the cursor.
// It never issues a remote call; once the stored batch is exhausted the
// session stays empty until a fresh Search.
func (o *SearchOrchestrator) Next(ctx context.Context) models.SearchState {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.index < len(o.candidates) && o.ViewedSet != nil {
		o.ViewedSet.Add(ctx, o.candidates[o.index].ID)
	}
	o.index++
	if o.index >= len(o.candidates) {
		o.hasMore = false
	}
	return o.stateLocked()
}

// GetNextItinerary is an alias for Next kept for API compatibility
func (o *SearchOrchestrator) GetNextItinerary(ctx context.Context) models.SearchState {
	return o.Next(ctx)
}

// LoadNextItinerary is an alias for Next kept for API compatibility
func (o *SearchOrchestrator) LoadNextItinerary(ctx context.Context) models.SearchState {
	return o.Next(ctx)
}

// State returns the observable search state
func (o *SearchOrchestrator) State() models.SearchState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stateLocked()
}

// Candidates returns the remaining matching itineraries from the cursor on
func (o *SearchOrchestrator) Candidates() []models.Itinerary {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.remainingLocked()
}

func (o *SearchOrchestrator) stateLocked() models.SearchState {
	return models.SearchState{
		MatchingItineraries: o.remainingLocked(),
		HasMore:             o.hasMore,
		Loading:             o.loading,
		Error:               o.errMsg,
	}
}

// remainingLocked is the computed view over the stored batch: everything
// from the cursor onward, empty once the cursor passes the end
func (o *SearchOrchestrator) remainingLocked() []models.Itinerary {
	if o.index >= len(o.candidates) {
		return []models.Itinerary{}
	}
	remaining := make([]models.Itinerary, len(o.candidates)-o.index)
	copy(remaining, o.candidates[o.index:])
	return remaining
}
