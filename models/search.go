package models

// SearchRequest is the wire shape of one page request against the itinerary store
type SearchRequest struct {
	Destination       string   `json:"destination,omitempty"`
	Gender            string   `json:"gender,omitempty"`
	Status            string   `json:"status,omitempty"`
	SexualOrientation string   `json:"sexualOrientation,omitempty"`
	MinStartDay       int64    `json:"minStartDay,omitempty"`
	MaxEndDay         int64    `json:"maxEndDay,omitempty"`
	PageSize          int32    `json:"pageSize"`
	ExcludedIDs       []string `json:"excludedIds,omitempty"`
	BlockedUserIDs    []string `json:"blockedUserIds,omitempty"`
	CurrentUserID     string   `json:"currentUserId"`
	LowerRange        int      `json:"lowerRange,omitempty"`
	UpperRange        int      `json:"upperRange,omitempty"`
}

// SearchResponse is the wire shape of one page of results.
// Anything other than {success:true, data:[...]} is treated as a hard error.
type SearchResponse struct {
	Success bool        `json:"success"`
	Data    []Itinerary `json:"data"`
	Error   string      `json:"error,omitempty"`
}

// SearchState is the observable orchestrator state returned to the presentation layer
type SearchState struct {
	MatchingItineraries []Itinerary `json:"matchingItineraries"`
	HasMore             bool        `json:"hasMore"`
	Loading             bool        `json:"loading"`
	Error               string      `json:"error,omitempty"`
}

// SearchKeyParams is the recognized cache-key shape for search parameters
type SearchKeyParams struct {
	Destination string               `json:"destination"`
	UserProfile SearchKeyUserProfile `json:"userProfile"`
}

// SearchKeyUserProfile carries the preference part of the cache key
type SearchKeyUserProfile struct {
	Gender            string `json:"gender"`
	Status            string `json:"status"`
	SexualOrientation string `json:"sexualOrientation"`
}
