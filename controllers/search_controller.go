package controllers

import (
	"encoding/json"
	"net/http"
	"wanderlink_server/models"
	"wanderlink_server/services"
)

// SearchController handles HTTP requests for the matching engine
type SearchController struct {
	Sessions *services.SessionManager
}

// NewSearchController creates a new SearchController instance
func NewSearchController(sessions *services.SessionManager) *SearchController {
	return &SearchController{Sessions: sessions}
}

type searchRequestBody struct {
	UserID    string           `json:"userId"`
	Itinerary models.Itinerary `json:"itinerary"`
}

// HandleSearch starts a fresh search for the user's itinerary
func (sc *SearchController) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var request searchRequestBody
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	state := sc.Sessions.ForUser(request.UserID).Search(r.Context(), request.Itinerary, request.UserID)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(state)
}

// HandleForceRefresh starts a fresh search bypassing the result cache
func (sc *SearchController) HandleForceRefresh(w http.ResponseWriter, r *http.Request) {
	var request searchRequestBody
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	state := sc.Sessions.ForUser(request.UserID).ForceRefreshSearch(r.Context(), request.Itinerary, request.UserID)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(state)
}

// HandleNext advances the user's cursor to the next candidate
func (sc *SearchController) HandleNext(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	state := sc.Sessions.ForUser(request.UserID).Next(r.Context())

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(state)
}

// HandleState returns the current observable search state
func (sc *SearchController) HandleState(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	state := sc.Sessions.ForUser(userID).State()

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(state)
}
