package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"wanderlink_server/services"
)

// InteractionController handles HTTP requests for like/dislike actions
type InteractionController struct {
	InteractionService *services.InteractionService
}

// NewInteractionController creates a new InteractionController instance
func NewInteractionController(interactionService *services.InteractionService) *InteractionController {
	return &InteractionController{InteractionService: interactionService}
}

// HandleAction processes "like" or "dislike" actions against an itinerary
func (ic *InteractionController) HandleAction(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID      string `json:"userId"`
		ItineraryID string `json:"itineraryId"`
		Action      string `json:"action"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Println("Invalid request payload:", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if request.UserID == "" || request.ItineraryID == "" || request.Action == "" {
		http.Error(w, "userId, itineraryId, and action are required", http.StatusBadRequest)
		return
	}

	response, err := ic.InteractionService.ProcessAction(r.Context(), request.UserID, request.ItineraryID, request.Action)
	if err != nil {
		log.Println("Error processing action:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// GetConnections fetches the current connections for a user
func (ic *InteractionController) GetConnections(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	connections, err := ic.InteractionService.GetConnections(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"connections": connections,
	})
}
