package routes

import (
	"wanderlink_server/controllers"
	"wanderlink_server/services"

	"github.com/gorilla/mux"
)

// RegisterInteractionRoutes sets up routes for like/dislike operations under /api/interactions
func RegisterInteractionRoutes(r *mux.Router, interactionService *services.InteractionService) {
	controller := controllers.NewInteractionController(interactionService)

	interactionRouter := r.PathPrefix("/api/interactions").Subrouter()

	interactionRouter.HandleFunc("", controller.HandleAction).Methods("POST")
	interactionRouter.HandleFunc("/connections", controller.GetConnections).Methods("GET")
}
