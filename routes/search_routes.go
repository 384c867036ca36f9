package routes

import (
	"wanderlink_server/controllers"
	"wanderlink_server/services"

	"github.com/gorilla/mux"
)

// RegisterSearchRoutes sets up routes for matching operations under /api/search
func RegisterSearchRoutes(r *mux.Router, sessions *services.SessionManager) {
	controller := controllers.NewSearchController(sessions)

	searchRouter := r.PathPrefix("/api/search").Subrouter()

	searchRouter.HandleFunc("", controller.HandleSearch).Methods("POST")
	searchRouter.HandleFunc("", controller.HandleState).Methods("GET")
	searchRouter.HandleFunc("/next", controller.HandleNext).Methods("POST")
	searchRouter.HandleFunc("/refresh", controller.HandleForceRefresh).Methods("POST")
}
