package handler

import (
	"net/http"

	"github.com/segyhp/loan-penalty/pkg/response"

	"github.com/gorilla/mux"
)

// NewRouter registers the health and API routes
func NewRouter(penaltyHandler *PenaltyHandler, healthHandler *HealthHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware, response.CORSMiddleware)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found: "+r.URL.Path)
	})

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/penalties/calculate", penaltyHandler.Calculate).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/receipts", penaltyHandler.Receipt).Methods(http.MethodPost, http.MethodOptions)

	return router
}
