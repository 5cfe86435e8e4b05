package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatusRoutes are the read-side handlers the router needs.
type StatusRoutes interface {
	GetVenuesNearby(w http.ResponseWriter, r *http.Request)
	GetVenueStatus(w http.ResponseWriter, r *http.Request)
	GetVenueTimeline(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

// ValidationRoutes are the feedback handlers the router needs.
type ValidationRoutes interface {
	SubmitValidation(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	statusHandler     StatusRoutes
	validationHandler ValidationRoutes
	router            *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	statusHandler StatusRoutes,
	validationHandler ValidationRoutes,
	router *mux.Router) *Router {
	return &Router{
		statusHandler:     statusHandler,
		validationHandler: validationHandler,
		router:            router,
	}
}

func (r *Router) RegisterRoutes() {
	// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={radius(float)}
	r.router.HandleFunc("/v1/venues/nearby", r.statusHandler.GetVenuesNearby).Methods("GET")

	r.router.HandleFunc("/v1/venues/{id}/status", r.statusHandler.GetVenueStatus).Methods("GET")
	r.router.HandleFunc("/v1/venues/{id}/timeline", r.statusHandler.GetVenueTimeline).Methods("GET")
	r.router.HandleFunc("/v1/venues/{id}/validations", r.validationHandler.SubmitValidation).Methods("POST")

	r.router.HandleFunc("/ping", r.statusHandler.Ping).Methods("GET")
	r.router.Handle("/metrics", promhttp.Handler()).Methods("GET")
}
