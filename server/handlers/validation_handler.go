package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"courtsense/models/status"
	services "courtsense/service"
)

// ValidationSubmission is the request body for POST /v1/venues/{id}/validations.
// When Accurate is true the actual level is implied; otherwise ActualLevel is
// required and its absence means the two-step flow was abandoned — nothing is
// recorded.
type ValidationSubmission struct {
	UserID         string    `json:"user_id"`
	PredictedLevel string    `json:"predicted_level"`
	Accurate       bool      `json:"accurate"`
	ActualLevel    string    `json:"actual_level,omitempty"`
	PredictionTime time.Time `json:"prediction_time"`
	VisitTime      time.Time `json:"visit_time"`
}

type ValidationHandler struct {
	validationService *services.ValidationService
}

func NewValidationHandler(validationService *services.ValidationService) *ValidationHandler {
	return &ValidationHandler{validationService: validationService}
}

// SubmitValidation handles POST /v1/venues/{id}/validations.
func (h *ValidationHandler) SubmitValidation(w http.ResponseWriter, r *http.Request) {
	venueID := mux.Vars(r)["id"]

	var body ValidationSubmission
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	predicted := status.CrowdLevel(body.PredictedLevel)

	var rec interface{}
	var err error
	if body.Accurate {
		rec, err = h.validationService.ConfirmAccurate(r.Context(),
			venueID, body.UserID, predicted, body.PredictionTime, body.VisitTime)
	} else {
		if body.ActualLevel == "" {
			http.Error(w, "actual_level is required when accurate=false", http.StatusBadRequest)
			return
		}
		rec, err = h.validationService.ReportActual(r.Context(),
			venueID, body.UserID, predicted, status.CrowdLevel(body.ActualLevel),
			body.PredictionTime, body.VisitTime)
	}

	if errors.Is(err, services.ErrIncompleteSubmission) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Printf("[ValidationHandler] Error recording validation for %s: %v", venueID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(rec); err != nil {
		log.Println("[ValidationHandler] Error encoding response:", err)
	}
}
