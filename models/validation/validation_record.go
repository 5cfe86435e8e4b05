package validation

import (
	"time"

	"courtsense/models/status"
)

// Record is one user-submitted judgment of whether a past prediction matched
// reality. Records are append-only: never mutated or deleted, kept for
// offline recalibration of the scorer.
type Record struct {
	VenueID        string            `json:"venue_id"`
	PredictionTime time.Time         `json:"prediction_time"`
	VisitTime      time.Time         `json:"visit_time"`
	PredictedLevel status.CrowdLevel `json:"predicted_level"`
	ActualLevel    status.CrowdLevel `json:"actual_level"`
	WasAccurate    bool              `json:"was_accurate"`
	UserID         string            `json:"user_id"`
	SubmittedAt    time.Time         `json:"submitted_at"`
}
