package status

import "time"

// PredictedStatus is the persisted outcome of one scoring pass for a venue.
// Exactly one record exists per venue; each batch tick overwrites it.
type PredictedStatus struct {
	VenueID              string     `json:"venue_id"`
	Level                CrowdLevel `json:"level"`
	Label                string     `json:"label"`
	Color                string     `json:"color"`
	EstimatedWaitTime    string     `json:"estimated_wait_time"`
	PopulationImpactNote string     `json:"population_impact_note,omitempty"`
	ComputedAt           time.Time  `json:"computed_at"`
}
