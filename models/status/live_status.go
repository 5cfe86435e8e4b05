package status

import "time"

// Freshness classifies how recent the data behind a displayed status is.
type Freshness string

const (
	FreshnessLive   Freshness = "live"
	FreshnessStale  Freshness = "stale"
	FreshnessNoData Freshness = "no_data"
)

// Trend describes how the crowd is moving relative to recent history.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendSteady     Trend = "steady"
)

// Signal recency windows. A signal inside the live window counts as
// happening right now; inside the stale window it is shown with its age;
// older signals are ignored and the heuristic prediction stands alone.
const (
	LiveWindowMinutes = 15
	StaleWindowHours  = 6
)

// Confidence bands, mirrored by the display layer.
const (
	ConfidenceHighBand   = 70
	ConfidenceMediumBand = 40
)

// ConfidenceBand maps a 0-100 confidence to its display band.
func ConfidenceBand(confidence int) string {
	switch {
	case confidence >= ConfidenceHighBand:
		return "high"
	case confidence >= ConfidenceMediumBand:
		return "medium"
	default:
		return "low"
	}
}

// LiveSignals are the raw live inputs read for a venue at merge time.
type LiveSignals struct {
	ActiveCheckIns int       `json:"active_check_ins"`
	LastReportAt   time.Time `json:"last_report_at"`
}

// HasReport reports whether any report timestamp exists.
func (s LiveSignals) HasReport() bool {
	return !s.LastReportAt.IsZero()
}

// HasAny reports whether any live signal exists at all.
func (s LiveSignals) HasAny() bool {
	return s.ActiveCheckIns > 0 || s.HasReport()
}

// Condition is one display chip shown next to the status.
type Condition struct {
	Icon     string `json:"icon"`
	Label    string `json:"label"`
	Positive bool   `json:"positive"`
}

// LiveStatus is the merged, display-ready answer to "how busy is this venue
// right now". It is computed on read and never persisted.
type LiveStatus struct {
	VenueID            string       `json:"venue_id"`
	CrowdIcon          string       `json:"crowd_icon"`
	CrowdColor         string       `json:"crowd_color"`
	CrowdLabel         string       `json:"crowd_label"`
	DisplayLevel       DisplayLevel `json:"display_level"`
	DataFreshness      Freshness    `json:"data_freshness"`
	MinutesSinceUpdate *int         `json:"minutes_since_update"`
	Confidence         int          `json:"confidence"`
	ConfidenceBand     string       `json:"confidence_band"`
	ActiveCheckIns     int          `json:"active_check_ins"`
	PredictedWait      string       `json:"predicted_wait"`
	BestTimeToVisit    string       `json:"best_time_to_visit,omitempty"`
	Trend              Trend        `json:"trend"`
	Conditions         []Condition  `json:"conditions"`
}
