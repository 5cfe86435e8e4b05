package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	redisdao "courtsense/dao/redis"
	"courtsense/models/status"
	"courtsense/models/venue"
	"courtsense/traffic"
)

// ErrVenueNotFound is returned when a status is requested for an unknown venue.
var ErrVenueNotFound = errors.New("venue not found")

// Confidence model. Live signals start at the high band and grow with
// check-in volume and recency; stale signals decay linearly toward the
// prediction-only floor; a bare heuristic prediction sits at the floor.
const (
	confidenceLiveBase       = status.ConfidenceHighBand
	confidenceCheckInWeight  = 5
	confidenceCheckInCap     = 25
	confidenceRecencyBonus   = 5
	confidenceRecencyMinutes = 5
	confidenceStaleCeiling   = 65
	confidencePredictionOnly = 35
)

// Display-level promotion thresholds driven by live check-in volume.
const (
	packedCheckInThreshold = 8
	busyCheckInThreshold   = 4
)

// trendSlopeThreshold is the minimum per-sample regression slope treated as
// a real movement rather than noise.
const trendSlopeThreshold = 0.35

// LiveStatusService answers "what should the user see right now" for a venue
// by merging its persisted prediction with live signals.
type LiveStatusService struct {
	venueDao  *redisdao.RedisVenueDAO
	statusDao *redisdao.RedisStatusDAO
	scorer    *traffic.Scorer
}

// NewLiveStatusService constructs a new LiveStatusService with dependencies.
func NewLiveStatusService(
	venueDao *redisdao.RedisVenueDAO,
	statusDao *redisdao.RedisStatusDAO,
	scorer *traffic.Scorer,
) *LiveStatusService {
	return &LiveStatusService{
		venueDao:  venueDao,
		statusDao: statusDao,
		scorer:    scorer,
	}
}

// GetLiveStatus fetches the venue's prediction, live signals and score
// history, and merges them into the display status.
func (ls *LiveStatusService) GetLiveStatus(venueID string, now time.Time) (*status.LiveStatus, error) {
	v, err := ls.venueDao.GetVenue(venueID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVenueNotFound
	}

	pred, err := ls.statusDao.GetPredictedStatus(venueID)
	if err != nil {
		return nil, err
	}
	signals, err := ls.statusDao.GetLiveSignals(venueID)
	if err != nil {
		return nil, err
	}
	history, err := ls.statusDao.GetScoreHistory(venueID)
	if err != nil {
		return nil, err
	}

	merged := MergeLiveStatus(venueID, pred, signals, history, now)
	if v.HasCoordinates() {
		merged.BestTimeToVisit = ls.bestTimeToVisit(v, now)
	}
	return &merged, nil
}

// MergeLiveStatus combines an optional prediction with live signals into the
// display status. Pure: no I/O, no clock reads, fully determined by its
// arguments.
func MergeLiveStatus(venueID string, pred *status.PredictedStatus, sig status.LiveSignals, history []int, now time.Time) status.LiveStatus {
	liveWindow := status.LiveWindowMinutes * time.Minute
	staleWindow := status.StaleWindowHours * time.Hour

	reportAge := time.Duration(math.MaxInt64)
	if sig.HasReport() {
		reportAge = now.Sub(sig.LastReportAt)
	}

	isLive := sig.ActiveCheckIns > 0 || reportAge <= liveWindow
	isStale := !isLive && reportAge <= staleWindow

	out := status.LiveStatus{
		VenueID:        venueID,
		ActiveCheckIns: sig.ActiveCheckIns,
		Trend:          trendFromHistory(history),
	}

	// Nothing to show at all: say so explicitly, never fabricate a level.
	if pred == nil && !isLive && !isStale {
		out.DataFreshness = status.FreshnessNoData
		out.DisplayLevel = status.DisplayQuiet
		out.CrowdLabel = "No data"
		out.CrowdIcon = "help-circle"
		out.CrowdColor = status.ColorLow
		out.PredictedWait = "Unknown"
		out.ConfidenceBand = status.ConfidenceBand(out.Confidence)
		return out
	}

	switch {
	case isLive:
		out.DataFreshness = status.FreshnessLive
		out.Confidence = liveConfidence(sig, reportAge)
	case isStale:
		out.DataFreshness = status.FreshnessStale
		minutes := int(reportAge.Minutes())
		out.MinutesSinceUpdate = &minutes
		out.Confidence = staleConfidence(minutes)
	default:
		// Prediction only: classified stale, but with no timestamp to show.
		out.DataFreshness = status.FreshnessStale
		out.Confidence = confidencePredictionOnly
	}
	out.ConfidenceBand = status.ConfidenceBand(out.Confidence)

	level := displayLevel(pred, sig, isLive)
	out.DisplayLevel = level
	out.CrowdLabel = displayLabel(level)
	out.CrowdIcon = displayIcon(level)
	out.CrowdColor = displayColor(level)

	if pred != nil {
		out.PredictedWait = pred.EstimatedWaitTime
	} else {
		out.PredictedWait = "Unknown"
	}

	out.Conditions = buildConditions(pred, sig)
	return out
}

// displayLevel maps the canonical 3-level prediction onto the 5-level display
// scale: low→quiet, moderate→active, busy→busy. Live check-in volume promotes
// busy to packed and demotes a quiet venue with a fresh zero-check-in signal
// to dead. Without a prediction the level comes from check-ins alone.
func displayLevel(pred *status.PredictedStatus, sig status.LiveSignals, isLive bool) status.DisplayLevel {
	if pred == nil {
		switch {
		case sig.ActiveCheckIns >= packedCheckInThreshold:
			return status.DisplayPacked
		case sig.ActiveCheckIns >= busyCheckInThreshold:
			return status.DisplayBusy
		case sig.ActiveCheckIns >= 1:
			return status.DisplayActive
		default:
			return status.DisplayQuiet
		}
	}

	var base status.DisplayLevel
	switch pred.Level {
	case status.LevelBusy:
		base = status.DisplayBusy
	case status.LevelModerate:
		base = status.DisplayActive
	default:
		base = status.DisplayQuiet
	}

	if isLive {
		if sig.ActiveCheckIns >= packedCheckInThreshold {
			return status.DisplayPacked
		}
		if sig.ActiveCheckIns == 0 && base == status.DisplayQuiet {
			return status.DisplayDead
		}
	}
	return base
}

func displayLabel(l status.DisplayLevel) string {
	switch l {
	case status.DisplayDead:
		return "Dead"
	case status.DisplayQuiet:
		return "Quiet"
	case status.DisplayActive:
		return "Active"
	case status.DisplayBusy:
		return "Busy"
	default:
		return "Packed"
	}
}

func displayIcon(l status.DisplayLevel) string {
	switch l {
	case status.DisplayDead:
		return "moon"
	case status.DisplayQuiet:
		return "user"
	case status.DisplayPacked:
		return "flame"
	default:
		return "users"
	}
}

func displayColor(l status.DisplayLevel) string {
	switch l {
	case status.DisplayDead, status.DisplayQuiet:
		return status.ColorLow
	case status.DisplayActive:
		return status.ColorModerate
	default:
		return status.ColorBusy
	}
}

// liveConfidence grows with check-in volume and report recency, capped at 100.
func liveConfidence(sig status.LiveSignals, reportAge time.Duration) int {
	conf := confidenceLiveBase

	boost := sig.ActiveCheckIns * confidenceCheckInWeight
	if boost > confidenceCheckInCap {
		boost = confidenceCheckInCap
	}
	conf += boost

	if reportAge <= confidenceRecencyMinutes*time.Minute {
		conf += confidenceRecencyBonus
	}

	if conf > 100 {
		conf = 100
	}
	return conf
}

// staleConfidence decays linearly from the stale ceiling down to the
// prediction-only floor as the last signal ages across the stale window.
func staleConfidence(minutesSince int) int {
	staleSpan := float64(status.StaleWindowHours*60 - status.LiveWindowMinutes)
	aged := float64(minutesSince - status.LiveWindowMinutes)
	if aged < 0 {
		aged = 0
	}
	if aged > staleSpan {
		aged = staleSpan
	}
	conf := float64(confidenceStaleCeiling) - (float64(confidenceStaleCeiling-confidencePredictionOnly) * aged / staleSpan)
	return int(math.Round(conf))
}

// trendFromHistory fits a least-squares line through the recent scores.
// Fewer than two samples defaults to steady.
func trendFromHistory(history []int) status.Trend {
	if len(history) < 2 {
		return status.TrendSteady
	}
	xs := make([]float64, len(history))
	ys := make([]float64, len(history))
	for i, s := range history {
		xs[i] = float64(i)
		ys[i] = float64(s)
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	switch {
	case slope >= trendSlopeThreshold:
		return status.TrendIncreasing
	case slope <= -trendSlopeThreshold:
		return status.TrendDecreasing
	default:
		return status.TrendSteady
	}
}

func buildConditions(pred *status.PredictedStatus, sig status.LiveSignals) []status.Condition {
	var conditions []status.Condition
	if pred != nil {
		conditions = append(conditions, status.Condition{
			Icon:     "clock",
			Label:    pred.EstimatedWaitTime,
			Positive: pred.Level == status.LevelLow,
		})
		if pred.PopulationImpactNote != "" {
			conditions = append(conditions, status.Condition{
				Icon:     "building",
				Label:    pred.PopulationImpactNote,
				Positive: false,
			})
		}
	}
	if sig.ActiveCheckIns > 0 {
		conditions = append(conditions, status.Condition{
			Icon:     "map-pin",
			Label:    fmt.Sprintf("%d checked in now", sig.ActiveCheckIns),
			Positive: false,
		})
	}
	return conditions
}

// bestTimeToVisit scans the next 24 hours of the venue's local day and picks
// the lowest-scoring hour.
func (ls *LiveStatusService) bestTimeToVisit(v *venue.Venue, now time.Time) string {
	local := now.In(traffic.VenueLocation(v.Timezone))

	bestScore := math.MaxInt32
	var bestAt time.Time
	for offset := 1; offset <= 24; offset++ {
		at := local.Truncate(time.Hour).Add(time.Duration(offset) * time.Hour)
		p := ls.scorer.Predict(traffic.ScoreInput{
			VenueID:     v.VenueID,
			Lat:         v.VenueLat,
			Lon:         v.VenueLon,
			VenueType:   traffic.ParseVenueType(v.SportType),
			CountryCode: v.CountryCode,
			Timezone:    v.Timezone,
			Now:         at,
		})
		if p.Score < bestScore {
			bestScore = p.Score
			bestAt = at
		}
	}

	if bestAt.YearDay() != local.YearDay() {
		return bestAt.Format("Mon 3 PM")
	}
	return bestAt.Format("3 PM")
}

// GetDailyTimeline scores every hour of the venue's local day, serving the
// timeline bars surface.
func (ls *LiveStatusService) GetDailyTimeline(venueID string, now time.Time) ([]status.TimelineSlot, error) {
	v, err := ls.venueDao.GetVenue(venueID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVenueNotFound
	}

	loc := traffic.VenueLocation(v.Timezone)
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	slots := make([]status.TimelineSlot, 0, 24)
	for hour := 0; hour < 24; hour++ {
		at := midnight.Add(time.Duration(hour) * time.Hour)
		p := ls.scorer.Predict(traffic.ScoreInput{
			VenueID:     v.VenueID,
			Lat:         v.VenueLat,
			Lon:         v.VenueLon,
			VenueType:   traffic.ParseVenueType(v.SportType),
			CountryCode: v.CountryCode,
			Timezone:    v.Timezone,
			Now:         at,
		})
		slots = append(slots, status.TimelineSlot{
			Hour:  hour,
			Score: p.Score,
			Level: p.Level,
			Label: p.Level.Label(),
			Color: p.Level.Color(),
		})
	}
	return slots, nil
}
