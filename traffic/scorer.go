package traffic

import (
	"fmt"
	"time"

	"courtsense/geo"
	"courtsense/models/status"
)

// Per-feature score contributions. Each term is independent and additive so
// the model stays explainable term-by-term.
const (
	eveningPeakContribution  = 8 // hour 17-20
	lunchContribution        = 5 // hour 12-13
	morningContribution      = 4 // hour 6-9
	lateNightContribution    = 1 // hour 22-23 or 0-5
	baselineContribution     = 3 // any other hour
	weekendDaytimeBonus      = 4 // weekend, hour 10-16
	weekendOffHoursBonus     = 1 // weekend, any other hour
	highDensityBonus         = 3 // nearest city density > 15000/km²
	midDensityBonus          = 2 // nearest city density 8000-15000/km²
	afterSchoolBonus         = 3 // school in session, weekday, hour 14-16
	racketWeekendBonus       = 3 // tennis/pickleball, weekend, hour 9-12
	highDensityThreshold     = 15000.0
	midDensityThreshold      = 8000.0
)

// Score-to-level thresholds. Changing these changes every downstream display
// color, label and wait string.
const (
	BusyScoreThreshold     = 14
	ModerateScoreThreshold = 8
)

// ScoreInput carries everything one scoring pass needs. Coordinates must be
// validated by the caller; the scorer treats them as trusted.
type ScoreInput struct {
	VenueID     string
	Lat         float64
	Lon         float64
	VenueType   VenueType
	CountryCode string
	Timezone    string
	Now         time.Time
}

// Prediction is the full outcome of one scoring pass, including the raw
// score (kept for trend history) and the resolved city, if any.
type Prediction struct {
	Score       int
	Level       status.CrowdLevel
	NearestCity *geo.City
	Features    CalendarFeatures
	ComputedAt  time.Time
}

// Scorer forecasts a venue's crowd level from time, calendar, geo-density and
// sport features. It is a deterministic heuristic, not a trained model.
type Scorer struct {
	resolver *geo.Resolver
}

// NewScorer builds a scorer over the injected city table resolver.
func NewScorer(resolver *geo.Resolver) *Scorer {
	return &Scorer{resolver: resolver}
}

// Predict scores the venue at the given instant. The timestamp is converted
// to the venue's zone before any calendar feature is derived.
func (s *Scorer) Predict(in ScoreInput) Prediction {
	local := in.Now.In(VenueLocation(in.Timezone))

	var city *geo.City
	if c, ok := s.resolver.Nearest(in.Lat, in.Lon); ok {
		city = &c
	}

	countryCode := in.CountryCode
	if countryCode == "" && city != nil {
		countryCode = city.CountryCode
	}

	features := ExtractCalendarFeatures(local, countryCode)
	score := computeScore(features, city, in.VenueType)

	return Prediction{
		Score:       score,
		Level:       LevelForScore(score),
		NearestCity: city,
		Features:    features,
		ComputedAt:  in.Now,
	}
}

// Status renders the prediction into the persisted display form.
func (p Prediction) Status(venueID string) status.PredictedStatus {
	ps := status.PredictedStatus{
		VenueID:           venueID,
		Level:             p.Level,
		Label:             p.Level.Label(),
		Color:             p.Level.Color(),
		EstimatedWaitTime: p.Level.EstimatedWait(),
		ComputedAt:        p.ComputedAt,
	}
	if p.NearestCity != nil {
		ps.PopulationImpactNote = fmt.Sprintf("Near %s (%.0f people/km²)",
			p.NearestCity.DisplayName, p.NearestCity.PopulationDensity)
	}
	return ps
}

// LevelForScore maps a raw score to its crowd level. Pure step function:
// 0-7 low, 8-13 moderate, >=14 busy.
func LevelForScore(score int) status.CrowdLevel {
	switch {
	case score >= BusyScoreThreshold:
		return status.LevelBusy
	case score >= ModerateScoreThreshold:
		return status.LevelModerate
	default:
		return status.LevelLow
	}
}

func computeScore(f CalendarFeatures, city *geo.City, vt VenueType) int {
	score := hourBandContribution(f.HourOfDay)
	score += weekendContribution(f)
	score += densityContribution(city)
	score += afterSchoolContribution(f)
	score += racketSportContribution(f, vt)
	return score
}

func hourBandContribution(hour int) int {
	switch {
	case hour >= 17 && hour <= 20:
		return eveningPeakContribution
	case hour >= 12 && hour <= 13:
		return lunchContribution
	case hour >= 6 && hour <= 9:
		return morningContribution
	case hour >= 22 || hour <= 5:
		return lateNightContribution
	default:
		return baselineContribution
	}
}

func weekendContribution(f CalendarFeatures) int {
	if !f.IsWeekend {
		return 0
	}
	if f.HourOfDay >= 10 && f.HourOfDay <= 16 {
		return weekendDaytimeBonus
	}
	return weekendOffHoursBonus
}

func densityContribution(city *geo.City) int {
	if city == nil {
		return 0
	}
	switch {
	case city.PopulationDensity > highDensityThreshold:
		return highDensityBonus
	case city.PopulationDensity >= midDensityThreshold:
		return midDensityBonus
	default:
		return 0
	}
}

func afterSchoolContribution(f CalendarFeatures) int {
	if f.IsSchoolInSession && !f.IsWeekend && f.HourOfDay >= 14 && f.HourOfDay <= 16 {
		return afterSchoolBonus
	}
	return 0
}

func racketSportContribution(f CalendarFeatures, vt VenueType) int {
	if vt.IsRacketSport() && f.IsWeekend && f.HourOfDay >= 9 && f.HourOfDay <= 12 {
		return racketWeekendBonus
	}
	return 0
}
