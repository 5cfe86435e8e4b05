package venue

import "fmt"

// Venue represents a sports venue known to the system.
type Venue struct {
	VenueID      string  `json:"venue_id"`
	VenueName    string  `json:"venue_name"`
	VenueAddress string  `json:"venue_address"`
	VenueLat     float64 `json:"venue_lat"`
	VenueLon     float64 `json:"venue_lng"`

	// SportType is a free-form tag ("tennis", "basketball", ...); unknown
	// values are scored as a general venue.
	SportType string `json:"sport_type,omitempty"`

	// CountryCode is the ISO 3166-1 alpha-2 country of the venue, used for
	// the school-term calendar rule.
	CountryCode string `json:"country_code,omitempty"`

	// Timezone is the IANA zone name of the venue. Predictions are about the
	// venue's clock, so hour-of-day features are derived in this zone.
	Timezone string `json:"timezone,omitempty"`
}

// HasCoordinates reports whether the venue carries a usable location.
// (0, 0) is treated as unknown.
func (v *Venue) HasCoordinates() bool {
	return v.VenueLat != 0 || v.VenueLon != 0
}

func (v *Venue) ToString() string {
	return fmt.Sprintf("Venue(name=%s, sport=%s, lat=%f, lon=%f)",
		v.VenueName, v.SportType, v.VenueLat, v.VenueLon)
}
