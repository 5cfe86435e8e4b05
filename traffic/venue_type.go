package traffic

import "strings"

// VenueType is the sport category of a venue as seen by the scorer.
type VenueType string

const (
	VenueTennis     VenueType = "tennis"
	VenuePickleball VenueType = "pickleball"
	VenueBasketball VenueType = "basketball"
	VenueSoccer     VenueType = "soccer"
	VenueVolleyball VenueType = "volleyball"
	VenueGym        VenueType = "gym"
	VenueGeneral    VenueType = "general"
)

// ParseVenueType normalizes a free-form sport tag. Unknown tags fall back to
// general rather than failing; the scorer must not reject a venue over a tag.
func ParseVenueType(s string) VenueType {
	switch VenueType(strings.ToLower(strings.TrimSpace(s))) {
	case VenueTennis:
		return VenueTennis
	case VenuePickleball:
		return VenuePickleball
	case VenueBasketball:
		return VenueBasketball
	case VenueSoccer:
		return VenueSoccer
	case VenueVolleyball:
		return VenueVolleyball
	case VenueGym:
		return VenueGym
	default:
		return VenueGeneral
	}
}

// IsRacketSport reports whether the type gets the weekend-morning racket
// bonus.
func (t VenueType) IsRacketSport() bool {
	return t == VenueTennis || t == VenuePickleball
}
