package traffic

import (
	"log"
	"time"
)

// CalendarFeatures are the time/calendar inputs of one scoring pass, derived
// from a timestamp already converted to the venue's local zone.
type CalendarFeatures struct {
	HourOfDay         int
	IsWeekend         bool
	IsSchoolInSession bool
}

// southernHemisphereCountries lists the countries whose school year runs
// roughly February through November. Everything else uses the northern rule.
var southernHemisphereCountries = map[string]bool{
	"AU": true,
	"NZ": true,
	"AR": true,
	"BR": true,
	"CL": true,
	"UY": true,
	"PY": true,
	"BO": true,
	"PE": true,
	"ZA": true,
}

// Northern school-year boundary: September 1 through June 15.
const northernTermEndDay = 15

// ExtractCalendarFeatures derives hour-of-day, weekend and school-term flags
// from a venue-local timestamp. countryCode may be empty, which selects the
// northern-hemisphere calendar.
//
// The school-term rule is a coarse two-hemisphere approximation, not an
// authoritative calendar; it exists to nudge the after-school score band.
func ExtractCalendarFeatures(at time.Time, countryCode string) CalendarFeatures {
	weekday := at.Weekday()
	return CalendarFeatures{
		HourOfDay:         at.Hour(),
		IsWeekend:         weekday == time.Saturday || weekday == time.Sunday,
		IsSchoolInSession: schoolInSession(at, countryCode),
	}
}

func schoolInSession(at time.Time, countryCode string) bool {
	month := at.Month()
	if southernHemisphereCountries[countryCode] {
		return month >= time.February && month <= time.November
	}
	// Northern rule: in session September through mid-June.
	switch {
	case month >= time.September:
		return true
	case month <= time.May:
		return true
	case month == time.June:
		return at.Day() <= northernTermEndDay
	default:
		return false
	}
}

// VenueLocation resolves a venue's IANA zone name, falling back to UTC when
// the zone is missing or unknown. Predictions must use the venue's clock,
// never the server's.
func VenueLocation(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("[Traffic] Unknown timezone %q, falling back to UTC", tz)
		return time.UTC
	}
	return loc
}
