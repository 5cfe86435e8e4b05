package traffic

import (
	"testing"
	"time"
)

func TestExtractCalendarFeatures_Weekend(t *testing.T) {
	tests := []struct {
		name    string
		at      time.Time
		weekend bool
	}{
		{"Saturday", time.Date(2025, 1, 18, 11, 0, 0, 0, time.UTC), true},
		{"Sunday", time.Date(2025, 1, 19, 11, 0, 0, 0, time.UTC), true},
		{"Tuesday", time.Date(2025, 1, 14, 11, 0, 0, 0, time.UTC), false},
		{"Friday", time.Date(2025, 1, 17, 11, 0, 0, 0, time.UTC), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := ExtractCalendarFeatures(test.at, "US")
			if f.IsWeekend != test.weekend {
				t.Errorf("Expected IsWeekend=%v, got %v", test.weekend, f.IsWeekend)
			}
		})
	}
}

func TestExtractCalendarFeatures_SchoolTerm(t *testing.T) {
	tests := []struct {
		name      string
		at        time.Time
		country   string
		inSession bool
	}{
		{"Northern October", time.Date(2025, 10, 7, 15, 0, 0, 0, time.UTC), "US", true},
		{"Northern July", time.Date(2025, 7, 8, 15, 0, 0, 0, time.UTC), "US", false},
		{"Northern mid-June boundary in", time.Date(2025, 6, 15, 15, 0, 0, 0, time.UTC), "US", true},
		{"Northern mid-June boundary out", time.Date(2025, 6, 16, 15, 0, 0, 0, time.UTC), "US", false},
		{"Unknown country defaults northern", time.Date(2025, 7, 8, 15, 0, 0, 0, time.UTC), "", false},
		{"Southern July", time.Date(2025, 7, 8, 15, 0, 0, 0, time.UTC), "AU", true},
		{"Southern January", time.Date(2025, 1, 7, 15, 0, 0, 0, time.UTC), "BR", false},
		{"Southern December", time.Date(2025, 12, 9, 15, 0, 0, 0, time.UTC), "ZA", false},
		{"Southern March", time.Date(2025, 3, 11, 15, 0, 0, 0, time.UTC), "AR", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := ExtractCalendarFeatures(test.at, test.country)
			if f.IsSchoolInSession != test.inSession {
				t.Errorf("Expected IsSchoolInSession=%v, got %v", test.inSession, f.IsSchoolInSession)
			}
		})
	}
}

func TestExtractCalendarFeatures_HourOfDay(t *testing.T) {
	f := ExtractCalendarFeatures(time.Date(2025, 1, 14, 18, 30, 0, 0, time.UTC), "US")
	if f.HourOfDay != 18 {
		t.Errorf("Expected hour 18, got %d", f.HourOfDay)
	}
}

func TestVenueLocation(t *testing.T) {
	if loc := VenueLocation(""); loc != time.UTC {
		t.Errorf("Expected UTC for empty zone, got %v", loc)
	}
	if loc := VenueLocation("not/a-zone"); loc != time.UTC {
		t.Errorf("Expected UTC fallback for unknown zone, got %v", loc)
	}
	if loc := VenueLocation("America/New_York"); loc.String() != "America/New_York" {
		t.Errorf("Expected America/New_York, got %v", loc)
	}
}

func TestVenueLocalHourDiffersFromServerHour(t *testing.T) {
	// 18:30 in New York is 23:30 UTC; the prediction must see the venue's hour.
	at := time.Date(2025, 1, 14, 23, 30, 0, 0, time.UTC)
	local := at.In(VenueLocation("America/New_York"))
	f := ExtractCalendarFeatures(local, "US")
	if f.HourOfDay != 18 {
		t.Errorf("Expected venue-local hour 18, got %d", f.HourOfDay)
	}
}
