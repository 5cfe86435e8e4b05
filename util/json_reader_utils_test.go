package util

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempJSON(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestReadCitiesFromJSON(t *testing.T) {
	path := writeTempJSON(t, "cities.json", `[
		{"display_name": "New York", "lat": 40.7128, "lng": -74.0060, "population": 8336817, "population_density": 27016, "country_code": "US"},
		{"display_name": "Chicago", "lat": 41.8781, "lng": -87.6298, "population": 2746388, "population_density": 4574, "country_code": "US"}
	]`)

	cities, err := ReadCitiesFromJSON(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(cities) != 2 {
		t.Fatalf("Expected 2 cities, got %d", len(cities))
	}
	if cities[0].DisplayName != "New York" {
		t.Errorf("Expected New York, got %s", cities[0].DisplayName)
	}
	if cities[0].PopulationDensity != 27016 {
		t.Errorf("Expected density 27016, got %f", cities[0].PopulationDensity)
	}
}

func TestReadCitiesFromJSON_MissingFile(t *testing.T) {
	if _, err := ReadCitiesFromJSON("/does/not/exist.json"); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestReadCitiesFromJSON_Malformed(t *testing.T) {
	path := writeTempJSON(t, "broken.json", `{"not": "a list"`)
	if _, err := ReadCitiesFromJSON(path); err == nil {
		t.Error("Expected an error for malformed JSON")
	}
}

func TestReadVenuesFromJSON(t *testing.T) {
	path := writeTempJSON(t, "venues.json", `[
		{"venue_id": "venue123", "venue_name": "West 4th Courts", "venue_lat": 40.7312, "venue_lng": -74.0005, "sport_type": "basketball", "country_code": "US", "timezone": "America/New_York"}
	]`)

	venues, err := ReadVenuesFromJSON(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(venues) != 1 {
		t.Fatalf("Expected 1 venue, got %d", len(venues))
	}
	v := venues[0]
	if v.VenueID != "venue123" {
		t.Errorf("Expected venue123, got %s", v.VenueID)
	}
	if v.VenueLon != -74.0005 {
		t.Errorf("Expected venue_lng to bind to VenueLon, got %f", v.VenueLon)
	}
	if v.Timezone != "America/New_York" {
		t.Errorf("Expected timezone, got %s", v.Timezone)
	}
}
