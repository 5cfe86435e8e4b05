package util

import (
	"encoding/json"
	"fmt"
	"os"

	"courtsense/geo"
	"courtsense/models/venue"
)

// ReadCitiesFromJSON loads the static population-center table from disk.
func ReadCitiesFromJSON(filePath string) ([]geo.City, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var cities []geo.City
	if err := json.Unmarshal(data, &cities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal city table: %w", err)
	}
	return cities, nil
}

// ReadVenuesFromJSON loads a venue seed list from disk.
func ReadVenuesFromJSON(filePath string) ([]venue.Venue, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var venues []venue.Venue
	if err := json.Unmarshal(data, &venues); err != nil {
		return nil, fmt.Errorf("failed to unmarshal venues: %w", err)
	}
	return venues, nil
}
