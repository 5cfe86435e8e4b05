package services

import (
	"fmt"
	"log"

	redisdao "courtsense/dao/redis"
	"courtsense/models/venue"
	"courtsense/util"
)

// VenueService owns the venue catalog.
type VenueService struct {
	venueDao *redisdao.RedisVenueDAO
}

// NewVenueService constructs a new VenueService with Redis dependency injection.
func NewVenueService(venueDao *redisdao.RedisVenueDAO) *VenueService {
	return &VenueService{venueDao: venueDao}
}

func (vs *VenueService) GetVenuesNearby(lat, lon, radius float64) ([]venue.Venue, error) {
	return vs.venueDao.GetNearbyVenues(lat, lon, radius)
}

func (vs *VenueService) GetVenue(venueID string) (*venue.Venue, error) {
	return vs.venueDao.GetVenue(venueID)
}

func (vs *VenueService) GetAllVenues() ([]venue.Venue, error) {
	return vs.venueDao.ListAllVenues()
}

// SeedFromFile upserts every venue from a JSON resource, so a fresh process
// starts with a catalog. Venues without coordinates are kept in the catalog
// but will be skipped by the refresher.
func (vs *VenueService) SeedFromFile(path string) (int, error) {
	venues, err := util.ReadVenuesFromJSON(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read venue seed: %w", err)
	}

	seeded := 0
	for _, v := range venues {
		if err := vs.venueDao.UpsertVenue(v); err != nil {
			log.Printf("[VenueService] Failed to seed venue %s: %v", v.VenueID, err)
			continue
		}
		seeded++
	}
	log.Printf("[VenueService] Seeded %d/%d venues from %s", seeded, len(venues), path)
	return seeded, nil
}
