package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	redisdao "courtsense/dao/redis"
	"courtsense/db"
	"courtsense/geo"
	"courtsense/models/venue"
	"courtsense/traffic"
)

var refresherTestCities = []geo.City{
	{DisplayName: "New York", Lat: 40.7128, Lon: -74.0060, PopulationDensity: 27016, Population: 8336817, CountryCode: "US"},
}

func newTestRefresher(maxBatch int) (*StatusRefresherService, *redisdao.RedisVenueDAO, *redisdao.RedisStatusDAO) {
	client := db.NewMockRedisClient(context.Background())
	venueDao := redisdao.NewRedisVenueDAO(client)
	statusDao := redisdao.NewRedisStatusDAO(client)
	scorer := traffic.NewScorer(geo.NewResolver(refresherTestCities))
	return NewStatusRefresherService(venueDao, statusDao, scorer, maxBatch), venueDao, statusDao
}

func TestRefreshAll_StoresStatusForEveryVenue(t *testing.T) {
	refresher, venueDao, statusDao := newTestRefresher(400)

	_ = venueDao.UpsertVenue(venue.Venue{
		VenueID: "venue123", VenueLat: 40.7128, VenueLon: -74.0060, SportType: "basketball",
	})
	_ = venueDao.UpsertVenue(venue.Venue{
		VenueID: "venue456", VenueLat: 40.7130, VenueLon: -74.0050, SportType: "tennis",
	})

	now := time.Date(2025, 1, 14, 18, 30, 0, 0, time.UTC)
	if err := refresher.RefreshAll(now); err != nil {
		t.Fatalf("RefreshAll failed: %v", err)
	}

	for _, id := range []string{"venue123", "venue456"} {
		ps, err := statusDao.GetPredictedStatus(id)
		if err != nil {
			t.Fatalf("GetPredictedStatus(%s) failed: %v", id, err)
		}
		if ps == nil {
			t.Fatalf("Expected a stored status for %s", id)
		}
		assert.Equal(t, id, ps.VenueID)
		assert.True(t, ps.ComputedAt.Equal(now), "every status of a tick carries the shared timestamp")
	}
}

func TestRefreshAll_Idempotent(t *testing.T) {
	refresher, venueDao, statusDao := newTestRefresher(400)

	_ = venueDao.UpsertVenue(venue.Venue{
		VenueID: "venue123", VenueLat: 40.7128, VenueLon: -74.0060, SportType: "basketball",
	})

	now := time.Date(2025, 1, 14, 18, 30, 0, 0, time.UTC)
	_ = refresher.RefreshAll(now)
	first, _ := statusDao.GetPredictedStatus("venue123")

	_ = refresher.RefreshAll(now)
	second, _ := statusDao.GetPredictedStatus("venue123")

	assert.Equal(t, first, second)
}

func TestRefreshAll_SkipsVenuesWithoutCoordinates(t *testing.T) {
	refresher, venueDao, statusDao := newTestRefresher(400)

	_ = venueDao.UpsertVenue(venue.Venue{VenueID: "no-coords", SportType: "basketball"})

	if err := refresher.RefreshAll(time.Date(2025, 1, 14, 18, 30, 0, 0, time.UTC)); err != nil {
		t.Fatalf("RefreshAll failed: %v", err)
	}

	ps, err := statusDao.GetPredictedStatus("no-coords")
	if err != nil {
		t.Fatalf("GetPredictedStatus failed: %v", err)
	}
	if ps != nil {
		t.Errorf("Expected no status for a venue without coordinates, got %+v", ps)
	}
}

func TestRefreshAll_SmallBatchesStillStoreEverything(t *testing.T) {
	// A batch bound below the venue count forces intermediate flushes plus a
	// trailing partial one.
	refresher, venueDao, statusDao := newTestRefresher(2)

	ids := []string{"a", "b", "c", "d", "e"}
	for i, id := range ids {
		_ = venueDao.UpsertVenue(venue.Venue{
			VenueID:  id,
			VenueLat: 40.7128 + float64(i)*0.001,
			VenueLon: -74.0060,
		})
	}

	if err := refresher.RefreshAll(time.Date(2025, 1, 14, 18, 30, 0, 0, time.UTC)); err != nil {
		t.Fatalf("RefreshAll failed: %v", err)
	}

	for _, id := range ids {
		ps, err := statusDao.GetPredictedStatus(id)
		if err != nil {
			t.Fatalf("GetPredictedStatus(%s) failed: %v", id, err)
		}
		if ps == nil {
			t.Errorf("Expected a stored status for %s", id)
		}
	}
}

func TestRefreshAll_AppendsToScoreHistory(t *testing.T) {
	refresher, venueDao, statusDao := newTestRefresher(400)

	_ = venueDao.UpsertVenue(venue.Venue{
		VenueID: "venue123", VenueLat: 40.7128, VenueLon: -74.0060, SportType: "basketball",
	})

	base := time.Date(2025, 1, 14, 18, 30, 0, 0, time.UTC)
	_ = refresher.RefreshAll(base)
	_ = refresher.RefreshAll(base.Add(30 * time.Minute))

	history, err := statusDao.GetScoreHistory("venue123")
	if err != nil {
		t.Fatalf("GetScoreHistory failed: %v", err)
	}
	assert.Len(t, history, 2)
}
