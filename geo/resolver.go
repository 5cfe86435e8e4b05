package geo

import (
	"fmt"
	"math"
)

// City is one entry of the static population-center reference table.
type City struct {
	CoordinateKey     string  `json:"coordinate_key,omitempty"`
	DisplayName       string  `json:"display_name"`
	Lat               float64 `json:"lat"`
	Lon               float64 `json:"lng"`
	PopulationDensity float64 `json:"population_density"`
	Population        int     `json:"population"`
	CountryCode       string  `json:"country_code"`
}

// MaxMatchDistanceDegrees is the widest accepted distance between a venue and
// a population center, in Euclidean degrees. Roughly 300 miles at
// mid-latitudes; intentionally not great-circle distance, so results stay
// bit-for-bit reproducible against the reference table.
const MaxMatchDistanceDegrees = 5.0

// Resolver maps a coordinate to its nearest known population center.
// The table is copied at construction and never mutated, so lookups are safe
// for concurrent use and deterministic across runs.
type Resolver struct {
	cities []City
}

// NewResolver builds a resolver over the given city table. Ties between
// equally distant cities resolve to the earlier table entry, so the order of
// the slice is part of the contract.
func NewResolver(cities []City) *Resolver {
	table := make([]City, len(cities))
	copy(table, cities)
	for i := range table {
		if table[i].CoordinateKey == "" {
			table[i].CoordinateKey = coordinateKey(table[i].Lat, table[i].Lon)
		}
	}
	return &Resolver{cities: table}
}

// Nearest returns the closest city within MaxMatchDistanceDegrees of the
// coordinate, or ok=false when none qualifies. The scan is linear; the table
// is small and static.
func (r *Resolver) Nearest(lat, lon float64) (City, bool) {
	var best City
	bestDist := math.MaxFloat64
	found := false

	for _, c := range r.cities {
		d := euclideanDegrees(lat, lon, c.Lat, c.Lon)
		if d <= MaxMatchDistanceDegrees && d < bestDist {
			best = c
			bestDist = d
			found = true
		}
	}
	return best, found
}

// Size returns the number of cities in the table.
func (r *Resolver) Size() int {
	return len(r.cities)
}

func euclideanDegrees(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat1 - lat2
	dLon := lon1 - lon2
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

func coordinateKey(lat, lon float64) string {
	return fmt.Sprintf("%.1f,%.1f", lat, lon)
}
