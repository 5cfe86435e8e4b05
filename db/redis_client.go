package db

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get on a cache miss, so DAOs can treat a
// missing key as "no data" instead of a failure.
var ErrKeyNotFound = errors.New("key not found")

// RedisClient defines the storage operations the DAOs depend on.
type RedisClient interface {
	Set(key, value string) error
	Get(key string) (string, error)
	AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error
	GetLocationsWithinRadius(key string, lat, lon, radius float64) ([]string, error)
	Keys(pattern string) ([]string, error)
	Del(key string) error
	// PushBounded prepends a value to a list and trims it to maxLen entries,
	// newest first. Used for per-venue score history rings.
	PushBounded(key, value string, maxLen int64) error
	Range(key string, start, stop int64) ([]string, error)
	GetContext() context.Context
	Ping() error
}
