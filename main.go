package main

import (
	"log"
	"os"
	"time"

	"courtsense/config"
	"courtsense/di"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "prod"
	}

	cfg := config.Load()
	container := di.NewContainer(env, cfg)

	// Seed the venue catalog so a fresh process has something to score.
	seedPath := config.GetResourcePath(config.VENUES_SEED_RESOURCE)
	if _, err := os.Stat(seedPath); err == nil {
		if _, err := container.VenueService.SeedFromFile(seedPath); err != nil {
			log.Printf("[Main] Venue seeding failed: %v", err)
		}
	}

	// First pass immediately, then on the schedule.
	if err := container.StatusRefresherService.RefreshAll(time.Now().UTC()); err != nil {
		log.Printf("[Main] Initial refresh failed: %v", err)
	}
	container.StatusRefresherService.StartPeriodicJob(
		time.Duration(cfg.RefreshIntervalMinutes) * time.Minute)

	container.CourtSenseHttpServer.Start()
}
