package services

import (
	"log"
	"time"

	redisdao "courtsense/dao/redis"
	"courtsense/metrics"
	"courtsense/models/status"
	"courtsense/traffic"
)

// statusWrite pairs one venue's freshly computed status with its raw score,
// buffered until the batch flushes.
type statusWrite struct {
	status status.PredictedStatus
	score  int
}

// StatusRefresherService periodically rescores every venue with coordinates
// and overwrites its predicted status. Each tick is a full, idempotent
// recomputation; a failed venue is simply picked up again next tick.
type StatusRefresherService struct {
	venueDao  *redisdao.RedisVenueDAO
	statusDao *redisdao.RedisStatusDAO
	scorer    *traffic.Scorer
	maxBatch  int
}

// NewStatusRefresherService constructs a new refresher with dependencies.
// maxBatch bounds how many writes are buffered before a flush.
func NewStatusRefresherService(
	venueDao *redisdao.RedisVenueDAO,
	statusDao *redisdao.RedisStatusDAO,
	scorer *traffic.Scorer,
	maxBatch int,
) *StatusRefresherService {
	if maxBatch <= 0 {
		maxBatch = 1
	}
	return &StatusRefresherService{
		venueDao:  venueDao,
		statusDao: statusDao,
		scorer:    scorer,
		maxBatch:  maxBatch,
	}
}

// StartPeriodicJob launches the background loop at the given interval.
func (sr *StatusRefresherService) StartPeriodicJob(interval time.Duration) {
	go sr.startPeriodicJob(interval)
}

func (sr *StatusRefresherService) startPeriodicJob(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		log.Println("[StatusRefresherService] Running periodic status refresh tick.")
		if err := sr.RefreshAll(time.Now().UTC()); err != nil {
			log.Printf("[StatusRefresherService] RefreshAll returned error: %v", err)
		} else {
			log.Println("[StatusRefresherService] RefreshAll completed successfully.")
		}
	}
}

// RefreshAll rescores every venue using the single shared timestamp, so all
// statuses of one tick are internally consistent. Per-venue failures log and
// skip; only a failure to list the catalog aborts the tick.
func (sr *StatusRefresherService) RefreshAll(now time.Time) error {
	start := time.Now()
	defer func() {
		metrics.RefreshCycleDuration.Observe(time.Since(start).Seconds())
	}()

	venues, err := sr.venueDao.ListAllVenues()
	if err != nil {
		log.Printf("[StatusRefresherService] Failed to list venues: %v", err)
		return err
	}
	log.Printf("[StatusRefresherService] Scoring %d venues at %s", len(venues), now.Format(time.RFC3339))

	batch := make([]statusWrite, 0, sr.maxBatch)
	scored, stored := 0, 0

	for _, v := range venues {
		if !v.HasCoordinates() {
			log.Printf("[StatusRefresherService] Skipping venue %s: no coordinates", v.VenueID)
			continue
		}

		prediction := sr.scorer.Predict(traffic.ScoreInput{
			VenueID:     v.VenueID,
			Lat:         v.VenueLat,
			Lon:         v.VenueLon,
			VenueType:   traffic.ParseVenueType(v.SportType),
			CountryCode: v.CountryCode,
			Timezone:    v.Timezone,
			Now:         now,
		})
		metrics.StatusesComputed.Inc()
		scored++

		batch = append(batch, statusWrite{status: prediction.Status(v.VenueID), score: prediction.Score})
		if len(batch) >= sr.maxBatch {
			stored += sr.flushBatch(batch)
			batch = batch[:0]
		}
	}

	// Flush the trailing partial batch.
	if len(batch) > 0 {
		stored += sr.flushBatch(batch)
	}

	log.Printf("[StatusRefresherService] Tick done: %d scored, %d stored (%.2fs)",
		scored, stored, time.Since(start).Seconds())
	return nil
}

func (sr *StatusRefresherService) flushBatch(batch []statusWrite) int {
	stored := 0
	for _, w := range batch {
		if err := sr.statusDao.SetPredictedStatus(w.status); err != nil {
			metrics.StatusFailures.Inc()
			log.Printf("[StatusRefresherService] Failed to store status for %s: %v", w.status.VenueID, err)
			continue
		}
		if err := sr.statusDao.AppendScore(w.status.VenueID, w.score); err != nil {
			metrics.StatusFailures.Inc()
			log.Printf("[StatusRefresherService] Failed to append score for %s: %v", w.status.VenueID, err)
			continue
		}
		metrics.StatusesStored.Inc()
		stored++
	}
	return stored
}
