package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StatusesComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courtsense_refresher_statuses_computed_total",
		Help: "Total number of predicted statuses computed.",
	})
	StatusesStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courtsense_refresher_statuses_stored_total",
		Help: "Total number of predicted statuses stored.",
	})
	StatusFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courtsense_refresher_failures_total",
		Help: "Total number of per-venue failures during refresh ticks.",
	})
	RefreshCycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "courtsense_refresher_cycle_duration_seconds",
		Help:    "Duration of a full refresh tick.",
		Buckets: []float64{0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
	})
	ValidationsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courtsense_validations_recorded_total",
		Help: "Total number of validation records persisted.",
	})
)
