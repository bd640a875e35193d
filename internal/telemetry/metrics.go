package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationBatches counts calculated recommendation batches by mode and source.
	RecommendationBatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sleep_recommendation_batches_total",
			Help: "Total number of recommendation batches computed",
		},
		[]string{"mode", "source"},
	)

	// RecommendedCycles records the cycle count of every candidate flagged as recommended.
	RecommendedCycles = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sleep_recommended_cycles",
			Help:    "Cycle counts of recommended candidates",
			Buckets: prometheus.LinearBuckets(1, 1, 12),
		},
		[]string{"mode"},
	)

	// AlertEvents counts alert scheduler operations by action and outcome.
	AlertEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sleep_alert_events_total",
			Help: "Total number of alert schedule and cancel operations",
		},
		[]string{"action", "outcome"},
	)
)
