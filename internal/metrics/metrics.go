// README: Prometheus counters and histograms for plan generation and narration.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PlanRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_plan_requests_total",
			Help: "Total number of itinerary plan requests by outcome",
		},
		[]string{"outcome"},
	)

	GenerationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_generation_failures_total",
			Help: "Total number of story model failures by kind",
		},
		[]string{"kind"},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "story_generation_duration_seconds",
			Help: "Duration of story model calls in seconds",
		},
	)

	NarrationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_narration_requests_total",
			Help: "Total number of narration requests by outcome",
		},
		[]string{"outcome"},
	)

	NarrationBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "story_narration_bytes_total",
			Help: "Total audio bytes returned by the speech backend",
		},
	)

	PlaceLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_place_lookups_total",
			Help: "Total number of place enrichment lookups by outcome",
		},
		[]string{"outcome"},
	)
)
