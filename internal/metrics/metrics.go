package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	RecipesSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecipesSaved,
			Help: HelpTextRecipesSaved,
		},
		[]string{LabelRecipeType},
	)

	RecipesUpdated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecipesUpdated,
			Help: HelpTextRecipesUpdated,
		},
		[]string{LabelRecipeType, LabelChangeType},
	)

	RecipesDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecipesDeleted,
			Help: HelpTextRecipesDeleted,
		},
		[]string{LabelRecipeType},
	)

	VersionsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameVersionsCreated,
			Help: HelpTextVersionsCreated,
		},
		[]string{LabelRecipeType, LabelChangeType},
	)

	SearchesPerformed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSearchesPerformed,
			Help: HelpTextSearchesPerformed,
		},
	)

	SearchTierHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSearchTierHits,
			Help: HelpTextSearchTierHits,
		},
		[]string{LabelTier},
	)
)
