package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameRecipesSaved      = "recipes_saved_total"
	MetricNameRecipesUpdated    = "recipes_updated_total"
	MetricNameRecipesDeleted    = "recipes_deleted_total"
	MetricNameVersionsCreated   = "recipe_versions_created_total"
	MetricNameSearchesPerformed = "searches_performed_total"
	MetricNameSearchTierHits    = "search_tier_hits_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextRecipesSaved      = "Total number of recipes saved"
	HelpTextRecipesUpdated    = "Total number of recipe updates applied"
	HelpTextRecipesDeleted    = "Total number of recipes deleted"
	HelpTextVersionsCreated   = "Total number of recipe versions created"
	HelpTextSearchesPerformed = "Total number of recipe searches performed"
	HelpTextSearchTierHits    = "Search results by resolving tier"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelRecipeType = "recipe_type"
	LabelChangeType = "change_type"
	LabelTier       = "tier"
)

// Search tier label values
const (
	TierExact    = "exact"
	TierContains = "contains"
	TierKeyword  = "keyword"
	TierNone     = "none"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
