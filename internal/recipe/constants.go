package recipe

import "time"

// Search cascade limits
const (
	// KeywordMatchLimit caps rows fetched per keyword per recipe type.
	KeywordMatchLimit = 5

	// SampleNamesLimit caps the existing-name sample returned on zero hits.
	SampleNamesLimit = 5

	// MaxShortTokenLength is the longest token the keyword splitter drops.
	// Tokens this short ("of", "a") match too broadly to be useful, unless
	// the whole query is short tokens.
	MaxShortTokenLength = 2
)

// DefaultListLimit is the per-type cap applied when the caller does not
// supply one.
const DefaultListLimit = 20

// Recipe detail cache sizing
const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 5 * time.Minute
)

// Log messages
const (
	LogMsgRecipeSaved        = "Recipe saved"
	LogMsgRecipeUpdated      = "Recipe updated"
	LogMsgRecipeDeleted      = "Recipe deleted"
	LogMsgEventPublishFailed = "Failed to publish event"
	LogMsgSampleNamesFailed  = "Failed to fetch sample recipe names"
	LogMsgSearchResolved     = "Search resolved"
)
