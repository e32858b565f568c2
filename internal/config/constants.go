package config

import "time"

// Configuration defaults
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultServiceName = "chefvoice"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"
	DefaultDBName      = "chefvoice"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultDeadLetterPath = "dead_letter_events.jsonl"
)
