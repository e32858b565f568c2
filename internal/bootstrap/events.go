package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/plateful/chefvoice/internal/config"
	"github.com/plateful/chefvoice/internal/event"
	"github.com/plateful/chefvoice/internal/metrics"
	"github.com/plateful/chefvoice/internal/mirror"
)

// InitializeEventSystem creates the event bus and resilient publisher, and
// registers the standing consumers: the metrics collector always, the
// spreadsheet mirror when enabled in config.
// Returns the bus services publish through (the resilient wrapper) and the
// underlying memory bus consumers subscribe on.
func InitializeEventSystem(cfg *config.Config) (*event.ResilientPublisher, *event.MemoryBus, error) {
	eventBus := event.NewMemoryBus()

	deadLetterPath := cfg.DeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = EventDefaultDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	publisher := event.NewResilientPublisher(eventBus, event.ResilientConfig{
		MaxRetries:     EventDefaultMaxRetries,
		RetryDelay:     EventDefaultRetryDelay,
		DeadLetterPath: deadLetterPath,
		OnFailure: func(eventType event.Type) {
			metrics.EventHandlerErrors.WithLabelValues(string(eventType)).Inc()
		},
	})

	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(eventBus); err != nil {
		return nil, nil, err
	}
	slog.Info(LogMsgMetricsRegistered)

	if cfg.MirrorEnabled {
		mirror.NewWebhook(cfg.MirrorWebhookURL).Register(eventBus)
		slog.Info(LogMsgMirrorRegistered, "url", cfg.MirrorWebhookURL)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", deadLetterPath)

	return publisher, eventBus, nil
}
