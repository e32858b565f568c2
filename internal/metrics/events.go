package metrics

import (
	"context"

	"github.com/plateful/chefvoice/internal/event"
	"github.com/plateful/chefvoice/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.RecipeSaved,
		event.RecipeUpdated,
		event.RecipeDeleted,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch payload := evt.Payload.(type) {
	case event.RecipeSavedPayloadV1:
		RecipesSaved.WithLabelValues(string(payload.RecipeType)).Inc()
		// Initial save creates version 1.0
		VersionsCreated.WithLabelValues(string(payload.RecipeType), "initial").Inc()

	case event.RecipeUpdatedPayloadV1:
		RecipesUpdated.WithLabelValues(string(payload.RecipeType), string(payload.ChangeType)).Inc()
		VersionsCreated.WithLabelValues(string(payload.RecipeType), string(payload.ChangeType)).Inc()

	case event.RecipeDeletedPayloadV1:
		RecipesDeleted.WithLabelValues(string(payload.RecipeType)).Inc()

	default:
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
