package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/plateful/chefvoice/internal/domain"
)

// Type represents the type of an event.
type Type string

// Events emitted by the recipe core after a successful commit. Consumers
// (the spreadsheet mirror, notably) run after the fact; their failures never
// affect the outcome already returned to the caller.
const (
	RecipeSaved   Type = "recipe.saved"
	RecipeUpdated Type = "recipe.updated"
	RecipeDeleted Type = "recipe.deleted"
)

// Event represents a generic event in the system.
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g. "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// RecipeSavedPayloadV1 is the typed payload for recipe save events.
type RecipeSavedPayloadV1 struct {
	RecipeID   string            `json:"recipe_id"`
	ChefID     string            `json:"chef_id"`
	RecipeType domain.RecipeType `json:"recipe_type"`
	Name       string            `json:"name"`
	Timestamp  int64             `json:"timestamp"`
}

// RecipeUpdatedPayloadV1 is the typed payload for recipe update events.
type RecipeUpdatedPayloadV1 struct {
	RecipeID      string            `json:"recipe_id"`
	ChefID        string            `json:"chef_id"`
	RecipeType    domain.RecipeType `json:"recipe_type"`
	Name          string            `json:"name"`
	VersionNumber string            `json:"version_number"`
	ChangeSummary string            `json:"change_summary"`
	ChangeType    domain.ChangeType `json:"change_type"`
	Timestamp     int64             `json:"timestamp"`
}

// RecipeDeletedPayloadV1 is the typed payload for recipe delete events.
type RecipeDeletedPayloadV1 struct {
	RecipeID   string            `json:"recipe_id"`
	ChefID     string            `json:"chef_id"`
	RecipeType domain.RecipeType `json:"recipe_type"`
	Name       string            `json:"name"`
	Timestamp  int64             `json:"timestamp"`
}

// NewRecipeSavedEvent creates a save event with a type-safe payload.
func NewRecipeSavedEvent(recipeID, chefID string, recipeType domain.RecipeType, name string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RecipeSaved,
		Payload: RecipeSavedPayloadV1{
			RecipeID:   recipeID,
			ChefID:     chefID,
			RecipeType: recipeType,
			Name:       name,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewRecipeUpdatedEvent creates an update event with a type-safe payload.
func NewRecipeUpdatedEvent(recipeID, chefID string, recipeType domain.RecipeType, name string, version domain.VersionNumber, summary string, changeType domain.ChangeType) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RecipeUpdated,
		Payload: RecipeUpdatedPayloadV1{
			RecipeID:      recipeID,
			ChefID:        chefID,
			RecipeType:    recipeType,
			Name:          name,
			VersionNumber: version.String(),
			ChangeSummary: summary,
			ChangeType:    changeType,
			Timestamp:     time.Now().Unix(),
		},
	}
}

// NewRecipeDeletedEvent creates a delete event with a type-safe payload.
func NewRecipeDeletedEvent(recipeID, chefID string, recipeType domain.RecipeType, name string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RecipeDeleted,
		Payload: RecipeDeletedPayloadV1{
			RecipeID:   recipeID,
			ChefID:     chefID,
			RecipeType: recipeType,
			Name:       name,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event.
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus.
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus.
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type.
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
