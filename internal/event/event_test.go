package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/chefvoice/internal/domain"
)

func TestMemoryBusPublishReachesAllSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	var calls int
	bus.Subscribe(RecipeSaved, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})
	bus.Subscribe(RecipeSaved, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), NewRecipeSavedEvent("r1", "chef-1", domain.RecipeTypePlate, "Pasta"))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestMemoryBusPublishNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	err := bus.Publish(context.Background(), NewRecipeDeletedEvent("r1", "chef-1", domain.RecipeTypeBatch, "Stock"))
	assert.NoError(t, err)
}

func TestMemoryBusAggregatesHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()

	bus.Subscribe(RecipeUpdated, func(ctx context.Context, e Event) error {
		return errors.New("sink unavailable")
	})
	bus.Subscribe(RecipeUpdated, func(ctx context.Context, e Event) error {
		return nil
	})

	ev := NewRecipeUpdatedEvent("r1", "chef-1", domain.RecipeTypePlate, "Pasta",
		domain.VersionNumber{Major: 1, Minor: 1}, "Updated description", domain.ChangeMinor)
	err := bus.Publish(context.Background(), ev)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 errors")
	assert.Contains(t, err.Error(), string(RecipeUpdated))
}

func TestEventConstructorsCarrySchemaVersion(t *testing.T) {
	ev := NewRecipeSavedEvent("r1", "chef-1", domain.RecipeTypePlate, "Pasta")
	assert.Equal(t, EventSchemaVersion, ev.Version)
	assert.Equal(t, RecipeSaved, ev.Type)

	payload, ok := ev.Payload.(RecipeSavedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, "r1", payload.RecipeID)
	assert.Equal(t, "chef-1", payload.ChefID)
	assert.NotZero(t, payload.Timestamp)
}

func TestUpdatedEventRendersVersionNumber(t *testing.T) {
	ev := NewRecipeUpdatedEvent("r1", "chef-1", domain.RecipeTypeBatch, "Stock",
		domain.VersionNumber{Major: 1, Minor: 10}, "Changed salt from 10g to 7g", domain.ChangeMinor)

	payload, ok := ev.Payload.(RecipeUpdatedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, "1.10", payload.VersionNumber)
	assert.Equal(t, domain.ChangeMinor, payload.ChangeType)
}
