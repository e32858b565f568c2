package mirror

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/chefvoice/internal/domain"
	"github.com/plateful/chefvoice/internal/event"
)

func TestWebhookPostsEvent(t *testing.T) {
	var got event.Event
	var gotType, gotSchema string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get(headerEventType)
		gotSchema = r.Header.Get(headerSchemaVersion)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	hook := NewWebhook(server.URL)
	e := event.NewRecipeSavedEvent("recipe-1", "chef-1", domain.RecipeTypePlate, "Biryani")

	err := hook.HandleEvent(context.Background(), e)
	require.NoError(t, err)

	assert.Equal(t, string(event.RecipeSaved), gotType)
	assert.Equal(t, event.EventSchemaVersion, gotSchema)
	assert.Equal(t, event.RecipeSaved, got.Type)

	payload, ok := got.Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Biryani", payload["name"])
	assert.Equal(t, "chef-1", payload["chef_id"])
}

func TestWebhookNonSuccessIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	hook := NewWebhook(server.URL)
	e := event.NewRecipeDeletedEvent("recipe-1", "chef-1", domain.RecipeTypeBatch, "Stock")

	err := hook.HandleEvent(context.Background(), e)
	assert.Error(t, err, "a failed delivery must surface so the publisher can retry")
}

func TestWebhookRegisterSubscribesLifecycleEvents(t *testing.T) {
	received := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	bus := event.NewMemoryBus()
	NewWebhook(server.URL).Register(bus)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event.NewRecipeSavedEvent("r1", "c1", domain.RecipeTypePlate, "A")))
	require.NoError(t, bus.Publish(ctx, event.NewRecipeUpdatedEvent("r1", "c1", domain.RecipeTypePlate, "A", domain.VersionNumber{Major: 1, Minor: 1}, "Updated description", domain.ChangeMinor)))
	require.NoError(t, bus.Publish(ctx, event.NewRecipeDeletedEvent("r1", "c1", domain.RecipeTypePlate, "A")))

	assert.Equal(t, 3, received)
}
