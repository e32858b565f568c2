// Package mirror forwards committed recipe events to the chef's spreadsheet
// webhook. The mirror is an observer: delivery failures are the publisher's
// retry problem, never the recipe operation's.
package mirror

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/plateful/chefvoice/internal/event"
	"github.com/plateful/chefvoice/internal/logger"
)

const (
	defaultTimeout = 10 * time.Second

	headerEventType     = "X-Chefvoice-Event"
	headerSchemaVersion = "X-Chefvoice-Schema-Version"
)

// Webhook posts recipe events to a configured URL as JSON.
type Webhook struct {
	client *resty.Client
	url    string
}

// NewWebhook creates a webhook sink for the given URL.
func NewWebhook(url string) *Webhook {
	client := resty.New().
		SetTimeout(defaultTimeout).
		SetHeader("Content-Type", "application/json")

	return &Webhook{client: client, url: url}
}

// Register subscribes the webhook to the recipe lifecycle events.
func (w *Webhook) Register(bus event.Bus) {
	bus.Subscribe(event.RecipeSaved, w.HandleEvent)
	bus.Subscribe(event.RecipeUpdated, w.HandleEvent)
	bus.Subscribe(event.RecipeDeleted, w.HandleEvent)
}

// HandleEvent posts the event to the webhook URL. A non-2xx response is an
// error so the resilient publisher retries and eventually dead-letters it.
func (w *Webhook) HandleEvent(ctx context.Context, e event.Event) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader(headerEventType, string(e.Type)).
		SetHeader(headerSchemaVersion, e.Version).
		SetBody(e).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("mirror webhook post failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("mirror webhook returned %d", resp.StatusCode())
	}

	logger.FromContext(ctx).Debug("Mirrored event to webhook",
		"event_type", e.Type,
		"status", resp.StatusCode())
	return nil
}
