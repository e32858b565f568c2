package repository

import (
	"context"

	"github.com/plateful/chefvoice/internal/domain"
)

// Conversation defines the interface for session state persistence. The
// conversation layer assembles recipe fields turn-by-turn here before a save
// commits them as a Recipe.
type Conversation interface {
	// SaveConversation upserts session state keyed by session id.
	SaveConversation(ctx context.Context, conv domain.Conversation) error

	// GetConversation returns the state for a session, or
	// ErrConversationNotFound.
	GetConversation(ctx context.Context, sessionID string) (*domain.Conversation, error)
}
