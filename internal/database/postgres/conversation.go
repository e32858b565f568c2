package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plateful/chefvoice/internal/domain"
)

// ConversationRepository implements repository.Conversation over PostgreSQL.
// Session state is two JSONB blobs keyed by session id; the recipe engine
// never looks inside them, it only persists them between turns.
type ConversationRepository struct {
	db *pgxpool.Pool
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// SaveConversation upserts session state keyed by session id.
func (r *ConversationRepository) SaveConversation(ctx context.Context, conv domain.Conversation) error {
	query := `
		INSERT INTO conversations (session_id, chef_id, current_context, message_history, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id) DO UPDATE SET
			current_context = EXCLUDED.current_context,
			message_history = EXCLUDED.message_history,
			status          = EXCLUDED.status,
			updated_at      = EXCLUDED.updated_at
	`
	_, err := r.db.Exec(ctx, query,
		conv.SessionID, conv.ChefID, conv.CurrentContext, conv.MessageHistory,
		conv.Status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextConversation, err)
	}
	return nil
}

// GetConversation returns the state for a session, or ErrConversationNotFound.
func (r *ConversationRepository) GetConversation(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	query := `
		SELECT session_id, chef_id, current_context, message_history, status, updated_at
		FROM conversations
		WHERE session_id = $1
	`
	var conv domain.Conversation
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&conv.SessionID, &conv.ChefID, &conv.CurrentContext,
		&conv.MessageHistory, &conv.Status, &conv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextConversation, err)
	}
	return &conv, nil
}
