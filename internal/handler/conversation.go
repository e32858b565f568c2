package handler

import (
	"encoding/json"
	"net/http"

	"github.com/plateful/chefvoice/internal/domain"
	"github.com/plateful/chefvoice/internal/logger"
	"github.com/plateful/chefvoice/internal/repository"
)

// SaveConversationRequest carries session state between voice turns. Both
// blobs are opaque to the engine.
type SaveConversationRequest struct {
	ChefID         string          `json:"chef_id" validate:"required,max=100"`
	SessionID      string          `json:"session_id" validate:"required,max=200"`
	CurrentContext json.RawMessage `json:"current_context"`
	MessageHistory json.RawMessage `json:"message_history"`
	Status         string          `json:"status" validate:"max=50"`
}

// HandleSaveConversation upserts session state
func HandleSaveConversation(repo repository.Conversation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SaveConversationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode conversation request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid conversation request", "error", err)
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":   "Validation failed",
				"details": FormatValidationError(err),
			})
			return
		}

		status := req.Status
		if status == "" {
			status = "active"
		}

		err := repo.SaveConversation(r.Context(), domain.Conversation{
			ChefID:         req.ChefID,
			SessionID:      req.SessionID,
			CurrentContext: req.CurrentContext,
			MessageHistory: req.MessageHistory,
			Status:         status,
		})
		if err != nil {
			log.Error("Failed to save conversation", "error", err, "session_id", req.SessionID)
			respondError(w, http.StatusInternalServerError, ErrMsgSaveConversationFailed)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Conversation state saved"})
	}
}

// HandleGetConversation returns the state for a session
func HandleGetConversation(repo repository.Conversation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		sessionID := r.URL.Query().Get("session_id")
		if sessionID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}

		conv, err := repo.GetConversation(r.Context(), sessionID)
		if err != nil {
			log.Warn("Failed to get conversation", "error", err, "session_id", sessionID)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: conv})
	}
}
