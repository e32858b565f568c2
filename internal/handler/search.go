package handler

import (
	"encoding/json"
	"net/http"

	"github.com/plateful/chefvoice/internal/logger"
	"github.com/plateful/chefvoice/internal/recipe"
)

// SearchRequest is the body for free-text recipe search.
type SearchRequest struct {
	ChefID string `json:"chef_id" validate:"required,max=100"`
	Query  string `json:"query" validate:"required,max=200,excludesall=\x00"`
}

// HandleSearch resolves a spoken query through the search cascade
func HandleSearch(svc recipe.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode search request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid search request", "error", err)
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":   "Validation failed",
				"details": FormatValidationError(err),
			})
			return
		}

		result, err := svc.Search(r.Context(), req.ChefID, req.Query)
		if err != nil {
			log.Error("Failed to search recipes", "error", err, "query", req.Query)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		log.Info("Search completed",
			"query", req.Query,
			"total_found", result.TotalFound,
			"exact", result.ExactMatch)

		respondJSON(w, http.StatusOK, result)
	}
}
