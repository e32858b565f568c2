package handler

import (
	"net/http"
	"strings"

	"github.com/plateful/chefvoice/internal/domain"
	"github.com/plateful/chefvoice/internal/logger"
	"github.com/plateful/chefvoice/internal/recipe"
)

// VersionHistoryResponse lists a recipe's versions newest first.
type VersionHistoryResponse struct {
	Name     string                 `json:"name"`
	Versions []domain.RecipeVersion `json:"versions"`
}

// HandleGetVersionHistory returns the version history for a named recipe
func HandleGetVersionHistory(svc recipe.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		chefID := r.URL.Query().Get("chef_id")
		name := r.URL.Query().Get("name")
		recipeType := strings.ToLower(r.URL.Query().Get("type"))

		if chefID == "" || name == "" || recipeType == "" {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}
		if !domain.RecipeType(recipeType).Valid() {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRecipeType)
			return
		}

		versions, err := svc.GetVersionHistory(r.Context(), chefID, name, domain.RecipeType(recipeType))
		if err != nil {
			log.Warn("Failed to get version history", "error", err, "name", name)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, VersionHistoryResponse{
			Name:     name,
			Versions: versions,
		})
	}
}
