package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/plateful/chefvoice/internal/domain"
	"github.com/plateful/chefvoice/internal/logger"
	"github.com/plateful/chefvoice/internal/recipe"
)

// SaveRecipeRequest is the body for creating a recipe. Variant-specific
// fields are optional; Type selects which of them the service keeps.
type SaveRecipeRequest struct {
	ChefID      string `json:"chef_id" validate:"required,max=100"`
	Type        string `json:"type" validate:"required,recipetype"`
	Name        string `json:"name" validate:"required,max=200,excludesall=\x00\n\r\t"`
	Description string `json:"description" validate:"max=2000"`

	PrepTimeMinutes *int   `json:"prep_time_minutes"`
	CookTimeMinutes *int   `json:"cook_time_minutes"`
	Notes           string `json:"notes" validate:"max=2000"`
	IsComplete      bool   `json:"is_complete"`

	Serves              *int   `json:"serves"`
	Category            string `json:"category" validate:"max=100"`
	Cuisine             string `json:"cuisine" validate:"max=100"`
	Difficulty          string `json:"difficulty" validate:"max=50"`
	PlatingInstructions string `json:"plating_instructions" validate:"max=2000"`
	Garnish             string `json:"garnish" validate:"max=500"`
	PresentationNotes   string `json:"presentation_notes" validate:"max=2000"`

	YieldQuantity   *float64 `json:"yield_quantity"`
	YieldUnit       string   `json:"yield_unit" validate:"max=50"`
	Temperature     *float64 `json:"temperature"`
	TemperatureUnit string   `json:"temperature_unit" validate:"max=20"`
	Equipment       []string `json:"equipment"`
	Instructions    string   `json:"instructions" validate:"max=10000"`

	Ingredients     []domain.RecipeIngredient `json:"ingredients"`
	BatchComponents []domain.BatchComponent   `json:"batch_components"`
}

// SaveRecipeResponse confirms a save, echoing the stored name since it may
// have been suffixed for uniqueness. Warnings carry speakable notes about the
// dictated ingredients (unrecognized units, ambiguous bare counts); they do
// not block the save.
type SaveRecipeResponse struct {
	RecipeID string   `json:"recipe_id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Renamed  bool     `json:"renamed"`
	Warnings []string `json:"warnings,omitempty"`
}

// HandleSaveRecipe handles creating a new recipe
func HandleSaveRecipe(svc recipe.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SaveRecipeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode save recipe request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid save recipe request", "error", err)
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":   "Validation failed",
				"details": FormatValidationError(err),
			})
			return
		}

		// Collected before the service normalizes units in place, so the
		// warnings describe what the chef actually said.
		warnings := recipe.IngredientWarnings(req.Ingredients)

		saved, err := svc.SaveRecipe(r.Context(), domain.Recipe{
			ChefID:              req.ChefID,
			Type:                domain.RecipeType(strings.ToLower(req.Type)),
			Name:                req.Name,
			Description:         req.Description,
			PrepTimeMinutes:     req.PrepTimeMinutes,
			CookTimeMinutes:     req.CookTimeMinutes,
			Notes:               req.Notes,
			IsComplete:          req.IsComplete,
			Serves:              req.Serves,
			Category:            req.Category,
			Cuisine:             req.Cuisine,
			Difficulty:          req.Difficulty,
			PlatingInstructions: req.PlatingInstructions,
			Garnish:             req.Garnish,
			PresentationNotes:   req.PresentationNotes,
			YieldQuantity:       req.YieldQuantity,
			YieldUnit:           req.YieldUnit,
			Temperature:         req.Temperature,
			TemperatureUnit:     req.TemperatureUnit,
			Equipment:           req.Equipment,
			Instructions:        req.Instructions,
			Ingredients:         req.Ingredients,
			BatchComponents:     req.BatchComponents,
		})
		if err != nil {
			log.Error("Failed to save recipe", "error", err, "name", req.Name)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		log.Info("Recipe saved",
			"recipe_id", saved.ID,
			"name", saved.Name,
			"recipe_type", saved.Type)

		respondJSON(w, http.StatusCreated, SaveRecipeResponse{
			RecipeID: saved.ID,
			Name:     saved.Name,
			Type:     string(saved.Type),
			Renamed:  !strings.EqualFold(saved.Name, req.Name),
			Warnings: warnings,
		})
	}
}

// UpdateRecipeRequest is the body for a partial update. Absent fields are
// left untouched; present fields are applied and recorded in a new version.
type UpdateRecipeRequest struct {
	ChefID string             `json:"chef_id" validate:"required,max=100"`
	Type   string             `json:"type" validate:"required,recipetype"`
	Name   string             `json:"name" validate:"required,max=200"`
	Patch  domain.RecipePatch `json:"patch"`
}

// UpdateRecipeResponse wraps the update outcome with speakable ingredient
// warnings when the patch replaced the ingredient list.
type UpdateRecipeResponse struct {
	domain.UpdateResult
	Warnings []string `json:"warnings,omitempty"`
}

// HandleUpdateRecipe handles partial recipe updates
func HandleUpdateRecipe(svc recipe.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req UpdateRecipeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode update recipe request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid update recipe request", "error", err)
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":   "Validation failed",
				"details": FormatValidationError(err),
			})
			return
		}

		warnings := recipe.IngredientWarnings(req.Patch.Ingredients)

		result, err := svc.UpdateRecipe(r.Context(), req.ChefID, req.Name,
			domain.RecipeType(strings.ToLower(req.Type)), req.Patch)
		if err != nil {
			log.Error("Failed to update recipe", "error", err, "name", req.Name)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		log.Info("Recipe update handled",
			"name", req.Name,
			"success", result.Success,
			"new_version", result.NewVersion)

		// Graceful not-found and empty-patch outcomes ride the same shape as
		// success; the voice layer speaks result.Message either way.
		respondJSON(w, http.StatusOK, UpdateRecipeResponse{UpdateResult: result, Warnings: warnings})
	}
}

// RecipeTargetRequest identifies a recipe by chef, type and name.
type RecipeTargetRequest struct {
	ChefID string `json:"chef_id" validate:"required,max=100"`
	Type   string `json:"type" validate:"required,recipetype"`
	Name   string `json:"name" validate:"required,max=200"`
}

// HandleDeleteRecipe handles recipe deletion
func HandleDeleteRecipe(svc recipe.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RecipeTargetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode delete recipe request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid delete recipe request", "error", err)
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":   "Validation failed",
				"details": FormatValidationError(err),
			})
			return
		}

		result, err := svc.DeleteRecipe(r.Context(), req.ChefID, req.Name,
			domain.RecipeType(strings.ToLower(req.Type)))
		if err != nil {
			log.Error("Failed to delete recipe", "error", err, "name", req.Name)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		log.Info("Recipe delete handled", "name", req.Name, "success", result.Success)
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleGetRecipe fetches full recipe details by name
func HandleGetRecipe(svc recipe.Service) http.HandlerFunc {
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

		rec, err := svc.GetRecipe(r.Context(), chefID, name, domain.RecipeType(recipeType))
		if err != nil {
			log.Warn("Failed to get recipe", "error", err, "name", name)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: rec})
	}
}

// HandleListRecipes lists a chef's recipes grouped by type
func HandleListRecipes(svc recipe.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		chefID := r.URL.Query().Get("chef_id")
		if chefID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
				return
			}
			limit = parsed
		}

		list, err := svc.ListRecipes(r.Context(), chefID, limit)
		if err != nil {
			log.Error("Failed to list recipes", "error", err, "chef_id", chefID)
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: list})
	}
}
