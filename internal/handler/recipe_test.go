package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/chefvoice/internal/domain"
)

// stubService implements recipe.Service with canned responses.
type stubService struct {
	saveFn    func(ctx context.Context, rec domain.Recipe) (domain.Recipe, error)
	updateFn  func(ctx context.Context, chefID, name string, recipeType domain.RecipeType, patch domain.RecipePatch) (domain.UpdateResult, error)
	deleteFn  func(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (domain.DeleteResult, error)
	getFn     func(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (*domain.Recipe, error)
	listFn    func(ctx context.Context, chefID string, limit int) (domain.RecipeList, error)
	searchFn  func(ctx context.Context, chefID, query string) (domain.SearchResult, error)
	historyFn func(ctx context.Context, chefID, name string, recipeType domain.RecipeType) ([]domain.RecipeVersion, error)
}

func (s *stubService) SaveRecipe(ctx context.Context, rec domain.Recipe) (domain.Recipe, error) {
	return s.saveFn(ctx, rec)
}

func (s *stubService) UpdateRecipe(ctx context.Context, chefID, name string, recipeType domain.RecipeType, patch domain.RecipePatch) (domain.UpdateResult, error) {
	return s.updateFn(ctx, chefID, name, recipeType, patch)
}

func (s *stubService) DeleteRecipe(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (domain.DeleteResult, error) {
	return s.deleteFn(ctx, chefID, name, recipeType)
}

func (s *stubService) GetRecipe(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (*domain.Recipe, error) {
	return s.getFn(ctx, chefID, name, recipeType)
}

func (s *stubService) ListRecipes(ctx context.Context, chefID string, limit int) (domain.RecipeList, error) {
	return s.listFn(ctx, chefID, limit)
}

func (s *stubService) Search(ctx context.Context, chefID, query string) (domain.SearchResult, error) {
	return s.searchFn(ctx, chefID, query)
}

func (s *stubService) GetVersionHistory(ctx context.Context, chefID, name string, recipeType domain.RecipeType) ([]domain.RecipeVersion, error) {
	return s.historyFn(ctx, chefID, name, recipeType)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleSaveRecipeSuccess(t *testing.T) {
	svc := &stubService{
		saveFn: func(ctx context.Context, rec domain.Recipe) (domain.Recipe, error) {
			rec.ID = "recipe-1"
			rec.Name = "Biryani 2" // uniqueness suffix applied
			return rec, nil
		},
	}

	rec := postJSON(t, HandleSaveRecipe(svc), SaveRecipeRequest{
		ChefID: "chef-1",
		Type:   "plate",
		Name:   "Biryani",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SaveRecipeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "recipe-1", resp.RecipeID)
	assert.Equal(t, "Biryani 2", resp.Name)
	assert.True(t, resp.Renamed)
}

func TestHandleSaveRecipeReturnsIngredientWarnings(t *testing.T) {
	svc := &stubService{
		saveFn: func(ctx context.Context, rec domain.Recipe) (domain.Recipe, error) {
			rec.ID = "recipe-1"
			return rec, nil
		},
	}

	rec := postJSON(t, HandleSaveRecipe(svc), SaveRecipeRequest{
		ChefID: "chef-1",
		Type:   "plate",
		Name:   "Keema",
		Ingredients: []domain.RecipeIngredient{
			{Name: "lamb", Quantity: 500, Unit: "blobs"},
			{Name: "onions", Quantity: 3},
		},
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SaveRecipeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Warnings, 2)
	assert.Contains(t, resp.Warnings[0], `"blobs"`)
	assert.Contains(t, resp.Warnings[1], "onions")
}

func TestHandleUpdateRecipeReturnsIngredientWarnings(t *testing.T) {
	svc := &stubService{
		updateFn: func(ctx context.Context, chefID, name string, recipeType domain.RecipeType, patch domain.RecipePatch) (domain.UpdateResult, error) {
			return domain.UpdateResult{Success: true, Message: "Recipe updated successfully", NewVersion: "1.1"}, nil
		},
	}

	rec := postJSON(t, HandleUpdateRecipe(svc), UpdateRecipeRequest{
		ChefID: "chef-1",
		Type:   "plate",
		Name:   "Keema",
		Patch: domain.RecipePatch{
			Ingredients: []domain.RecipeIngredient{
				{Name: "ginger", Quantity: 1, Unit: "knob"},
			},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp UpdateRecipeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], `"knob"`)
}

func TestHandleSaveRecipeValidation(t *testing.T) {
	svc := &stubService{}

	rec := postJSON(t, HandleSaveRecipe(svc), SaveRecipeRequest{
		ChefID: "chef-1",
		Type:   "casserole", // not a recipe type
		Name:   "Biryani",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Validation failed")
}

func TestHandleSaveRecipeBadJSON(t *testing.T) {
	svc := &stubService{}

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	HandleSaveRecipe(svc)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgInvalidRequest)
}

func TestHandleUpdateRecipeReportsResult(t *testing.T) {
	svc := &stubService{
		updateFn: func(ctx context.Context, chefID, name string, recipeType domain.RecipeType, patch domain.RecipePatch) (domain.UpdateResult, error) {
			return domain.UpdateResult{
				Success:       true,
				Message:       "Recipe updated successfully",
				NewVersion:    "1.1",
				ChangeSummary: "Updated description",
				ChangeType:    domain.ChangeMinor,
			}, nil
		},
	}

	desc := "richer"
	rec := postJSON(t, HandleUpdateRecipe(svc), UpdateRecipeRequest{
		ChefID: "chef-1",
		Type:   "plate",
		Name:   "Biryani",
		Patch:  domain.RecipePatch{Description: &desc},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.UpdateResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "1.1", result.NewVersion)
}

func TestHandleUpdateRecipeNotFoundIsStillOK(t *testing.T) {
	svc := &stubService{
		updateFn: func(ctx context.Context, chefID, name string, recipeType domain.RecipeType, patch domain.RecipePatch) (domain.UpdateResult, error) {
			return domain.UpdateResult{Success: false, Message: "No recipe with that name was found"}, nil
		},
	}

	rec := postJSON(t, HandleUpdateRecipe(svc), UpdateRecipeRequest{
		ChefID: "chef-1",
		Type:   "plate",
		Name:   "Nonexistent",
	})

	// Graceful outcome, not an HTTP error: the voice layer reads the message.
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.UpdateResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Success)
}

func TestHandleDeleteRecipe(t *testing.T) {
	svc := &stubService{
		deleteFn: func(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (domain.DeleteResult, error) {
			return domain.DeleteResult{Success: true, Message: "Recipe deleted successfully", RecipeID: "recipe-1", Name: name}, nil
		},
	}

	rec := postJSON(t, HandleDeleteRecipe(svc), RecipeTargetRequest{
		ChefID: "chef-1",
		Type:   "batch",
		Name:   "Stock",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.DeleteResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "Stock", result.Name)
}

func TestHandleGetRecipeNotFound(t *testing.T) {
	svc := &stubService{
		getFn: func(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (*domain.Recipe, error) {
			return nil, domain.ErrRecipeNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/?chef_id=chef-1&name=Biryani&type=plate", nil)
	rec := httptest.NewRecorder()
	HandleGetRecipe(svc)(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgRecipeNotFoundError)
}

func TestHandleGetRecipeMissingParams(t *testing.T) {
	svc := &stubService{}

	req := httptest.NewRequest(http.MethodGet, "/?chef_id=chef-1", nil)
	rec := httptest.NewRecorder()
	HandleGetRecipe(svc)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListRecipesInvalidLimit(t *testing.T) {
	svc := &stubService{}

	req := httptest.NewRequest(http.MethodGet, "/?chef_id=chef-1&limit=potato", nil)
	rec := httptest.NewRecorder()
	HandleListRecipes(svc)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgInvalidLimit)
}

func TestHandleSearch(t *testing.T) {
	svc := &stubService{
		searchFn: func(ctx context.Context, chefID, query string) (domain.SearchResult, error) {
			return domain.SearchResult{ExactMatch: true, TotalFound: 1, RecipeType: domain.RecipeTypePlate}, nil
		},
	}

	rec := postJSON(t, HandleSearch(svc), SearchRequest{ChefID: "chef-1", Query: "biryani"})

	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.ExactMatch)
	assert.Equal(t, 1, result.TotalFound)
}

func TestHandleGetVersionHistory(t *testing.T) {
	svc := &stubService{
		historyFn: func(ctx context.Context, chefID, name string, recipeType domain.RecipeType) ([]domain.RecipeVersion, error) {
			return []domain.RecipeVersion{
				{VersionNumber: domain.VersionNumber{Major: 1, Minor: 1}, IsActive: true, ChangeSummary: "Added garlic"},
				{VersionNumber: domain.InitialVersion, ChangeSummary: "Initial recipe creation (v1.0)"},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/?chef_id=chef-1&name=Biryani&type=plate", nil)
	rec := httptest.NewRecorder()
	HandleGetVersionHistory(svc)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp VersionHistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Versions, 2)
	assert.True(t, resp.Versions[0].IsActive)
}
