package recipe

import (
	"context"

	"github.com/plateful/chefvoice/internal/domain"
)

// Service defines the inbound interface the conversation/tool layer calls.
type Service interface {
	// SaveRecipe persists a new recipe, resolving a chef-unique name, and
	// returns the stored recipe including id and final name.
	SaveRecipe(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error)

	// UpdateRecipe applies a partial update to the recipe matched by name
	// and records a version for the change.
	UpdateRecipe(ctx context.Context, chefID, name string, recipeType domain.RecipeType, patch domain.RecipePatch) (domain.UpdateResult, error)

	// DeleteRecipe removes a recipe and its version history.
	DeleteRecipe(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (domain.DeleteResult, error)

	// GetRecipe fetches full details for the newest recipe whose name
	// contains the query.
	GetRecipe(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (*domain.Recipe, error)

	// ListRecipes returns the chef's recipes grouped by type, newest first.
	ListRecipes(ctx context.Context, chefID string, limit int) (domain.RecipeList, error)

	// Search resolves a free-text query through the exact, contains and
	// keyword tiers.
	Search(ctx context.Context, chefID, query string) (domain.SearchResult, error)

	// GetVersionHistory returns all versions of the named recipe, newest
	// first.
	GetVersionHistory(ctx context.Context, chefID, name string, recipeType domain.RecipeType) ([]domain.RecipeVersion, error)
}
