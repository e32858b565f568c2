package repository

import (
	"context"

	"github.com/plateful/chefvoice/internal/domain"
)

// Recipe defines the interface for recipe persistence. Implementations own
// the transactional boundaries: name resolution runs on the save transaction,
// and the update path snapshots, diffs, and versions inside one transaction
// holding a row lock on the parent recipe.
type Recipe interface {
	// SaveRecipe inserts a new recipe with a chef-unique name and returns the
	// stored recipe, including the id and the resolved name. Initial version
	// creation is best-effort: its failure is logged, not returned.
	SaveRecipe(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error)

	// UpdateRecipe applies a partial update to the recipe matched
	// case-insensitively by (chefID, name, recipeType) and creates the
	// version recording the change. Expected conditions (not found, empty
	// patch) come back in the result, not as errors.
	UpdateRecipe(ctx context.Context, chefID, name string, recipeType domain.RecipeType, patch domain.RecipePatch) (domain.UpdateResult, error)

	// DeleteRecipe hard-deletes a recipe. Ingredient links and version
	// history go with it.
	DeleteRecipe(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (domain.DeleteResult, error)

	// GetRecipeByName fetches full details for the newest recipe whose name
	// contains the query, case-insensitively. Returns ErrRecipeNotFound when
	// nothing matches.
	GetRecipeByName(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (*domain.Recipe, error)

	// GetRecipeByID fetches full details by id.
	GetRecipeByID(ctx context.Context, chefID, recipeID string, recipeType domain.RecipeType) (*domain.Recipe, error)

	// ListRecipes returns the chef's recipes grouped by type, newest first,
	// capped per type.
	ListRecipes(ctx context.Context, chefID string, limit int) (domain.RecipeList, error)

	// NameTaken reports whether a recipe of the given type already uses the
	// name, case-insensitively.
	NameTaken(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (bool, error)

	// Search read primitives. The cascade policy lives in the service; these
	// are the per-tier queries it composes.
	FindExact(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (*domain.RecipeSummary, error)
	FindContains(ctx context.Context, chefID, query string, recipeType domain.RecipeType) (*domain.RecipeSummary, error)
	FindByKeyword(ctx context.Context, chefID, keyword string, recipeType domain.RecipeType, limit int) ([]domain.RecipeSummary, error)
	SampleRecipeNames(ctx context.Context, chefID string, limit int) ([]string, error)

	// Version history reads.
	GetVersionHistory(ctx context.Context, recipeID string, recipeType domain.RecipeType) ([]domain.RecipeVersion, error)
	GetActiveVersion(ctx context.Context, recipeID string, recipeType domain.RecipeType) (*domain.RecipeVersion, error)
}
