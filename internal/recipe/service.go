package recipe

import (
	"context"
	"fmt"
	"strings"

	"github.com/plateful/chefvoice/internal/domain"
	"github.com/plateful/chefvoice/internal/event"
	"github.com/plateful/chefvoice/internal/logger"
	"github.com/plateful/chefvoice/internal/repository"
	"github.com/plateful/chefvoice/internal/units"
)

// service implements the Service interface
type service struct {
	repo  repository.Recipe
	bus   event.Bus
	cache *recipeCache
}

// NewService creates a recipe service over the given repository. The bus may
// be nil, in which case no events are emitted.
func NewService(repo repository.Recipe, bus event.Bus) Service {
	return &service{
		repo:  repo,
		bus:   bus,
		cache: newRecipeCache(DefaultCacheSize, DefaultCacheTTL),
	}
}

func (s *service) SaveRecipe(ctx context.Context, rec domain.Recipe) (domain.Recipe, error) {
	log := logger.FromContext(ctx)

	rec.Name = strings.TrimSpace(rec.Name)
	if rec.ChefID == "" || rec.Name == "" {
		return domain.Recipe{}, fmt.Errorf("%w: chef id and recipe name are required", domain.ErrInvalidInput)
	}
	if !rec.Type.Valid() {
		return domain.Recipe{}, fmt.Errorf("%w: %q", domain.ErrInvalidRecipeType, rec.Type)
	}

	normalizeIngredients(rec.Ingredients)
	rec.YieldUnit = units.Normalize(rec.YieldUnit)

	saved, err := s.repo.SaveRecipe(ctx, rec)
	if err != nil {
		return domain.Recipe{}, err
	}

	s.cache.Set(saved.ChefID, saved.Type, saved.Name, &saved)
	s.publish(ctx, event.NewRecipeSavedEvent(saved.ID, saved.ChefID, saved.Type, saved.Name))

	log.Info(LogMsgRecipeSaved,
		"recipe_id", saved.ID,
		"recipe_type", saved.Type,
		"name", saved.Name)
	return saved, nil
}

func (s *service) UpdateRecipe(ctx context.Context, chefID, name string, recipeType domain.RecipeType, patch domain.RecipePatch) (domain.UpdateResult, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if chefID == "" || name == "" {
		return domain.UpdateResult{}, fmt.Errorf("%w: chef id and recipe name are required", domain.ErrInvalidInput)
	}
	if !recipeType.Valid() {
		return domain.UpdateResult{}, fmt.Errorf("%w: %q", domain.ErrInvalidRecipeType, recipeType)
	}

	normalizeIngredients(patch.Ingredients)
	if patch.YieldUnit != nil {
		normalized := units.Normalize(*patch.YieldUnit)
		patch.YieldUnit = &normalized
	}

	result, err := s.repo.UpdateRecipe(ctx, chefID, name, recipeType, patch)
	if err != nil {
		return domain.UpdateResult{}, err
	}

	if result.Success {
		s.cache.Invalidate(chefID, recipeType, name)
		finalName := name
		if result.NewName != "" {
			finalName = result.NewName
			s.cache.Invalidate(chefID, recipeType, result.NewName)
		}

		version, verr := domain.ParseVersionNumber(result.NewVersion)
		if verr == nil {
			s.publish(ctx, event.NewRecipeUpdatedEvent(result.RecipeID, chefID, recipeType,
				finalName, version, result.ChangeSummary, result.ChangeType))
		}

		log.Info(LogMsgRecipeUpdated,
			"recipe_id", result.RecipeID,
			"recipe_type", recipeType,
			"version", result.NewVersion,
			"change_type", result.ChangeType)
	}

	return result, nil
}

func (s *service) DeleteRecipe(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (domain.DeleteResult, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if chefID == "" || name == "" {
		return domain.DeleteResult{}, fmt.Errorf("%w: chef id and recipe name are required", domain.ErrInvalidInput)
	}
	if !recipeType.Valid() {
		return domain.DeleteResult{}, fmt.Errorf("%w: %q", domain.ErrInvalidRecipeType, recipeType)
	}

	result, err := s.repo.DeleteRecipe(ctx, chefID, name, recipeType)
	if err != nil {
		return domain.DeleteResult{}, err
	}

	if result.Success {
		s.cache.Invalidate(chefID, recipeType, name)
		if result.Name != "" {
			s.cache.Invalidate(chefID, recipeType, result.Name)
		}
		s.publish(ctx, event.NewRecipeDeletedEvent(result.RecipeID, chefID, recipeType, result.Name))

		log.Info(LogMsgRecipeDeleted,
			"recipe_id", result.RecipeID,
			"recipe_type", recipeType,
			"name", result.Name)
	}

	return result, nil
}

func (s *service) GetRecipe(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (*domain.Recipe, error) {
	name = strings.TrimSpace(name)
	if chefID == "" || name == "" {
		return nil, fmt.Errorf("%w: chef id and recipe name are required", domain.ErrInvalidInput)
	}
	if !recipeType.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRecipeType, recipeType)
	}

	if cached, ok := s.cache.Get(chefID, recipeType, name); ok {
		return cached, nil
	}

	rec, err := s.repo.GetRecipeByName(ctx, chefID, name, recipeType)
	if err != nil {
		return nil, err
	}

	// Key by the stored name, not the lookup string: a fuzzy "biryani" fetch
	// must share the entry that an update to "Chicken Biryani" invalidates.
	s.cache.Set(chefID, recipeType, rec.Name, rec)
	return rec, nil
}

func (s *service) ListRecipes(ctx context.Context, chefID string, limit int) (domain.RecipeList, error) {
	if chefID == "" {
		return domain.RecipeList{}, fmt.Errorf("%w: chef id is required", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.repo.ListRecipes(ctx, chefID, limit)
}

func (s *service) GetVersionHistory(ctx context.Context, chefID, name string, recipeType domain.RecipeType) ([]domain.RecipeVersion, error) {
	name = strings.TrimSpace(name)
	if chefID == "" || name == "" {
		return nil, fmt.Errorf("%w: chef id and recipe name are required", domain.ErrInvalidInput)
	}
	if !recipeType.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRecipeType, recipeType)
	}

	// Exact name first, then the fuzzy fetch, so "the biryani" still finds
	// the history of "Biryani".
	var recipeID string
	summary, err := s.repo.FindExact(ctx, chefID, name, recipeType)
	if err != nil {
		return nil, err
	}
	if summary != nil {
		recipeID = summary.ID
	} else {
		rec, err := s.repo.GetRecipeByName(ctx, chefID, name, recipeType)
		if err != nil {
			return nil, err
		}
		recipeID = rec.ID
	}

	return s.repo.GetVersionHistory(ctx, recipeID, recipeType)
}

// publish sends an event, logging failures instead of returning them. The
// outcome already committed; a sink problem must not change it.
func (s *service) publish(ctx context.Context, ev event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, ev); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", ev.Type, "error", err)
	}
}

// normalizeIngredients trims names, canonicalizes units and resolves spoken
// quantities ("1 1/2") in place.
func normalizeIngredients(ings []domain.RecipeIngredient) {
	for i := range ings {
		ings[i].Name = strings.TrimSpace(ings[i].Name)
		ings[i].Unit = units.Normalize(ings[i].Unit)
		if ings[i].Quantity == 0 && ings[i].QuantityText != "" {
			if v, ok := units.ParseQuantity(ings[i].QuantityText); ok {
				ings[i].Quantity = v
			}
		}
	}
}
