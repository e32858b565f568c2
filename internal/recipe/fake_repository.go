package recipe

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/plateful/chefvoice/internal/changes"
	"github.com/plateful/chefvoice/internal/domain"
	"github.com/plateful/chefvoice/internal/naming"
	"github.com/plateful/chefvoice/internal/repository"
)

var fold = cases.Fold()

// FakeRepository is a stateful in-memory implementation of repository.Recipe
// for testing. It reproduces the real repository's contracts, including name
// resolution, patch application and version bookkeeping, so service tests can
// assert end-to-end properties without a database.
//
// It must remain in this package to avoid import cycles with the service.
type FakeRepository struct {
	mu       sync.Mutex
	recipes  map[string]*domain.Recipe
	versions map[string][]domain.RecipeVersion
	seq      int

	// InitialVersionErr, when set, makes the best-effort initial version
	// creation fail without failing the save.
	InitialVersionErr error
}

// NewFakeRepository creates an empty fake repository.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		recipes:  make(map[string]*domain.Recipe),
		versions: make(map[string][]domain.RecipeVersion),
	}
}

func (f *FakeRepository) nextID() string {
	f.seq++
	return fmt.Sprintf("recipe-%d", f.seq)
}

// creation instants are spaced out so newest-first ordering is deterministic
func (f *FakeRepository) stamp() time.Time {
	return time.Unix(1700000000, 0).Add(time.Duration(f.seq) * time.Second)
}

func (f *FakeRepository) SaveRecipe(ctx context.Context, rec domain.Recipe) (domain.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	checker := naming.NameCheckerFunc(func(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (bool, error) {
		return f.nameTakenLocked(chefID, name, recipeType), nil
	})
	resolved, err := naming.ResolveUniqueName(ctx, checker, rec.ChefID, rec.Name, rec.Type)
	if err != nil {
		return domain.Recipe{}, err
	}

	rec.Name = resolved
	rec.Ingredients = domain.MergeDuplicateIngredients(rec.Ingredients)
	rec.ID = f.nextID()
	rec.CreatedAt = f.stamp()
	rec.UpdatedAt = rec.CreatedAt

	stored := rec
	f.recipes[rec.ID] = &stored

	// Initial version is best-effort: its failure never unwinds the save.
	if f.InitialVersionErr == nil {
		f.createVersionLocked(&stored, domain.InitialVersion,
			fmt.Sprintf("Initial recipe creation (v%s)", domain.InitialVersion), "")
	}

	return rec, nil
}

func (f *FakeRepository) UpdateRecipe(ctx context.Context, chefID, name string, recipeType domain.RecipeType, patch domain.RecipePatch) (domain.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec := f.findExactLocked(chefID, name, recipeType)
	if rec == nil {
		return domain.UpdateResult{Success: false, Message: repository.MsgRecipeNotFound}, nil
	}
	if patch.IsEmpty() {
		return domain.UpdateResult{Success: false, Message: repository.MsgNothingToUpdate}, nil
	}
	patch.Ingredients = domain.MergeDuplicateIngredients(patch.Ingredients)

	oldMeta := changes.MetadataFromRecipe(*rec)
	oldIngredients := append([]domain.RecipeIngredient(nil), rec.Ingredients...)

	if patch.Name != nil {
		checker := naming.NameCheckerFunc(func(ctx context.Context, chefID, candidate string, recipeType domain.RecipeType) (bool, error) {
			taken := f.findExactLocked(chefID, candidate, recipeType)
			return taken != nil && taken.ID != rec.ID, nil
		})
		resolved, err := naming.ResolveUniqueName(ctx, checker, chefID, *patch.Name, recipeType)
		if err != nil {
			return domain.UpdateResult{}, err
		}
		patch.Name = &resolved
	}

	patch.Apply(rec)
	rec.UpdatedAt = f.stamp()

	diff := changes.Detect(oldMeta, changes.MetadataFromPatch(patch), oldIngredients, patch.Ingredients)

	current := domain.InitialVersion
	if history := f.versions[rec.ID]; len(history) > 0 {
		current = history[len(history)-1].VersionNumber
	}
	next := current.Next(diff.Type)
	f.createVersionLocked(rec, next, diff.Summary, patch.ChangeReason)

	result := domain.UpdateResult{
		Success:       true,
		Message:       repository.MsgRecipeUpdated,
		RecipeID:      rec.ID,
		NewVersion:    next.String(),
		ChangeSummary: diff.Summary,
		ChangeType:    diff.Type,
	}
	if diff.Renamed {
		result.NewName = rec.Name
	}
	return result, nil
}

func (f *FakeRepository) DeleteRecipe(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (domain.DeleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec := f.findExactLocked(chefID, name, recipeType)
	if rec == nil {
		return domain.DeleteResult{Success: false, Message: repository.MsgRecipeNotFound}, nil
	}

	delete(f.recipes, rec.ID)
	delete(f.versions, rec.ID)
	return domain.DeleteResult{
		Success:  true,
		Message:  repository.MsgRecipeDeleted,
		RecipeID: rec.ID,
		Name:     rec.Name,
	}, nil
}

func (f *FakeRepository) GetRecipeByName(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (*domain.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var newest *domain.Recipe
	needle := fold.String(name)
	for _, rec := range f.recipes {
		if rec.ChefID != chefID || rec.Type != recipeType {
			continue
		}
		if !strings.Contains(fold.String(rec.Name), needle) {
			continue
		}
		if newest == nil || rec.CreatedAt.After(newest.CreatedAt) {
			newest = rec
		}
	}
	if newest == nil {
		return nil, domain.ErrRecipeNotFound
	}
	out := *newest
	return &out, nil
}

func (f *FakeRepository) GetRecipeByID(ctx context.Context, chefID, recipeID string, recipeType domain.RecipeType) (*domain.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.recipes[recipeID]
	if !ok || rec.ChefID != chefID || rec.Type != recipeType {
		return nil, domain.ErrRecipeNotFound
	}
	out := *rec
	return &out, nil
}

func (f *FakeRepository) ListRecipes(ctx context.Context, chefID string, limit int) (domain.RecipeList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var list domain.RecipeList
	for _, rec := range f.sortedByNewest(chefID, domain.RecipeTypePlate) {
		if len(list.PlateRecipes) == limit {
			break
		}
		list.PlateRecipes = append(list.PlateRecipes, summaryOf(rec))
	}
	for _, rec := range f.sortedByNewest(chefID, domain.RecipeTypeBatch) {
		if len(list.BatchRecipes) == limit {
			break
		}
		list.BatchRecipes = append(list.BatchRecipes, summaryOf(rec))
	}
	return list, nil
}

func (f *FakeRepository) NameTaken(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nameTakenLocked(chefID, name, recipeType), nil
}

func (f *FakeRepository) FindExact(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (*domain.RecipeSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec := f.findExactLocked(chefID, name, recipeType)
	if rec == nil {
		return nil, nil
	}
	s := summaryOf(rec)
	return &s, nil
}

func (f *FakeRepository) FindContains(ctx context.Context, chefID, query string, recipeType domain.RecipeType) (*domain.RecipeSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	needle := fold.String(query)
	for _, rec := range f.sortedByNewest(chefID, recipeType) {
		if strings.Contains(fold.String(rec.Name), needle) {
			s := summaryOf(rec)
			return &s, nil
		}
	}
	return nil, nil
}

func (f *FakeRepository) FindByKeyword(ctx context.Context, chefID, keyword string, recipeType domain.RecipeType, limit int) ([]domain.RecipeSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	needle := fold.String(keyword)
	var out []domain.RecipeSummary
	for _, rec := range f.sortedByNewest(chefID, recipeType) {
		if len(out) == limit {
			break
		}
		if strings.Contains(fold.String(rec.Name), needle) {
			out = append(out, summaryOf(rec))
		}
	}
	return out, nil
}

func (f *FakeRepository) SampleRecipeNames(ctx context.Context, chefID string, limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var names []string
	for _, recipeType := range []domain.RecipeType{domain.RecipeTypePlate, domain.RecipeTypeBatch} {
		for _, rec := range f.sortedByNewest(chefID, recipeType) {
			if len(names) == limit {
				return names, nil
			}
			names = append(names, rec.Name)
		}
	}
	return names, nil
}

func (f *FakeRepository) GetVersionHistory(ctx context.Context, recipeID string, recipeType domain.RecipeType) ([]domain.RecipeVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	history := f.versions[recipeID]
	out := make([]domain.RecipeVersion, len(history))
	// Newest first
	for i, v := range history {
		out[len(history)-1-i] = v
	}
	return out, nil
}

func (f *FakeRepository) GetActiveVersion(ctx context.Context, recipeID string, recipeType domain.RecipeType) (*domain.RecipeVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, v := range f.versions[recipeID] {
		if v.IsActive {
			out := v
			return &out, nil
		}
	}
	return nil, domain.ErrVersionNotFound
}

// ---- helpers (callers hold f.mu) ----

func (f *FakeRepository) nameTakenLocked(chefID, name string, recipeType domain.RecipeType) bool {
	return f.findExactLocked(chefID, name, recipeType) != nil
}

func (f *FakeRepository) findExactLocked(chefID, name string, recipeType domain.RecipeType) *domain.Recipe {
	for _, rec := range f.recipes {
		if rec.ChefID == chefID && rec.Type == recipeType && strings.EqualFold(rec.Name, name) {
			return rec
		}
	}
	return nil
}

func (f *FakeRepository) sortedByNewest(chefID string, recipeType domain.RecipeType) []*domain.Recipe {
	var recs []*domain.Recipe
	for _, rec := range f.recipes {
		if rec.ChefID == chefID && rec.Type == recipeType {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	return recs
}

func (f *FakeRepository) createVersionLocked(rec *domain.Recipe, number domain.VersionNumber, summary, reason string) {
	history := f.versions[rec.ID]
	for i := range history {
		history[i].IsActive = false
	}
	f.seq++
	f.versions[rec.ID] = append(history, domain.RecipeVersion{
		ID:            fmt.Sprintf("version-%d", f.seq),
		RecipeID:      rec.ID,
		Type:          rec.Type,
		VersionNumber: number,
		IsActive:      true,
		CreatedBy:     rec.ChefID,
		ChangeSummary: summary,
		ChangeReason:  reason,
		CreatedAt:     f.stamp(),
		Snapshot:      *rec,
	})
}

func summaryOf(rec *domain.Recipe) domain.RecipeSummary {
	return domain.RecipeSummary{
		ID:            rec.ID,
		Type:          rec.Type,
		Name:          rec.Name,
		Description:   rec.Description,
		Serves:        rec.Serves,
		Category:      rec.Category,
		Cuisine:       rec.Cuisine,
		YieldQuantity: rec.YieldQuantity,
		YieldUnit:     rec.YieldUnit,
		IsComplete:    rec.IsComplete,
		CreatedAt:     rec.CreatedAt,
	}
}
