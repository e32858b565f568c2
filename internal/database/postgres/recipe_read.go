package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/plateful/chefvoice/internal/domain"
)

const plateColumns = `id, chef_id, name, description, serves, category, cuisine,
	difficulty, plating_instructions, garnish, presentation_notes,
	prep_time_minutes, cook_time_minutes, notes, is_complete, created_at, updated_at`

const batchColumns = `id, chef_id, name, description, yield_quantity, yield_unit,
	temperature, temperature_unit, equipment, instructions,
	prep_time_minutes, cook_time_minutes, notes, is_complete, created_at, updated_at`

// rowScanner lets the scan helpers accept pgx.Row and pgx.Rows alike.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlate(row rowScanner) (domain.Recipe, error) {
	rec := domain.Recipe{Type: domain.RecipeTypePlate}
	err := row.Scan(&rec.ID, &rec.ChefID, &rec.Name, &rec.Description, &rec.Serves,
		&rec.Category, &rec.Cuisine, &rec.Difficulty, &rec.PlatingInstructions,
		&rec.Garnish, &rec.PresentationNotes, &rec.PrepTimeMinutes,
		&rec.CookTimeMinutes, &rec.Notes, &rec.IsComplete, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

func scanBatch(row rowScanner) (domain.Recipe, error) {
	rec := domain.Recipe{Type: domain.RecipeTypeBatch}
	err := row.Scan(&rec.ID, &rec.ChefID, &rec.Name, &rec.Description, &rec.YieldQuantity,
		&rec.YieldUnit, &rec.Temperature, &rec.TemperatureUnit, &rec.Equipment,
		&rec.Instructions, &rec.PrepTimeMinutes, &rec.CookTimeMinutes,
		&rec.Notes, &rec.IsComplete, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

func scanRecipe(row rowScanner, recipeType domain.RecipeType) (domain.Recipe, error) {
	if recipeType == domain.RecipeTypeBatch {
		return scanBatch(row)
	}
	return scanPlate(row)
}

func recipeColumns(t domain.RecipeType) string {
	if t == domain.RecipeTypeBatch {
		return batchColumns
	}
	return plateColumns
}

// getRecipeForUpdateTx loads a recipe by exact name under FOR UPDATE, so the
// caller's read-diff-write sequence serializes against concurrent updates.
// Passes pgx.ErrNoRows through unwrapped for the caller to classify.
func getRecipeForUpdateTx(ctx context.Context, tx pgx.Tx, chefID, name string, recipeType domain.RecipeType) (*domain.Recipe, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE chef_id = $1 AND lower(name) = lower($2)
		FOR UPDATE
	`, recipeColumns(recipeType), recipeTable(recipeType))

	rec, err := scanRecipe(tx.QueryRow(ctx, query, chefID, name), recipeType)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetRecipeByID fetches full details by id, ingredients and batch components
// included.
func (r *RecipeRepository) GetRecipeByID(ctx context.Context, chefID, recipeID string, recipeType domain.RecipeType) (*domain.Recipe, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE chef_id = $1 AND id = $2
	`, recipeColumns(recipeType), recipeTable(recipeType))

	rec, err := scanRecipe(r.db.QueryRow(ctx, query, chefID, recipeID), recipeType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQueryRecipe, err)
	}
	return r.hydrate(ctx, &rec)
}

// GetRecipeByName fetches full details for the newest recipe whose name
// contains the query, case-insensitively. Substring matching keeps the voice
// path forgiving: "the biryani" still finds "Chicken Biryani".
func (r *RecipeRepository) GetRecipeByName(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (*domain.Recipe, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE chef_id = $1 AND name ILIKE '%%' || $2 || '%%'
		ORDER BY created_at DESC
		LIMIT 1
	`, recipeColumns(recipeType), recipeTable(recipeType))

	rec, err := scanRecipe(r.db.QueryRow(ctx, query, chefID, name), recipeType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQueryRecipe, err)
	}
	return r.hydrate(ctx, &rec)
}

// hydrate attaches ingredients and, for plates, batch components.
func (r *RecipeRepository) hydrate(ctx context.Context, rec *domain.Recipe) (*domain.Recipe, error) {
	ingredients, err := loadIngredients(ctx, r.db, rec.Type, rec.ID)
	if err != nil {
		return nil, err
	}
	rec.Ingredients = ingredients

	if rec.Type == domain.RecipeTypePlate {
		components, err := loadBatchComponents(ctx, r.db, rec.ID)
		if err != nil {
			return nil, err
		}
		rec.BatchComponents = components
	}
	return rec, nil
}

// ListRecipes returns the chef's recipes grouped by type, newest first, capped
// per type.
func (r *RecipeRepository) ListRecipes(ctx context.Context, chefID string, limit int) (domain.RecipeList, error) {
	plates, err := r.listSummaries(ctx, chefID, domain.RecipeTypePlate, limit)
	if err != nil {
		return domain.RecipeList{}, err
	}
	batches, err := r.listSummaries(ctx, chefID, domain.RecipeTypeBatch, limit)
	if err != nil {
		return domain.RecipeList{}, err
	}
	return domain.RecipeList{PlateRecipes: plates, BatchRecipes: batches}, nil
}

func (r *RecipeRepository) listSummaries(ctx context.Context, chefID string, recipeType domain.RecipeType, limit int) ([]domain.RecipeSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE chef_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, summaryColumns(recipeType), recipeTable(recipeType))

	return r.querySummaries(ctx, recipeType, query, chefID, limit)
}

// NameTaken reports whether a recipe of the given type already uses the name.
// Only useful outside a save transaction; the save path probes on its own tx.
func (r *RecipeRepository) NameTaken(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE chef_id = $1 AND lower(name) = lower($2)
		)
	`, recipeTable(recipeType))

	var taken bool
	if err := r.db.QueryRow(ctx, query, chefID, name).Scan(&taken); err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextQueryRecipe, err)
	}
	return taken, nil
}

func summaryColumns(t domain.RecipeType) string {
	if t == domain.RecipeTypeBatch {
		return `id, name, description, yield_quantity, yield_unit, is_complete, created_at`
	}
	return `id, name, description, serves, category, cuisine, is_complete, created_at`
}

func scanSummary(row rowScanner, recipeType domain.RecipeType) (domain.RecipeSummary, error) {
	s := domain.RecipeSummary{Type: recipeType}
	var err error
	if recipeType == domain.RecipeTypeBatch {
		err = row.Scan(&s.ID, &s.Name, &s.Description, &s.YieldQuantity, &s.YieldUnit, &s.IsComplete, &s.CreatedAt)
	} else {
		err = row.Scan(&s.ID, &s.Name, &s.Description, &s.Serves, &s.Category, &s.Cuisine, &s.IsComplete, &s.CreatedAt)
	}
	return s, err
}

func (r *RecipeRepository) querySummaries(ctx context.Context, recipeType domain.RecipeType, query string, args ...any) ([]domain.RecipeSummary, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQueryRecipe, err)
	}
	defer rows.Close()

	var summaries []domain.RecipeSummary
	for rows.Next() {
		s, err := scanSummary(rows, recipeType)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextScanRecipe, err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// FindExact returns the summary for a case-insensitive exact name match, or
// nil when no recipe matches.
func (r *RecipeRepository) FindExact(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (*domain.RecipeSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE chef_id = $1 AND lower(name) = lower($2)
	`, summaryColumns(recipeType), recipeTable(recipeType))

	s, err := scanSummary(r.db.QueryRow(ctx, query, chefID, name), recipeType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQueryRecipe, err)
	}
	return &s, nil
}

// FindContains returns the newest summary whose name contains the query, or
// nil when no recipe matches.
func (r *RecipeRepository) FindContains(ctx context.Context, chefID, query string, recipeType domain.RecipeType) (*domain.RecipeSummary, error) {
	stmt := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE chef_id = $1 AND name ILIKE '%%' || $2 || '%%'
		ORDER BY created_at DESC
		LIMIT 1
	`, summaryColumns(recipeType), recipeTable(recipeType))

	s, err := scanSummary(r.db.QueryRow(ctx, stmt, chefID, query), recipeType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQueryRecipe, err)
	}
	return &s, nil
}

// FindByKeyword returns up to limit summaries whose names contain the keyword,
// newest first.
func (r *RecipeRepository) FindByKeyword(ctx context.Context, chefID, keyword string, recipeType domain.RecipeType, limit int) ([]domain.RecipeSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE chef_id = $1 AND name ILIKE '%%' || $2 || '%%'
		ORDER BY created_at DESC
		LIMIT $3
	`, summaryColumns(recipeType), recipeTable(recipeType))

	return r.querySummaries(ctx, recipeType, query, chefID, keyword, limit)
}

// SampleRecipeNames returns up to limit of the chef's recipe names for the
// "nothing matched, here's what you have" reply, plates before batches.
func (r *RecipeRepository) SampleRecipeNames(ctx context.Context, chefID string, limit int) ([]string, error) {
	names, err := r.sampleNames(ctx, chefID, domain.RecipeTypePlate, limit)
	if err != nil {
		return nil, err
	}
	if remaining := limit - len(names); remaining > 0 {
		batchNames, err := r.sampleNames(ctx, chefID, domain.RecipeTypeBatch, remaining)
		if err != nil {
			return nil, err
		}
		names = append(names, batchNames...)
	}
	return names, nil
}

func (r *RecipeRepository) sampleNames(ctx context.Context, chefID string, recipeType domain.RecipeType, limit int) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT name FROM %s
		WHERE chef_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, recipeTable(recipeType))

	rows, err := r.db.Query(ctx, query, chefID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQueryNames, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextQueryNames, err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
