package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plateful/chefvoice/internal/changes"
	"github.com/plateful/chefvoice/internal/domain"
	"github.com/plateful/chefvoice/internal/logger"
	"github.com/plateful/chefvoice/internal/naming"
	"github.com/plateful/chefvoice/internal/repository"
)

// RecipeRepository implements repository.Recipe over PostgreSQL. Plate and
// batch recipes live in separate tables with type-specific columns; every
// statement here is fixed and parameterized, partial updates included.
type RecipeRepository struct {
	db *pgxpool.Pool
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *pgxpool.Pool) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// txNameChecker returns a NameChecker bound to tx so the uniqueness probe and
// the insert share one transaction. excludeID skips the recipe being renamed.
func txNameChecker(tx pgx.Tx, excludeID string) naming.NameCheckerFunc {
	return func(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (bool, error) {
		query := fmt.Sprintf(`
			SELECT EXISTS (
				SELECT 1 FROM %s
				WHERE chef_id = $1 AND lower(name) = lower($2) AND id != $3
			)
		`, recipeTable(recipeType))
		var taken bool
		err := tx.QueryRow(ctx, query, chefID, name, excludeID).Scan(&taken)
		return taken, err
	}
}

// SaveRecipe inserts a new recipe under a chef-unique name and commits, then
// attempts the initial version as a best-effort second step. A versioning
// failure is logged; the committed recipe row stands.
func (r *RecipeRepository) SaveRecipe(ctx context.Context, rec domain.Recipe) (domain.Recipe, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("%s: %w", ErrContextBeginTx, err)
	}
	defer SafeRollback(ctx, tx)

	rec.ID = uuid.NewString()
	rec.Ingredients = domain.MergeDuplicateIngredients(rec.Ingredients)
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	resolved, err := naming.ResolveUniqueName(ctx, txNameChecker(tx, rec.ID), rec.ChefID, rec.Name, rec.Type)
	if err != nil {
		return domain.Recipe{}, err
	}
	rec.Name = resolved

	switch rec.Type {
	case domain.RecipeTypePlate:
		err = insertPlateTx(ctx, tx, rec)
	case domain.RecipeTypeBatch:
		err = insertBatchTx(ctx, tx, rec)
	default:
		return domain.Recipe{}, fmt.Errorf("%w: %q", domain.ErrInvalidRecipeType, rec.Type)
	}
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("%s: %w", ErrContextInsertRecipe, err)
	}

	if err := replaceIngredientsTx(ctx, tx, rec.Type, rec.ID, rec.ChefID, rec.Ingredients); err != nil {
		return domain.Recipe{}, err
	}

	if rec.Type == domain.RecipeTypePlate && len(rec.BatchComponents) > 0 {
		if err := linkBatchComponentsTx(ctx, tx, rec.ChefID, rec.ID, rec.BatchComponents); err != nil {
			return domain.Recipe{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Recipe{}, fmt.Errorf("%s: %w", ErrContextCommitTx, err)
	}

	// Best-effort: the recipe row is already committed, so a failure here is
	// logged and swallowed rather than surfaced.
	summary := fmt.Sprintf("Initial recipe creation (v%s)", domain.InitialVersion)
	if err := r.createVersion(ctx, rec, domain.InitialVersion, summary, ""); err != nil {
		logger.FromContext(ctx).Error(LogMsgInitialVersionFailed,
			"recipe_id", rec.ID,
			"recipe_type", rec.Type,
			"error", err)
	}

	return rec, nil
}

func insertPlateTx(ctx context.Context, tx pgx.Tx, rec domain.Recipe) error {
	query := `
		INSERT INTO plate_recipes (
			id, chef_id, name, description, serves, category, cuisine,
			difficulty, plating_instructions, garnish, presentation_notes,
			prep_time_minutes, cook_time_minutes, notes, is_complete,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := tx.Exec(ctx, query,
		rec.ID, rec.ChefID, rec.Name, rec.Description, rec.Serves,
		rec.Category, rec.Cuisine, rec.Difficulty, rec.PlatingInstructions,
		rec.Garnish, rec.PresentationNotes, rec.PrepTimeMinutes,
		rec.CookTimeMinutes, rec.Notes, rec.IsComplete,
		rec.CreatedAt, rec.UpdatedAt,
	)
	return err
}

func insertBatchTx(ctx context.Context, tx pgx.Tx, rec domain.Recipe) error {
	query := `
		INSERT INTO batch_recipes (
			id, chef_id, name, description, yield_quantity, yield_unit,
			temperature, temperature_unit, equipment, instructions,
			prep_time_minutes, cook_time_minutes, notes, is_complete,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := tx.Exec(ctx, query,
		rec.ID, rec.ChefID, rec.Name, rec.Description, rec.YieldQuantity,
		rec.YieldUnit, rec.Temperature, rec.TemperatureUnit, rec.Equipment,
		rec.Instructions, rec.PrepTimeMinutes, rec.CookTimeMinutes,
		rec.Notes, rec.IsComplete, rec.CreatedAt, rec.UpdatedAt,
	)
	return err
}

// UpdateRecipe applies a partial update and creates the version recording it,
// all in one transaction holding a row lock on the parent recipe. A failure
// anywhere, version insert included, rolls the whole update back: an update
// without its version would silently corrupt the history.
func (r *RecipeRepository) UpdateRecipe(ctx context.Context, chefID, name string, recipeType domain.RecipeType, patch domain.RecipePatch) (domain.UpdateResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("%s: %w", ErrContextBeginTx, err)
	}
	defer SafeRollback(ctx, tx)

	// Lock the parent row for the read-diff-write sequence. Concurrent
	// updates to the same recipe serialize here instead of colliding on the
	// version number.
	old, err := getRecipeForUpdateTx(ctx, tx, chefID, name, recipeType)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.UpdateResult{Success: false, Message: repository.MsgRecipeNotFound}, nil
	}
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("%s: %w", ErrContextQueryRecipe, err)
	}

	// A missing recipe outranks an empty patch: the chef needs to hear that
	// the recipe does not exist before hearing there was nothing to change.
	if patch.IsEmpty() {
		return domain.UpdateResult{Success: false, Message: repository.MsgNothingToUpdate}, nil
	}
	patch.Ingredients = domain.MergeDuplicateIngredients(patch.Ingredients)

	oldIngredients, err := loadIngredients(ctx, tx, recipeType, old.ID)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	old.Ingredients = oldIngredients

	if patch.Name != nil {
		resolved, err := naming.ResolveUniqueName(ctx, txNameChecker(tx, old.ID), chefID, *patch.Name, recipeType)
		if err != nil {
			return domain.UpdateResult{}, err
		}
		patch.Name = &resolved
	}

	now := time.Now().UTC()
	switch recipeType {
	case domain.RecipeTypePlate:
		err = updatePlateTx(ctx, tx, old.ID, patch, now)
	case domain.RecipeTypeBatch:
		err = updateBatchTx(ctx, tx, old.ID, patch, now)
	default:
		return domain.UpdateResult{}, fmt.Errorf("%w: %q", domain.ErrInvalidRecipeType, recipeType)
	}
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("%s: %w", ErrContextUpdateRecipe, err)
	}

	if patch.Ingredients != nil {
		if err := replaceIngredientsTx(ctx, tx, recipeType, old.ID, chefID, patch.Ingredients); err != nil {
			return domain.UpdateResult{}, err
		}
	}

	diff := changes.Detect(changes.MetadataFromRecipe(*old), changes.MetadataFromPatch(patch),
		oldIngredients, patch.Ingredients)

	current, err := currentVersionNumberTx(ctx, tx, recipeType, old.ID)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	next := current.Next(diff.Type)

	updated := *old
	patch.Apply(&updated)
	updated.UpdatedAt = now

	if err := createVersionTx(ctx, tx, updated, next, diff.Summary, patch.ChangeReason); err != nil {
		return domain.UpdateResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.UpdateResult{}, fmt.Errorf("%s: %w", ErrContextCommitTx, err)
	}

	result := domain.UpdateResult{
		Success:       true,
		Message:       repository.MsgRecipeUpdated,
		RecipeID:      old.ID,
		NewVersion:    next.String(),
		ChangeSummary: diff.Summary,
		ChangeType:    diff.Type,
	}
	if diff.Renamed {
		result.NewName = updated.Name
	}
	return result, nil
}

func updatePlateTx(ctx context.Context, tx pgx.Tx, recipeID string, p domain.RecipePatch, now time.Time) error {
	query := `
		UPDATE plate_recipes SET
			name              = COALESCE($2, name),
			description       = COALESCE($3, description),
			serves            = COALESCE($4, serves),
			cuisine           = COALESCE($5, cuisine),
			category          = COALESCE($6, category),
			prep_time_minutes = COALESCE($7, prep_time_minutes),
			cook_time_minutes = COALESCE($8, cook_time_minutes),
			difficulty        = COALESCE($9, difficulty),
			notes             = COALESCE($10, notes),
			updated_at        = $11
		WHERE id = $1
	`
	_, err := tx.Exec(ctx, query, recipeID,
		p.Name, p.Description, p.Serves, p.Cuisine, p.Category,
		p.PrepTimeMinutes, p.CookTimeMinutes, p.Difficulty, p.Notes, now)
	return err
}

func updateBatchTx(ctx context.Context, tx pgx.Tx, recipeID string, p domain.RecipePatch, now time.Time) error {
	query := `
		UPDATE batch_recipes SET
			name              = COALESCE($2, name),
			description       = COALESCE($3, description),
			yield_quantity    = COALESCE($4, yield_quantity),
			yield_unit        = COALESCE($5, yield_unit),
			instructions      = COALESCE($6, instructions),
			prep_time_minutes = COALESCE($7, prep_time_minutes),
			cook_time_minutes = COALESCE($8, cook_time_minutes),
			notes             = COALESCE($9, notes),
			updated_at        = $10
		WHERE id = $1
	`
	_, err := tx.Exec(ctx, query, recipeID,
		p.Name, p.Description, p.YieldQuantity, p.YieldUnit, p.Instructions,
		p.PrepTimeMinutes, p.CookTimeMinutes, p.Notes, now)
	return err
}

// DeleteRecipe hard-deletes a recipe. Ingredient links, batch composition
// rows and the full version history go with it via ON DELETE CASCADE.
func (r *RecipeRepository) DeleteRecipe(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (domain.DeleteResult, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE chef_id = $1 AND lower(name) = lower($2)
		RETURNING id, name
	`, recipeTable(recipeType))

	var id, storedName string
	err := r.db.QueryRow(ctx, query, chefID, name).Scan(&id, &storedName)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DeleteResult{Success: false, Message: repository.MsgRecipeNotFound}, nil
	}
	if err != nil {
		return domain.DeleteResult{}, fmt.Errorf("%s: %w", ErrContextDeleteRecipe, err)
	}

	return domain.DeleteResult{
		Success:  true,
		Message:  repository.MsgRecipeDeleted,
		RecipeID: id,
		Name:     storedName,
	}, nil
}

// recipeTable maps a recipe type to its table. Inputs are the two known
// constants; anything else has been rejected before reaching SQL.
func recipeTable(t domain.RecipeType) string {
	if t == domain.RecipeTypeBatch {
		return "batch_recipes"
	}
	return "plate_recipes"
}

func linkTable(t domain.RecipeType) string {
	if t == domain.RecipeTypeBatch {
		return "batch_ingredients"
	}
	return "plate_ingredients"
}

func linkColumn(t domain.RecipeType) string {
	if t == domain.RecipeTypeBatch {
		return "batch_recipe_id"
	}
	return "plate_recipe_id"
}

func versionTable(t domain.RecipeType) string {
	if t == domain.RecipeTypeBatch {
		return "batch_recipe_versions"
	}
	return "plate_recipe_versions"
}
