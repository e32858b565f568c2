package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/plateful/chefvoice/internal/domain"
)

// getOrCreateIngredientTx finds a chef's catalog ingredient by name, creating
// it on first use. The upsert keys on (chef_id, lower(name)) so "Salt" and
// "salt" resolve to the same row; the no-op DO UPDATE makes RETURNING yield
// the existing id on conflict.
func getOrCreateIngredientTx(ctx context.Context, tx pgx.Tx, chefID string, ing domain.RecipeIngredient) (string, error) {
	query := `
		INSERT INTO ingredients (id, chef_id, name, unit, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (chef_id, lower(name)) DO UPDATE SET name = ingredients.name
		RETURNING id
	`
	var id string
	err := tx.QueryRow(ctx, query,
		uuid.NewString(), chefID, ing.Name, ing.Unit, ing.Category, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrContextLinkIngredient, err)
	}
	return id, nil
}

// replaceIngredientsTx swaps a recipe's ingredient links for the given list.
// Position preserves the list order so the recipe reads back in the order the
// chef dictated it.
func replaceIngredientsTx(ctx context.Context, tx pgx.Tx, recipeType domain.RecipeType, recipeID, chefID string, ingredients []domain.RecipeIngredient) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, linkTable(recipeType), linkColumn(recipeType))
	if _, err := tx.Exec(ctx, deleteQuery, recipeID); err != nil {
		return fmt.Errorf("%s: %w", ErrContextLinkIngredient, err)
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, ingredient_id, quantity, unit, preparation_notes, is_garnish, is_optional, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, linkTable(recipeType), linkColumn(recipeType))

	for i, ing := range ingredients {
		ingredientID, err := getOrCreateIngredientTx(ctx, tx, chefID, ing)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, insertQuery,
			recipeID, ingredientID, ing.Quantity, ing.Unit,
			ing.PreparationNotes, ing.IsGarnish, ing.IsOptional, i)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextLinkIngredient, err)
		}
	}
	return nil
}

// loadIngredients reads a recipe's ingredient links in position order,
// joined with the catalog for names. Runs on a transaction or the pool.
func loadIngredients(ctx context.Context, q querier, recipeType domain.RecipeType, recipeID string) ([]domain.RecipeIngredient, error) {
	query := fmt.Sprintf(`
		SELECT i.name, l.quantity, l.unit, COALESCE(i.category, ''),
		       l.preparation_notes, l.is_garnish, l.is_optional
		FROM %s l
		JOIN ingredients i ON i.id = l.ingredient_id
		WHERE l.%s = $1
		ORDER BY l.position
	`, linkTable(recipeType), linkColumn(recipeType))

	rows, err := q.Query(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQueryRecipe, err)
	}
	defer rows.Close()

	return scanIngredientRows(rows)
}

func scanIngredientRows(rows pgx.Rows) ([]domain.RecipeIngredient, error) {
	var ingredients []domain.RecipeIngredient
	for rows.Next() {
		var ing domain.RecipeIngredient
		if err := rows.Scan(&ing.Name, &ing.Quantity, &ing.Unit, &ing.Category,
			&ing.PreparationNotes, &ing.IsGarnish, &ing.IsOptional); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextScanRecipe, err)
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

// linkBatchComponentsTx records which batch recipes compose a plate.
// Components may arrive with an id or just a name; names resolve against the
// chef's batch recipes case-insensitively.
func linkBatchComponentsTx(ctx context.Context, tx pgx.Tx, chefID, plateID string, components []domain.BatchComponent) error {
	insertQuery := `
		INSERT INTO plate_batches (plate_recipe_id, batch_recipe_id, quantity, unit, preparation_notes, assembly_order)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i, comp := range components {
		batchID := comp.BatchID
		if batchID == "" {
			err := tx.QueryRow(ctx,
				`SELECT id FROM batch_recipes WHERE chef_id = $1 AND lower(name) = lower($2)`,
				chefID, comp.Name,
			).Scan(&batchID)
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: no batch recipe named %q", domain.ErrRecipeNotFound, comp.Name)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", ErrContextQueryRecipe, err)
			}
		}
		order := comp.AssemblyOrder
		if order == 0 {
			order = i + 1
		}
		_, err := tx.Exec(ctx, insertQuery,
			plateID, batchID, comp.Quantity, comp.Unit, comp.PreparationNotes, order)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrContextInsertRecipe, err)
		}
	}
	return nil
}

// loadBatchComponents reads a plate's batch components in assembly order.
func loadBatchComponents(ctx context.Context, q querier, plateID string) ([]domain.BatchComponent, error) {
	query := `
		SELECT pb.batch_recipe_id, b.name, pb.quantity, pb.unit, pb.preparation_notes, pb.assembly_order
		FROM plate_batches pb
		JOIN batch_recipes b ON b.id = pb.batch_recipe_id
		WHERE pb.plate_recipe_id = $1
		ORDER BY pb.assembly_order
	`
	rows, err := q.Query(ctx, query, plateID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQueryRecipe, err)
	}
	defer rows.Close()

	var components []domain.BatchComponent
	for rows.Next() {
		var comp domain.BatchComponent
		if err := rows.Scan(&comp.BatchID, &comp.Name, &comp.Quantity, &comp.Unit,
			&comp.PreparationNotes, &comp.AssemblyOrder); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextScanRecipe, err)
		}
		components = append(components, comp)
	}
	return components, rows.Err()
}
