package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/plateful/chefvoice/internal/domain"
)

const pgUniqueViolation = "23505"

// createVersionTx deactivates the recipe's current version and inserts the new
// one as active, inside the caller's transaction. The snapshot column holds
// the full recipe as JSONB; versions are immutable, so there is nothing to
// join or migrate per-field later. A duplicate version number surfaces as
// domain.ErrDuplicateVersion via the table's unique constraint.
func createVersionTx(ctx context.Context, tx pgx.Tx, snapshot domain.Recipe, number domain.VersionNumber, summary, reason string) error {
	deactivate := fmt.Sprintf(
		`UPDATE %s SET is_active = false WHERE recipe_id = $1 AND is_active`,
		versionTable(snapshot.Type))
	if _, err := tx.Exec(ctx, deactivate, snapshot.ID); err != nil {
		return fmt.Errorf("%s: %w", ErrContextInsertVersion, err)
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextInsertVersion, err)
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (id, recipe_id, version_number, is_active, created_by, change_summary, change_reason, snapshot, created_at)
		VALUES ($1, $2, $3, true, $4, $5, $6, $7, $8)
	`, versionTable(snapshot.Type))

	_, err = tx.Exec(ctx, insert,
		uuid.NewString(), snapshot.ID, number.String(), snapshot.ChefID,
		summary, reason, payload, time.Now().UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateVersion, number)
		}
		return fmt.Errorf("%s: %w", ErrContextInsertVersion, err)
	}
	return nil
}

// createVersion runs createVersionTx in its own transaction. Used for the
// initial version after a save commits, where versioning is best-effort.
func (r *RecipeRepository) createVersion(ctx context.Context, snapshot domain.Recipe, number domain.VersionNumber, summary, reason string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextBeginTx, err)
	}
	defer SafeRollback(ctx, tx)

	if err := createVersionTx(ctx, tx, snapshot, number, summary, reason); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextCommitTx, err)
	}
	return nil
}

// currentVersionNumberTx returns the newest version number for a recipe, or
// InitialVersion when no versions exist. The rendered form doesn't sort
// numerically past .9, so creation time orders the history, not the string.
func currentVersionNumberTx(ctx context.Context, tx pgx.Tx, recipeType domain.RecipeType, recipeID string) (domain.VersionNumber, error) {
	query := fmt.Sprintf(`
		SELECT version_number FROM %s
		WHERE recipe_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, versionTable(recipeType))

	var rendered string
	err := tx.QueryRow(ctx, query, recipeID).Scan(&rendered)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.InitialVersion, nil
	}
	if err != nil {
		return domain.VersionNumber{}, fmt.Errorf("%s: %w", ErrContextQueryVersions, err)
	}
	return domain.ParseVersionNumber(rendered)
}

// GetVersionHistory returns a recipe's versions newest first.
func (r *RecipeRepository) GetVersionHistory(ctx context.Context, recipeID string, recipeType domain.RecipeType) ([]domain.RecipeVersion, error) {
	query := fmt.Sprintf(`
		SELECT id, recipe_id, version_number, is_active, created_by, change_summary, change_reason, snapshot, created_at
		FROM %s
		WHERE recipe_id = $1
		ORDER BY created_at DESC
	`, versionTable(recipeType))

	rows, err := r.db.Query(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQueryVersions, err)
	}
	defer rows.Close()

	var versions []domain.RecipeVersion
	for rows.Next() {
		version, err := scanVersion(rows, recipeType)
		if err != nil {
			return nil, err
		}
		versions = append(versions, version)
	}
	return versions, rows.Err()
}

// GetActiveVersion returns the recipe's single active version, or
// ErrVersionNotFound when the recipe has no versions.
func (r *RecipeRepository) GetActiveVersion(ctx context.Context, recipeID string, recipeType domain.RecipeType) (*domain.RecipeVersion, error) {
	query := fmt.Sprintf(`
		SELECT id, recipe_id, version_number, is_active, created_by, change_summary, change_reason, snapshot, created_at
		FROM %s
		WHERE recipe_id = $1 AND is_active
	`, versionTable(recipeType))

	rows, err := r.db.Query(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQueryVersions, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextQueryVersions, err)
		}
		return nil, domain.ErrVersionNotFound
	}
	version, err := scanVersion(rows, recipeType)
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func scanVersion(rows pgx.Rows, recipeType domain.RecipeType) (domain.RecipeVersion, error) {
	var (
		version  domain.RecipeVersion
		rendered string
		payload  []byte
	)
	err := rows.Scan(&version.ID, &version.RecipeID, &rendered, &version.IsActive,
		&version.CreatedBy, &version.ChangeSummary, &version.ChangeReason,
		&payload, &version.CreatedAt)
	if err != nil {
		return domain.RecipeVersion{}, fmt.Errorf("%s: %w", ErrContextQueryVersions, err)
	}

	version.Type = recipeType
	version.VersionNumber, err = domain.ParseVersionNumber(rendered)
	if err != nil {
		return domain.RecipeVersion{}, err
	}
	if err := json.Unmarshal(payload, &version.Snapshot); err != nil {
		return domain.RecipeVersion{}, fmt.Errorf("%s: %w", ErrContextQueryVersions, err)
	}
	return version, nil
}
