package postgres

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/plateful/chefvoice/internal/domain"
	"github.com/plateful/chefvoice/internal/repository"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()

	if !testing.Short() {
		ctx := context.Background()
		testPool, terminate = setupDatabase(ctx)
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}

	os.Exit(code)
}

// setupDatabase starts a disposable postgres, applies the migrations and
// returns a pool over the migrated schema. Failures are reported as warnings;
// the tests skip when no pool is available.
func setupDatabase(ctx context.Context) (*pgxpool.Pool, func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupDatabase: %v\n", r)
		}
	}()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return nil, func() {}
	}
	terminate := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		terminate()
		return nil, func() {}
	}

	if err := migrate(connStr); err != nil {
		fmt.Printf("WARNING: Failed to run migrations: %v\n", err)
		terminate()
		return nil, func() {}
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		fmt.Printf("WARNING: Failed to create pool: %v\n", err)
		terminate()
		return nil, func() {}
	}
	return pool, terminate
}

func migrate(connStr string) error {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, "../../../migrations")
}

func newTestRepo(t *testing.T) *RecipeRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
	return NewRecipeRepository(testPool)
}

func TestUpdateRecipeMissingRecipeOutranksEmptyPatch(t *testing.T) {
	repo := newTestRepo(t)

	// An empty patch against a recipe that does not exist reports the missing
	// recipe, not the missing fields.
	result, err := repo.UpdateRecipe(context.Background(), "chef-ordering-1", "Ghost Curry",
		domain.RecipeTypePlate, domain.RecipePatch{})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, repository.MsgRecipeNotFound, result.Message)
}

func TestUpdateRecipeEmptyPatchOnExistingRecipe(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.SaveRecipe(ctx, domain.Recipe{
		ChefID: "chef-ordering-2",
		Type:   domain.RecipeTypePlate,
		Name:   "Laksa",
	})
	require.NoError(t, err)

	result, err := repo.UpdateRecipe(ctx, "chef-ordering-2", "Laksa",
		domain.RecipeTypePlate, domain.RecipePatch{})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, repository.MsgNothingToUpdate, result.Message)
}

func TestSaveRecipeRepeatedIngredientMentions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Both mentions resolve to the same catalog ingredient; without merging
	// the second link row would violate the (recipe_id, ingredient_id) key.
	saved, err := repo.SaveRecipe(ctx, domain.Recipe{
		ChefID: "chef-repeat",
		Type:   domain.RecipeTypePlate,
		Name:   "Focaccia",
		Ingredients: []domain.RecipeIngredient{
			{Name: "Salt", Quantity: 5, Unit: "grams"},
			{Name: "flour", Quantity: 500, Unit: "grams"},
			{Name: "salt", Quantity: 7, Unit: "grams"},
		},
	})
	require.NoError(t, err)

	got, err := repo.GetRecipeByID(ctx, "chef-repeat", saved.ID, domain.RecipeTypePlate)
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 2)

	quantities := map[string]float64{}
	for _, ing := range got.Ingredients {
		quantities[ing.Name] = ing.Quantity
	}
	assert.Equal(t, float64(12), quantities["Salt"])
	assert.Equal(t, float64(500), quantities["flour"])
}

func TestUpdateRecipeRepeatedIngredientMentions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.SaveRecipe(ctx, domain.Recipe{
		ChefID: "chef-repeat-2",
		Type:   domain.RecipeTypeBatch,
		Name:   "Brine",
		Ingredients: []domain.RecipeIngredient{
			{Name: "salt", Quantity: 50, Unit: "grams"},
		},
	})
	require.NoError(t, err)

	result, err := repo.UpdateRecipe(ctx, "chef-repeat-2", "Brine",
		domain.RecipeTypeBatch, domain.RecipePatch{
			Ingredients: []domain.RecipeIngredient{
				{Name: "salt", Quantity: 30, Unit: "grams"},
				{Name: "salt", Quantity: 30, Unit: "grams"},
				{Name: "water", Quantity: 1, Unit: "liters"},
			},
		})
	require.NoError(t, err)
	require.True(t, result.Success)

	got, err := repo.GetRecipeByID(ctx, "chef-repeat-2", saved.ID, domain.RecipeTypeBatch)
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 2)
}
