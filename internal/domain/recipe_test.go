package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeDuplicateIngredientsSumsMatchingUnits(t *testing.T) {
	merged := MergeDuplicateIngredients([]RecipeIngredient{
		{Name: "Salt", Quantity: 5, Unit: "grams"},
		{Name: "flour", Quantity: 500, Unit: "grams"},
		{Name: "salt ", Quantity: 7, Unit: "grams"},
	})

	require.Len(t, merged, 2)
	assert.Equal(t, "Salt", merged[0].Name, "first mention keeps its casing")
	assert.Equal(t, float64(12), merged[0].Quantity)
	assert.Equal(t, "flour", merged[1].Name)
}

func TestMergeDuplicateIngredientsUnitMismatchTakesLatest(t *testing.T) {
	// A repeat with a different unit reads as the chef correcting themselves.
	merged := MergeDuplicateIngredients([]RecipeIngredient{
		{Name: "Butter", Quantity: 2, Unit: "tablespoon"},
		{Name: "butter", Quantity: 50, Unit: "grams"},
	})

	require.Len(t, merged, 1)
	assert.Equal(t, "Butter", merged[0].Name)
	assert.Equal(t, float64(50), merged[0].Quantity)
	assert.Equal(t, "grams", merged[0].Unit)
}

func TestMergeDuplicateIngredientsLeavesDistinctAlone(t *testing.T) {
	ings := []RecipeIngredient{
		{Name: "salt", Quantity: 5, Unit: "grams"},
		{Name: "pepper", Quantity: 3, Unit: "grams"},
	}

	merged := MergeDuplicateIngredients(ings)
	assert.Equal(t, ings, merged)
	assert.Nil(t, MergeDuplicateIngredients(nil))
}
