package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionNumberNext(t *testing.T) {
	tests := []struct {
		name     string
		current  VersionNumber
		change   ChangeType
		expected VersionNumber
	}{
		{"minor from initial", VersionNumber{1, 0}, ChangeMinor, VersionNumber{1, 1}},
		{"minor past nine does not carry", VersionNumber{1, 9}, ChangeMinor, VersionNumber{1, 10}},
		{"minor keeps counting", VersionNumber{1, 10}, ChangeMinor, VersionNumber{1, 11}},
		{"major from mid-minor", VersionNumber{1, 5}, ChangeMajor, VersionNumber{2, 0}},
		{"major resets minor", VersionNumber{2, 14}, ChangeMajor, VersionNumber{3, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.current.Next(tt.change))
		})
	}
}

func TestVersionNumberString(t *testing.T) {
	assert.Equal(t, "1.0", VersionNumber{1, 0}.String())
	assert.Equal(t, "1.10", VersionNumber{1, 10}.String())
	assert.Equal(t, "2.0", VersionNumber{2, 0}.String())
}

// The rendered form reads as a decimal, so 1.10 sorts BEFORE 1.2 numerically.
// This is the documented behavior of the scheme: creation order, not numeric
// order, is authoritative for version history.
func TestVersionNumberFloatOrderingOddity(t *testing.T) {
	v110 := VersionNumber{1, 10}
	v12 := VersionNumber{1, 2}
	assert.Less(t, v110.Float(), v12.Float())
}

func TestParseVersionNumber(t *testing.T) {
	v, err := ParseVersionNumber("1.10")
	require.NoError(t, err)
	assert.Equal(t, VersionNumber{1, 10}, v)

	v, err = ParseVersionNumber(" 2.0 ")
	require.NoError(t, err)
	assert.Equal(t, VersionNumber{2, 0}, v)

	_, err = ParseVersionNumber("3")
	assert.Error(t, err)

	_, err = ParseVersionNumber("a.b")
	assert.Error(t, err)

	_, err = ParseVersionNumber("1.-2")
	assert.Error(t, err)
}

func TestRecipePatchIsEmpty(t *testing.T) {
	assert.True(t, RecipePatch{}.IsEmpty())

	name := "Biryani"
	assert.False(t, RecipePatch{Name: &name}.IsEmpty())
	assert.False(t, RecipePatch{Ingredients: []RecipeIngredient{}}.IsEmpty())
}
