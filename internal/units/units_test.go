package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"abbreviation", "tsp", "teaspoon"},
		{"metric mass short", "g", "grams"},
		{"plural collapses", "cups", "cup"},
		{"mixed case with spaces", "  TBSP ", "tablespoon"},
		{"count unit", "cloves", "clove"},
		{"approximate unit", "pinch", "pinch"},
		{"fluid ounces", "fl oz", "fluid ounce"},
		{"unknown passes through", "glug", "glug"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(""), "bare counts have no unit")
	assert.True(t, IsValid("kg"))
	assert.True(t, IsValid("To Taste"))
	assert.False(t, IsValid("glug"))
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, []string{"clove", "grams"}, Suggest("garlic"))

	// Partial match: "chicken breast" contains "chicken"
	assert.Equal(t, []string{"grams", "kilograms", "pounds"}, Suggest("chicken breast"))

	// Unknown ingredients fall back to the generic set
	assert.Equal(t, []string{"grams", "piece", "tablespoon"}, Suggest("dragonfruit"))
}

func TestIsAmbiguous(t *testing.T) {
	assert.True(t, IsAmbiguous("10", "", "onions"))
	assert.False(t, IsAmbiguous("10", "grams", "onions"))
	assert.False(t, IsAmbiguous("5", "", "eggs"))
	assert.False(t, IsAmbiguous("some", "", "chicken"))
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"2", 2, true},
		{"2.5", 2.5, true},
		{"1/2", 0.5, true},
		{"1 1/2", 1.5, true},
		{"3/4", 0.75, true},
		{"", 0, false},
		{"1/0", 0, false},
		{"a few", 0, false},
		{"1 2 3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, ok := ParseQuantity(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.expected, v, 1e-9)
			}
		})
	}
}
