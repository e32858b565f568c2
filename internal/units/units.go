// Package units maps raw culinary unit strings to canonical forms and
// provides quantity parsing helpers for the ingredient capture flow.
package units

import (
	"strconv"
	"strings"
)

// Standard culinary units by category. Unknown units are passed through
// unchanged rather than rejected - professional kitchens use ad hoc units.
var standardUnits = map[string]map[string]string{
	"mass_metric": {
		"mg": "milligrams", "milligram": "milligrams", "milligrams": "milligrams",
		"g": "grams", "gram": "grams", "grams": "grams",
		"kg": "kilograms", "kilogram": "kilograms", "kilograms": "kilograms",
	},
	"mass_imperial": {
		"oz": "ounces", "ounce": "ounces", "ounces": "ounces",
		"lb": "pounds", "lbs": "pounds", "pound": "pounds", "pounds": "pounds",
	},
	"volume_metric": {
		"ml": "milliliters", "milliliter": "milliliters", "milliliters": "milliliters",
		"l": "liters", "liter": "liters", "liters": "liters",
	},
	"volume_imperial": {
		"tsp": "teaspoon", "teaspoon": "teaspoon", "teaspoons": "teaspoon",
		"tbsp": "tablespoon", "tablespoon": "tablespoon", "tablespoons": "tablespoon",
		"cup": "cup", "cups": "cup",
		"pint": "pint", "pints": "pint",
		"quart": "quart", "quarts": "quart",
		"gallon": "gallon", "gallons": "gallon",
		"fl oz": "fluid ounce", "fluid ounce": "fluid ounce", "fluid ounces": "fluid ounce",
	},
	"count": {
		"piece": "piece", "pieces": "piece",
		"whole": "whole",
		"clove": "clove", "cloves": "clove",
		"slice": "slice", "slices": "slice",
		"stick": "stick", "sticks": "stick",
		"leaf": "leaf", "leaves": "leaf",
		"sprig": "sprig", "sprigs": "sprig",
	},
	"approximate": {
		"pinch": "pinch", "dash": "dash", "handful": "handful", "bunch": "bunch",
		"small": "small", "medium": "medium", "large": "large",
		"to taste": "to taste",
	},
}

// Common ingredient-to-unit mappings used for suggestions when a chef leaves
// the unit out or uses one we do not recognize.
var unitSuggestions = map[string][]string{
	"chicken": {"grams", "kilograms", "pounds"},
	"beef":    {"grams", "kilograms", "pounds"},
	"pork":    {"grams", "kilograms", "pounds"},
	"fish":    {"grams", "kilograms", "pounds"},
	"paneer":  {"grams", "kilograms"},
	"tofu":    {"grams", "kilograms"},

	"onion": {"grams", "piece", "kilograms"}, "onions": {"grams", "piece", "kilograms"},
	"tomato": {"grams", "piece", "kilograms"}, "tomatoes": {"grams", "piece", "kilograms"},
	"potato": {"grams", "piece", "kilograms"}, "potatoes": {"grams", "piece", "kilograms"},
	"garlic": {"clove", "grams"},

	"salt":      {"teaspoon", "tablespoon", "grams", "pinch"},
	"pepper":    {"teaspoon", "tablespoon", "grams", "pinch"},
	"cumin":     {"teaspoon", "tablespoon", "grams"},
	"coriander": {"teaspoon", "tablespoon", "grams"},
	"turmeric":  {"teaspoon", "tablespoon", "grams"},

	"water": {"milliliters", "liters", "cup"},
	"milk":  {"milliliters", "liters", "cup"},
	"cream": {"milliliters", "liters", "cup"},
	"oil":   {"milliliters", "liters", "tablespoon"},
	"stock": {"milliliters", "liters", "cup"},

	"rice":  {"grams", "kilograms", "cup"},
	"flour": {"grams", "kilograms", "cup"},
	"sugar": {"grams", "kilograms", "cup", "tablespoon"},
}

// Ingredients that are usually weighed; a bare count for these is ambiguous
// ("10 onions" - grams or pieces?).
var commonWeighedIngredients = []string{
	"onion", "onions", "tomato", "tomatoes", "potato", "potatoes",
	"chicken", "beef", "pork", "fish", "paneer",
}

// Normalize maps a raw unit string to its canonical form ("tsp" -> "teaspoon",
// "g" -> "grams"). Unknown units are returned unchanged.
func Normalize(unit string) string {
	if unit == "" {
		return ""
	}
	key := strings.ToLower(strings.TrimSpace(unit))
	if canonical, ok := overlayAliases[key]; ok {
		return canonical
	}
	for _, category := range standardUnits {
		if canonical, ok := category[key]; ok {
			return canonical
		}
	}
	return key
}

// IsValid reports whether the unit appears in the standard tables. The empty
// string is valid - bare counts like "5 eggs" carry no unit.
func IsValid(unit string) bool {
	if unit == "" {
		return true
	}
	key := strings.ToLower(strings.TrimSpace(unit))
	if _, ok := overlayAliases[key]; ok {
		return true
	}
	for _, category := range standardUnits {
		if _, ok := category[key]; ok {
			return true
		}
	}
	return false
}

// Suggest returns appropriate units for an ingredient name, most suitable
// first. Falls back to generic suggestions for unknown ingredients.
func Suggest(ingredient string) []string {
	name := strings.ToLower(strings.TrimSpace(ingredient))
	if units, ok := overlaySuggestions[name]; ok {
		return units
	}
	if units, ok := unitSuggestions[name]; ok {
		return units
	}
	for ing, units := range unitSuggestions {
		if strings.Contains(name, ing) || strings.Contains(ing, name) {
			return units
		}
	}
	return []string{"grams", "piece", "tablespoon"}
}

// IsAmbiguous reports whether a quantity without a unit needs a follow-up
// question for an ingredient that is usually weighed.
func IsAmbiguous(quantity, unit, ingredient string) bool {
	if unit != "" || quantity == "" {
		return false
	}
	if _, err := strconv.ParseFloat(quantity, 64); err != nil {
		return false
	}
	name := strings.ToLower(ingredient)
	for _, ing := range commonWeighedIngredients {
		if strings.Contains(name, ing) {
			return true
		}
	}
	return false
}

// ParseQuantity parses a spoken quantity: whole numbers, decimals, fractions
// like "1/2", and mixed numbers like "1 1/2". Returns false when the string
// cannot be read as a quantity.
func ParseQuantity(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if !strings.Contains(s, "/") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	parts := strings.Fields(s)
	switch len(parts) {
	case 1:
		return parseFraction(parts[0])
	case 2:
		whole, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, false
		}
		frac, ok := parseFraction(parts[1])
		if !ok {
			return 0, false
		}
		return whole + frac, true
	default:
		return 0, false
	}
}

func parseFraction(s string) (float64, bool) {
	num, denom, ok := strings.Cut(s, "/")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(denom, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}
