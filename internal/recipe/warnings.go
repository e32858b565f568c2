package recipe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/plateful/chefvoice/internal/domain"
	"github.com/plateful/chefvoice/internal/units"
)

// IngredientWarnings inspects dictated ingredients and returns speakable
// warnings for the voice layer to read back: units we do not recognize (with
// suggestions), bare counts for ingredients that are usually weighed, spoken
// quantities that could not be read, and repeated mentions that get combined.
// Warnings never block a save; the recipe is stored either way.
func IngredientWarnings(ings []domain.RecipeIngredient) []string {
	var warnings []string
	seen := make(map[string]bool, len(ings))

	for _, ing := range ings {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			continue
		}

		key := strings.ToLower(name)
		if seen[key] {
			warnings = append(warnings, fmt.Sprintf(
				"%s was mentioned more than once, so the amounts were combined into one entry", name))
			continue
		}
		seen[key] = true

		if ing.QuantityText != "" {
			if _, ok := units.ParseQuantity(ing.QuantityText); !ok {
				warnings = append(warnings, fmt.Sprintf(
					"Couldn't read the quantity %q for %s", ing.QuantityText, name))
			}
		}

		unit := strings.TrimSpace(ing.Unit)
		if !units.IsValid(unit) {
			warnings = append(warnings, fmt.Sprintf(
				"%q isn't a unit I know for %s. Common choices are %s",
				unit, name, strings.Join(units.Suggest(name), ", ")))
			continue
		}

		if units.IsAmbiguous(spokenQuantity(ing), unit, name) {
			warnings = append(warnings, fmt.Sprintf(
				"Is that %s of %s by weight or by count? Common units are %s",
				spokenQuantity(ing), name, strings.Join(units.Suggest(name), ", ")))
		}
	}
	return warnings
}

// spokenQuantity renders the quantity for read-back: the dictated form when
// one was captured, the numeric value otherwise.
func spokenQuantity(ing domain.RecipeIngredient) string {
	if ing.QuantityText != "" {
		return ing.QuantityText
	}
	if ing.Quantity == 0 {
		return ""
	}
	return strconv.FormatFloat(ing.Quantity, 'f', -1, 64)
}
