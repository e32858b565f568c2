// Package changes diffs two snapshots of a recipe and classifies the update
// as minor or major. The summary it produces is what chefs hear read back
// ("Changed salt from 10g to 7g, Added garlic") and what the version store
// records as the change_summary.
package changes

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/plateful/chefvoice/internal/domain"
)

// Classification thresholds. An update is major when the recipe was renamed,
// when more than MaxMinorFieldChanges fields changed in total, or when more
// than MaxMinorIngredientDelta ingredients were added or removed.
const (
	MaxMinorFieldChanges    = 3
	MaxMinorIngredientDelta = 2
)

// MaxSummaryEntries caps how many change descriptions appear verbatim in the
// summary before the remainder collapses into "and N more changes".
const MaxSummaryEntries = 5

// NoChangesSummary is used when an update produced no effective field
// changes. A version is still created for it.
const NoChangesSummary = "Minor adjustments"

// Metadata is the set of tracked recipe fields the detector compares. A zero
// value in the new snapshot means "not specified this turn", not "cleared".
type Metadata struct {
	Name            string
	Description     string
	Serves          *int
	Cuisine         string
	Category        string
	PrepTimeMinutes *int
	CookTimeMinutes *int
	Difficulty      string
}

// MetadataFromRecipe extracts the tracked fields from a recipe snapshot.
func MetadataFromRecipe(r domain.Recipe) Metadata {
	return Metadata{
		Name:            r.Name,
		Description:     r.Description,
		Serves:          r.Serves,
		Cuisine:         r.Cuisine,
		Category:        r.Category,
		PrepTimeMinutes: r.PrepTimeMinutes,
		CookTimeMinutes: r.CookTimeMinutes,
		Difficulty:      r.Difficulty,
	}
}

// MetadataFromPatch extracts the tracked fields a partial update specifies.
// Fields the patch leaves nil stay zero, which the detector reads as "not
// specified this turn".
func MetadataFromPatch(p domain.RecipePatch) Metadata {
	var m Metadata
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	m.Serves = p.Serves
	if p.Cuisine != nil {
		m.Cuisine = *p.Cuisine
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	m.PrepTimeMinutes = p.PrepTimeMinutes
	m.CookTimeMinutes = p.CookTimeMinutes
	if p.Difficulty != nil {
		m.Difficulty = *p.Difficulty
	}
	return m
}

// Result is the outcome of a diff.
type Result struct {
	Summary       string
	FieldsChanged []string
	Type          domain.ChangeType
	Renamed       bool
}

var fold = cases.Fold()

// Detect compares old and new metadata plus ingredient lists and returns the
// change classification and a human-readable summary. newIngredients may be
// nil to mean the ingredient list was untouched this turn.
func Detect(oldMeta, newMeta Metadata, oldIngredients, newIngredients []domain.RecipeIngredient) Result {
	var descriptions []string
	var fields []string

	renamed := newMeta.Name != "" && !strings.EqualFold(newMeta.Name, oldMeta.Name)
	if renamed {
		descriptions = append(descriptions, fmt.Sprintf("Renamed to '%s'", newMeta.Name))
		fields = append(fields, "name")
	}

	if newMeta.Description != "" && newMeta.Description != oldMeta.Description {
		descriptions = append(descriptions, "Updated description")
		fields = append(fields, "description")
	}
	if d, ok := intChange("serves", oldMeta.Serves, newMeta.Serves); ok {
		descriptions = append(descriptions, d)
		fields = append(fields, "serves")
	}
	if d, ok := stringChange("cuisine", oldMeta.Cuisine, newMeta.Cuisine); ok {
		descriptions = append(descriptions, d)
		fields = append(fields, "cuisine")
	}
	if d, ok := stringChange("category", oldMeta.Category, newMeta.Category); ok {
		descriptions = append(descriptions, d)
		fields = append(fields, "category")
	}
	if d, ok := intChange("prep time", oldMeta.PrepTimeMinutes, newMeta.PrepTimeMinutes); ok {
		descriptions = append(descriptions, d)
		fields = append(fields, "prep_time_minutes")
	}
	if d, ok := intChange("cook time", oldMeta.CookTimeMinutes, newMeta.CookTimeMinutes); ok {
		descriptions = append(descriptions, d)
		fields = append(fields, "cook_time_minutes")
	}
	if d, ok := stringChange("difficulty", oldMeta.Difficulty, newMeta.Difficulty); ok {
		descriptions = append(descriptions, d)
		fields = append(fields, "difficulty")
	}

	var added, removed int
	if newIngredients != nil {
		ingDescriptions, ingFields, a, r := diffIngredients(oldIngredients, newIngredients)
		descriptions = append(descriptions, ingDescriptions...)
		fields = append(fields, ingFields...)
		added, removed = a, r
	}

	changeType := domain.ChangeMinor
	if renamed || len(descriptions) > MaxMinorFieldChanges ||
		removed > MaxMinorIngredientDelta || added > MaxMinorIngredientDelta {
		changeType = domain.ChangeMajor
	}

	return Result{
		Summary:       summarize(descriptions),
		FieldsChanged: fields,
		Type:          changeType,
		Renamed:       renamed,
	}
}

func diffIngredients(oldList, newList []domain.RecipeIngredient) (descriptions, fields []string, added, removed int) {
	oldByName := make(map[string]domain.RecipeIngredient, len(oldList))
	for _, ing := range oldList {
		oldByName[fold.String(ing.Name)] = ing
	}
	newByName := make(map[string]domain.RecipeIngredient, len(newList))
	for _, ing := range newList {
		newByName[fold.String(ing.Name)] = ing
	}

	// Removals first, in old-list order, then additions and quantity
	// changes in new-list order, so summaries read deterministically.
	for _, old := range oldList {
		if _, ok := newByName[fold.String(old.Name)]; !ok {
			descriptions = append(descriptions, fmt.Sprintf("Removed %s", old.Name))
			fields = append(fields, "ingredient:"+fold.String(old.Name))
			removed++
		}
	}

	for _, ing := range newList {
		key := fold.String(ing.Name)
		old, ok := oldByName[key]
		if !ok {
			descriptions = append(descriptions, fmt.Sprintf("Added %s", ing.Name))
			fields = append(fields, "ingredient:"+key)
			added++
			continue
		}
		if old.Quantity != ing.Quantity || old.Unit != ing.Unit {
			descriptions = append(descriptions, describeQuantityChange(old, ing))
			fields = append(fields, "ingredient:"+key)
		}
	}

	return descriptions, fields, added, removed
}

// describeQuantityChange renders "Changed salt from 10g to 7g", showing the
// unit once per side and omitting nothing when the unit itself changed.
func describeQuantityChange(old, updated domain.RecipeIngredient) string {
	return fmt.Sprintf("Changed %s from %s%s to %s%s",
		old.Name, formatQuantity(old.Quantity), old.Unit, formatQuantity(updated.Quantity), updated.Unit)
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func summarize(descriptions []string) string {
	if len(descriptions) == 0 {
		return NoChangesSummary
	}
	if len(descriptions) <= MaxSummaryEntries {
		return strings.Join(descriptions, ", ")
	}
	head := strings.Join(descriptions[:MaxSummaryEntries], ", ")
	return fmt.Sprintf("%s, and %d more changes", head, len(descriptions)-MaxSummaryEntries)
}

func intChange(label string, old, updated *int) (string, bool) {
	if updated == nil {
		return "", false
	}
	if old != nil && *old == *updated {
		return "", false
	}
	oldVal := 0
	if old != nil {
		oldVal = *old
	}
	return fmt.Sprintf("Changed %s from %d to %d", label, oldVal, *updated), true
}

func stringChange(label, old, updated string) (string, bool) {
	if updated == "" || updated == old {
		return "", false
	}
	if old == "" {
		return fmt.Sprintf("Set %s to '%s'", label, updated), true
	}
	return fmt.Sprintf("Changed %s from '%s' to '%s'", label, old, updated), true
}
