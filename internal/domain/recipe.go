package domain

import (
	"strings"
	"time"
)

// RecipeType distinguishes the two recipe variants a chef can record.
type RecipeType string

const (
	// RecipeTypePlate is a final, served dish (serves, plating, garnish).
	RecipeTypePlate RecipeType = "plate"
	// RecipeTypeBatch is a bulk/base preparation (yield, storage, temperature).
	RecipeTypeBatch RecipeType = "batch"
)

// Valid reports whether t is one of the known recipe types.
func (t RecipeType) Valid() bool {
	return t == RecipeTypePlate || t == RecipeTypeBatch
}

// Recipe is the common shape shared by plate and batch recipes.
// Type selects which of the variant-specific field groups is meaningful;
// the persistence layer maps each variant to its own table.
type Recipe struct {
	ID          string     `json:"id"`
	ChefID      string     `json:"chef_id"`
	Type        RecipeType `json:"type"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`

	PrepTimeMinutes *int   `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes *int   `json:"cook_time_minutes,omitempty"`
	Notes           string `json:"notes,omitempty"`
	IsComplete      bool   `json:"is_complete"`

	// Plate fields
	Serves              *int   `json:"serves,omitempty"`
	Category            string `json:"category,omitempty"`
	Cuisine             string `json:"cuisine,omitempty"`
	Difficulty          string `json:"difficulty,omitempty"`
	PlatingInstructions string `json:"plating_instructions,omitempty"`
	Garnish             string `json:"garnish,omitempty"`
	PresentationNotes   string `json:"presentation_notes,omitempty"`

	// Batch fields
	YieldQuantity   *float64 `json:"yield_quantity,omitempty"`
	YieldUnit       string   `json:"yield_unit,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	TemperatureUnit string   `json:"temperature_unit,omitempty"`
	Equipment       []string `json:"equipment,omitempty"`
	Instructions    string   `json:"instructions,omitempty"`

	Ingredients []RecipeIngredient `json:"ingredients,omitempty"`
	// BatchComponents lists batch recipes assembled into a plate, in
	// assembly order. Only meaningful for plate recipes.
	BatchComponents []BatchComponent `json:"batch_components,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecipeIngredient is a link between a recipe (or a version snapshot) and a
// catalog ingredient, carrying the per-recipe quantity and flags.
type RecipeIngredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	// QuantityText is the quantity as dictated ("1 1/2", "2"). The capture
	// layer sends it when the chef spoke a fraction; the service parses it
	// into Quantity. It is not persisted.
	QuantityText     string `json:"quantity_text,omitempty"`
	Unit             string `json:"unit,omitempty"`
	Category         string `json:"category,omitempty"`
	PreparationNotes string `json:"preparation_notes,omitempty"`
	IsGarnish        bool   `json:"is_garnish,omitempty"`
	IsOptional       bool   `json:"is_optional,omitempty"`
}

// MergeDuplicateIngredients collapses repeated mentions of the same
// ingredient, case-insensitively by name. Quantities add up when the units
// match; a mention with a different unit replaces the earlier one, treated as
// the chef correcting themselves. Order of first mention is preserved.
func MergeDuplicateIngredients(ings []RecipeIngredient) []RecipeIngredient {
	if len(ings) < 2 {
		return ings
	}
	index := make(map[string]int, len(ings))
	out := make([]RecipeIngredient, 0, len(ings))
	for _, ing := range ings {
		key := strings.ToLower(strings.TrimSpace(ing.Name))
		i, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, ing)
			continue
		}
		if out[i].Unit == ing.Unit {
			out[i].Quantity += ing.Quantity
		} else {
			ing.Name = out[i].Name
			out[i] = ing
		}
	}
	return out
}

// BatchComponent references a batch recipe used as a component of a plate.
type BatchComponent struct {
	BatchID          string   `json:"batch_id,omitempty"`
	Name             string   `json:"name"`
	Quantity         *float64 `json:"quantity,omitempty"`
	Unit             string   `json:"unit,omitempty"`
	PreparationNotes string   `json:"preparation_notes,omitempty"`
	AssemblyOrder    int      `json:"assembly_order,omitempty"`
}

// Ingredient is a chef-scoped catalog entry shared across recipes and
// versions. Looked up case-insensitively by name, created on first use.
type Ingredient struct {
	ID        string    `json:"id"`
	ChefID    string    `json:"chef_id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit,omitempty"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RecipeSummary is the trimmed row shape returned by list and keyword search.
type RecipeSummary struct {
	ID            string     `json:"id"`
	Type          RecipeType `json:"type"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Serves        *int       `json:"serves,omitempty"`
	Category      string     `json:"category,omitempty"`
	Cuisine       string     `json:"cuisine,omitempty"`
	YieldQuantity *float64   `json:"yield_quantity,omitempty"`
	YieldUnit     string     `json:"yield_unit,omitempty"`
	IsComplete    bool       `json:"is_complete"`
	CreatedAt     time.Time  `json:"created_at"`
}

// RecipePatch carries the optional fields of a partial update. A nil field
// means "not specified this turn", never "clear the field". The persistence
// layer maps the patch over one fixed parameterized statement; no SQL is
// built from strings.
type RecipePatch struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Serves          *int     `json:"serves,omitempty"`
	Cuisine         *string  `json:"cuisine,omitempty"`
	Category        *string  `json:"category,omitempty"`
	PrepTimeMinutes *int     `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes *int     `json:"cook_time_minutes,omitempty"`
	Difficulty      *string  `json:"difficulty,omitempty"`
	YieldQuantity   *float64 `json:"yield_quantity,omitempty"`
	YieldUnit       *string  `json:"yield_unit,omitempty"`
	Instructions    *string  `json:"instructions,omitempty"`
	Notes           *string  `json:"notes,omitempty"`

	// Ingredients, when non-nil, replaces the recipe's current ingredient
	// list. The old list is snapshotted first so the change detector can
	// diff the two.
	Ingredients []RecipeIngredient `json:"ingredients,omitempty"`

	// ChangeReason is an optional chef-supplied note recorded on the
	// version this update produces.
	ChangeReason string `json:"change_reason,omitempty"`
}

// Apply writes the patch's non-nil fields onto r. Nil fields leave r alone,
// matching the "not specified this turn" contract.
func (p RecipePatch) Apply(r *Recipe) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Serves != nil {
		r.Serves = p.Serves
	}
	if p.Cuisine != nil {
		r.Cuisine = *p.Cuisine
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.PrepTimeMinutes != nil {
		r.PrepTimeMinutes = p.PrepTimeMinutes
	}
	if p.CookTimeMinutes != nil {
		r.CookTimeMinutes = p.CookTimeMinutes
	}
	if p.Difficulty != nil {
		r.Difficulty = *p.Difficulty
	}
	if p.YieldQuantity != nil {
		r.YieldQuantity = p.YieldQuantity
	}
	if p.YieldUnit != nil {
		r.YieldUnit = *p.YieldUnit
	}
	if p.Instructions != nil {
		r.Instructions = *p.Instructions
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	if p.Ingredients != nil {
		r.Ingredients = append([]RecipeIngredient(nil), p.Ingredients...)
	}
}

// IsEmpty reports whether the patch carries no updatable fields.
func (p RecipePatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Serves == nil &&
		p.Cuisine == nil && p.Category == nil && p.PrepTimeMinutes == nil &&
		p.CookTimeMinutes == nil && p.Difficulty == nil && p.YieldQuantity == nil &&
		p.YieldUnit == nil && p.Instructions == nil && p.Notes == nil &&
		p.Ingredients == nil
}

// UpdateResult is the structured outcome of an update operation. Expected
// failures (recipe not found, nothing to update) are reported here rather
// than as errors so the voice-facing caller can speak a graceful message.
type UpdateResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	RecipeID string `json:"recipe_id,omitempty"`
	NewName  string `json:"new_name,omitempty"`

	// Version details for a successful update, for read-back and the
	// post-commit event.
	NewVersion    string     `json:"new_version,omitempty"`
	ChangeSummary string     `json:"change_summary,omitempty"`
	ChangeType    ChangeType `json:"change_type,omitempty"`
}

// DeleteResult is the structured outcome of a delete operation.
type DeleteResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	RecipeID string `json:"recipe_id,omitempty"`
	Name     string `json:"name,omitempty"`
}

// RecipeList groups a chef's recipes by type, newest first.
type RecipeList struct {
	PlateRecipes []RecipeSummary `json:"plate_recipes"`
	BatchRecipes []RecipeSummary `json:"batch_recipes"`
}

// SearchResult is the outcome of the exact/contains/keyword search cascade.
type SearchResult struct {
	ExactMatch bool `json:"exact_match"`
	BestMatch  bool `json:"best_match"`
	TotalFound int  `json:"total_found"`

	// Recipe holds full details when the cascade resolved a single recipe.
	RecipeType RecipeType `json:"recipe_type,omitempty"`
	Recipe     *Recipe    `json:"recipe,omitempty"`

	// Name lists for outer disambiguation when multiple keyword matches
	// were accumulated.
	PlateRecipes []RecipeSummary `json:"plate_recipes"`
	BatchRecipes []RecipeSummary `json:"batch_recipes"`

	// SampleNames carries up to five of the chef's existing recipe names
	// when the query matched nothing at all.
	SampleNames []string `json:"sample_names,omitempty"`
}

// Conversation holds in-progress session state assembled turn-by-turn by the
// conversation layer before a save commits it to a Recipe.
type Conversation struct {
	ChefID         string    `json:"chef_id"`
	SessionID      string    `json:"session_id"`
	CurrentContext []byte    `json:"current_context"`
	MessageHistory []byte    `json:"message_history"`
	Status         string    `json:"status"`
	UpdatedAt      time.Time `json:"updated_at"`
}
