package units

import (
	"fmt"
	"os"
	"strings"

	"github.com/plateful/chefvoice/internal/utils"
	"github.com/plateful/chefvoice/internal/validation"
)

// AliasOverlay extends the built-in unit tables with deployment-specific
// entries. Kitchens in different regions use different shorthand ("ltr",
// "pkt", regional spice measures), so operators can ship an overlay file
// instead of patching the binary.
type AliasOverlay struct {
	Aliases     map[string]string   `json:"aliases"`
	Suggestions map[string][]string `json:"suggestions"`
}

var (
	overlayAliases     = map[string]string{}
	overlaySuggestions = map[string][]string{}
)

// LoadAliasOverlay validates the overlay file against its schema and merges
// it into the lookup tables. A missing overlay file is not an error; the
// built-in tables stand alone.
func LoadAliasOverlay(dataPath, schemaPath string) error {
	if _, err := os.Stat(dataPath); os.IsNotExist(err) {
		return nil
	}

	v := validation.NewSchemaValidator()
	if err := v.ValidateFile(dataPath, schemaPath); err != nil {
		return fmt.Errorf("unit alias overlay rejected: %w", err)
	}

	var overlay AliasOverlay
	if err := utils.LoadJSON(dataPath, &overlay); err != nil {
		return err
	}

	for alias, canonical := range overlay.Aliases {
		overlayAliases[strings.ToLower(strings.TrimSpace(alias))] = canonical
	}
	for ingredient, suggestions := range overlay.Suggestions {
		overlaySuggestions[strings.ToLower(strings.TrimSpace(ingredient))] = suggestions
	}
	return nil
}
