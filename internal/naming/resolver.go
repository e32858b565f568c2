// Package naming guarantees per-chef recipe name uniqueness. A desired name
// that is already taken gets a numeric suffix ("Biryani 2", "Biryani 3", ...);
// the probe and the subsequent insert must share one transaction or two
// concurrent saves can pick the same suffix.
package naming

import (
	"context"
	"fmt"
	"time"

	"github.com/plateful/chefvoice/internal/domain"
)

// NameChecker reports whether a chef already has a recipe of the given type
// with the given name, compared case-insensitively. Implementations backed by
// a store must run on the caller's transaction.
type NameChecker interface {
	NameTaken(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (bool, error)
}

// NameCheckerFunc adapts a function to the NameChecker interface.
type NameCheckerFunc func(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (bool, error)

// NameTaken calls f.
func (f NameCheckerFunc) NameTaken(ctx context.Context, chefID, name string, recipeType domain.RecipeType) (bool, error) {
	return f(ctx, chefID, name, recipeType)
}

// now is swapped in tests to pin the timestamp fallback.
var now = time.Now

// ResolveUniqueName returns desired unchanged when it is free, otherwise the
// first free "desired N" candidate for N in [2,100]. If every candidate is
// taken it appends a Unix timestamp, which is unique enough for a single
// chef's library.
func ResolveUniqueName(ctx context.Context, checker NameChecker, chefID, desired string, recipeType domain.RecipeType) (string, error) {
	taken, err := checker.NameTaken(ctx, chefID, desired, recipeType)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrContextCheckName, err)
	}
	if !taken {
		return desired, nil
	}

	for suffix := FirstSuffix; suffix <= MaxSuffixProbe; suffix++ {
		candidate := fmt.Sprintf("%s %d", desired, suffix)
		taken, err := checker.NameTaken(ctx, chefID, candidate, recipeType)
		if err != nil {
			return "", fmt.Errorf("%s: %w", ErrContextCheckName, err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return fmt.Sprintf("%s %d", desired, now().Unix()), nil
}
