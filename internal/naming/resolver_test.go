package naming

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/chefvoice/internal/domain"
)

// takenSet builds a NameChecker over a fixed set of taken names.
func takenSet(names ...string) NameChecker {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return NameCheckerFunc(func(_ context.Context, _, name string, _ domain.RecipeType) (bool, error) {
		return set[strings.ToLower(name)], nil
	})
}

func TestResolveUniqueNameFreeName(t *testing.T) {
	got, err := ResolveUniqueName(context.Background(), takenSet(), "chef-1", "Biryani", domain.RecipeTypePlate)
	require.NoError(t, err)
	assert.Equal(t, "Biryani", got)
}

func TestResolveUniqueNameFirstSuffix(t *testing.T) {
	got, err := ResolveUniqueName(context.Background(), takenSet("Biryani"), "chef-1", "Biryani", domain.RecipeTypePlate)
	require.NoError(t, err)
	assert.Equal(t, "Biryani 2", got)
}

func TestResolveUniqueNameSkipsTakenSuffixes(t *testing.T) {
	got, err := ResolveUniqueName(context.Background(),
		takenSet("Biryani", "Biryani 2", "Biryani 3"),
		"chef-1", "Biryani", domain.RecipeTypePlate)
	require.NoError(t, err)
	assert.Equal(t, "Biryani 4", got)
}

func TestResolveUniqueNameCaseInsensitive(t *testing.T) {
	got, err := ResolveUniqueName(context.Background(), takenSet("biryani"), "chef-1", "BIRYANI", domain.RecipeTypePlate)
	require.NoError(t, err)
	assert.Equal(t, "BIRYANI 2", got)
}

func TestResolveUniqueNameTimestampFallback(t *testing.T) {
	orig := now
	now = func() time.Time { return time.Unix(1700000000, 0) }
	defer func() { now = orig }()

	everythingTaken := NameCheckerFunc(func(_ context.Context, _, _ string, _ domain.RecipeType) (bool, error) {
		return true, nil
	})

	got, err := ResolveUniqueName(context.Background(), everythingTaken, "chef-1", "Biryani", domain.RecipeTypePlate)
	require.NoError(t, err)
	assert.Equal(t, "Biryani 1700000000", got)
}

func TestResolveUniqueNameCheckerError(t *testing.T) {
	boom := errors.New("connection reset")
	failing := NameCheckerFunc(func(_ context.Context, _, _ string, _ domain.RecipeType) (bool, error) {
		return false, boom
	})

	_, err := ResolveUniqueName(context.Background(), failing, "chef-1", "Biryani", domain.RecipeTypePlate)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
