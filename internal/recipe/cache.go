package recipe

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/text/cases"

	"github.com/plateful/chefvoice/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema.
// Increment this when the cached data structure changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

var cacheFold = cases.Fold()

// cachedRecipeEntry wraps a recipe with version metadata for cache invalidation
type cachedRecipeEntry struct {
	Version  string         `json:"version"`
	Recipe   *domain.Recipe `json:"recipe"`
	CachedAt time.Time      `json:"cached_at"`
}

// recipeCache provides an in-memory LRU cache for recipe detail lookups
// with time-based expiration and version-based invalidation to prevent stale data.
// Detail fetches hit on every voice read-back, so even a short TTL pays off.
type recipeCache struct {
	lru *expirable.LRU[string, *cachedRecipeEntry]
}

// newRecipeCache creates a new recipe cache with the specified size and TTL.
func newRecipeCache(size int, ttl time.Duration) *recipeCache {
	return &recipeCache{
		lru: expirable.NewLRU[string, *cachedRecipeEntry](size, nil, ttl),
	}
}

func cacheKey(chefID string, recipeType domain.RecipeType, name string) string {
	return chefID + ":" + string(recipeType) + ":" + cacheFold.String(name)
}

// Get retrieves a recipe from the cache.
// Returns (recipe, true) if found and version matches.
func (c *recipeCache) Get(chefID string, recipeType domain.RecipeType, name string) (*domain.Recipe, bool) {
	key := cacheKey(chefID, recipeType, name)
	entry, found := c.lru.Get(key)
	if !found {
		return nil, false
	}

	// Check version, auto-invalidate on mismatch
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return nil, false
	}

	return entry.Recipe, true
}

// Set stores a recipe in the cache with the current schema version.
func (c *recipeCache) Set(chefID string, recipeType domain.RecipeType, name string, recipe *domain.Recipe) {
	entry := &cachedRecipeEntry{
		Version:  CacheSchemaVersion,
		Recipe:   recipe,
		CachedAt: time.Now(),
	}
	c.lru.Add(cacheKey(chefID, recipeType, name), entry)
}

// Invalidate removes a cached recipe.
func (c *recipeCache) Invalidate(chefID string, recipeType domain.RecipeType, name string) {
	c.lru.Remove(cacheKey(chefID, recipeType, name))
}

// Len returns the number of cached entries.
func (c *recipeCache) Len() int {
	return c.lru.Len()
}
