package recipe

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/plateful/chefvoice/internal/domain"
	"github.com/plateful/chefvoice/internal/logger"
	"github.com/plateful/chefvoice/internal/metrics"
)

// searchOrder fixes the tie-break across all tiers: plate recipes win over
// batch recipes whenever both could match.
var searchOrder = []domain.RecipeType{domain.RecipeTypePlate, domain.RecipeTypeBatch}

// Search resolves a free-text query through three tiers, each short-circuiting
// on first hit: exact name equality, substring match, then keyword match.
func (s *service) Search(ctx context.Context, chefID, query string) (domain.SearchResult, error) {
	log := logger.FromContext(ctx)

	query = strings.TrimSpace(query)
	if chefID == "" || query == "" {
		return domain.SearchResult{}, fmt.Errorf("%w: chef id and search query are required", domain.ErrInvalidInput)
	}

	metrics.SearchesPerformed.Inc()

	// Tier 1: exact match.
	for _, recipeType := range searchOrder {
		summary, err := s.repo.FindExact(ctx, chefID, query, recipeType)
		if err != nil {
			return domain.SearchResult{}, err
		}
		if summary != nil {
			rec, err := s.repo.GetRecipeByID(ctx, chefID, summary.ID, recipeType)
			if err != nil {
				return domain.SearchResult{}, err
			}
			metrics.SearchTierHits.WithLabelValues(metrics.TierExact).Inc()
			log.Debug(LogMsgSearchResolved, "tier", metrics.TierExact, "recipe_id", rec.ID)
			return domain.SearchResult{
				ExactMatch: true,
				TotalFound: 1,
				RecipeType: recipeType,
				Recipe:     rec,
			}, nil
		}
	}

	// Tier 2: substring match, most recently created wins.
	for _, recipeType := range searchOrder {
		summary, err := s.repo.FindContains(ctx, chefID, query, recipeType)
		if err != nil {
			return domain.SearchResult{}, err
		}
		if summary != nil {
			rec, err := s.repo.GetRecipeByID(ctx, chefID, summary.ID, recipeType)
			if err != nil {
				return domain.SearchResult{}, err
			}
			metrics.SearchTierHits.WithLabelValues(metrics.TierContains).Inc()
			log.Debug(LogMsgSearchResolved, "tier", metrics.TierContains, "recipe_id", rec.ID)
			return domain.SearchResult{
				BestMatch:  true,
				TotalFound: 1,
				RecipeType: recipeType,
				Recipe:     rec,
			}, nil
		}
	}

	// Tier 3: keyword match, deduplicated by id in first-seen order.
	keywords := splitKeywords(query)
	seen := make(map[string]bool)
	var plateMatches, batchMatches []domain.RecipeSummary

	for _, keyword := range keywords {
		for _, recipeType := range searchOrder {
			matches, err := s.repo.FindByKeyword(ctx, chefID, keyword, recipeType, KeywordMatchLimit)
			if err != nil {
				return domain.SearchResult{}, err
			}
			for _, m := range matches {
				if seen[m.ID] {
					continue
				}
				seen[m.ID] = true
				if recipeType == domain.RecipeTypePlate {
					plateMatches = append(plateMatches, m)
				} else {
					batchMatches = append(batchMatches, m)
				}
			}
		}
	}

	result := domain.SearchResult{
		TotalFound:   len(plateMatches) + len(batchMatches),
		PlateRecipes: plateMatches,
		BatchRecipes: batchMatches,
	}

	switch result.TotalFound {
	case 0:
		// Nothing matched. Offer a sample of existing names so the voice
		// layer can suggest alternatives.
		names, err := s.repo.SampleRecipeNames(ctx, chefID, SampleNamesLimit)
		if err != nil {
			log.Warn(LogMsgSampleNamesFailed, "error", err)
		} else {
			result.SampleNames = names
		}
		metrics.SearchTierHits.WithLabelValues(metrics.TierNone).Inc()

	case 1:
		// A single keyword hit resolves fully, same as the upper tiers.
		recipeType := domain.RecipeTypePlate
		id := ""
		if len(plateMatches) == 1 {
			id = plateMatches[0].ID
		} else {
			recipeType = domain.RecipeTypeBatch
			id = batchMatches[0].ID
		}
		rec, err := s.repo.GetRecipeByID(ctx, chefID, id, recipeType)
		if err != nil {
			return domain.SearchResult{}, err
		}
		result.RecipeType = recipeType
		result.Recipe = rec
		metrics.SearchTierHits.WithLabelValues(metrics.TierKeyword).Inc()

	default:
		metrics.SearchTierHits.WithLabelValues(metrics.TierKeyword).Inc()
	}

	log.Debug(LogMsgSearchResolved, "tier", metrics.TierKeyword, "total_found", result.TotalFound)
	return result, nil
}

// splitKeywords breaks a query on whitespace and drops tokens too short to be
// discriminating. If every token is short, the whole query becomes the sole
// keyword rather than leaving the keyword set empty.
func splitKeywords(query string) []string {
	var keywords []string
	for _, token := range strings.Fields(query) {
		if utf8.RuneCountInString(token) > MaxShortTokenLength {
			keywords = append(keywords, token)
		}
	}
	if len(keywords) == 0 {
		return []string{query}
	}
	return keywords
}
