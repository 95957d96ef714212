package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramshield/dashboard/internal/entity"
)

func sampleKeywords() []entity.Keyword {
	return []entity.Keyword{
		{ID: 1, Term: "verify your account", Category: entity.KeywordCategoryPhishing, Severity: entity.SeverityCritical, IsActive: true},
		{ID: 2, Term: "free followers", Category: entity.KeywordCategorySpam, Severity: entity.SeverityLow, IsActive: true},
		{ID: 3, Term: "ugly", Category: entity.KeywordCategoryHarassment, Severity: entity.SeverityMedium, IsActive: false},
		{ID: 4, Term: "crypto giveaway", Category: entity.KeywordCategorySpam, Severity: entity.SeverityMedium, IsActive: true},
	}
}

func TestFilterKeywords(t *testing.T) {
	keywords := sampleKeywords()

	t.Run("search matches term and category name", func(t *testing.T) {
		byTerm := FilterKeywords(keywords, KeywordQuery{Search: "FOLLOW"})
		require.Len(t, byTerm, 1)
		assert.Equal(t, 2, byTerm[0].ID)

		byCategory := FilterKeywords(keywords, KeywordQuery{Search: "spam"})
		assert.Len(t, byCategory, 2)
	})

	t.Run("conjunctive category severity and active filters", func(t *testing.T) {
		got := FilterKeywords(keywords, KeywordQuery{
			Category:   entity.KeywordCategorySpam,
			Severity:   entity.SeverityMedium,
			ActiveOnly: true,
		})
		require.Len(t, got, 1)
		assert.Equal(t, 4, got[0].ID)
	})

	t.Run("active only", func(t *testing.T) {
		got := FilterKeywords(keywords, KeywordQuery{ActiveOnly: true})
		assert.Len(t, got, 3)
	})
}

func TestComputeKeywordStats(t *testing.T) {
	stats := ComputeKeywordStats(sampleKeywords())
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.Active)
	assert.Equal(t, 1, stats.Critical)
	assert.Equal(t, 2, stats.ByCategory[entity.KeywordCategorySpam])
	assert.Equal(t, 1, stats.ByCategory[entity.KeywordCategoryPhishing])
}
