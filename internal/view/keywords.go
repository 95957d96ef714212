package view

import "github.com/gramshield/dashboard/internal/entity"

// KeywordQuery is the filter state of the keywords page.
type KeywordQuery struct {
	Search     string
	Category   entity.KeywordCategory
	Severity   entity.Severity
	ActiveOnly bool
}

// FilterKeywords returns the keywords matching the query, preserving
// input order. Search matches the term or the category name.
func FilterKeywords(keywords []entity.Keyword, q KeywordQuery) []entity.Keyword {
	out := make([]entity.Keyword, 0, len(keywords))
	for _, k := range keywords {
		if !matchesSearch(q.Search, k.Term, string(k.Category)) {
			continue
		}
		if q.Category != "" && k.Category != q.Category {
			continue
		}
		if q.Severity != "" && k.Severity != q.Severity {
			continue
		}
		if q.ActiveOnly && !k.IsActive {
			continue
		}
		out = append(out, k)
	}
	return out
}

// KeywordStats summarizes the watchlist for the page header.
type KeywordStats struct {
	Total      int                            `json:"total"`
	Active     int                            `json:"active"`
	Critical   int                            `json:"critical"`
	ByCategory map[entity.KeywordCategory]int `json:"byCategory"`
}

// ComputeKeywordStats aggregates the keyword collection.
func ComputeKeywordStats(keywords []entity.Keyword) KeywordStats {
	stats := KeywordStats{
		Total:      len(keywords),
		ByCategory: make(map[entity.KeywordCategory]int),
	}
	for _, k := range keywords {
		if k.IsActive {
			stats.Active++
		}
		if k.Severity == entity.SeverityCritical {
			stats.Critical++
		}
		stats.ByCategory[k.Category]++
	}
	return stats
}
