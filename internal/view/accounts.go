package view

import (
	"sort"
	"strings"

	"github.com/gramshield/dashboard/internal/entity"
)

// AccountSortKey names one of the account sort orders. Each key is an
// independent comparator; the original UI collapsed threat-score and
// interaction sorting into one ambiguous branch, which is deliberately
// untangled here.
type AccountSortKey string

const (
	AccountSortThreatScore  AccountSortKey = "threatScore"  // descending, default
	AccountSortInteractions AccountSortKey = "interactions" // descending
	AccountSortFirstSeen    AccountSortKey = "firstSeen"    // newest first
	AccountSortUsername     AccountSortKey = "username"     // ascending
)

// ThreatLevelBand is the score bucket used by the accounts page filter.
type ThreatLevelBand string

const (
	BandCritical ThreatLevelBand = "critical" // score >= 90
	BandHigh     ThreatLevelBand = "high"     // 70 <= score < 90
	BandMedium   ThreatLevelBand = "medium"   // 50 <= score < 70
	BandLow      ThreatLevelBand = "low"      // score < 50
)

func (b ThreatLevelBand) contains(score int) bool {
	switch b {
	case BandCritical:
		return score >= 90
	case BandHigh:
		return score >= 70 && score < 90
	case BandMedium:
		return score >= 50 && score < 70
	case BandLow:
		return score < 50
	}
	return true
}

// AccountQuery is the filter and sort state of the accounts page.
type AccountQuery struct {
	Search      string
	ThreatLevel ThreatLevelBand
	Flag        string
	SortKey     AccountSortKey
}

// FilterAccounts returns the accounts matching the query, sorted by the
// requested key (threat score descending when unset). Search matches the
// username or any flag; the flag filter requires exact membership.
func FilterAccounts(accounts []entity.SuspiciousAccount, q AccountQuery) []entity.SuspiciousAccount {
	out := make([]entity.SuspiciousAccount, 0, len(accounts))
	for _, a := range accounts {
		if !matchesAccountSearch(q.Search, a) {
			continue
		}
		if q.ThreatLevel != "" && !q.ThreatLevel.contains(a.ThreatScore) {
			continue
		}
		if q.Flag != "" && !hasFlag(a.Flags, q.Flag) {
			continue
		}
		out = append(out, a)
	}
	return SortAccounts(out, q.SortKey)
}

// SortAccounts orders accounts by the given key with a stable sort.
func SortAccounts(accounts []entity.SuspiciousAccount, key AccountSortKey) []entity.SuspiciousAccount {
	out := append([]entity.SuspiciousAccount(nil), accounts...)
	switch key {
	case AccountSortInteractions:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Interactions > out[j].Interactions
		})
	case AccountSortFirstSeen:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].FirstSeen.After(out[j].FirstSeen)
		})
	case AccountSortUsername:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Username < out[j].Username
		})
	default: // AccountSortThreatScore
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ThreatScore > out[j].ThreatScore
		})
	}
	return out
}

// AccountStats is the summary strip under the accounts list.
type AccountStats struct {
	Total             int `json:"total"`
	Critical          int `json:"critical"`          // score >= 90
	HighRisk          int `json:"highRisk"`          // score >= 70
	AverageScore      int `json:"averageScore"`      // rounded
	TotalInteractions int `json:"totalInteractions"`
}

// ComputeAccountStats aggregates the account collection.
func ComputeAccountStats(accounts []entity.SuspiciousAccount) AccountStats {
	stats := AccountStats{Total: len(accounts)}
	sum := 0
	for _, a := range accounts {
		if a.ThreatScore >= 90 {
			stats.Critical++
		}
		if a.ThreatScore >= 70 {
			stats.HighRisk++
		}
		sum += a.ThreatScore
		stats.TotalInteractions += a.Interactions
	}
	if len(accounts) > 0 {
		stats.AverageScore = (sum + len(accounts)/2) / len(accounts)
	}
	return stats
}

func matchesAccountSearch(term string, a entity.SuspiciousAccount) bool {
	if term == "" {
		return true
	}
	lower := strings.ToLower(term)
	if strings.Contains(strings.ToLower(a.Username), lower) {
		return true
	}
	for _, f := range a.Flags {
		if strings.Contains(strings.ToLower(f), lower) {
			return true
		}
	}
	return false
}

func hasFlag(flags []string, flag string) bool {
	for _, f := range flags {
		if f == flag {
			return true
		}
	}
	return false
}
