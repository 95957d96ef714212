// Package view computes the derived views the dashboard renders: searched,
// filtered and sorted sequences, the day-grouped timeline and the threat
// level gauge. Every function is pure: inputs are never mutated and results
// are freshly allocated, so callers can feed cache snapshots straight in.
package view

import (
	"sort"
	"strings"

	"github.com/gramshield/dashboard/internal/entity"
)

// ThreatQuery is the filter state of the threats page. Empty fields apply
// no constraint; populated fields combine as a conjunction.
type ThreatQuery struct {
	Search   string
	Severity entity.Severity
	Status   entity.ThreatStatus
	Type     entity.ThreatType
}

// FilterThreats returns the threats matching the query, preserving input
// order. Search is a case-insensitive substring match over content,
// source and type.
func FilterThreats(threats []entity.Threat, q ThreatQuery) []entity.Threat {
	out := make([]entity.Threat, 0, len(threats))
	for _, t := range threats {
		if !matchesSearch(q.Search, t.Content, t.Source, string(t.Type)) {
			continue
		}
		if q.Severity != "" && t.Severity != q.Severity {
			continue
		}
		if q.Status != "" && t.Status != q.Status {
			continue
		}
		if q.Type != "" && t.Type != q.Type {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortThreatsByTimestamp orders threats newest first. The sort is stable:
// equal timestamps keep their input order.
func SortThreatsByTimestamp(threats []entity.Threat) []entity.Threat {
	out := append([]entity.Threat(nil), threats...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// RecentActiveThreats returns the newest n active threats.
func RecentActiveThreats(threats []entity.Threat, n int) []entity.Threat {
	active := FilterThreats(threats, ThreatQuery{Status: entity.ThreatStatusActive})
	active = SortThreatsByTimestamp(active)
	if len(active) > n {
		active = active[:n]
	}
	return active
}

// matchesSearch reports whether any of the candidate fields contains the
// term, case-insensitively. An empty term matches everything.
func matchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
