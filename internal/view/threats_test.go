package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramshield/dashboard/internal/entity"
)

var viewNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func sampleThreats() []entity.Threat {
	return []entity.Threat{
		{ID: 1, Type: entity.ThreatTypeHarassment, Severity: entity.SeverityHigh, Source: "@troll", Content: "Abusive comments", Timestamp: viewNow.Add(-2 * time.Hour), Status: entity.ThreatStatusActive},
		{ID: 2, Type: entity.ThreatTypePhishing, Severity: entity.SeverityCritical, Source: "@support", Content: "Spam verification link", Timestamp: viewNow.Add(-5 * time.Hour), Status: entity.ThreatStatusActive},
		{ID: 3, Type: entity.ThreatTypeSpam, Severity: entity.SeverityLow, Source: "@crypto", Content: "Giveaway tags", Timestamp: viewNow.Add(-26 * time.Hour), Status: entity.ThreatStatusMonitoring},
		{ID: 4, Type: entity.ThreatTypeSpam, Severity: entity.SeverityLow, Source: "@bot", Content: "More giveaway tags", Timestamp: viewNow.Add(-30 * time.Hour), Status: entity.ThreatStatusResolved},
	}
}

func TestFilterThreats(t *testing.T) {
	threats := sampleThreats()

	t.Run("empty query matches all", func(t *testing.T) {
		assert.Len(t, FilterThreats(threats, ThreatQuery{}), 4)
	})

	t.Run("search is case insensitive substring", func(t *testing.T) {
		got := FilterThreats(threats, ThreatQuery{Search: "spa"})
		require.Len(t, got, 3)
		assert.Equal(t, []int{2, 3, 4}, []int{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("search covers source and type", func(t *testing.T) {
		bySource := FilterThreats(threats, ThreatQuery{Search: "TROLL"})
		require.Len(t, bySource, 1)
		assert.Equal(t, 1, bySource[0].ID)

		byType := FilterThreats(threats, ThreatQuery{Search: "phishing"})
		require.Len(t, byType, 1)
		assert.Equal(t, 2, byType[0].ID)
	})

	t.Run("filters combine conjunctively", func(t *testing.T) {
		got := FilterThreats(threats, ThreatQuery{
			Search: "giveaway",
			Type:   entity.ThreatTypeSpam,
			Status: entity.ThreatStatusMonitoring,
		})
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].ID)
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		FilterThreats(threats, ThreatQuery{Severity: entity.SeverityLow})
		assert.Equal(t, 1, threats[0].ID)
		assert.Len(t, threats, 4)
	})
}

func TestSortThreatsByTimestamp(t *testing.T) {
	threats := sampleThreats()
	sorted := SortThreatsByTimestamp(threats)

	assert.Equal(t, []int{1, 2, 3, 4}, []int{sorted[0].ID, sorted[1].ID, sorted[2].ID, sorted[3].ID})
	assert.Equal(t, 1, threats[0].ID, "input untouched")

	t.Run("equal timestamps keep input order", func(t *testing.T) {
		ts := viewNow.Add(-1 * time.Hour)
		tied := []entity.Threat{
			{ID: 10, Timestamp: ts},
			{ID: 11, Timestamp: ts},
			{ID: 12, Timestamp: viewNow},
		}
		got := SortThreatsByTimestamp(tied)
		assert.Equal(t, []int{12, 10, 11}, []int{got[0].ID, got[1].ID, got[2].ID})
	})
}

func TestRecentActiveThreats(t *testing.T) {
	threats := sampleThreats()
	got := RecentActiveThreats(threats, 3)
	require.Len(t, got, 2, "only active threats qualify")
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)

	capped := RecentActiveThreats(threats, 1)
	require.Len(t, capped, 1)
	assert.Equal(t, 1, capped[0].ID)
}
