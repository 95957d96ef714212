package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramshield/dashboard/internal/entity"
)

func sampleAccounts() []entity.SuspiciousAccount {
	return []entity.SuspiciousAccount{
		{ID: 1, Username: "insta_support_team", ThreatScore: 95, Flags: []string{"phishing", "impersonation"}, FirstSeen: viewNow.Add(-6 * time.Hour), Interactions: 12},
		{ID: 2, Username: "troll_account_99", ThreatScore: 82, Flags: []string{"harassment"}, FirstSeen: viewNow.Add(-4 * 24 * time.Hour), Interactions: 47},
		{ID: 3, Username: "crypto_gainz", ThreatScore: 55, Flags: []string{"spam"}, FirstSeen: viewNow.Add(-10 * 24 * time.Hour), Interactions: 134},
		{ID: 4, Username: "anon_hater", ThreatScore: 38, Flags: []string{"harassment", "new-account"}, FirstSeen: viewNow.Add(-3 * 24 * time.Hour), Interactions: 21},
	}
}

func TestThreatLevelBands(t *testing.T) {
	cases := []struct {
		band  ThreatLevelBand
		score int
		want  bool
	}{
		{BandCritical, 90, true},
		{BandCritical, 89, false},
		{BandHigh, 89, true},
		{BandHigh, 70, true},
		{BandHigh, 90, false},
		{BandMedium, 69, true},
		{BandMedium, 50, true},
		{BandMedium, 49, false},
		{BandLow, 49, true},
		{BandLow, 50, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.band.contains(tc.score),
			"band %s score %d", tc.band, tc.score)
	}
}

func TestFilterAccounts(t *testing.T) {
	accounts := sampleAccounts()

	t.Run("search matches username and flags", func(t *testing.T) {
		byName := FilterAccounts(accounts, AccountQuery{Search: "TROLL"})
		require.Len(t, byName, 1)
		assert.Equal(t, 2, byName[0].ID)

		byFlag := FilterAccounts(accounts, AccountQuery{Search: "harass"})
		assert.Len(t, byFlag, 2)
	})

	t.Run("band filter", func(t *testing.T) {
		high := FilterAccounts(accounts, AccountQuery{ThreatLevel: BandHigh})
		require.Len(t, high, 1)
		assert.Equal(t, 2, high[0].ID)
	})

	t.Run("flag filter requires exact membership", func(t *testing.T) {
		got := FilterAccounts(accounts, AccountQuery{Flag: "harassment"})
		assert.Len(t, got, 2)

		none := FilterAccounts(accounts, AccountQuery{Flag: "harass"})
		assert.Empty(t, none)
	})

	t.Run("default sort is threat score descending", func(t *testing.T) {
		got := FilterAccounts(accounts, AccountQuery{})
		require.Len(t, got, 4)
		assert.Equal(t, []int{1, 2, 3, 4}, []int{got[0].ID, got[1].ID, got[2].ID, got[3].ID})
	})
}

func TestSortAccounts(t *testing.T) {
	accounts := sampleAccounts()

	t.Run("interactions descending", func(t *testing.T) {
		got := SortAccounts(accounts, AccountSortInteractions)
		assert.Equal(t, 134, got[0].Interactions)
		assert.Equal(t, 12, got[3].Interactions)
	})

	t.Run("first seen newest first", func(t *testing.T) {
		got := SortAccounts(accounts, AccountSortFirstSeen)
		assert.Equal(t, 1, got[0].ID)
		assert.Equal(t, 3, got[3].ID)
	})

	t.Run("username ascending", func(t *testing.T) {
		got := SortAccounts(accounts, AccountSortUsername)
		assert.Equal(t, "anon_hater", got[0].Username)
		assert.Equal(t, "troll_account_99", got[3].Username)
	})

	t.Run("ties keep input order", func(t *testing.T) {
		tied := []entity.SuspiciousAccount{
			{ID: 1, ThreatScore: 80},
			{ID: 2, ThreatScore: 80},
			{ID: 3, ThreatScore: 90},
		}
		got := SortAccounts(tied, AccountSortThreatScore)
		assert.Equal(t, []int{3, 1, 2}, []int{got[0].ID, got[1].ID, got[2].ID})
	})
}

func TestComputeAccountStats(t *testing.T) {
	stats := ComputeAccountStats(sampleAccounts())
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Critical)
	assert.Equal(t, 2, stats.HighRisk)
	// (95+82+55+38)/4 = 67.5, rounds to 68
	assert.Equal(t, 68, stats.AverageScore)
	assert.Equal(t, 214, stats.TotalInteractions)

	empty := ComputeAccountStats(nil)
	assert.Zero(t, empty.AverageScore)
}
