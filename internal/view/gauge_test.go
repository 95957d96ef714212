package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gramshield/dashboard/internal/entity"
)

func TestThreatLevel(t *testing.T) {
	t.Run("weighted sum", func(t *testing.T) {
		threats := []entity.Threat{
			{ID: 1, Severity: entity.SeverityCritical, Status: entity.ThreatStatusActive},
			{ID: 2, Severity: entity.SeverityHigh, Status: entity.ThreatStatusActive},
			{ID: 3, Severity: entity.SeverityLow, Status: entity.ThreatStatusResolved},
		}
		accounts := []entity.SuspiciousAccount{
			{ID: 1, ThreatScore: 85},
			{ID: 2, ThreatScore: 60},
		}
		// 2 active (40) + 1 critical (30) + 1 high-scoring account (15)
		assert.Equal(t, 85, ThreatLevel(threats, accounts))
	})

	t.Run("resolved critical still counts severity", func(t *testing.T) {
		threats := []entity.Threat{
			{ID: 1, Severity: entity.SeverityCritical, Status: entity.ThreatStatusResolved},
		}
		assert.Equal(t, 30, ThreatLevel(threats, nil))
	})

	t.Run("score boundary is eighty", func(t *testing.T) {
		assert.Equal(t, 15, ThreatLevel(nil, []entity.SuspiciousAccount{{ThreatScore: 80}}))
		assert.Equal(t, 0, ThreatLevel(nil, []entity.SuspiciousAccount{{ThreatScore: 79}}))
	})

	t.Run("clamped at one hundred", func(t *testing.T) {
		threats := make([]entity.Threat, 6)
		for i := range threats {
			threats[i] = entity.Threat{ID: i + 1, Severity: entity.SeverityCritical, Status: entity.ThreatStatusActive}
		}
		assert.Equal(t, 100, ThreatLevel(threats, nil))
	})

	t.Run("empty inputs read zero", func(t *testing.T) {
		assert.Equal(t, 0, ThreatLevel(nil, nil))
	})
}

func TestComputeDashboardStats(t *testing.T) {
	threats := []entity.Threat{
		{ID: 1, Severity: entity.SeverityCritical, Status: entity.ThreatStatusActive},
		{ID: 2, Severity: entity.SeverityHigh, Status: entity.ThreatStatusActive},
		{ID: 3, Severity: entity.SeverityLow, Status: entity.ThreatStatusMonitoring},
	}
	accounts := []entity.SuspiciousAccount{
		{ID: 1, ThreatScore: 95},
		{ID: 2, ThreatScore: 72},
		{ID: 3, ThreatScore: 40},
	}
	alerts := []entity.Alert{
		{ID: 1, IsRead: false},
		{ID: 2, IsRead: true},
		{ID: 3, IsRead: false},
	}

	stats := ComputeDashboardStats(threats, accounts, alerts)
	assert.Equal(t, 2, stats.ActiveThreats)
	assert.Equal(t, 1, stats.CriticalThreats)
	assert.Equal(t, 2, stats.HighRiskAccounts)
	assert.Equal(t, 2, stats.UnreadAlerts)
	// 2 active (40) + 1 critical (30) + 1 account scoring 80 or above (15)
	assert.Equal(t, 85, stats.ThreatLevel)
	assert.Equal(t, 15, stats.SecurityScore)
}
