package view

import "github.com/gramshield/dashboard/internal/entity"

// Threat level weights. Active threats, critical threats and
// high-scoring accounts each push the gauge up; the result is clamped
// to 100.
const (
	weightActiveThreat   = 20
	weightCriticalThreat = 30
	weightHighScore      = 15
	highScoreFloor       = 80
	threatLevelMax       = 100
)

// ThreatLevel computes the dashboard gauge value from the current
// threats and accounts.
func ThreatLevel(threats []entity.Threat, accounts []entity.SuspiciousAccount) int {
	level := 0
	for _, t := range threats {
		if t.Status == entity.ThreatStatusActive {
			level += weightActiveThreat
		}
		if t.Severity == entity.SeverityCritical {
			level += weightCriticalThreat
		}
	}
	for _, a := range accounts {
		if a.ThreatScore >= highScoreFloor {
			level += weightHighScore
		}
	}
	if level > threatLevelMax {
		level = threatLevelMax
	}
	return level
}

// DashboardStats is the headline block of the dashboard page.
type DashboardStats struct {
	ActiveThreats    int `json:"activeThreats"`
	CriticalThreats  int `json:"criticalThreats"`
	HighRiskAccounts int `json:"highRiskAccounts"`
	UnreadAlerts     int `json:"unreadAlerts"`
	ThreatLevel      int `json:"threatLevel"`
	SecurityScore    int `json:"securityScore"`
}

// ComputeDashboardStats aggregates the three collections into the
// headline counters. SecurityScore is the gauge complement, so a calm
// system reads 100.
func ComputeDashboardStats(threats []entity.Threat, accounts []entity.SuspiciousAccount, alerts []entity.Alert) DashboardStats {
	stats := DashboardStats{}
	for _, t := range threats {
		if t.Status == entity.ThreatStatusActive {
			stats.ActiveThreats++
		}
		if t.Severity == entity.SeverityCritical {
			stats.CriticalThreats++
		}
	}
	for _, a := range accounts {
		if a.ThreatScore >= 70 {
			stats.HighRiskAccounts++
		}
	}
	for _, a := range alerts {
		if !a.IsRead {
			stats.UnreadAlerts++
		}
	}
	stats.ThreatLevel = ThreatLevel(threats, accounts)
	stats.SecurityScore = threatLevelMax - stats.ThreatLevel
	return stats
}
