package store

import (
	"time"

	"github.com/gramshield/dashboard/internal/entity"
)

// Sample monitoring dataset for the in-memory backend. Timestamps are
// relative to startup so the timeline always has today/yesterday buckets
// to render.

// SeedThreats returns the sample threat collection.
func SeedThreats() []entity.Threat {
	now := time.Now()
	return []entity.Threat{
		{
			ID:        1,
			Type:      entity.ThreatTypeHarassment,
			Severity:  entity.SeverityHigh,
			Source:    "@troll_account_99",
			Content:   "Repeated abusive comments on your latest three posts",
			Timestamp: now.Add(-2 * time.Hour),
			Status:    entity.ThreatStatusActive,
		},
		{
			ID:        2,
			Type:      entity.ThreatTypePhishing,
			Severity:  entity.SeverityCritical,
			Source:    "@insta_support_team",
			Content:   "DM claiming your account will be deleted unless you verify at insta-verify.link",
			Timestamp: now.Add(-5 * time.Hour),
			Status:    entity.ThreatStatusActive,
		},
		{
			ID:        3,
			Type:      entity.ThreatTypeSpam,
			Severity:  entity.SeverityLow,
			Source:    "@crypto_gainz_daily",
			Content:   "Mass-tagged in a giveaway promotion with suspicious links",
			Timestamp: now.Add(-26 * time.Hour),
			Status:    entity.ThreatStatusMonitoring,
		},
		{
			ID:        4,
			Type:      entity.ThreatTypeImpersonation,
			Severity:  entity.SeverityHigh,
			Source:    "@real_account_backup",
			Content:   "Profile copying your photos and bio, messaging your followers",
			Timestamp: now.Add(-30 * time.Hour),
			Status:    entity.ThreatStatusActive,
		},
		{
			ID:        5,
			Type:      entity.ThreatTypeCyberbullying,
			Severity:  entity.SeverityMedium,
			Source:    "@anon_hater_2847",
			Content:   "Coordinated negative comments from a group of new accounts",
			Timestamp: now.Add(-3 * 24 * time.Hour),
			Status:    entity.ThreatStatusResolved,
		},
		{
			ID:        6,
			Type:      entity.ThreatTypeOther,
			Severity:  entity.SeverityLow,
			Source:    "@data_scraper_bot",
			Content:   "Automated profile scraping detected from a headless client",
			Timestamp: now.Add(-5 * 24 * time.Hour),
			Status:    entity.ThreatStatusBlocked,
		},
	}
}

// SeedAccounts returns the sample suspicious-account collection.
func SeedAccounts() []entity.SuspiciousAccount {
	now := time.Now()
	return []entity.SuspiciousAccount{
		{
			ID:           1,
			Username:     "insta_support_team",
			ThreatScore:  95,
			Flags:        []string{"phishing", "impersonation"},
			FirstSeen:    now.Add(-6 * time.Hour),
			Interactions: 12,
		},
		{
			ID:           2,
			Username:     "troll_account_99",
			ThreatScore:  82,
			Flags:        []string{"harassment", "repeat-offender"},
			FirstSeen:    now.Add(-4 * 24 * time.Hour),
			Interactions: 47,
		},
		{
			ID:           3,
			Username:     "crypto_gainz_daily",
			ThreatScore:  55,
			Flags:        []string{"spam", "mass-tagging"},
			FirstSeen:    now.Add(-10 * 24 * time.Hour),
			Interactions: 134,
		},
		{
			ID:           4,
			Username:     "real_account_backup",
			ThreatScore:  88,
			Flags:        []string{"impersonation"},
			FirstSeen:    now.Add(-32 * time.Hour),
			Interactions: 8,
		},
		{
			ID:           5,
			Username:     "anon_hater_2847",
			ThreatScore:  38,
			Flags:        []string{"harassment", "new-account"},
			FirstSeen:    now.Add(-3 * 24 * time.Hour),
			Interactions: 21,
		},
	}
}

// SeedKeywords returns the sample keyword watchlist.
func SeedKeywords() []entity.Keyword {
	return []entity.Keyword{
		{ID: 1, Term: "verify your account", Category: entity.KeywordCategoryPhishing, Severity: entity.SeverityCritical, IsActive: true},
		{ID: 2, Term: "free followers", Category: entity.KeywordCategorySpam, Severity: entity.SeverityLow, IsActive: true},
		{ID: 3, Term: "kill yourself", Category: entity.KeywordCategoryCyberbullying, Severity: entity.SeverityCritical, IsActive: true},
		{ID: 4, Term: "official backup account", Category: entity.KeywordCategoryImpersonation, Severity: entity.SeverityHigh, IsActive: true},
		{ID: 5, Term: "ugly", Category: entity.KeywordCategoryHarassment, Severity: entity.SeverityMedium, IsActive: false},
		{ID: 6, Term: "crypto giveaway", Category: entity.KeywordCategorySpam, Severity: entity.SeverityMedium, IsActive: true},
	}
}

// SeedAlerts returns the sample alert collection.
func SeedAlerts() []entity.Alert {
	now := time.Now()
	return []entity.Alert{
		{ID: 1, ThreatID: 2, Message: "Critical phishing attempt targeting your account", Priority: entity.SeverityCritical, IsRead: false, CreatedAt: now.Add(-4 * time.Hour)},
		{ID: 2, ThreatID: 1, Message: "Harassment pattern detected from @troll_account_99", Priority: entity.SeverityHigh, IsRead: false, CreatedAt: now.Add(-90 * time.Minute)},
		{ID: 3, ThreatID: 4, Message: "Impersonation profile is contacting your followers", Priority: entity.SeverityHigh, IsRead: true, CreatedAt: now.Add(-28 * time.Hour)},
		{ID: 4, ThreatID: 3, Message: "Spam activity from @crypto_gainz_daily increased", Priority: entity.SeverityLow, IsRead: true, CreatedAt: now.Add(-2 * 24 * time.Hour)},
		{ID: 5, ThreatID: 5, Message: "Coordinated bullying campaign was resolved", Priority: entity.SeverityMedium, IsRead: false, CreatedAt: now.Add(-3 * 24 * time.Hour)},
	}
}
