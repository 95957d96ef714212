package entity

import "time"

// Severity ranks threats, keywords and alert priorities on a shared scale.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid reports whether s is one of the known severity levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ThreatType classifies a detected threat.
type ThreatType string

const (
	ThreatTypeHarassment    ThreatType = "harassment"
	ThreatTypeSpam          ThreatType = "spam"
	ThreatTypeImpersonation ThreatType = "impersonation"
	ThreatTypeCyberbullying ThreatType = "cyberbullying"
	ThreatTypePhishing      ThreatType = "phishing"
	ThreatTypeOther         ThreatType = "other"
)

// Valid reports whether t is one of the known threat types.
func (t ThreatType) Valid() bool {
	switch t {
	case ThreatTypeHarassment, ThreatTypeSpam, ThreatTypeImpersonation,
		ThreatTypeCyberbullying, ThreatTypePhishing, ThreatTypeOther:
		return true
	}
	return false
}

// ThreatStatus is the lifecycle state of a threat. New threats start
// active; resolve and block are the only user-driven transitions and both
// target states are terminal. monitoring is only ever seen on records
// seeded directly in the backing store.
type ThreatStatus string

const (
	ThreatStatusActive     ThreatStatus = "active"
	ThreatStatusMonitoring ThreatStatus = "monitoring"
	ThreatStatusResolved   ThreatStatus = "resolved"
	ThreatStatusBlocked    ThreatStatus = "blocked"
)

// Terminal reports whether no user action may leave this status.
func (s ThreatStatus) Terminal() bool {
	return s == ThreatStatusResolved || s == ThreatStatusBlocked
}

// KeywordCategory classifies a watchlist keyword.
type KeywordCategory string

const (
	KeywordCategoryHarassment    KeywordCategory = "harassment"
	KeywordCategorySpam          KeywordCategory = "spam"
	KeywordCategoryPhishing      KeywordCategory = "phishing"
	KeywordCategoryCyberbullying KeywordCategory = "cyberbullying"
	KeywordCategoryImpersonation KeywordCategory = "impersonation"
)

// Valid reports whether c is one of the known keyword categories.
func (c KeywordCategory) Valid() bool {
	switch c {
	case KeywordCategoryHarassment, KeywordCategorySpam, KeywordCategoryPhishing,
		KeywordCategoryCyberbullying, KeywordCategoryImpersonation:
		return true
	}
	return false
}

// Threat is a detected security threat against the monitored account.
// Field names in JSON are the local shape consumed by the dashboard UI.
type Threat struct {
	ID        int          `json:"Id"`
	Type      ThreatType   `json:"type"`
	Severity  Severity     `json:"severity"`
	Source    string       `json:"source"`
	Content   string       `json:"content"`
	Timestamp time.Time    `json:"timestamp"`
	Status    ThreatStatus `json:"status"`
}

// RecordID returns the unique record identifier.
func (t Threat) RecordID() int { return t.ID }

// SuspiciousAccount is an account flagged by the detection pipeline.
// Flags are an ordered sequence locally; the record platform stores them
// as a single comma-joined string.
type SuspiciousAccount struct {
	ID           int       `json:"Id"`
	Username     string    `json:"username"`
	ThreatScore  int       `json:"threatScore"`
	Flags        []string  `json:"flags"`
	FirstSeen    time.Time `json:"firstSeen"`
	Interactions int       `json:"interactions"`
}

// RecordID returns the unique record identifier.
func (a SuspiciousAccount) RecordID() int { return a.ID }

// Keyword is a watchlist entry matched against monitored content.
type Keyword struct {
	ID       int             `json:"Id"`
	Term     string          `json:"term"`
	Category KeywordCategory `json:"category"`
	Severity Severity        `json:"severity"`
	IsActive bool            `json:"isActive"`
}

// RecordID returns the unique record identifier.
func (k Keyword) RecordID() int { return k.ID }

// Alert is a user-facing notification raised for a threat. ThreatID is a
// weak reference: the referenced threat may have been deleted.
type Alert struct {
	ID        int       `json:"Id"`
	ThreatID  int       `json:"threatId"`
	Message   string    `json:"message"`
	Priority  Severity  `json:"priority"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordID returns the unique record identifier.
func (a Alert) RecordID() int { return a.ID }
