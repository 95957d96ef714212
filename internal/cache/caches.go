package cache

import "github.com/gramshield/dashboard/internal/entity"

// Caches bundles the four entity caches for injection at the
// composition root.
type Caches struct {
	Threats  *Cache[entity.Threat]
	Accounts *Cache[entity.SuspiciousAccount]
	Keywords *Cache[entity.Keyword]
	Alerts   *Cache[entity.Alert]
}

// NewCaches builds an empty cache set.
func NewCaches() *Caches {
	return &Caches{
		Threats:  New(entity.Threat.RecordID),
		Accounts: New(entity.SuspiciousAccount.RecordID),
		Keywords: New(entity.Keyword.RecordID),
		Alerts:   New(entity.Alert.RecordID),
	}
}
