package store

import (
	"context"

	"github.com/gramshield/dashboard/internal/entity"
)

// ThreatStore is the record-store adapter for the threat table. Create and
// Update take partial field maps keyed by local field names; both return
// the full normalized record.
type ThreatStore interface {
	GetAll(ctx context.Context) ([]entity.Threat, error)
	GetByID(ctx context.Context, id int) (entity.Threat, error)
	Create(ctx context.Context, fields map[string]any) (entity.Threat, error)
	Update(ctx context.Context, id int, fields map[string]any) (entity.Threat, error)
	Delete(ctx context.Context, id int) (entity.Threat, error)
	GetByStatus(ctx context.Context, status entity.ThreatStatus) ([]entity.Threat, error)
	GetBySeverity(ctx context.Context, severity entity.Severity) ([]entity.Threat, error)
}

// AccountStore is the record-store adapter for the suspicious_account table.
type AccountStore interface {
	GetAll(ctx context.Context) ([]entity.SuspiciousAccount, error)
	GetByID(ctx context.Context, id int) (entity.SuspiciousAccount, error)
	Create(ctx context.Context, fields map[string]any) (entity.SuspiciousAccount, error)
	Update(ctx context.Context, id int, fields map[string]any) (entity.SuspiciousAccount, error)
	Delete(ctx context.Context, id int) (entity.SuspiciousAccount, error)
	GetByThreatScore(ctx context.Context, minScore int) ([]entity.SuspiciousAccount, error)
}

// KeywordStore is the record-store adapter for the keyword table.
type KeywordStore interface {
	GetAll(ctx context.Context) ([]entity.Keyword, error)
	GetByID(ctx context.Context, id int) (entity.Keyword, error)
	Create(ctx context.Context, fields map[string]any) (entity.Keyword, error)
	Update(ctx context.Context, id int, fields map[string]any) (entity.Keyword, error)
	Delete(ctx context.Context, id int) (entity.Keyword, error)
	GetActive(ctx context.Context) ([]entity.Keyword, error)
	ToggleActive(ctx context.Context, id int) (entity.Keyword, error)
}

// AlertStore is the record-store adapter for the alert table.
type AlertStore interface {
	GetAll(ctx context.Context) ([]entity.Alert, error)
	GetByID(ctx context.Context, id int) (entity.Alert, error)
	Create(ctx context.Context, fields map[string]any) (entity.Alert, error)
	Update(ctx context.Context, id int, fields map[string]any) (entity.Alert, error)
	Delete(ctx context.Context, id int) (entity.Alert, error)
	GetUnread(ctx context.Context) ([]entity.Alert, error)
	MarkRead(ctx context.Context, id int) (entity.Alert, error)
}

// Stores bundles the four adapters for injection at the composition root.
type Stores struct {
	Threats  ThreatStore
	Accounts AccountStore
	Keywords KeywordStore
	Alerts   AlertStore
}
