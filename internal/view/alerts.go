package view

import (
	"sort"

	"github.com/gramshield/dashboard/internal/entity"
)

// SortAlertsByCreatedAt orders alerts newest first with a stable sort.
func SortAlertsByCreatedAt(alerts []entity.Alert) []entity.Alert {
	out := append([]entity.Alert(nil), alerts...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// AlertFeed returns the newest alerts, capped at limit. A non-positive
// limit means no cap.
func AlertFeed(alerts []entity.Alert, limit int) []entity.Alert {
	out := SortAlertsByCreatedAt(alerts)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// UnreadAlerts returns the unread alerts, preserving input order.
func UnreadAlerts(alerts []entity.Alert) []entity.Alert {
	out := make([]entity.Alert, 0, len(alerts))
	for _, a := range alerts {
		if !a.IsRead {
			out = append(out, a)
		}
	}
	return out
}
