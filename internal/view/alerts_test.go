package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramshield/dashboard/internal/entity"
)

func sampleAlerts() []entity.Alert {
	return []entity.Alert{
		{ID: 1, Message: "Phishing attempt", Priority: entity.SeverityCritical, IsRead: false, CreatedAt: viewNow.Add(-4 * time.Hour)},
		{ID: 2, Message: "Harassment pattern", Priority: entity.SeverityHigh, IsRead: false, CreatedAt: viewNow.Add(-90 * time.Minute)},
		{ID: 3, Message: "Impersonation profile", Priority: entity.SeverityHigh, IsRead: true, CreatedAt: viewNow.Add(-28 * time.Hour)},
	}
}

func TestAlertFeed(t *testing.T) {
	alerts := sampleAlerts()

	feed := AlertFeed(alerts, 0)
	require.Len(t, feed, 3)
	assert.Equal(t, []int{2, 1, 3}, []int{feed[0].ID, feed[1].ID, feed[2].ID})

	capped := AlertFeed(alerts, 2)
	require.Len(t, capped, 2)
	assert.Equal(t, 2, capped[0].ID)

	assert.Equal(t, 1, alerts[0].ID, "input untouched")
}

func TestUnreadAlerts(t *testing.T) {
	unread := UnreadAlerts(sampleAlerts())
	require.Len(t, unread, 2)
	assert.Equal(t, 1, unread[0].ID)
	assert.Equal(t, 2, unread[1].ID)
}
