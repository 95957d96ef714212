package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramshield/dashboard/internal/entity"
)

func sampleEvents() []Event {
	threats := []entity.Threat{
		{ID: 1, Type: entity.ThreatTypePhishing, Severity: entity.SeverityCritical, Source: "@support", Content: "Fake verification DM", Timestamp: viewNow.Add(-2 * time.Hour), Status: entity.ThreatStatusActive},
		{ID: 2, Type: entity.ThreatTypeSpam, Severity: entity.SeverityLow, Source: "@crypto", Content: "Giveaway tags", Timestamp: viewNow.Add(-26 * time.Hour), Status: entity.ThreatStatusMonitoring},
	}
	alerts := []entity.Alert{
		{ID: 1, Message: "Harassment pattern detected", Priority: entity.SeverityHigh, CreatedAt: viewNow.Add(-1 * time.Hour)},
		{ID: 2, Message: "Old campaign resolved", Priority: entity.SeverityMedium, CreatedAt: viewNow.Add(-8 * 24 * time.Hour)},
	}
	return BuildTimeline(threats, alerts)
}

func TestBuildTimeline(t *testing.T) {
	events := sampleEvents()
	require.Len(t, events, 4)

	assert.Equal(t, EventTypeAlert, events[0].EventType)
	assert.Equal(t, "Harassment pattern detected", events[0].Title)

	assert.Equal(t, EventTypeThreat, events[1].EventType)
	assert.Equal(t, "phishing threat detected", events[1].Title)
	assert.Equal(t, "Fake verification DM", events[1].Description)
	assert.Equal(t, "@support", events[1].Source)

	assert.Equal(t, "Priority: medium", events[3].Description)

	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].Time.After(events[i-1].Time), "events are newest first")
	}
}

func TestFilterEvents(t *testing.T) {
	events := sampleEvents()

	t.Run("type filter", func(t *testing.T) {
		threatsOnly := FilterEvents(events, EventQuery{Type: EventTypeThreat, Now: viewNow})
		assert.Len(t, threatsOnly, 2)
		alertsOnly := FilterEvents(events, EventQuery{Type: EventTypeAlert, Now: viewNow})
		assert.Len(t, alertsOnly, 2)
	})

	t.Run("search over title description and source", func(t *testing.T) {
		got := FilterEvents(events, EventQuery{Search: "giveaway", Now: viewNow})
		require.Len(t, got, 1)
		assert.Equal(t, EventTypeThreat, got[0].EventType)
	})

	t.Run("today cuts at local midnight", func(t *testing.T) {
		got := FilterEvents(events, EventQuery{Range: RangeToday, Now: viewNow})
		assert.Len(t, got, 2)
	})

	t.Run("week keeps the trailing seven days", func(t *testing.T) {
		got := FilterEvents(events, EventQuery{Range: RangeWeek, Now: viewNow})
		assert.Len(t, got, 3)
	})

	t.Run("month keeps the trailing thirty days", func(t *testing.T) {
		got := FilterEvents(events, EventQuery{Range: RangeMonth, Now: viewNow})
		assert.Len(t, got, 4)
	})

	t.Run("all applies no cutoff", func(t *testing.T) {
		got := FilterEvents(events, EventQuery{Range: RangeAll, Now: viewNow})
		assert.Len(t, got, 4)
	})
}

func TestGroupEventsByDay(t *testing.T) {
	events := sampleEvents()
	groups := GroupEventsByDay(events, viewNow, time.UTC)

	require.Len(t, groups, 3)
	assert.Equal(t, "Today", groups[0].Label)
	assert.Len(t, groups[0].Events, 2)
	assert.Equal(t, "Yesterday", groups[1].Label)
	assert.Len(t, groups[1].Events, 1)
	assert.Equal(t, "August 20, 2026", groups[2].Label)
	assert.Len(t, groups[2].Events, 1)
}
