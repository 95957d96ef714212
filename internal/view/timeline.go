package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gramshield/dashboard/internal/entity"
)

// EventType tags the origin of a timeline event.
type EventType string

const (
	EventTypeThreat EventType = "threat"
	EventTypeAlert  EventType = "alert"
)

// TimeRange restricts the timeline to a trailing window.
type TimeRange string

const (
	RangeAll   TimeRange = "all"
	RangeToday TimeRange = "today"
	RangeWeek  TimeRange = "week"  // trailing 7 days
	RangeMonth TimeRange = "month" // trailing 30 days
)

// Event is one entry on the security timeline, built from either a threat
// or an alert.
type Event struct {
	EventType   EventType       `json:"eventType"`
	ID          int             `json:"Id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Severity    entity.Severity `json:"severity"`
	Source      string          `json:"source,omitempty"`
	Time        time.Time       `json:"eventTime"`
	IsRead      bool            `json:"isRead,omitempty"`
}

// EventQuery is the filter state of the timeline page.
type EventQuery struct {
	Search string
	Type   EventType
	Range  TimeRange
	// Now anchors the relative ranges; the zero value means time.Now().
	Now time.Time
}

// BuildTimeline merges threats and alerts into one event sequence sorted
// newest first.
func BuildTimeline(threats []entity.Threat, alerts []entity.Alert) []Event {
	events := make([]Event, 0, len(threats)+len(alerts))
	for _, t := range threats {
		events = append(events, Event{
			EventType:   EventTypeThreat,
			ID:          t.ID,
			Title:       fmt.Sprintf("%s threat detected", strings.ReplaceAll(string(t.Type), "_", " ")),
			Description: t.Content,
			Severity:    t.Severity,
			Source:      t.Source,
			Time:        t.Timestamp,
		})
	}
	for _, a := range alerts {
		events = append(events, Event{
			EventType:   EventTypeAlert,
			ID:          a.ID,
			Title:       a.Message,
			Description: fmt.Sprintf("Priority: %s", a.Priority),
			Severity:    a.Priority,
			Time:        a.CreatedAt,
			IsRead:      a.IsRead,
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.After(events[j].Time)
	})
	return events
}

// FilterEvents returns the events matching the query, preserving input
// order. Search matches title, description or source.
func FilterEvents(events []Event, q EventQuery) []Event {
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}
	var cutoff time.Time
	switch q.Range {
	case RangeToday:
		cutoff = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case RangeWeek:
		cutoff = now.AddDate(0, 0, -7)
	case RangeMonth:
		cutoff = now.AddDate(0, 0, -30)
	}

	out := make([]Event, 0, len(events))
	for _, e := range events {
		if !matchesSearch(q.Search, e.Title, e.Description, e.Source) {
			continue
		}
		if q.Type != "" && e.EventType != q.Type {
			continue
		}
		if !cutoff.IsZero() && e.Time.Before(cutoff) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// EventGroup is one calendar-day bucket of the timeline.
type EventGroup struct {
	Label  string  `json:"label"`
	Events []Event `json:"events"`
}

// GroupEventsByDay partitions already-sorted events into calendar-day
// buckets in the given location, labeled relative to now: "Today",
// "Yesterday" or the absolute date. Bucket order follows the sorted
// order of each bucket's first member.
func GroupEventsByDay(events []Event, now time.Time, loc *time.Location) []EventGroup {
	if loc == nil {
		loc = time.Local
	}
	today := dayOf(now.In(loc))
	yesterday := today.AddDate(0, 0, -1)

	var groups []EventGroup
	index := make(map[time.Time]int)
	for _, e := range events {
		day := dayOf(e.Time.In(loc))
		i, ok := index[day]
		if !ok {
			label := day.Format("January 02, 2006")
			switch day {
			case today:
				label = "Today"
			case yesterday:
				label = "Yesterday"
			}
			index[day] = len(groups)
			groups = append(groups, EventGroup{Label: label})
			i = index[day]
		}
		groups[i].Events = append(groups[i].Events, e)
	}
	return groups
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
