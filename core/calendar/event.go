package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/evolvlearn/portal/core"
)

type Event struct {
	ID            int        `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Date          time.Time  `json:"date"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	EventType     string     `json:"event_type"`
	IsVirtual     bool       `json:"is_virtual"`
	Location      string     `json:"location"`
	Course        string     `json:"course"`
	SpeakerName   string     `json:"speaker_name,omitempty"`
	MeetingLink   string     `json:"meeting_link,omitempty"`
	Capacity      *int       `json:"capacity,omitempty"`
	AttendeeCount int        `json:"attendee_count"`
	IsFull        bool       `json:"is_full"`
}

// Place returns where the event happens.
func (e Event) Place() string {
	if e.IsVirtual {
		return "Virtual"
	}
	return e.Location
}

// SpotsLeft returns the remaining seats, or -1 when capacity is unlimited.
func (e Event) SpotsLeft() int {
	if e.Capacity == nil {
		return -1
	}
	if left := *e.Capacity - e.AttendeeCount; left > 0 {
		return left
	}
	return 0
}

// MatchDay tells whether e falls on the given day, comparing UTC components.
func MatchDay(e Event, day int, month time.Month, year int) bool {
	d := e.Date.UTC()
	return d.Day() == day && d.Month() == month && d.Year() == year
}

// IsToday tells whether the day of m is now's local date.
func IsToday(m Month, day int, now time.Time) bool {
	y, mo, d := now.Date()
	return y == m.Year && mo == m.Month && d == day
}

// Route returns the page an event opens on: the edit page for admins, the detail page otherwise.
func Route(e Event, role string) string {
	if strings.EqualFold(role, core.RoleAdmin) {
		return fmt.Sprintf("/admin/events/%d/edit", e.ID)
	}
	return fmt.Sprintf("/events/%d", e.ID)
}

// SortEvents returns a copy of events ordered by date, ascending.
func SortEvents(events []Event) []Event {
	sorted := append([]Event{}, events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// uniqueValues returns the distinct non-empty values of field, in first-seen order.
func uniqueValues(events []Event, field func(Event) string) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, e := range events {
		if v := field(e); v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values
}
