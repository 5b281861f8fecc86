package calendar

import (
	"fmt"
	"time"
)

const (
	emptyMonthText   = "No events scheduled for this month"
	emptyCompactText = "No events this month"
)

type Cell struct {
	Day    int     `json:"day"` // 0 for leading and trailing blanks
	Today  bool    `json:"today,omitempty"`
	Events []Event `json:"events,omitempty"`
}

type Filters struct {
	Location string `json:"location"`
	Course   string `json:"course"`
}

// View is a render-ready snapshot of a Calendar.
type View struct {
	Title     string         `json:"title"`
	Month     Month          `json:"month"`
	Grid      Grid           `json:"grid"`
	Weekdays  []string       `json:"weekdays,omitempty"`
	Weeks     [][]Cell       `json:"weeks,omitempty"`
	Events    []Event        `json:"events"`
	Total     int            `json:"total"`
	ViewAll   string         `json:"view_all,omitempty"`
	Empty     string         `json:"empty,omitempty"`
	Locations []string       `json:"locations"`
	Courses   []string       `json:"courses"`
	Filters   Filters        `json:"filters"`
	Routes    map[int]string `json:"routes"`
}

// View renders the calendar as seen at now by a user of the given role.
// The compact view lists only the next few events.
func (c *Calendar) View(now time.Time, role string, compact bool) View {
	sorted := c.Sorted()
	v := View{
		Title:     c.month.Title(),
		Month:     c.month,
		Grid:      c.month.Grid(),
		Total:     len(sorted),
		Locations: c.Locations(),
		Courses:   c.Courses(),
		Filters:   Filters{Location: c.location, Course: c.course},
		Routes:    make(map[int]string, len(sorted)),
	}
	for _, e := range sorted {
		v.Routes[e.ID] = Route(e, role)
	}

	if compact {
		v.Events = c.Upcoming(compactLimit)
		if v.Total > compactLimit {
			v.ViewAll = fmt.Sprintf("View all %d events", v.Total)
		}
		if v.Total == 0 {
			v.Empty = emptyCompactText
		}
		return v
	}

	v.Events = sorted
	if v.Total == 0 {
		v.Empty = emptyMonthText
	}
	v.Weekdays = Weekdays
	for _, week := range v.Grid.Weeks() {
		row := make([]Cell, 0, len(week))
		for _, day := range week {
			cell := Cell{Day: day}
			if day > 0 {
				cell.Today = IsToday(c.month, day, now)
				cell.Events = c.EventsForDay(day)
			}
			row = append(row, cell)
		}
		v.Weeks = append(v.Weeks, row)
	}
	return v
}
