package calendar

import (
	"fmt"
	"strings"
	"time"
)

var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// ParseDirection parses "prev" or "next".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prev", "previous":
		return Prev, nil
	case "next":
		return Next, nil
	}
	return 0, fmt.Errorf("invalid direction %q: must be one of prev, next", s)
}

// Month identifies a calendar month.
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// first returns midnight of the month's first day, in loc.
func (m Month) first(loc *time.Location) time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
}

// Navigate returns the month before (Prev) or after (Next) m, rolling the year over.
func (m Month) Navigate(dir Direction) Month {
	return MonthOf(m.first(time.UTC).AddDate(0, int(dir), 0))
}

// Title returns the month's display name, e.g. "March 2024".
func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

func (m Month) Grid() Grid {
	return ComputeGrid(m.Year, m.Month)
}

// Grid is the day layout of a month, in weeks starting on Sunday.
type Grid struct {
	DaysInMonth   int `json:"days_in_month"`
	LeadingBlanks int `json:"leading_blanks"`
}

// ComputeGrid returns the number of days of the month and the weekday (Sunday = 0) of its first day.
func ComputeGrid(year int, month time.Month) Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return Grid{
		DaysInMonth:   last.Day(),
		LeadingBlanks: int(first.Weekday()),
	}
}

// Cells returns LeadingBlanks zeros followed by the days 1..DaysInMonth.
func (g Grid) Cells() []int {
	cells := make([]int, g.LeadingBlanks, g.LeadingBlanks+g.DaysInMonth)
	for day := 1; day <= g.DaysInMonth; day++ {
		cells = append(cells, day)
	}
	return cells
}

// Weeks splits the cells into rows of 7, padding the last row with zeros.
func (g Grid) Weeks() [][]int {
	cells := g.Cells()
	for len(cells)%7 != 0 {
		cells = append(cells, 0)
	}
	weeks := make([][]int, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}
