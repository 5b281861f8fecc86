package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/evolvlearn/portal/core"
)

const (
	allFilter = "all"

	compactLimit = 3
)

// API fetches the events of a month.
type API interface {
	GetCalendarEvents(ctx context.Context, sess *core.Session, year int, month time.Month) ([]Event, error)
}

// Calendar holds the events of one month for one session.
// It is not safe for concurrent use.
type Calendar struct {
	api    API
	logger core.Logger
	sess   *core.Session

	month    Month
	all      []Event
	location string
	course   string
}

func New(api API, logger core.Logger, sess *core.Session, month Month) *Calendar {
	return &Calendar{
		api:    api,
		logger: logger,
		sess:   sess,
		month:  month,
		all:    []Event{},
	}
}

func (c *Calendar) Month() Month {
	return c.month
}

// Load replaces the events with the active month's. On failure the list is left empty.
func (c *Calendar) Load(ctx context.Context) {
	events, err := c.api.GetCalendarEvents(ctx, c.sess, c.month.Year, c.month.Month)
	if err != nil {
		c.logger.Error(
			fmt.Sprintf("Failed to fetch events for %s", c.month.Title()),
			err,
			c.sess.CurrentUser(),
		)
		events = nil
	}
	if events == nil {
		events = []Event{}
	}
	c.all = events
}

// Navigate moves to the previous or next month and re-fetches its events.
func (c *Calendar) Navigate(ctx context.Context, dir Direction) {
	c.month = c.month.Navigate(dir)
	c.Load(ctx)
}

// SetFilter restricts the events to a location and a course; "" or "all" disables a filter.
func (c *Calendar) SetFilter(location, course string) {
	c.location = normalizeFilter(location)
	c.course = normalizeFilter(course)
}

func (c *Calendar) ClearFilters() {
	c.location, c.course = "", ""
}

func normalizeFilter(v string) string {
	v = core.CleanString(v)
	if strings.EqualFold(v, allFilter) {
		return ""
	}
	return v
}

// Events returns the filtered events, in fetch order.
func (c *Calendar) Events() []Event {
	events := make([]Event, 0, len(c.all))
	for _, e := range c.all {
		if c.location != "" && e.Location != c.location {
			continue
		}
		if c.course != "" && e.Course != c.course {
			continue
		}
		events = append(events, e)
	}
	return events
}

// EventsForDay returns the filtered events falling on day of the active month.
func (c *Calendar) EventsForDay(day int) []Event {
	events := make([]Event, 0)
	for _, e := range c.Events() {
		if MatchDay(e, day, c.month.Month, c.month.Year) {
			events = append(events, e)
		}
	}
	return events
}

// Sorted returns the filtered events ordered by date.
func (c *Calendar) Sorted() []Event {
	return SortEvents(c.Events())
}

// Upcoming returns at most n of the sorted events.
func (c *Calendar) Upcoming(n int) []Event {
	sorted := c.Sorted()
	if n >= 0 && len(sorted) > n {
		return sorted[:n]
	}
	return sorted
}

// Locations returns the distinct locations of the month's (unfiltered) events.
func (c *Calendar) Locations() []string {
	return uniqueValues(c.all, func(e Event) string { return e.Location })
}

// Courses returns the distinct courses of the month's (unfiltered) events.
func (c *Calendar) Courses() []string {
	return uniqueValues(c.all, func(e Event) string { return e.Course })
}
