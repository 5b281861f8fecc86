package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"

	"github.com/evolvlearn/portal/core"
	"github.com/evolvlearn/portal/core/calendar"
)

type calendarOptions struct {
	year, month      int
	navigate         calendar.Direction
	location, course string
	compact          bool
}

func (cli *commandLine) calendar(ctx context.Context, opts calendarOptions) error {
	now := core.NowFunc()
	month := calendar.MonthOf(now)
	if opts.year != 0 {
		month.Year = opts.year
	}
	if opts.month != 0 {
		if opts.month < 1 || opts.month > 12 {
			return errors.Errorf("month must be between 1 and 12 (got %d)", opts.month)
		}
		month.Month = time.Month(opts.month)
	}
	if opts.navigate != 0 {
		month = month.Navigate(opts.navigate)
	}

	sess, err := cli.session(ctx, false)
	if err != nil {
		return err
	}
	cal := calendar.New(cli.api, cli.logger, sess, month)
	cal.Load(ctx)
	cal.SetFilter(opts.location, opts.course)

	view := cal.View(now, sess.Role(), opts.compact)
	if opts.compact {
		cli.printEvents(view)
		if view.ViewAll != "" {
			fmt.Fprintln(cli.out, view.ViewAll)
		}
		return nil
	}
	cli.printGrid(view)
	fmt.Fprintln(cli.out)
	cli.printEvents(view)
	return nil
}

// printGrid draws the month, marking days with events with '*' and today with brackets.
func (cli *commandLine) printGrid(view calendar.View) {
	header := make([]string, 0, len(view.Weekdays))
	for _, wd := range view.Weekdays {
		header = append(header, fmt.Sprintf("%5s", wd))
	}
	width := len(strings.Join(header, ""))
	pad := (width - len(view.Title)) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintln(cli.out, strings.Repeat(" ", pad)+view.Title)
	fmt.Fprintln(cli.out, strings.Join(header, ""))

	for _, week := range view.Weeks {
		var line strings.Builder
		for _, cell := range week {
			line.WriteString(formatCell(cell))
		}
		fmt.Fprintln(cli.out, strings.TrimRight(line.String(), " "))
	}
}

func formatCell(cell calendar.Cell) string {
	if cell.Day == 0 {
		return strings.Repeat(" ", 5)
	}
	mark := " "
	if len(cell.Events) > 0 {
		mark = "*"
	}
	if cell.Today {
		return fmt.Sprintf("[%2d]%s", cell.Day, mark)
	}
	return fmt.Sprintf("%4d%s", cell.Day, mark)
}

func (cli *commandLine) printEvents(view calendar.View) {
	if view.Empty != "" {
		fmt.Fprintln(cli.out, view.Empty)
		return
	}
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	for _, e := range view.Events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Date.Local().Format("Mon Jan 2 15:04"), e.Title, e.Place(), view.Routes[e.ID])
	}
	_ = w.Flush()
}
