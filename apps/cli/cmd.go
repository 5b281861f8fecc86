package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/evolvlearn/portal/core"
	"github.com/evolvlearn/portal/core/admission"
	"github.com/evolvlearn/portal/core/calendar"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

// Backend is the part of the REST API used by the CLI.
type Backend interface {
	admission.API
	calendar.API
	Login(ctx context.Context, username, password string) (*core.Session, error)
	Authenticate(ctx context.Context, sess *core.Session) (refreshed bool, err error)
}

// TokenStore persists the session between runs.
type TokenStore interface {
	Load() (*core.Session, error)
	Save(sess *core.Session) error
	Clear() error
}

type commandLine struct {
	api    Backend
	store  TokenStore
	logger core.Logger
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -username USERNAME                     - log in (the password is prompted next)")
	fmt.Fprintln(cli.out, "  logout                                       - forget the saved tokens")
	fmt.Fprintln(cli.out, "  whoami                                       - show the logged in user")
	fmt.Fprintln(cli.out, "  courses                                      - list the course catalog")
	fmt.Fprintln(cli.out, "  calendar [-year Y] [-month M] [-prev|-next]  - show a month of events")
	fmt.Fprintln(cli.out, "           [-location L] [-course C] [-compact]")
	fmt.Fprintln(cli.out, "  apply [-draft FILE] [-course NAME ...]       - submit or update an application")
}

// courseFlags collects repeated -course flags.
type courseFlags []string

func (f *courseFlags) String() string {
	return strings.Join(*f, ", ")
}

func (f *courseFlags) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	loginCmd := flag.NewFlagSet("login", flag.ContinueOnError)
	loginUname := loginCmd.String("username", "", "Your username. The password will be prompted next.")

	calendarCmd := flag.NewFlagSet("calendar", flag.ContinueOnError)
	calendarYear := calendarCmd.Int("year", 0, "Year to show (defaults to the current one).")
	calendarMonth := calendarCmd.Int("month", 0, "Month to show, 1-12 (defaults to the current one).")
	calendarPrev := calendarCmd.Bool("prev", false, "Show the month before.")
	calendarNext := calendarCmd.Bool("next", false, "Show the month after.")
	calendarLocation := calendarCmd.String("location", "", "Only show events at this location.")
	calendarCourse := calendarCmd.String("course", "", "Only show events of this course.")
	calendarCompact := calendarCmd.Bool("compact", false, "Only list the next events.")

	applyCmd := flag.NewFlagSet("apply", flag.ContinueOnError)
	applyDraft := applyCmd.String("draft", "", "JSON file holding the application.")
	var applyCourses courseFlags
	applyCmd.Var(&applyCourses, "course", "Name or id of a course to apply to (repeatable).")

	for _, fs := range []*flag.FlagSet{loginCmd, calendarCmd, applyCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *loginUname == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(ctx, *loginUname, string(pwd))
	case "logout":
		return cli.logout()
	case "whoami":
		return cli.whoami(ctx)
	case "courses":
		return cli.courses(ctx)
	case "calendar":
		if err := calendarCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *calendarPrev && *calendarNext {
			calendarCmd.Usage()
			return errHelp
		}
		opts := calendarOptions{
			year:     *calendarYear,
			month:    *calendarMonth,
			location: *calendarLocation,
			course:   *calendarCourse,
			compact:  *calendarCompact,
		}
		switch {
		case *calendarPrev:
			opts.navigate = calendar.Prev
		case *calendarNext:
			opts.navigate = calendar.Next
		}
		return cli.calendar(ctx, opts)
	case "apply":
		if err := applyCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *applyDraft == "" && len(applyCourses) == 0 {
			applyCmd.Usage()
			return errHelp
		}
		return cli.apply(ctx, *applyDraft, applyCourses)
	default:
		cli.printUsage()
		return errHelp
	}
}
