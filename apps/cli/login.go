package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/evolvlearn/portal/core"
	"github.com/evolvlearn/portal/services/tokenstore"
)

var errLoginFirst = errors.New("you are not logged in, run `login` first")

func (cli *commandLine) login(ctx context.Context, username, password string) error {
	sess, err := cli.api.Login(ctx, username, password)
	if err != nil {
		if apiErr, ok := errors.Cause(err).(*core.APIError); ok {
			return errors.New(apiErr.Detail())
		}
		return errors.Wrap(err, "logging in")
	}
	if _, err := cli.api.Authenticate(ctx, sess); err != nil {
		return errors.Wrap(err, "loading profile")
	}
	if err := cli.store.Save(sess); err != nil {
		return errors.Wrap(err, "saving tokens")
	}
	usr := sess.CurrentUser()
	fmt.Fprintf(cli.out, "Logged in as %s (%s).\n", usr.Username, usr.Role)
	return nil
}

func (cli *commandLine) logout() error {
	if err := cli.store.Clear(); err != nil {
		return errors.Wrap(err, "clearing tokens")
	}
	fmt.Fprintln(cli.out, "Logged out.")
	return nil
}

func (cli *commandLine) whoami(ctx context.Context) error {
	sess, err := cli.session(ctx, true)
	if err != nil {
		return err
	}
	usr := sess.CurrentUser()
	fmt.Fprintf(cli.out, "%s <%s>\n", usr.FullName(), usr.Email)
	fmt.Fprintf(cli.out, "username: %s\nrole: %s\n", usr.Username, usr.Role)
	return nil
}

// session loads the saved tokens and authenticates them, persisting refreshed ones.
// Without saved tokens it returns a nil (anonymous) session unless one is required.
func (cli *commandLine) session(ctx context.Context, required bool) (*core.Session, error) {
	sess, err := cli.store.Load()
	if err != nil {
		if errors.Is(err, tokenstore.ErrNoTokens) {
			if required {
				return nil, errLoginFirst
			}
			return nil, nil
		}
		return nil, err
	}

	refreshed, err := cli.api.Authenticate(ctx, sess)
	if err != nil {
		if core.IsUnauthorized(err) || errors.Is(err, core.ErrNoToken) {
			_ = cli.store.Clear()
			return nil, errLoginFirst
		}
		return nil, err
	}
	if refreshed {
		if err := cli.store.Save(sess); err != nil {
			cli.logger.Warn("Failed to save refreshed tokens", errors.Wrap(err, "saving tokens"))
		}
	}
	return sess, nil
}
