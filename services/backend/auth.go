package backend

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/evolvlearn/portal/core"
)

type (
	credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	loginResponse struct {
		Message string `json:"message"`
		Tokens  struct {
			Access  string `json:"access"`
			Refresh string `json:"refresh"`
		} `json:"tokens"`
	}

	refreshRequest struct {
		Refresh string `json:"refresh"`
	}

	refreshResponse struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}

	profile struct {
		ID   int `json:"id"`
		User struct {
			ID        int    `json:"id"`
			Username  string `json:"username"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Email     string `json:"email"`
		} `json:"user"`
		Role string `json:"role"`
	}
)

var ErrNoRefreshToken = errors.New("no valid refresh token, please log in again")

// Login exchanges credentials for a new Session.
func (c *Client) Login(ctx context.Context, username, password string) (*core.Session, error) {
	var resp loginResponse
	err := c.send(ctx, call{
		method: rest.Post,
		path:   "/auth/login/",
		in:     credentials{Username: core.CleanString(username), Password: password},
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}
	if resp.Tokens.Access == "" {
		return nil, errors.New("login: no access token returned")
	}
	return core.NewSession(resp.Tokens.Access, resp.Tokens.Refresh), nil
}

// Refresh renews the session's access token.
func (c *Client) Refresh(ctx context.Context, sess *core.Session) error {
	if !sess.CanRefresh() {
		return ErrNoRefreshToken
	}
	var resp refreshResponse
	err := c.send(ctx, call{
		method: rest.Post,
		path:   "/auth/token/refresh/",
		in:     refreshRequest{Refresh: sess.RefreshToken},
		out:    &resp,
	})
	if err != nil {
		return err
	}
	sess.AccessToken = resp.Access
	if resp.Refresh != "" { // rotated
		sess.RefreshToken = resp.Refresh
	}
	return nil
}

// GetProfile returns the user owning the session's token.
func (c *Client) GetProfile(ctx context.Context, sess *core.Session) (core.User, error) {
	var p profile
	if err := c.send(ctx, call{method: rest.Get, path: "/profile/", sess: sess, out: &p}); err != nil {
		return core.User{}, err
	}
	return core.User{
		ID:        p.User.ID,
		Username:  p.User.Username,
		Email:     p.User.Email,
		FirstName: p.User.FirstName,
		LastName:  p.User.LastName,
		Role:      p.Role,
	}, nil
}

// Authenticate refreshes an expiring access token when possible, then loads the session's user.
// It reports whether the tokens changed.
func (c *Client) Authenticate(ctx context.Context, sess *core.Session) (refreshed bool, err error) {
	if !sess.IsAuthenticated() {
		return false, core.ErrNoToken
	}
	if sess.AccessExpired() && sess.CanRefresh() {
		if err := c.Refresh(ctx, sess); err != nil {
			return false, errors.Wrap(err, "refreshing token")
		}
		refreshed = true
	}
	usr, err := c.GetProfile(ctx, sess)
	if err != nil {
		return refreshed, errors.Wrap(err, "getting profile")
	}
	sess.User = &usr
	return refreshed, nil
}
