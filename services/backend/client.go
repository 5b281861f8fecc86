// Package backend is the client of the EvolvLearn REST API.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/evolvlearn/portal/core"
	"github.com/evolvlearn/portal/core/admission"
	"github.com/evolvlearn/portal/core/calendar"
)

type Client struct {
	baseURL string
	rest    *rest.Client
	logger  core.Logger
}

var (
	_ admission.API = (*Client)(nil)
	_ calendar.API  = (*Client)(nil)
)

func NewClient(conf *core.Config, logger core.Logger) *Client {
	return &Client{
		baseURL: conf.API.BaseURL,
		rest:    &rest.Client{HTTPClient: &http.Client{Timeout: conf.API.Timeout}},
		logger:  logger,
	}
}

type call struct {
	method rest.Method
	path   string
	sess   *core.Session
	query  map[string]string
	in     interface{}
	out    interface{}
}

// send performs c and decodes the response into c.out.
// Non-2xx responses are returned as a wrapped *core.APIError.
func (c *Client) send(ctx context.Context, cl call) error {
	req := rest.Request{
		Method:      cl.method,
		BaseURL:     c.baseURL + cl.path,
		Headers:     map[string]string{"Accept": "application/json"},
		QueryParams: cl.query,
	}
	if cl.sess.IsAuthenticated() {
		req.Headers["Authorization"] = "Bearer " + cl.sess.AccessToken
	}
	if cl.in != nil {
		body, err := json.Marshal(cl.in)
		if err != nil {
			return errors.Wrapf(err, "encoding %s %s", cl.method, cl.path)
		}
		req.Body = body
		req.Headers["Content-Type"] = "application/json"
	}

	resp, err := c.rest.SendWithContext(ctx, req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", cl.method, cl.path)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warn(fmt.Sprintf("%s %s: unauthorized, please log in again", cl.method, cl.path), cl.sess.CurrentUser())
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Wrapf(core.NewAPIError(resp.StatusCode, []byte(resp.Body)), "%s %s", cl.method, cl.path)
	}

	if cl.out != nil && resp.Body != "" {
		if err := json.Unmarshal([]byte(resp.Body), cl.out); err != nil {
			return errors.Wrapf(err, "decoding %s %s", cl.method, cl.path)
		}
	}
	return nil
}
