package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/evolvlearn/portal/core"
	"github.com/evolvlearn/portal/core/admission"
	"github.com/evolvlearn/portal/core/calendar"
)

// ListCourses returns the whole catalog; the endpoint answers with a list or a paginated {results} object.
func (c *Client) ListCourses(ctx context.Context, sess *core.Session) ([]admission.Course, error) {
	var raw json.RawMessage
	if err := c.send(ctx, call{method: rest.Get, path: "/courses/", sess: sess, out: &raw}); err != nil {
		return nil, err
	}

	courses := make([]admission.Course, 0)
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &courses); err != nil {
			return nil, errors.Wrap(err, "decoding courses")
		}
		return courses, nil
	}

	var page struct {
		Results []admission.Course `json:"results"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, errors.Wrap(err, "decoding courses page")
		}
	}
	if page.Results != nil {
		courses = page.Results
	}
	return courses, nil
}

func (c *Client) GetMyStudent(ctx context.Context, sess *core.Session) (admission.Student, error) {
	var student admission.Student
	err := c.send(ctx, call{method: rest.Get, path: "/students/me/", sess: sess, out: &student})
	return student, err
}

func (c *Client) CreateStudent(ctx context.Context, sess *core.Session, draft admission.Draft) (admission.Student, error) {
	var student admission.Student
	err := c.send(ctx, call{method: rest.Post, path: "/students/", sess: sess, in: draft, out: &student})
	return student, err
}

func (c *Client) UpdateMyCourses(ctx context.Context, sess *core.Session, upd admission.CourseUpdate) (admission.Student, error) {
	var student admission.Student
	err := c.send(ctx, call{method: rest.Patch, path: "/students/me/", sess: sess, in: upd, out: &student})
	return student, err
}

func (c *Client) GetCalendarEvents(ctx context.Context, sess *core.Session, year int, month time.Month) ([]calendar.Event, error) {
	var resp struct {
		Events []calendar.Event `json:"events"`
	}
	err := c.send(ctx, call{
		method: rest.Get,
		path:   "/events/calendar/",
		sess:   sess,
		query: map[string]string{
			"year":  strconv.Itoa(year),
			"month": strconv.Itoa(int(month)),
		},
		out: &resp,
	})
	if err != nil {
		return nil, err
	}
	if resp.Events == nil {
		resp.Events = []calendar.Event{}
	}
	return resp.Events, nil
}
