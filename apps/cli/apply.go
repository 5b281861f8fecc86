package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/pkg/errors"

	"github.com/evolvlearn/portal/core/admission"
)

// apply walks the admission wizard with the draft read from draftFile and submits it.
// Users with an existing application resume at the courses step, so draftFile may be omitted.
func (cli *commandLine) apply(ctx context.Context, draftFile string, courseNames []string) error {
	sess, err := cli.session(ctx, true)
	if err != nil {
		return err
	}

	svc := admission.NewService(cli.api, cli.logger)
	start := svc.Initialize(ctx, sess)
	st := start.State
	if start.Resumed {
		fmt.Fprintln(cli.out, "Existing application found, updating its courses.")
	} else if draftFile == "" {
		return errors.New("no application found, a -draft file is required")
	}

	if draftFile != "" {
		data, err := ioutil.ReadFile(draftFile)
		if err != nil {
			return errors.Wrap(err, "reading draft")
		}
		var decodeErr error
		st = admission.Edit(st, func(d *admission.Draft) {
			decodeErr = json.Unmarshal(data, d)
		})
		if decodeErr != nil {
			return errors.Wrapf(decodeErr, "decoding %s", draftFile)
		}
	}

	if len(courseNames) > 0 {
		if len(start.Courses) == 0 {
			return errors.New("the course catalog is unavailable, please try again later")
		}
		ids, err := resolveCourses(start.Courses, courseNames)
		if err != nil {
			return err
		}
		st = admission.Edit(st, func(d *admission.Draft) {
			d.Courses = append(d.Courses, ids...)
		})
	}

	for st.Step != admission.LastStep {
		next, err := admission.Transition(st, admission.ActionAdvance)
		if err != nil {
			if next.Error == "" {
				return err
			}
			return errors.Errorf("%s: %s", st.Step, next.Error)
		}
		st = next
	}

	res, err := svc.Submit(ctx, sess, st.Draft)
	if err != nil {
		var subErr *admission.SubmitError
		switch {
		case errors.Is(err, admission.ErrLoginRequired):
			return errLoginFirst
		case errors.As(err, &subErr):
			return errors.New(subErr.Message)
		default:
			return err
		}
	}
	if res.Created {
		fmt.Fprintf(cli.out, "Application submitted (student #%d).\n", res.Student.ID)
	} else {
		fmt.Fprintln(cli.out, "Courses updated.")
	}
	return nil
}
