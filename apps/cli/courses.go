package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/evolvlearn/portal/core"
	"github.com/evolvlearn/portal/core/admission"
)

const minSimilarity = 0.7

func (cli *commandLine) courses(ctx context.Context) error {
	sess, err := cli.session(ctx, false)
	if err != nil {
		return err
	}
	catalog, err := cli.api.ListCourses(ctx, sess)
	if err != nil {
		return errors.Wrap(err, "fetching courses")
	}
	if len(catalog) == 0 {
		fmt.Fprintln(cli.out, "No courses available.")
		return nil
	}

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY")
	for _, c := range catalog {
		fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.Category)
	}
	return w.Flush()
}

// resolveCourses maps course names (or ids) given on the command line to catalog ids.
// A name matches every course carrying it, case-insensitively.
func resolveCourses(catalog []admission.Course, names []string) ([]int, error) {
	ids := make([]int, 0, len(names))
	for _, name := range names {
		name = core.CleanString(name)
		if id, err := strconv.Atoi(name); err == nil {
			if !hasCourse(catalog, id) {
				return nil, errors.Errorf("unknown course id %d", id)
			}
			ids = append(ids, id)
			continue
		}

		found := false
		for _, c := range catalog {
			if strings.EqualFold(core.CleanString(c.Name), name) {
				ids = append(ids, c.ID)
				found = true
			}
		}
		if !found {
			if guess := closestCourse(catalog, name); guess != "" {
				return nil, errors.Errorf("unknown course %q, did you mean %q?", name, guess)
			}
			return nil, errors.Errorf("unknown course %q", name)
		}
	}
	return ids, nil
}

func hasCourse(catalog []admission.Course, id int) bool {
	for _, c := range catalog {
		if c.ID == id {
			return true
		}
	}
	return false
}

// closestCourse returns the catalog name most similar to name, if similar enough.
func closestCourse(catalog []admission.Course, name string) string {
	var (
		best      string
		bestRatio float64
	)
	name = strings.ToLower(name)
	for _, c := range catalog {
		cname := strings.ToLower(c.Name)
		ratio := difflib.NewMatcher(strings.Split(name, ""), strings.Split(cname, "")).Ratio()
		if ratio >= minSimilarity && ratio > bestRatio {
			best, bestRatio = c.Name, ratio
		}
	}
	return best
}
