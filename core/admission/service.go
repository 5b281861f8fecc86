package admission

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/evolvlearn/portal/core"
)

const (
	msgNoCourses      = "Please select at least one course"
	msgCheckForm      = "Please check your form data and try again."
	msgSubmitFailed   = "Failed to submit application."
	msgNetworkFailure = "Failed to submit application. Please check your internet connection and try again."

	LoginRedirect   = "/login?redirect=/admission"
	CreatedRedirect = "/dashboard?success=application-submitted"
	UpdatedRedirect = "/dashboard?success=courses-updated"
)

var ErrLoginRequired = errors.New("login required")

// API is the part of the REST backend the wizard talks to.
// GetMyStudent must fail with a 404 *core.APIError when the user has no application yet.
type API interface {
	ListCourses(ctx context.Context, sess *core.Session) ([]Course, error)
	GetMyStudent(ctx context.Context, sess *core.Session) (Student, error)
	CreateStudent(ctx context.Context, sess *core.Session, draft Draft) (Student, error)
	UpdateMyCourses(ctx context.Context, sess *core.Session, upd CourseUpdate) (Student, error)
}

type Service struct {
	api    API
	logger core.Logger
}

func NewService(api API, logger core.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// Init is the starting point of the wizard.
type Init struct {
	State   State    `json:"state"`
	Courses []Course `json:"courses"`
	Resumed bool     `json:"resumed"`
}

// Initialize loads the course catalog and the user's existing application concurrently.
// An existing application pre-fills the draft and resumes at the courses step;
// any failure degrades to a fresh start.
func (svc *Service) Initialize(ctx context.Context, sess *core.Session) Init {
	var (
		g          errgroup.Group
		courses    []Course
		student    Student
		coursesErr error
		studentErr = ErrLoginRequired
	)
	g.Go(func() error {
		courses, coursesErr = svc.api.ListCourses(ctx, sess)
		return errors.Wrap(coursesErr, "fetching courses")
	})
	if sess.IsAuthenticated() {
		g.Go(func() error {
			student, studentErr = svc.api.GetMyStudent(ctx, sess)
			return errors.Wrap(studentErr, "fetching student")
		})
	}
	_ = g.Wait()

	usr := sess.CurrentUser()
	draft := NewDraft(usr)
	if coursesErr != nil {
		svc.logger.Error("Failed to fetch courses", errors.Wrap(coursesErr, "fetching courses"), usr)
		courses = []Course{}
	}

	switch {
	case studentErr == nil && coursesErr == nil:
		draft.Applicant.merge(student.Applicant)
		draft.Courses = svc.courseIDs(courses, student.Courses)
		return Init{
			State:   State{Step: StepCourses, Draft: draft},
			Courses: courses,
			Resumed: true,
		}
	case studentErr == nil:
		svc.logger.Warn("Existing application found but courses unavailable, starting fresh", usr)
	case studentErr == ErrLoginRequired, core.IsNotFound(studentErr):
		svc.logger.Debug("No existing application found, starting fresh")
	default:
		svc.logger.Warn("Failed to check existing application, starting fresh", errors.Wrap(studentErr, "fetching student"), usr)
	}
	return Init{State: NewState(draft), Courses: courses}
}

// Result tells where the user goes after a successful submission.
type Result struct {
	Created  bool    `json:"created"`
	Redirect string  `json:"redirect"`
	Student  Student `json:"student"`
}

// SubmitError carries the message shown to the user when a submission fails.
type SubmitError struct {
	Message string
	Err     error
}

func (err *SubmitError) Error() string {
	return err.Message
}

func (err *SubmitError) Unwrap() error {
	return err.Err
}

// Submit sends draft to the backend exactly once.
// A user with an application gets its courses merged with the selection (PATCH);
// anyone else gets a new application (POST).
func (svc *Service) Submit(ctx context.Context, sess *core.Session, draft Draft) (Result, error) {
	if !sess.IsAuthenticated() {
		return Result{Redirect: LoginRedirect}, ErrLoginRequired
	}

	ids := draft.SelectedCourses()
	if len(ids) == 0 {
		return Result{}, core.NewValidationError(
			errors.New(msgNoCourses),
			core.FieldError{Field: "courses", Error: msgNoCourses},
		)
	}
	draft.Courses = ids

	existing, err := svc.api.GetMyStudent(ctx, sess)
	switch {
	case err == nil:
		catalog, err := svc.api.ListCourses(ctx, sess)
		if err != nil {
			return Result{}, svc.submitError(sess, errors.Wrap(err, "fetching courses"))
		}
		upd := CourseUpdate{Courses: union(svc.courseIDs(catalog, existing.Courses), ids)}
		student, err := svc.api.UpdateMyCourses(ctx, sess, upd)
		if err != nil {
			return Result{}, svc.submitError(sess, errors.Wrap(err, "updating courses"))
		}
		return Result{Redirect: UpdatedRedirect, Student: student}, nil

	case core.IsNotFound(err):
		student, err := svc.api.CreateStudent(ctx, sess, draft)
		if err != nil {
			return Result{}, svc.submitError(sess, errors.Wrap(err, "creating student"))
		}
		return Result{Created: true, Redirect: CreatedRedirect, Student: student}, nil

	default:
		return Result{}, svc.submitError(sess, errors.Wrap(err, "fetching student"))
	}
}

func (svc *Service) submitError(sess *core.Session, err error) error {
	svc.logger.Error("Submission error", err, sess.CurrentUser())
	return &SubmitError{Message: FormatError(err), Err: err}
}

// courseIDs maps course names back to ids through the catalog.
// Every course carrying a listed name is selected.
func (svc *Service) courseIDs(catalog []Course, names []string) []int {
	wanted := make(map[string]int, len(names))
	for _, name := range names {
		wanted[name] = 0
	}
	ids := make([]int, 0, len(names))
	for _, c := range catalog {
		if _, ok := wanted[c.Name]; ok {
			wanted[c.Name]++
			ids = append(ids, c.ID)
		}
	}
	for name, n := range wanted {
		if n > 1 {
			svc.logger.Warn(fmt.Sprintf("course name %q matches %d courses, all selected", name, n))
		}
	}
	return ids
}

// FormatError turns a failed submission into the message shown to the user.
func FormatError(err error) string {
	apiErr, ok := errors.Cause(err).(*core.APIError)
	if !ok {
		return msgNetworkFailure
	}
	lines, structured := apiErr.Messages()
	switch {
	case structured && len(lines) == 0:
		return msgCheckForm
	case structured:
		return strings.Join(lines, "\n")
	case len(lines) > 0:
		return lines[0]
	default:
		return msgSubmitFailed
	}
}
