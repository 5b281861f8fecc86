package admission

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evolvlearn/portal/core"
)

type testLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *testLogger) Debug(msg string, args ...interface{}) {}
func (l *testLogger) Info(msg string, args ...interface{})  {}
func (l *testLogger) Error(msg string, args ...interface{}) {}
func (l *testLogger) Fatal(msg string, args ...interface{}) {}
func (l *testLogger) Warn(msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

type fakeAPI struct {
	mu         sync.Mutex
	courses    []Course
	coursesErr error
	student    *Student
	studentErr error
	writeErr   error

	created []Draft
	updated []CourseUpdate
	calls   map[string]int
}

func (api *fakeAPI) hit(name string) {
	api.mu.Lock()
	defer api.mu.Unlock()
	if api.calls == nil {
		api.calls = make(map[string]int)
	}
	api.calls[name]++
}

func (api *fakeAPI) ListCourses(ctx context.Context, sess *core.Session) ([]Course, error) {
	api.hit("ListCourses")
	return api.courses, api.coursesErr
}

func (api *fakeAPI) GetMyStudent(ctx context.Context, sess *core.Session) (Student, error) {
	api.hit("GetMyStudent")
	if api.studentErr != nil {
		return Student{}, api.studentErr
	}
	if api.student == nil {
		return Student{}, errors.Wrap(core.NewAPIError(http.StatusNotFound, []byte(`{"detail":"Not found."}`)), "api")
	}
	return *api.student, nil
}

func (api *fakeAPI) CreateStudent(ctx context.Context, sess *core.Session, draft Draft) (Student, error) {
	api.hit("CreateStudent")
	if api.writeErr != nil {
		return Student{}, api.writeErr
	}
	api.created = append(api.created, draft)
	return Student{ID: 1, Applicant: draft.Applicant}, nil
}

func (api *fakeAPI) UpdateMyCourses(ctx context.Context, sess *core.Session, upd CourseUpdate) (Student, error) {
	api.hit("UpdateMyCourses")
	if api.writeErr != nil {
		return Student{}, api.writeErr
	}
	api.updated = append(api.updated, upd)
	return *api.student, nil
}

var (
	catalog = []Course{
		{ID: 1, Name: "Data Science"},
		{ID: 2, Name: "Cloud Computing"},
		{ID: 3, Name: "Cyber Security"},
	}
	loggedIn = &core.Session{
		AccessToken: "token",
		User:        &core.User{ID: 9, Email: "ada@test.io", FirstName: "Ada", LastName: "Obi", Role: core.RoleStudent},
	}
)

func TestService_Initialize(t *testing.T) {
	t.Run("fresh start", func(t *testing.T) {
		api := &fakeAPI{courses: catalog}
		start := NewService(api, &testLogger{}).Initialize(context.Background(), loggedIn)

		assert.False(t, start.Resumed)
		assert.Equal(t, StepPersonalInfo, start.State.Step)
		assert.Equal(t, catalog, start.Courses)
		assert.Equal(t, "ada@test.io", start.State.Draft.Email)
		assert.Equal(t, "Ada", start.State.Draft.FirstName)
		assert.Equal(t, "N/A", start.State.Draft.ZipCode)
		assert.Equal(t, 3, start.State.Draft.EnglishLevel)
		assert.Empty(t, start.State.Draft.Courses)
	})

	t.Run("resume existing application", func(t *testing.T) {
		existing := &Student{
			ID:        4,
			Applicant: Applicant{Phone: "+233", Gender: "Male", Motivation: "Grow", EnglishLevel: 5},
			Courses:   []string{"Cyber Security", "Retired Course"},
		}
		api := &fakeAPI{courses: catalog, student: existing}
		start := NewService(api, &testLogger{}).Initialize(context.Background(), loggedIn)

		assert.True(t, start.Resumed)
		assert.Equal(t, StepCourses, start.State.Step)
		assert.Equal(t, []int{3}, start.State.Draft.Courses)
		assert.Equal(t, "+233", start.State.Draft.Phone)
		assert.Equal(t, "Grow", start.State.Draft.Motivation)
		assert.Equal(t, 5, start.State.Draft.EnglishLevel)
		assert.Equal(t, "ada@test.io", start.State.Draft.Email, "fields absent from the record are kept")
	})

	t.Run("profile error degrades to fresh start", func(t *testing.T) {
		logger := &testLogger{}
		api := &fakeAPI{courses: catalog, studentErr: core.NewAPIError(http.StatusInternalServerError, nil)}
		start := NewService(api, logger).Initialize(context.Background(), loggedIn)

		assert.False(t, start.Resumed)
		assert.Equal(t, StepPersonalInfo, start.State.Step)
		assert.Len(t, logger.warns, 1)
	})

	t.Run("catalog error yields empty catalog", func(t *testing.T) {
		api := &fakeAPI{coursesErr: errors.New("dial tcp: refused"), student: &Student{Courses: []string{"Data Science"}}}
		start := NewService(api, &testLogger{}).Initialize(context.Background(), loggedIn)

		assert.False(t, start.Resumed)
		assert.Equal(t, []Course{}, start.Courses)
		assert.Equal(t, StepPersonalInfo, start.State.Step)
	})

	t.Run("anonymous user does not fetch a profile", func(t *testing.T) {
		api := &fakeAPI{courses: catalog}
		start := NewService(api, &testLogger{}).Initialize(context.Background(), nil)

		assert.Equal(t, StepPersonalInfo, start.State.Step)
		assert.Equal(t, 0, api.calls["GetMyStudent"])
		assert.Equal(t, 1, api.calls["ListCourses"])
	})

	t.Run("duplicate course names select every match", func(t *testing.T) {
		logger := &testLogger{}
		dupCatalog := append([]Course{{ID: 7, Name: "Data Science"}}, catalog...)
		api := &fakeAPI{courses: dupCatalog, student: &Student{Courses: []string{"Data Science"}}}
		start := NewService(api, logger).Initialize(context.Background(), loggedIn)

		assert.Equal(t, []int{7, 1}, start.State.Draft.Courses)
		assert.Len(t, logger.warns, 1)
	})
}

func TestService_Submit(t *testing.T) {
	t.Run("login required", func(t *testing.T) {
		api := &fakeAPI{}
		res, err := NewService(api, &testLogger{}).Submit(context.Background(), core.NewSession("", ""), completeDraft())

		assert.Equal(t, ErrLoginRequired, err)
		assert.Equal(t, "/login?redirect=/admission", res.Redirect)
		assert.Empty(t, api.calls)
	})

	t.Run("no valid course", func(t *testing.T) {
		api := &fakeAPI{}
		draft := completeDraft()
		draft.Courses = []int{0, -4}
		_, err := NewService(api, &testLogger{}).Submit(context.Background(), loggedIn, draft)

		require.Error(t, err)
		assert.Equal(t, "Please select at least one course", err.Error())
		_, ok := err.(*core.ValidationError)
		assert.True(t, ok)
		assert.Empty(t, api.calls)
	})

	t.Run("create new application", func(t *testing.T) {
		api := &fakeAPI{courses: catalog}
		draft := completeDraft()
		draft.Courses = []int{2, 0, 2}
		res, err := NewService(api, &testLogger{}).Submit(context.Background(), loggedIn, draft)

		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.Equal(t, "/dashboard?success=application-submitted", res.Redirect)
		require.Len(t, api.created, 1)
		assert.Equal(t, []int{2}, api.created[0].Courses)
		assert.Equal(t, 0, api.calls["UpdateMyCourses"])
	})

	t.Run("merge into existing application", func(t *testing.T) {
		api := &fakeAPI{courses: catalog, student: &Student{ID: 4, Courses: []string{"Data Science", "Cyber Security"}}}
		draft := completeDraft()
		draft.Courses = []int{3, 2}
		res, err := NewService(api, &testLogger{}).Submit(context.Background(), loggedIn, draft)

		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Equal(t, "/dashboard?success=courses-updated", res.Redirect)
		require.Len(t, api.updated, 1)
		assert.Equal(t, []int{1, 3, 2}, api.updated[0].Courses)
		assert.Equal(t, 0, api.calls["CreateStudent"])
	})

	t.Run("backend validation errors", func(t *testing.T) {
		body := []byte(`{"phone": ["Enter a valid phone number."], "birth_date": ["Date has wrong format.", "Required."]}`)
		api := &fakeAPI{writeErr: core.NewAPIError(http.StatusBadRequest, body)}
		_, err := NewService(api, &testLogger{}).Submit(context.Background(), loggedIn, completeDraft())

		require.Error(t, err)
		sErr, ok := err.(*SubmitError)
		require.True(t, ok)
		assert.Equal(t, "birth_date: Date has wrong format., Required.\nphone: Enter a valid phone number.", sErr.Message)
	})

	t.Run("profile check failure is not a create", func(t *testing.T) {
		api := &fakeAPI{studentErr: errors.New("connection reset")}
		_, err := NewService(api, &testLogger{}).Submit(context.Background(), loggedIn, completeDraft())

		require.Error(t, err)
		assert.Equal(t, msgNetworkFailure, err.Error())
		assert.Equal(t, 0, api.calls["CreateStudent"])
	})
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "network", err: errors.New("dial tcp: i/o timeout"), want: msgNetworkFailure},
		{name: "field errors", err: core.NewAPIError(400, []byte(`{"courses": ["Invalid pk \"99\"."]}`)), want: `courses: Invalid pk "99".`},
		{name: "empty object", err: core.NewAPIError(400, []byte(`{}`)), want: msgCheckForm},
		{name: "plain text", err: core.NewAPIError(502, []byte("Bad Gateway")), want: "Bad Gateway"},
		{name: "json string", err: errors.Wrap(core.NewAPIError(400, []byte(`"Nope"`)), "creating"), want: "Nope"},
		{name: "non-field errors", err: core.NewAPIError(400, []byte(`["You already applied to this course."]`)), want: "You already applied to this course."},
		{name: "empty body", err: core.NewAPIError(500, nil), want: msgSubmitFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatError(tt.err); got != tt.want {
				t.Errorf("FormatError() = %q; want %q", got, tt.want)
			}
		})
	}
}
