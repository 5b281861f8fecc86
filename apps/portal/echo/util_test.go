package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/evolvlearn/portal/core"
	"github.com/evolvlearn/portal/core/admission"
	"github.com/evolvlearn/portal/core/calendar"
)

const (
	studentToken = "student-token"
	adminToken   = "admin-token"
	expiredToken = "expired-token"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

// fakeBackend is an in-memory Backend.
type fakeBackend struct {
	mu       sync.Mutex
	courses  []admission.Course
	student  *admission.Student
	writeErr error
	events   map[calendar.Month][]calendar.Event

	created    []admission.Draft
	updated    []admission.CourseUpdate
	eventCalls []calendar.Month
}

var _ Backend = (*fakeBackend)(nil)

func (b *fakeBackend) Authenticate(ctx context.Context, sess *core.Session) (bool, error) {
	switch sess.AccessToken {
	case studentToken:
		sess.User = &core.User{ID: 1, Email: "ada@test.io", FirstName: "Ada", LastName: "Obi", Role: core.RoleStudent}
		return false, nil
	case adminToken:
		sess.User = &core.User{ID: 2, Email: "admin@test.io", Role: core.RoleAdmin}
		return false, nil
	case expiredToken:
		if sess.RefreshToken == "" {
			break
		}
		sess.AccessToken = studentToken
		sess.User = &core.User{ID: 1, Email: "ada@test.io", Role: core.RoleStudent}
		return true, nil
	}
	return false, core.NewAPIError(http.StatusUnauthorized, []byte(`{"detail": "Given token not valid for any token type"}`))
}

func (b *fakeBackend) ListCourses(ctx context.Context, sess *core.Session) ([]admission.Course, error) {
	return b.courses, nil
}

func (b *fakeBackend) GetMyStudent(ctx context.Context, sess *core.Session) (admission.Student, error) {
	if b.student == nil {
		return admission.Student{}, core.NewAPIError(http.StatusNotFound, []byte(`{"detail": "Not found."}`))
	}
	return *b.student, nil
}

func (b *fakeBackend) CreateStudent(ctx context.Context, sess *core.Session, draft admission.Draft) (admission.Student, error) {
	if b.writeErr != nil {
		return admission.Student{}, b.writeErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.created = append(b.created, draft)
	return admission.Student{ID: 10, Applicant: draft.Applicant, Courses: []string{"Data Science"}}, nil
}

func (b *fakeBackend) UpdateMyCourses(ctx context.Context, sess *core.Session, upd admission.CourseUpdate) (admission.Student, error) {
	if b.writeErr != nil {
		return admission.Student{}, b.writeErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.updated = append(b.updated, upd)
	return *b.student, nil
}

func (b *fakeBackend) GetCalendarEvents(ctx context.Context, sess *core.Session, year int, month time.Month) ([]calendar.Event, error) {
	m := calendar.Month{Year: year, Month: month}
	b.mu.Lock()
	b.eventCalls = append(b.eventCalls, m)
	b.mu.Unlock()
	if !sess.IsAuthenticated() {
		return nil, core.NewAPIError(http.StatusUnauthorized, nil)
	}
	return b.events[m], nil
}

func setup(t *testing.T, backend *fakeBackend) *Server {
	validate := validator.New()
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	core.InitValidators(validate, translator)

	return NewServer(ServerDeps{
		Conf: &core.Config{
			TestMode:        true,
			AppName:         "EvolvLearn",
			FrontendBaseURL: "http://localhost:3000",
		},
		Logger:     nopLogger{},
		API:        backend,
		Validate:   validate,
		Translator: translator,
	})
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func unmarchallObj(t *testing.T, rec *httptest.ResponseRecorder, obj interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), obj); err != nil {
		t.Fatalf("unmarchallObj(): %v; body %s", err, rec.Body.String())
	}
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
