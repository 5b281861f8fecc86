package admission

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evolvlearn/portal/core"
)

func completeDraft() Draft {
	return Draft{
		Applicant: Applicant{
			Email:          "ada@test.io",
			Phone:          "+2348000000000",
			FirstName:      "Ada",
			LastName:       "Obi",
			Gender:         "Female",
			BirthDate:      "1999-04-12",
			ZipCode:        defaultZipCode,
			CountryOfBirth: "NG",
			Nationality:    "NG",
			DiplomaLevel:   "Bachelor",
			JobStatus:      "Student",
			EnglishLevel:   4,
			Motivation:     "Learn data science",
			FutureGoals:    "Become an analyst",
			ProudestMoment: "Graduating",
			HowHeard:       "Website",
		},
		Courses: []int{1},
	}
}

func TestValidateStep(t *testing.T) {
	tests := []struct {
		name    string
		step    Step
		change  func(*Draft)
		wantErr string
	}{
		{name: "personal info ok", step: StepPersonalInfo},
		{name: "missing first name", step: StepPersonalInfo, change: func(d *Draft) { d.FirstName = "" }, wantErr: "First name is required"},
		{name: "blank first name", step: StepPersonalInfo, change: func(d *Draft) { d.FirstName = "   " }, wantErr: "First name is required"},
		{name: "first missing field wins", step: StepPersonalInfo, change: func(d *Draft) { d.Nationality = ""; d.Phone = "" }, wantErr: "Phone number is required"},
		{name: "missing birth date", step: StepPersonalInfo, change: func(d *Draft) { d.BirthDate = "" }, wantErr: "Date of birth is required"},
		{name: "zip code optional", step: StepPersonalInfo, change: func(d *Draft) { d.ZipCode = "" }},
		{name: "other steps ignored", step: StepPersonalInfo, change: func(d *Draft) { d.Motivation = ""; d.Courses = nil }},
		{name: "missing diploma", step: StepEducation, change: func(d *Draft) { d.DiplomaLevel = "" }, wantErr: "Education level is required"},
		{name: "missing job status", step: StepEducation, change: func(d *Draft) { d.JobStatus = "" }, wantErr: "Job status is required"},
		{name: "missing motivation", step: StepMotivation, change: func(d *Draft) { d.Motivation = "" }, wantErr: "Please tell us why you want to join"},
		{name: "missing future goals", step: StepMotivation, change: func(d *Draft) { d.FutureGoals = "" }, wantErr: "Please share your career goals"},
		{name: "missing proudest moment", step: StepMotivation, change: func(d *Draft) { d.ProudestMoment = "" }, wantErr: "Please share your proudest achievement"},
		{name: "missing how heard", step: StepMotivation, change: func(d *Draft) { d.HowHeard = "" }, wantErr: "Please tell us how you heard about us"},
		{name: "referral optional", step: StepMotivation, change: func(d *Draft) { d.ReferralPerson = "" }},
		{name: "no course", step: StepCourses, change: func(d *Draft) { d.Courses = []int{} }, wantErr: "Please select at least one course"},
		{name: "review always ok", step: StepReview, change: func(d *Draft) { *d = Draft{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := completeDraft()
			if tt.change != nil {
				tt.change(&draft)
			}
			res := ValidateStep(tt.step, draft)
			if res.OK != (tt.wantErr == "") {
				t.Errorf("ValidateStep() ok = %v; wantErr %q", res.OK, tt.wantErr)
			}
			if res.Error != tt.wantErr {
				t.Errorf("ValidateStep() error = %q; wantErr %q", res.Error, tt.wantErr)
			}
		})
	}
}

func TestTransition_happyPath(t *testing.T) {
	st := NewState(completeDraft())
	for want := StepEducation; want <= StepReview; want++ {
		var err error
		st, err = Transition(st, ActionAdvance)
		require.NoError(t, err)
		assert.Equal(t, want, st.Step)
		assert.True(t, st.ScrollReset)
		assert.Empty(t, st.Error)
	}

	_, err := Transition(st, ActionAdvance)
	assert.Equal(t, ErrLastStep, err)
	assert.Equal(t, 1.0, st.Progress())
}

func TestTransition_gateBlocks(t *testing.T) {
	draft := completeDraft()
	draft.Gender = ""
	st := NewState(draft)

	next, err := Transition(st, ActionAdvance)
	require.Error(t, err)
	assert.Equal(t, StepPersonalInfo, next.Step)
	assert.Equal(t, "Gender is required", next.Error)
	assert.False(t, next.ScrollReset)

	vErr, ok := errors.Cause(err).(*core.ValidationError)
	require.True(t, ok, "error should be a *core.ValidationError")
	assert.Equal(t, []core.FieldError{{Field: "gender", Error: "Gender is required"}}, vErr.Fields)

	// editing clears the error, then the gate passes
	next = Edit(next, func(d *Draft) { d.Gender = "Other" })
	assert.Empty(t, next.Error)
	next, err = Transition(next, ActionAdvance)
	require.NoError(t, err)
	assert.Equal(t, StepEducation, next.Step)
}

func TestTransition_retreat(t *testing.T) {
	st := State{Step: StepMotivation, Draft: Draft{}, Error: "Please tell us why you want to join"}

	st, err := Transition(st, ActionRetreat)
	require.NoError(t, err)
	assert.Equal(t, StepEducation, st.Step)
	assert.Empty(t, st.Error)

	st, _ = Transition(st, ActionRetreat)
	st, _ = Transition(st, ActionRetreat)
	assert.Equal(t, StepPersonalInfo, st.Step)
	assert.False(t, st.ScrollReset)
}

func TestTransition_invalid(t *testing.T) {
	_, err := Transition(State{Step: 9}, ActionRetreat)
	assert.Equal(t, ErrInvalidStep, errors.Cause(err))

	_, err = Transition(NewState(Draft{}), Action("jump"))
	assert.Equal(t, ErrUnknownAction, errors.Cause(err))
}

func TestEdit_doesNotAlias(t *testing.T) {
	st := NewState(Draft{Courses: []int{1, 2}})
	next := Edit(st, func(d *Draft) { d.ToggleCourse(1); d.ToggleCourse(3) })
	assert.Equal(t, []int{1, 2}, st.Draft.Courses)
	assert.Equal(t, []int{2, 3}, next.Draft.Courses)
}

func TestDraft_SelectedCourses(t *testing.T) {
	d := Draft{Courses: []int{3, 0, -1, 3, 5}}
	assert.Equal(t, []int{3, 5}, d.SelectedCourses())
}

func TestSteps(t *testing.T) {
	steps := Steps()
	require.Len(t, steps, 5)
	assert.Equal(t, StepInfo{Number: StepPersonalInfo, Title: "Personal Info"}, steps[0])
	assert.Equal(t, StepInfo{Number: StepReview, Title: "Review"}, steps[4])
	assert.Equal(t, "Unknown", Step(0).String())
}
