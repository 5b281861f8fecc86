package admission

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/evolvlearn/portal/core"
)

type Step int

const (
	StepPersonalInfo Step = iota + 1
	StepEducation
	StepMotivation
	StepCourses
	StepReview
)

var (
	FirstStep = StepPersonalInfo
	LastStep  = StepReview

	stepTitles = map[Step]string{
		StepPersonalInfo: "Personal Info",
		StepEducation:    "Education",
		StepMotivation:   "Motivation",
		StepCourses:      "Courses",
		StepReview:       "Review",
	}

	// required fields of each step, in the order they are reported
	stepRules = map[Step][]core.FieldError{
		StepPersonalInfo: {
			{Field: "first_name", Error: "First name is required"},
			{Field: "last_name", Error: "Last name is required"},
			{Field: "email", Error: "Email is required"},
			{Field: "phone", Error: "Phone number is required"},
			{Field: "gender", Error: "Gender is required"},
			{Field: "birth_date", Error: "Date of birth is required"},
			{Field: "country_of_birth", Error: "Country of birth is required"},
			{Field: "nationality", Error: "Nationality is required"},
		},
		StepEducation: {
			{Field: "diploma_level", Error: "Education level is required"},
			{Field: "job_status", Error: "Job status is required"},
		},
		StepMotivation: {
			{Field: "motivation", Error: "Please tell us why you want to join"},
			{Field: "future_goals", Error: "Please share your career goals"},
			{Field: "proudest_moment", Error: "Please share your proudest achievement"},
			{Field: "how_heard", Error: "Please tell us how you heard about us"},
		},
		StepCourses: {
			{Field: "courses", Error: msgNoCourses},
		},
	}

	draftValidate = newDraftValidate()
)

func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

func (s Step) String() string {
	if title, ok := stepTitles[s]; ok {
		return title
	}
	return "Unknown"
}

type StepInfo struct {
	Number Step   `json:"number"`
	Title  string `json:"title"`
}

// Steps lists the wizard steps in order.
func Steps() []StepInfo {
	steps := make([]StepInfo, 0, len(stepTitles))
	for s := FirstStep; s <= LastStep; s++ {
		steps = append(steps, StepInfo{Number: s, Title: s.String()})
	}
	return steps
}

type StepResult struct {
	OK    bool   `json:"ok"`
	Field string `json:"field,omitempty"`
	Error string `json:"error,omitempty"`
}

func newDraftValidate() *validator.Validate {
	validate := validator.New()
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	core.InitValidators(validate, translator)
	return validate
}

// ValidateStep reports the first required field of step missing from draft.
// The review step always validates.
func ValidateStep(step Step, draft Draft) StepResult {
	rules, ok := stepRules[step]
	if !ok {
		return StepResult{OK: true}
	}

	err := draftValidate.Struct(draft)
	if err == nil {
		return StepResult{OK: true}
	}
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return StepResult{Error: err.Error()}
	}

	failed := make(map[string]bool, len(vErrs))
	for _, vErr := range vErrs {
		failed[vErr.Field()] = true
	}
	for _, rule := range rules {
		if failed[rule.Field] {
			return StepResult{Field: rule.Field, Error: rule.Error}
		}
	}
	return StepResult{OK: true}
}
