package admission

import (
	"reflect"

	"github.com/evolvlearn/portal/core"
)

const (
	defaultZipCode      = "N/A"
	defaultEnglishLevel = 3
)

// Applicant holds the personal data sent with an application.
type Applicant struct {
	// personal info
	Email          string `json:"email" validate:"notblank"`
	Phone          string `json:"phone" validate:"notblank"`
	FirstName      string `json:"first_name" validate:"notblank"`
	LastName       string `json:"last_name" validate:"notblank"`
	Gender         string `json:"gender" validate:"notblank"`
	BirthDate      string `json:"birth_date" validate:"notblank"` // YYYY-MM-DD
	ZipCode        string `json:"zip_code"`
	CountryOfBirth string `json:"country_of_birth" validate:"notblank"`
	Nationality    string `json:"nationality" validate:"notblank"`

	// education
	DiplomaLevel string `json:"diploma_level" validate:"notblank"`
	JobStatus    string `json:"job_status" validate:"notblank"`
	EnglishLevel int    `json:"english_level"` // 1-5

	// motivation
	Motivation     string `json:"motivation" validate:"notblank"`
	FutureGoals    string `json:"future_goals" validate:"notblank"`
	ProudestMoment string `json:"proudest_moment" validate:"notblank"`

	// additional
	HowHeard       string `json:"how_heard" validate:"notblank"`
	ReferralPerson string `json:"referral_person"`
	HasLaptop      bool   `json:"has_laptop"`
}

// merge copies every non-zero field of src into a.
func (a *Applicant) merge(src Applicant) {
	dst := reflect.ValueOf(a).Elem()
	sv := reflect.ValueOf(src)
	for i := 0; i < sv.NumField(); i++ {
		if fld := sv.Field(i); !fld.IsZero() {
			dst.Field(i).Set(fld)
		}
	}
}

// Draft is an application being filled in, not yet submitted.
type Draft struct {
	Applicant
	Courses []int `json:"courses" validate:"notblank"`
}

// NewDraft returns an empty Draft pre-filled with usr's identity.
func NewDraft(usr core.User) Draft {
	return Draft{
		Applicant: Applicant{
			Email:        usr.Email,
			FirstName:    usr.FirstName,
			LastName:     usr.LastName,
			ZipCode:      defaultZipCode,
			EnglishLevel: defaultEnglishLevel,
		},
		Courses: []int{},
	}
}

// SelectedCourses returns the valid (positive, de-duplicated) course ids of the draft.
func (d Draft) SelectedCourses() []int {
	ids := make([]int, 0, len(d.Courses))
	for _, id := range d.Courses {
		if id > 0 {
			ids = append(ids, id)
		}
	}
	return union(ids)
}

// ToggleCourse selects or deselects the given course.
func (d *Draft) ToggleCourse(id int) {
	for i, cid := range d.Courses {
		if cid == id {
			d.Courses = append(d.Courses[:i:i], d.Courses[i+1:]...)
			return
		}
	}
	d.Courses = append(d.Courses, id)
}

type Course struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

// Student is an application already stored by the backend.
// Its courses are listed by name.
type Student struct {
	ID             int    `json:"id"`
	RegisterNumber string `json:"register_number,omitempty"`
	Applicant
	Courses []string `json:"courses"`
}

// CourseUpdate is the payload patching an existing application's courses.
type CourseUpdate struct {
	Courses []int `json:"courses"`
}

// union returns the ids of all lists, without duplicates, in first-seen order.
func union(lists ...[]int) []int {
	seen := make(map[int]bool)
	ids := make([]int, 0)
	for _, list := range lists {
		for _, id := range list {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}
