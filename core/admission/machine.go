package admission

import (
	"github.com/pkg/errors"

	"github.com/evolvlearn/portal/core"
)

type Action string

const (
	ActionAdvance Action = "advance"
	ActionRetreat Action = "retreat"
)

var (
	ErrLastStep      = errors.New("already on the last step")
	ErrInvalidStep   = errors.New("invalid step")
	ErrUnknownAction = errors.New("unknown action")
)

// State is the wizard's state.
type State struct {
	Step        Step   `json:"step"`
	Draft       Draft  `json:"draft"`
	Error       string `json:"error,omitempty"`
	ScrollReset bool   `json:"scroll_reset,omitempty"`
}

func NewState(draft Draft) State {
	return State{Step: FirstStep, Draft: draft}
}

// Transition applies action to st and returns the next state.
// A failed step gate returns st with its Error set, along with a *core.ValidationError.
func Transition(st State, action Action) (State, error) {
	if !st.Step.Valid() {
		return st, errors.Wrapf(ErrInvalidStep, "step %d", st.Step)
	}

	next := st
	next.ScrollReset = false

	switch action {
	case ActionAdvance:
		if st.Step == LastStep {
			return next, ErrLastStep
		}
		res := ValidateStep(st.Step, st.Draft)
		if !res.OK {
			next.Error = res.Error
			return next, core.NewValidationError(
				errors.New(res.Error),
				core.FieldError{Field: res.Field, Error: res.Error},
			)
		}
		next.Step++
		next.Error = ""
		next.ScrollReset = true
	case ActionRetreat:
		if st.Step > FirstStep {
			next.Step--
			next.Error = ""
			next.ScrollReset = true
		}
	default:
		return st, errors.Wrapf(ErrUnknownAction, "%q", action)
	}
	return next, nil
}

// Edit applies a field change to the draft; it clears the visible error.
func Edit(st State, change func(*Draft)) State {
	st.Draft.Courses = append([]int{}, st.Draft.Courses...)
	change(&st.Draft)
	st.Error = ""
	st.ScrollReset = false
	return st
}

// Progress returns the completion ratio of st, from 0.2 to 1.
func (st State) Progress() float64 {
	return float64(st.Step) / float64(LastStep)
}
