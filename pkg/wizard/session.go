package wizard

import "fmt"

// Action is a user command applied to a session.
type Action string

const (
	ActionNext Action = "next"
	ActionBack Action = "back"
)

// ParseAction maps a raw action name onto an Action. Empty input means next,
// which is what a plain form submit carries.
func ParseAction(raw string) (Action, error) {
	switch Action(raw) {
	case "", ActionNext:
		return ActionNext, nil
	case ActionBack:
		return ActionBack, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, raw)
	}
}

// Outcome classifies a transition.
type Outcome string

const (
	OutcomeAdvanced  Outcome = "advanced"
	OutcomeRejected  Outcome = "rejected"
	OutcomeSubmit    Outcome = "submit"
	OutcomeBack      Outcome = "back"
	OutcomeUnchanged Outcome = "unchanged"
)

// Session is the explicit wizard state: the active step, the values entered
// so far and the errors of the last validation attempt.
type Session struct {
	Step      StepIndex  `json:"step"`
	Values    FormValues `json:"values"`
	Errors    ErrorMap   `json:"errors,omitempty"`
	Submitted bool       `json:"submitted"`
}

// NewSession returns a session on the first step with every field empty.
func NewSession() Session {
	return Session{Step: StepFirst}
}

// Transition describes what a Next or Back call did.
type Transition struct {
	From     StepIndex   `json:"from"`
	To       StepIndex   `json:"to"`
	Outcome  Outcome     `json:"outcome"`
	Accepted *FormValues `json:"accepted,omitempty"`
	Errors   ErrorMap    `json:"errors,omitempty"`
}

// Next stores values and validates the active step. A failing step stays put
// with its errors; a passing step advances, except on the last step where the
// transition reports OutcomeSubmit and the accepted values for the caller to
// hand off.
func Next(v Validator, s Session, values FormValues) (Session, Transition, error) {
	result, err := v.Validate(s.Step, values)
	if err != nil {
		return s, Transition{}, err
	}

	next := s
	next.Values = values
	t := Transition{From: s.Step, To: s.Step}

	if !result.Passed() {
		next.Errors = result.Errors.clone()
		t.Outcome = OutcomeRejected
		t.Errors = result.Errors.clone()
		return next, t, nil
	}

	next.Errors = nil
	if int(s.Step) >= lastStep(v) {
		t.Outcome = OutcomeSubmit
		t.Accepted = result.Accepted
		return next, t, nil
	}

	next.Step = s.Step + 1
	t.To = next.Step
	t.Outcome = OutcomeAdvanced
	return next, t, nil
}

// Back moves one step towards the first without validating. On the first step
// it is a no-op. Entered values are kept so returning forward restores them.
func Back(s Session, values FormValues) (Session, Transition) {
	next := s
	next.Values = values
	next.Errors = nil
	t := Transition{From: s.Step, To: s.Step, Outcome: OutcomeUnchanged}
	if s.Step <= StepFirst {
		next.Step = StepFirst
		t.To = StepFirst
		return next, t
	}
	next.Step = s.Step - 1
	t.To = next.Step
	t.Outcome = OutcomeBack
	return next, t
}

func lastStep(v Validator) int {
	last := -1
	for step := range v.Groups() {
		if int(step) > last {
			last = int(step)
		}
	}
	return last
}
