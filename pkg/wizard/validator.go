package wizard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

// StepIndex identifies the active step.
type StepIndex int

const (
	StepFirst  StepIndex = 0
	StepSecond StepIndex = 1
	StepLast   StepIndex = 2
)

// StepFieldGroups associates each step with the fields it owns.
type StepFieldGroups map[StepIndex][]string

// Result is the outcome of validating one step. Accepted is nil whenever
// Errors is non-empty.
type Result struct {
	Accepted *FormValues `json:"accepted"`
	Errors   ErrorMap    `json:"errors"`
}

// Passed reports whether the validated step may advance or commit.
func (r Result) Passed() bool {
	return len(r.Errors) == 0 && r.Accepted != nil
}

// Validator maps a step and the current values onto accepted values and
// per-field errors.
type Validator interface {
	Validate(step StepIndex, values FormValues) (Result, error)
	Groups() StepFieldGroups
}

// StepValidator evaluates the rule table of a form definition. It is safe for
// concurrent use; Validate has no side effects.
type StepValidator struct {
	form   model.FormModel
	groups StepFieldGroups
}

var _ Validator = (*StepValidator)(nil)

// NewStepValidator builds a validator for form. The form must be valid and
// its steps must cover every FormValues field exactly once.
func NewStepValidator(form model.FormModel) (*StepValidator, error) {
	groups, err := GroupsOf(form)
	if err != nil {
		return nil, err
	}
	return &StepValidator{form: form.Clone(), groups: groups}, nil
}

// MustStepValidator panics when the form is invalid. Intended for the built-in
// definition and tests.
func MustStepValidator(form model.FormModel) *StepValidator {
	v, err := NewStepValidator(form)
	if err != nil {
		panic(err)
	}
	return v
}

// DefaultValidator returns the rule-table validator for model.DefaultForm.
func DefaultValidator() *StepValidator {
	return MustStepValidator(model.DefaultForm())
}

// GroupsOf validates form and derives its step groups, checking that the
// union of all groups is exactly the FormValues field set.
func GroupsOf(form model.FormModel) (StepFieldGroups, error) {
	if err := model.Validate(form); err != nil {
		return nil, fmt.Errorf("wizard: %w", err)
	}

	groups := make(StepFieldGroups, len(form.Steps))
	covered := make(map[string]struct{}, len(FieldNames))
	for _, step := range form.Steps {
		for _, field := range step.Fields {
			if _, known := (FormValues{}).Get(field.Name); !known {
				return nil, fmt.Errorf("wizard: step %d declares unsupported field %q", step.Index, field.Name)
			}
			covered[field.Name] = struct{}{}
			groups[StepIndex(step.Index)] = append(groups[StepIndex(step.Index)], field.Name)
		}
	}

	var missing []string
	for _, name := range FieldNames {
		if _, ok := covered[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("wizard: fields not assigned to any step: %s", strings.Join(missing, ", "))
	}
	return groups, nil
}

// Form returns a copy of the definition backing the validator.
func (v *StepValidator) Form() model.FormModel {
	return v.form.Clone()
}

// Groups returns a copy of the step groups.
func (v *StepValidator) Groups() StepFieldGroups {
	return cloneGroups(v.groups)
}

// Validate checks the fields owned by step. On the last step a passing group
// is followed by a whole-form pass so nothing stale from earlier steps is
// committed.
func (v *StepValidator) Validate(step StepIndex, values FormValues) (Result, error) {
	if int(step) < 0 || int(step) > v.form.LastStep() {
		return Result{}, fmt.Errorf("%w: %d", ErrStepOutOfRange, step)
	}

	errs, err := v.check(v.form.Steps[step].Fields, values)
	if err != nil {
		return Result{}, err
	}
	if len(errs) == 0 && int(step) == v.form.LastStep() {
		for _, earlier := range v.form.Steps {
			if errs, err = v.collect(errs, earlier.Fields, values); err != nil {
				return Result{}, err
			}
		}
	}

	if len(errs) > 0 {
		return Result{Errors: errs}, nil
	}
	accepted := values
	return Result{Accepted: &accepted, Errors: ErrorMap{}}, nil
}

func (v *StepValidator) check(fields []model.Field, values FormValues) (ErrorMap, error) {
	return v.collect(ErrorMap{}, fields, values)
}

func (v *StepValidator) collect(dest ErrorMap, fields []model.Field, values FormValues) (ErrorMap, error) {
	for _, field := range fields {
		value, _ := values.Get(field.Name)
		issue, failed, err := validation.Evaluate(field, value)
		if err != nil {
			return nil, fmt.Errorf("wizard: %w", err)
		}
		if failed {
			dest[field.Name] = FieldError{Kind: ErrorKind(issue.Kind), Message: issue.Message}
		}
	}
	return dest, nil
}

func cloneGroups(in StepFieldGroups) StepFieldGroups {
	out := make(StepFieldGroups, len(in))
	for step, names := range in {
		out[step] = append([]string(nil), names...)
	}
	return out
}
