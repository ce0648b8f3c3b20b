package schema

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/validation"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Validator checks step values against the generated OpenAPI schemas instead
// of the rule table. Keyword failures are mapped back onto the field rules so
// it reports the same kinds and messages as wizard.StepValidator.
//
// kin-openapi counts string lengths in code points, so length keywords are
// re-evaluated in UTF-16 units before they are reported.
type Validator struct {
	form   model.FormModel
	groups wizard.StepFieldGroups
	steps  []*openapi3.Schema
	full   *openapi3.Schema
}

var _ wizard.Validator = (*Validator)(nil)

// NewValidator compiles the step and whole-form schemas of form.
func NewValidator(form model.FormModel) (*Validator, error) {
	groups, err := wizard.GroupsOf(form)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	v := &Validator{form: form.Clone(), groups: groups}
	for _, step := range form.Steps {
		s, err := StepSchema(form, step.Index)
		if err != nil {
			return nil, err
		}
		v.steps = append(v.steps, s)
	}
	if v.full, err = FullSchema(form); err != nil {
		return nil, err
	}
	return v, nil
}

// Groups returns the step field groups.
func (v *Validator) Groups() wizard.StepFieldGroups {
	out := make(wizard.StepFieldGroups, len(v.groups))
	for step, names := range v.groups {
		out[step] = append([]string(nil), names...)
	}
	return out
}

// Validate runs the step schema and, on the last step, the whole-form schema.
func (v *Validator) Validate(step wizard.StepIndex, values wizard.FormValues) (wizard.Result, error) {
	if int(step) < 0 || int(step) >= len(v.steps) {
		return wizard.Result{}, fmt.Errorf("%w: %d", wizard.ErrStepOutOfRange, step)
	}

	errs, err := v.visit(v.steps[step], v.form.Steps[step].Fields, values)
	if err != nil {
		return wizard.Result{}, err
	}
	if len(errs) == 0 && int(step) == len(v.steps)-1 {
		var all []model.Field
		for _, st := range v.form.Steps {
			all = append(all, st.Fields...)
		}
		if errs, err = v.visit(v.full, all, values); err != nil {
			return wizard.Result{}, err
		}
	}

	if len(errs) > 0 {
		return wizard.Result{Errors: errs}, nil
	}
	accepted := values
	return wizard.Result{Accepted: &accepted, Errors: wizard.ErrorMap{}}, nil
}

func (v *Validator) visit(s *openapi3.Schema, fields []model.Field, values wizard.FormValues) (wizard.ErrorMap, error) {
	doc := make(map[string]any, len(wizard.FieldNames))
	for name, value := range values.Map() {
		doc[name] = value
	}

	errs := wizard.ErrorMap{}
	err := s.VisitJSON(doc, openapi3.MultiErrors())
	if err == nil {
		return errs, nil
	}

	var list []error
	switch e := err.(type) {
	case openapi3.MultiError:
		list = e
	default:
		list = []error{e}
	}

	failed := map[string]map[string]bool{}
	for _, item := range list {
		se, ok := item.(*openapi3.SchemaError)
		if !ok {
			return nil, fmt.Errorf("schema: validate values: %w", item)
		}
		path := se.JSONPointer()
		if len(path) == 0 {
			return nil, fmt.Errorf("schema: validate values: %w", se)
		}
		if failed[path[0]] == nil {
			failed[path[0]] = map[string]bool{}
		}
		failed[path[0]][se.SchemaField] = true
	}

	for _, field := range fields {
		value, _ := values.Get(field.Name)
		keywords, err := recountLengths(field, failed[field.Name], value)
		if err != nil {
			return nil, err
		}
		if len(keywords) == 0 {
			continue
		}
		rule, ok := matchRule(field, keywords, value)
		if !ok {
			return nil, fmt.Errorf("schema: field %q failed without a matching rule", field.Name)
		}
		errs[field.Name] = wizard.FieldError{
			Kind:    wizard.ErrorKind(rule.Kind),
			Message: validation.MessageFor(field, rule),
		}
	}
	return errs, nil
}

// recountLengths replaces kin's minLength and maxLength verdicts with the
// rule table's UTF-16 counts. Empty values count the same either way.
func recountLengths(field model.Field, keywords map[string]bool, value string) (map[string]bool, error) {
	if value == "" {
		return keywords, nil
	}
	out := make(map[string]bool, len(keywords))
	for kw, v := range keywords {
		if kw == model.ValidationRuleMinLength || kw == model.ValidationRuleMaxLength {
			continue
		}
		out[kw] = v
	}
	for _, rule := range field.Validations {
		if rule.Kind != model.ValidationRuleMinLength && rule.Kind != model.ValidationRuleMaxLength {
			continue
		}
		ok, err := validation.Check(rule, value)
		if err != nil {
			return nil, fmt.Errorf("schema: field %q: %w", field.Name, err)
		}
		if !ok {
			out[rule.Kind] = true
		}
	}
	return out, nil
}

// matchRule returns the first rule, in declaration order, that explains one
// of the failed keywords.
func matchRule(field model.Field, keywords map[string]bool, value string) (model.ValidationRule, bool) {
	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleRequired:
			if value == "" && (keywords["minLength"] || keywords["required"]) {
				return rule, true
			}
		case model.ValidationRuleMinLength, model.ValidationRuleMaxLength, model.ValidationRulePattern:
			if keywords[rule.Kind] {
				return rule, true
			}
		}
	}
	return model.ValidationRule{}, false
}
