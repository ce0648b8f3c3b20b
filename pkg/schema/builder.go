package schema

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

// FieldSchema converts a field's rule table into a string schema. A required
// rule becomes minLength 1 so an empty string fails the same way it does in
// the rule engine.
func FieldSchema(field model.Field) (*openapi3.Schema, error) {
	s := openapi3.NewStringSchema()
	s.Title = field.Label
	s.Description = field.Description
	switch field.Type {
	case model.FieldTypePassword:
		s.Format = "password"
	case model.FieldTypeEmail:
		s.Format = "email"
	}

	minLength := uint64(0)
	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleRequired:
			if minLength < 1 {
				minLength = 1
			}
		case model.ValidationRuleMinLength:
			n, err := validation.Threshold(rule)
			if err != nil {
				return nil, fmt.Errorf("schema: field %q: %w", field.Name, err)
			}
			if uint64(n) > minLength {
				minLength = uint64(n)
			}
		case model.ValidationRuleMaxLength:
			n, err := validation.Threshold(rule)
			if err != nil {
				return nil, fmt.Errorf("schema: field %q: %w", field.Name, err)
			}
			s.WithMaxLength(int64(n))
		case model.ValidationRulePattern:
			s.WithPattern(rule.Params["pattern"])
		default:
			return nil, fmt.Errorf("schema: field %q: unknown rule kind %q", field.Name, rule.Kind)
		}
	}
	if minLength > 0 {
		s.WithMinLength(int64(minLength))
	}
	return s, nil
}

// StepSchema builds the object schema for the fields of one step.
func StepSchema(form model.FormModel, step int) (*openapi3.Schema, error) {
	st, ok := form.Step(step)
	if !ok {
		return nil, fmt.Errorf("schema: step %d not found", step)
	}
	s, err := objectSchema(st.Fields)
	if err != nil {
		return nil, err
	}
	s.Title = st.Title
	return s, nil
}

// FullSchema builds the object schema covering every step.
func FullSchema(form model.FormModel) (*openapi3.Schema, error) {
	var fields []model.Field
	for _, step := range form.Steps {
		fields = append(fields, step.Fields...)
	}
	s, err := objectSchema(fields)
	if err != nil {
		return nil, err
	}
	s.Title = form.Title
	s.Description = form.Description
	return s, nil
}

func objectSchema(fields []model.Field) (*openapi3.Schema, error) {
	s := openapi3.NewObjectSchema()
	required := make([]string, 0, len(fields))
	for _, field := range fields {
		prop, err := FieldSchema(field)
		if err != nil {
			return nil, err
		}
		s.WithProperty(field.Name, prop)
		required = append(required, field.Name)
	}
	s.WithRequired(required)
	return s, nil
}
