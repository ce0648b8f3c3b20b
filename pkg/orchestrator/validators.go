package orchestrator

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const (
	// ValidatorRules checks values against the field rule table.
	ValidatorRules = "rules"
	// ValidatorSchema checks values against the generated OpenAPI schemas.
	ValidatorSchema = "schema"
)

// ValidatorFactory builds a step validator for a form definition.
type ValidatorFactory func(form model.FormModel) (wizard.Validator, error)

// RuleValidator builds the rule-table validator.
func RuleValidator(form model.FormModel) (wizard.Validator, error) {
	return wizard.NewStepValidator(form)
}

// SchemaValidator builds the kin-openapi backed validator.
func SchemaValidator(form model.FormModel) (wizard.Validator, error) {
	return schema.NewValidator(form)
}

// ValidatorFor resolves a validator factory by name. An empty name selects
// the rule table.
func ValidatorFor(name string) (ValidatorFactory, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ValidatorRules:
		return RuleValidator, nil
	case ValidatorSchema:
		return SchemaValidator, nil
	default:
		return nil, fmt.Errorf("orchestrator: unknown validator %q", name)
	}
}
