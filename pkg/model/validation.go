package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	errFormIDMissing = errors.New("model: form id is required")
	errStepsMissing  = errors.New("model: form requires at least one step")
)

// Validate checks the definition invariants: every field has a unique name and
// belongs to exactly one step, step indexes are contiguous from zero, and every
// rule is known and carries parseable parameters.
func Validate(form FormModel) error {
	if strings.TrimSpace(form.ID) == "" {
		return errFormIDMissing
	}
	if len(form.Steps) == 0 {
		return errStepsMissing
	}

	seen := make(map[string]int)
	for i, step := range form.Steps {
		if step.Index != i {
			return fmt.Errorf("model: step %q has index %d, expected %d", step.Title, step.Index, i)
		}
		if len(step.Fields) == 0 {
			return fmt.Errorf("model: step %d has no fields", i)
		}
		for _, field := range step.Fields {
			name := strings.TrimSpace(field.Name)
			if name == "" {
				return fmt.Errorf("model: step %d declares a field without a name", i)
			}
			if owner, exists := seen[name]; exists {
				return fmt.Errorf("model: field %q declared in step %d and step %d", name, owner, i)
			}
			seen[name] = i
			for _, rule := range field.Validations {
				if err := validateRule(rule); err != nil {
					return fmt.Errorf("model: field %q: %w", name, err)
				}
			}
		}
	}
	return nil
}

func validateRule(rule ValidationRule) error {
	switch rule.Kind {
	case ValidationRuleRequired:
		return nil
	case ValidationRuleMinLength, ValidationRuleMaxLength:
		raw := strings.TrimSpace(rule.Params["value"])
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("rule %s: invalid length %q", rule.Kind, raw)
		}
		if n < 0 {
			return fmt.Errorf("rule %s: negative length %d", rule.Kind, n)
		}
		return nil
	case ValidationRulePattern:
		expr := rule.Params["pattern"]
		if expr == "" {
			return fmt.Errorf("rule %s: pattern is empty", rule.Kind)
		}
		if _, err := regexp.Compile(expr); err != nil {
			return fmt.Errorf("rule %s: %w", rule.Kind, err)
		}
		return nil
	default:
		return fmt.Errorf("unknown rule kind %q", rule.Kind)
	}
}
