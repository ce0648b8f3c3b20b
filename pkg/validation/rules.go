package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// Issue describes the first rule a field value failed.
type Issue struct {
	Kind    string `json:"type"`
	Message string `json:"message"`
}

var patterns sync.Map // map[string]*regexp.Regexp

// Evaluate runs the field's rules in declaration order and returns the first
// failure. The boolean reports whether an issue was found.
func Evaluate(field model.Field, value string) (Issue, bool, error) {
	for _, rule := range field.Validations {
		ok, err := Check(rule, value)
		if err != nil {
			return Issue{}, false, fmt.Errorf("validation: field %q: %w", field.Name, err)
		}
		if !ok {
			return Issue{Kind: rule.Kind, Message: MessageFor(field, rule)}, true, nil
		}
	}
	return Issue{}, false, nil
}

// Check evaluates a single rule against value.
func Check(rule model.ValidationRule, value string) (bool, error) {
	switch rule.Kind {
	case model.ValidationRuleRequired:
		return value != "", nil
	case model.ValidationRuleMinLength:
		n, err := Threshold(rule)
		if err != nil {
			return false, err
		}
		return Length(value) >= n, nil
	case model.ValidationRuleMaxLength:
		n, err := Threshold(rule)
		if err != nil {
			return false, err
		}
		return Length(value) <= n, nil
	case model.ValidationRulePattern:
		re, err := compile(rule.Params["pattern"])
		if err != nil {
			return false, err
		}
		return re.MatchString(value), nil
	default:
		return false, fmt.Errorf("unknown rule kind %q", rule.Kind)
	}
}

// MessageFor returns the rule message, falling back to a generic sentence
// built from the field label.
func MessageFor(field model.Field, rule model.ValidationRule) string {
	if msg := strings.TrimSpace(rule.Message); msg != "" {
		return msg
	}
	label := field.Label
	if label == "" {
		label = field.Name
	}
	switch rule.Kind {
	case model.ValidationRuleRequired:
		return label + " is required"
	case model.ValidationRuleMinLength:
		return fmt.Sprintf("%s must include at least %s characters", label, rule.Params["value"])
	case model.ValidationRuleMaxLength:
		return fmt.Sprintf("%s must include at most %s characters", label, rule.Params["value"])
	case model.ValidationRulePattern:
		return label + " is invalid"
	default:
		return label + " is invalid"
	}
}

// Length counts UTF-16 code units, the unit browsers and JSON Schema use for
// string length limits.
func Length(value string) int {
	n := 0
	for _, r := range value {
		if utf16.RuneLen(r) == 2 {
			n += 2
			continue
		}
		n++
	}
	return n
}

// Threshold parses the length limit of a minLength or maxLength rule.
func Threshold(rule model.ValidationRule) (int, error) {
	raw := strings.TrimSpace(rule.Params["value"])
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("rule %s: invalid length %q", rule.Kind, raw)
	}
	return n, nil
}

func compile(expr string) (*regexp.Regexp, error) {
	if cached, ok := patterns.Load(expr); ok {
		return cached.(*regexp.Regexp), nil
	}
	if expr == "" {
		return nil, fmt.Errorf("rule %s: pattern is empty", model.ValidationRulePattern)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", model.ValidationRulePattern, err)
	}
	actual, _ := patterns.LoadOrStore(expr, re)
	return actual.(*regexp.Regexp), nil
}
