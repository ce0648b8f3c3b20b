// Package testsupport holds fixtures shared by the validator test suites.
package testsupport

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

//go:embed testdata/validation_cases.json
var validationCases []byte

// ValidationCase is one expected outcome of validating values at a step.
type ValidationCase struct {
	Name     string            `json:"name"`
	Step     wizard.StepIndex  `json:"step"`
	Values   wizard.FormValues `json:"values"`
	Errors   wizard.ErrorMap   `json:"errors"`
	Accepted bool              `json:"accepted"`
}

// LoadValidationCases decodes the shared validation table.
func LoadValidationCases() ([]ValidationCase, error) {
	var out []ValidationCase
	if err := json.Unmarshal(validationCases, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal validation cases: %w", err)
	}
	return out, nil
}

// MustValidationCases loads the shared validation table or fails the test.
func MustValidationCases(t *testing.T) []ValidationCase {
	t.Helper()

	cases, err := LoadValidationCases()
	if err != nil {
		t.Fatalf("load validation cases: %v", err)
	}
	return cases
}

// CheckValidator runs every shared case against v.
func CheckValidator(t *testing.T, v wizard.Validator) {
	t.Helper()

	for _, tc := range MustValidationCases(t) {
		result, err := v.Validate(tc.Step, tc.Values)
		if err != nil {
			t.Fatalf("%s: validate: %v", tc.Name, err)
		}
		if got := result.Accepted != nil; got != tc.Accepted {
			t.Fatalf("%s: accepted = %v, want %v", tc.Name, got, tc.Accepted)
		}
		if tc.Accepted && *result.Accepted != tc.Values {
			t.Fatalf("%s: accepted values differ from input", tc.Name)
		}
		want := tc.Errors
		if want == nil {
			want = wizard.ErrorMap{}
		}
		got := result.Errors
		if got == nil {
			got = wizard.ErrorMap{}
		}
		if len(want) != len(got) {
			t.Fatalf("%s: errors = %v, want %v", tc.Name, got, want)
		}
		for field, fieldErr := range want {
			if got[field] != fieldErr {
				t.Fatalf("%s: %s error = %+v, want %+v", tc.Name, field, got[field], fieldErr)
			}
		}
	}
}
