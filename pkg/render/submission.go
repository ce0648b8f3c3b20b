package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// Names of the control inputs every wizard page posts back.
const (
	StepFieldName   = "_step"
	ActionFieldName = "_action"
)

// HiddenField represents a hidden form input emitted alongside the active
// step's inputs.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// StepHidden marks which step a posted page belongs to.
func StepHidden(step int) HiddenField {
	return Hidden(StepFieldName, strconv.Itoa(step))
}

// CarryValues returns hidden inputs for the non-empty values of every field
// outside the active step, in form order. Posting them back keeps the whole
// wizard state in the page.
func CarryValues(form model.FormModel, step int, values map[string]string) []HiddenField {
	var out []HiddenField
	for _, st := range form.Steps {
		if st.Index == step {
			continue
		}
		for _, field := range st.Fields {
			value := values[field.Name]
			if value == "" {
				continue
			}
			out = append(out, HiddenField{Name: field.Name, Value: value})
		}
	}
	return out
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields normalises and sorts hidden fields for deterministic
// rendering. Empty names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	clean := make(map[string]string, len(fields))
	for name, value := range fields {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		if _, seen := clean[key]; !seen {
			names = append(names, key)
		}
		clean[key] = value
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: clean[name]})
	}
	return result
}
