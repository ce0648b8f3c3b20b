package wizard

import (
	"errors"
	"sort"
)

var (
	// ErrStepOutOfRange is returned when a step index is outside the form.
	ErrStepOutOfRange = errors.New("wizard: step out of range")
	// ErrSubmitFailed wraps failures reported by the submission sink.
	ErrSubmitFailed = errors.New("wizard: submit failed")
	// ErrBackDisabled is returned when a back action reaches a wizard built
	// without back navigation.
	ErrBackDisabled = errors.New("wizard: back navigation disabled")
	// ErrUnknownAction is returned for actions other than next and back.
	ErrUnknownAction = errors.New("wizard: unknown action")
)

// ErrorKind tags why a field failed validation.
type ErrorKind string

const (
	ErrorKindRequired  ErrorKind = "required"
	ErrorKindMinLength ErrorKind = "minLength"
	ErrorKindMaxLength ErrorKind = "maxLength"
	ErrorKindPattern   ErrorKind = "pattern"
)

// FieldError is the structured failure reported for a single field.
type FieldError struct {
	Kind    ErrorKind `json:"type"`
	Message string    `json:"message"`
}

// ErrorMap maps field names to their validation failure. An empty map means
// the validated step passed.
type ErrorMap map[string]FieldError

// Fields returns the failing field names ordered by order; names missing from
// order are appended alphabetically.
func (m ErrorMap) Fields(order []string) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	seen := make(map[string]struct{}, len(m))
	for _, name := range order {
		if _, ok := m[name]; ok {
			out = append(out, name)
			seen[name] = struct{}{}
		}
	}
	var rest []string
	for name := range m {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// Messages returns the error messages in field order, ready for an inline
// error list.
func (m ErrorMap) Messages(order []string) []string {
	fields := m.Fields(order)
	if len(fields) == 0 {
		return nil
	}
	out := make([]string, 0, len(fields))
	for _, name := range fields {
		out = append(out, m[name].Message)
	}
	return out
}

// FieldMessages converts the map into the per-field message lists renderers
// consume.
func (m ErrorMap) FieldMessages() map[string][]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string][]string, len(m))
	for name, fieldErr := range m {
		out[name] = []string{fieldErr.Message}
	}
	return out
}

func (m ErrorMap) clone() ErrorMap {
	if m == nil {
		return nil
	}
	out := make(ErrorMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
