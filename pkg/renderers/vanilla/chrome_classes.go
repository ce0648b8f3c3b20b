package vanilla

// ChromeClass is a typed identifier for the CSS classes the page chrome uses.
type ChromeClass string

const (
	ClassContainer    ChromeClass = "fw-container"
	ClassDescription  ChromeClass = "fw-description"
	ClassSteps        ChromeClass = "fw-steps"
	ClassStep         ChromeClass = "fw-step"
	ClassStepActive   ChromeClass = "fw-step--active"
	ClassStepDone     ChromeClass = "fw-step--done"
	ClassForm         ChromeClass = "fw-form"
	ClassFieldset     ChromeClass = "fw-fieldset"
	ClassField        ChromeClass = "fw-field"
	ClassFieldInvalid ChromeClass = "fw-field--invalid"
	ClassFieldError   ChromeClass = "fw-field-error"
	ClassErrors       ChromeClass = "fw-errors"
	ClassActions      ChromeClass = "fw-actions"
	ClassConfirmation ChromeClass = "fw-confirmation"
)

func chromeClasses() map[string]any {
	return map[string]any{
		"container":     string(ClassContainer),
		"description":   string(ClassDescription),
		"steps":         string(ClassSteps),
		"step":          string(ClassStep),
		"step_active":   string(ClassStepActive),
		"step_done":     string(ClassStepDone),
		"form":          string(ClassForm),
		"fieldset":      string(ClassFieldset),
		"field":         string(ClassField),
		"field_invalid": string(ClassFieldInvalid),
		"field_error":   string(ClassFieldError),
		"errors":        string(ClassErrors),
		"actions":       string(ClassActions),
		"confirmation":  string(ClassConfirmation),
	}
}
