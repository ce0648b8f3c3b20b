package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions carry the per-request wizard state a renderer needs. The form
// model stays untouched; everything that changes between requests lives here.
type RenderOptions struct {
	// Step is the zero-based index of the active step.
	Step int
	// Values pre-populates inputs by field name, including fields of steps
	// other than the active one.
	Values map[string]string
	// Errors holds field messages keyed by field name.
	Errors map[string][]string
	// FormErrors holds messages not tied to a field, such as a failed submit.
	FormErrors []string
	// Hidden lists extra hidden inputs (step marker, carried values, CSRF).
	Hidden map[string]string
	// Submitted marks a session whose last step was accepted.
	Submitted bool
	// Submission is the accepted payload shown in the confirmation.
	Submission string
	// AllowBack enables the Back control on steps after the first.
	AllowBack bool
	// Theme supplies tokens, CSS variables and partial overrides.
	Theme *theme.RendererConfig
}

// IsLast reports whether the active step is the last one of a form with
// stepCount steps.
func (o RenderOptions) IsLast(stepCount int) bool {
	return o.Step >= stepCount-1
}

// ShowBack reports whether a Back control should be rendered.
func (o RenderOptions) ShowBack() bool {
	return o.AllowBack && o.Step > 0
}
