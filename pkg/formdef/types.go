package formdef

// Overlay is the merged content of one or more overlay files.
type Overlay struct {
	Form   FormOverlay             `json:"form" yaml:"form"`
	Steps  map[int]StepOverlay     `json:"steps" yaml:"steps"`
	Fields map[string]FieldOverlay `json:"fields" yaml:"fields"`

	sources map[string]string
}

// FormOverlay overrides form-level copy.
type FormOverlay struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Action      string `json:"action" yaml:"action"`
}

// StepOverlay overrides a step title.
type StepOverlay struct {
	Title string `json:"title" yaml:"title"`
}

// FieldOverlay overrides field copy. Messages are keyed by rule kind.
type FieldOverlay struct {
	Label       string            `json:"label" yaml:"label"`
	Placeholder string            `json:"placeholder" yaml:"placeholder"`
	Description string            `json:"description" yaml:"description"`
	Messages    map[string]string `json:"messages" yaml:"messages"`
}

// Empty reports whether the overlay changes nothing.
func (o Overlay) Empty() bool {
	return o.Form == (FormOverlay{}) && len(o.Steps) == 0 && len(o.Fields) == 0
}
