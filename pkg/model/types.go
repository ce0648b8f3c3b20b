package model

// FieldType is the input kind a renderer should use for a field.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypePassword FieldType = "password"
	FieldTypeEmail    FieldType = "email"
)

const (
	ValidationRuleRequired  = "required"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// ValidationRule represents a single validation constraint applied to a field.
// Length limits encode their threshold in Params["value"] while pattern rules
// keep the expression in Params["pattern"]. Message is the text surfaced to the
// user when the rule fails; an empty message falls back to a generic one.
type ValidationRule struct {
	Kind    string            `json:"kind" yaml:"kind"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty"`
}

// Field models a single input inside a wizard step.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Autofocus   bool              `json:"autofocus,omitempty"`
	Required    bool              `json:"required"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Step groups the fields the user completes together before advancing.
type Step struct {
	Index  int     `json:"index"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// FormModel is the top-level wizard definition consumed by validators and
// renderers alike.
type FormModel struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Action      string            `json:"action"`
	Method      string            `json:"method"`
	Description string            `json:"description,omitempty"`
	Steps       []Step            `json:"steps"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// LastStep returns the index of the terminal (submit) step, or -1 when the
// form has no steps.
func (f FormModel) LastStep() int {
	return len(f.Steps) - 1
}

// Step returns the step at index.
func (f FormModel) Step(index int) (Step, bool) {
	if index < 0 || index >= len(f.Steps) {
		return Step{}, false
	}
	return f.Steps[index], true
}

// Field looks a field up by name across all steps and reports the step that
// owns it.
func (f FormModel) Field(name string) (Field, int, bool) {
	for _, step := range f.Steps {
		for _, field := range step.Fields {
			if field.Name == name {
				return field, step.Index, true
			}
		}
	}
	return Field{}, -1, false
}

// FieldNames lists every field name in step order.
func (f FormModel) FieldNames() []string {
	var names []string
	for _, step := range f.Steps {
		for _, field := range step.Fields {
			names = append(names, field.Name)
		}
	}
	return names
}

// Clone returns a deep copy so decorators can mutate the result freely.
func (f FormModel) Clone() FormModel {
	out := f
	out.Metadata = cloneStrings(f.Metadata)
	out.Steps = make([]Step, len(f.Steps))
	for i, step := range f.Steps {
		copied := step
		copied.Fields = make([]Field, len(step.Fields))
		for j, field := range step.Fields {
			copied.Fields[j] = field.clone()
		}
		out.Steps[i] = copied
	}
	return out
}

func (f Field) clone() Field {
	out := f
	out.Metadata = cloneStrings(f.Metadata)
	if len(f.Validations) > 0 {
		out.Validations = make([]ValidationRule, len(f.Validations))
		for i, rule := range f.Validations {
			rule.Params = cloneStrings(rule.Params)
			out.Validations[i] = rule
		}
	}
	return out
}

func cloneStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
