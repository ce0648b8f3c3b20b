package formdef

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
)

var _ model.Decorator = Overlay{}

// Apply returns a decorated copy of form. The input is left untouched.
func (o Overlay) Apply(form model.FormModel) (model.FormModel, error) {
	return model.Decorate(form, o)
}

// Decorate applies the overlay in place. Steps or fields the form does not
// declare, and messages for rules the field does not have, are errors.
func (o Overlay) Decorate(form *model.FormModel) error {
	if form == nil {
		return fmt.Errorf("formdef: form is nil")
	}

	if v := strings.TrimSpace(o.Form.Title); v != "" {
		form.Title = v
	}
	if v := strings.TrimSpace(o.Form.Description); v != "" {
		form.Description = SanitizeDescription(v)
	}
	if v := strings.TrimSpace(o.Form.Action); v != "" {
		if !strings.HasPrefix(v, "/") {
			return fmt.Errorf("formdef: form action %q must be an absolute path", v)
		}
		form.Action = v
	}

	for _, idx := range sortedSteps(o.Steps) {
		if idx < 0 || idx >= len(form.Steps) {
			return fmt.Errorf("formdef: step %d not in form %q", idx, form.ID)
		}
		if v := strings.TrimSpace(o.Steps[idx].Title); v != "" {
			form.Steps[idx].Title = v
		}
	}

	for name, cfg := range o.Fields {
		field, ok := lookupField(form, name)
		if !ok {
			return fmt.Errorf("formdef: field %q not in form %q", name, form.ID)
		}
		if err := applyField(field, cfg); err != nil {
			return err
		}
	}
	return nil
}

func applyField(field *model.Field, cfg FieldOverlay) error {
	if v := strings.TrimSpace(cfg.Label); v != "" {
		field.Label = v
	}
	if v := strings.TrimSpace(cfg.Placeholder); v != "" {
		field.Placeholder = v
	}
	if v := strings.TrimSpace(cfg.Description); v != "" {
		field.Description = SanitizeDescription(v)
	}
	for kind, message := range cfg.Messages {
		matched := false
		for i := range field.Validations {
			if field.Validations[i].Kind == kind {
				field.Validations[i].Message = strings.TrimSpace(message)
				matched = true
			}
		}
		if !matched {
			return fmt.Errorf("formdef: field %q has no %s rule", field.Name, kind)
		}
	}
	return nil
}

func lookupField(form *model.FormModel, name string) (*model.Field, bool) {
	for s := range form.Steps {
		for f := range form.Steps[s].Fields {
			if form.Steps[s].Fields[f].Name == name {
				return &form.Steps[s].Fields[f], true
			}
		}
	}
	return nil, false
}

func sortedSteps(steps map[int]StepOverlay) []int {
	out := make([]int, 0, len(steps))
	for idx := range steps {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}
