package model_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/model"
)

func TestDefaultForm_StepGroups(t *testing.T) {
	form := model.DefaultForm()
	if err := model.Validate(form); err != nil {
		t.Fatalf("default form invalid: %v", err)
	}

	got := make(map[int][]string)
	for _, step := range form.Steps {
		for _, field := range step.Fields {
			got[step.Index] = append(got[step.Index], field.Name)
		}
	}
	want := map[int][]string{
		0: {"username", "password"},
		1: {"name", "email"},
		2: {"website", "github"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("step groups mismatch (-want +got):\n%s", diff)
	}
	if form.LastStep() != 2 {
		t.Fatalf("expected last step 2, got %d", form.LastStep())
	}
}

func TestDefaultForm_FieldLookup(t *testing.T) {
	form := model.DefaultForm()

	field, step, ok := form.Field("email")
	if !ok {
		t.Fatalf("expected email field")
	}
	if step != 1 || field.Type != model.FieldTypeEmail {
		t.Fatalf("unexpected email field: step=%d type=%s", step, field.Type)
	}
	if _, _, ok := form.Field("missing"); ok {
		t.Fatalf("unexpected lookup hit for missing field")
	}

	password, _, _ := form.Field("password")
	if password.Required {
		t.Fatalf("password has no required rule and should not be flagged required")
	}
}

func TestFormModel_CloneIsDeep(t *testing.T) {
	form := model.DefaultForm()
	clone := form.Clone()
	clone.Steps[0].Fields[1].Validations[0].Params["value"] = "99"
	clone.Steps[0].Title = "changed"

	if got := form.Steps[0].Fields[1].Validations[0].Params["value"]; got != "6" {
		t.Fatalf("clone leaked rule params into original: %s", got)
	}
	if form.Steps[0].Title != "First Step" {
		t.Fatalf("clone leaked step title into original")
	}
}

func TestValidate_RejectsBrokenDefinitions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.FormModel)
		want   string
	}{
		{
			name:   "missing id",
			mutate: func(f *model.FormModel) { f.ID = "" },
			want:   "form id is required",
		},
		{
			name: "duplicate field",
			mutate: func(f *model.FormModel) {
				f.Steps[1].Fields[0].Name = "username"
			},
			want: `field "username" declared in step 0 and step 1`,
		},
		{
			name:   "non contiguous index",
			mutate: func(f *model.FormModel) { f.Steps[2].Index = 5 },
			want:   "expected 2",
		},
		{
			name: "unknown rule",
			mutate: func(f *model.FormModel) {
				f.Steps[0].Fields[0].Validations = []model.ValidationRule{{Kind: "uuid"}}
			},
			want: `unknown rule kind "uuid"`,
		},
		{
			name: "bad pattern",
			mutate: func(f *model.FormModel) {
				f.Steps[1].Fields[1].Validations = []model.ValidationRule{model.Pattern("(", "")}
			},
			want: "rule pattern",
		},
		{
			name: "bad length",
			mutate: func(f *model.FormModel) {
				f.Steps[0].Fields[1].Validations[0].Params["value"] = "six"
			},
			want: `invalid length "six"`,
		},
		{
			name:   "empty step",
			mutate: func(f *model.FormModel) { f.Steps[2].Fields = nil },
			want:   "step 2 has no fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := model.DefaultForm()
			tt.mutate(&form)
			err := model.Validate(form)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}
