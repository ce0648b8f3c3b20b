package schema_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/testsupport"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func TestFieldSchema_MapsRules(t *testing.T) {
	field := model.Field{
		Name: "handle",
		Type: model.FieldTypeText,
		Validations: []model.ValidationRule{
			model.Required("Handle is required"),
			model.MinLength(3, ""),
			model.MaxLength(12, ""),
			model.Pattern(`^[a-z]+$`, ""),
		},
	}
	s, err := schema.FieldSchema(field)
	if err != nil {
		t.Fatalf("field schema: %v", err)
	}
	if s.MinLength != 3 {
		t.Fatalf("expected minLength 3, got %d", s.MinLength)
	}
	if s.MaxLength == nil || *s.MaxLength != 12 {
		t.Fatalf("expected maxLength 12, got %v", s.MaxLength)
	}
	if s.Pattern != `^[a-z]+$` {
		t.Fatalf("unexpected pattern %q", s.Pattern)
	}

	s, err = schema.FieldSchema(model.Field{Name: "x", Validations: []model.ValidationRule{model.Required("")}})
	if err != nil {
		t.Fatalf("field schema: %v", err)
	}
	if s.MinLength != 1 {
		t.Fatalf("required should become minLength 1, got %d", s.MinLength)
	}
}

func TestStepSchema_ListsOnlyStepFields(t *testing.T) {
	s, err := schema.StepSchema(model.DefaultForm(), 1)
	if err != nil {
		t.Fatalf("step schema: %v", err)
	}
	var names []string
	for name := range s.Properties {
		names = append(names, name)
	}
	if len(names) != 2 || s.Properties["name"] == nil || s.Properties["email"] == nil {
		t.Fatalf("unexpected properties %v", names)
	}
	if diff := cmp.Diff([]string{"name", "email"}, s.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	if _, err := schema.StepSchema(model.DefaultForm(), 5); err == nil {
		t.Fatalf("expected error for missing step")
	}
}

func TestDocument_IsValidOpenAPI(t *testing.T) {
	doc, err := schema.Document(model.DefaultForm(), "1.0.0")
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("document does not validate: %v", err)
	}

	for _, name := range []string{"Step0", "Step1", "Step2", schema.ValuesComponent} {
		if doc.Components.Schemas[name] == nil {
			t.Fatalf("missing component %s", name)
		}
	}
	item := doc.Paths.Find("/")
	if item == nil || item.Post == nil {
		t.Fatalf("expected POST / operation")
	}
	if item.Post.OperationID != "submitStepper" {
		t.Fatalf("unexpected operation id %q", item.Post.OperationID)
	}
	content := item.Post.RequestBody.Value.Content
	if content.Get("application/json") == nil || content.Get("application/x-www-form-urlencoded") == nil {
		t.Fatalf("expected json and form content types")
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"$ref":"#/components/schemas/FormValues"`) {
		t.Fatalf("expected request body to reference FormValues: %s", raw)
	}
}

func TestValidator_MatchesRuleEngine(t *testing.T) {
	rules := wizard.DefaultValidator()
	schemaValidator, err := schema.NewValidator(model.DefaultForm())
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	inputs := []wizard.FormValues{
		{},
		{Username: "a", Password: "12345"},
		{Username: "a", Password: "123456"},
		{Name: "Bob", Email: "not-an-email"},
		{Name: "Bob", Email: "bob@example.com"},
		{Username: "ada", Password: "short", Name: "Ada", Email: "nope", Website: "w", Github: "g"},
		{Username: "ada", Password: "lovelace", Name: "Ada", Email: "ada@example.com", Website: "w", Github: "g"},
		{Username: "  ", Password: "      "},
	}
	for step := wizard.StepFirst; step <= wizard.StepLast; step++ {
		for _, values := range inputs {
			want, err := rules.Validate(step, values)
			if err != nil {
				t.Fatalf("rules: %v", err)
			}
			got, err := schemaValidator.Validate(step, values)
			if err != nil {
				t.Fatalf("schema: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("step %d values %+v (-rules +schema):\n%s", step, values, diff)
			}
		}
	}
}

func TestValidator_StepOutOfRange(t *testing.T) {
	v, err := schema.NewValidator(model.DefaultForm())
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	if _, err := v.Validate(3, wizard.FormValues{}); err == nil {
		t.Fatalf("expected out of range error")
	}
	if diff := cmp.Diff(wizard.DefaultValidator().Groups(), v.Groups()); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestValidator_SharedCases(t *testing.T) {
	v, err := schema.NewValidator(model.DefaultForm())
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	testsupport.CheckValidator(t, v)
}
