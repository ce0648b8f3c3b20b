package schema

import (
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwizard/pkg/model"
)

// OpenAPIVersion is the document version Document emits.
const OpenAPIVersion = "3.0.3"

// ValuesComponent names the whole-form schema in components.
const ValuesComponent = "FormValues"

// StepComponent names the schema component of a step.
func StepComponent(step int) string {
	return fmt.Sprintf("Step%d", step)
}

// Document describes the form as an OpenAPI document: one schema component
// per step, the whole-form values schema and the submit operation accepting
// JSON and url-encoded bodies.
func Document(form model.FormModel, version string) (*openapi3.T, error) {
	if err := model.Validate(form); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	if version == "" {
		version = "0.0.0"
	}
	schemas := openapi3.Schemas{}
	for _, step := range form.Steps {
		s, err := StepSchema(form, step.Index)
		if err != nil {
			return nil, err
		}
		schemas[StepComponent(step.Index)] = openapi3.NewSchemaRef("", s)
	}
	full, err := FullSchema(form)
	if err != nil {
		return nil, err
	}
	schemas[ValuesComponent] = openapi3.NewSchemaRef("", full)

	action := form.Action
	if action == "" {
		action = "/"
	}
	ref := openapi3.NewSchemaRef("#/components/schemas/"+ValuesComponent, full)
	op := openapi3.NewOperation()
	op.OperationID = operationID(form.ID)
	op.Summary = "Submit " + form.Title
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithContent(openapi3.NewContentWithSchemaRef(ref, []string{
				"application/json",
				"application/x-www-form-urlencoded",
			})),
	}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Step accepted or form submitted"),
		}),
		openapi3.WithStatus(http.StatusUnprocessableEntity, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Validation errors for the active step"),
		}),
	)

	item := &openapi3.PathItem{}
	switch strings.ToUpper(form.Method) {
	case "", http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	default:
		return nil, fmt.Errorf("schema: unsupported submit method %q", form.Method)
	}

	return &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:       form.Title,
			Description: form.Description,
			Version:     version,
		},
		Paths: openapi3.NewPaths(openapi3.WithPath(action, item)),
		Components: &openapi3.Components{
			Schemas: schemas,
		},
	}, nil
}

func operationID(formID string) string {
	var b strings.Builder
	b.WriteString("submit")
	upper := true
	for _, r := range formID {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
