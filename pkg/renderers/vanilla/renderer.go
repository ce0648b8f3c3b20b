package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/render"
	rendertemplate "github.com/goliatone/go-formwizard/pkg/render/template"
	"github.com/goliatone/go-formwizard/pkg/render/template/pongo"
)

// Option configures the vanilla renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	inlineCSS        bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithoutInlineStylesheet stops the renderer from inlining the bundled CSS
// when the theme provides no stylesheet URL.
func WithoutInlineStylesheet() Option {
	return func(cfg *config) {
		cfg.inlineCSS = false
	}
}

// Renderer renders the active wizard step as a standalone HTML page.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	inlineCSS bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), inlineCSS: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(pongo.WithFS(cfg.templateFS), pongo.WithExtension(".tmpl"))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &Renderer{templates: renderer, inlineCSS: cfg.inlineCSS}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render renders the page for options.Step: step headers, the active step's
// inputs, the inline error list and the navigation buttons.
func (r *Renderer) Render(_ context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	active, ok := form.Step(options.Step)
	if !ok {
		return nil, fmt.Errorf("vanilla renderer: step %d not in form %q", options.Step, form.ID)
	}

	result, err := r.templates.RenderTemplate(pageTemplate(options.Theme), r.viewData(form, active, options))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) viewData(form model.FormModel, active model.Step, options render.RenderOptions) map[string]any {
	steps := make([]map[string]any, 0, len(form.Steps))
	for _, st := range form.Steps {
		steps = append(steps, map[string]any{
			"index":  st.Index,
			"title":  st.Title,
			"active": st.Index == active.Index,
			"done":   st.Index < active.Index,
		})
	}

	fields := make([]map[string]any, 0, len(active.Fields))
	for _, field := range active.Fields {
		errs := options.Errors[field.Name]
		fields = append(fields, map[string]any{
			"name":        field.Name,
			"id":          controlID(field.Name),
			"error_id":    errorID(field.Name),
			"label":       field.Label,
			"type":        inputType(field),
			"placeholder": field.Placeholder,
			"description": field.Description,
			"value":       options.Values[field.Name],
			"autofocus":   field.Autofocus,
			"required":    field.Required,
			"errors":      errs,
			"invalid":     len(errs) > 0,
		})
	}

	hiddenFields := render.MergeHiddenFields(options.Hidden, render.StepHidden(active.Index))
	hiddenFields = render.MergeHiddenFields(hiddenFields, render.CarryValues(form, active.Index, options.Values)...)
	hidden := make([]map[string]any, 0, len(hiddenFields))
	for _, h := range render.SortedHiddenFields(hiddenFields) {
		hidden = append(hidden, map[string]any{"name": h.Name, "value": h.Value})
	}

	nextLabel := "Next >"
	if options.IsLast(len(form.Steps)) {
		nextLabel = "Submit"
	}

	data := map[string]any{
		"form": map[string]any{
			"id":          form.ID,
			"title":       form.Title,
			"description": form.Description,
			"action":      form.Action,
			"method":      form.Method,
		},
		"steps":      steps,
		"step":       map[string]any{"index": active.Index, "title": active.Title},
		"fields":     fields,
		"hidden":     hidden,
		"errors":     render.ErrorList(form, options.Errors, options.FormErrors),
		"show_back":  options.ShowBack(),
		"next_label": nextLabel,
		"submitted":  options.Submitted,
		"submission": options.Submission,
		"theme":      themeContext(options.Theme),
		"classes":    chromeClasses(),
	}
	if url := stylesheetURL(options.Theme); url != "" {
		data["stylesheet_url"] = url
	} else if r.inlineCSS {
		data["inline_css"] = defaultStylesheet()
	}
	return data
}
