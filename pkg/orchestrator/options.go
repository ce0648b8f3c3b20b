package orchestrator

import (
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithForm replaces the default form definition. Field names must still match
// the wizard's value set.
func WithForm(form model.FormModel) Option {
	return func(o *Orchestrator) {
		o.form = form.Clone()
	}
}

// WithDecorators registers decorators, such as copy overlays, that run against
// the form definition once at construction.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithValidatorFactory selects how the step validator is built from the
// decorated form.
func WithValidatorFactory(factory ValidatorFactory) Option {
	return func(o *Orchestrator) {
		if factory != nil {
			o.validatorFactory = factory
		}
	}
}

// WithWizardOptions forwards options to the wizard (sink, observer, back
// navigation). The validator is always the one built by the factory.
func WithWizardOptions(options ...wizard.Option) Option {
	return func(o *Orchestrator) {
		o.wizardOptions = append(o.wizardOptions, options...)
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTheme sets the renderer theme used when a request carries none.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(o *Orchestrator) {
		o.theme = cfg
	}
}

// WithLogger sets the logger shared with the wizard.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}
