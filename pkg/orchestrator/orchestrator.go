package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const defaultRendererName = "vanilla"

// SubmitFailedMessage is shown as a form-level error when the sink rejects an
// accepted submission.
const SubmitFailedMessage = "Submission failed, please try again."

// Orchestrator coordinates a wizard transition and the rendering of the
// resulting step. It holds no per-session state and is safe for concurrent
// use once constructed.
type Orchestrator struct {
	form             model.FormModel
	decorators       []model.Decorator
	validatorFactory ValidatorFactory
	wizardOptions    []wizard.Option
	registry         *render.Registry
	defaultRenderer  string
	theme            *theme.RendererConfig
	logger           *slog.Logger

	wizard        *wizard.Wizard
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies fall back to the default form, the rule-table validator and
// the vanilla renderer. Construction errors surface from Err and from every
// Handle or Render call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		form:             model.DefaultForm(),
		validatorFactory: RuleValidator,
		defaultRenderer:  defaultRendererName,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.initialiseErr = o.applyDefaults()
	return o
}

// Err reports a construction failure.
func (o *Orchestrator) Err() error {
	return o.initialiseErr
}

// Form returns a copy of the decorated form definition.
func (o *Orchestrator) Form() model.FormModel {
	return o.form.Clone()
}

// Wizard returns the wizard driving transitions.
func (o *Orchestrator) Wizard() *wizard.Wizard {
	return o.wizard
}

// Request describes one user interaction with the wizard.
type Request struct {
	// Session is the state the client carried into this request.
	Session wizard.Session
	// Action is applied by Handle; Render ignores it.
	Action wizard.Action
	// Values are the form values currently held by the client.
	Values wizard.FormValues
	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string
	// Hidden lists extra hidden inputs such as a CSRF token.
	Hidden map[string]string
	// Theme overrides the configured renderer theme for this request.
	Theme *theme.RendererConfig
}

// Response carries the next session and the rendered step.
type Response struct {
	Session     wizard.Session
	Transition  wizard.Transition
	Body        []byte
	ContentType string
	// SubmitErr is set when the sink rejected the submission. The page is
	// still rendered with a form-level message.
	SubmitErr error
}

// Handle applies req.Action to req.Session and renders the resulting step.
func (o *Orchestrator) Handle(ctx context.Context, req Request) (Response, error) {
	if err := o.ready(ctx); err != nil {
		return Response{}, err
	}

	next, transition, err := o.wizard.Apply(ctx, req.Session, req.Action, req.Values)
	resp := Response{Session: next, Transition: transition}
	var formErrors []string
	if err != nil {
		if !errors.Is(err, wizard.ErrSubmitFailed) {
			return Response{}, fmt.Errorf("orchestrator: apply %s: %w", req.Action, err)
		}
		resp.SubmitErr = err
		formErrors = append(formErrors, SubmitFailedMessage)
	}

	if err := o.renderInto(ctx, &resp, req, formErrors); err != nil {
		return Response{}, err
	}
	return resp, nil
}

// Render renders req.Session as-is without applying a transition.
func (o *Orchestrator) Render(ctx context.Context, req Request) (Response, error) {
	if err := o.ready(ctx); err != nil {
		return Response{}, err
	}
	resp := Response{Session: req.Session}
	if err := o.renderInto(ctx, &resp, req, nil); err != nil {
		return Response{}, err
	}
	return resp, nil
}

func (o *Orchestrator) renderInto(ctx context.Context, resp *Response, req Request, formErrors []string) error {
	s := resp.Session
	if _, ok := o.form.Step(int(s.Step)); !ok {
		return fmt.Errorf("orchestrator: %w: %d", wizard.ErrStepOutOfRange, s.Step)
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return err
	}

	// validators may key errors by schema path or by a form-level key
	mapping := render.SplitErrors(o.form, s.Errors.FieldMessages())
	opts := render.RenderOptions{
		Step:       int(s.Step),
		Values:     s.Values.Map(),
		Errors:     mapping.Fields,
		FormErrors: render.MergeFormErrors(mapping.Form, formErrors...),
		Hidden:     req.Hidden,
		Submitted:  s.Submitted,
		AllowBack:  o.wizard.AllowBack(),
		Theme:      o.theme,
	}
	if req.Theme != nil {
		opts.Theme = req.Theme
	}
	if s.Submitted {
		payload, err := json.MarshalIndent(s.Values, "", "  ")
		if err != nil {
			return fmt.Errorf("orchestrator: encode submission: %w", err)
		}
		opts.Submission = string(payload)
	}

	body, err := renderer.Render(ctx, o.form, opts)
	if err != nil {
		return fmt.Errorf("orchestrator: render output: %w", err)
	}
	resp.Body = body
	resp.ContentType = renderer.ContentType()
	return nil
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.initialiseErr
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err == nil {
		return renderer, nil
	}
	if name != "" {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	// fall back to whatever the registry considers its default
	renderer, err = o.registry.Get("")
	if err != nil {
		return nil, fmt.Errorf("orchestrator: no renderers registered: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() error {
	form, err := model.Decorate(o.form, o.decorators...)
	if err != nil {
		return fmt.Errorf("orchestrator: decorate form: %w", err)
	}
	o.form = form

	validator, err := o.validatorFactory(form)
	if err != nil {
		return fmt.Errorf("orchestrator: build validator: %w", err)
	}

	options := append([]wizard.Option{wizard.WithLogger(o.logger)}, o.wizardOptions...)
	options = append(options, wizard.WithValidator(validator))
	o.wizard = wizard.New(options...)

	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			return fmt.Errorf("orchestrator: default renderer: %w", err)
		}
		o.registry.MustRegister(renderer)
	}
	return nil
}
