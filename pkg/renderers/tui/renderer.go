package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// ErrTooManyAttempts is returned when Run hits the configured attempt limit.
var ErrTooManyAttempts = errors.New("tui: too many attempts")

const (
	choiceNext   = "Next >"
	choiceSubmit = "Submit"
	choiceBack   = "< Back"
)

// Runner walks a wizard session in the terminal: it prompts the active step's
// fields, prints errors, offers Back on later steps and stops once the last
// step is submitted.
type Runner struct {
	wizard      *wizard.Wizard
	form        model.FormModel
	driver      PromptDriver
	theme       Theme
	logger      *slog.Logger
	maxAttempts int
}

// NewRunner binds a runner to a wizard and the form it was built from.
func NewRunner(w *wizard.Wizard, form model.FormModel, options ...Option) (*Runner, error) {
	if w == nil {
		return nil, errors.New("tui: wizard is required")
	}
	if len(form.Steps) == 0 {
		return nil, errors.New("tui: form has no steps")
	}
	r := &Runner{
		wizard: w,
		form:   form,
		theme:  DefaultTheme,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Run drives a fresh session until it is submitted. It returns the submitted
// session, ErrAborted when the user interrupts, or the first prompt error.
func (r *Runner) Run(ctx context.Context) (wizard.Session, error) {
	return r.Resume(ctx, wizard.NewSession())
}

// Resume continues an existing session.
func (r *Runner) Resume(ctx context.Context, s wizard.Session) (wizard.Session, error) {
	var formErrors []string
	for attempt := 1; ; attempt++ {
		if r.maxAttempts > 0 && attempt > r.maxAttempts {
			return s, ErrTooManyAttempts
		}
		step, ok := r.form.Step(int(s.Step))
		if !ok {
			return s, fmt.Errorf("tui: %w: %d", wizard.ErrStepOutOfRange, s.Step)
		}

		if err := r.printHeader(ctx, step, s.Errors, formErrors); err != nil {
			return s, err
		}
		values, err := r.promptStep(ctx, step, s.Values)
		if err != nil {
			return s, err
		}
		action, err := r.chooseAction(ctx, step)
		if err != nil {
			return s, err
		}

		next, t, err := r.wizard.Apply(ctx, s, action, values)
		formErrors = nil
		switch {
		case errors.Is(err, wizard.ErrSubmitFailed):
			r.logger.WarnContext(ctx, "submission failed", "err", err)
			formErrors = []string{err.Error()}
			s = next
			continue
		case err != nil:
			return s, err
		}
		r.logger.DebugContext(ctx, "tui transition", "from", int(t.From), "to", int(t.To), "outcome", string(t.Outcome))
		s = next
		if s.Submitted {
			return s, r.driver.Info(ctx, r.theme.InfoPrefix+" submitted")
		}
	}
}

func (r *Runner) printHeader(ctx context.Context, step model.Step, errs wizard.ErrorMap, formErrors []string) error {
	header := fmt.Sprintf("%s [%d/%d] %s", r.theme.StepPrefix, step.Index+1, len(r.form.Steps), step.Title)
	if err := r.driver.Info(ctx, header); err != nil {
		return err
	}
	for _, msg := range render.ErrorList(r.form, errs.FieldMessages(), formErrors) {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+" "+msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) promptStep(ctx context.Context, step model.Step, current wizard.FormValues) (wizard.FormValues, error) {
	values := current
	for _, field := range step.Fields {
		existing, _ := values.Get(field.Name)
		cfg := InputConfig{
			Message: promptLabel(field),
			Default: existing,
			Help:    field.Description,
		}

		var (
			answer string
			err    error
		)
		if field.Type == model.FieldTypePassword {
			answer, err = r.driver.Password(ctx, cfg)
		} else {
			answer, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return current, err
		}
		if err := values.Set(field.Name, answer); err != nil {
			return current, fmt.Errorf("tui: %w", err)
		}
	}
	return values, nil
}

func (r *Runner) chooseAction(ctx context.Context, step model.Step) (wizard.Action, error) {
	forward := choiceNext
	if step.Index == r.form.LastStep() {
		forward = choiceSubmit
	}
	if step.Index == 0 || !r.wizard.AllowBack() {
		return wizard.ActionNext, nil
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: "Continue",
		Options: []string{forward, choiceBack},
	})
	if err != nil {
		return "", err
	}
	switch idx {
	case 0:
		return wizard.ActionNext, nil
	case 1:
		return wizard.ActionBack, nil
	default:
		return "", ErrNoChoice
	}
}

func promptLabel(field model.Field) string {
	label := strings.TrimSpace(field.Label)
	if label == "" {
		label = field.Name
	}
	if field.Required {
		label += " *"
	}
	return label
}

// Renderer prints the active step as plain text. It is the non-interactive
// counterpart of Runner, registered under the "tui" name.
type Renderer struct{}

var _ render.Renderer = Renderer{}

// Name reports the renderer identifier.
func (Renderer) Name() string {
	return "tui"
}

// ContentType reports plain text.
func (Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes the step list, the active step's values (passwords masked),
// the error list and the available actions.
func (Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	active, ok := form.Step(opts.Step)
	if !ok {
		return nil, fmt.Errorf("tui: step %d not in form %q", opts.Step, form.ID)
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, form.Title)
	for _, st := range form.Steps {
		marker := " "
		if st.Index == active.Index {
			marker = ">"
		}
		fmt.Fprintf(&buf, "%s %d. %s\n", marker, st.Index+1, st.Title)
	}
	fmt.Fprintln(&buf)
	for _, field := range active.Fields {
		value := opts.Values[field.Name]
		if field.Type == model.FieldTypePassword && value != "" {
			value = strings.Repeat("*", len([]rune(value)))
		}
		fmt.Fprintf(&buf, "%s: %s\n", promptLabel(field), value)
	}
	if errs := render.ErrorList(form, opts.Errors, opts.FormErrors); len(errs) > 0 {
		fmt.Fprintln(&buf)
		for _, msg := range errs {
			fmt.Fprintf(&buf, "%s %s\n", DefaultTheme.ErrorPrefix, msg)
		}
	}
	if opts.Submitted && opts.Submission != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, opts.Submission)
	}

	var actions []string
	if opts.ShowBack() {
		actions = append(actions, "["+choiceBack+"]")
	}
	if opts.IsLast(len(form.Steps)) {
		actions = append(actions, "["+choiceSubmit+"]")
	} else {
		actions = append(actions, "["+choiceNext+"]")
	}
	fmt.Fprintf(&buf, "\n%s\n", strings.Join(actions, " "))
	return buf.Bytes(), nil
}
