package wizard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Observer is notified about transitions and submissions. Metrics collectors
// implement it.
type Observer interface {
	ObserveTransition(t Transition)
	ObserveSubmission(err error)
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithValidator overrides the rule-table validator of the default form.
func WithValidator(v Validator) Option {
	return func(w *Wizard) {
		if v != nil {
			w.validator = v
		}
	}
}

// WithSink sets where accepted submissions go.
func WithSink(sink Sink) Option {
	return func(w *Wizard) {
		w.sink = sink
	}
}

// WithObserver registers an observer for transitions and submissions.
func WithObserver(o Observer) Option {
	return func(w *Wizard) {
		w.observer = o
	}
}

// WithLogger sets the logger used for transition diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithBackDisabled builds a wizard without back navigation.
func WithBackDisabled() Option {
	return func(w *Wizard) {
		w.allowBack = false
	}
}

// WithClock overrides the time source used to stamp submissions.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) {
		if now != nil {
			w.now = now
		}
	}
}

// WithIDGenerator overrides how submission ids are generated.
func WithIDGenerator(fn func() string) Option {
	return func(w *Wizard) {
		if fn != nil {
			w.newID = fn
		}
	}
}

// Wizard applies user actions to sessions and hands accepted submissions to
// its sink. It holds no per-session state and is safe for concurrent use.
type Wizard struct {
	validator Validator
	sink      Sink
	observer  Observer
	logger    *slog.Logger
	allowBack bool
	now       func() time.Time
	newID     func() string
}

// New constructs a Wizard applying any provided options.
func New(options ...Option) *Wizard {
	w := &Wizard{
		allowBack: true,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	if w.validator == nil {
		w.validator = DefaultValidator()
	}
	return w
}

// Validator returns the validator the wizard runs.
func (w *Wizard) Validator() Validator {
	return w.validator
}

// AllowBack reports whether back navigation is available.
func (w *Wizard) AllowBack() bool {
	return w.allowBack
}

// Apply runs action against the session with the values currently held by the
// form. Submitting on the last step calls the sink; a sink failure keeps the
// entered values, leaves the session unsubmitted and is returned wrapped in
// ErrSubmitFailed.
func (w *Wizard) Apply(ctx context.Context, s Session, action Action, values FormValues) (Session, Transition, error) {
	switch action {
	case ActionBack:
		if !w.allowBack {
			return s, Transition{}, ErrBackDisabled
		}
		next, t := Back(s, values)
		w.observe(ctx, t)
		return next, t, nil
	case ActionNext, "":
		return w.Advance(ctx, s, values)
	default:
		return s, Transition{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// Advance validates the active step and moves forward or submits.
func (w *Wizard) Advance(ctx context.Context, s Session, values FormValues) (Session, Transition, error) {
	next, t, err := Next(w.validator, s, values)
	if err != nil {
		return s, Transition{}, err
	}
	w.observe(ctx, t)

	if t.Outcome != OutcomeSubmit {
		return next, t, nil
	}

	sub := Submission{
		ID:          w.newID(),
		Values:      *t.Accepted,
		SubmittedAt: w.now().UTC(),
	}
	if w.sink != nil {
		if err := w.sink.Submit(ctx, sub); err != nil {
			w.notifySubmission(err)
			w.logger.ErrorContext(ctx, "submission failed", "submission_id", sub.ID, "err", err)
			return next, t, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
		}
	}
	w.notifySubmission(nil)
	w.logger.InfoContext(ctx, "submission accepted", "submission_id", sub.ID)

	next.Submitted = true
	return next, t, nil
}

func (w *Wizard) observe(ctx context.Context, t Transition) {
	w.logger.DebugContext(ctx, "wizard transition",
		"from", int(t.From),
		"to", int(t.To),
		"outcome", string(t.Outcome),
		"errors", len(t.Errors),
	)
	if w.observer != nil {
		w.observer.ObserveTransition(t)
	}
}

func (w *Wizard) notifySubmission(err error) {
	if w.observer != nil {
		w.observer.ObserveSubmission(err)
	}
}
