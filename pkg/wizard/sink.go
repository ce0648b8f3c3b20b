package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Submission is what the last step hands to a Sink once every field passed.
type Submission struct {
	ID          string     `json:"id"`
	Values      FormValues `json:"values"`
	SubmittedAt time.Time  `json:"submittedAt"`
}

// Sink receives accepted submissions. Implementations decide what submitting
// means; the wizard only cares whether it failed.
type Sink interface {
	Submit(ctx context.Context, sub Submission) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, sub Submission) error

// Submit calls f.
func (f SinkFunc) Submit(ctx context.Context, sub Submission) error {
	return f(ctx, sub)
}

// WriterSink writes each submission's values as indented JSON.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink returns a sink printing values to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Submit writes the values followed by a newline.
func (s *WriterSink) Submit(ctx context.Context, sub Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(sub.Values, "", "  ")
	if err != nil {
		return fmt.Errorf("wizard: encode submission: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("wizard: write submission: %w", err)
	}
	return nil
}

// LogSink records submissions on a structured logger. The password is never
// logged.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink returns a sink logging to logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Submit logs the submission at info level.
func (s *LogSink) Submit(ctx context.Context, sub Submission) error {
	if s.logger == nil {
		return nil
	}
	s.logger.InfoContext(ctx, "form submitted",
		"submission_id", sub.ID,
		"username", sub.Values.Username,
		"name", sub.Values.Name,
		"email", sub.Values.Email,
		"website", sub.Values.Website,
		"github", sub.Values.Github,
	)
	return nil
}

// MultiSink fans a submission out to every sink, stopping at the first error.
func MultiSink(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, sub Submission) error {
		for _, sink := range sinks {
			if sink == nil {
				continue
			}
			if err := sink.Submit(ctx, sub); err != nil {
				return err
			}
		}
		return nil
	})
}
