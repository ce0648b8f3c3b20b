package tui_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type stubDriver struct {
	inputs    []string
	passwords []string
	selects   []int
	info      []string
	prompts   []string
}

func (s *stubDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if len(s.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[0]
	s.inputs = s.inputs[1:]
	if val == "<keep>" {
		return cfg.Default, nil
	}
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg tui.InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if len(s.passwords) == 0 {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[0]
	s.passwords = s.passwords[1:]
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ tui.SelectConfig) (int, error) {
	if len(s.selects) == 0 {
		return -1, errors.New("no select scripted")
	}
	val := s.selects[0]
	s.selects = s.selects[1:]
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.info = append(s.info, msg)
	return nil
}

func TestRunner_RetriesStepUntilValid(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"ada", "ada", "Ada", "ada@example.com", "https://ada.dev", "ada"},
		passwords: []string{"123", "lovelace"},
		selects:   []int{0, 0},
	}
	var submitted []wizard.FormValues
	w := wizard.New(wizard.WithSink(wizard.SinkFunc(func(_ context.Context, sub wizard.Submission) error {
		submitted = append(submitted, sub.Values)
		return nil
	})))

	runner, err := tui.NewRunner(w, model.DefaultForm(), tui.WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	s, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := wizard.FormValues{
		Username: "ada",
		Password: "lovelace",
		Name:     "Ada",
		Email:    "ada@example.com",
		Website:  "https://ada.dev",
		Github:   "ada",
	}
	if diff := cmp.Diff(want, s.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if !s.Submitted || len(submitted) != 1 {
		t.Fatalf("expected exactly one submission, got %d", len(submitted))
	}

	joined := strings.Join(driver.info, "\n")
	if !strings.Contains(joined, "Password must include at least 6 characters") {
		t.Fatalf("expected password error to be printed:\n%s", joined)
	}
	if !strings.Contains(joined, "[3/3] Last Step") {
		t.Fatalf("expected last step header:\n%s", joined)
	}
}

func TestRunner_BackKeepsValues(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			"ada",                    // username
			"Ada", "ada@example.com", // step 2, then back
			"<keep>",           // username again
			"<keep>", "<keep>", // step 2 prefilled
			"w", "g", // step 3
		},
		passwords: []string{"lovelace", "lovelace"},
		selects:   []int{1, 0, 0},
	}
	w := wizard.New()
	runner, err := tui.NewRunner(w, model.DefaultForm(), tui.WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	s, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if s.Values.Name != "Ada" || s.Values.Email != "ada@example.com" {
		t.Fatalf("expected step 2 values to survive going back, got %+v", s.Values)
	}
}

func TestRunner_NoBackChoiceWhenDisabled(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"ada", "Ada", "ada@example.com", "w", "g"},
		passwords: []string{"lovelace"},
	}
	runner, err := tui.NewRunner(wizard.New(wizard.WithBackDisabled()), model.DefaultForm(), tui.WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunner_PropagatesAbort(t *testing.T) {
	driver := &stubDriver{}
	runner, err := tui.NewRunner(wizard.New(), model.DefaultForm(), tui.WithPromptDriver(abortDriver{driver}))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	if _, err := runner.Run(context.Background()); !errors.Is(err, tui.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRunner_MaxAttempts(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", ""},
		passwords: []string{"", ""},
	}
	runner, err := tui.NewRunner(wizard.New(), model.DefaultForm(), tui.WithPromptDriver(driver), tui.WithMaxAttempts(2))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	if _, err := runner.Run(context.Background()); !errors.Is(err, tui.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

type abortDriver struct{ *stubDriver }

func (abortDriver) Input(context.Context, tui.InputConfig) (string, error) {
	return "", tui.ErrAborted
}

func TestRenderer_TextOutput(t *testing.T) {
	out, err := tui.Renderer{}.Render(context.Background(), model.DefaultForm(), render.RenderOptions{
		Step:      0,
		AllowBack: true,
		Values:    map[string]string{"username": "ada", "password": "secret"},
		Errors:    map[string][]string{"password": {"Password must include at least 6 characters"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)
	for _, needle := range []string{"> 1. First Step", "Username *: ada", "Password: ******", "x Password must include at least 6 characters", "[Next >]"} {
		if !strings.Contains(got, needle) {
			t.Fatalf("expected %q in output:\n%s", needle, got)
		}
	}
	if strings.Contains(got, "[< Back]") {
		t.Fatalf("back must not be offered on the first step")
	}
}

func TestRenderer_TextOutputLaterStep(t *testing.T) {
	out, err := tui.Renderer{}.Render(context.Background(), model.DefaultForm(), render.RenderOptions{
		Step:      1,
		AllowBack: true,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); !strings.Contains(got, "[< Back]") || !strings.Contains(got, "[Next >]") {
		t.Fatalf("expected back and next actions:\n%s", got)
	}
}
