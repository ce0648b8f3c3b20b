package wizard_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func TestNext_WalksAllSteps(t *testing.T) {
	v := wizard.DefaultValidator()
	values := fullValues()
	s := wizard.NewSession()

	s, tr, err := wizard.Next(v, s, values)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if tr.Outcome != wizard.OutcomeAdvanced || s.Step != wizard.StepSecond {
		t.Fatalf("expected advance to step 1, got %+v (step %d)", tr, s.Step)
	}

	s, tr, err = wizard.Next(v, s, values)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if tr.Outcome != wizard.OutcomeAdvanced || s.Step != wizard.StepLast {
		t.Fatalf("expected advance to step 2, got %+v", tr)
	}

	s, tr, err = wizard.Next(v, s, values)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if tr.Outcome != wizard.OutcomeSubmit {
		t.Fatalf("expected submit outcome, got %s", tr.Outcome)
	}
	if s.Step != wizard.StepLast || tr.To != wizard.StepLast {
		t.Fatalf("submit must not move past the last step")
	}
	if tr.Accepted == nil {
		t.Fatalf("expected accepted values on submit")
	}
	if diff := cmp.Diff(values, *tr.Accepted); diff != "" {
		t.Fatalf("accepted mismatch (-want +got):\n%s", diff)
	}
}

func TestNext_RejectedStaysWithErrors(t *testing.T) {
	v := wizard.DefaultValidator()
	s := wizard.NewSession()

	next, tr, err := wizard.Next(v, s, wizard.FormValues{Username: "a", Password: "1"})
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if tr.Outcome != wizard.OutcomeRejected || next.Step != wizard.StepFirst {
		t.Fatalf("expected rejection on step 0, got %+v", tr)
	}
	if _, ok := next.Errors["password"]; !ok || len(next.Errors) != 1 {
		t.Fatalf("expected password error only, got %v", next.Errors)
	}
	if next.Values.Username != "a" {
		t.Fatalf("values should be stored even when rejected")
	}

	fixed, tr, err := wizard.Next(v, next, wizard.FormValues{Username: "a", Password: "123456"})
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if tr.Outcome != wizard.OutcomeAdvanced || fixed.Errors != nil {
		t.Fatalf("expected errors cleared after a passing attempt, got %+v", fixed)
	}
}

func TestNext_DoesNotMutateInputSession(t *testing.T) {
	v := wizard.DefaultValidator()
	s := wizard.NewSession()
	_, _, _ = wizard.Next(v, s, fullValues())
	if diff := cmp.Diff(wizard.NewSession(), s); diff != "" {
		t.Fatalf("input session mutated (-want +got):\n%s", diff)
	}
}

func TestBack(t *testing.T) {
	s := wizard.Session{
		Step:   wizard.StepLast,
		Errors: wizard.ErrorMap{"website": {Kind: wizard.ErrorKindRequired, Message: "Website is required"}},
	}
	values := wizard.FormValues{Website: "typed before going back"}

	s, tr := wizard.Back(s, values)
	if tr.Outcome != wizard.OutcomeBack || s.Step != wizard.StepSecond {
		t.Fatalf("expected back to step 1, got %+v", tr)
	}
	if s.Errors != nil {
		t.Fatalf("expected errors cleared on back")
	}
	if s.Values.Website != "typed before going back" {
		t.Fatalf("expected values kept on back")
	}

	s, _ = wizard.Back(s, values)
	s, tr = wizard.Back(s, values)
	if tr.Outcome != wizard.OutcomeUnchanged || s.Step != wizard.StepFirst {
		t.Fatalf("back on the first step must be a no-op, got %+v step=%d", tr, s.Step)
	}
}

func TestParseAction(t *testing.T) {
	for raw, want := range map[string]wizard.Action{"": wizard.ActionNext, "next": wizard.ActionNext, "back": wizard.ActionBack} {
		got, err := wizard.ParseAction(raw)
		if err != nil || got != want {
			t.Fatalf("parse %q: got %q err %v", raw, got, err)
		}
	}
	if _, err := wizard.ParseAction("jump"); !errors.Is(err, wizard.ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}
