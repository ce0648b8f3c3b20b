// Package wizard implements the step-validation state machine of the
// multi-step form.
//
// A Validator maps (step, values) onto accepted values and a per-field
// ErrorMap. Steps 0 and 1 only look at their own fields; the last step checks
// its own fields and, when those pass, re-validates the whole form before
// anything is accepted. Next and Back are pure transition functions over an
// explicit Session; Wizard adds the side effects (sink, observer, logging).
//
//	v := wizard.DefaultValidator()
//	s := wizard.NewSession()
//	s, t, err := wizard.Next(v, s, wizard.FormValues{Username: "ada", Password: "secret1"})
//	// t.Outcome == wizard.OutcomeAdvanced, s.Step == wizard.StepSecond
package wizard
