package metrics_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formwizard/internal/metrics"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func TestCollector_CountsTransitionsAndSubmissions(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.New(reg)
	require.NoError(t, err)

	c.ObserveTransition(wizard.Transition{
		From:    wizard.StepFirst,
		To:      wizard.StepFirst,
		Outcome: wizard.OutcomeRejected,
		Errors: wizard.ErrorMap{
			"password": {Kind: wizard.ErrorKindMinLength, Message: "short"},
		},
	})
	c.ObserveTransition(wizard.Transition{From: wizard.StepFirst, To: wizard.StepSecond, Outcome: wizard.OutcomeAdvanced})
	c.ObserveSubmission(nil)
	c.ObserveSubmission(errors.New("down"))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 3)

	count, err := testutil.GatherAndCount(reg, "formwizard_transitions_total", "formwizard_field_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	expected := `
# HELP formwizard_submissions_total Submissions handed to the sink by result
# TYPE formwizard_submissions_total counter
formwizard_submissions_total{result="error"} 1
formwizard_submissions_total{result="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "formwizard_submissions_total"))
}

func TestNew_RejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.New(reg)
	require.NoError(t, err)
	_, err = metrics.New(reg)
	require.Error(t, err)
}
