// Package metrics exposes wizard activity as Prometheus collectors.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Collector counts transitions and submissions. It implements wizard.Observer.
type Collector struct {
	transitions *prometheus.CounterVec
	fieldErrors *prometheus.CounterVec
	submissions *prometheus.CounterVec
}

var _ wizard.Observer = (*Collector)(nil)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwizard_transitions_total",
				Help: "Wizard transitions by source step and outcome",
			},
			[]string{"step", "outcome"},
		),
		fieldErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwizard_field_errors_total",
				Help: "Field validation failures by field and rule kind",
			},
			[]string{"field", "kind"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwizard_submissions_total",
				Help: "Submissions handed to the sink by result",
			},
			[]string{"result"},
		),
	}
	for _, collector := range []prometheus.Collector{c.transitions, c.fieldErrors, c.submissions} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) ObserveTransition(t wizard.Transition) {
	c.transitions.WithLabelValues(strconv.Itoa(int(t.From)), string(t.Outcome)).Inc()
	for field, fieldErr := range t.Errors {
		c.fieldErrors.WithLabelValues(field, string(fieldErr.Kind)).Inc()
	}
}

func (c *Collector) ObserveSubmission(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.submissions.WithLabelValues(result).Inc()
}
