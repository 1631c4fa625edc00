package panel

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Action outcomes recorded by Metrics.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeDropped   = "dropped"
)

// Prompt results recorded by Metrics.
const (
	PromptChosen    = "chosen"
	PromptDismissed = "dismissed"
)

// Metrics counts panel actions and prompt results. A nil *Metrics is a no-op.
type Metrics struct {
	actions *prometheus.CounterVec
	prompts *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "billing",
				Subsystem: "panel",
				Name:      "actions_total",
				Help:      "Total billing panel actions by action kind and outcome",
			},
			[]string{"action", "outcome"},
		),
		prompts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "billing",
				Subsystem: "panel",
				Name:      "prompts_total",
				Help:      "Total action prompts by result",
			},
			[]string{"result"},
		),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.actions, m.prompts} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNewMetrics is like NewMetrics but panics when registration fails.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	m, err := NewMetrics(reg)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Metrics) action(kind ActionKind, outcome string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(kind.String(), outcome).Inc()
}

func (m *Metrics) prompt(result string) {
	if m == nil {
		return
	}
	m.prompts.WithLabelValues(result).Inc()
}

// Actions exposes the action counter, mainly for tests.
func (m *Metrics) Actions() *prometheus.CounterVec { return m.actions }

// Prompts exposes the prompt counter, mainly for tests.
func (m *Metrics) Prompts() *prometheus.CounterVec { return m.prompts }
