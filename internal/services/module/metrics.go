package module

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/louisbranch/sonundrum/internal/core/rule"
	"github.com/louisbranch/sonundrum/internal/core/stage"
)

const (
	metricsNamespace = "sonundrum"
	moduleSubsystem  = "module"
)

// Metrics counts what happens on the module instances of a process.
type Metrics struct {
	// StrikesTotal counts strikes.
	StrikesTotal prometheus.Counter
	// PassesTotal counts solved modules.
	PassesTotal prometheus.Counter
	// RulesTotal counts resolved statements.
	// Labels: shape, applied (true, false), final (true, false)
	RulesTotal *prometheus.CounterVec
	// PressesTotal counts button presses by outcome.
	// Labels: result (accepted, strike, solved, ignored)
	PressesTotal *prometheus.CounterVec
}

// NewMetrics registers the module metrics with reg. A nil reg uses the
// default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		StrikesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: moduleSubsystem,
			Name:      "strikes_total",
			Help:      "Total strikes given by Simon",
		}),
		PassesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: moduleSubsystem,
			Name:      "passes_total",
			Help:      "Total modules solved",
		}),
		RulesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: moduleSubsystem,
			Name:      "rules_total",
			Help:      "Total statements resolved by shape and whether they applied",
		}, []string{"shape", "applied", "final"}),
		PressesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: moduleSubsystem,
			Name:      "presses_total",
			Help:      "Total button presses by outcome",
		}, []string{"result"}),
	}
}

// RuleResolved implements stage.Observer.
func (m *Metrics) RuleResolved(r rule.Rule, applied, final bool) {
	if m == nil {
		return
	}
	m.RulesTotal.WithLabelValues(r.Shape().String(), boolLabel(applied), boolLabel(final)).Inc()
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func (m *Metrics) strike() {
	if m != nil {
		m.StrikesTotal.Inc()
	}
}

func (m *Metrics) pass() {
	if m != nil {
		m.PassesTotal.Inc()
	}
}

func (m *Metrics) press(result stage.PressResult) {
	if m != nil {
		m.PressesTotal.WithLabelValues(result.String()).Inc()
	}
}
