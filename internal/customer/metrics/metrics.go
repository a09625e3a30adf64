package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the customer module: lifecycle
// outcomes and custom value rejections.
type Metrics struct {
	Transitions        *prometheus.CounterVec
	BlockedTransitions *prometheus.CounterVec
	InvalidCommands    *prometheus.CounterVec
	ValueRejections    *prometheus.CounterVec
	TransitionDuration prometheus.Histogram
}

// New registers the customer metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "customercore_customer_transitions_total",
			Help: "Applied lifecycle transitions by command and resulting state",
		}, []string{"command", "to"}),
		BlockedTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "customercore_customer_transitions_blocked_total",
			Help: "Lifecycle commands rejected because mandatory tasks were unsatisfied",
		}, []string{"command"}),
		InvalidCommands: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "customercore_customer_invalid_commands_total",
			Help: "Lifecycle commands not allowed from the customer's current state",
		}, []string{"command", "state"}),
		ValueRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "customercore_custom_value_rejections_total",
			Help: "Custom value submissions rejected by the validator, by reason",
		}, []string{"reason"}),
		TransitionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "customercore_customer_transition_duration_seconds",
			Help:    "Duration of ApplyCommand including the gating check",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementTransition(command, to string) {
	m.Transitions.WithLabelValues(command, to).Inc()
}

func (m *Metrics) IncrementBlocked(command string) {
	m.BlockedTransitions.WithLabelValues(command).Inc()
}

func (m *Metrics) IncrementInvalid(command, state string) {
	m.InvalidCommands.WithLabelValues(command, state).Inc()
}

func (m *Metrics) IncrementValueRejected(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	m.ValueRejections.WithLabelValues(reason).Inc()
}

// ObserveTransition records the duration of an ApplyCommand call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveTransition(start time.Time) {
	m.TransitionDuration.Observe(time.Since(start).Seconds())
}
