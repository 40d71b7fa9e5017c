package lifecycle

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// engineMetrics holds the engine's Prometheus instruments. A nil receiver
// means metrics are disabled; every method tolerates it so the engine's hot
// path carries no conditionals.
type engineMetrics struct {
	transitions   *prometheus.CounterVec   // by event and status
	duration      *prometheus.HistogramVec // by event
	guardFailures *prometheus.CounterVec   // by guard name
	auditDropped  prometheus.Counter
}

func newEngineMetrics(reg prometheus.Registerer) *engineMetrics {
	if reg == nil {
		return nil
	}

	m := &engineMetrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loankit",
			Subsystem: "lifecycle",
			Name:      "transitions_total",
			Help:      "Total number of transition attempts by event and outcome",
		}, []string{"event", "status"}),

		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "loankit",
			Subsystem: "lifecycle",
			Name:      "transition_duration_seconds",
			Help:      "Transition attempt duration in seconds",
			Buckets:   []float64{0.005, 0.025, 0.1, 0.5, 1.0, 5.0, 30.0},
		}, []string{"event"}),

		guardFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loankit",
			Subsystem: "lifecycle",
			Name:      "guard_failures_total",
			Help:      "Total number of transitions rejected, by guard",
		}, []string{"guard"}),

		auditDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "loankit",
			Subsystem: "lifecycle",
			Name:      "failure_audit_dropped_total",
			Help:      "Failure audit records that could not be written out-of-band",
		}),
	}

	reg.MustRegister(m.transitions, m.duration, m.guardFailures, m.auditDropped)
	return m
}

func (m *engineMetrics) observe(event Event, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(event.String(), status).Inc()
	m.duration.WithLabelValues(event.String()).Observe(d.Seconds())
}

func (m *engineMetrics) observeGuardFailure(guard string) {
	if m == nil {
		return
	}
	m.guardFailures.WithLabelValues(guard).Inc()
}

func (m *engineMetrics) observeAuditDropped() {
	if m == nil {
		return
	}
	m.auditDropped.Inc()
}
