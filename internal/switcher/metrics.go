package switcher

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts activations. All methods accept a nil receiver.
type Metrics struct {
	activations     *prometheus.CounterVec
	restores        prometheus.Counter
	usageViolations prometheus.Counter
	depth           prometheus.Gauge
}

// NewMetrics creates the switcher collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		activations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gtadapter_context_activations_total",
			Help: "Outer activations by the kind of context that became active.",
		}, []string{"context"}),
		restores: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gtadapter_context_restores_total",
			Help: "Times an override was replaced by the baseline.",
		}),
		usageViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gtadapter_context_usage_violations_total",
			Help: "Rejected activations for a conflicting target or owner.",
		}),
		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gtadapter_context_depth",
			Help: "Current reentrancy depth of the active context.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.activations, m.restores, m.usageViolations, m.depth)
	}
	return m
}

func (m *Metrics) activated(kind string) {
	if m != nil {
		m.activations.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) restored() {
	if m != nil {
		m.restores.Inc()
	}
}

func (m *Metrics) violation() {
	if m != nil {
		m.usageViolations.Inc()
	}
}

func (m *Metrics) setDepth(d int) {
	if m != nil {
		m.depth.Set(float64(d))
	}
}
