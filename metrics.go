package ensresolve

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	kindDiscover = "discover"
	kindForward  = "forward"
	kindReverse  = "reverse"

	outcomeFound    = "found"
	outcomeNone     = "none"
	outcomeError    = "error"
	outcomeMismatch = "mismatch"
)

type metrics struct {
	lookups *prometheus.CounterVec
}

func newMetrics() metrics {
	return metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ensresolve",
			Name:      "lookups_total",
			Help:      "Lookups by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
}

func (r *Resolver) observe(kind, outcome string) {
	r.metrics.lookups.WithLabelValues(kind, outcome).Inc()
}

// Metrics returns the collectors of this Resolver for registration.
func (r *Resolver) Metrics() []prometheus.Collector {
	return []prometheus.Collector{r.metrics.lookups}
}
