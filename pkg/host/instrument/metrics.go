package instrument

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	listeners  *prometheus.CounterVec
}

func newMetrics(c Config) *metrics {
	return &metrics{
		operations: register(c.Registry, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: c.Namespace,
			Subsystem: c.Subsystem,
			Name:      "operations_total",
			Help:      "Total number of host operations",
		}, []string{"op", "status"})),

		duration: register(c.Registry, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: c.Namespace,
			Subsystem: c.Subsystem,
			Name:      "operation_duration_seconds",
			Help:      "Host operation duration in seconds",
			Buckets:   c.Buckets,
		}, []string{"op"})),

		listeners: register(c.Registry, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: c.Namespace,
			Subsystem: c.Subsystem,
			Name:      "listener_calls_total",
			Help:      "Total number of event listener invocations",
		}, []string{"event"})),
	}
}

// register returns the collector already registered under the same
// descriptor when there is one, so several decorators share series.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
