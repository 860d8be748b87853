package live

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	commandsTotal *prometheus.CounterVec
	broadcasts    *prometheus.CounterVec
	clients       prometheus.Gauge
	dropped       prometheus.Counter
	reloads       prometheus.Counter
}

func newMetrics(reg prometheus.Registerer, namespace string) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		commandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "commands_total",
			Help:      "Total number of commands applied, by op and status",
		}, []string{"op", "status"}),

		broadcasts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "broadcasts_total",
			Help:      "Total number of messages broadcast, by type",
		}, []string{"type"}),

		clients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "websocket_clients",
			Help:      "Number of connected WebSocket clients",
		}),

		dropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "slow_clients_dropped_total",
			Help:      "Total number of clients dropped for falling behind",
		}),

		reloads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "reloads_total",
			Help:      "Total number of documents replaced from outside the server",
		}),
	}
}
