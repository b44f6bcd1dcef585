package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "memory_mapping"

type Metrics struct {
	registry *prometheus.Registry
	added    prometheus.Counter
	rejected prometheus.Counter
	memories prometheus.Gauge
	owners   prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		added: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "memories_added_total",
			Help:      "Memories appended to the log.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "memories_rejected_total",
			Help:      "Memories rejected as invalid input.",
		}),
		memories: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "memories",
			Help:      "Length of the memory log.",
		}),
		owners: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "owners",
			Help:      "Distinct owners with at least one memory.",
		}),
	}

	m.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}))
	m.registry.MustRegister(collectors.NewGoCollector())
	m.registry.MustRegister(m.added, m.rejected, m.memories, m.owners)
	return m
}

// MemoryAdded counts an append and records the resulting log length.
func (m *Metrics) MemoryAdded(memories int64) {
	m.added.Inc()
	m.memories.Set(float64(memories))
}

func (m *Metrics) SetOwners(owners int64) {
	m.owners.Set(float64(owners))
}

func (m *Metrics) MemoryRejected() {
	m.rejected.Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
