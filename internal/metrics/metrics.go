// Package metrics exposes store activity to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/reception-scheduler/internal/httperr"
)

const namespace = "reception"

// Metrics implements store.Recorder on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	mutations *prometheus.CounterVec
	sizes     *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "Store mutations by entity, operation and result code.",
		}, []string{"entity", "op", "result"}),
		sizes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_collection_size",
			Help:      "Number of records per collection.",
		}, []string{"collection"}),
	}

	m.registry.MustRegister(
		m.mutations,
		m.sizes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Mutation counts one store call. The result label is "ok", the business
// code of err, or "error".
func (m *Metrics) Mutation(entity, op string, err error) {
	m.mutations.WithLabelValues(entity, op, result(err)).Inc()
}

func (m *Metrics) Sizes(providers, products, cages, appointments int) {
	m.sizes.WithLabelValues("providers").Set(float64(providers))
	m.sizes.WithLabelValues("products").Set(float64(products))
	m.sizes.WithLabelValues("cages").Set(float64(cages))
	m.sizes.WithLabelValues("appointments").Set(float64(appointments))
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err == nil {
		return "ok"
	}
	if code, ok := httperr.CodeOf(err); ok {
		return code
	}
	return "error"
}
