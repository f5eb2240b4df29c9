package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "recursoweb"

// Metrics owns a private registry so tests and multiple servers in one
// process do not collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	resolves *prometheus.CounterVec
	lookups  *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		resolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_resolves_total",
			Help:      "Route resolutions by route pattern and outcome (new, found, not_found, error).",
		}, []string{"route", "outcome"}),
		lookups: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_lookup_duration_seconds",
			Help:      "Entity service call latency by backend, operation and result.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend", "operation", "result"}),
	}
	registry.MustRegister(m.resolves, m.lookups)
	return m
}

func (m *Metrics) ObserveResolve(route string, outcome string) {
	m.resolves.WithLabelValues(route, outcome).Inc()
}

func (m *Metrics) ObserveLookup(backend string, operation string, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.lookups.WithLabelValues(backend, operation, result).Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
