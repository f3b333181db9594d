// Package metrics exposes Prometheus collectors for the data-access layer:
// query counts and latencies per execution mode, template loads and
// connection pool occupancy.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "cruddur"

// Query outcome labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
	StatusEmpty = "empty"
)

var queryBuckets = []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// PoolStats is a point-in-time view of connection pool occupancy.
type PoolStats struct {
	AcquiredConns int32
	IdleConns     int32
	TotalConns    int32
	MaxConns      int32
}

// Metrics wraps the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	queriesTotal  *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	templateLoads *prometheus.CounterVec
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,

		queriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "db",
				Name:      "queries_total",
				Help:      "Total number of gateway queries by execution mode and outcome",
			},
			[]string{"mode", "status"},
		),

		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: "db",
				Name:      "query_duration_seconds",
				Help:      "Duration of gateway queries including connection acquisition",
				Buckets:   queryBuckets,
			},
			[]string{"mode"},
		),

		templateLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "db",
				Name:      "template_loads_total",
				Help:      "Total number of SQL template loads by outcome",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(m.queriesTotal, m.queryDuration, m.templateLoads)
	return m
}

// ObserveQuery records one executor call.
func (m *Metrics) ObserveQuery(mode, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.queriesTotal.WithLabelValues(mode, status).Inc()
	m.queryDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// ObserveTemplateLoad records one template read.
func (m *Metrics) ObserveTemplateLoad(status string) {
	if m == nil {
		return
	}
	m.templateLoads.WithLabelValues(status).Inc()
}

// RegisterPoolStats exposes pool occupancy gauges read from stats on every scrape.
func (m *Metrics) RegisterPoolStats(stats func() PoolStats) {
	gauge := func(name, help string, pick func(PoolStats) int32) prometheus.Collector {
		return prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Subsystem: "db_pool",
				Name:      name,
				Help:      help,
			},
			func() float64 { return float64(pick(stats())) },
		)
	}

	m.registry.MustRegister(
		gauge("acquired_conns", "Connections currently checked out of the pool",
			func(s PoolStats) int32 { return s.AcquiredConns }),
		gauge("idle_conns", "Idle connections held by the pool",
			func(s PoolStats) int32 { return s.IdleConns }),
		gauge("total_conns", "Total connections held by the pool",
			func(s PoolStats) int32 { return s.TotalConns }),
		gauge("max_conns", "Configured pool size",
			func(s PoolStats) int32 { return s.MaxConns }),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
