// Package metrics exposes Prometheus collectors for views and imports.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Import row outcomes.
const (
	ImportPublished = "published"
	ImportIndexed   = "indexed"
	ImportDuplicate = "duplicate"
	ImportFailed    = "failed"
)

// Metrics holds the portal collectors on a private registry.
type Metrics struct {
	registry   *prometheus.Registry
	views      *prometheus.CounterVec
	results    *prometheus.HistogramVec
	rejections *prometheus.CounterVec
	importRows *prometheus.CounterVec
}

// New registers every collector, plus the Go and process collectors.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		views: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "views_total",
			Help:      "Derived views computed, by record kind.",
		}, []string{"kind"}),
		results: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_results",
			Help:      "Records passing the filters per derived view.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"kind"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_rejections_total",
			Help:      "Records excluded from views, by first failing check.",
		}, []string{"reason"}),
		importRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "Bulk upload rows, by outcome.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.views, m.results, m.rejections, m.importRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveView records one computed view and its size.
func (m *Metrics) ObserveView(kind string, count int) {
	m.views.WithLabelValues(kind).Inc()
	m.results.WithLabelValues(kind).Observe(float64(count))
}

// ObserveRejection adds n excluded records for reason.
func (m *Metrics) ObserveRejection(reason string, n int) {
	m.rejections.WithLabelValues(reason).Add(float64(n))
}

// ObserveImport adds n rows with the given outcome.
func (m *Metrics) ObserveImport(result string, n int) {
	m.importRows.WithLabelValues(result).Add(float64(n))
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
