package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rxtech-lab/argo-formula/internal/types"
)

// Metrics holds the Prometheus collectors for the formula engine.
// Each instance owns its registry so several workspaces or tests can coexist.
// Recording methods are no-ops on a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	compileFailures    prometheus.Counter
	evaluationDuration *prometheus.HistogramVec // labels: target=overlay|strategy|api
	signalsTotal       *prometheus.CounterVec   // labels: kind=buy|sell
	rejectedTotal      *prometheus.CounterVec   // labels: kind=indicator|strategy
	seriesLength       prometheus.Gauge
}

// NewMetrics creates and registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "argo_formula_cache_hits_total",
			Help: "Formula compilations served from the cache",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "argo_formula_cache_misses_total",
			Help: "Formula compilations that had to parse the source",
		}),
		compileFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "argo_formula_compile_failures_total",
			Help: "Formulas rejected by the parser",
		}),
		evaluationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "argo_formula_evaluation_duration_seconds",
			Help:    "Time spent evaluating formulas over a price series",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}, []string{"target"}),
		signalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_formula_signals_total",
			Help: "Signals emitted by strategy scans",
		}, []string{"kind"}),
		rejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_formula_rejected_definitions_total",
			Help: "Indicator and strategy registrations rejected because a formula failed",
		}, []string{"kind"}),
		seriesLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "argo_formula_series_length",
			Help: "Number of samples in the current price series",
		}),
	}

	m.registry.MustRegister(
		m.cacheHits,
		m.cacheMisses,
		m.compileFailures,
		m.evaluationDuration,
		m.signalsTotal,
		m.rejectedTotal,
		m.seriesLength,
	)

	return m
}

// CacheHit implements formula.CacheObserver.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}

	m.cacheHits.Inc()
}

// CacheMiss implements formula.CacheObserver.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}

	m.cacheMisses.Inc()
}

// CompileFailed implements formula.CacheObserver.
func (m *Metrics) CompileFailed() {
	if m == nil {
		return
	}

	m.compileFailures.Inc()
}

// ObserveEvaluation records how long an evaluation pass took.
func (m *Metrics) ObserveEvaluation(target string, d time.Duration) {
	if m == nil {
		return
	}

	m.evaluationDuration.WithLabelValues(target).Observe(d.Seconds())
}

// RecordSignals counts emitted signals by kind.
func (m *Metrics) RecordSignals(signals []types.Signal) {
	if m == nil {
		return
	}

	for _, s := range signals {
		m.signalsTotal.WithLabelValues(string(s.Kind)).Inc()
	}
}

// RecordRejected counts a rejected indicator or strategy registration.
func (m *Metrics) RecordRejected(kind string) {
	if m == nil {
		return
	}

	m.rejectedTotal.WithLabelValues(kind).Inc()
}

// SetseriesLength records the current price series length.
func (m *Metrics) SetSeriesLength(n int) {
	if m == nil {
		return
	}

	m.seriesLength.Set(float64(n))
}

// Registry exposes the underlying registry for tests and custom exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
