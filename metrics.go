package algophase

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector receives timing and volume observations from a Phase.
// Implementations must be safe for concurrent use.
type MetricsCollector interface {
	// RecordGradientBuild is called once per NewPhase.
	RecordGradientBuild(backend string, sites int, d time.Duration)
	// RecordPhases is called after At (n=1) and Cache (n=len(momenta)).
	RecordPhases(backend string, n int, d time.Duration)
	// RecordProjection is called after Project.
	RecordProjection(backend string, n int, d time.Duration)
}

// NoopMetricsCollector discards every observation.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGradientBuild(string, int, time.Duration) {}
func (NoopMetricsCollector) RecordPhases(string, int, time.Duration)        {}
func (NoopMetricsCollector) RecordProjection(string, int, time.Duration)    {}

// PrometheusCollector exports observations as Prometheus metrics.
type PrometheusCollector struct {
	gradientBuilds   *prometheus.CounterVec
	gradientSites    *prometheus.CounterVec
	gradientDuration *prometheus.HistogramVec
	phasesTotal      *prometheus.CounterVec
	phaseDuration    *prometheus.HistogramVec
	projectionsTotal *prometheus.CounterVec
	projectDuration  *prometheus.HistogramVec
}

// NewPrometheusCollector registers the phase-cache metrics with reg.
// A nil reg registers with prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &PrometheusCollector{
		gradientBuilds: f.NewCounterVec(prometheus.CounterOpts{
			Name: "algophase_gradient_builds_total",
			Help: "Total number of phase gradients built",
		}, []string{"backend"}),
		gradientSites: f.NewCounterVec(prometheus.CounterOpts{
			Name: "algophase_gradient_sites_total",
			Help: "Total number of lattice sites covered by built gradients",
		}, []string{"backend"}),
		gradientDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "algophase_gradient_build_duration_seconds",
			Help:    "Time to build one phase gradient",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"backend"}),
		phasesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "algophase_phases_total",
			Help: "Total number of momentum phase fields synthesized",
		}, []string{"backend"}),
		phaseDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "algophase_phase_duration_seconds",
			Help:    "Time per At or Cache call",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"backend"}),
		projectionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "algophase_projections_total",
			Help: "Total number of momentum projections computed",
		}, []string{"backend"}),
		projectDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "algophase_project_duration_seconds",
			Help:    "Time per Project call",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"backend"}),
	}
}

func (c *PrometheusCollector) RecordGradientBuild(backend string, sites int, d time.Duration) {
	c.gradientBuilds.WithLabelValues(backend).Inc()
	c.gradientSites.WithLabelValues(backend).Add(float64(sites))
	c.gradientDuration.WithLabelValues(backend).Observe(d.Seconds())
}

func (c *PrometheusCollector) RecordPhases(backend string, n int, d time.Duration) {
	c.phasesTotal.WithLabelValues(backend).Add(float64(n))
	c.phaseDuration.WithLabelValues(backend).Observe(d.Seconds())
}

func (c *PrometheusCollector) RecordProjection(backend string, n int, d time.Duration) {
	c.projectionsTotal.WithLabelValues(backend).Add(float64(n))
	c.projectDuration.WithLabelValues(backend).Observe(d.Seconds())
}

var _ MetricsCollector = (*PrometheusCollector)(nil)
