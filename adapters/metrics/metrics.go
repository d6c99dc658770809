// Package metrics provides Prometheus metrics for the schema pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for modelgate.
type Collector struct {
	// Registry metrics
	ModelsRegistered prometheus.Gauge
	RegisterErrors   prometheus.Counter

	// Compile metrics
	CompilesTotal   prometheus.Counter
	CompileErrors   prometheus.Counter
	CompileDuration prometheus.Histogram
	LastCompile     prometheus.Gauge
}

// New creates a metrics collector registered on the default registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a metrics collector on a custom registerer.
// Tests use this to avoid duplicate registration on the global registry.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		ModelsRegistered: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "modelgate",
			Name:      "models_registered",
			Help:      "Number of models in the registry",
		}),
		RegisterErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "modelgate",
			Name:      "register_errors_total",
			Help:      "Total number of failed model registrations",
		}),
		CompilesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "modelgate",
			Name:      "compiles_total",
			Help:      "Total number of schema compilations attempted",
		}),
		CompileErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "modelgate",
			Name:      "compile_errors_total",
			Help:      "Total number of failed schema compilations",
		}),
		CompileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "modelgate",
			Name:      "compile_duration_seconds",
			Help:      "Schema compilation duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		LastCompile: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "modelgate",
			Name:      "last_compile_timestamp_seconds",
			Help:      "Unix timestamp of the last successful compilation",
		}),
	}
}
