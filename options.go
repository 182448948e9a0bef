package algophase

import (
	"runtime"

	"github.com/cwbudde/algo-phase/engine"
)

type options struct {
	backend     engine.Backend
	deviceIndex int
	logger      *Logger
	metrics     MetricsCollector
	workers     int
}

func defaultOptions() options {
	return options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
		workers: runtime.GOMAXPROCS(0),
	}
}

// Option configures NewPhase.
type Option func(*options)

// WithBackend selects the array engine that evaluates gradients and phases.
//
// If nil is passed, engine.Default() is used.
func WithBackend(b engine.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithDevice selects the device of the backend. The default is device 0.
func WithDevice(index int) Option {
	return func(o *options) {
		o.deviceIndex = index
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics sets the metrics collector. If nil is passed, metrics are
// discarded.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithWorkers bounds the number of momenta Project reduces concurrently.
// workers <= 0 selects runtime.GOMAXPROCS(0).
func WithWorkers(workers int) Option {
	return func(o *options) {
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		o.workers = workers
	}
}
