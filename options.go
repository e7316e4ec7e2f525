package growvec

// MemoryAcquirer is the budget a vector charges its buffer against.
// *resource.Controller implements it.
type MemoryAcquirer interface {
	AcquireMemory(bytes int64) error
	ReleaseMemory(bytes int64)
}

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	memory           MemoryAcquirer
}

// Option configures a Vector or RawVector at construction.
type Option func(*options)

// WithLogger sets the logger used for growth, release and close events.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets a collector for growth, release and shift counters.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithMemoryAcquirer charges every buffer the vector allocates against m.
// An acquisition failure surfaces as ErrAllocation.
//
// Clones share the acquirer of their source.
func WithMemoryAcquirer(m MemoryAcquirer) Option {
	return func(o *options) {
		o.memory = m
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}
