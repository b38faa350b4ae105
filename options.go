package libevt

type options struct {
	target any
	logger Logger
}

// Option configures an Emitter, a ListenerManager or an EventManager.
type Option func(*options)

// WithTarget sets the value reported by Event.Target for events dispatched by
// an Emitter. Without it the Emitter (or the EventManager owning it) reports
// itself.
func WithTarget(target any) Option {
	return func(o *options) {
		o.target = target
	}
}

// WithLogger sets the logger. Defaults to NopLogger.
func WithLogger(l Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	o := options{logger: NopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = NopLogger()
	}
	return o
}
