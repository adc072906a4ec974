package kernel

// schedulerOptions holds configuration for Init.
type schedulerOptions struct {
	logger            Logger
	pageAllocator     PageAllocator
	timeSlice         int64
	clock             func() int64
	addressSpaceHooks AddressSpaceHooks
}

// Option configures a Scheduler at construction time.
type Option interface {
	applyScheduler(*schedulerOptions)
}

// optionFunc implements Option from a plain function, following the
// teacher's loopOptionImpl pattern (options.go).
type optionFunc func(*schedulerOptions)

func (f optionFunc) applyScheduler(o *schedulerOptions) { f(o) }

// WithLogger installs a structured logger. The zero value (nil) is a valid
// Logger and disables logging entirely.
func WithLogger(l Logger) Option {
	return optionFunc(func(o *schedulerOptions) {
		o.logger = l
	})
}

// WithPageAllocator overrides the default platform PageAllocator, e.g. to
// inject a fake allocator in tests that fails deterministically.
func WithPageAllocator(a PageAllocator) Option {
	return optionFunc(func(o *schedulerOptions) {
		o.pageAllocator = a
	})
}

// WithTimeSlice overrides TimeSlice (the number of ticks between preemption
// requests), primarily for tests that want fast, deterministic preemption.
// Panics are not raised for n<=0; instead the Scheduler falls back to
// TimeSlice, since a non-positive slice would starve the preemption check.
func WithTimeSlice(n int64) Option {
	return optionFunc(func(o *schedulerOptions) {
		if n > 0 {
			o.timeSlice = n
		}
	})
}

// WithClock overrides the source of now() consulted by SleepUntil's
// past-due precondition (spec.md §4.2). The default clock reads the
// scheduler's own tick counter, so "now" is whatever Tick has last
// advanced it to; tests that want to assert the precondition without
// driving Tick can inject a fixed or fake clock here.
func WithClock(clock func() int64) Option {
	return optionFunc(func(o *schedulerOptions) {
		o.clock = clock
	})
}

// WithAddressSpaceHooks installs scheduler-wide AddressSpaceHooks, called
// at the two points spec.md §6 names regardless of any individual
// thread's own AddressSpace value.
func WithAddressSpaceHooks(h AddressSpaceHooks) Option {
	return optionFunc(func(o *schedulerOptions) {
		o.addressSpaceHooks = h
	})
}

// resolveOptions applies opts over the package defaults, following the
// teacher's resolveLoopOptions convention.
func resolveOptions(opts []Option) *schedulerOptions {
	cfg := &schedulerOptions{
		logger:    defaultLogger(),
		timeSlice: TimeSlice,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyScheduler(cfg)
	}
	if cfg.pageAllocator == nil {
		cfg.pageAllocator = newDefaultPageAllocator()
	}
	return cfg
}
