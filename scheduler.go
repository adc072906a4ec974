package kernel

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-catrate"
)

// Scheduler is the single global context described by spec.md §9's design
// note: "model as a single scheduler context value constructed by init()."
// It owns the ready queue, the sleeping queue and its min-wake cache, the
// all-threads registry, and the TID counter. Its mu field is the Go
// analogue of disabling interrupts on a single CPU: every mutation of the
// structures above happens with mu held.
type Scheduler struct {
	mu sync.Mutex

	// intrEnabled tracks the logical interrupt level, toggled by
	// IntrDisable/IntrSetLevel. Only ever read/written while mu is held by
	// the goroutine that is the current logical "CPU" holder.
	intrEnabled bool
	intrContext atomic.Bool

	reg      *registry
	ready    []*Thread // FIFO; see readyEnqueueLocked/readyPopLocked for the Goja-style slice discipline
	sleeping sleepHeap

	// minWake caches the sleeping queue head's wakeTick, or EmptySentinel
	// when empty (spec invariant I6). Deliberately an atomic.Int64 so
	// WakeDue's fast path (spec.md §4.2) can read it without acquiring mu,
	// exactly as specified: a racy read either observes a value >= the true
	// minimum, or a value > now, and in both cases the gate's decision is
	// still correct (see the correctness argument in spec.md §4.2).
	minWake atomic.Int64

	// current and idle are atomic.Pointer rather than plain fields so that
	// Tick (spec.md §4.4's "on_tick... must not lock") can read the running
	// thread's identity without acquiring mu; every write to current after
	// Init happens with mu held, and idle is written once, by the idle
	// thread on its first run, so this is a single-writer/multi-reader
	// pattern, not a race.
	current atomic.Pointer[Thread]
	idle    atomic.Pointer[Thread]
	initial *Thread

	pageAlloc PageAllocator
	logger    Logger
	timeSlice int64

	// clock is consulted by SleepUntil's past-due precondition (spec.md
	// §4.2). Defaults to reading tickCount; overridable via WithClock.
	clock func() int64

	addrHooks AddressSpaceHooks

	tickCount   atomic.Int64
	sliceTicks  atomic.Int64
	idleTicks   atomic.Int64
	kernelTicks atomic.Int64
	userTicks   atomic.Int64

	// preemptPending is set by Tick when the current thread's slice has
	// expired. Tick itself never yields: the request is consumed only by
	// CheckPreempt, which yields when a thread body calls it, and it is
	// cleared at every switch epilogue. A thread that never calls
	// CheckPreempt is not preempted.
	preemptPending atomic.Bool

	statsLimiter *catrate.Limiter

	started   atomic.Bool
	idleReady chan struct{}
}

// Init constructs a Scheduler and transforms the calling goroutine into the
// initial thread (spec.md §3: "the pre-existing main context transformed
// into a thread by init()"). The initial thread is never freed by the core
// because it was not page-allocated (spec.md §3, Ownership).
func Init(opts ...Option) *Scheduler {
	cfg := resolveOptions(opts)

	s := &Scheduler{
		intrEnabled: true,
		reg:         newRegistry(),
		pageAlloc:   cfg.pageAllocator,
		logger:      cfg.logger,
		timeSlice:   cfg.timeSlice,
		clock:       cfg.clock,
		addrHooks:   cfg.addressSpaceHooks,
		idleReady:   make(chan struct{}),
		statsLimiter: catrate.NewLimiter(map[time.Duration]int{
			time.Second: 1,
		}),
	}
	s.minWake.Store(EmptySentinel)

	initial := &Thread{
		name:      "main",
		status:    StatusRunning,
		priority:  PriDefault,
		wakeTick:  NotSleeping,
		magic:     ThreadMagic,
		heapIndex: -1,
		resumeCh:  make(chan struct{}, 1),
		sched:     s,
	}
	initial.id = s.reg.allocID()
	s.reg.add(initial)
	s.initial = initial
	s.current.Store(initial)

	logDebug(s.logger, "scheduler initialized", func(b LogBuilder) {
		b.Int64("initial_tid", int64(initial.id))
	})

	return s
}

// Start creates the idle thread and blocks the calling (initial) thread
// until the idle thread has run once and captured itself (spec.md §4.5).
// It is an error to call Start more than once.
func (s *Scheduler) Start() error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrSchedulerAlreadyStarted
	}

	if s.Current() != s.initial {
		return fmt.Errorf("kernel: Start must be called from the initial thread")
	}

	if _, err := s.createThread("idle", PriMin, idleBody, s); err != nil {
		return wrapError("kernel: failed to create idle thread", err)
	}

	// Block the initial thread so the only ready thread (idle) gets to run;
	// idle signals idleReady then Unblocks us, exactly mirroring the
	// original kernel's sema_down(&idle_started)/sema_up pairing, built
	// from the same Block/Unblock primitives higher-level code would use.
	s.Block()

	<-s.idleReady
	return nil
}

// idleBody is the idle thread's function, per spec.md §4.5.
func idleBody(aux any) {
	s := aux.(*Scheduler)
	s.idle.Store(s.Current())

	initial := s.initial
	close(s.idleReady)
	s.Unblock(initial)

	for {
		s.Block()
		// "enable interrupts; halt CPU" has no Go equivalent (there is no
		// CPU to halt); the loop simply re-parks via Block above. Because
		// nextToRunLocked falls back to the idle thread itself whenever the
		// ready queue is empty, this Block is a no-op exactly when there is
		// nothing else to run, and otherwise yields the CPU to the next
		// ready thread, per spec.md §4.5.
	}
}

// IntrDisable acquires the scheduler's single lock, the Go analogue of
// disabling interrupts on a single CPU, and returns the previous interrupt
// level for IntrSetLevel to restore.
func (s *Scheduler) IntrDisable() bool {
	s.mu.Lock()
	prev := s.intrEnabled
	s.intrEnabled = false
	return prev
}

// IntrSetLevel restores a previously captured interrupt level and releases
// the lock acquired by the matching IntrDisable.
func (s *Scheduler) IntrSetLevel(prev bool) {
	s.intrEnabled = prev
	s.mu.Unlock()
}

// IntrGetLevel reports whether interrupts are currently enabled. Must only
// be called by the current lock holder (i.e. between IntrDisable and
// IntrSetLevel, or from the thread that is logically "current").
func (s *Scheduler) IntrGetLevel() bool {
	return s.intrEnabled
}

// IntrContext reports whether Tick (the hard interrupt context analogue) is
// currently executing. The flag is scheduler-wide, not per goroutine.
func (s *Scheduler) IntrContext() bool {
	return s.intrContext.Load()
}

// now returns the clock value SleepUntil's past-due precondition compares
// deadlines against (spec.md §4.2): the configured WithClock, or the tick
// counter by default.
func (s *Scheduler) now() int64 {
	if s.clock != nil {
		return s.clock()
	}
	return s.tickCount.Load()
}

// Current returns the logically running thread.
func (s *Scheduler) Current() *Thread {
	t := s.current.Load()
	t.checkMagic()
	return t
}

// ForEach traverses every live thread under the scheduler lock (spec.md
// §4.6).
func (s *Scheduler) ForEach(fn func(t *Thread)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.forEach(fn)
}

// Lookup finds a thread by id, for debug tooling (SPEC_FULL.md §8).
func (s *Scheduler) Lookup(id ThreadID) (*Thread, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.lookup(id)
}
