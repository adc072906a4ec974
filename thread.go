package kernel

// ThreadID uniquely identifies a thread for its entire lifetime.
type ThreadID int64

// ThreadFunc is the body of a kernel thread, invoked on its first dispatch.
// aux is opaque caller data, passed through from Create.
type ThreadFunc func(aux any)

// Thread is the control block for one kernel thread. In the original C
// kernel this struct sits at offset 0 of the thread's own 4 KiB page, with
// the kernel stack occupying the rest of the page; Go has no equivalent of
// placing a struct at the base of a goroutine's stack, so Thread is an
// ordinary heap value, and its associated Page (see page.go) is tracked
// only for the PageAllocator accounting spec.md §3 describes.
type Thread struct {
	id       ThreadID
	name     string
	status   Status
	priority int
	wakeTick int64 // NotSleeping unless queued on the sleeping queue
	magic    uint32

	// createdAt is a supplemental debug field (SPEC_FULL.md §3), the tick
	// at which the thread was created; consulted only by the DumpReadyQueue
	// diagnostic, never by scheduling decisions.
	createdAt int64

	// AddressSpace is the optional user-program hook (spec.md §3/§6).
	AddressSpace AddressSpace

	page Page // nil for the initial thread, which owns no allocated page

	// resumeCh is the context-switch baton: exactly one send unparks the
	// thread's goroutine. Buffered at capacity 1 so the scheduler can signal
	// a thread that has not yet reached its park point without blocking
	// itself (see switch.go).
	resumeCh chan struct{}

	// pendingPrev is set by schedule() immediately before signalling
	// resumeCh, naming the thread this one is switching in from. Only the
	// resumed thread ever reads its own pendingPrev, so no lock is needed
	// around the field itself.
	pendingPrev *Thread

	// heapIndex is this thread's position in the sleeping queue's min-heap,
	// maintained by container/heap. -1 when not sleeping.
	heapIndex int

	// allElem links this thread into the Scheduler's all-threads registry.
	allElem *registryElem

	sched *Scheduler
}

// ID returns the thread's unique identifier.
func (t *Thread) ID() ThreadID { return t.id }

// Name returns the thread's debug name.
func (t *Thread) Name() string { return t.name }

// Status returns the thread's current life-cycle state.
func (t *Thread) Status() Status { return t.status }

// GetPriority returns the thread's stored priority. The round-robin
// scheduler never consults this value (spec.md §1 Non-goals).
func (t *Thread) GetPriority() int { return t.priority }

// SetPriority updates the thread's stored priority. Panics via
// ContractViolationError if p is outside [PriMin, PriMax] (spec.md §7).
func (t *Thread) SetPriority(p int) {
	if p < PriMin || p > PriMax {
		err := &ContractViolationError{Rule: "priority out of range"}
		logFatal(t.sched.logger, "set_priority: invalid priority", err)
		panic(err)
	}
	t.priority = p
}

// GetNice, GetRecentCPU, and GetLoadAvg are non-functional placeholders:
// the MLFQS scheduler, nice values, and load-average/recent-CPU accounting
// are declared non-goals (spec.md §1). They always return zero.
func (t *Thread) GetNice() int     { return 0 }
func (t *Thread) GetRecentCPU() int { return 0 }

// GetLoadAvg is a Scheduler-level (not per-thread) placeholder accessor,
// provided for API parity with the original kernel's thread_get_load_avg.
func (s *Scheduler) GetLoadAvg() int { return 0 }

// checkMagic validates the canary, per spec.md §7 ("Stack overflow is
// detected via the magic canary on entry to current()"). A corrupted
// canary is a fatal contract violation.
func (t *Thread) checkMagic() {
	if t.magic != ThreadMagic {
		err := &ContractViolationError{Rule: "thread magic canary corrupted (stack overflow)"}
		logFatal(t.sched.logger, "current: magic check failed", err)
		panic(err)
	}
}
