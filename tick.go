package kernel

// tick.go implements the timer-driven half of the scheduler (spec.md §4.4):
// per-tick bookkeeping and the preemption request it can raise.
//
// The original kernel's timer_interrupt runs on the real CPU's hardware
// interrupt stack, physically preempting whatever instruction the running
// thread was on. Go gives us no such hook: nothing can force a goroutine to
// stop running arbitrary code it did not itself yield from. Tick is
// therefore driven by an external caller (a ticker goroutine, a test
// driver) rather than hardware, and — this is the one deliberate behavior
// change from the original design, a redesign forced by the runtime rather
// than a stylistic choice — "a safe point" for honoring a pending
// preemption request is not automatic. Thread bodies that want to be
// preemptible must call CheckPreempt themselves at a safe point in their
// own loop, the same cooperative contract every green-thread or coroutine
// scheduler without OS-level preemption imposes on its callers.

// Tick advances the scheduler's notion of time by one unit and accounts it
// against the thread that is current at the instant it is called: idle
// ticks, kernel ticks (a thread with no AddressSpace), or user ticks
// (spec.md §4.4). Its own bookkeeping never acquires mu: current is read
// via its atomic pointer, and the per-tick counters are all atomics. It
// then runs the WakeDue sweep for the new tick, which acquires mu only when
// a sleeper may be due.
func (s *Scheduler) Tick() int64 {
	s.intrContext.Store(true)
	defer s.intrContext.Store(false)

	now := s.tickCount.Add(1)

	cur := s.current.Load()
	idle := s.idle.Load()
	switch {
	case cur == idle:
		s.idleTicks.Add(1)
	case cur.AddressSpace != nil:
		s.userTicks.Add(1)
	default:
		s.kernelTicks.Add(1)
	}

	if s.sliceTicks.Add(1) >= s.timeSlice {
		s.preemptPending.Store(true)
	}

	s.WakeDue(now)

	return now
}

// CheckPreempt yields the calling thread if Tick has raised a pending
// preemption request for the current slice (spec.md §4.4: "it performs the
// yield() at a safe point, not from inside the handler"). Thread bodies
// should call this between units of work. It is a no-op if no preemption
// is pending.
func (s *Scheduler) CheckPreempt() {
	if s.preemptPending.CompareAndSwap(true, false) {
		s.Yield()
	}
}
