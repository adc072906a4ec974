package kernel

import "runtime"

// switch.go implements the dispatcher described by spec.md §4.1 and §4.3:
// Create, Exit, Yield, Block, Unblock, and the schedule()/switch()/
// schedule_tail() pipeline they all funnel through.
//
// The original kernel's switch() is hand-written assembly that saves the
// outgoing thread's callee-saved registers onto its own stack, swaps the
// stack pointer, and returns "into" the incoming thread, which resumes
// exactly where its own earlier switch() call left off. Go gives every
// thread its own goroutine and stack instead, so switch() here is a
// channel hand-off: schedule() signals the incoming thread's resumeCh and
// parks the outgoing thread on its own resumeCh, and whichever goroutine
// is signalled next simply resumes past its own blocking receive — the
// same "resume exactly where you left off" property, implemented without
// registers. scheduleTailLocked is schedule_tail: it finalizes the
// dispatch (status, slice reset) and reaps a thread that exited.

// Create spawns a new thread and makes it ready to run (spec.md §4.1).
// Returns ErrSchedulerNotStarted if called before Start.
func (s *Scheduler) Create(name string, priority int, fn ThreadFunc, aux any) (ThreadID, error) {
	if !s.started.Load() {
		return ErrorID, ErrSchedulerNotStarted
	}
	return s.createThread(name, priority, fn, aux)
}

// createThread is Create's implementation, also used directly by Start to
// spawn the idle thread (Create's started check would otherwise apply to
// Start's own idle-thread creation).
func (s *Scheduler) createThread(name string, priority int, fn ThreadFunc, aux any) (ThreadID, error) {
	if priority < PriMin || priority > PriMax {
		// spec.md §7 classifies an out-of-range priority as a contract
		// violation, not resource exhaustion: fatal, same as init_thread's
		// ASSERT in the original kernel, and the same treatment
		// SetPriority already gives the identical range check.
		violate(s, "create: priority out of range")
	}

	page, err := s.pageAlloc.AllocZeroed()
	if err != nil {
		return ErrorID, wrapError("kernel: create", ErrPageAllocFailed)
	}

	t := &Thread{
		name:      name,
		status:    StatusBlocked, // born BLOCKED; Unblock below makes it READY (spec.md §3)
		priority:  priority,
		wakeTick:  NotSleeping,
		magic:     ThreadMagic,
		heapIndex: -1,
		page:      page,
		resumeCh:  make(chan struct{}, 1),
		sched:     s,
	}

	s.mu.Lock()
	t.id = s.reg.allocID()
	t.createdAt = s.tickCount.Load()
	s.reg.add(t)
	s.mu.Unlock()

	go s.runThread(t, fn, aux)

	s.Unblock(t)

	logDebug(s.logger, "thread created", func(b LogBuilder) {
		b.Int64("tid", int64(t.id)).Str("name", t.name).Int("priority", priority)
	})

	return t.id, nil
}

// runThread is the goroutine body for every created thread: it is the Go
// analogue of the original kernel's switch_entry/kernel_thread trampoline.
// It parks immediately on its own resumeCh (a thread is born BLOCKED and
// only becomes current once the dispatcher picks it), runs schedule_tail
// on its first dispatch exactly like any other resumption, then calls the
// thread function and exits.
func (s *Scheduler) runThread(t *Thread, fn ThreadFunc, aux any) {
	<-t.resumeCh

	s.mu.Lock()
	activate, page, reapID, shouldReap := s.scheduleTailLocked(t.pendingPrev)
	s.mu.Unlock()
	s.afterScheduleTail(activate, page, reapID, shouldReap)

	fn(aux)
	s.Exit()
}

// Exit terminates the calling thread (spec.md §4.1). It never returns to
// its caller: once the next thread has been dispatched, the goroutine
// running it ends via runtime.Goexit (running its deferred calls), exactly
// mirroring thread_exit's NO_RETURN contract.
func (s *Scheduler) Exit() {
	if s.IntrContext() {
		violate(s, "exit called from interrupt context")
	}

	t := s.Current()
	if t.AddressSpace != nil {
		t.AddressSpace.Deactivate()
	}
	if s.addrHooks.OnDeactivate != nil {
		s.addrHooks.OnDeactivate(t)
	}

	s.mu.Lock()
	s.reg.remove(t)
	t.status = StatusDying
	s.scheduleLocked()
	runtime.Goexit()
}

// Block transitions the calling thread to BLOCKED and dispatches the next
// ready thread (spec.md §4.1). The caller is responsible for having
// arranged some other code path to Unblock it again.
func (s *Scheduler) Block() {
	if s.IntrContext() {
		violate(s, "block called from interrupt context")
	}
	s.mu.Lock()
	s.blockLocked()
}

// blockLocked is Block's body, for callers that already hold mu (none in
// this package currently do directly; Block acquires it itself, kept
// separate so the lock/transition/schedule sequence has one definition).
func (s *Scheduler) blockLocked() {
	s.current.Load().status = StatusBlocked
	s.scheduleLocked()
}

// Unblock transitions a BLOCKED thread to READY and enqueues it, without
// preempting the caller (spec.md §4.1, §4.3: "does not itself call
// schedule"). Panics via ContractViolationError if t is not BLOCKED.
func (s *Scheduler) Unblock(t *Thread) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unblockLocked(t)
}

func (s *Scheduler) unblockLocked(t *Thread) {
	if t.status != StatusBlocked {
		violate(s, "unblock: thread is not BLOCKED")
	}
	t.status = StatusReady
	s.readyEnqueueLocked(t)
}

// Yield transitions the calling thread to READY, appends it to the tail of
// the ready queue, and dispatches (spec.md §4.1, §4.3). The idle thread
// never calls Yield (it only ever Blocks), so invariant I8 ("idle is never
// queued") holds without a special case here.
func (s *Scheduler) Yield() {
	if s.IntrContext() {
		violate(s, "yield called from interrupt context")
	}
	s.mu.Lock()
	cur := s.current.Load()
	cur.status = StatusReady
	s.readyEnqueueLocked(cur)
	s.scheduleLocked()
}

// readyEnqueueLocked appends t to the tail of the ready queue. Must be
// called with mu held.
func (s *Scheduler) readyEnqueueLocked(t *Thread) {
	s.ready = append(s.ready, t)
}

// readyPopLocked removes and returns the head of the ready queue, or nil if
// empty. Must be called with mu held.
func (s *Scheduler) readyPopLocked() *Thread {
	if len(s.ready) == 0 {
		return nil
	}
	t := s.ready[0]
	s.ready[0] = nil
	s.ready = s.ready[1:]
	if len(s.ready) == 0 {
		s.ready = nil // drop the spent backing array rather than let it grow unbounded
	}
	return t
}

// nextToRunLocked implements spec.md §4.3's next_to_run: pop the ready
// queue's head, or fall back to the idle thread when it is empty. The
// fallback does not check idle's own status; when idle itself calls Block
// with nothing else ready, this correctly returns idle again (next == prev
// in scheduleLocked), which is how idle's loop becomes a no-op exactly
// when there is nothing to hand the CPU to.
func (s *Scheduler) nextToRunLocked() *Thread {
	if t := s.readyPopLocked(); t != nil {
		return t
	}
	idle := s.idle.Load()
	if idle == nil {
		violate(s, "no ready thread and idle thread not yet started")
	}
	return idle
}

// scheduleLocked is schedule(): it must be called with mu held and with
// s.current already transitioned out of RUNNING. It picks the next thread,
// performs the (possibly trivial) switch, and by the time it returns mu is
// released and schedule_tail has run for whichever thread's call this is.
func (s *Scheduler) scheduleLocked() {
	prev := s.current.Load()
	next := s.nextToRunLocked()

	if next == prev {
		// No actual context switch: either idle re-dispatching itself with
		// nothing else ready, or a degenerate single-thread system.
		activate, page, reapID, shouldReap := s.scheduleTailLocked(nil)
		s.mu.Unlock()
		s.afterScheduleTail(activate, page, reapID, shouldReap)
		return
	}

	next.pendingPrev = prev
	s.current.Store(next)
	wasDying := prev.status == StatusDying
	nonBlockingSignal(next.resumeCh)
	s.mu.Unlock()

	if wasDying {
		// prev's goroutine returns out through Exit/runThread and ends; no
		// schedule_tail runs for it, matching the original's "never
		// returns" contract for the exiting thread.
		return
	}

	<-prev.resumeCh // park until some later schedule() hands the CPU back

	s.mu.Lock()
	activate, page, reapID, shouldReap := s.scheduleTailLocked(prev.pendingPrev)
	s.mu.Unlock()
	s.afterScheduleTail(activate, page, reapID, shouldReap)
}

// scheduleTailLocked is schedule_tail (spec.md §4.1): it marks the new
// current thread RUNNING, resets the preemption slice counter, and, if the
// thread being switched away from was DYING, hands back its page for
// reaping. Must be called with mu held; side effects that must not run
// under the lock (address space activation, the allocator call) are
// returned for afterScheduleTail to perform once unlocked.
func (s *Scheduler) scheduleTailLocked(prevForReap *Thread) (activate *Thread, reapPage Page, reapID ThreadID, shouldReap bool) {
	cur := s.current.Load()
	cur.status = StatusRunning
	s.sliceTicks.Store(0)
	s.preemptPending.Store(false)
	activate = cur

	if prevForReap != nil && prevForReap.status == StatusDying {
		shouldReap = true
		reapPage = prevForReap.page
		reapID = prevForReap.id
		prevForReap.page = nil
	}
	return
}

// afterScheduleTail performs the side effects scheduleTailLocked deferred:
// activating the new current thread's address space, and freeing a dying
// predecessor's page (spec.md §4.1, §8: "reaping is single-ownership").
func (s *Scheduler) afterScheduleTail(activate *Thread, page Page, reapID ThreadID, shouldReap bool) {
	if activate != nil && activate.AddressSpace != nil {
		activate.AddressSpace.Activate()
	}
	if activate != nil && s.addrHooks.OnActivate != nil {
		s.addrHooks.OnActivate(activate)
	}
	if shouldReap {
		s.pageAlloc.Free(page)
		logDebug(s.logger, "thread reaped", func(b LogBuilder) {
			b.Int64("tid", int64(reapID))
		})
	}
}

// nonBlockingSignal sends on a capacity-1 channel without blocking. Safe
// here because a thread is only ever the target of one pending dispatch at
// a time: it cannot be signalled again until it has consumed the previous
// signal and parked once more.
func nonBlockingSignal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// violate logs and panics with a ContractViolationError, the Go stand-in
// for the original kernel's fatal assertions (spec.md §7).
func violate(s *Scheduler, rule string) {
	err := &ContractViolationError{Rule: rule}
	logFatal(s.logger, "contract violation", err)
	panic(err)
}
