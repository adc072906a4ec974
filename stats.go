package kernel

import "fmt"

// Stats is a point-in-time snapshot of the scheduler's tick accounting
// (SPEC_FULL.md §7), the Go analogue of the original kernel's
// thread_print_stats.
type Stats struct {
	Ticks       int64
	IdleTicks   int64
	KernelTicks int64
	UserTicks   int64
	Ready       int
	Sleeping    int
}

// ReadyCount returns the number of runnable-but-not-running threads. The
// idle thread is never counted (spec invariant I8).
func (s *Scheduler) ReadyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ready)
}

// SleepingCount returns the number of threads parked on the sleeping
// queue. Unlike the original kernel's sleeping_count, there is no
// early-return bug here: the count always reflects the heap's true
// length, even when it is zero (SPEC_FULL.md Open Questions).
func (s *Scheduler) SleepingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sleeping.Len()
}

// ReadStats returns a consistent snapshot of the tick counters alongside
// the ready and sleeping queue lengths.
func (s *Scheduler) ReadStats() Stats {
	s.mu.Lock()
	ready := len(s.ready)
	sleeping := s.sleeping.Len()
	s.mu.Unlock()

	return Stats{
		Ticks:       s.tickCount.Load(),
		IdleTicks:   s.idleTicks.Load(),
		KernelTicks: s.kernelTicks.Load(),
		UserTicks:   s.userTicks.Load(),
		Ready:       ready,
		Sleeping:    sleeping,
	}
}

// PrintStats logs a Stats snapshot at debug level, throttled through
// statsLimiter so a thread that calls it in a tight loop cannot flood the
// log (SPEC_FULL.md §2/§7's domain-stack wiring for go-catrate). Returns
// false without logging if the rate limit is currently exceeded.
func (s *Scheduler) PrintStats() bool {
	if _, ok := s.statsLimiter.Allow("print_stats"); !ok {
		return false
	}

	st := s.ReadStats()
	logDebug(s.logger, "thread stats", func(b LogBuilder) {
		b.Int64("ticks", st.Ticks).
			Int64("idle_ticks", st.IdleTicks).
			Int64("kernel_ticks", st.KernelTicks).
			Int64("user_ticks", st.UserTicks).
			Int("ready", st.Ready).
			Int("sleeping", st.Sleeping)
	})
	return true
}

// String renders a Stats snapshot in the same dense, single-line style as
// the original kernel's printf-based thread_print_stats.
func (st Stats) String() string {
	return fmt.Sprintf("ticks=%d idle=%d kernel=%d user=%d ready=%d sleeping=%d",
		st.Ticks, st.IdleTicks, st.KernelTicks, st.UserTicks, st.Ready, st.Sleeping)
}

// ThreadInfo is a read-only snapshot of one thread, used only by debug
// helpers such as DumpReadyQueue; never consulted by scheduling decisions.
type ThreadInfo struct {
	ID        ThreadID
	Name      string
	Status    Status
	Priority  int
	CreatedAt int64
}

// DumpReadyQueue returns a point-in-time snapshot of the ready queue, head
// first, grounded on the original kernel's thread_foreach-based
// thread_print_stats (SPEC_FULL.md §4). The idle thread never appears here,
// since it is never enqueued.
func (s *Scheduler) DumpReadyQueue() []ThreadInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ThreadInfo, 0, len(s.ready))
	for _, t := range s.ready {
		out = append(out, ThreadInfo{
			ID:        t.id,
			Name:      t.name,
			Status:    t.status,
			Priority:  t.priority,
			CreatedAt: t.createdAt,
		})
	}
	return out
}
