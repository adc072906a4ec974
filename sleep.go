package kernel

import "container/heap"

// sleepHeap is the sleeping queue's backing store: a min-heap ordered by
// wakeTick, grounded on the teacher's timerHeap (eventloop/timer.go) —
// the same "cheapest deadline at the root" shape, generalized from firing
// timer callbacks to waking threads.
type sleepHeap []*Thread

func (h sleepHeap) Len() int { return len(h) }

func (h sleepHeap) Less(i, j int) bool { return h[i].wakeTick < h[j].wakeTick }

func (h sleepHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *sleepHeap) Push(x any) {
	t := x.(*Thread)
	t.heapIndex = len(*h)
	*h = append(*h, t)
}

func (h *sleepHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.heapIndex = -1
	*h = old[:n-1]
	return t
}

// SleepUntil blocks the calling thread until WakeDue observes a tick
// greater than or equal to deadline (spec.md §4.2). A deadline already in
// the past returns immediately, the caller staying RUNNING, exactly as
// the original kernel's sleep_until checks wakeup_time_ticks against
// timer_ticks() before ever touching the sleeping queue. The idle thread
// never sleeps: calling this while idle is current also returns
// immediately, leaving idle untouched.
func (s *Scheduler) SleepUntil(deadline int64) {
	if s.IntrContext() {
		violate(s, "sleep_until called from interrupt context")
	}

	if deadline < s.now() {
		return
	}

	s.mu.Lock()
	cur := s.current.Load()
	if cur == s.idle.Load() {
		s.mu.Unlock()
		return
	}

	cur.wakeTick = deadline
	heap.Push(&s.sleeping, cur)
	s.syncMinWakeLocked()
	cur.status = StatusBlocked
	s.scheduleLocked()
}

// WakeDue is the timer-driven wake sweep (spec.md §4.2). Its fast path
// reads minWake without acquiring mu: if the sleeping queue is empty or its
// earliest deadline is still in the future, WakeDue returns having touched
// no shared structure beyond one atomic load, exactly as the fast-path
// gate requires. Only when a wake may be due does it acquire mu and drain
// every thread whose wakeTick has arrived.
func (s *Scheduler) WakeDue(now int64) {
	minWake := s.minWake.Load()
	if minWake == EmptySentinel || minWake > now {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for s.sleeping.Len() > 0 && s.sleeping[0].wakeTick <= now {
		t := heap.Pop(&s.sleeping).(*Thread)
		t.wakeTick = NotSleeping
		s.unblockLocked(t)
	}
	s.syncMinWakeLocked()
}

// syncMinWakeLocked refreshes the minWake cache from the heap root. Must be
// called with mu held, after any mutation of the sleeping queue.
func (s *Scheduler) syncMinWakeLocked() {
	if s.sleeping.Len() == 0 {
		s.minWake.Store(EmptySentinel)
		return
	}
	s.minWake.Store(s.sleeping[0].wakeTick)
}

// SleepEntry is a debug snapshot of one sleeping thread (SPEC_FULL.md §5).
type SleepEntry struct {
	ID       ThreadID
	Name     string
	WakeTick int64
}

// SleepingSnapshot returns the current sleeping queue, in heap order (not
// necessarily sorted beyond the root), for diagnostics and tests.
func (s *Scheduler) SleepingSnapshot() []SleepEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SleepEntry, 0, len(s.sleeping))
	for _, t := range s.sleeping {
		out = append(out, SleepEntry{ID: t.id, Name: t.name, WakeTick: t.wakeTick})
	}
	return out
}
