package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSleepUntil_WakesInDeadlineOrder creates three threads that sleep for
// out-of-creation-order deadlines (30, 10, 20) and verifies WakeDue wakes
// them strictly by ascending deadline, not by creation or sleep-call order.
func TestSleepUntil_WakesInDeadlineOrder(t *testing.T) {
	s := Init()
	require.NoError(t, s.Start())

	woke := make(chan string, 3)
	spawn := func(name string, deadline int64) {
		_, err := s.Create(name, PriDefault, func(aux any) {
			sched := aux.(*Scheduler)
			sched.SleepUntil(deadline)
			woke <- name
		}, s)
		require.NoError(t, err)
	}
	spawn("w30", 30)
	spawn("w10", 10)
	spawn("w20", 20)

	// A single Yield dispatches w30, which sleeps and hands off to w10,
	// which sleeps and hands off to w20, which sleeps and hands control
	// back to main: all three are now parked on the sleeping queue.
	s.Yield()

	assert.Equal(t, 0, s.ReadyCount())
	assert.Equal(t, 3, s.SleepingCount())

	snap := s.SleepingSnapshot()
	assert.Len(t, snap, 3)

	s.WakeDue(15) // only w10 (wakeTick=10) is due
	assert.Equal(t, 1, s.ReadyCount())
	assert.Equal(t, 2, s.SleepingCount())
	s.Yield() // dispatch w10; it sends and exits, control returns to main

	s.WakeDue(25) // w20 (wakeTick=20) is now due
	s.Yield()

	s.WakeDue(35) // w30 (wakeTick=30) is now due
	s.Yield()

	close(woke)
	var order []string
	for name := range woke {
		order = append(order, name)
	}
	assert.Equal(t, []string{"w10", "w20", "w30"}, order)
	assert.Equal(t, 0, s.SleepingCount())
}

// TestSleepUntil_PastDeadlineReturnsImmediately verifies the precondition
// spec.md §4.2 requires: a deadline strictly before now() returns
// immediately, leaving the caller RUNNING and the sleeping queue untouched.
func TestSleepUntil_PastDeadlineReturnsImmediately(t *testing.T) {
	s := Init(WithClock(func() int64 { return 100 }))
	require.NoError(t, s.Start())

	s.SleepUntil(50)

	assert.Equal(t, 0, s.SleepingCount())
	assert.Same(t, s.initial, s.Current())
}

// TestSleepUntil_IdleNeverSleeps verifies invariant I8: calling SleepUntil
// while the idle thread is current returns immediately rather than
// enqueueing idle onto the sleeping queue.
func TestSleepUntil_IdleNeverSleeps(t *testing.T) {
	s := Init()
	require.NoError(t, s.Start())

	idle := s.idle.Load()
	require.NotNil(t, idle)

	s.current.Store(idle)
	statusBefore := idle.Status()
	s.SleepUntil(1_000_000)

	assert.Equal(t, 0, s.SleepingCount())
	assert.Equal(t, statusBefore, idle.Status(), "SleepUntil must not touch idle's status")

	s.current.Store(s.initial)
}

// TestWakeDue_FastPathNoOp verifies WakeDue is a pure no-op (no wakes, no
// panics, no lock contention it cannot resolve) when the sleeping queue is
// empty, exercising the fast-path gate the minWake cache exists for.
func TestWakeDue_FastPathNoOp(t *testing.T) {
	s := Init()
	require.NoError(t, s.Start())

	assert.Equal(t, EmptySentinel, s.minWake.Load())
	s.WakeDue(1_000_000)
	assert.Equal(t, 0, s.ReadyCount())
	assert.Equal(t, 0, s.SleepingCount())
}
