package kernel

// Status is a thread's position in the life-cycle described by spec.md §3.
//
// Transition table:
//
//	READY   -> RUNNING   (dispatcher picks it)
//	RUNNING -> READY     (Yield, or CheckPreempt once a slice has expired)
//	RUNNING -> BLOCKED   (Block, SleepUntil, or a wait primitive)
//	BLOCKED -> READY     (Unblock, WakeDue, or wait-primitive release)
//	RUNNING -> DYING     (Exit)
//	DYING   -> (reclaimed by the next scheduled thread's switch epilogue)
//
// Unlike the teacher's [eventloop.LoopState], Status is not manipulated via
// atomic CAS: every mutation happens while the Scheduler's lock is held (the
// Go analogue of interrupts-off), so a plain field suffices.
type Status int

const (
	// StatusRunning is the currently executing thread. Exactly one thread
	// has this status at any moment (spec invariant I2).
	StatusRunning Status = iota
	// StatusReady is runnable but not currently executing.
	StatusReady
	// StatusBlocked is waiting for an event: a sleep deadline, or release
	// from a higher-level wait primitive.
	StatusBlocked
	// StatusDying is terminal; the thread's page is reclaimed by the next
	// scheduled thread's switch epilogue.
	StatusDying
)

// String returns a human-readable name, mirroring the teacher's
// LoopState.String().
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusReady:
		return "ready"
	case StatusBlocked:
		return "blocked"
	case StatusDying:
		return "dying"
	default:
		return "unknown"
	}
}
