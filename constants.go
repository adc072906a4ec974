package kernel

// Priority bounds (spec.md §6). The round-robin scheduler never consults
// these; they are stored and accessible only, per spec.md §1's declared
// Non-goals (MLFQS, nice, load average, recent-CPU accounting).
const (
	PriMin     = 0
	PriDefault = 31
	PriMax     = 63
)

// TimeSlice is the number of ticks between preemption requests (spec.md §4.4).
const TimeSlice int64 = 4

// ErrorID is returned by Create in place of a ThreadID on resource
// exhaustion (spec.md §6).
const ErrorID ThreadID = -1

// NotSleeping is the sentinel wake tick for a thread that is not in the
// sleeping queue (spec invariant I4).
const NotSleeping int64 = -1

// EmptySentinel is the cached min-wake value when the sleeping queue is
// empty (spec invariant I6).
const EmptySentinel int64 = -1

// ThreadMagic is the fixed canary pattern stored in every live thread
// record; corruption indicates stack overflow in the original C kernel.
// Retained for fidelity to spec.md §3 (I7) even though Go's goroutine
// stacks cannot actually be overrun by a misbehaving thread function.
const ThreadMagic uint32 = 0xcd6abf4b
