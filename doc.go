// Package kernel implements the thread scheduling core of a small teaching
// kernel: creation of kernel-mode execution contexts, their life-cycle,
// cooperative and preemptive multiplexing onto a single logical CPU, and a
// timed-sleep facility ([Scheduler.SleepUntil] / [Scheduler.WakeDue]).
//
// # Architecture
//
// A [Scheduler], constructed by [Init], owns every piece of scheduler-wide
// mutable state: the ready queue, the sleeping queue (and its min-wake
// fast-path cache), the all-threads registry, and the TID counter. Go has no
// raw stack pointers or inline assembly, so the context-switch protocol
// described by the original specification (hand-built stack frames, a
// first-run trampoline) is re-architected around one goroutine per [Thread],
// parked on a private resume channel except while it is the single logical
// "current" thread. See switch.go for the hand-off protocol.
//
// # Concurrency model
//
// The design is uniprocessor by construction: [Scheduler] methods that
// mutate the ready queue, sleeping queue, registry, or a thread's
// status/wake tick always do so while holding the scheduler's single lock,
// the Go analogue of disabling interrupts on a single CPU. At most one
// thread goroutine is ever past its park point at a time.
//
// # Usage
//
//	sched := kernel.Init(kernel.WithLogger(logger))
//	if err := sched.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	id, err := sched.Create("worker", kernel.PriDefault, func(aux any) {
//	    defer sched.Exit()
//	    sched.Yield()
//	}, nil)
//	for sched.Tick() < 100 {
//	    // driven by an external timer device
//	}
//
// # Out of scope
//
// The page allocator's production quality, the synchronization primitives
// built on top of this core (semaphores, locks), the timer device, the
// MLFQS scheduler, and user-program address-space management are all
// external collaborators or non-goals; see SPEC_FULL.md.
package kernel
