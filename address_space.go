package kernel

// AddressSpace is the optional user-program hook referenced, but not
// implemented, by spec.md §6 ("process_activate() invoked inside
// schedule_tail after switching in; process_exit() invoked at the top of
// exit()"). User-program extensions are out of scope (spec.md §1); this
// interface exists only so an external layer can plug into the two call
// sites the spec names.
type AddressSpace interface {
	// Activate is invoked by the switch epilogue, after a thread with a
	// non-nil AddressSpace becomes current.
	Activate()
	// Deactivate is invoked at the top of Exit, before a thread's
	// registry entry is removed.
	Deactivate()
}

// AddressSpaceHooks lets an embedder observe the two call sites spec.md §6
// names (process_activate/process_exit) independent of any individual
// thread's AddressSpace value, e.g. for metrics or logging that should fire
// regardless of whether a given thread carries a user-program address
// space. Either field may be nil.
type AddressSpaceHooks struct {
	// OnActivate is called from the switch epilogue for every thread that
	// becomes current, after that thread's own AddressSpace.Activate (if
	// any) has run.
	OnActivate func(t *Thread)
	// OnDeactivate is called at the top of Exit, after the exiting
	// thread's own AddressSpace.Deactivate (if any) has run.
	OnDeactivate func(t *Thread)
}
