package kernel

// PageSize is the fixed page size backing every thread's stack region,
// matching the original kernel's 4 KiB pages (spec.md §3/§6).
const PageSize = 4096

// Page is a zeroed, page-aligned memory region returned by a
// PageAllocator. Bytes returns the backing storage; callers must not use
// it after Free.
type Page interface {
	Bytes() []byte
}

// PageAllocator is the external contract spec.md §6 names:
// page_alloc_zeroed()/page_free(). It is out of scope as a *subsystem*
// (spec.md §1, "the page allocator... referenced only through its
// contract") but this module ships concrete implementations so the repo
// is runnable end to end; see page_linux.go and page_other.go.
type PageAllocator interface {
	// AllocZeroed returns a new zeroed page, or an error if none is
	// available (the Go spelling of the C contract's null return).
	AllocZeroed() (Page, error)
	// Free releases a page obtained from AllocZeroed. Must not be called
	// twice for the same page (spec.md §8, "Reaping is single-ownership").
	Free(Page)
}
