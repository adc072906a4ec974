//go:build !linux

package kernel

// heapPage is a portable, heap-backed stand-in for a page-aligned mapping,
// used on platforms without the mmap-based allocator in page_linux.go —
// the same "real implementation on the primary platform, portable fallback
// elsewhere" shape as the teacher's poller_linux.go/poller_darwin.go split.
type heapPage struct {
	data []byte
}

func (p *heapPage) Bytes() []byte { return p.data }

type heapPageAllocator struct{}

func newDefaultPageAllocator() PageAllocator {
	return &heapPageAllocator{}
}

// AllocZeroed implements PageAllocator. make([]byte, n) is already zeroed;
// the slice is not guaranteed to be page-aligned.
func (heapPageAllocator) AllocZeroed() (Page, error) {
	return &heapPage{data: make([]byte, PageSize)}, nil
}

// Free implements PageAllocator.
func (heapPageAllocator) Free(p Page) {
	if hp, ok := p.(*heapPage); ok {
		hp.data = nil
	}
}
