//go:build !linux

package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapPageAllocator_AllocZeroedAndFree(t *testing.T) {
	a := newDefaultPageAllocator()
	_, ok := a.(*heapPageAllocator)
	require.True(t, ok, "the portable default must be the heap-backed allocator")

	p, err := a.AllocZeroed()
	require.NoError(t, err)
	require.Len(t, p.Bytes(), PageSize)

	a.Free(p)
	hp := p.(*heapPage)
	assert.Nil(t, hp.data)
}
