package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintStats_RateLimited(t *testing.T) {
	s := Init()
	require.NoError(t, s.Start())

	first := s.PrintStats()
	second := s.PrintStats()
	assert.True(t, first, "the first call within the window should log")
	assert.False(t, second, "an immediate second call should be throttled")
}

func TestStats_String(t *testing.T) {
	st := Stats{Ticks: 1, IdleTicks: 2, KernelTicks: 3, UserTicks: 4, Ready: 5, Sleeping: 6}
	assert.Equal(t, "ticks=1 idle=2 kernel=3 user=4 ready=5 sleeping=6", st.String())
}

func TestReadyCount_ExcludesIdleAndCurrent(t *testing.T) {
	s := Init()
	require.NoError(t, s.Start())
	assert.Equal(t, 0, s.ReadyCount())

	done := make(chan struct{})
	_, err := s.Create("parked", PriDefault, func(any) {
		<-done
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, s.ReadyCount())
	close(done)
}

func TestDumpReadyQueue_ReflectsReadyThreadsOnly(t *testing.T) {
	s := Init()
	require.NoError(t, s.Start())
	assert.Empty(t, s.DumpReadyQueue())

	done := make(chan struct{})
	_, err := s.Create("parked", PriDefault, func(any) {
		<-done
	}, nil)
	require.NoError(t, err)

	snap := s.DumpReadyQueue()
	require.Len(t, snap, 1)
	assert.Equal(t, "parked", snap[0].Name)
	assert.Equal(t, StatusReady, snap[0].Status)
	assert.Equal(t, PriDefault, snap[0].Priority)
	close(done)
}
