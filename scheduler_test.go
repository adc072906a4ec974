package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndStart_BasicLifecycle(t *testing.T) {
	s := Init()
	require.NotNil(t, s)

	initial := s.Current()
	assert.Equal(t, "main", initial.Name())
	assert.Equal(t, StatusRunning, initial.Status())

	require.NoError(t, s.Start())
	assert.Same(t, initial, s.Current(), "initial thread should be current again once idle has run once")
	assert.Equal(t, 0, s.ReadyCount(), "idle must never appear in the ready queue")
	assert.Equal(t, 0, s.SleepingCount())

	assert.ErrorIs(t, s.Start(), ErrSchedulerAlreadyStarted)
}

func TestCreate_InvalidPriorityRejected(t *testing.T) {
	s := Init()
	require.NoError(t, s.Start())

	assert.Panics(t, func() {
		_, _ = s.Create("bad", PriMax+1, func(any) {}, nil)
	}, "out-of-range priority is a contract violation, same as SetPriority")
}

func TestCreate_BeforeStartReturnsError(t *testing.T) {
	s := Init()

	id, err := s.Create("too-early", PriDefault, func(any) {}, nil)
	assert.ErrorIs(t, err, ErrSchedulerNotStarted)
	assert.Equal(t, ErrorID, id)
}

// TestYield_RoundRobinFairness traces a deterministic two-worker handoff:
// each worker sends once, yields once, sends again, then exits. The ready
// queue's FIFO discipline means the only possible interleaving is strict
// alternation, regardless of how many times either worker is dispatched.
func TestYield_RoundRobinFairness(t *testing.T) {
	s := Init()
	require.NoError(t, s.Start())

	results := make(chan string, 8)
	spawn := func(name string) {
		_, err := s.Create(name, PriDefault, func(aux any) {
			sched := aux.(*Scheduler)
			results <- name + "-0"
			sched.Yield()
			results <- name + "-1"
		}, s)
		require.NoError(t, err)
	}
	spawn("w1")
	spawn("w2")

	s.Yield() // round A: dispatches w1, then w2, then returns here
	s.Yield() // round B: resumes w1 (exits), then w2 (exits), then returns here

	close(results)
	var got []string
	for v := range results {
		got = append(got, v)
	}
	assert.Equal(t, []string{"w1-0", "w2-0", "w1-1", "w2-1"}, got)

	// both workers have exited and been reaped
	count := 0
	s.ForEach(func(*Thread) { count++ })
	assert.Equal(t, 2, count, "only the initial and idle threads should remain")
}

type countingPageAllocator struct {
	allocs int
	frees  int
}

type countingPage struct {
	data []byte
}

func (p *countingPage) Bytes() []byte { return p.data }

func (a *countingPageAllocator) AllocZeroed() (Page, error) {
	a.allocs++
	return &countingPage{data: make([]byte, PageSize)}, nil
}

func (a *countingPageAllocator) Free(Page) {
	a.frees++
}

func TestExit_ReapsPageExactlyOnce(t *testing.T) {
	alloc := &countingPageAllocator{}
	s := Init(WithPageAllocator(alloc))
	require.NoError(t, s.Start())

	done := make(chan struct{})
	_, err := s.Create("worker", PriDefault, func(any) {
		close(done)
	}, nil)
	require.NoError(t, err)

	s.Yield() // dispatch worker; it exits immediately, main reaps on resume
	<-done

	assert.Equal(t, 1, alloc.frees, "the worker's page must be freed exactly once")
}

func TestCreate_UnderLoad(t *testing.T) {
	alloc := &countingPageAllocator{}
	s := Init(WithPageAllocator(alloc))
	require.NoError(t, s.Start())

	const n = 1024
	for i := 0; i < n; i++ {
		_, err := s.Create("load", PriDefault, func(any) {}, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, n, s.ReadyCount())

	// every created thread exits immediately without yielding, so a single
	// Yield from main cascades through the entire ready queue: each dying
	// thread's schedule() dispatches the next thread directly, only
	// returning control to main once the chain is exhausted.
	s.Yield()

	assert.Equal(t, 0, s.ReadyCount())
	// one extra page was allocated by Start for the idle thread, which is
	// never freed
	assert.Equal(t, n+1, alloc.allocs)
	assert.Equal(t, n, alloc.frees)

	count := 0
	s.ForEach(func(*Thread) { count++ })
	assert.Equal(t, 2, count, "only the initial and idle threads should remain")
}

func TestLookup(t *testing.T) {
	s := Init()
	require.NoError(t, s.Start())

	id, err := s.Create("findme", PriDefault, func(any) {
		// park forever so the lookup can observe it alive
		ch := make(chan struct{})
		<-ch
	}, nil)
	require.NoError(t, err)

	th, ok := s.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, "findme", th.Name())

	_, ok = s.Lookup(ErrorID)
	assert.False(t, ok)
}
