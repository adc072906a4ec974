package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "running", StatusRunning.String())
	assert.Equal(t, "ready", StatusReady.String())
	assert.Equal(t, "blocked", StatusBlocked.String())
	assert.Equal(t, "dying", StatusDying.String())
	assert.Equal(t, "unknown", Status(99).String())
}

func TestThread_SetPriority(t *testing.T) {
	s := Init()
	require.NoError(t, s.Start())

	th := s.Current()
	th.SetPriority(PriMax)
	assert.Equal(t, PriMax, th.GetPriority())

	assert.Panics(t, func() { th.SetPriority(PriMax + 1) })
	assert.Panics(t, func() { th.SetPriority(PriMin - 1) })
}

func TestThread_NonGoalAccessorsAreZero(t *testing.T) {
	s := Init()
	require.NoError(t, s.Start())

	th := s.Current()
	assert.Equal(t, 0, th.GetNice())
	assert.Equal(t, 0, th.GetRecentCPU())
	assert.Equal(t, 0, s.GetLoadAvg())
}
