package network_test

import (
	"testing"

	"github.com/mobiligo/flowmesh/network"
	"github.com/stretchr/testify/require"
)

func TestTrafficLightCycle(t *testing.T) {
	n := network.NewTrafficLight(1, 5)
	require.NoError(t, n.SetDelay(10, 4))

	for i := 0; i < 4; i++ {
		green, err := n.IsGreen()
		require.NoError(t, err)
		require.True(t, green, "tick %d should be green", i)
		require.NoError(t, n.IncreaseCounter())
	}
	for i := 0; i < 6; i++ {
		green, err := n.IsGreen()
		require.NoError(t, err)
		require.False(t, green, "tick %d should be red", i)
		require.NoError(t, n.IncreaseCounter())
	}
	green, err := n.IsGreen()
	require.NoError(t, err)
	require.True(t, green, "cycle should have wrapped back to green")
}

func TestTrafficLightPhasesAreComplementary(t *testing.T) {
	n := network.NewTrafficLight(1, 5)
	require.NoError(t, n.SetDelay(10, 4))

	phase0, err := n.IsGreenStreet(0)
	require.NoError(t, err)
	phase1, err := n.IsGreenStreet(1)
	require.NoError(t, err)
	require.NotEqual(t, phase0, phase1)
}

func TestSetDelayRejectsInvalidSplit(t *testing.T) {
	n := network.NewTrafficLight(1, 5)
	require.ErrorIs(t, n.SetDelay(10, 10), network.ErrStateViolation)
	require.ErrorIs(t, n.SetDelay(0, 0), network.ErrStateViolation)
}

func TestUnconfiguredLightStateViolation(t *testing.T) {
	n := network.NewTrafficLight(1, 5)
	_, err := n.IsGreen()
	require.ErrorIs(t, err, network.ErrStateViolation)
}

func TestSetPhaseAfterCycleAppliesAtWrap(t *testing.T) {
	n := network.NewTrafficLight(1, 5)
	require.NoError(t, n.SetDelay(10, 4))
	require.NoError(t, n.SetPhaseAfterCycle(2))

	for i := 0; i < 10; i++ {
		require.NoError(t, n.IncreaseCounter())
	}
	require.Equal(t, uint64(2), n.Counter())
}

func TestSetPhaseAfterCycleIsOneShot(t *testing.T) {
	n := network.NewTrafficLight(1, 5)
	require.NoError(t, n.SetDelay(10, 4))
	require.NoError(t, n.SetPhaseAfterCycle(2))

	for i := 0; i < 10; i++ {
		require.NoError(t, n.IncreaseCounter())
	}
	require.Equal(t, uint64(2), n.Counter())

	for i := 0; i < 10; i++ {
		require.NoError(t, n.IncreaseCounter())
	}
	require.Equal(t, uint64(2), n.Counter(), "a consumed phaseOffset must not reapply on the next wrap")
}

func TestSetDelayRemapsCounterPastNewCycle(t *testing.T) {
	n := network.NewTrafficLight(1, 5)
	require.NoError(t, n.SetDelay(20, 10))
	for i := 0; i < 15; i++ {
		require.NoError(t, n.IncreaseCounter())
	}
	require.Equal(t, uint64(15), n.Counter())

	require.NoError(t, n.SetDelay(10, 4))
	require.Equal(t, uint64(9), n.Counter(), "counter past the new cycle length is pulled back to cycleTime-1")
}

func TestSetDelayRemapsCounterInsideShrunkGreenWindow(t *testing.T) {
	n := network.NewTrafficLight(1, 5)
	require.NoError(t, n.SetDelay(10, 8))
	for i := 0; i < 6; i++ {
		require.NoError(t, n.IncreaseCounter())
	}
	require.Equal(t, uint64(6), n.Counter())

	require.NoError(t, n.SetDelay(10, 4))
	require.Equal(t, uint64(2), n.Counter(), "counter keeps its distance from the old green/red boundary")
}

func TestWrongKindRejected(t *testing.T) {
	n := network.NewIntersection(1, 5)
	require.ErrorIs(t, n.SetDelay(10, 4), network.ErrWrongNodeKind)
}
