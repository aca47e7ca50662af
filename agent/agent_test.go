package agent_test

import (
	"testing"

	"github.com/mobiligo/flowmesh/agent"
	"github.com/mobiligo/flowmesh/network"
	"github.com/stretchr/testify/require"
)

func TestNewAgentStartsWaiting(t *testing.T) {
	a := agent.New(1, 10, 0)
	require.Equal(t, agent.StatusWaiting, a.Status())
	require.Equal(t, network.NodeID(0), a.SrcNodeID())
}

func TestSetStreetTransitionsToTravelling(t *testing.T) {
	a := agent.New(1, 10, 0)
	require.NoError(t, a.SetStreet(5, 8.0, 12.5))
	require.Equal(t, agent.StatusTravelling, a.Status())

	id, ok := a.StreetID()
	require.True(t, ok)
	require.Equal(t, network.StreetID(5), id)

	require.ErrorIs(t, a.SetStreet(6, 1, 1), agent.ErrAlreadyOnStreet)
}

func TestClearStreetReturnsToWaiting(t *testing.T) {
	a := agent.New(1, 10, 0)
	require.NoError(t, a.SetStreet(5, 8.0, 12.5))
	require.NoError(t, a.ClearStreet(7))
	require.Equal(t, agent.StatusWaiting, a.Status())
	require.Equal(t, network.NodeID(7), a.SrcNodeID())

	_, ok := a.StreetID()
	require.False(t, ok)
}

func TestClearStreetRequiresStreet(t *testing.T) {
	a := agent.New(1, 10, 0)
	require.ErrorIs(t, a.ClearStreet(7), agent.ErrNotOnStreet)
}

func TestAdvanceAccumulatesDistanceAndDrainsDelay(t *testing.T) {
	a := agent.New(1, 10, 0)
	require.NoError(t, a.SetStreet(5, 2.0, 3.0))

	require.NoError(t, a.Advance(1))
	require.InDelta(t, 2.0, a.Distance(), 1e-9)
	require.InDelta(t, 2.0, a.Delay(), 1e-9)
	require.False(t, a.ReadyToExit())

	require.NoError(t, a.Advance(2))
	require.InDelta(t, 6.0, a.Distance(), 1e-9)
	require.InDelta(t, 0.0, a.Delay(), 1e-9)
	require.True(t, a.ReadyToExit())

	require.ErrorIs(t, a.Advance(-1), agent.ErrNegativeDistance)
}

func TestMarkArrived(t *testing.T) {
	a := agent.New(1, 10, 0)
	require.NoError(t, a.SetStreet(5, 2.0, 3.0))
	a.MarkArrived()
	require.Equal(t, agent.StatusArrived, a.Status())
	_, ok := a.StreetID()
	require.False(t, ok)
}
