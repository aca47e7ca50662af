package network_test

import (
	"testing"

	"github.com/mobiligo/flowmesh/network"
	"github.com/stretchr/testify/require"
)

func TestItineraryNextHop(t *testing.T) {
	it, err := network.NewItinerary(1, 5, 10)
	require.NoError(t, err)

	_, found := it.NextHop(0)
	require.False(t, found)

	require.NoError(t, it.SetNextHop(0, 3))
	next, found := it.NextHop(0)
	require.True(t, found)
	require.Equal(t, network.NodeID(3), next)
}

func TestItineraryMultipleNextHops(t *testing.T) {
	it, err := network.NewItinerary(1, 5, 10)
	require.NoError(t, err)

	require.NoError(t, it.SetNextHop(0, 1))
	require.NoError(t, it.SetNextHop(0, 2))

	hops := it.NextHops(0)
	require.ElementsMatch(t, []network.NodeID{1, 2}, hops)
}

func TestItineraryResetPath(t *testing.T) {
	it, err := network.NewItinerary(1, 5, 10)
	require.NoError(t, err)
	require.NoError(t, it.SetNextHop(0, 1))

	it.ResetPath()
	_, found := it.NextHop(0)
	require.False(t, found)
}
