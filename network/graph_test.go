package network_test

import (
	"testing"

	"github.com/mobiligo/flowmesh/network"
	"github.com/stretchr/testify/require"
)

func buildLinearCorridor(t *testing.T) *network.Graph {
	g := network.NewGraph()
	for i := network.NodeID(0); i < 4; i++ {
		require.NoError(t, g.AddNode(network.NewIntersection(i, 5)))
	}
	require.NoError(t, g.AddStreet(network.NewStreet(network.StreetIDFor(0, 1, 4), 0, 1, 100, 10, 1, 5)))
	require.NoError(t, g.AddStreet(network.NewStreet(network.StreetIDFor(1, 2, 4), 1, 2, 100, 10, 1, 5)))
	require.NoError(t, g.AddStreet(network.NewStreet(network.StreetIDFor(2, 3, 4), 2, 3, 100, 10, 1, 5)))
	return g
}

func TestShortestPathLinearCorridor(t *testing.T) {
	g := buildLinearCorridor(t)
	hops, err := g.ShortestPath(3)
	require.NoError(t, err)

	require.Equal(t, []network.NodeID{1}, hops[0])
	require.Equal(t, []network.NodeID{2}, hops[1])
	require.Equal(t, []network.NodeID{3}, hops[2])
	_, hasSelf := hops[3]
	require.False(t, hasSelf)
}

func TestShortestPathUnreachable(t *testing.T) {
	g := network.NewGraph()
	require.NoError(t, g.AddNode(network.NewIntersection(0, 5)))
	require.NoError(t, g.AddNode(network.NewIntersection(1, 5)))

	_, err := g.ShortestPath(1)
	require.ErrorIs(t, err, network.ErrUnreachable)
}

func TestShortestPathTriangleTieBreak(t *testing.T) {
	g := network.NewGraph()
	for i := network.NodeID(0); i < 3; i++ {
		require.NoError(t, g.AddNode(network.NewIntersection(i, 5)))
	}
	// two equally-short paths from 0 to 2: direct, and via 1.
	require.NoError(t, g.AddStreet(network.NewStreet(1, 0, 2, 100, 10, 1, 5)))
	require.NoError(t, g.AddStreet(network.NewStreet(2, 0, 1, 50, 10, 1, 5)))
	require.NoError(t, g.AddStreet(network.NewStreet(3, 1, 2, 50, 10, 1, 5)))

	hops, err := g.ShortestPath(2)
	require.NoError(t, err)
	require.Contains(t, hops[0], network.NodeID(1))
}

func TestAddStreetRequiresKnownEndpoints(t *testing.T) {
	g := network.NewGraph()
	require.NoError(t, g.AddNode(network.NewIntersection(0, 5)))
	err := g.AddStreet(network.NewStreet(1, 0, 99, 100, 10, 1, 5))
	require.ErrorIs(t, err, network.ErrNotFound)
}

func TestAddNodeDuplicate(t *testing.T) {
	g := network.NewGraph()
	require.NoError(t, g.AddNode(network.NewIntersection(0, 5)))
	require.ErrorIs(t, g.AddNode(network.NewIntersection(0, 5)), network.ErrDuplicateEntity)
}

func TestBuildAdjAndNodeIDsSorted(t *testing.T) {
	g := buildLinearCorridor(t)
	require.NoError(t, g.BuildAdj())
	require.Equal(t, []network.NodeID{0, 1, 2, 3}, g.NodeIDs())
}

func TestPathToLinearCorridor(t *testing.T) {
	g := buildLinearCorridor(t)
	path, err := g.PathTo(0, 3)
	require.NoError(t, err)
	require.Equal(t, []network.NodeID{0, 1, 2, 3}, path)
}

func TestPathToSameNode(t *testing.T) {
	g := buildLinearCorridor(t)
	path, err := g.PathTo(2, 2)
	require.NoError(t, err)
	require.Equal(t, []network.NodeID{2}, path)
}

func TestPathToUnreachable(t *testing.T) {
	g := network.NewGraph()
	require.NoError(t, g.AddNode(network.NewIntersection(0, 5)))
	require.NoError(t, g.AddNode(network.NewIntersection(1, 5)))

	_, err := g.PathTo(0, 1)
	require.ErrorIs(t, err, network.ErrUnreachable)
}

func TestPathToTriangleTieBreak(t *testing.T) {
	g := network.NewGraph()
	for i := network.NodeID(0); i < 3; i++ {
		require.NoError(t, g.AddNode(network.NewIntersection(i, 5)))
	}
	// two equally-short paths from 0 to 2: direct, and via 1; the
	// lower-ID successor (1) must win the tie.
	require.NoError(t, g.AddStreet(network.NewStreet(1, 0, 2, 100, 10, 1, 5)))
	require.NoError(t, g.AddStreet(network.NewStreet(2, 0, 1, 50, 10, 1, 5)))
	require.NoError(t, g.AddStreet(network.NewStreet(3, 1, 2, 50, 10, 1, 5)))

	path, err := g.PathTo(0, 2)
	require.NoError(t, err)
	require.Equal(t, []network.NodeID{0, 1, 2}, path)
}
