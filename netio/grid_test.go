package netio_test

import (
	"testing"

	"github.com/mobiligo/flowmesh/netio"
	"github.com/mobiligo/flowmesh/network"
	"github.com/stretchr/testify/require"
)

func TestGenerateGridDeterministic(t *testing.T) {
	g1, err := netio.GenerateGrid(4, 4, 10, 10, 1, 5)
	require.NoError(t, err)
	g2, err := netio.GenerateGrid(4, 4, 10, 10, 1, 5)
	require.NoError(t, err)

	require.Equal(t, g1.NodeIDs(), g2.NodeIDs())
	require.Equal(t, g1.StreetIDs(), g2.StreetIDs())
	require.Equal(t, uint64(16), g1.NodeCount())
}

func TestGenerateGridInteriorHasFourNeighbors(t *testing.T) {
	g, err := netio.GenerateGrid(4, 4, 10, 10, 1, 5)
	require.NoError(t, err)

	out := g.OutgoingStreets(network.NodeID(5)) // (1,1) in a 4x4 grid
	require.Len(t, out, 4)
}

func TestGenerateGridRejectsBadDimensions(t *testing.T) {
	_, err := netio.GenerateGrid(0, 4, 10, 10, 1, 5)
	require.ErrorIs(t, err, netio.ErrNonSquareMatrix)
}
