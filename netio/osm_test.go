package netio_test

import (
	"strings"
	"testing"

	"github.com/mobiligo/flowmesh/netio"
	"github.com/stretchr/testify/require"
)

func TestImportOSMNodesAndEdges(t *testing.T) {
	nodesCSV := "id,longitude,latitude\n0,1.1,2.2\n1,1.3,2.4\n"
	g, err := netio.ImportOSMNodes(strings.NewReader(nodesCSV), 5)
	require.NoError(t, err)
	require.Equal(t, uint64(2), g.NodeCount())

	edgesCSV := "id,source_node,target_node,length_meters\n100,0,1,42.5\n"
	require.NoError(t, netio.ImportOSMEdges(strings.NewReader(edgesCSV), g, 10, 1, 5))

	s, err := g.Street(100)
	require.NoError(t, err)
	require.InDelta(t, 42.5, s.Length(), 1e-9)
}

func TestImportOSMNodesMissingColumn(t *testing.T) {
	_, err := netio.ImportOSMNodes(strings.NewReader("id,longitude\n0,1.1\n"), 5)
	require.ErrorIs(t, err, netio.ErrMissingColumn)
}
