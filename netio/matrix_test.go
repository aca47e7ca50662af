package netio_test

import (
	"strings"
	"testing"

	"github.com/mobiligo/flowmesh/netio"
	"github.com/stretchr/testify/require"
)

func TestImportSparseMatrixBuildsGraph(t *testing.T) {
	// 3x3 matrix, streets 0->1 (index 1) and 1->2 (index 5).
	input := "3 3\n1 1\n5 1\n"
	g, err := netio.ImportMatrix(strings.NewReader(input), "net.dsm", true, 10, 5)
	require.NoError(t, err)
	require.Equal(t, uint64(3), g.NodeCount())

	s, err := g.Street(1)
	require.NoError(t, err)
	require.Equal(t, uint64(0), uint64(s.Src()))
	require.Equal(t, uint64(1), uint64(s.Dst()))
}

func TestImportDenseMatrixBuildsGraph(t *testing.T) {
	input := "2 2\n0 1\n0 0\n"
	g, err := netio.ImportMatrix(strings.NewReader(input), "net.txt", true, 10, 5)
	require.NoError(t, err)
	require.Equal(t, uint64(2), g.NodeCount())

	s, err := g.Street(1)
	require.NoError(t, err)
	require.Equal(t, uint64(0), uint64(s.Src()))
	require.Equal(t, uint64(1), uint64(s.Dst()))
}

func TestExportImportRoundTripsLength(t *testing.T) {
	input := "3 3\n1 12.5\n5 7.25\n"
	g, err := netio.ImportMatrix(strings.NewReader(input), "net.dsm", false, 10, 5)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, netio.ExportMatrix(&buf, g, false))

	g2, err := netio.ImportMatrix(strings.NewReader(buf.String()), "net.dsm", false, 10, 5)
	require.NoError(t, err)

	s1, err := g.Street(1)
	require.NoError(t, err)
	s2, err := g2.Street(1)
	require.NoError(t, err)
	require.InDelta(t, s1.Length(), s2.Length(), 1e-9)
}

func TestImportMatrixRejectsNonSquare(t *testing.T) {
	input := "2 3\n"
	_, err := netio.ImportMatrix(strings.NewReader(input), "net.dsm", true, 10, 5)
	require.ErrorIs(t, err, netio.ErrNonSquareMatrix)
}
