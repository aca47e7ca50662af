package smatrix_test

import (
	"testing"

	"github.com/mobiligo/flowmesh/smatrix"
	"github.com/stretchr/testify/require"
)

func TestInsertAndAt(t *testing.T) {
	m, err := smatrix.New[int64](3, 3)
	require.NoError(t, err)

	require.NoError(t, m.Insert(0, 1, 5))
	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, int64(5), v)

	// absent cell reads back as zero value
	v, err = m.At(2, 2)
	require.NoError(t, err)
	require.Equal(t, int64(0), v)

	_, err = m.At(3, 0)
	require.ErrorIs(t, err, smatrix.ErrOutOfRange)
}

func TestEraseNotFound(t *testing.T) {
	m, err := smatrix.New[int64](2, 2)
	require.NoError(t, err)
	require.ErrorIs(t, m.Erase(0, 0), smatrix.ErrNotFound)

	require.NoError(t, m.Insert(0, 0, 1))
	require.NoError(t, m.Erase(0, 0))
	require.ErrorIs(t, m.Erase(0, 0), smatrix.ErrNotFound)
}

func TestEraseRowReKeys(t *testing.T) {
	m, err := smatrix.New[int64](3, 2)
	require.NoError(t, err)
	require.NoError(t, m.Insert(0, 0, 1))
	require.NoError(t, m.Insert(1, 1, 2))
	require.NoError(t, m.Insert(2, 0, 3))

	require.NoError(t, m.EraseRow(0))
	require.Equal(t, uint64(2), m.Rows())

	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), v)

	v, err = m.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, int64(3), v)
}

func TestEraseColumnReKeys(t *testing.T) {
	m, err := smatrix.New[int64](2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Insert(0, 0, 1))
	require.NoError(t, m.Insert(0, 2, 2))
	require.NoError(t, m.Insert(1, 1, 3))

	require.NoError(t, m.EraseColumn(1))
	require.Equal(t, uint64(2), m.Cols())

	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), v)

	ok, err := m.Contains(1, 1)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestInsertAndExpandGrowsSymmetrically(t *testing.T) {
	m, err := smatrix.New[bool](2, 2)
	require.NoError(t, err)

	require.NoError(t, m.InsertAndExpand(5, 5, true))
	require.GreaterOrEqual(t, m.Rows(), uint64(6))
	require.GreaterOrEqual(t, m.Cols(), uint64(6))

	v, err := m.At(5, 5)
	require.NoError(t, err)
	require.True(t, v)
}

func TestReshapePreservesInRangeCells(t *testing.T) {
	m, err := smatrix.New[int64](2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Insert(0, 0, 1))
	require.NoError(t, m.Insert(1, 1, 4))

	require.NoError(t, m.Reshape(4, 4))
	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), v)

	v, err = m.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, int64(4), v)

	require.NoError(t, m.Reshape(1, 1))
	// cell (1,1) of the old 4x4 shape encoded linear index 5, which is out
	// of range for a 1x1 matrix and must have been dropped.
	v, err = m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), v)
}

func TestGetRowKeepIndex(t *testing.T) {
	m, err := smatrix.New[int64](2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Insert(1, 0, 9))
	require.NoError(t, m.Insert(1, 1, 8))

	row, err := m.GetRow(1, false)
	require.NoError(t, err)
	require.Equal(t, uint64(1), row.Rows())
	v, _ := row.At(0, 0)
	require.Equal(t, int64(9), v)

	rowKept, err := m.GetRow(1, true)
	require.NoError(t, err)
	require.Equal(t, uint64(2), rowKept.Rows())
	v, _ = rowKept.At(1, 0)
	require.Equal(t, int64(9), v)
	v, _ = rowKept.At(0, 0)
	require.Equal(t, int64(0), v)
}

func TestGetDegreeAndLaplacian(t *testing.T) {
	m, err := smatrix.New[bool](3, 3)
	require.NoError(t, err)
	require.NoError(t, m.Insert(0, 1, true))
	require.NoError(t, m.Insert(0, 2, true))
	require.NoError(t, m.Insert(1, 2, true))

	deg, err := smatrix.GetDegreeVector(m)
	require.NoError(t, err)
	v, _ := deg.At(0, 0)
	require.Equal(t, int64(2), v)
	v, _ = deg.At(2, 0)
	require.Equal(t, int64(0), v)

	lap, err := smatrix.GetLaplacian(m)
	require.NoError(t, err)
	v, _ = lap.At(0, 0)
	require.Equal(t, int64(2), v)
	v, _ = lap.At(0, 1)
	require.Equal(t, int64(-1), v)
}

func TestGetNormRowsRoundTrip(t *testing.T) {
	m, err := smatrix.New[float64](2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Insert(0, 0, 1))
	require.NoError(t, m.Insert(0, 1, 1))
	require.NoError(t, m.Insert(0, 2, 2))
	// row 1 stays empty: degenerate row policy keeps it at zero.

	normed, err := smatrix.GetNormRows(m)
	require.NoError(t, err)

	sum := 0.0
	row, err := normed.GetRow(0, false)
	require.NoError(t, err)
	row.Each(func(_, _ uint64, v float64) { sum += v })
	require.InDelta(t, 1.0, sum, 1e-9)

	emptyRowSum := 0.0
	row1, err := normed.GetRow(1, false)
	require.NoError(t, err)
	row1.Each(func(_, _ uint64, v float64) { emptyRowSum += v })
	require.InDelta(t, 0.0, emptyRowSum, 1e-9)
}

func TestSymmetrize(t *testing.T) {
	m, err := smatrix.New[int64](2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Insert(0, 1, 3))

	sym, err := smatrix.Symmetrize(m)
	require.NoError(t, err)
	v, _ := sym.At(1, 0)
	require.Equal(t, int64(3), v)
	v, _ = sym.At(0, 1)
	require.Equal(t, int64(3), v)
}

func TestAddDimensionMismatch(t *testing.T) {
	a, err := smatrix.New[int64](2, 2)
	require.NoError(t, err)
	b, err := smatrix.New[int64](3, 3)
	require.NoError(t, err)

	_, err = smatrix.Add(a, b)
	require.ErrorIs(t, err, smatrix.ErrDimensionMismatch)
}
