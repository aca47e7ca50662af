package smatrix

import "math"

// epsilon is the threshold below which a row/column L1 norm is treated as
// zero; such rows/columns are left unchanged by GetNormRows/GetNormCols
// rather than divided by (near) zero.
const epsilon = 2.220446049250313e-16 // machine epsilon for float64

// GetDegreeVector counts the non-zero entries per row of a square matrix
// and returns them as an n×1 matrix. It only requires presence, not
// arithmetic, so it accepts any value type.
func GetDegreeVector[T any](m *SparseMatrix[T]) (*SparseMatrix[int64], error) {
	if m.rows != m.cols {
		return nil, ErrNonSquare
	}
	out, err := New[int64](m.rows, 1)
	if err != nil {
		return nil, err
	}
	for key := range m.data {
		row := key / m.cols
		cur, _ := out.At(row, 0)
		_ = out.InsertOrAssign(row, 0, cur+1)
	}
	return out, nil
}

// GetStrengthVector sums the values per row of a square numeric matrix
// and returns them as an n×1 matrix.
func GetStrengthVector[T Numeric](m *SparseMatrix[T]) (*SparseMatrix[float64], error) {
	if m.rows != m.cols {
		return nil, ErrNonSquare
	}
	out, err := New[float64](m.rows, 1)
	if err != nil {
		return nil, err
	}
	for key, v := range m.data {
		row := key / m.cols
		cur, _ := out.At(row, 0)
		_ = out.InsertOrAssign(row, 0, cur+float64(v))
	}
	return out, nil
}

// GetLaplacian returns Diag(degree) - adjacency for a square matrix: -1 on
// every off-diagonal cell holding an entry, and the row's degree on the
// diagonal. Like GetDegreeVector, this only depends on entry presence.
func GetLaplacian[T any](m *SparseMatrix[T]) (*SparseMatrix[int64], error) {
	if m.rows != m.cols {
		return nil, ErrNonSquare
	}
	out, err := New[int64](m.rows, m.cols)
	if err != nil {
		return nil, err
	}
	for key := range m.data {
		i, j := key/m.cols, key%m.cols
		_ = out.InsertOrAssign(i, j, -1)
	}
	degree, err := GetDegreeVector(m)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < m.rows; i++ {
		d, _ := degree.At(i, 0)
		_ = out.InsertOrAssign(i, i, d)
	}
	return out, nil
}

// GetNormRows returns a copy of m with every row divided by its L1 norm.
// Rows whose L1 norm is below machine epsilon are left unchanged (their
// divisor is treated as 1).
func GetNormRows[T Numeric](m *SparseMatrix[T]) (*SparseMatrix[float64], error) {
	out, err := New[float64](m.rows, m.cols)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < m.rows; i++ {
		row, err := m.GetRow(i, true)
		if err != nil {
			return nil, err
		}
		sum := 0.0
		row.Each(func(_, _ uint64, v T) { sum += math.Abs(float64(v)) })
		divisor := sum
		if divisor < epsilon {
			divisor = 1
		}
		row.Each(func(ri, rj uint64, v T) {
			_ = out.Insert(ri, rj, float64(v)/divisor)
		})
	}
	return out, nil
}

// GetNormCols mirrors GetNormRows along the column axis.
func GetNormCols[T Numeric](m *SparseMatrix[T]) (*SparseMatrix[float64], error) {
	out, err := New[float64](m.rows, m.cols)
	if err != nil {
		return nil, err
	}
	for j := uint64(0); j < m.cols; j++ {
		col, err := m.GetCol(j, true)
		if err != nil {
			return nil, err
		}
		sum := 0.0
		col.Each(func(_, _ uint64, v T) { sum += math.Abs(float64(v)) })
		divisor := sum
		if divisor < epsilon {
			divisor = 1
		}
		col.Each(func(ri, rj uint64, v T) {
			_ = out.Insert(ri, rj, float64(v)/divisor)
		})
	}
	return out, nil
}

// Transpose returns a new matrix with rows and columns swapped.
func Transpose[T any](m *SparseMatrix[T]) (*SparseMatrix[T], error) {
	out, err := New[T](m.cols, m.rows)
	if err != nil {
		return nil, err
	}
	m.Each(func(i, j uint64, v T) {
		_ = out.Insert(j, i, v)
	})
	return out, nil
}

// Symmetrize returns m + transpose(m).
func Symmetrize[T Numeric](m *SparseMatrix[T]) (*SparseMatrix[T], error) {
	t, err := Transpose(m)
	if err != nil {
		return nil, err
	}
	return Add(m, t)
}

// Add returns the elementwise sum of two equally-shaped matrices.
func Add[T Numeric](a, b *SparseMatrix[T]) (*SparseMatrix[T], error) {
	return combine(a, b, func(x, y T) T { return x + y })
}

// Sub returns the elementwise difference of two equally-shaped matrices.
func Sub[T Numeric](a, b *SparseMatrix[T]) (*SparseMatrix[T], error) {
	return combine(a, b, func(x, y T) T { return x - y })
}

func combine[T Numeric](a, b *SparseMatrix[T], op func(x, y T) T) (*SparseMatrix[T], error) {
	if a.rows != b.rows || a.cols != b.cols {
		return nil, ErrDimensionMismatch
	}
	out, err := New[T](a.rows, a.cols)
	if err != nil {
		return nil, err
	}
	seen := make(map[uint64]struct{}, len(a.data)+len(b.data))
	for key := range a.data {
		seen[key] = struct{}{}
	}
	for key := range b.data {
		seen[key] = struct{}{}
	}
	for key := range seen {
		i, j := key/a.cols, key%a.cols
		av, _ := a.At(i, j)
		bv, _ := b.At(i, j)
		_ = out.Insert(i, j, op(av, bv))
	}
	return out, nil
}
