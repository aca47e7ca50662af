package smatrix

// At returns the value stored at (i, j), or the zero value of T if no
// entry is stored there. It returns ErrOutOfRange if the cell is outside
// bounds.
func (m *SparseMatrix[T]) At(i, j uint64) (T, error) {
	var zero T
	idx, err := m.linear(i, j)
	if err != nil {
		return zero, err
	}
	if v, ok := m.data[idx]; ok {
		return v, nil
	}
	return zero, nil
}

// Contains reports whether (i, j) holds an explicit entry.
func (m *SparseMatrix[T]) Contains(i, j uint64) (bool, error) {
	idx, err := m.linear(i, j)
	if err != nil {
		return false, err
	}
	_, ok := m.data[idx]
	return ok, nil
}

// Each calls fn for every explicitly stored (i, j, value) triple. Iteration
// order is unspecified, matching Go's map iteration.
func (m *SparseMatrix[T]) Each(fn func(i, j uint64, value T)) {
	for key, v := range m.data {
		i, j := m.unlinear(key)
		fn(i, j, v)
	}
}

// GetRow returns row index as a matrix. If keepIndex is false the result
// is a 1×cols matrix holding only that row. If keepIndex is true the
// result has the original rows×cols shape, with every row other than
// index left empty, so column indices of surviving entries are unchanged.
func (m *SparseMatrix[T]) GetRow(index uint64, keepIndex bool) (*SparseMatrix[T], error) {
	if index >= m.rows {
		return nil, ErrOutOfRange
	}
	var out *SparseMatrix[T]
	var err error
	if keepIndex {
		out, err = New[T](m.rows, m.cols)
	} else {
		out, err = New[T](1, m.cols)
	}
	if err != nil {
		return nil, err
	}
	for key, v := range m.data {
		if key/m.cols != index {
			continue
		}
		col := key % m.cols
		if keepIndex {
			_ = out.Insert(index, col, v)
		} else {
			_ = out.Insert(0, col, v)
		}
	}
	return out, nil
}

// GetCol returns column index as a matrix, mirroring GetRow's keepIndex
// semantics along the column axis.
func (m *SparseMatrix[T]) GetCol(index uint64, keepIndex bool) (*SparseMatrix[T], error) {
	if index >= m.cols {
		return nil, ErrOutOfRange
	}
	var out *SparseMatrix[T]
	var err error
	if keepIndex {
		out, err = New[T](m.rows, m.cols)
	} else {
		out, err = New[T](m.rows, 1)
	}
	if err != nil {
		return nil, err
	}
	for key, v := range m.data {
		if key%m.cols != index {
			continue
		}
		row := key / m.cols
		if keepIndex {
			_ = out.Insert(row, index, v)
		} else {
			_ = out.Insert(row, 0, v)
		}
	}
	return out, nil
}

// Clone returns an independent deep copy of m.
func (m *SparseMatrix[T]) Clone() *SparseMatrix[T] {
	next := make(map[uint64]T, len(m.data))
	for k, v := range m.data {
		next[k] = v
	}
	return &SparseMatrix[T]{data: next, rows: m.rows, cols: m.cols}
}
