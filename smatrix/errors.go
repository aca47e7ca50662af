package smatrix

import "errors"

// Sentinel errors returned by smatrix operations. Callers should match them
// with errors.Is; none of them are wrapped with extra context by this
// package, so identity comparison via errors.Is is always safe.
var (
	// ErrOutOfRange is returned when a linear or (row, col) index falls
	// outside [0, rows*cols).
	ErrOutOfRange = errors.New("smatrix: index out of range")

	// ErrNotFound is returned by Erase when the target cell holds no
	// explicit entry.
	ErrNotFound = errors.New("smatrix: element not found")

	// ErrDuplicateEntity is returned by Insert when the target cell
	// already holds an entry. Use InsertOrAssign to overwrite instead.
	ErrDuplicateEntity = errors.New("smatrix: cell already holds an entry")

	// ErrDimensionMismatch is returned by binary operations (Add, Sub)
	// whose operands do not share the same shape.
	ErrDimensionMismatch = errors.New("smatrix: dimension mismatch")

	// ErrInvalidDimensions is returned when a requested shape has a zero
	// or negative extent.
	ErrInvalidDimensions = errors.New("smatrix: dimensions must be > 0")

	// ErrNonSquare is returned by reducers that require rows == cols
	// (GetDegreeVector, GetStrengthVector, GetLaplacian).
	ErrNonSquare = errors.New("smatrix: matrix is not square")
)
