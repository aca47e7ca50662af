package netio

import "errors"

// Sentinel errors surfaced by the netio package. Match with errors.Is.
// I/O and parse failures are returned as the underlying error wrapped with
// context via github.com/pkg/errors.Wrap, not as one of these sentinels;
// ErrMissingColumn is returned wrapped with the missing column's name.
var (
	// ErrNonSquareMatrix is returned when an imported matrix's row and
	// column counts differ.
	ErrNonSquareMatrix = errors.New("netio: adjacency matrix must be square")

	// ErrTooFewCoordinates is returned by ImportCoordinates when the
	// file has fewer coordinate rows than the graph has nodes.
	ErrTooFewCoordinates = errors.New("netio: not enough coordinates for current node count")

	// ErrNegativeValue is returned when a dense matrix element is
	// negative, which the format treats as invalid.
	ErrNegativeValue = errors.New("netio: matrix elements must be non-negative")

	// ErrMissingColumn is returned when a CSV header is missing a
	// column this importer requires.
	ErrMissingColumn = errors.New("netio: missing required CSV column")
)
