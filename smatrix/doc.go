// Package smatrix implements a hash-backed sparse matrix over a dense,
// unsigned linear index space.
//
// A cell (i, j) of an r×c matrix is addressed by the linear index
// i*c+j. Only explicitly inserted cells occupy memory; everything else
// reads back as the type's zero value. This mirrors the adjacency and
// itinerary reachability matrices used throughout the network and
// dynamics packages, where most of the N×N space is empty.
//
// The container itself (SparseMatrix[T]) is generic over any value type.
// Reducers that need arithmetic (GetStrengthVector, GetNormRows/Cols,
// Symmetrize) are free functions constrained to Numeric; GetDegreeVector
// and GetLaplacian only need presence, so they accept any T.
package smatrix
