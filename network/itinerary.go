package network

import (
	"sort"

	"github.com/mobiligo/flowmesh/smatrix"
)

// Itinerary pairs a destination node with a precomputed reachability
// matrix: path.At(i, j) is true when node j is a next hop on some
// shortest path from node i toward destination, for every node i from
// which the destination is reachable. The dynamics engine recomputes
// this matrix periodically as street densities shift.
type Itinerary struct {
	id          ItineraryID
	destination NodeID
	nodeCount   uint64
	path        *smatrix.SparseMatrix[bool]
}

// NewItinerary builds an itinerary with an empty nodeCount×nodeCount
// reachability matrix, which can record hops between node IDs below
// nodeCount. Next hops must be recorded with SetNextHop before the
// itinerary is usable for routing.
func NewItinerary(id ItineraryID, destination NodeID, nodeCount uint64) (*Itinerary, error) {
	path, err := smatrix.New[bool](nodeCount, nodeCount)
	if err != nil {
		return nil, err
	}
	return &Itinerary{id: id, destination: destination, nodeCount: nodeCount, path: path}, nil
}

// ID returns the itinerary's identifier.
func (it *Itinerary) ID() ItineraryID { return it.id }

// Destination returns the itinerary's target node.
func (it *Itinerary) Destination() NodeID { return it.destination }

// NextHop returns the lowest-ID node among the next hops recorded from
// "from" along this itinerary's shortest path, and whether one is
// recorded. Ties between equally-short successors are broken toward the
// lower node ID so callers see a reproducible choice.
func (it *Itinerary) NextHop(from NodeID) (NodeID, bool) {
	hops := it.NextHops(from)
	if len(hops) == 0 {
		return 0, false
	}
	return hops[0], true
}

// NextHops returns every recorded next hop from "from", ascending by node
// ID, since more than one street can lie on an equally-short path. The
// underlying matrix iterates in unspecified order, so the result is
// always sorted before it is returned.
func (it *Itinerary) NextHops(from NodeID) []NodeID {
	row, err := it.path.GetRow(uint64(from), true)
	if err != nil {
		return nil
	}
	var hops []NodeID
	row.Each(func(_, j uint64, v bool) {
		if v {
			hops = append(hops, NodeID(j))
		}
	})
	sort.Slice(hops, func(i, j int) bool { return hops[i] < hops[j] })
	return hops
}

// SetNextHop records that j is a viable next hop from node i toward this
// itinerary's destination.
func (it *Itinerary) SetNextHop(i, j NodeID) error {
	return it.path.InsertOrAssign(uint64(i), uint64(j), true)
}

// ResetPath discards every recorded hop, in preparation for a fresh
// shortest-path recomputation. It rebuilds the matrix at its original
// size rather than calling SparseMatrix.Clear, which (matching the
// original sparse-matrix semantics) zeroes the matrix's dimensions along
// with its contents.
func (it *Itinerary) ResetPath() {
	path, err := smatrix.New[bool](it.nodeCount, it.nodeCount)
	if err != nil {
		return
	}
	it.path = path
}

// PathMatrix exposes the underlying reachability matrix, primarily for
// export and inspection.
func (it *Itinerary) PathMatrix() *smatrix.SparseMatrix[bool] {
	return it.path
}
