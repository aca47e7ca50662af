package network

// NodeID, StreetID, and ItineraryID are the unsigned integer identifiers
// assigned by the network loader. They are stable for the lifetime of a
// simulation.
type NodeID uint64
type StreetID uint64
type ItineraryID uint64

// AgentID identifies a mobile entity owned by the dynamics engine. It is
// declared here, not in the agent package, so that Street and Node can
// reference waiting/queued agents by ID without importing agent (which
// would create an import cycle, since agent references network IDs too).
type AgentID uint64

// StreetIDFor encodes the canonical streetId = src*N + dst convention from
// the data model: N is the node count fixed at graph-construction time.
func StreetIDFor(src, dst NodeID, nodeCount uint64) StreetID {
	return StreetID(uint64(src)*nodeCount + uint64(dst))
}
