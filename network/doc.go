// Package network models the road graph that the dynamics engine drives:
// nodes (signalized intersections, plain intersections, roundabouts),
// streets (directed, capacity-bounded FIFO arcs), itineraries (destination
// plus precomputed shortest-path reachability), and the Graph that owns
// them all together with the N×N adjacency matrix.
//
// The package never references agents or the tick loop; Agent lifetimes
// belong to the dynamics package, which owns and mutates Itinerary values
// at runtime even though their type is declared here, next to the Graph
// they route over. Node and Street only ever refer to each other by ID,
// never by pointer, so there are no ownership cycles to reason about.
package network
