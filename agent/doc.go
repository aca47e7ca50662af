// Package agent defines the mobile entity driven by the dynamics engine: a
// single vehicle moving along an itinerary, street by street, toward a
// destination node.
//
// Agent holds only scalar state and network IDs; it never references a
// Street, Node, or Itinerary by pointer, so the dynamics engine remains
// the sole owner of agent lifetimes while network stays the sole owner of
// the graph.
package agent
