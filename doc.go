// Command-free library root: flowmesh simulates agent-based microscopic
// road traffic over a directed street graph.
//
// smatrix holds the generic hash-backed sparse matrix every other
// package builds on. network models the graph itself — nodes, streets,
// and itineraries. agent defines the mobile entity moving through it.
// dynamics owns agents and itineraries at runtime and drives the tick
// loop. netio loads graphs from plain-text and CSV sources and exports
// them back out. cmd/flowmesh-bench is a small CLI harness for running a
// synthetic grid and printing periodic measurement summaries.
package flowmesh
