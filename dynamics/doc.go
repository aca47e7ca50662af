// Package dynamics drives a network: it owns every Agent and Itinerary,
// advances the simulation one tick at a time, and aggregates per-tick
// flow measurements.
//
// A tick is a pure function of the engine's state and its RNG stream: for
// a fixed seed, two Engines fed the same demand produce bit-for-bit
// identical trajectories, since every phase of Step iterates nodes,
// streets, and agents in ID order rather than map order.
package dynamics
