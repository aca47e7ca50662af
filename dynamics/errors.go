package dynamics

import "errors"

// Sentinel errors surfaced by the dynamics package. Match with errors.Is.
var (
	// ErrUnknownItinerary is returned when an operation references an
	// itinerary ID the engine has not registered.
	ErrUnknownItinerary = errors.New("dynamics: unknown itinerary")

	// ErrUnknownAgent is returned when an operation references an agent
	// ID the engine is not currently tracking.
	ErrUnknownAgent = errors.New("dynamics: unknown agent")

	// ErrStateViolation is returned when the engine detects an
	// inconsistency it cannot safely recover from, such as a queued or
	// waiting agent ID the engine is not tracking.
	ErrStateViolation = errors.New("dynamics: state violation")

	// ErrDemandRejected names the outcome of an injection request that
	// cannot be admitted because its source node is at capacity. The
	// engine does not return it: such requests are counted in the tick's
	// Measurement.DemandRejected and dropped.
	ErrDemandRejected = errors.New("dynamics: demand rejected, source node at capacity")
)
