package network

import "errors"

// Sentinel errors surfaced by the network package. Match with errors.Is.
var (
	// ErrDuplicateEntity is returned by AddNode/AddStreet when the given ID
	// already exists.
	ErrDuplicateEntity = errors.New("network: duplicate entity id")

	// ErrNotFound is returned when a lookup references an absent node,
	// street, or itinerary.
	ErrNotFound = errors.New("network: entity not found")

	// ErrUnreachable is returned by ShortestPath when no path connects the
	// requested source and destination.
	ErrUnreachable = errors.New("network: destination unreachable")

	// ErrStateViolation is returned for capacity overflows, double
	// admission of an agent into a node's waiting structure, popping from
	// an empty roundabout, or operating an unconfigured traffic light.
	ErrStateViolation = errors.New("network: state violation")

	// ErrWrongNodeKind is returned when a kind-specific operation (e.g.
	// Enqueue on an Intersection) is attempted on the wrong node variant.
	ErrWrongNodeKind = errors.New("network: operation not valid for this node kind")
)
