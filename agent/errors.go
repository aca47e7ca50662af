package agent

import "errors"

// Sentinel errors surfaced by the agent package. Match with errors.Is.
var (
	// ErrNotOnStreet is returned by operations that require an agent to
	// currently be in transit on a street.
	ErrNotOnStreet = errors.New("agent: not currently on a street")

	// ErrAlreadyOnStreet is returned by SetStreet when the agent is
	// already assigned to a street.
	ErrAlreadyOnStreet = errors.New("agent: already assigned to a street")

	// ErrNegativeDistance is returned by Advance when the computed travel
	// distance would be negative.
	ErrNegativeDistance = errors.New("agent: negative travel distance")
)
