package agent

import "github.com/mobiligo/flowmesh/network"

// Status classifies what an Agent is currently doing. The dynamics engine
// uses it to decide which phase of the tick loop applies to an agent.
type Status uint8

const (
	// StatusWaiting means the agent has not yet been assigned a street;
	// it is sitting at a node's waiting structure or newly injected.
	StatusWaiting = Status(iota)
	// StatusTravelling means the agent is in transit on a street.
	StatusTravelling
	// StatusArrived means the agent has reached its itinerary's
	// destination and is inert.
	StatusArrived
)

func (s Status) String() string {
	return [...]string{"waiting", "travelling", "arrived"}[s]
}

// Agent is a single vehicle moving through the network toward the
// destination of its itinerary. It holds only scalar state and IDs,
// never pointers into the graph.
type Agent struct {
	id          network.AgentID
	itineraryID network.ItineraryID
	srcNodeID   network.NodeID

	status   Status
	streetID network.StreetID
	onStreet bool

	// speed is the agent's current travel speed, recomputed each tick it
	// spends in transit.
	speed float64
	// delay is the number of remaining ticks before the agent finishes
	// transiting its current street, given its speed.
	delay float64
	// distance is the cumulative distance travelled since creation.
	distance float64
	// time is the cumulative number of ticks the agent has spent in
	// transit, as accumulated by Advance.
	time uint64
}

// New creates an agent at srcNodeID, bound to itineraryID, with no
// street assigned yet.
func New(id network.AgentID, itineraryID network.ItineraryID, srcNodeID network.NodeID) *Agent {
	return &Agent{id: id, itineraryID: itineraryID, srcNodeID: srcNodeID, status: StatusWaiting}
}

// ID returns the agent's identifier.
func (a *Agent) ID() network.AgentID { return a.id }

// ItineraryID returns the itinerary the agent is following.
func (a *Agent) ItineraryID() network.ItineraryID { return a.itineraryID }

// SrcNodeID returns the node the agent is waiting at (its creation node,
// or the node ClearStreet last released it to) or, while it is on a
// street, the node it departed from.
func (a *Agent) SrcNodeID() network.NodeID { return a.srcNodeID }

// SetSrcNodeID overrides the node reported by SrcNodeID.
func (a *Agent) SetSrcNodeID(id network.NodeID) { a.srcNodeID = id }

// Status returns what the agent is currently doing.
func (a *Agent) Status() Status { return a.status }

// StreetID returns the street the agent is currently transiting, and
// whether one is assigned.
func (a *Agent) StreetID() (network.StreetID, bool) { return a.streetID, a.onStreet }

// SetStreet assigns the agent to a street and moves it into the
// Travelling state. Returns ErrAlreadyOnStreet if the agent is already
// assigned to one.
func (a *Agent) SetStreet(id network.StreetID, speed, delay float64) error {
	if a.onStreet {
		return ErrAlreadyOnStreet
	}
	a.streetID = id
	a.onStreet = true
	a.status = StatusTravelling
	a.speed = speed
	a.delay = delay
	return nil
}

// ClearStreet releases the agent from its current street, returning it
// to the Waiting state at dstNodeID. Returns ErrNotOnStreet if the agent
// has no street assigned.
func (a *Agent) ClearStreet(dstNodeID network.NodeID) error {
	if !a.onStreet {
		return ErrNotOnStreet
	}
	a.onStreet = false
	a.status = StatusWaiting
	a.srcNodeID = dstNodeID
	a.delay = 0
	return nil
}

// MarkArrived transitions the agent to the Arrived state.
func (a *Agent) MarkArrived() {
	a.status = StatusArrived
	a.onStreet = false
}

// Speed returns the agent's current travel speed.
func (a *Agent) Speed() float64 { return a.speed }

// SetSpeed updates the agent's current travel speed.
func (a *Agent) SetSpeed(speed float64) { a.speed = speed }

// Delay returns the remaining ticks before the agent finishes transiting
// its current street.
func (a *Agent) Delay() float64 { return a.delay }

// Distance returns the cumulative distance travelled.
func (a *Agent) Distance() float64 { return a.distance }

// Time returns the cumulative number of ticks the agent has spent in
// transit.
func (a *Agent) Time() uint64 { return a.time }

// Advance moves the agent forward by dt ticks' worth of travel: distance
// increases by speed*dt, delay decreases by dt (floored at zero), and
// time increases by dt. Returns ErrNegativeDistance if dt is negative.
func (a *Agent) Advance(dt float64) error {
	if dt < 0 {
		return ErrNegativeDistance
	}
	a.distance += a.speed * dt
	a.delay -= dt
	if a.delay < 0 {
		a.delay = 0
	}
	a.time += uint64(dt)
	return nil
}

// ReadyToExit reports whether the agent has finished transiting its
// current street (delay has reached zero).
func (a *Agent) ReadyToExit() bool {
	return a.onStreet && a.delay <= 0
}
