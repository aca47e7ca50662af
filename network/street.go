package network

// SpireData accumulates optional per-street flow measurements. A Street
// only carries one when the network was built with spire instrumentation
// enabled, since tracking it costs a counter and an accumulator per tick.
type SpireData struct {
	// InputCount is the number of agents that entered the street since
	// instrumentation was enabled.
	InputCount uint64
	// OutputCount is the number of agents that exited the street since
	// instrumentation was enabled.
	OutputCount uint64
	// MeanSpeedSum and MeanSpeedSamples together give the running mean
	// speed of agents that exited the street.
	MeanSpeedSum     float64
	MeanSpeedSamples uint64
}

// Street is a directed, capacity-bounded arc between two nodes. Agents in
// transit live in a slice, not a map, so that iteration order over
// in-transit agents is deterministic (insertion order), and an exit queue
// holds agents that have finished transiting but not yet been admitted to
// the destination node.
type Street struct {
	id       StreetID
	src, dst NodeID
	length            float64
	lanes             uint8
	maxSpeed          float64
	capacity          uint64
	transportCapacity uint64
	angle             float64

	// transit holds AgentIDs currently traversing the street, in the
	// order they entered.
	transit []AgentID
	// exitQueue holds AgentIDs that finished transiting and are waiting
	// to be admitted to dst's waiting structure.
	exitQueue []AgentID

	priority bool
	spire    *SpireData
}

// NewStreet constructs a street. length is in the same distance unit as
// node coordinates; maxSpeed bounds agent travel speed on this street.
// transportCapacity (the maximum number of agents this street may hand
// off to its destination node per tick) defaults to 1; override it with
// SetTransportCapacity.
func NewStreet(id StreetID, src, dst NodeID, length, maxSpeed float64, lanes uint8, capacity uint64) *Street {
	return &Street{id: id, src: src, dst: dst, length: length, maxSpeed: maxSpeed, lanes: lanes, capacity: capacity, transportCapacity: 1}
}

// ID returns the street's identifier.
func (s *Street) ID() StreetID { return s.id }

// Src returns the street's origin node.
func (s *Street) Src() NodeID { return s.src }

// Dst returns the street's destination node.
func (s *Street) Dst() NodeID { return s.dst }

// Length returns the street's length.
func (s *Street) Length() float64 { return s.length }

// MaxSpeed returns the street's speed limit.
func (s *Street) MaxSpeed() float64 { return s.maxSpeed }

// Lanes returns the number of lanes.
func (s *Street) Lanes() uint8 { return s.lanes }

// Capacity returns the maximum number of agents that may occupy the
// street (in transit plus queued to exit) at once.
func (s *Street) Capacity() uint64 { return s.capacity }

// TransportCapacity returns the maximum number of agents that may leave
// this street's queue, into its destination node, per tick.
func (s *Street) TransportCapacity() uint64 { return s.transportCapacity }

// SetTransportCapacity overrides the street's per-tick departure limit.
func (s *Street) SetTransportCapacity(n uint64) { s.transportCapacity = n }

// Angle returns the street's heading, used to compute the angle-ordered
// waiting key at its destination node.
func (s *Street) Angle() float64 { return s.angle }

// SetAngle sets the street's heading, typically computed once from node
// coordinates at graph-build time.
func (s *Street) SetAngle(angle float64) { s.angle = angle }

// SetPriority marks this street as holding right of way at its
// destination node's intersection.
func (s *Street) SetPriority(p bool) { s.priority = p }

// Priority reports whether the street holds right of way.
func (s *Street) Priority() bool { return s.priority }

// EnableSpire attaches flow instrumentation to the street.
func (s *Street) EnableSpire() { s.spire = &SpireData{} }

// Spire returns the street's flow measurements, or nil if instrumentation
// was never enabled.
func (s *Street) Spire() *SpireData { return s.spire }

// Density returns the street's current occupancy as a fraction of
// capacity, in [0, 1].
func (s *Street) Density() float64 {
	if s.capacity == 0 {
		return 1
	}
	return float64(s.NumAgents()) / float64(s.capacity)
}

// NumAgents returns the total number of agents on the street, in transit
// or queued to exit.
func (s *Street) NumAgents() int {
	return len(s.transit) + len(s.exitQueue)
}

// IsFull reports whether the street has reached capacity.
func (s *Street) IsFull() bool {
	return uint64(s.NumAgents()) >= s.capacity
}

// Enter admits an agent to the tail of the transit slice. Returns
// ErrStateViolation if the street is full.
func (s *Street) Enter(agent AgentID) error {
	if s.IsFull() {
		return ErrStateViolation
	}
	s.transit = append(s.transit, agent)
	if s.spire != nil {
		s.spire.InputCount++
	}
	return nil
}

// Transiting returns the AgentIDs currently in transit, in entry order.
// The returned slice aliases internal state and must not be mutated.
func (s *Street) Transiting() []AgentID { return s.transit }

// MoveToExitQueue transfers an agent that has finished transiting from
// the transit slice to the exit queue. Returns ErrStateViolation if the
// agent is not currently in transit.
func (s *Street) MoveToExitQueue(agent AgentID) error {
	for i, a := range s.transit {
		if a == agent {
			s.transit = append(s.transit[:i], s.transit[i+1:]...)
			s.exitQueue = append(s.exitQueue, agent)
			return nil
		}
	}
	return ErrStateViolation
}

// PeekExitFront returns the agent at the head of the exit queue without
// removing it.
func (s *Street) PeekExitFront() (AgentID, bool) {
	if len(s.exitQueue) == 0 {
		return 0, false
	}
	return s.exitQueue[0], true
}

// PopExitFront removes and returns the head of the exit queue. When spire
// instrumentation is enabled it records the exit and adds meanSpeed to the
// exit-speed accumulator.
func (s *Street) PopExitFront(meanSpeed float64) (AgentID, bool) {
	if len(s.exitQueue) == 0 {
		return 0, false
	}
	agent := s.exitQueue[0]
	s.exitQueue = s.exitQueue[1:]
	if s.spire != nil {
		s.spire.OutputCount++
		s.spire.MeanSpeedSum += meanSpeed
		s.spire.MeanSpeedSamples++
	}
	return agent, true
}

// ExitQueueLen returns the number of agents waiting in the exit queue.
func (s *Street) ExitQueueLen() int { return len(s.exitQueue) }
