package network

import (
	"sort"

	"github.com/paulmach/orb"
)

// Kind tags which of the three node variants a Node carries. The engine
// dispatches on this instead of on a type hierarchy, per the tagged-variant
// design noted for this component: all three kinds share the same header
// (ID, coordinates, capacity) and differ only in their waiting structure.
type Kind uint8

const (
	// KindIntersection is the default, unsignalized node variant: an
	// angle-ordered waiting multimap plus a priority street set.
	KindIntersection Kind = iota
	// KindTrafficLight is an Intersection augmented with a cyclic phase.
	KindTrafficLight
	// KindRoundabout holds a FIFO queue instead of an angle-ordered map.
	KindRoundabout
)

// waitEntry is one agent waiting at an Intersection/TrafficLight node,
// ordered first by angleKey (lower departs earlier) and then by insertion
// sequence, so that duplicate angle keys are broken in arrival order.
// streetIn/hasStreetIn record which inbound street the agent arrived on,
// so a TrafficLight node can gate its departure on that street's phase;
// agents injected directly as demand carry no inbound street and are
// exempt from that gate.
type waitEntry struct {
	angleKey    int16
	seq         uint64
	agent       AgentID
	streetIn    StreetID
	hasStreetIn bool
}

// waitQueue is an ordered collection keyed by (angleKey, insertionSeq),
// reimplemented as a stable sorted slice rather than a priority queue:
// container/heap does not guarantee FIFO order among equal keys, and
// duplicate angle keys are expected (two agents bound for the same
// outbound heading from the same node).
type waitQueue struct {
	entries []waitEntry
	nextSeq uint64
}

func (q *waitQueue) add(angleKey int16, agent AgentID, streetIn StreetID, hasStreetIn bool) {
	e := waitEntry{angleKey: angleKey, seq: q.nextSeq, agent: agent, streetIn: streetIn, hasStreetIn: hasStreetIn}
	q.nextSeq++
	idx := sort.Search(len(q.entries), func(i int) bool {
		if q.entries[i].angleKey != angleKey {
			return q.entries[i].angleKey > angleKey
		}
		return q.entries[i].seq > e.seq
	})
	q.entries = append(q.entries, waitEntry{})
	copy(q.entries[idx+1:], q.entries[idx:])
	q.entries[idx] = e
}

func (q *waitQueue) has(agent AgentID) bool {
	for _, e := range q.entries {
		if e.agent == agent {
			return true
		}
	}
	return false
}

func (q *waitQueue) streetFor(agent AgentID) (StreetID, bool) {
	for _, e := range q.entries {
		if e.agent == agent {
			return e.streetIn, e.hasStreetIn
		}
	}
	return 0, false
}

func (q *waitQueue) peekFront() (AgentID, bool) {
	if len(q.entries) == 0 {
		return 0, false
	}
	return q.entries[0].agent, true
}

func (q *waitQueue) popFront() (AgentID, bool) {
	if len(q.entries) == 0 {
		return 0, false
	}
	agent := q.entries[0].agent
	q.entries = q.entries[1:]
	return agent, true
}

func (q *waitQueue) remove(agent AgentID) bool {
	for i, e := range q.entries {
		if e.agent == agent {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (q *waitQueue) len() int { return len(q.entries) }

// Node is the tagged-variant representation of a network node: a shared
// header (ID, coordinates, capacity) plus a payload selected by Kind.
type Node struct {
	id       NodeID
	coords   *orb.Point
	capacity uint64
	kind     Kind

	// Intersection / TrafficLight payload.
	waiting      waitQueue
	priority     map[StreetID]struct{}
	agentCounter uint64

	// TrafficLight-only payload.
	light *lightState

	// Roundabout-only payload: a plain FIFO queue of agent IDs.
	fifo []AgentID
}

// NewIntersection builds an unsignalized intersection with the given
// capacity (maximum number of agents simultaneously waiting to depart).
func NewIntersection(id NodeID, capacity uint64) *Node {
	return &Node{id: id, capacity: capacity, kind: KindIntersection, priority: make(map[StreetID]struct{})}
}

// NewTrafficLight builds a signalized intersection. Its cyclic phase is
// unconfigured until SetDelay is called.
func NewTrafficLight(id NodeID, capacity uint64) *Node {
	return &Node{id: id, capacity: capacity, kind: KindTrafficLight, priority: make(map[StreetID]struct{}), light: &lightState{}}
}

// NewRoundabout builds a roundabout node with a FIFO waiting queue.
func NewRoundabout(id NodeID, capacity uint64) *Node {
	return &Node{id: id, capacity: capacity, kind: KindRoundabout}
}

// ID returns the node's identifier.
func (n *Node) ID() NodeID { return n.id }

// Kind returns which node variant this is.
func (n *Node) Kind() Kind { return n.kind }

// Coords returns the node's coordinates, or nil if unknown.
func (n *Node) Coords() *orb.Point { return n.coords }

// SetCoords sets the node's coordinates.
func (n *Node) SetCoords(p orb.Point) { n.coords = &p }

// Capacity returns the maximum number of agents the node may hold at once.
func (n *Node) Capacity() uint64 { return n.capacity }

// SetCapacity updates the node's capacity. It returns ErrStateViolation if
// the new capacity is smaller than the number of agents currently waiting.
func (n *Node) SetCapacity(capacity uint64) error {
	if uint64(n.waitingLen()) > capacity {
		return ErrStateViolation
	}
	n.capacity = capacity
	return nil
}

func (n *Node) waitingLen() int {
	switch n.kind {
	case KindRoundabout:
		return len(n.fifo)
	default:
		return n.waiting.len()
	}
}

// IsFull reports whether the node currently holds as many agents as its
// capacity allows.
func (n *Node) IsFull() bool {
	return uint64(n.waitingLen()) >= n.capacity
}

// SetStreetPriorities replaces the node's priority street set wholesale.
// Only meaningful for Intersection/TrafficLight nodes.
func (n *Node) SetStreetPriorities(streets []StreetID) {
	n.priority = make(map[StreetID]struct{}, len(streets))
	for _, s := range streets {
		n.priority[s] = struct{}{}
	}
}

// AddStreetPriority marks a single inbound street as priority.
func (n *Node) AddStreetPriority(s StreetID) {
	if n.priority == nil {
		n.priority = make(map[StreetID]struct{})
	}
	n.priority[s] = struct{}{}
}

// HasPriority reports whether street s is in the node's priority set.
func (n *Node) HasPriority(s StreetID) bool {
	_, ok := n.priority[s]
	return ok
}

// AgentCounter returns the number of agents that have passed through an
// Intersection/TrafficLight node since the last call, resetting it to
// zero as it reads.
func (n *Node) AgentCounter() uint64 {
	c := n.agentCounter
	n.agentCounter = 0
	return c
}

// AddWaitingAgent admits a freshly spawned agent (one with no inbound
// street, such as injected demand) to an Intersection/TrafficLight's
// angle-ordered waiting structure. Lower angleKey values depart first and
// equal keys depart in arrival order; the dynamics engine passes 0 for
// spawned agents and, for arriving agents, the inbound street's heading
// ×100, rounded (not a difference between two headings). Returns
// ErrStateViolation if the node is full or the agent is already waiting,
// ErrWrongNodeKind on a Roundabout.
func (n *Node) AddWaitingAgent(angleKey int16, agent AgentID) error {
	return n.addWaiting(angleKey, agent, 0, false)
}

// AddWaitingAgentFromStreet admits an agent that just finished transiting
// streetIn to the waiting structure. A TrafficLight node later consults
// streetIn's priority to decide whether that agent may depart on a given
// tick; AddWaitingAgent (no street) is exempt from that gate.
func (n *Node) AddWaitingAgentFromStreet(angleKey int16, streetIn StreetID, agent AgentID) error {
	return n.addWaiting(angleKey, agent, streetIn, true)
}

func (n *Node) addWaiting(angleKey int16, agent AgentID, streetIn StreetID, hasStreetIn bool) error {
	if n.kind == KindRoundabout {
		return ErrWrongNodeKind
	}
	if n.IsFull() {
		return ErrStateViolation
	}
	if n.waiting.has(agent) {
		return ErrStateViolation
	}
	n.waiting.add(angleKey, agent, streetIn, hasStreetIn)
	n.agentCounter++
	return nil
}

// WaitingStreetFor returns the inbound street an agent in the waiting
// structure arrived on, and whether it has one (spawned agents don't).
func (n *Node) WaitingStreetFor(agent AgentID) (StreetID, bool) {
	return n.waiting.streetFor(agent)
}

// PeekWaitingFront returns the agent with the smallest angle-difference
// key without removing it.
func (n *Node) PeekWaitingFront() (AgentID, bool) {
	return n.waiting.peekFront()
}

// PopWaitingFront removes and returns the agent with the smallest
// angle-difference key.
func (n *Node) PopWaitingFront() (AgentID, bool) {
	return n.waiting.popFront()
}

// RemoveWaitingAgent removes a specific agent from the waiting structure.
// Returns false if the agent was not waiting.
func (n *Node) RemoveWaitingAgent(agent AgentID) bool {
	return n.waiting.remove(agent)
}

// Enqueue admits an agent to a Roundabout's FIFO queue. Returns
// ErrWrongNodeKind on Intersection/TrafficLight nodes, ErrStateViolation
// if the roundabout is full or the agent is already enqueued.
func (n *Node) Enqueue(agent AgentID) error {
	if n.kind != KindRoundabout {
		return ErrWrongNodeKind
	}
	if n.IsFull() {
		return ErrStateViolation
	}
	for _, a := range n.fifo {
		if a == agent {
			return ErrStateViolation
		}
	}
	n.fifo = append(n.fifo, agent)
	return nil
}

// Dequeue removes and returns the head of a Roundabout's FIFO queue.
// Returns ErrStateViolation if the roundabout is empty, ErrWrongNodeKind
// on the other variants.
func (n *Node) Dequeue() (AgentID, error) {
	if n.kind != KindRoundabout {
		return 0, ErrWrongNodeKind
	}
	if len(n.fifo) == 0 {
		return 0, ErrStateViolation
	}
	agent := n.fifo[0]
	n.fifo = n.fifo[1:]
	return agent, nil
}

// PeekRoundaboutFront returns the head of a Roundabout's FIFO queue
// without removing it.
func (n *Node) PeekRoundaboutFront() (AgentID, bool) {
	if n.kind != KindRoundabout || len(n.fifo) == 0 {
		return 0, false
	}
	return n.fifo[0], true
}
