package dynamics

import (
	"math"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/mobiligo/flowmesh/agent"
	"github.com/mobiligo/flowmesh/network"
)

// demandRequest is a pending injection: a new agent waiting to be placed
// on itinerary itineraryID starting at srcNodeID, to be resolved during
// the next tick's injection phase.
type demandRequest struct {
	itineraryID network.ItineraryID
	srcNodeID   network.NodeID
}

// Engine owns every Agent and Itinerary for one simulation and advances
// them tick by tick. It never takes ownership of the Graph it is given;
// the caller builds the Graph and keeps it alive for the Engine's
// lifetime.
type Engine struct {
	graph *network.Graph

	itineraries  map[network.ItineraryID]*network.Itinerary
	itineraryIDs []network.ItineraryID
	nextItinID   network.ItineraryID

	agents      map[network.AgentID]*agent.Agent
	agentIDs    []network.AgentID
	nextAgentID network.AgentID

	pendingDemand []demandRequest

	rng            *rand.Rand
	seed1, seed2   uint64
	rngInitialized bool

	errorProbability   float64
	minSpeedRateo      float64
	congestionFactor   float64
	pathRecomputeEvery uint64
	evacuationWorkers  int

	log Logger

	tick              uint64
	lastRecomputeTick uint64
	lastDensity       map[network.StreetID]float64

	arrivedTotal   uint64
	demandRejected uint64
}

// NewEngine constructs an Engine bound to graph, applying opts over
// defaults: error probability 0, minimum speed rateo 0.5, congestion
// factor 1, a path recompute every 10 ticks, a single evacuation worker,
// and a no-op logger.
func NewEngine(graph *network.Graph, opts ...Option) *Engine {
	e := &Engine{
		graph:              graph,
		itineraries:        make(map[network.ItineraryID]*network.Itinerary),
		agents:             make(map[network.AgentID]*agent.Agent),
		minSpeedRateo:      0.5,
		congestionFactor:   1.0,
		pathRecomputeEvery: 10,
		evacuationWorkers:  1,
		log:                noopLogger{},
		lastDensity:        make(map[network.StreetID]float64),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.rng = rand.New(rand.NewPCG(e.seed1, e.seed2))
	return e
}

// AddItinerary registers a new itinerary toward destination and
// immediately computes its shortest-path matrix. Returns ErrNotFound if
// destination is not a registered node.
func (e *Engine) AddItinerary(destination network.NodeID) (network.ItineraryID, error) {
	id := e.nextItinID
	e.nextItinID++
	// The reachability matrix is indexed by node ID, so it must span the
	// largest registered ID even when IDs are not contiguous.
	size := e.graph.NodeCount()
	if ids := e.graph.NodeIDs(); len(ids) > 0 && uint64(ids[len(ids)-1]) >= size {
		size = uint64(ids[len(ids)-1]) + 1
	}
	it, err := network.NewItinerary(id, destination, size)
	if err != nil {
		return 0, err
	}
	e.itineraries[id] = it
	idx := sort.Search(len(e.itineraryIDs), func(i int) bool { return e.itineraryIDs[i] >= id })
	e.itineraryIDs = append(e.itineraryIDs, 0)
	copy(e.itineraryIDs[idx+1:], e.itineraryIDs[idx:])
	e.itineraryIDs[idx] = id

	if err := e.updateItinerary(it); err != nil {
		return id, err
	}
	return id, nil
}

// Itinerary looks up a registered itinerary by ID.
func (e *Engine) Itinerary(id network.ItineraryID) (*network.Itinerary, error) {
	it, ok := e.itineraries[id]
	if !ok {
		return nil, ErrUnknownItinerary
	}
	return it, nil
}

// Agent looks up a tracked agent by ID.
func (e *Engine) Agent(id network.AgentID) (*agent.Agent, error) {
	a, ok := e.agents[id]
	if !ok {
		return nil, ErrUnknownAgent
	}
	return a, nil
}

// AgentIDs returns every currently tracked agent ID in ascending order.
// The returned slice aliases internal state and must not be mutated.
func (e *Engine) AgentIDs() []network.AgentID { return e.agentIDs }

// Tick returns the number of completed ticks.
func (e *Engine) Tick() uint64 { return e.tick }

// InjectDemand queues a new agent to be placed at srcNodeID following
// itineraryID, resolved during the next call to Step. Returns
// ErrUnknownItinerary if itineraryID is not registered.
func (e *Engine) InjectDemand(itineraryID network.ItineraryID, srcNodeID network.NodeID) error {
	if _, ok := e.itineraries[itineraryID]; !ok {
		return ErrUnknownItinerary
	}
	e.pendingDemand = append(e.pendingDemand, demandRequest{itineraryID: itineraryID, srcNodeID: srcNodeID})
	return nil
}

// UpdatePaths recomputes the shortest-path matrix for every registered
// itinerary, in itinerary-ID order.
func (e *Engine) UpdatePaths() error {
	for _, id := range e.itineraryIDs {
		if err := e.updateItinerary(e.itineraries[id]); err != nil {
			return err
		}
	}
	e.lastRecomputeTick = e.tick
	for _, sid := range e.graph.StreetIDs() {
		s, _ := e.graph.Street(sid)
		e.lastDensity[sid] = s.Density()
	}
	return nil
}

func (e *Engine) updateItinerary(it *network.Itinerary) error {
	it.ResetPath()
	hops, err := e.graph.ShortestPath(it.Destination())
	if err != nil {
		if err == network.ErrUnreachable {
			return nil
		}
		return err
	}
	nodeIDs := e.graph.NodeIDs()
	for _, nid := range nodeIDs {
		for _, next := range hops[nid] {
			if err := it.SetNextHop(nid, next); err != nil {
				return err
			}
		}
	}
	return nil
}

// densityDriftExceeded reports whether any street's density has moved by
// more than 0.1 since the last recompute, the early-recompute trigger
// that runs alongside the fixed tick cadence.
func (e *Engine) densityDriftExceeded() bool {
	for _, sid := range e.graph.StreetIDs() {
		s, _ := e.graph.Street(sid)
		if d := s.Density() - e.lastDensity[sid]; d > 0.1 || d < -0.1 {
			return true
		}
	}
	return false
}

// Step advances the simulation by one tick and returns a snapshot of the
// resulting state. The six phases run in a fixed order: signal phases
// advance, nodes evacuate onto outgoing streets, streets progress their
// transiting agents, arrivals are resolved, pending demand is injected,
// and finally a Measurement is assembled. Every phase iterates its
// entities in ID order, so Step is a pure function of the Engine's state
// and RNG stream.
func (e *Engine) Step() (*Measurement, error) {
	e.advanceTrafficLights()
	if err := e.evacuateNodes(); err != nil {
		return nil, err
	}
	e.advanceStreets()
	if err := e.resolveArrivals(); err != nil {
		return nil, err
	}
	if err := e.injectDemand(); err != nil {
		return nil, err
	}

	e.tick++
	if e.tick-e.lastRecomputeTick >= e.pathRecomputeEvery || e.densityDriftExceeded() {
		if err := e.UpdatePaths(); err != nil {
			return nil, err
		}
	}

	return e.snapshot(), nil
}

func (e *Engine) advanceTrafficLights() {
	for _, nid := range e.graph.NodeIDs() {
		n, _ := e.graph.Node(nid)
		if n.Kind() == network.KindTrafficLight {
			_ = n.IncreaseCounter()
		}
	}
}

// evacuateNodes moves waiting/queued agents onto outgoing streets. Each
// node drains its waiting structure while it has an agent that can
// depart this tick, not just its single front entry: a node fed by
// several inbound streets can release one agent per inbound street per
// tick (bounded by each street's transportCapacity), so the loop keeps
// popping until the node runs empty or its current front agent is
// blocked (red light, a full outbound street, or its inbound street's
// transportCapacity already spent this tick).
//
// Every node's RNG draws happen through a private sub-stream seeded
// deterministically from the engine's own RNG, in node-ID order, before
// any node starts draining — so evacuationWorkers can run node drains
// concurrently (nodes never share a waiting structure, an outgoing
// street, or a sub-stream) without perturbing which draws happen or in
// what order, keeping replay bit-for-bit regardless of worker count.
func (e *Engine) evacuateNodes() error {
	nodeIDs := e.graph.NodeIDs()
	subSeeds := make([]uint64, len(nodeIDs))
	for i := range nodeIDs {
		subSeeds[i] = e.rng.Uint64()
	}

	errs := make([]error, len(nodeIDs))
	drain := func(i int) {
		n, _ := e.graph.Node(nodeIDs[i])
		sub := rand.New(rand.NewPCG(subSeeds[i], subSeeds[i]))
		departed := make(map[network.StreetID]uint64)
		for {
			ok, err := e.evacuateOneFromNode(n, sub, departed)
			if err != nil {
				errs[i] = err
				return
			}
			if !ok {
				return
			}
		}
	}

	workers := e.evacuationWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > len(nodeIDs) {
		workers = len(nodeIDs)
	}
	if workers > 1 {
		var wg sync.WaitGroup
		indices := make(chan int, len(nodeIDs))
		for i := range nodeIDs {
			indices <- i
		}
		close(indices)
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range indices {
					drain(i)
				}
			}()
		}
		wg.Wait()
	} else {
		for i := range nodeIDs {
			drain(i)
		}
	}

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// evacuateOneFromNode attempts to move n's front waiting agent onto an
// outbound street, using sub for every RNG draw the decision needs and
// departed to track how many agents have already left via each inbound
// street this tick. It returns (true, nil) on a successful departure,
// (false, nil) if n is empty or its front agent must wait for the next
// tick, and a non-nil error only on a state invariant violation.
func (e *Engine) evacuateOneFromNode(n *network.Node, sub *rand.Rand, departed map[network.StreetID]uint64) (bool, error) {
	var agentID network.AgentID
	var ok bool
	if n.Kind() == network.KindRoundabout {
		agentID, ok = n.PeekRoundaboutFront()
	} else {
		agentID, ok = n.PeekWaitingFront()
	}
	if !ok {
		return false, nil
	}
	a, ok := e.agents[agentID]
	if !ok {
		return false, ErrStateViolation
	}

	streetIn, hasStreetIn := n.WaitingStreetFor(agentID)
	if hasStreetIn {
		inStreet, err := e.graph.Street(streetIn)
		if err != nil {
			return false, err
		}
		if departed[streetIn] >= inStreet.TransportCapacity() {
			return false, nil
		}
		if n.Kind() == network.KindTrafficLight {
			phase := uint8(1)
			if n.HasPriority(streetIn) {
				phase = 0
			}
			green, err := n.IsGreenStreet(phase)
			if err != nil {
				return false, err
			}
			if !green {
				return false, nil
			}
		}
	}

	it, err := e.Itinerary(a.ItineraryID())
	if err != nil {
		return false, err
	}

	hops := it.NextHops(n.ID())
	if len(hops) == 0 {
		// No next hop is recorded from this node (it is the itinerary's
		// destination, or the destination is unreachable from it). The
		// agent stays at the front of the waiting structure, so nothing
		// else departs from this node this tick.
		return false, nil
	}

	var street *network.Street
	if e.errorProbability > 0 && sub.Float64() < e.errorProbability {
		street = e.pickDeviationStreet(n.ID(), sub)
	} else {
		chosen := hops[sub.IntN(len(hops))]
		street = e.pickStreet(n.ID(), chosen)
	}
	if street == nil || street.IsFull() {
		return false, nil
	}

	if n.Kind() == network.KindRoundabout {
		if _, err := n.Dequeue(); err != nil {
			return false, err
		}
	} else {
		if _, ok := n.PopWaitingFront(); !ok {
			return false, ErrStateViolation
		}
	}

	speed := e.effectiveSpeed(street)
	delay := street.Length() / speed
	if err := a.SetStreet(street.ID(), speed, delay); err != nil {
		return false, err
	}
	if err := street.Enter(agentID); err != nil {
		return false, err
	}
	if hasStreetIn {
		departed[streetIn]++
	}
	return true, nil
}

// pickDeviationStreet samples uniformly among every outbound street of
// nid, matching the stochastic-deviation rule's "any adjacent outbound
// street", with one resample — without replacement, excluding the
// rejected candidate — if the first pick is at capacity.
func (e *Engine) pickDeviationStreet(nid network.NodeID, sub *rand.Rand) *network.Street {
	outgoing := e.graph.OutgoingStreets(nid)
	if len(outgoing) == 0 {
		return nil
	}
	first := outgoing[sub.IntN(len(outgoing))]
	if !first.IsFull() {
		return first
	}
	if len(outgoing) == 1 {
		return nil
	}
	rest := make([]*network.Street, 0, len(outgoing)-1)
	for _, s := range outgoing {
		if s.ID() != first.ID() {
			rest = append(rest, s)
		}
	}
	second := rest[sub.IntN(len(rest))]
	if second.IsFull() {
		return nil
	}
	return second
}

// pickStreet returns the lowest-ID outgoing street from src to dst, or
// nil if none exists.
func (e *Engine) pickStreet(src, dst network.NodeID) *network.Street {
	for _, s := range e.graph.OutgoingStreets(src) {
		if s.Dst() == dst {
			return s
		}
	}
	return nil
}

// effectiveSpeed applies the congestion model: speed is depressed below
// the street's limit in proportion to its current density, floored at
// minSpeedRateo of the limit.
func (e *Engine) effectiveSpeed(s *network.Street) float64 {
	rateo := 1 - e.congestionFactor*s.Density()
	if rateo < e.minSpeedRateo {
		rateo = e.minSpeedRateo
	}
	return s.MaxSpeed() * rateo
}

// advanceStreets moves every in-transit agent forward by one tick and
// transfers agents that have finished transiting into their street's
// exit queue.
func (e *Engine) advanceStreets() {
	for _, sid := range e.graph.StreetIDs() {
		s, _ := e.graph.Street(sid)
		for _, agentID := range append([]network.AgentID(nil), s.Transiting()...) {
			a, ok := e.agents[agentID]
			if !ok {
				continue
			}
			_ = a.Advance(1)
			if a.ReadyToExit() {
				_ = s.MoveToExitQueue(agentID)
			}
		}
	}
}

// resolveArrivals drains each street's exit queue into its destination
// node, or destroys the agent if that destination is the end of its
// itinerary.
func (e *Engine) resolveArrivals() error {
	for _, sid := range e.graph.StreetIDs() {
		s, _ := e.graph.Street(sid)
		dst, err := e.graph.Node(s.Dst())
		if err != nil {
			return err
		}
		for {
			agentID, ok := s.PeekExitFront()
			if !ok {
				break
			}
			a, ok := e.agents[agentID]
			if !ok {
				return ErrStateViolation
			}
			it, err := e.Itinerary(a.ItineraryID())
			if err != nil {
				return err
			}

			if dst.ID() == it.Destination() {
				_, _ = s.PopExitFront(a.Speed())
				a.MarkArrived()
				e.untrackAgent(agentID)
				e.arrivedTotal++
				continue
			}

			if dst.IsFull() {
				break
			}

			var admitErr error
			if dst.Kind() == network.KindRoundabout {
				admitErr = dst.Enqueue(agentID)
			} else {
				// The key is the inbound street's own heading (radians
				// ×100, rounded); no difference against an outbound
				// heading is taken.
				angleKey := int16(math.Round(s.Angle() * 100))
				admitErr = dst.AddWaitingAgentFromStreet(angleKey, s.ID(), agentID)
			}
			if admitErr != nil {
				break
			}
			_, _ = s.PopExitFront(a.Speed())
			if err := a.ClearStreet(dst.ID()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) untrackAgent(id network.AgentID) {
	delete(e.agents, id)
	idx := sort.Search(len(e.agentIDs), func(i int) bool { return e.agentIDs[i] >= id })
	if idx < len(e.agentIDs) && e.agentIDs[idx] == id {
		e.agentIDs = append(e.agentIDs[:idx], e.agentIDs[idx+1:]...)
	}
}

// injectDemand admits every pending demand request whose source node has
// room, in the order the requests were queued; requests that find the
// source node full are counted as rejected and dropped rather than
// retried on a later tick.
func (e *Engine) injectDemand() error {
	pending := e.pendingDemand
	e.pendingDemand = nil
	for _, req := range pending {
		n, err := e.graph.Node(req.srcNodeID)
		if err != nil {
			return err
		}
		if n.IsFull() {
			e.demandRejected++
			continue
		}

		id := e.nextAgentID
		e.nextAgentID++
		a := agent.New(id, req.itineraryID, req.srcNodeID)
		e.agents[id] = a
		idx := sort.Search(len(e.agentIDs), func(i int) bool { return e.agentIDs[i] >= id })
		e.agentIDs = append(e.agentIDs, 0)
		copy(e.agentIDs[idx+1:], e.agentIDs[idx:])
		e.agentIDs[idx] = id

		if n.Kind() == network.KindRoundabout {
			err = n.Enqueue(id)
		} else {
			err = n.AddWaitingAgent(0, id)
		}
		if err != nil {
			e.untrackAgent(id)
			e.demandRejected++
		}
	}
	return nil
}

func (e *Engine) snapshot() *Measurement {
	m := &Measurement{Tick: e.tick, ArrivedTotal: e.arrivedTotal, DemandRejected: e.demandRejected}
	var speedSum float64
	for _, id := range e.agentIDs {
		a := e.agents[id]
		switch a.Status() {
		case agent.StatusTravelling:
			m.TravellingCount++
			speedSum += a.Speed()
		case agent.StatusWaiting:
			m.WaitingCount++
		}
	}
	if m.TravellingCount > 0 {
		m.MeanSpeed = speedSum / float64(m.TravellingCount)
		var varSum float64
		for _, id := range e.agentIDs {
			a := e.agents[id]
			if a.Status() != agent.StatusTravelling {
				continue
			}
			d := a.Speed() - m.MeanSpeed
			varSum += d * d
		}
		m.SpeedStdDev = math.Sqrt(varSum / float64(m.TravellingCount))
	}
	for _, sid := range e.graph.StreetIDs() {
		s, _ := e.graph.Street(sid)
		sm := StreetMeasurement{StreetID: sid, Density: s.Density(), NumAgents: s.NumAgents()}
		if transiting := s.Transiting(); len(transiting) > 0 {
			var sum float64
			for _, aid := range transiting {
				if a, ok := e.agents[aid]; ok {
					sum += a.Speed()
				}
			}
			sm.MeanSpeed = sum / float64(len(transiting))
		}
		if spire := s.Spire(); spire != nil {
			sm.InputFlow = spire.InputCount
			sm.OutputFlow = spire.OutputCount
		}
		m.Streets = append(m.Streets, sm)
	}
	return m
}
