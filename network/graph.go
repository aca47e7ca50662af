package network

import (
	"container/heap"
	"math"
	"sort"

	"github.com/mobiligo/flowmesh/smatrix"
)

// Graph owns every Node and Street in a simulation and the adjacency
// matrix built from them. It never references agents or itineraries by
// pointer; callers hold IDs and look entities up through the Graph.
//
// nodeIDs and streetIDs are kept sorted alongside the ID-keyed maps so
// that every per-tick traversal can proceed in a reproducible order
// instead of Go's randomized map iteration order.
type Graph struct {
	nodes   map[NodeID]*Node
	streets map[StreetID]*Street

	nodeIDs   []NodeID
	streetIDs []StreetID

	// adj.At(i, j) is true when a street runs directly from i to j.
	adj *smatrix.SparseMatrix[bool]
}

// NewGraph builds an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[NodeID]*Node),
		streets: make(map[StreetID]*Street),
	}
}

// AddNode registers a node. Returns ErrDuplicateEntity if its ID is
// already present.
func (g *Graph) AddNode(n *Node) error {
	if _, exists := g.nodes[n.id]; exists {
		return ErrDuplicateEntity
	}
	g.nodes[n.id] = n
	idx := sort.Search(len(g.nodeIDs), func(i int) bool { return g.nodeIDs[i] >= n.id })
	g.nodeIDs = append(g.nodeIDs, 0)
	copy(g.nodeIDs[idx+1:], g.nodeIDs[idx:])
	g.nodeIDs[idx] = n.id
	return nil
}

// AddStreet registers a street. Returns ErrDuplicateEntity if its ID is
// already present, ErrNotFound if either endpoint is unregistered.
func (g *Graph) AddStreet(s *Street) error {
	if _, exists := g.streets[s.id]; exists {
		return ErrDuplicateEntity
	}
	if _, ok := g.nodes[s.src]; !ok {
		return ErrNotFound
	}
	if _, ok := g.nodes[s.dst]; !ok {
		return ErrNotFound
	}
	g.streets[s.id] = s
	idx := sort.Search(len(g.streetIDs), func(i int) bool { return g.streetIDs[i] >= s.id })
	g.streetIDs = append(g.streetIDs, 0)
	copy(g.streetIDs[idx+1:], g.streetIDs[idx:])
	g.streetIDs[idx] = s.id
	return nil
}

// Node looks up a node by ID.
func (g *Graph) Node(id NodeID) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return n, nil
}

// Street looks up a street by ID.
func (g *Graph) Street(id StreetID) (*Street, error) {
	s, ok := g.streets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// NodeIDs returns every node ID in ascending order. The returned slice
// aliases internal state and must not be mutated.
func (g *Graph) NodeIDs() []NodeID { return g.nodeIDs }

// StreetIDs returns every street ID in ascending order. The returned
// slice aliases internal state and must not be mutated.
func (g *Graph) StreetIDs() []StreetID { return g.streetIDs }

// NodeCount returns the number of registered nodes.
func (g *Graph) NodeCount() uint64 { return uint64(len(g.nodeIDs)) }

// OutgoingStreets returns the streets leaving a node, in street-ID order.
func (g *Graph) OutgoingStreets(id NodeID) []*Street {
	var out []*Street
	for _, sid := range g.streetIDs {
		s := g.streets[sid]
		if s.src == id {
			out = append(out, s)
		}
	}
	return out
}

// BuildAdj (re)builds the adjacency matrix from the current street set,
// so it reflects only streets added before the call. ShortestPath, PathTo
// and BuildStreetAngles read the street set directly and do not depend on
// it.
func (g *Graph) BuildAdj() error {
	n := g.NodeCount()
	adj, err := smatrix.New[bool](n, n)
	if err != nil {
		return err
	}
	for _, sid := range g.streetIDs {
		s := g.streets[sid]
		// Two streets may share an ordered (src, dst) pair in a multigraph;
		// adjacency only cares that a street exists, not how many.
		if err := adj.InsertOrAssign(uint64(s.src), uint64(s.dst), true); err != nil {
			return err
		}
	}
	g.adj = adj
	return nil
}

// BuildStreetAngles computes each street's heading from its endpoints'
// coordinates and records it via Street.SetAngle. Streets whose
// endpoints lack coordinates are left at angle zero.
func (g *Graph) BuildStreetAngles() {
	for _, sid := range g.streetIDs {
		s := g.streets[sid]
		src, dst := g.nodes[s.src], g.nodes[s.dst]
		if src.coords == nil || dst.coords == nil {
			continue
		}
		dy := dst.coords.Lat() - src.coords.Lat()
		dx := dst.coords.Lon() - src.coords.Lon()
		s.SetAngle(math.Atan2(dy, dx))
	}
}

// pqItem is one entry in the Dijkstra priority queue.
type pqItem struct {
	node NodeID
	dist float64
}

// nodePQ is a min-heap over pqItem.dist, breaking ties on the lower node
// ID so that ShortestPath's exploration order is reproducible regardless
// of heap insertion order.
type nodePQ []pqItem

func (pq nodePQ) Len() int { return len(pq) }
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].node < pq[j].node
}
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x any)   { *pq = append(*pq, x.(pqItem)) }
func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}

// EdgeWeight computes the Dijkstra edge cost for a street: its free-flow
// travel time, inflated by its current density so that congested streets
// are progressively disfavored by routing.
func EdgeWeight(s *Street) float64 {
	if s.maxSpeed <= 0 {
		return math.Inf(1)
	}
	return (s.length / s.maxSpeed) * (1 + s.Density())
}

// ShortestPath runs a density-weighted Dijkstra from every reachable node
// toward destination (by traversing streets in reverse) and returns, for
// each node from which destination is reachable, the set of next hops
// lying on a shortest path. Every equally short next hop is kept, sorted by
// ascending node ID, making the result reproducible.
//
// BuildAdj need not have been called; ShortestPath walks g.streets
// directly.
func (g *Graph) ShortestPath(destination NodeID) (map[NodeID][]NodeID, error) {
	if _, ok := g.nodes[destination]; !ok {
		return nil, ErrNotFound
	}

	dist := make(map[NodeID]float64, len(g.nodeIDs))
	for _, id := range g.nodeIDs {
		dist[id] = math.Inf(1)
	}
	dist[destination] = 0

	// incoming[v] lists streets terminating at v, the edges we relax
	// walking backward from the destination.
	incoming := make(map[NodeID][]*Street)
	for _, sid := range g.streetIDs {
		s := g.streets[sid]
		incoming[s.dst] = append(incoming[s.dst], s)
	}

	pq := &nodePQ{}
	heap.Init(pq)
	heap.Push(pq, pqItem{node: destination, dist: 0})
	visited := make(map[NodeID]bool, len(g.nodeIDs))

	for pq.Len() > 0 {
		u := heap.Pop(pq).(pqItem)
		if visited[u.node] {
			continue
		}
		visited[u.node] = true

		for _, s := range incoming[u.node] {
			v := s.src
			if visited[v] {
				continue
			}
			nd := dist[u.node] + EdgeWeight(s)
			if nd < dist[v] {
				dist[v] = nd
				heap.Push(pq, pqItem{node: v, dist: nd})
			}
		}
	}

	hops := make(map[NodeID][]NodeID)
	for _, id := range g.nodeIDs {
		if id == destination || math.IsInf(dist[id], 1) {
			continue
		}
		best := math.Inf(1)
		for _, s := range g.OutgoingStreets(id) {
			if math.IsInf(dist[s.dst], 1) {
				continue
			}
			cand := EdgeWeight(s) + dist[s.dst]
			if cand < best-1e-12 {
				best = cand
				hops[id] = []NodeID{s.dst}
			} else if cand <= best+1e-12 {
				hops[id] = append(hops[id], s.dst)
			}
		}
		sort.Slice(hops[id], func(i, j int) bool { return hops[id][i] < hops[id][j] })
	}
	if len(hops) == 0 {
		return nil, ErrUnreachable
	}
	return hops, nil
}

// PathTo reconstructs a single shortest path from src to dst as a list of
// node IDs, src first and dst last, using the same density-weighted Dijkstra
// and lower-successor-ID tie-break as ShortestPath. Returns ErrUnreachable
// if dst cannot be reached from src.
//
// This walks g.streets directly and does not require BuildAdj.
func (g *Graph) PathTo(src, dst NodeID) ([]NodeID, error) {
	if _, ok := g.nodes[src]; !ok {
		return nil, ErrNotFound
	}

	if src == dst {
		return []NodeID{src}, nil
	}

	hops, err := g.ShortestPath(dst)
	if err != nil {
		return nil, err
	}
	if _, ok := hops[src]; !ok {
		return nil, ErrUnreachable
	}

	path := []NodeID{src}
	for cur := src; cur != dst; {
		next, ok := hops[cur]
		if !ok || len(next) == 0 {
			return nil, ErrUnreachable
		}
		cur = next[0]
		path = append(path, cur)
	}
	return path, nil
}
