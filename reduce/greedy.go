package reduce

import (
	"container/heap"

	"github.com/minhs-go/minhs/hypergraph"
)

// heapEntry is one (degree, vertex) pair in the greedy max-heap. Entries go
// stale when a vertex's degree drops after one of its edges gets hit;
// GreedyApproximation discards stale entries lazily on pop rather than
// updating them in place.
type heapEntry struct {
	degree int
	vertex hypergraph.NodeIdx
}

type heapEntries []heapEntry

func (h heapEntries) Len() int            { return len(h) }
func (h heapEntries) Less(i, j int) bool  { return h[i].degree > h[j].degree }
func (h heapEntries) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *heapEntries) Push(x interface{}) { *h = append(*h, x.(heapEntry)) }
func (h *heapEntries) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// GreedyApproximation computes a valid hitting set by repeatedly taking the
// currently highest-degree alive vertex, marking its incident edges hit,
// and decrementing the degree of every other vertex on those edges (§4.7).
// It terminates once every edge is hit and never mutates ins.
func GreedyApproximation(ins *hypergraph.Instance) []hypergraph.NodeIdx {
	currentDegree := make(map[hypergraph.NodeIdx]int)
	hit := make(map[hypergraph.EdgeIdx]bool)

	h := make(heapEntries, 0, ins.NumAliveNodes())
	for _, v := range ins.Nodes() {
		d := ins.NodeDegree(v)
		currentDegree[v] = d
		h = append(h, heapEntry{degree: d, vertex: v})
	}
	heap.Init(&h)

	var hs []hypergraph.NodeIdx
	for h.Len() > 0 {
		top := heap.Pop(&h).(heapEntry)
		if top.degree != currentDegree[top.vertex] {
			continue // stale entry
		}
		if top.degree == 0 {
			break
		}

		hs = append(hs, top.vertex)
		currentDegree[top.vertex] = 0
		ins.Node(top.vertex, func(e hypergraph.EdgeIdx) bool {
			if hit[e] {
				return true
			}
			hit[e] = true
			ins.Edge(e, func(u hypergraph.NodeIdx) bool {
				if u == top.vertex {
					return true
				}
				if currentDegree[u] > 0 {
					currentDegree[u]--
					heap.Push(&h, heapEntry{degree: currentDegree[u], vertex: u})
				}
				return true
			})
			return true
		})
	}
	return hs
}
