// Package hypergraph implements the reversible hypergraph store (component
// E): a fixed universe of vertices and hyperedges with bidirectional
// incidence lists that support O(degree) delete/restore in strict LIFO
// order. This is the data structure the branch-and-bound driver mutates at
// every reduction and branching step.
//
// Cross-reference invariant: for every live incidence entry, the back-ref
// stored on each side locates the mirror entry on the other side. All four
// fields (v in V(e), e in N(v)) are simultaneously alive or simultaneously
// suppressed — delete_node and delete_edge maintain this by walking one
// side's skipvec.SkipVec and deleting the mirror entry on the other side.
package hypergraph

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/minhs-go/minhs/contidx"
	"github.com/minhs-go/minhs/skipvec"
)

// NodeIdx, EdgeIdx and EntryIdx are distinct 32-bit index types so that
// mixing a vertex index with an edge index is a compile-time error.
type (
	NodeIdx  uint32
	EdgeIdx  uint32
	EntryIdx uint32
)

// Invalid is the sentinel shared by all index types here.
const Invalid = ^uint32(0)

// InvalidNode, InvalidEdge and InvalidEntry are the typed sentinels.
const (
	InvalidNode  NodeIdx  = NodeIdx(Invalid)
	InvalidEdge  EdgeIdx  = EdgeIdx(Invalid)
	InvalidEntry EntryIdx = EntryIdx(Invalid)
)

// Valid reports whether an index is not its type's INVALID sentinel.
func (n NodeIdx) Valid() bool  { return n != InvalidNode }
func (e EdgeIdx) Valid() bool  { return e != InvalidEdge }
func (e EntryIdx) Valid() bool { return e != InvalidEntry }

// Idx returns the plain int form of an index, for slice indexing.
func (n NodeIdx) Idx() int  { return int(n) }
func (e EdgeIdx) Idx() int  { return int(e) }
func (e EntryIdx) Idx() int { return int(e) }

// nodeEntry is one slot of a vertex's incidence list: the edge it is
// incident to, and the position of the mirror entry in that edge's own
// incidence list.
type nodeEntry struct {
	edge   EdgeIdx
	mirror EntryIdx
}

// edgeEntry mirrors nodeEntry from the edge's side.
type edgeEntry struct {
	node   NodeIdx
	mirror EntryIdx
}

// Instance holds a fixed universe of N_total vertices and M_total edges.
// Only the live sets and the live chains within incidence lists change
// after construction; no allocation happens during search.
type Instance struct {
	nodes *contidx.Vec[NodeIdx]
	edges *contidx.Vec[EdgeIdx]

	nodeIncidence []*skipvec.SkipVec[nodeEntry] // N(v), sorted by edge index
	edgeIncidence []*skipvec.SkipVec[edgeEntry] // V(e), sorted by vertex index
}

// ErrInvalidInput is returned by Load when the edge list is malformed:
// an empty edge, an out-of-range vertex index, or an unsorted edge.
var ErrInvalidInput = fmt.Errorf("hypergraph: invalid input")

// Load builds an Instance from a vertex count and a list of edges, each a
// sorted, non-empty list of vertex indices in [0, numVertices). Edges in the
// input need not be sorted relative to each other.
func Load(numVertices int, edges [][]int) (*Instance, error) {
	for i, e := range edges {
		if len(e) == 0 {
			return nil, fmt.Errorf("%w: edge %d is empty", ErrInvalidInput, i)
		}
		for j, v := range e {
			if v < 0 || v >= numVertices {
				return nil, fmt.Errorf("%w: edge %d references vertex %d out of range [0,%d)", ErrInvalidInput, i, v, numVertices)
			}
			if j > 0 && e[j-1] >= v {
				return nil, fmt.Errorf("%w: edge %d is not strictly sorted", ErrInvalidInput, i)
			}
		}
	}

	nodeDegrees := make([]int, numVertices)
	edgeIncidence := make([]*skipvec.SkipVec[edgeEntry], len(edges))
	for ei, e := range edges {
		items := make([]edgeEntry, len(e))
		for k, v := range e {
			items[k] = edgeEntry{node: NodeIdx(v), mirror: InvalidEntry}
			nodeDegrees[v]++
		}
		edgeIncidence[ei] = skipvec.NewSorted(items)
	}

	nodeIncidence := make([]*skipvec.SkipVec[nodeEntry], numVertices)
	for v, deg := range nodeDegrees {
		nodeIncidence[v] = skipvec.WithLen[nodeEntry](deg)
	}

	remDegrees := make([]int, numVertices)
	copy(remDegrees, nodeDegrees)
	for ei, sv := range edgeIncidence {
		for slot := 0; slot < sv.Len(); slot++ {
			ent := sv.At(slot)
			v := ent.node.Idx()
			nodeSlot := nodeDegrees[v] - remDegrees[v]
			remDegrees[v]--
			sv.Set(slot, edgeEntry{node: ent.node, mirror: EntryIdx(nodeSlot)})
			nodeIncidence[v].Set(nodeSlot, nodeEntry{edge: EdgeIdx(ei), mirror: EntryIdx(slot)})
		}
	}

	return &Instance{
		nodes:         contidx.New[NodeIdx](numVertices),
		edges:         contidx.New[EdgeIdx](len(edges)),
		nodeIncidence: nodeIncidence,
		edgeIncidence: edgeIncidence,
	}, nil
}

// NumAliveNodes reports the number of currently-live vertices.
func (ins *Instance) NumAliveNodes() int { return ins.nodes.Len() }

// NumAliveEdges reports the number of currently-live edges.
func (ins *Instance) NumAliveEdges() int { return ins.edges.Len() }

// NumNodesTotal reports N_total, fixed at Load time.
func (ins *Instance) NumNodesTotal() int { return len(ins.nodeIncidence) }

// NumEdgesTotal reports M_total, fixed at Load time.
func (ins *Instance) NumEdgesTotal() int { return len(ins.edgeIncidence) }

// Nodes returns the live vertices, in arbitrary order.
func (ins *Instance) Nodes() []NodeIdx { return ins.nodes.Data() }

// Edges returns the live edges, in arbitrary order.
func (ins *Instance) Edges() []EdgeIdx { return ins.edges.Data() }

// NodeDegree reports |N(v)|, the number of live edges incident to v.
func (ins *Instance) NodeDegree(v NodeIdx) int { return ins.nodeIncidence[v.Idx()].Len() }

// EdgeSize reports |V(e)|, the number of live vertices incident to e.
func (ins *Instance) EdgeSize(e EdgeIdx) int { return ins.edgeIncidence[e.Idx()].Len() }

// IsNodeDeleted reports whether v is currently deleted.
func (ins *Instance) IsNodeDeleted(v NodeIdx) bool { return ins.nodes.IsDeleted(v.Idx()) }

// IsEdgeDeleted reports whether e is currently deleted.
func (ins *Instance) IsEdgeDeleted(e EdgeIdx) bool { return ins.edges.IsDeleted(e.Idx()) }

// Node calls fn for every edge incident to v, ascending by edge index.
func (ins *Instance) Node(v NodeIdx, fn func(EdgeIdx) bool) {
	ins.nodeIncidence[v.Idx()].Iter(func(_ int, ne nodeEntry) bool { return fn(ne.edge) })
}

// NodeEdges collects the live edges incident to v, ascending.
func (ins *Instance) NodeEdges(v NodeIdx) []EdgeIdx {
	out := make([]EdgeIdx, 0, ins.NodeDegree(v))
	ins.Node(v, func(e EdgeIdx) bool { out = append(out, e); return true })
	return out
}

// Edge calls fn for every vertex incident to e, ascending by vertex index.
func (ins *Instance) Edge(e EdgeIdx, fn func(NodeIdx) bool) {
	ins.edgeIncidence[e.Idx()].Iter(func(_ int, ee edgeEntry) bool { return fn(ee.node) })
}

// EdgeNodes collects the live vertices incident to e, ascending.
func (ins *Instance) EdgeNodes(e EdgeIdx) []NodeIdx {
	out := make([]NodeIdx, 0, ins.EdgeSize(e))
	ins.Edge(e, func(v NodeIdx) bool { out = append(out, v); return true })
	return out
}

// DeleteNode removes v from the live vertex set and unlinks it from every
// edge incident to it (the edges themselves stay alive, just smaller).
func (ins *Instance) DeleteNode(v NodeIdx) {
	ins.nodeIncidence[v.Idx()].Iter(func(_ int, ne nodeEntry) bool {
		ins.edgeIncidence[ne.edge.Idx()].Delete(ne.mirror.Idx())
		return true
	})
	ins.nodes.Delete(v.Idx())
}

// DeleteEdge removes e from the live edge set and unlinks it from every
// vertex incident to it.
func (ins *Instance) DeleteEdge(e EdgeIdx) {
	ins.edgeIncidence[e.Idx()].Iter(func(_ int, ee edgeEntry) bool {
		ins.nodeIncidence[ee.node.Idx()].Delete(ee.mirror.Idx())
		return true
	})
	ins.edges.Delete(e.Idx())
}

// RestoreNode reverses a prior DeleteNode(v). Restores (of nodes or edges)
// must be issued in exact reverse order of the matching deletes.
func (ins *Instance) RestoreNode(v NodeIdx) {
	ins.nodeIncidence[v.Idx()].IterRev(func(_ int, ne nodeEntry) bool {
		ins.edgeIncidence[ne.edge.Idx()].Restore(ne.mirror.Idx())
		return true
	})
	ins.nodes.Restore(v.Idx())
}

// RestoreEdge reverses a prior DeleteEdge(e).
func (ins *Instance) RestoreEdge(e EdgeIdx) {
	ins.edgeIncidence[e.Idx()].IterRev(func(_ int, ee edgeEntry) bool {
		ins.nodeIncidence[ee.node.Idx()].Restore(ee.mirror.Idx())
		return true
	})
	ins.edges.Restore(e.Idx())
}

// DeleteIncidentEdges deletes every edge still incident to v. v itself must
// already be deleted, so that iterating its (now frozen) incidence list is
// sound even as other vertices' incidence lists change underneath it.
func (ins *Instance) DeleteIncidentEdges(v NodeIdx) {
	if skipvec.Debug && !ins.nodes.IsDeleted(v.Idx()) {
		panic("hypergraph: DeleteIncidentEdges requires v to already be deleted")
	}
	for _, e := range ins.frozenIncidentEdges(v) {
		ins.DeleteEdge(e)
	}
}

// RestoreIncidentEdges reverses a prior DeleteIncidentEdges(v), restoring
// edges in reverse order. v must still be deleted when this is called.
func (ins *Instance) RestoreIncidentEdges(v NodeIdx) {
	if skipvec.Debug && !ins.nodes.IsDeleted(v.Idx()) {
		panic("hypergraph: RestoreIncidentEdges requires v to still be deleted")
	}
	edges := ins.frozenIncidentEdges(v)
	for i := len(edges) - 1; i >= 0; i-- {
		ins.RestoreEdge(edges[i])
	}
}

// ExportILP renders the instance as a 0/1 set-cover integer program in CPLEX
// LP format: minimize the sum of all live vertex variables subject to, for
// every live edge, the sum of its incident vertex variables being at least
// one. Vertex and edge indices are remapped to a dense 0-based ILP ordering
// since NodeIdx/EdgeIdx values may have gaps after reductions have deleted
// some of the universe.
func (ins *Instance) ExportILP(w io.Writer) error {
	nodes := append([]NodeIdx(nil), ins.Nodes()...)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	ilpVar := make(map[NodeIdx]int, len(nodes))
	for i, v := range nodes {
		ilpVar[v] = i
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "Minimize")
	fmt.Fprint(bw, " obj:")
	for i := range nodes {
		fmt.Fprintf(bw, " +x%d", i)
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "Subject To")
	edges := append([]EdgeIdx(nil), ins.Edges()...)
	sort.Slice(edges, func(i, j int) bool { return edges[i] < edges[j] })
	for ci, e := range edges {
		fmt.Fprintf(bw, " c%d:", ci)
		for _, v := range ins.EdgeNodes(e) {
			fmt.Fprintf(bw, " +x%d", ilpVar[v])
		}
		fmt.Fprintln(bw, " >= 1")
	}

	fmt.Fprintln(bw, "Binary")
	for i := range nodes {
		fmt.Fprintf(bw, " x%d\n", i)
	}
	fmt.Fprintln(bw, "End")
	return bw.Flush()
}

// frozenIncidentEdges snapshots the edges in v's incidence list. v is
// already deleted when this is called from DeleteIncidentEdges/
// RestoreIncidentEdges, so the list itself no longer changes underneath the
// caller even as the edges it names are deleted/restored one by one.
func (ins *Instance) frozenIncidentEdges(v NodeIdx) []EdgeIdx {
	sv := ins.nodeIncidence[v.Idx()]
	edges := make([]EdgeIdx, 0, sv.Len())
	sv.Iter(func(_ int, ne nodeEntry) bool { edges = append(edges, ne.edge); return true })
	return edges
}
