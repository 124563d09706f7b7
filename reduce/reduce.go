// Package reduce implements the reduction engine (component G): the
// ordered pass of forced-vertex, costly-discard, and domination rules run
// before every branching decision, plus the greedy upper bound (§4.7) the
// engine uses to tighten minimum_hs along the way.
package reduce

import (
	"sort"
	"time"

	"github.com/minhs-go/minhs/hypergraph"
	"github.com/minhs-go/minhs/lowerbound"
	"github.com/minhs-go/minhs/report"
	"github.com/minhs-go/minhs/settrie"
)

type itemKind int

const (
	removedNode itemKind = iota
	removedEdge
	forcedNode
)

// ReducedItem is one unit of the reduction batch: a vertex or edge removed
// from the live instance, or a vertex forced into the partial hitting set.
type ReducedItem struct {
	kind itemKind
	node hypergraph.NodeIdx
	edge hypergraph.EdgeIdx
}

func removedNodeItem(v hypergraph.NodeIdx) ReducedItem { return ReducedItem{kind: removedNode, node: v} }
func removedEdgeItem(e hypergraph.EdgeIdx) ReducedItem { return ReducedItem{kind: removedEdge, edge: e} }
func forcedNodeItem(v hypergraph.NodeIdx) ReducedItem  { return ReducedItem{kind: forcedNode, node: v} }

func (it ReducedItem) apply(ins *hypergraph.Instance, partialHS *[]hypergraph.NodeIdx) {
	switch it.kind {
	case removedNode:
		ins.DeleteNode(it.node)
	case removedEdge:
		ins.DeleteEdge(it.edge)
	case forcedNode:
		ins.DeleteNode(it.node)
		ins.DeleteIncidentEdges(it.node)
		*partialHS = append(*partialHS, it.node)
	}
}

func (it ReducedItem) restore(ins *hypergraph.Instance, partialHS *[]hypergraph.NodeIdx) {
	switch it.kind {
	case removedNode:
		ins.RestoreNode(it.node)
	case removedEdge:
		ins.RestoreEdge(it.edge)
	case forcedNode:
		ins.RestoreIncidentEdges(it.node)
		ins.RestoreNode(it.node)
		n := len(*partialHS)
		*partialHS = (*partialHS)[:n-1]
	}
}

// Batch records every ReducedItem produced by one call to Reduce, in the
// order they were applied.
type Batch struct {
	items []ReducedItem
}

// ForcedVertices returns the vertices this batch forced into the partial
// hitting set, in application order. Used by the activity-based branching
// heuristic to bump the vertices reductions found useful.
func (b Batch) ForcedVertices() []hypergraph.NodeIdx {
	var out []hypergraph.NodeIdx
	for _, it := range b.items {
		if it.kind == forcedNode {
			out = append(out, it.node)
		}
	}
	return out
}

// Restore reverses every item in the batch, in exact reverse application
// order, per the LIFO discipline shared with every other reversible
// primitive in this solver.
func (b Batch) Restore(ins *hypergraph.Instance, partialHS *[]hypergraph.NodeIdx) {
	for i := len(b.items) - 1; i >= 0; i-- {
		b.items[i].restore(ins, partialHS)
	}
}

// Result is the outcome of one Reduce call.
type Result int

const (
	// Solved: reductions alone hit every edge; partial_hs is now a valid HS.
	Solved Result = iota
	// Unsolvable: a lower bound proved no smaller HS exists along this branch.
	Unsolvable
	// Stop: the upper bound reached settings.StopAt; the caller should unwind.
	Stop
	// Finished: no rule fired this pass; the caller should branch.
	Finished
)

func collectTime(d *time.Duration, fn func()) {
	start := time.Now()
	fn()
	*d += time.Since(start)
}

// Reduce runs the outer reduction loop of §4.6 against ins, mutating
// partialHS and minimumHS as rules fire, and returns the terminal result
// together with the batch of items applied (already applied to ins; the
// caller restores the batch once it is done with this branch).
func Reduce(ins *hypergraph.Instance, partialHS, minimumHS *[]hypergraph.NodeIdx, settings report.Settings, rep *report.Report) (Result, Batch) {
	if settings.GreedyMode == report.GreedyOnce {
		recalcGreedyUpperBound(ins, partialHS, minimumHS, rep)
		if len(*minimumHS) <= settings.StopAt {
			return Stop, Batch{}
		}
	}

	var items []ReducedItem
	apply := func(it ReducedItem) {
		collectTime(&rep.Runtimes.ApplyingReductions, func() { it.apply(ins, partialHS) })
		items = append(items, it)
	}

	result := func() Result {
		for {
			if len(*partialHS) >= len(*minimumHS) {
				return Unsolvable
			}
			if ins.NumAliveEdges() == 0 {
				return Solved
			}

			if settings.GreedyMode == report.GreedyAlwaysBeforeBounds {
				recalcGreedyUpperBound(ins, partialHS, minimumHS, rep)
				if len(*minimumHS) <= settings.StopAt {
					return Stop
				}
				if len(*partialHS) >= len(*minimumHS) {
					return Unsolvable
				}
			}

			breakpoint := len(*minimumHS) - len(*partialHS)

			if settings.EnableMaxDegreeBound {
				var b int
				collectTime(&rep.Runtimes.MaxDegreeBound, func() { b = lowerbound.MaxDegreeBound(ins) })
				if b >= breakpoint {
					rep.Reductions.MaxDegreeBoundBreaks++
					return Unsolvable
				}
			}

			if settings.EnableSumDegreeBound {
				var b int
				collectTime(&rep.Runtimes.SumDegreeBound, func() { b = lowerbound.SumDegreeBound(ins) })
				if b >= breakpoint {
					rep.Reductions.SumDegreeBoundBreaks++
					return Unsolvable
				}
			}

			var discardBounds lowerbound.EfficiencyBound
			if settings.EnableEfficiencyBound {
				collectTime(&rep.Runtimes.EfficiencyBound, func() { discardBounds = lowerbound.CalcEfficiencyBound(ins) })
				if discardBounds.Round() >= breakpoint {
					rep.Reductions.EfficiencyDegreeBoundBreaks++
					return Unsolvable
				}
			}

			var packingBound lowerbound.PackingBound
			if settings.EnablePackingBound {
				collectTime(&rep.Runtimes.PackingBound, func() {
					packingBound = lowerbound.NewPackingBound(ins, settings.EnableLocalSearch)
				})
				if packingBound.Bound() >= breakpoint {
					rep.Reductions.PackingBoundBreaks++
					return Unsolvable
				}
			}

			if settings.EnablePackingBound && settings.EnableSumOverPackingBound {
				var b int
				collectTime(&rep.Runtimes.SumOverPackingBound, func() { b = packingBound.CalcSumOverPackingBound(ins) })
				if b >= breakpoint {
					rep.Reductions.SumOverPackingBoundBreaks++
					return Unsolvable
				}
			}

			before := len(items)

			rep.Reductions.ForcedVertexRuns++
			collectTime(&rep.Runtimes.ForcedVertex, func() {
				for _, v := range findForcedNodes(ins) {
					apply(forcedNodeItem(v))
				}
			})
			rep.Reductions.ForcedVerticesFound += len(items) - before

			if len(items) == before && settings.EnableEfficiencyBound {
				rep.Reductions.CostlyDiscardEfficiencyRuns++
				found := before
				// Iterate a snapshot: applying a forced vertex reorders the
				// live prefix that ins.Nodes() returns.
				for _, v := range append([]hypergraph.NodeIdx(nil), ins.Nodes()...) {
					if discardBounds.DiscardBound(v) >= breakpoint {
						apply(forcedNodeItem(v))
					}
				}
				rep.Reductions.CostlyDiscardEfficiencyVerticesFound += len(items) - found
			}

			if len(items) == before && settings.EnablePackingBound {
				rep.Reductions.CostlyDiscardPackingUpdateRuns++
				found := before
				collectTime(&rep.Runtimes.CostlyDiscardPackingUpdate, func() {
					for _, db := range packingBound.CalcDiscardBounds(ins) {
						if db.Bound >= breakpoint {
							apply(forcedNodeItem(db.Node))
						}
					}
				})
				rep.Reductions.CostlyDiscardPackingUpdateVerticesFound += len(items) - found
			}

			if len(items) == before && settings.GreedyMode == report.GreedyAlwaysBeforeExpensiveReductions {
				recalcGreedyUpperBound(ins, partialHS, minimumHS, rep)
				if len(*minimumHS) <= settings.StopAt {
					return Stop
				}
				if len(*partialHS) >= len(*minimumHS) {
					return Unsolvable
				}
				breakpoint = len(*minimumHS) - len(*partialHS)
			}

			if len(items) == before && settings.PackingFromScratchLimit > 0 {
				rep.Reductions.CostlyDiscardPackingFromScratchRuns++
				collectTime(&rep.Runtimes.CostlyDiscardPackingFromScratch, func() {
					if v, ok := findCostlyDiscardByPackingFromScratch(ins, breakpoint, settings); ok {
						apply(forcedNodeItem(v))
					}
				})
			}

			if len(items) == before {
				rep.Reductions.VertexDominationsRuns++
				found := before
				collectTime(&rep.Runtimes.VertexDomination, func() {
					for _, v := range findDominatedNodes(ins) {
						apply(removedNodeItem(v))
					}
				})
				rep.Reductions.VertexDominationsVerticesFound += len(items) - found
			}

			if len(items) == before {
				rep.Reductions.EdgeDominationsRuns++
				found := before
				collectTime(&rep.Runtimes.EdgeDomination, func() {
					for _, e := range findDominatedEdges(ins) {
						apply(removedEdgeItem(e))
					}
				})
				rep.Reductions.EdgeDominationsEdgesFound += len(items) - found
			}

			if len(items) == before {
				return Finished
			}
		}
	}()

	return result, Batch{items: items}
}

func recalcGreedyUpperBound(ins *hypergraph.Instance, partialHS, minimumHS *[]hypergraph.NodeIdx, rep *report.Report) {
	rep.Reductions.GreedyRuns++
	start := time.Now()
	greedy := GreedyApproximation(ins)
	rep.Runtimes.Greedy += time.Since(start)

	if len(*partialHS)+len(greedy) < len(*minimumHS) {
		combined := make([]hypergraph.NodeIdx, 0, len(*partialHS)+len(greedy))
		combined = append(combined, (*partialHS)...)
		combined = append(combined, greedy...)
		*minimumHS = combined
		rep.Reductions.GreedyBoundImprovements++
		rep.UpperBoundImprovements = append(rep.UpperBoundImprovements, report.UpperBoundImprovement{
			NewBound:       len(*minimumHS),
			BranchingSteps: rep.BranchingSteps,
			Elapsed:        time.Since(start),
		})
	}
}

// findForcedNodes collects the sole vertex of every alive size-1 edge,
// deduplicated.
func findForcedNodes(ins *hypergraph.Instance) []hypergraph.NodeIdx {
	seen := make(map[hypergraph.NodeIdx]bool)
	var out []hypergraph.NodeIdx
	for _, e := range ins.Edges() {
		if ins.EdgeSize(e) != 1 {
			continue
		}
		nodes := ins.EdgeNodes(e)
		v := nodes[0]
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// findCostlyDiscardByPackingFromScratch tentatively deletes up to
// settings.PackingFromScratchLimit of the highest-degree alive vertices,
// one at a time, recomputing the packing (and optionally sum-over-packing)
// bound on the reduced instance; the first vertex whose new bound reaches
// the breakpoint is returned.
func findCostlyDiscardByPackingFromScratch(ins *hypergraph.Instance, breakpoint int, settings report.Settings) (hypergraph.NodeIdx, bool) {
	nodes := append([]hypergraph.NodeIdx(nil), ins.Nodes()...)
	sort.Slice(nodes, func(i, j int) bool { return ins.NodeDegree(nodes[i]) > ins.NodeDegree(nodes[j]) })

	limit := settings.PackingFromScratchLimit
	if limit > len(nodes) {
		limit = len(nodes)
	}
	for i := 0; i < limit; i++ {
		v := nodes[i]
		ins.DeleteNode(v)
		pb := lowerbound.NewPackingBound(ins, settings.EnableLocalSearch)
		var newBound int
		if settings.EnableSumOverPackingBound {
			newBound = pb.CalcSumOverPackingBound(ins)
		} else {
			newBound = pb.Bound()
		}
		ins.RestoreNode(v)

		if newBound >= breakpoint {
			return v, true
		}
	}
	return hypergraph.InvalidNode, false
}

// findDominatedNodes detects vertex domination (§4.6 step 10): inserting
// vertices in decreasing-degree order into a superset-trie keyed by
// incident edges, a vertex is dominated iff the trie already contains a
// superset of its incidence set.
func findDominatedNodes(ins *hypergraph.Instance) []hypergraph.NodeIdx {
	nodes := append([]hypergraph.NodeIdx(nil), ins.Nodes()...)
	sort.Slice(nodes, func(i, j int) bool {
		di, dj := ins.NodeDegree(nodes[i]), ins.NodeDegree(nodes[j])
		if di != dj {
			return di > dj
		}
		return nodes[i] < nodes[j]
	})

	trie := settrie.NewSupersetTrie[hypergraph.EdgeIdx](ins.NumEdgesTotal())
	var out []hypergraph.NodeIdx
	for _, v := range nodes {
		edges := ins.NodeEdges(v)
		if trie.ContainsSuperset(edges) {
			out = append(out, v)
		} else {
			trie.Insert(edges)
		}
	}
	return out
}

// findDominatedEdges detects edge domination (§4.6 step 11) symmetrically,
// using a subset-trie over vertex sets ordered by ascending edge size.
func findDominatedEdges(ins *hypergraph.Instance) []hypergraph.EdgeIdx {
	edges := append([]hypergraph.EdgeIdx(nil), ins.Edges()...)
	sort.Slice(edges, func(i, j int) bool { return ins.EdgeSize(edges[i]) < ins.EdgeSize(edges[j]) })

	trie := settrie.NewSubsetTrie[hypergraph.NodeIdx, bool](ins.NumNodesTotal())
	var out []hypergraph.EdgeIdx
	for _, e := range edges {
		nodes := ins.EdgeNodes(e)
		if trie.FindSubset(nodes) {
			out = append(out, e)
		} else {
			trie.Insert(true, nodes)
		}
	}
	return out
}

// ReduceForILP repeatedly applies only the domination rules until neither
// finds anything further, used by the `minhs ilp --reduced` path to shrink
// an instance before export without touching the branch-and-bound specific
// forced-vertex/costly-discard machinery.
func ReduceForILP(ins *hypergraph.Instance) (reducedNodes, reducedEdges int) {
	var dummyHS []hypergraph.NodeIdx
	for {
		changed := false

		nodes := findDominatedNodes(ins)
		reducedNodes += len(nodes)
		changed = changed || len(nodes) > 0
		for _, v := range nodes {
			removedNodeItem(v).apply(ins, &dummyHS)
		}

		edges := findDominatedEdges(ins)
		reducedEdges += len(edges)
		changed = changed || len(edges) > 0
		for _, e := range edges {
			removedEdgeItem(e).apply(ins, &dummyHS)
		}

		if !changed {
			break
		}
	}
	return reducedNodes, reducedEdges
}
