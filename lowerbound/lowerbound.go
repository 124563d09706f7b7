// Package lowerbound implements the five lower-bound estimators used by the
// reduction engine and branch-and-bound driver to prune the search early
// (component F). Every estimator bounds the number of additional vertices
// still required to hit every alive edge of an Instance.
package lowerbound

import (
	"math"
	"sort"

	"github.com/minhs-go/minhs/hypergraph"
	"github.com/minhs-go/minhs/settrie"
)

// RoundEpsilon is the tolerance used to treat a bound that lands within this
// distance of an integer as exactly that integer, rather than rounding up
// to the next one. Shared with reduce.Reduce's breakpoint comparisons so
// both sides of a costly-discard decision use the same rounding rule.
const RoundEpsilon = 1e-9

// Round floors x if it is within RoundEpsilon of its floor, otherwise
// ceils it. This realizes the "round toward the floor within an epsilon
// tolerance" rule used by the efficiency bound (§4.5).
func Round(x float64) int {
	floor := math.Floor(x)
	if x-floor <= RoundEpsilon {
		return int(floor)
	}
	return int(math.Ceil(x))
}

// MaxDegreeBound returns ⌈num_alive_edges / max_degree⌉ over alive
// vertices, or 0 when there are no alive edges.
func MaxDegreeBound(ins *hypergraph.Instance) int {
	numEdges := ins.NumAliveEdges()
	if numEdges == 0 {
		return 0
	}
	maxDegree := 0
	for _, v := range ins.Nodes() {
		if d := ins.NodeDegree(v); d > maxDegree {
			maxDegree = d
		}
	}
	if maxDegree == 0 {
		return math.MaxInt
	}
	return (numEdges + maxDegree - 1) / maxDegree
}

// SumDegreeBound sorts alive node degrees descending and counts how many,
// summed in order, are needed to reach or exceed num_alive_edges.
func SumDegreeBound(ins *hypergraph.Instance) int {
	nodes := ins.Nodes()
	degrees := make([]int, len(nodes))
	for i, v := range nodes {
		degrees[i] = ins.NodeDegree(v)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(degrees)))

	need := ins.NumAliveEdges()
	covered, count := 0, 0
	for _, d := range degrees {
		if covered >= need {
			break
		}
		covered += d
		count++
	}
	return count
}

// EfficiencyBound is the result of CalcEfficiencyBound: a base cardinality
// bound plus, for every vertex, the residual bound that applies if that
// vertex is excluded from the hitting set entirely (its "costly discard"
// bound, §4.5/§4.6).
type EfficiencyBound struct {
	Base          float64
	DiscardDeltas []float64 // indexed by hypergraph.NodeIdx, valid only where the vertex is alive
}

// Round applies the shared epsilon-floor rule to the base bound.
func (b EfficiencyBound) Round() int { return Round(b.Base) }

// DiscardBound returns the rounded residual-size bound assuming v is
// excluded from the hitting set.
func (b EfficiencyBound) DiscardBound(v hypergraph.NodeIdx) int {
	return Round(b.Base + b.DiscardDeltas[v.Idx()])
}

// CalcEfficiencyBound computes Σ_e 1/d1(e) over alive edges, where d1(e) is
// the maximum incident node degree, along with the per-vertex discard delta
// 1/d2(e) - 1/d1(e) contributed by every edge where that vertex realizes
// d1(e) (d2(e) is the second-highest incident degree, which equals d1(e)
// when several incident vertices share the maximum degree; the first of them
// in ascending vertex order is the one credited. For a single-vertex edge
// d2(e) is taken as d1(e), so that edge adds no delta).
func CalcEfficiencyBound(ins *hypergraph.Instance) EfficiencyBound {
	deltas := make([]float64, ins.NumNodesTotal())
	base := 0.0

	for _, e := range ins.Edges() {
		d1, d2 := 0, 0
		var d1Node hypergraph.NodeIdx
		ins.Edge(e, func(v hypergraph.NodeIdx) bool {
			d := ins.NodeDegree(v)
			switch {
			case d > d1:
				d2 = d1
				d1, d1Node = d, v
			case d > d2:
				d2 = d
			}
			return true
		})
		if d1 == 0 {
			continue
		}
		base += 1.0 / float64(d1)
		if d2 == 0 {
			d2 = d1
		}
		deltas[d1Node.Idx()] += 1.0/float64(d2) - 1.0/float64(d1)
	}

	return EfficiencyBound{Base: base, DiscardDeltas: deltas}
}

// PackingBound is a maximal set of pairwise vertex-disjoint alive edges,
// whose cardinality lower-bounds the hitting-set size: any hitting set
// needs at least one vertex per packed edge, and packed edges share no
// vertices.
type PackingBound struct {
	packing []hypergraph.EdgeIdx
	blocked []hypergraph.EdgeIdx // edges rejected from the packing, in rejection order
}

// TwoOptLimit bounds how many packing members the optional local-search
// pass in NewPackingBound will attempt to improve, to keep the pass linear
// in practice rather than quadratic on pathological inputs.
const TwoOptLimit = 1 << 20

// NewPackingBound greedily builds an edge packing: sort alive edges
// ascending by (sum of incident degrees, max incident degree), then scan
// and accept an edge iff none of its vertices have been touched yet. When
// twoOpt is true, it then attempts a 2-opt local search: for every accepted
// edge that currently blocks one or more rejected edges, try to swap it out
// for two mutually vertex-disjoint blocked edges using a subset-trie over
// previously-seen blocked edges restricted to the freed vertex set.
func NewPackingBound(ins *hypergraph.Instance, twoOpt bool) PackingBound {
	edges := append([]hypergraph.EdgeIdx(nil), ins.Edges()...)
	sort.Slice(edges, func(i, j int) bool {
		si, mi := edgeSumMaxDegree(ins, edges[i])
		sj, mj := edgeSumMaxDegree(ins, edges[j])
		if si != sj {
			return si < sj
		}
		return mi < mj
	})

	hit := make([]bool, ins.NumNodesTotal())
	var packing, blocked []hypergraph.EdgeIdx
	for _, e := range edges {
		if edgeIsFree(ins, e, hit) {
			packing = append(packing, e)
			markHit(ins, e, hit)
		} else {
			blocked = append(blocked, e)
		}
	}

	pb := PackingBound{packing: packing, blocked: blocked}
	if twoOpt {
		pb.twoOptImprove(ins, hit)
	}
	return pb
}

func edgeSumMaxDegree(ins *hypergraph.Instance, e hypergraph.EdgeIdx) (sum, max int) {
	ins.Edge(e, func(v hypergraph.NodeIdx) bool {
		d := ins.NodeDegree(v)
		sum += d
		if d > max {
			max = d
		}
		return true
	})
	return sum, max
}

func edgeIsFree(ins *hypergraph.Instance, e hypergraph.EdgeIdx, hit []bool) bool {
	free := true
	ins.Edge(e, func(v hypergraph.NodeIdx) bool {
		if hit[v.Idx()] {
			free = false
			return false
		}
		return true
	})
	return free
}

func markHit(ins *hypergraph.Instance, e hypergraph.EdgeIdx, hit []bool) {
	ins.Edge(e, func(v hypergraph.NodeIdx) bool { hit[v.Idx()] = true; return true })
}

// twoOptImprove tries to replace a single packing member with two
// mutually-disjoint blocked edges drawn from the vertices it alone was
// blocking, using a subset-trie so each candidate pair check is sublinear
// in the number of blocked edges considered so far.
func (pb *PackingBound) twoOptImprove(ins *hypergraph.Instance, hit []bool) {
	limit := TwoOptLimit
	if limit > len(pb.packing) {
		limit = len(pb.packing)
	}
	for i := 0; i < limit; i++ {
		b := pb.packing[i]
		blockedByB := blockedEdgesOf(ins, b, pb.blocked, hit)
		if len(blockedByB) < 2 {
			continue
		}

		// Markers are edge index + 1, so that edge 0 stays distinguishable
		// from FindSubset's zero "no match" value.
		trie := settrie.NewSubsetTrie[hypergraph.NodeIdx, int](ins.NumNodesTotal())
		var bNodes []hypergraph.NodeIdx
		ins.Edge(b, func(v hypergraph.NodeIdx) bool { bNodes = append(bNodes, v); return true })
		available := make(map[hypergraph.NodeIdx]struct{}, len(bNodes))
		for _, v := range bNodes {
			available[v] = struct{}{}
		}

		var replacement []hypergraph.EdgeIdx
		for _, e := range blockedByB {
			eNodes := ins.EdgeNodes(e)
			if !allIn(eNodes, available) {
				trie.Insert(int(e)+1, eNodes)
				continue
			}
			remaining := subtractNodes(bNodes, eNodes)
			if match := trie.FindSubset(remaining); match != 0 {
				replacement = []hypergraph.EdgeIdx{hypergraph.EdgeIdx(match - 1), e}
				break
			}
			trie.Insert(int(e)+1, eNodes)
		}

		if replacement != nil {
			pb.packing[i] = replacement[0]
			pb.packing = append(pb.packing, replacement[1])
		}
	}
}

func blockedEdgesOf(ins *hypergraph.Instance, b hypergraph.EdgeIdx, blocked []hypergraph.EdgeIdx, hit []bool) []hypergraph.EdgeIdx {
	var out []hypergraph.EdgeIdx
	ins.Edge(b, func(v hypergraph.NodeIdx) bool {
		ins.Node(v, func(e hypergraph.EdgeIdx) bool {
			if e != b {
				out = append(out, e)
			}
			return true
		})
		return true
	})
	return out
}

func allIn(nodes []hypergraph.NodeIdx, set map[hypergraph.NodeIdx]struct{}) bool {
	for _, v := range nodes {
		if _, ok := set[v]; !ok {
			return false
		}
	}
	return true
}

func subtractNodes(all, remove []hypergraph.NodeIdx) []hypergraph.NodeIdx {
	removeSet := make(map[hypergraph.NodeIdx]struct{}, len(remove))
	for _, v := range remove {
		removeSet[v] = struct{}{}
	}
	out := make([]hypergraph.NodeIdx, 0, len(all))
	for _, v := range all {
		if _, ok := removeSet[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

// Bound returns the packing's cardinality lower bound.
func (pb PackingBound) Bound() int { return len(pb.packing) }

// CalcSumOverPackingBound refines the packing bound: for each packed edge
// choose its maximum-degree vertex and subtract 1 from every incident
// vertex's degree (covering that edge "for free"), then sort the remaining
// adjusted degrees descending and count how many more are needed to cover
// the edges not already accounted for by a packed edge's chosen vertex.
func (pb PackingBound) CalcSumOverPackingBound(ins *hypergraph.Instance) int {
	degree := make([]int, ins.NumNodesTotal())
	for _, v := range ins.Nodes() {
		degree[v.Idx()] = ins.NodeDegree(v)
	}

	coveredEdges := 0
	for _, e := range pb.packing {
		maxDegreeNode, maxDegree := hypergraph.InvalidNode, -1
		ins.Edge(e, func(v hypergraph.NodeIdx) bool {
			if d := ins.NodeDegree(v); d > maxDegree {
				maxDegree, maxDegreeNode = d, v
			}
			return true
		})
		coveredEdges += ins.NodeDegree(maxDegreeNode)
		ins.Edge(e, func(v hypergraph.NodeIdx) bool { degree[v.Idx()]--; return true })
		degree[maxDegreeNode.Idx()] = 0
	}

	sort.Sort(sort.Reverse(sort.IntSlice(degree)))
	need := ins.NumAliveEdges()
	sumBound := 0
	for _, d := range degree {
		if coveredEdges >= need {
			break
		}
		coveredEdges += d
		sumBound++
	}
	return len(pb.packing) + sumBound
}

// DiscardBound pairs a vertex with the packing-derived lower bound that
// applies when it is excluded from the hitting set.
type DiscardBound struct {
	Node  hypergraph.NodeIdx
	Bound int
}

// CalcDiscardBounds finds, for every vertex touched by exactly one packed
// edge, the other edges whose sole packing-blocker is that vertex; greedily
// extends the packing with them; and reports packing_size + extension_count
// as the discard bound for that vertex.
func (pb PackingBound) CalcDiscardBounds(ins *hypergraph.Instance) []DiscardBound {
	touchCount := make(map[hypergraph.NodeIdx]int)
	soleBlocker := make(map[hypergraph.NodeIdx][]hypergraph.EdgeIdx)
	for _, e := range pb.packing {
		ins.Edge(e, func(v hypergraph.NodeIdx) bool { touchCount[v]++; return true })
	}
	for _, e := range pb.blocked {
		var blockers []hypergraph.NodeIdx
		ins.Edge(e, func(v hypergraph.NodeIdx) bool {
			if touchCount[v] > 0 {
				blockers = append(blockers, v)
			}
			return true
		})
		if len(blockers) == 1 {
			soleBlocker[blockers[0]] = append(soleBlocker[blockers[0]], e)
		}
	}

	var out []DiscardBound
	for v, cnt := range touchCount {
		if cnt != 1 {
			continue
		}
		candidates := soleBlocker[v]
		if len(candidates) == 0 {
			continue
		}
		hitLocal := make(map[hypergraph.NodeIdx]bool)
		extension := 0
		for _, e := range candidates {
			free := true
			ins.Edge(e, func(u hypergraph.NodeIdx) bool {
				if hitLocal[u] {
					free = false
					return false
				}
				return true
			})
			if free {
				extension++
				ins.Edge(e, func(u hypergraph.NodeIdx) bool { hitLocal[u] = true; return true })
			}
		}
		out = append(out, DiscardBound{Node: v, Bound: pb.Bound() + extension})
	}
	return out
}
