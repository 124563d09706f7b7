// Package activity implements the optional activity-based branching
// heuristic described in §9: a decaying per-vertex bump counter, randomly
// tie-broken, that tracks the "hottest" vertex seen recently even as nodes
// come and go across branches.
package activity

import (
	"math/rand/v2"

	"github.com/minhs-go/minhs/hypergraph"
	"github.com/minhs-go/minhs/segtree"
)

// DecayFactor is the multiplier applied to every vertex's activity on each
// DecayAll call.
const DecayFactor = 0.99

// Tracker maintains one activity score per vertex in the instance's
// universe, queryable in O(log n) for the currently-alive vertex with the
// highest activity.
type Tracker struct {
	tree *segtree.Tree
	rng  *rand.Rand
}

// New builds a tracker over ins's full vertex universe, seeded from seed so
// a given (instance, seed) pair always produces the same tiebreak sequence.
// Vertices already deleted at construction time start invalid.
func New(ins *hypergraph.Instance, seed uint64) *Tracker {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	n := ins.NumNodesTotal()
	items := make([]segtree.Item, n)
	for i := 0; i < n; i++ {
		items[i] = segtree.Item{
			Valid:    !ins.IsNodeDeleted(hypergraph.NodeIdx(i)),
			Vertex:   uint32(i),
			Tiebreak: rng.Uint64(),
		}
	}
	return &Tracker{tree: segtree.New(items), rng: rng}
}

// DecayAll shrinks every vertex's accumulated activity by DecayFactor, so
// recent boosts outweigh older ones over time.
func (t *Tracker) DecayAll() { t.tree.ApplyToAll(DecayFactor) }

// Boost increases v's activity by amount and rerolls its tiebreak, so
// repeated boosts of different vertices don't get stuck on stale ties.
func (t *Tracker) Boost(v hypergraph.NodeIdx, amount float64) {
	tiebreak := t.rng.Uint64()
	t.tree.ChangeSingle(v.Idx(), func(it *segtree.Item) {
		it.Activity += amount
		it.Tiebreak = tiebreak
	})
}

// Delete marks v absent from Highest's consideration without discarding
// its accumulated activity, since deletions are routinely undone across
// branch-and-bound branches.
func (t *Tracker) Delete(v hypergraph.NodeIdx) {
	t.tree.ChangeSingle(v.Idx(), func(it *segtree.Item) { it.Valid = false })
}

// Restore reverses a prior Delete(v).
func (t *Tracker) Restore(v hypergraph.NodeIdx) {
	t.tree.ChangeSingle(v.Idx(), func(it *segtree.Item) { it.Valid = true })
}

// Highest returns the alive vertex with the greatest activity (ties broken
// randomly via the per-vertex tiebreak), or false if no vertex is alive.
func (t *Tracker) Highest() (hypergraph.NodeIdx, bool) {
	root := t.tree.Root()
	if !root.Valid {
		return hypergraph.InvalidNode, false
	}
	return hypergraph.NodeIdx(root.Vertex), true
}
