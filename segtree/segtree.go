// Package segtree implements the activity segment tree used by the
// optional activity-based branching heuristic (§9): O(log n) point updates
// (boost, delete, restore) and an O(log n) query for the alive vertex with
// the highest activity, with random tiebreaking between near-equal
// activities.
//
// This is a purpose-built instance of the bottom-up iterative segment tree
// shape in original_source/src/data_structures/segtree.rs
// (SegTree::change_single/root) and the combine rule in
// original_source/src/activity.rs's ActivitySegTreeOp, rather than a port
// of the Rust file's fully generic SegTreeOp trait: Go has no associated
// types to model SegTreeOp::Item/Lazy cleanly, and the activity heuristic
// is this tree's only caller, so specializing costs nothing.
package segtree

import "math"

// ActivityEqEpsilon: activities closer together than this are treated as
// tied and resolved by Tiebreak instead.
const ActivityEqEpsilon = 1e-6

// Item is one leaf (or internal combine result): a vertex's current
// activity, whether it is presently alive, and a random tiebreak rerolled
// whenever the activity changes.
type Item struct {
	Activity float64
	Valid    bool
	Vertex   uint32
	Tiebreak uint64
}

func combine(left, right Item) Item {
	switch {
	case !left.Valid:
		return right
	case !right.Valid:
		return left
	case math.Abs(left.Activity-right.Activity) < ActivityEqEpsilon:
		if left.Tiebreak < right.Tiebreak {
			return left
		}
		return right
	case left.Activity > right.Activity:
		return left
	default:
		return right
	}
}

// Tree is a fixed-size complete binary tree over n leaves, array-backed:
// leaves occupy data[n:2n], internal nodes data[1:n].
type Tree struct {
	data []Item
	n    int
}

// New builds a tree of n leaves from the given initial items (index i of
// items becomes leaf i); items shorter than n pad with invalid leaves.
func New(items []Item) *Tree {
	n := len(items)
	size := 1
	for size < n {
		size *= 2
	}
	data := make([]Item, 2*size)
	for i := 0; i < size; i++ {
		if i < n {
			data[size+i] = items[i]
		} else {
			data[size+i] = Item{Vertex: uint32(i)}
		}
	}
	t := &Tree{data: data, n: size}
	for i := size - 1; i >= 1; i-- {
		t.recalc(i)
	}
	return t
}

func (t *Tree) recalc(i int) { t.data[i] = combine(t.data[2*i], t.data[2*i+1]) }

// ChangeSingle mutates leaf i in place via fn, then recomputes every
// ancestor on the path to the root.
func (t *Tree) ChangeSingle(i int, fn func(*Item)) {
	idx := i + t.n
	fn(&t.data[idx])
	for idx > 1 {
		idx /= 2
		t.recalc(idx)
	}
}

// ApplyToAll multiplies every leaf's activity by factor. The reference
// implementation does this in O(log n) via lazy propagation; this does it
// in O(n) by touching every leaf directly, which is simpler and still
// linear in the size the reference's lazy tree would eventually have to
// push through on the next full traversal — acceptable since decay runs
// once per branching step, not once per vertex.
func (t *Tree) ApplyToAll(factor float64) {
	for i := t.n; i < 2*t.n; i++ {
		t.data[i].Activity *= factor
	}
	for i := t.n - 1; i >= 1; i-- {
		t.recalc(i)
	}
}

// Root returns the combine of the whole tree: the alive leaf with the
// highest activity (ties broken by Tiebreak), or an invalid Item if every
// leaf is currently invalid.
func (t *Tree) Root() Item { return t.data[1] }
