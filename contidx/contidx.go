// Package contidx implements the contiguous-index vector (component C):
// a dense permutation of a fixed universe of typed indices supporting O(1)
// delete/restore via swap-with-last, while keeping the live elements in a
// contiguous prefix for fast random-order iteration.
//
// This backs the alive-vertex and alive-edge sets in hypergraph.Instance.
// Unlike skipvec, iteration order over the live prefix is explicitly
// unspecified — callers that need ascending order use the incidence lists
// instead.
package contidx

import "github.com/minhs-go/minhs/smallidx"

// Vec stores a permutation of the index universe [0, n) so that the first
// Len() entries of Data() are exactly the live ones, in arbitrary order.
type Vec[T smallidx.Idx] struct {
	data []T
	pos  []uint32 // pos[id] = current slot of id in data
	ln   int
}

// New builds a Vec over the universe {0, ..., n-1}, all initially live.
func New[T smallidx.Idx](n int) *Vec[T] {
	data := make([]T, n)
	pos := make([]uint32, n)
	for i := 0; i < n; i++ {
		data[i] = T(uint32(i))
		pos[i] = uint32(i)
	}
	return &Vec[T]{data: data, pos: pos, ln: n}
}

// Len reports the number of live elements.
func (v *Vec[T]) Len() int { return v.ln }

// Data returns the live prefix. The order of elements within it is
// arbitrary and may change across any Delete/Restore call; callers must not
// rely on it being stable or sorted.
func (v *Vec[T]) Data() []T { return v.data[:v.ln] }

// IsDeleted reports whether id currently sits outside the live prefix.
func (v *Vec[T]) IsDeleted(id int) bool {
	return int(v.pos[id]) >= v.ln
}

// Delete removes id from the live set in O(1) by swapping it with the last
// live element and shrinking the prefix. Deleting an already-deleted id is
// a contract violation.
func (v *Vec[T]) Delete(id int) {
	idx := int(v.pos[id])
	lastID := int(v.data[v.ln-1])
	v.data[idx], v.data[v.ln-1] = v.data[v.ln-1], v.data[idx]
	v.pos[id], v.pos[lastID] = v.pos[lastID], v.pos[id]
	v.ln--
}

// Restore reverses the most recent matching Delete(id). Restores must be
// issued in exact LIFO order with respect to deletes to reconstruct the
// original alive set.
func (v *Vec[T]) Restore(id int) {
	idx := int(v.pos[id])
	afterLastID := int(v.data[v.ln])
	v.data[idx], v.data[v.ln] = v.data[v.ln], v.data[idx]
	v.pos[id], v.pos[afterLastID] = v.pos[afterLastID], v.pos[id]
	v.ln++
}
