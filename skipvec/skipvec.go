// Package skipvec implements a fixed-size sequence with O(1) LIFO
// delete/restore, the container backing every incidence list in
// hypergraph.Instance (component B of the solver design).
//
// Internally a doubly-linked list runs over the live slots. Deleting a slot
// unlinks it from its neighbours in O(1); restoring re-links it, but only
// produces a well-formed chain again when restores happen in the exact
// reverse order of the matching deletes — this mirrors the discipline the
// branch-and-bound driver already has to follow for every other mutation it
// makes, so no extra bookkeeping is needed here.
//
// A deleted slot's value remains addressable by raw index at all times:
// iteration skips it, but `At`/`Set` do not, since a delete's mirror
// back-reference on the other side of an incidence pair must still be able
// to read the stored payload.
package skipvec

// Debug gates the consistency assertions called out as "debug-only" in the
// design (contract violations are undefined behavior in release builds).
// Tests should set this to true.
var Debug = false

const invalidEntry = ^uint32(0)

type entry[T any] struct {
	prev, next uint32
	value      T
}

// SkipVec is a fixed-capacity sequence of slots supporting O(1) delete and
// LIFO-ordered restore, while always allowing random access by raw index.
type SkipVec[T any] struct {
	entries []entry[T]
	first   uint32
	last    uint32
	length  int
}

// NewSorted builds a SkipVec whose live chain traverses items in the order
// they're given — callers are expected to pass items already sorted by
// whatever key the chain must expose ascending (vertex or edge index).
func NewSorted[T any](items []T) *SkipVec[T] {
	sv := &SkipVec[T]{entries: make([]entry[T], len(items))}
	for i, v := range items {
		prev, next := invalidEntry, invalidEntry
		if i > 0 {
			prev = uint32(i - 1)
		}
		if i < len(items)-1 {
			next = uint32(i + 1)
		}
		sv.entries[i] = entry[T]{prev: prev, next: next, value: v}
	}
	sv.length = len(items)
	if len(items) > 0 {
		sv.first, sv.last = 0, uint32(len(items)-1)
	} else {
		sv.first, sv.last = invalidEntry, invalidEntry
	}
	return sv
}

// WithLen builds a SkipVec of length n whose slots all hold the zero value
// of T; callers fill them in afterwards (mirrors the instance-loading
// two-pass construction in hypergraph.Load, where sizes are known before
// values are).
func WithLen[T any](n int) *SkipVec[T] {
	items := make([]T, n)
	return NewSorted(items)
}

// Len reports the number of live (non-deleted) slots.
func (sv *SkipVec[T]) Len() int { return sv.length }

// At returns the value stored at a raw slot index, live or not.
func (sv *SkipVec[T]) At(i int) T { return sv.entries[i].value }

// Set overwrites the value stored at a raw slot index, live or not.
func (sv *SkipVec[T]) Set(i int, v T) { sv.entries[i].value = v }

// Delete removes slot i from the live chain in O(1). Deleting an
// already-deleted slot corrupts the chain; in Debug mode this is caught.
func (sv *SkipVec[T]) Delete(i int) {
	e := sv.entries[i]
	if e.prev == invalidEntry {
		if Debug && sv.first != uint32(i) {
			panic("skipvec: Delete of non-head slot with no prev")
		}
		sv.first = e.next
	} else {
		if Debug && sv.entries[e.prev].next != uint32(i) {
			panic("skipvec: Delete found inconsistent prev link")
		}
		sv.entries[e.prev].next = e.next
	}
	if e.next == invalidEntry {
		if Debug && sv.last != uint32(i) {
			panic("skipvec: Delete of non-tail slot with no next")
		}
		sv.last = e.prev
	} else {
		if Debug && sv.entries[e.next].prev != uint32(i) {
			panic("skipvec: Delete found inconsistent next link")
		}
		sv.entries[e.next].prev = e.prev
	}
	sv.length--
}

// Restore re-inserts slot i into the live chain. This only produces a
// correct chain when restores are issued in exact reverse order of the
// deletes that removed them — out-of-order restoration is a contract
// violation (undefined in release builds, panics when Debug is set).
func (sv *SkipVec[T]) Restore(i int) {
	e := sv.entries[i]
	if e.prev == invalidEntry {
		if Debug && sv.first != e.next {
			panic("skipvec: Restore broke head linkage")
		}
		sv.first = uint32(i)
	} else {
		if Debug && sv.entries[e.prev].next != e.next {
			panic("skipvec: Restore broke prev linkage")
		}
		sv.entries[e.prev].next = uint32(i)
	}
	if e.next == invalidEntry {
		if Debug && sv.last != e.prev {
			panic("skipvec: Restore broke tail linkage")
		}
		sv.last = uint32(i)
	} else {
		if Debug && sv.entries[e.next].prev != e.prev {
			panic("skipvec: Restore broke next linkage")
		}
		sv.entries[e.next].prev = uint32(i)
	}
	sv.length++
}

// Iter calls fn for every live slot, ascending through the chain, in slot
// order since construction. It stops early if fn returns false.
func (sv *SkipVec[T]) Iter(fn func(idx int, v T) bool) {
	for cur := sv.first; cur != invalidEntry; {
		e := sv.entries[cur]
		if !fn(int(cur), e.value) {
			return
		}
		cur = e.next
	}
}

// IterRev calls fn for every live slot, descending through the chain.
func (sv *SkipVec[T]) IterRev(fn func(idx int, v T) bool) {
	for cur := sv.last; cur != invalidEntry; {
		e := sv.entries[cur]
		if !fn(int(cur), e.value) {
			return
		}
		cur = e.prev
	}
}

// Values collects every live value, in ascending chain order.
func (sv *SkipVec[T]) Values() []T {
	out := make([]T, 0, sv.length)
	sv.Iter(func(_ int, v T) bool {
		out = append(out, v)
		return true
	})
	return out
}
