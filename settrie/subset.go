// Package settrie implements the subset-trie and superset-trie used by the
// reduction engine to detect vertex and edge domination (component D).
//
// Both tries store sets of sorted indices. Trie nodes live in a flat slice
// addressed by a small unexported index type, the same arena-of-indices
// pattern used throughout this solver (see hypergraph.Instance).
package settrie

import "github.com/minhs-go/minhs/smallidx"

// smallChildThreshold is the key-range cutoff below which a trie node's
// children are stored in a flat array instead of a hash map. This is a
// cache-line-sized heuristic, not a correctness knob (§4.3, §9).
const smallChildThreshold = 32

type trieNode = uint32

const invalidNode = ^uint32(0)

// subsetChildren is a node-indexed "map from key to child", dispatching
// between a flat array (small key space) and a hash map (large key space)
// behind the same two operations.
type subsetChildren[V smallidx.Idx] struct {
	keyRange int
	flat     []trieNode             // len(nodes)*keyRange when small
	maps     []smallidx.HashMap[V, trieNode] // one map per node when large
}

func newSubsetChildren[V smallidx.Idx](keyRange int) *subsetChildren[V] {
	if keyRange <= smallChildThreshold {
		return &subsetChildren[V]{
			keyRange: keyRange,
			flat:     append([]trieNode{}, makeInvalidRow(keyRange)...),
		}
	}
	return &subsetChildren[V]{
		keyRange: keyRange,
		maps:     []smallidx.HashMap[V, trieNode]{make(smallidx.HashMap[V, trieNode])},
	}
}

func makeInvalidRow(n int) []trieNode {
	row := make([]trieNode, n)
	for i := range row {
		row[i] = invalidNode
	}
	return row
}

func (c *subsetChildren[V]) get(node trieNode, key V) trieNode {
	if c.flat != nil {
		return c.flat[int(node)*c.keyRange+smallidx.AsInt(key)]
	}
	if child, ok := c.maps[node][key]; ok {
		return child
	}
	return invalidNode
}

// getOrInsert returns the child of node for key, creating it (and a fresh
// marker slot, signalled by the bool) if absent.
func (c *subsetChildren[V]) getOrInsert(node trieNode, key V) (trieNode, bool) {
	if c.flat != nil {
		idx := int(node)*c.keyRange + smallidx.AsInt(key)
		if c.flat[idx] != invalidNode {
			return c.flat[idx], false
		}
		newIdx := trieNode(len(c.flat) / c.keyRange)
		c.flat[idx] = newIdx
		c.flat = append(c.flat, makeInvalidRow(c.keyRange)...)
		return newIdx, true
	}
	if child, ok := c.maps[node][key]; ok {
		return child, false
	}
	newIdx := trieNode(len(c.maps))
	c.maps[node][key] = newIdx
	c.maps = append(c.maps, make(smallidx.HashMap[V, trieNode]))
	return newIdx, true
}

// SubsetTrie stores sets of sorted indices and answers "does any stored set
// fit inside this query set?" (find_subset, §4.3).
type SubsetTrie[V smallidx.Idx, M comparable] struct {
	children *subsetChildren[V]
	markers  []M
	zero     M
	stack    []subsetFrame[V]
}

type subsetFrame[V smallidx.Idx] struct {
	node  trieNode
	query []V
}

// NewSubsetTrie builds an empty trie whose keys range over [0, keyRange).
func NewSubsetTrie[V smallidx.Idx, M comparable](keyRange int) *SubsetTrie[V, M] {
	return &SubsetTrie[V, M]{
		children: newSubsetChildren[V](keyRange),
		markers:  make([]M, 1),
	}
}

// Insert adds set (sorted ascending) to the trie, marking its terminal node.
func (t *SubsetTrie[V, M]) Insert(marker M, set []V) {
	node := trieNode(0)
	for _, key := range set {
		next, inserted := t.children.getOrInsert(node, key)
		if inserted {
			t.markers = append(t.markers, t.zero)
		}
		node = next
	}
	t.markers[node] = marker
}

// FindSubset returns the marker of some inserted set that is a subset of
// query, or the zero value of M if none is. query must be sorted ascending,
// like the inserted sets: elements passed over while descending are not
// revisited, so an unsorted query can miss a stored subset.
func (t *SubsetTrie[V, M]) FindSubset(query []V) M {
	t.stack = t.stack[:0]
	t.stack = append(t.stack, subsetFrame[V]{node: 0, query: query})
	for len(t.stack) > 0 {
		top := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]

		if t.markers[top.node] != t.zero {
			t.stack = t.stack[:0]
			return t.markers[top.node]
		}

		for i, key := range top.query {
			next := t.children.get(top.node, key)
			if isValidNode(next) {
				t.stack = append(t.stack, subsetFrame[V]{node: top.node, query: top.query[i+1:]})
				t.stack = append(t.stack, subsetFrame[V]{node: next, query: top.query[i+1:]})
				break
			}
		}
	}
	return t.zero
}

func isValidNode(n trieNode) bool { return n != invalidNode }
