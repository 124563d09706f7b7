package settrie

import (
	"sort"

	"github.com/minhs-go/minhs/smallidx"
)

// supersetChild is one outgoing edge of a superset-trie node, keyed by the
// index value it represents. Children of a node are kept sorted ascending
// by key so that range queries can use binary search — a slice-backed
// stand-in for the reference implementation's ordered map; see DESIGN.md.
type supersetChild[V smallidx.Idx] struct {
	key  V
	node trieNode
}

type supersetNode[V smallidx.Idx] struct {
	children []supersetChild[V] // sorted ascending by key
	isLeaf   bool
}

// SupersetTrie stores sets of sorted indices and answers "does any stored
// set contain this query set?" (contains_superset, §4.3).
type SupersetTrie[V smallidx.Idx] struct {
	nodes []supersetNode[V]
	stack []supersetFrame[V]
}

type supersetFrame[V smallidx.Idx] struct {
	node   trieNode
	query  []V
	loIncl int64
	hiIncl int64
}

// NewSupersetTrie builds an empty trie.
func NewSupersetTrie[V smallidx.Idx](valRange int) *SupersetTrie[V] {
	return &SupersetTrie[V]{nodes: make([]supersetNode[V], 1)}
}

// Insert adds set (sorted ascending) to the trie.
func (t *SupersetTrie[V]) Insert(set []V) {
	node := trieNode(0)
	for _, key := range set {
		children := t.nodes[node].children
		i := sort.Search(len(children), func(i int) bool { return children[i].key >= key })
		if i < len(children) && children[i].key == key {
			node = children[i].node
			continue
		}
		newNode := trieNode(len(t.nodes))
		t.nodes = append(t.nodes, supersetNode[V]{})
		t.nodes[node].children = insertChildAt(children, i, supersetChild[V]{key: key, node: newNode})
		node = newNode
	}
	t.nodes[node].isLeaf = true
}

func insertChildAt[V smallidx.Idx](children []supersetChild[V], i int, c supersetChild[V]) []supersetChild[V] {
	children = append(children, supersetChild[V]{})
	copy(children[i+1:], children[i:])
	children[i] = c
	return children
}

// ContainsSuperset reports whether some inserted set is a superset of query
// (sorted ascending). The search explores children in descending key order
// so exact matches are found first in practice, then backtracks to smaller
// keys via the stack whenever a path fails — see §4.3.
func (t *SupersetTrie[V]) ContainsSuperset(query []V) bool {
	if len(query) == 0 {
		// Any non-empty trie (more than just the root) contains a leaf below.
		return len(t.nodes) > 1
	}

	t.stack = t.stack[:0]
	t.stack = append(t.stack, supersetFrame[V]{node: 0, query: query, loIncl: 0, hiIncl: int64(query[0])})

	for len(t.stack) > 0 {
		top := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]

		target := int64(top.query[0])
		children := t.nodes[top.node].children
		idx, ok := lastChildInRange(children, top.loIncl, top.hiIncl)
		if !ok {
			continue
		}
		child := children[idx]

		// Push the sibling alternative: look for a smaller matching key at
		// the same node before giving up on this branch.
		if int64(child.key)-1 >= top.loIncl {
			t.stack = append(t.stack, supersetFrame[V]{
				node: top.node, query: top.query, loIncl: top.loIncl, hiIncl: int64(child.key) - 1,
			})
		}

		if int64(child.key) == target {
			rest := top.query[1:]
			if len(rest) == 0 {
				return true
			}
			t.stack = append(t.stack, supersetFrame[V]{
				node: child.node, query: rest, loIncl: target + 1, hiIncl: int64(rest[0]),
			})
		} else {
			t.stack = append(t.stack, supersetFrame[V]{
				node: child.node, query: top.query, loIncl: int64(child.key) + 1, hiIncl: target,
			})
		}
	}
	return false
}

// lastChildInRange finds the child with the largest key such that
// loIncl <= key <= hiIncl, scanning from the high end so exact matches near
// hiIncl are preferred.
func lastChildInRange[V smallidx.Idx](children []supersetChild[V], loIncl, hiIncl int64) (int, bool) {
	if hiIncl < loIncl {
		return 0, false
	}
	idx := sort.Search(len(children), func(i int) bool { return int64(children[i].key) > hiIncl }) - 1
	if idx < 0 || int64(children[idx].key) < loIncl {
		return 0, false
	}
	return idx, true
}
