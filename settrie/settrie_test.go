package settrie_test

import (
	"testing"

	"github.com/minhs-go/minhs/settrie"
	"github.com/stretchr/testify/assert"
)

type vidx = uint32

func TestSubsetTrie_FindsExactAndProperSubsets(t *testing.T) {
	trie := settrie.NewSubsetTrie[vidx, int](16)
	trie.Insert(1, []vidx{2, 5})
	trie.Insert(2, []vidx{1})

	assert.Equal(t, 1, trie.FindSubset([]vidx{2, 5}), "exact match")
	assert.Equal(t, 1, trie.FindSubset([]vidx{1, 2, 5, 9}), "proper subset contained in a superset query")
	assert.Equal(t, 2, trie.FindSubset([]vidx{0, 1, 3}), "single-element stored set")
	assert.Equal(t, 0, trie.FindSubset([]vidx{2, 9}), "no stored set fits")
	assert.Equal(t, 0, trie.FindSubset(nil), "empty query matches nothing but the empty set")
}

func TestSubsetTrie_EmptySetIsAlwaysASubset(t *testing.T) {
	trie := settrie.NewSubsetTrie[vidx, int](4)
	trie.Insert(7, nil)

	assert.Equal(t, 7, trie.FindSubset([]vidx{1, 2, 3}))
	assert.Equal(t, 7, trie.FindSubset(nil))
}

func TestSubsetTrie_LargeKeyRangeUsesHashMapPath(t *testing.T) {
	trie := settrie.NewSubsetTrie[vidx, int](1000)
	trie.Insert(9, []vidx{3, 500, 999})

	assert.Equal(t, 9, trie.FindSubset([]vidx{3, 500, 999, 1}))
	assert.Equal(t, 0, trie.FindSubset([]vidx{3, 500}))
}

func TestSupersetTrie_ContainsSuperset(t *testing.T) {
	trie := settrie.NewSupersetTrie[vidx](16)
	trie.Insert([]vidx{1, 3, 5})
	trie.Insert([]vidx{2, 4})

	assert.True(t, trie.ContainsSuperset([]vidx{1, 5}), "subset of the first stored set")
	assert.True(t, trie.ContainsSuperset([]vidx{2}), "subset of the second stored set")
	assert.True(t, trie.ContainsSuperset([]vidx{1, 3, 5}), "exact match")
	assert.False(t, trie.ContainsSuperset([]vidx{1, 2}), "spans two unrelated stored sets")
	assert.False(t, trie.ContainsSuperset([]vidx{6}), "not present anywhere")
}

func TestSupersetTrie_EmptyQueryMatchesAnyNonEmptyTrie(t *testing.T) {
	trie := settrie.NewSupersetTrie[vidx](8)
	assert.False(t, trie.ContainsSuperset(nil), "empty trie has no sets at all")

	trie.Insert([]vidx{0})
	assert.True(t, trie.ContainsSuperset(nil))
}

func TestSupersetTrie_ManySiblingsRequireBacktracking(t *testing.T) {
	trie := settrie.NewSupersetTrie[vidx](32)
	trie.Insert([]vidx{1, 10})
	trie.Insert([]vidx{1, 20})
	trie.Insert([]vidx{1, 30})

	assert.True(t, trie.ContainsSuperset([]vidx{1, 30}))
	assert.True(t, trie.ContainsSuperset([]vidx{1, 10}))
	assert.False(t, trie.ContainsSuperset([]vidx{1, 25}))
}
