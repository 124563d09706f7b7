package activity_test

import (
	"testing"

	"github.com/minhs-go/minhs/activity"
	"github.com/minhs-go/minhs/hypergraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_HighestFollowsBoosts(t *testing.T) {
	ins, err := hypergraph.Load(4, [][]int{{0, 1}, {2, 3}})
	require.NoError(t, err)

	tr := activity.New(ins, 42)
	tr.Boost(2, 10)

	v, ok := tr.Highest()
	require.True(t, ok)
	assert.Equal(t, hypergraph.NodeIdx(2), v)
}

func TestTracker_DeletedVerticesAreExcluded(t *testing.T) {
	ins, err := hypergraph.Load(3, [][]int{{0, 1}, {1, 2}})
	require.NoError(t, err)

	tr := activity.New(ins, 1)
	tr.Boost(0, 5)
	tr.Delete(0)

	v, ok := tr.Highest()
	require.True(t, ok)
	assert.NotEqual(t, hypergraph.NodeIdx(0), v)
}

func TestTracker_RestoreMakesVertexEligibleAgain(t *testing.T) {
	ins, err := hypergraph.Load(2, [][]int{{0, 1}})
	require.NoError(t, err)

	tr := activity.New(ins, 7)
	tr.Boost(0, 100)
	tr.Delete(0)
	tr.Restore(0)

	v, ok := tr.Highest()
	require.True(t, ok)
	assert.Equal(t, hypergraph.NodeIdx(0), v)
}

func TestTracker_AllDeletedHasNoHighest(t *testing.T) {
	ins, err := hypergraph.Load(2, [][]int{{0, 1}})
	require.NoError(t, err)

	tr := activity.New(ins, 3)
	tr.Delete(0)
	tr.Delete(1)

	_, ok := tr.Highest()
	assert.False(t, ok)
}

func TestTracker_DecayDoesNotChangeClearWinner(t *testing.T) {
	ins, err := hypergraph.Load(3, [][]int{{0, 1}, {1, 2}})
	require.NoError(t, err)

	tr := activity.New(ins, 9)
	tr.Boost(1, 50)
	tr.DecayAll()

	v, ok := tr.Highest()
	require.True(t, ok)
	assert.Equal(t, hypergraph.NodeIdx(1), v)
}
