package reduce_test

import (
	"testing"

	"github.com/minhs-go/minhs/hypergraph"
	"github.com/minhs-go/minhs/reduce"
	"github.com/minhs-go/minhs/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runReduce(t *testing.T, ins *hypergraph.Instance, minimumHS []hypergraph.NodeIdx) (reduce.Result, []hypergraph.NodeIdx) {
	t.Helper()
	settings := report.DefaultSettings()
	rep := &report.Report{Settings: settings}
	var partialHS []hypergraph.NodeIdx
	result, batch := reduce.Reduce(ins, &partialHS, &minimumHS, settings, rep)
	_ = batch
	return result, partialHS
}

func TestReduce_StarIsSolvedByForcingTheHub(t *testing.T) {
	// S2: star graph, opt = 1. Seeding minimumHS with a size-2 set puts the
	// breakpoint at 2: no bound reaches it, but discarding the hub leaves four
	// edges to hit, so the hub is forced and the pass ends Solved.
	ins, err := hypergraph.Load(5, [][]int{{0, 1}, {0, 2}, {0, 3}, {0, 4}})
	require.NoError(t, err)

	minimumHS := []hypergraph.NodeIdx{0, 1}
	result, partial := runReduce(t, ins, minimumHS)

	assert.Equal(t, reduce.Solved, result)
	assert.Equal(t, []hypergraph.NodeIdx{0}, partial)
}

func TestReduce_DegreeOneChainForcesEveryVertex(t *testing.T) {
	// S5: three size-1 edges, opt = 3. The isolated vertex 3 makes the
	// all-vertices seed one larger than the optimum, so no bound reaches the
	// breakpoint before the three forced vertices are taken.
	ins, err := hypergraph.Load(4, [][]int{{0}, {1}, {2}})
	require.NoError(t, err)

	minimumHS := allVertices(4)
	result, partial := runReduce(t, ins, minimumHS)

	assert.Equal(t, reduce.Solved, result)
	assert.ElementsMatch(t, []hypergraph.NodeIdx{0, 1, 2}, partial)
}

func TestReduce_DominatedEdgeIsRemoved(t *testing.T) {
	// S4: edge {0,1,2} is dominated by {0,1}.
	ins, err := hypergraph.Load(4, [][]int{{0, 1, 2}, {0, 1}})
	require.NoError(t, err)

	settings := report.DefaultSettings()
	rep := &report.Report{Settings: settings}
	var partialHS []hypergraph.NodeIdx
	minimumHS := allVertices(4)
	result, _ := reduce.Reduce(ins, &partialHS, &minimumHS, settings, rep)

	// Either fully solved via forcing/domination, or finished with one edge left.
	assert.Contains(t, []reduce.Result{reduce.Solved, reduce.Finished}, result)
	if result == reduce.Finished {
		assert.Equal(t, 1, ins.NumAliveEdges())
	}
}

func TestReduce_UnsolvableWhenBreakpointAlreadyMet(t *testing.T) {
	ins, err := hypergraph.Load(6, [][]int{{0, 1}, {2, 3}, {4, 5}})
	require.NoError(t, err)

	settings := report.DefaultSettings()
	rep := &report.Report{Settings: settings}
	partialHS := []hypergraph.NodeIdx{0, 1, 2} // already as large as minimumHS
	minimumHS := []hypergraph.NodeIdx{0, 1, 2}
	result, _ := reduce.Reduce(ins, &partialHS, &minimumHS, settings, rep)

	assert.Equal(t, reduce.Unsolvable, result)
}

func TestBatch_RestoreUndoesEveryAppliedItem(t *testing.T) {
	ins, err := hypergraph.Load(5, [][]int{{0, 1}, {0, 2}, {0, 3}, {0, 4}})
	require.NoError(t, err)

	settings := report.DefaultSettings()
	rep := &report.Report{Settings: settings}
	var partialHS []hypergraph.NodeIdx
	minimumHS := allVertices(5)
	_, batch := reduce.Reduce(ins, &partialHS, &minimumHS, settings, rep)

	batch.Restore(ins, &partialHS)

	assert.Equal(t, 5, ins.NumAliveNodes())
	assert.Equal(t, 4, ins.NumAliveEdges())
	assert.Empty(t, partialHS)
}

func TestGreedyApproximation_ProducesAValidHittingSet(t *testing.T) {
	ins, err := hypergraph.Load(6, [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}})
	require.NoError(t, err)

	hs := reduce.GreedyApproximation(ins)
	hit := make(map[hypergraph.NodeIdx]bool)
	for _, v := range hs {
		hit[v] = true
	}
	for _, e := range ins.Edges() {
		covered := false
		for _, v := range ins.EdgeNodes(e) {
			if hit[v] {
				covered = true
				break
			}
		}
		assert.True(t, covered, "edge %d must be hit by the greedy HS", e)
	}
}

func TestReduceForILP_RemovesDominatedVerticesAndEdge(t *testing.T) {
	ins, err := hypergraph.Load(4, [][]int{{0, 1, 2}, {0, 1}})
	require.NoError(t, err)

	// Vertices 1, 2 and the isolated 3 are each dominated by vertex 0.
	nodes, edges := reduce.ReduceForILP(ins)
	assert.Equal(t, 3, nodes)
	assert.Equal(t, 1, edges)
	assert.Equal(t, 1, ins.NumAliveEdges())
}

func allVertices(n int) []hypergraph.NodeIdx {
	out := make([]hypergraph.NodeIdx, n)
	for i := 0; i < n; i++ {
		out[i] = hypergraph.NodeIdx(i)
	}
	return out
}
