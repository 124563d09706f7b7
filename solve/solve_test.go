package solve_test

import (
	"testing"

	"github.com/minhs-go/minhs/hypergraph"
	"github.com/minhs-go/minhs/report"
	"github.com/minhs-go/minhs/skipvec"
	"github.com/minhs-go/minhs/solve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { skipvec.Debug = true }

func verifyHittingSet(t *testing.T, ins *hypergraph.Instance, allEdges [][]int, hs []hypergraph.NodeIdx) {
	t.Helper()
	hit := make(map[int]bool, len(hs))
	for _, v := range hs {
		hit[v.Idx()] = true
	}
	for _, e := range allEdges {
		covered := false
		for _, v := range e {
			if hit[v] {
				covered = true
				break
			}
		}
		assert.True(t, covered, "edge %v not hit by %v", e, hs)
	}
}

// TestSolve_TriangleFindsSizeTwoHittingSet covers S1: a 3-vertex, 3-edge
// "triangle" hypergraph (edges {0,1},{1,2},{0,2}) where any single vertex
// hits at most two edges, so the minimum hitting set has size 2.
func TestSolve_TriangleFindsSizeTwoHittingSet(t *testing.T) {
	edges := [][]int{{0, 1}, {1, 2}, {0, 2}}
	ins, err := hypergraph.Load(3, edges)
	require.NoError(t, err)

	rep := &report.Report{}
	hs, err := solve.Solve(ins, report.DefaultSettings(), rep)
	require.NoError(t, err)

	assert.Len(t, hs, 2)
	assert.Equal(t, 2, rep.Opt)
	verifyHittingSet(t, ins, edges, hs)
}

// TestSolve_StarFindsHubAlone covers S2: a hub-and-spoke hypergraph where the
// hub alone hits every edge.
func TestSolve_StarFindsHubAlone(t *testing.T) {
	edges := [][]int{{0, 1}, {0, 2}, {0, 3}, {0, 4}}
	ins, err := hypergraph.Load(5, edges)
	require.NoError(t, err)

	rep := &report.Report{}
	hs, err := solve.Solve(ins, report.DefaultSettings(), rep)
	require.NoError(t, err)

	require.Len(t, hs, 1)
	assert.Equal(t, hypergraph.NodeIdx(0), hs[0])
	verifyHittingSet(t, ins, edges, hs)
}

// TestSolve_DisjointEdgesNeedOneVertexEach covers S3: edges sharing no
// vertices force one hitting-set member per edge.
func TestSolve_DisjointEdgesNeedOneVertexEach(t *testing.T) {
	edges := [][]int{{0, 1}, {2, 3}, {4, 5}}
	ins, err := hypergraph.Load(6, edges)
	require.NoError(t, err)

	rep := &report.Report{}
	hs, err := solve.Solve(ins, report.DefaultSettings(), rep)
	require.NoError(t, err)

	assert.Len(t, hs, 3)
	verifyHittingSet(t, ins, edges, hs)
}

// TestSolve_SingleVertexEdgeIsAlwaysForced covers S5: a degree-1 edge forces
// its sole vertex into every valid hitting set.
func TestSolve_SingleVertexEdgeIsAlwaysForced(t *testing.T) {
	edges := [][]int{{0}, {0, 1, 2}, {1, 2}}
	ins, err := hypergraph.Load(3, edges)
	require.NoError(t, err)

	rep := &report.Report{}
	hs, err := solve.Solve(ins, report.DefaultSettings(), rep)
	require.NoError(t, err)

	found := false
	for _, v := range hs {
		if v == 0 {
			found = true
		}
	}
	assert.True(t, found, "forced vertex 0 missing from %v", hs)
	verifyHittingSet(t, ins, edges, hs)
}

// TestSolve_EmptyInstanceHasEmptyHittingSet covers S6: an instance with no
// edges at all needs no vertices.
func TestSolve_EmptyInstanceHasEmptyHittingSet(t *testing.T) {
	ins, err := hypergraph.Load(4, nil)
	require.NoError(t, err)

	rep := &report.Report{}
	hs, err := solve.Solve(ins, report.DefaultSettings(), rep)
	require.NoError(t, err)
	assert.Empty(t, hs)
}

// TestSolve_ActivityBranchingAgreesWithMaxDegree covers P1/P4: both
// branching heuristics must find a hitting set of the same (optimal) size.
func TestSolve_ActivityBranchingAgreesWithMaxDegree(t *testing.T) {
	edges := [][]int{{0, 1, 2}, {1, 3}, {2, 3}, {0, 3}, {4, 5}, {3, 5}}

	insA, err := hypergraph.Load(6, edges)
	require.NoError(t, err)
	repA := &report.Report{}
	hsA, err := solve.Solve(insA, report.DefaultSettings(), repA)
	require.NoError(t, err)
	verifyHittingSet(t, insA, edges, hsA)

	insB, err := hypergraph.Load(6, edges)
	require.NoError(t, err)
	settingsB := report.DefaultSettings()
	settingsB.Branching = report.BranchingActivity
	settingsB.RandSeed = 1234
	repB := &report.Report{}
	hsB, err := solve.Solve(insB, settingsB, repB)
	require.NoError(t, err)
	verifyHittingSet(t, insB, edges, hsB)

	assert.Equal(t, len(hsA), len(hsB))
}

// TestSolve_RootBoundsNeverExceedOptimum covers P3: every lower-bound
// estimator computed at the root must be <= the proven optimum, and the
// greedy upper bound must be >= it.
func TestSolve_RootBoundsNeverExceedOptimum(t *testing.T) {
	edges := [][]int{{0, 1, 2}, {1, 3}, {2, 3}, {0, 3}, {4, 5}, {3, 5}}
	ins, err := hypergraph.Load(6, edges)
	require.NoError(t, err)

	rep := &report.Report{}
	hs, err := solve.Solve(ins, report.DefaultSettings(), rep)
	require.NoError(t, err)
	verifyHittingSet(t, ins, edges, hs)

	assert.LessOrEqual(t, rep.RootBounds.MaxDegree, rep.Opt)
	assert.LessOrEqual(t, rep.RootBounds.SumDegree, rep.Opt)
	assert.LessOrEqual(t, rep.RootBounds.Efficiency, rep.Opt)
	assert.LessOrEqual(t, rep.RootBounds.Packing, rep.Opt)
	assert.LessOrEqual(t, rep.RootBounds.SumOverPacking, rep.Opt)
	assert.GreaterOrEqual(t, rep.RootBounds.GreedyUpper, rep.Opt)
}

// TestNewDriver_RejectsInvalidInitialHittingSet covers the §4.9 settings
// validation path: an initial hitting set that misses an edge is rejected
// up front rather than silently producing a wrong answer.
func TestNewDriver_RejectsInvalidInitialHittingSet(t *testing.T) {
	ins, err := hypergraph.Load(3, [][]int{{0, 1}, {1, 2}})
	require.NoError(t, err)

	settings := report.DefaultSettings()
	settings.InitialHittingSet = []int{0}

	_, err = solve.NewDriver(ins, settings, &report.Report{})
	assert.ErrorIs(t, err, solve.ErrInvalidInitialHittingSet)
}

// TestNewDriver_AcceptsValidInitialHittingSet exercises the accept path of
// the same validation.
func TestNewDriver_AcceptsValidInitialHittingSet(t *testing.T) {
	ins, err := hypergraph.Load(3, [][]int{{0, 1}, {1, 2}})
	require.NoError(t, err)

	settings := report.DefaultSettings()
	settings.InitialHittingSet = []int{1}

	d, err := solve.NewDriver(ins, settings, &report.Report{})
	require.NoError(t, err)

	hs := d.Solve()
	assert.LessOrEqual(t, len(hs), 1)
}
