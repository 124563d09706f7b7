// Package solve implements the branch-and-bound driver (component H): the
// recursive search that alternates reduction passes with branching
// decisions until the instance's optimum hitting set size is proven.
package solve

import (
	"fmt"
	"time"

	"github.com/minhs-go/minhs/activity"
	"github.com/minhs-go/minhs/hypergraph"
	"github.com/minhs-go/minhs/lowerbound"
	"github.com/minhs-go/minhs/reduce"
	"github.com/minhs-go/minhs/report"
	"github.com/sirupsen/logrus"
)

// heartbeatInterval is how often solveRecursive logs progress while deep in
// a long-running search (§4.8: "time_since_last_log ≥ 60s").
const heartbeatInterval = 60 * time.Second

// forcedVertexBoost is the activity bump applied to every vertex a
// reduction pass forces into the hitting set, when the activity branching
// heuristic is enabled. Forced vertices are exactly the ones reductions
// found indispensable, so they're a reasonable proxy for "useful to branch
// on next" — the same intuition conflict-driven solvers use activity for.
const forcedVertexBoost = 1.0

// ErrInvalidInitialHittingSet is returned when Settings.InitialHittingSet
// does not actually hit every edge of the instance.
var ErrInvalidInitialHittingSet = fmt.Errorf("solve: initial hitting set does not cover every edge")

// Driver owns the mutable search state for one solve: the instance being
// mutated in place, the partial and minimum hitting sets, and (optionally)
// the activity tracker used by the activity branching heuristic.
type Driver struct {
	ins       *hypergraph.Instance
	settings  report.Settings
	rep       *report.Report
	partialHS []hypergraph.NodeIdx
	minimumHS []hypergraph.NodeIdx
	tracker   *activity.Tracker
	lastLog   time.Time
	stopped   bool
}

// NewDriver builds a Driver. ins is mutated in place over the life of
// Solve; callers that need the original instance afterwards should Load a
// fresh copy.
func NewDriver(ins *hypergraph.Instance, settings report.Settings, rep *report.Report) (*Driver, error) {
	d := &Driver{ins: ins, settings: settings, rep: rep, lastLog: time.Now()}

	if len(settings.InitialHittingSet) > 0 {
		hs := make([]hypergraph.NodeIdx, len(settings.InitialHittingSet))
		for i, v := range settings.InitialHittingSet {
			hs[i] = hypergraph.NodeIdx(v)
		}
		if !isValidHittingSet(ins, hs) {
			return nil, ErrInvalidInitialHittingSet
		}
		d.minimumHS = hs
	} else {
		d.minimumHS = append([]hypergraph.NodeIdx(nil), ins.Nodes()...)
	}

	if settings.Branching == report.BranchingActivity {
		d.tracker = activity.New(ins, settings.RandSeed)
	}

	return d, nil
}

func isValidHittingSet(ins *hypergraph.Instance, hs []hypergraph.NodeIdx) bool {
	hit := make(map[hypergraph.NodeIdx]bool, len(hs))
	for _, v := range hs {
		hit[v] = true
	}
	for _, e := range ins.Edges() {
		covered := false
		ins.Edge(e, func(v hypergraph.NodeIdx) bool {
			if hit[v] {
				covered = true
				return false
			}
			return true
		})
		if !covered {
			return false
		}
	}
	return true
}

// Solve runs the branch-and-bound search to completion (or to an early
// Settings.StopAt exit) and returns the minimum hitting set found. It also
// populates rep.RootBounds from the unreduced instance before the first
// reduction pass mutates it, and rep.Opt/rep.Runtimes.Total on return.
func (d *Driver) Solve() []hypergraph.NodeIdx {
	start := time.Now()
	d.recordRootBounds()

	d.solveRecursive()

	d.rep.Opt = len(d.minimumHS)
	d.rep.Runtimes.Total = time.Since(start)
	return d.minimumHS
}

func (d *Driver) recordRootBounds() {
	d.rep.RootBounds.MaxDegree = lowerbound.MaxDegreeBound(d.ins)
	d.rep.RootBounds.SumDegree = lowerbound.SumDegreeBound(d.ins)
	d.rep.RootBounds.Efficiency = lowerbound.CalcEfficiencyBound(d.ins).Round()
	pb := lowerbound.NewPackingBound(d.ins, d.settings.EnableLocalSearch)
	d.rep.RootBounds.Packing = pb.Bound()
	d.rep.RootBounds.SumOverPacking = pb.CalcSumOverPackingBound(d.ins)
	d.rep.RootBounds.GreedyUpper = len(reduceGreedyPreview(d.ins))
}

func reduceGreedyPreview(ins *hypergraph.Instance) []hypergraph.NodeIdx {
	return reduce.GreedyApproximation(ins)
}

func (d *Driver) solveRecursive() {
	if d.stopped {
		return
	}

	if time.Since(d.lastLog) >= heartbeatInterval {
		logrus.WithFields(logrus.Fields{
			"branching_steps": d.rep.BranchingSteps,
			"minimum_hs":      len(d.minimumHS),
		}).Info("still solving")
		d.lastLog = time.Now()
	}

	result, batch := reduce.Reduce(d.ins, &d.partialHS, &d.minimumHS, d.settings, d.rep)

	if d.tracker != nil {
		d.tracker.DecayAll()
		for _, v := range batch.ForcedVertices() {
			d.tracker.Boost(v, forcedVertexBoost)
		}
	}

	switch result {
	case reduce.Solved:
		if len(d.partialHS) < len(d.minimumHS) {
			d.minimumHS = append([]hypergraph.NodeIdx(nil), d.partialHS...)
			logrus.WithField("size", len(d.minimumHS)).Info("found improved hitting set")
		}
	case reduce.Unsolvable:
		// Nothing to do; this branch is pruned.
	case reduce.Stop:
		d.stopped = true
	case reduce.Finished:
		d.rep.BranchingSteps++
		v := d.pickBranchVertex()
		d.branchOn(v)
	}

	batch.Restore(d.ins, &d.partialHS)
}

func (d *Driver) pickBranchVertex() hypergraph.NodeIdx {
	if d.tracker != nil {
		// Reductions delete vertices without telling the tracker, so bring its
		// validity flags in line with the instance before asking for the
		// highest-activity vertex.
		for i := 0; i < d.ins.NumNodesTotal(); i++ {
			v := hypergraph.NodeIdx(i)
			if d.ins.IsNodeDeleted(v) {
				d.tracker.Delete(v)
			} else {
				d.tracker.Restore(v)
			}
		}
		if v, ok := d.tracker.Highest(); ok {
			return v
		}
	}

	best, bestDegree := hypergraph.InvalidNode, -1
	for _, v := range d.ins.Nodes() {
		if deg := d.ins.NodeDegree(v); deg > bestDegree {
			best, bestDegree = v, deg
		}
	}
	return best
}

func (d *Driver) branchOn(v hypergraph.NodeIdx) {
	d.ins.DeleteNode(v)
	if d.tracker != nil {
		d.tracker.Delete(v)
	}

	// Include branch.
	d.ins.DeleteIncidentEdges(v)
	d.partialHS = append(d.partialHS, v)
	d.solveRecursive()
	d.partialHS = d.partialHS[:len(d.partialHS)-1]
	d.ins.RestoreIncidentEdges(v)

	// Exclude branch.
	d.solveRecursive()

	d.ins.RestoreNode(v)
	if d.tracker != nil {
		d.tracker.Restore(v)
	}
}

// Solve is a convenience entrypoint that builds a Driver and runs it in one
// call, for callers (like cmd/minhs) that don't need direct Driver access.
func Solve(ins *hypergraph.Instance, settings report.Settings, rep *report.Report) ([]hypergraph.NodeIdx, error) {
	d, err := NewDriver(ins, settings, rep)
	if err != nil {
		return nil, err
	}
	return d.Solve(), nil
}
