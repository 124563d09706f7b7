// Package report defines the solver's configuration (Settings) and its
// accumulated run statistics (Report), together with JSON (de)serialization
// for both (component I). Settings files are parsed as permissive JSONC via
// hujson so comments and trailing commas are tolerated.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tailscale/hujson"
)

// GreedyMode controls when the greedy upper bound is recomputed during a
// reduction pass (§4.6/§4.7).
type GreedyMode string

const (
	GreedyOnce                            GreedyMode = "once"
	GreedyAlwaysBeforeBounds               GreedyMode = "always_before_bounds"
	GreedyAlwaysBeforeExpensiveReductions  GreedyMode = "always_before_expensive_reductions"
)

// Branching selects the heuristic used to pick the next branching vertex.
type Branching string

const (
	BranchingMaxDegree Branching = "max_degree"
	BranchingActivity  Branching = "activity"
)

// Settings is the full set of tunables recognized in a settings file
// (§4.9). Unknown keys are rejected by LoadSettings; missing keys take the
// defaults returned by DefaultSettings.
type Settings struct {
	EnableLocalSearch           bool       `json:"enable_local_search"`
	EnableMaxDegreeBound        bool       `json:"enable_max_degree_bound"`
	EnableSumDegreeBound        bool       `json:"enable_sum_degree_bound"`
	EnableEfficiencyBound       bool       `json:"enable_efficiency_bound"`
	EnablePackingBound          bool       `json:"enable_packing_bound"`
	EnableSumOverPackingBound   bool       `json:"enable_sum_over_packing_bound"`
	PackingFromScratchLimit     int        `json:"packing_from_scratch_limit"`
	GreedyMode                  GreedyMode `json:"greedy_mode"`
	StopAt                      int        `json:"stop_at"`
	InitialHittingSet           []int      `json:"initial_hitting_set,omitempty"`

	// Branching and RandSeed select the optional activity-based branching
	// heuristic described in §9: Branching defaults to "max_degree" (the
	// spec's mandated default), and is not part of spec.md's ENUMERATED
	// settings list itself but governs the alternative heuristic that list
	// anticipates. RandSeed seeds the per-vertex tiebreak the heuristic
	// uses; it is only consulted when Branching is "activity".
	Branching Branching `json:"branching,omitempty"`
	RandSeed  uint64    `json:"rand_seed,omitempty"`
}

// DefaultSettings returns the documented defaults for every recognized key.
func DefaultSettings() Settings {
	return Settings{
		EnableLocalSearch:         true,
		EnableMaxDegreeBound:      true,
		EnableSumDegreeBound:      true,
		EnableEfficiencyBound:     true,
		EnablePackingBound:        true,
		EnableSumOverPackingBound: true,
		PackingFromScratchLimit:   8,
		GreedyMode:                GreedyAlwaysBeforeExpensiveReductions,
		StopAt:                    0,
		Branching:                 BranchingMaxDegree,
		RandSeed:                  0,
	}
}

// LoadSettings reads a JSONC settings file, rejecting unknown keys. Missing
// keys fall back to DefaultSettings's values.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("report: reading settings %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Settings{}, fmt.Errorf("report: invalid JSONC in %s: %w", path, err)
	}

	settings := DefaultSettings()
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&settings); err != nil {
		return Settings{}, fmt.Errorf("report: parsing settings %s: %w", path, err)
	}
	return settings, nil
}

// RuntimeStats accumulates wall-clock time spent in each phase of a solve,
// serialized as floating-point seconds.
type RuntimeStats struct {
	Total                           time.Duration `json:"-"`
	Greedy                          time.Duration `json:"-"`
	MaxDegreeBound                  time.Duration `json:"-"`
	SumDegreeBound                  time.Duration `json:"-"`
	EfficiencyBound                 time.Duration `json:"-"`
	PackingBound                    time.Duration `json:"-"`
	SumOverPackingBound             time.Duration `json:"-"`
	ForcedVertex                    time.Duration `json:"-"`
	CostlyDiscardPackingUpdate      time.Duration `json:"-"`
	CostlyDiscardPackingFromScratch time.Duration `json:"-"`
	VertexDomination                time.Duration `json:"-"`
	EdgeDomination                  time.Duration `json:"-"`
	ApplyingReductions              time.Duration `json:"-"`
}

// MarshalJSON renders every duration field as seconds, matching the
// original source's serialize_duration_as_seconds serde helper.
func (r RuntimeStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Total                           float64 `json:"total"`
		Greedy                          float64 `json:"greedy"`
		MaxDegreeBound                  float64 `json:"max_degree_bound"`
		SumDegreeBound                  float64 `json:"sum_degree_bound"`
		EfficiencyBound                 float64 `json:"efficiency_bound"`
		PackingBound                    float64 `json:"packing_bound"`
		SumOverPackingBound             float64 `json:"sum_over_packing_bound"`
		ForcedVertex                    float64 `json:"forced_vertex"`
		CostlyDiscardPackingUpdate      float64 `json:"costly_discard_packing_update"`
		CostlyDiscardPackingFromScratch float64 `json:"costly_discard_packing_from_scratch"`
		VertexDomination                float64 `json:"vertex_domination"`
		EdgeDomination                  float64 `json:"edge_domination"`
		ApplyingReductions              float64 `json:"applying_reductions"`
	}{
		Total:                           r.Total.Seconds(),
		Greedy:                          r.Greedy.Seconds(),
		MaxDegreeBound:                  r.MaxDegreeBound.Seconds(),
		SumDegreeBound:                  r.SumDegreeBound.Seconds(),
		EfficiencyBound:                 r.EfficiencyBound.Seconds(),
		PackingBound:                    r.PackingBound.Seconds(),
		SumOverPackingBound:             r.SumOverPackingBound.Seconds(),
		ForcedVertex:                    r.ForcedVertex.Seconds(),
		CostlyDiscardPackingUpdate:      r.CostlyDiscardPackingUpdate.Seconds(),
		CostlyDiscardPackingFromScratch: r.CostlyDiscardPackingFromScratch.Seconds(),
		VertexDomination:                r.VertexDomination.Seconds(),
		EdgeDomination:                  r.EdgeDomination.Seconds(),
		ApplyingReductions:              r.ApplyingReductions.Seconds(),
	})
}

// ReductionStats counts how often each reduction rule ran, broke a branch,
// or found something to reduce.
type ReductionStats struct {
	MaxDegreeBoundBreaks                       int   `json:"max_degree_bound_breaks"`
	SumDegreeBoundBreaks                       int   `json:"sum_degree_bound_breaks"`
	EfficiencyDegreeBoundBreaks                int   `json:"efficiency_degree_bound_breaks"`
	PackingBoundBreaks                         int   `json:"packing_bound_breaks"`
	SumOverPackingBoundBreaks                  int   `json:"sum_over_packing_bound_breaks"`
	GreedyRuns                                 int   `json:"greedy_runs"`
	GreedyBoundImprovements                    int   `json:"greedy_bound_improvements"`
	ForcedVertexRuns                           int   `json:"forced_vertex_runs"`
	ForcedVerticesFound                        int   `json:"forced_vertices_found"`
	CostlyDiscardEfficiencyRuns                int   `json:"costly_discard_efficiency_runs"`
	CostlyDiscardEfficiencyVerticesFound       int   `json:"costly_discard_efficiency_vertices_found"`
	CostlyDiscardPackingUpdateRuns              int   `json:"costly_discard_packing_update_runs"`
	CostlyDiscardPackingUpdateVerticesFound     int   `json:"costly_discard_packing_update_vertices_found"`
	CostlyDiscardPackingFromScratchRuns         int   `json:"costly_discard_packing_from_scratch_runs"`
	VertexDominationsRuns                       int   `json:"vertex_dominations_runs"`
	VertexDominationsVerticesFound              int   `json:"vertex_dominations_vertices_found"`
	EdgeDominationsRuns                         int   `json:"edge_dominations_runs"`
	EdgeDominationsEdgesFound                   int   `json:"edge_dominations_edges_found"`
}

// RootBounds records every estimator's value on the unreduced instance, for
// comparison against the final optimum (P3).
type RootBounds struct {
	MaxDegree      int `json:"max_degree"`
	SumDegree      int `json:"sum_degree"`
	Efficiency     int `json:"efficiency"`
	Packing        int `json:"packing"`
	SumOverPacking int `json:"sum_over_packing"`
	GreedyUpper    int `json:"greedy_upper"`
}

// UpperBoundImprovement records one point in the timeline of upper-bound
// improvements found during a solve.
type UpperBoundImprovement struct {
	NewBound        int           `json:"new_bound"`
	BranchingSteps  int           `json:"branching_steps"`
	Elapsed         time.Duration `json:"-"`
}

// MarshalJSON renders Elapsed as seconds.
func (u UpperBoundImprovement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		NewBound       int     `json:"new_bound"`
		BranchingSteps int     `json:"branching_steps"`
		Elapsed        float64 `json:"elapsed"`
	}{u.NewBound, u.BranchingSteps, u.Elapsed.Seconds()})
}

// Report is the full accumulator produced by one solve, serialized as the
// --report output (§6).
type Report struct {
	FileName               string                  `json:"file_name"`
	Opt                    int                     `json:"opt"`
	BranchingSteps         int                     `json:"branching_steps"`
	Settings               Settings                `json:"settings"`
	RootBounds             RootBounds              `json:"root_bounds"`
	Runtimes               RuntimeStats            `json:"runtimes"`
	Reductions             ReductionStats          `json:"reductions"`
	UpperBoundImprovements []UpperBoundImprovement `json:"upper_bound_improvements"`
}

// WriteJSON marshals the report as indented JSON to w.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
