// Package minhs computes exact minimum hitting sets of hypergraphs via
// branch-and-bound search.
//
// A hitting set of a hypergraph is a subset of vertices that touches every
// edge; the minimum hitting set problem (equivalently, minimum set cover)
// is NP-hard in general. This module searches exhaustively but prunes
// aggressively: reversible instance mutations back every reduction and
// branching step, five independent lower-bound estimators cut off branches
// that cannot beat the best hitting set found so far, and a battery of
// reduction rules (forced vertices, costly discards, vertex/edge
// domination) shrink the instance before every branch.
//
// The solver is organized as a chain of packages, each owning one layer:
//
//	smallidx/  — generic index constraint and hash-map/set aliases
//	skipvec/   — fixed-capacity sequence with O(1) delete/restore
//	contidx/   — contiguous-index vector over a fixed universe
//	settrie/   — subset/superset tries for set-containment checks
//	hypergraph/ — the reversible hypergraph instance (component E)
//	lowerbound/ — the five bound estimators (component F)
//	reduce/    — the reduction engine and greedy upper bound (component G)
//	activity/  — optional activity-based branching heuristic
//	segtree/   — segment tree backing the activity heuristic
//	solve/     — the branch-and-bound driver (component H)
//	report/    — settings and run-statistics (de)serialization (component I)
//	iohs/      — instance/solution file formats
//	cmd/minhs/ — the command-line interface
//
// See cmd/minhs for the CLI entry point.
package minhs
