// Package solver defines the abstract contract a constraint-solving
// backend must satisfy: given a set of Arbitrary holes and a list of
// boolean constraints over them (already lowered by
// internal/symeval/symbolic so no FSeq-typed subexpression remains),
// decide satisfiability and, when asked, optimise a numeric objective
// subject to the same constraints.
//
// A backend never re-implements sort/variable/operation construction:
// internal/symexpr.Builder is already the one universal node builder,
// and every expression a caller hands a Backend was built through it.
// A Backend's job starts where construction ends — searching the space
// of Arbitrary assignments for one that satisfies every constraint.
package solver

import (
	"context"

	"github.com/symexlang/symex/internal/symeval/concrete"
	"github.com/symexlang/symex/internal/symexpr"
)

// Backend is implemented by every solving engine this repository ships
// (internal/solver/refbackend, internal/solver/bddbackend). Holes lists
// every Arbitrary the constraints transitively reference; a backend may
// reject a query outside the fragment it supports by returning
// *symerr.BackendUnsupportedError.
type Backend interface {
	// Name identifies the backend in logs and error messages.
	Name() string

	// Solve searches for an assignment of holes under which every
	// constraint evaluates to true. It returns (model, true, nil) on
	// success, (nil, false, nil) when the backend has proven no such
	// assignment exists, and (nil, false, err) on timeout or internal
	// solver error.
	Solve(ctx context.Context, holes []*symexpr.Arbitrary, constraints []symexpr.Node) (*Model, bool, error)

	// Maximize/Minimize additionally rank every satisfying assignment by
	// objective (a Bitvec- or BigInt-typed node) and return the best one.
	Maximize(ctx context.Context, holes []*symexpr.Arbitrary, constraints []symexpr.Node, objective symexpr.Node) (*Model, bool, error)
	Minimize(ctx context.Context, holes []*symexpr.Arbitrary, constraints []symexpr.Node, objective symexpr.Node) (*Model, bool, error)
}

// Model is a satisfying assignment returned by Backend.Solve/Maximize/
// Minimize: a concrete Value bound to every hole's node id.
type Model struct {
	values map[uint64]concrete.Value
}

// NewModel builds a Model from a completed hole->value binding.
func NewModel(values map[uint64]concrete.Value) *Model {
	return &Model{values: values}
}

// ModelGet returns the value the model bound to hole, or (nil, false)
// if hole was never part of the query this model answers.
func (m *Model) ModelGet(hole *symexpr.Arbitrary) (concrete.Value, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[hole.ID()]
	return v, ok
}

// Assignment projects the model into a concrete.Assignment, ready to
// hand to concrete.Eval for re-checking the witness against the
// original (pre-lowering) expression tree.
func (m *Model) Assignment(holes []*symexpr.Arbitrary) *concrete.Assignment {
	asg := concrete.NewAssignment()
	for _, h := range holes {
		if v, ok := m.values[h.ID()]; ok {
			asg.Bind(h, v)
		}
	}
	return asg
}
