package concrete

import "github.com/symexlang/symex/internal/symexpr"

// Assignment binds every Arbitrary hole an expression references to a
// concrete Value, keyed by the hole's node id (Arbitrary nodes never
// intern, so their id is a stable per-construction identity).
type Assignment struct {
	values map[uint64]Value
}

// NewAssignment returns an empty Assignment.
func NewAssignment() *Assignment {
	return &Assignment{values: make(map[uint64]Value)}
}

// Bind records that hole evaluates to v.
func (a *Assignment) Bind(hole *symexpr.Arbitrary, v Value) *Assignment {
	a.values[hole.ID()] = v
	return a
}

// Lookup returns the value bound to hole, if any.
func (a *Assignment) Lookup(hole *symexpr.Arbitrary) (Value, bool) {
	v, ok := a.values[hole.ID()]
	return v, ok
}
