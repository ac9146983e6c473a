// Package sym is the combinator surface: a generic wrapper around the
// expression DAG (internal/symexpr) plus the Function facade that
// evaluates, compiles, or solves it. Every combinator here is a thin,
// statically-typed adapter over internal/symexpr.Builder's smart
// constructors — no new simplification or type-checking logic lives in
// this package, it only narrows the loosely-typed Node/error surface
// into a Go-generic one callers can chain without re-checking types
// Builder already checked.
package sym

import (
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
)

// Sym[T] is a symbolic value of Go-level shape T: T never holds any
// runtime data itself (it is a phantom type parameter distinguishing,
// say, Sym[int32] from Sym[string] at compile time), the actual value
// lives entirely in the wrapped expression node.
type Sym[T any] struct {
	node symexpr.Node
}

// AnySym is satisfied by every Sym[T] instantiation, used where a
// function needs to accept symbolic values of heterogeneous Go shape
// (record field maps, combinator arguments stored in a slice).
type AnySym interface {
	symNode() symexpr.Node
}

func (s Sym[T]) symNode() symexpr.Node { return s.node }

// Node returns the underlying expression node, for callers that need to
// drop to internal/symexpr directly (tests, symjson export, cmd/symtool).
func (s Sym[T]) Node() symexpr.Node { return s.node }

// IsZero reports whether s was never assigned an underlying node.
func (s Sym[T]) IsZero() bool { return s.node == nil }

func wrap[T any](n symexpr.Node) Sym[T] { return Sym[T]{node: n} }

// wrapFrom adapts any AnySym into the requested Sym[T], for combinators
// that receive values through a map[string]AnySym (record fields,
// ConstMap literals) and need them back in typed form.
func wrapFrom[T any](s AnySym) Sym[T] { return Sym[T]{node: s.symNode()} }

func must[T any](n symexpr.Node, err error) Sym[T] {
	if err != nil {
		panic(err)
	}
	return Sym[T]{node: n}
}

// Option is the Go-level marker for a symbolic Option<T>: Sym[Option[T]]
// is the symbolic value, Option[T] itself is never constructed.
type Option[T any] struct{}

// FSeq is the Go-level marker for a depth-bounded symbolic sequence.
type FSeq[T any] struct{}

// Seq is the Go-level marker for an unbounded symbolic sequence.
type Seq[T any] struct{}

// Map is the Go-level marker for a symbolic total map.
type Map[K, V any] struct{}

// Set is the Go-level marker for a symbolic set.
type Set[K any] struct{}

// ConstMap is the Go-level marker for a symbolic statically-keyed map.
type ConstMap[K, V any] struct{}

var registry = symtype.NewRegistry()

// Unknown builds a fresh symbolic hole of type t: an unknown value a
// solver backend searches over, for combinator bodies that need to
// introduce a search variable directly rather than receiving one as a
// Function argument. name is for diagnostics only (see
// internal/symexpr.NewArbitrary).
func Unknown[T any](t symtype.Type, name string) Sym[T] {
	return wrap[T](symexpr.NewArbitrary(t, name))
}
