// Package symbolic rewrites an expression DAG to eliminate every
// FSeq-typed subexpression, replacing FSeq.Case/FSeq.Empty/FSeq.AddFront
// with the equivalent plain node tree (nested If/Option/record
// combinators) that a solver backend already knows how to encode
// without any notion of a depth-bounded guarded list. Every other node
// kind (Bool, Bitvec, BigInt, Real, Char, String, Seq, Map, Set,
// ConstMap, Record, Option) already has a direct backend encoding and
// passes through unchanged except where it transitively contains an
// FSeq subterm that needs rewriting.
package symbolic

import (
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
)

// Node aliases symexpr.Node for brevity throughout this package.
type Node = symexpr.Node

// ListEntry is one row of a GuardedListGroup: the case "this FSeq has
// exactly as many elements as the row's index", active when Guard holds.
// Values always has exactly that many entries, even when Guard is a
// constant false (a length
// structurally unreachable from this value), so callers never need to
// special-case a missing row.
type ListEntry struct {
	Guard  Node
	Values []Node
}

// GuardedListGroup is the lowered form of one FSeq-typed expression:
// Entries[i] is the row for length i. Exactly one row's Guard holds in
// any concrete model (the guarded-list invariant) — which
// one is what FSeq.Case branches on.
type GuardedListGroup struct {
	Elem    symtype.Type
	Entries []ListEntry
}

func (g *GuardedListGroup) maxLen() int { return len(g.Entries) - 1 }
