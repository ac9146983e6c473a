package sym

import (
	"math/big"

	"github.com/symexlang/symex/internal/regexast"
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
)

// ContainsMode re-exports internal/symexpr's positional containment
// modes for Seq.Contains, so callers never need to import
// internal/symexpr themselves.
type ContainsMode = symexpr.ContainsMode

const (
	ContainsPrefix = symexpr.ContainsPrefix
	ContainsSuffix = symexpr.ContainsSuffix
	ContainsInfix  = symexpr.ContainsInfix
)

// EmptySeq builds the empty unbounded sequence of element type T.
func EmptySeq[T any](elem symtype.Type) Sym[Seq[T]] {
	return wrap[Seq[T]](symexpr.SeqEmptyNode(elem))
}

// Unit builds a one-element sequence.
func Unit[T any](v Sym[T]) Sym[Seq[T]] {
	return wrap[Seq[T]](symexpr.SeqUnitNode(v.node))
}

// Concat/Length/Contains/Slice/ReplaceFirst/IndexOf/MatchesRegex are
// defined generically over Sym[T] (not restricted to Sym[Seq[T]] or
// Sym[string]) since they return the SAME T as their receiver (or a
// fixed, T-independent shape like Sym[*big.Int]/Sym[bool]) — both
// Seq<E> and String satisfy internal/symexpr's "sequence-like" check
// dynamically, so one generic implementation serves both without a
// second copy.

// Concat builds the concatenation of two same-shaped sequences.
func (s Sym[T]) Concat(other Sym[T]) Sym[T] {
	return must[T](symexpr.SeqConcatNode(s.node, other.node))
}

// Length returns the element count as a BigInt.
func (s Sym[T]) Length() Sym[*big.Int] {
	return must[*big.Int](symexpr.SeqLengthNode(s.node))
}

// Contains tests a positional containment relationship.
func (s Sym[T]) Contains(mode ContainsMode, needle Sym[T]) Sym[bool] {
	return must[bool](symexpr.SeqContainsNode(mode, s.node, needle.node))
}

// Slice extracts a sub-sequence of length starting at offset (both BigInt-typed).
func (s Sym[T]) Slice(offset, length Sym[*big.Int]) Sym[T] {
	return must[T](symexpr.SeqSliceNode(s.node, offset.node, length.node))
}

// ReplaceFirst replaces the first occurrence of target with replacement.
func (s Sym[T]) ReplaceFirst(target, replacement Sym[T]) Sym[T] {
	return must[T](symexpr.SeqReplaceFirstNode(s.node, target.node, replacement.node))
}

// IndexOf returns the first index of needle at or after from, absent if
// not found. It is a method (not a free function) because its result
// shape, Option<BigInt>, never depends on T.
func (s Sym[T]) IndexOf(needle Sym[T], from Sym[*big.Int]) Sym[Option[*big.Int]] {
	return must[Option[*big.Int]](symexpr.SeqIndexOfNode(s.node, needle.node, from.node))
}

// MatchesRegex tests s (a String or Seq<Char>) against r.
func (s Sym[T]) MatchesRegex(r *regexast.Regex) Sym[bool] {
	return must[bool](symexpr.SeqMatchesRegexNode(s.node, r))
}

// At/Nth introduce a new element-shape type parameter the receiver's T
// alone cannot supply (Go forbids a method declaring extra type
// parameters beyond its receiver's), so they are free functions.

// At returns the element at idx, absent if out of range.
func At[T, E any](s Sym[T], idx Sym[*big.Int]) Sym[Option[E]] {
	return must[Option[E]](symexpr.SeqAtNode(s.node, idx.node))
}

// Nth returns the element at idx, undefined (backend-chosen) if out of range.
func Nth[T, E any](s Sym[T], idx Sym[*big.Int]) Sym[E] {
	return must[E](symexpr.SeqNthNode(s.node, idx.node))
}
