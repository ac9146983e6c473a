package sym

import (
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
)

// EmptyFSeq builds the empty depth-bounded sequence of element type T.
// elem must be given explicitly: nothing about an empty list carries
// its own element shape to infer it from.
func EmptyFSeq[T any](elem symtype.Type) Sym[FSeq[T]] {
	return wrap[FSeq[T]](symexpr.FSeqEmptyNode(elem))
}

// AddFront prepends an Option<T> head cell onto an FSeq<T> tail. This
// is a free function, not a method on Sym[FSeq[T]]: the receiver would
// need to name the instantiation Sym[FSeq[T]] directly, which Go's
// generic-method rule (a method's receiver may only name its own type
// parameter list, never instantiate another generic type with it)
// disallows.
func AddFront[T any](head Sym[Option[T]], tail Sym[FSeq[T]]) Sym[FSeq[T]] {
	return must[FSeq[T]](symexpr.FSeqAddFrontNode(head.node, tail.node))
}

// Case eliminates an FSeq<T> by structural recursion: empty is the
// result when list has no present cell, cons computes the result from
// the head cell (itself an Option<T>; absent cells are skipped, so the
// head is the first present cell — see VisitFSeqCase in
// internal/symeval/concrete) and the tail after it. cons is called once, symbolically, to build the body shared by
// every unrolled cell; it never runs per-cell at construction time.
func Case[T, R any](list Sym[FSeq[T]], empty Sym[R], cons func(head Sym[Option[T]], tail Sym[FSeq[T]]) Sym[R]) Sym[R] {
	elem := list.node.Type().(symtype.FSeq).Elem

	headID := symexpr.NewArgumentID()
	tailID := symexpr.NewArgumentID()
	headArg := symexpr.ArgumentNode(headID, symtype.Option{Elem: elem}, "head")
	tailArg := symexpr.ArgumentNode(tailID, symtype.FSeq{Elem: elem}, "tail")

	body := cons(wrap[Option[T]](headArg), wrap[FSeq[T]](tailArg))

	return must[R](symexpr.NewFSeqCase(list.node, empty.node, headID, tailID, body.node))
}
