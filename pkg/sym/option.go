package sym

import (
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
)

// None builds an absent Option<T>. elem names T's symbolic type
// explicitly (see EmptyFSeq for why: an empty container carries no
// value to infer the element shape from).
func None[T any](elem symtype.Type) Sym[Option[T]] {
	return wrap[Option[T]](symexpr.OptionNoneNode(elem))
}

// Some builds a present Option<T> wrapping v.
func Some[T any](v Sym[T]) Sym[Option[T]] {
	return wrap[Option[T]](symexpr.OptionSomeNode(v.node))
}

// HasValue/Value introduce a new type parameter the receiver's marker
// (Option[T]) can't supply on its own for a method (Go forbids a method
// receiver naming a generic instantiation like Sym[Option[T]]
// directly), so these are free functions.
func HasValue[T any](o Sym[Option[T]]) Sym[bool] {
	return must[bool](symexpr.OptionHasValueNode(o.node))
}

func Value[T any](o Sym[Option[T]]) Sym[T] {
	return must[T](symexpr.OptionValueNode(o.node))
}
