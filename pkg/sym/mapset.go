package sym

import (
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
)

// EmptyMap builds the map with every key absent. Map.Set/.Delete/.Get/
// .Union/.Intersect/.Difference are all free functions rather than
// methods on Sym[Map[K,V]]: a method's receiver may only name its own
// generic type parameter, never instantiate another generic type
// (Map[K,V]) with it, so operations that need K and V individually must
// be parameterized explicitly.
func EmptyMap[K, V any](key, val symtype.Type) Sym[Map[K, V]] {
	return wrap[Map[K, V]](symexpr.MapEmptyNode(key, val))
}

func MapSet[K, V any](m Sym[Map[K, V]], key Sym[K], value Sym[V]) Sym[Map[K, V]] {
	return must[Map[K, V]](symexpr.MapSetNode(m.node, key.node, value.node))
}

func MapDelete[K, V any](m Sym[Map[K, V]], key Sym[K]) Sym[Map[K, V]] {
	return must[Map[K, V]](symexpr.MapDeleteNode(m.node, key.node))
}

func MapGet[K, V any](m Sym[Map[K, V]], key Sym[K]) Sym[Option[V]] {
	return must[Option[V]](symexpr.MapGetNode(m.node, key.node))
}

func MapUnion[K, V any](lhs, rhs Sym[Map[K, V]]) Sym[Map[K, V]] {
	return must[Map[K, V]](symexpr.MapCombineNode(symexpr.CombineUnion, lhs.node, rhs.node))
}

func MapIntersect[K, V any](lhs, rhs Sym[Map[K, V]]) Sym[Map[K, V]] {
	return must[Map[K, V]](symexpr.MapCombineNode(symexpr.CombineIntersect, lhs.node, rhs.node))
}

func MapDifference[K, V any](lhs, rhs Sym[Map[K, V]]) Sym[Map[K, V]] {
	return must[Map[K, V]](symexpr.MapCombineNode(symexpr.CombineDifference, lhs.node, rhs.node))
}

// EmptySet builds the set with every key absent.
func EmptySet[K any](elem symtype.Type) Sym[Set[K]] {
	return wrap[Set[K]](symexpr.SetEmptyNode(elem))
}

func SetAdd[K any](s Sym[Set[K]], key Sym[K]) Sym[Set[K]] {
	return must[Set[K]](symexpr.SetAddNode(s.node, key.node))
}

func SetContains[K any](s Sym[Set[K]], key Sym[K]) Sym[bool] {
	return must[bool](symexpr.SetContainsNode(s.node, key.node))
}

func SetDelete[K any](s Sym[Set[K]], key Sym[K]) Sym[Set[K]] {
	return must[Set[K]](symexpr.MapDeleteNode(s.node, key.node))
}

func SetUnion[K any](lhs, rhs Sym[Set[K]]) Sym[Set[K]] {
	return must[Set[K]](symexpr.MapCombineNode(symexpr.CombineUnion, lhs.node, rhs.node))
}

func SetIntersect[K any](lhs, rhs Sym[Set[K]]) Sym[Set[K]] {
	return must[Set[K]](symexpr.MapCombineNode(symexpr.CombineIntersect, lhs.node, rhs.node))
}

func SetDifference[K any](lhs, rhs Sym[Set[K]]) Sym[Set[K]] {
	return must[Set[K]](symexpr.MapCombineNode(symexpr.CombineDifference, lhs.node, rhs.node))
}
