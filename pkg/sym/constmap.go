package sym

import (
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
)

// NewConstMap builds a ConstMap literal from a complete assignment over
// typ's statically declared key set.
func NewConstMap[K comparable, V any](typ symtype.ConstMap, values map[K]Sym[V]) Sym[ConstMap[K, V]] {
	nodeValues := make(map[symtype.ConstKey]symexpr.Node, len(values))
	for k, v := range values {
		nodeValues[symtype.ConstKey(k)] = v.node
	}
	return must[ConstMap[K, V]](symexpr.ConstMapLiteralNode(typ, nodeValues))
}

// ConstMapSet builds a copy of m with constKey rebound to v. constKey
// must be one of the ConstMap's statically declared keys.
func ConstMapSet[K comparable, V any](m Sym[ConstMap[K, V]], constKey K, v Sym[V]) Sym[ConstMap[K, V]] {
	return must[ConstMap[K, V]](symexpr.ConstMapWithNode(m.node, symtype.ConstKey(constKey), v.node))
}

// ConstMapGet projects the value bound to constKey, directly (every
// declared key is always bound, so the result is never Option-lifted).
func ConstMapGet[K comparable, V any](m Sym[ConstMap[K, V]], constKey K) Sym[V] {
	return must[V](symexpr.ConstMapGetNode(m.node, symtype.ConstKey(constKey)))
}
