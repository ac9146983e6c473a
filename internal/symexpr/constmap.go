package symexpr

import "github.com/symexlang/symex/internal/symtype"

// ConstMapLiteral builds a ConstMap value from a complete assignment over
// its statically enumerated key set. Every key declared by typ must be
// present in values, and no others.
type ConstMapLiteral struct {
	base
	Typ    symtype.ConstMap
	Values map[symtype.ConstKey]Node // one entry per Typ.Keys
}

func (n *ConstMapLiteral) String() string { return n.Typ.String() }

func (b *Builder) ConstMapLiteralNode(typ symtype.ConstMap, values map[symtype.ConstKey]Node) (Node, error) {
	if len(values) != len(typ.Keys) {
		return nil, typeMismatchErr("ConstMap literal", "exactly the declared keys", "a different key set")
	}
	assigned := make(map[symtype.ConstKey]Node, len(typ.Keys))
	for _, k := range typ.Keys {
		v, ok := values[k]
		if !ok {
			return nil, typeMismatchErr("ConstMap literal", "every declared key bound", "a missing key")
		}
		if v.Type().String() != typ.Val.String() {
			return nil, typeMismatch("ConstMap literal value", typ.Val.String(), v)
		}
		assigned[k] = v
	}
	n := &ConstMapLiteral{base: base{typ: typ}, Typ: typ, Values: assigned}
	key := "constmap.lit:" + typ.String()
	for _, k := range typ.Keys {
		key += keyf(":%d", assigned[k].ID())
	}
	return b.intern(key, n), nil
}

func ConstMapLiteralNode(typ symtype.ConstMap, values map[symtype.ConstKey]Node) (Node, error) {
	return Default.ConstMapLiteralNode(typ, values)
}

// ConstMapWith builds a copy of a ConstMap literal with one key rebound.
// key must be one of m's statically declared keys.
type ConstMapWith struct {
	base
	Map   Node
	Key   symtype.ConstKey
	Value Node
}

func (n *ConstMapWith) String() string { return n.Map.String() + ".with(key)" }

func (b *Builder) ConstMapWithNode(m Node, key symtype.ConstKey, value Node) (Node, error) {
	typ, ok := m.Type().(symtype.ConstMap)
	if !ok {
		return nil, typeMismatch("ConstMap.Set", "ConstMap", m)
	}
	if !hasConstKey(typ, key) {
		return nil, typeMismatchErr("ConstMap.Set", "a declared key", "an undeclared key")
	}
	if value.Type().String() != typ.Val.String() {
		return nil, typeMismatch("ConstMap.Set value", typ.Val.String(), value)
	}
	if lit, ok := m.(*ConstMapLiteral); ok {
		values := make(map[symtype.ConstKey]Node, len(lit.Values))
		for k, v := range lit.Values {
			values[k] = v
		}
		values[key] = value
		return b.ConstMapLiteralNode(typ, values)
	}
	n := &ConstMapWith{base: base{typ: typ}, Map: m, Key: key, Value: value}
	return b.intern(keyf("constmap.with:%d:%v:%d", m.ID(), key, value.ID()), n), nil
}

func ConstMapWithNode(m Node, key symtype.ConstKey, value Node) (Node, error) {
	return Default.ConstMapWithNode(m, key, value)
}

// ConstMapGet projects the value bound to a statically-known key,
// directly (not Option-lifted: every declared key is always bound).
type ConstMapGet struct {
	base
	Map Node
	Key symtype.ConstKey
}

func (n *ConstMapGet) String() string { return n.Map.String() + "[key]" }

func (b *Builder) ConstMapGetNode(m Node, key symtype.ConstKey) (Node, error) {
	typ, ok := m.Type().(symtype.ConstMap)
	if !ok {
		return nil, typeMismatch("ConstMap.Get", "ConstMap", m)
	}
	if !hasConstKey(typ, key) {
		return nil, typeMismatchErr("ConstMap.Get", "a declared key", "an undeclared key")
	}
	if lit, ok := m.(*ConstMapLiteral); ok {
		return lit.Values[key], nil
	}
	n := &ConstMapGet{base: base{typ: typ.Val}, Map: m, Key: key}
	return b.intern(keyf("constmap.get:%d:%v", m.ID(), key), n), nil
}

func ConstMapGetNode(m Node, key symtype.ConstKey) (Node, error) { return Default.ConstMapGetNode(m, key) }

func hasConstKey(typ symtype.ConstMap, key symtype.ConstKey) bool {
	for _, k := range typ.Keys {
		if k == key {
			return true
		}
	}
	return false
}
