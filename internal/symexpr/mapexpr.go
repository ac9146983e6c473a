package symexpr

import "github.com/symexlang/symex/internal/symtype"

func isMapLike(t symtype.Type) bool {
	switch t.(type) {
	case symtype.Map, symtype.Set:
		return true
	default:
		return false
	}
}

func mapKeyType(t symtype.Type) symtype.Type {
	switch m := t.(type) {
	case symtype.Map:
		return m.Key
	case symtype.Set:
		return m.Elem
	default:
		return nil
	}
}

func mapValType(t symtype.Type) symtype.Type {
	switch m := t.(type) {
	case symtype.Map:
		return m.Val
	case symtype.Set:
		return symtype.Bool{}
	default:
		return nil
	}
}

// MapEmpty is the map with every key absent.
type MapEmpty struct{ base }

func (n *MapEmpty) String() string {
	m := n.typ.(symtype.Map)
	return "map.empty<" + m.Key.String() + ", " + m.Val.String() + ">"
}

func (b *Builder) MapEmptyNode(key, val symtype.Type) Node {
	n := &MapEmpty{base: base{typ: symtype.Map{Key: key, Val: val}}}
	return b.intern(keyf("map.empty:%s:%s", key.String(), val.String()), n)
}

func MapEmptyNode(key, val symtype.Type) Node { return Default.MapEmptyNode(key, val) }

// MapSet assigns value at key, shadowing any prior binding.
type MapSet struct {
	base
	Map, Key, Value Node
}

func (n *MapSet) String() string {
	return "map.set(" + n.Map.String() + ", " + n.Key.String() + ", " + n.Value.String() + ")"
}

func (b *Builder) MapSetNode(m, key, value Node) (Node, error) {
	if !isMapLike(m.Type()) {
		return nil, typeMismatch("Map.Set", "Map", m)
	}
	if key.Type().String() != mapKeyType(m.Type()).String() {
		return nil, typeMismatch("Map.Set key", mapKeyType(m.Type()).String(), key)
	}
	if value.Type().String() != mapValType(m.Type()).String() {
		return nil, typeMismatch("Map.Set value", mapValType(m.Type()).String(), value)
	}
	n := &MapSet{base: base{typ: m.Type()}, Map: m, Key: key, Value: value}
	return b.intern(keyf("map.set:%d:%d:%d", m.ID(), key.ID(), value.ID()), n), nil
}

func MapSetNode(m, key, value Node) (Node, error) { return Default.MapSetNode(m, key, value) }

// MapDelete removes any binding for key, equivalent to Map.Set(m, key, None).
type MapDelete struct {
	base
	Map, Key Node
}

func (n *MapDelete) String() string { return "map.delete(" + n.Map.String() + ", " + n.Key.String() + ")" }

func (b *Builder) MapDeleteNode(m, key Node) (Node, error) {
	if !isMapLike(m.Type()) {
		return nil, typeMismatch("Map.Delete", "Map", m)
	}
	if key.Type().String() != mapKeyType(m.Type()).String() {
		return nil, typeMismatch("Map.Delete key", mapKeyType(m.Type()).String(), key)
	}
	n := &MapDelete{base: base{typ: m.Type()}, Map: m, Key: key}
	return b.intern(keyf("map.delete:%d:%d", m.ID(), key.ID()), n), nil
}

func MapDeleteNode(m, key Node) (Node, error) { return Default.MapDeleteNode(m, key) }

// MapGet returns Option<V>: the value bound at key, or None if absent.
type MapGet struct {
	base
	Map, Key Node
}

func (n *MapGet) String() string { return "map.get(" + n.Map.String() + ", " + n.Key.String() + ")" }

func (b *Builder) MapGetNode(m, key Node) (Node, error) {
	if !isMapLike(m.Type()) {
		return nil, typeMismatch("Map.Get", "Map", m)
	}
	if key.Type().String() != mapKeyType(m.Type()).String() {
		return nil, typeMismatch("Map.Get key", mapKeyType(m.Type()).String(), key)
	}
	n := &MapGet{base: base{typ: symtype.Option{Elem: mapValType(m.Type())}}, Map: m, Key: key}
	return b.intern(keyf("map.get:%d:%d", m.ID(), key.ID()), n), nil
}

func MapGetNode(m, key Node) (Node, error) { return Default.MapGetNode(m, key) }

// CombineMode selects the set-theoretic shape of Map.Combine.
type CombineMode int

const (
	CombineUnion CombineMode = iota
	CombineIntersect
	CombineDifference
)

// MapCombine merges two maps of identical shape. For Union, a key bound
// in both operands keeps the left operand's value; Intersect keeps only
// keys bound in both (left's value); Difference keeps only keys bound in
// lhs and absent from rhs.
type MapCombine struct {
	base
	Mode     CombineMode
	Lhs, Rhs Node
}

func (n *MapCombine) String() string {
	return "map.combine(" + n.Lhs.String() + ", " + n.Rhs.String() + ")"
}

func (b *Builder) MapCombineNode(mode CombineMode, lhs, rhs Node) (Node, error) {
	if !isMapLike(lhs.Type()) {
		return nil, typeMismatch("Map.Combine", "Map", lhs)
	}
	if rhs.Type().String() != lhs.Type().String() {
		return nil, typeMismatch("Map.Combine", lhs.Type().String(), rhs)
	}
	n := &MapCombine{base: base{typ: lhs.Type()}, Mode: mode, Lhs: lhs, Rhs: rhs}
	return b.intern(keyf("map.combine:%d:%d:%d", mode, lhs.ID(), rhs.ID()), n), nil
}

func MapCombineNode(mode CombineMode, lhs, rhs Node) (Node, error) {
	return Default.MapCombineNode(mode, lhs, rhs)
}

// SetEmptyNode is sugar for MapEmptyNode(elem, Bool{}) typed as a Set.
func (b *Builder) SetEmptyNode(elem symtype.Type) Node {
	n := &MapEmpty{base: base{typ: symtype.Set{Elem: elem}}}
	return b.intern(keyf("set.empty:%s", elem.String()), n)
}

func SetEmptyNode(elem symtype.Type) Node { return Default.SetEmptyNode(elem) }

// SetAddNode inserts key into a Set, sugar for MapSetNode(s, key, true).
func (b *Builder) SetAddNode(s, key Node) (Node, error) {
	if _, ok := s.Type().(symtype.Set); !ok {
		return nil, typeMismatch("Set.Add", "Set", s)
	}
	return b.MapSetNode(s, key, b.Bool(true))
}

func SetAddNode(s, key Node) (Node, error) { return Default.SetAddNode(s, key) }

// SetContainsNode tests membership, sugar over MapGetNode + HasValue.
func (b *Builder) SetContainsNode(s, key Node) (Node, error) {
	if _, ok := s.Type().(symtype.Set); !ok {
		return nil, typeMismatch("Set.Contains", "Set", s)
	}
	got, err := b.MapGetNode(s, key)
	if err != nil {
		return nil, err
	}
	return b.OptionHasValueNode(got)
}

func SetContainsNode(s, key Node) (Node, error) { return Default.SetContainsNode(s, key) }
