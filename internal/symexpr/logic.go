package symexpr

import "github.com/symexlang/symex/internal/symtype"

// LogicAnd is n-ary boolean conjunction.
type LogicAnd struct {
	base
	Args []Node
}

func (n *LogicAnd) String() string { return joinArgs("and", n.Args) }

// And builds a simplified boolean conjunction: constant folding on
// literal true/false operands, and flattening is left to callers (each
// call takes exactly the operands given, with no cross-call flattening).
func (b *Builder) And(args ...Node) (Node, error) {
	if err := requireAllBool(args); err != nil {
		return nil, err
	}
	kept := make([]Node, 0, len(args))
	for _, a := range args {
		if c, ok := a.(*BoolConst); ok {
			if !c.Value {
				return b.Bool(false), nil
			}
			continue // drop literal true
		}
		kept = append(kept, a)
	}
	if len(kept) == 0 {
		return b.Bool(true), nil
	}
	if len(kept) == 1 {
		return kept[0], nil
	}
	n := &LogicAnd{base: base{typ: symtype.Bool{}}, Args: kept}
	return b.intern(keyf("and:%s", argIDs(kept)), n), nil
}

func And(args ...Node) (Node, error) { return Default.And(args...) }

// LogicOr is n-ary boolean disjunction.
type LogicOr struct {
	base
	Args []Node
}

func (n *LogicOr) String() string { return joinArgs("or", n.Args) }

func (b *Builder) Or(args ...Node) (Node, error) {
	if err := requireAllBool(args); err != nil {
		return nil, err
	}
	kept := make([]Node, 0, len(args))
	for _, a := range args {
		if c, ok := a.(*BoolConst); ok {
			if c.Value {
				return b.Bool(true), nil
			}
			continue
		}
		kept = append(kept, a)
	}
	if len(kept) == 0 {
		return b.Bool(false), nil
	}
	if len(kept) == 1 {
		return kept[0], nil
	}
	n := &LogicOr{base: base{typ: symtype.Bool{}}, Args: kept}
	return b.intern(keyf("or:%s", argIDs(kept)), n), nil
}

func Or(args ...Node) (Node, error) { return Default.Or(args...) }

// LogicNot is boolean negation.
type LogicNot struct {
	base
	X Node
}

func (n *LogicNot) String() string { return "not(" + n.X.String() + ")" }

func (b *Builder) Not(x Node) (Node, error) {
	if !isBool(x) {
		return nil, typeMismatch("Not", "Bool", x)
	}
	if c, ok := x.(*BoolConst); ok {
		return b.Bool(!c.Value), nil
	}
	if inner, ok := x.(*LogicNot); ok {
		return inner.X, nil // Not(Not(x)) -> x
	}
	n := &LogicNot{base: base{typ: symtype.Bool{}}, X: x}
	return b.intern(keyf("not:%d", x.ID()), n), nil
}

func Not(x Node) (Node, error) { return Default.Not(x) }

// Iff is boolean biconditional.
type Iff struct {
	base
	Lhs, Rhs Node
}

func (n *Iff) String() string { return n.Lhs.String() + " <-> " + n.Rhs.String() }

func (b *Builder) IffNode(lhs, rhs Node) (Node, error) {
	if !isBool(lhs) {
		return nil, typeMismatch("Iff", "Bool", lhs)
	}
	if !isBool(rhs) {
		return nil, typeMismatch("Iff", "Bool", rhs)
	}
	if lhs.ID() == rhs.ID() {
		return b.Bool(true), nil
	}
	if c, ok := lhs.(*BoolConst); ok {
		if c.Value {
			return rhs, nil
		}
		return b.Not(rhs)
	}
	if c, ok := rhs.(*BoolConst); ok {
		if c.Value {
			return lhs, nil
		}
		return b.Not(lhs)
	}
	n := &Iff{base: base{typ: symtype.Bool{}}, Lhs: lhs, Rhs: rhs}
	return b.intern(keyf("iff:%d:%d", lhs.ID(), rhs.ID()), n), nil
}

func Iffn(lhs, rhs Node) (Node, error) { return Default.IffNode(lhs, rhs) }

// If is the conditional expression: If(guard, then, else). Both branches
// must share the same result type.
type If struct {
	base
	Guard, Then, Else Node
}

func (n *If) String() string {
	return "if(" + n.Guard.String() + ", " + n.Then.String() + ", " + n.Else.String() + ")"
}

func (b *Builder) If(guard, then, els Node) (Node, error) {
	if !isBool(guard) {
		return nil, typeMismatch("If", "Bool", guard)
	}
	if then.Type().String() != els.Type().String() {
		return nil, typeMismatch("If", then.Type().String(), els)
	}
	if c, ok := guard.(*BoolConst); ok {
		if c.Value {
			return then, nil
		}
		return els, nil
	}
	if then.ID() == els.ID() {
		return then, nil
	}
	n := &If{base: base{typ: then.Type()}, Guard: guard, Then: then, Else: els}
	return b.intern(keyf("if:%d:%d:%d", guard.ID(), then.ID(), els.ID()), n), nil
}

func IfNode(guard, then, els Node) (Node, error) { return Default.If(guard, then, els) }

func isBool(n Node) bool { _, ok := n.Type().(symtype.Bool); return ok }

func requireAllBool(args []Node) error {
	for _, a := range args {
		if !isBool(a) {
			return typeMismatch("logic op", "Bool", a)
		}
	}
	return nil
}

func typeMismatch(op, expected string, got Node) error {
	return typeMismatchErr(op, expected, got.Type().String())
}

func joinArgs(op string, args []Node) string {
	s := op + "("
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

func argIDs(args []Node) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += ","
		}
		s += keyf("%d", a.ID())
	}
	return s
}
