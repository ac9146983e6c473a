package symexpr

import "github.com/symexlang/symex/internal/symtype"

// Arbitrary is a symbolic hole: a placeholder standing for an unknown
// value of a given type, searched over by the solver. Arbitrary
// construction never interns — each call produces a node with a
// distinct identity even when two Arbitrary nodes share a type and name.
type Arbitrary struct {
	base
	Name string
}

func (n *Arbitrary) String() string { return "arbitrary:" + n.Name }

// NewArbitrary allocates a fresh Arbitrary<T> hole. name is used only for
// diagnostics (it appears in backend variable names and error messages);
// it never affects identity.
func (b *Builder) NewArbitrary(t symtype.Type, name string) *Arbitrary {
	n := &Arbitrary{base: base{typ: t}, Name: name}
	n.setID(b.freshID())
	return n
}

func NewArbitrary(t symtype.Type, name string) *Arbitrary { return Default.NewArbitrary(t, name) }

// Argument is a lambda parameter identified by id: a meta-level binder
// used by FSeq.Case's cons function and by the Function
// facade's user combinator parameters. Two Argument nodes built for the
// same id and type are identical (interned), since they denote the same
// binder occurrence reused across an expression body.
type Argument struct {
	base
	ArgID uint64
	Name  string
}

func (n *Argument) String() string { return keyf("arg#%d:%s", n.ArgID, n.Name) }

// NewArgumentID allocates a fresh, globally-unique argument binder id.
func (b *Builder) NewArgumentID() uint64 { return b.freshID() }

func NewArgumentID() uint64 { return Default.NewArgumentID() }

// Argument builds (or returns the cached) Argument node for argID/t.
func (b *Builder) Argument(argID uint64, t symtype.Type, name string) *Argument {
	n := &Argument{base: base{typ: t}, ArgID: argID, Name: name}
	return b.intern(keyf("arg:%d:%s", argID, t.String()), n).(*Argument)
}

func ArgumentNode(argID uint64, t symtype.Type, name string) *Argument {
	return Default.Argument(argID, t, name)
}
