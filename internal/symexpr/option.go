package symexpr

import "github.com/symexlang/symex/internal/symtype"

// OptionNone is the absent value of Option<T>.
type OptionNone struct{ base }

func (n *OptionNone) String() string { return "none<" + n.typ.(symtype.Option).Elem.String() + ">" }

func (b *Builder) OptionNoneNode(elem symtype.Type) Node {
	n := &OptionNone{base: base{typ: symtype.Option{Elem: elem}}}
	return b.intern(keyf("option.none:%s", elem.String()), n)
}

func OptionNoneNode(elem symtype.Type) Node { return Default.OptionNoneNode(elem) }

// OptionSome wraps value as the present value of Option<T>.
type OptionSome struct {
	base
	Value Node
}

func (n *OptionSome) String() string { return "some(" + n.Value.String() + ")" }

func (b *Builder) OptionSomeNode(value Node) Node {
	n := &OptionSome{base: base{typ: symtype.Option{Elem: value.Type()}}, Value: value}
	return b.intern(keyf("option.some:%d", value.ID()), n)
}

func OptionSomeNode(value Node) Node { return Default.OptionSomeNode(value) }

// OptionHasValue projects the HasValue field of an Option.
type OptionHasValue struct {
	base
	Opt Node
}

func (n *OptionHasValue) String() string { return n.Opt.String() + ".HasValue" }

func (b *Builder) OptionHasValueNode(opt Node) (Node, error) {
	if _, ok := opt.Type().(symtype.Option); !ok {
		return nil, typeMismatch("Option.HasValue", "Option", opt)
	}
	switch opt.(type) {
	case *OptionSome:
		return b.Bool(true), nil
	case *OptionNone:
		return b.Bool(false), nil
	}
	n := &OptionHasValue{base: base{typ: symtype.Bool{}}, Opt: opt}
	return b.intern(keyf("option.hasvalue:%d", opt.ID()), n), nil
}

func OptionHasValueNode(opt Node) (Node, error) { return Default.OptionHasValueNode(opt) }

// OptionValue projects the Value field of an Option. The value is
// unspecified (but well-typed) when HasValue is false; callers that
// care must guard with OptionHasValue first.
type OptionValue struct {
	base
	Opt Node
}

func (n *OptionValue) String() string { return n.Opt.String() + ".Value" }

func (b *Builder) OptionValueNode(opt Node) (Node, error) {
	o, ok := opt.Type().(symtype.Option)
	if !ok {
		return nil, typeMismatch("Option.Value", "Option", opt)
	}
	if some, ok := opt.(*OptionSome); ok {
		return some.Value, nil
	}
	n := &OptionValue{base: base{typ: o.Elem}, Opt: opt}
	return b.intern(keyf("option.value:%d", opt.ID()), n), nil
}

func OptionValueNode(opt Node) (Node, error) { return Default.OptionValueNode(opt) }
