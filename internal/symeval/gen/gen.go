// Package gen builds fresh symbolic values: Arbitrary-backed expression
// trees shaped like a given symtype.Type, ready to be asserted over and
// searched by a solver backend.
package gen

import (
	"fmt"

	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
)

// Generate builds a fresh symbolic value of type t. prefix names the
// Arbitrary holes it introduces, for diagnostics only. depth bounds how
// many cells an FSeq (at any nesting level reached while generating t)
// may unroll to. checkSmallerDepths selects which of those depth cells
// a solver is free to treat as absent: true (internal/symconfig's
// default) gives each cell its own guard hole, so a solver may make any
// prefix of cells absent and simulate any FSeq length from 0 up to
// depth (the guarded-list-group representation used throughout
// internal/symeval/symbolic); false drops the guard entirely and forces
// every one of the depth cells present, so only the exact length depth
// is searched — a materially smaller, cheaper search space when a
// caller already knows the length that matters.
func Generate(b *symexpr.Builder, t symtype.Type, depth int, prefix string, checkSmallerDepths bool) (symexpr.Node, error) {
	switch typ := t.(type) {
	case symtype.Bool, symtype.Bitvec, symtype.BigInt, symtype.Real, symtype.Char, symtype.String, symtype.Seq:
		return b.NewArbitrary(t, prefix), nil

	case symtype.Map:
		return b.NewArbitrary(t, prefix), nil

	case symtype.Set:
		return b.NewArbitrary(t, prefix), nil

	case *symtype.Record:
		fields := make(map[string]symexpr.Node, len(typ.Fields))
		for _, fd := range typ.Fields {
			v, err := Generate(b, fd.Type, depth, prefix+"."+fd.Name, checkSmallerDepths)
			if err != nil {
				return nil, err
			}
			fields[fd.Name] = v
		}
		return b.NewObject(typ, fields)

	case symtype.Option:
		guard := b.NewArbitrary(symtype.Bool{}, prefix+".hasvalue")
		val, err := Generate(b, typ.Elem, depth, prefix+".value", checkSmallerDepths)
		if err != nil {
			return nil, err
		}
		return b.If(guard, b.OptionSomeNode(val), b.OptionNoneNode(typ.Elem))

	case symtype.FSeq:
		return generateFSeq(b, typ.Elem, depth, prefix, checkSmallerDepths)

	case symtype.ConstMap:
		values := make(map[symtype.ConstKey]symexpr.Node, len(typ.Keys))
		for _, k := range typ.Keys {
			v, err := Generate(b, typ.Val, depth, fmt.Sprintf("%s[%v]", prefix, k), checkSmallerDepths)
			if err != nil {
				return nil, err
			}
			values[k] = v
		}
		return b.ConstMapLiteralNode(typ, values)

	default:
		return nil, fmt.Errorf("gen: unsupported type %s", t.String())
	}
}

// generateFSeq builds a chain of up to depth cells:
// cell_i = AddFront(Some(elem_i), cell_{i+1}), bottoming out at
// FSeqEmpty. When checkSmallerDepths is true each cell's presence is
// additionally gated by its own guard hole (If(guard_i, Some(elem_i),
// None)), letting a solver simulate any length 0..depth; when false the
// guard is omitted and every one of the depth cells is forced present,
// so only length depth itself is searched.
func generateFSeq(b *symexpr.Builder, elem symtype.Type, depth int, prefix string, checkSmallerDepths bool) (symexpr.Node, error) {
	if depth <= 0 {
		return b.FSeqEmptyNode(elem), nil
	}
	value, err := Generate(b, elem, depth, fmt.Sprintf("%s.elem%d", prefix, depth), checkSmallerDepths)
	if err != nil {
		return nil, err
	}
	var head symexpr.Node
	if checkSmallerDepths {
		guard := b.NewArbitrary(symtype.Bool{}, fmt.Sprintf("%s.guard%d", prefix, depth))
		head, err = b.If(guard, b.OptionSomeNode(value), b.OptionNoneNode(elem))
		if err != nil {
			return nil, err
		}
	} else {
		head = b.OptionSomeNode(value)
	}
	tail, err := generateFSeq(b, elem, depth-1, prefix, checkSmallerDepths)
	if err != nil {
		return nil, err
	}
	return b.FSeqAddFrontNode(head, tail)
}
