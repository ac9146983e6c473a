package symexpr

import (
	"github.com/symexlang/symex/internal/regexast"
	"github.com/symexlang/symex/internal/symtype"
)

// SeqEmpty is the empty unbounded sequence.
type SeqEmpty struct{ base }

func (n *SeqEmpty) String() string { return "seq.empty<" + n.typ.(symtype.Seq).Elem.String() + ">" }

func (b *Builder) SeqEmptyNode(elem symtype.Type) Node {
	n := &SeqEmpty{base: base{typ: symtype.Seq{Elem: elem}}}
	return b.intern(keyf("seq.empty:%s", elem.String()), n)
}

func SeqEmptyNode(elem symtype.Type) Node { return Default.SeqEmptyNode(elem) }

// SeqUnit is a singleton sequence.
type SeqUnit struct {
	base
	Elem Node
}

func (n *SeqUnit) String() string { return "seq.unit(" + n.Elem.String() + ")" }

func (b *Builder) SeqUnitNode(elem Node) Node {
	n := &SeqUnit{base: base{typ: symtype.Seq{Elem: elem.Type()}}, Elem: elem}
	return b.intern(keyf("seq.unit:%d", elem.ID()), n)
}

func SeqUnitNode(elem Node) Node { return Default.SeqUnitNode(elem) }

// SeqConcat concatenates two sequences of the same element type.
type SeqConcat struct {
	base
	Lhs, Rhs Node
}

func (n *SeqConcat) String() string { return "seq.concat(" + n.Lhs.String() + ", " + n.Rhs.String() + ")" }

func (b *Builder) SeqConcatNode(lhs, rhs Node) (Node, error) {
	ls, ok := lhs.Type().(symtype.Seq)
	if !ok {
		if _, ok := lhs.Type().(symtype.String); ok {
			ls = symtype.Seq{Elem: symtype.Char{}}
		} else {
			return nil, typeMismatch("Seq.Concat", "Seq", lhs)
		}
	}
	if rhs.Type().String() != ls.String() && rhs.Type().String() != (symtype.String{}).String() {
		return nil, typeMismatch("Seq.Concat", ls.String(), rhs)
	}
	n := &SeqConcat{base: base{typ: ls}, Lhs: lhs, Rhs: rhs}
	return b.intern(keyf("seq.concat:%d:%d", lhs.ID(), rhs.ID()), n), nil
}

func SeqConcatNode(lhs, rhs Node) (Node, error) { return Default.SeqConcatNode(lhs, rhs) }

// SeqLength is the (non-negative, arbitrary precision) length of a sequence.
type SeqLength struct {
	base
	Seq Node
}

func (n *SeqLength) String() string { return "seq.length(" + n.Seq.String() + ")" }

func (b *Builder) SeqLengthNode(s Node) (Node, error) {
	if !isSeqLike(s.Type()) {
		return nil, typeMismatch("Seq.Length", "Seq", s)
	}
	n := &SeqLength{base: base{typ: symtype.BigInt{}}, Seq: s}
	return b.intern(keyf("seq.length:%d", s.ID()), n), nil
}

func SeqLengthNode(s Node) (Node, error) { return Default.SeqLengthNode(s) }

func isSeqLike(t symtype.Type) bool {
	switch t.(type) {
	case symtype.Seq, symtype.String:
		return true
	default:
		return false
	}
}

func seqElemType(t symtype.Type) symtype.Type {
	if s, ok := t.(symtype.Seq); ok {
		return s.Elem
	}
	return symtype.Char{}
}

// SeqAt returns Option<T>: the element at idx, or None if idx is out of range.
type SeqAt struct {
	base
	Seq, Index Node
}

func (n *SeqAt) String() string { return "seq.at(" + n.Seq.String() + ", " + n.Index.String() + ")" }

func (b *Builder) SeqAtNode(s, idx Node) (Node, error) {
	if !isSeqLike(s.Type()) {
		return nil, typeMismatch("Seq.At", "Seq", s)
	}
	if _, ok := idx.Type().(symtype.BigInt); !ok {
		return nil, typeMismatch("Seq.At", "BigInt", idx)
	}
	n := &SeqAt{base: base{typ: symtype.Option{Elem: seqElemType(s.Type())}}, Seq: s, Index: idx}
	return b.intern(keyf("seq.at:%d:%d", s.ID(), idx.ID()), n), nil
}

func SeqAtNode(s, idx Node) (Node, error) { return Default.SeqAtNode(s, idx) }

// SeqNth returns the raw element at idx, assumed (by the caller) in bounds.
type SeqNth struct {
	base
	Seq, Index Node
}

func (n *SeqNth) String() string { return "seq.nth(" + n.Seq.String() + ", " + n.Index.String() + ")" }

func (b *Builder) SeqNthNode(s, idx Node) (Node, error) {
	if !isSeqLike(s.Type()) {
		return nil, typeMismatch("Seq.Nth", "Seq", s)
	}
	n := &SeqNth{base: base{typ: seqElemType(s.Type())}, Seq: s, Index: idx}
	return b.intern(keyf("seq.nth:%d:%d", s.ID(), idx.ID()), n), nil
}

func SeqNthNode(s, idx Node) (Node, error) { return Default.SeqNthNode(s, idx) }

// ContainsMode selects which positional containment Seq.Contains tests.
type ContainsMode int

const (
	ContainsPrefix ContainsMode = iota
	ContainsSuffix
	ContainsInfix
)

// SeqContains tests positional containment of needle within haystack.
type SeqContains struct {
	base
	Mode               ContainsMode
	Haystack, Needle Node
}

func (n *SeqContains) String() string {
	return "seq.contains(" + n.Haystack.String() + ", " + n.Needle.String() + ")"
}

func (b *Builder) SeqContainsNode(mode ContainsMode, haystack, needle Node) (Node, error) {
	if !isSeqLike(haystack.Type()) {
		return nil, typeMismatch("Seq.Contains", "Seq", haystack)
	}
	n := &SeqContains{base: base{typ: symtype.Bool{}}, Mode: mode, Haystack: haystack, Needle: needle}
	return b.intern(keyf("seq.contains:%d:%d:%d", mode, haystack.ID(), needle.ID()), n), nil
}

func SeqContainsNode(mode ContainsMode, haystack, needle Node) (Node, error) {
	return Default.SeqContainsNode(mode, haystack, needle)
}

// SeqIndexOf returns Option<BigInt>: the first index of needle in
// haystack at or after from, or None if not found.
type SeqIndexOf struct {
	base
	Haystack, Needle, From Node
}

func (n *SeqIndexOf) String() string {
	return "seq.indexof(" + n.Haystack.String() + ", " + n.Needle.String() + ")"
}

func (b *Builder) SeqIndexOfNode(haystack, needle, from Node) (Node, error) {
	if !isSeqLike(haystack.Type()) {
		return nil, typeMismatch("Seq.IndexOf", "Seq", haystack)
	}
	n := &SeqIndexOf{base: base{typ: symtype.Option{Elem: symtype.BigInt{}}}, Haystack: haystack, Needle: needle, From: from}
	return b.intern(keyf("seq.indexof:%d:%d:%d", haystack.ID(), needle.ID(), from.ID()), n), nil
}

func SeqIndexOfNode(haystack, needle, from Node) (Node, error) {
	return Default.SeqIndexOfNode(haystack, needle, from)
}

// SeqSlice extracts length elements starting at offset; out-of-range
// produces the empty sequence.
type SeqSlice struct {
	base
	Seq, Offset, Length Node
}

func (n *SeqSlice) String() string {
	return "seq.slice(" + n.Seq.String() + ", " + n.Offset.String() + ", " + n.Length.String() + ")"
}

func (b *Builder) SeqSliceNode(s, offset, length Node) (Node, error) {
	if !isSeqLike(s.Type()) {
		return nil, typeMismatch("Seq.Slice", "Seq", s)
	}
	n := &SeqSlice{base: base{typ: symtype.Seq{Elem: seqElemType(s.Type())}}, Seq: s, Offset: offset, Length: length}
	return b.intern(keyf("seq.slice:%d:%d:%d", s.ID(), offset.ID(), length.ID()), n), nil
}

func SeqSliceNode(s, offset, length Node) (Node, error) { return Default.SeqSliceNode(s, offset, length) }

// SeqReplaceFirst replaces the first occurrence of target in s with replacement.
type SeqReplaceFirst struct {
	base
	Seq, Target, Replacement Node
}

func (n *SeqReplaceFirst) String() string {
	return "seq.replacefirst(" + n.Seq.String() + ", " + n.Target.String() + ", " + n.Replacement.String() + ")"
}

func (b *Builder) SeqReplaceFirstNode(s, target, replacement Node) (Node, error) {
	if !isSeqLike(s.Type()) {
		return nil, typeMismatch("Seq.ReplaceFirst", "Seq", s)
	}
	n := &SeqReplaceFirst{base: base{typ: symtype.Seq{Elem: seqElemType(s.Type())}}, Seq: s, Target: target, Replacement: replacement}
	return b.intern(keyf("seq.replacefirst:%d:%d:%d", s.ID(), target.ID(), replacement.ID()), n), nil
}

func SeqReplaceFirstNode(s, target, replacement Node) (Node, error) {
	return Default.SeqReplaceFirstNode(s, target, replacement)
}

// SeqMatchesRegex tests whether s (a Seq<Char>/String) matches r.
type SeqMatchesRegex struct {
	base
	Seq   Node
	Regex *regexast.Regex
}

func (n *SeqMatchesRegex) String() string { return "seq.matches(" + n.Seq.String() + ", " + n.Regex.String() + ")" }

func (b *Builder) SeqMatchesRegexNode(s Node, r *regexast.Regex) (Node, error) {
	elem := seqElemType(s.Type())
	if !isSeqLike(s.Type()) || elem.Kind() != symtype.KindChar {
		return nil, typeMismatch("Seq.MatchesRegex", "Seq<Char>", s)
	}
	n := &SeqMatchesRegex{base: base{typ: symtype.Bool{}}, Seq: s, Regex: r}
	return b.intern(keyf("seq.matches:%d:%p", s.ID(), r), n), nil
}

func SeqMatchesRegexNode(s Node, r *regexast.Regex) (Node, error) { return Default.SeqMatchesRegexNode(s, r) }
