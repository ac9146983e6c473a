package symexpr

import "github.com/symexlang/symex/internal/symtype"

// FSeqEmpty is the empty finite sequence.
type FSeqEmpty struct {
	base
}

func (n *FSeqEmpty) String() string { return "fseq.empty<" + n.typ.(symtype.FSeq).Elem.String() + ">" }

func (b *Builder) FSeqEmptyNode(elem symtype.Type) Node {
	n := &FSeqEmpty{base: base{typ: symtype.FSeq{Elem: elem}}}
	return b.intern(keyf("fseq.empty:%s", elem.String()), n)
}

func FSeqEmptyNode(elem symtype.Type) Node { return Default.FSeqEmptyNode(elem) }

// FSeqAddFront prepends an Option<T> head onto an FSeq<T> tail.
type FSeqAddFront struct {
	base
	Head Node // Option<T>
	Tail Node // FSeq<T>
}

func (n *FSeqAddFront) String() string { return "addfront(" + n.Head.String() + ", " + n.Tail.String() + ")" }

func (b *Builder) FSeqAddFrontNode(head, tail Node) (Node, error) {
	fs, ok := tail.Type().(symtype.FSeq)
	if !ok {
		return nil, typeMismatch("FSeq.AddFront", "FSeq", tail)
	}
	opt, ok := head.Type().(symtype.Option)
	if !ok || opt.Elem.String() != fs.Elem.String() {
		return nil, typeMismatch("FSeq.AddFront", "Option<"+fs.Elem.String()+">", head)
	}
	n := &FSeqAddFront{base: base{typ: fs}, Head: head, Tail: tail}
	return b.intern(keyf("fseq.addfront:%d:%d", head.ID(), tail.ID()), n), nil
}

func FSeqAddFrontNode(head, tail Node) (Node, error) { return Default.FSeqAddFrontNode(head, tail) }

// FSeqCase is the eliminator for FSeq: if list is empty, evaluate Empty;
// otherwise bind HeadArgID (Option<T>) and TailArgID (FSeq<T>) and
// evaluate Cons. The cons function is meta-level: HeadArgID/TailArgID are
// argument ids referenced by Argument nodes inside Cons.
type FSeqCase struct {
	base
	List                 Node
	Empty                Node
	HeadArgID, TailArgID uint64
	Cons                 Node
}

func (n *FSeqCase) String() string {
	return "case(" + n.List.String() + ", empty=" + n.Empty.String() + ", cons=" + n.Cons.String() + ")"
}

// NewFSeqCase builds a Case node. Empty and Cons must share the same result type R.
func (b *Builder) NewFSeqCase(list, empty Node, headArgID, tailArgID uint64, cons Node) (Node, error) {
	if _, ok := list.Type().(symtype.FSeq); !ok {
		return nil, typeMismatch("FSeq.Case", "FSeq", list)
	}
	if empty.Type().String() != cons.Type().String() {
		return nil, typeMismatch("FSeq.Case", empty.Type().String(), cons)
	}
	n := &FSeqCase{
		base:      base{typ: empty.Type()},
		List:      list,
		Empty:     empty,
		HeadArgID: headArgID,
		TailArgID: tailArgID,
		Cons:      cons,
	}
	// Case nodes are never interned across distinct fresh arg-id pairs:
	// they would look structurally different each construction anyway
	// since Cons addresses HeadArgID/TailArgID, which are themselves fresh.
	n.setID(b.freshID())
	return n, nil
}

func NewFSeqCase(list, empty Node, headArgID, tailArgID uint64, cons Node) (Node, error) {
	return Default.NewFSeqCase(list, empty, headArgID, tailArgID, cons)
}
