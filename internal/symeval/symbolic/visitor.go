package symbolic

import (
	"github.com/symexlang/symex/internal/symerr"
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
)

var _ symexpr.Visitor[*frame, result] = interpreter{}

func (it interpreter) VisitBoolConst(n *symexpr.BoolConst, f *frame) result     { return ok(n) }
func (it interpreter) VisitBitvecConst(n *symexpr.BitvecConst, f *frame) result { return ok(n) }
func (it interpreter) VisitBigIntConst(n *symexpr.BigIntConst, f *frame) result { return ok(n) }
func (it interpreter) VisitRealConst(n *symexpr.RealConst, f *frame) result     { return ok(n) }
func (it interpreter) VisitCharConst(n *symexpr.CharConst, f *frame) result     { return ok(n) }
func (it interpreter) VisitStringConst(n *symexpr.StringConst, f *frame) result { return ok(n) }
func (it interpreter) VisitArbitrary(n *symexpr.Arbitrary, f *frame) result     { return ok(n) }

func (it interpreter) VisitArgument(n *symexpr.Argument, f *frame) result {
	bound, found := f.args[n.ArgID]
	if !found {
		return fail(symerr.NewInvariantViolation("symbolic lower", "unbound argument "+n.Name))
	}
	return ok(bound)
}

func (it interpreter) VisitLogicAnd(n *symexpr.LogicAnd, f *frame) result {
	args, changed, err := it.lowerMany(n.Args, f)
	if err != nil {
		return fail(err)
	}
	if !changed {
		return ok(n)
	}
	v, err := it.b.And(args...)
	return result{v: v, err: err}
}

func (it interpreter) VisitLogicOr(n *symexpr.LogicOr, f *frame) result {
	args, changed, err := it.lowerMany(n.Args, f)
	if err != nil {
		return fail(err)
	}
	if !changed {
		return ok(n)
	}
	v, err := it.b.Or(args...)
	return result{v: v, err: err}
}

func (it interpreter) VisitLogicNot(n *symexpr.LogicNot, f *frame) result {
	x := it.lower(n.X, f)
	if x.err != nil {
		return fail(x.err)
	}
	if x.v == n.X {
		return ok(n)
	}
	v, err := it.b.Not(x.v)
	return result{v: v, err: err}
}

func (it interpreter) VisitIff(n *symexpr.Iff, f *frame) result {
	lhs, rhs, changed, err := it.lowerPair(n.Lhs, n.Rhs, f)
	if err != nil {
		return fail(err)
	}
	if !changed {
		return ok(n)
	}
	v, err := it.b.IffNode(lhs, rhs)
	return result{v: v, err: err}
}

func (it interpreter) VisitIf(n *symexpr.If, f *frame) result {
	guard := it.lower(n.Guard, f)
	if guard.err != nil {
		return fail(guard.err)
	}
	then := it.lower(n.Then, f)
	if then.err != nil {
		return fail(then.err)
	}
	els := it.lower(n.Else, f)
	if els.err != nil {
		return fail(els.err)
	}
	if guard.v == n.Guard && then.v == n.Then && els.v == n.Else {
		return ok(n)
	}
	v, err := it.b.If(guard.v, then.v, els.v)
	return result{v: v, err: err}
}

func (it interpreter) VisitArith(n *symexpr.Arith, f *frame) result {
	lhs, rhs, changed, err := it.lowerPair(n.Lhs, n.Rhs, f)
	if err != nil {
		return fail(err)
	}
	if !changed {
		return ok(n)
	}
	var v symexpr.Node
	switch n.Op {
	case symexpr.OpAdd:
		v, err = it.b.Add(lhs, rhs)
	case symexpr.OpSub:
		v, err = it.b.Sub(lhs, rhs)
	default:
		v, err = it.b.Mul(lhs, rhs)
	}
	return result{v: v, err: err}
}

func (it interpreter) VisitBitwise(n *symexpr.Bitwise, f *frame) result {
	lhs, rhs, changed, err := it.lowerPair(n.Lhs, n.Rhs, f)
	if err != nil {
		return fail(err)
	}
	if !changed {
		return ok(n)
	}
	var v symexpr.Node
	switch n.Op {
	case symexpr.OpBitAnd:
		v, err = it.b.BitAnd(lhs, rhs)
	case symexpr.OpBitOr:
		v, err = it.b.BitOr(lhs, rhs)
	case symexpr.OpBitXor:
		v, err = it.b.BitXor(lhs, rhs)
	case symexpr.OpBitMax:
		v, err = it.b.BitMax(lhs, rhs)
	default:
		v, err = it.b.BitMin(lhs, rhs)
	}
	return result{v: v, err: err}
}

func (it interpreter) VisitBitNot(n *symexpr.BitNot, f *frame) result {
	x := it.lower(n.X, f)
	if x.err != nil {
		return fail(x.err)
	}
	if x.v == n.X {
		return ok(n)
	}
	v, err := it.b.BitNot(x.v)
	return result{v: v, err: err}
}

func (it interpreter) VisitCast(n *symexpr.Cast, f *frame) result {
	x := it.lower(n.X, f)
	if x.err != nil {
		return fail(x.err)
	}
	if x.v == n.X {
		return ok(n)
	}
	v, err := it.b.Cast(x.v, n.Type().(symtype.Bitvec))
	return result{v: v, err: err}
}

func (it interpreter) VisitCompare(n *symexpr.Compare, f *frame) result {
	lhs, rhs, changed, err := it.lowerPair(n.Lhs, n.Rhs, f)
	if err != nil {
		return fail(err)
	}
	if !changed {
		return ok(n)
	}
	var v symexpr.Node
	switch n.Op {
	case symexpr.OpEq:
		v, err = it.b.Eq(lhs, rhs)
	case symexpr.OpLt:
		v, err = it.b.Lt(lhs, rhs)
	case symexpr.OpLeq:
		v, err = it.b.Leq(lhs, rhs)
	case symexpr.OpGt:
		v, err = it.b.Gt(lhs, rhs)
	default:
		v, err = it.b.Geq(lhs, rhs)
	}
	return result{v: v, err: err}
}

func (it interpreter) VisitCreateObject(n *symexpr.CreateObject, f *frame) result {
	values, changed, err := it.lowerMany(n.Values, f)
	if err != nil {
		return fail(err)
	}
	if !changed {
		return ok(n)
	}
	fields := make(map[string]symexpr.Node, len(n.Rec.Fields))
	for i, fd := range n.Rec.Fields {
		fields[fd.Name] = values[i]
	}
	v, err := it.b.NewObject(n.Rec, fields)
	return result{v: v, err: err}
}

func (it interpreter) VisitGetField(n *symexpr.GetField, f *frame) result {
	obj := it.lower(n.Obj, f)
	if obj.err != nil {
		return fail(obj.err)
	}
	if obj.v == n.Obj {
		return ok(n)
	}
	v, err := it.b.GetFieldNode(obj.v, n.Field)
	return result{v: v, err: err}
}

func (it interpreter) VisitWithField(n *symexpr.WithField, f *frame) result {
	obj, value, changed, err := it.lowerPair(n.Obj, n.Value, f)
	if err != nil {
		return fail(err)
	}
	if !changed {
		return ok(n)
	}
	v, err := it.b.WithFieldNode(obj, n.Field, value)
	return result{v: v, err: err}
}

// VisitFSeqEmpty and VisitFSeqAddFront are unreachable: every FSeqEmpty
// and FSeqAddFront node is FSeq-typed, so it.lower always intercepts
// them via lowerFSeq before a Visit dispatch could ever reach here.
func (it interpreter) VisitFSeqEmpty(n *symexpr.FSeqEmpty, f *frame) result {
	panic("symbolic: VisitFSeqEmpty: unreachable, FSeq-typed nodes never reach Visit")
}

func (it interpreter) VisitFSeqAddFront(n *symexpr.FSeqAddFront, f *frame) result {
	panic("symbolic: VisitFSeqAddFront: unreachable, FSeq-typed nodes never reach Visit")
}

// VisitFSeqCase handles a Case whose own result type isn't FSeq (an
// FSeq-typed Case is instead handled by lowerFSeq's own *FSeqCase arm,
// which reuses lowerFSeqCaseGeneric too).
func (it interpreter) VisitFSeqCase(n *symexpr.FSeqCase, f *frame) result {
	v, err := it.lowerFSeqCaseGeneric(n, f)
	return result{v: v, err: err}
}

func (it interpreter) VisitSeqEmpty(n *symexpr.SeqEmpty, f *frame) result { return ok(n) }

func (it interpreter) VisitSeqUnit(n *symexpr.SeqUnit, f *frame) result {
	elem := it.lower(n.Elem, f)
	if elem.err != nil {
		return fail(elem.err)
	}
	if elem.v == n.Elem {
		return ok(n)
	}
	return ok(it.b.SeqUnitNode(elem.v))
}

func (it interpreter) VisitSeqConcat(n *symexpr.SeqConcat, f *frame) result {
	lhs, rhs, changed, err := it.lowerPair(n.Lhs, n.Rhs, f)
	if err != nil {
		return fail(err)
	}
	if !changed {
		return ok(n)
	}
	v, err := it.b.SeqConcatNode(lhs, rhs)
	return result{v: v, err: err}
}

func (it interpreter) VisitSeqLength(n *symexpr.SeqLength, f *frame) result {
	s := it.lower(n.Seq, f)
	if s.err != nil {
		return fail(s.err)
	}
	if s.v == n.Seq {
		return ok(n)
	}
	v, err := it.b.SeqLengthNode(s.v)
	return result{v: v, err: err}
}

func (it interpreter) VisitSeqAt(n *symexpr.SeqAt, f *frame) result {
	s, idx, changed, err := it.lowerPair(n.Seq, n.Index, f)
	if err != nil {
		return fail(err)
	}
	if !changed {
		return ok(n)
	}
	v, err := it.b.SeqAtNode(s, idx)
	return result{v: v, err: err}
}

func (it interpreter) VisitSeqNth(n *symexpr.SeqNth, f *frame) result {
	s, idx, changed, err := it.lowerPair(n.Seq, n.Index, f)
	if err != nil {
		return fail(err)
	}
	if !changed {
		return ok(n)
	}
	v, err := it.b.SeqNthNode(s, idx)
	return result{v: v, err: err}
}

func (it interpreter) VisitSeqContains(n *symexpr.SeqContains, f *frame) result {
	h, needle, changed, err := it.lowerPair(n.Haystack, n.Needle, f)
	if err != nil {
		return fail(err)
	}
	if !changed {
		return ok(n)
	}
	v, err := it.b.SeqContainsNode(n.Mode, h, needle)
	return result{v: v, err: err}
}

func (it interpreter) VisitSeqIndexOf(n *symexpr.SeqIndexOf, f *frame) result {
	h := it.lower(n.Haystack, f)
	if h.err != nil {
		return fail(h.err)
	}
	needle := it.lower(n.Needle, f)
	if needle.err != nil {
		return fail(needle.err)
	}
	from := it.lower(n.From, f)
	if from.err != nil {
		return fail(from.err)
	}
	if h.v == n.Haystack && needle.v == n.Needle && from.v == n.From {
		return ok(n)
	}
	v, err := it.b.SeqIndexOfNode(h.v, needle.v, from.v)
	return result{v: v, err: err}
}

func (it interpreter) VisitSeqSlice(n *symexpr.SeqSlice, f *frame) result {
	s := it.lower(n.Seq, f)
	if s.err != nil {
		return fail(s.err)
	}
	offset := it.lower(n.Offset, f)
	if offset.err != nil {
		return fail(offset.err)
	}
	length := it.lower(n.Length, f)
	if length.err != nil {
		return fail(length.err)
	}
	if s.v == n.Seq && offset.v == n.Offset && length.v == n.Length {
		return ok(n)
	}
	v, err := it.b.SeqSliceNode(s.v, offset.v, length.v)
	return result{v: v, err: err}
}

func (it interpreter) VisitSeqReplaceFirst(n *symexpr.SeqReplaceFirst, f *frame) result {
	s := it.lower(n.Seq, f)
	if s.err != nil {
		return fail(s.err)
	}
	target := it.lower(n.Target, f)
	if target.err != nil {
		return fail(target.err)
	}
	replacement := it.lower(n.Replacement, f)
	if replacement.err != nil {
		return fail(replacement.err)
	}
	if s.v == n.Seq && target.v == n.Target && replacement.v == n.Replacement {
		return ok(n)
	}
	v, err := it.b.SeqReplaceFirstNode(s.v, target.v, replacement.v)
	return result{v: v, err: err}
}

func (it interpreter) VisitSeqMatchesRegex(n *symexpr.SeqMatchesRegex, f *frame) result {
	s := it.lower(n.Seq, f)
	if s.err != nil {
		return fail(s.err)
	}
	if s.v == n.Seq {
		return ok(n)
	}
	v, err := it.b.SeqMatchesRegexNode(s.v, n.Regex)
	return result{v: v, err: err}
}

func (it interpreter) VisitMapEmpty(n *symexpr.MapEmpty, f *frame) result { return ok(n) }

func (it interpreter) VisitMapSet(n *symexpr.MapSet, f *frame) result {
	m := it.lower(n.Map, f)
	if m.err != nil {
		return fail(m.err)
	}
	key := it.lower(n.Key, f)
	if key.err != nil {
		return fail(key.err)
	}
	value := it.lower(n.Value, f)
	if value.err != nil {
		return fail(value.err)
	}
	if m.v == n.Map && key.v == n.Key && value.v == n.Value {
		return ok(n)
	}
	v, err := it.b.MapSetNode(m.v, key.v, value.v)
	return result{v: v, err: err}
}

func (it interpreter) VisitMapDelete(n *symexpr.MapDelete, f *frame) result {
	m, key, changed, err := it.lowerPair(n.Map, n.Key, f)
	if err != nil {
		return fail(err)
	}
	if !changed {
		return ok(n)
	}
	v, err := it.b.MapDeleteNode(m, key)
	return result{v: v, err: err}
}

func (it interpreter) VisitMapGet(n *symexpr.MapGet, f *frame) result {
	m, key, changed, err := it.lowerPair(n.Map, n.Key, f)
	if err != nil {
		return fail(err)
	}
	if !changed {
		return ok(n)
	}
	v, err := it.b.MapGetNode(m, key)
	return result{v: v, err: err}
}

func (it interpreter) VisitMapCombine(n *symexpr.MapCombine, f *frame) result {
	lhs, rhs, changed, err := it.lowerPair(n.Lhs, n.Rhs, f)
	if err != nil {
		return fail(err)
	}
	if !changed {
		return ok(n)
	}
	v, err := it.b.MapCombineNode(n.Mode, lhs, rhs)
	return result{v: v, err: err}
}

func (it interpreter) VisitConstMapLiteral(n *symexpr.ConstMapLiteral, f *frame) result {
	changed := false
	newValues := make(map[symtype.ConstKey]symexpr.Node, len(n.Values))
	for k, c := range n.Values {
		r := it.lower(c, f)
		if r.err != nil {
			return fail(r.err)
		}
		newValues[k] = r.v
		if r.v != c {
			changed = true
		}
	}
	if !changed {
		return ok(n)
	}
	v, err := it.b.ConstMapLiteralNode(n.Typ, newValues)
	return result{v: v, err: err}
}

func (it interpreter) VisitConstMapWith(n *symexpr.ConstMapWith, f *frame) result {
	m := it.lower(n.Map, f)
	if m.err != nil {
		return fail(m.err)
	}
	value := it.lower(n.Value, f)
	if value.err != nil {
		return fail(value.err)
	}
	if m.v == n.Map && value.v == n.Value {
		return ok(n)
	}
	v, err := it.b.ConstMapWithNode(m.v, n.Key, value.v)
	return result{v: v, err: err}
}

func (it interpreter) VisitConstMapGet(n *symexpr.ConstMapGet, f *frame) result {
	m := it.lower(n.Map, f)
	if m.err != nil {
		return fail(m.err)
	}
	if m.v == n.Map {
		return ok(n)
	}
	v, err := it.b.ConstMapGetNode(m.v, n.Key)
	return result{v: v, err: err}
}

func (it interpreter) VisitOptionNone(n *symexpr.OptionNone, f *frame) result { return ok(n) }

func (it interpreter) VisitOptionSome(n *symexpr.OptionSome, f *frame) result {
	value := it.lower(n.Value, f)
	if value.err != nil {
		return fail(value.err)
	}
	if value.v == n.Value {
		return ok(n)
	}
	return ok(it.b.OptionSomeNode(value.v))
}

func (it interpreter) VisitOptionHasValue(n *symexpr.OptionHasValue, f *frame) result {
	opt := it.lower(n.Opt, f)
	if opt.err != nil {
		return fail(opt.err)
	}
	if opt.v == n.Opt {
		return ok(n)
	}
	v, err := it.b.OptionHasValueNode(opt.v)
	return result{v: v, err: err}
}

func (it interpreter) VisitOptionValue(n *symexpr.OptionValue, f *frame) result {
	opt := it.lower(n.Opt, f)
	if opt.err != nil {
		return fail(opt.err)
	}
	if opt.v == n.Opt {
		return ok(n)
	}
	v, err := it.b.OptionValueNode(opt.v)
	return result{v: v, err: err}
}

func (it interpreter) lowerPair(a, b symexpr.Node, f *frame) (symexpr.Node, symexpr.Node, bool, error) {
	ra := it.lower(a, f)
	if ra.err != nil {
		return nil, nil, false, ra.err
	}
	rb := it.lower(b, f)
	if rb.err != nil {
		return nil, nil, false, rb.err
	}
	return ra.v, rb.v, ra.v != a || rb.v != b, nil
}
