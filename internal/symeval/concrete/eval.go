package concrete

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/symexlang/symex/internal/regexast"
	"github.com/symexlang/symex/internal/symerr"
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
	"github.com/symexlang/symex/internal/symvisit"
)

// frame carries the per-evaluation context: the top-level Assignment for
// Arbitrary holes, plus the Argument bindings introduced by any enclosing
// FSeq.Case's meta-level binders. envKey is a canonical fingerprint of
// args, recomputed whenever a binder is added; it is the "env" half of
// the (nodeID, env) memoisation key every eval call consults. Two frames
// with different args can never collide in cache, so a Case's cons body
// gets its own memo slots rather than inheriting its parent's.
type frame struct {
	asg    *Assignment
	args   map[uint64]Value
	envKey string
	cache  *symvisit.Cache[string, result]
}

func (f *frame) withArg(argID uint64, v Value) *frame {
	next := &frame{asg: f.asg, cache: f.cache, args: make(map[uint64]Value, len(f.args)+1)}
	for k, val := range f.args {
		next.args[k] = val
	}
	next.args[argID] = v
	next.envKey = fingerprint(next.args)
	return next
}

// fingerprint renders args as a comparable string key, sorted by
// argument id so two structurally identical binder sets always produce
// the same key regardless of insertion order.
func fingerprint(args map[uint64]Value) string {
	if len(args) == 0 {
		return ""
	}
	ids := make([]uint64, 0, len(args))
	for id := range args {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var b strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&b, "%d=%s;", id, CanonicalKey(args[id]))
	}
	return b.String()
}

type result struct {
	v   Value
	err error
}

func ok(v Value) result       { return result{v: v} }
func fail(err error) result   { return result{err: err} }
func (r result) unwrap() (Value, error) { return r.v, r.err }

type interpreter struct{}

// Eval concretely interprets n under asg, the full binding of every
// Arbitrary hole n transitively references. Shared sub-DAGs reachable
// more than once from n are visited once per distinct binder
// environment, not once per reference, via the per-call memo cache in
// frame.
func Eval(n symexpr.Node, asg *Assignment) (Value, error) {
	f := &frame{asg: asg, args: map[uint64]Value{}, cache: symvisit.NewCache[string, result]()}
	return interpreter{}.eval(n, f).unwrap()
}

func (it interpreter) eval(n symexpr.Node, f *frame) result {
	if v, ok := f.cache.Get(n.ID(), f.envKey); ok {
		return v
	}
	r := symexpr.Visit(n, f, it)
	f.cache.Set(n.ID(), f.envKey, r)
	return r
}

func (it interpreter) VisitBoolConst(n *symexpr.BoolConst, f *frame) result { return ok(VBool{V: n.Value}) }

func (it interpreter) VisitBitvecConst(n *symexpr.BitvecConst, f *frame) result {
	bv := n.Bitvec()
	return ok(VBitvec{Width: bv.Width, Signed: bv.Signed, V: n.Value})
}

func (it interpreter) VisitBigIntConst(n *symexpr.BigIntConst, f *frame) result { return ok(VBigInt{V: n.Value}) }
func (it interpreter) VisitRealConst(n *symexpr.RealConst, f *frame) result     { return ok(VReal{Num: n.Num, Den: n.Den}) }
func (it interpreter) VisitCharConst(n *symexpr.CharConst, f *frame) result     { return ok(VChar{V: n.Value}) }
func (it interpreter) VisitStringConst(n *symexpr.StringConst, f *frame) result { return ok(VString{V: n.Value}) }

func (it interpreter) VisitArbitrary(n *symexpr.Arbitrary, f *frame) result {
	v, bound := f.asg.Lookup(n)
	if !bound {
		return fail(symerr.NewInvariantViolation("concrete eval", fmt.Sprintf("unbound arbitrary hole %q", n.Name)))
	}
	return ok(v)
}

func (it interpreter) VisitArgument(n *symexpr.Argument, f *frame) result {
	v, bound := f.args[n.ArgID]
	if !bound {
		return fail(symerr.NewInvariantViolation("concrete eval", fmt.Sprintf("unbound argument #%d", n.ArgID)))
	}
	return ok(v)
}

func (it interpreter) VisitLogicAnd(n *symexpr.LogicAnd, f *frame) result {
	for _, a := range n.Args {
		v, err := it.eval(a, f).unwrap()
		if err != nil {
			return fail(err)
		}
		if !v.(VBool).V {
			return ok(VBool{V: false})
		}
	}
	return ok(VBool{V: true})
}

func (it interpreter) VisitLogicOr(n *symexpr.LogicOr, f *frame) result {
	for _, a := range n.Args {
		v, err := it.eval(a, f).unwrap()
		if err != nil {
			return fail(err)
		}
		if v.(VBool).V {
			return ok(VBool{V: true})
		}
	}
	return ok(VBool{V: false})
}

func (it interpreter) VisitLogicNot(n *symexpr.LogicNot, f *frame) result {
	v, err := it.eval(n.X, f).unwrap()
	if err != nil {
		return fail(err)
	}
	return ok(VBool{V: !v.(VBool).V})
}

func (it interpreter) VisitIff(n *symexpr.Iff, f *frame) result {
	l, err := it.eval(n.Lhs, f).unwrap()
	if err != nil {
		return fail(err)
	}
	r, err := it.eval(n.Rhs, f).unwrap()
	if err != nil {
		return fail(err)
	}
	return ok(VBool{V: l.(VBool).V == r.(VBool).V})
}

func (it interpreter) VisitIf(n *symexpr.If, f *frame) result {
	g, err := it.eval(n.Guard, f).unwrap()
	if err != nil {
		return fail(err)
	}
	if g.(VBool).V {
		return it.eval(n.Then, f)
	}
	return it.eval(n.Else, f)
}

func (it interpreter) VisitArith(n *symexpr.Arith, f *frame) result {
	l, err := it.eval(n.Lhs, f).unwrap()
	if err != nil {
		return fail(err)
	}
	r, err := it.eval(n.Rhs, f).unwrap()
	if err != nil {
		return fail(err)
	}
	switch lv := l.(type) {
	case VBitvec:
		rv := r.(VBitvec)
		var v *big.Int
		switch n.Op {
		case symexpr.OpAdd:
			v = new(big.Int).Add(lv.V, rv.V)
		case symexpr.OpSub:
			v = new(big.Int).Sub(lv.V, rv.V)
		case symexpr.OpMul:
			v = new(big.Int).Mul(lv.V, rv.V)
		}
		return ok(VBitvec{Width: lv.Width, Signed: lv.Signed, V: symexpr.NormalizeBitvec(lv.Width, lv.Signed, v)})
	case VBigInt:
		rv := r.(VBigInt)
		var v *big.Int
		switch n.Op {
		case symexpr.OpAdd:
			v = new(big.Int).Add(lv.V, rv.V)
		case symexpr.OpSub:
			v = new(big.Int).Sub(lv.V, rv.V)
		case symexpr.OpMul:
			v = new(big.Int).Mul(lv.V, rv.V)
		}
		return ok(VBigInt{V: v})
	case VReal:
		rv := r.(VReal)
		var num, den *big.Int
		switch n.Op {
		case symexpr.OpAdd:
			num = new(big.Int).Add(new(big.Int).Mul(lv.Num, rv.Den), new(big.Int).Mul(rv.Num, lv.Den))
			den = new(big.Int).Mul(lv.Den, rv.Den)
		case symexpr.OpSub:
			num = new(big.Int).Sub(new(big.Int).Mul(lv.Num, rv.Den), new(big.Int).Mul(rv.Num, lv.Den))
			den = new(big.Int).Mul(lv.Den, rv.Den)
		case symexpr.OpMul:
			num = new(big.Int).Mul(lv.Num, rv.Num)
			den = new(big.Int).Mul(lv.Den, rv.Den)
		}
		return ok(reduceReal(num, den))
	default:
		return fail(symerr.NewInvariantViolation("concrete eval", "Arith on a non-numeric value"))
	}
}

func reduceReal(num, den *big.Int) VReal {
	if den.Sign() < 0 {
		num = new(big.Int).Neg(num)
		den = new(big.Int).Neg(den)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), new(big.Int).Abs(den))
	if g.Sign() == 0 {
		return VReal{Num: num, Den: den}
	}
	return VReal{Num: new(big.Int).Div(num, g), Den: new(big.Int).Div(den, g)}
}

func (it interpreter) VisitBitwise(n *symexpr.Bitwise, f *frame) result {
	l, err := it.eval(n.Lhs, f).unwrap()
	if err != nil {
		return fail(err)
	}
	r, err := it.eval(n.Rhs, f).unwrap()
	if err != nil {
		return fail(err)
	}
	lv, rv := l.(VBitvec), r.(VBitvec)
	var v *big.Int
	switch n.Op {
	case symexpr.OpBitAnd:
		v = new(big.Int).And(lv.V, rv.V)
	case symexpr.OpBitOr:
		v = new(big.Int).Or(lv.V, rv.V)
	case symexpr.OpBitXor:
		v = new(big.Int).Xor(lv.V, rv.V)
	case symexpr.OpBitMax:
		if lv.V.Cmp(rv.V) >= 0 {
			v = lv.V
		} else {
			v = rv.V
		}
	case symexpr.OpBitMin:
		if lv.V.Cmp(rv.V) <= 0 {
			v = lv.V
		} else {
			v = rv.V
		}
	}
	return ok(VBitvec{Width: lv.Width, Signed: lv.Signed, V: symexpr.NormalizeBitvec(lv.Width, lv.Signed, v)})
}

func (it interpreter) VisitBitNot(n *symexpr.BitNot, f *frame) result {
	x, err := it.eval(n.X, f).unwrap()
	if err != nil {
		return fail(err)
	}
	bv := x.(VBitvec)
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bv.Width)), big.NewInt(1))
	v := new(big.Int).Xor(bv.V, mask)
	return ok(VBitvec{Width: bv.Width, Signed: bv.Signed, V: symexpr.NormalizeBitvec(bv.Width, bv.Signed, v)})
}

func (it interpreter) VisitCast(n *symexpr.Cast, f *frame) result {
	x, err := it.eval(n.X, f).unwrap()
	if err != nil {
		return fail(err)
	}
	to := n.Type().(symtype.Bitvec)
	bv := x.(VBitvec)
	return ok(VBitvec{Width: to.Width, Signed: to.Signed, V: symexpr.NormalizeBitvec(to.Width, to.Signed, bv.V)})
}

func (it interpreter) VisitCompare(n *symexpr.Compare, f *frame) result {
	l, err := it.eval(n.Lhs, f).unwrap()
	if err != nil {
		return fail(err)
	}
	r, err := it.eval(n.Rhs, f).unwrap()
	if err != nil {
		return fail(err)
	}
	if n.Op == symexpr.OpEq {
		return ok(VBool{V: CanonicalKey(l) == CanonicalKey(r)})
	}
	cmp, err := numericCompare(l, r)
	if err != nil {
		return fail(err)
	}
	var res bool
	switch n.Op {
	case symexpr.OpLt:
		res = cmp < 0
	case symexpr.OpLeq:
		res = cmp <= 0
	case symexpr.OpGt:
		res = cmp > 0
	case symexpr.OpGeq:
		res = cmp >= 0
	}
	return ok(VBool{V: res})
}

func numericCompare(l, r Value) (int, error) {
	switch lv := l.(type) {
	case VBitvec:
		return lv.V.Cmp(r.(VBitvec).V), nil
	case VBigInt:
		return lv.V.Cmp(r.(VBigInt).V), nil
	case VChar:
		rv := r.(VChar)
		switch {
		case lv.V < rv.V:
			return -1, nil
		case lv.V > rv.V:
			return 1, nil
		default:
			return 0, nil
		}
	case VReal:
		rv := r.(VReal)
		lhsN := new(big.Int).Mul(lv.Num, rv.Den)
		rhsN := new(big.Int).Mul(rv.Num, lv.Den)
		return lhsN.Cmp(rhsN), nil
	default:
		return 0, symerr.NewInvariantViolation("concrete eval", "ordered comparison on a non-orderable value")
	}
}

func (it interpreter) VisitCreateObject(n *symexpr.CreateObject, f *frame) result {
	fields := make(map[string]Value, len(n.Rec.Fields))
	for i, fd := range n.Rec.Fields {
		v, err := it.eval(n.Values[i], f).unwrap()
		if err != nil {
			return fail(err)
		}
		fields[fd.Name] = v
	}
	return ok(VRecord{Rec: n.Rec, Fields: fields})
}

func (it interpreter) VisitGetField(n *symexpr.GetField, f *frame) result {
	obj, err := it.eval(n.Obj, f).unwrap()
	if err != nil {
		return fail(err)
	}
	return ok(obj.(VRecord).Fields[n.Field])
}

func (it interpreter) VisitWithField(n *symexpr.WithField, f *frame) result {
	obj, err := it.eval(n.Obj, f).unwrap()
	if err != nil {
		return fail(err)
	}
	val, err := it.eval(n.Value, f).unwrap()
	if err != nil {
		return fail(err)
	}
	rec := obj.(VRecord)
	fields := make(map[string]Value, len(rec.Fields))
	for k, v := range rec.Fields {
		fields[k] = v
	}
	fields[n.Field] = val
	return ok(VRecord{Rec: rec.Rec, Fields: fields})
}

func (it interpreter) VisitFSeqEmpty(n *symexpr.FSeqEmpty, f *frame) result {
	return ok(VFSeq{Elem: n.Type().(symtype.FSeq).Elem})
}

func (it interpreter) VisitFSeqAddFront(n *symexpr.FSeqAddFront, f *frame) result {
	head, err := it.eval(n.Head, f).unwrap()
	if err != nil {
		return fail(err)
	}
	tail, err := it.eval(n.Tail, f).unwrap()
	if err != nil {
		return fail(err)
	}
	tailSeq := tail.(VFSeq)
	items := make([]VOption, 0, len(tailSeq.Items)+1)
	items = append(items, head.(VOption))
	items = append(items, tailSeq.Items...)
	return ok(VFSeq{Elem: tailSeq.Elem, Items: items})
}

func (it interpreter) VisitFSeqCase(n *symexpr.FSeqCase, f *frame) result {
	list, err := it.eval(n.List, f).unwrap()
	if err != nil {
		return fail(err)
	}
	fseq := list.(VFSeq)
	// Absent cells are skipped: Cons sees the first present cell as its
	// head and everything after that cell as its tail.
	i := 0
	for i < len(fseq.Items) && !fseq.Items[i].HasValue {
		i++
	}
	if i == len(fseq.Items) {
		return it.eval(n.Empty, f)
	}
	next := f.withArg(n.HeadArgID, fseq.Items[i])
	next = next.withArg(n.TailArgID, VFSeq{Elem: fseq.Elem, Items: fseq.Items[i+1:]})
	return it.eval(n.Cons, next)
}

func seqItems(v Value) []Value {
	switch t := v.(type) {
	case VString:
		rs := []rune(t.V)
		items := make([]Value, len(rs))
		for i, r := range rs {
			items[i] = VChar{V: r}
		}
		return items
	case VSeq:
		return t.Items
	default:
		return nil
	}
}

func (it interpreter) VisitSeqEmpty(n *symexpr.SeqEmpty, f *frame) result {
	return ok(VSeq{Elem: n.Type().(symtype.Seq).Elem})
}

func (it interpreter) VisitSeqUnit(n *symexpr.SeqUnit, f *frame) result {
	v, err := it.eval(n.Elem, f).unwrap()
	if err != nil {
		return fail(err)
	}
	return ok(VSeq{Elem: n.Elem.Type(), Items: []Value{v}})
}

func (it interpreter) VisitSeqConcat(n *symexpr.SeqConcat, f *frame) result {
	l, err := it.eval(n.Lhs, f).unwrap()
	if err != nil {
		return fail(err)
	}
	r, err := it.eval(n.Rhs, f).unwrap()
	if err != nil {
		return fail(err)
	}
	items := append(append([]Value{}, seqItems(l)...), seqItems(r)...)
	return ok(VSeq{Elem: n.Type().(symtype.Seq).Elem, Items: items})
}

func (it interpreter) VisitSeqLength(n *symexpr.SeqLength, f *frame) result {
	s, err := it.eval(n.Seq, f).unwrap()
	if err != nil {
		return fail(err)
	}
	return ok(VBigInt{V: big.NewInt(int64(len(seqItems(s))))})
}

func (it interpreter) VisitSeqAt(n *symexpr.SeqAt, f *frame) result {
	s, err := it.eval(n.Seq, f).unwrap()
	if err != nil {
		return fail(err)
	}
	idx, err := it.eval(n.Index, f).unwrap()
	if err != nil {
		return fail(err)
	}
	items := seqItems(s)
	elem := n.Type().(symtype.Option).Elem
	i := idx.(VBigInt).V
	if !i.IsInt64() || i.Sign() < 0 || i.Int64() >= int64(len(items)) {
		return ok(VOption{Elem: elem, HasValue: false})
	}
	return ok(VOption{Elem: elem, HasValue: true, Val: items[i.Int64()]})
}

func (it interpreter) VisitSeqNth(n *symexpr.SeqNth, f *frame) result {
	s, err := it.eval(n.Seq, f).unwrap()
	if err != nil {
		return fail(err)
	}
	idx, err := it.eval(n.Index, f).unwrap()
	if err != nil {
		return fail(err)
	}
	items := seqItems(s)
	i := idx.(VBigInt).V.Int64()
	return ok(items[i])
}

func (it interpreter) VisitSeqContains(n *symexpr.SeqContains, f *frame) result {
	h, err := it.eval(n.Haystack, f).unwrap()
	if err != nil {
		return fail(err)
	}
	nd, err := it.eval(n.Needle, f).unwrap()
	if err != nil {
		return fail(err)
	}
	hay, needle := seqItems(h), seqItems(nd)
	var found bool
	switch n.Mode {
	case symexpr.ContainsPrefix:
		found = len(needle) <= len(hay) && sameItems(hay[:len(needle)], needle)
	case symexpr.ContainsSuffix:
		found = len(needle) <= len(hay) && sameItems(hay[len(hay)-len(needle):], needle)
	case symexpr.ContainsInfix:
		found = indexOfItems(hay, needle, 0) >= 0
	}
	return ok(VBool{V: found})
}

func sameItems(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if CanonicalKey(a[i]) != CanonicalKey(b[i]) {
			return false
		}
	}
	return true
}

func indexOfItems(hay, needle []Value, from int) int {
	if len(needle) == 0 {
		if from <= len(hay) {
			return from
		}
		return -1
	}
	for i := from; i+len(needle) <= len(hay); i++ {
		if sameItems(hay[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}

func (it interpreter) VisitSeqIndexOf(n *symexpr.SeqIndexOf, f *frame) result {
	h, err := it.eval(n.Haystack, f).unwrap()
	if err != nil {
		return fail(err)
	}
	nd, err := it.eval(n.Needle, f).unwrap()
	if err != nil {
		return fail(err)
	}
	from, err := it.eval(n.From, f).unwrap()
	if err != nil {
		return fail(err)
	}
	idx := indexOfItems(seqItems(h), seqItems(nd), int(from.(VBigInt).V.Int64()))
	elem := n.Type().(symtype.Option).Elem
	if idx < 0 {
		return ok(VOption{Elem: elem, HasValue: false})
	}
	return ok(VOption{Elem: elem, HasValue: true, Val: VBigInt{V: big.NewInt(int64(idx))}})
}

func (it interpreter) VisitSeqSlice(n *symexpr.SeqSlice, f *frame) result {
	s, err := it.eval(n.Seq, f).unwrap()
	if err != nil {
		return fail(err)
	}
	off, err := it.eval(n.Offset, f).unwrap()
	if err != nil {
		return fail(err)
	}
	length, err := it.eval(n.Length, f).unwrap()
	if err != nil {
		return fail(err)
	}
	items := seqItems(s)
	elem := n.Type().(symtype.Seq).Elem
	o, l := off.(VBigInt).V.Int64(), length.(VBigInt).V.Int64()
	if o < 0 || l < 0 || o > int64(len(items)) {
		return ok(VSeq{Elem: elem})
	}
	end := o + l
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	out := append([]Value{}, items[o:end]...)
	return ok(VSeq{Elem: elem, Items: out})
}

func (it interpreter) VisitSeqReplaceFirst(n *symexpr.SeqReplaceFirst, f *frame) result {
	s, err := it.eval(n.Seq, f).unwrap()
	if err != nil {
		return fail(err)
	}
	target, err := it.eval(n.Target, f).unwrap()
	if err != nil {
		return fail(err)
	}
	repl, err := it.eval(n.Replacement, f).unwrap()
	if err != nil {
		return fail(err)
	}
	items, tgt, rep := seqItems(s), seqItems(target), seqItems(repl)
	elem := n.Type().(symtype.Seq).Elem
	idx := indexOfItems(items, tgt, 0)
	if idx < 0 {
		return ok(VSeq{Elem: elem, Items: append([]Value{}, items...)})
	}
	out := make([]Value, 0, len(items)-len(tgt)+len(rep))
	out = append(out, items[:idx]...)
	out = append(out, rep...)
	out = append(out, items[idx+len(tgt):]...)
	return ok(VSeq{Elem: elem, Items: out})
}

func (it interpreter) VisitSeqMatchesRegex(n *symexpr.SeqMatchesRegex, f *frame) result {
	s, err := it.eval(n.Seq, f).unwrap()
	if err != nil {
		return fail(err)
	}
	items := seqItems(s)
	runes := make([]rune, len(items))
	for i, v := range items {
		runes[i] = v.(VChar).V
	}
	return ok(VBool{V: regexast.Matches(n.Regex, runes)})
}

func mapKeyVal(t symtype.Type) (symtype.Type, symtype.Type, bool) {
	switch m := t.(type) {
	case symtype.Map:
		return m.Key, m.Val, false
	case symtype.Set:
		return m.Elem, symtype.Bool{}, true
	default:
		return nil, nil, false
	}
}

func (it interpreter) VisitMapEmpty(n *symexpr.MapEmpty, f *frame) result {
	key, val, isSet := mapKeyVal(n.Type())
	return ok(VMap{Key: key, Val: val, IsSet: isSet, Entries: map[string]mapEntry{}})
}

func (it interpreter) VisitMapSet(n *symexpr.MapSet, f *frame) result {
	m, err := it.eval(n.Map, f).unwrap()
	if err != nil {
		return fail(err)
	}
	k, err := it.eval(n.Key, f).unwrap()
	if err != nil {
		return fail(err)
	}
	v, err := it.eval(n.Value, f).unwrap()
	if err != nil {
		return fail(err)
	}
	return ok(m.(VMap).With(k, v))
}

func (it interpreter) VisitMapDelete(n *symexpr.MapDelete, f *frame) result {
	m, err := it.eval(n.Map, f).unwrap()
	if err != nil {
		return fail(err)
	}
	k, err := it.eval(n.Key, f).unwrap()
	if err != nil {
		return fail(err)
	}
	return ok(m.(VMap).Without(k))
}

func (it interpreter) VisitMapGet(n *symexpr.MapGet, f *frame) result {
	m, err := it.eval(n.Map, f).unwrap()
	if err != nil {
		return fail(err)
	}
	k, err := it.eval(n.Key, f).unwrap()
	if err != nil {
		return fail(err)
	}
	elem := n.Type().(symtype.Option).Elem
	val, found := m.(VMap).Get(k)
	if !found {
		return ok(VOption{Elem: elem, HasValue: false})
	}
	return ok(VOption{Elem: elem, HasValue: true, Val: val})
}

func (it interpreter) VisitMapCombine(n *symexpr.MapCombine, f *frame) result {
	l, err := it.eval(n.Lhs, f).unwrap()
	if err != nil {
		return fail(err)
	}
	r, err := it.eval(n.Rhs, f).unwrap()
	if err != nil {
		return fail(err)
	}
	lm, rm := l.(VMap), r.(VMap)
	out := VMap{Key: lm.Key, Val: lm.Val, IsSet: lm.IsSet, Entries: map[string]mapEntry{}}
	switch n.Mode {
	case symexpr.CombineUnion:
		for k, e := range rm.Entries {
			out.Entries[k] = e
		}
		for k, e := range lm.Entries {
			out.Entries[k] = e
		}
	case symexpr.CombineIntersect:
		for k, e := range lm.Entries {
			if _, ok := rm.Entries[k]; ok {
				out.Entries[k] = e
			}
		}
	case symexpr.CombineDifference:
		for k, e := range lm.Entries {
			if _, ok := rm.Entries[k]; !ok {
				out.Entries[k] = e
			}
		}
	}
	return ok(out)
}

func (it interpreter) VisitConstMapLiteral(n *symexpr.ConstMapLiteral, f *frame) result {
	entries := make(map[symtype.ConstKey]Value, len(n.Values))
	for k, vn := range n.Values {
		v, err := it.eval(vn, f).unwrap()
		if err != nil {
			return fail(err)
		}
		entries[k] = v
	}
	return ok(VConstMap{Typ: n.Typ, Entries: entries})
}

func (it interpreter) VisitConstMapWith(n *symexpr.ConstMapWith, f *frame) result {
	m, err := it.eval(n.Map, f).unwrap()
	if err != nil {
		return fail(err)
	}
	v, err := it.eval(n.Value, f).unwrap()
	if err != nil {
		return fail(err)
	}
	cm := m.(VConstMap)
	entries := make(map[symtype.ConstKey]Value, len(cm.Entries))
	for k, val := range cm.Entries {
		entries[k] = val
	}
	entries[n.Key] = v
	return ok(VConstMap{Typ: cm.Typ, Entries: entries})
}

func (it interpreter) VisitConstMapGet(n *symexpr.ConstMapGet, f *frame) result {
	m, err := it.eval(n.Map, f).unwrap()
	if err != nil {
		return fail(err)
	}
	return ok(m.(VConstMap).Entries[n.Key])
}

func (it interpreter) VisitOptionNone(n *symexpr.OptionNone, f *frame) result {
	return ok(VOption{Elem: n.Type().(symtype.Option).Elem, HasValue: false})
}

func (it interpreter) VisitOptionSome(n *symexpr.OptionSome, f *frame) result {
	v, err := it.eval(n.Value, f).unwrap()
	if err != nil {
		return fail(err)
	}
	return ok(VOption{Elem: n.Value.Type(), HasValue: true, Val: v})
}

func (it interpreter) VisitOptionHasValue(n *symexpr.OptionHasValue, f *frame) result {
	v, err := it.eval(n.Opt, f).unwrap()
	if err != nil {
		return fail(err)
	}
	return ok(VBool{V: v.(VOption).HasValue})
}

func (it interpreter) VisitOptionValue(n *symexpr.OptionValue, f *frame) result {
	v, err := it.eval(n.Opt, f).unwrap()
	if err != nil {
		return fail(err)
	}
	return ok(v.(VOption).Val)
}
