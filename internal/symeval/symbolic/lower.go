package symbolic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/symexlang/symex/internal/symerr"
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
	"github.com/symexlang/symex/internal/symvisit"
)

// frame binds Argument ids introduced by an FSeq.Case being unrolled
// to the node each stands for: HeadArgID to an
// Option<Elem> node, TailArgID to a concrete FSeq<Elem> chain. envKey
// fingerprints args so the shared cache never confuses two Case
// unrollings of the same node body bound to different head/tail nodes;
// it is recomputed whenever with introduces a new binding.
type frame struct {
	args   map[uint64]Node
	envKey string
	cache  *symvisit.Cache[string, result]
}

func (f *frame) with(argID uint64, v Node) *frame {
	next := make(map[uint64]Node, len(f.args)+1)
	for k, existing := range f.args {
		next[k] = existing
	}
	next[argID] = v
	return &frame{args: next, cache: f.cache, envKey: fingerprint(next)}
}

// fingerprint renders a binder set as a comparable string key, keyed on
// each bound argument's underlying node id rather than the node's
// identity, sorted by argument id so the same bindings always produce
// the same key regardless of insertion order.
func fingerprint(args map[uint64]Node) string {
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
		fmt.Fprintf(&b, "%d=%d;", id, args[id].ID())
	}
	return b.String()
}

type result struct {
	v   Node
	err error
}

func ok(v Node) result        { return result{v: v} }
func fail(err error) result   { return result{err: err} }
func (r result) unwrap() (Node, error) { return r.v, r.err }

type interpreter struct {
	b *symexpr.Builder
}

// Lower rewrites root into an equivalent node tree containing no
// FSeq-typed subexpression: every FSeq.Case/Empty/AddFront is replaced
// by the plain If/Option/record combinators it expands to, leaving only
// node kinds a solver backend already knows how to encode directly.
func Lower(b *symexpr.Builder, root Node) (Node, error) {
	it := interpreter{b: b}
	f := &frame{args: map[uint64]Node{}, cache: symvisit.NewCache[string, result]()}
	return it.lower(root, f).unwrap()
}

// lower is the single recursive entry point: it intercepts FSeq-typed
// nodes to run them through the guarded-list-group machinery, and
// dispatches everything else through the ordinary Visitor, which in
// turn recurses back through lower on every child (so a arbitrarily
// deep FSeq.Case nested inside, say, an Arith operand is still found
// and eliminated). Every call first consults f.cache, keyed on
// (nodeID, envKey), so a sub-DAG shared by multiple parents under the
// same binder environment is lowered once rather than once per
// reference.
func (it interpreter) lower(n Node, f *frame) result {
	if v, ok := f.cache.Get(n.ID(), f.envKey); ok {
		return v
	}
	r := it.lowerUncached(n, f)
	f.cache.Set(n.ID(), f.envKey, r)
	return r
}

func (it interpreter) lowerUncached(n Node, f *frame) result {
	if n.Type().Kind() == symtype.KindFSeq {
		g, err := it.lowerFSeq(n, f)
		if err != nil {
			return fail(err)
		}
		m, err := materialize(it.b, g)
		if err != nil {
			return fail(err)
		}
		return ok(m)
	}
	return symexpr.Visit(n, f, it)
}

func (it interpreter) lowerMany(ns []Node, f *frame) ([]Node, bool, error) {
	out := make([]Node, len(ns))
	changed := false
	for i, c := range ns {
		r := it.lower(c, f)
		if r.err != nil {
			return nil, false, r.err
		}
		out[i] = r.v
		if out[i] != c {
			changed = true
		}
	}
	return out, changed, nil
}

// lowerFSeq evaluates an FSeq-typed expression into a GuardedListGroup.
func (it interpreter) lowerFSeq(n Node, f *frame) (*GuardedListGroup, error) {
	switch t := n.(type) {
	case *symexpr.FSeqEmpty:
		elem := t.Type().(symtype.FSeq).Elem
		return &GuardedListGroup{Elem: elem, Entries: []ListEntry{{Guard: it.b.Bool(true)}}}, nil

	case *symexpr.FSeqAddFront:
		elem := t.Type().(symtype.FSeq).Elem
		headR := it.lower(t.Head, f)
		if headR.err != nil {
			return nil, headR.err
		}
		hv, err := it.b.OptionHasValueNode(headR.v)
		if err != nil {
			return nil, err
		}
		val, err := it.b.OptionValueNode(headR.v)
		if err != nil {
			return nil, err
		}
		tailGroup, err := it.lowerFSeq(t.Tail, f)
		if err != nil {
			return nil, err
		}
		return addFront(it.b, elem, hv, val, tailGroup)

	case *symexpr.Argument:
		bound, ok := f.args[t.ArgID]
		if !ok {
			return nil, symerr.NewInvariantViolation("symbolic lower", "unbound FSeq argument "+t.Name)
		}
		return it.lowerFSeq(bound, f)

	case *symexpr.If:
		guardR := it.lower(t.Guard, f)
		if guardR.err != nil {
			return nil, guardR.err
		}
		thenGroup, err := it.lowerFSeq(t.Then, f)
		if err != nil {
			return nil, err
		}
		elsGroup, err := it.lowerFSeq(t.Else, f)
		if err != nil {
			return nil, err
		}
		return mergeLists(it.b, guardR.v, thenGroup, elsGroup)

	case *symexpr.FSeqCase:
		result, err := it.lowerFSeqCaseGeneric(t, f)
		if err != nil {
			return nil, err
		}
		return it.lowerFSeq(result, f)

	default:
		return nil, symerr.NewUnsupportedType(n.Type().String(), "symbolic lower", "FSeq value must originate from gen.Generate's guarded-chain construction, not a raw Arbitrary<FSeq<_>>")
	}
}

// addFront prepends one guarded cell (present iff hv, carrying val when
// present) onto tailGroup, shifting every row's length up by one: the
// "cons happened" row borrows tailGroup's row i to build row i+1, and
// the "cons skipped" row passes tailGroup's own rows through unchanged.
func addFront(b *symexpr.Builder, elem symtype.Type, hv, val Node, tail *GuardedListGroup) (*GuardedListGroup, error) {
	notHv, err := b.Not(hv)
	if err != nil {
		return nil, err
	}
	maxLen := tail.maxLen() + 1
	out := &GuardedListGroup{Elem: elem, Entries: make([]ListEntry, maxLen+1)}
	// length 0 is reachable only by skipping the cons entirely, and only
	// when tail itself can be length 0.
	skip0Guard, err := b.And(notHv, tail.Entries[0].Guard)
	if err != nil {
		return nil, err
	}
	out.Entries[0] = ListEntry{Guard: skip0Guard}
	for i := 1; i <= maxLen; i++ {
		var consGuard Node = b.Bool(false)
		var consValues []Node
		if i-1 <= tail.maxLen() {
			consGuard, err = b.And(hv, tail.Entries[i-1].Guard)
			if err != nil {
				return nil, err
			}
			consValues = append([]Node{val}, tail.Entries[i-1].Values...)
		}
		if i > tail.maxLen() {
			out.Entries[i] = ListEntry{Guard: consGuard, Values: consValues}
			continue
		}
		skipGuard, err := b.And(notHv, tail.Entries[i].Guard)
		if err != nil {
			return nil, err
		}
		rowGuard, err := b.Or(consGuard, skipGuard)
		if err != nil {
			return nil, err
		}
		// Both rows, when active, describe the same length i; exactly one
		// of consGuard/skipGuard can hold in a well-formed model, so their
		// values never need merging against each other — route consValues
		// when hv holds, tail's own row otherwise.
		values := make([]Node, i)
		for j := 0; j < i; j++ {
			var tv Node
			if j < len(consValues) {
				tv = consValues[j]
			}
			var ev Node
			if j < len(tail.Entries[i].Values) {
				ev = tail.Entries[i].Values[j]
			}
			switch {
			case tv != nil && ev != nil:
				v, err := b.If(hv, tv, ev)
				if err != nil {
					return nil, err
				}
				values[j] = v
			case tv != nil:
				values[j] = tv
			default:
				values[j] = ev
			}
		}
		out.Entries[i] = ListEntry{Guard: rowGuard, Values: values}
	}
	return out, nil
}

// materialize turns a GuardedListGroup back into a concrete guarded
// FSeq node chain (the same shape gen.Generate produces), for embedding
// as an ordinary operand — e.g. a record field whose type is FSeq.
func materialize(b *symexpr.Builder, g *GuardedListGroup) (Node, error) {
	maxLen := g.maxLen()
	cur := b.FSeqEmptyNode(g.Elem)
	for i := maxLen - 1; i >= 0; i-- {
		var present Node = b.Bool(false)
		var value Node
		for L := maxLen; L > i; L-- {
			var err error
			present, err = b.Or(present, g.Entries[L].Guard)
			if err != nil {
				return nil, err
			}
			if value == nil {
				value = g.Entries[L].Values[i]
			} else {
				v, err := b.If(g.Entries[L].Guard, g.Entries[L].Values[i], value)
				if err != nil {
					return nil, err
				}
				value = v
			}
		}
		headOpt, err := b.If(present, b.OptionSomeNode(value), b.OptionNoneNode(g.Elem))
		if err != nil {
			return nil, err
		}
		cur, err = b.FSeqAddFrontNode(headOpt, cur)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// lowerFSeqCaseGeneric evaluates an FSeq.Case whose own result type may
// or may not be FSeq: it always produces a plain Node (nested If's
// bottoming out at Empty/Cons results), which lowerFSeq re-lowers when
// the case itself is FSeq-typed.
func (it interpreter) lowerFSeqCaseGeneric(t *symexpr.FSeqCase, f *frame) (Node, error) {
	group, err := it.lowerFSeq(t.List, f)
	if err != nil {
		return nil, err
	}
	emptyR := it.lower(t.Empty, f)
	if emptyR.err != nil {
		return nil, emptyR.err
	}
	acc := emptyR.v
	for L := 1; L <= group.maxLen(); L++ {
		entry := group.Entries[L]
		head := entry.Values[0]
		tailVals := entry.Values[1:]
		tailChain := it.b.FSeqEmptyNode(group.Elem)
		for i := len(tailVals) - 1; i >= 0; i-- {
			var err error
			tailChain, err = it.b.FSeqAddFrontNode(it.b.OptionSomeNode(tailVals[i]), tailChain)
			if err != nil {
				return nil, err
			}
		}
		headOpt := it.b.OptionSomeNode(head)
		next := f.with(t.HeadArgID, headOpt).with(t.TailArgID, tailChain)
		consR := it.lower(t.Cons, next)
		if consR.err != nil {
			return nil, consR.err
		}
		merged, err := it.b.If(entry.Guard, consR.v, acc)
		if err != nil {
			return nil, err
		}
		acc = merged
	}
	return acc, nil
}

