// Package bddbackend implements internal/solver.Backend over the pure
// Bool/Bitvec fragment only: any hole or constraint reaching outside
// that fragment is rejected with *symerr.BackendUnsupportedError rather
// than silently mishandled. The satisfying set of joint bit assignments
// is tracked as a github.com/bits-and-blooms/bitset.BitSet indexed over
// the enumerated cartesian product of hole domains — a bitset-indexed
// explicit-state representation, the same underlying data structure a
// full ROBDD node table is built from, without this repository also
// carrying the variable-ordering/node-sharing machinery a general BDD
// library would need (out of scope: see DESIGN.md).
package bddbackend

import (
	"context"
	"math/big"

	"github.com/bits-and-blooms/bitset"

	"github.com/symexlang/symex/internal/solver"
	"github.com/symexlang/symex/internal/symeval/concrete"
	"github.com/symexlang/symex/internal/symerr"
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symlog"
	"github.com/symexlang/symex/internal/symtype"
)

const name = "bddbackend"

// Backend is the bitvector-only solver.Backend.
type Backend struct{}

func New() *Backend { return &Backend{} }

func (bk *Backend) Name() string { return name }

func (bk *Backend) Solve(ctx context.Context, holes []*symexpr.Arbitrary, constraints []symexpr.Node) (*solver.Model, bool, error) {
	log := symlog.With(symlog.Fields{"component": name, "op": "solve", "holes": len(holes)})
	idx, err := bk.buildIndex(holes, constraints, nil)
	if err != nil {
		return nil, false, err
	}
	live, err := idx.filter(constraints)
	if err != nil {
		return nil, false, err
	}
	i, ok := live.NextSet(0)
	if !ok {
		log.Debug("solve unsat")
		return nil, false, nil
	}
	log.Debug("solve sat")
	return solver.NewModel(idx.valuesAt(i)), true, nil
}

func (bk *Backend) Maximize(ctx context.Context, holes []*symexpr.Arbitrary, constraints []symexpr.Node, objective symexpr.Node) (*solver.Model, bool, error) {
	return bk.optimize(ctx, holes, constraints, objective, true)
}

func (bk *Backend) Minimize(ctx context.Context, holes []*symexpr.Arbitrary, constraints []symexpr.Node, objective symexpr.Node) (*solver.Model, bool, error) {
	return bk.optimize(ctx, holes, constraints, objective, false)
}

func (bk *Backend) optimize(ctx context.Context, holes []*symexpr.Arbitrary, constraints []symexpr.Node, objective symexpr.Node, maximize bool) (*solver.Model, bool, error) {
	idx, err := bk.buildIndex(holes, constraints, objective)
	if err != nil {
		return nil, false, err
	}
	live, err := idx.filter(constraints)
	if err != nil {
		return nil, false, err
	}

	var best map[uint64]concrete.Value
	var bestScore *big.Int
	for i, ok := live.NextSet(0); ok; i, ok = live.NextSet(i + 1) {
		values := idx.valuesAt(i)
		score, err := numericEval(objective, values, holes)
		if err != nil {
			return nil, false, err
		}
		if best == nil || (maximize && score.Cmp(bestScore) > 0) || (!maximize && score.Cmp(bestScore) < 0) {
			best = values
			bestScore = score
		}
	}
	if best == nil {
		return nil, false, nil
	}
	return solver.NewModel(best), true, nil
}

// index is the enumerated cartesian product of every hole's bitvector
// domain, one row per joint assignment.
type index struct {
	holes []*symexpr.Arbitrary
	rows  []map[uint64]concrete.Value
}

func (bk *Backend) buildIndex(holes []*symexpr.Arbitrary, constraints []symexpr.Node, objective symexpr.Node) (*index, error) {
	for _, h := range holes {
		if !isBitvectorFragment(h.Type()) {
			return nil, symerr.NewBackendUnsupported(name, "hole of type "+h.Type().String())
		}
	}
	for _, c := range constraints {
		if !bitvectorOnlyNode(c) {
			return nil, symerr.NewBackendUnsupported(name, "constraint outside the Bool/Bitvec fragment")
		}
	}
	if objective != nil && !bitvectorOnlyNode(objective) {
		return nil, symerr.NewBackendUnsupported(name, "objective outside the Bool/Bitvec fragment")
	}

	domains := make([][]concrete.Value, len(holes))
	for i, h := range holes {
		domains[i] = bitvectorDomain(h.Type())
	}

	var rows []map[uint64]concrete.Value
	choice := make([]concrete.Value, len(holes))
	var rec func(i int)
	rec = func(i int) {
		if i == len(holes) {
			row := make(map[uint64]concrete.Value, len(holes))
			for j, h := range holes {
				row[h.ID()] = choice[j]
			}
			rows = append(rows, row)
			return
		}
		for _, v := range domains[i] {
			choice[i] = v
			rec(i + 1)
		}
	}
	rec(0)
	return &index{holes: holes, rows: rows}, nil
}

func (idx *index) valuesAt(i uint) map[uint64]concrete.Value { return idx.rows[i] }

// filter returns the bitset of row indices under which every constraint
// evaluates to true.
func (idx *index) filter(constraints []symexpr.Node) (*bitset.BitSet, error) {
	live := bitset.New(uint(len(idx.rows)))
	for i := range idx.rows {
		live.Set(uint(i))
	}
	for _, c := range constraints {
		for i, ok := live.NextSet(0); ok; i, ok = live.NextSet(i + 1) {
			v, err := numericOrBoolEval(c, idx.rows[i], idx.holes)
			if err != nil {
				return nil, err
			}
			b, ok2 := v.(concrete.VBool)
			if !ok2 || !b.V {
				live.Clear(i)
			}
		}
	}
	return live, nil
}

func numericOrBoolEval(n symexpr.Node, values map[uint64]concrete.Value, holes []*symexpr.Arbitrary) (concrete.Value, error) {
	asg := concrete.NewAssignment()
	for _, h := range holes {
		if v, ok := values[h.ID()]; ok {
			asg.Bind(h, v)
		}
	}
	return concrete.Eval(n, asg)
}

func numericEval(n symexpr.Node, values map[uint64]concrete.Value, holes []*symexpr.Arbitrary) (*big.Int, error) {
	v, err := numericOrBoolEval(n, values, holes)
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case concrete.VBitvec:
		return t.V, nil
	case concrete.VBigInt:
		return t.V, nil
	default:
		return nil, symerr.NewInvariantViolation(name, "objective did not evaluate to a numeric type")
	}
}

func isBitvectorFragment(t symtype.Type) bool {
	switch t.(type) {
	case symtype.Bool, symtype.Bitvec:
		return true
	default:
		return false
	}
}

func bitvectorDomain(t symtype.Type) []concrete.Value {
	switch v := t.(type) {
	case symtype.Bool:
		return []concrete.Value{concrete.VBool{V: false}, concrete.VBool{V: true}}
	case symtype.Bitvec:
		n := uint(1) << uint(v.Width)
		out := make([]concrete.Value, 0, n)
		mod := new(big.Int).Lsh(big.NewInt(1), uint(v.Width))
		half := new(big.Int).Rsh(mod, 1)
		for i := uint(0); i < n; i++ {
			val := new(big.Int).SetUint64(uint64(i))
			if v.Signed && val.Cmp(half) >= 0 {
				val = new(big.Int).Sub(val, mod)
			}
			out = append(out, concrete.VBitvec{Width: v.Width, Signed: v.Signed, V: val})
		}
		return out
	default:
		return nil
	}
}

// bitvectorOnlyNode reports whether n (and everything it recurses into)
// stays inside the Bool/Bitvec combinators: logic, compare, arith,
// bitwise, cast, and leaf consts/holes. Any other node kind — records,
// options, sequences, maps, regex, FSeq — is rejected.
func bitvectorOnlyNode(n symexpr.Node) bool {
	switch t := n.(type) {
	case *symexpr.BoolConst, *symexpr.BitvecConst, *symexpr.Arbitrary, *symexpr.Argument:
		return true
	case *symexpr.LogicAnd:
		return allBitvectorOnly(t.Args)
	case *symexpr.LogicOr:
		return allBitvectorOnly(t.Args)
	case *symexpr.LogicNot:
		return bitvectorOnlyNode(t.X)
	case *symexpr.Iff:
		return bitvectorOnlyNode(t.Lhs) && bitvectorOnlyNode(t.Rhs)
	case *symexpr.If:
		return bitvectorOnlyNode(t.Guard) && bitvectorOnlyNode(t.Then) && bitvectorOnlyNode(t.Else)
	case *symexpr.Compare:
		return bitvectorOnlyNode(t.Lhs) && bitvectorOnlyNode(t.Rhs)
	case *symexpr.Arith:
		return bitvectorOnlyNode(t.Lhs) && bitvectorOnlyNode(t.Rhs)
	case *symexpr.Bitwise:
		return bitvectorOnlyNode(t.Lhs) && bitvectorOnlyNode(t.Rhs)
	case *symexpr.BitNot:
		return bitvectorOnlyNode(t.X)
	case *symexpr.Cast:
		return bitvectorOnlyNode(t.X)
	default:
		return false
	}
}

func allBitvectorOnly(ns []symexpr.Node) bool {
	for _, n := range ns {
		if !bitvectorOnlyNode(n) {
			return false
		}
	}
	return true
}
