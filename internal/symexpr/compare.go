package symexpr

import (
	"math/big"

	"github.com/symexlang/symex/internal/symtype"
)

// CompareOp names a comparison operator.
type CompareOp int

const (
	OpEq CompareOp = iota
	OpLt
	OpLeq
	OpGt
	OpGeq
)

func (o CompareOp) String() string {
	return [...]string{"eq", "lt", "leq", "gt", "geq"}[o]
}

// Compare is a binary comparison. Eq is defined over any two operands of
// the same type; the ordered comparisons (Lt/Leq/Gt/Geq) require a
// numeric or Char operand, with signed-vs-unsigned ordering chosen by the
// Bitvec operand's Signed flag.
type Compare struct {
	base
	Op       CompareOp
	Lhs, Rhs Node
}

func (n *Compare) String() string {
	return n.Op.String() + "(" + n.Lhs.String() + ", " + n.Rhs.String() + ")"
}

func (b *Builder) compare(op CompareOp, lhs, rhs Node) (Node, error) {
	if lhs.Type().String() != rhs.Type().String() {
		return nil, typeMismatch(op.String(), lhs.Type().String(), rhs)
	}
	if op != OpEq {
		if !isOrderable(lhs.Type()) {
			return nil, typeMismatch(op.String(), "numeric or Char", lhs)
		}
	}
	if lhs.ID() == rhs.ID() {
		switch op {
		case OpEq, OpLeq, OpGeq:
			return b.Bool(true), nil
		case OpLt, OpGt:
			return b.Bool(false), nil
		}
	}
	if folded, ok := b.foldCompare(op, lhs, rhs); ok {
		return folded, nil
	}
	n := &Compare{base: base{typ: symtype.Bool{}}, Op: op, Lhs: lhs, Rhs: rhs}
	return b.intern(keyf("cmp:%s:%d:%d", op, lhs.ID(), rhs.ID()), n), nil
}

func isOrderable(t symtype.Type) bool {
	switch t.(type) {
	case symtype.Bitvec, symtype.BigInt, symtype.Real, symtype.Char:
		return true
	default:
		return false
	}
}

func (b *Builder) foldCompare(op CompareOp, lhs, rhs Node) (Node, bool) {
	cmp, ok := numericCmp(lhs, rhs)
	if !ok {
		return nil, false
	}
	var result bool
	switch op {
	case OpEq:
		result = cmp == 0
	case OpLt:
		result = cmp < 0
	case OpLeq:
		result = cmp <= 0
	case OpGt:
		result = cmp > 0
	case OpGeq:
		result = cmp >= 0
	}
	return b.Bool(result), true
}

// numericCmp returns (-1|0|1, true) when both nodes are the same literal
// kind and directly comparable, else (_, false).
func numericCmp(lhs, rhs Node) (int, bool) {
	switch l := lhs.(type) {
	case *BitvecConst:
		r, ok := rhs.(*BitvecConst)
		if !ok {
			return 0, false
		}
		return l.Value.Cmp(r.Value), true
	case *BigIntConst:
		r, ok := rhs.(*BigIntConst)
		if !ok {
			return 0, false
		}
		return l.Value.Cmp(r.Value), true
	case *CharConst:
		r, ok := rhs.(*CharConst)
		if !ok {
			return 0, false
		}
		switch {
		case l.Value < r.Value:
			return -1, true
		case l.Value > r.Value:
			return 1, true
		default:
			return 0, true
		}
	case *RealConst:
		r, ok := rhs.(*RealConst)
		if !ok {
			return 0, false
		}
		lhsN := new(big.Int).Mul(l.Num, r.Den)
		rhsN := new(big.Int).Mul(r.Num, l.Den)
		return lhsN.Cmp(rhsN), true
	default:
		return 0, false
	}
}

func (b *Builder) Eq(lhs, rhs Node) (Node, error)  { return b.compare(OpEq, lhs, rhs) }
func (b *Builder) Lt(lhs, rhs Node) (Node, error)  { return b.compare(OpLt, lhs, rhs) }
func (b *Builder) Leq(lhs, rhs Node) (Node, error) { return b.compare(OpLeq, lhs, rhs) }
func (b *Builder) Gt(lhs, rhs Node) (Node, error)  { return b.compare(OpGt, lhs, rhs) }
func (b *Builder) Geq(lhs, rhs Node) (Node, error) { return b.compare(OpGeq, lhs, rhs) }

func Eq(lhs, rhs Node) (Node, error)  { return Default.Eq(lhs, rhs) }
func Lt(lhs, rhs Node) (Node, error)  { return Default.Lt(lhs, rhs) }
func Leq(lhs, rhs Node) (Node, error) { return Default.Leq(lhs, rhs) }
func Gt(lhs, rhs Node) (Node, error)  { return Default.Gt(lhs, rhs) }
func Geq(lhs, rhs Node) (Node, error) { return Default.Geq(lhs, rhs) }
