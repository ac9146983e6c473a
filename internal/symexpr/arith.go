package symexpr

import (
	"math/big"

	"github.com/symexlang/symex/internal/symtype"
)

// ArithOp names a kind-polymorphic arithmetic operator.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
)

func (o ArithOp) String() string { return [...]string{"add", "sub", "mul"}[o] }

// Arith is Add/Sub/Mul over Bitvec, BigInt, or Real operands of matching type.
type Arith struct {
	base
	Op       ArithOp
	Lhs, Rhs Node
}

func (n *Arith) String() string { return n.Op.String() + "(" + n.Lhs.String() + ", " + n.Rhs.String() + ")" }

func isNumeric(t symtype.Type) bool {
	switch t.(type) {
	case symtype.Bitvec, symtype.BigInt, symtype.Real:
		return true
	default:
		return false
	}
}

func (b *Builder) arith(op ArithOp, lhs, rhs Node) (Node, error) {
	if !isNumeric(lhs.Type()) {
		return nil, typeMismatch(op.String(), "numeric", lhs)
	}
	if lhs.Type().String() != rhs.Type().String() {
		return nil, typeMismatch(op.String(), lhs.Type().String(), rhs)
	}

	if folded, ok := b.foldArith(op, lhs, rhs); ok {
		return folded, nil
	}

	// Add(x, 0) -> x ; Mul(x, 1) -> x (identity peepholes, both operand orders).
	if bv, ok := lhs.Type().(symtype.Bitvec); ok {
		zero := b.Bitvec(bv.Width, bv.Signed, big.NewInt(0))
		one := b.Bitvec(bv.Width, bv.Signed, big.NewInt(1))
		switch op {
		case OpAdd:
			if rhs.ID() == zero.ID() {
				return lhs, nil
			}
			if lhs.ID() == zero.ID() {
				return rhs, nil
			}
		case OpMul:
			if rhs.ID() == one.ID() {
				return lhs, nil
			}
			if lhs.ID() == one.ID() {
				return rhs, nil
			}
		}
	}

	n := &Arith{base: base{typ: lhs.Type()}, Op: op, Lhs: lhs, Rhs: rhs}
	return b.intern(keyf("arith:%s:%d:%d", op, lhs.ID(), rhs.ID()), n), nil
}

func (b *Builder) foldArith(op ArithOp, lhs, rhs Node) (Node, bool) {
	switch l := lhs.(type) {
	case *BitvecConst:
		r, ok := rhs.(*BitvecConst)
		if !ok {
			return nil, false
		}
		bv := l.Bitvec()
		var v *big.Int
		switch op {
		case OpAdd:
			v = new(big.Int).Add(l.Value, r.Value)
		case OpSub:
			v = new(big.Int).Sub(l.Value, r.Value)
		case OpMul:
			v = new(big.Int).Mul(l.Value, r.Value)
		}
		return b.Bitvec(bv.Width, bv.Signed, v), true
	case *BigIntConst:
		r, ok := rhs.(*BigIntConst)
		if !ok {
			return nil, false
		}
		var v *big.Int
		switch op {
		case OpAdd:
			v = new(big.Int).Add(l.Value, r.Value)
		case OpSub:
			v = new(big.Int).Sub(l.Value, r.Value)
		case OpMul:
			v = new(big.Int).Mul(l.Value, r.Value)
		}
		return b.BigInt(v), true
	case *RealConst:
		r, ok := rhs.(*RealConst)
		if !ok {
			return nil, false
		}
		var num, den *big.Int
		switch op {
		case OpAdd:
			num = new(big.Int).Add(new(big.Int).Mul(l.Num, r.Den), new(big.Int).Mul(r.Num, l.Den))
			den = new(big.Int).Mul(l.Den, r.Den)
		case OpSub:
			num = new(big.Int).Sub(new(big.Int).Mul(l.Num, r.Den), new(big.Int).Mul(r.Num, l.Den))
			den = new(big.Int).Mul(l.Den, r.Den)
		case OpMul:
			num = new(big.Int).Mul(l.Num, r.Num)
			den = new(big.Int).Mul(l.Den, r.Den)
		}
		return b.Real(num, den), true
	default:
		return nil, false
	}
}

func (b *Builder) Add(lhs, rhs Node) (Node, error) { return b.arith(OpAdd, lhs, rhs) }
func (b *Builder) Sub(lhs, rhs Node) (Node, error) { return b.arith(OpSub, lhs, rhs) }
func (b *Builder) Mul(lhs, rhs Node) (Node, error) { return b.arith(OpMul, lhs, rhs) }

func Add(lhs, rhs Node) (Node, error) { return Default.Add(lhs, rhs) }
func Sub(lhs, rhs Node) (Node, error) { return Default.Sub(lhs, rhs) }
func Mul(lhs, rhs Node) (Node, error) { return Default.Mul(lhs, rhs) }

// BitOp names a fixed-width bitwise operator.
type BitOp int

const (
	OpBitAnd BitOp = iota
	OpBitOr
	OpBitXor
	OpBitMax
	OpBitMin
)

func (o BitOp) String() string {
	return [...]string{"bitand", "bitor", "bitxor", "bitmax", "bitmin"}[o]
}

// Bitwise is a binary bitwise operator over two Bitvec operands of the same width/sign.
type Bitwise struct {
	base
	Op       BitOp
	Lhs, Rhs Node
}

func (n *Bitwise) String() string { return n.Op.String() + "(" + n.Lhs.String() + ", " + n.Rhs.String() + ")" }

func (b *Builder) bitwise(op BitOp, lhs, rhs Node) (Node, error) {
	bv, ok := lhs.Type().(symtype.Bitvec)
	if !ok {
		return nil, typeMismatch(op.String(), "Bitvec", lhs)
	}
	if lhs.Type().String() != rhs.Type().String() {
		return nil, typeMismatch(op.String(), lhs.Type().String(), rhs)
	}
	if l, ok := lhs.(*BitvecConst); ok {
		if r, ok := rhs.(*BitvecConst); ok {
			var v *big.Int
			switch op {
			case OpBitAnd:
				v = new(big.Int).And(l.Value, r.Value)
			case OpBitOr:
				v = new(big.Int).Or(l.Value, r.Value)
			case OpBitXor:
				v = new(big.Int).Xor(l.Value, r.Value)
			case OpBitMax:
				if l.Value.Cmp(r.Value) >= 0 {
					v = l.Value
				} else {
					v = r.Value
				}
			case OpBitMin:
				if l.Value.Cmp(r.Value) <= 0 {
					v = l.Value
				} else {
					v = r.Value
				}
			}
			return b.Bitvec(bv.Width, bv.Signed, v), nil
		}
	}
	n := &Bitwise{base: base{typ: lhs.Type()}, Op: op, Lhs: lhs, Rhs: rhs}
	return b.intern(keyf("bitwise:%s:%d:%d", op, lhs.ID(), rhs.ID()), n), nil
}

func (b *Builder) BitAnd(lhs, rhs Node) (Node, error) { return b.bitwise(OpBitAnd, lhs, rhs) }
func (b *Builder) BitOr(lhs, rhs Node) (Node, error)  { return b.bitwise(OpBitOr, lhs, rhs) }
func (b *Builder) BitXor(lhs, rhs Node) (Node, error) { return b.bitwise(OpBitXor, lhs, rhs) }
func (b *Builder) BitMax(lhs, rhs Node) (Node, error) { return b.bitwise(OpBitMax, lhs, rhs) }
func (b *Builder) BitMin(lhs, rhs Node) (Node, error) { return b.bitwise(OpBitMin, lhs, rhs) }

func BitAnd(lhs, rhs Node) (Node, error) { return Default.BitAnd(lhs, rhs) }
func BitOr(lhs, rhs Node) (Node, error)  { return Default.BitOr(lhs, rhs) }
func BitXor(lhs, rhs Node) (Node, error) { return Default.BitXor(lhs, rhs) }
func BitMax(lhs, rhs Node) (Node, error) { return Default.BitMax(lhs, rhs) }
func BitMin(lhs, rhs Node) (Node, error) { return Default.BitMin(lhs, rhs) }

// BitNot is fixed-width bitwise complement.
type BitNot struct {
	base
	X Node
}

func (n *BitNot) String() string { return "bitnot(" + n.X.String() + ")" }

func (b *Builder) BitNot(x Node) (Node, error) {
	bv, ok := x.Type().(symtype.Bitvec)
	if !ok {
		return nil, typeMismatch("BitNot", "Bitvec", x)
	}
	if c, ok := x.(*BitvecConst); ok {
		mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bv.Width)), big.NewInt(1))
		v := new(big.Int).Xor(c.Value, mask)
		return b.Bitvec(bv.Width, bv.Signed, v), nil
	}
	n := &BitNot{base: base{typ: x.Type()}, X: x}
	return b.intern(keyf("bitnot:%d", x.ID()), n), nil
}

func BitNotNode(x Node) (Node, error) { return Default.BitNot(x) }

// Cast converts between fixed-width integer widths/signedness.
type Cast struct {
	base
	X Node
}

func (n *Cast) String() string { return "cast<" + n.typ.String() + ">(" + n.X.String() + ")" }

func (b *Builder) Cast(x Node, to symtype.Bitvec) (Node, error) {
	if _, ok := x.Type().(symtype.Bitvec); !ok {
		return nil, typeMismatch("Cast", "Bitvec", x)
	}
	if c, ok := x.(*BitvecConst); ok {
		return b.Bitvec(to.Width, to.Signed, c.Value), nil
	}
	n := &Cast{base: base{typ: to}, X: x}
	return b.intern(keyf("cast:%s:%d", to.String(), x.ID()), n), nil
}

func CastNode(x Node, to symtype.Bitvec) (Node, error) { return Default.Cast(x, to) }
