package symexpr

import (
	"math/big"

	"github.com/symexlang/symex/internal/symtype"
)

// BoolConst is a boolean literal.
type BoolConst struct {
	base
	Value bool
}

func (n *BoolConst) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

// Bool builds a boolean literal node.
func (b *Builder) Bool(v bool) *BoolConst {
	n := &BoolConst{base: base{typ: symtype.Bool{}}, Value: v}
	return b.intern(keyf("bool:%v", v), n).(*BoolConst)
}

func Bool(v bool) *BoolConst { return Default.Bool(v) }

// BitvecConst is a fixed/arbitrary-width integer literal. Value is always
// normalized modulo 2^Width before storage: overflow wraps.
type BitvecConst struct {
	base
	Value *big.Int
}

func (n *BitvecConst) Bitvec() symtype.Bitvec { return n.typ.(symtype.Bitvec) }

func (n *BitvecConst) String() string {
	return keyf("%s(%s)", n.typ.String(), n.Value.String())
}

// Bitvec builds a fixed-width integer literal, normalizing v modulo the
// width's range (unsigned wraparound; signed two's-complement range).
func (b *Builder) Bitvec(width int, signed bool, v *big.Int) *BitvecConst {
	norm := NormalizeBitvec(width, signed, v)
	n := &BitvecConst{base: base{typ: symtype.BV(width, signed)}, Value: norm}
	return b.intern(keyf("bv:%d:%v:%s", width, signed, norm.String()), n).(*BitvecConst)
}

func Bitvec(width int, signed bool, v *big.Int) *BitvecConst { return Default.Bitvec(width, signed, v) }

// BitvecI is a convenience wrapper over Bitvec for host int64 values.
func (b *Builder) BitvecI(width int, signed bool, v int64) *BitvecConst {
	return b.Bitvec(width, signed, big.NewInt(v))
}

func BitvecI(width int, signed bool, v int64) *BitvecConst { return Default.BitvecI(width, signed, v) }

// NormalizeBitvec reduces v into the representable range of a Width-bit
// value: [0, 2^Width) for unsigned, [-2^(Width-1), 2^(Width-1)) for signed.
func NormalizeBitvec(width int, signed bool, v *big.Int) *big.Int {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	r := new(big.Int).Mod(v, mod)
	if r.Sign() < 0 {
		r.Add(r, mod)
	}
	if signed {
		half := new(big.Int).Rsh(mod, 1)
		if r.Cmp(half) >= 0 {
			r.Sub(r, mod)
		}
	}
	return r
}

// BigIntConst is an arbitrary-precision integer literal.
type BigIntConst struct {
	base
	Value *big.Int
}

func (n *BigIntConst) String() string { return n.Value.String() }

func (b *Builder) BigInt(v *big.Int) *BigIntConst {
	n := &BigIntConst{base: base{typ: symtype.BigInt{}}, Value: v}
	return b.intern(keyf("bigint:%s", v.String()), n).(*BigIntConst)
}

func BigInt(v *big.Int) *BigIntConst { return Default.BigInt(v) }

// RealConst is a rational literal Num/Den, Den always > 0 and the
// fraction always stored in lowest terms.
type RealConst struct {
	base
	Num, Den *big.Int
}

func (n *RealConst) String() string { return keyf("%s/%s", n.Num.String(), n.Den.String()) }

func (b *Builder) Real(num, den *big.Int) *RealConst {
	if den.Sign() == 0 {
		den = big.NewInt(1)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), new(big.Int).Abs(den))
	n2, d2 := new(big.Int), new(big.Int)
	if g.Sign() != 0 {
		n2.Div(num, g)
		d2.Div(den, g)
	} else {
		n2.Set(num)
		d2.Set(den)
	}
	if d2.Sign() < 0 {
		n2.Neg(n2)
		d2.Neg(d2)
	}
	n := &RealConst{base: base{typ: symtype.Real{}}, Num: n2, Den: d2}
	return b.intern(keyf("real:%s/%s", n2.String(), d2.String()), n).(*RealConst)
}

func Real(num, den *big.Int) *RealConst { return Default.Real(num, den) }

// CharConst is a single Unicode codepoint literal.
type CharConst struct {
	base
	Value rune
}

func (n *CharConst) String() string { return string(n.Value) }

func (b *Builder) Char(r rune) *CharConst {
	n := &CharConst{base: base{typ: symtype.Char{}}, Value: r}
	return b.intern(keyf("char:%d", r), n).(*CharConst)
}

func Char(r rune) *CharConst { return Default.Char(r) }

// StringConst is a string literal; strings are sugar over Seq<Char>.
type StringConst struct {
	base
	Value string
}

func (n *StringConst) String() string { return `"` + n.Value + `"` }

func (b *Builder) Str(s string) *StringConst {
	n := &StringConst{base: base{typ: symtype.String{}}, Value: s}
	return b.intern(keyf("str:%q", s), n).(*StringConst)
}

func Str(s string) *StringConst { return Default.Str(s) }
