package sym

import (
	"math/big"

	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
)

// Rational is the Go-level shape backing Sym[Rational] (symtype.Real):
// a ratio of two arbitrary-precision integers, reduced to lowest terms
// by the Real constructor.
type Rational struct {
	Num, Den *big.Int
}

// Bool builds a literal boolean.
func Bool(v bool) Sym[bool] { return wrap[bool](symexpr.Bool(v)) }

// I8/I16/I32/I64/U8/U16/U32/U64 build literal fixed-width bitvectors at
// their named width, signed or unsigned to match the Go type's own sign.
func I8(v int8) Sym[int8]    { return wrap[int8](symexpr.BitvecI(8, true, int64(v))) }
func I16(v int16) Sym[int16] { return wrap[int16](symexpr.BitvecI(16, true, int64(v))) }
func I32(v int32) Sym[int32] { return wrap[int32](symexpr.BitvecI(32, true, int64(v))) }
func I64(v int64) Sym[int64] { return wrap[int64](symexpr.BitvecI(64, true, v)) }

func U8(v uint8) Sym[uint8]   { return wrap[uint8](symexpr.BitvecI(8, false, int64(v))) }
func U16(v uint16) Sym[uint16] { return wrap[uint16](symexpr.BitvecI(16, false, int64(v))) }
func U32(v uint32) Sym[uint32] { return wrap[uint32](symexpr.BitvecI(32, false, int64(v))) }
func U64(v uint64) Sym[uint64] { return wrap[uint64](symexpr.BitvecI(64, false, int64(v))) }

// BV builds a literal bitvector of arbitrary width, distinct from the
// fixed 8/16/32/64 constructors above.
func BV(width int, signed bool, v *big.Int) Sym[*big.Int] {
	return wrap[*big.Int](symexpr.Bitvec(width, signed, v))
}

// Big builds a literal arbitrary-precision integer.
func Big(v *big.Int) Sym[*big.Int] { return wrap[*big.Int](symexpr.BigInt(v)) }

// Real builds a literal rational, reduced to lowest terms.
func Real(num, den *big.Int) Sym[Rational] { return wrap[Rational](symexpr.Real(num, den)) }

// Char builds a literal Unicode codepoint.
func Char(r rune) Sym[rune] { return wrap[rune](symexpr.Char(r)) }

// Str builds a literal string (sugar for Seq<Char>).
func Str(s string) Sym[string] { return wrap[string](symexpr.Str(s)) }

// Arithmetic, bitwise, and comparison operators are defined generically
// over Sym[T] rather than per concrete T: Go forbids a method receiver
// that fixes a generic type's parameter to a specific type (you cannot
// write "func (s Sym[int32]) Add(...)"), so every binary operator that
// returns the SAME T as its operands is implemented once here, for any
// T, and simply panics if the caller applies it to an operand the
// underlying node doesn't support — exactly as calling, say,
// internal/symexpr.Add on a non-numeric pair already would.

// Add builds x + y.
func (s Sym[T]) Add(other Sym[T]) Sym[T] { return must[T](symexpr.Add(s.node, other.node)) }

// Sub builds x - y.
func (s Sym[T]) Sub(other Sym[T]) Sym[T] { return must[T](symexpr.Sub(s.node, other.node)) }

// Mul builds x * y.
func (s Sym[T]) Mul(other Sym[T]) Sym[T] { return must[T](symexpr.Mul(s.node, other.node)) }

// BitAnd/BitOr/BitXor/BitMax/BitMin build the named bitwise operator.
func (s Sym[T]) BitAnd(other Sym[T]) Sym[T] { return must[T](symexpr.BitAnd(s.node, other.node)) }
func (s Sym[T]) BitOr(other Sym[T]) Sym[T]  { return must[T](symexpr.BitOr(s.node, other.node)) }
func (s Sym[T]) BitXor(other Sym[T]) Sym[T] { return must[T](symexpr.BitXor(s.node, other.node)) }
func (s Sym[T]) BitMax(other Sym[T]) Sym[T] { return must[T](symexpr.BitMax(s.node, other.node)) }
func (s Sym[T]) BitMin(other Sym[T]) Sym[T] { return must[T](symexpr.BitMin(s.node, other.node)) }

// BitNot builds ~x.
func (s Sym[T]) BitNot() Sym[T] { return must[T](symexpr.BitNotNode(s.node)) }

// Eq/Lt/Leq/Gt/Geq build the named comparison, always Bool-typed
// regardless of the operands' own T.
func (s Sym[T]) Eq(other Sym[T]) Sym[bool]  { return must[bool](symexpr.Eq(s.node, other.node)) }
func (s Sym[T]) Lt(other Sym[T]) Sym[bool]  { return must[bool](symexpr.Lt(s.node, other.node)) }
func (s Sym[T]) Leq(other Sym[T]) Sym[bool] { return must[bool](symexpr.Leq(s.node, other.node)) }
func (s Sym[T]) Gt(other Sym[T]) Sym[bool]  { return must[bool](symexpr.Gt(s.node, other.node)) }
func (s Sym[T]) Geq(other Sym[T]) Sym[bool] { return must[bool](symexpr.Geq(s.node, other.node)) }

// And/Or are the n-ary boolean combinators; Not/Iff the unary/binary
// ones. These take Sym[bool] explicitly rather than being methods on
// Sym[T], since nothing ties an arbitrary T to "boolean" at the type
// level — only the dedicated bool instantiation is.
func And(args ...Sym[bool]) Sym[bool] {
	return must[bool](symexpr.And(nodesOf(args)...))
}

func Or(args ...Sym[bool]) Sym[bool] {
	return must[bool](symexpr.Or(nodesOf(args)...))
}

func Not(x Sym[bool]) Sym[bool] { return must[bool](symexpr.Not(x.node)) }

func Iff(lhs, rhs Sym[bool]) Sym[bool] { return must[bool](symexpr.Iffn(lhs.node, rhs.node)) }

// If builds a ternary conditional over any symbolic shape T.
func If[T any](guard Sym[bool], then, els Sym[T]) Sym[T] {
	return must[T](symexpr.IfNode(guard.node, then.node, els.node))
}

// Cast builds a bitvector width/sign conversion. From and To are
// distinct Go shapes (e.g. int32 -> int64), so this is a free function
// rather than a method — the same reason container element-changing
// operations below are free functions too.
func Cast[From, To any](s Sym[From], to symtype.Bitvec) Sym[To] {
	return must[To](symexpr.CastNode(s.node, to))
}

func nodesOf(args []Sym[bool]) []symexpr.Node {
	out := make([]symexpr.Node, len(args))
	for i, a := range args {
		out[i] = a.node
	}
	return out
}
