package sym

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/symexlang/symex/internal/symeval/concrete"
)

func evalBool(t *testing.T, s Sym[bool]) bool {
	t.Helper()
	v, err := concrete.Eval(s.Node(), concrete.NewAssignment())
	require.NoError(t, err)
	b, ok := v.(concrete.VBool)
	require.True(t, ok, "expected VBool, got %T", v)
	return b.V
}

func TestArithmetic(t *testing.T) {
	sum := I32(2).Add(I32(3))
	require.True(t, evalBool(t, sum.Eq(I32(5))))
}

func TestComparisons(t *testing.T) {
	require.True(t, evalBool(t, I32(3).Lt(I32(4))))
	require.False(t, evalBool(t, I32(4).Lt(I32(3))))
	require.True(t, evalBool(t, I32(4).Geq(I32(4))))
}

func TestBooleanCombinators(t *testing.T) {
	require.True(t, evalBool(t, And(Bool(true), Bool(true))))
	require.False(t, evalBool(t, And(Bool(true), Bool(false))))
	require.True(t, evalBool(t, Or(Bool(false), Bool(true))))
	require.True(t, evalBool(t, Not(Bool(false))))
	require.True(t, evalBool(t, Iff(Bool(true), Bool(true))))
}

func TestIf(t *testing.T) {
	result := If(Bool(true), I32(1), I32(2))
	require.True(t, evalBool(t, result.Eq(I32(1))))
}

func TestBitwise(t *testing.T) {
	require.True(t, evalBool(t, U8(0b1010).BitAnd(U8(0b1100)).Eq(U8(0b1000))))
	require.True(t, evalBool(t, U8(0b1010).BitOr(U8(0b0001)).Eq(U8(0b1011))))
}
