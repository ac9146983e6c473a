package concrete_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symexlang/symex/internal/symeval/concrete"
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
)

func TestEvalArith(t *testing.T) {
	b := symexpr.NewBuilder()
	lhs := b.BitvecI(8, false, 200)
	rhs := b.BitvecI(8, false, 100)
	sum, err := b.Add(lhs, rhs)
	require.NoError(t, err)

	v, err := concrete.Eval(sum, concrete.NewAssignment())
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(44), v.(concrete.VBitvec).V) // wraps modulo 256
}

func TestEvalArbitrary(t *testing.T) {
	b := symexpr.NewBuilder()
	hole := b.NewArbitrary(symtype.U32, "x")
	asg := concrete.NewAssignment().Bind(hole, concrete.VBitvec{Width: 32, V: big.NewInt(7)})

	v, err := concrete.Eval(hole, asg)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(7), v.(concrete.VBitvec).V)
}

func TestEvalArbitraryUnbound(t *testing.T) {
	b := symexpr.NewBuilder()
	hole := b.NewArbitrary(symtype.U32, "x")
	_, err := concrete.Eval(hole, concrete.NewAssignment())
	assert.Error(t, err)
}

func TestEvalIfShortCircuits(t *testing.T) {
	b := symexpr.NewBuilder()
	guard := b.Bool(true)
	then := b.BitvecI(8, false, 1)
	els := b.BitvecI(8, false, 2)
	ifNode, err := b.If(guard, then, els)
	require.NoError(t, err)

	v, err := concrete.Eval(ifNode, concrete.NewAssignment())
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1), v.(concrete.VBitvec).V)
}

func TestEvalFSeqCase(t *testing.T) {
	b := symexpr.NewBuilder()
	empty := b.FSeqEmptyNode(symtype.U8)
	headVal := b.BitvecI(8, false, 5)
	head := b.OptionSomeNode(headVal)
	list, err := b.FSeqAddFrontNode(head, empty)
	require.NoError(t, err)

	headArg := b.NewArgumentID()
	tailArg := b.NewArgumentID()
	headBound := b.Argument(headArg, symtype.Option{Elem: symtype.U8}, "h")
	headValue, err := b.OptionValueNode(headBound)
	require.NoError(t, err)

	caseNode, err := b.NewFSeqCase(list, b.BitvecI(8, false, 0), headArg, tailArg, headValue)
	require.NoError(t, err)

	v, err := concrete.Eval(caseNode, concrete.NewAssignment())
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5), v.(concrete.VBitvec).V)
}

func TestEvalSeqSlice(t *testing.T) {
	b := symexpr.NewBuilder()
	s := b.Str("hello")
	slice, err := b.SeqSliceNode(s, b.BigInt(big.NewInt(1)), b.BigInt(big.NewInt(3)))
	require.NoError(t, err)

	v, err := concrete.Eval(slice, concrete.NewAssignment())
	require.NoError(t, err)
	items := v.(concrete.VSeq).Items
	require.Len(t, items, 3)
	assert.Equal(t, "ell", string([]rune{items[0].(concrete.VChar).V, items[1].(concrete.VChar).V, items[2].(concrete.VChar).V}))
}

// TestEvalSharedSubDAGAgreesWhenReferencedTwice builds a diamond: a
// single shared node reached through two different paths to the root
// (sum's two operands both descend from the same Add). Both references
// must see the same value even though the memoisation cache means the
// shared node's subtree is only walked once.
func TestEvalSharedSubDAGAgreesWhenReferencedTwice(t *testing.T) {
	b := symexpr.NewBuilder()
	hole := b.NewArbitrary(symtype.U32, "x")
	one := b.BitvecI(32, false, 1)
	shared, err := b.Add(hole, one)
	require.NoError(t, err)

	lhs, err := b.Mul(shared, b.BitvecI(32, false, 2))
	require.NoError(t, err)
	rhs, err := b.Mul(shared, b.BitvecI(32, false, 3))
	require.NoError(t, err)
	total, err := b.Add(lhs, rhs)
	require.NoError(t, err)

	asg := concrete.NewAssignment().Bind(hole, concrete.VBitvec{Width: 32, V: big.NewInt(4)})
	v, err := concrete.Eval(total, asg)
	require.NoError(t, err)
	// shared = 4+1 = 5; total = 5*2 + 5*3 = 25
	assert.Equal(t, big.NewInt(25), v.(concrete.VBitvec).V)
}

func TestEvalMapSetGet(t *testing.T) {
	b := symexpr.NewBuilder()
	m := b.MapEmptyNode(symtype.U8, symtype.Bool{})
	set, err := b.MapSetNode(m, b.BitvecI(8, false, 1), b.Bool(true))
	require.NoError(t, err)
	get, err := b.MapGetNode(set, b.BitvecI(8, false, 1))
	require.NoError(t, err)

	v, err := concrete.Eval(get, concrete.NewAssignment())
	require.NoError(t, err)
	opt := v.(concrete.VOption)
	assert.True(t, opt.HasValue)
	assert.True(t, opt.Val.(concrete.VBool).V)
}
