package symbolic_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symexlang/symex/internal/symeval/concrete"
	"github.com/symexlang/symex/internal/symeval/symbolic"
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
)

func TestLowerScalarUnchanged(t *testing.T) {
	b := symexpr.NewBuilder()
	lhs := b.BitvecI(8, false, 1)
	rhs := b.BitvecI(8, false, 2)
	sum, err := b.Add(lhs, rhs)
	require.NoError(t, err)

	lowered, err := symbolic.Lower(b, sum)
	require.NoError(t, err)
	assert.Same(t, sum, lowered)
}

// TestLowerFSeqCaseMatchesConcrete builds a one-cell guarded FSeq<U8>
// (present iff a symbolic bool holds) and an FSeq.Case computing "head
// value, or 9 if empty". It checks that lowering then concretely
// evaluating agrees with concretely evaluating the original, unlowered
// case directly, for both settings of the guard.
func TestLowerFSeqCaseMatchesConcrete(t *testing.T) {
	b := symexpr.NewBuilder()
	guard := b.NewArbitrary(symtype.Bool{}, "present")
	elemHole := b.NewArbitrary(symtype.U8, "elem")

	head, err := b.If(guard, b.OptionSomeNode(elemHole), b.OptionNoneNode(symtype.U8))
	require.NoError(t, err)
	list, err := b.FSeqAddFrontNode(head, b.FSeqEmptyNode(symtype.U8))
	require.NoError(t, err)

	headArg := b.NewArgumentID()
	tailArg := b.NewArgumentID()
	headBound := b.Argument(headArg, symtype.Option{Elem: symtype.U8}, "h")
	headValue, err := b.OptionValueNode(headBound)
	require.NoError(t, err)

	caseNode, err := b.NewFSeqCase(list, b.BitvecI(8, false, 9), headArg, tailArg, headValue)
	require.NoError(t, err)

	lowered, err := symbolic.Lower(b, caseNode)
	require.NoError(t, err)

	for _, present := range []bool{true, false} {
		asg := concrete.NewAssignment().
			Bind(guard, concrete.VBool{V: present}).
			Bind(elemHole, concrete.VBitvec{Width: 8, V: big.NewInt(42)})

		want, err := concrete.Eval(caseNode, asg)
		require.NoError(t, err)
		got, err := concrete.Eval(lowered, asg)
		require.NoError(t, err)
		assert.Equal(t, want, got, "present=%v", present)
	}
}

// TestLowerSharedFSeqCaseAgreesWhenReferencedTwice builds a diamond
// around an FSeq.Case: the same case node feeds both operands of an
// Add, so lowering must route through the memoisation cache rather
// than re-expand the case's guarded-list-group machinery twice, while
// still producing a result that evaluates identically to the
// unlowered original.
func TestLowerSharedFSeqCaseAgreesWhenReferencedTwice(t *testing.T) {
	b := symexpr.NewBuilder()
	guard := b.NewArbitrary(symtype.Bool{}, "present")
	elemHole := b.NewArbitrary(symtype.U8, "elem")

	head, err := b.If(guard, b.OptionSomeNode(elemHole), b.OptionNoneNode(symtype.U8))
	require.NoError(t, err)
	list, err := b.FSeqAddFrontNode(head, b.FSeqEmptyNode(symtype.U8))
	require.NoError(t, err)

	headArg := b.NewArgumentID()
	tailArg := b.NewArgumentID()
	headBound := b.Argument(headArg, symtype.Option{Elem: symtype.U8}, "h")
	headValue, err := b.OptionValueNode(headBound)
	require.NoError(t, err)

	caseNode, err := b.NewFSeqCase(list, b.BitvecI(8, false, 9), headArg, tailArg, headValue)
	require.NoError(t, err)

	doubled, err := b.Add(caseNode, caseNode)
	require.NoError(t, err)

	lowered, err := symbolic.Lower(b, doubled)
	require.NoError(t, err)

	for _, present := range []bool{true, false} {
		asg := concrete.NewAssignment().
			Bind(guard, concrete.VBool{V: present}).
			Bind(elemHole, concrete.VBitvec{Width: 8, V: big.NewInt(10)})

		want, err := concrete.Eval(doubled, asg)
		require.NoError(t, err)
		got, err := concrete.Eval(lowered, asg)
		require.NoError(t, err)
		assert.Equal(t, want, got, "present=%v", present)
	}
}

func TestLowerRejectsRawArbitraryFSeq(t *testing.T) {
	b := symexpr.NewBuilder()
	hole := b.NewArbitrary(symtype.FSeq{Elem: symtype.U8}, "xs")
	_, err := symbolic.Lower(b, hole)
	assert.Error(t, err)
}
