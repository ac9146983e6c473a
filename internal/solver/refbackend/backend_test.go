package refbackend_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symexlang/symex/internal/solver/refbackend"
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
)

func TestSolveFindsSatisfyingBitvec(t *testing.T) {
	b := symexpr.NewBuilder()
	x := b.NewArbitrary(symtype.U8, "x")
	five := b.BitvecI(8, false, 5)
	constraint, err := b.Eq(x, five)
	require.NoError(t, err)

	bk := refbackend.New()
	model, ok, err := bk.Solve(context.Background(), []*symexpr.Arbitrary{x}, []symexpr.Node{constraint})
	require.NoError(t, err)
	require.True(t, ok)

	v, found := model.ModelGet(x)
	require.True(t, found)
	assert.Equal(t, "5", v.String())
}

func TestSolveReportsUnsat(t *testing.T) {
	b := symexpr.NewBuilder()
	x := b.NewArbitrary(symtype.Bool{}, "x")
	notX, err := b.Not(x)
	require.NoError(t, err)
	contradiction, err := b.And(x, notX)
	require.NoError(t, err)

	bk := refbackend.New()
	_, ok, err := bk.Solve(context.Background(), []*symexpr.Arbitrary{x}, []symexpr.Node{contradiction})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSolveRefusesGuessingOnWideBitvec(t *testing.T) {
	b := symexpr.NewBuilder()
	x := b.NewArbitrary(symtype.I32, "x")
	fifty := b.BitvecI(32, true, 50)
	constraint, err := b.Eq(x, fifty)
	require.NoError(t, err)

	// 50 is outside bitvecDomain's fixed sample set for a 32-bit hole
	// ({0,1,2,-1,-2,maxU}); a witness genuinely exists, so refbackend
	// must say "I can't tell" rather than "unsatisfiable".
	bk := refbackend.New()
	_, ok, err := bk.Solve(context.Background(), []*symexpr.Arbitrary{x}, []symexpr.Node{constraint})
	require.Error(t, err)
	assert.False(t, ok)
}

func TestMaximizeRefusesGuessingOnWideBitvec(t *testing.T) {
	b := symexpr.NewBuilder()
	x := b.NewArbitrary(symtype.I32, "x")
	zero := b.BitvecI(32, true, 0)
	hundred := b.BitvecI(32, true, 100)
	lower, err := b.Geq(x, zero)
	require.NoError(t, err)
	upper, err := b.Leq(x, hundred)
	require.NoError(t, err)
	bound, err := b.And(lower, upper)
	require.NoError(t, err)

	// The true optimum (100) is outside the 32-bit sample set, so a
	// naive enumeration would rank 2 (the largest sampled value
	// satisfying 0 <= x <= 100) as "best" and be silently wrong.
	// refbackend must refuse instead of returning that wrong answer.
	bk := refbackend.New()
	_, ok, err := bk.Maximize(context.Background(), []*symexpr.Arbitrary{x}, []symexpr.Node{bound}, x)
	require.Error(t, err)
	assert.False(t, ok)
}

func TestMaximizeRanksByObjective(t *testing.T) {
	b := symexpr.NewBuilder()
	x := b.NewArbitrary(symtype.U8, "x")
	seven := b.BitvecI(8, false, 7)
	bound, err := b.Leq(x, seven)
	require.NoError(t, err)

	bk := refbackend.New()
	model, ok, err := bk.Maximize(context.Background(), []*symexpr.Arbitrary{x}, []symexpr.Node{bound}, x)
	require.NoError(t, err)
	require.True(t, ok)

	v, _ := model.ModelGet(x)
	assert.Equal(t, "7", v.String())
}
