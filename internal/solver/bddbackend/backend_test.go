package bddbackend_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symexlang/symex/internal/solver/bddbackend"
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
)

func TestSolveOverBitvecFragment(t *testing.T) {
	b := symexpr.NewBuilder()
	x := b.NewArbitrary(symtype.BV(3, false), "x")
	three := b.BitvecI(3, false, 3)
	constraint, err := b.Eq(x, three)
	require.NoError(t, err)

	bk := bddbackend.New()
	model, ok, err := bk.Solve(context.Background(), []*symexpr.Arbitrary{x}, []symexpr.Node{constraint})
	require.NoError(t, err)
	require.True(t, ok)

	v, found := model.ModelGet(x)
	require.True(t, found)
	assert.Equal(t, "3", v.String())
}

func TestSolveRejectsNonBitvectorHole(t *testing.T) {
	b := symexpr.NewBuilder()
	s := b.NewArbitrary(symtype.String{}, "s")
	truth := b.Bool(true)

	bk := bddbackend.New()
	_, _, err := bk.Solve(context.Background(), []*symexpr.Arbitrary{s}, []symexpr.Node{truth})
	require.Error(t, err)
}

func TestMinimizeOverBitvec(t *testing.T) {
	b := symexpr.NewBuilder()
	x := b.NewArbitrary(symtype.BV(3, false), "x")
	one := b.BitvecI(3, false, 1)
	geq, err := b.Geq(x, one)
	require.NoError(t, err)

	bk := bddbackend.New()
	model, ok, err := bk.Minimize(context.Background(), []*symexpr.Arbitrary{x}, []symexpr.Node{geq}, x)
	require.NoError(t, err)
	require.True(t, ok)

	v, _ := model.ModelGet(x)
	assert.Equal(t, "1", v.String())
}
