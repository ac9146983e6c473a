package sym

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/symexlang/symex/internal/symtype"
)

func TestFunction0Evaluate(t *testing.T) {
	f := NewFunction0(func() Sym[int32] {
		return I32(2).Add(I32(3))
	})
	result, err := f.Evaluate()
	require.NoError(t, err)
	require.Equal(t, int32(5), result)
}

func TestFunction0Find(t *testing.T) {
	f := NewFunction0(func() Sym[int8] {
		return Unknown[int8](symtype.I8, "x")
	})
	witness, found, err := f.Find(context.Background(), func(result Sym[int8]) Sym[bool] {
		return result.Gt(I8(100))
	})
	require.NoError(t, err)
	require.True(t, found)
	require.Greater(t, witness.Result, int8(100))
}

func TestFunction1Evaluate(t *testing.T) {
	f := NewFunction1[int32, int32](symtype.I32, func(arg Sym[int32]) Sym[int32] {
		return arg.Add(I32(1))
	})
	result, err := f.Evaluate(5)
	require.NoError(t, err)
	require.Equal(t, int32(6), result)
}

func TestFunction1Find(t *testing.T) {
	f := NewFunction1[int8, int8](symtype.I8, func(arg Sym[int8]) Sym[int8] {
		return arg.Add(I8(1))
	})
	witness, found, err := f.Find(context.Background(), func(arg Sym[int8], result Sym[int8]) Sym[bool] {
		return result.Eq(I8(10))
	})
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int8(9), witness.Arg)
	require.Equal(t, int8(10), witness.Result)
}

func TestFunction1Assert(t *testing.T) {
	f := NewFunction1[int8, int8](symtype.I8, func(arg Sym[int8]) Sym[int8] {
		return arg.Add(I8(1))
	})
	ok, err := f.Assert(context.Background(), func(arg Sym[int8], result Sym[int8]) Sym[bool] {
		return arg.Eq(arg)
	})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestFunction1Maximize(t *testing.T) {
	f := NewFunction1[int8, int8](symtype.I8, func(arg Sym[int8]) Sym[int8] {
		return arg
	})
	opt, found, err := f.Maximize(context.Background(),
		func(arg Sym[int8], result Sym[int8]) Sym[int64] {
			return Cast[int8, int64](result, symtype.I64)
		},
		func(arg Sym[int8], result Sym[int8]) Sym[bool] {
			return And(arg.Geq(I8(0)), arg.Leq(I8(5)))
		},
	)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int8(5), opt.Arg)
	require.Equal(t, int64(5), opt.Score)
}

func TestFunction2Evaluate(t *testing.T) {
	f := NewFunction2[int32, int32, int32](symtype.I32, symtype.I32, func(a, b Sym[int32]) Sym[int32] {
		return a.Add(b)
	})
	result, err := f.Evaluate(2, 3)
	require.NoError(t, err)
	require.Equal(t, int32(5), result)
}

func TestFunction2Find(t *testing.T) {
	f := NewFunction2[int8, int8, int8](symtype.I8, symtype.I8, func(a, b Sym[int8]) Sym[int8] {
		return a.Add(b)
	})
	witness, found, err := f.Find(context.Background(), func(a, b, result Sym[int8]) Sym[bool] {
		return result.Eq(I8(7))
	})
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int8(7), witness.ArgA+witness.ArgB)
}

func TestFunction2Minimize(t *testing.T) {
	f := NewFunction2[int8, int8, int8](symtype.I8, symtype.I8, func(a, b Sym[int8]) Sym[int8] {
		return a.Add(b)
	})
	opt, found, err := f.Minimize(context.Background(),
		func(a, b, result Sym[int8]) Sym[int64] {
			return Cast[int8, int64](result, symtype.I64)
		},
		func(a, b, result Sym[int8]) Sym[bool] {
			return And(a.Geq(I8(0)), a.Leq(I8(3)), b.Geq(I8(0)), b.Leq(I8(3)))
		},
	)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int64(0), opt.Score)
}
