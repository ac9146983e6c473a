package sym

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/symexlang/symex/internal/regexast"
)

func TestSeqConcatAndLength(t *testing.T) {
	s := Str("hello").Concat(Str(" world"))
	require.True(t, evalBool(t, s.Length().Eq(Big(big.NewInt(11)))))
}

func TestSeqContains(t *testing.T) {
	s := Str("hello world")
	require.True(t, evalBool(t, s.Contains(ContainsInfix, Str("wor"))))
	require.True(t, evalBool(t, s.Contains(ContainsPrefix, Str("hel"))))
	require.False(t, evalBool(t, s.Contains(ContainsSuffix, Str("hel"))))
}

func TestSeqSliceAndReplaceFirst(t *testing.T) {
	s := Str("hello world")
	sliced := s.Slice(Big(big.NewInt(6)), Big(big.NewInt(5)))
	require.True(t, evalBool(t, sliced.Eq(Str("world"))))

	replaced := s.ReplaceFirst(Str("world"), Str("there"))
	require.True(t, evalBool(t, replaced.Eq(Str("hello there"))))
}

func TestSeqIndexOf(t *testing.T) {
	s := Str("hello world")
	idx := s.IndexOf(Str("world"), Big(big.NewInt(0)))
	require.True(t, evalBool(t, HasValue(idx)))
	require.True(t, evalBool(t, Value(idx).Eq(Big(big.NewInt(6)))))
}

func TestSeqAtAndNth(t *testing.T) {
	s := Unit[int32](I32(9)).Concat(Unit[int32](I32(10)))
	first := At[Seq[int32], int32](s, Big(big.NewInt(0)))
	require.True(t, evalBool(t, HasValue(first)))
	require.True(t, evalBool(t, Value(first).Eq(I32(9))))

	nth := Nth[Seq[int32], int32](s, Big(big.NewInt(1)))
	require.True(t, evalBool(t, nth.Eq(I32(10))))
}

func TestSeqMatchesRegex(t *testing.T) {
	r := regexast.Star(regexast.RuneRange('a', 'z'))
	require.True(t, evalBool(t, Str("hello").MatchesRegex(r)))
	require.False(t, evalBool(t, Str("Hello").MatchesRegex(r)))
}
