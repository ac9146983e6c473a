package sym

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/symexlang/symex/internal/symtype"
)

func TestFSeqCaseOnEmpty(t *testing.T) {
	empty := EmptyFSeq[int32](symtype.I32)
	result := Case(empty, I32(-1), func(head Sym[Option[int32]], tail Sym[FSeq[int32]]) Sym[int32] {
		return If(HasValue(head), Value(head), I32(-1))
	})
	require.True(t, evalBool(t, result.Eq(I32(-1))))
}

func TestFSeqCaseOnNonEmpty(t *testing.T) {
	list := AddFront(Some(I32(42)), EmptyFSeq[int32](symtype.I32))
	result := Case(list, I32(-1), func(head Sym[Option[int32]], tail Sym[FSeq[int32]]) Sym[int32] {
		return If(HasValue(head), Value(head), I32(-1))
	})
	require.True(t, evalBool(t, result.Eq(I32(42))))
}
