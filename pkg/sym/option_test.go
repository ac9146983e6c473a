package sym

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/symexlang/symex/internal/symtype"
)

func TestOptionSomeHasValue(t *testing.T) {
	o := Some(I32(7))
	require.True(t, evalBool(t, HasValue(o)))
	require.True(t, evalBool(t, Value(o).Eq(I32(7))))
}

func TestOptionNoneHasNoValue(t *testing.T) {
	o := None[int32](symtype.I32)
	require.False(t, evalBool(t, HasValue(o)))
}
