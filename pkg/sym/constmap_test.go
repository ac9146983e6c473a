package sym

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/symexlang/symex/internal/symtype"
)

func constMapType() symtype.ConstMap {
	return symtype.ConstMap{
		Key:  symtype.String{},
		Val:  symtype.I32,
		Keys: []symtype.ConstKey{"r", "g", "b"},
	}
}

func TestConstMapGet(t *testing.T) {
	m := NewConstMap[string, int32](constMapType(), map[string]Sym[int32]{
		"r": I32(255),
		"g": I32(128),
		"b": I32(0),
	})

	require.True(t, evalBool(t, ConstMapGet(m, "r").Eq(I32(255))))
	require.True(t, evalBool(t, ConstMapGet(m, "g").Eq(I32(128))))
}

func TestConstMapSet(t *testing.T) {
	m := NewConstMap[string, int32](constMapType(), map[string]Sym[int32]{
		"r": I32(255),
		"g": I32(128),
		"b": I32(0),
	})
	m2 := ConstMapSet(m, "b", I32(64))

	require.True(t, evalBool(t, ConstMapGet(m2, "b").Eq(I32(64))))
	require.True(t, evalBool(t, ConstMapGet(m2, "r").Eq(I32(255))))
}
