package sym

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/symexlang/symex/internal/symtype"
)

func TestMapSetGetDelete(t *testing.T) {
	m := EmptyMap[int32, int32](symtype.I32, symtype.I32)
	m = MapSet(m, I32(1), I32(100))

	v := MapGet(m, I32(1))
	require.True(t, evalBool(t, HasValue(v)))
	require.True(t, evalBool(t, Value(v).Eq(I32(100))))

	absent := MapGet(m, I32(2))
	require.False(t, evalBool(t, HasValue(absent)))

	m = MapDelete(m, I32(1))
	require.False(t, evalBool(t, HasValue(MapGet(m, I32(1)))))
}

func TestMapCombine(t *testing.T) {
	lhs := MapSet(EmptyMap[int32, int32](symtype.I32, symtype.I32), I32(1), I32(10))
	rhs := MapSet(EmptyMap[int32, int32](symtype.I32, symtype.I32), I32(2), I32(20))

	union := MapUnion(lhs, rhs)
	require.True(t, evalBool(t, HasValue(MapGet(union, I32(1)))))
	require.True(t, evalBool(t, HasValue(MapGet(union, I32(2)))))

	intersect := MapIntersect(lhs, rhs)
	require.False(t, evalBool(t, HasValue(MapGet(intersect, I32(1)))))
}

func TestSetAddContainsDelete(t *testing.T) {
	s := EmptySet[int32](symtype.I32)
	s = SetAdd(s, I32(5))
	require.True(t, evalBool(t, SetContains(s, I32(5))))
	require.False(t, evalBool(t, SetContains(s, I32(6))))

	s = SetDelete(s, I32(5))
	require.False(t, evalBool(t, SetContains(s, I32(5))))
}

func TestSetCombine(t *testing.T) {
	lhs := SetAdd(EmptySet[int32](symtype.I32), I32(1))
	rhs := SetAdd(EmptySet[int32](symtype.I32), I32(2))

	union := SetUnion(lhs, rhs)
	require.True(t, evalBool(t, SetContains(union, I32(1))))
	require.True(t, evalBool(t, SetContains(union, I32(2))))

	diff := SetDifference(union, rhs)
	require.True(t, evalBool(t, SetContains(diff, I32(1))))
	require.False(t, evalBool(t, SetContains(diff, I32(2))))
}
