package sym

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/symexlang/symex/internal/symeval/concrete"
)

type point struct {
	X int32 `sym:"x"`
	Y int32 `sym:"y"`
}

func TestRecordFieldRoundTrip(t *testing.T) {
	p := NewRecord[point](map[string]AnySym{
		"x": I32(3),
		"y": I32(4),
	})

	x := Field[point, int32](p, "x")
	require.True(t, evalBool(t, x.Eq(I32(3))))
}

func TestRecordWithField(t *testing.T) {
	p := NewRecord[point](map[string]AnySym{
		"x": I32(3),
		"y": I32(4),
	})
	p2 := WithField(p, "x", I32(10))

	x := Field[point, int32](p2, "x")
	y := Field[point, int32](p2, "y")
	require.True(t, evalBool(t, x.Eq(I32(10))))
	require.True(t, evalBool(t, y.Eq(I32(4))))
}

func TestRecordEvaluatesToVRecord(t *testing.T) {
	p := NewRecord[point](map[string]AnySym{
		"x": I32(1),
		"y": I32(2),
	})
	v, err := concrete.Eval(p.Node(), concrete.NewAssignment())
	require.NoError(t, err)
	rec, ok := v.(concrete.VRecord)
	require.True(t, ok, "expected VRecord, got %T", v)
	require.Contains(t, rec.Fields, "x")
	require.Contains(t, rec.Fields, "y")
}
