package gen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symexlang/symex/internal/symeval/gen"
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
)

func TestGenerateScalar(t *testing.T) {
	b := symexpr.NewBuilder()
	n, err := gen.Generate(b, symtype.U32, 0, "x", true)
	require.NoError(t, err)
	_, ok := n.(*symexpr.Arbitrary)
	assert.True(t, ok)
	assert.Equal(t, symtype.U32, n.Type())
}

func TestGenerateFSeqBoundsDepth(t *testing.T) {
	b := symexpr.NewBuilder()
	n, err := gen.Generate(b, symtype.FSeq{Elem: symtype.U8}, 3, "xs", true)
	require.NoError(t, err)

	depth := 0
	cur := n
	for {
		add, ok := cur.(*symexpr.FSeqAddFront)
		if !ok {
			break
		}
		depth++
		_, guarded := add.Head.(*symexpr.If)
		assert.True(t, guarded, "checkSmallerDepths=true must gate each cell with an If guard")
		cur = add.Tail
	}
	_, isEmpty := cur.(*symexpr.FSeqEmpty)
	assert.True(t, isEmpty)
	assert.Equal(t, 3, depth)
}

func TestGenerateFSeqExactDepthWhenNotCheckingSmallerDepths(t *testing.T) {
	b := symexpr.NewBuilder()
	n, err := gen.Generate(b, symtype.FSeq{Elem: symtype.U8}, 3, "xs", false)
	require.NoError(t, err)

	depth := 0
	cur := n
	for {
		add, ok := cur.(*symexpr.FSeqAddFront)
		if !ok {
			break
		}
		depth++
		_, guarded := add.Head.(*symexpr.If)
		assert.False(t, guarded, "checkSmallerDepths=false must force every cell present, with no guard")
		_, isSome := add.Head.(*symexpr.OptionSome)
		assert.True(t, isSome)
		cur = add.Tail
	}
	_, isEmpty := cur.(*symexpr.FSeqEmpty)
	assert.True(t, isEmpty)
	assert.Equal(t, 3, depth)
}

func TestGenerateRecord(t *testing.T) {
	reg := symtype.NewRegistry()
	rec := reg.RegisterRecord("Point", []symtype.FieldDescriptor{
		{Name: "X", Type: symtype.U32},
		{Name: "Y", Type: symtype.U32},
	})
	b := symexpr.NewBuilder()
	n, err := gen.Generate(b, rec, 0, "p", true)
	require.NoError(t, err)
	obj, ok := n.(*symexpr.CreateObject)
	require.True(t, ok)
	assert.Len(t, obj.Values, 2)
}
