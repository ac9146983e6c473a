package symjson_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symexlang/symex/internal/solver"
	"github.com/symexlang/symex/internal/symeval/concrete"
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symjson"
	"github.com/symexlang/symex/internal/symtype"
)

func TestExportModelRoundtrip(t *testing.T) {
	b := symexpr.NewBuilder()
	x := b.NewArbitrary(symtype.U8, "x")

	model := solver.NewModel(map[uint64]concrete.Value{
		x.ID(): concrete.VBitvec{Width: 8, Signed: false, V: big.NewInt(7)},
	})

	doc, err := symjson.ExportModel(model, []*symexpr.Arbitrary{x})
	require.NoError(t, err)

	assert.Equal(t, "7", symjson.Field(doc, "x.value"))
	assert.Equal(t, "u8", symjson.Field(doc, "x.type"))
}

func TestExportModelSkipsUnboundHoles(t *testing.T) {
	b := symexpr.NewBuilder()
	x := b.NewArbitrary(symtype.Bool{}, "x")
	model := solver.NewModel(map[uint64]concrete.Value{})

	doc, err := symjson.ExportModel(model, []*symexpr.Arbitrary{x})
	require.NoError(t, err)
	assert.Equal(t, "{}", doc)
}
