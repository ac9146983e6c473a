package symtype_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symexlang/symex/internal/symtype"
)

func TestBitvecString(t *testing.T) {
	tests := []struct {
		name string
		bv   symtype.Bitvec
		want string
	}{
		{"u8", symtype.U8, "u8"},
		{"i32", symtype.I32, "i32"},
		{"arbitrary width", symtype.BV(17, false), "u17"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bv.String())
		})
	}
}

type collectVisitor struct {
	kinds []symtype.Kind
}

func (c *collectVisitor) VisitBool() any                 { c.kinds = append(c.kinds, symtype.KindBool); return nil }
func (c *collectVisitor) VisitBitvec(int, bool) any       { c.kinds = append(c.kinds, symtype.KindBitvec); return nil }
func (c *collectVisitor) VisitBigInt() any                { c.kinds = append(c.kinds, symtype.KindBigInt); return nil }
func (c *collectVisitor) VisitReal() any                  { c.kinds = append(c.kinds, symtype.KindReal); return nil }
func (c *collectVisitor) VisitChar() any                  { c.kinds = append(c.kinds, symtype.KindChar); return nil }
func (c *collectVisitor) VisitOption(symtype.Type) any    { c.kinds = append(c.kinds, symtype.KindOption); return nil }
func (c *collectVisitor) VisitFSeq(symtype.Type) any      { c.kinds = append(c.kinds, symtype.KindFSeq); return nil }
func (c *collectVisitor) VisitSeq(symtype.Type) any       { c.kinds = append(c.kinds, symtype.KindSeq); return nil }
func (c *collectVisitor) VisitMap(symtype.Type, symtype.Type) any {
	c.kinds = append(c.kinds, symtype.KindMap)
	return nil
}
func (c *collectVisitor) VisitSet(symtype.Type) any { c.kinds = append(c.kinds, symtype.KindSet); return nil }
func (c *collectVisitor) VisitConstMap(symtype.Type, symtype.Type, []symtype.ConstKey) any {
	c.kinds = append(c.kinds, symtype.KindConstMap)
	return nil
}
func (c *collectVisitor) VisitObject(*symtype.Record) any {
	c.kinds = append(c.kinds, symtype.KindRecord)
	return nil
}

func TestVisitDispatchesStringAsSeqOfChar(t *testing.T) {
	v := &collectVisitor{}
	symtype.Visit[any](symtype.String{}, v)
	require.Equal(t, []symtype.Kind{symtype.KindSeq}, v.kinds)
}

func TestVisitDispatchesEveryKind(t *testing.T) {
	rec := &symtype.Record{Name: "P", Fields: []symtype.FieldDescriptor{{Name: "x", Type: symtype.Bool{}}}}
	types := []symtype.Type{
		symtype.Bool{}, symtype.U8, symtype.BigInt{}, symtype.Real{}, symtype.Char{},
		symtype.Option{Elem: symtype.Bool{}}, symtype.FSeq{Elem: symtype.Bool{}},
		symtype.Seq{Elem: symtype.Char{}}, symtype.Map{Key: symtype.U8, Val: symtype.Bool{}},
		symtype.Set{Elem: symtype.U8}, symtype.ConstMap{Key: symtype.U8, Val: symtype.Bool{}}, rec,
	}
	v := &collectVisitor{}
	for _, ty := range types {
		symtype.Visit[any](ty, v)
	}
	assert.Len(t, v.kinds, len(types))
}

func TestValidateRejectsFSeqAsMapValue(t *testing.T) {
	bad := symtype.Map{Key: symtype.U8, Val: symtype.FSeq{Elem: symtype.U8}}
	err := symtype.Validate(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FSeq")
}

func TestValidateRejectsRecursiveRecord(t *testing.T) {
	rec := &symtype.Record{Name: "Node"}
	rec.Fields = []symtype.FieldDescriptor{{Name: "next", Type: rec}}
	err := symtype.Validate(rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recursive")
}

func TestOptionAsRecordShape(t *testing.T) {
	opt := symtype.Option{Elem: symtype.U32}
	rec := opt.AsRecord()
	hv, ok := rec.FieldByName("HasValue")
	require.True(t, ok)
	assert.Equal(t, symtype.KindBool, hv.Type.Kind())
	val, ok := rec.FieldByName("Value")
	require.True(t, ok)
	assert.Equal(t, symtype.U32, val.Type)
}

func TestRegistryReflectRecord(t *testing.T) {
	type Point struct {
		X int32 `sym:"X"`
		Y int32 `sym:"Y"`
		Z int32 `sym:"-"`
	}
	reg := symtype.NewRegistry()
	rec, err := reg.ReflectRecord(reflect.TypeOf(Point{}))
	require.NoError(t, err)
	assert.Len(t, rec.Fields, 2)

	again, err := reg.ReflectRecord(reflect.TypeOf(Point{}))
	require.NoError(t, err)
	assert.Same(t, rec, again, "reflection must be cached by Go type identity")
}
