package sym

import (
	"math/big"
	"reflect"

	"github.com/symexlang/symex/internal/symerr"
	"github.com/symexlang/symex/internal/symeval/concrete"
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
)

// encode/decode give Function.Evaluate a way to cross between a
// caller's plain Go value and the expression core, without asking every
// caller to build literals through the combinator surface by hand. They
// cover the realistic "first-order program over typed values" surface
// this package targets: booleans, the builtin integer kinds, strings,
// *big.Int, struct records (via the same `sym:"..."` tag NewRecord
// uses), and slices (mapped to the unbounded Seq, matching a Go slice's
// own unbounded-length semantics — a genuinely depth-bounded FSeq
// argument must be built explicitly in the function body instead, via
// EmptyFSeq/AddFront, since Go has no way to tell "this slice is really
// an FSeq" apart from "this slice is really a Seq" by its shape alone).
//
// Map/Set/ConstMap/Option/ FSeq-shaped Go-native arguments are
// deliberately out of scope here: a caller wanting to evaluate a
// function over one of those richer shapes builds the symbolic value
// directly with the combinators in mapset.go/option.go/fseq.go and
// drives the expression through internal/symeval/concrete.Eval itself,
// rather than through this automatic encode/decode path.

var bigIntType = reflect.TypeOf((*big.Int)(nil))

func typeOf(t reflect.Type) (symtype.Type, error) {
	if t == bigIntType {
		return symtype.BigInt{}, nil
	}
	switch t.Kind() {
	case reflect.Bool:
		return symtype.Bool{}, nil
	case reflect.Int8:
		return symtype.I8, nil
	case reflect.Int16:
		return symtype.I16, nil
	case reflect.Int32:
		return symtype.I32, nil
	case reflect.Int64, reflect.Int:
		return symtype.I64, nil
	case reflect.Uint8:
		return symtype.U8, nil
	case reflect.Uint16:
		return symtype.U16, nil
	case reflect.Uint32:
		return symtype.U32, nil
	case reflect.Uint64, reflect.Uint:
		return symtype.U64, nil
	case reflect.String:
		return symtype.String{}, nil
	case reflect.Slice:
		elem, err := typeOf(t.Elem())
		if err != nil {
			return nil, err
		}
		return symtype.Seq{Elem: elem}, nil
	case reflect.Struct:
		return registry.ReflectRecord(t)
	case reflect.Pointer:
		if t.Elem().Kind() == reflect.Struct {
			return registry.ReflectRecord(t.Elem())
		}
		return nil, symerr.NewUnsupportedType(t.String(), "", "unsupported pointer kind")
	default:
		return nil, symerr.NewUnsupportedType(t.String(), "", "unsupported Go kind "+t.Kind().String())
	}
}

func encode(rv reflect.Value) (symexpr.Node, error) {
	t := rv.Type()
	if t == bigIntType {
		bi, _ := rv.Interface().(*big.Int)
		if bi == nil {
			bi = big.NewInt(0)
		}
		return symexpr.BigInt(bi), nil
	}
	switch t.Kind() {
	case reflect.Bool:
		return symexpr.Bool(rv.Bool()), nil
	case reflect.Int8:
		return symexpr.BitvecI(8, true, rv.Int()), nil
	case reflect.Int16:
		return symexpr.BitvecI(16, true, rv.Int()), nil
	case reflect.Int32:
		return symexpr.BitvecI(32, true, rv.Int()), nil
	case reflect.Int64, reflect.Int:
		return symexpr.BitvecI(64, true, rv.Int()), nil
	case reflect.Uint8:
		return symexpr.BitvecI(8, false, int64(rv.Uint())), nil
	case reflect.Uint16:
		return symexpr.BitvecI(16, false, int64(rv.Uint())), nil
	case reflect.Uint32:
		return symexpr.BitvecI(32, false, int64(rv.Uint())), nil
	case reflect.Uint64, reflect.Uint:
		return symexpr.BitvecI(64, false, int64(rv.Uint())), nil
	case reflect.String:
		return symexpr.Str(rv.String()), nil
	case reflect.Slice:
		elemType, err := typeOf(t.Elem())
		if err != nil {
			return nil, err
		}
		acc := symexpr.SeqEmptyNode(elemType)
		for i := 0; i < rv.Len(); i++ {
			item, err := encode(rv.Index(i))
			if err != nil {
				return nil, err
			}
			acc, err = symexpr.SeqConcatNode(acc, symexpr.SeqUnitNode(item))
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	case reflect.Struct:
		return encodeStruct(rv)
	case reflect.Pointer:
		if t.Elem().Kind() != reflect.Struct {
			return nil, symerr.NewUnsupportedType(t.String(), "", "unsupported pointer kind")
		}
		if rv.IsNil() {
			return nil, symerr.NewUnsupportedType(t.String(), "", "nil struct pointer cannot be encoded")
		}
		return encodeStruct(rv.Elem())
	default:
		return nil, symerr.NewUnsupportedType(t.String(), "", "unsupported Go kind "+t.Kind().String())
	}
}

func encodeStruct(rv reflect.Value) (symexpr.Node, error) {
	t := rv.Type()
	rec, err := registry.ReflectRecord(t)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]symexpr.Node, len(rec.Fields))
	for i := 0; i < t.NumField(); i++ {
		tag, ok := t.Field(i).Tag.Lookup("sym")
		if !ok || tag == "-" {
			continue
		}
		fv, err := encode(rv.Field(i))
		if err != nil {
			return nil, err
		}
		fields[tag] = fv
	}
	return symexpr.NewObject(rec, fields)
}

func decode(rv reflect.Value, v concrete.Value) error {
	switch val := v.(type) {
	case concrete.VBool:
		rv.SetBool(val.V)
		return nil
	case concrete.VBitvec:
		if rv.Type() == bigIntType {
			rv.Set(reflect.ValueOf(new(big.Int).Set(val.V)))
			return nil
		}
		switch rv.Kind() {
		case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
			rv.SetInt(val.V.Int64())
		default:
			rv.SetUint(val.V.Uint64())
		}
		return nil
	case concrete.VBigInt:
		rv.Set(reflect.ValueOf(new(big.Int).Set(val.V)))
		return nil
	case concrete.VChar:
		rv.SetInt(int64(val.V))
		return nil
	case concrete.VString:
		rv.SetString(val.V)
		return nil
	case concrete.VSeq:
		out := reflect.MakeSlice(rv.Type(), len(val.Items), len(val.Items))
		for i, item := range val.Items {
			if err := decode(out.Index(i), item); err != nil {
				return err
			}
		}
		rv.Set(out)
		return nil
	case concrete.VRecord:
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			tag, ok := t.Field(i).Tag.Lookup("sym")
			if !ok || tag == "-" {
				continue
			}
			fv, ok := val.Fields[tag]
			if !ok {
				continue
			}
			if err := decode(rv.Field(i), fv); err != nil {
				return err
			}
		}
		return nil
	default:
		return symerr.NewUnsupportedType(v.Type().String(), "", "unsupported concrete value in decode")
	}
}

func zeroOf[T any]() (T, reflect.Value) {
	var zero T
	rt := reflect.TypeOf((*T)(nil)).Elem()
	out := reflect.New(rt).Elem()
	return zero, out
}
