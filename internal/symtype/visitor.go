package symtype

import "github.com/symexlang/symex/internal/symerr"

// Visitor has one method per element kind and per structural constructor,
// for structural passes over types. Visit performs the double dispatch; callers implement
// Visitor to fold a Type into a result of type R.
type Visitor[R any] interface {
	VisitBool() R
	VisitBitvec(width int, signed bool) R
	VisitBigInt() R
	VisitReal() R
	VisitChar() R
	VisitOption(elem Type) R
	VisitFSeq(elem Type) R
	VisitSeq(elem Type) R
	VisitMap(key, val Type) R
	VisitSet(elem Type) R
	VisitConstMap(key, val Type, keys []ConstKey) R
	VisitObject(rec *Record) R
}

// Visit dispatches t to the matching Visitor method. String dispatches to
// VisitSeq(Char{}) since it is sugar, not a distinct structural constructor.
func Visit[R any](t Type, v Visitor[R]) R {
	switch x := t.(type) {
	case Bool:
		return v.VisitBool()
	case Bitvec:
		return v.VisitBitvec(x.Width, x.Signed)
	case BigInt:
		return v.VisitBigInt()
	case Real:
		return v.VisitReal()
	case Char:
		return v.VisitChar()
	case String:
		return v.VisitSeq(Char{})
	case Option:
		return v.VisitOption(x.Elem)
	case FSeq:
		return v.VisitFSeq(x.Elem)
	case Seq:
		return v.VisitSeq(x.Elem)
	case Map:
		return v.VisitMap(x.Key, x.Val)
	case Set:
		return v.VisitSet(x.Elem)
	case ConstMap:
		return v.VisitConstMap(x.Key, x.Val, x.Keys)
	case *Record:
		return v.VisitObject(x)
	default:
		var zero R
		return zero
	}
}

// Validate walks t and returns an UnsupportedTypeError if t (or anything
// it contains) falls outside the closed universe: FSeq must not appear
// directly as a Map/Set value, and records must not recurse.
func Validate(t Type) error {
	return validate(t, "$", map[*Record]bool{})
}

func validate(t Type, path string, seen map[*Record]bool) error {
	switch x := t.(type) {
	case Bool, Bitvec, BigInt, Real, Char, String:
		return nil
	case Option:
		return validate(x.Elem, path+".Value", seen)
	case FSeq:
		return validate(x.Elem, path+"[]", seen)
	case Seq:
		return validate(x.Elem, path+"[]", seen)
	case Map:
		if _, ok := x.Val.(FSeq); ok {
			return symerr.NewUnsupportedType(x.String(), path, "FSeq may not appear as a Map value; wrap it in a record or use a ConstMap of fixed arity instead")
		}
		if err := validate(x.Key, path+".Key", seen); err != nil {
			return err
		}
		return validate(x.Val, path+".Value", seen)
	case Set:
		if _, ok := x.Elem.(FSeq); ok {
			return symerr.NewUnsupportedType(x.String(), path, "FSeq may not appear as a Set element")
		}
		return validate(x.Elem, path+".Elem", seen)
	case ConstMap:
		if err := validate(x.Key, path+".Key", seen); err != nil {
			return err
		}
		return validate(x.Val, path+".Value", seen)
	case *Record:
		if seen[x] {
			return symerr.NewUnsupportedType(x.Name, path, "recursive records are not supported")
		}
		seen[x] = true
		defer delete(seen, x)
		for _, f := range x.Fields {
			if err := validate(f.Type, path+"."+f.Name, seen); err != nil {
				return err
			}
		}
		return nil
	default:
		return symerr.NewUnsupportedType("unknown", path, "type does not belong to the closed universe")
	}
}
