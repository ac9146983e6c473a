// Package concrete evaluates an expression DAG node against a concrete
// assignment of its Arbitrary holes, producing an ordinary Go value.
// This is the execution mode used to check a candidate model returned by
// a solver, and to run example/golden programs with fixed inputs.
package concrete

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/symexlang/symex/internal/symtype"
)

// Value is implemented by every concrete runtime value.
type Value interface {
	Type() symtype.Type
	String() string
}

// VBool is a concrete boolean.
type VBool struct{ V bool }

func (v VBool) Type() symtype.Type { return symtype.Bool{} }
func (v VBool) String() string     { return fmt.Sprintf("%v", v.V) }

// VBitvec is a concrete fixed/arbitrary-width integer, already normalized
// to its width's representable range.
type VBitvec struct {
	Width  int
	Signed bool
	V      *big.Int
}

func (v VBitvec) Type() symtype.Type { return symtype.BV(v.Width, v.Signed) }
func (v VBitvec) String() string     { return v.V.String() }

// VBigInt is a concrete arbitrary-precision integer.
type VBigInt struct{ V *big.Int }

func (v VBigInt) Type() symtype.Type { return symtype.BigInt{} }
func (v VBigInt) String() string     { return v.V.String() }

// VReal is a concrete rational, Num/Den in lowest terms, Den > 0.
type VReal struct{ Num, Den *big.Int }

func (v VReal) Type() symtype.Type { return symtype.Real{} }
func (v VReal) String() string     { return v.Num.String() + "/" + v.Den.String() }

// VChar is a concrete Unicode codepoint.
type VChar struct{ V rune }

func (v VChar) Type() symtype.Type { return symtype.Char{} }
func (v VChar) String() string     { return string(v.V) }

// VString is a concrete string, sugar over Seq<Char>.
type VString struct{ V string }

func (v VString) Type() symtype.Type { return symtype.String{} }
func (v VString) String() string     { return v.V }

// VRecord is a concrete record value.
type VRecord struct {
	Rec    *symtype.Record
	Fields map[string]Value
}

func (v VRecord) Type() symtype.Type { return v.Rec }
func (v VRecord) String() string {
	parts := make([]string, len(v.Rec.Fields))
	for i, f := range v.Rec.Fields {
		parts[i] = f.Name + ": " + v.Fields[f.Name].String()
	}
	return v.Rec.Name + "{" + strings.Join(parts, ", ") + "}"
}

// VOption is a concrete Option<T>: Val is meaningless when HasValue is false.
type VOption struct {
	Elem     symtype.Type
	HasValue bool
	Val      Value
}

func (v VOption) Type() symtype.Type { return symtype.Option{Elem: v.Elem} }
func (v VOption) String() string {
	if !v.HasValue {
		return "none"
	}
	return "some(" + v.Val.String() + ")"
}

// VFSeq is a concrete finite sequence: each element is itself a VOption,
// mirroring the guarded head representation FSeq.AddFront builds
// (internal/symexpr/fseq.go's Head is Option<T>). A present (HasValue
// true) element denotes a real member; an absent one is skipped during
// Case but still occupies a list cell, matching the guarded-list-group
// shape the symbolic evaluator needs to reproduce here concretely.
type VFSeq struct {
	Elem  symtype.Type
	Items []VOption
}

func (v VFSeq) Type() symtype.Type { return symtype.FSeq{Elem: v.Elem} }
func (v VFSeq) String() string {
	parts := make([]string, len(v.Items))
	for i, it := range v.Items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// VSeq is a concrete unbounded sequence: a plain list of elements, no
// Option-lifting (unlike VFSeq, Seq has no depth-bounded guarded
// representation to reproduce).
type VSeq struct {
	Elem  symtype.Type
	Items []Value
}

func (v VSeq) Type() symtype.Type { return symtype.Seq{Elem: v.Elem} }
func (v VSeq) String() string {
	parts := make([]string, len(v.Items))
	for i, it := range v.Items {
		parts[i] = it.String()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// VMap is a concrete total map (option-lifted: absence = no entry).
// Entries is keyed by a canonical string encoding of the key value so
// that two structurally-equal but distinct Value instances collide.
type VMap struct {
	Key, Val symtype.Type
	IsSet    bool // true when this value represents a Set rather than a general Map
	Entries  map[string]mapEntry
}

type mapEntry struct {
	Key Value
	Val Value
}

func (v VMap) Type() symtype.Type {
	if v.IsSet {
		return symtype.Set{Elem: v.Key}
	}
	return symtype.Map{Key: v.Key, Val: v.Val}
}
func (v VMap) String() string {
	parts := make([]string, 0, len(v.Entries))
	for _, e := range v.Entries {
		parts = append(parts, e.Key.String()+": "+e.Val.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Get returns the value bound to key, or (nil, false) if absent.
func (v VMap) Get(key Value) (Value, bool) {
	e, ok := v.Entries[CanonicalKey(key)]
	if !ok {
		return nil, false
	}
	return e.Val, true
}

// With returns a copy of v with key bound to val.
func (v VMap) With(key, val Value) VMap {
	out := VMap{Key: v.Key, Val: v.Val, IsSet: v.IsSet, Entries: make(map[string]mapEntry, len(v.Entries)+1)}
	for k, e := range v.Entries {
		out.Entries[k] = e
	}
	out.Entries[CanonicalKey(key)] = mapEntry{Key: key, Val: val}
	return out
}

// Without returns a copy of v with key unbound.
func (v VMap) Without(key Value) VMap {
	out := VMap{Key: v.Key, Val: v.Val, IsSet: v.IsSet, Entries: make(map[string]mapEntry, len(v.Entries))}
	for k, e := range v.Entries {
		if k != CanonicalKey(key) {
			out.Entries[k] = e
		}
	}
	return out
}

// VConstMap is a concrete constant-keyed map: every key in Typ.Keys is
// always bound.
type VConstMap struct {
	Typ     symtype.ConstMap
	Entries map[symtype.ConstKey]Value
}

func (v VConstMap) Type() symtype.Type { return v.Typ }
func (v VConstMap) String() string {
	parts := make([]string, 0, len(v.Entries))
	for k, val := range v.Entries {
		parts = append(parts, fmt.Sprintf("%v: %s", k, val.String()))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// CanonicalKey renders a Value into a string unique to its structural
// identity, used as the map key backing VMap.
func CanonicalKey(v Value) string {
	switch t := v.(type) {
	case VBool:
		return fmt.Sprintf("b:%v", t.V)
	case VBitvec:
		return fmt.Sprintf("v:%d:%v:%s", t.Width, t.Signed, t.V.String())
	case VBigInt:
		return "i:" + t.V.String()
	case VReal:
		return "r:" + t.Num.String() + "/" + t.Den.String()
	case VChar:
		return fmt.Sprintf("c:%d", t.V)
	case VString:
		return "s:" + t.V
	case VOption:
		if !t.HasValue {
			return "o:none"
		}
		return "o:some:" + CanonicalKey(t.Val)
	case VRecord:
		s := "rec:" + t.Rec.Name
		for _, f := range t.Rec.Fields {
			s += ":" + f.Name + "=" + CanonicalKey(t.Fields[f.Name])
		}
		return s
	case VSeq:
		s := "seq:"
		for _, it := range t.Items {
			s += CanonicalKey(it) + ","
		}
		return s
	case VFSeq:
		s := "fseq:"
		for _, it := range t.Items {
			s += CanonicalKey(it) + ","
		}
		return s
	default:
		return fmt.Sprintf("?:%v", v)
	}
}
