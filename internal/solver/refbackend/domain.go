package refbackend

import (
	"math/big"

	"github.com/symexlang/symex/internal/symeval/concrete"
	"github.com/symexlang/symex/internal/symtype"
)

// maxCollectionSize bounds how many entries a generated Map/Set/Seq/FSeq
// candidate carries; maxSamplesPerScalar bounds how many distinct values a
// Bitvec/BigInt/Char/String domain samples instead of enumerating in
// full (full enumeration is only used below 2^maxExhaustiveBits).
const (
	maxCollectionSize  = 2
	maxExhaustiveBits  = 8
	maxSamplesPerScalar = 6
)

// domain enumerates a small, bounded set of candidate concrete Values
// for t. It is necessarily incomplete for unbounded types (BigInt, Real,
// String, Seq, Map, Set) — this is the reference backend's documented
// tradeoff: brute-force bounded enumeration can prove SAT whenever a
// witness exists within the sampled domain, but cannot prove UNSAT for
// an infinite-domain hole (see Solve's doc comment).
func domain(t symtype.Type, depth int) []concrete.Value {
	switch v := t.(type) {
	case symtype.Bool:
		return []concrete.Value{concrete.VBool{V: false}, concrete.VBool{V: true}}

	case symtype.Bitvec:
		return bitvecDomain(v)

	case symtype.BigInt:
		out := make([]concrete.Value, 0, maxSamplesPerScalar)
		for _, n := range []int64{-2, -1, 0, 1, 2, 10} {
			out = append(out, concrete.VBigInt{V: big.NewInt(n)})
		}
		return out

	case symtype.Real:
		out := make([]concrete.Value, 0, 4)
		for _, f := range [][2]int64{{0, 1}, {1, 1}, {-1, 1}, {1, 2}} {
			out = append(out, concrete.VReal{Num: big.NewInt(f[0]), Den: big.NewInt(f[1])})
		}
		return out

	case symtype.Char:
		out := make([]concrete.Value, 0, 4)
		for _, r := range []rune{'a', 'b', 'Z', '0'} {
			out = append(out, concrete.VChar{V: r})
		}
		return out

	case symtype.String:
		out := make([]concrete.Value, 0, 4)
		for _, s := range []string{"", "a", "ab", "x"} {
			out = append(out, concrete.VString{V: s})
		}
		return out

	case *symtype.Record:
		return recordDomain(v, depth)

	case symtype.Option:
		return optionDomain(v, depth)

	case symtype.FSeq:
		return fseqDomain(v, depth)

	case symtype.Seq:
		return seqLikeDomain(v.Elem, depth, func(items []concrete.Value) concrete.Value {
			return concrete.VSeq{Elem: v.Elem, Items: items}
		})

	case symtype.Map:
		return mapDomain(v.Key, v.Val, false, depth)

	case symtype.Set:
		return mapDomain(v.Elem, symtype.Bool{}, true, depth)

	case symtype.ConstMap:
		return constMapDomain(v, depth)

	default:
		return nil
	}
}

// isExhaustive reports whether domain(t, ...) enumerates every value t
// can take, as opposed to a bounded sample. Bool and narrow Bitvecs
// (width <= maxExhaustiveBits) are exhaustive; Record/Option are
// exhaustive exactly when every type they carry is. Every other type
// (BigInt, Real, Char, String, FSeq, Seq, Map, Set, ConstMap) is always
// sampled, per domain's own doc comment — Solve/Maximize/Minimize must
// not treat "nothing found in the sample" as a proof for these, which
// is the pre-existing, documented tradeoff this function does not
// change. It exists to let Solve/Maximize/Minimize refuse to report a
// false UNSAT or a wrong optimum for a Bitvec hole too wide to
// enumerate in full, rather than silently trusting the sample.
func isExhaustive(t symtype.Type) bool {
	switch v := t.(type) {
	case symtype.Bool:
		return true
	case symtype.Bitvec:
		return v.Width <= maxExhaustiveBits
	case *symtype.Record:
		for _, fd := range v.Fields {
			if !isExhaustive(fd.Type) {
				return false
			}
		}
		return true
	case symtype.Option:
		return isExhaustive(v.Elem)
	default:
		return false
	}
}

func bitvecDomain(t symtype.Bitvec) []concrete.Value {
	if t.Width <= maxExhaustiveBits {
		n := int64(1) << uint(t.Width)
		out := make([]concrete.Value, 0, n)
		for i := int64(0); i < n; i++ {
			out = append(out, concrete.VBitvec{Width: t.Width, Signed: t.Signed, V: normalizeBitvec(t, big.NewInt(i))})
		}
		return out
	}
	samples := []int64{0, 1, 2, -1, -2}
	maxU := new(big.Int).Lsh(big.NewInt(1), uint(t.Width))
	maxU.Sub(maxU, big.NewInt(1))
	out := make([]concrete.Value, 0, len(samples)+2)
	for _, s := range samples {
		out = append(out, concrete.VBitvec{Width: t.Width, Signed: t.Signed, V: normalizeBitvec(t, big.NewInt(s))})
	}
	out = append(out, concrete.VBitvec{Width: t.Width, Signed: t.Signed, V: normalizeBitvec(t, maxU)})
	return out
}

// normalizeBitvec reduces v modulo 2^width, preserving the
// two's-complement interpretation for signed widths.
func normalizeBitvec(t symtype.Bitvec, v *big.Int) *big.Int {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(t.Width))
	r := new(big.Int).Mod(v, mod)
	if r.Sign() < 0 {
		r.Add(r, mod)
	}
	if t.Signed {
		half := new(big.Int).Rsh(mod, 1)
		if r.Cmp(half) >= 0 {
			r.Sub(r, mod)
		}
	}
	return r
}

func recordDomain(rec *symtype.Record, depth int) []concrete.Value {
	fieldDomains := make([][]concrete.Value, len(rec.Fields))
	for i, fd := range rec.Fields {
		fieldDomains[i] = domain(fd.Type, depth-1)
		if len(fieldDomains[i]) == 0 {
			fieldDomains[i] = []concrete.Value{nil}
		}
	}
	var out []concrete.Value
	cartesian(fieldDomains, func(choice []concrete.Value) {
		fields := make(map[string]concrete.Value, len(rec.Fields))
		for i, fd := range rec.Fields {
			fields[fd.Name] = choice[i]
		}
		out = append(out, concrete.VRecord{Rec: rec, Fields: fields})
	})
	return out
}

func optionDomain(o symtype.Option, depth int) []concrete.Value {
	out := []concrete.Value{concrete.VOption{Elem: o.Elem, HasValue: false}}
	if depth <= 0 {
		return out
	}
	for _, v := range domain(o.Elem, depth-1) {
		out = append(out, concrete.VOption{Elem: o.Elem, HasValue: true, Val: v})
	}
	return out
}

func fseqDomain(f symtype.FSeq, depth int) []concrete.Value {
	return seqLikeDomain(symtype.Option{Elem: f.Elem}, depth, func(items []concrete.Value) concrete.Value {
		opts := make([]concrete.VOption, len(items))
		for i, it := range items {
			opts[i] = it.(concrete.VOption)
		}
		return concrete.VFSeq{Elem: f.Elem, Items: opts}
	})
}

// seqLikeDomain enumerates sequences of length 0..maxCollectionSize
// drawn from elem's own (recursively bounded) domain.
func seqLikeDomain(elem symtype.Type, depth int, build func([]concrete.Value) concrete.Value) []concrete.Value {
	elemDomain := domain(elem, depth-1)
	if len(elemDomain) == 0 {
		elemDomain = []concrete.Value{nil}
	}
	var out []concrete.Value
	out = append(out, build(nil))
	for length := 1; length <= maxCollectionSize; length++ {
		slots := make([][]concrete.Value, length)
		for i := range slots {
			slots[i] = elemDomain
		}
		cartesian(slots, func(choice []concrete.Value) {
			items := make([]concrete.Value, length)
			copy(items, choice)
			out = append(out, build(items))
		})
	}
	return out
}

func mapDomain(key, val symtype.Type, isSet bool, depth int) []concrete.Value {
	keyDomain := domain(key, depth-1)
	valDomain := []concrete.Value{nil}
	if !isSet {
		valDomain = domain(val, depth-1)
	}
	if len(keyDomain) == 0 || len(valDomain) == 0 {
		return []concrete.Value{concrete.VMap{Key: key, Val: val, IsSet: isSet}}
	}
	var out []concrete.Value
	for size := 0; size <= maxCollectionSize; size++ {
		keySlots := make([][]concrete.Value, size)
		for i := range keySlots {
			keySlots[i] = keyDomain
		}
		cartesian(keySlots, func(keys []concrete.Value) {
			valSlots := make([][]concrete.Value, size)
			for i := range valSlots {
				if isSet {
					valSlots[i] = []concrete.Value{concrete.VBool{V: true}}
				} else {
					valSlots[i] = valDomain
				}
			}
			cartesian(valSlots, func(vals []concrete.Value) {
				m := concrete.VMap{Key: key, Val: val, IsSet: isSet}
				for i := 0; i < size; i++ {
					m = m.With(keys[i], vals[i])
				}
				out = append(out, m)
			})
		})
	}
	return out
}

func constMapDomain(c symtype.ConstMap, depth int) []concrete.Value {
	valDomain := domain(c.Val, depth-1)
	if len(valDomain) == 0 {
		valDomain = []concrete.Value{nil}
	}
	slots := make([][]concrete.Value, len(c.Keys))
	for i := range slots {
		slots[i] = valDomain
	}
	var out []concrete.Value
	cartesian(slots, func(choice []concrete.Value) {
		entries := make(map[symtype.ConstKey]concrete.Value, len(c.Keys))
		for i, k := range c.Keys {
			entries[k] = choice[i]
		}
		out = append(out, concrete.VConstMap{Typ: c, Entries: entries})
	})
	return out
}

// cartesian calls visit once per element of the cartesian product of
// slots, in order. An empty slots list calls visit once with an empty
// choice (the unit product).
func cartesian(slots [][]concrete.Value, visit func(choice []concrete.Value)) {
	choice := make([]concrete.Value, len(slots))
	var rec func(i int)
	rec = func(i int) {
		if i == len(slots) {
			visit(choice)
			return
		}
		for _, v := range slots[i] {
			choice[i] = v
			rec(i + 1)
		}
	}
	rec(0)
}
