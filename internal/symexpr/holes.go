package symexpr

// Holes walks every root's subtree and returns each distinct Arbitrary
// node reachable from it, in first-encountered order. Shared
// subexpressions are only descended into once: the walk is memoised by
// node id, which is safe because every non-Arbitrary node is
// hash-consed (so two parents pointing at "the same" child really do
// share one node) and every Arbitrary carries its own unique id anyway.
func Holes(roots ...Node) []*Arbitrary {
	seen := make(map[uint64]bool)
	var out []*Arbitrary
	var walk func(Node)
	walk = func(n Node) {
		if n == nil || seen[n.ID()] {
			return
		}
		seen[n.ID()] = true
		switch t := n.(type) {
		case *Arbitrary:
			out = append(out, t)
		case *Argument:
			// bound by an enclosing Case/combinator body, not a search hole
		case *BoolConst, *BitvecConst, *BigIntConst, *RealConst, *CharConst, *StringConst:
			// literal, no children

		case *LogicAnd:
			walkAll(t.Args, walk)
		case *LogicOr:
			walkAll(t.Args, walk)
		case *LogicNot:
			walk(t.X)
		case *Iff:
			walk(t.Lhs)
			walk(t.Rhs)
		case *If:
			walk(t.Guard)
			walk(t.Then)
			walk(t.Else)

		case *Arith:
			walk(t.Lhs)
			walk(t.Rhs)
		case *Bitwise:
			walk(t.Lhs)
			walk(t.Rhs)
		case *BitNot:
			walk(t.X)
		case *Cast:
			walk(t.X)
		case *Compare:
			walk(t.Lhs)
			walk(t.Rhs)

		case *CreateObject:
			walkAll(t.Values, walk)
		case *GetField:
			walk(t.Obj)
		case *WithField:
			walk(t.Obj)
			walk(t.Value)

		case *FSeqEmpty:
		case *FSeqAddFront:
			walk(t.Head)
			walk(t.Tail)
		case *FSeqCase:
			walk(t.List)
			walk(t.Empty)
			walk(t.Cons)

		case *SeqEmpty:
		case *SeqUnit:
			walk(t.Elem)
		case *SeqConcat:
			walk(t.Lhs)
			walk(t.Rhs)
		case *SeqLength:
			walk(t.Seq)
		case *SeqAt:
			walk(t.Seq)
			walk(t.Index)
		case *SeqNth:
			walk(t.Seq)
			walk(t.Index)
		case *SeqContains:
			walk(t.Haystack)
			walk(t.Needle)
		case *SeqIndexOf:
			walk(t.Haystack)
			walk(t.Needle)
			walk(t.From)
		case *SeqSlice:
			walk(t.Seq)
			walk(t.Offset)
			walk(t.Length)
		case *SeqReplaceFirst:
			walk(t.Seq)
			walk(t.Target)
			walk(t.Replacement)
		case *SeqMatchesRegex:
			walk(t.Seq)

		case *MapEmpty:
		case *MapSet:
			walk(t.Map)
			walk(t.Key)
			walk(t.Value)
		case *MapDelete:
			walk(t.Map)
			walk(t.Key)
		case *MapGet:
			walk(t.Map)
			walk(t.Key)
		case *MapCombine:
			walk(t.Lhs)
			walk(t.Rhs)

		case *ConstMapLiteral:
			for _, k := range t.Typ.Keys {
				walk(t.Values[k])
			}
		case *ConstMapWith:
			walk(t.Map)
			walk(t.Value)
		case *ConstMapGet:
			walk(t.Map)

		case *OptionNone:
		case *OptionSome:
			walk(t.Value)
		case *OptionHasValue:
			walk(t.Opt)
		case *OptionValue:
			walk(t.Opt)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return out
}

func walkAll(ns []Node, walk func(Node)) {
	for _, n := range ns {
		walk(n)
	}
}
