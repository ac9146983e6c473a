package symexpr

// Visitor is implemented by every structural pass over the expression
// DAG: one designated method per node kind, double-dispatched through
// Visit's type switch (no reflection, no code generation — the teacher's
// generated walker shape, hand-written once here since the node set is
// closed and small). Env carries whatever per-call context a pass needs
// (a variable environment, a symbolic store, ...); passes with no need
// for one can instantiate Env as struct{}.
type Visitor[Env, R any] interface {
	VisitBoolConst(n *BoolConst, env Env) R
	VisitBitvecConst(n *BitvecConst, env Env) R
	VisitBigIntConst(n *BigIntConst, env Env) R
	VisitRealConst(n *RealConst, env Env) R
	VisitCharConst(n *CharConst, env Env) R
	VisitStringConst(n *StringConst, env Env) R
	VisitArbitrary(n *Arbitrary, env Env) R
	VisitArgument(n *Argument, env Env) R

	VisitLogicAnd(n *LogicAnd, env Env) R
	VisitLogicOr(n *LogicOr, env Env) R
	VisitLogicNot(n *LogicNot, env Env) R
	VisitIff(n *Iff, env Env) R
	VisitIf(n *If, env Env) R

	VisitArith(n *Arith, env Env) R
	VisitBitwise(n *Bitwise, env Env) R
	VisitBitNot(n *BitNot, env Env) R
	VisitCast(n *Cast, env Env) R
	VisitCompare(n *Compare, env Env) R

	VisitCreateObject(n *CreateObject, env Env) R
	VisitGetField(n *GetField, env Env) R
	VisitWithField(n *WithField, env Env) R

	VisitFSeqEmpty(n *FSeqEmpty, env Env) R
	VisitFSeqAddFront(n *FSeqAddFront, env Env) R
	VisitFSeqCase(n *FSeqCase, env Env) R

	VisitSeqEmpty(n *SeqEmpty, env Env) R
	VisitSeqUnit(n *SeqUnit, env Env) R
	VisitSeqConcat(n *SeqConcat, env Env) R
	VisitSeqLength(n *SeqLength, env Env) R
	VisitSeqAt(n *SeqAt, env Env) R
	VisitSeqNth(n *SeqNth, env Env) R
	VisitSeqContains(n *SeqContains, env Env) R
	VisitSeqIndexOf(n *SeqIndexOf, env Env) R
	VisitSeqSlice(n *SeqSlice, env Env) R
	VisitSeqReplaceFirst(n *SeqReplaceFirst, env Env) R
	VisitSeqMatchesRegex(n *SeqMatchesRegex, env Env) R

	VisitMapEmpty(n *MapEmpty, env Env) R
	VisitMapSet(n *MapSet, env Env) R
	VisitMapDelete(n *MapDelete, env Env) R
	VisitMapGet(n *MapGet, env Env) R
	VisitMapCombine(n *MapCombine, env Env) R

	VisitConstMapLiteral(n *ConstMapLiteral, env Env) R
	VisitConstMapWith(n *ConstMapWith, env Env) R
	VisitConstMapGet(n *ConstMapGet, env Env) R

	VisitOptionNone(n *OptionNone, env Env) R
	VisitOptionSome(n *OptionSome, env Env) R
	VisitOptionHasValue(n *OptionHasValue, env Env) R
	VisitOptionValue(n *OptionValue, env Env) R
}

// Visit dispatches n to the Visitor method matching its dynamic type.
// It panics on an unrecognised Node implementation: the node universe is
// closed, so that only happens if a new node kind was added here without
// a matching Visitor method, a programming error worth failing loudly on.
func Visit[Env, R any](n Node, env Env, v Visitor[Env, R]) R {
	switch t := n.(type) {
	case *BoolConst:
		return v.VisitBoolConst(t, env)
	case *BitvecConst:
		return v.VisitBitvecConst(t, env)
	case *BigIntConst:
		return v.VisitBigIntConst(t, env)
	case *RealConst:
		return v.VisitRealConst(t, env)
	case *CharConst:
		return v.VisitCharConst(t, env)
	case *StringConst:
		return v.VisitStringConst(t, env)
	case *Arbitrary:
		return v.VisitArbitrary(t, env)
	case *Argument:
		return v.VisitArgument(t, env)

	case *LogicAnd:
		return v.VisitLogicAnd(t, env)
	case *LogicOr:
		return v.VisitLogicOr(t, env)
	case *LogicNot:
		return v.VisitLogicNot(t, env)
	case *Iff:
		return v.VisitIff(t, env)
	case *If:
		return v.VisitIf(t, env)

	case *Arith:
		return v.VisitArith(t, env)
	case *Bitwise:
		return v.VisitBitwise(t, env)
	case *BitNot:
		return v.VisitBitNot(t, env)
	case *Cast:
		return v.VisitCast(t, env)
	case *Compare:
		return v.VisitCompare(t, env)

	case *CreateObject:
		return v.VisitCreateObject(t, env)
	case *GetField:
		return v.VisitGetField(t, env)
	case *WithField:
		return v.VisitWithField(t, env)

	case *FSeqEmpty:
		return v.VisitFSeqEmpty(t, env)
	case *FSeqAddFront:
		return v.VisitFSeqAddFront(t, env)
	case *FSeqCase:
		return v.VisitFSeqCase(t, env)

	case *SeqEmpty:
		return v.VisitSeqEmpty(t, env)
	case *SeqUnit:
		return v.VisitSeqUnit(t, env)
	case *SeqConcat:
		return v.VisitSeqConcat(t, env)
	case *SeqLength:
		return v.VisitSeqLength(t, env)
	case *SeqAt:
		return v.VisitSeqAt(t, env)
	case *SeqNth:
		return v.VisitSeqNth(t, env)
	case *SeqContains:
		return v.VisitSeqContains(t, env)
	case *SeqIndexOf:
		return v.VisitSeqIndexOf(t, env)
	case *SeqSlice:
		return v.VisitSeqSlice(t, env)
	case *SeqReplaceFirst:
		return v.VisitSeqReplaceFirst(t, env)
	case *SeqMatchesRegex:
		return v.VisitSeqMatchesRegex(t, env)

	case *MapEmpty:
		return v.VisitMapEmpty(t, env)
	case *MapSet:
		return v.VisitMapSet(t, env)
	case *MapDelete:
		return v.VisitMapDelete(t, env)
	case *MapGet:
		return v.VisitMapGet(t, env)
	case *MapCombine:
		return v.VisitMapCombine(t, env)

	case *ConstMapLiteral:
		return v.VisitConstMapLiteral(t, env)
	case *ConstMapWith:
		return v.VisitConstMapWith(t, env)
	case *ConstMapGet:
		return v.VisitConstMapGet(t, env)

	case *OptionNone:
		return v.VisitOptionNone(t, env)
	case *OptionSome:
		return v.VisitOptionSome(t, env)
	case *OptionHasValue:
		return v.VisitOptionHasValue(t, env)
	case *OptionValue:
		return v.VisitOptionValue(t, env)

	default:
		panic("symexpr: Visit: unrecognised node type")
	}
}
