package sym

import (
	"context"
	"reflect"

	"github.com/symexlang/symex/internal/solver"
	"github.com/symexlang/symex/internal/solver/bddbackend"
	"github.com/symexlang/symex/internal/solver/refbackend"
	"github.com/symexlang/symex/internal/symconfig"
	"github.com/symexlang/symex/internal/symerr"
	"github.com/symexlang/symex/internal/symeval/concrete"
	"github.com/symexlang/symex/internal/symeval/gen"
	"github.com/symexlang/symex/internal/symeval/symbolic"
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
)

// ConfigOption is internal/symconfig's functional option, re-exported so
// callers configuring Find/Assert/Maximize/Minimize never need to
// import internal/symconfig themselves.
type ConfigOption = symconfig.Option

// WithDepth/WithCheckSmallerDepths/WithSimplify/WithBackend/WithTimeout/
// WithMaxUnrollingDepth re-export internal/symconfig's option
// constructors at the facade boundary.
var (
	WithDepth              = symconfig.WithDepth
	WithCheckSmallerDepths = symconfig.WithCheckSmallerDepths
	WithSimplify           = symconfig.WithSimplify
	WithBackend            = symconfig.WithBackend
	WithTimeout            = symconfig.WithTimeout
	WithMaxUnrollingDepth  = symconfig.WithMaxUnrollingDepth
)

// Reference/BDD re-export internal/symconfig's backend selectors.
const (
	Reference = symconfig.Reference
	BDD       = symconfig.BDD
)

func backendFor(cfg symconfig.Config) solver.Backend {
	if cfg.Backend == symconfig.BDD {
		return bddbackend.New()
	}
	return refbackend.NewWithDepth(cfg.Depth)
}

func withTimeout(ctx context.Context, cfg symconfig.Config) (context.Context, context.CancelFunc) {
	if cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, cfg.Timeout)
}

// Witness0/Witness1/Witness2 carry a search outcome back to the caller
// as plain Go values, decoded out of the solver's concrete.Value
// bindings. One type per Function arity, mirroring the arity-bounded
// Function family itself (Go generics cannot express "N type
// parameters" generically).
type Witness0[R any] struct{ Result R }
type Witness1[A, R any] struct {
	Arg    A
	Result R
}
type Witness2[A, B, R any] struct {
	ArgA   A
	ArgB   B
	Result R
}

// OptResult1/OptResult2 carry a Maximize/Minimize outcome: the argument
// binding(s) achieving it, the function's result at that binding, and
// the achieved objective value. Maximize/Minimize restrict the
// objective to an int64-valued metric (see Function1.Maximize) rather
// than adding a fourth generic type parameter to every Function arity
// for the sake of a rarely-needed fully-generic numeric objective.
type OptResult0[R any] struct {
	Result R
	Score  int64
}
type OptResult1[A, R any] struct {
	Arg    A
	Result R
	Score  int64
}
type OptResult2[A, B, R any] struct {
	ArgA   A
	ArgB   B
	Result R
	Score  int64
}

// Function0 is a zero-argument symbolic program: a thunk producing a
// Sym[R]. Find/Assert/Maximize/Minimize search over whatever Unknown
// holes the body itself introduces (there are no generated arguments
// to search over at this arity).
type Function0[R any] struct {
	body func() Sym[R]
	cfg  symconfig.Config
}

// NewFunction0 wraps body as a Function0 configured with the default
// symconfig.Config (per-call Find/Assert/Maximize/Minimize options
// layer on top of it, they never mutate it).
func NewFunction0[R any](body func() Sym[R]) *Function0[R] {
	return &Function0[R]{body: body, cfg: symconfig.Default()}
}

// Evaluate runs the body and decodes its result into a plain R. The
// body must be closed (no Unknown holes reachable from it) — Evaluate
// asks concrete.Eval to interpret it under an empty Assignment.
func (f *Function0[R]) Evaluate() (R, error) {
	zero, out := zeroOf[R]()
	v, err := concrete.Eval(f.body().node, concrete.NewAssignment())
	if err != nil {
		return zero, err
	}
	if err := decode(out, v); err != nil {
		return zero, err
	}
	return out.Interface().(R), nil
}

// Compile records maxUnrollingDepth in the function's configuration and
// does nothing else: it prepares no staged closure, and neither Evaluate
// (which always interprets the body with concrete.Eval) nor
// Find/Assert/Maximize/Minimize reads the recorded depth.
func (f *Function0[R]) Compile(maxUnrollingDepth int) {
	f.cfg.MaxUnrollingDepth = maxUnrollingDepth
}

// Find searches for Unknown holes reachable from the body (and from
// invariant's own construction) under which invariant holds for the
// body's result, returning a witness of the binding that did. Found is
// false (err nil) when the backend proves no such binding exists.
func (f *Function0[R]) Find(ctx context.Context, invariant func(result Sym[R]) Sym[bool], opts ...ConfigOption) (*Witness0[R], bool, error) {
	cfg := f.cfg.Apply(opts...)
	ctx, cancel := withTimeout(ctx, cfg)
	defer cancel()

	result := f.body()
	constraint := invariant(result).node

	lowered, err := symbolic.Lower(symexpr.Default, constraint)
	if err != nil {
		return nil, false, err
	}
	holes := symexpr.Holes(lowered)

	model, found, err := backendFor(cfg).Solve(ctx, holes, []symexpr.Node{lowered})
	if err != nil || !found {
		return nil, found, err
	}

	resultVal, err := concrete.Eval(result.node, model.Assignment(holes))
	if err != nil {
		return nil, false, err
	}
	_, out := zeroOf[R]()
	if err := decode(out, resultVal); err != nil {
		return nil, false, err
	}
	return &Witness0[R]{Result: out.Interface().(R)}, true, nil
}

// Assert reports whether some Unknown binding satisfies invariant,
// discarding the witness Find would otherwise return.
func (f *Function0[R]) Assert(ctx context.Context, invariant func(result Sym[R]) Sym[bool], opts ...ConfigOption) (bool, error) {
	_, found, err := f.Find(ctx, invariant, opts...)
	return found, err
}

// Maximize/Minimize rank every binding satisfying invariant by an
// int64-valued objective and return the extremal one. The objective is
// restricted to Sym[int64] (rather than a fully generic numeric type)
// so Function0/1/2 do not each need a fourth type parameter just for
// the rare caller who optimizes a non-int64 metric; such a caller
// projects their metric to an int64 Sym themselves before calling.
func (f *Function0[R]) Maximize(ctx context.Context, objective func(result Sym[R]) Sym[int64], invariant func(result Sym[R]) Sym[bool], opts ...ConfigOption) (*OptResult0[R], bool, error) {
	return f.optimize(ctx, objective, invariant, true, opts...)
}

func (f *Function0[R]) Minimize(ctx context.Context, objective func(result Sym[R]) Sym[int64], invariant func(result Sym[R]) Sym[bool], opts ...ConfigOption) (*OptResult0[R], bool, error) {
	return f.optimize(ctx, objective, invariant, false, opts...)
}

func (f *Function0[R]) optimize(ctx context.Context, objective func(result Sym[R]) Sym[int64], invariant func(result Sym[R]) Sym[bool], maximize bool, opts ...ConfigOption) (*OptResult0[R], bool, error) {
	cfg := f.cfg.Apply(opts...)
	ctx, cancel := withTimeout(ctx, cfg)
	defer cancel()

	result := f.body()
	constraint := invariant(result).node
	objNode := objective(result).node

	lowered, err := symbolic.Lower(symexpr.Default, constraint)
	if err != nil {
		return nil, false, err
	}
	loweredObj, err := symbolic.Lower(symexpr.Default, objNode)
	if err != nil {
		return nil, false, err
	}
	holes := symexpr.Holes(lowered, loweredObj)

	bk := backendFor(cfg)
	var model *solver.Model
	var found bool
	if maximize {
		model, found, err = bk.Maximize(ctx, holes, []symexpr.Node{lowered}, loweredObj)
	} else {
		model, found, err = bk.Minimize(ctx, holes, []symexpr.Node{lowered}, loweredObj)
	}
	if err != nil || !found {
		return nil, found, err
	}

	asg := model.Assignment(holes)
	resultVal, err := concrete.Eval(result.node, asg)
	if err != nil {
		return nil, false, err
	}
	scoreVal, err := concrete.Eval(objNode, asg)
	if err != nil {
		return nil, false, err
	}
	_, out := zeroOf[R]()
	if err := decode(out, resultVal); err != nil {
		return nil, false, err
	}
	score, err := decodeInt64(scoreVal)
	if err != nil {
		return nil, false, err
	}
	return &OptResult0[R]{Result: out.Interface().(R), Score: score}, true, nil
}

// Function1 is a one-argument symbolic program. Find/Assert/Maximize/
// Minimize generate a fresh argument of argType (via
// internal/symeval/gen.Generate) and search over it and any Unknown
// holes the body introduces.
type Function1[A, R any] struct {
	argType symtype.Type
	body    func(arg Sym[A]) Sym[R]
	cfg     symconfig.Config
}

func NewFunction1[A, R any](argType symtype.Type, body func(arg Sym[A]) Sym[R]) *Function1[A, R] {
	return &Function1[A, R]{argType: argType, body: body, cfg: symconfig.Default()}
}

// Evaluate encodes a into a closed literal and runs the body over it.
func (f *Function1[A, R]) Evaluate(a A) (R, error) {
	zero, out := zeroOf[R]()
	argNode, err := encode(reflect.ValueOf(a))
	if err != nil {
		return zero, err
	}
	v, err := concrete.Eval(f.body(wrap[A](argNode)).node, concrete.NewAssignment())
	if err != nil {
		return zero, err
	}
	if err := decode(out, v); err != nil {
		return zero, err
	}
	return out.Interface().(R), nil
}

func (f *Function1[A, R]) Compile(maxUnrollingDepth int) {
	f.cfg.MaxUnrollingDepth = maxUnrollingDepth
}

// Find generates a fresh symbolic argument and searches for a binding
// under which invariant(arg, body(arg)) holds.
func (f *Function1[A, R]) Find(ctx context.Context, invariant func(arg Sym[A], result Sym[R]) Sym[bool], opts ...ConfigOption) (*Witness1[A, R], bool, error) {
	cfg := f.cfg.Apply(opts...)
	ctx, cancel := withTimeout(ctx, cfg)
	defer cancel()

	argNode, err := gen.Generate(symexpr.Default, f.argType, cfg.Depth, "arg", cfg.CheckSmallerDepths)
	if err != nil {
		return nil, false, err
	}
	arg := wrap[A](argNode)
	result := f.body(arg)
	constraint := invariant(arg, result).node

	lowered, err := symbolic.Lower(symexpr.Default, constraint)
	if err != nil {
		return nil, false, err
	}
	holes := symexpr.Holes(lowered)

	model, found, err := backendFor(cfg).Solve(ctx, holes, []symexpr.Node{lowered})
	if err != nil || !found {
		return nil, found, err
	}

	asg := model.Assignment(holes)
	argVal, err := concrete.Eval(arg.node, asg)
	if err != nil {
		return nil, false, err
	}
	resultVal, err := concrete.Eval(result.node, asg)
	if err != nil {
		return nil, false, err
	}
	_, argOut := zeroOf[A]()
	if err := decode(argOut, argVal); err != nil {
		return nil, false, err
	}
	_, resOut := zeroOf[R]()
	if err := decode(resOut, resultVal); err != nil {
		return nil, false, err
	}
	return &Witness1[A, R]{Arg: argOut.Interface().(A), Result: resOut.Interface().(R)}, true, nil
}

func (f *Function1[A, R]) Assert(ctx context.Context, invariant func(arg Sym[A], result Sym[R]) Sym[bool], opts ...ConfigOption) (bool, error) {
	_, found, err := f.Find(ctx, invariant, opts...)
	return found, err
}

func (f *Function1[A, R]) Maximize(ctx context.Context, objective func(arg Sym[A], result Sym[R]) Sym[int64], invariant func(arg Sym[A], result Sym[R]) Sym[bool], opts ...ConfigOption) (*OptResult1[A, R], bool, error) {
	return f.optimize(ctx, objective, invariant, true, opts...)
}

func (f *Function1[A, R]) Minimize(ctx context.Context, objective func(arg Sym[A], result Sym[R]) Sym[int64], invariant func(arg Sym[A], result Sym[R]) Sym[bool], opts ...ConfigOption) (*OptResult1[A, R], bool, error) {
	return f.optimize(ctx, objective, invariant, false, opts...)
}

func (f *Function1[A, R]) optimize(ctx context.Context, objective func(arg Sym[A], result Sym[R]) Sym[int64], invariant func(arg Sym[A], result Sym[R]) Sym[bool], maximize bool, opts ...ConfigOption) (*OptResult1[A, R], bool, error) {
	cfg := f.cfg.Apply(opts...)
	ctx, cancel := withTimeout(ctx, cfg)
	defer cancel()

	argNode, err := gen.Generate(symexpr.Default, f.argType, cfg.Depth, "arg", cfg.CheckSmallerDepths)
	if err != nil {
		return nil, false, err
	}
	arg := wrap[A](argNode)
	result := f.body(arg)
	constraint := invariant(arg, result).node
	objNode := objective(arg, result).node

	lowered, err := symbolic.Lower(symexpr.Default, constraint)
	if err != nil {
		return nil, false, err
	}
	loweredObj, err := symbolic.Lower(symexpr.Default, objNode)
	if err != nil {
		return nil, false, err
	}
	holes := symexpr.Holes(lowered, loweredObj)

	bk := backendFor(cfg)
	var model *solver.Model
	var found bool
	if maximize {
		model, found, err = bk.Maximize(ctx, holes, []symexpr.Node{lowered}, loweredObj)
	} else {
		model, found, err = bk.Minimize(ctx, holes, []symexpr.Node{lowered}, loweredObj)
	}
	if err != nil || !found {
		return nil, found, err
	}

	asg := model.Assignment(holes)
	argVal, err := concrete.Eval(arg.node, asg)
	if err != nil {
		return nil, false, err
	}
	resultVal, err := concrete.Eval(result.node, asg)
	if err != nil {
		return nil, false, err
	}
	scoreVal, err := concrete.Eval(objNode, asg)
	if err != nil {
		return nil, false, err
	}
	_, argOut := zeroOf[A]()
	if err := decode(argOut, argVal); err != nil {
		return nil, false, err
	}
	_, resOut := zeroOf[R]()
	if err := decode(resOut, resultVal); err != nil {
		return nil, false, err
	}
	score, err := decodeInt64(scoreVal)
	if err != nil {
		return nil, false, err
	}
	return &OptResult1[A, R]{Arg: argOut.Interface().(A), Result: resOut.Interface().(R), Score: score}, true, nil
}

// Function2 is a two-argument symbolic program, following the same
// generate-search-decode shape as Function1 with a second argument.
type Function2[A, B, R any] struct {
	argAType symtype.Type
	argBType symtype.Type
	body     func(a Sym[A], b Sym[B]) Sym[R]
	cfg      symconfig.Config
}

func NewFunction2[A, B, R any](argAType, argBType symtype.Type, body func(a Sym[A], b Sym[B]) Sym[R]) *Function2[A, B, R] {
	return &Function2[A, B, R]{argAType: argAType, argBType: argBType, body: body, cfg: symconfig.Default()}
}

func (f *Function2[A, B, R]) Evaluate(a A, b B) (R, error) {
	zero, out := zeroOf[R]()
	aNode, err := encode(reflect.ValueOf(a))
	if err != nil {
		return zero, err
	}
	bNode, err := encode(reflect.ValueOf(b))
	if err != nil {
		return zero, err
	}
	v, err := concrete.Eval(f.body(wrap[A](aNode), wrap[B](bNode)).node, concrete.NewAssignment())
	if err != nil {
		return zero, err
	}
	if err := decode(out, v); err != nil {
		return zero, err
	}
	return out.Interface().(R), nil
}

func (f *Function2[A, B, R]) Compile(maxUnrollingDepth int) {
	f.cfg.MaxUnrollingDepth = maxUnrollingDepth
}

func (f *Function2[A, B, R]) Find(ctx context.Context, invariant func(a Sym[A], b Sym[B], result Sym[R]) Sym[bool], opts ...ConfigOption) (*Witness2[A, B, R], bool, error) {
	cfg := f.cfg.Apply(opts...)
	ctx, cancel := withTimeout(ctx, cfg)
	defer cancel()

	aNode, err := gen.Generate(symexpr.Default, f.argAType, cfg.Depth, "argA", cfg.CheckSmallerDepths)
	if err != nil {
		return nil, false, err
	}
	bNode, err := gen.Generate(symexpr.Default, f.argBType, cfg.Depth, "argB", cfg.CheckSmallerDepths)
	if err != nil {
		return nil, false, err
	}
	a := wrap[A](aNode)
	b := wrap[B](bNode)
	result := f.body(a, b)
	constraint := invariant(a, b, result).node

	lowered, err := symbolic.Lower(symexpr.Default, constraint)
	if err != nil {
		return nil, false, err
	}
	holes := symexpr.Holes(lowered)

	model, found, err := backendFor(cfg).Solve(ctx, holes, []symexpr.Node{lowered})
	if err != nil || !found {
		return nil, found, err
	}

	asg := model.Assignment(holes)
	aVal, err := concrete.Eval(a.node, asg)
	if err != nil {
		return nil, false, err
	}
	bVal, err := concrete.Eval(b.node, asg)
	if err != nil {
		return nil, false, err
	}
	resultVal, err := concrete.Eval(result.node, asg)
	if err != nil {
		return nil, false, err
	}
	_, aOut := zeroOf[A]()
	if err := decode(aOut, aVal); err != nil {
		return nil, false, err
	}
	_, bOut := zeroOf[B]()
	if err := decode(bOut, bVal); err != nil {
		return nil, false, err
	}
	_, resOut := zeroOf[R]()
	if err := decode(resOut, resultVal); err != nil {
		return nil, false, err
	}
	return &Witness2[A, B, R]{ArgA: aOut.Interface().(A), ArgB: bOut.Interface().(B), Result: resOut.Interface().(R)}, true, nil
}

func (f *Function2[A, B, R]) Assert(ctx context.Context, invariant func(a Sym[A], b Sym[B], result Sym[R]) Sym[bool], opts ...ConfigOption) (bool, error) {
	_, found, err := f.Find(ctx, invariant, opts...)
	return found, err
}

func (f *Function2[A, B, R]) Maximize(ctx context.Context, objective func(a Sym[A], b Sym[B], result Sym[R]) Sym[int64], invariant func(a Sym[A], b Sym[B], result Sym[R]) Sym[bool], opts ...ConfigOption) (*OptResult2[A, B, R], bool, error) {
	return f.optimize(ctx, objective, invariant, true, opts...)
}

func (f *Function2[A, B, R]) Minimize(ctx context.Context, objective func(a Sym[A], b Sym[B], result Sym[R]) Sym[int64], invariant func(a Sym[A], b Sym[B], result Sym[R]) Sym[bool], opts ...ConfigOption) (*OptResult2[A, B, R], bool, error) {
	return f.optimize(ctx, objective, invariant, false, opts...)
}

func (f *Function2[A, B, R]) optimize(ctx context.Context, objective func(a Sym[A], b Sym[B], result Sym[R]) Sym[int64], invariant func(a Sym[A], b Sym[B], result Sym[R]) Sym[bool], maximize bool, opts ...ConfigOption) (*OptResult2[A, B, R], bool, error) {
	cfg := f.cfg.Apply(opts...)
	ctx, cancel := withTimeout(ctx, cfg)
	defer cancel()

	aNode, err := gen.Generate(symexpr.Default, f.argAType, cfg.Depth, "argA", cfg.CheckSmallerDepths)
	if err != nil {
		return nil, false, err
	}
	bNode, err := gen.Generate(symexpr.Default, f.argBType, cfg.Depth, "argB", cfg.CheckSmallerDepths)
	if err != nil {
		return nil, false, err
	}
	a := wrap[A](aNode)
	b := wrap[B](bNode)
	result := f.body(a, b)
	constraint := invariant(a, b, result).node
	objNode := objective(a, b, result).node

	lowered, err := symbolic.Lower(symexpr.Default, constraint)
	if err != nil {
		return nil, false, err
	}
	loweredObj, err := symbolic.Lower(symexpr.Default, objNode)
	if err != nil {
		return nil, false, err
	}
	holes := symexpr.Holes(lowered, loweredObj)

	bk := backendFor(cfg)
	var model *solver.Model
	var found bool
	if maximize {
		model, found, err = bk.Maximize(ctx, holes, []symexpr.Node{lowered}, loweredObj)
	} else {
		model, found, err = bk.Minimize(ctx, holes, []symexpr.Node{lowered}, loweredObj)
	}
	if err != nil || !found {
		return nil, found, err
	}

	asg := model.Assignment(holes)
	aVal, err := concrete.Eval(a.node, asg)
	if err != nil {
		return nil, false, err
	}
	bVal, err := concrete.Eval(b.node, asg)
	if err != nil {
		return nil, false, err
	}
	resultVal, err := concrete.Eval(result.node, asg)
	if err != nil {
		return nil, false, err
	}
	scoreVal, err := concrete.Eval(objNode, asg)
	if err != nil {
		return nil, false, err
	}
	_, aOut := zeroOf[A]()
	if err := decode(aOut, aVal); err != nil {
		return nil, false, err
	}
	_, bOut := zeroOf[B]()
	if err := decode(bOut, bVal); err != nil {
		return nil, false, err
	}
	_, resOut := zeroOf[R]()
	if err := decode(resOut, resultVal); err != nil {
		return nil, false, err
	}
	score, err := decodeInt64(scoreVal)
	if err != nil {
		return nil, false, err
	}
	return &OptResult2[A, B, R]{ArgA: aOut.Interface().(A), ArgB: bOut.Interface().(B), Result: resOut.Interface().(R), Score: score}, true, nil
}

// decodeInt64 reads a Maximize/Minimize objective's achieved value.
// Objectives are restricted to Sym[int64], so the concrete result is
// always a signed VBitvec.
func decodeInt64(v concrete.Value) (int64, error) {
	bv, ok := v.(concrete.VBitvec)
	if !ok {
		return 0, symerr.NewUnsupportedType(v.Type().String(), "", "Maximize/Minimize objective must be a Sym[int64]")
	}
	return bv.V.Int64(), nil
}
