// Package refbackend implements internal/solver.Backend by brute-force
// bounded enumeration over each Arbitrary hole's domain, pruned by
// evaluating the constraint list concretely against each candidate
// assignment. No external SMT engine is bound: this is the backend this
// repository's own test suite runs against, not a performance backend —
// see DESIGN.md for why no SMT-LIB binding exists anywhere in the
// dependencies available to this repository.
package refbackend

import (
	"context"
	"fmt"
	"math/big"

	"github.com/symexlang/symex/internal/solver"
	"github.com/symexlang/symex/internal/symeval/concrete"
	"github.com/symexlang/symex/internal/symerr"
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symlog"
)

// Backend is the reference solver.Backend.
type Backend struct {
	// Depth bounds the recursion used when enumerating a compound
	// hole's domain (Record fields, Option payloads, Map/Set/Seq/FSeq
	// element and collection sizes). Zero selects a sensible default.
	Depth int
}

// New returns a Backend with default enumeration depth.
func New() *Backend { return &Backend{Depth: 3} }

// NewWithDepth returns a Backend whose enumeration depth tracks a
// caller's own configuration (internal/symconfig.Config.Depth) instead
// of New's hardcoded default.
func NewWithDepth(depth int) *Backend { return &Backend{Depth: depth} }

func (bk *Backend) Name() string { return "refbackend" }

func (bk *Backend) depth() int {
	if bk.Depth <= 0 {
		return 3
	}
	return bk.Depth
}

// Solve enumerates the cartesian product of every hole's domain (see
// domain.go) and returns the first assignment under which every
// constraint evaluates to true. It is sound (a returned model really
// does satisfy the constraints): a true result can always be trusted.
// For a hole whose type has no exhaustive domain (a Bitvec wider than
// domain.go's maxExhaustiveBits, or any BigInt/Real/String/Seq/Map/Set),
// failing to find a model does not prove UNSAT — Solve refuses to
// report false in that case and returns a *symerr.SolverError instead,
// rather than silently passing off "not found within the sample" as
// UNSAT.
func (bk *Backend) Solve(ctx context.Context, holes []*symexpr.Arbitrary, constraints []symexpr.Node) (*solver.Model, bool, error) {
	log := symlog.With(symlog.Fields{"component": "refbackend", "op": "solve", "holes": len(holes)})
	log.Debug("solve start")

	found, err := bk.search(ctx, holes, constraints)
	if err != nil {
		log.WithError(err).Debug("solve error")
		return nil, false, err
	}
	if found == nil {
		if !holesExhaustive(holes) {
			log.Debug("solve inconclusive: hole domain was sampled, not enumerated")
			return nil, false, symerr.NewSolverError(incompleteDomainReason(holes))
		}
		log.Debug("solve unsat")
		return nil, false, nil
	}
	log.Debug("solve sat")
	return solver.NewModel(found), true, nil
}

// Maximize/Minimize enumerate every satisfying assignment and keep the
// one ranking best by objective, a Bitvec- or BigInt-typed node
// evaluated under each candidate. Unlike Solve, a "best of the
// candidates I looked at" is worthless unless every hole's domain was
// enumerated in full: ranking a sample can never be reported as an
// optimum, so both refuse upfront with a *symerr.SolverError the
// moment any hole's type lacks an exhaustive domain (see
// domain.go's isExhaustive), rather than silently returning the best
// of an arbitrary sample as if it were the true optimum.
func (bk *Backend) Maximize(ctx context.Context, holes []*symexpr.Arbitrary, constraints []symexpr.Node, objective symexpr.Node) (*solver.Model, bool, error) {
	return bk.optimize(ctx, holes, constraints, objective, true)
}

func (bk *Backend) Minimize(ctx context.Context, holes []*symexpr.Arbitrary, constraints []symexpr.Node, objective symexpr.Node) (*solver.Model, bool, error) {
	return bk.optimize(ctx, holes, constraints, objective, false)
}

func (bk *Backend) optimize(ctx context.Context, holes []*symexpr.Arbitrary, constraints []symexpr.Node, objective symexpr.Node, maximize bool) (*solver.Model, bool, error) {
	log := symlog.With(symlog.Fields{"component": "refbackend", "op": "optimize", "maximize": maximize})
	log.Debug("optimize start")

	if !holesExhaustive(holes) {
		log.Debug("optimize refused: hole domain was sampled, not enumerated")
		return nil, false, symerr.NewSolverError(incompleteDomainReason(holes))
	}

	var best map[uint64]concrete.Value
	var bestScore *big.Int
	err := bk.enumerate(ctx, holes, func(values map[uint64]concrete.Value) (bool, error) {
		ok, err := satisfies(constraints, values, holes)
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
		score, err := objectiveScore(objective, values, holes)
		if err != nil {
			return false, err
		}
		if best == nil || (maximize && score.Cmp(bestScore) > 0) || (!maximize && score.Cmp(bestScore) < 0) {
			best = cloneValues(values)
			bestScore = score
		}
		return true, nil
	})
	if err != nil {
		return nil, false, err
	}
	if best == nil {
		return nil, false, nil
	}
	log.Debug("optimize found best")
	return solver.NewModel(best), true, nil
}

// holesExhaustive reports whether every hole's domain is fully
// enumerated rather than sampled. Maximize/Minimize need this checked
// upfront, before ranking any candidate: a "best" picked among samples
// of an unbounded domain is not the true optimum, so it must not be
// reported as one.
func holesExhaustive(holes []*symexpr.Arbitrary) bool {
	for _, h := range holes {
		if !isExhaustive(h.Type()) {
			return false
		}
	}
	return true
}

// incompleteDomainReason names the offending hole(s) so the error
// points a caller at the fix: narrow the hole's width, switch to
// bddbackend, or add bounds the constraint already implies.
func incompleteDomainReason(holes []*symexpr.Arbitrary) string {
	for _, h := range holes {
		if !isExhaustive(h.Type()) {
			return fmt.Sprintf("hole %q of type %s has no exhaustive domain under refbackend (width > %d bits, or an unbounded/collection type); "+
				"result would be a sampled guess, not a proven answer — narrow the type or use bddbackend", h.Name, h.Type().String(), maxExhaustiveBits)
		}
	}
	return "hole domain is not exhaustive"
}

func (bk *Backend) search(ctx context.Context, holes []*symexpr.Arbitrary, constraints []symexpr.Node) (map[uint64]concrete.Value, error) {
	var found map[uint64]concrete.Value
	err := bk.enumerate(ctx, holes, func(values map[uint64]concrete.Value) (bool, error) {
		ok, err := satisfies(constraints, values, holes)
		if err != nil {
			return false, err
		}
		if ok {
			found = cloneValues(values)
			return false, nil // stop at first model
		}
		return true, nil
	})
	return found, err
}

// enumerate walks the cartesian product of each hole's domain, calling
// visit(values) for every candidate until visit returns false (stop) or
// an error, or ctx is cancelled.
func (bk *Backend) enumerate(ctx context.Context, holes []*symexpr.Arbitrary, visit func(map[uint64]concrete.Value) (bool, error)) error {
	domains := make([][]concrete.Value, len(holes))
	for i, h := range holes {
		d := domain(h.Type(), bk.depth())
		if len(d) == 0 {
			return symerr.NewSolverError("no candidate values for hole " + h.Name)
		}
		domains[i] = d
	}

	choice := make([]concrete.Value, len(holes))
	var stopErr error

	var rec func(i int) bool
	rec = func(i int) bool {
		select {
		case <-ctx.Done():
			stopErr = symerr.NewSolverTimeout("refbackend enumeration")
			return false
		default:
		}
		if i == len(holes) {
			values := make(map[uint64]concrete.Value, len(holes))
			for j, h := range holes {
				values[h.ID()] = choice[j]
			}
			cont, err := visit(values)
			if err != nil {
				stopErr = err
				return false
			}
			return cont
		}
		for _, v := range domains[i] {
			choice[i] = v
			if !rec(i + 1) {
				return false
			}
		}
		return true
	}
	rec(0)
	return stopErr
}

func satisfies(constraints []symexpr.Node, values map[uint64]concrete.Value, holes []*symexpr.Arbitrary) (bool, error) {
	asg := assignmentFrom(values, holes)
	for _, c := range constraints {
		v, err := concrete.Eval(c, asg)
		if err != nil {
			return false, err
		}
		b, ok := v.(concrete.VBool)
		if !ok {
			return false, symerr.NewInvariantViolation("refbackend", "constraint did not evaluate to Bool")
		}
		if !b.V {
			return false, nil
		}
	}
	return true, nil
}

func objectiveScore(objective symexpr.Node, values map[uint64]concrete.Value, holes []*symexpr.Arbitrary) (*big.Int, error) {
	asg := assignmentFrom(values, holes)
	v, err := concrete.Eval(objective, asg)
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case concrete.VBitvec:
		return t.V, nil
	case concrete.VBigInt:
		return t.V, nil
	default:
		return nil, symerr.NewInvariantViolation("refbackend", "objective did not evaluate to a numeric type")
	}
}

func assignmentFrom(values map[uint64]concrete.Value, holes []*symexpr.Arbitrary) *concrete.Assignment {
	asg := concrete.NewAssignment()
	for _, h := range holes {
		if v, ok := values[h.ID()]; ok {
			asg.Bind(h, v)
		}
	}
	return asg
}

func cloneValues(values map[uint64]concrete.Value) map[uint64]concrete.Value {
	out := make(map[uint64]concrete.Value, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
