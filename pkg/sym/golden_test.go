package sym

import (
	"math/big"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/symexlang/symex/internal/solver"
	"github.com/symexlang/symex/internal/symeval/concrete"
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symjson"
	"github.com/symexlang/symex/internal/symtype"
)

// TestExpressionStringGolden snapshots the printed form of a handful of
// built expression trees, so a change to any node's String() rendering
// shows up as a diff instead of silently drifting.
func TestExpressionStringGolden(t *testing.T) {
	exprs := map[string]AnySym{
		"arith":   I32(2).Add(I32(3).Mul(I32(4))),
		"compare": I32(1).Lt(I32(2)),
		"boolean": And(Bool(true), Not(Bool(false))),
		"seq":     Str("hello").Concat(Str(" world")),
	}

	for name, e := range exprs {
		snaps.MatchSnapshot(t, name, e.symNode().String())
	}
}

// TestWitnessJSONGolden snapshots symjson.ExportModel's rendering of a
// solved model, the same output cmd/symtool's find --json subcommand
// prints.
func TestWitnessJSONGolden(t *testing.T) {
	b := symexpr.Default
	arg := b.NewArbitrary(symtype.I8, "arg")

	model := solver.NewModel(map[uint64]concrete.Value{
		arg.ID(): concrete.VBitvec{Width: 8, Signed: true, V: big.NewInt(9)},
	})

	doc, err := symjson.ExportModel(model, []*symexpr.Arbitrary{arg})
	if err != nil {
		t.Fatalf("symjson.ExportModel: %v", err)
	}
	snaps.MatchSnapshot(t, "witness-json", doc)
}
