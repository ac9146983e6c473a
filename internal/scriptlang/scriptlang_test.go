package scriptlang

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/symexlang/symex/internal/symeval/concrete"
	"github.com/symexlang/symex/internal/symeval/gen"
	"github.com/symexlang/symex/internal/symexpr"
)

func parseAndBuild(t *testing.T, src string) *Built {
	t.Helper()
	p := NewParser(src)
	script, err := p.ParseScript()
	require.NoError(t, err)
	built, err := Build(symexpr.Default, script)
	require.NoError(t, err)
	return built
}

func TestParseClosedExpression(t *testing.T) {
	built := parseAndBuild(t, "(1 + 2) * 3 == 9")
	v, err := concrete.Eval(built.Node, concrete.NewAssignment())
	require.NoError(t, err)
	require.Equal(t, concrete.VBool{V: true}, v)
}

func TestParseBooleanLogic(t *testing.T) {
	built := parseAndBuild(t, "true and not false")
	v, err := concrete.Eval(built.Node, concrete.NewAssignment())
	require.NoError(t, err)
	require.Equal(t, concrete.VBool{V: true}, v)
}

func TestParseDeclaredVariable(t *testing.T) {
	built := parseAndBuild(t, "var x: i32\nx + 1 > 0")
	require.Len(t, built.Holes, 1)
	require.Equal(t, "x", built.Holes[0].Name)
}

func TestParseUnaryMinus(t *testing.T) {
	built := parseAndBuild(t, "-5 + 5 == 0")
	v, err := concrete.Eval(built.Node, concrete.NewAssignment())
	require.NoError(t, err)
	require.Equal(t, concrete.VBool{V: true}, v)
}

func TestParseUndeclaredVariableErrors(t *testing.T) {
	p := NewParser("y > 0")
	script, err := p.ParseScript()
	require.NoError(t, err)
	_, err = Build(symexpr.Default, script)
	require.Error(t, err)
}

func TestGenerateOverScriptHole(t *testing.T) {
	built := parseAndBuild(t, "var x: i32\nx > 10")
	require.Len(t, built.Holes, 1)

	_, err := gen.Generate(symexpr.Default, built.Holes[0].Type(), 3, "probe", true)
	require.NoError(t, err)
}
