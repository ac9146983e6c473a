package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/symexlang/symex/internal/scriptlang"
	"github.com/symexlang/symex/internal/symeval/concrete"
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symlog"
)

var evalCmd = &cobra.Command{
	Use:   "eval <script>",
	Short: "Concretely evaluate a closed script",
	Long: `Evaluate parses and concretely interprets a script with no free
variables (no "var" declarations), printing its result.

  symtool eval '(1 + 2) * 3 == 9'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(_ *cobra.Command, args []string) error {
	log := symlog.Component("symtool.eval")

	script, err := parseScript(joinScript(args))
	if err != nil {
		return err
	}
	if len(script.Vars) > 0 {
		return fmt.Errorf("eval: script declares free variables %s; use 'symtool find' or 'symtool explain' instead", varNames(script))
	}

	built, err := scriptlang.Build(symexpr.Default, script)
	if err != nil {
		return err
	}

	log.Debug("evaluating closed expression")
	v, err := concrete.Eval(built.Node, concrete.NewAssignment())
	if err != nil {
		log.WithError(err).Debug("evaluation failed")
		return fmt.Errorf("eval: %w", err)
	}

	fmt.Println(v.String())
	return nil
}

func parseScript(src string) (*scriptlang.Script, error) {
	p := scriptlang.NewParser(src)
	script, err := p.ParseScript()
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return script, nil
}

func joinScript(args []string) string {
	return strings.Join(args, "\n")
}

func varNames(s *scriptlang.Script) string {
	names := make([]string, len(s.Vars))
	for i, d := range s.Vars {
		names[i] = d.Name
	}
	return strings.Join(names, ", ")
}
