package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/symexlang/symex/internal/scriptlang"
	"github.com/symexlang/symex/internal/solver"
	"github.com/symexlang/symex/internal/solver/bddbackend"
	"github.com/symexlang/symex/internal/solver/refbackend"
	"github.com/symexlang/symex/internal/symeval/concrete"
	"github.com/symexlang/symex/internal/symeval/symbolic"
	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symjson"
	"github.com/symexlang/symex/internal/symlog"
)

var (
	findBackend string
	findJSON    bool
)

var findCmd = &cobra.Command{
	Use:   "find <script...>",
	Short: "Search for a hole assignment satisfying a script",
	Long: `Find parses a script declaring one or more "var" holes followed by a
boolean expression, and searches for a binding of those holes under
which the expression evaluates to true.

  symtool find 'var x: i32' 'x * x == 16'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringVar(&findBackend, "backend", "reference", "solver backend: reference or bdd")
	findCmd.Flags().BoolVar(&findJSON, "json", false, "print the witness as JSON instead of plain text")
	rootCmd.AddCommand(findCmd)
}

func runFind(_ *cobra.Command, args []string) error {
	log := symlog.Component("symtool.find")

	script, err := parseScript(joinScript(args))
	if err != nil {
		return err
	}
	if len(script.Vars) == 0 {
		return fmt.Errorf("find: script declares no 'var' holes to search over")
	}

	built, err := scriptlang.Build(symexpr.Default, script)
	if err != nil {
		return err
	}

	lowered, err := symbolic.Lower(symexpr.Default, built.Node)
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}
	holes := symexpr.Holes(lowered)

	bk, err := resolveBackend(findBackend)
	if err != nil {
		return err
	}

	log.WithField("backend", bk.Name()).Debug("searching for a witness")
	model, found, err := bk.Solve(context.Background(), holes, []symexpr.Node{lowered})
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}
	if !found {
		fmt.Println("no satisfying assignment found")
		return nil
	}

	if findJSON {
		doc, err := symjson.ExportModel(model, holes)
		if err != nil {
			return fmt.Errorf("find: %w", err)
		}
		fmt.Println(doc)
		return nil
	}

	asg := model.Assignment(holes)
	for _, h := range holes {
		v, err := concrete.Eval(h, asg)
		if err != nil {
			return fmt.Errorf("find: %w", err)
		}
		fmt.Printf("%s = %s\n", h.Name, v.String())
	}
	return nil
}

func resolveBackend(name string) (solver.Backend, error) {
	switch name {
	case "", "reference":
		return refbackend.New(), nil
	case "bdd":
		return bddbackend.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want 'reference' or 'bdd')", name)
	}
}
