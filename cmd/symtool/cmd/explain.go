package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/symexlang/symex/internal/scriptlang"
	"github.com/symexlang/symex/internal/symexpr"
)

var explainCmd = &cobra.Command{
	Use:   "explain <script...>",
	Short: "Print the compiled expression tree for a script",
	Long: `Explain parses and builds a script exactly as eval/find would, then
prints the resulting expression's String() form plus its declared
holes and their types, without evaluating or solving anything.

  symtool explain 'var x: i32' 'x + 1 > 0'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(_ *cobra.Command, args []string) error {
	script, err := parseScript(joinScript(args))
	if err != nil {
		return err
	}

	built, err := scriptlang.Build(symexpr.Default, script)
	if err != nil {
		return err
	}

	if len(built.Holes) > 0 {
		fmt.Println("holes:")
		for _, h := range built.Holes {
			fmt.Printf("  %s: %s\n", h.Name, h.Type().String())
		}
	}
	fmt.Println("expression:")
	fmt.Println("  " + built.Node.String())
	return nil
}
