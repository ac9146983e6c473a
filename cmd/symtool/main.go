// Command symtool is a development aid for exploring the combinator
// core from a shell: evaluate a closed script, search for a witness
// over its declared holes, or dump the compiled expression tree. It is
// not the library's public surface — that is pkg/sym, imported
// directly by Go programs.
package main

import (
	"os"

	"github.com/symexlang/symex/cmd/symtool/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
