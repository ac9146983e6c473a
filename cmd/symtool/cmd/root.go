package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/symexlang/symex/internal/symlog"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "symtool",
	Short: "Development aid for the symbolic expression core",
	Long: `symtool is a small command-line aid for exploring the combinator core
directly, without writing a Go program against pkg/sym.

It reads a tiny textual script: zero or more "var name: type"
declarations followed by one boolean/arithmetic expression over those
holes and literal values.

  symtool eval 'true and not false'
  symtool find 'var x: i32' 'x * x == 16'
  symtool explain 'var x: i32' 'x + 1 > 0'`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	cobra.OnInitialize(func() {
		if verbose {
			l := logrus.New()
			l.SetLevel(logrus.DebugLevel)
			symlog.SetLogger(l)
		}
	})
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
