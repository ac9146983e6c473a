// Package symlog is a thin convention layer over logrus: the solver
// backends and cmd/symtool log through a *logrus.Entry tagged with its own
// "component" field plus call-specific Fields, mirroring the audit-log
// wrapper shape dolthub-go-mysql-server builds over logrus.Logger.
// Logging here is debug-level only, never on the hot path of node
// construction or hash-consing.
package symlog

import "github.com/sirupsen/logrus"

// Fields is sugar for logrus.Fields, kept as its own name so call sites
// that only build fields need not import logrus themselves.
type Fields = logrus.Fields

// base is the process-wide logger every component derives its own
// tagged Entry from. Callers needing isolation (tests capturing output)
// may replace it with SetLogger.
var base = logrus.New()

func init() {
	base.SetLevel(logrus.InfoLevel)
}

// SetLogger swaps the underlying logrus.Logger, e.g. to redirect output
// in a test or to raise the level to Debug for a CLI run with -v.
func SetLogger(l *logrus.Logger) { base = l }

// With returns a *logrus.Entry pre-populated with fields, ready for
// .Debug/.Info/.WithError/... calls.
func With(fields Fields) *logrus.Entry {
	return base.WithFields(fields)
}

// Component returns an Entry tagged with just "component": name, for
// call sites that add their own per-call fields incrementally via
// further WithField calls.
func Component(name string) *logrus.Entry {
	return base.WithField("component", name)
}
