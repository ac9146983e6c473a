// Package symerr defines the closed set of error kinds raised across the
// expression core: construction-time type errors, reflection failures,
// backend capability gaps, and solver outcomes that are not plain SAT/UNSAT.
package symerr

import "fmt"

// TypeMismatchError is raised by a smart constructor when the operand
// types are incompatible with the node being built.
type TypeMismatchError struct {
	Op       string
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch building %s: expected %s, got %s", e.Op, e.Expected, e.Got)
}

// NewTypeMismatch builds a TypeMismatchError.
func NewTypeMismatch(op, expected, got string) error {
	return &TypeMismatchError{Op: op, Expected: expected, Got: got}
}

// UnsupportedTypeError is raised when a user type cannot be reflected
// into the closed type universe.
type UnsupportedTypeError struct {
	TypeName string
	Path     string
	Reason   string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("unsupported type %s at %s: %s", e.TypeName, e.Path, e.Reason)
	}
	return fmt.Sprintf("unsupported type %s: %s", e.TypeName, e.Reason)
}

// NewUnsupportedType builds an UnsupportedTypeError.
func NewUnsupportedType(typeName, path, reason string) error {
	return &UnsupportedTypeError{TypeName: typeName, Path: path, Reason: reason}
}

// BackendUnsupportedError is returned when a backend is asked for an
// operation outside the fragment it supports (e.g. regex on the BDD
// backend, or any non-bitvector sort on the BDD backend).
type BackendUnsupportedError struct {
	Backend   string
	Operation string
}

func (e *BackendUnsupportedError) Error() string {
	return fmt.Sprintf("backend %s does not support %s", e.Backend, e.Operation)
}

// NewBackendUnsupported builds a BackendUnsupportedError.
func NewBackendUnsupported(backend, operation string) error {
	return &BackendUnsupportedError{Backend: backend, Operation: operation}
}

// SolverTimeoutError is returned when a solver call exceeded its
// caller-supplied timeout without reaching a conclusion.
type SolverTimeoutError struct {
	Query string
}

func (e *SolverTimeoutError) Error() string {
	if e.Query == "" {
		return "solver timed out"
	}
	return fmt.Sprintf("solver timed out solving %s", e.Query)
}

// NewSolverTimeout builds a SolverTimeoutError.
func NewSolverTimeout(query string) error {
	return &SolverTimeoutError{Query: query}
}

// SolverError is returned when the backend reports "unknown" for a
// reason other than a timeout.
type SolverError struct {
	Reason string
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("solver error: %s", e.Reason)
}

// NewSolverError builds a SolverError.
func NewSolverError(reason string) error {
	return &SolverError{Reason: reason}
}

// InvariantViolationError marks a state the implementation guarantees is
// unreachable (e.g. two SymbolicValue variants of mismatched shape
// meeting at a merge). Reaching one is a bug in this library, not a user
// error.
type InvariantViolationError struct {
	Where string
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violated in %s: %s", e.Where, e.Detail)
}

// NewInvariantViolation builds an InvariantViolationError.
func NewInvariantViolation(where, detail string) error {
	return &InvariantViolationError{Where: where, Detail: detail}
}
