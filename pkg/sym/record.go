package sym

import (
	"reflect"

	"github.com/symexlang/symex/internal/symexpr"
)

// NewRecord builds a record-typed symbolic value of Go shape T (a
// struct with `sym:"fieldname"` tags, reflected once and cached by
// internal/symtype.Registry.ReflectRecord) from a field-name -> value
// map. Fields is keyed by the record's declared field name, not the Go
// struct field name, matching the `sym:"..."` tag rather than Go's own
// identifier.
func NewRecord[T any](fields map[string]AnySym) Sym[T] {
	var zero T
	rec, err := registry.ReflectRecord(reflect.TypeOf(zero))
	if err != nil {
		panic(err)
	}
	nodeFields := make(map[string]symexpr.Node, len(fields))
	for name, v := range fields {
		nodeFields[name] = v.symNode()
	}
	return must[T](symexpr.NewObject(rec, nodeFields))
}

// Field projects a named field out of a record-typed symbolic value.
// The result shape F cannot be inferred from T alone (Go has no way to
// tie a record's declared field type to a type parameter), so both type
// parameters must be supplied at the call site, e.g.
// sym.Field[Point, int32](p, "x").
func Field[T, F any](s Sym[T], name string) Sym[F] {
	return must[F](symexpr.GetFieldNode(s.node, name))
}

// WithField builds a copy of a record with one field replaced.
func WithField[T, F any](s Sym[T], name string, v Sym[F]) Sym[T] {
	return must[T](symexpr.WithFieldNode(s.node, name, v.node))
}
