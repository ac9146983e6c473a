package symexpr

import "github.com/symexlang/symex/internal/symtype"

// CreateObject builds a record value from a field-name -> expression map,
// evaluated/lowered in the record's declared field order, which is
// observable by anything that evaluates field expressions for effects.
type CreateObject struct {
	base
	Rec    *symtype.Record
	Values []Node // aligned 1:1 with Rec.Fields
}

func (n *CreateObject) String() string {
	s := n.Rec.Name + "{"
	for i, f := range n.Rec.Fields {
		if i > 0 {
			s += ", "
		}
		s += f.Name + ": " + n.Values[i].String()
	}
	return s + "}"
}

// NewObject builds a CreateObject node. fields must supply exactly the
// record's declared fields, each with a matching type.
func (b *Builder) NewObject(rec *symtype.Record, fields map[string]Node) (Node, error) {
	values := make([]Node, len(rec.Fields))
	for i, f := range rec.Fields {
		v, ok := fields[f.Name]
		if !ok {
			return nil, typeMismatchErr("CreateObject", f.Name, "<missing field>")
		}
		if v.Type().String() != f.Type.String() {
			return nil, typeMismatch("CreateObject."+f.Name, f.Type.String(), v)
		}
		values[i] = v
	}
	n := &CreateObject{base: base{typ: rec}, Rec: rec, Values: values}
	return b.intern(keyf("obj:%s:%s", rec.Name, argIDs(values)), n), nil
}

func NewObject(rec *symtype.Record, fields map[string]Node) (Node, error) {
	return Default.NewObject(rec, fields)
}

// GetField projects a named field out of a record-typed expression.
type GetField struct {
	base
	Obj   Node
	Field string
}

func (n *GetField) String() string { return n.Obj.String() + "." + n.Field }

func (b *Builder) GetFieldNode(obj Node, field string) (Node, error) {
	rec, ok := obj.Type().(*symtype.Record)
	if !ok {
		return nil, typeMismatch("GetField", "Record", obj)
	}
	fd, ok := rec.FieldByName(field)
	if !ok {
		return nil, typeMismatchErr("GetField", field, "<no such field on "+rec.Name+">")
	}
	if co, ok := obj.(*CreateObject); ok {
		for i, f := range co.Rec.Fields {
			if f.Name == field {
				return co.Values[i], nil
			}
		}
	}
	n := &GetField{base: base{typ: fd.Type}, Obj: obj, Field: field}
	return b.intern(keyf("getfield:%d:%s", obj.ID(), field), n), nil
}

func GetFieldNode(obj Node, field string) (Node, error) { return Default.GetFieldNode(obj, field) }

// WithField builds a copy of a record with one field replaced.
type WithField struct {
	base
	Obj   Node
	Field string
	Value Node
}

func (n *WithField) String() string {
	return n.Obj.String() + " with {" + n.Field + ": " + n.Value.String() + "}"
}

func (b *Builder) WithFieldNode(obj Node, field string, value Node) (Node, error) {
	rec, ok := obj.Type().(*symtype.Record)
	if !ok {
		return nil, typeMismatch("WithField", "Record", obj)
	}
	fd, ok := rec.FieldByName(field)
	if !ok {
		return nil, typeMismatchErr("WithField", field, "<no such field on "+rec.Name+">")
	}
	if value.Type().String() != fd.Type.String() {
		return nil, typeMismatch("WithField."+field, fd.Type.String(), value)
	}
	if co, ok := obj.(*CreateObject); ok {
		values := append([]Node(nil), co.Values...)
		for i, f := range co.Rec.Fields {
			if f.Name == field {
				values[i] = value
			}
		}
		return b.NewObject(rec, fieldMap(rec, values))
	}
	n := &WithField{base: base{typ: rec}, Obj: obj, Field: field, Value: value}
	return b.intern(keyf("withfield:%d:%s:%d", obj.ID(), field, value.ID()), n), nil
}

func WithFieldNode(obj Node, field string, value Node) (Node, error) {
	return Default.WithFieldNode(obj, field, value)
}

func fieldMap(rec *symtype.Record, values []Node) map[string]Node {
	m := make(map[string]Node, len(rec.Fields))
	for i, f := range rec.Fields {
		m[f.Name] = values[i]
	}
	return m
}
