package symtype

import (
	"reflect"
	"sync"

	"github.com/symexlang/symex/internal/symerr"
)

// Registry caches record reflection results and record registrations by
// name, mirroring the teacher's TypeSystem registry-by-name pattern:
// reflected once, then treated purely structurally from then on.
type Registry struct {
	mu      sync.Mutex
	byName  map[string]*Record
	byGoTyp map[reflect.Type]*Record
}

// NewRegistry returns an empty, ready-to-use Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]*Record),
		byGoTyp: make(map[reflect.Type]*Record),
	}
}

// RegisterRecord registers a named record type with a fixed field set.
// Field sets are immutable after registration: a second registration
// under the same name must match the first exactly or RegisterRecord
// panics, since that indicates a programming error (two combinator call
// sites disagreeing about a record's shape) rather than a recoverable
// one.
func (r *Registry) RegisterRecord(name string, fields []FieldDescriptor) *Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byName[name]; ok {
		if !sameFields(existing.Fields, fields) {
			panic("symtype: record " + name + " re-registered with a different field set")
		}
		return existing
	}

	rec := &Record{Name: name, Fields: append([]FieldDescriptor(nil), fields...)}
	r.byName[name] = rec
	return rec
}

// Lookup returns the previously registered record by name.
func (r *Registry) Lookup(name string) (*Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byName[name]
	return rec, ok
}

func sameFields(a, b []FieldDescriptor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Type.String() != b[i].Type.String() {
			return false
		}
	}
	return true
}

// ReflectRecord reflects a Go struct type into a Record, caching the
// result by reflect.Type identity. Fields are read from the `sym:"name"`
// struct tag; a field without the tag is skipped. Supported field Go
// shapes: bool, the builtin integer kinds (rune reflects as i32),
// string, and any nested struct, pointer-to-struct, slice or map shape
// this package already knows how to reflect. A pointer to a non-struct,
// *big.Int included, fails with UnsupportedTypeError. Anything else (channels, funcs, interfaces, unexported-only
// structs, self-referential types) fails with UnsupportedTypeError.
func (r *Registry) ReflectRecord(goType reflect.Type) (*Record, error) {
	for goType.Kind() == reflect.Pointer {
		goType = goType.Elem()
	}
	if goType.Kind() != reflect.Struct {
		return nil, symerr.NewUnsupportedType(goType.String(), "$", "ReflectRecord requires a struct type")
	}

	r.mu.Lock()
	if rec, ok := r.byGoTyp[goType]; ok {
		r.mu.Unlock()
		return rec, nil
	}
	r.mu.Unlock()

	fields := make([]FieldDescriptor, 0, goType.NumField())
	for i := 0; i < goType.NumField(); i++ {
		f := goType.Field(i)
		tag, ok := f.Tag.Lookup("sym")
		if !ok || tag == "-" {
			continue
		}
		ft, err := r.reflectGoType(f.Type)
		if err != nil {
			return nil, symerr.NewUnsupportedType(goType.String(), "."+f.Name, err.Error())
		}
		fields = append(fields, FieldDescriptor{Name: tag, Type: ft})
	}

	rec := &Record{Name: goType.Name(), Fields: fields}

	r.mu.Lock()
	r.byGoTyp[goType] = rec
	r.byName[rec.Name] = rec
	r.mu.Unlock()

	return rec, nil
}

func (r *Registry) reflectGoType(t reflect.Type) (Type, error) {
	switch t.Kind() {
	case reflect.Bool:
		return Bool{}, nil
	case reflect.Int8:
		return I8, nil
	case reflect.Int16:
		return I16, nil
	case reflect.Int32:
		return I32, nil
	case reflect.Int64, reflect.Int:
		return I64, nil
	case reflect.Uint8:
		return U8, nil
	case reflect.Uint16:
		return U16, nil
	case reflect.Uint32:
		return U32, nil
	case reflect.Uint64, reflect.Uint:
		return U64, nil
	case reflect.String:
		return String{}, nil
	case reflect.Struct:
		return r.ReflectRecord(t)
	case reflect.Pointer:
		if t.Elem().Kind() == reflect.Struct {
			return r.ReflectRecord(t.Elem())
		}
		return nil, symerr.NewUnsupportedType(t.String(), "", "pointer to non-struct is not supported")
	case reflect.Slice:
		elem, err := r.reflectGoType(t.Elem())
		if err != nil {
			return nil, err
		}
		return FSeq{Elem: elem}, nil
	case reflect.Map:
		key, err := r.reflectGoType(t.Key())
		if err != nil {
			return nil, err
		}
		val, err := r.reflectGoType(t.Elem())
		if err != nil {
			return nil, err
		}
		return Map{Key: key, Val: val}, nil
	default:
		return nil, symerr.NewUnsupportedType(t.String(), "", "unsupported Go kind "+t.Kind().String())
	}
}
