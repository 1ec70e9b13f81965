// Package schema maintains the process-wide registry of document schemas and
// resolves member references into typed field handles for the filter package.
// A schema is defined once per struct type and is read-only afterwards, so
// lookups are safe for unsynchronized concurrent use.
package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/robert-malhotra/go-mongo-odm/pkg/filter"
)

// Field describes one registered member of a document schema.
type Field struct {
	// Name is the document key, taken from the bson struct tag or the
	// lowercased Go field name when no tag is present.
	Name string
	// GoName is the declaring struct field name.
	GoName string
	// Type is the declared Go type of the field.
	Type reflect.Type
	// Index is the struct field index for reflect access.
	Index int
}

// Schema is the registered field table of one document struct type.
type Schema struct {
	typ    reflect.Type
	fields []Field
	byName map[string]int
}

var (
	registryMu sync.RWMutex
	registry   = make(map[reflect.Type]*Schema)
)

// Define registers the field table for the document struct D. Defining the
// same type again returns the already-registered schema; the registry is
// append-only.
func Define[D any]() (*Schema, error) {
	typ := reflect.TypeOf((*D)(nil)).Elem()

	registryMu.Lock()
	defer registryMu.Unlock()
	if s, ok := registry[typ]; ok {
		return s, nil
	}
	s, err := build(typ)
	if err != nil {
		return nil, err
	}
	registry[typ] = s
	return s, nil
}

// MustDefine is Define panicking on error, for package-level schema variables.
func MustDefine[D any]() *Schema {
	s, err := Define[D]()
	if err != nil {
		panic(err)
	}
	return s
}

// Of returns the registered schema for D, or a SchemaError if D was never
// defined.
func Of[D any]() (*Schema, error) {
	typ := reflect.TypeOf((*D)(nil)).Elem()

	registryMu.RLock()
	s, ok := registry[typ]
	registryMu.RUnlock()
	if !ok {
		return nil, &filter.SchemaError{Schema: typ.Name(), Reason: "schema is not defined"}
	}
	return s, nil
}

func build(typ reflect.Type) (*Schema, error) {
	if typ.Kind() != reflect.Struct {
		return nil, &filter.SchemaError{Schema: typ.String(), Reason: "document schema must be a struct type"}
	}
	s := &Schema{
		typ:    typ,
		byName: make(map[string]int),
	}
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := documentKey(sf)
		if name == "" {
			continue
		}
		if _, dup := s.byName[name]; dup {
			return nil, &filter.SchemaError{Schema: typ.Name(), Field: name, Reason: "duplicate document key"}
		}
		s.byName[name] = len(s.fields)
		s.fields = append(s.fields, Field{
			Name:   name,
			GoName: sf.Name,
			Type:   sf.Type,
			Index:  i,
		})
	}
	if len(s.fields) == 0 {
		return nil, &filter.SchemaError{Schema: typ.Name(), Reason: "schema declares no document fields"}
	}
	return s, nil
}

// documentKey applies the mongo-driver naming rule: the first comma-separated
// segment of the bson tag, "-" meaning skipped, falling back to the lowercased
// field name.
func documentKey(sf reflect.StructField) string {
	tag, ok := sf.Tag.Lookup("bson")
	if !ok {
		return strings.ToLower(sf.Name)
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return strings.ToLower(sf.Name)
	}
	return name
}

// Type returns the document struct type the schema describes.
func (s *Schema) Type() reflect.Type { return s.typ }

// Name returns the document struct type name.
func (s *Schema) Name() string { return s.typ.Name() }

// Fields returns the registered fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field resolves a document key into a runtime-typed field handle.
func (s *Schema) Field(name string) (filter.Dynamic, error) {
	i, ok := s.byName[name]
	if !ok {
		return filter.Dynamic{}, &filter.SchemaError{Schema: s.typ.Name(), Field: name, Reason: "field is not registered"}
	}
	f := s.fields[i]
	return filter.NewDynamic(f.Name, f.Type), nil
}

// MustField is Field panicking on error.
func (s *Schema) MustField(name string) filter.Dynamic {
	d, err := s.Field(name)
	if err != nil {
		panic(err)
	}
	return d
}

// lookup is the shared resolution used by the typed Key helpers.
func (s *Schema) lookup(name string, want reflect.Type) (Field, error) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, &filter.SchemaError{Schema: s.typ.Name(), Field: name, Reason: "field is not registered"}
	}
	f := s.fields[i]
	if f.Type != want {
		return Field{}, &filter.SchemaError{
			Schema: s.typ.Name(),
			Field:  name,
			Reason: fmt.Sprintf("field is declared as %s, not %s", f.Type, want),
		}
	}
	return f, nil
}
