package schema

import (
	"reflect"

	"github.com/robert-malhotra/go-mongo-odm/pkg/filter"
)

// Key resolves the document key name on schema D into a typed field handle.
// The requested type T must be exactly the field's declared type; a miss or a
// type disagreement is a SchemaError, never a silently mistyped handle.
func Key[D any, T any](name string) (filter.Field[T], error) {
	s, err := Of[D]()
	if err != nil {
		return filter.Field[T]{}, err
	}
	want := reflect.TypeOf((*T)(nil)).Elem()
	f, err := s.lookup(name, want)
	if err != nil {
		return filter.Field[T]{}, err
	}
	return filter.NewField[T](f.Name), nil
}

// MustKey is Key panicking on error, for package-level field handles declared
// next to the schema.
func MustKey[D any, T any](name string) filter.Field[T] {
	f, err := Key[D, T](name)
	if err != nil {
		panic(err)
	}
	return f
}
