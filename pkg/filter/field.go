package filter

import "reflect"

// Field is a typed named-field handle: the association between a declared
// schema member, its document key, and its value type. Handles are schema-
// scoped constants; comparisons built from the same handle are independent.
//
// The compiler enforces that comparison values have exactly the field's
// declared type. In particular a Field[bool] only ever compares against a
// bool, never against a value that merely converts to one.
type Field[T any] struct {
	name string
}

// NewField returns a handle for the given document key. Handles are normally
// obtained through the schema package, which resolves registered members and
// rejects unknown ones.
func NewField[T any](name string) Field[T] {
	return Field[T]{name: name}
}

// Name returns the document key the handle refers to.
func (f Field[T]) Name() string { return f.name }

// Eq builds a "field == value" predicate.
func (f Field[T]) Eq(value T) Comparison {
	return Comparison{Field: f.name, Operator: OpEq, Value: value}
}

// Gt builds a "field > value" predicate.
func (f Field[T]) Gt(value T) Comparison {
	return Comparison{Field: f.name, Operator: OpGt, Value: value}
}

// Gte builds a "field >= value" predicate.
func (f Field[T]) Gte(value T) Comparison {
	return Comparison{Field: f.name, Operator: OpGte, Value: value}
}

// Lt builds a "field < value" predicate.
func (f Field[T]) Lt(value T) Comparison {
	return Comparison{Field: f.name, Operator: OpLt, Value: value}
}

// Lte builds a "field <= value" predicate.
func (f Field[T]) Lte(value T) Comparison {
	return Comparison{Field: f.name, Operator: OpLte, Value: value}
}

// Ne builds a "field != value" predicate.
func (f Field[T]) Ne(value T) Comparison {
	return Comparison{Field: f.name, Operator: OpNe, Value: value}
}

// In builds a set-membership predicate.
func (f Field[T]) In(values ...T) Comparison {
	return Comparison{Field: f.name, Operator: OpIn, Value: values}
}

// Nin builds a negated set-membership predicate.
func (f Field[T]) Nin(values ...T) Comparison {
	return Comparison{Field: f.name, Operator: OpNin, Value: values}
}

// Dynamic is the runtime-typed counterpart of Field, used when the field type
// is only known through the schema registry. Value compatibility is checked at
// construction time: bool fields accept exactly bool, numeric fields accept
// any numeric kind, and every other field requires an exact type match. An
// incompatible value poisons the comparison so that serialization fails with
// a TypeMismatchError instead of emitting a partial document.
type Dynamic struct {
	name string
	typ  reflect.Type
}

// NewDynamic returns a runtime-typed handle for the given document key and
// declared Go type.
func NewDynamic(name string, typ reflect.Type) Dynamic {
	return Dynamic{name: name, typ: typ}
}

// Name returns the document key the handle refers to.
func (d Dynamic) Name() string { return d.name }

// Type returns the declared Go type of the field.
func (d Dynamic) Type() reflect.Type { return d.typ }

// Eq builds a "field == value" predicate.
func (d Dynamic) Eq(value interface{}) Comparison { return d.compare(OpEq, value) }

// Gt builds a "field > value" predicate.
func (d Dynamic) Gt(value interface{}) Comparison { return d.compare(OpGt, value) }

// Gte builds a "field >= value" predicate.
func (d Dynamic) Gte(value interface{}) Comparison { return d.compare(OpGte, value) }

// Lt builds a "field < value" predicate.
func (d Dynamic) Lt(value interface{}) Comparison { return d.compare(OpLt, value) }

// Lte builds a "field <= value" predicate.
func (d Dynamic) Lte(value interface{}) Comparison { return d.compare(OpLte, value) }

// Ne builds a "field != value" predicate.
func (d Dynamic) Ne(value interface{}) Comparison { return d.compare(OpNe, value) }

// In builds a set-membership predicate. Every element is checked against the
// declared field type.
func (d Dynamic) In(values ...interface{}) Comparison { return d.compareAll(OpIn, values) }

// Nin builds a negated set-membership predicate.
func (d Dynamic) Nin(values ...interface{}) Comparison { return d.compareAll(OpNin, values) }

func (d Dynamic) compare(op Operator, value interface{}) Comparison {
	if err := d.checkValue(value); err != nil {
		return Comparison{Field: d.name, Operator: op, err: err}
	}
	return Comparison{Field: d.name, Operator: op, Value: value}
}

func (d Dynamic) compareAll(op Operator, values []interface{}) Comparison {
	for _, v := range values {
		if err := d.checkValue(v); err != nil {
			return Comparison{Field: d.name, Operator: op, err: err}
		}
	}
	return Comparison{Field: d.name, Operator: op, Value: values}
}

func (d Dynamic) checkValue(value interface{}) error {
	if d.typ == nil {
		return &SchemaError{Field: d.name, Reason: "handle has no declared type"}
	}
	got := reflect.TypeOf(value)
	switch {
	case d.typ.Kind() == reflect.Bool:
		// Bool fields compare only against bool. Anything that is merely
		// truthy (an int, a pointer) is rejected rather than coerced.
		if got == nil || got.Kind() != reflect.Bool {
			return &TypeMismatchError{Field: d.name, Want: d.typ.String(), Got: typeName(got)}
		}
	case isNumericKind(d.typ.Kind()):
		if got == nil || !isNumericKind(got.Kind()) {
			return &TypeMismatchError{Field: d.name, Want: d.typ.String(), Got: typeName(got)}
		}
	default:
		if got != d.typ {
			return &TypeMismatchError{Field: d.name, Want: d.typ.String(), Got: typeName(got)}
		}
	}
	return nil
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}
