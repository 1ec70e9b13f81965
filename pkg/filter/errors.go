package filter

import "fmt"

// SchemaError indicates a field reference that does not resolve to a
// registered member of a document schema.
type SchemaError struct {
	Schema string
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Schema == "":
		return fmt.Sprintf("filter: schema error: %s", e.Reason)
	case e.Field == "":
		return fmt.Sprintf("filter: schema %s: %s", e.Schema, e.Reason)
	default:
		return fmt.Sprintf("filter: schema %s: field %q: %s", e.Schema, e.Field, e.Reason)
	}
}

// TypeMismatchError indicates a comparison value whose type disagrees with the
// field's declared type.
type TypeMismatchError struct {
	Field string
	Want  string
	Got   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("filter: field %q: cannot compare %s value against %s field", e.Field, e.Got, e.Want)
}

// CompositionError indicates a combinator applied to an operand that cannot
// participate in that combination.
type CompositionError struct {
	Reason string
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("filter: %s", e.Reason)
}
