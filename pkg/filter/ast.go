package filter

// Expression is the unit of composition in the query DSL. An expression tree is
// immutable once built: combinators return new nodes and never modify their
// operands, so a tree may be serialized any number of times with identical
// results.
type Expression interface {
	isExpr()
}

// Comparison is a single field predicate: "field OP value".
type Comparison struct {
	Field    string
	Operator Operator
	Value    interface{}

	// err records a construction-time failure from the Dynamic API. A poisoned
	// comparison refuses to serialize rather than emit a partial filter.
	err error
}

func (Comparison) isExpr() {}

// Err reports the construction error carried by the comparison, if any.
func (c Comparison) Err() error { return c.err }

// Not negates a single comparison. Only comparisons are negatable; use Negate
// for the runtime-checked form.
type Not struct {
	Comparison Comparison
}

func (Not) isExpr() {}

// List is an ordered chain of predicates combined through co-occurrence in one
// filter document, which the server interprets as an implicit AND. The slice is
// kept flat regardless of how the chain was built, so serialization order is
// always the original call-site order.
type List []Expression

func (List) isExpr() {}

// Logical combines two sub-expressions of any kind under $and or $or.
type Logical struct {
	Operator Operator
	Left     Expression
	Right    Expression
}

func (Logical) isExpr() {}

// invalid is a poisoned expression produced by a combinator misuse. It
// participates in composition but fails serialization with its recorded error.
type invalid struct {
	err error
}

func (invalid) isExpr() {}

// And combines two expressions under $and.
func And(left, right Expression) Expression {
	if left == nil || right == nil {
		return invalid{err: &CompositionError{Reason: "logical combination requires two expressions"}}
	}
	return Logical{Operator: OpAnd, Left: left, Right: right}
}

// Or combines two expressions under $or.
func Or(left, right Expression) Expression {
	if left == nil || right == nil {
		return invalid{err: &CompositionError{Reason: "logical combination requires two expressions"}}
	}
	return Logical{Operator: OpOr, Left: left, Right: right}
}

// Negate wraps a comparison in $not. Negating anything other than a bare
// comparison is a composition error; double negation is never collapsed.
func Negate(expr Expression) Expression {
	switch e := expr.(type) {
	case Comparison:
		return Not{Comparison: e}
	case Not:
		return invalid{err: &CompositionError{Reason: "cannot negate a negation"}}
	case nil:
		return invalid{err: &CompositionError{Reason: "cannot negate a nil expression"}}
	default:
		return invalid{err: &CompositionError{Reason: "only comparisons can be negated"}}
	}
}

// NewList chains expressions into a flat predicate list, preserving left-to-
// right order. Nested lists are flattened so the internal tree shape of the
// construction never leaks into the serialized document.
func NewList(exprs ...Expression) List {
	out := make(List, 0, len(exprs))
	return out.Append(exprs...)
}

// Append returns a new list with the expressions chained at the end. The
// receiver is not modified.
func (l List) Append(exprs ...Expression) List {
	out := make(List, 0, len(l)+len(exprs))
	out = append(out, l...)
	for _, expr := range exprs {
		if sub, ok := expr.(List); ok {
			out = append(out, sub...)
			continue
		}
		out = append(out, expr)
	}
	return out
}
