// Package query provides a fluent accumulator over filter expressions for
// call sites that assemble a predicate incrementally instead of composing the
// tree inline.
package query

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/robert-malhotra/go-mongo-odm/pkg/filter"
)

// Builder accumulates filter expressions in a fluent manner. The zero builder
// is empty; every method returns the receiver for chaining.
type Builder struct {
	expr filter.Expression
	err  error
}

// NewBuilder returns an empty Builder instance.
func NewBuilder() *Builder {
	return &Builder{}
}

// Where sets the expression if none exists or ANDs it with the current one.
func (b *Builder) Where(expr filter.Expression) *Builder {
	if b.err != nil || expr == nil {
		return b
	}
	if b.expr == nil {
		b.expr = expr
		return b
	}
	b.expr = filter.And(b.expr, expr)
	return b
}

// And combines the current expression with the provided ones under $and.
func (b *Builder) And(exprs ...filter.Expression) *Builder {
	return b.combine(filter.And, exprs)
}

// Or combines the current expression with the provided ones under $or.
func (b *Builder) Or(exprs ...filter.Expression) *Builder {
	return b.combine(filter.Or, exprs)
}

// Join chains the expressions onto the current one as a flat predicate list,
// relying on key co-occurrence for the implicit AND.
func (b *Builder) Join(exprs ...filter.Expression) *Builder {
	if b.err != nil {
		return b
	}
	for _, expr := range exprs {
		if expr == nil {
			b.err = &filter.CompositionError{Reason: "cannot join a nil expression"}
			return b
		}
	}
	switch {
	case len(exprs) == 0:
		return b
	case b.expr == nil && len(exprs) == 1:
		b.expr = exprs[0]
	case b.expr == nil:
		b.expr = filter.NewList(exprs...)
	default:
		b.expr = filter.NewList(b.expr).Append(exprs...)
	}
	return b
}

// Not negates the current expression, which must be a bare comparison.
func (b *Builder) Not() *Builder {
	if b.err != nil {
		return b
	}
	if b.expr == nil {
		b.err = &filter.CompositionError{Reason: "cannot negate an empty builder"}
		return b
	}
	cmp, ok := b.expr.(filter.Comparison)
	if !ok {
		b.err = &filter.CompositionError{Reason: "only comparisons can be negated"}
		return b
	}
	b.expr = filter.Negate(cmp)
	return b
}

func (b *Builder) combine(op func(_, _ filter.Expression) filter.Expression, exprs []filter.Expression) *Builder {
	if b.err != nil {
		return b
	}
	for _, expr := range exprs {
		if expr == nil {
			b.err = &filter.CompositionError{Reason: "cannot combine a nil expression"}
			return b
		}
		if b.expr == nil {
			b.expr = expr
			continue
		}
		b.expr = op(b.expr, expr)
	}
	return b
}

// Err reports the first composition failure recorded while building.
func (b *Builder) Err() error {
	return b.err
}

// Filter returns the built expression, or the recorded composition error.
func (b *Builder) Filter() (filter.Expression, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.expr, nil
}

// Must returns the built expression or panics if the builder is empty or
// recorded an error.
func (b *Builder) Must() filter.Expression {
	if b.err != nil {
		panic(b.err)
	}
	if b.expr == nil {
		panic("query builder: expression is empty")
	}
	return b.expr
}

// Document serializes the built expression into a filter document.
func (b *Builder) Document() (bson.D, error) {
	expr, err := b.Filter()
	if err != nil {
		return nil, err
	}
	return filter.Marshal(expr)
}
