package filter

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// Marshal converts an expression tree into a MongoDB filter document. Every
// call allocates a fresh document; the tree is not consumed and marshaling it
// again yields an identical result.
//
// A malformed tree (poisoned comparison, negated non-comparison, short list)
// fails as a whole: no partial document is ever returned.
func Marshal(expr Expression) (bson.D, error) {
	if expr == nil {
		return nil, &CompositionError{Reason: "cannot marshal a nil expression"}
	}
	return appendExpr(bson.D{}, expr)
}

// appendExpr folds one expression node into doc. Comparisons and negations
// contribute a single keyed element, lists contribute their members in order
// into the same enclosing document, and logical nodes contribute an operator
// element whose sides are each finalized as standalone documents.
func appendExpr(doc bson.D, expr Expression) (bson.D, error) {
	switch e := expr.(type) {
	case Comparison:
		if e.err != nil {
			return nil, e.err
		}
		if e.Field == "" {
			return nil, &CompositionError{Reason: "comparison has no field name"}
		}
		if !e.Operator.IsComparison() {
			return nil, &CompositionError{Reason: fmt.Sprintf("%s is not a comparison operator", e.Operator)}
		}
		return append(doc, bson.E{
			Key:   e.Field,
			Value: bson.D{{Key: string(e.Operator), Value: e.Value}},
		}), nil

	case Not:
		inner := e.Comparison
		if inner.err != nil {
			return nil, inner.err
		}
		if inner.Field == "" {
			return nil, &CompositionError{Reason: "negated comparison has no field name"}
		}
		return append(doc, bson.E{
			Key: inner.Field,
			Value: bson.D{{
				Key:   string(OpNot),
				Value: bson.D{{Key: string(inner.Operator), Value: inner.Value}},
			}},
		}), nil

	case List:
		if len(e) < 2 {
			return nil, &CompositionError{Reason: "predicate list requires at least two expressions"}
		}
		var err error
		for _, sub := range e {
			if sub == nil {
				return nil, &CompositionError{Reason: "predicate list contains a nil expression"}
			}
			doc, err = appendExpr(doc, sub)
			if err != nil {
				return nil, err
			}
		}
		return doc, nil

	case Logical:
		if !e.Operator.IsLogical() {
			return nil, &CompositionError{Reason: fmt.Sprintf("%s is not a logical operator", e.Operator)}
		}
		left, err := Marshal(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := Marshal(e.Right)
		if err != nil {
			return nil, err
		}
		return append(doc, bson.E{
			Key:   string(e.Operator),
			Value: bson.A{left, right},
		}), nil

	case invalid:
		return nil, e.err

	default:
		return nil, &CompositionError{Reason: fmt.Sprintf("unsupported expression type %T", expr)}
	}
}

// MarshalExtJSON marshals the expression to canonical or relaxed MongoDB
// Extended JSON, mainly useful for logging and tooling.
func MarshalExtJSON(expr Expression, canonical bool) ([]byte, error) {
	doc, err := Marshal(expr)
	if err != nil {
		return nil, err
	}
	return bson.MarshalExtJSON(doc, canonical, false)
}
