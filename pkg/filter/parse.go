package filter

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ParseDocument reconstructs an expression tree from a filter document
// restricted to the supported grammar: comparison operators, $not over a
// comparison, $and/$or arrays, and flat key co-occurrence. It is the inverse
// of Marshal for documents Marshal can produce.
func ParseDocument(doc bson.D) (Expression, error) {
	if len(doc) == 0 {
		return nil, fmt.Errorf("filter: cannot parse an empty document")
	}
	exprs := make([]Expression, 0, len(doc))
	for _, elem := range doc {
		expr, err := parseElement(elem)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return NewList(exprs...), nil
}

// ParseExtJSON parses a MongoDB Extended JSON filter document into an
// expression tree.
func ParseExtJSON(data []byte) (Expression, error) {
	var doc bson.D
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, fmt.Errorf("filter: invalid extended JSON: %w", err)
	}
	return ParseDocument(doc)
}

func parseElement(elem bson.E) (Expression, error) {
	op := Operator(elem.Key)
	if op.IsLogical() {
		return parseLogical(op, elem.Value)
	}
	if len(elem.Key) > 0 && elem.Key[0] == '$' {
		return nil, fmt.Errorf("filter: unsupported top-level operator %q", elem.Key)
	}
	return parsePredicate(elem.Key, elem.Value)
}

func parseLogical(op Operator, value interface{}) (Expression, error) {
	arr, ok := value.(bson.A)
	if !ok {
		return nil, fmt.Errorf("filter: %s expects an array of documents", op)
	}
	if len(arr) < 2 {
		return nil, fmt.Errorf("filter: %s requires at least two operands, got %d", op, len(arr))
	}
	operands := make([]Expression, 0, len(arr))
	for _, item := range arr {
		sub, ok := item.(bson.D)
		if !ok {
			return nil, fmt.Errorf("filter: %s operand must be a document, got %T", op, item)
		}
		expr, err := ParseDocument(sub)
		if err != nil {
			return nil, err
		}
		operands = append(operands, expr)
	}
	// Fold n-ary server documents into the binary tree the builder produces.
	result := operands[0]
	for _, operand := range operands[1:] {
		result = Logical{Operator: op, Left: result, Right: operand}
	}
	return result, nil
}

func parsePredicate(field string, value interface{}) (Expression, error) {
	inner, ok := value.(bson.D)
	if !ok {
		return nil, fmt.Errorf("filter: field %q expects an operator document, got %T", field, value)
	}
	if len(inner) != 1 {
		return nil, fmt.Errorf("filter: field %q expects a single operator, got %d", field, len(inner))
	}
	op := Operator(inner[0].Key)
	if op == OpNot {
		nested, ok := inner[0].Value.(bson.D)
		if !ok || len(nested) != 1 {
			return nil, fmt.Errorf("filter: field %q: $not expects a single-operator document", field)
		}
		cmpOp := Operator(nested[0].Key)
		if !cmpOp.IsComparison() {
			return nil, fmt.Errorf("filter: field %q: unsupported operator %q under $not", field, nested[0].Key)
		}
		return Not{Comparison: Comparison{Field: field, Operator: cmpOp, Value: nested[0].Value}}, nil
	}
	if !op.IsComparison() {
		return nil, fmt.Errorf("filter: field %q: unsupported operator %q", field, inner[0].Key)
	}
	return Comparison{Field: field, Operator: op, Value: inner[0].Value}, nil
}
