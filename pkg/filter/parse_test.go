package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseDocumentRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
	}{
		{name: "comparison", expr: fieldX1.Eq(1)},
		{name: "negation", expr: Negate(fieldX1.Lt(10))},
		{name: "list", expr: NewList(fieldX1.Eq(1), fieldX2.Eq(2), fieldW.Gte(444))},
		{name: "and", expr: And(fieldX1.Eq(1), fieldX2.Eq(2))},
		{
			name: "nested",
			expr: And(
				Or(fieldZ.Eq("goodbye"), Negate(fieldY.Eq(false))),
				Or(fieldW.Eq(555), fieldX2.Eq(3)),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Marshal(tt.expr)
			require.NoError(t, err)

			parsed, err := ParseDocument(doc)
			require.NoError(t, err)

			reserialized, err := Marshal(parsed)
			require.NoError(t, err)
			assert.Equal(t, doc, reserialized)
		})
	}
}

func TestParseExtJSON(t *testing.T) {
	expr, err := ParseExtJSON([]byte(`{"$and":[{"x1":{"$eq":1}},{"x2":{"$eq":2}}]}`))
	require.NoError(t, err)

	logical, ok := expr.(Logical)
	require.True(t, ok)
	assert.Equal(t, OpAnd, logical.Operator)

	out, err := MarshalExtJSON(expr, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"$and":[{"x1":{"$eq":1}},{"x2":{"$eq":2}}]}`, string(out))
}

func TestParseNAryLogicalFoldsToBinary(t *testing.T) {
	expr, err := ParseExtJSON([]byte(`{"$or":[{"x1":{"$eq":1}},{"x2":{"$eq":2}},{"w":{"$gte":444}}]}`))
	require.NoError(t, err)

	outer, ok := expr.(Logical)
	require.True(t, ok)
	assert.Equal(t, OpOr, outer.Operator)

	inner, ok := outer.Left.(Logical)
	require.True(t, ok)
	assert.Equal(t, OpOr, inner.Operator)
}

func TestParseMultiKeyDocumentYieldsList(t *testing.T) {
	expr, err := ParseExtJSON([]byte(`{"x1":{"$eq":1},"x2":{"$eq":2}}`))
	require.NoError(t, err)

	list, ok := expr.(List)
	require.True(t, ok)
	require.Len(t, list, 2)
}

func TestParseRejectsUnsupportedDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  bson.D
	}{
		{name: "empty document", doc: bson.D{}},
		{name: "unsupported top-level operator", doc: bson.D{{Key: "$nor", Value: bson.A{}}}},
		{name: "logical without array", doc: bson.D{{Key: "$and", Value: "nope"}}},
		{name: "logical with one operand", doc: bson.D{{Key: "$and", Value: bson.A{bson.D{{Key: "x1", Value: bson.D{{Key: "$eq", Value: 1}}}}}}}},
		{name: "predicate without operator document", doc: bson.D{{Key: "x1", Value: 1}}},
		{name: "unknown comparison operator", doc: bson.D{{Key: "x1", Value: bson.D{{Key: "$regex", Value: "a.*"}}}}},
		{name: "not over non-comparison", doc: bson.D{{Key: "x1", Value: bson.D{{Key: "$not", Value: bson.D{{Key: "$not", Value: 1}}}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := ParseDocument(tt.doc)
			require.Error(t, err)
			assert.Nil(t, expr)
		})
	}
}
