package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-mongo-odm/pkg/filter"
)

var (
	fieldW  = filter.NewField[int64]("w")
	fieldX1 = filter.NewField[int]("x1")
	fieldX2 = filter.NewField[int]("x2")
	fieldZ  = filter.NewField[string]("z")
)

func TestBuilder(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *Builder
		expected string
	}{
		{
			name: "single where",
			build: func() *Builder {
				return NewBuilder().Where(fieldX1.Eq(1))
			},
			expected: `{"x1":{"$eq":1}}`,
		},
		{
			name: "where then where is an and",
			build: func() *Builder {
				return NewBuilder().Where(fieldX1.Eq(1)).Where(fieldX2.Eq(2))
			},
			expected: `{"$and":[{"x1":{"$eq":1}},{"x2":{"$eq":2}}]}`,
		},
		{
			name: "or",
			build: func() *Builder {
				return NewBuilder().Where(fieldX1.Eq(10)).Or(fieldX2.Eq(3))
			},
			expected: `{"$or":[{"x1":{"$eq":10}},{"x2":{"$eq":3}}]}`,
		},
		{
			name: "and starting empty",
			build: func() *Builder {
				return NewBuilder().And(fieldX1.Gt(9), fieldX1.Lt(11))
			},
			expected: `{"$and":[{"x1":{"$gt":9}},{"x1":{"$lt":11}}]}`,
		},
		{
			name: "not over a comparison",
			build: func() *Builder {
				return NewBuilder().Where(fieldX1.Lt(10)).Not()
			},
			expected: `{"x1":{"$not":{"$lt":10}}}`,
		},
		{
			name: "join keeps call-site order",
			build: func() *Builder {
				return NewBuilder().Join(fieldX1.Eq(1), fieldX2.Eq(2)).Join(fieldW.Gte(444))
			},
			expected: `{"x1":{"$eq":1},"x2":{"$eq":2},"w":{"$gte":444}}`,
		},
		{
			name: "mixed join and or",
			build: func() *Builder {
				return NewBuilder().
					Where(filter.Or(fieldZ.Eq("goodbye"), fieldX2.Eq(3))).
					And(fieldW.Eq(555))
			},
			expected: `{"$and":[{"$or":[{"z":{"$eq":"goodbye"}},{"x2":{"$eq":3}}]},{"w":{"$eq":555}}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.build()
			require.NoError(t, b.Err())

			doc, err := b.Document()
			require.NoError(t, err)

			expr, err := b.Filter()
			require.NoError(t, err)
			out, err := filter.MarshalExtJSON(expr, false)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(out))
			assert.NotNil(t, doc)
		})
	}
}

func TestBuilderCompositionErrors(t *testing.T) {
	t.Run("not on empty builder", func(t *testing.T) {
		b := NewBuilder().Not()
		require.Error(t, b.Err())

		_, err := b.Filter()
		var compErr *filter.CompositionError
		assert.ErrorAs(t, err, &compErr)
	})

	t.Run("not over a logical expression", func(t *testing.T) {
		b := NewBuilder().Where(fieldX1.Eq(1)).Or(fieldX2.Eq(2)).Not()
		var compErr *filter.CompositionError
		require.ErrorAs(t, b.Err(), &compErr)
	})

	t.Run("nil operand", func(t *testing.T) {
		b := NewBuilder().Where(fieldX1.Eq(1)).And(nil)
		require.Error(t, b.Err())
	})

	t.Run("error sticks", func(t *testing.T) {
		b := NewBuilder().Not().Where(fieldX1.Eq(1))
		require.Error(t, b.Err())

		_, err := b.Document()
		require.Error(t, err)
	})
}

func TestBuilderMust(t *testing.T) {
	assert.Panics(t, func() { NewBuilder().Must() })
	assert.Panics(t, func() { NewBuilder().Not().Must() })

	expr := NewBuilder().Where(fieldX1.Eq(1)).Must()
	assert.NotNil(t, expr)
}

func TestBuilderEmptyFilter(t *testing.T) {
	expr, err := NewBuilder().Filter()
	require.NoError(t, err)
	assert.Nil(t, expr)
}
