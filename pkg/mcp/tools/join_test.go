package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataagent-stack/dataagent-engine/pkg/joingraph"
)

func TestRenderJoinClause_TwoTablePath(t *testing.T) {
	steps := []joingraph.JoinStep{
		{
			LeftTable:  "orders",
			RightTable: "order_items",
			ColumnPairs: []joingraph.ColumnPair{
				{From: "id", To: "order_id"},
			},
		},
		{
			LeftTable:  "order_items",
			RightTable: "products",
			ColumnPairs: []joingraph.ColumnPair{
				{From: "product_id", To: "id"},
			},
		},
	}

	clause := renderJoinClause("orders", steps)
	expected := `FROM "orders"
JOIN "order_items" ON "orders"."id" = "order_items"."order_id"
JOIN "products" ON "order_items"."product_id" = "products"."id"`
	assert.Equal(t, expected, clause)
}

func TestRenderJoinClause_MultiColumnJoin(t *testing.T) {
	steps := []joingraph.JoinStep{
		{
			LeftTable:  "shipments",
			RightTable: "shipment_legs",
			ColumnPairs: []joingraph.ColumnPair{
				{From: "carrier", To: "carrier"},
				{From: "tracking_no", To: "tracking_no"},
			},
		},
	}

	clause := renderJoinClause("shipments", steps)
	expected := `FROM "shipments"
JOIN "shipment_legs" ON "shipments"."carrier" = "shipment_legs"."carrier" AND "shipments"."tracking_no" = "shipment_legs"."tracking_no"`
	assert.Equal(t, expected, clause)
}

func TestRenderJoinClause_NoSteps(t *testing.T) {
	assert.Equal(t, `FROM "orders"`, renderJoinClause("orders", nil))
}

func TestRenderJoinClause_StartsFromFirstStepLeftTable(t *testing.T) {
	// The requested table order and the resolved step order can differ;
	// the clause must anchor on the first step's left table.
	steps := []joingraph.JoinStep{
		{
			LeftTable:  "customers",
			RightTable: "orders",
			ColumnPairs: []joingraph.ColumnPair{
				{From: "id", To: "customer_id"},
			},
		},
	}
	clause := renderJoinClause("orders", steps)
	assert.Contains(t, clause, `FROM "customers"`)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"orders"`, quoteIdent("orders"))
	assert.Equal(t, `"we""ird"`, quoteIdent(`we"ird`))
}

func TestNewResolverErrorResult(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{
			name: "unknown table",
			err:  &joingraph.UnknownTableError{Tables: []string{"ghosts"}, Available: []string{"orders"}},
			code: "unknown_table",
		},
		{
			name: "no join path",
			err:  &joingraph.NoJoinPathError{Tables: []string{"a", "b"}},
			code: "no_join_path",
		},
		{
			name: "insufficient tables",
			err:  &joingraph.InsufficientTablesError{Provided: 1},
			code: "insufficient_tables",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewResolverErrorResult(tt.err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), `"code":"`+tt.code+`"`)
		})
	}
}

func TestNewResolverErrorResult_NonResolverError(t *testing.T) {
	assert.Nil(t, NewResolverErrorResult(assert.AnError))
	assert.Nil(t, NewResolverErrorResult(nil))
}

func TestIsInputError(t *testing.T) {
	assert.False(t, IsInputError(nil))
	assert.False(t, IsInputError(assert.AnError))
	assert.True(t, IsInputError(&joingraph.NoJoinPathError{Tables: []string{"a", "b"}}))
	assert.True(t, IsInputError(&joingraph.InsufficientTablesError{Provided: 1}))
}
