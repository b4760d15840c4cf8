package joingraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConnectTablesTwoTerminals(t *testing.T) {
	s := buildShop(t)

	// customers and products only connect through orders and order_items:
	// three edges, all four tables touched.
	steps, err := s.ConnectTables([]string{"customers", "products"})
	require.NoError(t, err)
	require.Len(t, steps, 3)

	touched := map[string]bool{}
	for _, step := range steps {
		touched[step.LeftTable] = true
		touched[step.RightTable] = true
	}
	assert.Len(t, touched, 4)

	// Two terminals must match the plain shortest path edge for edge.
	pairSteps, err := s.ShortestJoinPath("customers", "products")
	require.NoError(t, err)
	assert.Equal(t, pairSteps, steps)
}

func TestConnectTablesThreeTerminals(t *testing.T) {
	s := buildShop(t)

	steps, err := s.ConnectTables([]string{"customers", "products", "order_items"})
	require.NoError(t, err)
	require.Len(t, steps, 3)

	// First emitted step starts from the first requested terminal.
	assert.Equal(t, "customers", steps[0].LeftTable)

	// The edge sequence is connected: each step's left table was already
	// introduced by an earlier step or is the starting terminal.
	known := map[string]bool{"customers": true}
	for _, step := range steps {
		assert.True(t, known[step.LeftTable], "step %v not connected to prior steps", step)
		known[step.RightTable] = true
	}
}

func TestConnectTablesStarTopology(t *testing.T) {
	// hub with three spokes; connecting the spokes must route through hub
	// with exactly three edges, not a cycle.
	provider := &fakeProvider{
		tables: []string{"hub", "s1", "s2", "s3"},
		fks: map[string][]ForeignKeyRecord{
			"s1": {{Name: "fk_s1", ReferencedTable: "hub", LocalColumns: []string{"hub_id"}, ReferencedColumns: []string{"id"}}},
			"s2": {{Name: "fk_s2", ReferencedTable: "hub", LocalColumns: []string{"hub_id"}, ReferencedColumns: []string{"id"}}},
			"s3": {{Name: "fk_s3", ReferencedTable: "hub", LocalColumns: []string{"hub_id"}, ReferencedColumns: []string{"id"}}},
		},
	}
	s, err := Build(context.Background(), provider, zap.NewNop())
	require.NoError(t, err)

	steps, err := s.ConnectTables([]string{"s1", "s2", "s3"})
	require.NoError(t, err)
	assert.Len(t, steps, 3)
	assert.Equal(t, "s1", steps[0].LeftTable)
	assert.Equal(t, "hub", steps[0].RightTable)
}

func TestConnectTablesInsufficient(t *testing.T) {
	s := buildShop(t)

	var insufficient *InsufficientTablesError

	_, err := s.ConnectTables([]string{"orders"})
	require.ErrorAs(t, err, &insufficient)

	// Duplicates collapse before the count check.
	_, err = s.ConnectTables([]string{"orders", "orders", "orders"})
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 1, insufficient.Provided)
}

func TestConnectTablesUnknownTables(t *testing.T) {
	s := buildShop(t)

	_, err := s.ConnectTables([]string{"orders", "ghosts", "phantoms"})
	var unknown *UnknownTableError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []string{"ghosts", "phantoms"}, unknown.Tables)
}

func TestConnectTablesDisconnected(t *testing.T) {
	provider := shopProvider()
	provider.tables = append(provider.tables, "audit_log")

	s, err := Build(context.Background(), provider, zap.NewNop())
	require.NoError(t, err)

	steps, err := s.ConnectTables([]string{"customers", "products", "audit_log"})
	var noPath *NoJoinPathError
	require.ErrorAs(t, err, &noPath)
	assert.Nil(t, steps)
	assert.Contains(t, err.Error(), "audit_log")
}

func TestConnectTablesDeterministic(t *testing.T) {
	first := buildShop(t)
	second := buildShop(t)

	a, err := first.ConnectTables([]string{"customers", "products", "order_items"})
	require.NoError(t, err)
	b, err := second.ConnectTables([]string{"customers", "products", "order_items"})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
