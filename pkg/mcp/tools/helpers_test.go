package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcp "github.com/mark3labs/mcp-go/mcp"
)

// resultText extracts the text payload of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return tc.Text
}

func requestWithArgs(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		expected string
		ok       bool
	}{
		{name: "present", args: map[string]any{"database": "shop"}, expected: "shop", ok: true},
		{name: "trimmed", args: map[string]any{"database": "  shop  "}, expected: "shop", ok: true},
		{name: "empty after trim", args: map[string]any{"database": "   "}, ok: false},
		{name: "missing", args: map[string]any{}, ok: false},
		{name: "wrong type", args: map[string]any{"database": 7}, ok: false},
		{name: "nil args", args: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, ok := getString(requestWithArgs(tt.args), "database")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, val)
		})
	}
}

func TestGetStringList(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		expected []string
		ok       bool
	}{
		{
			name:     "valid list",
			args:     map[string]any{"tables": []any{"orders", "products"}},
			expected: []string{"orders", "products"},
			ok:       true,
		},
		{
			name:     "blank entries dropped",
			args:     map[string]any{"tables": []any{"orders", "  ", "products"}},
			expected: []string{"orders", "products"},
			ok:       true,
		},
		{
			name:     "empty list",
			args:     map[string]any{"tables": []any{}},
			expected: []string{},
			ok:       true,
		},
		{name: "non-string element", args: map[string]any{"tables": []any{"orders", 3}}, ok: false},
		{name: "not a list", args: map[string]any{"tables": "orders"}, ok: false},
		{name: "missing", args: map[string]any{}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, ok := getStringList(requestWithArgs(tt.args), "tables")
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, val)
			}
		})
	}
}

func TestGetOptionalBool(t *testing.T) {
	val, ok := getOptionalBool(requestWithArgs(map[string]any{"flag": true}), "flag")
	assert.True(t, ok)
	assert.True(t, val)

	_, ok = getOptionalBool(requestWithArgs(map[string]any{}), "flag")
	assert.False(t, ok)

	_, ok = getOptionalBool(requestWithArgs(map[string]any{"flag": "true"}), "flag")
	assert.False(t, ok)
}
