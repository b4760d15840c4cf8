package tools

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// getString extracts a required string parameter from the request.
// The second return value is false when the parameter is absent, empty
// after trimming, or not a string.
func getString(req mcp.CallToolRequest, key string) (string, bool) {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return "", false
	}
	val, ok := args[key].(string)
	if !ok {
		return "", false
	}
	val = strings.TrimSpace(val)
	if val == "" {
		return "", false
	}
	return val, true
}

// getStringList extracts a list-of-strings parameter. JSON arrays arrive as
// []any, so each element is asserted individually. Blank entries are dropped.
func getStringList(req mcp.CallToolRequest, key string) ([]string, bool) {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil, false
	}
	raw, ok := args[key].([]any)
	if !ok {
		return nil, false
	}

	list := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		list = append(list, s)
	}
	return list, true
}

// getOptionalBool extracts an optional boolean parameter from the request.
func getOptionalBool(req mcp.CallToolRequest, key string) (bool, bool) {
	if args, ok := req.Params.Arguments.(map[string]any); ok {
		if val, ok := args[key].(bool); ok {
			return val, true
		}
	}
	return false, false
}
