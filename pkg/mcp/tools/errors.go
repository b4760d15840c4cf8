package tools

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dataagent-stack/dataagent-engine/pkg/joingraph"
)

// ErrorResponse represents a structured error in tool results.
// Errors the caller can act on are returned as successful tool results
// carrying this payload, so the details stay visible to the MCP client
// instead of being swallowed as protocol errors.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// NewErrorResult creates a tool result containing a structured error.
// Use this for recoverable errors the caller can fix and retry (unknown
// table names, disconnected tables, too few tables).
//
// Do NOT use this for system failures (datasource connection errors,
// internal errors) - those should still return Go errors.
func NewErrorResult(code, message string) *mcp.CallToolResult {
	return NewErrorResultWithDetails(code, message, nil)
}

// NewErrorResultWithDetails creates an error result with additional context.
func NewErrorResultWithDetails(code, message string, details any) *mcp.CallToolResult {
	resp := ErrorResponse{
		Error:   true,
		Code:    code,
		Message: message,
		Details: details,
	}
	jsonBytes, _ := json.Marshal(resp)
	result := mcp.NewToolResultText(string(jsonBytes))
	result.IsError = true
	return result
}

// NewResolverErrorResult maps a join graph resolver error to a structured
// error result. Returns nil when the error is not a resolver error, in
// which case the caller should return it as a Go error.
func NewResolverErrorResult(err error) *mcp.CallToolResult {
	var unknown *joingraph.UnknownTableError
	if errors.As(err, &unknown) {
		return NewErrorResultWithDetails("unknown_table", err.Error(), map[string]any{
			"unknown_tables":   unknown.Tables,
			"available_tables": unknown.Available,
		})
	}

	var noPath *joingraph.NoJoinPathError
	if errors.As(err, &noPath) {
		return NewErrorResultWithDetails("no_join_path", err.Error(), map[string]any{
			"tables": noPath.Tables,
		})
	}

	var insufficient *joingraph.InsufficientTablesError
	if errors.As(err, &insufficient) {
		return NewErrorResultWithDetails("insufficient_tables", err.Error(), map[string]any{
			"provided": insufficient.Provided,
		})
	}

	var noConstraint *joingraph.NoConstraintForEdgeError
	if errors.As(err, &noConstraint) {
		return NewErrorResult("no_constraint_for_edge", err.Error())
	}

	return nil
}

// inputErrorPatterns are substrings that indicate an error is due to caller
// input rather than a server failure. These are logged at DEBUG level.
var inputErrorPatterns = []string{
	"not found",
	"unknown tables",
	"no join path",
	"at least two",
	"missing required",
	"cannot be empty",
}

// IsInputError returns true if the error appears to be caused by caller
// input rather than a server failure.
func IsInputError(err error) bool {
	if err == nil {
		return false
	}

	if NewResolverErrorResult(err) != nil {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range inputErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}
