package mcp

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// AuditLogger emits structured log events for MCP tool calls: one event per
// completed call with tool name, sanitized arguments, duration and outcome.
type AuditLogger struct {
	logger *zap.Logger

	// startTimes tracks when tool calls begin, keyed by request ID.
	startTimes sync.Map
}

// NewAuditLogger creates an AuditLogger that records MCP tool call events.
func NewAuditLogger(logger *zap.Logger) *AuditLogger {
	return &AuditLogger{
		logger: logger.Named("mcp-audit"),
	}
}

// Hooks returns mcp-go Hooks configured to capture tool call events.
func (a *AuditLogger) Hooks() *server.Hooks {
	hooks := &server.Hooks{}
	hooks.AddBeforeCallTool(a.beforeCallTool)
	hooks.AddAfterCallTool(a.afterCallTool)
	hooks.AddOnError(a.onError)
	return hooks
}

func (a *AuditLogger) beforeCallTool(_ context.Context, id any, _ *mcplib.CallToolRequest) {
	a.startTimes.Store(id, time.Now())
}

func (a *AuditLogger) afterCallTool(_ context.Context, id any, req *mcplib.CallToolRequest, result *mcplib.CallToolResult) {
	start, _ := a.loadAndDeleteStart(id)

	fields := append(a.baseFields(req),
		zap.Duration("duration", time.Since(start)),
		zap.Bool("is_error", result != nil && result.IsError),
	)
	if preview := resultPreview(result); preview != "" {
		fields = append(fields, zap.String("result_preview", preview))
	}

	a.logger.Info("tool call completed", fields...)
}

func (a *AuditLogger) onError(_ context.Context, id any, method mcplib.MCPMethod, message any, err error) {
	if method != mcplib.MethodToolsCall {
		return
	}

	req, ok := message.(*mcplib.CallToolRequest)
	if !ok {
		return
	}

	start, _ := a.loadAndDeleteStart(id)

	fields := append(a.baseFields(req),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err),
	)
	a.logger.Error("tool call failed", fields...)
}

func (a *AuditLogger) loadAndDeleteStart(id any) (time.Time, bool) {
	if v, ok := a.startTimes.LoadAndDelete(id); ok {
		return v.(time.Time), true
	}
	return time.Now(), false
}

func (a *AuditLogger) baseFields(req *mcplib.CallToolRequest) []zap.Field {
	fields := []zap.Field{
		zap.String("event_id", uuid.NewString()),
		zap.String("tool", req.Params.Name),
	}
	if args := sanitizeArguments(req.Params.Arguments); args != nil {
		fields = append(fields, zap.Any("arguments", args))
	}
	return fields
}

// sensitiveArgKeys are argument names whose values are never logged.
var sensitiveArgKeys = map[string]bool{
	"password":   true,
	"secret":     true,
	"token":      true,
	"api_key":    true,
	"credential": true,
}

// sanitizeArguments returns a copy of the tool arguments safe for logging.
// Sensitive values are replaced, oversized strings truncated.
func sanitizeArguments(args any) map[string]any {
	params, ok := args.(map[string]any)
	if !ok || len(params) == 0 {
		return nil
	}

	const maxValueSize = 1024

	sanitized := make(map[string]any, len(params))
	for k, v := range params {
		if sensitiveArgKeys[k] {
			sanitized[k] = "[REDACTED]"
			continue
		}
		if s, ok := v.(string); ok && len(s) > maxValueSize {
			sanitized[k] = s[:maxValueSize] + "...[truncated]"
			continue
		}
		sanitized[k] = v
	}
	return sanitized
}

// resultPreview returns a truncated preview of the first text content.
func resultPreview(result *mcplib.CallToolResult) string {
	if result == nil {
		return ""
	}
	for _, c := range result.Content {
		tc, ok := c.(mcplib.TextContent)
		if !ok {
			continue
		}
		text := tc.Text
		if len(text) > 200 {
			text = text[:200] + "...[truncated]"
		}
		return text
	}
	return ""
}
