package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dataagent-stack/dataagent-engine/pkg/apperrors"
	"github.com/dataagent-stack/dataagent-engine/pkg/services"
)

// Deps contains dependencies shared by all join path engine tools.
type Deps struct {
	Service services.JoinPathService
	Logger  *zap.Logger
}

// RegisterSchemaTools registers datasource and schema discovery tools.
func RegisterSchemaTools(s *server.MCPServer, deps *Deps) {
	registerListDatabasesTool(s, deps)
	registerListTablesTool(s, deps)
	registerRefreshSchemaTool(s, deps)
}

// registerListDatabasesTool exposes the configured datasources.
func registerListDatabasesTool(s *server.MCPServer, deps *Deps) {
	tool := mcp.NewTool(
		"list_databases",
		mcp.WithDescription(
			"List the configured databases available for join path resolution. "+
				"Use the returned names as the 'database' parameter of the other tools.",
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		databases := deps.Service.ListDatasources()

		response := struct {
			Databases []services.DatasourceInfo `json:"databases"`
			Count     int                       `json:"count"`
		}{
			Databases: databases,
			Count:     len(databases),
		}

		jsonResult, _ := json.Marshal(response)
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// registerListTablesTool exposes the table names of a datasource's schema.
func registerListTablesTool(s *server.MCPServer, deps *Deps) {
	tool := mcp.NewTool(
		"list_tables",
		mcp.WithDescription(
			"List the tables of a database's schema snapshot. "+
				"Table names returned here are valid inputs for the join_path tool.",
		),
		mcp.WithString(
			"database",
			mcp.Required(),
			mcp.Description("Name of a configured database (see list_databases)"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		database, ok := getString(req, "database")
		if !ok {
			return NewErrorResult("missing_parameter", "'database' parameter is required"), nil
		}

		tables, err := deps.Service.ListTables(ctx, database)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return NewErrorResult("database_not_found", err.Error()), nil
			}
			return nil, fmt.Errorf("failed to list tables: %w", err)
		}

		response := struct {
			Database string   `json:"database"`
			Tables   []string `json:"tables"`
			Count    int      `json:"count"`
		}{
			Database: database,
			Tables:   tables,
			Count:    len(tables),
		}

		jsonResult, _ := json.Marshal(response)
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// registerRefreshSchemaTool drops the cached schema snapshot for a database.
func registerRefreshSchemaTool(s *server.MCPServer, deps *Deps) {
	tool := mcp.NewTool(
		"refresh_schema",
		mcp.WithDescription(
			"Discard the cached schema snapshot of a database so the next request "+
				"rebuilds it from live metadata. Use after schema migrations.",
		),
		mcp.WithString(
			"database",
			mcp.Required(),
			mcp.Description("Name of a configured database (see list_databases)"),
		),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		database, ok := getString(req, "database")
		if !ok {
			return NewErrorResult("missing_parameter", "'database' parameter is required"), nil
		}

		if err := deps.Service.RefreshSchema(ctx, database); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return NewErrorResult("database_not_found", err.Error()), nil
			}
			return nil, fmt.Errorf("failed to refresh schema: %w", err)
		}

		deps.Logger.Info("schema refresh requested", zap.String("database", database))

		response := struct {
			Database  string `json:"database"`
			Refreshed bool   `json:"refreshed"`
		}{
			Database:  database,
			Refreshed: true,
		}

		jsonResult, _ := json.Marshal(response)
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}
