package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dataagent-stack/dataagent-engine/pkg/apperrors"
	"github.com/dataagent-stack/dataagent-engine/pkg/joingraph"
)

// RegisterJoinTools registers the join path resolution tools.
func RegisterJoinTools(s *server.MCPServer, deps *Deps) {
	registerJoinPathTool(s, deps)
}

// registerJoinPathTool resolves how to join a set of tables.
func registerJoinPathTool(s *server.MCPServer, deps *Deps) {
	tool := mcp.NewTool(
		"join_path",
		mcp.WithDescription(
			"Resolve how to join a set of tables using the database's foreign key graph. "+
				"For two tables this returns the shortest join path; for more it returns a "+
				"minimal join network connecting all of them, possibly through intermediate "+
				"tables. Each step names the joined tables and their join columns, and the "+
				"response includes a rendered SQL join clause.",
		),
		mcp.WithString(
			"database",
			mcp.Required(),
			mcp.Description("Name of a configured database (see list_databases)"),
		),
		mcp.WithArray(
			"tables",
			mcp.Required(),
			mcp.Description("Table names to connect (at least two distinct)"),
			mcp.Items(map[string]any{"type": "string"}),
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

		tables, ok := getStringList(req, "tables")
		if !ok {
			return NewErrorResult("missing_parameter", "'tables' parameter must be an array of table names"), nil
		}
		if len(tables) < 2 {
			return NewErrorResultWithDetails(
				"insufficient_tables",
				"at least two table names are required",
				map[string]any{"provided": len(tables)},
			), nil
		}

		var steps []joingraph.JoinStep
		var err error
		if len(tables) == 2 {
			steps, err = deps.Service.ShortestJoinPath(ctx, database, tables[0], tables[1])
		} else {
			steps, err = deps.Service.ConnectTables(ctx, database, tables)
		}
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return NewErrorResult("database_not_found", err.Error()), nil
			}
			if result := NewResolverErrorResult(err); result != nil {
				deps.Logger.Debug("join path not resolvable",
					zap.String("database", database),
					zap.Strings("tables", tables),
					zap.Error(err))
				return result, nil
			}
			return nil, fmt.Errorf("failed to resolve join path: %w", err)
		}

		response := struct {
			Database   string               `json:"database"`
			Tables     []string             `json:"tables"`
			Steps      []joingraph.JoinStep `json:"steps"`
			StepCount  int                  `json:"step_count"`
			JoinClause string               `json:"join_clause"`
		}{
			Database:   database,
			Tables:     tables,
			Steps:      steps,
			StepCount:  len(steps),
			JoinClause: renderJoinClause(tables[0], steps),
		}

		jsonResult, _ := json.Marshal(response)
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// renderJoinClause renders join steps as a SQL FROM/JOIN clause. Identifiers
// are double-quoted; multi-column joins produce AND-ed conditions.
func renderJoinClause(start string, steps []joingraph.JoinStep) string {
	var b strings.Builder

	if len(steps) > 0 {
		start = steps[0].LeftTable
	}
	fmt.Fprintf(&b, "FROM %s", quoteIdent(start))

	for _, step := range steps {
		fmt.Fprintf(&b, "\nJOIN %s ON ", quoteIdent(step.RightTable))
		for i, pair := range step.ColumnPairs {
			if i > 0 {
				b.WriteString(" AND ")
			}
			fmt.Fprintf(&b, "%s.%s = %s.%s",
				quoteIdent(step.LeftTable), quoteIdent(pair.From),
				quoteIdent(step.RightTable), quoteIdent(pair.To))
		}
	}

	return b.String()
}

// quoteIdent double-quotes an identifier, escaping embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
