package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/microsoft/go-mssqldb"
	"go.uber.org/zap"

	"github.com/dataagent-stack/dataagent-engine/pkg/adapters/datasource"
	"github.com/dataagent-stack/dataagent-engine/pkg/retry"
)

// DefaultPort returns the default SQL Server port.
func DefaultPort() int {
	return 1433
}

// DefaultSchema returns the schema introspected when none is configured.
func DefaultSchema() string {
	return "dbo"
}

// SchemaReader reads table and foreign-key metadata from SQL Server.
type SchemaReader struct {
	db     *sql.DB
	schema string
	logger *zap.Logger
}

// NewSchemaReader opens a SQL Server schema reader.
// If logger is nil, a no-op logger is used.
func NewSchemaReader(ctx context.Context, cfg datasource.ConnectionConfig, logger *zap.Logger) (*SchemaReader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlserver", buildConnectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("open sqlserver connection: %w", err)
	}

	// Transient network failures during startup are retried; permanent
	// failures (bad credentials, unknown database) are not.
	if err := retry.DoIfRetryable(ctx, nil, func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlserver: %w", err)
	}

	schema := cfg.Schema
	if schema == "" {
		schema = DefaultSchema()
	}

	return &SchemaReader{db: db, schema: schema, logger: logger}, nil
}

// Close releases the database handle.
func (r *SchemaReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// buildConnectionString renders a go-mssqldb URL connection string.
func buildConnectionString(cfg datasource.ConnectionConfig) string {
	port := cfg.Port
	if port == 0 {
		port = DefaultPort()
	}

	query := url.Values{}
	query.Set("database", cfg.Database)

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, port),
		RawQuery: query.Encode(),
	}
	return u.String()
}

// ListTables returns all user tables of the configured schema, by name.
func (r *SchemaReader) ListTables(ctx context.Context) ([]string, error) {
	const query = `
		SET NOCOUNT ON;
		SELECT t.name
		FROM sys.tables t
		JOIN sys.schemas s ON s.schema_id = t.schema_id
		WHERE t.is_ms_shipped = 0
		  AND s.name = @p1
		ORDER BY t.name
	`

	rows, err := r.db.QueryContext(ctx, query, r.schema)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		tables = append(tables, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate table rows: %w", err)
	}

	return tables, nil
}

// ForeignKeys returns the outgoing foreign keys of a table, column pairs in
// constraint column order.
func (r *SchemaReader) ForeignKeys(ctx context.Context, table string) ([]datasource.ForeignKeyMetadata, error) {
	const query = `
		SET NOCOUNT ON;
		SELECT
			fk.name AS constraint_name,
			COL_NAME(fkc.parent_object_id, fkc.parent_column_id) AS source_column,
			OBJECT_NAME(fk.referenced_object_id) AS target_table,
			COL_NAME(fkc.referenced_object_id, fkc.referenced_column_id) AS target_column
		FROM sys.foreign_keys fk
		INNER JOIN sys.foreign_key_columns fkc ON fk.object_id = fkc.constraint_object_id
		WHERE fk.is_ms_shipped = 0
		  AND SCHEMA_NAME(fk.schema_id) = @p1
		  AND OBJECT_NAME(fk.parent_object_id) = @p2
		ORDER BY fk.name, fkc.constraint_column_id
	`

	rows, err := r.db.QueryContext(ctx, query, r.schema, table)
	if err != nil {
		return nil, fmt.Errorf("query foreign keys: %w", err)
	}
	defer rows.Close()

	var fks []datasource.ForeignKeyMetadata
	for rows.Next() {
		var constraintName, sourceColumn, targetTable, targetColumn string
		if err := rows.Scan(&constraintName, &sourceColumn, &targetTable, &targetColumn); err != nil {
			return nil, fmt.Errorf("scan foreign key row: %w", err)
		}

		if n := len(fks); n > 0 && fks[n-1].ConstraintName == constraintName {
			fks[n-1].SourceColumns = append(fks[n-1].SourceColumns, sourceColumn)
			fks[n-1].TargetColumns = append(fks[n-1].TargetColumns, targetColumn)
			continue
		}
		fks = append(fks, datasource.ForeignKeyMetadata{
			ConstraintName: constraintName,
			SourceTable:    table,
			SourceColumns:  []string{sourceColumn},
			TargetTable:    targetTable,
			TargetColumns:  []string{targetColumn},
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foreign key rows: %w", err)
	}

	return fks, nil
}
