package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/dataagent-stack/dataagent-engine/pkg/adapters/datasource"
	"github.com/dataagent-stack/dataagent-engine/pkg/retry"
)

// SchemaReader reads table and foreign-key metadata from PostgreSQL.
type SchemaReader struct {
	pool   *pgxpool.Pool
	schema string
	logger *zap.Logger
}

// NewSchemaReader opens a PostgreSQL schema reader.
// If logger is nil, a no-op logger is used.
func NewSchemaReader(ctx context.Context, cfg datasource.ConnectionConfig, logger *zap.Logger) (*SchemaReader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pool, err := pgxpool.New(ctx, buildConnectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	// Transient network failures during startup are retried; permanent
	// failures (bad credentials, unknown database) are not.
	if err := retry.DoIfRetryable(ctx, nil, func() error { return pool.Ping(ctx) }); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	schema := cfg.Schema
	if schema == "" {
		schema = DefaultSchema()
	}

	return &SchemaReader{pool: pool, schema: schema, logger: logger}, nil
}

// Close releases the connection pool.
func (r *SchemaReader) Close() error {
	if r.pool != nil {
		r.pool.Close()
	}
	return nil
}

// ListTables returns all base tables of the configured schema, by name.
func (r *SchemaReader) ListTables(ctx context.Context) ([]string, error) {
	const query = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_type = 'BASE TABLE'
		  AND table_schema = $1
		ORDER BY table_name
	`

	rows, err := r.pool.Query(ctx, query, r.schema)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		tables = append(tables, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}

	return tables, nil
}

// ForeignKeys returns the outgoing foreign keys of a table. The double join
// against key_column_usage pairs each source column with the referenced
// column at the same position, so multi-column constraints come back in
// declaration order.
func (r *SchemaReader) ForeignKeys(ctx context.Context, table string) ([]datasource.ForeignKeyMetadata, error) {
	const query = `
		SELECT
			rc.constraint_name,
			kcu.column_name AS source_column,
			ref.table_name AS target_table,
			ref.column_name AS target_column
		FROM information_schema.referential_constraints rc
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_name = rc.constraint_name
			AND kcu.constraint_schema = rc.constraint_schema
		JOIN information_schema.key_column_usage ref
			ON ref.constraint_name = rc.unique_constraint_name
			AND ref.constraint_schema = rc.unique_constraint_schema
			AND ref.ordinal_position = kcu.position_in_unique_constraint
		WHERE kcu.table_schema = $1
		  AND kcu.table_name = $2
		ORDER BY rc.constraint_name, kcu.ordinal_position
	`

	rows, err := r.pool.Query(ctx, query, r.schema, table)
	if err != nil {
		return nil, fmt.Errorf("query foreign keys: %w", err)
	}
	defer rows.Close()

	var fks []datasource.ForeignKeyMetadata
	for rows.Next() {
		var constraintName, sourceColumn, targetTable, targetColumn string
		if err := rows.Scan(&constraintName, &sourceColumn, &targetTable, &targetColumn); err != nil {
			return nil, fmt.Errorf("scan foreign key: %w", err)
		}

		// Rows arrive grouped by constraint in ordinal order; append columns
		// to the current constraint until the name changes.
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
		return nil, fmt.Errorf("iterate foreign keys: %w", err)
	}

	return fks, nil
}
