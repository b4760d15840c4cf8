package datasource

import "context"

// SchemaReader reads foreign-key metadata from one database. Implementations
// own their connection and must be closed when done. Results must be stable
// within one introspection pass so snapshot construction stays deterministic.
type SchemaReader interface {
	// ListTables returns all user table names in the configured schema,
	// ordered by name.
	ListTables(ctx context.Context) ([]string, error)

	// ForeignKeys returns the outgoing foreign key constraints of a table,
	// with column pairs in constraint ordinal order.
	ForeignKeys(ctx context.Context, table string) ([]ForeignKeyMetadata, error)

	// Close releases the underlying connection.
	Close() error
}
