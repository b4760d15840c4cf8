package joingraph

import "context"

// ColumnPair is one column equality of a foreign key: From is the column on
// the constraint's owning (from) side, To the referenced column.
type ColumnPair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ForeignKeyConstraint is one declared foreign key between two tables.
// Immutable once built. Several constraints may connect the same table pair
// and all of them are retained in the snapshot.
type ForeignKeyConstraint struct {
	Name        string // may be empty; names are not guaranteed unique
	FromTable   string
	ToTable     string
	ColumnPairs []ColumnPair // ordered, non-empty
}

// JoinStep is one hop of a resolved join path. ColumnPairs are oriented so
// that LeftTable.From = RightTable.To is directly usable in an ON clause.
// Steps are produced by the materializer only, never from raw metadata.
type JoinStep struct {
	LeftTable      string       `json:"left_table"`
	RightTable     string       `json:"right_table"`
	ColumnPairs    []ColumnPair `json:"column_pairs"`
	ConstraintName string       `json:"constraint_name,omitempty"`
}

// DanglingReference records a foreign key whose target table is absent from
// the schema. Such constraints are excluded from the graph but reported.
type DanglingReference struct {
	FromTable      string `json:"from_table"`
	ToTable        string `json:"to_table"`
	ConstraintName string `json:"constraint_name,omitempty"`
}

// ForeignKeyRecord is one raw foreign key as reported by a metadata provider.
// LocalColumns and ReferencedColumns have equal length; records with no
// columns or no referenced table are invalid and skipped during the build.
type ForeignKeyRecord struct {
	Name              string
	ReferencedTable   string
	LocalColumns      []string
	ReferencedColumns []string
}

// MetadataProvider supplies foreign-key metadata for one schema snapshot.
// Output must be deterministic for a given schema state: table order and
// per-table constraint order decide index assignment and constraint
// precedence in the built snapshot.
type MetadataProvider interface {
	// ListTables returns all table names, stable within one introspection pass.
	ListTables(ctx context.Context) ([]string, error)

	// GetForeignKeys returns the outgoing foreign key constraints of a table.
	GetForeignKeys(ctx context.Context, table string) ([]ForeignKeyRecord, error)
}
