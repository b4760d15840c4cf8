package datasource

// TableMetadata identifies a discovered database table.
type TableMetadata struct {
	SchemaName string
	TableName  string
}

// ForeignKeyMetadata is one discovered foreign key constraint with its
// complete, ordered column lists. SourceColumns and TargetColumns are
// parallel: SourceColumns[i] references TargetColumns[i].
type ForeignKeyMetadata struct {
	ConstraintName string
	SourceTable    string
	SourceColumns  []string
	TargetTable    string
	TargetColumns  []string
}
