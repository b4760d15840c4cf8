package postgres

import (
	"context"

	"go.uber.org/zap"

	"github.com/dataagent-stack/dataagent-engine/pkg/adapters/datasource"
)

func init() {
	datasource.Register(datasource.Registration{
		Info: datasource.AdapterInfo{
			Type:        "postgres",
			DisplayName: "PostgreSQL",
			Description: "Connect to PostgreSQL 12+, Aurora PostgreSQL, Supabase",
		},
		SchemaReaderFactory: func(ctx context.Context, cfg datasource.ConnectionConfig, logger *zap.Logger) (datasource.SchemaReader, error) {
			return NewSchemaReader(ctx, cfg, logger)
		},
	})
}
