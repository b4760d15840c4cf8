package mssql

import (
	"context"

	"go.uber.org/zap"

	"github.com/dataagent-stack/dataagent-engine/pkg/adapters/datasource"
)

func init() {
	datasource.Register(datasource.Registration{
		Info: datasource.AdapterInfo{
			Type:        "sqlserver",
			DisplayName: "Microsoft SQL Server",
			Description: "Connect to SQL Server 2017+ and Azure SQL",
		},
		SchemaReaderFactory: func(ctx context.Context, cfg datasource.ConnectionConfig, logger *zap.Logger) (datasource.SchemaReader, error) {
			return NewSchemaReader(ctx, cfg, logger)
		},
	})
}
