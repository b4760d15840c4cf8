package postgres

import (
	"fmt"

	"github.com/dataagent-stack/dataagent-engine/pkg/adapters/datasource"
)

// DefaultPort returns the default PostgreSQL port.
func DefaultPort() int {
	return 5432
}

// DefaultSchema returns the schema introspected when none is configured.
func DefaultSchema() string {
	return "public"
}

// DefaultSSLMode returns the default SSL mode.
func DefaultSSLMode() string {
	return "require"
}

// buildConnectionString renders a pgx-compatible connection string.
func buildConnectionString(cfg datasource.ConnectionConfig) string {
	port := cfg.Port
	if port == 0 {
		port = DefaultPort()
	}
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = DefaultSSLMode()
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, port, cfg.User, cfg.Password, cfg.Database, sslMode)
}
