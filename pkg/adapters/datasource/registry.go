package datasource

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// ConnectionConfig holds connection options common to all adapter types.
type ConnectionConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	// Schema limits introspection to one namespace; empty means the
	// adapter's default ("public" for PostgreSQL, "dbo" for SQL Server).
	Schema  string
	SSLMode string
}

// AdapterInfo describes a registered adapter type.
type AdapterInfo struct {
	Type        string `json:"type"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

// Registration contains adapter info plus the factory that opens a reader.
type Registration struct {
	Info                AdapterInfo
	SchemaReaderFactory func(ctx context.Context, cfg ConnectionConfig, logger *zap.Logger) (SchemaReader, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Registration)
)

// Register is called by each adapter's init() function.
// Thread-safe for concurrent init() calls.
func Register(reg Registration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[reg.Info.Type] = reg
}

// GetSchemaReaderFactory returns the factory for a datasource type, or nil
// if the type is not registered.
func GetSchemaReaderFactory(dsType string) func(ctx context.Context, cfg ConnectionConfig, logger *zap.Logger) (SchemaReader, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if reg, ok := registry[dsType]; ok {
		return reg.SchemaReaderFactory
	}
	return nil
}

// RegisteredAdapters returns info for all registered adapter types.
func RegisteredAdapters() []AdapterInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]AdapterInfo, 0, len(registry))
	for _, reg := range registry {
		result = append(result, reg.Info)
	}
	return result
}

// IsRegistered checks if an adapter type is available.
func IsRegistered(dsType string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[dsType]
	return ok
}
