package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dataagent-stack/dataagent-engine/pkg/adapters/datasource"
	"github.com/dataagent-stack/dataagent-engine/pkg/apperrors"
	"github.com/dataagent-stack/dataagent-engine/pkg/config"
	"github.com/dataagent-stack/dataagent-engine/pkg/joingraph"
)

// DatasourceInfo describes one configured database for discovery.
type DatasourceInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// DatasourceManager resolves configured datasource names to schema readers.
// Readers are opened lazily on first use and reused afterwards.
type DatasourceManager struct {
	mu      sync.Mutex
	configs map[string]config.DatasourceConfig
	order   []string
	readers map[string]datasource.SchemaReader
	logger  *zap.Logger
}

// NewDatasourceManager creates a manager over the configured datasources.
func NewDatasourceManager(configs []config.DatasourceConfig, logger *zap.Logger) *DatasourceManager {
	m := &DatasourceManager{
		configs: make(map[string]config.DatasourceConfig, len(configs)),
		readers: make(map[string]datasource.SchemaReader),
		logger:  logger.Named("datasources"),
	}
	for _, cfg := range configs {
		m.configs[cfg.Name] = cfg
		m.order = append(m.order, cfg.Name)
	}
	return m
}

// List returns all configured datasources in configuration order.
func (m *DatasourceManager) List() []DatasourceInfo {
	infos := make([]DatasourceInfo, 0, len(m.order))
	for _, name := range m.order {
		cfg := m.configs[name]
		infos = append(infos, DatasourceInfo{
			Name:        cfg.Name,
			Type:        cfg.Type,
			Description: cfg.Description,
		})
	}
	return infos
}

// Reader returns the schema reader for a configured datasource, opening it
// on first use. Unknown names fail with apperrors.ErrNotFound.
func (m *DatasourceManager) Reader(ctx context.Context, name string) (datasource.SchemaReader, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if reader, ok := m.readers[name]; ok {
		return reader, nil
	}

	cfg, ok := m.configs[name]
	if !ok {
		return nil, fmt.Errorf("datasource %q: %w", name, apperrors.ErrNotFound)
	}

	factory := datasource.GetSchemaReaderFactory(cfg.Type)
	if factory == nil {
		return nil, fmt.Errorf("datasource %q type %q: %w", name, cfg.Type, apperrors.ErrUnsupportedAdapter)
	}

	reader, err := factory(ctx, datasource.ConnectionConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		Database: cfg.Database,
		Schema:   cfg.Schema,
		SSLMode:  cfg.SSLMode,
	}, m.logger)
	if err != nil {
		return nil, fmt.Errorf("open datasource %q: %w", name, err)
	}

	m.logger.Info("opened datasource",
		zap.String("name", name),
		zap.String("type", cfg.Type))

	m.readers[name] = reader
	return reader, nil
}

// Provider returns a joingraph metadata provider over the named datasource.
func (m *DatasourceManager) Provider(ctx context.Context, name string) (joingraph.MetadataProvider, error) {
	reader, err := m.Reader(ctx, name)
	if err != nil {
		return nil, err
	}
	return &schemaMetadataProvider{reader: reader}, nil
}

// Close releases all opened readers.
func (m *DatasourceManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name, reader := range m.readers {
		if err := reader.Close(); err != nil {
			m.logger.Warn("failed to close datasource reader",
				zap.String("name", name), zap.Error(err))
		}
		delete(m.readers, name)
	}
}

// schemaMetadataProvider adapts a datasource.SchemaReader to the resolver's
// provider interface, keeping the graph core independent of any database
// access layer.
type schemaMetadataProvider struct {
	reader datasource.SchemaReader
}

var _ joingraph.MetadataProvider = (*schemaMetadataProvider)(nil)

func (p *schemaMetadataProvider) ListTables(ctx context.Context) ([]string, error) {
	return p.reader.ListTables(ctx)
}

func (p *schemaMetadataProvider) GetForeignKeys(ctx context.Context, table string) ([]joingraph.ForeignKeyRecord, error) {
	fks, err := p.reader.ForeignKeys(ctx, table)
	if err != nil {
		return nil, err
	}

	records := make([]joingraph.ForeignKeyRecord, 0, len(fks))
	for _, fk := range fks {
		records = append(records, joingraph.ForeignKeyRecord{
			Name:              fk.ConstraintName,
			ReferencedTable:   fk.TargetTable,
			LocalColumns:      fk.SourceColumns,
			ReferencedColumns: fk.TargetColumns,
		})
	}
	return records, nil
}
