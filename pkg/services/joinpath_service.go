package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/dataagent-stack/dataagent-engine/pkg/joingraph"
)

// JoinPathService resolves join paths over configured datasources.
type JoinPathService interface {
	// ListDatasources returns the configured databases.
	ListDatasources() []DatasourceInfo

	// ListTables returns the table names of a datasource's schema.
	ListTables(ctx context.Context, database string) ([]string, error)

	// ShortestJoinPath returns the shortest join path between two tables.
	ShortestJoinPath(ctx context.Context, database, left, right string) ([]joingraph.JoinStep, error)

	// ConnectTables returns a minimal join network spanning the given tables.
	ConnectTables(ctx context.Context, database string, tables []string) ([]joingraph.JoinStep, error)

	// RefreshSchema drops the cached snapshot for a datasource so the next
	// request rebuilds it from live metadata.
	RefreshSchema(ctx context.Context, database string) error
}

type joinPathService struct {
	datasources *DatasourceManager
	cache       *joingraph.SnapshotCache
	logger      *zap.Logger
}

// NewJoinPathService creates the join path service over a datasource
// manager and a snapshot cache.
func NewJoinPathService(datasources *DatasourceManager, cache *joingraph.SnapshotCache, logger *zap.Logger) JoinPathService {
	return &joinPathService{
		datasources: datasources,
		cache:       cache,
		logger:      logger.Named("joinpath-service"),
	}
}

var _ JoinPathService = (*joinPathService)(nil)

func (s *joinPathService) ListDatasources() []DatasourceInfo {
	return s.datasources.List()
}

func (s *joinPathService) ListTables(ctx context.Context, database string) ([]string, error) {
	snapshot, err := s.snapshot(ctx, database)
	if err != nil {
		return nil, err
	}
	return snapshot.Tables(), nil
}

func (s *joinPathService) ShortestJoinPath(ctx context.Context, database, left, right string) ([]joingraph.JoinStep, error) {
	snapshot, err := s.snapshot(ctx, database)
	if err != nil {
		return nil, err
	}

	steps, err := snapshot.ShortestJoinPath(left, right)
	if err != nil {
		s.logger.Debug("shortest join path failed",
			zap.String("database", database),
			zap.String("left", left),
			zap.String("right", right),
			zap.Error(err))
		return nil, err
	}
	return steps, nil
}

func (s *joinPathService) ConnectTables(ctx context.Context, database string, tables []string) ([]joingraph.JoinStep, error) {
	snapshot, err := s.snapshot(ctx, database)
	if err != nil {
		return nil, err
	}

	steps, err := snapshot.ConnectTables(tables)
	if err != nil {
		s.logger.Debug("connect tables failed",
			zap.String("database", database),
			zap.Strings("tables", tables),
			zap.Error(err))
		return nil, err
	}
	return steps, nil
}

func (s *joinPathService) RefreshSchema(ctx context.Context, database string) error {
	// Resolve the name first so unknown databases fail the same way as
	// every other operation instead of silently no-op invalidating.
	if _, err := s.datasources.Provider(ctx, database); err != nil {
		return err
	}
	s.cache.Invalidate(database)
	s.logger.Info("schema snapshot invalidated", zap.String("database", database))
	return nil
}

func (s *joinPathService) snapshot(ctx context.Context, database string) (*joingraph.Snapshot, error) {
	provider, err := s.datasources.Provider(ctx, database)
	if err != nil {
		return nil, err
	}
	return s.cache.GetOrBuild(ctx, database, provider)
}
