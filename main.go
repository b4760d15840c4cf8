package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dataagent-stack/dataagent-engine/pkg/config"
	"github.com/dataagent-stack/dataagent-engine/pkg/handlers"
	"github.com/dataagent-stack/dataagent-engine/pkg/joingraph"
	"github.com/dataagent-stack/dataagent-engine/pkg/logging"
	"github.com/dataagent-stack/dataagent-engine/pkg/mcp"
	"github.com/dataagent-stack/dataagent-engine/pkg/mcp/tools"
	"github.com/dataagent-stack/dataagent-engine/pkg/services"

	// Register datasource adapters.
	_ "github.com/dataagent-stack/dataagent-engine/pkg/adapters/datasource/mssql"
	_ "github.com/dataagent-stack/dataagent-engine/pkg/adapters/datasource/postgres"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("version", cfg.Version),
		zap.Int("datasources", len(cfg.Datasources)))

	manager := services.NewDatasourceManager(cfg.Datasources, logger)
	defer manager.Close()

	cache := joingraph.NewSnapshotCache(logger)
	joinPathService := services.NewJoinPathService(manager, cache, logger)

	audit := mcp.NewAuditLogger(logger)
	mcpServer := mcp.NewServer("dataagent-engine", cfg.Version, logger,
		mcpserver.WithHooks(audit.Hooks()))

	toolDeps := &tools.Deps{Service: joinPathService, Logger: logger}
	tools.RegisterSchemaTools(mcpServer.MCP(), toolDeps)
	tools.RegisterJoinTools(mcpServer.MCP(), toolDeps)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewMCPHandler(mcpServer, logger).RegisterRoutes(mux)

	srv := &http.Server{
		Addr:    cfg.BindAddr + ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		logger.Info("starting dataagent-engine",
			zap.String("addr", srv.Addr),
			zap.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}
