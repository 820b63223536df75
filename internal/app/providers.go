package app

import (
	"context"

	"github.com/gin-gonic/gin"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/remote-jobs/internal/api"
	"github.com/honeycarbs/remote-jobs/internal/catalog"
	"github.com/honeycarbs/remote-jobs/internal/config"
	"github.com/honeycarbs/remote-jobs/internal/domain/job"
	"github.com/honeycarbs/remote-jobs/internal/mcp"
	"github.com/honeycarbs/remote-jobs/internal/metrics"
	"github.com/honeycarbs/remote-jobs/internal/providerconfig"
	"github.com/honeycarbs/remote-jobs/internal/server"
	storage "github.com/honeycarbs/remote-jobs/internal/storage/neo4j"
	"github.com/honeycarbs/remote-jobs/pkg/logging"
	n4j "github.com/honeycarbs/remote-jobs/pkg/neo4j"
	sheetsclient "github.com/honeycarbs/remote-jobs/pkg/sheets"
)

// provideConfigStore opens the provider config file for the known providers
func provideConfigStore(cfg config.Config, entries []catalog.Entry, logger *logging.Logger) (*providerconfig.Store, error) {
	return providerconfig.NewStore(
		cfg.ProviderConfigPath,
		catalog.IDs(entries),
		catalog.CredentialChecker(entries),
		logger.Named("providerconfig"),
	)
}

// provideCatalog builds the active-provider source
func provideCatalog(cfg config.Config, entries []catalog.Entry, store *providerconfig.Store, logger *logging.Logger) (*catalog.Catalog, error) {
	return catalog.New(entries, store, cfg.ProvidersEnabled, cfg.ProbeTimeout, logger)
}

// provideSettings extracts aggregator timeouts from main config
func provideSettings(cfg config.Config) job.Settings {
	return job.Settings{
		ProbeTimeout: cfg.ProbeTimeout,
		FetchTimeout: cfg.FetchTimeout,
	}
}

// provideNeo4jClient connects when Neo4j is configured. A failed connection
// is logged and archiving is disabled rather than failing startup.
func provideNeo4jClient(ctx context.Context, cfg config.Config, logger *logging.Logger) *n4j.Client {
	if !cfg.HasNeo4j() {
		logger.Info("Neo4j not configured, job archive disabled")
		return nil
	}

	client, err := n4j.NewClient(ctx, n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
		Database: cfg.Neo4j.Database,
	})
	if err != nil {
		logger.Warn("failed to connect to Neo4j, job archive disabled", "uri", cfg.Neo4j.URI, "err", err)
		return nil
	}

	logger.Info("Neo4j client initialized", "uri", cfg.Neo4j.URI)
	return client
}

// provideArchive returns a nil interface, not a typed nil, when Neo4j is off
func provideArchive(client *n4j.Client) job.Archive {
	if client == nil {
		return nil
	}
	return storage.NewJobArchive(client)
}

func provideSkillStats(client *n4j.Client) job.SkillStats {
	if client == nil {
		return nil
	}
	return storage.NewJobArchive(client)
}

// provideSheetsClient returns nil when no service account is configured
func provideSheetsClient(ctx context.Context, cfg config.Config, logger *logging.Logger) *sheetsclient.Client {
	if !cfg.HasSheets() {
		return nil
	}

	client, err := sheetsclient.NewClient(ctx, sheetsclient.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
	if err != nil {
		logger.Warn("failed to initialize Google Sheets client, export disabled", "err", err)
		return nil
	}
	return client
}

// provideWatcher reloads the aggregator when the config file changes
func provideWatcher(cfg config.Config, store *providerconfig.Store, svc job.Service, logger *logging.Logger) *providerconfig.Watcher {
	return providerconfig.NewWatcher(store, svc.Reinitialize, cfg.ConfigPollInterval, logger)
}

func provideMCPServer(cfg config.Config, svc job.Service, sheets *sheetsclient.Client, stats job.SkillStats, logger *logging.Logger) *sdkmcp.Server {
	return mcp.NewServer(mcp.Resources{
		JobService:    svc,
		Sheets:        sheets,
		SpreadsheetID: cfg.Sheets.SpreadsheetID,
		Skills:        stats,
	}, logger)
}

func provideAdminHandler(store *providerconfig.Store, cat *catalog.Catalog, svc job.Service, logger *logging.Logger) *api.AdminHandler {
	return api.NewAdminHandler(store, cat, svc, logger.Named("admin"))
}

func provideRouter(
	cfg config.Config,
	handler *api.Handler,
	admin *api.AdminHandler,
	m *metrics.Metrics,
	mcpServer *sdkmcp.Server,
	logger *logging.Logger,
) *gin.Engine {
	return api.NewRouter(api.RouterConfig{
		Handler:        handler,
		Admin:          admin,
		AdminSecret:    cfg.AdminJWTSecret,
		Observer:       m,
		MetricsHandler: m.Handler(),
		MCPHandler:     mcp.NewHandler(mcpServer),
		Logger:         logger,
	})
}

func provideServer(cfg config.Config, router *gin.Engine, logger *logging.Logger) *server.Server {
	return server.New(cfg.Addr(), router, logger)
}
