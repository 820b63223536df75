//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/remote-jobs/internal/api"
	"github.com/honeycarbs/remote-jobs/internal/catalog"
	"github.com/honeycarbs/remote-jobs/internal/config"
	"github.com/honeycarbs/remote-jobs/internal/domain/job"
	"github.com/honeycarbs/remote-jobs/internal/domain/job/providers/local"
	"github.com/honeycarbs/remote-jobs/internal/metrics"
	"github.com/honeycarbs/remote-jobs/pkg/logging"
)

// InitializeApp creates App with all resources wired up
func InitializeApp(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	wire.Build(
		// Provider catalog and config
		catalog.Entries,
		provideConfigStore,
		provideCatalog,
		wire.Bind(new(job.ProviderSource), new(*catalog.Catalog)),

		// Fallback store
		local.LoadEmbedded,
		wire.Bind(new(job.DetailProvider), new(*local.Store)),

		// Infrastructure
		metrics.New,
		wire.Bind(new(job.Recorder), new(*metrics.Metrics)),
		provideNeo4jClient,
		provideArchive,
		provideSkillStats,
		provideSheetsClient,

		// Services
		provideSettings,
		job.NewServiceWithDeps,
		provideWatcher,

		// Transport
		provideMCPServer,
		api.NewHandler,
		provideAdminHandler,
		provideRouter,
		provideServer,

		newApp,
	)

	return &App{}, nil
}
