// Package app assembles the server from configuration.
package app

import (
	"context"
	"errors"

	"github.com/honeycarbs/remote-jobs/internal/domain/job"
	"github.com/honeycarbs/remote-jobs/internal/providerconfig"
	"github.com/honeycarbs/remote-jobs/internal/server"
	"github.com/honeycarbs/remote-jobs/pkg/logging"
	n4j "github.com/honeycarbs/remote-jobs/pkg/neo4j"
)

// App owns every long-lived component
type App struct {
	Server  *server.Server
	Jobs    job.Service
	Watcher *providerconfig.Watcher

	neo4j  *n4j.Client
	logger *logging.Logger
}

func newApp(srv *server.Server, jobs job.Service, watcher *providerconfig.Watcher, neo4j *n4j.Client, logger *logging.Logger) *App {
	return &App{
		Server:  srv,
		Jobs:    jobs,
		Watcher: watcher,
		neo4j:   neo4j,
		logger:  logger,
	}
}

// Run starts the config watcher and blocks serving HTTP
func (a *App) Run(ctx context.Context) error {
	if err := a.Watcher.Start(ctx); err != nil {
		return err
	}

	names := make([]string, 0)
	for _, p := range a.Jobs.Providers() {
		names = append(names, p.Name())
	}
	a.logger.Info("job aggregator ready", "providers", names, "addr", a.Server.Addr())

	return a.Server.Run()
}

// Shutdown stops the HTTP server first, then background work and pending
// archive writes, then storage
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.Watcher.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.Jobs.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	if a.neo4j != nil {
		if err := a.neo4j.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
