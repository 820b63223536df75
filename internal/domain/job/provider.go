package job

import (
	"context"

	"github.com/honeycarbs/remote-jobs/internal/domain"
)

// Provider represents an external job data source (Adzuna, RemoteOK, JSearch, the
// local store). Implementations normalize their vendor payloads into domain.Job and
// never let raw provider JSON escape.
type Provider interface {
	// e.g. "adzuna" or "remoteok"; used as Job.Source and in composite IDs
	Name() string

	// IsAvailable is a cheap credential or liveness check; false on any error
	IsAvailable(ctx context.Context) bool

	// FetchJobs returns one page of normalized jobs for params
	FetchJobs(ctx context.Context, params domain.SearchParams) (domain.JobPage, error)
}

// DetailProvider is implemented by providers that can look up a single posting.
// A missing posting is reported as (nil, nil).
type DetailProvider interface {
	Provider
	GetJobDetails(ctx context.Context, externalID string) (*domain.Job, error)
}

// ProviderSource yields the currently active providers in registration order
type ProviderSource interface {
	ActiveProviders(ctx context.Context) ([]Provider, error)
}
