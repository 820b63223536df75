package catalog_test

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/remote-jobs/internal/catalog"
	"github.com/honeycarbs/remote-jobs/internal/config"
	"github.com/honeycarbs/remote-jobs/internal/domain"
	"github.com/honeycarbs/remote-jobs/internal/domain/job"
	"github.com/honeycarbs/remote-jobs/internal/domain/job/providers/local"
	"github.com/honeycarbs/remote-jobs/internal/providerconfig"
)

type countingProvider struct {
	name      string
	available bool
	calls     atomic.Int32
}

func (p *countingProvider) Name() string                     { return p.name }
func (p *countingProvider) IsAvailable(context.Context) bool { return p.available }

func (p *countingProvider) FetchJobs(context.Context, domain.SearchParams) (domain.JobPage, error) {
	p.calls.Add(1)
	j := domain.Job{
		ID:         domain.CompositeID(p.name, "1"),
		Title:      p.name + " job",
		PostedAt:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Source:     p.name,
		ExternalID: "1",
	}
	return domain.JobPage{Jobs: []domain.Job{j}, TotalCount: 1}, nil
}

func setup(t *testing.T, enabled bool) (*providerconfig.Store, *catalog.Catalog, *countingProvider, *countingProvider) {
	t.Helper()

	adzuna := &countingProvider{name: "adzuna", available: true}
	remoteok := &countingProvider{name: "remoteok", available: true}
	entries := []catalog.Entry{
		{ID: "adzuna", Label: "Adzuna", Provider: adzuna},
		{ID: "remoteok", Label: "RemoteOK", Provider: remoteok},
		{ID: "jsearch", Label: "JSearch"},
	}

	store, err := providerconfig.NewStore(
		filepath.Join(t.TempDir(), "providers.json"),
		catalog.IDs(entries),
		catalog.CredentialChecker(entries),
		nil,
	)
	require.NoError(t, err)

	cat, err := catalog.New(entries, store, enabled, time.Second, nil)
	require.NoError(t, err)

	return store, cat, adzuna, remoteok
}

func TestActiveProvidersSkipsMissingCredentials(t *testing.T) {
	_, cat, _, _ := setup(t, true)

	active, err := cat.ActiveProviders(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "adzuna", active[0].Name())
	assert.Equal(t, "remoteok", active[1].Name())
}

func TestActiveProvidersFeatureFlag(t *testing.T) {
	_, cat, _, _ := setup(t, false)

	active, err := cat.ActiveProviders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestDisabledProviderIsNeverSearched(t *testing.T) {
	store, cat, adzuna, remoteok := setup(t, true)

	fallback, err := local.LoadEmbedded()
	require.NoError(t, err)

	svc, err := job.NewService(job.WithSource(cat), job.WithFallback(fallback))
	require.NoError(t, err)

	_, err = store.Toggle("adzuna", false)
	require.NoError(t, err)
	require.NoError(t, svc.Reinitialize(context.Background()))

	cfg, err := store.Load()
	require.NoError(t, err)
	p, ok := cfg.Find("adzuna")
	require.True(t, ok)
	assert.False(t, p.Enabled)

	for i := 0; i < 3; i++ {
		res, err := svc.Search(context.Background(), domain.SearchParams{})
		require.NoError(t, err)
		assert.Equal(t, []string{"remoteok"}, res.Sources)
	}
	assert.Zero(t, adzuna.calls.Load())
	assert.Equal(t, int32(3), remoteok.calls.Load())
}

func TestStatus(t *testing.T) {
	store, cat, _, remoteok := setup(t, true)
	remoteok.available = false

	_, err := store.Toggle("adzuna", false)
	require.NoError(t, err)

	statuses, err := cat.Status(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 3)

	assert.Equal(t, "adzuna", statuses[0].ID)
	assert.False(t, statuses[0].Enabled)
	assert.True(t, statuses[0].CredentialPresent)
	assert.True(t, statuses[0].Available)

	assert.True(t, statuses[1].Enabled)
	assert.False(t, statuses[1].Available)

	assert.Equal(t, "jsearch", statuses[2].ID)
	assert.False(t, statuses[2].CredentialPresent)
	assert.False(t, statuses[2].Available)
}

func TestEntriesFromConfig(t *testing.T) {
	var cfg config.Config
	cfg.HTTPClientTimeout = time.Second
	cfg.JSearch.APIKey = "rapid"

	entries, err := catalog.Entries(cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"adzuna", "remoteok", "jsearch"}, catalog.IDs(entries))

	assert.Nil(t, entries[0].Provider)
	assert.NotNil(t, entries[1].Provider)
	assert.NotNil(t, entries[2].Provider)

	creds := catalog.CredentialChecker(entries)
	assert.False(t, creds("adzuna"))
	assert.True(t, creds("remoteok"))
	assert.True(t, creds("jsearch"))
}
