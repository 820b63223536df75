package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/remote-jobs/internal/config"
	"github.com/honeycarbs/remote-jobs/internal/domain"
	"github.com/honeycarbs/remote-jobs/pkg/logging"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	var cfg config.Config
	cfg.Host = "127.0.0.1"
	cfg.Port = "0"
	cfg.ProviderConfigPath = filepath.Join(t.TempDir(), "providers.json")
	cfg.ConfigPollInterval = time.Hour
	cfg.ProbeTimeout = time.Second
	cfg.FetchTimeout = time.Second
	cfg.HTTPClientTimeout = time.Second
	return cfg
}

func TestInitializeAppFallbackOnly(t *testing.T) {
	cfg := testConfig(t)
	cfg.ProvidersEnabled = false

	a, err := InitializeApp(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	assert.Empty(t, a.Jobs.Providers())
	assert.Nil(t, a.neo4j)

	res, err := a.Jobs.Search(context.Background(), domain.SearchParams{Limit: 3})
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Len(t, res.Jobs, 3)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, a.Shutdown(ctx))
}

func TestInitializeAppBuildsKeylessProviders(t *testing.T) {
	cfg := testConfig(t)
	cfg.ProvidersEnabled = true

	a, err := InitializeApp(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	names := make([]string, 0)
	for _, p := range a.Jobs.Providers() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"remoteok"}, names)
}
