// Package catalog knows every job provider the server can talk to and decides
// which of them are active for the aggregator.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/honeycarbs/remote-jobs/internal/config"
	"github.com/honeycarbs/remote-jobs/internal/domain/job"
	adzunaprovider "github.com/honeycarbs/remote-jobs/internal/domain/job/providers/adzuna"
	jsearchprovider "github.com/honeycarbs/remote-jobs/internal/domain/job/providers/jsearch"
	remoteokprovider "github.com/honeycarbs/remote-jobs/internal/domain/job/providers/remoteok"
	"github.com/honeycarbs/remote-jobs/internal/providerconfig"
	"github.com/honeycarbs/remote-jobs/pkg/adzuna"
	"github.com/honeycarbs/remote-jobs/pkg/jsearch"
	"github.com/honeycarbs/remote-jobs/pkg/logging"
	"github.com/honeycarbs/remote-jobs/pkg/remoteok"
)

// Entry is one known provider. Provider is nil when its credentials are missing.
type Entry struct {
	ID       string
	Label    string
	Provider job.Provider
}

// ConfigLoader is the read side of providerconfig.Store
type ConfigLoader interface {
	Load() (providerconfig.Config, error)
}

// Status is the admin view of one provider
type Status struct {
	ID                string `json:"id"`
	Label             string `json:"label"`
	Enabled           bool   `json:"enabled"`
	CredentialPresent bool   `json:"credentialPresent"`
	Available         bool   `json:"available"`
	LatencyMs         int64  `json:"latencyMs"`
}

// Catalog implements job.ProviderSource
type Catalog struct {
	entries      []Entry
	loader       ConfigLoader
	enabled      bool
	probeTimeout time.Duration
	logger       *logging.Logger
}

// Entries builds the known providers in registration order from cfg. Each
// provider gets its own HTTP client.
func Entries(cfg config.Config) ([]Entry, error) {
	entries := []Entry{
		{ID: adzunaprovider.Name, Label: "Adzuna"},
		{ID: remoteokprovider.Name, Label: "RemoteOK"},
		{ID: jsearchprovider.Name, Label: "JSearch"},
	}

	if cfg.HasAdzuna() {
		client, err := adzuna.NewClient(adzuna.Config{
			AppID:      cfg.Adzuna.AppID,
			AppKey:     cfg.Adzuna.AppKey,
			Country:    cfg.Adzuna.Country,
			BaseURL:    cfg.Adzuna.BaseURL,
			HTTPClient: &http.Client{Timeout: cfg.HTTPClientTimeout},
		})
		if err != nil {
			return nil, err
		}
		p, err := adzunaprovider.NewProvider(client)
		if err != nil {
			return nil, err
		}
		entries[0].Provider = p
	}

	rok, err := remoteokprovider.NewProvider(remoteok.NewClient(remoteok.Config{
		BaseURL:    cfg.RemoteOK.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.HTTPClientTimeout},
	}))
	if err != nil {
		return nil, err
	}
	entries[1].Provider = rok

	if cfg.HasJSearch() {
		client, err := jsearch.NewClient(jsearch.Config{
			APIKey:     cfg.JSearch.APIKey,
			Host:       cfg.JSearch.Host,
			BaseURL:    cfg.JSearch.BaseURL,
			HTTPClient: &http.Client{Timeout: cfg.HTTPClientTimeout},
		})
		if err != nil {
			return nil, err
		}
		p, err := jsearchprovider.NewProvider(client)
		if err != nil {
			return nil, err
		}
		entries[2].Provider = p
	}

	return entries, nil
}

// IDs returns the provider ids of entries in order
func IDs(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

// CredentialChecker reports a provider's credentials as present when it could be built
func CredentialChecker(entries []Entry) providerconfig.CredentialChecker {
	built := make(map[string]bool, len(entries))
	for _, e := range entries {
		built[e.ID] = e.Provider != nil
	}
	return func(id string) bool { return built[id] }
}

// New builds a Catalog. When providersEnabled is false no provider is ever
// active and every search is served by the fallback store.
func New(entries []Entry, loader ConfigLoader, providersEnabled bool, probeTimeout time.Duration, logger *logging.Logger) (*Catalog, error) {
	if loader == nil {
		return nil, fmt.Errorf("catalog: config loader is required")
	}
	if probeTimeout <= 0 {
		probeTimeout = job.DefaultProbeTimeout
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Catalog{
		entries:      entries,
		loader:       loader,
		enabled:      providersEnabled,
		probeTimeout: probeTimeout,
		logger:       logger.Named("catalog"),
	}, nil
}

// ProvidersEnabled reports the JOB_PROVIDERS_ENABLED switch
func (c *Catalog) ProvidersEnabled() bool {
	return c.enabled
}

// ActiveProviders returns the enabled providers with credentials, in registration order
func (c *Catalog) ActiveProviders(context.Context) ([]job.Provider, error) {
	if !c.enabled {
		return nil, nil
	}

	cfg, err := c.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("catalog: load provider config: %w", err)
	}

	active := make([]job.Provider, 0, len(c.entries))
	for _, e := range c.entries {
		if e.Provider == nil {
			continue
		}
		if p, ok := cfg.Find(e.ID); ok && !p.Enabled {
			continue
		}
		active = append(active, e.Provider)
	}
	return active, nil
}

// Status probes every known provider concurrently
func (c *Catalog) Status(ctx context.Context) ([]Status, error) {
	cfg, err := c.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("catalog: load provider config: %w", err)
	}

	out := make([]Status, len(c.entries))
	var wg sync.WaitGroup
	for i, e := range c.entries {
		pc, _ := cfg.Find(e.ID)
		out[i] = Status{
			ID:                e.ID,
			Label:             e.Label,
			Enabled:           pc.Enabled && c.enabled,
			CredentialPresent: e.Provider != nil,
		}
		if e.Provider == nil {
			continue
		}

		wg.Add(1)
		go func(i int, p job.Provider) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error("provider probe panicked", "provider", p.Name(), "panic", r)
					out[i].Available = false
				}
			}()

			probeCtx, cancel := context.WithTimeout(ctx, c.probeTimeout)
			defer cancel()

			start := time.Now()
			out[i].Available = p.IsAvailable(probeCtx)
			out[i].LatencyMs = time.Since(start).Milliseconds()
		}(i, e.Provider)
	}
	wg.Wait()

	return out, nil
}

var _ job.ProviderSource = (*Catalog)(nil)
