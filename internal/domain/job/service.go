package job

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/honeycarbs/remote-jobs/internal/domain"
	"github.com/honeycarbs/remote-jobs/pkg/logging"
)

// ErrAllProvidersFailed is returned only when the fallback store itself fails
var ErrAllProvidersFailed = errors.New("all job providers failed")

const (
	DefaultProbeTimeout = 3 * time.Second
	DefaultFetchTimeout = 8 * time.Second
	DefaultFetchWindow  = domain.MaxLimit

	archiveTimeout = 5 * time.Second
)

var numericID = regexp.MustCompile(`^[0-9]+$`)

// Service aggregates the active providers behind a single search surface
type Service interface {
	Search(ctx context.Context, params domain.SearchParams) (domain.SearchResult, error)

	// GetJobDetails resolves a local numeric ID or a "{provider}:{externalId}"
	// composite ID. (nil, nil) means the job could not be found.
	GetJobDetails(ctx context.Context, id string) (*domain.Job, error)

	// Reinitialize rebuilds the provider list from the configured source.
	// In-flight searches keep the list they started with.
	Reinitialize(ctx context.Context) error

	// Providers returns the current provider snapshot in registration order
	Providers() []Provider

	// Close flushes pending archive writes, waiting until ctx ends
	Close(ctx context.Context) error
}

// Settings bounds each provider call and the size of the merge window
type Settings struct {
	ProbeTimeout time.Duration
	FetchTimeout time.Duration
	FetchWindow  int
}

// DefaultSettings returns the timeouts used when none are configured
func DefaultSettings() Settings {
	return Settings{
		ProbeTimeout: DefaultProbeTimeout,
		FetchTimeout: DefaultFetchTimeout,
		FetchWindow:  DefaultFetchWindow,
	}
}

// Option configures Service
type Option func(*config)

type config struct {
	providers []Provider
	source    ProviderSource
	fallback  DetailProvider
	archive   Archive
	recorder  Recorder
	logger    *logging.Logger
	settings  Settings
	clock     func() time.Time
}

// WithProviders sets a fixed provider list. Ignored when WithSource is also given.
func WithProviders(providers ...Provider) Option {
	return func(c *config) {
		c.providers = providers
	}
}

// WithSource sets where Reinitialize loads providers from
func WithSource(source ProviderSource) Option {
	return func(c *config) {
		c.source = source
	}
}

// WithFallback sets the always-available store used when no provider answers
func WithFallback(fallback DetailProvider) Option {
	return func(c *config) {
		c.fallback = fallback
	}
}

// WithArchive sets where surfaced provider jobs are recorded
func WithArchive(archive Archive) Option {
	return func(c *config) {
		c.archive = archive
	}
}

// WithRecorder sets the telemetry sink
func WithRecorder(recorder Recorder) Option {
	return func(c *config) {
		c.recorder = recorder
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithSettings overrides timeouts and fetch window; zero fields keep defaults
func WithSettings(settings Settings) Option {
	return func(c *config) {
		if settings.ProbeTimeout > 0 {
			c.settings.ProbeTimeout = settings.ProbeTimeout
		}
		if settings.FetchTimeout > 0 {
			c.settings.FetchTimeout = settings.FetchTimeout
		}
		if settings.FetchWindow > 0 {
			c.settings.FetchWindow = settings.FetchWindow
		}
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		settings: DefaultSettings(),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.fallback == nil {
		return nil, fmt.Errorf("job.Service: fallback provider is required")
	}
	if cfg.recorder == nil {
		cfg.recorder = nopRecorder{}
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}

	s := &service{
		source:   cfg.source,
		fallback: cfg.fallback,
		recorder: cfg.recorder,
		logger:   cfg.logger.Named("aggregator"),
		settings: cfg.settings,
		clock:    cfg.clock,
	}
	if cfg.archive != nil {
		s.archiver = newArchiver(cfg.archive, archiveTimeout, s.logger)
	}

	if cfg.source == nil {
		s.swap(cfg.providers)
		return s, nil
	}
	if err := s.Reinitialize(context.Background()); err != nil {
		return nil, fmt.Errorf("job.Service: %w", err)
	}
	return s, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(
	source ProviderSource,
	fallback DetailProvider,
	archive Archive,
	recorder Recorder,
	logger *logging.Logger,
	settings Settings,
) (Service, error) {
	return NewService(
		WithSource(source),
		WithFallback(fallback),
		WithArchive(archive),
		WithRecorder(recorder),
		WithLogger(logger),
		WithSettings(settings),
	)
}

type service struct {
	active atomic.Pointer[[]Provider]

	source   ProviderSource
	fallback DetailProvider
	archiver *archiver
	recorder Recorder
	logger   *logging.Logger
	settings Settings
	clock    func() time.Time
}

func (s *service) Providers() []Provider {
	snapshot := s.snapshot()
	out := make([]Provider, len(snapshot))
	copy(out, snapshot)
	return out
}

func (s *service) snapshot() []Provider {
	p := s.active.Load()
	if p == nil {
		return nil
	}
	return *p
}

func (s *service) swap(providers []Provider) {
	next := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			next = append(next, p)
		}
	}
	s.active.Store(&next)
}

func (s *service) Reinitialize(ctx context.Context) error {
	if s.source == nil {
		return nil
	}

	providers, err := s.source.ActiveProviders(ctx)
	if err != nil {
		s.logger.Warn("failed to load providers, keeping previous set", "err", err)
		return fmt.Errorf("load providers: %w", err)
	}

	s.swap(providers)
	s.logger.Info("providers reinitialized", "providers", names(providers))
	return nil
}

// Search probes every provider, fans out to the available ones and merges
// whatever comes back. The fallback store answers when nothing else can.
func (s *service) Search(ctx context.Context, params domain.SearchParams) (domain.SearchResult, error) {
	start := s.clock()
	params = params.Normalize()

	available := s.probeAll(ctx, s.snapshot())
	if len(available) == 0 {
		return s.searchFallback(ctx, params, FallbackNoProviders, start)
	}

	window := params
	window.Page = 1
	window.Limit = min(params.Page*params.Limit, s.settings.FetchWindow)

	pages := s.fetchAll(ctx, available, window)

	var (
		merged  []domain.Job
		total   int
		sources = make([]string, 0, len(available))
	)
	for i, page := range pages {
		if page == nil {
			continue
		}
		merged = append(merged, sanitize(page.Jobs)...)
		total += page.TotalCount
		sources = append(sources, available[i].Name())
	}

	if len(sources) == 0 {
		return s.searchFallback(ctx, params, FallbackAllFailed, start)
	}

	if total < len(merged) {
		total = len(merged)
	}
	domain.SortJobs(merged, params.Sort)
	result := domain.SearchResult{
		JobPage: domain.Paginate(merged, total, params),
		Sources: sources,
	}

	s.archiveJobs(result.Jobs)
	s.recorder.ObserveSearch(s.clock().Sub(start), len(result.Jobs))

	return result, nil
}

func (s *service) probeAll(ctx context.Context, providers []Provider) []Provider {
	up := make([]bool, len(providers))

	var wg sync.WaitGroup
	for i, p := range providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			ok, err := guard(ctx, s.settings.ProbeTimeout, func(ctx context.Context) (bool, error) {
				return p.IsAvailable(ctx), nil
			})
			if err != nil || !ok {
				s.logger.Debug("provider unavailable", "provider", p.Name(), "err", err)
				s.recorder.ObserveFetch(p.Name(), OutcomeUnavailable, 0)
				return
			}
			up[i] = true
		}(i, p)
	}
	wg.Wait()

	available := make([]Provider, 0, len(providers))
	for i, p := range providers {
		if up[i] {
			available = append(available, p)
		}
	}
	return available
}

// fetchAll returns one entry per provider, nil where the provider failed
func (s *service) fetchAll(ctx context.Context, providers []Provider, params domain.SearchParams) []*domain.JobPage {
	pages := make([]*domain.JobPage, len(providers))

	var wg sync.WaitGroup
	for i, p := range providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()

			started := s.clock()
			page, err := guard(ctx, s.settings.FetchTimeout, func(ctx context.Context) (domain.JobPage, error) {
				return p.FetchJobs(ctx, params)
			})
			elapsed := s.clock().Sub(started)

			outcome := outcomeOf(err)
			s.recorder.ObserveFetch(p.Name(), outcome, elapsed)
			if err != nil {
				s.logger.Warn("provider fetch failed, skipping",
					"provider", p.Name(),
					"outcome", outcome,
					"elapsed", elapsed,
					"err", err,
				)
				return
			}
			pages[i] = &page
		}(i, p)
	}
	wg.Wait()

	return pages
}

func (s *service) searchFallback(
	ctx context.Context,
	params domain.SearchParams,
	reason string,
	start time.Time,
) (domain.SearchResult, error) {
	s.recorder.ObserveFallback(reason)
	s.logger.Info("serving search from fallback store", "reason", reason)

	page, err := guard(ctx, s.settings.FetchTimeout, func(ctx context.Context) (domain.JobPage, error) {
		return s.fallback.FetchJobs(ctx, params)
	})
	if err != nil {
		s.logger.Error("fallback store failed", "reason", reason, "err", err)
		return domain.SearchResult{}, fmt.Errorf("%w: fallback: %v", ErrAllProvidersFailed, err)
	}
	page.Jobs = sanitize(page.Jobs)

	s.recorder.ObserveSearch(s.clock().Sub(start), len(page.Jobs))

	return domain.SearchResult{
		JobPage:  page,
		Sources:  []string{s.fallback.Name()},
		Fallback: true,
	}, nil
}

func (s *service) GetJobDetails(ctx context.Context, id string) (*domain.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}

	if numericID.MatchString(id) {
		j, err := guard(ctx, s.settings.FetchTimeout, func(ctx context.Context) (*domain.Job, error) {
			return s.fallback.GetJobDetails(ctx, id)
		})
		if err != nil {
			return nil, fmt.Errorf("fallback job %s: %w", id, err)
		}
		return sanitizeOne(j), nil
	}

	name, externalID, ok := strings.Cut(id, ":")
	if !ok || name == "" || externalID == "" {
		return nil, nil
	}

	p := s.lookup(name)
	if p == nil {
		s.logger.Debug("job details requested for inactive provider", "provider", name)
		return nil, nil
	}
	dp, ok := p.(DetailProvider)
	if !ok {
		return nil, nil
	}

	up, err := guard(ctx, s.settings.ProbeTimeout, func(ctx context.Context) (bool, error) {
		return dp.IsAvailable(ctx), nil
	})
	if err != nil || !up {
		return nil, nil
	}

	j, err := guard(ctx, s.settings.FetchTimeout, func(ctx context.Context) (*domain.Job, error) {
		return dp.GetJobDetails(ctx, externalID)
	})
	if err != nil {
		s.logger.Warn("provider job details failed", "provider", name, "id", externalID, "err", err)
		return nil, nil
	}
	return sanitizeOne(j), nil
}

func (s *service) lookup(name string) Provider {
	for _, p := range s.snapshot() {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// archiveJobs hands external jobs to the background archiver; it never blocks
// the search and failures are only logged
func (s *service) archiveJobs(jobs []domain.Job) {
	if s.archiver == nil {
		return
	}
	external := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.ExternalID != "" && j.Source != s.fallback.Name() {
			external = append(external, j)
		}
	}
	if len(external) == 0 {
		return
	}
	s.archiver.enqueue(external)
}

func (s *service) Close(ctx context.Context) error {
	if s.archiver == nil {
		return nil
	}
	return s.archiver.close(ctx)
}

func names(providers []Provider) []string {
	out := make([]string, 0, len(providers))
	for _, p := range providers {
		out = append(out, p.Name())
	}
	return out
}
