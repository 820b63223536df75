package providerconfig

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/honeycarbs/remote-jobs/pkg/logging"
)

const DefaultPollInterval = 10 * time.Second

// ReloadFunc is called after the config file changed on disk
type ReloadFunc func(ctx context.Context) error

// Watcher polls the config file and triggers a reload when its modification
// time moves, so edits made outside the admin API apply without a restart.
type Watcher struct {
	store    *Store
	reload   ReloadFunc
	interval time.Duration
	cron     *cron.Cron
	logger   *logging.Logger

	mu   sync.Mutex
	seen time.Time
}

// NewWatcher builds a Watcher; interval <= 0 uses DefaultPollInterval
func NewWatcher(store *Store, reload ReloadFunc, interval time.Duration, logger *logging.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Watcher{
		store:    store,
		reload:   reload,
		interval: interval,
		cron:     cron.New(),
		logger:   logger.Named("providerconfig.watcher"),
	}
}

// Start records the current modification time and begins polling
func (w *Watcher) Start(ctx context.Context) error {
	mt, err := w.store.ModTime()
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.seen = mt
	w.mu.Unlock()

	spec := fmt.Sprintf("@every %s", w.interval)
	if _, err := w.cron.AddFunc(spec, func() { w.Check(ctx) }); err != nil {
		return fmt.Errorf("providerconfig: schedule watcher: %w", err)
	}
	w.cron.Start()

	w.logger.Info("watching provider config", "path", w.store.Path(), "interval", w.interval)
	return nil
}

// Stop halts polling and waits for a running check to finish
func (w *Watcher) Stop(ctx context.Context) error {
	done := w.cron.Stop().Done()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Check runs one poll. It reports whether a reload was triggered.
func (w *Watcher) Check(ctx context.Context) bool {
	mt, err := w.store.ModTime()
	if err != nil {
		w.logger.Warn("failed to stat provider config", "err", err)
		return false
	}

	w.mu.Lock()
	changed := !mt.Equal(w.seen)
	w.seen = mt
	w.mu.Unlock()

	if !changed {
		return false
	}

	w.logger.Info("provider config changed on disk, reloading", "mtime", mt)
	if err := w.reload(ctx); err != nil {
		w.logger.Warn("provider reload failed", "err", err)
	}
	return true
}
