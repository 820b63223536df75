// Package providerconfig persists which job providers are enabled.
//
// The file on disk only records the enabled flag per provider. Whether a
// provider has credentials is derived from the environment at load time and is
// never written back.
package providerconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/honeycarbs/remote-jobs/pkg/logging"
)

// ErrUnknownProvider is returned when toggling an id that is not a known provider
var ErrUnknownProvider = errors.New("unknown provider")

// ProviderConfig is the effective state of one provider
type ProviderConfig struct {
	ID                string `json:"id"`
	Enabled           bool   `json:"enabled"`
	CredentialPresent bool   `json:"credentialPresent"`
}

// Config lists every known provider in registration order
type Config struct {
	Providers []ProviderConfig `json:"providers"`
}

// Find returns the entry for id
func (c Config) Find(id string) (ProviderConfig, bool) {
	for _, p := range c.Providers {
		if p.ID == id {
			return p, true
		}
	}
	return ProviderConfig{}, false
}

// Active reports whether id is enabled and has credentials
func (c Config) Active(id string) bool {
	p, ok := c.Find(id)
	return ok && p.Enabled && p.CredentialPresent
}

// Update is one requested enabled-flag change
type Update struct {
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
}

// CredentialChecker reports whether the credentials a provider needs are configured
type CredentialChecker func(id string) bool

type fileFormat struct {
	Providers []Update `json:"providers"`
}

// Store reads and writes the provider config file. Writes are serialized and
// atomic (temp file, fsync, rename) so readers never observe a partial file.
type Store struct {
	path   string
	known  []string
	creds  CredentialChecker
	logger *logging.Logger

	mu sync.Mutex
}

// NewStore builds a Store for the known provider ids, in registration order
func NewStore(path string, known []string, creds CredentialChecker, logger *logging.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("providerconfig: path is required")
	}
	if creds == nil {
		creds = func(string) bool { return true }
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	ids := make([]string, len(known))
	copy(ids, known)

	return &Store{
		path:   path,
		known:  ids,
		creds:  creds,
		logger: logger.Named("providerconfig"),
	}, nil
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load returns the effective config. Every known provider is present and
// defaults to enabled; a missing or corrupt file yields the defaults.
func (s *Store) Load() (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(), nil
}

func (s *Store) load() Config {
	enabled := s.readFile()

	cfg := Config{Providers: make([]ProviderConfig, 0, len(s.known))}
	for _, id := range s.known {
		on, ok := enabled[id]
		if !ok {
			on = true
		}
		cfg.Providers = append(cfg.Providers, ProviderConfig{
			ID:                id,
			Enabled:           on,
			CredentialPresent: s.creds(id),
		})
	}
	return cfg
}

func (s *Store) readFile() map[string]bool {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to read provider config, using defaults", "path", s.path, "err", err)
		}
		return nil
	}

	var f fileFormat
	if err := json.Unmarshal(raw, &f); err != nil {
		s.logger.Warn("provider config is corrupt, using defaults", "path", s.path, "err", err)
		return nil
	}

	out := make(map[string]bool, len(f.Providers))
	for _, p := range f.Providers {
		out[p.ID] = p.Enabled
	}
	return out
}

// Save persists the enabled flags of cfg. Unknown ids are dropped.
func (s *Store) Save(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(cfg)
}

func (s *Store) save(cfg Config) error {
	f := fileFormat{Providers: make([]Update, 0, len(s.known))}
	for _, id := range s.known {
		on := true
		if p, ok := cfg.Find(id); ok {
			on = p.Enabled
		}
		f.Providers = append(f.Providers, Update{ID: id, Enabled: on})
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("providerconfig: encode: %w", err)
	}

	return writeAtomic(s.path, append(data, '\n'))
}

// Toggle flips a single provider and returns the new effective config
func (s *Store) Toggle(id string, enabled bool) (Config, error) {
	return s.Apply([]Update{{ID: id, Enabled: enabled}})
}

// Apply validates every update, then persists them together
func (s *Store) Apply(updates []Update) (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range updates {
		if !s.isKnown(u.ID) {
			return Config{}, fmt.Errorf("%w: %q", ErrUnknownProvider, u.ID)
		}
	}

	cfg := s.load()
	for _, u := range updates {
		for i := range cfg.Providers {
			if cfg.Providers[i].ID == u.ID {
				cfg.Providers[i].Enabled = u.Enabled
			}
		}
	}

	if err := s.save(cfg); err != nil {
		return Config{}, err
	}

	s.logger.Info("provider config updated", "updates", updates)
	return cfg, nil
}

// ModTime returns the file's modification time; zero when the file is absent
func (s *Store) ModTime() (time.Time, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("providerconfig: stat: %w", err)
	}
	return info.ModTime(), nil
}

func (s *Store) isKnown(id string) bool {
	for _, k := range s.known {
		if k == id {
			return true
		}
	}
	return false
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("providerconfig: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("providerconfig: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("providerconfig: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("providerconfig: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("providerconfig: close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("providerconfig: chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("providerconfig: replace %s: %w", path, err)
	}
	return nil
}
