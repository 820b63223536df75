package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains runtime settings for the job aggregation server
type Config struct {
	LogLevel  string
	LogFormat string // json or console
	Host      string // default 0.0.0.0
	Port      string // default PORT env or 8080

	// ProvidersEnabled is the global feature flag; false serves the local store only
	ProvidersEnabled   bool
	ProviderConfigPath string
	ConfigPollInterval time.Duration
	ProbeTimeout       time.Duration
	FetchTimeout       time.Duration
	HTTPClientTimeout  time.Duration

	Adzuna struct {
		AppID   string
		AppKey  string
		Country string
		BaseURL string
	}
	JSearch struct {
		APIKey  string
		Host    string
		BaseURL string
	}
	RemoteOK struct {
		BaseURL string
	}

	// Neo4j is optional; when URI is empty surfaced jobs are not archived
	Neo4j struct {
		URI      string
		Username string
		Password string
		Database string
	}

	Sheets struct {
		CredentialsPath string
		SpreadsheetID   string
	}

	AdminJWTSecret string
}

// Load populates config from a .env file (if present) and environment variables
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv populates config from environment variables only
func FromEnv() (Config, error) {
	cfg := Config{
		LogLevel:           "info",
		LogFormat:          "json",
		Host:               "0.0.0.0",
		Port:               "8080",
		ProvidersEnabled:   true,
		ProviderConfigPath: "data/providers.json",
		ConfigPollInterval: 10 * time.Second,
		ProbeTimeout:       3 * time.Second,
		FetchTimeout:       8 * time.Second,
		HTTPClientTimeout:  15 * time.Second,
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv("HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("PROVIDER_CONFIG_PATH"); v != "" {
		cfg.ProviderConfigPath = v
	}

	var invalid []string

	if v := os.Getenv("JOB_PROVIDERS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			invalid = append(invalid, "JOB_PROVIDERS_ENABLED")
		} else {
			cfg.ProvidersEnabled = b
		}
	}

	durations := []struct {
		env string
		dst *time.Duration
	}{
		{"PROVIDER_CONFIG_POLL_INTERVAL", &cfg.ConfigPollInterval},
		{"PROVIDER_PROBE_TIMEOUT", &cfg.ProbeTimeout},
		{"PROVIDER_FETCH_TIMEOUT", &cfg.FetchTimeout},
		{"HTTP_CLIENT_TIMEOUT", &cfg.HTTPClientTimeout},
	}
	for _, d := range durations {
		v := os.Getenv(d.env)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed <= 0 {
			invalid = append(invalid, d.env)
			continue
		}
		*d.dst = parsed
	}

	cfg.Adzuna.AppID = os.Getenv("ADZUNA_APP_ID")
	cfg.Adzuna.AppKey = os.Getenv("ADZUNA_APP_KEY")
	cfg.Adzuna.BaseURL = os.Getenv("ADZUNA_BASE_URL")
	if v := os.Getenv("ADZUNA_COUNTRY"); v != "" {
		cfg.Adzuna.Country = v
	} else {
		cfg.Adzuna.Country = "us"
	}

	cfg.JSearch.APIKey = os.Getenv("JSEARCH_API_KEY")
	cfg.JSearch.Host = os.Getenv("JSEARCH_HOST")
	cfg.JSearch.BaseURL = os.Getenv("JSEARCH_BASE_URL")

	cfg.RemoteOK.BaseURL = os.Getenv("REMOTEOK_BASE_URL")

	cfg.Neo4j.URI = os.Getenv("NEO4J_URI")
	cfg.Neo4j.Username = os.Getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")
	cfg.Neo4j.Database = os.Getenv("NEO4J_DATABASE")

	cfg.Sheets.CredentialsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS")
	cfg.Sheets.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")

	cfg.AdminJWTSecret = os.Getenv("ADMIN_JWT_SECRET")

	if len(invalid) > 0 {
		return cfg, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	if cfg.Neo4j.URI != "" {
		var missingVars []string
		if cfg.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if cfg.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
		if len(missingVars) > 0 {
			return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
		}
	}

	return cfg, nil
}

// Addr is the listen address
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// HasAdzuna reports whether Adzuna credentials are configured
func (c Config) HasAdzuna() bool {
	return c.Adzuna.AppID != "" && c.Adzuna.AppKey != ""
}

// HasJSearch reports whether a JSearch key is configured
func (c Config) HasJSearch() bool {
	return c.JSearch.APIKey != ""
}

// HasNeo4j reports whether the job archive is configured
func (c Config) HasNeo4j() bool {
	return c.Neo4j.URI != ""
}

// HasSheets reports whether spreadsheet export is configured
func (c Config) HasSheets() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}
