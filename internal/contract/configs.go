package contract

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/huangsam/repograde/schema"
)

// Default values for configuration.
const (
	DefaultCommitLimit = 100
	MaxCommitLimit     = 100 // GitHub caps per_page at 100
	DefaultCacheTTL    = 24 * time.Hour
	DefaultAPIBaseURL  = "https://api.github.com"
	DefaultAddr        = ":8080"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for an analysis.
// This struct is the "final, validated" config.
type Config struct {
	RepoURL     string
	Repo        schema.RepoRef
	CommitLimit int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheTTL       time.Duration

	GitHubToken string // Please use env var or .env as this is plaintext
	APIBaseURL  string
	Addr        string

	UseEmojis bool // Enable emojis in progress headers
	UseColors bool // Enable colored labels in text output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoURLStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	CommitLimit    int    `mapstructure:"commit-limit"`
	Width          int    `mapstructure:"width"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	CacheTTL       string `mapstructure:"cache-ttl"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`
	GitHubToken    string `mapstructure:"github-token"`
	APIBaseURL     string `mapstructure:"api-base-url"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processGitHubSettings(cfg, input); err != nil {
		return err
	}
	return processRepoReference(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates output and display fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	emojis, err := ParseBoolString(defaultString(input.Emoji, "yes"))
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(defaultString(input.Color, "yes"))
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.CommitLimit <= 0 || input.CommitLimit > MaxCommitLimit {
		return fmt.Errorf("commit-limit must be greater than 0 and cannot exceed %d (received %d)", MaxCommitLimit, input.CommitLimit)
	}
	cfg.CommitLimit = input.CommitLimit

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(defaultString(input.Output, string(schema.TextOut))))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, yaml, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	cfg.Addr = defaultString(input.Addr, DefaultAddr)
	return nil
}

// validateBackendConfigs validates the cache backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(defaultString(input.CacheBackend, string(schema.SQLiteBackend))))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	cfg.CacheTTL = DefaultCacheTTL
	if input.CacheTTL != "" {
		ttl, err := ParseDuration(input.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache-ttl: %w", err)
		}
		cfg.CacheTTL = ttl
	}
	return nil
}

// processGitHubSettings validates the API base URL and carries the token over.
func processGitHubSettings(cfg *Config, input *ConfigRawInput) error {
	cfg.GitHubToken = strings.TrimSpace(input.GitHubToken)

	base := strings.TrimRight(defaultString(input.APIBaseURL, DefaultAPIBaseURL), "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api-base-url '%s'. must be an absolute http(s) URL", input.APIBaseURL)
	}
	cfg.APIBaseURL = base
	return nil
}

// processRepoReference resolves the positional repository URL when one was given.
func processRepoReference(cfg *Config, input *ConfigRawInput) error {
	cfg.RepoURL = strings.TrimSpace(input.RepoURLStr)
	if cfg.RepoURL == "" {
		return nil
	}
	ref, err := ParseRepoReference(cfg.RepoURL)
	if err != nil {
		return err
	}
	cfg.Repo = ref
	return nil
}

// defaultString returns fallback when s is blank.
func defaultString(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
