// Package config loads ionctl settings from ~/.ionctl/config.yaml, .env files
// and ION_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/ionenergy/ionctl/internal/cache"
	"github.com/ionenergy/ionctl/internal/logging"
)

// Defaults.
const (
	DefaultBaseURL      = "http://localhost:1880/api"
	DefaultTimeout      = 30 * time.Second
	DefaultLocale       = "ar"
	DefaultOutputFormat = "table"
	DefaultCacheTTL     = 300
	DefaultLogLevel     = "info"
	DefaultLogFormat    = logging.FormatConsole

	configFileName   = "config.yaml"
	configDirName    = ".ionctl"
	envPrefix        = "ION_"
	outputFormatJSON = "json"
	localeArabic     = "ar"
	localeEnglish    = "en"
)

// Config errors.
var (
	ErrUnknownKey    = errors.New("unknown configuration key")
	ErrInvalidValue  = errors.New("invalid configuration value")
	ErrConfigMissing = errors.New("configuration file not found")
)

// Config is the complete ionctl configuration.
type Config struct {
	API     APIConfig     `yaml:"api"     envPrefix:"API_"`
	Locale  string        `yaml:"locale"  env:"LOCALE"`
	Cache   CacheConfig   `yaml:"cache"   envPrefix:"CACHE_"`
	Logging LoggingConfig `yaml:"logging" envPrefix:"LOG_"`
	Output  OutputConfig  `yaml:"output"  envPrefix:"OUTPUT_"`

	configPath string
	warnings   []error
}

// APIConfig points ionctl at the backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"BASE_URL"`
	Timeout time.Duration `yaml:"timeout"  env:"TIMEOUT"`
}

// CacheConfig controls the in-memory option cache.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"     env:"ENABLED"`
	TTLSeconds int  `yaml:"ttl_seconds" env:"TTL_SECONDS"`
}

// LoggingConfig controls diagnostic and audit logging.
type LoggingConfig struct {
	Level  string      `yaml:"level"  env:"LEVEL"`
	Format string      `yaml:"format" env:"FORMAT"`
	File   string      `yaml:"file"   env:"FILE"`
	Audit  AuditConfig `yaml:"audit"  envPrefix:"AUDIT_"`
}

// AuditConfig controls the save audit trail.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	File    string `yaml:"file"    env:"FILE"`
}

// OutputConfig controls command output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" env:"FORMAT"`
}

// ToLoggingConfig converts the logging section for logging.NewLoggerWithPath.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		File:   lc.File,
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Locale: DefaultLocale,
		Cache: CacheConfig{
			Enabled:    false,
			TTLSeconds: DefaultCacheTTL,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Output: OutputConfig{DefaultFormat: DefaultOutputFormat},
	}
}

// New builds the effective configuration: defaults, then the config file,
// then .env files and ION_* variables. Problems with the file or the
// environment are skipped and reported by Warnings.
func New() *Config {
	cfg := Default()
	if _, err := LoadDotEnv([]string{".env.local", ".env"}); err != nil {
		cfg.warnings = append(cfg.warnings, fmt.Errorf("loading .env files: %w", err))
	}

	path, err := DefaultConfigPath()
	if err == nil {
		cfg.configPath = path
		if loadErr := cfg.LoadFile(path); loadErr != nil && !errors.Is(loadErr, ErrConfigMissing) {
			cfg.warnings = append(cfg.warnings, loadErr)
		}
	}
	if envErr := cfg.ApplyEnv(); envErr != nil {
		cfg.warnings = append(cfg.warnings, envErr)
	}
	return cfg
}

// Warnings returns the problems New skipped while loading.
func (c *Config) Warnings() []error {
	return c.warnings
}

// Load reads path onto the defaults and applies the environment, failing on
// any error.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.configPath = path
	if err := cfg.LoadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// LoadFile decodes the YAML file at path onto c. Keys absent from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigMissing, path)
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays ION_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

// Path returns the file this configuration was loaded from or will be saved to.
func (c *Config) Path() string {
	return c.configPath
}

// SetPath changes the file used by Save.
func (c *Config) SetPath(path string) {
	c.configPath = path
}

// Save writes the configuration to its path, creating the directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		path, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		c.configPath = path
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks the values that commands depend on.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q must be an absolute http(s) URL", ErrInvalidValue, c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout must be >= 0", ErrInvalidValue)
	}
	if c.Locale != localeArabic && c.Locale != localeEnglish {
		return fmt.Errorf("%w: locale must be ar or en, got %q", ErrInvalidValue, c.Locale)
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("%w: cache.ttl_seconds must be >= 0", ErrInvalidValue)
	}
	if _, lvlErr := zerolog.ParseLevel(c.Logging.Level); lvlErr != nil {
		return fmt.Errorf("%w: logging.level %q", ErrInvalidValue, c.Logging.Level)
	}
	if c.Logging.Format != logging.FormatConsole && c.Logging.Format != logging.FormatJSON {
		return fmt.Errorf("%w: logging.format must be console or json", ErrInvalidValue)
	}
	if c.Output.DefaultFormat != DefaultOutputFormat && c.Output.DefaultFormat != outputFormatJSON {
		return fmt.Errorf("%w: output.default_format must be table or json", ErrInvalidValue)
	}
	return nil
}

// keyAccessor reads and writes one dotted configuration key.
type keyAccessor struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func stringKey(field func(c *Config) *string) keyAccessor {
	return keyAccessor{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error {
			*field(c) = v
			return nil
		},
	}
}

func boolKey(field func(c *Config) *bool) keyAccessor {
	return keyAccessor{
		get: func(c *Config) string { return strconv.FormatBool(*field(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, v)
			}
			*field(c) = b
			return nil
		},
	}
}

//nolint:gochecknoglobals // Static lookup table for config get/set.
var keys = map[string]keyAccessor{
	"api.base_url": stringKey(func(c *Config) *string { return &c.API.BaseURL }),
	"api.timeout": {
		get: func(c *Config) string { return c.API.Timeout.String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%w: %q is not a duration", ErrInvalidValue, v)
			}
			c.API.Timeout = d
			return nil
		},
	},
	"locale":        stringKey(func(c *Config) *string { return &c.Locale }),
	"cache.enabled": boolKey(func(c *Config) *bool { return &c.Cache.Enabled }),
	"cache.ttl_seconds": {
		get: func(c *Config) string { return strconv.Itoa(c.Cache.TTLSeconds) },
		set: func(c *Config, v string) error {
			n, err := cache.ParseTTL(v)
			if err != nil {
				return fmt.Errorf("%w: cache.ttl_seconds: %w", ErrInvalidValue, err)
			}
			c.Cache.TTLSeconds = n
			return nil
		},
	},
	"logging.level":         stringKey(func(c *Config) *string { return &c.Logging.Level }),
	"logging.format":        stringKey(func(c *Config) *string { return &c.Logging.Format }),
	"logging.file":          stringKey(func(c *Config) *string { return &c.Logging.File }),
	"logging.audit.enabled": boolKey(func(c *Config) *bool { return &c.Logging.Audit.Enabled }),
	"logging.audit.file":    stringKey(func(c *Config) *string { return &c.Logging.Audit.File }),
	"output.default_format": stringKey(func(c *Config) *string { return &c.Output.DefaultFormat }),
}

// Keys lists every settable key in sorted order.
func Keys() []string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Get returns the value of a dotted key such as "api.base_url".
func (c *Config) Get(key string) (string, error) {
	acc, ok := keys[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return acc.get(c), nil
}

// Set assigns a dotted key and validates the result. On validation failure
// the previous value is restored.
func (c *Config) Set(key, value string) error {
	acc, ok := keys[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	previous := acc.get(c)
	if err := acc.set(c, value); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		_ = acc.set(c, previous)
		return err
	}
	return nil
}
