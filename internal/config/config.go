// Package config provides YAML-based configuration loading for the tracker,
// with .env and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level tracker configuration, loaded from config.yaml.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Cache    CacheConfig    `yaml:"cache"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig selects the gorm driver and connection string.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // sqlite or mysql
	DSN      string `yaml:"dsn"`
	LogLevel string `yaml:"log_level"` // silent, error, warn, info
}

// AuthConfig holds JWT signing settings.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	Issuer    string        `yaml:"issuer"`
	Audience  string        `yaml:"audience"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// FetchConfig controls the paginated dataset fetch.
type FetchConfig struct {
	PageSize int `yaml:"page_size"`
}

// CacheConfig controls the durable dataset cache.
type CacheConfig struct {
	Key string `yaml:"key"`
	// Disabled keeps the dataset in memory only.
	Disabled bool `yaml:"disabled"`
}

// MaxPageSize is the upstream row cap per request.
const MaxPageSize = 1000

// Load reads .env (if present) and the YAML file at path, then applies
// environment overrides. An empty path uses defaults plus the environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides file values with non-empty environment variables.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("TRACKER_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := getenv("TRACKER_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := getenv("TRACKER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: TRACKER_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := getenv("JWT_ISSUER"); v != "" {
		c.Auth.Issuer = v
	}
	if v := getenv("JWT_AUDIENCE"); v != "" {
		c.Auth.Audience = v
	}
	return nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8008
	}
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.DSN == "" && c.Database.Driver == "sqlite" {
		c.Database.DSN = "train-tracker.db"
	}
	if c.Database.LogLevel == "" {
		c.Database.LogLevel = "warn"
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = "train-task-tracker"
	}
	if c.Auth.Audience == "" {
		c.Auth.Audience = "train-task-tracker-clients"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Fetch.PageSize == 0 {
		c.Fetch.PageSize = MaxPageSize
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not supported", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, "database.dsn is required")
	}
	switch c.Database.LogLevel {
	case "silent", "error", "warn", "info":
	default:
		errs = append(errs, fmt.Sprintf("database.log_level %q is not supported", c.Database.LogLevel))
	}
	if c.Fetch.PageSize < 1 || c.Fetch.PageSize > MaxPageSize {
		errs = append(errs, fmt.Sprintf("fetch.page_size must be between 1 and %d", MaxPageSize))
	}
	if c.Auth.TokenTTL < 0 {
		errs = append(errs, "auth.token_ttl must be positive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
