package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/umx/internal/models"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration. Non-secret operational
// settings come from an optional TOML file; credentials and per-run overrides
// come from the environment (see [ApplyEnv]).
type Config struct {
	Database  DatabaseConfig  `toml:"database"`
	Audit     AuditConfig     `toml:"audit"`
	Migration MigrationConfig `toml:"migration"`
}

// DatabaseConfig contains run-ledger database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// AuditConfig contains audit log output settings.
type AuditConfig struct {
	Dir string `toml:"dir"`
}

// MigrationConfig contains driver pacing and credential settings.
//
// SecretKey and ImportToDev are environment-only and never read from TOML.
type MigrationConfig struct {
	SecretKey    string                `toml:"-"`
	ImportToDev  bool                  `toml:"-"`
	DelayMS      int                   `toml:"delay_ms"`
	RetryDelayMS int                   `toml:"retry_delay_ms"`
	Offset       int                   `toml:"offset"`
	Hasher       models.PasswordHasher `toml:"hasher"`
}

// Delay returns the fixed inter-record pacing interval.
func (m MigrationConfig) Delay() time.Duration {
	return time.Duration(m.DelayMS) * time.Millisecond
}

// RetryDelay returns the rate-limit cooldown interval.
func (m MigrationConfig) RetryDelay() time.Duration {
	return time.Duration(m.RetryDelayMS) * time.Millisecond
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays environment variables onto the configuration. A .env file
// in the working directory is loaded first when present; a missing file is not
// an error. Environment values win over TOML for every key they name.
//
// Recognized variables: CLERK_SECRET_KEY, DELAY_MS, RETRY_DELAY_MS, OFFSET,
// PASSWORD_HASHER, IMPORT_TO_DEV_INSTANCE.
func (c *Config) ApplyEnv() error {
	_ = godotenv.Load()

	if v := os.Getenv("CLERK_SECRET_KEY"); v != "" {
		c.Migration.SecretKey = v
	}

	c.Migration.ImportToDev = os.Getenv("IMPORT_TO_DEV_INSTANCE") == "true"

	intVars := []struct {
		name   string
		target *int
	}{
		{"DELAY_MS", &c.Migration.DelayMS},
		{"RETRY_DELAY_MS", &c.Migration.RetryDelayMS},
		{"OFFSET", &c.Migration.Offset},
	}

	for _, v := range intVars {
		raw := os.Getenv(v.name)
		if raw == "" {
			continue
		}

		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, v.name, raw)
		}
		*v.target = parsed
	}

	if v := os.Getenv("PASSWORD_HASHER"); v != "" {
		c.Migration.Hasher = models.PasswordHasher(v)
	}

	return c.validate()
}

// validate enforces startup invariants: a hasher from the closed enumeration
// and non-negative pacing values. Fails fast before any record is touched.
func (c *Config) validate() error {
	hasher, err := models.ParseHasher(string(c.Migration.Hasher))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	c.Migration.Hasher = hasher

	if c.Migration.DelayMS < 0 || c.Migration.RetryDelayMS < 0 {
		return fmt.Errorf("%w: delays must be non-negative", ErrInvalidConfig)
	}
	if c.Migration.Offset < 0 {
		return fmt.Errorf("%w: OFFSET must be non-negative", ErrInvalidConfig)
	}

	return nil
}

// IsProductionKey reports whether a Clerk secret key targets a production
// instance. Keys are underscore-delimited (e.g. sk_live_abc123); the second
// segment is the instance class.
func IsProductionKey(key string) bool {
	parts := strings.Split(key, "_")
	return len(parts) >= 2 && parts[1] == "live"
}

// GuardMigration enforces the migration startup safety check: the credential
// must be present, and a non-production credential is only permitted when
// IMPORT_TO_DEV_INSTANCE=true. Runs before any file or network I/O.
func (c *Config) GuardMigration() error {
	if c.Migration.SecretKey == "" {
		return fmt.Errorf("%w: CLERK_SECRET_KEY is not set", ErrMissingCredentials)
	}

	if !IsProductionKey(c.Migration.SecretKey) && !c.Migration.ImportToDev {
		return fmt.Errorf("%w: development instances are subject to user caps", ErrDevInstanceGuard)
	}

	return nil
}

// GuardCleanup enforces the cleanup startup safety check: bulk deletion never
// runs against a production credential, regardless of any other setting.
func (c *Config) GuardCleanup() error {
	if c.Migration.SecretKey == "" {
		return fmt.Errorf("%w: CLERK_SECRET_KEY is not set", ErrMissingCredentials)
	}

	if IsProductionKey(c.Migration.SecretKey) {
		return fmt.Errorf("%w: refusing to delete users from a production instance", ErrProductionKey)
	}

	return nil
}
