package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDB          = "FLAGCTL_DB"
	EnvSeed        = "FLAGCTL_SEED"
	EnvSessionTTL  = "FLAGCTL_SESSION_TTL"
	EnvLogUseCases = "FLAGCTL_LOG_USE_CASES"
	EnvConfig      = "FLAGCTL_CONFIG"
)

// DefaultSessionTTL is how long a login stays valid.
const DefaultSessionTTL = 720 * time.Hour

// Config holds runtime settings for flagctl.
type Config struct {
	DBPath      string
	SeedPath    string // empty means the embedded seed
	SessionTTL  time.Duration
	LogUseCases bool
	ConfigFile  string
}

// fileConfig mirrors Config for the YAML file. Pointers distinguish
// absent keys from zero values.
type fileConfig struct {
	DBPath      *string `yaml:"db_path,omitempty"`
	SeedPath    *string `yaml:"seed_path,omitempty"`
	SessionTTL  *string `yaml:"session_ttl,omitempty"`
	LogUseCases *bool   `yaml:"log_use_cases,omitempty"`
}

// Dir returns ~/.flagctl, or ".flagctl" when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".flagctl"
	}
	return filepath.Join(home, ".flagctl")
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	dir := Dir()
	return Config{
		DBPath:     filepath.Join(dir, "flagctl.db"),
		SessionTTL: DefaultSessionTTL,
		ConfigFile: filepath.Join(dir, "config.yaml"),
	}
}

// LoadConfig starts from defaults, merges the YAML config file when it
// exists, then applies environment overrides. Malformed env values are
// ignored; a malformed config file is an error.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv(EnvConfig); v != "" {
		cfg.ConfigFile = expandHome(v)
	}
	if err := mergeFile(&cfg, cfg.ConfigFile); err != nil {
		return cfg, err
	}

	if v := os.Getenv(EnvDB); v != "" {
		cfg.DBPath = expandHome(v)
	}
	if v := os.Getenv(EnvSeed); v != "" {
		cfg.SeedPath = expandHome(v)
	}
	if v := os.Getenv(EnvSessionTTL); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SessionTTL = d
		}
	}
	if v := os.Getenv(EnvLogUseCases); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}

	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	if fc.DBPath != nil && *fc.DBPath != "" {
		cfg.DBPath = expandHome(*fc.DBPath)
	}
	if fc.SeedPath != nil {
		cfg.SeedPath = expandHome(*fc.SeedPath)
	}
	if fc.SessionTTL != nil {
		d, err := time.ParseDuration(*fc.SessionTTL)
		if err != nil || d <= 0 {
			return fmt.Errorf("parsing config %s: session_ttl %q is not a positive duration", path, *fc.SessionTTL)
		}
		cfg.SessionTTL = d
	}
	if fc.LogUseCases != nil {
		cfg.LogUseCases = *fc.LogUseCases
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
