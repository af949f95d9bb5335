package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at a temp dir and clears every flagctl variable.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{EnvDB, EnvSeed, EnvSessionTTL, EnvLogUseCases, EnvConfig} {
		t.Setenv(k, "")
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultConfig(t *testing.T) {
	home := isolate(t)

	cfg := DefaultConfig()

	assert.Equal(t, filepath.Join(home, ".flagctl", "flagctl.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(home, ".flagctl", "config.yaml"), cfg.ConfigFile)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.SeedPath)
	assert.False(t, cfg.LogUseCases)
}

func TestLoadConfig_NoFileNoEnvReturnsDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvDB, "/tmp/x.db")
	t.Setenv(EnvSeed, "/tmp/seed.json")
	t.Setenv(EnvSessionTTL, "90m")
	t.Setenv(EnvLogUseCases, "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "/tmp/seed.json", cfg.SeedPath)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.LogUseCases)
}

func TestLoadConfig_InvalidEnvValuesIgnored(t *testing.T) {
	isolate(t)
	t.Setenv(EnvSessionTTL, "forever")
	t.Setenv(EnvLogUseCases, "maybe")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultSessionTTL, cfg.SessionTTL)
	assert.False(t, cfg.LogUseCases)
}

func TestLoadConfig_FileMergedUnderEnv(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".flagctl", "config.yaml"), `
db_path: ~/data/flags.db
seed_path: /srv/seed.yaml
session_ttl: 2h
log_use_cases: true
`)
	t.Setenv(EnvSessionTTL, "3h")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "data", "flags.db"), cfg.DBPath)
	assert.Equal(t, "/srv/seed.yaml", cfg.SeedPath)
	assert.Equal(t, 3*time.Hour, cfg.SessionTTL, "env wins over file")
	assert.True(t, cfg.LogUseCases)
}

func TestLoadConfig_ConfigEnvSelectsFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "alt.yaml")
	writeFile(t, path, "db_path: /var/lib/flagctl.db\n")
	t.Setenv(EnvConfig, path)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, "/var/lib/flagctl.db", cfg.DBPath)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".flagctl", "config.yaml"), "log_use_cases: true\n")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, filepath.Join(home, ".flagctl", "flagctl.db"), cfg.DBPath)
	assert.Equal(t, DefaultSessionTTL, cfg.SessionTTL)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	home := isolate(t)

	t.Run("bad yaml", func(t *testing.T) {
		writeFile(t, filepath.Join(home, ".flagctl", "config.yaml"), "db_path: [unclosed\n")
		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing config")
	})

	t.Run("bad duration", func(t *testing.T) {
		writeFile(t, filepath.Join(home, ".flagctl", "config.yaml"), "session_ttl: soon\n")
		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session_ttl")
	})
}

func TestExpandHome(t *testing.T) {
	home := isolate(t)

	assert.Equal(t, home, expandHome("~"))
	assert.Equal(t, filepath.Join(home, "a", "b"), expandHome("~/a/b"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
	assert.Equal(t, "~user/x", expandHome("~user/x"))
}
