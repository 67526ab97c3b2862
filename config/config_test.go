package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{envAddr, envPromAddr, envDriver, envDsn, envGitRev} {
		if v, ok := os.LookupEnv(k); ok {
			require.NoError(t, os.Unsetenv(k))
			t.Cleanup(func() { _ = os.Setenv(k, v) })
		}
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, defaultAddr, cfg.Server.Addr)
	assert.Equal(t, defaultPromAddr, cfg.Server.PromAddr)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, 10*time.Minute, cfg.DB.ConnMaxIdleTime)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
server:
  addr: "127.0.0.1:9000"
  promAddr: "127.0.0.1:9001"
db:
  driver: mysql
  dsn: "user:pass@tcp(localhost:3306)/subway?parseTime=true"
  maxOpenConns: 4
  connMaxLifetime: 30m
  connMaxIdleTime: 5m
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, 4, cfg.DB.MaxOpenConns)
	assert.Equal(t, 10, cfg.DB.MaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, 5*time.Minute, cfg.DB.ConnMaxIdleTime)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(envAddr, "0.0.0.0:8181")
	t.Setenv(envDsn, "file::memory:")
	t.Setenv(envGitRev, "abc123")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8181", cfg.Server.Addr)
	assert.Equal(t, "file::memory:", cfg.DB.DSN)
	assert.Equal(t, "abc123", cfg.Server.Version)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "invalid: yaml: content: [[["))
	require.Error(t, err)
}

func TestLoad_ValidationFails(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "db:\n  driver: postgres\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
