package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "fintrack", cfg.Database.Schema)
	assert.Equal(t, int32(10), cfg.Database.Pool.MaxConns)
	assert.Equal(t, time.Hour, cfg.Database.Pool.MaxConnLifetime)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "application.yaml")
	content := `
port: 8080
db:
  host: db.internal
  name: money
auth:
  tokenttl: 1h
metrics:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "money", cfg.Database.Name)
	assert.Equal(t, "fintrack", cfg.Database.User)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "application.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  host: from-file\n"), 0o644))
	t.Setenv("FINTRACK_DB_HOST", "from-env")
	t.Setenv("FINTRACK_AUTH_JWTSECRET", "s3cret")
	t.Setenv("FINTRACK_DB_POOL_MAXCONNS", "4")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Host)
	assert.Equal(t, "s3cret", cfg.Auth.JwtSecret)
	assert.Equal(t, int32(4), cfg.Database.Pool.MaxConns)
}

func TestLoad_InvalidYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "application.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db: [unclosed"), 0o644))

	_, err := Load(path)

	assert.Error(t, err)
}
