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
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, "testgen", cfg.Service.Name)
	assert.NotZero(t, cfg.Service.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Generator.Model)
	assert.Equal(t, 30*time.Second, cfg.Catalog.CacheTTL)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := []byte(`
service:
  port: 9090
database:
  host: db.internal
  database: testgen_prod
logging:
  level: debug
catalog:
  cache_ttl: 2m
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Service.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "testgen_prod", cfg.Database.Database)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2*time.Minute, cfg.Catalog.CacheTTL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("service:\n  port: 9090\n"), 0o600))

	t.Setenv("TESTGEN_PORT", "7070")
	t.Setenv("POSTGRES_PASSWORD", "hunter2")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Service.Port)
	assert.Equal(t, "hunter2", cfg.Database.Password)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("service: [not a map"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
