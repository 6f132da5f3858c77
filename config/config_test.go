package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	t.Chdir(dir)
}

func TestLoadWithEnv_YAMLValues(t *testing.T) {
	writeConfigFile(t, `
env:
  env: test
  serviceName: backoffice
  debug: true
mongo:
  uri: mongodb://localhost:27017
  database: from_yaml
jwt:
  secret: yaml_secret
  accessTtlMinutes: 15
`)

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "backoffice", cfg.Env.ServiceName)
	assert.True(t, cfg.Env.Debug)
	assert.Equal(t, "from_yaml", cfg.Mongo.Database)
	assert.Equal(t, "yaml_secret", cfg.JWT.Secret)
	assert.Equal(t, 15, cfg.JWT.AccessTTLMinutes)
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	writeConfigFile(t, `
env:
  env: test
mongo:
  database: from_yaml
jwt:
  secret: yaml_secret
`)
	t.Setenv("MONGO_DATABASE", "from_env")
	t.Setenv("JWT_SECRET", "env_secret")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "from_env", cfg.Mongo.Database)
	assert.Equal(t, "env_secret", cfg.JWT.Secret)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadWithEnv[Config]("config")
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestNew_FillsOperationalDefaults(t *testing.T) {
	writeConfigFile(t, `
env:
  env: test
`)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "pos_backoffice", cfg.Mongo.Database)
	assert.Equal(t, 5*time.Second, cfg.Mongo.ServerSelectionTimeout)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 30, cfg.JWT.AccessTTLMinutes)
	assert.Equal(t, 7, cfg.JWT.RefreshTTLDays)
	assert.Equal(t, 5, cfg.Auth.MaxFailedAttempts)
}
