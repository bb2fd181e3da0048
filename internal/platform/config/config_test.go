package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, "quotesync", cfg.App.Name)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, "pretty", cfg.Log.Format)
	assert.Equal(t, DefaultRemoteBaseURL, cfg.Services.Quote.BaseURL)
	assert.Equal(t, "/posts", cfg.Services.Quote.ListPath)
	assert.Equal(t, "badger", cfg.Storage.Driver)
	assert.True(t, cfg.Sync.Enabled)
	assert.True(t, cfg.Sync.SyncOnStart)
	assert.Equal(t, DefaultSyncInterval, cfg.Sync.Interval)
	assert.Equal(t, "readd", cfg.Sync.DeletionPolicy)
	assert.Equal(t, DefaultPushBatchSize, cfg.Sync.PushBatchSize)
	assert.Equal(t, DefaultRemoteCategory, cfg.Sync.RemoteCategory)

	require.NoError(t, cfg.Validate())
}

func TestLoad_DurationParsing(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 200*time.Millisecond, cfg.Client.Retry.InitialInterval)
	assert.Equal(t, 60*time.Second, cfg.Client.CircuitBreaker.Timeout)
	assert.Equal(t, 90*time.Second, cfg.Client.Transport.IdleConnTimeout)
}

func TestLoad_FilePrecedence(t *testing.T) {
	dir := t.TempDir()

	writeConfig(t, dir, "base.yaml", `
sync:
  interval: 1m
  deletion_policy: respect
storage:
  driver: sqlite
`)
	writeConfig(t, dir, "test.yaml", `
sync:
  interval: 5s
`)

	cfg, err := LoadFrom(dir, "test")
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Sync.Interval, "profile overrides base")
	assert.Equal(t, "respect", cfg.Sync.DeletionPolicy, "base overrides defaults")
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", "sync:\n  push_batch_size: 10\n")

	t.Setenv("APP_SERVER__PORT", "9090")
	t.Setenv("APP_LOG__LEVEL", "debug")
	t.Setenv("APP_SYNC__PUSH_BATCH_SIZE", "25")
	t.Setenv("APP_SYNC__ENABLED", "false")
	t.Setenv("APP_SERVICES__QUOTE__BASE_URL", "http://localhost:9999")

	cfg, err := LoadFrom(dir, "")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 25, cfg.Sync.PushBatchSize)
	assert.False(t, cfg.Sync.Enabled)
	assert.Equal(t, "http://localhost:9999", cfg.Services.Quote.BaseURL)
}

func TestLoad_NonExistentProfile(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir(), "nonexistent")
	require.NoError(t, err)
	assert.Equal(t, "quotesync", cfg.App.Name)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", "sync: [unterminated")

	_, err := LoadFrom(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading base config")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "sync.deletion_policy", envKey("APP_SYNC__DELETION_POLICY"))
	assert.Equal(t, "services.quote.base_url", envKey("APP_SERVICES__QUOTE__BASE_URL"))
	assert.Equal(t, "log.level", envKey("APP_LOG__LEVEL"))
}
