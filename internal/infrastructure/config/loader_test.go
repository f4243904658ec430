package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("RETOUCH_API_KEY", "")
	t.Setenv("RETOUCH_LOG_LEVEL", "")
	t.Setenv("RETOUCH_LOG_FORMAT", "")
	return root
}

func TestSetBackendDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, defaultBackendURL, mgr.viper.GetString("backend.url"))
	assert.Equal(t, "sqlite", mgr.viper.GetString("storage.backend"))
	assert.Equal(t, "auto", mgr.viper.GetString("permissions.backend"))
}

func TestNormalizeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Backend = StorageBackend("FILE")
	cfg.Permissions.Backend = PermissionsBackend("bogus")
	cfg.Logging.Format = "text"
	cfg.Logging.Level = " DEBUG "
	cfg.Backend.URL = "https://api.example.com/"
	cfg.Permissions.AppID = ""

	normalizeConfig(cfg)

	assert.Equal(t, StorageFile, cfg.Storage.Backend)
	assert.Equal(t, PermissionsAuto, cfg.Permissions.Backend)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "https://api.example.com", cfg.Backend.URL)
	assert.Equal(t, defaultAppID, cfg.Permissions.AppID)
}

func TestManager_LoadCreatesDefaultConfig(t *testing.T) {
	root := isolateXDG(t)

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	configFile := filepath.Join(root, "config", "retouch", "config.toml")
	_, err = os.Stat(configFile)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "config", "retouch", "config.schema.json"))
	require.NoError(t, err)

	cfg := mgr.Get()
	assert.Equal(t, defaultBackendURL, cfg.Backend.URL)
	assert.Equal(t, filepath.Join(root, "data", "retouch", "retouch.sqlite"), cfg.Storage.DatabasePath)
	assert.Equal(t, filepath.Join(root, "data", "retouch", "documents"), cfg.Storage.DocumentsDir)
}

func TestManager_LoadReadsFileAndEnv(t *testing.T) {
	root := isolateXDG(t)
	dir := filepath.Join(root, "config", "retouch")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[backend]
url = "https://transform.example.com"

[storage]
backend = "file"
`), 0o600))
	t.Setenv("RETOUCH_API_KEY", "secret")

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, "https://transform.example.com", cfg.Backend.URL)
	assert.Equal(t, "secret", cfg.Backend.APIKey)
	assert.Equal(t, StorageFile, cfg.Storage.Backend)
	assert.Equal(t, defaultTimeoutSeconds, cfg.Backend.TimeoutSeconds)
}

func TestManager_LoadRejectsInvalidConfig(t *testing.T) {
	root := isolateXDG(t)
	dir := filepath.Join(root, "config", "retouch")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[backend]
url = "ftp://nope"
timeout_seconds = 0
`), 0o600))

	mgr, err := NewManager()
	require.NoError(t, err)

	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend.url")
	assert.Contains(t, err.Error(), "backend.timeout_seconds")
}

func TestManager_SaveReloads(t *testing.T) {
	isolateXDG(t)

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	var notified *Config
	mgr.OnConfigChange(func(c *Config) { notified = c })

	cfg := mgr.Get()
	cfg.Backend.RequestsPerMinute = 5
	require.NoError(t, mgr.Save(cfg))

	assert.Equal(t, 5, mgr.Get().Backend.RequestsPerMinute)
	assert.Nil(t, notified, "callbacks fire from the file watcher only")
}
