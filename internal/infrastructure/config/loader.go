// Package config loads, validates and watches the retouch configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	// RETOUCH_BACKEND_URL, RETOUCH_STORAGE_BACKEND, ...
	v.SetEnvPrefix("RETOUCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Shorter names for the variables people actually set by hand.
	bindings := map[string]string{
		"backend.api_key": "RETOUCH_API_KEY",
		"logging.level":   "RETOUCH_LOG_LEVEL",
		"logging.format":  "RETOUCH_LOG_FORMAT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := resolvePaths(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			configFile := m.viper.ConfigFileUsed()
			if configFile == "" {
				configFile, _ = GetConfigFile()
			}
			return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
		}

		if createErr := m.createDefaultConfig(); createErr != nil {
			configDir, _ := GetConfigDir()
			return fmt.Errorf(
				"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
				configDir,
				createErr,
			)
		}
		if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
			return fmt.Errorf(
				"failed to read newly created config file: %w\nThe config file was created but couldn't be read. Please check the file format",
				rereadErr,
			)
		}
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

// resolvePaths fills storage paths that depend on the XDG layout.
func resolvePaths(config *Config) error {
	if config.Storage.DatabasePath == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Storage.DatabasePath = dbPath
	}
	if config.Storage.DocumentsDir == "" {
		docsDir, err := GetDocumentsDir()
		if err != nil {
			return fmt.Errorf("failed to get documents directory: %w", err)
		}
		config.Storage.DocumentsDir = docsDir
	}
	if config.Output.Dir == "" {
		outDir, err := GetOutputDir()
		if err != nil {
			return fmt.Errorf("failed to get output directory: %w", err)
		}
		config.Output.Dir = outDir
	}
	config.Storage.DatabasePath = expandHome(config.Storage.DatabasePath)
	config.Storage.DocumentsDir = expandHome(config.Storage.DocumentsDir)
	config.Output.Dir = expandHome(config.Output.Dir)
	config.Logging.LogDir = expandHome(config.Logging.LogDir)
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func normalizeConfig(config *Config) {
	defaults := DefaultConfig()

	switch StorageBackend(strings.ToLower(string(config.Storage.Backend))) {
	case StorageFile:
		config.Storage.Backend = StorageFile
	default:
		config.Storage.Backend = StorageSQLite
	}

	switch PermissionsBackend(strings.ToLower(string(config.Permissions.Backend))) {
	case PermissionsPortal:
		config.Permissions.Backend = PermissionsPortal
	case PermissionsLocal:
		config.Permissions.Backend = PermissionsLocal
	default:
		config.Permissions.Backend = PermissionsAuto
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaults.Logging.Level
	}
	switch strings.ToLower(config.Logging.Format) {
	case "json":
		config.Logging.Format = "json"
	default:
		// "text" was the historical name of the console format.
		config.Logging.Format = "console"
	}

	config.Backend.URL = strings.TrimRight(strings.TrimSpace(config.Backend.URL), "/")
	config.Permissions.AppID = strings.TrimSpace(config.Permissions.AppID)
	if config.Permissions.AppID == "" {
		config.Permissions.AppID = defaults.Permissions.AppID
	}
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// Save writes cfg to disk. Watchers are notified through the file watch when
// active, otherwise the in-memory config is reloaded immediately.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// Validate before writing so the UI gets immediate errors.
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	configFile := m.viper.ConfigFileUsed()
	if configFile == "" {
		var err error
		if configFile, err = GetConfigFile(); err != nil {
			return err
		}
	}

	if err := WriteConfigOrdered(cfg, configFile); err != nil {
		return err
	}

	if m.watching {
		m.skipNextReload = true
		saved := *cfg
		m.config = &saved
		return nil
	}
	return m.reload()
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// createDefaultConfig writes the default configuration and its JSON schema.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	if err := WriteConfigOrdered(DefaultConfig(), configFile); err != nil {
		return err
	}
	m.viper.SetConfigFile(configFile)

	// The schema only helps editors; a failure here is not fatal.
	_ = GenerateSchemaFile(filepath.Dir(configFile))
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setBackendDefaults(defaults)
	m.setStorageDefaults(defaults)
	m.setPermissionsDefaults(defaults)
	m.setCameraDefaults(defaults)
	m.setLoggingDefaults(defaults)
	m.setAppearanceDefaults(defaults)
	m.viper.SetDefault("output.dir", defaults.Output.Dir)
}

func (m *Manager) setBackendDefaults(defaults *Config) {
	m.viper.SetDefault("backend.url", defaults.Backend.URL)
	m.viper.SetDefault("backend.api_key", defaults.Backend.APIKey)
	m.viper.SetDefault("backend.timeout_seconds", defaults.Backend.TimeoutSeconds)
	m.viper.SetDefault("backend.requests_per_minute", defaults.Backend.RequestsPerMinute)
	m.viper.SetDefault("backend.burst", defaults.Backend.Burst)
	m.viper.SetDefault("backend.breaker_max_failures", defaults.Backend.BreakerMaxFailures)
	m.viper.SetDefault("backend.breaker_timeout_seconds", defaults.Backend.BreakerTimeoutSeconds)
}

func (m *Manager) setStorageDefaults(defaults *Config) {
	m.viper.SetDefault("storage.backend", string(defaults.Storage.Backend))
	m.viper.SetDefault("storage.database_path", "")
	m.viper.SetDefault("storage.documents_dir", "")
}

func (m *Manager) setPermissionsDefaults(defaults *Config) {
	m.viper.SetDefault("permissions.backend", string(defaults.Permissions.Backend))
	m.viper.SetDefault("permissions.app_id", defaults.Permissions.AppID)
}

func (m *Manager) setCameraDefaults(defaults *Config) {
	m.viper.SetDefault("camera.device", defaults.Camera.Device)
	m.viper.SetDefault("camera.ffmpeg_path", defaults.Camera.FFmpegPath)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

func (m *Manager) setAppearanceDefaults(defaults *Config) {
	p := defaults.Appearance.Palette
	m.viper.SetDefault("appearance.palette.accent", p.Accent)
	m.viper.SetDefault("appearance.palette.text", p.Text)
	m.viper.SetDefault("appearance.palette.muted", p.Muted)
	m.viper.SetDefault("appearance.palette.border", p.Border)
	m.viper.SetDefault("appearance.palette.success", p.Success)
	m.viper.SetDefault("appearance.palette.warning", p.Warning)
	m.viper.SetDefault("appearance.palette.error", p.Error)
}
