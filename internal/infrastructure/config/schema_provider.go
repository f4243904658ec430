package config

import (
	"strconv"

	"github.com/bnema/retouch/internal/domain/entity"
)

// Section names for grouping config keys.
const (
	SectionBackend     = "Backend"
	SectionStorage     = "Storage"
	SectionPermissions = "Permissions"
	SectionCamera      = "Camera"
	SectionOutput      = "Output"
	SectionLogging     = "Logging"
	SectionAppearance  = "Appearance"
)

// SchemaProvider lists every configuration key with its default and
// constraints. The settings screen and `retouch config show` render it.
type SchemaProvider struct{}

// NewSchemaProvider creates a new SchemaProvider.
func NewSchemaProvider() *SchemaProvider {
	return &SchemaProvider{}
}

// GetSchema returns all configuration keys with their metadata.
func (p *SchemaProvider) GetSchema() []entity.ConfigKeyInfo {
	defaults := DefaultConfig()

	keys := make([]entity.ConfigKeyInfo, 0, 32)
	keys = append(keys, p.backendKeys(defaults)...)
	keys = append(keys, p.storageKeys(defaults)...)
	keys = append(keys, p.permissionsKeys(defaults)...)
	keys = append(keys, p.cameraKeys(defaults)...)
	keys = append(keys, entity.ConfigKeyInfo{
		Key:         "output.dir",
		Type:        "string",
		Default:     defaults.Output.Dir,
		Description: "Directory transformed images are written to",
		Section:     SectionOutput,
	})
	keys = append(keys, p.loggingKeys(defaults)...)
	keys = append(keys, p.appearanceKeys(defaults)...)
	return keys
}

// Values returns the current value of every key in cfg, keyed like GetSchema.
func (*SchemaProvider) Values(cfg *Config) map[string]string {
	secret := ""
	if cfg.Backend.APIKey != "" {
		secret = "********"
	}
	p := cfg.Appearance.Palette
	return map[string]string{
		"backend.url":                     cfg.Backend.URL,
		"backend.api_key":                 secret,
		"backend.timeout_seconds":         strconv.Itoa(cfg.Backend.TimeoutSeconds),
		"backend.requests_per_minute":     strconv.Itoa(cfg.Backend.RequestsPerMinute),
		"backend.burst":                   strconv.Itoa(cfg.Backend.Burst),
		"backend.breaker_max_failures":    strconv.Itoa(cfg.Backend.BreakerMaxFailures),
		"backend.breaker_timeout_seconds": strconv.Itoa(cfg.Backend.BreakerTimeoutSeconds),
		"storage.backend":                 string(cfg.Storage.Backend),
		"storage.database_path":           cfg.Storage.DatabasePath,
		"storage.documents_dir":           cfg.Storage.DocumentsDir,
		"permissions.backend":             string(cfg.Permissions.Backend),
		"permissions.app_id":              cfg.Permissions.AppID,
		"camera.device":                   cfg.Camera.Device,
		"camera.ffmpeg_path":              cfg.Camera.FFmpegPath,
		"output.dir":                      cfg.Output.Dir,
		"logging.level":                   cfg.Logging.Level,
		"logging.format":                  cfg.Logging.Format,
		"logging.log_dir":                 cfg.Logging.LogDir,
		"logging.enable_file_log":         strconv.FormatBool(cfg.Logging.EnableFileLog),
		"logging.max_size_mb":             strconv.Itoa(cfg.Logging.MaxSizeMB),
		"logging.max_backups":             strconv.Itoa(cfg.Logging.MaxBackups),
		"logging.max_age_days":            strconv.Itoa(cfg.Logging.MaxAgeDays),
		"logging.compress":                strconv.FormatBool(cfg.Logging.Compress),
		"appearance.palette.accent":       p.Accent,
		"appearance.palette.text":         p.Text,
		"appearance.palette.muted":        p.Muted,
		"appearance.palette.border":       p.Border,
		"appearance.palette.success":      p.Success,
		"appearance.palette.warning":      p.Warning,
		"appearance.palette.error":        p.Error,
	}
}

func (*SchemaProvider) backendKeys(defaults *Config) []entity.ConfigKeyInfo {
	b := defaults.Backend
	return []entity.ConfigKeyInfo{
		{Key: "backend.url", Type: "string", Default: b.URL,
			Description: "Base URL of the transformation service", Section: SectionBackend},
		{Key: "backend.api_key", Type: "string", Default: "",
			Description: "Bearer token (RETOUCH_API_KEY overrides)", Section: SectionBackend},
		{Key: "backend.timeout_seconds", Type: "int", Default: strconv.Itoa(b.TimeoutSeconds),
			Description: "Per-request timeout", Range: "1-600", Section: SectionBackend},
		{Key: "backend.requests_per_minute", Type: "int", Default: strconv.Itoa(b.RequestsPerMinute),
			Description: "Client-side rate limit, 0 disables it", Section: SectionBackend},
		{Key: "backend.burst", Type: "int", Default: strconv.Itoa(b.Burst),
			Description: "Requests allowed back to back", Section: SectionBackend},
		{Key: "backend.breaker_max_failures", Type: "int", Default: strconv.Itoa(b.BreakerMaxFailures),
			Description: "Consecutive failures before requests fail fast", Section: SectionBackend},
		{Key: "backend.breaker_timeout_seconds", Type: "int", Default: strconv.Itoa(b.BreakerTimeoutSeconds),
			Description: "How long requests fail fast before a probe", Section: SectionBackend},
	}
}

func (*SchemaProvider) storageKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{Key: "storage.backend", Type: "string", Default: string(defaults.Storage.Backend),
			Description: "Where prompt history is stored", Values: []string{"sqlite", "file"}, Section: SectionStorage},
		{Key: "storage.database_path", Type: "string", Default: pathOrEmpty(GetDatabaseFile),
			Description: "SQLite database file", Section: SectionStorage},
		{Key: "storage.documents_dir", Type: "string", Default: pathOrEmpty(GetDocumentsDir),
			Description: "Directory for the file backend", Section: SectionStorage},
	}
}

func (*SchemaProvider) permissionsKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{Key: "permissions.backend", Type: "string", Default: string(defaults.Permissions.Backend),
			Description: "OS authorization layer", Values: []string{"auto", "portal", "local"}, Section: SectionPermissions},
		{Key: "permissions.app_id", Type: "string", Default: defaults.Permissions.AppID,
			Description: "Application id used by the desktop portal", Section: SectionPermissions},
	}
}

func (*SchemaProvider) cameraKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{Key: "camera.device", Type: "string", Default: defaults.Camera.Device,
			Description: "V4L2 capture device", Section: SectionCamera},
		{Key: "camera.ffmpeg_path", Type: "string", Default: "",
			Description: "ffmpeg binary, looked up in PATH when empty", Section: SectionCamera},
	}
}

func (*SchemaProvider) loggingKeys(defaults *Config) []entity.ConfigKeyInfo {
	l := defaults.Logging
	return []entity.ConfigKeyInfo{
		{Key: "logging.level", Type: "string", Default: l.Level,
			Values: []string{"trace", "debug", "info", "warn", "error"}, Description: "Minimum log level", Section: SectionLogging},
		{Key: "logging.format", Type: "string", Default: l.Format,
			Values: []string{"console", "json"}, Description: "Log line format", Section: SectionLogging},
		{Key: "logging.log_dir", Type: "string", Default: l.LogDir,
			Description: "Directory for log files", Section: SectionLogging},
		{Key: "logging.enable_file_log", Type: "bool", Default: strconv.FormatBool(l.EnableFileLog),
			Description: "Write logs to a rotated file", Section: SectionLogging},
		{Key: "logging.max_size_mb", Type: "int", Default: strconv.Itoa(l.MaxSizeMB),
			Description: "Rotate the log file after this size", Section: SectionLogging},
		{Key: "logging.max_backups", Type: "int", Default: strconv.Itoa(l.MaxBackups),
			Description: "Rotated files to keep, 0 keeps all", Section: SectionLogging},
		{Key: "logging.max_age_days", Type: "int", Default: strconv.Itoa(l.MaxAgeDays),
			Description: "Delete rotated files older than this, 0 keeps all", Section: SectionLogging},
		{Key: "logging.compress", Type: "bool", Default: strconv.FormatBool(l.Compress),
			Description: "Gzip rotated files", Section: SectionLogging},
	}
}

func (*SchemaProvider) appearanceKeys(defaults *Config) []entity.ConfigKeyInfo {
	p := defaults.Appearance.Palette
	colors := []struct{ name, value string }{
		{"accent", p.Accent}, {"text", p.Text}, {"muted", p.Muted}, {"border", p.Border},
		{"success", p.Success}, {"warning", p.Warning}, {"error", p.Error},
	}
	keys := make([]entity.ConfigKeyInfo, 0, len(colors))
	for _, c := range colors {
		keys = append(keys, entity.ConfigKeyInfo{
			Key:         "appearance.palette." + c.name,
			Type:        "string",
			Default:     c.value,
			Description: "Hex color for " + c.name + " elements",
			Section:     SectionAppearance,
		})
	}
	return keys
}
