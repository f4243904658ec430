package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateBackend(config)...)
	validationErrors = append(validationErrors, validateStorage(config)...)
	validationErrors = append(validationErrors, validatePermissions(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateAppearance(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateBackend(config *Config) []string {
	var validationErrors []string
	b := config.Backend

	if b.URL == "" {
		validationErrors = append(validationErrors, "backend.url must not be empty")
	} else if u, err := url.Parse(b.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		validationErrors = append(validationErrors, fmt.Sprintf("backend.url %q must be an absolute http(s) URL", b.URL))
	}
	if b.TimeoutSeconds < 1 || b.TimeoutSeconds > 600 {
		validationErrors = append(validationErrors, "backend.timeout_seconds must be between 1 and 600")
	}
	if b.RequestsPerMinute < 0 {
		validationErrors = append(validationErrors, "backend.requests_per_minute must be non-negative")
	}
	if b.Burst < 1 {
		validationErrors = append(validationErrors, "backend.burst must be at least 1")
	}
	if b.BreakerMaxFailures < 1 {
		validationErrors = append(validationErrors, "backend.breaker_max_failures must be at least 1")
	}
	if b.BreakerTimeoutSeconds < 1 {
		validationErrors = append(validationErrors, "backend.breaker_timeout_seconds must be at least 1")
	}
	return validationErrors
}

func validateStorage(config *Config) []string {
	switch config.Storage.Backend {
	case StorageSQLite, StorageFile:
		return nil
	default:
		return []string{fmt.Sprintf("storage.backend %q must be one of: sqlite, file", config.Storage.Backend)}
	}
}

func validatePermissions(config *Config) []string {
	switch config.Permissions.Backend {
	case PermissionsAuto, PermissionsPortal, PermissionsLocal:
		return nil
	default:
		return []string{fmt.Sprintf("permissions.backend %q must be one of: auto, portal, local", config.Permissions.Backend)}
	}
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level %q must be one of: trace, debug, info, warn, error", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json", "text":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format %q must be one of: console, json", config.Logging.Format))
	}
	if config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.MaxAgeDays < 0 {
		validationErrors = append(validationErrors, "logging.max_age_days must be non-negative")
	}
	return validationErrors
}

func validateAppearance(config *Config) []string {
	p := config.Appearance.Palette
	colors := []struct {
		key   string
		value string
	}{
		{"accent", p.Accent},
		{"text", p.Text},
		{"muted", p.Muted},
		{"border", p.Border},
		{"success", p.Success},
		{"warning", p.Warning},
		{"error", p.Error},
	}

	var validationErrors []string
	for _, c := range colors {
		if c.value == "" {
			continue
		}
		if !hexColorPattern.MatchString(c.value) {
			validationErrors = append(validationErrors,
				fmt.Sprintf("appearance.palette.%s %q must be a hex color like #aabbcc", c.key, c.value))
		}
	}
	return validationErrors
}
