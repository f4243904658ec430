package config

// Default configuration constants
const (
	// Backend defaults
	defaultBackendURL            = "http://127.0.0.1:8080"
	defaultTimeoutSeconds        = 120
	defaultRequestsPerMinute     = 20
	defaultBurst                 = 2
	defaultBreakerMaxFailures    = 3
	defaultBreakerTimeoutSeconds = 30

	// Permissions defaults
	defaultAppID = "io.github.bnema.retouch"

	// Camera defaults
	defaultCameraDevice = "/dev/video0"

	// Logging defaults
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAgeDays = 7
)

func pathOrEmpty(get func() (string, error)) string {
	p, err := get()
	if err != nil {
		return ""
	}
	return p
}

// DefaultConfig returns the default configuration values for retouch.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:                   defaultBackendURL,
			TimeoutSeconds:        defaultTimeoutSeconds,
			RequestsPerMinute:     defaultRequestsPerMinute,
			Burst:                 defaultBurst,
			BreakerMaxFailures:    defaultBreakerMaxFailures,
			BreakerTimeoutSeconds: defaultBreakerTimeoutSeconds,
		},
		Storage: StorageConfig{
			Backend: StorageSQLite,
			// DatabasePath and DocumentsDir are resolved in Load()
		},
		Permissions: PermissionsConfig{
			Backend: PermissionsAuto,
			AppID:   defaultAppID,
		},
		Camera: CameraConfig{
			Device: defaultCameraDevice,
		},
		Output: OutputConfig{
			Dir: pathOrEmpty(GetOutputDir),
		},
		Logging: LoggingConfig{
			Level:         "info",
			Format:        "console",
			LogDir:        pathOrEmpty(GetLogDir),
			EnableFileLog: true,
			MaxSizeMB:     defaultLogMaxSizeMB,
			MaxBackups:    defaultLogMaxBackups,
			MaxAgeDays:    defaultLogMaxAgeDays,
			Compress:      true,
		},
		Appearance: AppearanceConfig{
			Palette: ColorPalette{
				Accent:  "#7aa2f7",
				Text:    "#c0caf5",
				Muted:   "#565f89",
				Border:  "#3b4261",
				Success: "#9ece6a",
				Warning: "#e0af68",
				Error:   "#f7768e",
			},
		},
	}
}
