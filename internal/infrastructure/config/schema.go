package config

// Config represents the complete configuration for retouch.
type Config struct {
	// Backend is the image-transformation service.
	Backend BackendConfig `mapstructure:"backend" toml:"backend" json:"backend"`
	// Storage selects where the prompt history lives.
	Storage StorageConfig `mapstructure:"storage" toml:"storage" json:"storage"`
	// Permissions selects the OS authorization layer.
	Permissions PermissionsConfig `mapstructure:"permissions" toml:"permissions" json:"permissions"`
	Camera      CameraConfig      `mapstructure:"camera" toml:"camera" json:"camera"`
	Output      OutputConfig      `mapstructure:"output" toml:"output" json:"output"`
	Logging     LoggingConfig     `mapstructure:"logging" toml:"logging" json:"logging"`
	Appearance  AppearanceConfig  `mapstructure:"appearance" toml:"appearance" json:"appearance"`
}

// BackendConfig holds the transformation service endpoint and client limits.
type BackendConfig struct {
	// URL is the service base URL. Requests go to {url}/v1/transform.
	URL string `mapstructure:"url" toml:"url" json:"url"`
	// APIKey is sent as a bearer token. Prefer RETOUCH_API_KEY over storing it here.
	APIKey string `mapstructure:"api_key" toml:"api_key" json:"api_key,omitempty"`
	// TimeoutSeconds bounds a single request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" toml:"timeout_seconds" json:"timeout_seconds" jsonschema:"minimum=1,maximum=600"`
	// RequestsPerMinute caps the request rate. 0 disables the limiter.
	RequestsPerMinute int `mapstructure:"requests_per_minute" toml:"requests_per_minute" json:"requests_per_minute" jsonschema:"minimum=0"`
	// Burst is the limiter bucket size.
	Burst int `mapstructure:"burst" toml:"burst" json:"burst" jsonschema:"minimum=1"`
	// BreakerMaxFailures is the number of consecutive failures that opens the circuit.
	BreakerMaxFailures int `mapstructure:"breaker_max_failures" toml:"breaker_max_failures" json:"breaker_max_failures" jsonschema:"minimum=1"`
	// BreakerTimeoutSeconds is how long the circuit stays open.
	BreakerTimeoutSeconds int `mapstructure:"breaker_timeout_seconds" toml:"breaker_timeout_seconds" json:"breaker_timeout_seconds" jsonschema:"minimum=1"`
}

// StorageBackend selects the document store implementation.
type StorageBackend string

const (
	StorageSQLite StorageBackend = "sqlite"
	StorageFile   StorageBackend = "file"
)

// StorageConfig controls where documents are persisted.
type StorageConfig struct {
	Backend StorageBackend `mapstructure:"backend" toml:"backend" json:"backend" jsonschema:"enum=sqlite,enum=file"`
	// DatabasePath is the SQLite file. Defaults to $XDG_DATA_HOME/retouch/retouch.sqlite.
	DatabasePath string `mapstructure:"database_path" toml:"database_path" json:"database_path"`
	// DocumentsDir holds one JSON file per document for the file backend.
	DocumentsDir string `mapstructure:"documents_dir" toml:"documents_dir" json:"documents_dir"`
}

// PermissionsBackend selects the OS authorization layer.
type PermissionsBackend string

const (
	// PermissionsAuto uses the desktop portal when reachable, local otherwise.
	PermissionsAuto   PermissionsBackend = "auto"
	PermissionsPortal PermissionsBackend = "portal"
	PermissionsLocal  PermissionsBackend = "local"
)

// PermissionsConfig controls how camera, photo library and notification
// access is authorized.
type PermissionsConfig struct {
	Backend PermissionsBackend `mapstructure:"backend" toml:"backend" json:"backend" jsonschema:"enum=auto,enum=portal,enum=local"`
	// AppID is the application id the portal permission store is keyed by.
	AppID string `mapstructure:"app_id" toml:"app_id" json:"app_id"`
}

// CameraConfig controls still capture.
type CameraConfig struct {
	// Device is the V4L2 device node.
	Device string `mapstructure:"device" toml:"device" json:"device"`
	// FFmpegPath overrides the ffmpeg binary lookup.
	FFmpegPath string `mapstructure:"ffmpeg_path" toml:"ffmpeg_path" json:"ffmpeg_path"`
}

// OutputConfig controls where transformed images are written.
type OutputConfig struct {
	Dir string `mapstructure:"dir" toml:"dir" json:"dir"`
}

// LoggingConfig holds logging preferences.
type LoggingConfig struct {
	Level         string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format        string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir"`
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
	MaxAgeDays    int    `mapstructure:"max_age_days" toml:"max_age_days" json:"max_age_days" jsonschema:"minimum=0"`
	Compress      bool   `mapstructure:"compress" toml:"compress" json:"compress"`
}

// AppearanceConfig holds terminal colors.
type AppearanceConfig struct {
	Palette ColorPalette `mapstructure:"palette" toml:"palette" json:"palette"`
}

// ColorPalette holds hex colors used by the TUI.
type ColorPalette struct {
	Accent  string `mapstructure:"accent" toml:"accent" json:"accent"`
	Text    string `mapstructure:"text" toml:"text" json:"text"`
	Muted   string `mapstructure:"muted" toml:"muted" json:"muted"`
	Border  string `mapstructure:"border" toml:"border" json:"border"`
	Success string `mapstructure:"success" toml:"success" json:"success"`
	Warning string `mapstructure:"warning" toml:"warning" json:"warning"`
	Error   string `mapstructure:"error" toml:"error" json:"error"`
}
