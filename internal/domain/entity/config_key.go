package entity

// ConfigKeyInfo describes one configuration key for `retouch config show`
// and the settings screen.
type ConfigKeyInfo struct {
	// Key is the dotted path, e.g. "backend.url".
	Key string `json:"key"`

	// Type is the Go type name: string, int or bool.
	Type string `json:"type"`

	Default     string `json:"default"`
	Description string `json:"description"`

	// Values lists the accepted values of a string enum.
	Values []string `json:"values,omitempty"`

	// Range describes numeric bounds, e.g. "1-600".
	Range string `json:"range,omitempty"`

	// Section groups related keys for display.
	Section string `json:"section"`
}
