package styles

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/retouch/internal/domain/entity"
)

// sectionOrder matches the order of the config file.
var sectionOrder = []string{
	"Backend",
	"Storage",
	"Permissions",
	"Camera",
	"Output",
	"Logging",
	"Appearance",
}

// ConfigSchemaRenderer renders configuration keys, optionally with the
// current values.
type ConfigSchemaRenderer struct {
	theme *Theme
}

// NewConfigSchemaRenderer creates a new ConfigSchemaRenderer.
func NewConfigSchemaRenderer(theme *Theme) *ConfigSchemaRenderer {
	return &ConfigSchemaRenderer{theme: theme}
}

// Render renders the keys grouped by section. When values is non-nil the
// current value is shown next to the default.
func (r *ConfigSchemaRenderer) Render(path string, keys []entity.ConfigKeyInfo, values map[string]string) string {
	if len(keys) == 0 {
		return r.theme.Subtle.Render("No configuration keys found")
	}

	sections := make(map[string][]entity.ConfigKeyInfo)
	for _, key := range keys {
		sections[key.Section] = append(sections[key.Section], key)
	}

	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	parts := []string{
		fmt.Sprintf("%s %s", iconStyle.Render(IconConfig), r.theme.Title.Render("Configuration")),
	}
	if path != "" {
		parts = append(parts, r.theme.Subtle.Render(path))
	}
	parts = append(parts, "")

	for _, section := range sectionOrder {
		if sectionKeys, ok := sections[section]; ok {
			parts = append(parts, r.renderSection(section, sectionKeys, values), "")
		}
	}
	return strings.Join(parts, "\n")
}

// RenderJSON renders the keys as JSON.
func (*ConfigSchemaRenderer) RenderJSON(keys []entity.ConfigKeyInfo) (string, error) {
	data, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}
	return string(data), nil
}

func (r *ConfigSchemaRenderer) renderSection(name string, keys []entity.ConfigKeyInfo, values map[string]string) string {
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, r.renderKey(key, values))
	}
	content := r.theme.Highlight.Render(name) + "\n" + strings.Join(lines, "\n")
	return r.theme.Box.PaddingTop(0).Render(content)
}

func (r *ConfigSchemaRenderer) renderKey(key entity.ConfigKeyInfo, values map[string]string) string {
	keyStyle := r.theme.Normal.Bold(true)
	defaultStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)

	line := fmt.Sprintf("%s  %s  %s",
		keyStyle.Render(key.Key),
		r.theme.Subtle.Render(key.Type),
		defaultStyle.Render(key.Default),
	)
	if values != nil {
		current := values[key.Key]
		if current != key.Default {
			line += "  " + r.theme.WarningStyle.Render("= "+current)
		}
	}

	result := line + "\n  " + r.theme.Subtle.Render(key.Description)
	switch {
	case len(key.Values) > 0:
		result += "\n  " + r.theme.Normal.Render("Values: "+strings.Join(key.Values, ", "))
	case key.Range != "":
		result += "\n  " + r.theme.Normal.Render("Range: "+key.Range)
	}
	return result
}
