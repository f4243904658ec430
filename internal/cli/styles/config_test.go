package styles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/retouch/internal/cli/styles"
	"github.com/bnema/retouch/internal/domain/build"
	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/bnema/retouch/internal/infrastructure/config"
)

func TestConfigSchemaRenderer_Render(t *testing.T) {
	theme := styles.NewTheme(config.DefaultConfig())
	r := styles.NewConfigSchemaRenderer(theme)

	keys := []entity.ConfigKeyInfo{
		{Key: "backend.url", Type: "string", Default: "http://127.0.0.1:8080", Description: "Base URL", Section: "Backend"},
		{Key: "storage.backend", Type: "string", Default: "sqlite", Values: []string{"sqlite", "file"}, Section: "Storage"},
	}

	out := r.Render("/tmp/retouch/config.toml", keys, map[string]string{
		"backend.url":     "https://api.example.com",
		"storage.backend": "sqlite",
	})
	assert.Contains(t, out, "config.toml")
	assert.Contains(t, out, "backend.url")
	assert.Contains(t, out, "https://api.example.com")
	assert.Contains(t, out, "Values: sqlite, file")

	js, err := r.RenderJSON(keys)
	require.NoError(t, err)
	assert.Contains(t, js, `"key": "storage.backend"`)
}

func TestNewTheme_FillsMissingColors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Appearance.Palette.Accent = ""

	theme := styles.NewTheme(cfg)
	assert.NotEmpty(t, string(theme.Accent))
}

func TestChoiceModel(t *testing.T) {
	theme := styles.NewTheme(nil)

	m := styles.NewChoice(theme, "Photo library", "Allow access?", "Allow", "Limited", "Don't allow")
	assert.Equal(t, -1, m.Choice())

	m.Selected = 1
	m.Chosen = true
	assert.True(t, m.Done())
	assert.Equal(t, 1, m.Choice())
	assert.Contains(t, m.View(), "Allow access?")

	c := styles.NewConfirm(theme, "Continue?")
	assert.False(t, c.Result())
	c.Selected = 1
	c.Chosen = true
	assert.True(t, c.Result())

	c.Canceled = true
	assert.False(t, c.Result())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", styles.Truncate("abc", 5))
	assert.Equal(t, "abcd…", styles.Truncate("abcdefgh", 5))
	assert.Equal(t, "éé…", styles.Truncate("éééé", 3))
}

func TestAboutRenderer(t *testing.T) {
	r := styles.NewAboutRenderer(styles.NewTheme(config.DefaultConfig()))

	out := r.Render(build.Info{Version: "v1.2.0", GoVersion: "go1.25.3"})
	assert.Contains(t, out, "v1.2.0")
	assert.Contains(t, out, "go1.25.3")
	assert.Contains(t, out, "unknown", "missing commit is shown as unknown")
	assert.Contains(t, out, build.RepoURL())

	assert.Contains(t, r.Render(build.Info{}), "dev")
}
