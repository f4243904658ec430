package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestMigrator_NoFileNeedsNothing(t *testing.T) {
	m, err := NewMigrator(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	changes, err := m.DetectChanges()
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestMigrator_DetectChanges(t *testing.T) {
	path := writeConfigFile(t, `
[backend]
url = "https://api.example.com"
timeout = 30

[storage]
backend = "file"
legacy_flag = true
`)
	m, err := NewMigrator(path)
	require.NoError(t, err)

	changes, err := m.DetectChanges()
	require.NoError(t, err)

	byKey := make(map[string]KeyChange)
	for _, c := range changes {
		byKey[changeKey(c)] = c
	}

	renamed, ok := byKey["backend.timeout_seconds"]
	require.True(t, ok)
	assert.Equal(t, KeyChangeRenamed, renamed.Type)
	assert.Equal(t, "backend.timeout", renamed.OldKey)
	assert.Equal(t, "30", renamed.OldValue)

	removed, ok := byKey["storage.legacy_flag"]
	require.True(t, ok)
	assert.Equal(t, KeyChangeRemoved, removed.Type)

	added, ok := byKey["logging.level"]
	require.True(t, ok)
	assert.Equal(t, KeyChangeAdded, added.Type)
	assert.Equal(t, `"info"`, added.NewValue)

	_, ok = byKey["backend.url"]
	assert.False(t, ok, "keys already present are not reported")

	diff := FormatChangesAsDiff(changes)
	assert.Contains(t, diff, "~ backend.timeout -> backend.timeout_seconds")
	assert.Contains(t, diff, "- storage.legacy_flag")
	assert.Contains(t, diff, "+ logging.level")
}

func TestMigrator_Migrate(t *testing.T) {
	path := writeConfigFile(t, `
[backend]
url = "https://api.example.com"
timeout = 45
`)
	m, err := NewMigrator(path)
	require.NoError(t, err)

	changes, err := m.Migrate()
	require.NoError(t, err)
	assert.NotEmpty(t, changes)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "https://api.example.com")
	assert.Contains(t, content, "timeout_seconds = 45")
	assert.Contains(t, content, "[logging]")

	again, err := m.DetectChanges()
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, `"x"`, formatValue("x"))
	assert.Equal(t, "3", formatValue(int64(3)))
	assert.Equal(t, `["a", "b"]`, formatValue([]any{"a", "b"}))
	assert.Equal(t, `""`, formatValue(nil))
}
