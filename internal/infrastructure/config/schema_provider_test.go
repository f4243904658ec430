package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaProvider_KeysHaveValues(t *testing.T) {
	p := NewSchemaProvider()
	cfg := DefaultConfig()
	cfg.Backend.APIKey = "secret"

	values := p.Values(cfg)
	keys := p.GetSchema()
	require.NotEmpty(t, keys)

	seen := make(map[string]bool)
	for _, k := range keys {
		assert.False(t, seen[k.Key], "duplicate key %s", k.Key)
		seen[k.Key] = true
		_, ok := values[k.Key]
		assert.True(t, ok, "no value for %s", k.Key)
		assert.NotEmpty(t, k.Section)
	}
	assert.Equal(t, len(keys), len(values))
	assert.Equal(t, "********", values["backend.api_key"])
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "retouch configuration", doc["title"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "backend")
	assert.Contains(t, props, "permissions")
}
