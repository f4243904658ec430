package file_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/retouch/internal/infrastructure/persistence/file"
	"github.com/bnema/retouch/internal/logging"
)

func testCtx() context.Context {
	return logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console"))
}

func TestDocumentStore_ReadMissing(t *testing.T) {
	store, err := file.NewDocumentStore(afero.NewMemMapFs(), "/data/documents")
	require.NoError(t, err)

	data, ok, err := store.Read(testCtx(), "prompt_history")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestDocumentStore_WriteReplaces(t *testing.T) {
	ctx := testCtx()
	fs := afero.NewMemMapFs()
	store, err := file.NewDocumentStore(fs, "/data/documents")
	require.NoError(t, err)

	require.NoError(t, store.Write(ctx, "prompt_history", []byte(`{"version":"1.0","items":[]}`)))
	require.NoError(t, store.Write(ctx, "prompt_history", []byte(`{"version":"1.0","items":[{"id":"x"}]}`)))

	data, ok, err := store.Read(ctx, "prompt_history")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"version":"1.0","items":[{"id":"x"}]}`, string(data))

	entries, err := afero.ReadDir(fs, "/data/documents")
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "prompt_history.json", entries[0].Name())

	onDisk, err := afero.ReadFile(fs, filepath.Join("/data/documents", "prompt_history.json"))
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)
}

func TestDocumentStore_RejectsPathKeys(t *testing.T) {
	ctx := testCtx()
	store, err := file.NewDocumentStore(afero.NewMemMapFs(), "/data/documents")
	require.NoError(t, err)

	for _, key := range []string{"", "..", "../escape", `a\b`} {
		assert.Error(t, store.Write(ctx, key, []byte("x")), key)
		_, _, err := store.Read(ctx, key)
		assert.Error(t, err, key)
	}
}

func TestNewDocumentStore_ReadOnlyFs(t *testing.T) {
	_, err := file.NewDocumentStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/data/documents")
	require.Error(t, err)
}

func TestNewDocumentStore_EmptyDir(t *testing.T) {
	_, err := file.NewDocumentStore(afero.NewMemMapFs(), "")
	require.Error(t, err)
}
