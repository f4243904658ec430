package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPromptRecord_RejectsBlankPrompt(t *testing.T) {
	for _, prompt := range []string{"", "   ", "\n\t"} {
		record, err := entity.NewPromptRecord("01J", "file:///a.jpg", prompt, time.Now())
		assert.Nil(t, record)
		require.Error(t, err)
		assert.True(t, entity.IsValidationError(err))
	}
}

func TestNewPromptRecord_AllowsEmptyImage(t *testing.T) {
	record, err := entity.NewPromptRecord("01J", "", "a prompt", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "", record.ImagePath)
	assert.Equal(t, "a prompt", record.Prompt)
}

func TestPromptRecordCollection_RemoveKeepsOrder(t *testing.T) {
	c := entity.NewPromptRecordCollection()
	c.Append(entity.PromptRecord{ID: "a", Prompt: "one"})
	c.Append(entity.PromptRecord{ID: "b", Prompt: "two"})
	c.Append(entity.PromptRecord{ID: "c", Prompt: "three"})

	assert.True(t, c.Remove("b"))
	assert.False(t, c.Remove("missing"))
	require.Equal(t, 2, c.Len())
	assert.Equal(t, "a", c.Items[0].ID)
	assert.Equal(t, "c", c.Items[1].ID)
}

func TestPromptRecordCollection_CloneIsIndependent(t *testing.T) {
	c := entity.NewPromptRecordCollection()
	c.Append(entity.PromptRecord{ID: "a", Prompt: "one"})

	snapshot := c.Clone()
	c.Append(entity.PromptRecord{ID: "b", Prompt: "two"})
	snapshot.Items[0].Prompt = "mutated"

	assert.Equal(t, 1, snapshot.Len())
	assert.Equal(t, "one", c.Items[0].Prompt)
}

func TestPromptHistory_EncodeDecode(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	c := entity.NewPromptRecordCollection()
	c.Append(entity.PromptRecord{ID: "01A", ImagePath: "file:///a.jpg", Prompt: "make it night", Timestamp: ts})
	c.Append(entity.PromptRecord{ID: "01B", ImagePath: "/tmp/b.png", Prompt: "add rain", Timestamp: ts.Add(time.Second)})

	data, err := entity.EncodePromptHistory(c)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "1.0"`)
	assert.Contains(t, string(data), `"imagePath": "file:///a.jpg"`)

	decoded, err := entity.DecodePromptHistory(data)
	require.NoError(t, err)
	assert.Equal(t, c, decoded)
}

func TestDecodePromptHistory_AcceptsEpochTimestamp(t *testing.T) {
	doc := `{"version":"1.0","items":[{"id":"x","imagePath":"","prompt":"p","timestamp":1700000000}]}`

	c, err := entity.DecodePromptHistory([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), c.Items[0].Timestamp)
}

func TestDecodePromptHistory_FailsClosed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown version", `{"version":"9.9","items":[{"id":"x","imagePath":"","prompt":"p","timestamp":"2026-01-01T00:00:00Z"}]}`},
		{"missing version", `{"items":[]}`},
		{"not json", `{{{`},
		{"bad timestamp", `{"version":"1.0","items":[{"id":"x","prompt":"p","timestamp":"yesterday"}]}`},
		{"missing id", `{"version":"1.0","items":[{"prompt":"p","timestamp":"2026-01-01T00:00:00Z"}]}`},
		{"blank prompt", `{"version":"1.0","items":[{"id":"x","prompt":" ","timestamp":"2026-01-01T00:00:00Z"}]}`},
		{"epoch past year 9999", `{"version":"1.0","items":[{"id":"x","prompt":"p","timestamp":1e15}]}`},
		{"millisecond epoch", `{"version":"1.0","items":[{"id":"x","prompt":"p","timestamp":1767225600000}]}`},
		{"epoch before year 0", `{"version":"1.0","items":[{"id":"x","prompt":"p","timestamp":-1e12}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := entity.DecodePromptHistory([]byte(tt.doc))
			assert.Nil(t, c)
			require.Error(t, err)
			assert.True(t, entity.IsFormatError(err))
		})
	}
}

func TestDecodePromptHistory_UnknownVersionIsReported(t *testing.T) {
	_, err := entity.DecodePromptHistory([]byte(`{"version":"9.9","items":[]}`))

	var formatErr *entity.FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "9.9", formatErr.Version)
}

func TestDecodePromptHistory_EpochSecondsRoundTrip(t *testing.T) {
	c, err := entity.DecodePromptHistory([]byte(`{"version":"1.0","items":[{"id":"a","imagePath":"","prompt":"p","timestamp":1767225600}]}`))
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), c.Items[0].Timestamp)

	data, err := entity.EncodePromptHistory(c)
	require.NoError(t, err)
	again, err := entity.DecodePromptHistory(data)
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestEncodePromptHistory_RejectsUnrepresentableTimestamp(t *testing.T) {
	c := entity.NewPromptRecordCollection()
	c.Items = append(c.Items, entity.PromptRecord{
		ID:        "a",
		Prompt:    "p",
		Timestamp: time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC),
	})

	data, err := entity.EncodePromptHistory(c)
	assert.Nil(t, data)
	assert.True(t, entity.IsFormatError(err))
}
