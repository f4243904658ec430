package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/retouch/internal/domain/entity"
)

func TestNewestFirst(t *testing.T) {
	now := time.Now()
	items := []entity.PromptRecord{
		{ID: "a", Timestamp: now.Add(-2 * time.Minute)},
		{ID: "b", Timestamp: now.Add(-time.Minute)},
		{ID: "c", Timestamp: now},
	}

	ids := func(rs []entity.PromptRecord) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}

	assert.Equal(t, []string{"c", "b", "a"}, ids(newestFirst(items, 0)))
	assert.Equal(t, []string{"c", "b"}, ids(newestFirst(items, 2)))
	assert.Equal(t, []string{"c", "b", "a"}, ids(newestFirst(items, 10)))
	assert.Empty(t, newestFirst(nil, 5))
}

func TestActionError(t *testing.T) {
	assert.NoError(t, actionError(entity.ResourceCamera, entity.ActionProceed))
	assert.ErrorContains(t, actionError(entity.ResourceCamera, entity.ActionRedirectToSettings), "permissions settings")
	assert.ErrorContains(t, actionError(entity.ResourcePhotoLibrary, entity.ActionNoOp), "not granted")
}
