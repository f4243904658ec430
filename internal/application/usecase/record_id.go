package usecase

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// recordIDs generates lexically sortable record identifiers. IDs generated
// within the same millisecond stay ordered.
type recordIDs struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newRecordIDs() *recordIDs {
	return &recordIDs{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0), //nolint:gosec // IDs, not secrets
	}
}

func (g *recordIDs) next(t time.Time) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t), g.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
