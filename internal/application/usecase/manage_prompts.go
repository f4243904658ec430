package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/bnema/retouch/internal/domain/repository"
	"github.com/bnema/retouch/internal/logging"
)

// PromptHistoryKey is the document key the prompt history is stored under.
const PromptHistoryKey = "prompt_history"

// ManagePromptsUseCase owns the prompt record collection. Every mutation is
// written to the document repository before it returns.
//
// Once a persisted document fails to decode, mutations are refused until
// Clear replaces it, so an unreadable history is never overwritten by a
// partial one.
type ManagePromptsUseCase struct {
	docs repository.DocumentRepository
	ids  *recordIDs
	now  func() time.Time

	mu     sync.Mutex
	cache  *entity.PromptRecordCollection
	broken error
}

// NewManagePromptsUseCase creates a new prompt store.
func NewManagePromptsUseCase(docs repository.DocumentRepository) *ManagePromptsUseCase {
	return &ManagePromptsUseCase{
		docs: docs,
		ids:  newRecordIDs(),
		now:  time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (uc *ManagePromptsUseCase) SetClock(now func() time.Time) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.now = now
}

// Append records a prompt for imageRef. A blank prompt is rejected with a
// ValidationError and the store is left unchanged.
func (uc *ManagePromptsUseCase) Append(ctx context.Context, imageRef, prompt string) (*entity.PromptRecord, error) {
	log := logging.FromContext(ctx).With().Str("component", "prompt-store").Logger()

	if err := entity.ValidatePrompt(prompt); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	ts := uc.now().UTC()
	if last := uc.cache.Last(); last != nil && ts.Before(last.Timestamp) {
		ts = last.Timestamp
	}

	id, err := uc.ids.next(ts)
	if err != nil {
		return nil, fmt.Errorf("generate record id: %w", err)
	}

	record, err := entity.NewPromptRecord(id, imageRef, prompt, ts)
	if err != nil {
		return nil, err
	}

	uc.cache.Append(*record)
	if err := uc.flushLocked(ctx, uc.cache); err != nil {
		uc.cache.Items = uc.cache.Items[:len(uc.cache.Items)-1]
		return nil, err
	}

	log.Debug().Str("record_id", record.ID).Int("count", uc.cache.Len()).Msg("prompt recorded")
	return record, nil
}

// LoadAll reads the persisted history and returns a snapshot. A missing
// document yields an empty collection.
func (uc *ManagePromptsUseCase) LoadAll(ctx context.Context) (*entity.PromptRecordCollection, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	collection, err := uc.readLocked(ctx)
	if err != nil {
		return nil, err
	}
	uc.cache = collection
	uc.broken = nil
	return collection.Clone(), nil
}

// Clear replaces the history with an empty collection. This cannot be undone.
func (uc *ManagePromptsUseCase) Clear(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	fresh := entity.NewPromptRecordCollection()
	if err := uc.flushLocked(ctx, fresh); err != nil {
		return err
	}
	uc.cache = fresh
	uc.broken = nil

	logging.FromContext(ctx).Info().Str("component", "prompt-store").Msg("prompt history cleared")
	return nil
}

// Delete removes a single record. Returns entity.ErrRecordNotFound for an
// unknown id.
func (uc *ManagePromptsUseCase) Delete(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	next := uc.cache.Clone()
	if !next.Remove(id) {
		return fmt.Errorf("%w: %s", entity.ErrRecordNotFound, id)
	}
	if err := uc.flushLocked(ctx, next); err != nil {
		return err
	}
	uc.cache = next

	logging.FromContext(ctx).Debug().
		Str("component", "prompt-store").
		Str("record_id", id).
		Msg("prompt record deleted")
	return nil
}

func (uc *ManagePromptsUseCase) ensureLoadedLocked(ctx context.Context) error {
	if uc.broken != nil {
		return uc.broken
	}
	if uc.cache != nil {
		return nil
	}

	collection, err := uc.readLocked(ctx)
	if err != nil {
		return err
	}
	uc.cache = collection
	return nil
}

func (uc *ManagePromptsUseCase) readLocked(ctx context.Context) (*entity.PromptRecordCollection, error) {
	data, ok, err := uc.docs.Read(ctx, PromptHistoryKey)
	if err != nil {
		return nil, fmt.Errorf("read prompt history: %w", err)
	}
	if !ok {
		return entity.NewPromptRecordCollection(), nil
	}

	collection, err := entity.DecodePromptHistory(data)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).
			Str("component", "prompt-store").
			Msg("persisted prompt history is unreadable")
		uc.broken = err
		return nil, err
	}
	return collection, nil
}

func (uc *ManagePromptsUseCase) flushLocked(ctx context.Context, collection *entity.PromptRecordCollection) error {
	data, err := entity.EncodePromptHistory(collection)
	if err != nil {
		return err
	}
	if err := uc.docs.Write(ctx, PromptHistoryKey, data); err != nil {
		return fmt.Errorf("write prompt history: %w", err)
	}
	return nil
}
