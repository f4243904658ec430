package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/retouch/internal/application/port"
	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/bnema/retouch/internal/logging"
)

const notificationBodyMax = 80

// SubmitResult is the outcome of one transformation request.
type SubmitResult struct {
	Record    *entity.PromptRecord
	Transform *port.TransformResult
	// HistoryErr is set when the prompt could not be recorded. The
	// transformation still ran.
	HistoryErr error
	Notified   bool
}

// SubmitPromptUseCase records a prompt, sends it to the transformation
// backend and posts a completion notification when allowed.
type SubmitPromptUseCase struct {
	prompts     *ManagePromptsUseCase
	gate        *PermissionGateUseCase
	transformer port.ImageTransformer
	notifier    port.Notifier
	ids         *recordIDs
}

// NewSubmitPromptUseCase creates a new submit use case. notifier may be nil.
func NewSubmitPromptUseCase(
	prompts *ManagePromptsUseCase,
	gate *PermissionGateUseCase,
	transformer port.ImageTransformer,
	notifier port.Notifier,
) *SubmitPromptUseCase {
	return &SubmitPromptUseCase{
		prompts:     prompts,
		gate:        gate,
		transformer: transformer,
		notifier:    notifier,
		ids:         newRecordIDs(),
	}
}

// Submit sends prompt for imageRef. A blank prompt is rejected before any
// side effect.
func (uc *SubmitPromptUseCase) Submit(ctx context.Context, imageRef, prompt string) (*SubmitResult, error) {
	log := logging.FromContext(ctx).With().Str("component", "submit").Logger()

	result := &SubmitResult{}

	record, err := uc.prompts.Append(ctx, imageRef, prompt)
	switch {
	case err == nil:
		result.Record = record
	case entity.IsValidationError(err) && !entity.IsFormatError(err):
		return nil, err
	default:
		log.Warn().Err(err).Msg("prompt not recorded, continuing")
		result.HistoryErr = err
	}

	recordID := ""
	if result.Record != nil {
		recordID = result.Record.ID
	} else if recordID, err = uc.ids.next(time.Now()); err != nil {
		return nil, fmt.Errorf("generate record id: %w", err)
	}

	ctx = logging.WithRecordID(ctx, recordID)
	transformed, err := uc.transformer.Transform(ctx, port.TransformRequest{
		RecordID: recordID,
		ImageRef: imageRef,
		Prompt:   prompt,
	})
	if err != nil {
		result.Notified = uc.notify(ctx, "Transformation failed", err.Error(), port.NotificationError)
		return result, fmt.Errorf("transform image: %w", err)
	}
	result.Transform = transformed

	log.Info().
		Str("record_id", recordID).
		Str("output", transformed.OutputPath).
		Msg("transformation complete")

	result.Notified = uc.notify(ctx, "Image ready", summarize(prompt), port.NotificationSuccess)
	return result, nil
}

// notify posts a notification only when notifications are already
// authorized. It never prompts.
func (uc *SubmitPromptUseCase) notify(ctx context.Context, title, body string, notifType port.NotificationType) bool {
	if uc.notifier == nil || uc.gate == nil {
		return false
	}
	if uc.gate.QueryStatus(ctx, entity.ResourceNotifications) != entity.StatusAuthorized {
		return false
	}
	if err := uc.notifier.Notify(ctx, title, body, notifType); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to post notification")
		return false
	}
	return true
}

func summarize(s string) string {
	r := []rune(s)
	if len(r) <= notificationBodyMax {
		return s
	}
	return string(r[:notificationBodyMax-1]) + "…"
}
