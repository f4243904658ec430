package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/retouch/internal/application/port"
	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/bnema/retouch/internal/logging"
)

// MaxImageBytes is the largest local image accepted for upload.
const MaxImageBytes int64 = 20 * 1024 * 1024

// AttachOutcome tells the UI what happened to an attach attempt.
// ImagePath is set only when Action is Proceed.
type AttachOutcome struct {
	Action    entity.Action
	ImagePath string
}

// AttachImageUseCase picks or captures the image a prompt applies to. Both
// paths go through the permission gate first.
type AttachImageUseCase struct {
	gate   *PermissionGateUseCase
	fs     port.FileSystem
	camera port.CameraCapturer
}

// NewAttachImageUseCase creates a new attach use case. camera may be nil when
// no capture device is configured.
func NewAttachImageUseCase(
	gate *PermissionGateUseCase,
	fs port.FileSystem,
	camera port.CameraCapturer,
) *AttachImageUseCase {
	return &AttachImageUseCase{gate: gate, fs: fs, camera: camera}
}

// AttachFromLibrary gates the photo library and then checks that path is a
// readable image file. Remote URLs skip the file checks.
func (uc *AttachImageUseCase) AttachFromLibrary(ctx context.Context, path string) (*AttachOutcome, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, &entity.ValidationError{Field: "image", Reason: "path must not be empty"}
	}

	action := uc.gate.Gate(ctx, entity.ResourcePhotoLibrary)
	if action != entity.ActionProceed {
		return &AttachOutcome{Action: action}, nil
	}

	if isRemoteRef(path) {
		return &AttachOutcome{Action: action, ImagePath: path}, nil
	}

	local := strings.TrimPrefix(path, "file://")
	exists, err := uc.fs.Exists(ctx, local)
	if err != nil {
		return nil, fmt.Errorf("check image: %w", err)
	}
	if !exists {
		return nil, &entity.ValidationError{Field: "image", Reason: fmt.Sprintf("%s does not exist", local)}
	}

	isDir, err := uc.fs.IsDirectory(ctx, local)
	if err != nil {
		return nil, fmt.Errorf("check image: %w", err)
	}
	if isDir {
		return nil, &entity.ValidationError{Field: "image", Reason: fmt.Sprintf("%s is a directory", local)}
	}

	size, err := uc.fs.GetSize(ctx, local)
	if err != nil {
		return nil, fmt.Errorf("check image: %w", err)
	}
	if size > MaxImageBytes {
		return nil, &entity.ValidationError{
			Field:  "image",
			Reason: fmt.Sprintf("%d bytes exceeds the %d byte limit", size, MaxImageBytes),
		}
	}

	logging.FromContext(ctx).Debug().Str("path", local).Int64("size", size).Msg("image attached")
	return &AttachOutcome{Action: action, ImagePath: local}, nil
}

// CaptureFromCamera gates the camera and then grabs one frame.
func (uc *AttachImageUseCase) CaptureFromCamera(ctx context.Context) (*AttachOutcome, error) {
	action := uc.gate.Gate(ctx, entity.ResourceCamera)
	if action != entity.ActionProceed {
		return &AttachOutcome{Action: action}, nil
	}
	if uc.camera == nil {
		return nil, fmt.Errorf("camera capture: %w", entity.ErrCapabilityUnavailable)
	}

	path, err := uc.camera.Capture(ctx)
	if err != nil {
		return nil, fmt.Errorf("camera capture: %w", err)
	}

	logging.FromContext(ctx).Info().Str("path", path).Msg("frame captured")
	return &AttachOutcome{Action: action, ImagePath: path}, nil
}

func isRemoteRef(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
