package port

import "context"

// CameraCapturer grabs a single still frame from a camera device.
// Callers must have passed the camera permission gate first.
type CameraCapturer interface {
	// Capture writes a frame to disk and returns its path.
	Capture(ctx context.Context) (string, error)
}
