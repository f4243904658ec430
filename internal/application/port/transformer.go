package port

import "context"

// TransformRequest is one image transformation submitted to the backend.
type TransformRequest struct {
	// RecordID is the prompt record the request belongs to.
	RecordID string
	// ImageRef is a local path, file:// URI or http(s) URL. May be empty for
	// text-only generation.
	ImageRef string
	Prompt   string
}

// TransformResult describes the image returned by the backend.
type TransformResult struct {
	// RemoteID is the backend's identifier for the job.
	RemoteID string
	// OutputPath is where the resulting image was written.
	OutputPath string
	MimeType   string
}

// ImageTransformer is the remote image-transformation service.
type ImageTransformer interface {
	Transform(ctx context.Context, req TransformRequest) (*TransformResult, error)
}
