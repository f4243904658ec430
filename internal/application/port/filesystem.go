package port

import "context"

// FileSystem provides the file checks the application layer needs before
// handing a picked image to the backend.
type FileSystem interface {
	Exists(ctx context.Context, path string) (bool, error)
	IsDirectory(ctx context.Context, path string) (bool, error)
	GetSize(ctx context.Context, path string) (int64, error)
}
