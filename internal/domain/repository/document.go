package repository

import "context"

// DocumentRepository stores opaque documents by key.
// Writes replace the whole document atomically: a reader never observes a
// partially written document.
type DocumentRepository interface {
	// Read returns the document bytes and true, or nil and false when absent.
	Read(ctx context.Context, key string) ([]byte, bool, error)

	// Write replaces the document stored under key.
	Write(ctx context.Context, key string, data []byte) error
}
