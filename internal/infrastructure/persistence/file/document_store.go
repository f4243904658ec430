// Package file stores documents as JSON files in a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/bnema/retouch/internal/domain/repository"
	"github.com/bnema/retouch/internal/logging"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// DocumentStore implements repository.DocumentRepository with one file per
// key. Writes go to a temp file that is renamed over the target.
type DocumentStore struct {
	fs  afero.Fs
	dir string
	mu  sync.Mutex
}

var _ repository.DocumentRepository = (*DocumentStore)(nil)

// NewDocumentStore creates a store rooted at dir, creating it if needed.
func NewDocumentStore(fs afero.Fs, dir string) (*DocumentStore, error) {
	if dir == "" {
		return nil, errors.New("documents directory cannot be empty")
	}
	if err := fs.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create documents directory: %w", err)
	}
	return &DocumentStore{fs: fs, dir: dir}, nil
}

func (s *DocumentStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid document key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Read returns the document bytes, or false when the file does not exist.
func (s *DocumentStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read document %s: %w", key, err)
	}

	logging.FromContext(ctx).Debug().Str("path", path).Int("bytes", len(data)).Msg("document read")
	return data, true, nil
}

// Write replaces the document atomically.
func (s *DocumentStore) Write(ctx context.Context, key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := afero.TempFile(s.fs, s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("write document %s: %w", key, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = s.fs.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write document %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync document %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("write document %s: %w", key, err)
	}
	if err := s.fs.Chmod(tmpName, filePerm); err != nil {
		cleanup()
		return fmt.Errorf("write document %s: %w", key, err)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replace document %s: %w", key, err)
	}

	logging.FromContext(ctx).Debug().Str("path", path).Int("bytes", len(data)).Msg("document written")
	return nil
}
