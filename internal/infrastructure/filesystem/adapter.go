// Package filesystem implements port.FileSystem over afero.
package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/bnema/retouch/internal/application/port"
)

// Adapter implements port.FileSystem. Paths starting with ~/ are expanded
// against home.
type Adapter struct {
	fs   afero.Fs
	home string
}

// New creates a filesystem adapter.
func New(fs afero.Fs, home string) *Adapter {
	return &Adapter{fs: fs, home: home}
}

func (a *Adapter) resolve(path string) string {
	if a.home != "" && (path == "~" || strings.HasPrefix(path, "~/")) {
		return filepath.Join(a.home, strings.TrimPrefix(path, "~"))
	}
	return path
}

func (a *Adapter) Exists(_ context.Context, path string) (bool, error) {
	_, err := a.fs.Stat(a.resolve(path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (a *Adapter) IsDirectory(_ context.Context, path string) (bool, error) {
	info, err := a.fs.Stat(a.resolve(path))
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// GetSize returns the file size, or the summed size of regular files for a
// directory. Missing paths report 0.
func (a *Adapter) GetSize(_ context.Context, path string) (int64, error) {
	path = a.resolve(path)
	info, err := a.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	if !info.IsDir() {
		return info.Size(), nil
	}

	var size int64
	err = afero.Walk(a.fs, path, func(_ string, fi fs.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !fi.IsDir() {
			size += fi.Size()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return size, nil
}

// Resolve returns path with ~ expanded.
func (a *Adapter) Resolve(path string) string {
	return a.resolve(path)
}

var _ port.FileSystem = (*Adapter)(nil)
