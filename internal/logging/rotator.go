package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

const (
	logFilePerm       = 0o600
	defaultMaxSizeMB  = 10
	backupTimeFormat  = "2006-01-02-15-04-05.000"
	bytesPerMegabyte  = 1024 * 1024
	hoursPerRetention = 24
)

// RotateOptions bounds the size and number of log files kept on disk.
type RotateOptions struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// LogRotator is an io.Writer that rotates its file once it exceeds MaxSizeMB.
type LogRotator struct {
	mu          sync.Mutex
	fs          afero.Fs
	path        string
	maxSize     int64
	maxAge      time.Duration
	maxBackups  int
	compress    bool
	now         func() time.Time
	currentFile afero.File
	currentSize int64
}

// NewLogRotator opens (or creates) the log file at path.
func NewLogRotator(fs afero.Fs, path string, opts RotateOptions) (*LogRotator, error) {
	maxSizeMB := opts.MaxSizeMB
	if maxSizeMB <= 0 {
		maxSizeMB = defaultMaxSizeMB
	}

	r := &LogRotator{
		fs:         fs,
		path:       path,
		maxSize:    int64(maxSizeMB) * bytesPerMegabyte,
		maxAge:     time.Duration(opts.MaxAgeDays) * hoursPerRetention * time.Hour,
		maxBackups: opts.MaxBackups,
		compress:   opts.Compress,
		now:        time.Now,
	}

	if err := r.openCurrentFile(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *LogRotator) openCurrentFile() error {
	if info, err := r.fs.Stat(r.path); err == nil {
		r.currentSize = info.Size()
	} else {
		r.currentSize = 0
	}

	file, err := r.fs.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	r.currentFile = file
	return nil
}

func (r *LogRotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		if err := r.openCurrentFile(); err != nil {
			return 0, err
		}
	}

	if r.currentSize > 0 && r.currentSize+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.currentFile.Write(p)
	r.currentSize += int64(n)
	return n, err
}

func (r *LogRotator) rotate() error {
	if err := r.currentFile.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	r.currentFile = nil

	backupPath := r.path + "." + r.now().Format(backupTimeFormat)
	if err := r.fs.Rename(r.path, backupPath); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	if r.compress {
		// A failed compression keeps the plain backup.
		if err := r.compressFile(backupPath); err == nil {
			_ = r.fs.Remove(backupPath)
		}
	}

	r.cleanup()
	return r.openCurrentFile()
}

func (r *LogRotator) compressFile(path string) (err error) {
	in, err := r.fs.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := r.fs.Create(path + ".gz")
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	gz := gzip.NewWriter(out)
	if _, err = io.Copy(gz, in); err != nil {
		_ = gz.Close()
		return err
	}
	return gz.Close()
}

// cleanup removes backups older than maxAge, then the oldest backups beyond
// maxBackups.
func (r *LogRotator) cleanup() {
	dir := filepath.Dir(r.path)
	prefix := filepath.Base(r.path) + "."

	entries, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		return
	}

	now := r.now()
	var backups []os.FileInfo
	for _, info := range entries {
		if info.IsDir() || !strings.HasPrefix(info.Name(), prefix) {
			continue
		}
		if r.maxAge > 0 && now.Sub(info.ModTime()) > r.maxAge {
			_ = r.fs.Remove(filepath.Join(dir, info.Name()))
			continue
		}
		backups = append(backups, info)
	}

	if r.maxBackups <= 0 || len(backups) <= r.maxBackups {
		return
	}

	// Backup names embed the rotation time, so name order is age order.
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Name() < backups[j].Name()
	})
	for _, info := range backups[:len(backups)-r.maxBackups] {
		_ = r.fs.Remove(filepath.Join(dir, info.Name()))
	}
}

// Close closes the current log file.
func (r *LogRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		return nil
	}
	err := r.currentFile.Close()
	r.currentFile = nil
	return err
}
