// Package desktop integrates retouch with the Linux desktop: the desktop
// entry portals use to identify the app, the system settings launcher and
// camera capture.
package desktop

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/bnema/retouch/internal/application/port"
	"github.com/bnema/retouch/internal/logging"
)

const (
	appName  = "retouch"
	filePerm = 0o644
	dirPerm  = 0o755
)

// desktopFileTemplate is the freedesktop.org desktop entry format.
// Placeholders: executable path.
const desktopFileTemplate = `[Desktop Entry]
Version=1.1
Type=Application
Name=Retouch
GenericName=Image Retouching
Comment=Transform images with a text prompt
Exec=%s chat
Icon=image-x-generic
Terminal=true
Categories=Graphics;Utility;
StartupNotify=false
X-GNOME-UsesNotifications=true
`

var _ port.DesktopIntegration = (*Entry)(nil)

// Entry installs the desktop entry that lets the notification and camera
// portals attribute requests to the app id.
type Entry struct {
	fs       afero.Fs
	appID    string
	dataHome string
	execPath func() (string, error)
	refresh  func(ctx context.Context, dir string) error
}

// NewEntry creates an Entry for appID writing under the XDG data home.
func NewEntry(appID string) (*Entry, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return &Entry{
		fs:       afero.NewOsFs(),
		appID:    appID,
		dataHome: dataHome,
		execPath: executablePath,
		refresh:  updateDesktopDatabase,
	}, nil
}

func (e *Entry) desktopFilePath() string {
	return filepath.Join(e.dataHome, "applications", e.appID+".desktop")
}

// GetStatus reports whether the desktop entry is installed.
func (e *Entry) GetStatus(ctx context.Context) (*port.DesktopIntegrationStatus, error) {
	status := &port.DesktopIntegrationStatus{DesktopFilePath: e.desktopFilePath()}

	installed, err := afero.Exists(e.fs, status.DesktopFilePath)
	if err != nil {
		return nil, fmt.Errorf("stat desktop file: %w", err)
	}
	status.DesktopFileInstalled = installed

	if path, err := e.execPath(); err == nil {
		status.ExecutablePath = path
	}

	logging.FromContext(ctx).Debug().
		Bool("desktop_installed", status.DesktopFileInstalled).
		Str("desktop_path", status.DesktopFilePath).
		Str("exec_path", status.ExecutablePath).
		Msg("desktop integration status")

	return status, nil
}

// InstallDesktopFile writes the desktop entry. Safe to call repeatedly.
func (e *Entry) InstallDesktopFile(ctx context.Context) (string, error) {
	log := logging.FromContext(ctx)

	execPath, err := e.execPath()
	if err != nil {
		return "", err
	}

	path := e.desktopFilePath()
	appDir := filepath.Dir(path)
	if err := e.fs.MkdirAll(appDir, dirPerm); err != nil {
		return "", fmt.Errorf("create applications dir: %w", err)
	}
	if err := afero.WriteFile(e.fs, path, []byte(fmt.Sprintf(desktopFileTemplate, execPath)), filePerm); err != nil {
		return "", fmt.Errorf("write desktop file: %w", err)
	}
	log.Info().Str("path", path).Msg("desktop file installed")

	if err := e.refresh(ctx, appDir); err != nil {
		log.Debug().Err(err).Msg("update-desktop-database failed (non-fatal)")
	}
	return path, nil
}

// RemoveDesktopFile deletes the desktop entry. Missing files are not an error.
func (e *Entry) RemoveDesktopFile(ctx context.Context) error {
	log := logging.FromContext(ctx)

	path := e.desktopFilePath()
	exists, err := afero.Exists(e.fs, path)
	if err != nil {
		return fmt.Errorf("stat desktop file: %w", err)
	}
	if !exists {
		log.Debug().Str("path", path).Msg("desktop file not found (already removed)")
		return nil
	}
	if err := e.fs.Remove(path); err != nil {
		return fmt.Errorf("remove desktop file: %w", err)
	}
	log.Info().Str("path", path).Msg("desktop file removed")

	_ = e.refresh(ctx, filepath.Dir(path))
	return nil
}

func executablePath() (string, error) {
	execPath, err := os.Executable()
	if err == nil {
		if resolved, symlinkErr := filepath.EvalSymlinks(execPath); symlinkErr == nil {
			execPath = resolved
		}
		return execPath, nil
	}

	path, err := exec.LookPath(appName)
	if err != nil {
		return "", fmt.Errorf("cannot find %s executable: %w", appName, err)
	}
	return path, nil
}

func updateDesktopDatabase(ctx context.Context, dir string) error {
	bin, err := exec.LookPath("update-desktop-database")
	if err != nil {
		return nil
	}
	return exec.CommandContext(ctx, bin, dir).Run()
}
