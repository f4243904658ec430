package desktop

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/bnema/retouch/internal/logging"
)

func testCtx() context.Context {
	return logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console"))
}

func TestSettingsLauncher_FirstAvailable(t *testing.T) {
	var started []string
	s := &SettingsLauncher{
		launchers: defaultLaunchers,
		lookPath: func(bin string) (string, error) {
			if bin == "gnome-control-center" {
				return "", errors.New("not found")
			}
			return "/usr/bin/" + bin, nil
		},
		start: func(_ context.Context, bin string, args ...string) error {
			started = append(started, bin+" "+args[0])
			return nil
		},
	}

	require.NoError(t, s.Open(testCtx()))
	assert.Equal(t, []string{"/usr/bin/systemsettings kcm_app-permissions"}, started)
}

func TestSettingsLauncher_FallsThroughFailures(t *testing.T) {
	var started []string
	s := &SettingsLauncher{
		launchers: defaultLaunchers,
		lookPath:  func(bin string) (string, error) { return bin, nil },
		start: func(_ context.Context, bin string, _ ...string) error {
			started = append(started, bin)
			if bin == "xdg-open" {
				return nil
			}
			return errors.New("exec failed")
		},
	}

	require.NoError(t, s.Open(testCtx()))
	assert.Equal(t, []string{"gnome-control-center", "systemsettings", "xdg-open"}, started)
}

func TestSettingsLauncher_NothingInstalled(t *testing.T) {
	s := &SettingsLauncher{
		launchers: defaultLaunchers,
		lookPath:  func(string) (string, error) { return "", errors.New("not found") },
		start:     func(context.Context, string, ...string) error { return nil },
	}

	require.ErrorIs(t, s.Open(testCtx()), entity.ErrCapabilityUnavailable)
}

func TestCameraCapture(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/dev/video0", nil, 0o600))

	c := NewCameraCapture(fs, "/dev/video0", "/usr/bin/ffmpeg", "/out")
	c.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	var gotArgs []string
	c.run = func(_ context.Context, bin string, args ...string) ([]byte, error) {
		assert.Equal(t, "/usr/bin/ffmpeg", bin)
		gotArgs = args
		return nil, afero.WriteFile(fs, args[len(args)-1], []byte("jpeg"), 0o600)
	}

	path, err := c.Capture(testCtx())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out", "capture-20260102-030405.000.jpg"), path)
	assert.Contains(t, gotArgs, "v4l2")
	assert.Contains(t, gotArgs, "/dev/video0")
}

func TestCameraCapture_Failures(t *testing.T) {
	ctx := testCtx()

	t.Run("missing device", func(t *testing.T) {
		c := NewCameraCapture(afero.NewMemMapFs(), "/dev/video9", "/usr/bin/ffmpeg", "/out")
		_, err := c.Capture(ctx)
		require.ErrorIs(t, err, entity.ErrCapabilityUnavailable)
	})

	t.Run("ffmpeg error", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/dev/video0", nil, 0o600))
		c := NewCameraCapture(fs, "/dev/video0", "/usr/bin/ffmpeg", "/out")
		c.run = func(context.Context, string, ...string) ([]byte, error) {
			return []byte("Device or resource busy\n"), errors.New("exit status 1")
		}

		_, err := c.Capture(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "resource busy")
	})

	t.Run("no output file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/dev/video0", nil, 0o600))
		c := NewCameraCapture(fs, "/dev/video0", "/usr/bin/ffmpeg", "/out")
		c.run = func(context.Context, string, ...string) ([]byte, error) { return nil, nil }

		_, err := c.Capture(ctx)
		require.Error(t, err)
	})
}

func TestEntry_InstallStatusRemove(t *testing.T) {
	ctx := testCtx()
	refreshed := 0
	e := &Entry{
		fs:       afero.NewMemMapFs(),
		appID:    "io.github.bnema.retouch",
		dataHome: "/home/u/.local/share",
		execPath: func() (string, error) { return "/usr/local/bin/retouch", nil },
		refresh: func(context.Context, string) error {
			refreshed++
			return nil
		},
	}

	status, err := e.GetStatus(ctx)
	require.NoError(t, err)
	assert.False(t, status.DesktopFileInstalled)

	path, err := e.InstallDesktopFile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/home/u/.local/share/applications/io.github.bnema.retouch.desktop", path)

	data, err := afero.ReadFile(e.fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Exec=/usr/local/bin/retouch chat")

	status, err = e.GetStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.DesktopFileInstalled)
	assert.Equal(t, "/usr/local/bin/retouch", status.ExecutablePath)

	require.NoError(t, e.RemoveDesktopFile(ctx))
	require.NoError(t, e.RemoveDesktopFile(ctx), "removing twice is fine")
	assert.Equal(t, 2, refreshed)
}
