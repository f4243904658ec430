package desktop

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/bnema/retouch/internal/application/port"
	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/bnema/retouch/internal/logging"
)

const captureTimeout = 15 * time.Second

var _ port.CameraCapturer = (*CameraCapture)(nil)

// CameraCapture grabs one frame from a V4L2 device with ffmpeg.
type CameraCapture struct {
	fs        afero.Fs
	device    string
	ffmpeg    string
	outputDir string
	now       func() time.Time
	run       func(ctx context.Context, bin string, args ...string) ([]byte, error)
}

// NewCameraCapture creates a capturer. ffmpegPath may be empty to look the
// binary up in PATH.
func NewCameraCapture(fs afero.Fs, device, ffmpegPath, outputDir string) *CameraCapture {
	return &CameraCapture{
		fs:        fs,
		device:    device,
		ffmpeg:    ffmpegPath,
		outputDir: outputDir,
		now:       time.Now,
		run:       runCombined,
	}
}

// Capture writes capture-<timestamp>.jpg to the output directory.
func (c *CameraCapture) Capture(ctx context.Context) (string, error) {
	log := logging.FromContext(ctx)

	bin := c.ffmpeg
	if bin == "" {
		path, err := exec.LookPath("ffmpeg")
		if err != nil {
			return "", fmt.Errorf("%w: ffmpeg not found", entity.ErrCapabilityUnavailable)
		}
		bin = path
	}

	if ok, _ := afero.Exists(c.fs, c.device); !ok {
		return "", fmt.Errorf("%w: camera device %s not found", entity.ErrCapabilityUnavailable, c.device)
	}
	if err := c.fs.MkdirAll(c.outputDir, 0o750); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	out := filepath.Join(c.outputDir, "capture-"+c.now().UTC().Format("20060102-150405.000")+".jpg")

	ctx, cancel := context.WithTimeout(ctx, captureTimeout)
	defer cancel()

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-f", "v4l2", "-i", c.device,
		"-frames:v", "1", "-y", out,
	}
	if output, err := c.run(ctx, bin, args...); err != nil {
		return "", fmt.Errorf("ffmpeg capture: %w: %s", err, strings.TrimSpace(string(output)))
	}

	if ok, _ := afero.Exists(c.fs, out); !ok {
		return "", fmt.Errorf("ffmpeg capture produced no file at %s", out)
	}

	log.Info().Str("device", c.device).Str("path", out).Msg("camera frame captured")
	return out, nil
}

func runCombined(ctx context.Context, bin string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, bin, args...).CombinedOutput()
}
