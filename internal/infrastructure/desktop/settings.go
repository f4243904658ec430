package desktop

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/retouch/internal/application/port"
	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/bnema/retouch/internal/logging"
)

type launcher struct {
	bin  string
	args []string
}

// defaultLaunchers are tried in order.
var defaultLaunchers = []launcher{
	{bin: "gnome-control-center", args: []string{"applications"}},
	{bin: "systemsettings", args: []string{"kcm_app-permissions"}},
	{bin: "xdg-open", args: []string{"settings://"}},
}

var _ port.SettingsLauncher = (*SettingsLauncher)(nil)

// SettingsLauncher starts the first installed settings application.
type SettingsLauncher struct {
	launchers []launcher
	lookPath  func(string) (string, error)
	start     func(ctx context.Context, bin string, args ...string) error
}

// NewSettingsLauncher creates a launcher for GNOME, KDE and generic desktops.
func NewSettingsLauncher() *SettingsLauncher {
	return &SettingsLauncher{
		launchers: defaultLaunchers,
		lookPath:  exec.LookPath,
		start:     startDetached,
	}
}

// Open starts the settings application without waiting for it to exit.
// Returns entity.ErrCapabilityUnavailable when none is installed.
func (s *SettingsLauncher) Open(ctx context.Context) error {
	log := logging.FromContext(ctx)

	var errs []error
	for _, l := range s.launchers {
		path, err := s.lookPath(l.bin)
		if err != nil {
			continue
		}
		if err := s.start(ctx, path, l.args...); err != nil {
			log.Debug().Err(err).Str("bin", l.bin).Msg("settings launcher failed, trying next")
			errs = append(errs, fmt.Errorf("%s: %w", l.bin, err))
			continue
		}
		log.Info().Str("bin", l.bin).Str("args", strings.Join(l.args, " ")).Msg("opened system settings")
		return nil
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return fmt.Errorf("%w: no settings application found", entity.ErrCapabilityUnavailable)
}

func startDetached(_ context.Context, bin string, args ...string) error {
	// Not tied to ctx: the settings window outlives the command.
	cmd := exec.Command(bin, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
