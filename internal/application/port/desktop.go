package port

import "context"

// DesktopIntegrationStatus represents the current state of desktop integration.
type DesktopIntegrationStatus struct {
	DesktopFileInstalled bool
	DesktopFilePath      string
	ExecutablePath       string
}

// DesktopIntegration installs the desktop entry portals use to resolve the
// app id for notifications and camera access.
type DesktopIntegration interface {
	// GetStatus checks the current desktop integration state.
	GetStatus(ctx context.Context) (*DesktopIntegrationStatus, error)

	// InstallDesktopFile writes the desktop file to the XDG applications
	// directory and returns its path. Idempotent.
	InstallDesktopFile(ctx context.Context) (string, error)

	// RemoveDesktopFile removes the desktop file. Idempotent.
	RemoveDesktopFile(ctx context.Context) error
}

// SettingsLauncher opens the desktop's application permission settings.
type SettingsLauncher interface {
	Open(ctx context.Context) error
}
