package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/retouch/internal/cli"
	"github.com/bnema/retouch/internal/cli/styles"
)

var desktopCmd = &cobra.Command{
	Use:   "desktop",
	Short: "Manage the desktop entry",
	Long: `Manage retouch's desktop entry.

Desktop portals identify sandboxed and host applications by the desktop file
matching their app id. Without it, camera and notification requests may be
attributed to the terminal instead of retouch.

Location: $XDG_DATA_HOME/applications/<app-id>.desktop
         (typically ~/.local/share/applications/io.github.bnema.retouch.desktop)`,
}

var desktopInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the desktop entry",
	Long:  `Install the desktop entry. This command is idempotent - safe to run multiple times.`,
	RunE:  runDesktopInstall,
}

var desktopRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the desktop entry",
	RunE:  runDesktopRemove,
}

var desktopStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the desktop entry is installed",
	RunE:  runDesktopStatus,
}

func init() {
	rootCmd.AddCommand(desktopCmd)
	desktopCmd.AddCommand(desktopInstallCmd)
	desktopCmd.AddCommand(desktopRemoveCmd)
	desktopCmd.AddCommand(desktopStatusCmd)
}

func requireDesktop() (*cli.App, error) {
	a, err := requireApp()
	if err != nil {
		return nil, err
	}
	if a.Desktop == nil {
		return nil, fmt.Errorf("desktop integration unavailable: no XDG data directory")
	}
	return a, nil
}

func runDesktopInstall(_ *cobra.Command, _ []string) error {
	a, err := requireDesktop()
	if err != nil {
		return err
	}
	theme := a.Theme

	path, err := a.Desktop.InstallDesktopFile(a.Ctx())
	if err != nil {
		fmt.Printf("%s %s\n", theme.ErrorStyle.Render(styles.IconX), err.Error())
		return err
	}
	fmt.Printf("%s Desktop file installed at %s\n", theme.SuccessStyle.Render(styles.IconCheck), path)
	return nil
}

func runDesktopRemove(_ *cobra.Command, _ []string) error {
	a, err := requireDesktop()
	if err != nil {
		return err
	}
	if err := a.Desktop.RemoveDesktopFile(a.Ctx()); err != nil {
		return err
	}
	fmt.Printf("%s Desktop file removed\n", a.Theme.SuccessStyle.Render(styles.IconCheck))
	return nil
}

func runDesktopStatus(_ *cobra.Command, _ []string) error {
	a, err := requireDesktop()
	if err != nil {
		return err
	}
	theme := a.Theme

	status, err := a.Desktop.GetStatus(a.Ctx())
	if err != nil {
		return err
	}
	if status.DesktopFileInstalled {
		fmt.Printf("%s Installed at %s\n", theme.SuccessStyle.Render(styles.IconCheck), status.DesktopFilePath)
	} else {
		fmt.Printf("%s Not installed (run 'retouch desktop install')\n", theme.WarningStyle.Render(styles.IconWarning))
	}
	if status.ExecutablePath != "" {
		fmt.Printf("  %s %s\n", theme.Subtle.Render("Exec"), status.ExecutablePath)
	}
	return nil
}
