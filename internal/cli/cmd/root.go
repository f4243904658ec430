// Package cmd provides Cobra CLI commands for retouch.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/retouch/internal/cli"
	"github.com/bnema/retouch/internal/domain/build"
)

// annotationNoApp marks commands that run without the wired app.
const annotationNoApp = "retouch/no-app"

// annotationInteractive marks commands that take over the terminal.
const annotationInteractive = "retouch/interactive"

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "retouch [image]",
		Short: "Edit images by describing the change",
		Long: `Retouch - a terminal client for prompt-driven image transformation.

Attach a photo from disk or the camera, describe the edit, and retouch sends
it to the transformation service and saves the result.

Features:
  - Chat screen with prompt history and permission settings
  - Camera capture through the desktop portal
  - Completion notifications
  - Prompt history in SQLite or a plain JSON file

Run 'retouch' to open the chat screen, or explore the subcommands for
scripting.`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationInteractive: "true"},
		RunE:        runChat,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs":
				return nil
			}
			if cmd.Annotations[annotationNoApp] != "" {
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.AppOptions{
				Interactive: cmd.Annotations[annotationInteractive] != "",
			})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
		SilenceUsage: true,
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if app != nil {
			_ = app.Close()
		}
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app, nil
}
