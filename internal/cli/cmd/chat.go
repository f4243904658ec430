package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/retouch/internal/cli/model"
	"github.com/bnema/retouch/internal/cli/styles"
)

var chatCmd = &cobra.Command{
	Use:   "chat [image]",
	Short: "Open the chat screen",
	Long: `Open the interactive chat screen.

The Chat tab sends prompts for the attached image, History lists past
prompts, and Settings shows camera, photo library and notification access.

Examples:
  retouch chat                    # start with no image
  retouch chat ~/Pictures/cat.png # attach an image first`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{annotationInteractive: "true"},
	RunE:        runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	image := ""
	if len(args) == 1 {
		image = args[0]
	}

	bridge := model.NewPromptBridge()
	a.UsePresenter(bridge)

	m := model.NewChatModel(a.Ctx(), a.Theme, a.ChatDeps(image))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(a.Ctx()))

	bridge.Attach(p.Send)
	defer bridge.Attach(nil)

	a.WatchConfig(func(theme *styles.Theme) {
		p.Send(model.ConfigReloadedMsg{Theme: theme})
	})

	_, err = p.Run()
	return err
}
