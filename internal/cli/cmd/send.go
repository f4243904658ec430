package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bnema/retouch/internal/application/usecase"
	"github.com/bnema/retouch/internal/cli/model"
	"github.com/bnema/retouch/internal/cli/styles"
	"github.com/bnema/retouch/internal/domain/entity"
)

var (
	sendJSON   bool
	sendCamera bool
)

var sendCmd = &cobra.Command{
	Use:   "send [image] <prompt...>",
	Short: "Transform one image without opening the chat screen",
	Long: `Send a single prompt for an image and print where the result was saved.

The image may be a local path or an http(s) URL. With --camera a photo is
taken first and the image argument is omitted.

Examples:
  retouch send ~/Pictures/cat.png make the sky purple
  retouch send --camera add a party hat
  retouch send --json https://example.com/dog.jpg remove the leash`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().BoolVar(&sendJSON, "json", false, "print the result as JSON")
	sendCmd.Flags().BoolVar(&sendCamera, "camera", false, "capture the image with the camera")
}

type sendOutput struct {
	RecordID string `json:"record_id,omitempty"`
	Image    string `json:"image"`
	Prompt   string `json:"prompt"`
	Output   string `json:"output"`
	MimeType string `json:"mime_type"`
	Notified bool   `json:"notified"`
	Warning  string `json:"warning,omitempty"`
}

func runSend(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx := a.Ctx()
	a.UsePresenter(model.NewConsolePresenter(a.Theme, nil, os.Stderr))

	var outcome *usecase.AttachOutcome
	var resource entity.Resource
	if sendCamera {
		resource = entity.ResourceCamera
		outcome, err = a.Attach.CaptureFromCamera(ctx)
	} else {
		if len(args) < 2 {
			return fmt.Errorf("expected an image and a prompt")
		}
		resource = entity.ResourcePhotoLibrary
		outcome, err = a.Attach.AttachFromLibrary(ctx, a.Files.Resolve(args[0]))
		args = args[1:]
	}
	if err != nil {
		return err
	}
	if err := actionError(resource, outcome.Action); err != nil {
		return err
	}

	prompt := strings.Join(args, " ")
	result, err := runWithSpinner(a.Theme, "transforming", func() (*usecase.SubmitResult, error) {
		return a.Submit.Submit(ctx, outcome.ImagePath, prompt)
	}, !sendJSON)
	if err != nil {
		return err
	}

	out := sendOutput{
		Image:    outcome.ImagePath,
		Prompt:   prompt,
		Output:   result.Transform.OutputPath,
		MimeType: result.Transform.MimeType,
		Notified: result.Notified,
	}
	if result.Record != nil {
		out.RecordID = result.Record.ID
	}
	if result.HistoryErr != nil {
		out.Warning = "prompt not saved to history: " + result.HistoryErr.Error()
	}

	if sendJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if out.Warning != "" {
		fmt.Fprintln(os.Stderr, a.Theme.WarningStyle.Render(styles.IconWarning+" "+out.Warning))
	}
	fmt.Println(a.Theme.SuccessStyle.Render(styles.IconCheck+" Saved ") + out.Output)
	return nil
}

// actionError explains why a gated action did not proceed.
func actionError(resource entity.Resource, action entity.Action) error {
	switch action {
	case entity.ActionProceed:
		return nil
	case entity.ActionRedirectToSettings:
		return fmt.Errorf("%s access is off; run 'retouch permissions settings' to change it", resource)
	default:
		return fmt.Errorf("%s access was not granted", resource)
	}
}

type spinnerDoneMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	label   string
	done    <-chan struct{}
	theme   *styles.Theme
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		<-m.done
		return spinnerDoneMsg{}
	})
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Left, m.spinner.View(), " ", m.theme.Subtle.Render(m.label+"...")) + "\n"
}

// runWithSpinner runs fn while showing a spinner on stderr.
func runWithSpinner[T any](theme *styles.Theme, label string, fn func() (T, error), show bool) (T, error) {
	if !show {
		return fn()
	}

	done := make(chan struct{})
	var (
		result T
		err    error
	)
	go func() {
		defer close(done)
		result, err = fn()
	}()

	p := tea.NewProgram(spinnerModel{
		spinner: styles.NewDefaultSpinner(theme),
		label:   label,
		done:    done,
		theme:   theme,
	}, tea.WithOutput(os.Stderr))
	// The spinner is cosmetic; fn's result is all that matters.
	_, _ = p.Run()
	<-done
	return result, err
}
