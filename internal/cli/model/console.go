package model

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/retouch/internal/cli/styles"
	"github.com/bnema/retouch/internal/domain/entity"
)

// choiceProgram runs a single dialog and quits when it is answered.
type choiceProgram struct {
	choice styles.ChoiceModel
}

func (m choiceProgram) Init() tea.Cmd { return nil }

func (m choiceProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyCtrlC {
		m.choice.Canceled = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.choice, cmd = m.choice.Update(msg)
	if m.choice.Done() {
		return m, tea.Quit
	}
	return m, cmd
}

func (m choiceProgram) View() string {
	if m.choice.Done() {
		return ""
	}
	return m.choice.View() + "\n"
}

// RunChoice shows a dialog inline and returns the chosen index, or -1 when it
// was dismissed.
func RunChoice(ctx context.Context, choice styles.ChoiceModel, in io.Reader, out io.Writer) (int, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	final, err := tea.NewProgram(choiceProgram{choice: choice}, opts...).Run()
	if err != nil {
		return -1, fmt.Errorf("run dialog: %w", err)
	}
	return final.(choiceProgram).choice.Choice(), nil
}

// ConsolePresenter shows permission dialogs as one-off inline programs for
// non-interactive commands.
type ConsolePresenter struct {
	chat ChatModel
	in   io.Reader
	out  io.Writer
}

// NewConsolePresenter creates a presenter. nil in and out use the terminal.
func NewConsolePresenter(theme *styles.Theme, in io.Reader, out io.Writer) *ConsolePresenter {
	return &ConsolePresenter{chat: ChatModel{theme: theme}, in: in, out: out}
}

// ShowPermissionPrompt implements port.PermissionPromptPresenter.
func (p *ConsolePresenter) ShowPermissionPrompt(ctx context.Context, resource entity.Resource, callback func(bool)) {
	var confirmed bool
	d := p.chat.permissionDialog(permissionPromptMsg{resource: resource, answer: func(ok bool) { confirmed = ok }})
	p.run(ctx, d)
	callback(confirmed)
}

// ShowSystemPrompt implements port.SystemPromptPresenter.
func (p *ConsolePresenter) ShowSystemPrompt(
	ctx context.Context,
	resource entity.Resource,
	callback func(entity.AuthorizationStatus),
) {
	status := entity.StatusNotDetermined
	d := p.chat.systemDialog(systemPromptMsg{resource: resource, answer: func(s entity.AuthorizationStatus) { status = s }})
	p.run(ctx, d)
	callback(status)
}

// Confirm asks a yes/no question.
func (p *ConsolePresenter) Confirm(ctx context.Context, message string) bool {
	choice, err := RunChoice(ctx, styles.NewConfirm(p.chat.theme, message), p.in, p.out)
	return err == nil && choice == 1
}

func (p *ConsolePresenter) run(ctx context.Context, d dialog) {
	choice, err := RunChoice(ctx, d.choice, p.in, p.out)
	if err != nil {
		choice = -1
	}
	_ = d.resolve(choice)
}
