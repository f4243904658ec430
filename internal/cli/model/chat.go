// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/retouch/internal/application/usecase"
	"github.com/bnema/retouch/internal/cli/styles"
	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/bnema/retouch/internal/logging"
)

// StatusEditor changes a stored authorization status. Only the local
// authorization backend provides one.
type StatusEditor interface {
	Set(ctx context.Context, resource entity.Resource, status entity.AuthorizationStatus) error
}

// ChatDeps are the use cases the chat screen drives.
type ChatDeps struct {
	Gate    *usecase.PermissionGateUseCase
	Prompts *usecase.ManagePromptsUseCase
	Submit  *usecase.SubmitPromptUseCase
	Attach  *usecase.AttachImageUseCase

	// Local is nil unless the local authorization backend is active.
	Local StatusEditor

	// ResolvePath expands user input such as ~/Pictures/cat.png.
	ResolvePath func(string) string

	// Backend names the authorization backend for display.
	Backend string

	// InitialImage is attached when the screen opens.
	InitialImage string
}

type lineKind int

const (
	lineUser lineKind = iota
	lineSystem
	lineResult
	lineWarning
	lineError
)

type chatLine struct {
	kind lineKind
	text string
}

// ConfigReloadedMsg re-themes the screen after the config file changed.
type ConfigReloadedMsg struct {
	Theme *styles.Theme
}

type attachDoneMsg struct {
	resource entity.Resource
	outcome  *usecase.AttachOutcome
	err      error
}

type submitDoneMsg struct {
	result *usecase.SubmitResult
	err    error
}

type gateDoneMsg struct {
	resource entity.Resource
	action   entity.Action
}

// ChatModel is the main interactive screen: a chat tab for prompts, a
// history tab and a permissions tab.
type ChatModel struct {
	// UI components
	tabs    styles.TabsModel
	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    styles.ChatKeyMap
	table   table.Model
	dialogs []dialog

	// Chat state
	lines []chatLine
	image string
	busy  bool

	// History state
	records    []entity.PromptRecord
	historyErr error

	// Settings state
	states   []entity.PermissionState
	cursor   int
	showHelp bool
	width    int
	height   int

	// Dependencies
	ctx   context.Context
	deps  ChatDeps
	theme *styles.Theme
}

// NewChatModel creates the chat screen.
func NewChatModel(ctx context.Context, theme *styles.Theme, deps ChatDeps) ChatModel {
	log := logging.FromContext(ctx)
	log.Debug().Str("backend", deps.Backend).Msg("creating chat model")

	if deps.ResolvePath == nil {
		deps.ResolvePath = func(s string) string { return s }
	}

	input := styles.NewPromptInput(theme)
	input.Focus()

	m := ChatModel{
		tabs:    styles.MainTabs(theme),
		input:   input,
		spinner: styles.NewDefaultSpinner(theme),
		help:    styles.NewStyledHelp(theme),
		keys:    styles.DefaultChatKeyMap(),
		table:   styles.NewStyledTable(theme, styles.HistoryTableColumns(), nil, 80, 10),
		ctx:     ctx,
		deps:    deps,
		theme:   theme,
		width:   80,
		height:  24,
	}
	m.lines = append(m.lines, chatLine{kind: lineSystem, text: "Attach an image with /attach <path> or /camera, then describe the change."})
	return m
}

// Init implements tea.Model.
func (m ChatModel) Init() tea.Cmd {
	m.deps.Gate.ResetCycle()
	cmds := []tea.Cmd{textinput.Blink, m.loadStates}
	if m.deps.InitialImage != "" {
		cmds = append(cmds, m.attach(m.deps.InitialImage))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 10)
		m.table.SetWidth(max(msg.Width-4, 20))
		m.table.SetHeight(max(msg.Height-8, 3))
		m.help.Width = msg.Width
		return m, nil

	case permissionPromptMsg:
		m.enqueue(m.permissionDialog(msg))
		return m, nil

	case systemPromptMsg:
		m.enqueue(m.systemDialog(msg))
		return m, nil

	case ConfigReloadedMsg:
		m.applyTheme(msg.Theme)
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case attachDoneMsg:
		return m.handleAttachDone(msg)

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case gateDoneMsg:
		return m.handleGateDone(msg)

	case historyLoadedMsg:
		return m.handleHistoryLoaded(msg)

	case historyChangedMsg:
		return m.handleHistoryChanged(msg)

	case statesLoadedMsg:
		m.states = msg.states
		if m.cursor >= len(m.states) {
			m.cursor = max(len(m.states)-1, 0)
		}
		return m, nil

	case statusErrMsg:
		m.addLine(lineError, msg.err.Error())
		return m, nil
	}

	if len(m.dialogs) > 0 {
		return m.updateDialog(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(keyMsg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ChatModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.dismissDialogs()
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		m.tabs.Next()
		return m, m.enterTab()
	case key.Matches(msg, m.keys.PrevTab):
		m.tabs.Prev()
		return m, m.enterTab()
	case key.Matches(msg, m.keys.Help) && (m.tabs.Active != styles.TabChat || m.input.Value() == ""):
		m.showHelp = !m.showHelp
		return m, nil
	}

	switch m.tabs.Active {
	case styles.TabHistory:
		return m.handleHistoryKey(msg)
	case styles.TabSettings:
		return m.handleSettingsKey(msg)
	}

	if key.Matches(msg, m.keys.Send) {
		text := m.input.Value()
		m.input.Reset()
		return m.handleInput(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ChatModel) enterTab() tea.Cmd {
	switch m.tabs.Active {
	case styles.TabHistory:
		return m.loadHistory
	case styles.TabSettings:
		return m.loadStates
	default:
		m.deps.Gate.ResetCycle()
		return nil
	}
}

func (m ChatModel) handleInput(text string) (tea.Model, tea.Cmd) {
	text = strings.TrimSpace(text)
	if text == "" {
		return m, nil
	}

	if strings.HasPrefix(text, "/") {
		return m.handleCommand(text)
	}

	if m.image == "" {
		m.addLine(lineWarning, "Attach an image first with /attach <path> or /camera.")
		return m, nil
	}
	if m.busy {
		m.addLine(lineWarning, "A transformation is already running.")
		return m, nil
	}

	m.addLine(lineUser, text)
	m.busy = true
	return m, tea.Batch(m.spinner.Tick, m.submit(m.image, text))
}

func (m ChatModel) handleCommand(text string) (tea.Model, tea.Cmd) {
	name, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/attach":
		if arg == "" {
			m.addLine(lineError, "usage: /attach <path or url>")
			return m, nil
		}
		return m, m.attach(arg)
	case "/camera":
		return m, m.capture
	case "/notify":
		return m, m.gate(entity.ResourceNotifications)
	case "/clear":
		m.image = ""
		m.lines = nil
		return m, nil
	case "/help":
		for _, l := range []string{
			"/attach <path or url>  attach an image from disk or the web",
			"/camera                take a photo",
			"/notify                allow completion notifications",
			"/clear                 drop the image and the conversation",
		} {
			m.addLine(lineSystem, l)
		}
		return m, nil
	case "/quit":
		m.dismissDialogs()
		return m, tea.Quit
	default:
		m.addLine(lineError, fmt.Sprintf("unknown command %s, try /help", name))
		return m, nil
	}
}

func (m ChatModel) attach(path string) tea.Cmd {
	resolved := m.deps.ResolvePath(path)
	return func() tea.Msg {
		outcome, err := m.deps.Attach.AttachFromLibrary(m.ctx, resolved)
		return attachDoneMsg{resource: entity.ResourcePhotoLibrary, outcome: outcome, err: err}
	}
}

func (m ChatModel) capture() tea.Msg {
	outcome, err := m.deps.Attach.CaptureFromCamera(m.ctx)
	return attachDoneMsg{resource: entity.ResourceCamera, outcome: outcome, err: err}
}

func (m ChatModel) submit(image, prompt string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.deps.Submit.Submit(m.ctx, image, prompt)
		return submitDoneMsg{result: result, err: err}
	}
}

func (m ChatModel) gate(resource entity.Resource) tea.Cmd {
	return func() tea.Msg {
		return gateDoneMsg{resource: resource, action: m.deps.Gate.Gate(m.ctx, resource)}
	}
}

func (m ChatModel) openSettings() tea.Msg {
	m.deps.Gate.OpenSystemSettings(m.ctx)
	return nil
}

func (m ChatModel) handleAttachDone(msg attachDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.addLine(lineError, msg.err.Error())
		return m, nil
	}
	switch msg.outcome.Action {
	case entity.ActionProceed:
		m.image = msg.outcome.ImagePath
		m.addLine(lineSystem, fmt.Sprintf("%s Attached %s", styles.IconImage, m.image))
	case entity.ActionRedirectToSettings:
		m.enqueue(m.settingsDialog(msg.resource))
	default:
		m.addLine(lineWarning, fmt.Sprintf("%s was not allowed.", styles.ResourceLabel(msg.resource)))
	}
	return m, m.loadStates
}

func (m ChatModel) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.result != nil && msg.result.HistoryErr != nil {
		m.addLine(lineWarning, "Prompt not saved to history: "+msg.result.HistoryErr.Error())
	}
	if msg.err != nil {
		m.addLine(lineError, msg.err.Error())
		return m, nil
	}

	text := fmt.Sprintf("%s Saved %s", styles.IconCheck, msg.result.Transform.OutputPath)
	if msg.result.Notified {
		text += "  " + styles.IconBell
	}
	m.addLine(lineResult, text)
	return m, nil
}

func (m ChatModel) handleGateDone(msg gateDoneMsg) (tea.Model, tea.Cmd) {
	switch msg.action {
	case entity.ActionProceed:
		m.addLine(lineSystem, fmt.Sprintf("%s is allowed.", styles.ResourceLabel(msg.resource)))
	case entity.ActionRedirectToSettings:
		m.enqueue(m.settingsDialog(msg.resource))
	default:
		m.addLine(lineWarning, fmt.Sprintf("%s was not allowed.", styles.ResourceLabel(msg.resource)))
	}
	return m, m.loadStates
}

func (m *ChatModel) addLine(kind lineKind, text string) {
	m.lines = append(m.lines, chatLine{kind: kind, text: text})
}

func (m *ChatModel) applyTheme(theme *styles.Theme) {
	if theme == nil {
		return
	}
	value := m.input.Value()
	width := m.input.Width

	m.theme = theme
	m.input = styles.NewPromptInput(theme)
	m.input.SetValue(value)
	m.input.Width = width
	m.input.Focus()
	m.spinner = styles.NewDefaultSpinner(theme)
	m.help = styles.NewStyledHelp(theme)
	m.help.Width = m.width

	active := m.tabs.Active
	m.tabs = styles.MainTabs(theme)
	m.tabs.SetActive(active)

	m.table = styles.NewStyledTable(theme, styles.HistoryTableColumns(), historyRows(m.records),
		max(m.width-4, 20), max(m.height-8, 3))
}

// View implements tea.Model.
func (m ChatModel) View() string {
	header := m.tabs.View(m.width)

	if len(m.dialogs) > 0 {
		body := lipgloss.Place(m.width, max(m.height-3, 1), lipgloss.Center, lipgloss.Center,
			m.dialogs[0].choice.View())
		return lipgloss.JoinVertical(lipgloss.Left, header, body)
	}

	var body string
	switch m.tabs.Active {
	case styles.TabHistory:
		body = m.renderHistory()
	case styles.TabSettings:
		body = m.renderSettings()
	default:
		body = m.renderChat()
	}

	footer := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.showHelp {
		footer = m.help.FullHelpView(m.keys.FullHelp())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m ChatModel) renderChat() string {
	var status string
	if m.image != "" {
		status = m.theme.AccentBadge(styles.IconImage+" "+styles.Truncate(m.image, max(m.width-10, 10))) + "\n"
	}
	if m.busy {
		status += m.spinner.View() + m.theme.Subtle.Render(" transforming...") + "\n"
	}
	input := m.theme.InputBox(m.input.View(), true, max(m.width-4, 10))

	// Keep the newest lines that fit above the input.
	room := max(m.height-lipgloss.Height(status)-lipgloss.Height(input)-4, 1)
	rendered := make([]string, 0, len(m.lines))
	for _, l := range m.lines {
		rendered = append(rendered, m.renderLine(l))
	}
	for len(rendered) > 0 && lipgloss.Height(strings.Join(rendered, "\n")) > room {
		rendered = rendered[1:]
	}

	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(rendered, "\n"), "", status+input)
}

func (m ChatModel) renderLine(l chatLine) string {
	switch l.kind {
	case lineUser:
		return m.theme.UserMessage.Render(l.text)
	case lineResult:
		return m.theme.SystemMessage.Render(m.theme.SuccessStyle.Render(l.text))
	case lineWarning:
		return m.theme.SystemMessage.Render(m.theme.WarningStyle.Render(styles.IconWarning + " " + l.text))
	case lineError:
		return m.theme.SystemMessage.Render(m.theme.ErrorStyle.Render(styles.IconX + " " + l.text))
	default:
		return m.theme.SystemMessage.Render(l.text)
	}
}
