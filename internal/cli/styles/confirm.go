package styles

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ChoiceModel is a modal dialog with one button per option.
type ChoiceModel struct {
	Title    string
	Message  string
	Options  []string
	Selected int
	Chosen   bool // User pressed enter
	Canceled bool // User pressed escape
	theme    *Theme
}

// ChoiceKeyMap defines keybindings for choice dialogs.
type ChoiceKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultChoiceKeyMap returns the default keybindings.
func DefaultChoiceKeyMap() ChoiceKeyMap {
	return ChoiceKeyMap{
		Left:    key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "previous")),
		Right:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// NewChoice creates a dialog. The first option is selected.
func NewChoice(theme *Theme, title, message string, options ...string) ChoiceModel {
	return ChoiceModel{Title: title, Message: message, Options: options, theme: theme}
}

// NewConfirm creates a No/Yes dialog defaulting to No.
func NewConfirm(theme *Theme, message string) ChoiceModel {
	return NewChoice(theme, "", message, "No", "Yes")
}

// Update handles key presses. The first letter of an option selects it.
func (m ChoiceModel) Update(msg tea.Msg) (ChoiceModel, tea.Cmd) {
	keys := DefaultChoiceKeyMap()

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Options) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Left):
		m.Selected = (m.Selected - 1 + len(m.Options)) % len(m.Options)
	case key.Matches(keyMsg, keys.Right):
		m.Selected = (m.Selected + 1) % len(m.Options)
	case key.Matches(keyMsg, keys.Confirm):
		m.Chosen = true
	case key.Matches(keyMsg, keys.Cancel):
		m.Canceled = true
	default:
		typed := strings.ToLower(keyMsg.String())
		for i, opt := range m.Options {
			if typed != "" && strings.HasPrefix(strings.ToLower(opt), typed) {
				m.Selected = i
				break
			}
		}
	}
	return m, nil
}

// View renders the dialog.
func (m ChoiceModel) View() string {
	t := m.theme

	buttons := make([]string, 0, len(m.Options)*2)
	for i, opt := range m.Options {
		style := t.InactiveTab
		if i == m.Selected {
			style = t.ActiveTab
		}
		if i > 0 {
			buttons = append(buttons, "  ")
		}
		buttons = append(buttons, style.Render(" "+opt+" "))
	}

	parts := []string{}
	if m.Title != "" {
		parts = append(parts, t.Title.Render(m.Title), "")
	}
	parts = append(parts,
		t.Normal.Render(m.Message),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, buttons...),
		"",
		t.Subtle.Render("←/→ to select • enter to confirm • esc to cancel"),
	)

	return t.Dialog.Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

// Done returns true if the dialog is complete.
func (m ChoiceModel) Done() bool {
	return m.Chosen || m.Canceled
}

// Choice returns the selected index, or -1 when the dialog was canceled.
func (m ChoiceModel) Choice() int {
	if m.Canceled || !m.Chosen {
		return -1
	}
	return m.Selected
}

// Result returns true if the user confirmed an option named "Yes" or the
// last option of a two-button dialog.
func (m ChoiceModel) Result() bool {
	c := m.Choice()
	return c >= 0 && (m.Options[c] == "Yes" || (len(m.Options) == 2 && c == 1))
}
