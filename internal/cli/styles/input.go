package styles

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// NewStyledInput creates a themed text input.
func NewStyledInput(theme *Theme, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(theme.Muted)
	ti.TextStyle = lipgloss.NewStyle().Foreground(theme.Text)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(theme.Accent)
	ti.PromptStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	ti.Prompt = "› "
	return ti
}

// NewPromptInput creates the chat prompt field.
func NewPromptInput(theme *Theme) textinput.Model {
	ti := NewStyledInput(theme, "Describe the change, or /attach <path>, /camera, /help")
	ti.CharLimit = 4000
	return ti
}

// InputBox wraps a text input in a styled box.
func (t *Theme) InputBox(input string, focused bool, width int) string {
	style := t.Input
	if focused {
		style = t.InputFocused
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(input)
}
