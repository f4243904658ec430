package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Tab indices of the chat screen.
const (
	TabChat = iota
	TabHistory
	TabSettings
)

// TabsModel represents a horizontal tab bar.
type TabsModel struct {
	Tabs   []string
	Active int
	theme  *Theme
}

// NewTabs creates a new tab bar with the given labels.
func NewTabs(theme *Theme, tabs ...string) TabsModel {
	return TabsModel{Tabs: tabs, theme: theme}
}

// MainTabs creates the Chat, History and Settings tabs.
func MainTabs(theme *Theme) TabsModel {
	return NewTabs(theme, "Chat", "History", "Settings")
}

// SetActive sets the active tab index.
func (m *TabsModel) SetActive(index int) {
	if index >= 0 && index < len(m.Tabs) {
		m.Active = index
	}
}

// Next moves to the next tab.
func (m *TabsModel) Next() {
	m.Active = (m.Active + 1) % len(m.Tabs)
}

// Prev moves to the previous tab.
func (m *TabsModel) Prev() {
	m.Active = (m.Active - 1 + len(m.Tabs)) % len(m.Tabs)
}

// View renders the tab bar at the given width.
func (m TabsModel) View(width int) string {
	tabs := make([]string, 0, len(m.Tabs)*2)
	gap := lipgloss.NewStyle().Foreground(m.theme.Border).Render(" │ ")

	for i, tab := range m.Tabs {
		style := m.theme.InactiveTab
		if i == m.Active {
			style = m.theme.ActiveTab
		}
		if i > 0 {
			tabs = append(tabs, gap)
		}
		tabs = append(tabs, style.Render(tab))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if width <= 0 {
		return m.theme.TabBar.Render(row)
	}
	return m.theme.TabBar.Width(width).Render(row)
}
