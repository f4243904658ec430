package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/retouch/internal/cli/styles"
	"github.com/bnema/retouch/internal/domain/entity"
)

// statesLoadedMsg carries fresh gate snapshots for every resource.
type statesLoadedMsg struct {
	states []entity.PermissionState
}

type statusErrMsg struct {
	err error
}

func (m ChatModel) loadStates() tea.Msg {
	for _, r := range entity.AllResources() {
		m.deps.Gate.QueryStatus(m.ctx, r)
	}
	return statesLoadedMsg{states: m.deps.Gate.States()}
}

func (m ChatModel) setStatus(resource entity.Resource, status entity.AuthorizationStatus) tea.Cmd {
	return func() tea.Msg {
		if err := m.deps.Local.Set(m.ctx, resource, status); err != nil {
			return statusErrMsg{err: fmt.Errorf("set %s: %w", resource, err)}
		}
		return m.loadStates()
	}
}

func (m ChatModel) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.states)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Send):
		if s, ok := m.selectedState(); ok {
			return m, m.gate(s.Resource)
		}
	case key.Matches(msg, m.keys.Cycle):
		s, ok := m.selectedState()
		if ok && m.deps.Local != nil {
			return m, m.setStatus(s.Resource, nextStatus(s.Resource, s.Status))
		}
	case key.Matches(msg, m.keys.Settings):
		return m, m.openSettings
	}
	return m, nil
}

func (m ChatModel) selectedState() (entity.PermissionState, bool) {
	if m.cursor < 0 || m.cursor >= len(m.states) {
		return entity.PermissionState{}, false
	}
	return m.states[m.cursor], true
}

// nextStatus cycles through the statuses a user can store locally.
func nextStatus(resource entity.Resource, current entity.AuthorizationStatus) entity.AuthorizationStatus {
	order := []entity.AuthorizationStatus{
		entity.StatusNotDetermined,
		entity.StatusAuthorized,
		entity.StatusDenied,
		entity.StatusRestricted,
	}
	if resource == entity.ResourcePhotoLibrary {
		order = []entity.AuthorizationStatus{
			entity.StatusNotDetermined,
			entity.StatusAuthorized,
			entity.StatusLimited,
			entity.StatusDenied,
			entity.StatusRestricted,
		}
	}
	for i, s := range order {
		if s == current {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

func (m ChatModel) renderSettings() string {
	var sb strings.Builder

	sb.WriteString(m.theme.Title.Render(styles.IconLock+" Permissions") + "  ")
	sb.WriteString(m.theme.MutedBadge(m.deps.Backend) + "\n\n")

	if len(m.states) == 0 {
		sb.WriteString(m.theme.Subtle.Render("Checking..."))
		return m.theme.Box.Render(sb.String())
	}

	for i, s := range m.states {
		cursor := "  "
		if i == m.cursor {
			cursor = m.theme.Highlight.Render(styles.IconCursor + " ")
		}
		label := lipgloss.NewStyle().Width(18).Render(styles.ResourceLabel(s.Resource))
		hint := styles.ActionHint(s.Action)
		if s.RequestInFlight {
			hint = "waiting for an answer"
		}
		sb.WriteString(fmt.Sprintf("%s%s %s  %s\n", cursor, label, m.theme.StatusBadge(s.Status), m.theme.Subtle.Render(hint)))
	}

	sb.WriteString("\n" + m.theme.Subtle.Render("enter request access • o open system settings"))
	if m.deps.Local != nil {
		sb.WriteString(m.theme.Subtle.Render(" • s change stored status"))
	}
	return m.theme.Box.Render(sb.String())
}
