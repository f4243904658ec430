package model

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/retouch/internal/cli/styles"
	"github.com/bnema/retouch/internal/domain/entity"
)

// dialog is a queued modal. resolve receives the chosen option index, or -1
// when the dialog was dismissed.
type dialog struct {
	choice  styles.ChoiceModel
	resolve func(choice int) tea.Cmd
}

func (m *ChatModel) enqueue(d dialog) {
	m.dialogs = append(m.dialogs, d)
}

func (m ChatModel) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	d := m.dialogs[0]
	d.choice, _ = d.choice.Update(msg)
	if !d.choice.Done() {
		m.dialogs = append([]dialog{d}, m.dialogs[1:]...)
		return m, nil
	}
	m.dialogs = m.dialogs[1:]
	return m, d.resolve(d.choice.Choice())
}

// dismissDialogs answers every pending dialog as dismissed so no use case is
// left waiting after the program exits.
func (m *ChatModel) dismissDialogs() {
	for _, d := range m.dialogs {
		_ = d.resolve(-1)
	}
	m.dialogs = nil
}

func (m ChatModel) permissionDialog(msg permissionPromptMsg) dialog {
	var text string
	switch msg.resource {
	case entity.ResourceCamera:
		text = "Retouch needs the camera to take the photo you want to edit.\nYour system will ask you next."
	case entity.ResourceNotifications:
		text = "Retouch can tell you when a transformation finishes.\nYour system will ask you next."
	default:
		text = fmt.Sprintf("Retouch needs access to %s.", styles.ResourceLabel(msg.resource))
	}
	return dialog{
		choice: styles.NewChoice(m.theme, styles.ResourceLabel(msg.resource), text, "Not now", "Continue"),
		resolve: func(choice int) tea.Cmd {
			msg.answer(choice == 1)
			return nil
		},
	}
}

func (m ChatModel) systemDialog(msg systemPromptMsg) dialog {
	title := fmt.Sprintf("%s %q would like to access %s", styles.IconLock, "retouch", styles.ResourceLabel(msg.resource))
	options := []string{"Don't Allow", "Allow"}
	statuses := []entity.AuthorizationStatus{entity.StatusDenied, entity.StatusAuthorized}
	if msg.resource == entity.ResourcePhotoLibrary {
		options = []string{"Don't Allow", "Limit Access", "Allow Full Access"}
		statuses = []entity.AuthorizationStatus{entity.StatusDenied, entity.StatusLimited, entity.StatusAuthorized}
	}
	return dialog{
		choice: styles.NewChoice(m.theme, title, "You can change this later in Settings.", options...),
		resolve: func(choice int) tea.Cmd {
			if choice < 0 {
				msg.answer(entity.StatusNotDetermined)
				return nil
			}
			msg.answer(statuses[choice])
			return nil
		},
	}
}

func (m ChatModel) settingsDialog(resource entity.Resource) dialog {
	text := fmt.Sprintf("Access to %s is turned off.\nOpen system settings to change it?", styles.ResourceLabel(resource))
	return dialog{
		choice: styles.NewConfirm(m.theme, text),
		resolve: func(choice int) tea.Cmd {
			if choice != 1 {
				return nil
			}
			return m.openSettings
		},
	}
}

func (m ChatModel) clearHistoryDialog() dialog {
	return dialog{
		choice: styles.NewConfirm(m.theme, "Delete every saved prompt?"),
		resolve: func(choice int) tea.Cmd {
			if choice != 1 {
				return nil
			}
			return m.clearHistory
		},
	}
}
