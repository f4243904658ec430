package model

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	portmocks "github.com/bnema/retouch/internal/application/port/mocks"
	"github.com/bnema/retouch/internal/application/usecase"
	"github.com/bnema/retouch/internal/cli/styles"
	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/bnema/retouch/internal/infrastructure/config"
)

func newTestChat(t *testing.T) ChatModel {
	t.Helper()
	theme := styles.NewTheme(config.DefaultConfig())
	gate := usecase.NewPermissionGateUseCase(portmocks.NewMockAuthorizer(t), nil)
	return NewChatModel(context.Background(), theme, ChatDeps{Gate: gate, Backend: "local"})
}

func press(t *testing.T, m ChatModel, keys ...tea.KeyMsg) (ChatModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(ChatModel)
	}
	return m, cmd
}

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func lastLine(m ChatModel) chatLine {
	return m.lines[len(m.lines)-1]
}

func TestPromptBridge_WithoutProgramDismisses(t *testing.T) {
	b := NewPromptBridge()

	var confirmed *bool
	b.ShowPermissionPrompt(context.Background(), entity.ResourceCamera, func(ok bool) { confirmed = &ok })
	require.NotNil(t, confirmed)
	assert.False(t, *confirmed)

	var status entity.AuthorizationStatus
	b.ShowSystemPrompt(context.Background(), entity.ResourceCamera, func(s entity.AuthorizationStatus) { status = s })
	assert.Equal(t, entity.StatusNotDetermined, status)
}

func TestPromptBridge_CanceledContextDismisses(t *testing.T) {
	b := NewPromptBridge()
	b.Attach(func(tea.Msg) { t.Fatal("nothing should be sent") })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	answered := false
	b.ShowPermissionPrompt(ctx, entity.ResourceNotifications, func(ok bool) {
		answered = true
		assert.False(t, ok)
	})
	assert.True(t, answered)
}

func TestPromptBridge_AnswersOnce(t *testing.T) {
	b := NewPromptBridge()

	var sent tea.Msg
	b.Attach(func(msg tea.Msg) { sent = msg })

	calls := 0
	b.ShowPermissionPrompt(context.Background(), entity.ResourceCamera, func(bool) { calls++ })

	msg, ok := sent.(permissionPromptMsg)
	require.True(t, ok)
	assert.Equal(t, entity.ResourceCamera, msg.resource)

	msg.answer(true)
	msg.answer(false)
	assert.Equal(t, 1, calls)
}

func TestChatModel_PermissionDialog(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want bool
	}{
		{"continue", []tea.KeyMsg{keyRight, keyEnter}, true},
		{"not now", []tea.KeyMsg{keyEnter}, false},
		{"dismissed", []tea.KeyMsg{keyEsc}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestChat(t)

			var got *bool
			next, _ := m.Update(permissionPromptMsg{
				resource: entity.ResourceCamera,
				answer:   func(ok bool) { got = &ok },
			})
			m = next.(ChatModel)
			require.Len(t, m.dialogs, 1)
			assert.Contains(t, m.View(), "Continue")

			m, _ = press(t, m, tt.keys...)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
			assert.Empty(t, m.dialogs)
		})
	}
}

func TestChatModel_SystemDialog(t *testing.T) {
	tests := []struct {
		name     string
		resource entity.Resource
		keys     []tea.KeyMsg
		want     entity.AuthorizationStatus
	}{
		{"deny", entity.ResourceCamera, []tea.KeyMsg{keyEnter}, entity.StatusDenied},
		{"allow", entity.ResourceCamera, []tea.KeyMsg{keyRight, keyEnter}, entity.StatusAuthorized},
		{"limited library", entity.ResourcePhotoLibrary, []tea.KeyMsg{keyRight, keyEnter}, entity.StatusLimited},
		{"full library", entity.ResourcePhotoLibrary, []tea.KeyMsg{keyRight, keyRight, keyEnter}, entity.StatusAuthorized},
		{"dismissed", entity.ResourceNotifications, []tea.KeyMsg{keyEsc}, entity.StatusNotDetermined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestChat(t)

			var got entity.AuthorizationStatus
			next, _ := m.Update(systemPromptMsg{
				resource: tt.resource,
				answer:   func(s entity.AuthorizationStatus) { got = s },
			})
			m = next.(ChatModel)

			press(t, m, tt.keys...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChatModel_DialogsQueueInOrder(t *testing.T) {
	m := newTestChat(t)

	var order []entity.Resource
	for _, r := range []entity.Resource{entity.ResourceCamera, entity.ResourceNotifications} {
		next, _ := m.Update(permissionPromptMsg{resource: r, answer: func(bool) { order = append(order, r) }})
		m = next.(ChatModel)
	}
	require.Len(t, m.dialogs, 2)

	m, _ = press(t, m, keyEnter)
	assert.Equal(t, []entity.Resource{entity.ResourceCamera}, order)
	press(t, m, keyEnter)
	assert.Equal(t, []entity.Resource{entity.ResourceCamera, entity.ResourceNotifications}, order)
}

func TestChatModel_QuitDismissesPendingDialogs(t *testing.T) {
	m := newTestChat(t)

	var got entity.AuthorizationStatus = entity.StatusAuthorized
	next, _ := m.Update(systemPromptMsg{
		resource: entity.ResourceCamera,
		answer:   func(s entity.AuthorizationStatus) { got = s },
	})
	m = next.(ChatModel)

	m.dismissDialogs()
	assert.Equal(t, entity.StatusNotDetermined, got)
	assert.Empty(t, m.dialogs)
}

func TestChatModel_PromptNeedsImage(t *testing.T) {
	m := newTestChat(t)
	m.input.SetValue("make the sky purple")

	m, cmd := press(t, m, keyEnter)
	assert.Nil(t, cmd)
	assert.False(t, m.busy)
	assert.Equal(t, lineWarning, lastLine(m).kind)
	assert.Empty(t, m.input.Value())
}

func TestChatModel_PromptStartsTransformation(t *testing.T) {
	m := newTestChat(t)
	m.image = "/tmp/cat.png"
	m.input.SetValue("make the sky purple")

	m, cmd := press(t, m, keyEnter)
	assert.NotNil(t, cmd)
	assert.True(t, m.busy)
	assert.Equal(t, chatLine{kind: lineUser, text: "make the sky purple"}, lastLine(m))

	m.input.SetValue("again")
	m, _ = press(t, m, keyEnter)
	assert.Equal(t, lineWarning, lastLine(m).kind)
}

func TestChatModel_Commands(t *testing.T) {
	m := newTestChat(t)

	m.input.SetValue("/attach")
	m, cmd := press(t, m, keyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, lineError, lastLine(m).kind)

	m.input.SetValue("/attach ~/cat.png")
	_, cmd = press(t, m, keyEnter)
	assert.NotNil(t, cmd)

	m.input.SetValue("/bogus")
	m, _ = press(t, m, keyEnter)
	assert.Contains(t, lastLine(m).text, "/bogus")

	m.image = "/tmp/cat.png"
	m.input.SetValue("/clear")
	m, _ = press(t, m, keyEnter)
	assert.Empty(t, m.image)
	assert.Empty(t, m.lines)
}

func TestChatModel_AttachOutcomes(t *testing.T) {
	m := newTestChat(t)

	next, cmd := m.Update(attachDoneMsg{
		resource: entity.ResourcePhotoLibrary,
		outcome:  &usecase.AttachOutcome{Action: entity.ActionProceed, ImagePath: "/tmp/cat.png"},
	})
	m = next.(ChatModel)
	assert.NotNil(t, cmd)
	assert.Equal(t, "/tmp/cat.png", m.image)

	next, _ = m.Update(attachDoneMsg{
		resource: entity.ResourceCamera,
		outcome:  &usecase.AttachOutcome{Action: entity.ActionRedirectToSettings},
	})
	m = next.(ChatModel)
	require.Len(t, m.dialogs, 1)
	assert.Equal(t, "/tmp/cat.png", m.image)

	// Declining the settings dialog runs nothing.
	m, cmd = press(t, m, keyEnter)
	assert.Nil(t, cmd)

	next, _ = m.Update(attachDoneMsg{
		resource: entity.ResourceCamera,
		outcome:  &usecase.AttachOutcome{Action: entity.ActionNoOp},
	})
	m = next.(ChatModel)
	assert.Equal(t, lineWarning, lastLine(m).kind)
	assert.Empty(t, m.dialogs)
}

func TestChatModel_SubmitDone(t *testing.T) {
	m := newTestChat(t)
	m.busy = true

	rec := &entity.PromptRecord{ID: "01J", Prompt: "p", Timestamp: time.Now()}
	next, _ := m.Update(submitDoneMsg{result: &usecase.SubmitResult{
		Record:     rec,
		Transform:  nil,
		HistoryErr: &entity.FormatError{Version: "2.0"},
	}, err: assert.AnError})
	m = next.(ChatModel)

	assert.False(t, m.busy)
	require.Len(t, m.lines, 3)
	assert.Equal(t, lineWarning, m.lines[1].kind)
	assert.Equal(t, lineError, m.lines[2].kind)
}

func TestChatModel_HistoryTab(t *testing.T) {
	m := newTestChat(t)
	m.tabs.SetActive(styles.TabHistory)

	now := time.Now()
	next, _ := m.Update(historyLoadedMsg{records: []entity.PromptRecord{
		{ID: "b", ImagePath: "/tmp/dog.png", Prompt: "add a hat", Timestamp: now},
		{ID: "a", ImagePath: "/tmp/cat.png", Prompt: "make it blue", Timestamp: now.Add(-time.Hour)},
	}})
	m = next.(ChatModel)
	assert.Len(t, m.table.Rows(), 2)
	assert.Contains(t, m.View(), "add a hat")

	m, cmd := press(t, m, runes("d"))
	assert.NotNil(t, cmd)

	m, _ = press(t, m, runes("C"))
	require.Len(t, m.dialogs, 1)
	m, _ = press(t, m, keyEsc)

	m, _ = press(t, m, keyEnter)
	assert.Equal(t, styles.TabChat, m.tabs.Active)
	assert.Equal(t, "add a hat", m.input.Value())
	assert.Equal(t, "/tmp/dog.png", m.image)
}

func TestChatModel_HistoryFormatError(t *testing.T) {
	m := newTestChat(t)
	m.tabs.SetActive(styles.TabHistory)

	next, _ := m.Update(historyLoadedMsg{err: &entity.FormatError{Version: "2.0"}})
	m = next.(ChatModel)
	assert.Contains(t, m.View(), "Press C")
}

func TestChatModel_SettingsTab(t *testing.T) {
	m := newTestChat(t)
	m.tabs.SetActive(styles.TabSettings)

	next, _ := m.Update(statesLoadedMsg{states: []entity.PermissionState{
		{Resource: entity.ResourceCamera, Status: entity.StatusDenied, Action: entity.ActionRedirectToSettings},
		{Resource: entity.ResourcePhotoLibrary, Status: entity.StatusLimited, Action: entity.ActionProceed},
	}})
	m = next.(ChatModel)
	assert.Contains(t, m.View(), "denied")

	m, _ = press(t, m, runes("j"))
	assert.Equal(t, 1, m.cursor)
	m, _ = press(t, m, runes("j"))
	assert.Equal(t, 1, m.cursor)

	// Without the local backend the cycle key does nothing.
	_, cmd := press(t, m, runes("s"))
	assert.Nil(t, cmd)

	_, cmd = press(t, m, keyEnter)
	assert.NotNil(t, cmd)
}

func TestNextStatus(t *testing.T) {
	assert.Equal(t, entity.StatusAuthorized, nextStatus(entity.ResourceCamera, entity.StatusNotDetermined))
	assert.Equal(t, entity.StatusDenied, nextStatus(entity.ResourceCamera, entity.StatusAuthorized))
	assert.Equal(t, entity.StatusLimited, nextStatus(entity.ResourcePhotoLibrary, entity.StatusAuthorized))
	assert.Equal(t, entity.StatusNotDetermined, nextStatus(entity.ResourceNotifications, entity.StatusRestricted))
	assert.Equal(t, entity.StatusNotDetermined, nextStatus(entity.ResourceCamera, entity.StatusLimited))
}

func TestChoiceProgram_QuitsWhenAnswered(t *testing.T) {
	theme := styles.NewTheme(nil)
	m := choiceProgram{choice: styles.NewConfirm(theme, "Open settings?")}

	next, cmd := m.Update(keyRight)
	assert.Nil(t, cmd)
	m = next.(choiceProgram)

	next, cmd = m.Update(keyEnter)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, next.(choiceProgram).choice.Choice())
	assert.Empty(t, next.(choiceProgram).View())
}

func TestChoiceProgram_CtrlCDismisses(t *testing.T) {
	m := choiceProgram{choice: styles.NewConfirm(styles.NewTheme(nil), "Continue?")}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, -1, next.(choiceProgram).choice.Choice())
}
