package model

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/retouch/internal/domain/entity"
)

// permissionPromptMsg asks the model to show the in-app explanation.
type permissionPromptMsg struct {
	resource entity.Resource
	answer   func(confirmed bool)
}

// systemPromptMsg asks the model to render the local OS-style dialog.
type systemPromptMsg struct {
	resource entity.Resource
	answer   func(status entity.AuthorizationStatus)
}

// PromptBridge implements the permission presenters on top of a running
// tea.Program. Use cases call it from command goroutines; the dialogs are
// shown by ChatModel and answered through the callbacks.
type PromptBridge struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// NewPromptBridge creates a bridge with no program attached. Until Attach is
// called every prompt is answered as dismissed.
func NewPromptBridge() *PromptBridge {
	return &PromptBridge{}
}

// Attach routes prompts to the program. Pass nil to detach.
func (b *PromptBridge) Attach(send func(tea.Msg)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send = send
}

func (b *PromptBridge) sender() func(tea.Msg) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.send
}

// ShowPermissionPrompt implements port.PermissionPromptPresenter.
func (b *PromptBridge) ShowPermissionPrompt(ctx context.Context, resource entity.Resource, callback func(bool)) {
	send := b.sender()
	if send == nil || ctx.Err() != nil {
		callback(false)
		return
	}
	var once sync.Once
	send(permissionPromptMsg{
		resource: resource,
		answer:   func(ok bool) { once.Do(func() { callback(ok) }) },
	})
}

// ShowSystemPrompt implements port.SystemPromptPresenter.
func (b *PromptBridge) ShowSystemPrompt(
	ctx context.Context,
	resource entity.Resource,
	callback func(entity.AuthorizationStatus),
) {
	send := b.sender()
	if send == nil || ctx.Err() != nil {
		callback(entity.StatusNotDetermined)
		return
	}
	var once sync.Once
	send(systemPromptMsg{
		resource: resource,
		answer: func(status entity.AuthorizationStatus) {
			once.Do(func() { callback(status) })
		},
	})
}
