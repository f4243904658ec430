package port

import (
	"context"

	"github.com/bnema/retouch/internal/domain/entity"
)

// PermissionPromptPresenter shows the in-app explanation shown before the OS
// authorization request for camera and notifications.
// This is implemented by the UI layer (bubbletea confirm dialogs).
type PermissionPromptPresenter interface {
	// ShowPermissionPrompt explains why the app needs the resource.
	// The callback is invoked exactly once with true if the user agreed to
	// continue to the OS request, false if they declined or dismissed it.
	ShowPermissionPrompt(
		ctx context.Context,
		resource entity.Resource,
		callback func(confirmed bool),
	)
}

// SystemPromptPresenter renders the authorization dialog the OS itself would
// show. Only the local authorization backend needs it.
type SystemPromptPresenter interface {
	// ShowSystemPrompt asks the user to grant access to the resource.
	// The callback receives the chosen status: Authorized, Limited (photo
	// library only), Denied, or NotDetermined when the dialog was dismissed.
	ShowSystemPrompt(
		ctx context.Context,
		resource entity.Resource,
		callback func(status entity.AuthorizationStatus),
	)
}
