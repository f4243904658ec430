// Package localauth emulates an OS permission layer for desktops without a
// portal. Statuses live in the platform_permissions table and the "system"
// dialog is drawn by the TUI.
package localauth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/retouch/internal/application/port"
	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/bnema/retouch/internal/domain/repository"
	"github.com/bnema/retouch/internal/logging"
)

var _ port.Authorizer = (*Authorizer)(nil)

// Authorizer implements port.Authorizer with persisted statuses.
type Authorizer struct {
	repo repository.PlatformPermissionRepository
	now  func() time.Time

	mu        sync.RWMutex
	presenter port.SystemPromptPresenter
	settings  func(ctx context.Context) error
}

// NewAuthorizer creates a local authorizer. presenter may be nil until the UI
// is ready; requests then resolve to the current status without a dialog.
func NewAuthorizer(repo repository.PlatformPermissionRepository, presenter port.SystemPromptPresenter) *Authorizer {
	return &Authorizer{repo: repo, presenter: presenter, now: time.Now}
}

// SetPresenter swaps the dialog used for requests.
func (a *Authorizer) SetPresenter(presenter port.SystemPromptPresenter) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.presenter = presenter
}

// SetSettingsHandler sets what OpenAppSettings runs.
func (a *Authorizer) SetSettingsHandler(fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settings = fn
}

func (a *Authorizer) AuthorizationStatus(ctx context.Context, resource entity.Resource) (entity.AuthorizationStatus, error) {
	record, err := a.repo.Get(ctx, resource)
	if err != nil {
		return entity.StatusRestricted, fmt.Errorf("read %s permission: %w", resource, err)
	}
	if record == nil {
		return entity.StatusNotDetermined, nil
	}
	return sanitize(resource, record.Status), nil
}

func (a *Authorizer) RequestAuthorization(
	ctx context.Context,
	resource entity.Resource,
	callback func(entity.AuthorizationStatus),
) {
	log := logging.FromContext(ctx).With().
		Str("component", "localauth").
		Str("resource", string(resource)).
		Logger()

	current, err := a.AuthorizationStatus(ctx, resource)
	if err != nil {
		log.Warn().Err(err).Msg("status unavailable before request")
		callback(entity.StatusRestricted)
		return
	}
	if current.IsResolved() {
		callback(current)
		return
	}

	a.mu.RLock()
	presenter := a.presenter
	a.mu.RUnlock()
	if presenter == nil {
		log.Debug().Msg("no system prompt presenter, leaving status unchanged")
		callback(current)
		return
	}

	var once sync.Once
	presenter.ShowSystemPrompt(ctx, resource, func(answer entity.AuthorizationStatus) {
		once.Do(func() {
			answer = sanitize(resource, answer)
			if answer == entity.StatusNotDetermined {
				log.Debug().Msg("system prompt dismissed")
				callback(current)
				return
			}
			if err := a.Set(ctx, resource, answer); err != nil {
				// The answer still stands for this request.
				log.Error().Err(err).Msg("failed to persist authorization answer")
			}
			log.Info().Str("status", string(answer)).Msg("authorization answered")
			callback(answer)
		})
	})
}

func (a *Authorizer) OpenAppSettings(ctx context.Context) error {
	a.mu.RLock()
	fn := a.settings
	a.mu.RUnlock()
	if fn == nil {
		return entity.ErrCapabilityUnavailable
	}
	return fn(ctx)
}

// Set stores a status as if the user changed it in the OS settings.
func (a *Authorizer) Set(ctx context.Context, resource entity.Resource, status entity.AuthorizationStatus) error {
	return a.repo.Set(ctx, &entity.PermissionRecord{
		Resource:  resource,
		Status:    sanitize(resource, status),
		UpdatedAt: a.now().Unix(),
	})
}

// Reset forgets the stored status so the next request prompts again.
func (a *Authorizer) Reset(ctx context.Context, resource entity.Resource) error {
	return a.repo.Delete(ctx, resource)
}

// sanitize keeps Limited to the photo library, the only resource with a
// partial tier.
func sanitize(resource entity.Resource, status entity.AuthorizationStatus) entity.AuthorizationStatus {
	if status == entity.StatusLimited && resource != entity.ResourcePhotoLibrary {
		return entity.StatusRestricted
	}
	return entity.ParseAuthorizationStatus(string(status))
}
