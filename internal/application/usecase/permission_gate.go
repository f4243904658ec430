// Package usecase contains application use cases that orchestrate domain logic.
package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/retouch/internal/application/port"
	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/bnema/retouch/internal/logging"
)

// PermissionGateUseCase decides what the UI does before touching a protected
// resource. It owns the per-resource PermissionState; the UI only receives
// snapshots.
//
// Statuses are re-queried on every call. The cached state only remembers
// whether the in-app prompt was declined during the current cycle, whether
// it is on screen, and whether an OS request is outstanding.
type PermissionGateUseCase struct {
	authorizer port.Authorizer

	presenter   port.PermissionPromptPresenter
	presenterMu sync.RWMutex

	mu        sync.Mutex
	states    map[entity.Resource]*entity.PermissionState
	prompting map[entity.Resource]bool
}

// NewPermissionGateUseCase creates a new permission gate.
func NewPermissionGateUseCase(
	authorizer port.Authorizer,
	presenter port.PermissionPromptPresenter,
) *PermissionGateUseCase {
	return &PermissionGateUseCase{
		authorizer: authorizer,
		presenter:  presenter,
		states:     make(map[entity.Resource]*entity.PermissionState),
		prompting:  make(map[entity.Resource]bool),
	}
}

// SetPromptPresenter sets the in-app prompt presenter. This can be called
// after initialization when the UI program is running.
func (uc *PermissionGateUseCase) SetPromptPresenter(presenter port.PermissionPromptPresenter) {
	uc.presenterMu.Lock()
	defer uc.presenterMu.Unlock()
	uc.presenter = presenter
}

func (uc *PermissionGateUseCase) getPresenter() port.PermissionPromptPresenter {
	uc.presenterMu.RLock()
	defer uc.presenterMu.RUnlock()
	return uc.presenter
}

// QueryStatus reads the current OS status for resource. It never fails:
// adapter errors and unknown values are reported as Restricted.
func (uc *PermissionGateUseCase) QueryStatus(ctx context.Context, resource entity.Resource) entity.AuthorizationStatus {
	log := logging.FromContext(ctx).With().
		Str("component", "permission-gate").
		Str("resource", string(resource)).
		Logger()

	status, err := uc.authorizer.AuthorizationStatus(ctx, resource)
	if err != nil {
		if errors.Is(err, entity.ErrCapabilityUnavailable) {
			log.Debug().Msg("no OS permission API, treating as restricted")
		} else {
			log.Warn().Err(err).Msg("failed to query authorization status")
		}
		status = entity.StatusRestricted
	}
	status = entity.ParseAuthorizationStatus(string(status))

	uc.mu.Lock()
	uc.observeLocked(resource, status, entity.Decide(resource, status))
	uc.mu.Unlock()

	log.Debug().Str("status", string(status)).Msg("queried authorization status")
	return status
}

// Decide maps a status to the next UI action.
func (*PermissionGateUseCase) Decide(resource entity.Resource, status entity.AuthorizationStatus) entity.Action {
	return entity.Decide(resource, status)
}

// RequestAuthorization asks the OS for access to resource. The returned
// channel delivers exactly one status and is then closed.
//
// A resolved status is delivered immediately without asking the OS. If a
// request for the same resource is already outstanding, ok is false and no
// request is made.
//
// The OS prompt outlives ctx: the in-flight flag is cleared only when the OS
// answers.
func (uc *PermissionGateUseCase) RequestAuthorization(
	ctx context.Context,
	resource entity.Resource,
) (result <-chan entity.AuthorizationStatus, ok bool) {
	log := logging.FromContext(ctx).With().
		Str("component", "permission-gate").
		Str("resource", string(resource)).
		Logger()

	uc.mu.Lock()
	state := uc.stateLocked(resource)
	if state.RequestInFlight {
		uc.mu.Unlock()
		log.Debug().Msg("authorization request already in flight, ignoring")
		return nil, false
	}
	state.RequestInFlight = true
	uc.mu.Unlock()

	ch := make(chan entity.AuthorizationStatus, 1)

	current := uc.QueryStatus(ctx, resource)
	if current.IsResolved() {
		uc.finishRequest(resource, current)
		ch <- current
		close(ch)
		return ch, true
	}

	var once sync.Once
	log.Info().Str("status", string(current)).Msg("requesting OS authorization")
	uc.authorizer.RequestAuthorization(context.WithoutCancel(ctx), resource, func(status entity.AuthorizationStatus) {
		once.Do(func() {
			status = entity.ParseAuthorizationStatus(string(status))
			log.Info().Str("status", string(status)).Msg("OS authorization answered")
			uc.finishRequest(resource, status)
			ch <- status
			close(ch)
		})
	})

	return ch, true
}

func (uc *PermissionGateUseCase) finishRequest(resource entity.Resource, status entity.AuthorizationStatus) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.observeLocked(resource, status, entity.DecideResolved(resource, status))
	uc.states[resource].RequestInFlight = false
}

// OpenSystemSettings asks the OS to show the app's settings. Failures are
// logged and otherwise ignored.
func (uc *PermissionGateUseCase) OpenSystemSettings(ctx context.Context) {
	log := logging.FromContext(ctx)
	if err := uc.authorizer.OpenAppSettings(ctx); err != nil {
		log.Warn().Err(err).Str("component", "permission-gate").Msg("failed to open system settings")
	}
}

// Gate runs the whole flow for one user action: query, decide, in-app
// prompt, OS request, re-decide. It returns Proceed, RedirectToSettings or
// NoOp.
func (uc *PermissionGateUseCase) Gate(ctx context.Context, resource entity.Resource) entity.Action {
	log := logging.FromContext(ctx).With().
		Str("component", "permission-gate").
		Str("resource", string(resource)).
		Logger()

	status := uc.QueryStatus(ctx, resource)
	action := entity.Decide(resource, status)

	switch action {
	case entity.ActionShowInAppPrompt:
		if declined, busy := uc.beginPrompt(resource); declined || busy {
			log.Debug().
				Bool("declined", declined).
				Bool("busy", busy).
				Msg("skipping in-app prompt")
			return entity.ActionNoOp
		}
		if !uc.showPrompt(ctx, resource) {
			uc.endPrompt(resource, true)
			log.Debug().Msg("user declined in-app prompt")
			return entity.ActionNoOp
		}
		// The prompt stays claimed until the OS request is marked in flight.
		ch, ok := uc.RequestAuthorization(ctx, resource)
		uc.endPrompt(resource, false)
		return uc.awaitResolution(ctx, resource, ch, ok)

	case entity.ActionRequestOSAuthorization:
		ch, ok := uc.RequestAuthorization(ctx, resource)
		return uc.awaitResolution(ctx, resource, ch, ok)

	default:
		return action
	}
}

func (uc *PermissionGateUseCase) awaitResolution(
	ctx context.Context,
	resource entity.Resource,
	ch <-chan entity.AuthorizationStatus,
	ok bool,
) entity.Action {
	if !ok {
		return entity.ActionNoOp
	}
	select {
	case resolved := <-ch:
		return entity.DecideResolved(resource, resolved)
	case <-ctx.Done():
		logging.FromContext(ctx).Debug().
			Str("resource", string(resource)).
			Msg("stopped waiting for OS authorization")
		return entity.ActionNoOp
	}
}

// showPrompt blocks until the user answers the in-app prompt.
func (uc *PermissionGateUseCase) showPrompt(ctx context.Context, resource entity.Resource) bool {
	presenter := uc.getPresenter()
	if presenter == nil {
		logging.FromContext(ctx).Warn().
			Str("resource", string(resource)).
			Msg("no prompt presenter available, skipping request")
		return false
	}

	answer := make(chan bool, 1)
	var once sync.Once
	presenter.ShowPermissionPrompt(ctx, resource, func(confirmed bool) {
		once.Do(func() { answer <- confirmed })
	})

	select {
	case confirmed := <-answer:
		return confirmed
	case <-ctx.Done():
		return false
	}
}

// ResetCycle starts a new screen-appearance cycle, allowing declined in-app
// prompts to be shown again.
func (uc *PermissionGateUseCase) ResetCycle() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, state := range uc.states {
		state.PromptDeclined = false
		state.ShowRequestPrompt = state.Action == entity.ActionShowInAppPrompt
	}
}

// States returns snapshots of every observed resource in display order.
func (uc *PermissionGateUseCase) States() []entity.PermissionState {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	states := make([]entity.PermissionState, 0, len(uc.states))
	for _, r := range entity.AllResources() {
		if state, ok := uc.states[r]; ok {
			states = append(states, *state)
		}
	}
	return states
}

// State returns a snapshot for one resource.
func (uc *PermissionGateUseCase) State(resource entity.Resource) (entity.PermissionState, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	state, ok := uc.states[resource]
	if !ok {
		return entity.PermissionState{}, false
	}
	return *state, true
}

// beginPrompt claims the in-app prompt for resource. It fails when the
// prompt was declined this cycle, or when another Gate call is already
// showing it or waiting on the OS.
func (uc *PermissionGateUseCase) beginPrompt(resource entity.Resource) (declined, busy bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	state := uc.stateLocked(resource)
	if state.PromptDeclined {
		return true, false
	}
	if uc.prompting[resource] || state.RequestInFlight {
		return false, true
	}
	uc.prompting[resource] = true
	return false, false
}

func (uc *PermissionGateUseCase) endPrompt(resource entity.Resource, declined bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.prompting, resource)
	if declined {
		state := uc.stateLocked(resource)
		state.PromptDeclined = true
		state.ShowRequestPrompt = false
	}
}

func (uc *PermissionGateUseCase) stateLocked(resource entity.Resource) *entity.PermissionState {
	state, ok := uc.states[resource]
	if !ok {
		state = &entity.PermissionState{Resource: resource}
		uc.states[resource] = state
	}
	return state
}

func (uc *PermissionGateUseCase) observeLocked(
	resource entity.Resource,
	status entity.AuthorizationStatus,
	action entity.Action,
) {
	state := uc.stateLocked(resource)
	state.Status = status
	state.Action = action
	state.ShowRequestPrompt = action == entity.ActionShowInAppPrompt && !state.PromptDeclined
}
