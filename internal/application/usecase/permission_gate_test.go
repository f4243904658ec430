package usecase_test

import (
	"context"
	"errors"
	"testing"

	portmocks "github.com/bnema/retouch/internal/application/port/mocks"
	"github.com/bnema/retouch/internal/application/usecase"
	"github.com/bnema/retouch/internal/domain/entity"
	"github.com/bnema/retouch/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func TestPermissionGate_QueryStatus_ErrorsBecomeRestricted(t *testing.T) {
	tests := []struct {
		name   string
		status entity.AuthorizationStatus
		err    error
	}{
		{"capability unavailable", "", entity.ErrCapabilityUnavailable},
		{"adapter failure", "", errors.New("dbus: connection closed")},
		{"unknown raw value", entity.AuthorizationStatus("provisional"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			auth := portmocks.NewMockAuthorizer(t)
			auth.EXPECT().AuthorizationStatus(mock.Anything, entity.ResourceCamera).Return(tt.status, tt.err)

			uc := usecase.NewPermissionGateUseCase(auth, nil)

			assert.Equal(t, entity.StatusRestricted, uc.QueryStatus(ctx, entity.ResourceCamera))
			state, ok := uc.State(entity.ResourceCamera)
			require.True(t, ok)
			assert.Equal(t, entity.ActionNoOp, state.Action)
		})
	}
}

func TestPermissionGate_Gate_AuthorizedProceeds(t *testing.T) {
	ctx := testContext()
	auth := portmocks.NewMockAuthorizer(t)
	presenter := portmocks.NewMockPermissionPromptPresenter(t)

	auth.EXPECT().AuthorizationStatus(mock.Anything, entity.ResourceCamera).Return(entity.StatusAuthorized, nil)

	uc := usecase.NewPermissionGateUseCase(auth, presenter)

	assert.Equal(t, entity.ActionProceed, uc.Gate(ctx, entity.ResourceCamera))
	presenter.AssertNotCalled(t, "ShowPermissionPrompt")
	auth.AssertNotCalled(t, "RequestAuthorization")
}

func TestPermissionGate_Gate_CameraConfirmedThenGranted(t *testing.T) {
	ctx := testContext()
	auth := portmocks.NewMockAuthorizer(t)
	presenter := portmocks.NewMockPermissionPromptPresenter(t)

	auth.EXPECT().AuthorizationStatus(mock.Anything, entity.ResourceCamera).Return(entity.StatusNotDetermined, nil)
	presenter.EXPECT().ShowPermissionPrompt(mock.Anything, entity.ResourceCamera, mock.Anything).
		Run(func(_ context.Context, _ entity.Resource, callback func(bool)) {
			callback(true)
		}).Once()
	auth.EXPECT().RequestAuthorization(mock.Anything, entity.ResourceCamera, mock.Anything).
		Run(func(_ context.Context, _ entity.Resource, callback func(entity.AuthorizationStatus)) {
			go callback(entity.StatusAuthorized)
		}).Once()

	uc := usecase.NewPermissionGateUseCase(auth, presenter)

	assert.Equal(t, entity.ActionProceed, uc.Gate(ctx, entity.ResourceCamera))

	state, ok := uc.State(entity.ResourceCamera)
	require.True(t, ok)
	assert.Equal(t, entity.StatusAuthorized, state.Status)
	assert.False(t, state.RequestInFlight)
}

func TestPermissionGate_Gate_DeclinedPromptSuppressedUntilReset(t *testing.T) {
	ctx := testContext()
	auth := portmocks.NewMockAuthorizer(t)
	presenter := portmocks.NewMockPermissionPromptPresenter(t)

	auth.EXPECT().AuthorizationStatus(mock.Anything, entity.ResourceNotifications).Return(entity.StatusNotDetermined, nil)
	presenter.EXPECT().ShowPermissionPrompt(mock.Anything, entity.ResourceNotifications, mock.Anything).
		Run(func(_ context.Context, _ entity.Resource, callback func(bool)) {
			callback(false)
		}).Twice()

	uc := usecase.NewPermissionGateUseCase(auth, presenter)

	assert.Equal(t, entity.ActionNoOp, uc.Gate(ctx, entity.ResourceNotifications))

	state, _ := uc.State(entity.ResourceNotifications)
	assert.True(t, state.PromptDeclined)
	assert.False(t, state.ShowRequestPrompt)

	// Same cycle: no second prompt.
	assert.Equal(t, entity.ActionNoOp, uc.Gate(ctx, entity.ResourceNotifications))

	uc.ResetCycle()
	state, _ = uc.State(entity.ResourceNotifications)
	assert.False(t, state.PromptDeclined)
	assert.True(t, state.ShowRequestPrompt)

	assert.Equal(t, entity.ActionNoOp, uc.Gate(ctx, entity.ResourceNotifications))
	auth.AssertNotCalled(t, "RequestAuthorization")
}

func TestPermissionGate_Gate_SecondCallWhilePromptShowingIsNoOp(t *testing.T) {
	ctx := testContext()
	auth := portmocks.NewMockAuthorizer(t)
	presenter := portmocks.NewMockPermissionPromptPresenter(t)

	shown := make(chan struct{})
	release := make(chan struct{})

	auth.EXPECT().AuthorizationStatus(mock.Anything, entity.ResourceCamera).Return(entity.StatusNotDetermined, nil)
	presenter.EXPECT().ShowPermissionPrompt(mock.Anything, entity.ResourceCamera, mock.Anything).
		Run(func(_ context.Context, _ entity.Resource, callback func(bool)) {
			close(shown)
			<-release
			callback(true)
		}).Once()
	auth.EXPECT().RequestAuthorization(mock.Anything, entity.ResourceCamera, mock.Anything).
		Run(func(_ context.Context, _ entity.Resource, callback func(entity.AuthorizationStatus)) {
			go callback(entity.StatusAuthorized)
		}).Once()

	uc := usecase.NewPermissionGateUseCase(auth, presenter)

	first := make(chan entity.Action, 1)
	go func() { first <- uc.Gate(ctx, entity.ResourceCamera) }()
	<-shown

	assert.Equal(t, entity.ActionNoOp, uc.Gate(ctx, entity.ResourceCamera))

	close(release)
	assert.Equal(t, entity.ActionProceed, <-first)

	state, ok := uc.State(entity.ResourceCamera)
	require.True(t, ok)
	assert.False(t, state.PromptDeclined, "a busy prompt is not a declined prompt")
}

func TestPermissionGate_Gate_NoPresenterIsNoOp(t *testing.T) {
	ctx := testContext()
	auth := portmocks.NewMockAuthorizer(t)
	auth.EXPECT().AuthorizationStatus(mock.Anything, entity.ResourceCamera).Return(entity.StatusNotDetermined, nil)

	uc := usecase.NewPermissionGateUseCase(auth, nil)

	assert.Equal(t, entity.ActionNoOp, uc.Gate(ctx, entity.ResourceCamera))
}

func TestPermissionGate_Gate_PhotoLibrary(t *testing.T) {
	tests := []struct {
		name     string
		current  entity.AuthorizationStatus
		answer   entity.AuthorizationStatus
		requests bool
		expected entity.Action
	}{
		{"not determined to authorized", entity.StatusNotDetermined, entity.StatusAuthorized, true, entity.ActionProceed},
		{"not determined to limited", entity.StatusNotDetermined, entity.StatusLimited, true, entity.ActionProceed},
		{"not determined to denied", entity.StatusNotDetermined, entity.StatusDenied, true, entity.ActionRedirectToSettings},
		{"dismissed", entity.StatusNotDetermined, entity.StatusNotDetermined, true, entity.ActionNoOp},
		{"limited stays limited", entity.StatusLimited, entity.StatusLimited, true, entity.ActionProceed},
		{"denied", entity.StatusDenied, "", false, entity.ActionRedirectToSettings},
		{"restricted", entity.StatusRestricted, "", false, entity.ActionRedirectToSettings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			auth := portmocks.NewMockAuthorizer(t)
			presenter := portmocks.NewMockPermissionPromptPresenter(t)

			auth.EXPECT().AuthorizationStatus(mock.Anything, entity.ResourcePhotoLibrary).Return(tt.current, nil)
			if tt.requests {
				auth.EXPECT().RequestAuthorization(mock.Anything, entity.ResourcePhotoLibrary, mock.Anything).
					Run(func(_ context.Context, _ entity.Resource, callback func(entity.AuthorizationStatus)) {
						callback(tt.answer)
					}).Once()
			}

			uc := usecase.NewPermissionGateUseCase(auth, presenter)

			assert.Equal(t, tt.expected, uc.Gate(ctx, entity.ResourcePhotoLibrary))
			presenter.AssertNotCalled(t, "ShowPermissionPrompt")
		})
	}
}

func TestPermissionGate_RequestAuthorization_ResolvedEchoes(t *testing.T) {
	ctx := testContext()
	auth := portmocks.NewMockAuthorizer(t)
	auth.EXPECT().AuthorizationStatus(mock.Anything, entity.ResourceCamera).Return(entity.StatusDenied, nil)

	uc := usecase.NewPermissionGateUseCase(auth, nil)

	ch, ok := uc.RequestAuthorization(ctx, entity.ResourceCamera)
	require.True(t, ok)
	assert.Equal(t, entity.StatusDenied, <-ch)

	_, open := <-ch
	assert.False(t, open, "channel is closed after one status")
	auth.AssertNotCalled(t, "RequestAuthorization")
}

func TestPermissionGate_RequestAuthorization_RejectsOverlap(t *testing.T) {
	ctx := testContext()
	auth := portmocks.NewMockAuthorizer(t)

	var pending func(entity.AuthorizationStatus)
	auth.EXPECT().AuthorizationStatus(mock.Anything, entity.ResourceCamera).Return(entity.StatusNotDetermined, nil)
	auth.EXPECT().AuthorizationStatus(mock.Anything, entity.ResourceNotifications).Return(entity.StatusAuthorized, nil)
	auth.EXPECT().RequestAuthorization(mock.Anything, entity.ResourceCamera, mock.Anything).
		Run(func(_ context.Context, _ entity.Resource, callback func(entity.AuthorizationStatus)) {
			pending = callback
		}).Once()

	uc := usecase.NewPermissionGateUseCase(auth, nil)

	first, ok := uc.RequestAuthorization(ctx, entity.ResourceCamera)
	require.True(t, ok)

	second, ok := uc.RequestAuthorization(ctx, entity.ResourceCamera)
	assert.False(t, ok)
	assert.Nil(t, second)

	// Other resources are independent.
	other, ok := uc.RequestAuthorization(ctx, entity.ResourceNotifications)
	require.True(t, ok)
	assert.Equal(t, entity.StatusAuthorized, <-other)

	state, _ := uc.State(entity.ResourceCamera)
	assert.True(t, state.RequestInFlight)

	require.NotNil(t, pending)
	pending(entity.StatusAuthorized)
	pending(entity.StatusDenied) // ignored

	assert.Equal(t, entity.StatusAuthorized, <-first)
	state, _ = uc.State(entity.ResourceCamera)
	assert.False(t, state.RequestInFlight)
}

func TestPermissionGate_Gate_CallerCancelKeepsRequestInFlight(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext())
	auth := portmocks.NewMockAuthorizer(t)

	auth.EXPECT().AuthorizationStatus(mock.Anything, entity.ResourcePhotoLibrary).Return(entity.StatusNotDetermined, nil)
	auth.EXPECT().RequestAuthorization(mock.Anything, entity.ResourcePhotoLibrary, mock.Anything).
		Run(func(reqCtx context.Context, _ entity.Resource, _ func(entity.AuthorizationStatus)) {
			assert.NoError(t, reqCtx.Err())
			cancel()
		}).Once()

	uc := usecase.NewPermissionGateUseCase(auth, nil)

	assert.Equal(t, entity.ActionNoOp, uc.Gate(ctx, entity.ResourcePhotoLibrary))

	state, _ := uc.State(entity.ResourcePhotoLibrary)
	assert.True(t, state.RequestInFlight)

	_, ok := uc.RequestAuthorization(testContext(), entity.ResourcePhotoLibrary)
	assert.False(t, ok)
}

func TestPermissionGate_OpenSystemSettings_SwallowsErrors(t *testing.T) {
	ctx := testContext()
	auth := portmocks.NewMockAuthorizer(t)
	auth.EXPECT().OpenAppSettings(mock.Anything).Return(errors.New("no launcher")).Once()

	uc := usecase.NewPermissionGateUseCase(auth, nil)

	assert.NotPanics(t, func() { uc.OpenSystemSettings(ctx) })
}

func TestPermissionGate_States_DisplayOrder(t *testing.T) {
	ctx := testContext()
	auth := portmocks.NewMockAuthorizer(t)
	auth.EXPECT().AuthorizationStatus(mock.Anything, entity.ResourceNotifications).Return(entity.StatusDenied, nil)
	auth.EXPECT().AuthorizationStatus(mock.Anything, entity.ResourceCamera).Return(entity.StatusAuthorized, nil)

	uc := usecase.NewPermissionGateUseCase(auth, nil)
	uc.QueryStatus(ctx, entity.ResourceNotifications)
	uc.QueryStatus(ctx, entity.ResourceCamera)

	states := uc.States()
	require.Len(t, states, 2)
	assert.Equal(t, entity.ResourceCamera, states[0].Resource)
	assert.Equal(t, entity.ResourceNotifications, states[1].Resource)
	assert.Equal(t, entity.ActionNoOp, states[1].Action)
}
