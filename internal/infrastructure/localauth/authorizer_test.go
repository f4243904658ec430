package localauth_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/retouch/internal/application/port/mocks"
	"github.com/bnema/retouch/internal/domain/entity"
	repomocks "github.com/bnema/retouch/internal/domain/repository/mocks"
	"github.com/bnema/retouch/internal/infrastructure/localauth"
	"github.com/bnema/retouch/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/retouch/internal/logging"
)

func testCtx() context.Context {
	return logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console"))
}

func newAuthorizer(t *testing.T, presenter *mocks.MockSystemPromptPresenter) *localauth.Authorizer {
	t.Helper()
	db, err := sqlite.NewConnection(testCtx(), filepath.Join(t.TempDir(), "retouch.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	if presenter == nil {
		return localauth.NewAuthorizer(sqlite.NewPlatformPermissionRepository(db), nil)
	}
	return localauth.NewAuthorizer(sqlite.NewPlatformPermissionRepository(db), presenter)
}

// request runs RequestAuthorization and returns the single callback value.
func request(t *testing.T, a *localauth.Authorizer, r entity.Resource) entity.AuthorizationStatus {
	t.Helper()
	var got []entity.AuthorizationStatus
	a.RequestAuthorization(testCtx(), r, func(s entity.AuthorizationStatus) { got = append(got, s) })
	require.Len(t, got, 1)
	return got[0]
}

func answer(status entity.AuthorizationStatus) func(context.Context, entity.Resource, func(entity.AuthorizationStatus)) {
	return func(_ context.Context, _ entity.Resource, cb func(entity.AuthorizationStatus)) {
		cb(status)
		cb(entity.StatusDenied) // a second answer must be ignored
	}
}

func TestAuthorizer_UnknownIsNotDetermined(t *testing.T) {
	a := newAuthorizer(t, nil)

	s, err := a.AuthorizationStatus(testCtx(), entity.ResourceCamera)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusNotDetermined, s)
}

func TestAuthorizer_RequestPersistsAnswer(t *testing.T) {
	ctx := testCtx()
	presenter := mocks.NewMockSystemPromptPresenter(t)
	presenter.EXPECT().
		ShowSystemPrompt(mock.Anything, entity.ResourceCamera, mock.Anything).
		RunAndReturn(answer(entity.StatusAuthorized)).
		Once()

	a := newAuthorizer(t, presenter)
	assert.Equal(t, entity.StatusAuthorized, request(t, a, entity.ResourceCamera))

	s, err := a.AuthorizationStatus(ctx, entity.ResourceCamera)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAuthorized, s)

	// Resolved statuses are echoed without a second dialog.
	assert.Equal(t, entity.StatusAuthorized, request(t, a, entity.ResourceCamera))
}

func TestAuthorizer_DismissedDialogKeepsStatus(t *testing.T) {
	ctx := testCtx()
	presenter := mocks.NewMockSystemPromptPresenter(t)
	presenter.EXPECT().
		ShowSystemPrompt(mock.Anything, entity.ResourceNotifications, mock.Anything).
		RunAndReturn(answer(entity.StatusNotDetermined))

	a := newAuthorizer(t, presenter)
	assert.Equal(t, entity.StatusNotDetermined, request(t, a, entity.ResourceNotifications))

	s, err := a.AuthorizationStatus(ctx, entity.ResourceNotifications)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusNotDetermined, s)
}

func TestAuthorizer_LimitedOnlyForPhotoLibrary(t *testing.T) {
	ctx := testCtx()
	presenter := mocks.NewMockSystemPromptPresenter(t)
	presenter.EXPECT().
		ShowSystemPrompt(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(answer(entity.StatusLimited))

	a := newAuthorizer(t, presenter)
	assert.Equal(t, entity.StatusLimited, request(t, a, entity.ResourcePhotoLibrary))
	assert.Equal(t, entity.StatusRestricted, request(t, a, entity.ResourceCamera))

	// A Limited library can be asked again for full access.
	require.NoError(t, a.Set(ctx, entity.ResourcePhotoLibrary, entity.StatusLimited))
	presenter.AssertNumberOfCalls(t, "ShowSystemPrompt", 2)
	assert.Equal(t, entity.StatusLimited, request(t, a, entity.ResourcePhotoLibrary))
	presenter.AssertNumberOfCalls(t, "ShowSystemPrompt", 3)
}

func TestAuthorizer_NoPresenterEchoesStatus(t *testing.T) {
	a := newAuthorizer(t, nil)
	assert.Equal(t, entity.StatusNotDetermined, request(t, a, entity.ResourceCamera))
}

func TestAuthorizer_Reset(t *testing.T) {
	ctx := testCtx()
	a := newAuthorizer(t, nil)

	require.NoError(t, a.Set(ctx, entity.ResourceCamera, entity.StatusDenied))
	s, err := a.AuthorizationStatus(ctx, entity.ResourceCamera)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDenied, s)

	require.NoError(t, a.Reset(ctx, entity.ResourceCamera))
	s, err = a.AuthorizationStatus(ctx, entity.ResourceCamera)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusNotDetermined, s)
}

func TestAuthorizer_RepositoryErrors(t *testing.T) {
	ctx := testCtx()
	repo := repomocks.NewMockPlatformPermissionRepository(t)
	repo.EXPECT().Get(mock.Anything, entity.ResourceCamera).Return(nil, errors.New("locked"))

	a := localauth.NewAuthorizer(repo, nil)

	s, err := a.AuthorizationStatus(ctx, entity.ResourceCamera)
	require.Error(t, err)
	assert.Equal(t, entity.StatusRestricted, s)
	assert.Equal(t, entity.StatusRestricted, request(t, a, entity.ResourceCamera))
}

func TestAuthorizer_OpenAppSettings(t *testing.T) {
	ctx := testCtx()
	a := newAuthorizer(t, nil)
	require.ErrorIs(t, a.OpenAppSettings(ctx), entity.ErrCapabilityUnavailable)

	opened := 0
	a.SetSettingsHandler(func(context.Context) error {
		opened++
		return nil
	})
	require.NoError(t, a.OpenAppSettings(ctx))
	assert.Equal(t, 1, opened)
}
